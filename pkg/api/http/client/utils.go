package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/voidshard/etlmon/pkg/api/http/common"
	"github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/structs"
)

// post is a helper to POST data to a given URL and unmarshal the response
func (c *Client) post(ctx context.Context, addr *url.URL, in interface{}, out interface{}) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr.String(), bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// get is a helper to GET data from a given URL and unmarshal the response.
// Implies the Query string is already set, if needed.
func (c *Client) get(ctx context.Context, addr *url.URL, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Unavailable(err, req.URL.Path)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 { // some error code, assume message is error message
		return statusError(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.Unmarshal(body, out)
}

// statusError maps a status code back to the error kinds the server started from.
func statusError(code int, msg string) error {
	switch code {
	case http.StatusBadRequest:
		return errors.Wrap(errors.ErrInvalidArg, msg)
	case http.StatusNotFound:
		return errors.Wrap(errors.ErrNotFound, msg)
	case http.StatusConflict:
		return errors.Wrap(errors.ErrInvalidState, msg)
	case http.StatusServiceUnavailable, http.StatusTooManyRequests:
		return errors.Wrap(errors.ErrUnavailable, msg)
	}
	return errors.Newf("bad status code %d, returned %s", code, msg)
}

func setLimit(u *url.URL, limit int) {
	if limit <= 0 {
		return
	}
	values := u.Query()
	values.Set(common.QueryLimit, strconv.Itoa(limit))
	u.RawQuery = values.Encode()
}

func setWindow(u *url.URL, w structs.Window) {
	values := u.Query()
	if w.From != nil {
		values.Set(common.QueryStartDate, w.From.UTC().Format(time.RFC3339Nano))
	}
	if w.To != nil {
		values.Set(common.QueryEndDate, w.To.UTC().Format(time.RFC3339Nano))
	}
	u.RawQuery = values.Encode()
}

// setQueryString sets the query string of a URL based on the given query object.
func setQueryString(u *url.URL, q *structs.Query) {
	q.Sanitize()
	values := u.Query()

	if q.Limit > 0 {
		values.Set(common.QueryLimit, strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		values.Set(common.QueryOffset, strconv.Itoa(q.Offset))
	}
	if q.JobNames != nil {
		values[common.QueryJobName] = q.JobNames
	}
	if q.Statuses != nil {
		ss := []string{}
		for _, s := range q.Statuses {
			ss = append(ss, string(s))
		}
		values[common.QueryStatus] = ss
	}
	u.RawQuery = values.Encode()

	setWindow(u, structs.Window{From: q.StartedFrom, To: q.StartedBefore})
}
