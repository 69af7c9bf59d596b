package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/voidshard/etlmon/pkg/api/http/common"
	ie "github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/structs"
)

var (
	errmap map[int][]error = map[int][]error{
		http.StatusBadRequest:         []error{ie.ErrInvalidArg},
		http.StatusNotFound:           []error{ie.ErrNotFound},
		http.StatusConflict:           []error{ie.ErrInvalidState},
		http.StatusServiceUnavailable: []error{ie.ErrUnavailable},
	}

	dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}
)

// mapError returns the http status code for a given error, or
// http.StatusInternalServerError if the error is not recognised.
func mapError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for code, errs := range errmap {
		for _, e := range errs {
			if ie.Is(err, e) {
				return code
			}
		}
	}
	return http.StatusInternalServerError
}

// writeError writes err with its mapped status code.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := mapError(err)
	switch code {
	case http.StatusServiceUnavailable:
		w.Header().Set("Retry-After", "1")
		s.log.Warnw("store unavailable", "url", r.URL.String(), "error", err)
	case http.StatusInternalServerError:
		s.log.Errorw("request failed", "url", r.URL.String(), "error", err)
	}
	http.Error(w, err.Error(), code)
}

func writeJson(w http.ResponseWriter, code int, obj interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// the status is already sent, nothing more can be done if this fails
	json.NewEncoder(w).Encode(obj)
}

// unmarshalJson reads the body of a request and attempts to unmarshal it into the given object.
// This function write an error to the writer if an error occurs, and returns the error.
func unmarshalJson(w http.ResponseWriter, r *http.Request, obj interface{}) error {
	if r.Body == nil {
		http.Error(w, "No body", http.StatusBadRequest)
		return fmt.Errorf("no body")
	}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields() // catch unwanted fields

	err := d.Decode(obj)
	if err != nil {
		// bad JSON or unrecognized json field
		http.Error(w, err.Error(), http.StatusBadRequest)
		return fmt.Errorf("bad json: %v", err)
	}

	return nil
}

// unmarshalValid is unmarshalJson followed by struct validation.
func (s *Server) unmarshalValid(w http.ResponseWriter, r *http.Request, obj interface{}) error {
	if err := unmarshalJson(w, r, obj); err != nil {
		return err
	}
	if err := s.validate.Struct(obj); err != nil {
		msg := validationMessage(err)
		http.Error(w, msg, http.StatusBadRequest)
		return fmt.Errorf("invalid request: %s", msg)
	}
	return nil
}

// pathID reads the {id} path variable.
func pathID(w http.ResponseWriter, r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "bad id", http.StatusBadRequest)
		return 0, fmt.Errorf("bad id: %v", raw)
	}
	return id, nil
}

// queryInt reads an optional integer query value, 0 if absent.
func queryInt(w http.ResponseWriter, r *http.Request, key string) (int, error) {
	q := r.URL.Query()
	if !q.Has(key) {
		return 0, nil
	}
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		http.Error(w, fmt.Sprintf("bad %s: %v", key, err), http.StatusBadRequest)
		return 0, fmt.Errorf("bad %s: %v", key, err)
	}
	return v, nil
}

// queryTime reads an optional time query value.
func queryTime(w http.ResponseWriter, r *http.Request, key string) (*time.Time, error) {
	q := r.URL.Query()
	if !q.Has(key) || q.Get(key) == "" {
		return nil, nil
	}
	t, err := parseTime(q.Get(key))
	if err != nil {
		http.Error(w, fmt.Sprintf("bad %s: %v", key, err), http.StatusBadRequest)
		return nil, fmt.Errorf("bad %s: %v", key, err)
	}
	return &t, nil
}

func parseTime(in string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		t, err = time.Parse(layout, in)
		if err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

func unmarshalWindow(w http.ResponseWriter, r *http.Request) (structs.Window, error) {
	from, err := queryTime(w, r, common.QueryStartDate)
	if err != nil {
		return structs.Window{}, err
	}
	to, err := queryTime(w, r, common.QueryEndDate)
	if err != nil {
		return structs.Window{}, err
	}
	return structs.Window{From: from, To: to}, nil
}

func unmarshalQuery(w http.ResponseWriter, r *http.Request, out *structs.Query) error {
	q := r.URL.Query()

	limit, err := queryInt(w, r, common.QueryLimit)
	if err != nil {
		return err
	}
	out.Limit = limit

	offset, err := queryInt(w, r, common.QueryOffset)
	if err != nil {
		return err
	}
	out.Offset = offset

	if q.Has(common.QueryJobName) {
		out.JobNames = q[common.QueryJobName]
	}
	if q.Has(common.QueryStatus) {
		out.Statuses = []structs.Status{}
		for _, s := range q[common.QueryStatus] {
			st := structs.ToStatus(s)
			if st == "" {
				http.Error(w, "bad status", http.StatusBadRequest)
				return fmt.Errorf("bad status: %v", s)
			}
			out.Statuses = append(out.Statuses, st)
		}
	}

	win, err := unmarshalWindow(w, r)
	if err != nil {
		return err
	}
	out.StartedFrom = win.From
	out.StartedBefore = win.To

	out.Sanitize()
	return nil
}
