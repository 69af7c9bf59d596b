package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/structs"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		Name   string
		In     error
		Expect int
	}{
		{"Nil", nil, http.StatusOK},
		{"InvalidArg", errors.Wrap(errors.ErrInvalidArg, "bad name"), http.StatusBadRequest},
		{"NotFound", errors.Wrapf(errors.ErrNotFound, "execution %d", 3), http.StatusNotFound},
		{"InvalidState", errors.Wrap(errors.ErrInvalidState, "already finished"), http.StatusConflict},
		{"Unavailable", errors.Unavailable(fmt.Errorf("connection refused"), "insert"), http.StatusServiceUnavailable},
		{"Unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, mapError(c.In))
		})
	}
}

func TestParseTime(t *testing.T) {
	cases := []struct {
		Name   string
		In     string
		Expect time.Time
		Err    bool
	}{
		{"RFC3339", "2024-03-01T10:00:00Z", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), false},
		{"Offset", "2024-03-01T12:00:00+02:00", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), false},
		{"Fraction", "2024-03-01T10:00:00.5Z", time.Date(2024, 3, 1, 10, 0, 0, 500000000, time.UTC), false},
		{"NoZone", "2024-03-01T10:00:00", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), false},
		{"DateOnly", "2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"Garbage", "yesterday", time.Time{}, true},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			result, err := parseTime(c.In)
			if c.Err {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			assert.True(t, c.Expect.Equal(result), "expected %v got %v", c.Expect, result)
		})
	}
}

func TestUnmarshalQuery(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		Name   string
		Raw    string
		Expect *structs.Query
		Code   int
	}{
		{
			"Empty",
			"",
			&structs.Query{Limit: 100},
			http.StatusOK,
		},
		{
			"All",
			"job_name=a&job_name=b&status=falha&status=Sucesso&start_date=2024-03-01&end_date=2024-03-02&limit=5&offset=2",
			&structs.Query{
				Limit:         5,
				Offset:        2,
				JobNames:      []string{"a", "b"},
				Statuses:      []structs.Status{structs.FAILURE, structs.SUCCESS},
				StartedFrom:   &from,
				StartedBefore: &to,
			},
			http.StatusOK,
		},
		{
			"ClampedLimit",
			"limit=5000",
			&structs.Query{Limit: 1000},
			http.StatusOK,
		},
		{"BadStatus", "status=nope", nil, http.StatusBadRequest},
		{"BadLimit", "limit=ten", nil, http.StatusBadRequest},
		{"BadDate", "start_date=soon", nil, http.StatusBadRequest},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/filter?"+c.Raw, nil)
			w := httptest.NewRecorder()
			q := &structs.Query{}

			err := unmarshalQuery(w, r, q)

			assert.Equal(t, c.Code, w.Code)
			if c.Expect == nil {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, c.Expect, q)
		})
	}
}

func TestValidator(t *testing.T) {
	v := newValidator()
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}

	cases := []struct {
		Name  string
		In    interface{}
		Valid bool
	}{
		{"Job", &structs.StartExecutionRequest{JobName: "Nightly_Load-v2.1"}, true},
		{"JobMissing", &structs.StartExecutionRequest{}, false},
		{"JobBadChars", &structs.StartExecutionRequest{JobName: "nightly load"}, false},
		{"JobTooLong", &structs.StartExecutionRequest{JobName: string(long)}, false},
		{"Step", &structs.StartStepRequest{StepName: "extract orders"}, true},
		{"StepMissing", &structs.StartStepRequest{StepOrder: 1}, false},
		{"FinishMissingStatus", &structs.FinishExecutionRequest{}, false},
		{"Finish", &structs.FinishExecutionRequest{Status: structs.FAILURE}, true},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			err := v.Struct(c.In)
			assert.Equal(t, c.Valid, err == nil, "err: %v", err)
			if err != nil {
				assert.NotEmpty(t, validationMessage(err))
			}
		})
	}
}
