package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	cases := []struct {
		Name   string
		Route  string
		Values []string
		Expect string
	}{
		{"NoVars", API_JOBS, nil, "/api/v1/jobs"},
		{"Pattern", API_EXECUTION_FINISH, []string{"12"}, "/api/v1/jobs/12/finish"},
		{"Name", API_JOB_HISTORY, []string{"Nightly_Load"}, "/api/v1/jobs/by-name/Nightly_Load/history"},
		{"Raw", API_JOB_BY_NAME, []string{"a.b"}, "/api/v1/jobs/by-name/a.b"},
		{"Step", API_STEP_FINISH, []string{"3"}, "/api/v1/steps/3/finish"},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, Expand(c.Route, c.Values...))
		})
	}
}
