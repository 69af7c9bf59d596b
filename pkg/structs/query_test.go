package structs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	now := time.Now()

	cases := []struct {
		Name   string
		Given  *Query
		Expect *Query
	}{
		{
			Name:   "SetsDefaultLimit",
			Given:  &Query{},
			Expect: &Query{Limit: queryLimitDefault},
		},
		{
			Name:   "SetsMaxLimit",
			Given:  &Query{Limit: queryLimitMax + 1},
			Expect: &Query{Limit: queryLimitMax},
		},
		{
			Name:   "SanitizesOffset",
			Given:  &Query{Limit: 1, Offset: -1},
			Expect: &Query{Limit: 1, Offset: 0},
		},
		{
			Name:   "ZeroJobNames",
			Given:  &Query{Limit: 1, JobNames: []string{}},
			Expect: &Query{Limit: 1},
		},
		{
			Name:   "ZeroStatuses",
			Given:  &Query{Limit: 1, Statuses: []Status{}},
			Expect: &Query{Limit: 1},
		},
		{
			Name:   "KeepsTimes",
			Given:  &Query{Limit: 1, StartedFrom: &now},
			Expect: &Query{Limit: 1, StartedFrom: &now},
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			c.Given.Sanitize()
			assert.Equal(t, c.Expect, c.Given)
		})
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct {
		Name   string
		Given  int
		Expect int
	}{
		{"Unset", 0, 50},
		{"Negative", -3, 50},
		{"Given", 7, 7},
		{"Max", queryLimitMax + 50, queryLimitMax},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, ClampLimit(c.Given, 50))
		})
	}
}

func TestQueryCopy(t *testing.T) {
	now := time.Now()
	q := &Query{Limit: 3, JobNames: []string{"a"}, Statuses: []Status{FAILURE}, StartedFrom: &now}

	c := q.Copy()
	c.JobNames[0] = "b"
	c.Statuses[0] = SUCCESS
	c.StartedFrom = nil
	c.Sanitize()

	assert.Equal(t, 3, q.Limit)
	assert.Equal(t, []string{"a"}, q.JobNames)
	assert.Equal(t, []Status{FAILURE}, q.Statuses)
	assert.Equal(t, &now, q.StartedFrom)
}
