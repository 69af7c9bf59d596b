package database

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/voidshard/etlmon/pkg/structs"
)

const (
	tableExecution = "job_execution"
	tableDetail    = "job_execution_detail"

	executionColumns = "id, job_name, status, start_time, end_time, error_message, attributes, created_at"
	detailColumns    = "id, execution_id, step_name, step_order, status, step_message, start_time, end_time, created_at"
)

// placeholder renders the n-th (1 based) bind parameter for a dialect.
type placeholder func(n int) string

func dollar(n int) string { return fmt.Sprintf("$%d", n) }

func question(n int) string { return "?" }

// toSqlQuery converts query filters into a WHERE clause & args.
// Time bounds are passed through conv so each dialect can store times its own way.
func toSqlQuery(ph placeholder, q *structs.Query, conv func(time.Time) interface{}) (string, []interface{}) {
	and := []string{}
	args := []interface{}{}

	if len(q.JobNames) > 0 {
		s, a := toSqlIn(ph, len(args)+1, "job_name", q.JobNames)
		and = append(and, s)
		args = append(args, a...)
	}
	if len(q.Statuses) > 0 {
		s, a := toSqlIn(ph, len(args)+1, "status", statusToStrings(q.Statuses))
		and = append(and, s)
		args = append(args, a...)
	}
	if q.StartedFrom != nil {
		args = append(args, conv(*q.StartedFrom))
		and = append(and, fmt.Sprintf("start_time >= %s", ph(len(args))))
	}
	if q.StartedBefore != nil {
		args = append(args, conv(*q.StartedBefore))
		and = append(and, fmt.Sprintf("start_time < %s", ph(len(args))))
	}

	if len(and) == 0 {
		return "", args
	}
	return fmt.Sprintf("WHERE %s", strings.Join(and, " AND ")), args
}

// toSqlIn converts a list of strings into a SQL IN clause
func toSqlIn(ph placeholder, offset int, field string, args []string) (string, []interface{}) {
	if len(args) == 0 {
		return "", []interface{}{}
	}
	vals := []string{}
	ifargs := []interface{}{}
	for i, a := range args {
		vals = append(vals, ph(i+offset))
		ifargs = append(ifargs, a)
	}
	return fmt.Sprintf("%s IN (%s)", field, strings.Join(vals, ", ")), ifargs
}

// selectExecutions builds the listing query for a dialect.
func selectExecutions(ph placeholder, q *structs.Query, conv func(time.Time) interface{}) (string, []interface{}) {
	where, args := toSqlQuery(ph, q, conv)
	args = append(args, q.Limit, q.Offset)
	return fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY start_time DESC, id DESC LIMIT %s OFFSET %s;`,
		executionColumns, tableExecution, where, ph(len(args)-1), ph(len(args)),
	), args
}

// countByStatus builds the group-by query for a dialect.
func countByStatus(ph placeholder, q *structs.Query, conv func(time.Time) interface{}) (string, []interface{}) {
	where, args := toSqlQuery(ph, q, conv)
	return fmt.Sprintf(`SELECT status, COUNT(*) FROM %s %s GROUP BY status;`, tableExecution, where), args
}

// statusToStrings converts a list of statuses into a list of strings
func statusToStrings(in []structs.Status) []string {
	if len(in) == 0 {
		return nil
	}
	out := []string{}
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}

func encodeAttributes(in structs.Attributes) ([]byte, error) {
	if in == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(in)
}

func decodeAttributes(in []byte) (structs.Attributes, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := structs.Attributes{}
	err := json.Unmarshal(in, &out)
	if len(out) == 0 {
		return nil, err
	}
	return out, err
}
