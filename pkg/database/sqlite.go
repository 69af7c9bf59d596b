package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/structs"
)

const sqlitePragmas = "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

// SQLite is a Database implementation over a single sqlite file.
//
// Times are stored as unix microseconds so range filters and ordering are plain
// integer comparisons.
type SQLite struct {
	opts *Options
	db   *sql.DB
}

// NewSQLite opens (creating if needed) the sqlite file named by opts.URL.
func NewSQLite(opts *Options) (*SQLite, error) {
	path := opts.sqlitePath()
	if path == "" {
		return nil, errors.Wrapf(errors.ErrInvalidArg, "no sqlite path in %q", opts.URL)
	}
	db, err := sql.Open("sqlite3", path+sqlitePragmas)
	if err != nil {
		return nil, errors.Unavailable(err, "open sqlite")
	}
	// sqlite has a single writer, queue in the pool rather than on SQLITE_BUSY
	db.SetMaxOpenConns(1)
	return newSQLite(db, opts), nil
}

func newSQLite(db *sql.DB, opts *Options) *SQLite {
	return &SQLite{db: db, opts: opts}
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) InsertExecution(ctx context.Context, in *structs.JobExecution) (int64, error) {
	attrs, err := encodeAttributes(in.Attributes)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidArg, "attributes: %v", err)
	}

	qstr := fmt.Sprintf(`INSERT INTO %s (job_name, status, start_time, attributes, created_at) VALUES (?, ?, ?, ?, ?);`, tableExecution)
	res, err := s.db.ExecContext(ctx, qstr, in.JobName, string(in.Status), toMicros(in.StartTime), string(attrs), toMicros(in.CreatedAt))
	if err != nil {
		return 0, errors.Unavailable(err, "insert execution")
	}
	id, err := res.LastInsertId()
	return id, errors.Unavailable(err, "insert execution")
}

func (s *SQLite) InsertDetail(ctx context.Context, in *structs.JobExecutionDetail) (int64, error) {
	qstr := fmt.Sprintf(`INSERT INTO %s (execution_id, step_name, step_order, status, step_message, start_time, created_at) VALUES (?, ?, ?, ?, ?, ?, ?);`, tableDetail)
	res, err := s.db.ExecContext(ctx, qstr,
		in.ExecutionID, in.StepName, in.StepOrder, string(in.Status), nullString(in.StepMessage), toMicros(in.StartTime), toMicros(in.CreatedAt),
	)
	if err != nil {
		return 0, errors.Unavailable(err, "insert detail")
	}
	id, err := res.LastInsertId()
	return id, errors.Unavailable(err, "insert detail")
}

func (s *SQLite) Execution(ctx context.Context, id int64) (*structs.JobExecution, error) {
	qstr := fmt.Sprintf(`SELECT %s FROM %s WHERE id=?;`, executionColumns, tableExecution)
	e, err := scanSqliteExecution(s.db.QueryRowContext(ctx, qstr, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(errors.ErrNotFound, "execution %d", id)
	} else if err != nil {
		return nil, errors.Unavailable(err, "read execution")
	}
	return e, nil
}

func (s *SQLite) Detail(ctx context.Context, id int64) (*structs.JobExecutionDetail, error) {
	qstr := fmt.Sprintf(`SELECT %s FROM %s WHERE id=?;`, detailColumns, tableDetail)
	d, err := scanSqliteDetail(s.db.QueryRowContext(ctx, qstr, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(errors.ErrNotFound, "detail %d", id)
	} else if err != nil {
		return nil, errors.Unavailable(err, "read detail")
	}
	return d, nil
}

func (s *SQLite) Executions(ctx context.Context, q *structs.Query) ([]*structs.JobExecution, error) {
	qstr, args := selectExecutions(question, q, sqliteTime)

	rows, err := s.db.QueryContext(ctx, qstr, args...)
	if err != nil {
		return nil, errors.Unavailable(err, "list executions")
	}
	defer rows.Close()

	out := []*structs.JobExecution{}
	for rows.Next() {
		e, err := scanSqliteExecution(rows)
		if err != nil {
			return nil, errors.Unavailable(err, "scan execution")
		}
		out = append(out, e)
	}
	return out, errors.Unavailable(rows.Err(), "list executions")
}

func (s *SQLite) Details(ctx context.Context, executionID int64) ([]*structs.JobExecutionDetail, error) {
	qstr := fmt.Sprintf(`SELECT %s FROM %s WHERE execution_id=? ORDER BY step_order ASC, id ASC;`, detailColumns, tableDetail)

	rows, err := s.db.QueryContext(ctx, qstr, executionID)
	if err != nil {
		return nil, errors.Unavailable(err, "list details")
	}
	defer rows.Close()

	out := []*structs.JobExecutionDetail{}
	for rows.Next() {
		d, err := scanSqliteDetail(rows)
		if err != nil {
			return nil, errors.Unavailable(err, "scan detail")
		}
		out = append(out, d)
	}
	return out, errors.Unavailable(rows.Err(), "list details")
}

func (s *SQLite) FinishExecution(ctx context.Context, id int64, status structs.Status, end time.Time, errMsg *string, attrs structs.Attributes) (int64, error) {
	data, err := encodeAttributes(attrs)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidArg, "attributes: %v", err)
	}

	qstr := fmt.Sprintf(`UPDATE %s SET status=?, end_time=?, error_message=?, attributes=? WHERE id=? AND status=?;`, tableExecution)
	res, err := s.db.ExecContext(ctx, qstr, string(status), toMicros(end), nullString(errMsg), string(data), id, string(structs.RUNNING))
	if err != nil {
		return 0, errors.Unavailable(err, "finish execution")
	}
	n, err := res.RowsAffected()
	return n, errors.Unavailable(err, "finish execution")
}

func (s *SQLite) FinishDetail(ctx context.Context, id int64, status structs.Status, end time.Time, msg *string) (int64, error) {
	qstr := fmt.Sprintf(`UPDATE %s SET status=?, end_time=?, step_message=COALESCE(?, step_message) WHERE id=? AND status=?;`, tableDetail)
	res, err := s.db.ExecContext(ctx, qstr, string(status), toMicros(end), nullString(msg), id, string(structs.RUNNING))
	if err != nil {
		return 0, errors.Unavailable(err, "finish detail")
	}
	n, err := res.RowsAffected()
	return n, errors.Unavailable(err, "finish detail")
}

func (s *SQLite) CountByStatus(ctx context.Context, q *structs.Query) (map[structs.Status]int64, error) {
	qstr, args := countByStatus(question, q, sqliteTime)

	rows, err := s.db.QueryContext(ctx, qstr, args...)
	if err != nil {
		return nil, errors.Unavailable(err, "count executions")
	}
	defer rows.Close()

	out := map[structs.Status]int64{}
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, errors.Unavailable(err, "scan count")
		}
		out[structs.Status(status)] = count
	}
	return out, errors.Unavailable(rows.Err(), "count executions")
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSqliteExecution(row scanner) (*structs.JobExecution, error) {
	e := structs.JobExecution{}
	var (
		status  string
		start   int64
		end     sql.NullInt64
		errMsg  sql.NullString
		attrs   sql.NullString
		created int64
	)
	err := row.Scan(&e.ID, &e.JobName, &status, &start, &end, &errMsg, &attrs, &created)
	if err != nil {
		return nil, err
	}
	e.Status = structs.Status(status)
	e.StartTime = fromMicros(start)
	e.EndTime = fromNullMicros(end)
	e.ErrorMessage = fromNullString(errMsg)
	e.CreatedAt = fromMicros(created)
	e.Attributes, err = decodeAttributes([]byte(attrs.String))
	return &e, err
}

func scanSqliteDetail(row scanner) (*structs.JobExecutionDetail, error) {
	d := structs.JobExecutionDetail{}
	var (
		status  string
		msg     sql.NullString
		start   int64
		end     sql.NullInt64
		created int64
	)
	err := row.Scan(&d.ID, &d.ExecutionID, &d.StepName, &d.StepOrder, &status, &msg, &start, &end, &created)
	if err != nil {
		return nil, err
	}
	d.Status = structs.Status(status)
	d.StepMessage = fromNullString(msg)
	d.StartTime = fromMicros(start)
	d.EndTime = fromNullMicros(end)
	d.CreatedAt = fromMicros(created)
	return &d, nil
}

func sqliteTime(t time.Time) interface{} {
	return toMicros(t)
}

func toMicros(t time.Time) int64 {
	return t.UnixMicro()
}

func fromMicros(v int64) time.Time {
	return time.UnixMicro(v).UTC()
}

func fromNullMicros(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := fromMicros(v.Int64)
	return &t
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
