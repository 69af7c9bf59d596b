package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/structs"
)

// Postgres is a Database implementation that uses postgres.
type Postgres struct {
	opts *Options
	pool *pgxpool.Pool
}

// NewPostgres returns a new Postgres database connection.
func NewPostgres(opts *Options) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(opts.expandedURL())
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidArg, "bad postgres url: %v", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, errors.Unavailable(err, "connect to postgres")
	}
	return &Postgres{pool: pool, opts: opts}, nil
}

// Close shuts down the database connection.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// InsertExecution inserts a new execution returning the generated id.
func (p *Postgres) InsertExecution(ctx context.Context, in *structs.JobExecution) (int64, error) {
	attrs, err := encodeAttributes(in.Attributes)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidArg, "attributes: %v", err)
	}

	qstr := fmt.Sprintf(`INSERT INTO %s (job_name, status, start_time, attributes, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id;`, tableExecution)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return 0, errors.Unavailable(err, "acquire connection")
	}
	defer conn.Release()

	var id int64
	err = conn.QueryRow(ctx, qstr, in.JobName, in.Status, in.StartTime, attrs, in.CreatedAt).Scan(&id)
	if err != nil {
		return 0, errors.Unavailable(err, "insert execution")
	}
	return id, nil
}

// InsertDetail inserts a new step returning the generated id.
func (p *Postgres) InsertDetail(ctx context.Context, in *structs.JobExecutionDetail) (int64, error) {
	qstr := fmt.Sprintf(`INSERT INTO %s (execution_id, step_name, step_order, status, step_message, start_time, created_at) 
	VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id;`, tableDetail)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return 0, errors.Unavailable(err, "acquire connection")
	}
	defer conn.Release()

	var id int64
	err = conn.QueryRow(ctx, qstr, in.ExecutionID, in.StepName, in.StepOrder, in.Status, in.StepMessage, in.StartTime, in.CreatedAt).Scan(&id)
	if err != nil {
		return 0, errors.Unavailable(err, "insert detail")
	}
	return id, nil
}

// Execution returns one execution by id
func (p *Postgres) Execution(ctx context.Context, id int64) (*structs.JobExecution, error) {
	qstr := fmt.Sprintf(`SELECT %s FROM %s WHERE id=$1;`, executionColumns, tableExecution)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, errors.Unavailable(err, "acquire connection")
	}
	defer conn.Release()

	e, err := scanPgExecution(conn.QueryRow(ctx, qstr, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrapf(errors.ErrNotFound, "execution %d", id)
	} else if err != nil {
		return nil, errors.Unavailable(err, "read execution")
	}
	return e, nil
}

// Detail returns one step by id
func (p *Postgres) Detail(ctx context.Context, id int64) (*structs.JobExecutionDetail, error) {
	qstr := fmt.Sprintf(`SELECT %s FROM %s WHERE id=$1;`, detailColumns, tableDetail)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, errors.Unavailable(err, "acquire connection")
	}
	defer conn.Release()

	d, err := scanPgDetail(conn.QueryRow(ctx, qstr, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrapf(errors.ErrNotFound, "detail %d", id)
	} else if err != nil {
		return nil, errors.Unavailable(err, "read detail")
	}
	return d, nil
}

// Executions returns executions matching the given query
func (p *Postgres) Executions(ctx context.Context, q *structs.Query) ([]*structs.JobExecution, error) {
	qstr, args := selectExecutions(dollar, q, pgTime)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, errors.Unavailable(err, "acquire connection")
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, qstr, args...)
	if err != nil {
		return nil, errors.Unavailable(err, "list executions")
	}
	defer rows.Close()

	out := []*structs.JobExecution{}
	for rows.Next() {
		e, err := scanPgExecution(rows)
		if err != nil {
			return nil, errors.Unavailable(err, "scan execution")
		}
		out = append(out, e)
	}
	return out, errors.Unavailable(rows.Err(), "list executions")
}

// Details returns the steps of an execution in step order
func (p *Postgres) Details(ctx context.Context, executionID int64) ([]*structs.JobExecutionDetail, error) {
	qstr := fmt.Sprintf(`SELECT %s FROM %s WHERE execution_id=$1 ORDER BY step_order ASC, id ASC;`, detailColumns, tableDetail)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, errors.Unavailable(err, "acquire connection")
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, qstr, executionID)
	if err != nil {
		return nil, errors.Unavailable(err, "list details")
	}
	defer rows.Close()

	out := []*structs.JobExecutionDetail{}
	for rows.Next() {
		d, err := scanPgDetail(rows)
		if err != nil {
			return nil, errors.Unavailable(err, "scan detail")
		}
		out = append(out, d)
	}
	return out, errors.Unavailable(rows.Err(), "list details")
}

// FinishExecution sets the terminal fields of a still running execution.
func (p *Postgres) FinishExecution(ctx context.Context, id int64, status structs.Status, end time.Time, errMsg *string, attrs structs.Attributes) (int64, error) {
	data, err := encodeAttributes(attrs)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidArg, "attributes: %v", err)
	}

	qstr := fmt.Sprintf(`UPDATE %s SET status=$1, end_time=$2, error_message=$3, attributes=$4 WHERE id=$5 AND status=$6;`, tableExecution)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return 0, errors.Unavailable(err, "acquire connection")
	}
	defer conn.Release()

	info, err := conn.Exec(ctx, qstr, status, end, errMsg, data, id, structs.RUNNING)
	if err != nil {
		return 0, errors.Unavailable(err, "finish execution")
	}
	return info.RowsAffected(), nil
}

// FinishDetail sets the terminal fields of a still running step, keeping the
// existing message if none is given.
func (p *Postgres) FinishDetail(ctx context.Context, id int64, status structs.Status, end time.Time, msg *string) (int64, error) {
	qstr := fmt.Sprintf(`UPDATE %s SET status=$1, end_time=$2, step_message=COALESCE($3, step_message) WHERE id=$4 AND status=$5;`, tableDetail)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return 0, errors.Unavailable(err, "acquire connection")
	}
	defer conn.Release()

	info, err := conn.Exec(ctx, qstr, status, end, msg, id, structs.RUNNING)
	if err != nil {
		return 0, errors.Unavailable(err, "finish detail")
	}
	return info.RowsAffected(), nil
}

// CountByStatus groups matching executions by status
func (p *Postgres) CountByStatus(ctx context.Context, q *structs.Query) (map[structs.Status]int64, error) {
	qstr, args := countByStatus(dollar, q, pgTime)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, errors.Unavailable(err, "acquire connection")
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, qstr, args...)
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

func pgTime(t time.Time) interface{} {
	return t.UTC()
}

func scanPgExecution(row pgx.Row) (*structs.JobExecution, error) {
	e := structs.JobExecution{}
	var (
		status string
		attrs  []byte
	)
	err := row.Scan(
		&e.ID,
		&e.JobName,
		&status,
		&e.StartTime,
		&e.EndTime,
		&e.ErrorMessage,
		&attrs,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Status = structs.Status(status)
	e.StartTime = e.StartTime.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	if e.EndTime != nil {
		end := e.EndTime.UTC()
		e.EndTime = &end
	}
	e.Attributes, err = decodeAttributes(attrs)
	return &e, err
}

func scanPgDetail(row pgx.Row) (*structs.JobExecutionDetail, error) {
	d := structs.JobExecutionDetail{}
	var status string
	err := row.Scan(
		&d.ID,
		&d.ExecutionID,
		&d.StepName,
		&d.StepOrder,
		&status,
		&d.StepMessage,
		&d.StartTime,
		&d.EndTime,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Status = structs.Status(status)
	d.StartTime = d.StartTime.UTC()
	d.CreatedAt = d.CreatedAt.UTC()
	if d.EndTime != nil {
		end := d.EndTime.UTC()
		d.EndTime = &end
	}
	return &d, nil
}
