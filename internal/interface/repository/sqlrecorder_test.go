package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqlRecorder is an in-memory database/sql driver. It records every statement,
// answers SELECTs with the configured rows and INSERT ... RETURNING with none.
type sqlRecorder struct {
	mu         sync.Mutex
	statements []recordedStatement
	columns    []string
	rows       [][]driver.Value
	failOn     string
	commits    int
	rollbacks  int
}

type recordedStatement struct {
	query string
	args  []driver.Value
}

func newRecordedDB(t *testing.T, rec *sqlRecorder) *gorm.DB {
	t.Helper()
	sqlDB := sql.OpenDB(recorderConnector{rec: rec})
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func (r *sqlRecorder) record(query string, args []driver.NamedValue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	values := make([]driver.Value, len(args))
	for i, a := range args {
		values[i] = a.Value
	}
	r.statements = append(r.statements, recordedStatement{query: query, args: values})
	if r.failOn != "" && strings.Contains(query, r.failOn) {
		return errors.New("statement rejected")
	}
	return nil
}

// matching returns the recorded statements whose text contains fragment
func (r *sqlRecorder) matching(fragment string) []recordedStatement {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []recordedStatement
	for _, s := range r.statements {
		if strings.Contains(s.query, fragment) {
			out = append(out, s)
		}
	}
	return out
}

type recorderConnector struct {
	rec *sqlRecorder
}

func (c recorderConnector) Connect(context.Context) (driver.Conn, error) {
	return &recorderConn{rec: c.rec}, nil
}

func (c recorderConnector) Driver() driver.Driver { return recorderDriver{} }

type recorderDriver struct{}

func (recorderDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open through the connector")
}

type recorderConn struct {
	rec *sqlRecorder
}

func (c *recorderConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements are not supported")
}

func (c *recorderConn) Close() error { return nil }

func (c *recorderConn) Begin() (driver.Tx, error) { return recorderTx{rec: c.rec}, nil }

func (c *recorderConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if err := c.rec.record(query, args); err != nil {
		return nil, err
	}
	return driver.RowsAffected(1), nil
}

func (c *recorderConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if err := c.rec.record(query, args); err != nil {
		return nil, err
	}
	if strings.HasPrefix(query, "INSERT") {
		return &recorderRows{columns: []string{"id"}}, nil
	}
	c.rec.mu.Lock()
	defer c.rec.mu.Unlock()
	return &recorderRows{columns: c.rec.columns, rows: c.rec.rows}, nil
}

type recorderTx struct {
	rec *sqlRecorder
}

func (tx recorderTx) Commit() error {
	tx.rec.mu.Lock()
	defer tx.rec.mu.Unlock()
	tx.rec.commits++
	return nil
}

func (tx recorderTx) Rollback() error {
	tx.rec.mu.Lock()
	defer tx.rec.mu.Unlock()
	tx.rec.rollbacks++
	return nil
}

type recorderRows struct {
	columns []string
	rows    [][]driver.Value
	pos     int
}

func (r *recorderRows) Columns() []string { return r.columns }

func (r *recorderRows) Close() error { return nil }

func (r *recorderRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}

func hasArg(args []driver.Value, want driver.Value) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}
