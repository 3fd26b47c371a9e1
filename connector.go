package wellspring

import (
	"context"
	"database/sql/driver"
	"errors"
)

// RawConner is implemented by provider connections that wrap a database/sql
// driver connection. The pool adapter prefers the raw connection for
// statement execution so placeholder arguments keep working.
type RawConner interface {
	Raw() driver.Conn
}

// Connector adapts the factory to database/sql, the stock pool
// collaborator: sql.OpenDB(f.Connector()) puts connection reuse, liveness
// checking, and retry in the standard library's hands while every new
// connection still goes through the factory's initialization.
func (f *Factory) Connector() driver.Connector {
	return &poolConnector{f: f}
}

type poolConnector struct {
	f *Factory
}

func (c *poolConnector) Connect(ctx context.Context) (driver.Conn, error) {
	h, err := c.f.CreateConnection(ctx)
	if err != nil {
		return nil, err
	}
	return &poolConn{h: h}, nil
}

func (c *poolConnector) Driver() driver.Driver { return poolDriver{f: c.f} }

type poolDriver struct {
	f *Factory
}

func (d poolDriver) Open(string) (driver.Conn, error) {
	h, err := d.f.CreateConnection(context.Background())
	if err != nil {
		return nil, err
	}
	return &poolConn{h: h}, nil
}

type poolConn struct {
	h *Handle
}

func (c *poolConn) raw() (driver.Conn, bool) {
	rc, ok := c.h.Unwrap().(RawConner)
	if !ok {
		return nil, false
	}
	return rc.Raw(), true
}

func (c *poolConn) Prepare(query string) (driver.Stmt, error) {
	if raw, ok := c.raw(); ok {
		return raw.Prepare(query)
	}
	stmt, err := c.h.Prepare(context.Background(), query)
	if err != nil {
		return nil, err
	}
	return &poolStmt{stmt: stmt}, nil
}

func (c *poolConn) Close() error { return c.h.Close() }

func (c *poolConn) Begin() (driver.Tx, error) {
	raw, ok := c.raw()
	if !ok {
		return nil, errors.New("wellspring: provider connection does not support transactions")
	}
	if tx, ok := raw.(driver.ConnBeginTx); ok {
		return tx.BeginTx(context.Background(), driver.TxOptions{})
	}
	//lint:ignore SA1019 fallback for drivers without ConnBeginTx
	return raw.Begin()
}

func (c *poolConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if raw, ok := c.raw(); ok {
		if execer, ok := raw.(driver.ExecerContext); ok {
			return execer.ExecContext(ctx, query, args)
		}
	}
	return nil, driver.ErrSkip
}

func (c *poolConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if raw, ok := c.raw(); ok {
		if queryer, ok := raw.(driver.QueryerContext); ok {
			return queryer.QueryContext(ctx, query, args)
		}
	}
	return nil, driver.ErrSkip
}

// poolStmt carries a portable statement for providers with no raw
// database/sql connection underneath. Such statements take no placeholder
// arguments.
type poolStmt struct {
	stmt Stmt
}

func (s *poolStmt) Close() error  { return s.stmt.Close() }
func (s *poolStmt) NumInput() int { return 0 }

func (s *poolStmt) Exec(args []driver.Value) (driver.Result, error) {
	if err := s.stmt.Exec(context.Background()); err != nil {
		return nil, err
	}
	return driver.RowsAffected(0), nil
}

func (s *poolStmt) Query(args []driver.Value) (driver.Rows, error) {
	return nil, errors.New("wellspring: provider statement does not support queries")
}
