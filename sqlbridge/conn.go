package sqlbridge

import (
	"context"
	"database/sql/driver"
	"errors"

	"github.com/joestump/wellspring"
)

// bridgeConn drives a raw database/sql driver connection through the
// wellspring connection surface. Session settings the dialect cannot
// express are no-ops rather than errors.
type bridgeConn struct {
	raw     driver.Conn
	dialect *dialect
}

var (
	_ wellspring.Conn      = (*bridgeConn)(nil)
	_ wellspring.RawConner = (*bridgeConn)(nil)
)

func (c *bridgeConn) Raw() driver.Conn { return c.raw }

func (c *bridgeConn) SetAutoCommit(ctx context.Context, on bool) error {
	return c.execSession(ctx, c.dialect.autoCommitStmt(on))
}

func (c *bridgeConn) SetIsolation(ctx context.Context, level wellspring.Isolation) error {
	return c.execSession(ctx, c.dialect.isolationStmt(level))
}

func (c *bridgeConn) execSession(ctx context.Context, query string) error {
	if query == "" {
		return nil
	}
	if execer, ok := c.raw.(driver.ExecerContext); ok {
		_, err := execer.ExecContext(ctx, query, nil)
		if !errors.Is(err, driver.ErrSkip) {
			return err
		}
	}
	stmt, err := c.prepareRaw(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	return execStmt(ctx, stmt)
}

func (c *bridgeConn) Prepare(ctx context.Context, query string) (wellspring.Stmt, error) {
	stmt, err := c.prepareRaw(ctx, query)
	if err != nil {
		return nil, err
	}
	return &bridgeStmt{raw: stmt}, nil
}

func (c *bridgeConn) prepareRaw(ctx context.Context, query string) (driver.Stmt, error) {
	if pc, ok := c.raw.(driver.ConnPrepareContext); ok {
		return pc.PrepareContext(ctx, query)
	}
	return c.raw.Prepare(query)
}

func (c *bridgeConn) Close() error { return c.raw.Close() }

type bridgeStmt struct {
	raw driver.Stmt
}

func (s *bridgeStmt) Exec(ctx context.Context) error {
	return execStmt(ctx, s.raw)
}

func (s *bridgeStmt) Close() error { return s.raw.Close() }

func execStmt(ctx context.Context, stmt driver.Stmt) error {
	if sc, ok := stmt.(driver.StmtExecContext); ok {
		_, err := sc.ExecContext(ctx, nil)
		return err
	}
	_, err := stmt.Exec(nil)
	return err
}
