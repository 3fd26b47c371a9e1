package wellspring

import (
	"context"
	"fmt"
	"sync"
)

// fakeConn records every setup step the factory applies.
type fakeConn struct {
	autoCommitSet bool
	autoCommit    bool
	isolationSet  bool
	isolation     Isolation
	stmts         []*fakeStmt
	prepareErr    error
	execErr       error
	closed        bool
}

func (c *fakeConn) SetAutoCommit(_ context.Context, on bool) error {
	c.autoCommitSet = true
	c.autoCommit = on
	return nil
}

func (c *fakeConn) SetIsolation(_ context.Context, level Isolation) error {
	c.isolationSet = true
	c.isolation = level
	return nil
}

func (c *fakeConn) Prepare(_ context.Context, query string) (Stmt, error) {
	if c.prepareErr != nil {
		return nil, c.prepareErr
	}
	stmt := &fakeStmt{query: query, execErr: c.execErr}
	c.stmts = append(c.stmts, stmt)
	return stmt, nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

type fakeStmt struct {
	query    string
	executed int
	closed   bool
	execErr  error
}

func (s *fakeStmt) Exec(context.Context) error {
	s.executed++
	return s.execErr
}

func (s *fakeStmt) Close() error {
	s.closed = true
	return nil
}

// fakeDriver hands out a fresh fakeConn per connect call and remembers the
// arguments of the last one.
type fakeDriver struct {
	mu         sync.Mutex
	conns      []*fakeConn
	lastURL    string
	lastProps  map[string]string
	connectErr error
	execErr    error
}

func (d *fakeDriver) Connect(_ context.Context, url string, props map[string]string) (Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.connectErr != nil {
		return nil, d.connectErr
	}
	d.lastURL = url
	d.lastProps = make(map[string]string, len(props))
	for k, v := range props {
		d.lastProps[k] = v
	}
	conn := &fakeConn{execErr: d.execErr}
	d.conns = append(d.conns, conn)
	return conn, nil
}

// fakeDataSource accepts a fixed set of property names; anything else is
// unsupported.
type fakeDataSource struct {
	supported  []string
	bound      map[string]string
	connectErr error
	execErr    error
	conns      []*fakeConn
	mu         sync.Mutex
}

func newFakeDataSource(supported ...string) *fakeDataSource {
	return &fakeDataSource{supported: supported, bound: make(map[string]string)}
}

func (s *fakeDataSource) SetProperty(name, value string) error {
	for _, known := range s.supported {
		if name == known {
			s.bound[name] = value
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrPropertyNotSupported, name)
}

func (s *fakeDataSource) PropertyNames() []string { return s.supported }

func (s *fakeDataSource) Connect(context.Context) (Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connectErr != nil {
		return nil, s.connectErr
	}
	conn := &fakeConn{execErr: s.execErr}
	s.conns = append(s.conns, conn)
	return conn, nil
}

type fakeXAConn struct {
	fakeConn
	res XAResource
}

func (c *fakeXAConn) XAResource() XAResource { return c.res }

// fakeXADataSource also satisfies DataSource on purpose, so tests can
// prove XA classification wins.
type fakeXADataSource struct {
	res        XAResource
	connectErr error
	conns      []*fakeXAConn
	mu         sync.Mutex
}

func (s *fakeXADataSource) XAConnect(context.Context) (XAConn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connectErr != nil {
		return nil, s.connectErr
	}
	conn := &fakeXAConn{res: s.res}
	s.conns = append(s.conns, conn)
	return conn, nil
}

func (s *fakeXADataSource) Connect(ctx context.Context) (Conn, error) {
	return s.XAConnect(ctx)
}

type fakeXAResource struct{}

func (fakeXAResource) Start(context.Context, XID) error        { return nil }
func (fakeXAResource) End(context.Context, XID) error          { return nil }
func (fakeXAResource) Prepare(context.Context, XID) error      { return nil }
func (fakeXAResource) Commit(context.Context, XID, bool) error { return nil }
func (fakeXAResource) Rollback(context.Context, XID) error     { return nil }

// captureListener collects warnings for assertions.
type captureListener struct {
	mu   sync.Mutex
	msgs []string
}

func (l *captureListener) OnWarning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

func (l *captureListener) warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.msgs...)
}
