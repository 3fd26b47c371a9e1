package wellspring

import (
	"context"
	"errors"
)

var (
	errNilXAResource = errors.New("nil XAResource from XADataSource")
	errUnknownMode   = errors.New("unknown connection factory mode")
)

// Handle is the uniform shape every created connection is returned
// through, regardless of provider origin. Non-XA connections ride in the
// same shape with a nil transactional resource; true XA connections carry
// theirs. Handle itself satisfies XAConn.
type Handle struct {
	conn Conn
	xa   XAResource
}

var _ XAConn = (*Handle)(nil)

// XAResource returns the transactional resource, or nil when the
// connection did not originate from an XA data source.
func (h *Handle) XAResource() XAResource { return h.xa }

func (h *Handle) SetAutoCommit(ctx context.Context, on bool) error {
	return h.conn.SetAutoCommit(ctx, on)
}

func (h *Handle) SetIsolation(ctx context.Context, level Isolation) error {
	return h.conn.SetIsolation(ctx, level)
}

func (h *Handle) Prepare(ctx context.Context, query string) (Stmt, error) {
	return h.conn.Prepare(ctx, query)
}

func (h *Handle) Close() error { return h.conn.Close() }

// Unwrap exposes the provider's connection for callers that need the
// concrete type underneath.
func (h *Handle) Unwrap() Conn { return h.conn }
