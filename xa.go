package wellspring

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// XID identifies one branch of a distributed transaction.
type XID struct {
	FormatID        int32
	GlobalTxID      []byte
	BranchQualifier []byte
}

// wellspringFormatID marks XIDs minted by this package.
const wellspringFormatID int32 = 0x77656c // "wel"

// NewXID mints a fresh XID with random global and branch identifiers.
func NewXID() XID {
	g := uuid.New()
	b := uuid.New()
	return XID{
		FormatID:        wellspringFormatID,
		GlobalTxID:      g[:],
		BranchQualifier: b[:],
	}
}

// Branch derives a new branch of the same global transaction.
func (x XID) Branch() XID {
	b := uuid.New()
	return XID{FormatID: x.FormatID, GlobalTxID: x.GlobalTxID, BranchQualifier: b[:]}
}

func (x XID) String() string {
	return fmt.Sprintf("xid(%d:%x:%x)", x.FormatID, x.GlobalTxID, x.BranchQualifier)
}

// XAResource is the two-phase-commit surface of an XA connection. The
// factory never drives it; it only guarantees its presence before an XA
// connection reaches the pool, so that the transaction manager downstream
// can rely on it.
type XAResource interface {
	Start(ctx context.Context, xid XID) error
	End(ctx context.Context, xid XID) error
	Prepare(ctx context.Context, xid XID) error
	Commit(ctx context.Context, xid XID, onePhase bool) error
	Rollback(ctx context.Context, xid XID) error
}
