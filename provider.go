package wellspring

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"sync"
)

// Isolation is a transaction isolation level. The zero value means "not
// configured": the factory leaves the provider default untouched.
type Isolation int

const (
	IsolationUndefined Isolation = iota
	IsolationReadUncommitted
	IsolationReadCommitted
	IsolationRepeatableRead
	IsolationSerializable
)

func (i Isolation) String() string {
	switch i {
	case IsolationUndefined:
		return "undefined"
	case IsolationReadUncommitted:
		return "read-uncommitted"
	case IsolationReadCommitted:
		return "read-committed"
	case IsolationRepeatableRead:
		return "repeatable-read"
	case IsolationSerializable:
		return "serializable"
	default:
		return fmt.Sprintf("isolation(%d)", int(i))
	}
}

// Driver opens connections on demand from a URL and a property set. It is
// the counterpart of a raw database driver: it holds no configuration of
// its own, properties travel with every connect call.
type Driver interface {
	Connect(ctx context.Context, url string, props map[string]string) (Conn, error)
}

// DataSource opens connections from configuration applied once, at factory
// construction, through property binding.
type DataSource interface {
	Connect(ctx context.Context) (Conn, error)
}

// XADataSource opens XA-capable connections usable in distributed
// transactions.
type XADataSource interface {
	XAConnect(ctx context.Context) (XAConn, error)
}

// Conn is the surface the factory needs to initialize a fresh connection
// before handing it to the pool. Providers return richer concrete types;
// the factory only drives this subset.
type Conn interface {
	SetAutoCommit(ctx context.Context, on bool) error
	SetIsolation(ctx context.Context, level Isolation) error
	Prepare(ctx context.Context, query string) (Stmt, error)
	Close() error
}

// Stmt is a single prepared statement. The factory always releases it with
// Close, on every exit path.
type Stmt interface {
	Exec(ctx context.Context) error
	Close() error
}

// XAConn is a connection that additionally exposes a transactional
// resource. XAResource must not return nil; the factory rejects XA
// connections that report no resource.
type XAConn interface {
	Conn
	XAResource() XAResource
}

// PropertySetter is implemented by providers that accept named
// configuration properties. SetProperty returns an error wrapping
// ErrPropertyNotSupported for names the provider does not understand;
// PropertyNames lists the names it does, for diagnostics.
type PropertySetter interface {
	SetProperty(name, value string) error
	PropertyNames() []string
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// RegisterDriver makes a driver available for URL-based resolution under
// the given scheme ("mysql", "postgres", ...). It follows the
// database/sql.Register contract: it panics on a nil driver or a duplicate
// scheme, and is intended to be called from provider package init
// functions.
func RegisterDriver(scheme string, driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if driver == nil {
		panic("wellspring: RegisterDriver driver is nil")
	}
	if _, dup := drivers[scheme]; dup {
		panic("wellspring: RegisterDriver called twice for scheme " + scheme)
	}
	drivers[scheme] = driver
}

// Drivers returns a sorted list of registered driver schemes.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	list := make([]string, 0, len(drivers))
	for scheme := range drivers {
		list = append(list, scheme)
	}
	sort.Strings(list)
	return list
}

// lookupDriver resolves a registered driver from the URL scheme. It is the
// driver-mode fallback when the configuration names no provider.
func lookupDriver(rawURL string) (Driver, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, configErrf(err, "parse URL %q", rawURL)
	}
	driversMu.RLock()
	defer driversMu.RUnlock()
	if d, ok := drivers[u.Scheme]; ok {
		return d, nil
	}
	return nil, configErrf(ErrNoDriver, "%q", rawURL)
}
