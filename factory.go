// Package wellspring turns a declarative data-source configuration into
// live, initialized database connections. It normalizes three provider
// mechanisms — raw driver, data source, and XA-capable data source — behind
// one creation contract, and leaves lifecycle management (pooling, reuse,
// validation, retry) to the caller.
package wellspring

import (
	"context"
)

// Configuration describes the provider and the one-time initialization
// applied to every connection. It is read once at construction; the
// factory never mutates it and never observes later changes.
type Configuration struct {
	// Provider is a Driver, DataSource, or XADataSource instance. Nil
	// selects driver mode with URL-based driver resolution.
	Provider any

	// ProviderFactory, when set, is called once to build the provider.
	// A failure here is fatal, unlike property binding.
	ProviderFactory func() (any, error)

	// URL is the connection URL. In driver mode it is passed to the driver
	// at connect time; otherwise it is bound as the "url" property.
	URL string

	// Properties are provider-specific settings, bound at construction for
	// (XA) data sources and passed at connect time for drivers.
	Properties map[string]string

	Principal   Principal
	Credentials []Credential

	// AutoCommit is applied to every created connection.
	AutoCommit bool

	// Isolation is applied only when not IsolationUndefined.
	Isolation Isolation

	// InitSQL, when non-empty, runs once on every created connection
	// before it is handed over.
	InitSQL string
}

// Factory creates connections for a pool. Construction happens exactly
// once, single-threaded; afterwards CreateConnection is safe for
// concurrent use, since each call only reads the immutable configuration
// and the provider handle chosen at construction.
type Factory struct {
	cfg       Configuration
	listeners []Listener
	props     map[string]string
	mode      Mode

	// Exactly one of these is set, matching mode.
	driver       Driver
	dataSource   DataSource
	xaDataSource XADataSource
}

// New builds a factory from cfg. It resolves security credentials into the
// shared property set, classifies the provider, and configures it. Any
// error here is a *ConfigurationError: there is no partially constructed
// factory.
func New(cfg Configuration, listeners ...Listener) (*Factory, error) {
	f := &Factory{
		cfg:       cfg,
		listeners: listeners,
		props:     make(map[string]string, len(cfg.Properties)+2),
	}
	for name, value := range cfg.Properties {
		f.props[name] = value
	}

	if err := resolveSecurity(cfg.Principal, cfg.Credentials, f.props); err != nil {
		return nil, err
	}

	provider, err := instantiate(cfg)
	if err != nil {
		return nil, err
	}

	f.mode, err = modeOf(provider)
	if err != nil {
		return nil, err
	}

	switch f.mode {
	case ModeXADataSource:
		f.xaDataSource = provider.(XADataSource)
		f.applyProperties(f.xaDataSource)
	case ModeDataSource:
		f.dataSource = provider.(DataSource)
		f.applyProperties(f.dataSource)
	case ModeDriver:
		if provider == nil {
			f.driver, err = lookupDriver(cfg.URL)
			if err != nil {
				return nil, err
			}
		} else {
			f.driver = provider.(Driver)
		}
		// Driver mode binds nothing here: properties travel with every
		// connect call instead.
	}
	return f, nil
}

func instantiate(cfg Configuration) (any, error) {
	if cfg.ProviderFactory == nil {
		return cfg.Provider, nil
	}
	provider, err := cfg.ProviderFactory()
	if err != nil {
		return nil, configErrf(err, "instantiate provider")
	}
	return provider, nil
}

// Mode reports the provider mechanism chosen at construction.
func (f *Factory) Mode() Mode { return f.mode }

// CreateConnection opens, initializes, and returns one new connection.
// Each call is independent; a failure aborts only that call and the
// factory stays usable. Ownership of the returned handle transfers to the
// caller.
func (f *Factory) CreateConnection(ctx context.Context) (*Handle, error) {
	switch f.mode {
	case ModeDriver:
		conn, err := f.driver.Connect(ctx, f.cfg.URL, f.props)
		if err != nil {
			return nil, &ProtocolError{Op: "driver connect", Err: err}
		}
		return f.wrap(ctx, conn, nil)
	case ModeDataSource:
		conn, err := f.dataSource.Connect(ctx)
		if err != nil {
			return nil, &ProtocolError{Op: "datasource connect", Err: err}
		}
		return f.wrap(ctx, conn, nil)
	case ModeXADataSource:
		xaConn, err := f.xaDataSource.XAConnect(ctx)
		if err != nil {
			return nil, &ProtocolError{Op: "xa connect", Err: err}
		}
		res := xaConn.XAResource()
		if res == nil {
			// Without this check an XA-incapable connection would be
			// silently treated as non-transactional downstream.
			_ = xaConn.Close()
			return nil, &ProtocolError{Op: "xa connect", Err: errNilXAResource}
		}
		return f.wrap(ctx, xaConn, res)
	default:
		// Unreachable by construction.
		return nil, &ProtocolError{Op: "create", Err: errUnknownMode}
	}
}

// wrap runs post-setup on a fresh connection and boxes it into the uniform
// handle shape. On setup failure the connection is closed, never returned.
func (f *Factory) wrap(ctx context.Context, conn Conn, res XAResource) (*Handle, error) {
	if err := f.connectionSetup(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Handle{conn: conn, xa: res}, nil
}

// connectionSetup applies the configured auto-commit mode, isolation
// level, and initialization statement.
func (f *Factory) connectionSetup(ctx context.Context, conn Conn) error {
	if err := conn.SetAutoCommit(ctx, f.cfg.AutoCommit); err != nil {
		return err
	}
	if f.cfg.Isolation != IsolationUndefined {
		if err := conn.SetIsolation(ctx, f.cfg.Isolation); err != nil {
			return err
		}
	}
	if f.cfg.InitSQL != "" {
		if err := execInitSQL(ctx, conn, f.cfg.InitSQL); err != nil {
			return err
		}
	}
	return nil
}

// execInitSQL runs one statement through a scoped acquisition: the
// statement is released on every exit path, including a failed Exec.
func execInitSQL(ctx context.Context, conn Conn, query string) error {
	stmt, err := conn.Prepare(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	return stmt.Exec(ctx)
}
