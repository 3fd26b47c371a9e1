// Package sqlbridge adapts drivers registered with database/sql into
// wellspring providers. It ships dialects for the three supported
// backends: mysql (go-sql-driver), postgres (lib/pq), and sqlite
// (modernc.org, CGO-free).
package sqlbridge

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"net/url"
	"sort"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/joestump/wellspring"
)

// Driver returns a wellspring.Driver for the named dialect. Connection
// properties travel with every connect call and are folded into the DSN.
func Driver(name string) (wellspring.Driver, error) {
	d, err := lookupDialect(name)
	if err != nil {
		return nil, err
	}
	drv, err := sqlDriver(d.driverName)
	if err != nil {
		return nil, err
	}
	return &bridgeDriver{dialect: d, drv: drv}, nil
}

// NewDataSource returns a pre-configurable DataSource for the named
// dialect. Configure it through SetProperty (or let a factory bind its
// configured URL and properties); Connect then reuses the resolved DSN.
func NewDataSource(name string) (*DataSource, error) {
	d, err := lookupDialect(name)
	if err != nil {
		return nil, err
	}
	drv, err := sqlDriver(d.driverName)
	if err != nil {
		return nil, err
	}
	return &DataSource{dialect: d, drv: drv, props: make(map[string]string)}, nil
}

// sqlDriver digs the driver implementation out of database/sql by name.
// sql.Open does not touch the network, so this is cheap.
func sqlDriver(name string) (driver.Driver, error) {
	db, err := sql.Open(name, "")
	if err != nil {
		return nil, fmt.Errorf("resolve %s driver: %w", name, err)
	}
	defer db.Close()
	return db.Driver(), nil
}

type bridgeDriver struct {
	dialect *dialect
	drv     driver.Driver
}

func (b *bridgeDriver) Connect(ctx context.Context, rawURL string, props map[string]string) (wellspring.Conn, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL %q: %w", rawURL, err)
	}
	dsn, err := b.dialect.formatDSN(u, props)
	if err != nil {
		return nil, err
	}
	return open(ctx, b.drv, b.dialect, dsn)
}

// DataSource adapts a database/sql driver into a wellspring.DataSource.
// It is configured once through property binding and then opens
// connections from the resolved DSN on every Connect.
type DataSource struct {
	dialect *dialect
	drv     driver.Driver
	url     string
	props   map[string]string
}

var (
	_ wellspring.DataSource     = (*DataSource)(nil)
	_ wellspring.PropertySetter = (*DataSource)(nil)
)

// SetProperty accepts "url", "user", "password", and the dialect's own
// option names. Anything else reports wellspring.ErrPropertyNotSupported.
func (s *DataSource) SetProperty(name, value string) error {
	if name == "url" {
		s.url = value
		return nil
	}
	for _, known := range s.propertyNames() {
		if name == known {
			s.props[name] = value
			return nil
		}
	}
	return fmt.Errorf("%w: %s dialect has no property %q", wellspring.ErrPropertyNotSupported, s.dialect.name, name)
}

// PropertyNames lists every property SetProperty accepts, sorted.
func (s *DataSource) PropertyNames() []string {
	names := append([]string{"url"}, s.propertyNames()...)
	sort.Strings(names)
	return names
}

func (s *DataSource) propertyNames() []string {
	return append([]string{"user", "password"}, s.dialect.extraProperties...)
}

func (s *DataSource) Connect(ctx context.Context) (wellspring.Conn, error) {
	if s.url == "" {
		return nil, fmt.Errorf("%s datasource: no URL configured", s.dialect.name)
	}
	u, err := url.Parse(s.url)
	if err != nil {
		return nil, fmt.Errorf("parse URL %q: %w", s.url, err)
	}
	dsn, err := s.dialect.formatDSN(u, s.props)
	if err != nil {
		return nil, err
	}
	return open(ctx, s.drv, s.dialect, dsn)
}

func open(ctx context.Context, drv driver.Driver, d *dialect, dsn string) (wellspring.Conn, error) {
	if dc, ok := drv.(driver.DriverContext); ok {
		connector, err := dc.OpenConnector(dsn)
		if err != nil {
			return nil, err
		}
		conn, err := connector.Connect(ctx)
		if err != nil {
			return nil, err
		}
		return &bridgeConn{raw: conn, dialect: d}, nil
	}
	conn, err := drv.Open(dsn)
	if err != nil {
		return nil, err
	}
	return &bridgeConn{raw: conn, dialect: d}, nil
}
