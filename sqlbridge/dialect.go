package sqlbridge

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/joestump/wellspring"
)

// dialect captures what differs per vendor: how a connection URL plus a
// property map becomes the driver's DSN, and which session statements (if
// any) express auto-commit and isolation settings. An empty statement
// means the vendor has no session-level knob for it and the setting is a
// no-op.
type dialect struct {
	name       string
	driverName string
	// properties the DataSource accepts beyond url/user/password.
	extraProperties []string
	formatDSN       func(u *url.URL, props map[string]string) (string, error)
	autoCommitStmt  func(on bool) string
	isolationStmt   func(level wellspring.Isolation) string
}

var dialects = map[string]*dialect{
	"mysql":    mysqlDialect,
	"postgres": postgresDialect,
	"sqlite":   sqliteDialect,
}

var mysqlDialect = &dialect{
	name:       "mysql",
	driverName: "mysql",
	extraProperties: []string{
		"charset", "collation", "loc", "parseTime",
		"readTimeout", "timeout", "tls", "writeTimeout",
	},
	formatDSN: func(u *url.URL, props map[string]string) (string, error) {
		cfg := mysql.NewConfig()
		cfg.User = props["user"]
		cfg.Passwd = props["password"]
		cfg.Net = "tcp"
		cfg.Addr = u.Host
		cfg.DBName = strings.TrimPrefix(u.Path, "/")
		for name, value := range props {
			switch name {
			case "user", "password":
			default:
				if cfg.Params == nil {
					cfg.Params = make(map[string]string)
				}
				cfg.Params[name] = value
			}
		}
		return cfg.FormatDSN(), nil
	},
	autoCommitStmt: func(on bool) string {
		if on {
			return "SET autocommit=1"
		}
		return "SET autocommit=0"
	},
	isolationStmt: func(level wellspring.Isolation) string {
		name := isolationName(level)
		if name == "" {
			return ""
		}
		return "SET SESSION TRANSACTION ISOLATION LEVEL " + name
	},
}

var postgresDialect = &dialect{
	name:       "postgres",
	driverName: "postgres",
	extraProperties: []string{
		"application_name", "connect_timeout", "search_path", "sslmode",
	},
	formatDSN: func(u *url.URL, props map[string]string) (string, error) {
		out := *u
		out.Scheme = "postgres"
		user, password := props["user"], props["password"]
		if user != "" {
			if password != "" {
				out.User = url.UserPassword(user, password)
			} else {
				out.User = url.User(user)
			}
		}
		q := out.Query()
		for name, value := range props {
			switch name {
			case "user", "password":
			default:
				q.Set(name, value)
			}
		}
		out.RawQuery = q.Encode()
		return out.String(), nil
	},
	// Postgres has no session auto-commit switch: statements outside an
	// explicit transaction always auto-commit.
	autoCommitStmt: func(bool) string { return "" },
	isolationStmt: func(level wellspring.Isolation) string {
		name := isolationName(level)
		if name == "" {
			return ""
		}
		return "SET SESSION CHARACTERISTICS AS TRANSACTION ISOLATION LEVEL " + name
	},
}

var sqliteDialect = &dialect{
	name:            "sqlite",
	driverName:      "sqlite",
	extraProperties: []string{"_pragma", "_time_format", "_txlock", "cache", "mode"},
	formatDSN: func(u *url.URL, props map[string]string) (string, error) {
		out := *u
		q := out.Query()
		for name, value := range props {
			switch name {
			case "user", "password":
				// SQLite has no credential concept.
			default:
				q.Set(name, value)
			}
		}
		out.RawQuery = q.Encode()
		return out.String(), nil
	},
	autoCommitStmt: func(bool) string { return "" },
	isolationStmt: func(level wellspring.Isolation) string {
		// Serializable is the default; read-uncommitted is the only other
		// mode SQLite can express, via shared-cache pragma.
		switch level {
		case wellspring.IsolationReadUncommitted:
			return "PRAGMA read_uncommitted = 1"
		case wellspring.IsolationSerializable:
			return "PRAGMA read_uncommitted = 0"
		default:
			return ""
		}
	},
}

func isolationName(level wellspring.Isolation) string {
	switch level {
	case wellspring.IsolationReadUncommitted:
		return "READ UNCOMMITTED"
	case wellspring.IsolationReadCommitted:
		return "READ COMMITTED"
	case wellspring.IsolationRepeatableRead:
		return "REPEATABLE READ"
	case wellspring.IsolationSerializable:
		return "SERIALIZABLE"
	default:
		return ""
	}
}

func lookupDialect(name string) (*dialect, error) {
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q: must be mysql, postgres, or sqlite", name)
	}
	return d, nil
}
