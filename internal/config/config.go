package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/joestump/wellspring"
	"github.com/joestump/wellspring/sqlbridge"
)

type Config struct {
	// Driver is the dialect name: mysql, postgres, or sqlite. Optional in
	// driver mode, where the URL scheme can resolve it.
	Driver string
	// Mode selects the provider mechanism: "driver" or "datasource".
	Mode       string
	URL        string
	Properties map[string]string
	User       string
	Password   string
	AutoCommit bool
	Isolation  string
	InitSQL    string
}

// Load reads config from environment (WELLSPRING_ prefix) and optional
// wellspring.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WELLSPRING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("wellspring")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("mode", "driver")
	v.SetDefault("autocommit", true)

	cfg := &Config{}
	cfg.Driver = v.GetString("driver")
	cfg.Mode = v.GetString("mode")
	cfg.URL = v.GetString("url")
	cfg.Properties = v.GetStringMapString("properties")
	cfg.User = v.GetString("user")
	cfg.Password = v.GetString("password")
	cfg.AutoCommit = v.GetBool("autocommit")
	cfg.Isolation = v.GetString("isolation")
	cfg.InitSQL = v.GetString("init_sql")

	if cfg.URL == "" {
		return nil, fmt.Errorf("WELLSPRING_URL is required")
	}
	switch cfg.Mode {
	case "driver":
	case "datasource":
		if cfg.Driver == "" {
			return nil, fmt.Errorf("WELLSPRING_DRIVER is required in datasource mode (mysql, postgres, sqlite)")
		}
	default:
		return nil, fmt.Errorf("WELLSPRING_MODE must be driver or datasource, got %q", cfg.Mode)
	}

	return cfg, nil
}

// Factory maps the loaded config onto a wellspring.Configuration, building
// the provider through sqlbridge.
func (c *Config) Factory() (wellspring.Configuration, error) {
	out := wellspring.Configuration{
		URL:        c.URL,
		Properties: c.Properties,
		AutoCommit: c.AutoCommit,
		InitSQL:    c.InitSQL,
	}

	if c.User != "" {
		out.Principal = wellspring.NamePrincipal(c.User)
	}
	if c.Password != "" {
		out.Credentials = []wellspring.Credential{wellspring.SimplePassword(c.Password)}
	}

	level, err := parseIsolation(c.Isolation)
	if err != nil {
		return wellspring.Configuration{}, err
	}
	out.Isolation = level

	switch c.Mode {
	case "datasource":
		driver := c.Driver
		out.ProviderFactory = func() (any, error) { return sqlbridge.NewDataSource(driver) }
	case "driver":
		if c.Driver != "" {
			d, err := sqlbridge.Driver(c.Driver)
			if err != nil {
				return wellspring.Configuration{}, err
			}
			out.Provider = d
		}
		// Otherwise the factory resolves a driver from the URL scheme.
	}

	return out, nil
}

func parseIsolation(name string) (wellspring.Isolation, error) {
	switch name {
	case "":
		return wellspring.IsolationUndefined, nil
	case "read-uncommitted":
		return wellspring.IsolationReadUncommitted, nil
	case "read-committed":
		return wellspring.IsolationReadCommitted, nil
	case "repeatable-read":
		return wellspring.IsolationRepeatableRead, nil
	case "serializable":
		return wellspring.IsolationSerializable, nil
	default:
		return wellspring.IsolationUndefined, fmt.Errorf("invalid WELLSPRING_ISOLATION %q", name)
	}
}
