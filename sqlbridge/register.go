package sqlbridge

import "github.com/joestump/wellspring"

// URL schemes resolve to bridge drivers so that driver-mode factories with
// no explicit provider can find one from the configured URL alone.
func init() {
	wellspring.RegisterDriver("mysql", mustDriver("mysql"))

	pg := mustDriver("postgres")
	wellspring.RegisterDriver("postgres", pg)
	wellspring.RegisterDriver("postgresql", pg)

	lite := mustDriver("sqlite")
	wellspring.RegisterDriver("sqlite", lite)
	// modernc sqlite DSNs are commonly file: URIs.
	wellspring.RegisterDriver("file", lite)
}

func mustDriver(name string) wellspring.Driver {
	d, err := Driver(name)
	if err != nil {
		panic("sqlbridge: " + err.Error())
	}
	return d
}
