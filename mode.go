package wellspring

// Mode classifies the configured provider into the mechanism the factory
// uses to open connections. It is derived once at construction and is
// immutable afterwards.
type Mode int

const (
	ModeDriver Mode = iota
	ModeDataSource
	ModeXADataSource
)

func (m Mode) String() string {
	switch m {
	case ModeDriver:
		return "driver"
	case ModeDataSource:
		return "datasource"
	case ModeXADataSource:
		return "xa-datasource"
	default:
		return "unknown"
	}
}

// modeOf classifies a provider value. The XADataSource check runs before
// the DataSource check: a provider may implement both, and XA must win.
func modeOf(provider any) (Mode, error) {
	switch {
	case provider == nil:
		return ModeDriver, nil
	case is[XADataSource](provider):
		return ModeXADataSource, nil
	case is[DataSource](provider):
		return ModeDataSource, nil
	case is[Driver](provider):
		return ModeDriver, nil
	default:
		return 0, configErrf(nil, "unrecognized provider type %T", provider)
	}
}

func is[T any](v any) bool {
	_, ok := v.(T)
	return ok
}
