package wellspring

import (
	"fmt"
	"sort"
	"strings"
)

// bindProperty sets a single named property on a provider. Providers that
// do not implement PropertySetter support no properties at all.
func bindProperty(target any, name, value string) error {
	setter, ok := target.(PropertySetter)
	if !ok {
		return fmt.Errorf("%w: %T accepts no properties", ErrPropertyNotSupported, target)
	}
	return setter.SetProperty(name, value)
}

// applyProperties binds the URL first, then the bulk property set. Every
// failed binding is non-fatal: it becomes one warning per property, plus a
// trailing warning listing the names the provider does support, to aid
// diagnosis.
func (f *Factory) applyProperties(target any) {
	if f.cfg.URL != "" {
		if err := bindProperty(target, urlPropertyName, f.cfg.URL); err != nil {
			f.warnf("ignoring property %q: %v", urlPropertyName, err)
		}
	}

	names := make([]string, 0, len(f.props))
	for name := range f.props {
		names = append(names, name)
	}
	sort.Strings(names)

	ignored := false
	for _, name := range names {
		if err := bindProperty(target, name, f.props[name]); err != nil {
			f.warnf("ignoring property %q: %v", name, err)
			ignored = true
		}
	}
	if ignored {
		if setter, ok := target.(PropertySetter); ok {
			f.warnf("available properties [%s]", strings.Join(setter.PropertyNames(), " "))
		}
	}
}

func (f *Factory) warnf(format string, args ...any) {
	fireWarning(f.listeners, format, args...)
}
