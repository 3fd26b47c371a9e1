package wellspring

const (
	urlPropertyName      = "url"
	userPropertyName     = "user"
	passwordPropertyName = "password"
)

// Principal identifies the authentication identity presented to the
// provider. The variant set is closed; configuring a Principal the factory
// does not recognize is a construction-time error.
type Principal interface {
	principal()
}

// NamePrincipal is a plain named identity. It binds the "user" provider
// property.
type NamePrincipal string

func (NamePrincipal) principal() {}

// Name returns the identity string.
func (p NamePrincipal) Name() string { return string(p) }

// Credential holds secret material presented alongside a Principal. Like
// Principal, the variant set is closed.
type Credential interface {
	credential()
}

// SimplePassword is a plain-text password credential. It binds the
// "password" provider property.
type SimplePassword string

func (SimplePassword) credential() {}

// Word returns the password text.
func (c SimplePassword) Word() string { return string(c) }

// resolveSecurity merges the configured principal and credentials into the
// shared provider properties. A nil principal is simply skipped; an
// unrecognized principal or credential type fails closed.
func resolveSecurity(principal Principal, credentials []Credential, props map[string]string) error {
	switch p := principal.(type) {
	case nil:
		// No identity configured. Not an error.
	case NamePrincipal:
		props[userPropertyName] = p.Name()

	// Add other principal types here.

	default:
		return configErrf(nil, "unknown principal type %T", principal)
	}

	for _, credential := range credentials {
		switch c := credential.(type) {
		case SimplePassword:
			props[passwordPropertyName] = c.Word()

		// Add other credential types here.

		default:
			return configErrf(nil, "unknown credential type %T", credential)
		}
	}
	return nil
}
