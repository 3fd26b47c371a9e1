package wellspring

import (
	"context"
	"strings"
	"testing"
)

// plainDataSource opens connections but accepts no properties at all.
type plainDataSource struct {
	conns []*fakeConn
}

func (s *plainDataSource) Connect(context.Context) (Conn, error) {
	conn := &fakeConn{}
	s.conns = append(s.conns, conn)
	return conn, nil
}

func TestBinderUnsupportedPropertyIsNonFatal(t *testing.T) {
	ds := newFakeDataSource("url", "timeout")
	listener := &captureListener{}

	f, err := New(Configuration{
		Provider:   ds,
		URL:        "fakedb://host/db",
		Properties: map[string]string{"timeout": "5", "bogus": "x"},
		AutoCommit: true,
	}, listener)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// The failed binding must not abort the rest of the batch.
	if got := ds.bound["timeout"]; got != "5" {
		t.Errorf("timeout property = %q, want %q", got, "5")
	}
	if got := ds.bound["url"]; got != "fakedb://host/db" {
		t.Errorf("url property = %q, want the configured URL", got)
	}
	if _, ok := ds.bound["bogus"]; ok {
		t.Error("unsupported property was bound")
	}

	warnings := listener.warnings()
	if len(warnings) != 2 {
		t.Fatalf("warnings = %d (%v), want 2", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], `"bogus"`) {
		t.Errorf("first warning %q should name the ignored property", warnings[0])
	}
	if !strings.Contains(warnings[1], "available properties") ||
		!strings.Contains(warnings[1], "timeout") {
		t.Errorf("second warning %q should list supported properties", warnings[1])
	}

	if _, err := f.CreateConnection(context.Background()); err != nil {
		t.Fatalf("CreateConnection after warnings: %v", err)
	}
}

func TestBinderAllPropertiesSupportedNoWarnings(t *testing.T) {
	ds := newFakeDataSource("url", "timeout")
	listener := &captureListener{}

	_, err := New(Configuration{
		Provider:   ds,
		URL:        "fakedb://host/db",
		Properties: map[string]string{"timeout": "5"},
		AutoCommit: true,
	}, listener)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if warnings := listener.warnings(); len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}

func TestBinderProviderWithoutSetter(t *testing.T) {
	ds := &plainDataSource{}
	listener := &captureListener{}

	_, err := New(Configuration{
		Provider:   ds,
		URL:        "fakedb://host/db",
		Properties: map[string]string{"timeout": "5"},
		AutoCommit: true,
	}, listener)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// One warning per attempted property (url, then timeout); no trailing
	// "available properties" warning since the provider cannot list any.
	warnings := listener.warnings()
	if len(warnings) != 2 {
		t.Fatalf("warnings = %d (%v), want 2", len(warnings), warnings)
	}
	for _, w := range warnings {
		if !strings.Contains(w, "ignoring property") {
			t.Errorf("warning %q should be an ignored-property notice", w)
		}
	}
}

func TestBinderEmptyURLNotBound(t *testing.T) {
	ds := newFakeDataSource("url")
	if _, err := New(Configuration{Provider: ds, AutoCommit: true}); err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := ds.bound["url"]; ok {
		t.Error("empty URL should not be bound")
	}
}
