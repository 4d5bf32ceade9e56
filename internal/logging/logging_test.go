package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-logr/stdr"
)

func TestNewWritesPrefix(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Info("loaded", "files", Paths{"a.hpp", "b.hpp"})
	out := buf.String()
	if !strings.HasPrefix(out, "cppdoc ") {
		t.Errorf("missing prefix: %q", out)
	}
	if !strings.Contains(out, `"loaded"`) || !strings.Contains(out, "a.hpp, b.hpp") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestVerbosity(t *testing.T) {
	prev := stdr.SetVerbosity(0)
	defer stdr.SetVerbosity(prev)

	var buf bytes.Buffer
	l := New(&buf)
	l.V(2).Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("V(2) logged at verbosity 0: %q", buf.String())
	}
	Init(2)
	l.V(2).Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("V(2) not logged at verbosity 2: %q", buf.String())
	}
}
