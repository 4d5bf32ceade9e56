package directive

import (
	"testing"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}

	r.Register("todo", func(st *State, cmd Command) {
		st.Section(Directive{Kind: Note, Name: "todo"})
	})

	if r.Len() != 1 {
		t.Errorf("expected 1 command, got %d", r.Len())
	}
	if _, ok := r.Lookup("todo"); !ok {
		t.Errorf("expected 'todo' to be registered")
	}
	if _, ok := r.Lookup("param"); ok {
		t.Errorf("empty registry should not know 'param'")
	}
}

func TestRegistry_Alias(t *testing.T) {
	r := DefaultRegistry()

	if err := r.Alias("retval", "returns"); err != nil {
		t.Fatalf("alias: %v", err)
	}
	if err := r.Alias("x", "no-such-command"); err == nil {
		t.Errorf("expected error for alias of unknown command")
	}

	doc := Parse("Get it.\n@retval the value", Options{Registry: r})
	ret, ok := doc.Find(Returns)
	if !ok {
		t.Fatalf("alias did not produce a Returns section: %+v", doc.Items)
	}
	if got := Markdown(ret.Children); got != "the value" {
		t.Errorf("returns content = %q", got)
	}
}

func TestRegistry_Names(t *testing.T) {
	r := DefaultRegistry()
	names := r.Names()
	if len(names) != r.Len() {
		t.Fatalf("Names() = %d entries, Len() = %d", len(names), r.Len())
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %q >= %q", names[i-1], names[i])
		}
	}
	for _, want := range []string{"c", "copybrief", "param", "tparam", "code", "addtogroup", "sa"} {
		if _, ok := r.Lookup(want); !ok {
			t.Errorf("default registry lacks %q", want)
		}
	}
}

func TestRegistry_ConcurrentLookup(t *testing.T) {
	r := DefaultRegistry()
	done := make(chan struct{})
	for range 4 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 100 {
				r.Lookup("param")
				r.Names()
			}
		}()
	}
	r.Register("extra", dropLine)
	for range 4 {
		<-done
	}
}
