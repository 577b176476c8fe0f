package utils

import "testing"

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	a := g.Generate()
	b := g.Generate()

	if a == b {
		t.Fatal("expected distinct identifiers")
	}
	if a.Version() != 7 {
		t.Errorf("expected version 7, got %d", a.Version())
	}
}

func TestGenerate(t *testing.T) {
	first := Generate()
	second := Generate()

	if first == second {
		t.Fatal("expected distinct identifiers")
	}
	if first.Version() != 7 {
		t.Errorf("expected version 7, got %d", first.Version())
	}
	// v7 identifiers sort by creation time
	if second.String() < first.String() {
		t.Errorf("expected %s to sort after %s", second, first)
	}
}
