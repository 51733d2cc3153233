package langs

import "testing"

func TestChoicesOrderAndSize(t *testing.T) {
	c := Choices()
	if len(c) != 10 {
		t.Fatalf("expected 10 languages, got %d", len(c))
	}
	if c[0].Code != "hi" || c[9].Code != "en" {
		t.Fatalf("registry order changed: first %s last %s", c[0].Code, c[9].Code)
	}
}

func TestLookupRoundTrip(t *testing.T) {
	for _, c := range Choices() {
		code, ok := Code(c.Name)
		if !ok || code != c.Code {
			t.Fatalf("Code(%q) = %q, %v", c.Name, code, ok)
		}
		name, ok := Name(c.Code)
		if !ok || name != c.Name {
			t.Fatalf("Name(%q) = %q, %v", c.Code, name, ok)
		}
	}
}

func TestUnknownLookups(t *testing.T) {
	if _, ok := Code("Klingon"); ok {
		t.Fatalf("unexpected hit for unknown name")
	}
	if Supported("xx") {
		t.Fatalf("unexpected support for unknown code")
	}
	if !Supported(Pivot) {
		t.Fatalf("pivot language must be in the registry")
	}
}
