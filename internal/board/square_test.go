package board

import "testing"

func TestSquareRoundTrip(t *testing.T) {
	cases := []string{"a1", "k12", "c6", "f7"}
	for _, s := range cases {
		sq, err := ParseSquare(s)
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", s, err)
		}
		if got := sq.String(); got != s {
			t.Errorf("round-trip %q: got %q", s, got)
		}
	}
}

func TestSquareInvalid(t *testing.T) {
	cases := []string{"l1", "a13", "a0", "z9"}
	for _, s := range cases {
		if _, err := ParseSquare(s); err == nil {
			t.Errorf("ParseSquare(%q): expected error", s)
		}
	}
}

func TestSquareDelta(t *testing.T) {
	sq, _ := ParseSquare("a1")
	if _, ok := sq.Delta(-1, 0); ok {
		t.Error("Delta off the west edge should fail")
	}
	if next, ok := sq.Delta(1, 1); !ok || next.String() != "b2" {
		t.Errorf("Delta(1,1) from a1: got %v, %v", next, ok)
	}
}
