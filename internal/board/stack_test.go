package board

import "testing"

func TestCombineAndSplitAllRoundTrip(t *testing.T) {
	navy := NewSinglePiece(Navy, Red)
	air := NewSinglePiece(AirForce, Red)
	tank := NewSinglePiece(Tank, Red)

	stack, err := Combine([]*Piece{navy, air, tank})
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if stack.Type != Navy || len(stack.Carrying) != 2 {
		t.Fatalf("unexpected stack shape: %+v", stack)
	}

	partitions := SplitAll(stack)
	if len(partitions) == 0 {
		t.Fatal("SplitAll returned no partitions")
	}
	foundWhole := false
	foundAllSeparate := false
	for _, partition := range partitions {
		if len(partition) == 1 {
			foundWhole = true
		}
		if len(partition) == 3 {
			foundAllSeparate = true
		}
	}
	if !foundWhole {
		t.Error("expected the no-split partition (whole stack) among the results")
	}
	if !foundAllSeparate {
		t.Error("expected the fully-split partition among the results")
	}
}

func TestCombineRejectsIncompatiblePair(t *testing.T) {
	infantry := NewSinglePiece(Infantry, Red)
	tank := NewSinglePiece(Tank, Red)
	if _, err := Combine([]*Piece{infantry, tank}); err == nil {
		t.Error("Infantry cannot carry Tank; expected an error")
	}
}

func TestAddAndRemoveFromStack(t *testing.T) {
	tank := NewSinglePiece(Tank, Blue)
	inf := NewSinglePiece(Infantry, Blue)
	stack, err := AddToStack(tank, inf)
	if err != nil {
		t.Fatalf("AddToStack: %v", err)
	}
	removed, remainder, ok := RemoveFromStack(stack, Infantry)
	if !ok || removed.Type != Infantry {
		t.Fatalf("RemoveFromStack: ok=%v removed=%+v", ok, removed)
	}
	if remainder.IsStack() {
		t.Error("remainder should no longer be a stack")
	}
}

func TestGroupToStackRejectsIncompatibleGroup(t *testing.T) {
	a := NewSinglePiece(Infantry, Red)
	b := NewSinglePiece(Artillery, Red)
	if _, err := GroupToStack([]*Piece{a, b}); err == nil {
		t.Error("expected an error: neither Infantry nor Artillery can carry the other")
	}
}
