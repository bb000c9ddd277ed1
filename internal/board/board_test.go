package board

import "testing"

func TestPutRejectsSecondCommander(t *testing.T) {
	b := NewBoard()
	sq1, _ := ParseSquare("f1")
	sq2, _ := ParseSquare("f2")
	if !b.Put(NewSinglePiece(Commander, Red), sq1) {
		t.Fatal("first commander placement should succeed")
	}
	if b.Put(NewSinglePiece(Commander, Red), sq2) {
		t.Error("a second Red commander at a different square should be rejected")
	}
	if !b.Put(NewSinglePiece(Commander, Red), sq1) {
		t.Error("replacing the commander at the same square should succeed")
	}
}

func TestPutRejectsTerrainViolation(t *testing.T) {
	b := NewBoard()
	pureWater, _ := ParseSquare("a1")
	pureLand, _ := ParseSquare("k1")
	if b.Put(NewSinglePiece(Tank, Red), pureWater) {
		t.Error("a land piece should not be placeable on pure water")
	}
	if b.Put(NewSinglePiece(Navy, Red), pureLand) {
		t.Error("Navy should not be placeable on pure land")
	}
	mixed, _ := ParseSquare("c1")
	if !b.Put(NewSinglePiece(Tank, Red), mixed) {
		t.Error("the mixed file should accept a land piece")
	}
}

func TestRemoveAndOccupancy(t *testing.T) {
	b := NewBoard()
	sq, _ := ParseSquare("d4")
	b.Put(NewSinglePiece(Infantry, Blue), sq)
	if b.Occupied(Blue).IsSet(sq) != true {
		t.Fatal("occupancy bitset should reflect the placed piece")
	}
	removed := b.Remove(sq)
	if removed == nil || removed.Type != Infantry {
		t.Fatalf("Remove returned %+v", removed)
	}
	if b.Occupied(Blue).IsSet(sq) {
		t.Error("occupancy should clear after Remove")
	}
}

func TestBoardClone(t *testing.T) {
	b := NewBoard()
	sq, _ := ParseSquare("e5")
	b.Put(NewSinglePiece(Tank, Red), sq)
	clone := b.Clone()
	clone.Remove(sq)
	if b.IsEmpty(sq) {
		t.Error("mutating the clone should not affect the original board")
	}
}
