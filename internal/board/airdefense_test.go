package board

import "testing"

func TestAirDefenseRecomputeAndDefended(t *testing.T) {
	pos := NewEmptyPosition()
	antiAirSq, _ := ParseSquare("f6")
	pos.Board.Put(NewSinglePiece(AntiAir, Blue), antiAirSq)

	m := NewAirDefenseMap()
	m.RecomputeAll(pos)

	adjacent, _ := ParseSquare("f7")
	far, _ := ParseSquare("f12")
	if !m.Defended(Blue, adjacent) {
		t.Error("a square within non-heroic AntiAir's level-1 orthogonal range should be defended")
	}
	if m.Defended(Blue, far) {
		t.Error("a far square outside level-1 range should not be defended")
	}
}

func TestAirDefenseLevelsScaleWithHeroicStatus(t *testing.T) {
	pos := NewEmptyPosition()
	sq, _ := ParseSquare("f6")
	antiAir := NewSinglePiece(AntiAir, Blue)
	antiAir.Heroic = true
	pos.Board.Put(antiAir, sq)

	m := NewAirDefenseMap()
	m.RecomputeAll(pos)

	levelTwoOnly, _ := ParseSquare("f9") // orthogonal distance 3, reachable only at level 2+
	if !m.Defended(Blue, levelTwoOnly) {
		t.Error("heroic AntiAir should reach orthogonal distance 3 (level 2)")
	}
}

func TestAirForceMoveSuppressedByAirDefense(t *testing.T) {
	pos := NewEmptyPosition()
	airSq, _ := ParseSquare("f1")
	antiAirSq, _ := ParseSquare("f6")
	dest, _ := ParseSquare("f5")
	pos.Board.Put(NewSinglePiece(AirForce, Red), airSq)
	pos.Board.Put(NewSinglePiece(AntiAir, Blue), antiAirSq)
	pos.SideToMove = Red

	ml := pos.GeneratePseudoLegalMoves(AnyFilter())
	for i := 0; i < ml.Len(); i++ {
		if ml.Get(i).To == dest {
			t.Errorf("AirForce should not be able to land at %s inside Blue's air-defense zone", dest)
		}
	}
}

func TestUpdateOnPlaceAndRemoveMatchRecompute(t *testing.T) {
	pos := NewEmptyPosition()
	sq, _ := ParseSquare("d5")
	p := NewSinglePiece(AntiAir, Red)

	incremental := NewAirDefenseMap()
	incremental.UpdateOnPlace(sq, p)

	pos.Board.Put(p, sq)
	recomputed := NewAirDefenseMap()
	recomputed.RecomputeAll(pos)

	probe, _ := ParseSquare("d6")
	if incremental.Defended(Red, probe) != recomputed.Defended(Red, probe) {
		t.Error("incremental UpdateOnPlace should agree with a full RecomputeAll")
	}

	pos.Board.Remove(sq)
	incremental.UpdateOnRemove(sq, p)
	recomputed.RecomputeAll(pos)
	if incremental.Defended(Red, probe) || recomputed.Defended(Red, probe) {
		t.Error("after removal neither map should still consider the square defended")
	}
}
