package board

import "testing"

func TestFlyingGeneralExposure(t *testing.T) {
	pos := NewEmptyPosition()
	redCmd, _ := ParseSquare("f1")
	blueCmd, _ := ParseSquare("f12")
	pos.Board.Put(NewSinglePiece(Commander, Red), redCmd)
	pos.CommanderSq[Red] = redCmd
	pos.Board.Put(NewSinglePiece(Commander, Blue), blueCmd)
	pos.CommanderSq[Blue] = blueCmd

	if !pos.IsCommanderExposed(Red) {
		t.Error("two commanders facing each other on a clear file should be exposed")
	}

	blocker, _ := ParseSquare("f6")
	pos.Board.Put(NewSinglePiece(Infantry, Red), blocker)
	if pos.IsCommanderExposed(Red) {
		t.Error("a blocker between the commanders should clear the exposure")
	}
}

func TestCommanderAttackedBySimpleThreat(t *testing.T) {
	pos := NewEmptyPosition()
	redCmd, _ := ParseSquare("f1")
	blueCmd, _ := ParseSquare("k12")
	attacker, _ := ParseSquare("d2")
	pos.Board.Put(NewSinglePiece(Commander, Red), redCmd)
	pos.CommanderSq[Red] = redCmd
	pos.Board.Put(NewSinglePiece(Commander, Blue), blueCmd)
	pos.CommanderSq[Blue] = blueCmd
	pos.Board.Put(NewSinglePiece(Infantry, Blue), attacker)

	if pos.IsCommanderAttacked(Red) {
		t.Error("infantry at d2 does not threaten f1")
	}

	adjacent, _ := ParseSquare("e1")
	pos.Board.Remove(attacker)
	pos.Board.Put(NewSinglePiece(Infantry, Blue), adjacent)
	if !pos.IsCommanderAttacked(Red) {
		t.Error("infantry orthogonally adjacent to the commander should threaten it")
	}
}

func TestGetAttackersListsEverySource(t *testing.T) {
	pos := NewEmptyPosition()
	target, _ := ParseSquare("e5")
	a1, _ := ParseSquare("e4")
	a2, _ := ParseSquare("d5")
	pos.Board.Put(NewSinglePiece(Infantry, Blue), target)
	pos.Board.Put(NewSinglePiece(Infantry, Red), a1)
	pos.Board.Put(NewSinglePiece(Infantry, Red), a2)

	attackers := pos.GetAttackers(target, Red)
	if len(attackers) != 2 {
		t.Fatalf("expected 2 attackers, got %d: %v", len(attackers), attackers)
	}
}

func TestDrawByFiftyMoves(t *testing.T) {
	pos := NewEmptyPosition()
	pos.HalfMoveClock = 100
	if !pos.IsDrawByFiftyMoves() {
		t.Error("100 half-moves without progress should trigger the fifty-move draw")
	}
}

func TestThreefoldRepetition(t *testing.T) {
	pos := NewEmptyPosition()
	key := pos.Fingerprint()
	pos.PositionCounts[key] = 3
	if !pos.IsThreefoldRepetition() {
		t.Error("a fingerprint recorded 3 times should trigger threefold repetition")
	}
}
