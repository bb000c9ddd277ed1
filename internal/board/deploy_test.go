package board

import "testing"

func newDeployFixture(t *testing.T) (*Position, Square) {
	t.Helper()
	pos := NewEmptyPosition()
	sq, _ := ParseSquare("c3")
	stack, err := Combine([]*Piece{
		NewSinglePiece(Navy, Red),
		NewSinglePiece(AirForce, Red),
		NewSinglePiece(Tank, Red),
	})
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	pos.Board.Put(stack, sq)
	pos.SideToMove = Red
	return pos, sq
}

func TestDeploySessionThreeStepCommit(t *testing.T) {
	pos, origin := newDeployFixture(t)
	if err := pos.StartDeploySession(origin); err != nil {
		t.Fatalf("StartDeploySession: %v", err)
	}

	air, _ := ParseSquare("c4")
	if _, err := pos.PlayDeploySubMove(Move{Kind: MoveDeployStep, From: origin, To: air, Piece: AirForce}); err != nil {
		t.Fatalf("deploy AirForce: %v", err)
	}
	tank, _ := ParseSquare("c6")
	if _, err := pos.PlayDeploySubMove(Move{Kind: MoveDeployStep, From: origin, To: tank, Piece: Tank}); err != nil {
		t.Fatalf("deploy Tank: %v", err)
	}
	if pos.Deploy == nil {
		t.Fatal("session should still be active: Navy remains at origin")
	}

	if _, err := pos.PlayDeploySubMove(Move{Kind: MoveDeployStep, From: origin, To: origin, Piece: Navy}); err == nil {
		t.Fatal("Navy cannot deploy to its own origin square")
	}

	rec, err := pos.CommitDeploySession()
	if err != nil {
		t.Fatalf("CommitDeploySession: %v", err)
	}
	_ = rec
	if pos.Deploy != nil {
		t.Error("session should be cleared after commit")
	}
	if p := pos.Get(air); p == nil || p.Type != AirForce {
		t.Errorf("AirForce not materialized at %s: %+v", air, p)
	}
	if p := pos.Get(tank); p == nil || p.Type != Tank {
		t.Errorf("Tank not materialized at %s: %+v", tank, p)
	}
	if p := pos.Get(origin); p == nil || p.Type != Navy || p.IsStack() {
		t.Errorf("Navy should remain alone at origin: %+v", p)
	}
}

func TestDeploySessionCancelLeavesBoardUntouched(t *testing.T) {
	pos, origin := newDeployFixture(t)
	before := pos.FEN()
	if err := pos.StartDeploySession(origin); err != nil {
		t.Fatalf("StartDeploySession: %v", err)
	}
	dest, _ := ParseSquare("a8")
	if _, err := pos.PlayDeploySubMove(Move{Kind: MoveDeployStep, From: origin, To: dest, Piece: AirForce}); err != nil {
		t.Fatalf("deploy sub-move: %v", err)
	}
	pos.CancelDeploySession()
	if pos.Deploy != nil {
		t.Fatal("session should be cleared")
	}
	if pos.FEN() != before {
		t.Errorf("cancel should leave the real board untouched:\n  got  %q\n  want %q", pos.FEN(), before)
	}
}

func TestDeploySessionRecombine(t *testing.T) {
	// Only Navy may carry a Tank, so this exercises recombine by moving
	// Navy itself out of the stack and folding Tank back into it.
	pos, origin := newDeployFixture(t)
	if err := pos.StartDeploySession(origin); err != nil {
		t.Fatalf("StartDeploySession: %v", err)
	}
	dest, _ := ParseSquare("b9")
	if _, err := pos.PlayDeploySubMove(Move{Kind: MoveDeployStep, From: origin, To: dest, Piece: Navy}); err != nil {
		t.Fatalf("deploy sub-move: %v", err)
	}
	if err := pos.Deploy.Recombine(dest, Tank); err != nil {
		t.Fatalf("Recombine: %v", err)
	}
	if _, err := pos.CommitDeploySession(); err != nil {
		t.Fatalf("CommitDeploySession: %v", err)
	}
	p := pos.Get(dest)
	if p == nil || p.Type != Navy || len(p.Carrying) != 1 || p.Carrying[0].Type != Tank {
		t.Errorf("expected Navy carrying Tank at %s, got %+v", dest, p)
	}
	if p := pos.Get(origin); p == nil || p.Type != AirForce || p.IsStack() {
		t.Errorf("expected lone AirForce left at origin, got %+v", p)
	}
}

func TestDeploySessionCapture(t *testing.T) {
	pos, origin := newDeployFixture(t)
	enemySq, _ := ParseSquare("c4")
	pos.Board.Put(NewSinglePiece(Infantry, Blue), enemySq)
	if err := pos.StartDeploySession(origin); err != nil {
		t.Fatalf("StartDeploySession: %v", err)
	}
	applied, err := pos.PlayDeploySubMove(Move{Kind: MoveDeployStep, From: origin, To: enemySq, Piece: AirForce})
	if err != nil {
		t.Fatalf("deploy sub-move: %v", err)
	}
	if applied.Captured != Infantry {
		t.Errorf("expected the sub-move to report a capture, got %+v", applied)
	}
}
