package board

import "testing"

func TestNavyRangeAsymmetry(t *testing.T) {
	pos := NewEmptyPosition()
	navySq, _ := ParseSquare("a1")
	waterTarget, _ := ParseSquare("a5") // distance 4: within water range, outside land range
	pos.Board.Put(NewSinglePiece(Navy, Red), navySq)
	pos.Board.Put(NewSinglePiece(Navy, Blue), waterTarget)

	moves := pos.GenerateDestinations(navySq, Navy, Red, false)
	found := false
	for _, m := range moves {
		if m.To == waterTarget && m.Kind == MoveCaptureReplace {
			found = true
		}
	}
	if !found {
		t.Error("Navy should capture-replace an enemy standing on water at range 4")
	}
}

func TestNavyStayCaptureOnLand(t *testing.T) {
	pos := NewEmptyPosition()
	navySq, _ := ParseSquare("c1")
	landTarget, _ := ParseSquare("f1") // distance 3 on land, within land range (non-heroic 3)
	pos.Board.Put(NewSinglePiece(Navy, Red), navySq)
	pos.Board.Put(NewSinglePiece(Infantry, Blue), landTarget)

	moves := pos.GenerateDestinations(navySq, Navy, Red, false)
	found := false
	for _, m := range moves {
		if m.To == landTarget && m.Kind == MoveStayCapture {
			found = true
		}
	}
	if !found {
		t.Error("Navy should stay-capture an enemy standing on land within land range")
	}
}

func TestNavyMixedFileTargetGetsOnlyCaptureReplace(t *testing.T) {
	pos := NewEmptyPosition()
	navySq, _ := ParseSquare("b1")
	mixedTarget, _ := ParseSquare("c1") // file c: mixed terrain, within both water and land range
	pos.Board.Put(NewSinglePiece(Navy, Red), navySq)
	pos.Board.Put(NewSinglePiece(Infantry, Blue), mixedTarget)

	moves := pos.GenerateDestinations(navySq, Navy, Red, false)
	var hits []Move
	for _, m := range moves {
		if m.To == mixedTarget {
			hits = append(hits, m)
		}
	}
	if len(hits) != 1 {
		t.Fatalf("expected exactly one move onto the mixed-file target, got %d: %+v", len(hits), hits)
	}
	if hits[0].Kind != MoveCaptureReplace {
		t.Errorf("expected a capture-replace onto the mixed-file target, got %s", hits[0].Kind)
	}
}

func TestArtilleryStayCaptureAndBlocking(t *testing.T) {
	pos := NewEmptyPosition()
	artSq, _ := ParseSquare("d1")
	target, _ := ParseSquare("d3") // clear path, range 2 <= 3
	friendly, _ := ParseSquare("e1")
	pos.Board.Put(NewSinglePiece(Artillery, Red), artSq)
	pos.Board.Put(NewSinglePiece(Infantry, Blue), target)
	pos.Board.Put(NewSinglePiece(Infantry, Red), friendly)

	moves := pos.GenerateDestinations(artSq, Artillery, Red, false)
	found := false
	for _, m := range moves {
		if m.To == target {
			if m.Kind != MoveStayCapture {
				t.Errorf("expected a stay-capture at %s, got %s", target, m.Kind)
			}
			found = true
		}
		if m.To == friendly {
			t.Error("artillery should never generate a move onto a friendly-occupied square")
		}
	}
	if !found {
		t.Error("artillery should stay-capture the enemy at clear-path range 2")
	}
}

func TestFlyingGeneralCaptureAcrossClearFile(t *testing.T) {
	pos := NewEmptyPosition()
	redCmd, _ := ParseSquare("f1")
	blueCmd, _ := ParseSquare("f12")
	pos.Board.Put(NewSinglePiece(Commander, Red), redCmd)
	pos.CommanderSq[Red] = redCmd
	pos.Board.Put(NewSinglePiece(Commander, Blue), blueCmd)
	pos.CommanderSq[Blue] = blueCmd

	moves := pos.commanderDestinations(redCmd, Red)
	found := false
	for _, m := range moves {
		if m.To == blueCmd && m.Kind == MoveCaptureReplace {
			found = true
		}
	}
	if !found {
		t.Error("commander should be able to capture across a clear file (flying general)")
	}
}

func TestAirForceSuicideCaptureOnNavy(t *testing.T) {
	pos := NewEmptyPosition()
	airSq, _ := ParseSquare("d4")
	navySq, _ := ParseSquare("a4")
	pos.Board.Put(NewSinglePiece(AirForce, Red), airSq)
	pos.Board.Put(NewSinglePiece(Navy, Blue), navySq)

	moves := pos.GenerateDestinations(airSq, AirForce, Red, false)
	found := false
	for _, m := range moves {
		if m.To == navySq {
			if m.Kind != MoveSuicideCapture {
				t.Errorf("capturing Navy should be a suicide-capture, got %s", m.Kind)
			}
			found = true
		}
	}
	if !found {
		t.Error("AirForce should be able to attack the Navy square")
	}
}

func TestGenFilterRestrictsBySquareAndType(t *testing.T) {
	pos := NewEmptyPosition()
	sq1, _ := ParseSquare("d4")
	sq2, _ := ParseSquare("e4")
	pos.Board.Put(NewSinglePiece(Infantry, Red), sq1)
	pos.Board.Put(NewSinglePiece(Tank, Red), sq2)
	pos.SideToMove = Red

	all := pos.GeneratePseudoLegalMoves(AnyFilter())
	if all.Len() == 0 {
		t.Fatal("expected some pseudo-legal moves")
	}
	restricted := pos.GeneratePseudoLegalMoves(GenFilter{OriginSquare: sq1, PieceType: NoPieceType})
	for i := 0; i < restricted.Len(); i++ {
		if restricted.Get(i).From != sq1 {
			t.Errorf("filtered generation leaked a move from %s", restricted.Get(i).From)
		}
	}
	if restricted.Len() == 0 {
		t.Error("expected at least one move from the filtered origin")
	}
}
