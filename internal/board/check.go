package board

// pieceAttacksSquare reports whether a piece of type pt/color/heroic
// standing at from can capture (by any capture kind: replace, stay, or
// suicide) a piece currently standing at target. Used for both check
// detection and heroic-promotion evaluation, which share the same
// "does this square threaten that square" question.
func pieceAttacksSquare(pos *Position, from Square, piece *Piece, target Square) bool {
	for _, m := range pos.GenerateDestinations(from, piece.Type, piece.Color, piece.Heroic) {
		if m.To != target {
			continue
		}
		switch m.Kind {
		case MoveCaptureReplace, MoveStayCapture, MoveSuicideCapture:
			return true
		}
	}
	return false
}

// IsSquareAttacked reports whether any piece belonging to byColor
// attacks sq.
func (pos *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	attacked := false
	pos.Board.ForEachPiece(byColor, func(from Square, p *Piece) {
		if attacked {
			return
		}
		for _, member := range p.AllMembers() {
			if pieceAttacksSquare(pos, from, member, sq) {
				attacked = true
				return
			}
		}
	})
	return attacked
}

// GetAttackers returns every square holding a byColor piece that
// attacks sq.
func (pos *Position) GetAttackers(sq Square, byColor Color) []Square {
	var out []Square
	pos.Board.ForEachPiece(byColor, func(from Square, p *Piece) {
		for _, member := range p.AllMembers() {
			if pieceAttacksSquare(pos, from, member, sq) {
				out = append(out, from)
				return
			}
		}
	})
	return out
}

// IsCommanderAttacked reports whether color's commander is currently
// attacked by the opposing side.
func (pos *Position) IsCommanderAttacked(color Color) bool {
	sq := pos.CommanderSq[color]
	if !sq.IsValid() {
		return false
	}
	return pos.IsSquareAttacked(sq, color.Other())
}

// IsCommanderExposed implements the flying-general rule's complementary
// invariant: a position where the two commanders face each other along
// a clear file or rank is illegal regardless of whose turn it is, since
// either side could otherwise capture across the empty line.
func (pos *Position) IsCommanderExposed(color Color) bool {
	mine := pos.CommanderSq[color]
	theirs := pos.CommanderSq[color.Other()]
	if !mine.IsValid() || !theirs.IsValid() {
		return false
	}
	if !mine.SameFile(theirs) && !mine.SameRank(theirs) {
		return false
	}
	for _, sq := range Between(mine, theirs) {
		if !pos.IsEmpty(sq) {
			return false
		}
	}
	return true
}

// IsLegalMove applies spec.md §4.5's legality filter: tentatively apply
// m (through the deploy session if one is active, otherwise directly),
// test whether the mover's commander ends attacked or exposed, then
// undo. Deploy sub-moves are probed on a throwaway clone rather than via
// an undo record, since a session's shadow mutations are not tracked by
// UndoRecord.
func (pos *Position) IsLegalMove(m Move) bool {
	mover := pos.SideToMove
	if pos.Deploy != nil {
		clone := pos.Clone()
		if _, err := clone.PlayDeploySubMove(m); err != nil {
			return false
		}
		return !clone.IsCommanderAttacked(mover) && !clone.IsCommanderExposed(mover)
	}
	undo, err := pos.ApplyMove(m)
	if err != nil {
		return false
	}
	ok := !pos.IsCommanderAttacked(mover) && !pos.IsCommanderExposed(mover)
	pos.Undo(undo)
	return ok
}

// IsCheck reports whether the side to move is in check.
func (pos *Position) IsCheck() bool {
	return pos.IsCommanderAttacked(pos.SideToMove)
}

// HasLegalMoves reports whether the side to move has any legal move
// (ordinary or, mid-session, deploy sub-move).
func (pos *Position) HasLegalMoves() bool {
	return pos.GenerateLegalMoves(AnyFilter()).Len() > 0
}

// IsCheckmate reports check with no legal response.
func (pos *Position) IsCheckmate() bool {
	return pos.IsCheck() && !pos.HasLegalMoves()
}

// IsStalemate reports no check but no legal move either.
func (pos *Position) IsStalemate() bool {
	return !pos.IsCheck() && !pos.HasLegalMoves()
}

// IsDrawByFiftyMoves reports the half-move clock has reached 100 plies
// (50 full moves) without a capture or heroic promotion.
func (pos *Position) IsDrawByFiftyMoves() bool {
	return pos.HalfMoveClock >= 100
}

// IsThreefoldRepetition reports the current position's fingerprint has
// recurred three or more times.
func (pos *Position) IsThreefoldRepetition() bool {
	return pos.PositionCounts[pos.Fingerprint()] >= 3
}

// IsDraw reports stalemate, the fifty-move rule, or threefold
// repetition.
func (pos *Position) IsDraw() bool {
	return pos.IsStalemate() || pos.IsDrawByFiftyMoves() || pos.IsThreefoldRepetition()
}

// IsGameOver reports checkmate or any draw condition.
func (pos *Position) IsGameOver() bool {
	return pos.IsCheckmate() || pos.IsDraw()
}
