package game

import (
	"github.com/cotulenh/engine/internal/board"
)

// matchesLegal reports whether m is present in the legal set, ignoring
// the Captured field (callers building a Move by hand rarely know it in
// advance; the generator fills it in).
func matchesLegal(candidates []board.Move, m board.Move) (board.Move, bool) {
	for _, cand := range candidates {
		if cand.Kind == m.Kind && cand.From == m.From && cand.To == m.To && cand.Piece == m.Piece {
			return cand, true
		}
	}
	return board.Move{}, false
}

// finishTurn applies the post-move bookkeeping shared by ordinary moves
// and deploy-session commits: heroic promotion, half-move clock, move
// number, side to move and repetition counting (spec.md §4.4/§4.7).
func (e *Engine) finishTurn(mover board.Color, captureOccurred bool) []board.Square {
	promoted, rec := e.pos.ApplyHeroicPromotions(mover)
	if captureOccurred || promoted {
		e.pos.HalfMoveClock = 0
	} else {
		e.pos.HalfMoveClock++
	}
	if mover == board.Blue {
		e.pos.MoveNumber++
	}
	e.pos.SideToMove = mover.Other()
	e.pos.PositionCounts[e.pos.Fingerprint()]++
	return rec.HeroicSquares()
}

// PlayMove applies one legal move, which may be an ordinary move or a
// deploy sub-move. A deploy sub-move that completes the session
// (spec.md §4.6's auto-commit condition) is committed immediately unless
// the session has disabled auto-commit.
func (e *Engine) PlayMove(m board.Move) (*MoveDescriptor, error) {
	if m.IsDeploy() {
		return e.playDeploySubMove(m)
	}

	legal, ok := matchesLegal(e.legalMoves(board.AnyFilter()), m)
	if !ok {
		return nil, ErrIllegalMove
	}
	mover := e.pos.SideToMove
	san := legal.SAN(mover)

	e.history = append(e.history, historyEntry{snapshot: e.pos.Clone()})
	if _, err := e.pos.ApplyMove(legal); err != nil {
		e.history = e.history[:len(e.history)-1]
		return nil, invariant(err)
	}
	heroic := e.finishTurn(mover, legal.IsCapture())

	e.log.Debug().Str("move", san).Msg("move applied")
	return &MoveDescriptor{
		From: legal.From, To: legal.To, Piece: legal.Piece,
		Captured: legal.Captured, Heroic: heroic, SAN: san,
	}, nil
}

// playDeploySubMove routes a DeployStep/Recombine sub-move through the
// active (or newly started) deploy session, auto-committing once every
// passenger has been accounted for.
func (e *Engine) playDeploySubMove(m board.Move) (*MoveDescriptor, error) {
	if e.pos.Deploy == nil {
		if m.Kind != board.MoveDeployStep {
			return nil, ErrIllegalMove
		}
		e.sessionSnapshot = e.pos.Clone()
		if err := e.pos.StartDeploySession(m.From); err != nil {
			e.sessionSnapshot = nil
			return nil, err
		}
	}

	legal, ok := matchesLegal(e.legalMoves(board.AnyFilter()), m)
	if !ok {
		if e.sessionSnapshot != nil && len(e.pos.Deploy.Commands) == 0 {
			e.pos.CancelDeploySession()
			e.sessionSnapshot = nil
		}
		return nil, ErrIllegalMove
	}

	mover := e.pos.Deploy.OriginColor
	applied, err := e.pos.PlayDeploySubMove(legal)
	if err != nil {
		return nil, err
	}

	var desc *MoveDescriptor
	if applied.Kind == board.MoveDeployStep {
		desc = &MoveDescriptor{
			From: applied.From, To: applied.To, Piece: applied.Piece,
			Captured: applied.Captured, Deploy: true,
			SAN: applied.SAN(mover),
		}
	} else {
		desc = &MoveDescriptor{From: applied.From, To: applied.To, Piece: applied.Piece, Deploy: true}
	}

	if e.pos.Deploy.AutoCommitReady() {
		if _, err := e.commitActiveSession(mover); err != nil {
			return nil, err
		}
	}
	return desc, nil
}

// commitActiveSession materializes the active deploy session and folds
// it into game history as a single HistoryEntry (spec.md §4.6).
func (e *Engine) commitActiveSession(mover board.Color) (*MoveDescriptor, error) {
	captureOccurred := false
	for _, cmd := range e.pos.Deploy.Commands {
		if cmd.Move.IsCapture() {
			captureOccurred = true
			break
		}
	}
	san := board.DeploySAN(e.pos.Deploy.StackSquare, mover, e.pos.Deploy.Commands, e.pos.Deploy.RecombineInstructions)
	origin := e.pos.Deploy.StackSquare

	if _, err := e.pos.CommitDeploySession(); err != nil {
		return nil, err
	}
	heroic := e.finishTurn(mover, captureOccurred)

	e.history = append(e.history, historyEntry{snapshot: e.sessionSnapshot})
	e.sessionSnapshot = nil

	e.log.Debug().Str("deploy", san).Msg("deploy session committed")
	return &MoveDescriptor{From: origin, Deploy: true, Heroic: heroic, SAN: san}, nil
}

// Move looks up san among the current legal moves (or deploy sub-moves,
// mid-session) and plays it.
func (e *Engine) Move(san string) (*MoveDescriptor, error) {
	candidates := e.legalMoves(board.AnyFilter())
	color := e.pos.SideToMove
	if e.pos.Deploy != nil {
		color = e.pos.Deploy.OriginColor
	}
	for _, m := range candidates {
		if m.SAN(color) == san {
			return e.PlayMove(m)
		}
	}
	return nil, ErrIllegalMove
}

// Undo reverts the most recently completed turn (an ordinary move or a
// committed deploy session), restoring the position exactly as it stood
// beforehand. It refuses to run mid deploy-session; cancel the session
// first.
func (e *Engine) Undo() error {
	if e.pos.Deploy != nil {
		return ErrIllegalMove
	}
	if len(e.history) == 0 {
		return ErrIllegalMove
	}
	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	e.pos = last.snapshot
	e.moveCache.Purge()
	return nil
}

// GetDeploySession reports whether a deploy session is active and, if
// so, the square it is rooted at.
func (e *Engine) GetDeploySession() (board.Square, bool) {
	if e.pos.Deploy == nil {
		return board.NoSquare, false
	}
	return e.pos.Deploy.StackSquare, true
}

// CanCommitDeploy reports whether the active session could be committed
// right now.
func (e *Engine) CanCommitDeploy() bool {
	return e.pos.Deploy != nil && e.pos.Deploy.CanCommit()
}

// CommitDeploySession explicitly commits the active deploy session
// (used when auto-commit is disabled or when passengers remain that
// still form one valid residue stack).
func (e *Engine) CommitDeploySession() (*MoveDescriptor, error) {
	if e.pos.Deploy == nil {
		return nil, ErrNoDeploySession
	}
	mover := e.pos.Deploy.OriginColor
	return e.commitActiveSession(mover)
}

// CancelDeploySession discards the active session, restoring the
// pre-session snapshot untouched (nothing was ever written to the real
// board, so this is just bookkeeping).
func (e *Engine) CancelDeploySession() error {
	if e.pos.Deploy == nil {
		return ErrNoDeploySession
	}
	e.pos.CancelDeploySession()
	e.sessionSnapshot = nil
	return nil
}

// ResetDeploySession restarts the active session from scratch at the
// same origin square, discarding every sub-move played so far.
func (e *Engine) ResetDeploySession() error {
	if e.pos.Deploy == nil {
		return ErrNoDeploySession
	}
	origin := e.pos.Deploy.StackSquare
	e.pos.CancelDeploySession()
	return e.pos.StartDeploySession(origin)
}

// Recombine instructs the piece of type pt still waiting at the
// session's origin to rejoin the stack deployed at target once the
// session commits.
func (e *Engine) Recombine(target board.Square, pt board.PieceType) error {
	if e.pos.Deploy == nil {
		return ErrNoDeploySession
	}
	if err := e.pos.Deploy.Recombine(target, pt); err != nil {
		return err
	}
	e.moveCache.Purge()
	if e.pos.Deploy.AutoCommitReady() {
		mover := e.pos.Deploy.OriginColor
		if _, err := e.commitActiveSession(mover); err != nil {
			return err
		}
	}
	return nil
}

// GetRecombineOptions lists the (pieceType, target) pairs currently
// available to Recombine.
func (e *Engine) GetRecombineOptions() []board.RecombineInstruction {
	if e.pos.Deploy == nil {
		return nil
	}
	return e.pos.Deploy.RecombineOptions()
}

// UndoRecombineInstruction reverses the most recently recorded
// recombine instruction of the active session.
func (e *Engine) UndoRecombineInstruction() bool {
	if e.pos.Deploy == nil {
		return false
	}
	e.moveCache.Purge()
	return e.pos.Deploy.UndoRecombineInstruction()
}
