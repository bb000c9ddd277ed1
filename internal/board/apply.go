package board

import "github.com/pkg/errors"

// stepKind discriminates the six atomic actions of spec.md §4.5.
type stepKind uint8

const (
	stepPlacePiece stepKind = iota
	stepRemovePiece
	stepAddToStack
	stepRemoveFromStack
	stepSetCommander
	stepSetHeroic
)

// undoStep is the reverse of one atomic action: plain data, not a
// command object, per spec.md §9's "replace with plain old atomic-action
// records plus a small apply transaction routine."
type undoStep struct {
	kind          stepKind
	sq            Square
	prevPiece     *Piece // square's prior content (stepPlacePiece/stepRemovePiece)
	prevColor     Color
	prevCmdSq     Square // SetCommander's prior cached square
	prevHeroic    bool
	heroicPt      PieceType
}

// UndoRecord is spec.md §3's MinimalUndoRecord: the reversed stack of
// atomic actions needed to undo one compound move. It is used by the
// legality filter and never appended to game history.
type UndoRecord struct {
	steps []undoStep
}

func (pos *Position) undoOne(u undoStep) {
	switch u.kind {
	case stepPlacePiece, stepRemovePiece:
		if u.prevPiece == nil {
			pos.Board.Remove(u.sq)
		} else {
			pos.Board.Put(u.prevPiece, u.sq)
		}
	case stepAddToStack, stepRemoveFromStack:
		if u.prevPiece == nil {
			pos.Board.Remove(u.sq)
		} else {
			pos.Board.Put(u.prevPiece, u.sq)
		}
	case stepSetCommander:
		pos.CommanderSq[u.prevColor] = u.prevCmdSq
	case stepSetHeroic:
		if p := pos.Board.Get(u.sq); p != nil {
			setHeroicOn(p, u.heroicPt, u.prevHeroic)
		}
	}
}

// HeroicSquares returns every square whose heroic flag changed as part
// of this record (used by the game layer to report heroic deltas on a
// move descriptor).
func (u UndoRecord) HeroicSquares() []Square {
	var out []Square
	for _, s := range u.steps {
		if s.kind == stepSetHeroic {
			out = append(out, s.sq)
		}
	}
	return out
}

// Undo reverses every step of u, most-recent first.
func (pos *Position) Undo(u UndoRecord) {
	for i := len(u.steps) - 1; i >= 0; i-- {
		pos.undoOne(u.steps[i])
	}
}

// actionRemovePiece removes whatever occupies sq (atomic action #1).
func (pos *Position) actionRemovePiece(sq Square) (*Piece, undoStep) {
	prev := pos.Board.Remove(sq)
	return prev, undoStep{kind: stepRemovePiece, sq: sq, prevPiece: prev}
}

// actionPlacePiece places piece at sq, which must be empty (atomic
// action #2).
func (pos *Position) actionPlacePiece(piece *Piece, sq Square) (undoStep, error) {
	if !pos.Board.IsEmpty(sq) {
		return undoStep{}, errors.Errorf("actionPlacePiece: %s is occupied", sq)
	}
	if !pos.Board.Put(piece, sq) {
		return undoStep{}, errors.Errorf("actionPlacePiece: %s rejected placement at %s", piece.Type, sq)
	}
	return undoStep{kind: stepPlacePiece, sq: sq, prevPiece: nil}, nil
}

// actionAddToStack appends extra to the carrier already at sq (atomic
// action #3).
func (pos *Position) actionAddToStack(sq Square, extra *Piece) (undoStep, error) {
	existing := pos.Board.Get(sq)
	combined, err := AddToStack(existing, extra)
	if err != nil {
		return undoStep{}, err
	}
	pos.Board.Put(combined, sq)
	return undoStep{kind: stepAddToStack, sq: sq, prevPiece: existing}, nil
}

// actionRemoveFromStack removes the named passenger type from the stack
// at sq (atomic action #4).
func (pos *Position) actionRemoveFromStack(sq Square, pt PieceType) (*Piece, undoStep, error) {
	existing := pos.Board.Get(sq)
	removed, remainder, ok := RemoveFromStack(existing, pt)
	if !ok {
		return nil, undoStep{}, errors.Errorf("actionRemoveFromStack: %s has no %s passenger", sq, pt)
	}
	pos.Board.Put(remainder, sq)
	return removed, undoStep{kind: stepRemoveFromStack, sq: sq, prevPiece: existing}, nil
}

// actionSetCommander updates the commander-position cache (atomic
// action #5).
func (pos *Position) actionSetCommander(c Color, sq Square) undoStep {
	prev := pos.CommanderSq[c]
	pos.CommanderSq[c] = sq
	return undoStep{kind: stepSetCommander, prevColor: c, prevCmdSq: prev}
}

func setHeroicOn(p *Piece, pt PieceType, heroic bool) bool {
	if p.Type == pt {
		p.Heroic = heroic
		return true
	}
	for _, c := range p.Carrying {
		if setHeroicOn(c, pt, heroic) {
			return true
		}
	}
	return false
}

// actionSetHeroic sets the heroic flag of the named member of the stack
// at sq (atomic action #6).
func (pos *Position) actionSetHeroic(sq Square, pt PieceType, heroic bool) (undoStep, error) {
	p := pos.Board.Get(sq)
	if p == nil {
		return undoStep{}, errors.Errorf("actionSetHeroic: %s is empty", sq)
	}
	prev := memberHeroic(p, pt)
	if !setHeroicOn(p, pt, heroic) {
		return undoStep{}, errors.Errorf("actionSetHeroic: %s has no %s member", sq, pt)
	}
	return undoStep{kind: stepSetHeroic, sq: sq, heroicPt: pt, prevHeroic: prev}, nil
}

// SetHeroic is the public, undo-tracked wrapper around actionSetHeroic,
// used by the game layer's set_heroic_status API (spec.md §6).
func (pos *Position) SetHeroic(sq Square, pt PieceType, heroic bool) (UndoRecord, error) {
	step, err := pos.actionSetHeroic(sq, pt, heroic)
	if err != nil {
		return UndoRecord{}, err
	}
	return UndoRecord{steps: []undoStep{step}}, nil
}

func memberHeroic(p *Piece, pt PieceType) bool {
	if p.Type == pt {
		return p.Heroic
	}
	for _, c := range p.Carrying {
		if c.Type == pt {
			return c.Heroic
		}
	}
	return false
}

// ApplyMove performs a non-deploy move's atomic actions as one
// transaction, producing an UndoRecord. If any action fails mid-
// sequence, every action applied so far is rolled back in reverse order
// before the error propagates, per spec.md §7's transactional
// propagation policy. Recombine moves are rejected; they belong to the
// deploy session (see deploy.go).
func (pos *Position) ApplyMove(m Move) (UndoRecord, error) {
	if m.Kind == MoveRecombine {
		return UndoRecord{}, errors.New("ApplyMove: recombine must go through the deploy session")
	}
	var rec UndoRecord
	rollback := func() {
		pos.Undo(rec)
		rec = UndoRecord{}
	}

	switch m.Kind {
	case MoveStayCapture:
		target := pos.Board.Get(m.To)
		if target == nil {
			return UndoRecord{}, errors.Errorf("stay-capture: %s is empty", m.To)
		}
		_, step := pos.actionRemovePiece(m.To)
		rec.steps = append(rec.steps, step)
		return rec, nil

	case MoveSuicideCapture:
		_, step1 := pos.actionRemovePiece(m.To)
		rec.steps = append(rec.steps, step1)
		_, step2 := pos.actionRemovePiece(m.From)
		rec.steps = append(rec.steps, step2)
		return rec, nil
	}

	// Normal, CaptureReplace, Combination, DeployStep (a DeployStep is
	// handled here like a Normal move; deploy sessions apply their
	// sub-moves through the shadow overlay in deploy.go, not through
	// ApplyMove).
	mover, step := pos.actionRemovePiece(m.From)
	rec.steps = append(rec.steps, step)
	if mover == nil {
		rollback()
		return UndoRecord{}, errors.Errorf("ApplyMove: no piece at %s", m.From)
	}

	if m.Kind == MoveCaptureReplace {
		_, capStep := pos.actionRemovePiece(m.To)
		rec.steps = append(rec.steps, capStep)
	}

	if m.Kind == MoveCombination {
		step, err := pos.actionAddToStack(m.To, mover)
		if err != nil {
			rollback()
			return UndoRecord{}, err
		}
		rec.steps = append(rec.steps, step)
	} else {
		step, err := pos.actionPlacePiece(mover, m.To)
		if err != nil {
			rollback()
			return UndoRecord{}, err
		}
		rec.steps = append(rec.steps, step)
	}

	if mover.Type == Commander {
		rec.steps = append(rec.steps, pos.actionSetCommander(mover.Color, m.To))
	}
	return rec, nil
}

// ApplyHeroicPromotions implements spec.md §4.4's heroic-promotion rule:
// any friendly piece standing on a square that attacks the enemy
// commander's square gains Heroic=true. Returns true if any piece was
// newly promoted (the caller uses this to decide whether the half-move
// clock resets). Already-heroic pieces are left untouched, and the
// change is reversible via the returned UndoRecord.
func (pos *Position) ApplyHeroicPromotions(mover Color) (bool, UndoRecord) {
	var rec UndoRecord
	enemy := mover.Other()
	enemySq := pos.CommanderSq[enemy]
	if enemySq == NoSquare {
		return false, rec
	}
	promoted := false
	pos.Board.ForEachPiece(mover, func(sq Square, p *Piece) {
		for _, member := range p.AllMembers() {
			if member.Heroic {
				continue
			}
			if pieceAttacksSquare(pos, sq, member, enemySq) {
				step, err := pos.actionSetHeroic(sq, member.Type, true)
				if err == nil {
					rec.steps = append(rec.steps, step)
					promoted = true
				}
			}
		}
	})
	return promoted, rec
}
