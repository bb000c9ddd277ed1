package board

import (
	"sort"

	"github.com/pkg/errors"
)

// SessionViolation reports an attempt to commit or continue a deploy
// session in a way that would break a session-level invariant (spec.md
// §4.6): committing with an incompatible residue stack, recombining
// onto a square the session never deployed to, or continuing a session
// from the wrong origin square.
type SessionViolation struct {
	Reason string
}

func (e *SessionViolation) Error() string { return "deploy session violation: " + e.Reason }

// DeployCommand records one applied sub-move of a deploy session, in
// the order it was played. Commands never includes Recombine
// instructions; those are tracked separately in RecombineInstructions
// since they are not reflected on the board until commit.
type DeployCommand struct {
	Move Move
}

// RecombineInstruction is a caller's standing instruction, recorded
// during an active session, that a still-at-origin passenger should
// rejoin the stack that was deployed to Target once the session
// commits. Piece is the actual piece value (preserving its heroic
// status and any sub-carrying) removed from Remaining when the
// instruction was issued.
type RecombineInstruction struct {
	Piece     *Piece
	Target    Square
	Timestamp int // len(Commands) at the moment this instruction was recorded
}

// DeploySession is the state of an in-progress multi-step deploy move
// (spec.md §4.6), implemented as the shadow-map virtual-board overlay
// spec.md §9's design note explicitly permits in place of a copy-on-
// write board: reads during the session consult Shadow before falling
// through to the real Board, and nothing is written to the real Board
// until Commit.
type DeploySession struct {
	StackSquare   Square
	OriginColor   Color
	OriginalPiece *Piece // clone of the full stack as it stood before the session began

	Remaining []*Piece // direct members (see DirectMembers) not yet deployed or recombined
	Shadow    map[Square]*Piece

	Commands               []DeployCommand
	RecombineInstructions  []RecombineInstruction
	StartFingerprint       uint64
	AutoCommitDisabled     bool
}

// NewDeploySession starts a session rooted at stackSquare. original
// must be the stack currently occupying that square.
func NewDeploySession(stackSquare Square, original *Piece, startFingerprint uint64) *DeploySession {
	return &DeploySession{
		StackSquare:      stackSquare,
		OriginColor:      original.Color,
		OriginalPiece:    original.Clone(),
		Remaining:        DirectMembers(original),
		Shadow:           make(map[Square]*Piece),
		StartFingerprint: startFingerprint,
	}
}

func (d *DeploySession) shadowGet(sq Square) (*Piece, bool) {
	p, ok := d.Shadow[sq]
	return p, ok
}

func (d *DeploySession) clone() *DeploySession {
	nd := &DeploySession{
		StackSquare:        d.StackSquare,
		OriginColor:        d.OriginColor,
		OriginalPiece:      d.OriginalPiece.Clone(),
		StartFingerprint:   d.StartFingerprint,
		AutoCommitDisabled: d.AutoCommitDisabled,
	}
	for _, p := range d.Remaining {
		nd.Remaining = append(nd.Remaining, p.Clone())
	}
	nd.Shadow = make(map[Square]*Piece, len(d.Shadow))
	for sq, p := range d.Shadow {
		if p == nil {
			nd.Shadow[sq] = nil
		} else {
			nd.Shadow[sq] = p.Clone()
		}
	}
	nd.Commands = append(nd.Commands, d.Commands...)
	for _, ri := range d.RecombineInstructions {
		nd.RecombineInstructions = append(nd.RecombineInstructions, RecombineInstruction{
			Piece: ri.Piece.Clone(), Target: ri.Target, Timestamp: ri.Timestamp,
		})
	}
	return nd
}

func (d *DeploySession) findRemaining(pt PieceType) int {
	for i, p := range d.Remaining {
		if p.Type == pt {
			return i
		}
	}
	return -1
}

func (d *DeploySession) takeRemaining(pt PieceType) (*Piece, bool) {
	idx := d.findRemaining(pt)
	if idx < 0 {
		return nil, false
	}
	p := d.Remaining[idx]
	d.Remaining = append(d.Remaining[:idx:idx], d.Remaining[idx+1:]...)
	return p, true
}

// buildResidue computes the piece that should sit at the origin square
// given the still-undeployed members. It best-efforts a real stack via
// GroupToStack; if the remaining members are not mutually compatible
// (which can only arise transiently mid-session, since compatibility is
// enforced for real at Commit) it falls back to a plain carrier-first
// grouping purely for display purposes.
func buildResidue(remaining []*Piece) *Piece {
	switch len(remaining) {
	case 0:
		return nil
	case 1:
		return remaining[0].Clone()
	}
	if stack, err := GroupToStack(remaining); err == nil {
		return stack
	}
	carrier := remaining[0].Clone()
	for _, p := range remaining[1:] {
		carrier.Carrying = append(carrier.Carrying, p.Clone())
	}
	return carrier
}

// ApplyDeploySubMove plays one DeployStep within the session: piece m.Piece
// (currently still at the origin) moves to m.To, capturing or combining
// with whatever is shadow-visible there. The returned Move has Captured
// filled in when the destination held an enemy piece.
func (d *DeploySession) ApplyDeploySubMove(pos *Position, m Move) (Move, error) {
	if m.From != d.StackSquare {
		return Move{}, &SessionViolation{Reason: "sub-move origin does not match the active session"}
	}
	piece, ok := d.takeRemaining(m.Piece)
	if !ok {
		return Move{}, &SessionViolation{Reason: "piece is not available to deploy from this stack"}
	}

	dest := pos.Get(m.To)
	var newDest *Piece
	switch {
	case dest == nil:
		newDest = piece.Clone()
	case dest.Color == d.OriginColor:
		combined, err := AddToStack(dest, piece)
		if err != nil {
			d.Remaining = append(d.Remaining, piece)
			return Move{}, err
		}
		newDest = combined
	default:
		m.Captured = dest.Type
		newDest = piece.Clone()
	}

	d.Shadow[m.To] = newDest
	d.Shadow[d.StackSquare] = buildResidue(d.Remaining)
	d.Commands = append(d.Commands, DeployCommand{Move: m})
	return m, nil
}

// Recombine records that the still-at-origin piece of type pt should
// rejoin the stack deployed earlier in this session to target. The
// instruction only takes effect at Commit.
func (d *DeploySession) Recombine(target Square, pt PieceType) error {
	deployed := false
	for _, cmd := range d.Commands {
		if cmd.Move.To == target {
			deployed = true
			break
		}
	}
	if !deployed {
		return &SessionViolation{Reason: "recombine target was never deployed to in this session"}
	}
	piece, ok := d.takeRemaining(pt)
	if !ok {
		return &SessionViolation{Reason: "piece is not available to recombine"}
	}
	d.RecombineInstructions = append(d.RecombineInstructions, RecombineInstruction{
		Piece: piece, Target: target, Timestamp: len(d.Commands),
	})
	d.Shadow[d.StackSquare] = buildResidue(d.Remaining)
	return nil
}

// UndoRecombineInstruction reverses the most recently recorded
// recombine instruction, returning the piece to Remaining. Reports
// false if there was nothing to undo.
func (d *DeploySession) UndoRecombineInstruction() bool {
	n := len(d.RecombineInstructions)
	if n == 0 {
		return false
	}
	last := d.RecombineInstructions[n-1]
	d.RecombineInstructions = d.RecombineInstructions[:n-1]
	d.Remaining = append(d.Remaining, last.Piece)
	d.Shadow[d.StackSquare] = buildResidue(d.Remaining)
	return true
}

// AutoCommitReady reports the auto-commit condition of spec.md §4.6:
// every passenger has either been deployed or instructed to recombine,
// so nothing remains at the origin to decide about.
func (d *DeploySession) AutoCommitReady() bool {
	return !d.AutoCommitDisabled && len(d.Remaining) == 0
}

// CanCommit reports whether Commit would currently succeed: either
// nothing remains at the origin, or what remains still forms one valid
// stack.
func (d *DeploySession) CanCommit() bool {
	if len(d.Remaining) == 0 {
		return true
	}
	_, err := GroupToStack(d.Remaining)
	return err == nil
}

// RecombineOptions lists the (pieceType, target) pairs currently legal
// to pass to Recombine: every remaining passenger against every square
// already deployed to in this session.
func (d *DeploySession) RecombineOptions() []RecombineInstruction {
	var targets []Square
	seen := map[Square]bool{}
	for _, cmd := range d.Commands {
		if !seen[cmd.Move.To] {
			seen[cmd.Move.To] = true
			targets = append(targets, cmd.Move.To)
		}
	}
	var out []RecombineInstruction
	for _, p := range d.Remaining {
		for _, t := range targets {
			out = append(out, RecombineInstruction{Piece: p, Target: t})
		}
	}
	return out
}

// StartDeploySession begins a new deploy session rooted at sq, which
// must hold a stack belonging to the side to move. It is an error to
// call this while a session is already active.
func (pos *Position) StartDeploySession(sq Square) error {
	if pos.Deploy != nil {
		return errors.New("StartDeploySession: a deploy session is already active")
	}
	stack := pos.Board.Get(sq)
	if stack == nil || !stack.IsStack() {
		return errors.Errorf("StartDeploySession: %s does not hold a stack", sq)
	}
	if stack.Color != pos.SideToMove {
		return errors.Errorf("StartDeploySession: %s does not belong to the side to move", sq)
	}
	pos.Deploy = NewDeploySession(sq, stack, pos.Fingerprint())
	return nil
}

// PlayDeploySubMove routes m (DeployStep or Recombine) through the
// active session.
func (pos *Position) PlayDeploySubMove(m Move) (Move, error) {
	if pos.Deploy == nil {
		return Move{}, errors.New("PlayDeploySubMove: no active deploy session")
	}
	switch m.Kind {
	case MoveDeployStep:
		return pos.Deploy.ApplyDeploySubMove(pos, m)
	case MoveRecombine:
		return m, pos.Deploy.Recombine(m.To, m.Piece)
	default:
		return Move{}, errors.Errorf("PlayDeploySubMove: %s is not a deploy sub-move", m.Kind)
	}
}

// CancelDeploySession discards the session. Since sub-moves only ever
// touched the shadow overlay, the real board was never mutated and
// discarding requires nothing beyond clearing the pointer.
func (pos *Position) CancelDeploySession() {
	pos.Deploy = nil
}

// CommitDeploySession materializes the session's shadow overlay onto
// the real board and folds in every recorded recombine instruction,
// then clears the session. It returns the UndoRecord needed to reverse
// the board mutation; turn/clock/move-number/repetition bookkeeping is
// the game layer's responsibility (spec.md §4.6 describes the whole
// session as collapsing into a single HistoryEntry owned there).
func (pos *Position) CommitDeploySession() (UndoRecord, error) {
	d := pos.Deploy
	if d == nil {
		return UndoRecord{}, errors.New("CommitDeploySession: no active deploy session")
	}

	sorted := append([]RecombineInstruction(nil), d.RecombineInstructions...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	for _, instr := range sorted {
		current := pos.Get(instr.Target)
		combined, err := AddToStack(current, instr.Piece)
		if err != nil {
			return UndoRecord{}, &SessionViolation{Reason: "recombine target incompatible at commit: " + err.Error()}
		}
		d.Shadow[instr.Target] = combined
	}

	var residue *Piece
	if len(d.Remaining) > 0 {
		r, err := GroupToStack(d.Remaining)
		if err != nil {
			return UndoRecord{}, &SessionViolation{Reason: "leftover passengers at origin do not form a valid stack: " + err.Error()}
		}
		residue = r
	}

	var rec UndoRecord
	for sq, piece := range d.Shadow {
		if sq == d.StackSquare {
			continue
		}
		if piece == nil {
			_, step := pos.actionRemovePiece(sq)
			rec.steps = append(rec.steps, step)
			continue
		}
		prev, step := pos.actionRemovePiece(sq)
		rec.steps = append(rec.steps, step)
		placeStep, err := pos.actionPlacePiece(piece, sq)
		if err != nil {
			pos.Undo(rec)
			if prev != nil {
				pos.Board.Put(prev, sq)
			}
			return UndoRecord{}, err
		}
		rec.steps = append(rec.steps, placeStep)
		if piece.Type == Commander {
			rec.steps = append(rec.steps, pos.actionSetCommander(piece.Color, sq))
		}
	}

	_, origStep := pos.actionRemovePiece(d.StackSquare)
	rec.steps = append(rec.steps, origStep)
	if residue != nil {
		step, err := pos.actionPlacePiece(residue, d.StackSquare)
		if err != nil {
			pos.Undo(rec)
			return UndoRecord{}, err
		}
		rec.steps = append(rec.steps, step)
		if residue.Type == Commander {
			rec.steps = append(rec.steps, pos.actionSetCommander(residue.Color, d.StackSquare))
		}
	}

	pos.Deploy = nil
	return rec, nil
}
