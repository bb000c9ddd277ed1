package board

import "fmt"

// MoveKind discriminates the seven move shapes of spec.md §4.4. This is
// the tagged-variant sum type called for by spec.md §9 in place of a
// class hierarchy: Move carries exactly the fields each kind needs, and
// the Is* helpers below are the type guards.
type MoveKind uint8

const (
	MoveNormal MoveKind = iota
	MoveCaptureReplace
	MoveStayCapture
	MoveSuicideCapture
	MoveCombination
	MoveDeployStep
	MoveRecombine
)

func (k MoveKind) String() string {
	switch k {
	case MoveNormal:
		return "Normal"
	case MoveCaptureReplace:
		return "CaptureReplace"
	case MoveStayCapture:
		return "StayCapture"
	case MoveSuicideCapture:
		return "SuicideCapture"
	case MoveCombination:
		return "Combination"
	case MoveDeployStep:
		return "DeployStep"
	case MoveRecombine:
		return "Recombine"
	default:
		return "Unknown"
	}
}

// Move is a single candidate or applied move.
//
//   - Normal/CaptureReplace/Combination/DeployStep: From -> To, Piece is
//     the type of the piece that moves (for DeployStep, the specific
//     passenger being deployed out of the stack at From).
//   - StayCapture: the mover stays at From; To names the destroyed
//     occupant's square.
//   - SuicideCapture: both the mover (From) and the occupant of To are
//     removed.
//   - Recombine: From is the deploy session's origin square, To is the
//     square (already deployed to earlier in the session) that the
//     still-at-origin piece named by Piece will join at commit time.
type Move struct {
	Kind     MoveKind
	From     Square
	To       Square
	Piece    PieceType
	Captured PieceType // NoPieceType if this move captures nothing
}

// NoMove is the zero-valued sentinel "no move".
var NoMove = Move{Kind: MoveNormal, From: NoSquare, To: NoSquare, Piece: NoPieceType, Captured: NoPieceType}

// IsCapture reports whether the move removes an enemy piece from the
// board (true for CaptureReplace, StayCapture and SuicideCapture).
func (m Move) IsCapture() bool {
	return m.Captured != NoPieceType
}

// IsDeploy reports whether the move is a sub-move of an active deploy
// session (DeployStep or Recombine).
func (m Move) IsDeploy() bool {
	return m.Kind == MoveDeployStep || m.Kind == MoveRecombine
}

// String renders a compact UCI-like form for debugging/logging.
func (m Move) String() string {
	switch m.Kind {
	case MoveStayCapture:
		return fmt.Sprintf("%s!%s(stay)", m.From, m.To)
	case MoveSuicideCapture:
		return fmt.Sprintf("%sx%s(suicide)", m.From, m.To)
	case MoveRecombine:
		return fmt.Sprintf("%s->%s(recombine:%c)", m.From, m.To, m.Piece.Letter())
	default:
		return fmt.Sprintf("%s%s", m.From, m.To)
	}
}

// MoveList is a growable list of candidate moves, generated fresh by
// every GenerateX call (per spec.md §9: "the generator returns owned
// move values; no aliasing into game internals").
type MoveList struct {
	moves []Move
}

// NewMoveList returns an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add appends a move.
func (ml *MoveList) Add(m Move) {
	ml.moves = append(ml.moves, m)
}

// Len returns the number of moves.
func (ml *MoveList) Len() int {
	return len(ml.moves)
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Slice returns the moves as a plain slice (owned by the caller; the
// list itself may still be mutated afterward without aliasing it).
func (ml *MoveList) Slice() []Move {
	out := make([]Move, len(ml.moves))
	copy(out, ml.moves)
	return out
}

// Contains reports whether m is present in the list.
func (ml *MoveList) Contains(m Move) bool {
	for _, cand := range ml.moves {
		if cand == m {
			return true
		}
	}
	return false
}
