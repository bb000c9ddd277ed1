package board

// Position is a complete game position: the board, whose turn it is,
// the commander cache, the repetition-detection counts, and (while one
// is in progress) the active deploy session.
type Position struct {
	Board          *Board
	SideToMove     Color
	CommanderSq    [2]Square
	HalfMoveClock  int
	MoveNumber     int
	PositionCounts map[uint64]int
	Deploy         *DeploySession
}

// NewEmptyPosition returns an empty position ready for Put calls.
func NewEmptyPosition() *Position {
	return &Position{
		Board:          NewBoard(),
		SideToMove:     Red,
		CommanderSq:    [2]Square{NoSquare, NoSquare},
		MoveNumber:     1,
		PositionCounts: make(map[uint64]int),
	}
}

// Clone deep-copies the position, including the board and any active
// deploy session. Used for HistoryEntry snapshots and for the legality
// filter's tentative-apply/undo probing.
func (p *Position) Clone() *Position {
	np := &Position{
		Board:         p.Board.Clone(),
		SideToMove:    p.SideToMove,
		CommanderSq:   p.CommanderSq,
		HalfMoveClock: p.HalfMoveClock,
		MoveNumber:    p.MoveNumber,
	}
	np.PositionCounts = make(map[uint64]int, len(p.PositionCounts))
	for k, v := range p.PositionCounts {
		np.PositionCounts[k] = v
	}
	if p.Deploy != nil {
		np.Deploy = p.Deploy.clone()
	}
	return np
}

// Get returns the piece currently visible at sq: during an active
// deploy session this observes the session's shadow overlay (spec.md §9,
// "virtual-board overlay"); otherwise it reads straight through to the
// board.
func (p *Position) Get(sq Square) *Piece {
	if p.Deploy != nil {
		if piece, shadowed := p.Deploy.shadowGet(sq); shadowed {
			return piece
		}
	}
	return p.Board.Get(sq)
}

// IsEmpty reports whether sq holds no piece, honoring the deploy shadow.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Get(sq) == nil
}

// Occupied returns the occupancy bitset for color c as the session
// currently perceives it (board occupancy adjusted by the shadow
// overlay). NoColor returns the union of both colors.
func (p *Position) Occupied(c Color) Bitset {
	base := p.Board.AllOccupied()
	if c != NoColor {
		base = p.Board.Occupied(c)
	}
	if p.Deploy == nil {
		return base
	}
	for sq, piece := range p.Deploy.Shadow {
		wasSet := p.Board.IsOnBoard(sq) && !p.Board.IsEmpty(sq) &&
			(c == NoColor || p.Board.Get(sq).Color == c)
		nowSet := piece != nil && (c == NoColor || piece.Color == c)
		switch {
		case wasSet && !nowSet:
			base = base.Clear(sq)
		case !wasSet && nowSet:
			base = base.Set(sq)
		}
	}
	return base
}
