package board

// Board is a mailbox of the 132 squares plus cached per-color occupancy
// bitsets (mirrors the teacher's Position.Occupied/AllOccupied caches,
// generalized from flat bitboard membership to "has a piece here", since
// pieces here are recursive stacks rather than flat bitboard members).
type Board struct {
	squares  [NumSquares]*Piece
	occupied [2]Bitset
	all      Bitset
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Clone deep-copies the board and every piece (and stack) on it.
func (b *Board) Clone() *Board {
	nb := &Board{occupied: b.occupied, all: b.all}
	for i, p := range b.squares {
		nb.squares[i] = p.Clone()
	}
	return nb
}

// Get returns the piece at sq, or nil if empty or off-board.
func (b *Board) Get(sq Square) *Piece {
	if !sq.IsValid() {
		return nil
	}
	return b.squares[sq]
}

// IsEmpty returns true if sq holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return b.Get(sq) == nil
}

// IsOnBoard returns true if sq is one of the 132 legal squares.
func (b *Board) IsOnBoard(sq Square) bool {
	return sq.IsValid()
}

// TerrainOf reports sq's terrain classification.
func (b *Board) TerrainOf(sq Square) Terrain {
	return TerrainOf(sq)
}

// FindCommander scans for the commander of the given color, returning
// NoSquare if none is present. Used by Put's uniqueness contract; a
// linear scan is acceptable here since it only runs on commander
// placement, not on the move-generation hot path.
func (b *Board) FindCommander(c Color) Square {
	for sq := Square(0); int(sq) < NumSquares; sq++ {
		if p := b.squares[sq]; p != nil && p.Color == c && p.Type == Commander {
			return sq
		}
	}
	return NoSquare
}

// Put places piece at sq, enforcing spec.md §4.1's contracts:
//   - a second Commander of the same color at a *different* square is
//     rejected (replacing one at the same square is fine);
//   - a land-only piece cannot be put on pure water, and Navy cannot be
//     put on pure land (the mixed file is legal for both).
//
// Returns false (no mutation) if a contract is violated.
func (b *Board) Put(p *Piece, sq Square) bool {
	if p == nil || !sq.IsValid() {
		return false
	}
	if !TerrainLegalFor(p.Type, sq) {
		return false
	}
	if p.Type == Commander {
		if existing := b.FindCommander(p.Color); existing != NoSquare && existing != sq {
			return false
		}
	}
	b.clearSquare(sq)
	b.squares[sq] = p
	b.occupied[p.Color] = b.occupied[p.Color].Set(sq)
	b.all = b.all.Set(sq)
	return true
}

// Remove removes and returns whatever piece (including its full stack)
// occupied sq, or nil if it was already empty.
func (b *Board) Remove(sq Square) *Piece {
	if !sq.IsValid() {
		return nil
	}
	p := b.squares[sq]
	if p == nil {
		return nil
	}
	b.clearSquare(sq)
	return p
}

func (b *Board) clearSquare(sq Square) {
	if p := b.squares[sq]; p != nil {
		b.occupied[p.Color] = b.occupied[p.Color].Clear(sq)
		b.all = b.all.Clear(sq)
	}
	b.squares[sq] = nil
}

// Occupied returns the occupancy bitset for color c.
func (b *Board) Occupied(c Color) Bitset {
	return b.occupied[c]
}

// AllOccupied returns the occupancy bitset for both colors.
func (b *Board) AllOccupied() Bitset {
	return b.all
}

// ForEachPiece calls f for every occupied square belonging to c (or, if
// c is NoColor, every occupied square on the board).
func (b *Board) ForEachPiece(c Color, f func(sq Square, p *Piece)) {
	set := b.all
	if c != NoColor {
		set = b.occupied[c]
	}
	set.ForEach(func(sq Square) {
		f(sq, b.squares[sq])
	})
}
