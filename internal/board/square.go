// Package board implements the CoTuLenh board representation: an
// 11-file x 12-rank grid of land/water terrain, piece stacks, and the
// move generator, applier, deploy-session state machine and serializer
// built on top of it.
package board

import (
	"fmt"
	"strconv"
)

// Files and ranks. Files are a..k (11), ranks are 1..12 (12).
const (
	NumFiles   = 11
	NumRanks   = 12
	NumSquares = NumFiles * NumRanks
)

// Square represents a square on the board (0-131), or NoSquare (-1).
// Index = rank*NumFiles + file, both 0-indexed.
type Square int16

// NoSquare is the sentinel for "no square" (e.g. an absent commander).
const NoSquare Square = -1

// NewSquare creates a square from 0-indexed file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*NumFiles + file)
}

// File returns the 0-indexed file (0=a .. 10=k).
func (sq Square) File() int {
	return int(sq) % NumFiles
}

// Rank returns the 0-indexed rank (0=rank 1 .. 11=rank 12).
func (sq Square) Rank() int {
	return int(sq) / NumFiles
}

// IsValid returns true if sq is one of the 132 legal squares.
func (sq Square) IsValid() bool {
	return sq >= 0 && int(sq) < NumSquares
}

// String returns algebraic notation, e.g. "c3", "k12".
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.File(), sq.Rank()+1)
}

// ParseSquare parses algebraic notation (file letter a-k, rank 1-12).
func ParseSquare(s string) (Square, error) {
	if len(s) < 2 || len(s) > 3 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0] - 'a')
	if file < 0 || file >= NumFiles {
		return NoSquare, fmt.Errorf("invalid file in square %q", s)
	}
	rankNum, err := strconv.Atoi(s[1:])
	if err != nil {
		return NoSquare, fmt.Errorf("invalid rank in square %q: %w", s, err)
	}
	rank := rankNum - 1
	if rank < 0 || rank >= NumRanks {
		return NoSquare, fmt.Errorf("invalid rank in square %q", s)
	}
	return NewSquare(file, rank), nil
}

// Delta returns the square offset by (df, dr) files/ranks from sq, and
// whether the result stays on the board (no wraparound).
func (sq Square) Delta(df, dr int) (Square, bool) {
	f := sq.File() + df
	r := sq.Rank() + dr
	if f < 0 || f >= NumFiles || r < 0 || r >= NumRanks {
		return NoSquare, false
	}
	return NewSquare(f, r), true
}

// SameFile returns true if both squares share a file.
func (sq Square) SameFile(other Square) bool {
	return sq.File() == other.File()
}

// SameRank returns true if both squares share a rank.
func (sq Square) SameRank(other Square) bool {
	return sq.Rank() == other.Rank()
}
