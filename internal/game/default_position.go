package game

import "github.com/cotulenh/engine/internal/board"

// defaultLayout is one side's back two ranks, file a through k. It is a
// deliberately symmetric placeholder arrangement (spec.md §6 leaves the
// exact starting position unspecified beyond "Red moves first from the
// default position") rather than a transcription of any particular
// real-world CoTuLenh opening book.
var defaultLayout = [2][board.NumFiles]board.PieceType{
	{ // back rank
		board.Navy, board.Navy, board.AirForce, board.Tank, board.Artillery,
		board.Commander, board.Artillery, board.Tank, board.AntiAir, board.Missile, board.Headquarters,
	},
	{ // second rank
		board.NoPieceType, board.NoPieceType, board.Engineer, board.Infantry, board.Infantry,
		board.Infantry, board.Infantry, board.Infantry, board.Infantry, board.Engineer, board.NoPieceType,
	},
}

// NewDefaultPosition builds the engine's default starting position,
// mirrored for Red (ranks 1-2) and Blue (ranks 12-11).
func NewDefaultPosition() *board.Position {
	pos := board.NewEmptyPosition()
	for row, rank := range [2]int{0, 1} {
		for file := 0; file < board.NumFiles; file++ {
			pt := defaultLayout[row][file]
			if pt == board.NoPieceType {
				continue
			}
			sq := board.NewSquare(file, rank)
			piece := board.NewSinglePiece(pt, board.Red)
			pos.Board.Put(piece, sq)
			if pt == board.Commander {
				pos.CommanderSq[board.Red] = sq
			}
		}
	}
	for row, rank := range [2]int{board.NumRanks - 1, board.NumRanks - 2} {
		for file := 0; file < board.NumFiles; file++ {
			pt := defaultLayout[row][file]
			if pt == board.NoPieceType {
				continue
			}
			sq := board.NewSquare(file, rank)
			piece := board.NewSinglePiece(pt, board.Blue)
			pos.Board.Put(piece, sq)
			if pt == board.Commander {
				pos.CommanderSq[board.Blue] = sq
			}
		}
	}
	pos.PositionCounts[pos.Fingerprint()] = 1
	return pos
}
