package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cotulenh/engine/internal/board"
)

func TestNewEngineStartsAtDefaultPosition(t *testing.T) {
	eng, err := New()
	require.NoError(t, err)
	require.Equal(t, board.Red, eng.Turn())
	require.Equal(t, 1, eng.MoveNumber())
	require.False(t, eng.IsGameOver())
}

func TestPlayMoveUpdatesTurnAndHistory(t *testing.T) {
	eng, err := New()
	require.NoError(t, err)
	eng.Clear()

	from, _ := board.ParseSquare("d1")
	to, _ := board.ParseSquare("d3")
	require.True(t, eng.Put(board.Tank, board.Red, false, from))

	desc, err := eng.PlayMove(board.Move{Kind: board.MoveNormal, From: from, To: to, Piece: board.Tank})
	require.NoError(t, err)
	require.Equal(t, to, desc.To)
	require.Equal(t, board.Blue, eng.Turn())

	require.NoError(t, eng.Undo())
	require.Equal(t, board.Red, eng.Turn())
	require.NotNil(t, eng.Get(from))
	require.Nil(t, eng.Get(to))
}

func TestPlayMoveRejectsIllegalMove(t *testing.T) {
	eng, err := New()
	require.NoError(t, err)
	eng.Clear()

	from, _ := board.ParseSquare("d1")
	to, _ := board.ParseSquare("d9")
	require.True(t, eng.Put(board.Tank, board.Red, false, from))

	_, err = eng.PlayMove(board.Move{Kind: board.MoveNormal, From: from, To: to, Piece: board.Tank})
	require.ErrorIs(t, err, ErrIllegalMove)
}

func TestUndoWithEmptyHistoryFails(t *testing.T) {
	eng, err := New()
	require.NoError(t, err)
	eng.Clear()
	require.Error(t, eng.Undo())
}

func TestFENLoadRoundTrip(t *testing.T) {
	eng, err := New()
	require.NoError(t, err)
	fen := eng.FEN()
	require.NoError(t, eng.Load(fen))
	require.Equal(t, fen, eng.FEN())
}

func TestSetAndGetHeroicStatus(t *testing.T) {
	eng, err := New()
	require.NoError(t, err)
	eng.Clear()
	sq, _ := board.ParseSquare("c3")
	require.True(t, eng.Put(board.Infantry, board.Red, false, sq))
	require.True(t, eng.SetHeroicStatus(sq, board.Infantry, true))
	require.True(t, eng.GetHeroicStatus(sq, board.Infantry))
	require.False(t, eng.SetHeroicStatus(sq, board.Artillery, true))
}

func TestBoardSnapshotDimensions(t *testing.T) {
	eng, err := New()
	require.NoError(t, err)
	snap := eng.BoardSnapshot()
	require.Len(t, snap, board.NumRanks)
	for _, row := range snap {
		require.Len(t, row, board.NumFiles)
	}
}
