package game

import (
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/cotulenh/engine/internal/board"
)

// MoveDescriptor is the public, immutable record of one applied
// user-visible move (spec.md §6: "Return a move descriptor carrying
// from, to, piece, captured piece (if any), heroic deltas, and a
// textual (SAN-like) form").
type MoveDescriptor struct {
	From     board.Square
	To       board.Square
	Piece    board.PieceType
	Captured board.PieceType
	Heroic   []board.Square
	SAN      string
	Deploy   bool
}

// historyEntry is the game layer's HistoryEntry (spec.md §3): a full
// position snapshot taken before a user-visible move (or before the
// deploy session that produced it) was applied.
type historyEntry struct {
	snapshot *board.Position
}

// Engine is the public facade over internal/board's Position, adding
// the session/history bookkeeping, legal-move memoization, and
// structured logging that spec.md §6's external interface assumes but
// that the board package itself stays free of. An Engine is not safe for
// concurrent use.
type Engine struct {
	id      uuid.UUID
	pos     *board.Position
	history []historyEntry

	sessionSnapshot *board.Position // pre-session HistoryEntry, held until commit/cancel

	log       zerolog.Logger
	cacheSize int
	moveCache *lru.Cache[uint64, []board.Move]
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger overrides the engine's zerolog logger (defaults to
// zerolog.Nop(), matching the teacher's convention of an opt-in logger
// rather than a global one).
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithCacheSize overrides the legal-move memoization cache's capacity
// (default 256 positions).
func WithCacheSize(n int) Option {
	return func(e *Engine) { e.cacheSize = n }
}

func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		id:        uuid.New(),
		log:       zerolog.Nop(),
		cacheSize: 256,
	}
	for _, o := range opts {
		o(e)
	}
	cache, err := lru.New[uint64, []board.Move](e.cacheSize)
	if err != nil {
		return nil, invariant(errors.Wrap(err, "New: constructing move cache"))
	}
	e.moveCache = cache
	e.pos = NewDefaultPosition()
	e.log.Info().Str("instance", e.id.String()).Msg("engine initialized")
	return e, nil
}

// Clear resets the engine to an empty board, side-to-move Red.
func (e *Engine) Clear() {
	e.pos = board.NewEmptyPosition()
	e.history = nil
	e.sessionSnapshot = nil
	e.moveCache.Purge()
	e.log.Debug().Msg("engine cleared")
}

// Load replaces the position from a FEN-style string (spec.md §4.8).
func (e *Engine) Load(fen string) error {
	pos, err := board.LoadFEN(fen)
	if err != nil {
		return err
	}
	e.pos = pos
	e.history = nil
	e.sessionSnapshot = nil
	e.moveCache.Purge()
	e.log.Debug().Str("fen", fen).Msg("position loaded")
	return nil
}

// FEN renders the current position.
func (e *Engine) FEN() string {
	return e.pos.FEN()
}

// BoardSnapshot returns a rank-major (rank 12 first) 2D array of piece
// letters ("." for empty), matching spec.md §6's board() → 2D array.
func (e *Engine) BoardSnapshot() [][]string {
	out := make([][]string, board.NumRanks)
	for i := range out {
		rank := board.NumRanks - 1 - i
		row := make([]string, board.NumFiles)
		for file := 0; file < board.NumFiles; file++ {
			p := e.pos.Get(board.NewSquare(file, rank))
			if p == nil {
				row[file] = "."
			} else {
				row[file] = p.String()
			}
		}
		out[i] = row
	}
	return out
}

// Put places a piece, returning false (per spec.md §6/§7's IllegalState
// contract) rather than erroring on a terrain/uniqueness violation.
func (e *Engine) Put(pt board.PieceType, c board.Color, heroic bool, sq board.Square) bool {
	ok := e.pos.Board.Put(&board.Piece{Type: pt, Color: c, Heroic: heroic}, sq)
	if ok && pt == board.Commander {
		e.pos.CommanderSq[c] = sq
	}
	if ok {
		e.moveCache.Purge()
	}
	return ok
}

// Remove removes and returns whatever occupied sq.
func (e *Engine) Remove(sq board.Square) *board.Piece {
	p := e.pos.Board.Remove(sq)
	if p != nil {
		e.moveCache.Purge()
	}
	return p
}

// Get returns the piece currently visible at sq.
func (e *Engine) Get(sq board.Square) *board.Piece {
	return e.pos.Get(sq)
}

// GetHeroicStatus reports pt's heroic flag within the stack at sq.
func (e *Engine) GetHeroicStatus(sq board.Square, pt board.PieceType) bool {
	p := e.pos.Get(sq)
	if p == nil {
		return false
	}
	for _, m := range p.AllMembers() {
		if m.Type == pt {
			return m.Heroic
		}
	}
	return false
}

// SetHeroicStatus sets pt's heroic flag within the stack at sq,
// returning false if sq holds no such member.
func (e *Engine) SetHeroicStatus(sq board.Square, pt board.PieceType, heroic bool) bool {
	_, err := e.pos.SetHeroic(sq, pt, heroic)
	if err == nil {
		e.moveCache.Purge()
	}
	return err == nil
}

// filterHash folds a GenFilter into a well-distributed value so it can
// be xored into a position fingerprint, giving every distinct
// (position, filter) pair its own cache slot (spec.md §4.4's caching
// note).
func filterHash(filter board.GenFilter) uint64 {
	h := uint64(14695981039346656037) // FNV-1a offset basis
	mix := func(v uint64) {
		h ^= v
		h *= 1099511628211 // FNV-1a prime
	}
	mix(uint64(filter.OriginSquare) + 1)
	mix(uint64(filter.PieceType) + 1)
	return h
}

// legalMoves returns (and memoizes) the legal move list for the current
// position under filter.
func (e *Engine) legalMoves(filter board.GenFilter) []board.Move {
	key := e.pos.Fingerprint() ^ filterHash(filter)
	if cached, ok := e.moveCache.Get(key); ok {
		return cached
	}
	moves := e.pos.GenerateLegalMoves(filter).Slice()
	e.moveCache.Add(key, moves)
	return moves
}

// Moves returns the SAN text of every legal move (or sub-move, mid
// deploy session), optionally restricted by filter.
func (e *Engine) Moves(filter board.GenFilter) []string {
	var out []string
	for _, m := range e.legalMoves(filter) {
		out = append(out, m.SAN(e.pos.SideToMove))
	}
	return out
}

// MovesVerbose is Moves but returning full Move values instead of text.
func (e *Engine) MovesVerbose(filter board.GenFilter) []board.Move {
	return e.legalMoves(filter)
}

// Turn, MoveNumber and the state-query family (spec.md §6).
func (e *Engine) Turn() board.Color                  { return e.pos.SideToMove }
func (e *Engine) MoveNumber() int                     { return e.pos.MoveNumber }
func (e *Engine) IsCheck() bool                       { return e.pos.IsCheck() }
func (e *Engine) IsCheckmate() bool                   { return e.pos.IsCheckmate() }
func (e *Engine) IsStalemate() bool                   { return e.pos.IsStalemate() }
func (e *Engine) IsDraw() bool                        { return e.pos.IsDraw() }
func (e *Engine) IsDrawByFiftyMoves() bool            { return e.pos.IsDrawByFiftyMoves() }
func (e *Engine) IsThreefoldRepetition() bool         { return e.pos.IsThreefoldRepetition() }
func (e *Engine) IsGameOver() bool                    { return e.pos.IsGameOver() }
func (e *Engine) GetCommanderSquare(c board.Color) board.Square { return e.pos.CommanderSq[c] }
func (e *Engine) GetAttackers(sq board.Square, c board.Color) []board.Square {
	return e.pos.GetAttackers(sq, c)
}
