package board

// Zobrist-style fingerprinting, grounded on the teacher's zobrist.go
// (fixed-seed xorshift PRNG, init()-time table construction). Generalized
// from "one key per (color, type, square)" to also fold in heroic status
// and a stack member's position within its carrier's Carrying sequence,
// since two positions that differ only in what a Navy is carrying (or in
// which of its passengers is heroic) must fingerprint differently.
const maxStackDepth = 8

var (
	zobristPiece  [2][int(NoPieceType)][2][NumSquares]uint64 // [Color][PieceType][heroic 0/1][Square]
	zobristOrder  [maxStackDepth]uint64                       // position within a stack's flattened member order
	zobristSide   uint64
	zobristDeploy uint64 // mixed in once per active deploy session, keyed further below
)

type prng struct{ state uint64 }

func newPRNG(seed uint64) *prng { return &prng{state: seed} }

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func init() {
	rng := newPRNG(0xC07A13EE5EED1234) // fixed seed, reproducible fingerprints

	for c := Red; c <= Blue; c++ {
		for pt := 0; pt < int(NoPieceType); pt++ {
			for heroic := 0; heroic < 2; heroic++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPiece[c][pt][heroic][sq] = rng.next()
				}
			}
		}
	}
	for i := range zobristOrder {
		zobristOrder[i] = rng.next()
	}
	zobristSide = rng.next()
	zobristDeploy = rng.next()
}

func heroicIdx(h bool) int {
	if h {
		return 1
	}
	return 0
}

// hashStackAt folds in every member of the stack occupying sq, in
// flattened (carrier-first, depth-first) order.
func hashStackAt(sq Square, p *Piece) uint64 {
	var h uint64
	for i, member := range p.AllMembers() {
		order := i
		if order >= maxStackDepth {
			order = maxStackDepth - 1
		}
		h ^= zobristPiece[member.Color][member.Type][heroicIdx(member.Heroic)][sq] ^ zobristOrder[order]
	}
	return h
}

// Fingerprint computes a canonical hash of the position, per spec.md §3
// ("Fingerprint excludes the half-move counter and move number") and
// SPEC_FULL.md's extension: it also folds in an active deploy session's
// origin square and the sub-moves applied so far, so a mid-deploy
// position never aliases the equivalent non-deploy position in the
// repetition map or the move-generator cache.
func (p *Position) Fingerprint() uint64 {
	var h uint64
	p.Board.ForEachPiece(NoColor, func(sq Square, piece *Piece) {
		h ^= hashStackAt(sq, piece)
	})
	if p.SideToMove == Blue {
		h ^= zobristSide
	}
	if p.Deploy != nil {
		h ^= zobristDeploy
		h ^= zobristPiece[p.Deploy.OriginColor][Commander][0][p.Deploy.StackSquare] // cheap origin-square salt
		for i, cmd := range p.Deploy.Commands {
			order := i
			if order >= maxStackDepth {
				order = maxStackDepth - 1
			}
			h ^= zobristOrder[order] ^ uint64(cmd.Move.From)<<1 ^ uint64(cmd.Move.To)<<17 ^ uint64(cmd.Move.Piece)<<33
		}
	}
	return h
}
