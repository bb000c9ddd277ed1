package board

// GenFilter restricts move generation by origin square and/or piece
// type (spec.md §4.4: "Filter options: restrict by origin square, piece
// type, or both"). Use AnyFilter for "no restriction" — the zero value
// does NOT mean wildcard, since Square(0) and PieceType(0) are both
// meaningful (a1, Commander).
type GenFilter struct {
	OriginSquare Square
	PieceType    PieceType
}

// AnyFilter matches every square and piece type.
func AnyFilter() GenFilter {
	return GenFilter{OriginSquare: NoSquare, PieceType: NoPieceType}
}

func (f GenFilter) matches(sq Square, pt PieceType) bool {
	if f.OriginSquare.IsValid() && f.OriginSquare != sq {
		return false
	}
	if f.PieceType != NoPieceType && f.PieceType != pt {
		return false
	}
	return true
}

// lineResult is the outcome of scanning one ray from a moving piece's
// square: every empty square passed through (legal quiet destinations,
// subject to the caller's terrain filter), at most one capture target,
// and at most one combination target.
type lineResult struct {
	Quiet   []Square
	Capture Square
	Combo   Square
}

// scanLine walks from sq (exclusive) along d for up to maxRange steps.
// ignoreFriendlyBlock lets the ray continue past a friendly occupant
// instead of stopping there (AirForce's quiet moves); pathTerrain, when
// non-nil, must hold for every square walked over or the ray stops
// immediately (Navy's water-only path).
func scanLine(pos *Position, sq Square, d Direction, maxRange int, pt, occupantCarryCheck PieceType, color Color, ignoreFriendlyBlock bool, pathTerrain func(Square) bool) lineResult {
	res := lineResult{Capture: NoSquare, Combo: NoSquare}
	cur := sq
	for i := 0; i < maxRange; i++ {
		next, ok := Step(cur, d)
		if !ok {
			break
		}
		if pathTerrain != nil && !pathTerrain(next) {
			break
		}
		occ := pos.Get(next)
		if occ == nil {
			res.Quiet = append(res.Quiet, next)
			cur = next
			continue
		}
		if occ.Color != color {
			res.Capture = next
			return res
		}
		if res.Combo == NoSquare && CanCarry(occ.Type, occupantCarryCheck) {
			res.Combo = next
		}
		if ignoreFriendlyBlock {
			cur = next
			continue
		}
		return res
	}
	return res
}

func waterPath(sq Square) bool { return TerrainLegalFor(Navy, sq) }

// GenerateDestinations computes every pseudo-legal destination reachable
// by a piece of the given type/color/heroic status standing at sq,
// without regard to whose turn it is or whether sq actually holds that
// piece — used both for ordinary move generation (the whole stack moves
// using its carrier's rules) and for deploy sub-move generation (one
// passenger moves as if it stood alone at the origin).
func (pos *Position) GenerateDestinations(sq Square, pt PieceType, color Color, heroic bool) []Move {
	switch pt {
	case Commander:
		return pos.commanderDestinations(sq, color)
	case Infantry:
		dirs := Orthogonal
		if heroic {
			dirs = AllDirections
		}
		return simpleStepMoves(pos, sq, pt, color, dirs, 1, false)
	case Militia:
		return simpleStepMoves(pos, sq, pt, color, AllDirections, 1, false)
	case Headquarters:
		if !heroic {
			return nil
		}
		return simpleStepMoves(pos, sq, pt, color, AllDirections, 1, false)
	case Tank:
		r := 2
		if heroic {
			r = 3
		}
		return slideMoves(pos, sq, pt, color, Orthogonal, r, false, nil)
	case Engineer:
		r := 1
		if heroic {
			r = 2
		}
		return slideMoves(pos, sq, pt, color, Orthogonal, r, false, nil)
	case AntiAir:
		return simpleStepMoves(pos, sq, pt, color, AllDirections, 1, false)
	case Artillery:
		return artilleryDestinations(pos, sq, color, heroic)
	case Missile:
		return missileDestinations(pos, sq, color, heroic)
	case AirForce:
		return airForceDestinations(pos, sq, color, heroic)
	case Navy:
		return navyDestinations(pos, sq, color, heroic)
	default:
		return nil
	}
}

func moveKindFor(pt PieceType, to Square, res lineResult) (Move, bool) {
	switch to {
	case res.Capture:
		return Move{Kind: MoveCaptureReplace, To: to, Piece: pt}, true
	case res.Combo:
		return Move{Kind: MoveCombination, To: to, Piece: pt}, true
	}
	for _, q := range res.Quiet {
		if q == to {
			return Move{Kind: MoveNormal, To: to, Piece: pt}, true
		}
	}
	return Move{}, false
}

func collectLine(pos *Position, sq Square, pt PieceType, color Color, res lineResult) []Move {
	var out []Move
	for _, q := range res.Quiet {
		if TerrainLegalFor(pt, q) {
			out = append(out, Move{Kind: MoveNormal, From: sq, To: q, Piece: pt, Captured: NoPieceType})
		}
	}
	if res.Capture != NoSquare {
		captured := pos.Get(res.Capture)
		out = append(out, Move{Kind: MoveCaptureReplace, From: sq, To: res.Capture, Piece: pt, Captured: captured.Type})
	}
	if res.Combo != NoSquare && TerrainLegalFor(pt, res.Combo) {
		out = append(out, Move{Kind: MoveCombination, From: sq, To: res.Combo, Piece: pt, Captured: NoPieceType})
	}
	return out
}

func slideMoves(pos *Position, sq Square, pt PieceType, color Color, dirs []Direction, r int, ignoreFriendly bool, pathTerrain func(Square) bool) []Move {
	var out []Move
	for _, d := range dirs {
		res := scanLine(pos, sq, d, r, pt, pt, color, ignoreFriendly, pathTerrain)
		out = append(out, collectLine(pos, sq, pt, color, res)...)
	}
	return out
}

func simpleStepMoves(pos *Position, sq Square, pt PieceType, color Color, dirs []Direction, r int, ignoreFriendly bool) []Move {
	return slideMoves(pos, sq, pt, color, dirs, r, ignoreFriendly, nil)
}

// commanderDestinations implements one-step movement in any of the
// eight directions plus the flying-general long-range capture of the
// opposing Commander along a clear file or rank (spec.md §4.4).
func (pos *Position) commanderDestinations(sq Square, color Color) []Move {
	out := simpleStepMoves(pos, sq, Commander, color, AllDirections, 1, false)
	enemySq := pos.CommanderSq[color.Other()]
	if !enemySq.IsValid() {
		return out
	}
	if !sq.SameFile(enemySq) && !sq.SameRank(enemySq) {
		return out
	}
	clear := true
	for _, between := range Between(sq, enemySq) {
		if !pos.IsEmpty(between) {
			clear = false
			break
		}
	}
	if clear {
		out = append(out, Move{Kind: MoveCaptureReplace, From: sq, To: enemySq, Piece: Commander, Captured: Commander})
	}
	return out
}

// artilleryDestinations: quiet moves slide up to 3 squares orthogonally,
// blocked by the first occupant of either color (cannot move through
// friendlies, per spec.md §4.4). Captures ignore blockers entirely and
// are rendered as stay-capture, since artillery "can affect that square
// but cannot end on it."
func artilleryDestinations(pos *Position, sq Square, color Color, heroic bool) []Move {
	r := 3
	if heroic {
		r = 4
	}
	var out []Move
	for _, d := range Orthogonal {
		res := scanLine(pos, sq, d, r, Artillery, Artillery, color, false, nil)
		for _, q := range res.Quiet {
			if TerrainLegalFor(Artillery, q) {
				out = append(out, Move{Kind: MoveNormal, From: sq, To: q, Piece: Artillery, Captured: NoPieceType})
			}
		}
		for _, s := range RayScan(sq, d, r) {
			target := pos.Get(s)
			if target != nil && target.Color != color {
				out = append(out, Move{Kind: MoveStayCapture, From: sq, To: s, Piece: Artillery, Captured: target.Type})
			}
		}
	}
	return out
}

// missileDestinations: long-range orthogonal attacker, normally-blocked
// quiet moves, subject to the air-defense filter applied by the
// generation entry points below.
func missileDestinations(pos *Position, sq Square, color Color, heroic bool) []Move {
	r := 4
	if heroic {
		r = 5
	}
	return slideMoves(pos, sq, Missile, color, Orthogonal, r, false, nil)
}

// airForceDestinations: long-range any-direction mover that ignores
// friendly blocking on quiet moves; captures a non-Navy enemy by
// landing on it, but a Navy enemy only via suicide-capture (mover and
// target both removed). The air-defense filter (with an explicit
// kamikaze exemption for the suicide-capture case) is applied by the
// generation entry points below.
func airForceDestinations(pos *Position, sq Square, color Color, heroic bool) []Move {
	r := 4
	if heroic {
		r = 5
	}
	var out []Move
	for _, d := range AllDirections {
		res := scanLine(pos, sq, d, r, AirForce, AirForce, color, true, nil)
		for _, q := range res.Quiet {
			if TerrainLegalFor(AirForce, q) {
				out = append(out, Move{Kind: MoveNormal, From: sq, To: q, Piece: AirForce, Captured: NoPieceType})
			}
		}
		if res.Capture != NoSquare {
			target := pos.Get(res.Capture)
			if target.Type == Navy {
				out = append(out, Move{Kind: MoveSuicideCapture, From: sq, To: res.Capture, Piece: AirForce, Captured: Navy})
			} else {
				out = append(out, Move{Kind: MoveCaptureReplace, From: sq, To: res.Capture, Piece: AirForce, Captured: target.Type})
			}
		}
		if res.Combo != NoSquare && TerrainLegalFor(AirForce, res.Combo) {
			out = append(out, Move{Kind: MoveCombination, From: sq, To: res.Combo, Piece: AirForce, Captured: NoPieceType})
		}
	}
	return out
}

// navyDestinations: slides along files/ranks while staying over water
// (the mixed file counts as water for path purposes); attacking an
// enemy standing on water is a capture-replace out to range 4, while
// bombarding an enemy standing on land is a stay-capture out to range 3
// (spec.md §4.4's "variable effective range when attacking a land
// target... vs attacking on water").
func navyDestinations(pos *Position, sq Square, color Color, heroic bool) []Move {
	waterRange, landRange := 4, 3
	if heroic {
		waterRange, landRange = 5, 4
	}
	var out []Move
	for _, d := range Orthogonal {
		res := scanLine(pos, sq, d, waterRange, Navy, Navy, color, false, waterPath)
		out = append(out, collectLine(pos, sq, Navy, color, res)...)

		blocked := false
		for i, s := range RayScan(sq, d, landRange) {
			_ = i
			if TerrainOf(s) != TerrainLand {
				continue // water and mixed squares are already covered by the water-range scan above
			}
			target := pos.Get(s)
			if target == nil {
				continue // land squares Navy cannot enter are simply not quiet destinations
			}
			if blocked {
				break
			}
			if target.Color != color {
				out = append(out, Move{Kind: MoveStayCapture, From: sq, To: s, Piece: Navy, Captured: target.Type})
			}
			blocked = true
		}
	}
	return out
}

// GeneratePseudoLegalMoves emits every candidate move for the side to
// move (or, mid deploy-session, every candidate sub-move), filtered by
// terrain and the air-defense map but not yet by check/exposure
// (spec.md §4.4's pseudo_legal).
func (pos *Position) GeneratePseudoLegalMoves(filter GenFilter) *MoveList {
	ml := NewMoveList()
	if pos.Deploy != nil {
		pos.generateDeploySubMoves(ml, filter)
		return ml
	}
	defense := NewAirDefenseMap()
	defense.RecomputeAll(pos)
	pos.Board.ForEachPiece(pos.SideToMove, func(sq Square, p *Piece) {
		if !filter.matches(sq, p.Type) {
			return
		}
		for _, m := range pos.GenerateDestinations(sq, p.Type, p.Color, p.Heroic) {
			m.From = sq
			if airDefenseBlocks(defense, p.Type, p.Color, m) {
				continue
			}
			ml.Add(m)
		}
	})
	return ml
}

// airDefenseBlocks reports whether m should be suppressed by the
// moving side's *opponent's* air-defense zone. Only AirForce and
// Missile are subject to it; an AirForce suicide-capture is explicitly
// exempt (Open Question resolution, see DESIGN.md: "kamikaze into
// defended zones is allowed").
func airDefenseBlocks(defense *AirDefenseMap, pt PieceType, color Color, m Move) bool {
	if pt != AirForce && pt != Missile {
		return false
	}
	if m.Kind == MoveSuicideCapture {
		return false
	}
	return defense.Defended(color.Other(), m.To)
}

func (pos *Position) generateDeploySubMoves(ml *MoveList, filter GenFilter) {
	d := pos.Deploy
	defense := NewAirDefenseMap()
	defense.RecomputeAll(pos)
	for _, p := range d.Remaining {
		if !filter.matches(d.StackSquare, p.Type) {
			continue
		}
		for _, m := range pos.GenerateDestinations(d.StackSquare, p.Type, p.Color, p.Heroic) {
			m.From = d.StackSquare
			m.Kind = MoveDeployStep
			if airDefenseBlocks(defense, p.Type, p.Color, m) {
				continue
			}
			ml.Add(m)
		}
	}
	for _, opt := range d.RecombineOptions() {
		ml.Add(Move{Kind: MoveRecombine, From: d.StackSquare, To: opt.Target, Piece: opt.Piece.Type})
	}
}

// GenerateLegalMoves applies the §4.5 legality filter (tentative apply,
// test commander safety, undo) on top of the pseudo-legal set.
func (pos *Position) GenerateLegalMoves(filter GenFilter) *MoveList {
	pseudo := pos.GeneratePseudoLegalMoves(filter)
	out := NewMoveList()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if pos.IsLegalMove(m) {
			out.Add(m)
		}
	}
	return out
}

// GenerateLegalFromSquare is GenerateLegalMoves restricted to one
// origin, used by UI-style piece selection (spec.md §4.4).
func (pos *Position) GenerateLegalFromSquare(sq Square) *MoveList {
	return pos.GenerateLegalMoves(GenFilter{OriginSquare: sq, PieceType: NoPieceType})
}

// DeployOptions generates every legal next sub-move of the active
// deploy session, including recombines.
func (pos *Position) DeployOptions() *MoveList {
	if pos.Deploy == nil {
		return NewMoveList()
	}
	return pos.GenerateLegalMoves(AnyFilter())
}
