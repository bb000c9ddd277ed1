package board

// AirDefenseMap is derived state (spec.md §4.3): for one color, the set
// of squares influenced by that color's air-defense sources, plus which
// source squares influence each one. It is consulted, never mutated
// directly, by the move generator's AirForce/Missile filtering.
type AirDefenseMap struct {
	influenced [2]Bitset          // per color: union of every square its sources reach
	sources    [2]map[Square]Bitset // per color, per influenced square: which source squares reach it
}

// NewAirDefenseMap returns an empty map; call RecomputeAll to populate it.
func NewAirDefenseMap() *AirDefenseMap {
	return &AirDefenseMap{
		sources: [2]map[Square]Bitset{make(map[Square]Bitset), make(map[Square]Bitset)},
	}
}

// airDefenseLevel reports the influence level of a piece, and whether it
// is an air-defense source at all. Open Question pin (spec.md §9, see
// DESIGN.md): non-heroic AntiAir is level 1; heroic AntiAir is level 2;
// a heroic Missile is granted level-3 anti-air semantics per spec.md
// §4.3's "any other piece granted anti-air semantics by the rules (e.g.,
// heroic Missile)"; a non-heroic Missile is not a source.
func airDefenseLevel(p *Piece) (level int, isSource bool) {
	switch {
	case p.Type == AntiAir && !p.Heroic:
		return 1, true
	case p.Type == AntiAir && p.Heroic:
		return 2, true
	case p.Type == Missile && p.Heroic:
		return 3, true
	default:
		return 0, false
	}
}

// levelRange returns (orthogonalSteps, diagonalSteps) for a source level,
// per spec.md §4.3's table.
func levelRange(level int) (orth, diag int) {
	switch level {
	case 1:
		return 2, 1
	case 2:
		return 3, 2
	case 3:
		return 4, 3
	default:
		return 0, 0
	}
}

// reach computes every square a source at sq with the given level
// influences: the listed number of orthogonal steps in each of the four
// orthogonal directions, and the listed number of diagonal steps in each
// of the four diagonal directions. Influence is unobstructed (it
// represents a zone, not a blockable line of fire).
func reach(sq Square, level int) Bitset {
	orth, diag := levelRange(level)
	var out Bitset
	for _, d := range Orthogonal {
		for _, s := range RayScan(sq, d, orth) {
			out = out.Set(s)
		}
	}
	for _, d := range Diagonal {
		for _, s := range RayScan(sq, d, diag) {
			out = out.Set(s)
		}
	}
	return out
}

// RecomputeAll rebuilds the entire map from scratch by scanning every
// piece on the board (spec.md §4.3's recompute_all).
func (m *AirDefenseMap) RecomputeAll(pos *Position) {
	m.influenced[Red] = EmptyBitset
	m.influenced[Blue] = EmptyBitset
	m.sources[Red] = make(map[Square]Bitset)
	m.sources[Blue] = make(map[Square]Bitset)

	pos.Board.ForEachPiece(NoColor, func(sq Square, p *Piece) {
		for _, member := range p.AllMembers() {
			m.placeSource(sq, member)
		}
	})
}

func (m *AirDefenseMap) placeSource(sq Square, member *Piece) {
	level, ok := airDefenseLevel(member)
	if !ok {
		return
	}
	c := member.Color
	zone := reach(sq, level)
	m.influenced[c] = m.influenced[c].Or(zone)
	zone.ForEach(func(target Square) {
		m.sources[c][target] = m.sources[c][target].Set(sq)
	})
}

func (m *AirDefenseMap) removeSource(sq Square, member *Piece) {
	level, ok := airDefenseLevel(member)
	if !ok {
		return
	}
	c := member.Color
	zone := reach(sq, level)
	zone.ForEach(func(target Square) {
		remaining := m.sources[c][target].Clear(sq)
		if remaining.Empty() {
			delete(m.sources[c], target)
		} else {
			m.sources[c][target] = remaining
		}
	})
	m.influenced[c] = EmptyBitset
	for target := range m.sources[c] {
		m.influenced[c] = m.influenced[c].Set(target)
	}
}

// UpdateOnPlace incrementally folds in every air-defense-capable member
// of a piece newly placed at sq.
func (m *AirDefenseMap) UpdateOnPlace(sq Square, p *Piece) {
	if p == nil {
		return
	}
	for _, member := range p.AllMembers() {
		m.placeSource(sq, member)
	}
}

// UpdateOnRemove incrementally retracts every air-defense-capable member
// of a piece that just left sq.
func (m *AirDefenseMap) UpdateOnRemove(sq Square, p *Piece) {
	if p == nil {
		return
	}
	for _, member := range p.AllMembers() {
		m.removeSource(sq, member)
	}
}

// Defended reports whether sq is within color c's air-defense influence.
func (m *AirDefenseMap) Defended(c Color, sq Square) bool {
	return m.influenced[c].IsSet(sq)
}

// SourcesAt returns the set of squares of color c whose air-defense zone
// covers sq.
func (m *AirDefenseMap) SourcesAt(c Color, sq Square) Bitset {
	return m.sources[c][sq]
}
