package board

import "fmt"

// ErrIncompatibleCombination is returned by Combine/AddToStack when the
// compatibility table has no entry for the requested carrier/carried
// pairing.
type ErrIncompatibleCombination struct {
	Carrier PieceType
	Carried PieceType
}

func (e *ErrIncompatibleCombination) Error() string {
	return fmt.Sprintf("%s cannot carry %s", e.Carrier, e.Carried)
}

// compatibility is the fixed carrier -> allowed-carried table referenced
// by spec.md §4.2 ("Navy may carry Air Force and Tank; Tank may carry
// Infantry; Headquarters may carry the Commander; etc.").
//
// Open Question pin (spec.md §9, see DESIGN.md): Combine/AddToStack only
// ever add one level of nesting — the carried piece they place must
// itself be a lone piece, not already a stack, and every path that
// eventually calls AddToStack (ordinary combination, and a deploy
// session's recombine at Commit) rejects a stacked passenger the same
// way. So no code path in this package currently produces a depth-2
// Carrying chain; the Piece.Carrying field itself stays []*Piece and is
// not structurally capped, but reaching depth 2 is unimplemented rather
// than merely rare. See DESIGN.md's Open Question decision for why this
// is left that way.
var compatibility = map[PieceType]map[PieceType]bool{
	Navy:         {AirForce: true, Tank: true},
	Tank:         {Infantry: true},
	Headquarters: {Commander: true},
}

// CanCarry reports whether carrier may directly carry a piece of type
// carried, per the fixed compatibility table.
func CanCarry(carrier, carried PieceType) bool {
	return compatibility[carrier][carried]
}

// Combine builds a stack piece from an ordered sequence of lone pieces.
// The first element becomes the carrier (spec.md §4.2: "the first
// element's identity is used when the table leaves carrier selection
// implicit"); every other element must be a lone piece compatible with
// that carrier. All pieces must share one color.
func Combine(pieces []*Piece) (*Piece, error) {
	if len(pieces) == 0 {
		return nil, fmt.Errorf("cannot combine zero pieces")
	}
	carrier := pieces[0]
	if carrier.IsStack() {
		return nil, fmt.Errorf("carrier %s is already a stack", carrier.Type)
	}
	result := &Piece{Type: carrier.Type, Color: carrier.Color, Heroic: carrier.Heroic}
	for _, p := range pieces[1:] {
		if p.Color != carrier.Color {
			return nil, fmt.Errorf("cannot combine pieces of different colors")
		}
		if p.IsStack() {
			return nil, fmt.Errorf("carried piece %s is already a stack", p.Type)
		}
		if !CanCarry(carrier.Type, p.Type) {
			return nil, &ErrIncompatibleCombination{Carrier: carrier.Type, Carried: p.Type}
		}
		result.Carrying = append(result.Carrying, p.Clone())
	}
	return result, nil
}

// AddToStack appends a single lone piece to an existing carrier,
// returning the resulting stack. extra must not itself be a stack.
func AddToStack(existing *Piece, extra *Piece) (*Piece, error) {
	if existing == nil {
		return nil, fmt.Errorf("no carrier to add to")
	}
	if extra.IsStack() {
		return nil, fmt.Errorf("carried piece %s is already a stack", extra.Type)
	}
	if extra.Color != existing.Color {
		return nil, fmt.Errorf("cannot combine pieces of different colors")
	}
	if !CanCarry(existing.Type, extra.Type) {
		return nil, &ErrIncompatibleCombination{Carrier: existing.Type, Carried: extra.Type}
	}
	result := existing.Clone()
	result.Carrying = append(result.Carrying, extra.Clone())
	return result, nil
}

// RemoveFromStack removes the first direct passenger of the given type
// from stack, returning the removed piece and the degraded remainder
// (which may no longer be a stack if that was the only passenger). ok is
// false, and stack returned unchanged, if no matching direct passenger
// exists.
func RemoveFromStack(stack *Piece, pieceType PieceType) (removed *Piece, remainder *Piece, ok bool) {
	if stack == nil {
		return nil, stack, false
	}
	for i, c := range stack.Carrying {
		if c.Type == pieceType {
			remainder = stack.Clone()
			removed = remainder.Carrying[i]
			remainder.Carrying = append(remainder.Carrying[:i:i], remainder.Carrying[i+1:]...)
			return removed, remainder, true
		}
	}
	return nil, stack, false
}

// DirectMembers returns the carrier followed by its immediate
// passengers (NOT recursing into a passenger's own Carrying). A
// passenger that is itself a (nested) stack is treated as one atomic
// unit for deploy/split purposes: it cannot be split further until it is
// re-combined, matching the Open Question decision in stack.go's
// compatibility-table comment.
func DirectMembers(stack *Piece) []*Piece {
	if stack == nil {
		return nil
	}
	members := make([]*Piece, 0, 1+len(stack.Carrying))
	members = append(members, &Piece{Type: stack.Type, Color: stack.Color, Heroic: stack.Heroic})
	members = append(members, stack.Carrying...)
	return members
}

// isValidGroup reports whether a set of pieces (each either a lone piece
// or an atomic nested stack, per DirectMembers) can legally occupy one
// square together: a single member is always valid; a multi-member group
// must have exactly one member able to carry every other member.
func isValidGroup(group []*Piece) bool {
	if len(group) == 0 {
		return false
	}
	if len(group) == 1 {
		return true
	}
	for _, candidate := range group {
		if candidate.IsStack() {
			continue // an already-stacked member cannot also carry peers
		}
		ok := true
		for _, other := range group {
			if other == candidate {
				continue
			}
			if !CanCarry(candidate.Type, other.Type) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// GroupToStack combines a validated group (as produced by SplitAll) back
// into the single Piece that would occupy a square, choosing as carrier
// whichever member isValidGroup found able to carry the rest (or the
// lone member itself if the group has size 1).
func GroupToStack(group []*Piece) (*Piece, error) {
	if len(group) == 1 {
		return group[0].Clone(), nil
	}
	for _, candidate := range group {
		if candidate.IsStack() {
			continue
		}
		rest := make([]*Piece, 0, len(group)-1)
		ok := true
		for _, other := range group {
			if other == candidate {
				continue
			}
			if !CanCarry(candidate.Type, other.Type) {
				ok = false
				break
			}
			rest = append(rest, other)
		}
		if ok {
			return Combine(append([]*Piece{candidate}, rest...))
		}
	}
	return nil, fmt.Errorf("no member of group can carry the rest")
}

// SplitAll enumerates every partition of a stack's direct members
// (carrier + immediate passengers, see DirectMembers) into non-empty
// groups that are each individually a valid stack, per spec.md §4.2.
// The result is a list of partitions; each partition is itself a list
// of groups, each group a slice of the pieces that would occupy one
// square together. The enumeration is deterministic (restricted-growth-
// string generation over DirectMembers' order), so repeated calls on an
// identical stack always produce an identical, non-duplicated result.
func SplitAll(stack *Piece) [][][]*Piece {
	members := DirectMembers(stack)
	n := len(members)
	if n == 0 {
		return nil
	}

	var partitions [][][]*Piece
	labels := make([]int, n)

	var recurse func(i, maxLabel int)
	recurse = func(i, maxLabel int) {
		if i == n {
			groups := make([][]*Piece, maxLabel+1)
			for idx, l := range labels {
				groups[l] = append(groups[l], members[idx])
			}
			for _, g := range groups {
				if !isValidGroup(g) {
					return
				}
			}
			partitions = append(partitions, groups)
			return
		}
		for label := 0; label <= maxLabel+1; label++ {
			labels[i] = label
			next := maxLabel
			if label > maxLabel {
				next = label
			}
			recurse(i+1, next)
		}
	}
	recurse(0, -1)
	return partitions
}
