package board

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FEN implements spec.md §4.8's six-field textual position form, plus
// the optional DEPLOY extension for an active session.

func pieceToken(p *Piece) string {
	var sb strings.Builder
	members := p.AllMembers()
	if len(members) == 1 {
		if p.Heroic {
			sb.WriteByte('+')
		}
		sb.WriteByte(letterFor(p))
		return sb.String()
	}
	sb.WriteByte('(')
	for _, m := range members {
		if m.Heroic {
			sb.WriteByte('+')
		}
		sb.WriteByte(letterFor(m))
	}
	sb.WriteByte(')')
	return sb.String()
}

func letterFor(p *Piece) byte {
	l := p.Type.Letter()
	if p.Color == Red {
		return upper(l)
	}
	return l
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// FEN renders the position's current board, turn, and counters, with
// the DEPLOY extension appended if a session is active.
func (pos *Position) FEN() string {
	var rows []string
	for rank := NumRanks - 1; rank >= 0; rank-- {
		var sb strings.Builder
		empties := 0
		for file := 0; file < NumFiles; file++ {
			sq := NewSquare(file, rank)
			p := pos.Get(sq)
			if p == nil {
				empties++
				continue
			}
			if empties > 0 {
				sb.WriteString(strconv.Itoa(empties))
				empties = 0
			}
			sb.WriteString(pieceToken(p))
		}
		if empties > 0 {
			sb.WriteString(strconv.Itoa(empties))
		}
		rows = append(rows, sb.String())
	}

	active := "r"
	if pos.SideToMove == Blue {
		active = "b"
	}

	fields := []string{
		strings.Join(rows, "/"),
		active,
		"-",
		"-",
		strconv.Itoa(pos.HalfMoveClock),
		strconv.Itoa(pos.MoveNumber),
	}
	out := strings.Join(fields, " ")
	if pos.Deploy != nil {
		out += " " + deployExtension(pos.Deploy)
	}
	return out
}

func deployExtension(d *DeploySession) string {
	var remaining strings.Builder
	for _, p := range d.Remaining {
		remaining.WriteByte(letterFor(p))
	}
	var changes []string
	for sq, p := range d.Shadow {
		if p == nil {
			changes = append(changes, sq.String()+"=-")
		} else {
			changes = append(changes, sq.String()+"="+pieceToken(p))
		}
	}
	return "DEPLOY " + d.StackSquare.String() + ":" + remaining.String() + " " +
		strconv.Itoa(len(d.Commands)) + " " + strings.Join(changes, ",")
}

// LoadFEN parses a position's first six fields (the DEPLOY extension,
// if present, is parsed by loadDeployExtension below, since rebuilding a
// session also needs the already-parsed board).
func LoadFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 6 {
		return nil, errors.Errorf("LoadFEN: expected at least 6 fields, got %d", len(fields))
	}
	pos := NewEmptyPosition()
	if err := loadPlacement(pos, fields[0]); err != nil {
		return nil, err
	}
	switch fields[1] {
	case "r":
		pos.SideToMove = Red
	case "b":
		pos.SideToMove = Blue
	default:
		return nil, errors.Errorf("LoadFEN: invalid active color %q", fields[1])
	}
	halfMove, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, errors.Wrap(err, "LoadFEN: half-move clock")
	}
	pos.HalfMoveClock = halfMove
	moveNumber, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, errors.Wrap(err, "LoadFEN: move number")
	}
	pos.MoveNumber = moveNumber
	pos.PositionCounts[pos.Fingerprint()] = 1

	if len(fields) > 6 && fields[6] == "DEPLOY" {
		if err := loadDeployExtension(pos, fields[7:]); err != nil {
			return nil, err
		}
	}
	return pos, nil
}

func loadPlacement(pos *Position, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != NumRanks {
		return errors.Errorf("LoadFEN: expected %d ranks, got %d", NumRanks, len(rows))
	}
	for i, row := range rows {
		rank := NumRanks - 1 - i
		file := 0
		runes := []byte(row)
		for j := 0; j < len(runes); j++ {
			c := runes[j]
			if c >= '0' && c <= '9' {
				n, rest := parseInt(runes[j:])
				file += n
				j += rest - 1
				continue
			}
			piece, consumed, err := parsePieceToken(runes[j:])
			if err != nil {
				return err
			}
			sq := NewSquare(file, rank)
			if !pos.Board.Put(piece, sq) {
				return errors.Errorf("LoadFEN: illegal placement of %s at %s", piece.Type, sq)
			}
			if piece.Type == Commander {
				pos.CommanderSq[piece.Color] = sq
			}
			file++
			j += consumed - 1
		}
	}
	return nil
}

func parseInt(b []byte) (int, int) {
	i := 0
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	n, _ := strconv.Atoi(string(b[:i]))
	return n, i
}

// parsePieceToken parses one square's token: a lone piece (optional `+`
// then a letter) or a parenthesized stack, returning the piece and the
// number of bytes consumed.
func parsePieceToken(b []byte) (*Piece, int, error) {
	if b[0] != '(' {
		heroic := false
		i := 0
		if b[0] == '+' {
			heroic = true
			i++
		}
		pt, color, err := parseLetter(b[i])
		if err != nil {
			return nil, 0, err
		}
		return &Piece{Type: pt, Color: color, Heroic: heroic}, i + 1, nil
	}
	i := 1
	var members []*Piece
	for i < len(b) && b[i] != ')' {
		heroic := false
		if b[i] == '+' {
			heroic = true
			i++
		}
		pt, color, err := parseLetter(b[i])
		if err != nil {
			return nil, 0, err
		}
		members = append(members, &Piece{Type: pt, Color: color, Heroic: heroic})
		i++
	}
	if i >= len(b) {
		return nil, 0, errors.New("LoadFEN: unterminated stack token")
	}
	i++ // consume ')'
	stack, err := Combine(members)
	if err != nil {
		return nil, 0, err
	}
	return stack, i, nil
}

func parseLetter(c byte) (PieceType, Color, error) {
	color := Blue
	lc := c
	if c >= 'A' && c <= 'Z' {
		color = Red
		lc = c + ('a' - 'A')
	}
	pt := PieceTypeFromLetter(lc)
	if pt == NoPieceType {
		return 0, 0, errors.Errorf("LoadFEN: unknown piece letter %q", c)
	}
	return pt, color, nil
}

// loadDeployExtension parses the DEPLOY suffix's fields (already split
// on whitespace, with "DEPLOY" itself stripped) and rebuilds the
// session: origin, remaining pieces (by type and color only), and
// virtual changes. The sub-move count field is skipped, so the rebuilt
// session has no recorded Commands or recombine instructions.
func loadDeployExtension(pos *Position, fields []string) error {
	if len(fields) < 1 {
		return errors.New("LoadFEN: empty DEPLOY extension")
	}
	head := strings.SplitN(fields[0], ":", 2)
	if len(head) != 2 {
		return errors.New("LoadFEN: malformed DEPLOY origin:remaining field")
	}
	origin, err := ParseSquare(head[0])
	if err != nil {
		return errors.Wrap(err, "LoadFEN: DEPLOY origin")
	}
	original := pos.Board.Get(origin)
	if original == nil {
		return errors.Errorf("LoadFEN: DEPLOY origin %s is empty", origin)
	}
	session := NewDeploySession(origin, original, pos.Fingerprint())

	var remaining []*Piece
	for _, c := range []byte(head[1]) {
		pt, color, err := parseLetter(c)
		if err != nil {
			return err
		}
		remaining = append(remaining, &Piece{Type: pt, Color: color})
	}
	session.Remaining = remaining

	if len(fields) > 2 && fields[2] != "" {
		for _, term := range strings.Split(fields[2], ",") {
			kv := strings.SplitN(term, "=", 2)
			if len(kv) != 2 {
				continue
			}
			sq, err := ParseSquare(kv[0])
			if err != nil {
				return err
			}
			if kv[1] == "-" {
				session.Shadow[sq] = nil
				continue
			}
			piece, _, err := parsePieceToken([]byte(kv[1]))
			if err != nil {
				return err
			}
			session.Shadow[sq] = piece
		}
	}
	pos.Deploy = session
	return nil
}
