package board

import "strings"

func letterForTypeColor(pt PieceType, c Color) byte {
	l := pt.Letter()
	if c == Red {
		return upper(l)
	}
	return l
}

// SAN renders a single, already-applied non-deploy move as spec.md
// §4.8's SAN-like text: piece letter, origin, a kind marker, destination.
// color is the mover's color (Move itself carries no color).
func (m Move) SAN(color Color) string {
	var sb strings.Builder
	sb.WriteByte(letterForTypeColor(m.Piece, color))
	sb.WriteString(m.From.String())
	switch m.Kind {
	case MoveCaptureReplace:
		sb.WriteByte('x')
	case MoveStayCapture:
		sb.WriteByte('!')
	case MoveSuicideCapture:
		sb.WriteByte('~')
	case MoveCombination:
		sb.WriteByte('&')
	default:
		sb.WriteByte('-')
	}
	sb.WriteString(m.To.String())
	return sb.String()
}

// DeploySAN renders a completed deploy session as spec.md §4.8's
// comma-joined sub-move sequence preceded by the origin: each DeployStep
// token is rendered like SAN() (minus the repeated origin), and each
// Recombine is rendered as a token pointing at its already-deployed
// target.
func DeploySAN(origin Square, color Color, commands []DeployCommand, recombines []RecombineInstruction) string {
	var parts []string
	for _, cmd := range commands {
		m := cmd.Move
		var sb strings.Builder
		sb.WriteByte(letterForTypeColor(m.Piece, color))
		switch m.Kind {
		case MoveCaptureReplace:
			sb.WriteByte('x')
		default:
			sb.WriteByte('-')
		}
		sb.WriteString(m.To.String())
		parts = append(parts, sb.String())
	}
	for _, r := range recombines {
		parts = append(parts, string(letterForTypeColor(r.Piece.Type, color))+"^"+r.Target.String())
	}
	return origin.String() + ":" + strings.Join(parts, ",")
}
