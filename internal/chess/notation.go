package chess

import (
	"strconv"
	"strings"
)

// SAN renders m in standard algebraic notation, including the check or
// mate suffix. m must be legal in p.
func (p *Position) SAN(m Move) string {
	piece := p.Piece(m.From)
	var b strings.Builder
	if m.Castle != NoCastle {
		b.WriteString(m.Castle.String())
	} else {
		b.WriteString(piece.Type.Notation())
		if piece.Type == Pawn {
			if m.Capture {
				b.WriteString(m.From.File())
			}
		} else {
			b.WriteString(p.disambiguation(m, piece))
		}
		if m.Capture {
			b.WriteByte('x')
		}
		b.WriteString(m.To.String())
		if m.Promotion != NoPiece {
			b.WriteByte('=')
			b.WriteString(m.Promotion.Notation())
		}
	}

	next := p.After(m)
	opp := piece.Color.Opponent()
	if next.InCheck(opp) {
		if next.HasLegalMoves(opp) {
			b.WriteByte('+')
		} else {
			b.WriteByte('#')
		}
	}
	return b.String()
}

func (p *Position) disambiguation(m Move, piece Piece) string {
	var ambiguous, sameFile, sameRank bool
	for _, o := range p.LegalMoves(piece.Color) {
		if o.To != m.To || o.From == m.From || p.Piece(o.From).Type != piece.Type {
			continue
		}
		ambiguous = true
		if o.From.X == m.From.X {
			sameFile = true
		}
		if o.From.Y == m.From.Y {
			sameRank = true
		}
	}
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return m.From.File()
	case !sameRank:
		return strconv.Itoa(m.From.Rank())
	default:
		return m.From.String()
	}
}
