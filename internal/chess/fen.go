package chess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrInvalidFEN = errors.New("invalid fen")

// ParseFEN builds a Position from Forsyth-Edwards Notation.
func ParseFEN(fen string) (Position, error) {
	p := Position{EnPassant: NoSquare}
	segments := strings.Fields(fen)
	if len(segments) != 6 {
		return p, fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	rows := strings.Split(segments[0], "/")
	if len(rows) != 8 {
		return p, fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for y, row := range rows {
		x := 0
		for i := 0; i < len(row); i++ {
			c := row[i]
			if c >= '1' && c <= '8' {
				x += int(c - '0')
				continue
			}
			t := pieceTypeFromChar(c | 0x20)
			if t == NoPiece {
				return p, fmt.Errorf("%w: unknown symbol '%c'", ErrInvalidFEN, c)
			}
			if x >= 8 {
				return p, fmt.Errorf("%w: row %d overflows", ErrInvalidFEN, y+1)
			}
			color := Black
			if c < 'a' {
				color = White
			}
			p.Board[y][x] = Piece{Type: t, Color: color}
			x++
		}
		if x != 8 {
			return p, fmt.Errorf("%w: row %d has %d files", ErrInvalidFEN, y+1, x)
		}
	}
	if _, ok := p.KingSquare(White); !ok {
		return p, fmt.Errorf("%w: white king missing", ErrInvalidFEN)
	}
	if _, ok := p.KingSquare(Black); !ok {
		return p, fmt.Errorf("%w: black king missing", ErrInvalidFEN)
	}

	switch segments[1] {
	case "w":
		p.Turn = White
	case "b":
		p.Turn = Black
	default:
		return p, fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if segments[2] != "-" {
		if len(segments[2]) > 4 {
			return p, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
		for _, r := range segments[2] {
			switch r {
			case 'K':
				p.Castling.WhiteKingSide = true
			case 'Q':
				p.Castling.WhiteQueenSide = true
			case 'k':
				p.Castling.BlackKingSide = true
			case 'q':
				p.Castling.BlackQueenSide = true
			default:
				return p, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
			}
		}
	}

	if segments[3] != "-" {
		sq, err := ParseSquare(segments[3])
		if err != nil || (sq.Rank() != 3 && sq.Rank() != 6) {
			return p, fmt.Errorf("%w: invalid en passant square %q", ErrInvalidFEN, segments[3])
		}
		p.EnPassant = sq
	}

	half, err := strconv.Atoi(segments[4])
	if err != nil || half < 0 {
		return p, fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	p.HalfMoveClock = half

	full, err := strconv.Atoi(segments[5])
	if err != nil || full < 1 {
		return p, fmt.Errorf("%w: invalid full move number", ErrInvalidFEN)
	}
	p.FullMoveNumber = full

	return p, nil
}

// MustParseFEN panics on malformed input; for tests and literals.
func MustParseFEN(fen string) Position {
	p, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

// FEN dumps the position.
func (p *Position) FEN() string {
	var b strings.Builder
	for y := 0; y < 8; y++ {
		skip := 0
		for x := 0; x < 8; x++ {
			pc := p.Board[y][x]
			if pc.IsEmpty() {
				skip++
				continue
			}
			if skip > 0 {
				b.WriteByte(byte('0' + skip))
				skip = 0
			}
			b.WriteByte(pc.FEN())
		}
		if skip > 0 {
			b.WriteByte(byte('0' + skip))
		}
		if y < 7 {
			b.WriteByte('/')
		}
	}

	if p.Turn == White {
		b.WriteString(" w ")
	} else {
		b.WriteString(" b ")
	}

	rights := ""
	if p.Castling.WhiteKingSide {
		rights += "K"
	}
	if p.Castling.WhiteQueenSide {
		rights += "Q"
	}
	if p.Castling.BlackKingSide {
		rights += "k"
	}
	if p.Castling.BlackQueenSide {
		rights += "q"
	}
	if rights == "" {
		rights = "-"
	}
	b.WriteString(rights)
	b.WriteByte(' ')
	b.WriteString(p.EnPassant.String())
	fmt.Fprintf(&b, " %d %d", p.HalfMoveClock, p.FullMoveNumber)
	return b.String()
}
