package chess

import "fmt"

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Forward is the row delta of a pawn advance.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// BackRow is the row holding the side's king and rooks at the start.
func (c Color) BackRow() int {
	if c == White {
		return 7
	}
	return 0
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	switch string(b) {
	case "white", "w":
		*c = White
	case "black", "b":
		*c = Black
	default:
		return fmt.Errorf("unknown color %q", b)
	}
	return nil
}

type PieceType uint8

const (
	NoPiece PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// PromotionTypes lists promotion targets in generation order.
var PromotionTypes = []PieceType{Queen, Rook, Bishop, Knight}

func (p PieceType) String() string {
	switch p {
	case King:
		return "king"
	case Queen:
		return "queen"
	case Rook:
		return "rook"
	case Bishop:
		return "bishop"
	case Knight:
		return "knight"
	case Pawn:
		return "pawn"
	case NoPiece:
		return ""
	}
	return ""
}

// Notation is the SAN letter; pawns have none.
func (p PieceType) Notation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn, NoPiece:
		return ""
	}
	return ""
}

func (p PieceType) char() byte {
	switch p {
	case King:
		return 'k'
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	case Pawn:
		return 'p'
	case NoPiece:
		return 0
	}
	return 0
}

func pieceTypeFromChar(c byte) PieceType {
	switch c {
	case 'k':
		return King
	case 'q':
		return Queen
	case 'r':
		return Rook
	case 'b':
		return Bishop
	case 'n':
		return Knight
	case 'p':
		return Pawn
	}
	return NoPiece
}

func (p PieceType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PieceType) UnmarshalText(b []byte) error {
	s := string(b)
	for _, t := range []PieceType{NoPiece, King, Queen, Rook, Bishop, Knight, Pawn} {
		if s == t.String() {
			*p = t
			return nil
		}
	}
	if len(s) == 1 {
		if t := pieceTypeFromChar(s[0] | 0x20); t != NoPiece {
			*p = t
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", s)
}

// Piece is the content of a square; the zero value is an empty square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece
}

func (p Piece) Is(c Color, t PieceType) bool {
	return p.Type == t && p.Color == c
}

// FEN returns the FEN letter, upper case for white.
func (p Piece) FEN() byte {
	c := p.Type.char()
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return ""
	}
	return p.Color.String() + " " + p.Type.String()
}
