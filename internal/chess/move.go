package chess

import (
	"errors"
	"fmt"
)

var ErrInvalidMove = errors.New("invalid move")

type CastleSide uint8

const (
	NoCastle CastleSide = iota
	KingSide
	QueenSide
)

func (c CastleSide) String() string {
	switch c {
	case KingSide:
		return "O-O"
	case QueenSide:
		return "O-O-O"
	case NoCastle:
		return ""
	}
	return ""
}

func (c CastleSide) MarshalText() ([]byte, error) {
	switch c {
	case KingSide:
		return []byte("king"), nil
	case QueenSide:
		return []byte("queen"), nil
	}
	return []byte(""), nil
}

func (c *CastleSide) UnmarshalText(b []byte) error {
	switch string(b) {
	case "king":
		*c = KingSide
	case "queen":
		*c = QueenSide
	case "":
		*c = NoCastle
	default:
		return fmt.Errorf("%w: unknown castle side %q", ErrInvalidMove, b)
	}
	return nil
}

// Move is only meaningful relative to the Position it was generated from.
type Move struct {
	From       Square     `json:"from"`
	To         Square     `json:"to"`
	Capture    bool       `json:"capture,omitempty"`
	Promotion  PieceType  `json:"promotion,omitempty"`
	DoublePush bool       `json:"doublePush,omitempty"`
	EnPassant  bool       `json:"enPassant,omitempty"`
	Castle     CastleSide `json:"castle,omitempty"`
}

// String returns coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPiece {
		s += string(m.Promotion.char())
	}
	return s
}

// SameSquares reports whether two moves share origin, destination and
// promotion choice.
func (m Move) SameSquares(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// ParseMove reads coordinate notation. Only From, To and Promotion are set;
// match it against LegalMoves to obtain the flags.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		m.Promotion = pieceTypeFromChar(s[4] | 0x20)
		if m.Promotion == NoPiece || m.Promotion == King || m.Promotion == Pawn {
			return Move{}, fmt.Errorf("%w: bad promotion in %q", ErrInvalidMove, s)
		}
	}
	return m, nil
}

type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Ply records what applying a move did to the board.
type Ply struct {
	Move           Move            `json:"move"`
	Piece          Piece           `json:"piece"`
	Captured       Piece           `json:"captured"`
	CapturedOn     Square          `json:"capturedOn"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      PieceType       `json:"promotion,omitempty"`
	Notation       string          `json:"notation"`
}

func (p Ply) IsCapture() bool {
	return !p.Captured.IsEmpty()
}
