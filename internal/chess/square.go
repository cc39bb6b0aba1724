package chess

import (
	"errors"
	"fmt"
)

var ErrInvalidSquare = errors.New("invalid square")

// Square addresses a cell of the grid. X is the file (0 = a), Y is the row
// counted from the top of the board (0 = rank 8, 7 = rank 1).
type Square struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NoSquare marks an absent square, e.g. no en-passant target.
var NoSquare = Square{X: -1, Y: -1}

func (s Square) InBounds() bool {
	return s.X >= 0 && s.X < 8 && s.Y >= 0 && s.Y < 8
}

func (s Square) Add(d Square) Square {
	return Square{X: s.X + d.X, Y: s.Y + d.Y}
}

// Rank returns the chess rank 1..8.
func (s Square) Rank() int {
	return 8 - s.Y
}

func (s Square) File() string {
	return fmt.Sprintf("%c", s.X+'a')
}

func (s Square) String() string {
	if !s.InBounds() {
		return "-"
	}
	return fmt.Sprintf("%c%d", s.X+'a', 8-s.Y)
}

// ParseSquare reads algebraic notation such as "e4".
func ParseSquare(n string) (Square, error) {
	if len(n) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, n)
	}
	sq := Square{X: int(n[0]) - 'a', Y: 8 - (int(n[1]) - '0')}
	if !sq.InBounds() {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, n)
	}
	return sq, nil
}

// MustSquare is ParseSquare for literals known to be valid.
func MustSquare(n string) Square {
	sq, err := ParseSquare(n)
	if err != nil {
		panic(err)
	}
	return sq
}
