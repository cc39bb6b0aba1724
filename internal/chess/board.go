package chess

// Board is indexed [y][x]; see Square for orientation.
type Board [8][8]Piece

type CastlingRights struct {
	WhiteKingSide  bool `json:"whiteKingSide"`
	WhiteQueenSide bool `json:"whiteQueenSide"`
	BlackKingSide  bool `json:"blackKingSide"`
	BlackQueenSide bool `json:"blackQueenSide"`
}

func (c CastlingRights) Has(side Color, castle CastleSide) bool {
	switch {
	case side == White && castle == KingSide:
		return c.WhiteKingSide
	case side == White && castle == QueenSide:
		return c.WhiteQueenSide
	case side == Black && castle == KingSide:
		return c.BlackKingSide
	case side == Black && castle == QueenSide:
		return c.BlackQueenSide
	}
	return false
}

func (c *CastlingRights) revoke(side Color, castle CastleSide) {
	switch {
	case side == White && castle == KingSide:
		c.WhiteKingSide = false
	case side == White && castle == QueenSide:
		c.WhiteQueenSide = false
	case side == Black && castle == KingSide:
		c.BlackKingSide = false
	case side == Black && castle == QueenSide:
		c.BlackQueenSide = false
	}
}

// Position is a complete game state. It is a value: copying it copies the
// grid, and every applied move yields a new Position.
type Position struct {
	Board          Board
	Turn           Color
	Castling       CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewGame returns the standard initial position.
func NewGame() Position {
	p := Position{
		Turn:           White,
		Castling:       CastlingRights{true, true, true, true},
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	for x := 0; x < 8; x++ {
		p.Board[0][x] = Piece{Type: backRank[x], Color: Black}
		p.Board[1][x] = Piece{Type: Pawn, Color: Black}
		p.Board[6][x] = Piece{Type: Pawn, Color: White}
		p.Board[7][x] = Piece{Type: backRank[x], Color: White}
	}
	return p
}

// Piece returns the content of sq, or the empty piece when sq is off the board.
func (p *Position) Piece(sq Square) Piece {
	if !sq.InBounds() {
		return Piece{}
	}
	return p.Board[sq.Y][sq.X]
}

func (p *Position) set(sq Square, pc Piece) {
	p.Board[sq.Y][sq.X] = pc
}

func (p *Position) HasEnPassant() bool {
	return p.EnPassant.InBounds()
}

// KingSquare scans for the king of side.
func (p *Position) KingSquare(side Color) (Square, bool) {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if p.Board[y][x].Is(side, King) {
				return Square{X: x, Y: y}, true
			}
		}
	}
	return NoSquare, false
}
