package chess

type castleRule struct {
	side    CastleSide
	rookX   int
	kingX   int
	transit int
	between []int
}

var castleRules = []castleRule{
	{side: KingSide, rookX: 7, kingX: 6, transit: 5, between: []int{5, 6}},
	{side: QueenSide, rookX: 0, kingX: 2, transit: 3, between: []int{1, 2, 3}},
}

// PseudoMoves lists every geometrically valid move of side, ignoring
// whether the mover's king is left in check.
func (p *Position) PseudoMoves(side Color) []Move {
	moves := make([]Move, 0, 64)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pc := p.Board[y][x]
			if pc.IsEmpty() || pc.Color != side {
				continue
			}
			moves = p.appendPieceMoves(moves, Square{X: x, Y: y}, pc)
		}
	}
	return moves
}

// LegalMoves lists the moves of side that do not leave its own king in check.
func (p *Position) LegalMoves(side Color) []Move {
	return p.filterLegal(p.PseudoMoves(side), side)
}

// LegalMovesFrom lists the legal moves of the piece on sq. It is empty when
// sq is off the board, empty, or holds a piece of the side not to move.
func (p *Position) LegalMovesFrom(sq Square) []Move {
	pc := p.Piece(sq)
	if pc.IsEmpty() || pc.Color != p.Turn {
		return []Move{}
	}
	return p.filterLegal(p.appendPieceMoves(nil, sq, pc), pc.Color)
}

// HasLegalMoves stops at the first legal move found.
func (p *Position) HasLegalMoves(side Color) bool {
	for _, m := range p.PseudoMoves(side) {
		next := p.After(m)
		if !next.InCheck(side) {
			return true
		}
	}
	return false
}

// filterLegal plays each move on a scratch copy and keeps those after which
// side is not in check.
func (p *Position) filterLegal(pseudo []Move, side Color) []Move {
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		next := p.After(m)
		if !next.InCheck(side) {
			legal = append(legal, m)
		}
	}
	return legal
}

func (p *Position) appendPieceMoves(moves []Move, from Square, pc Piece) []Move {
	switch pc.Type {
	case Pawn:
		return p.pawnMoves(moves, from, pc.Color)
	case Knight:
		return p.stepMoves(moves, from, pc.Color, knightDirs)
	case Bishop:
		return p.slideMoves(moves, from, pc.Color, bishopDirs)
	case Rook:
		return p.slideMoves(moves, from, pc.Color, rookDirs)
	case Queen:
		return p.slideMoves(moves, from, pc.Color, queenDirs)
	case King:
		moves = p.stepMoves(moves, from, pc.Color, kingDirs)
		return p.castleMoves(moves, from, pc.Color)
	case NoPiece:
	}
	return moves
}

func (p *Position) pawnMoves(moves []Move, from Square, side Color) []Move {
	dir := side.Forward()
	startRow := side.BackRow() + dir
	promoRow := side.Opponent().BackRow()

	one := Square{X: from.X, Y: from.Y + dir}
	if one.InBounds() && p.Piece(one).IsEmpty() {
		moves = appendPawnMove(moves, Move{From: from, To: one}, promoRow)
		two := Square{X: from.X, Y: from.Y + 2*dir}
		if from.Y == startRow && p.Piece(two).IsEmpty() {
			moves = append(moves, Move{From: from, To: two, DoublePush: true})
		}
	}
	for _, dx := range []int{-1, 1} {
		to := Square{X: from.X + dx, Y: from.Y + dir}
		if !to.InBounds() {
			continue
		}
		target := p.Piece(to)
		switch {
		case !target.IsEmpty() && target.Color != side:
			moves = appendPawnMove(moves, Move{From: from, To: to, Capture: true}, promoRow)
		case target.IsEmpty() && p.HasEnPassant() && to == p.EnPassant:
			moves = append(moves, Move{From: from, To: to, Capture: true, EnPassant: true})
		}
	}
	return moves
}

// appendPawnMove expands a move onto the last row into its four promotions.
func appendPawnMove(moves []Move, m Move, promoRow int) []Move {
	if m.To.Y != promoRow {
		return append(moves, m)
	}
	for _, t := range PromotionTypes {
		m.Promotion = t
		moves = append(moves, m)
	}
	return moves
}

func (p *Position) stepMoves(moves []Move, from Square, side Color, dirs []Square) []Move {
	for _, dir := range dirs {
		to := from.Add(dir)
		if !to.InBounds() {
			continue
		}
		target := p.Piece(to)
		if target.IsEmpty() {
			moves = append(moves, Move{From: from, To: to})
		} else if target.Color != side {
			moves = append(moves, Move{From: from, To: to, Capture: true})
		}
	}
	return moves
}

func (p *Position) slideMoves(moves []Move, from Square, side Color, dirs []Square) []Move {
	for _, dir := range dirs {
		to := from.Add(dir)
		for to.InBounds() {
			target := p.Piece(to)
			if target.IsEmpty() {
				moves = append(moves, Move{From: from, To: to})
			} else {
				if target.Color != side {
					moves = append(moves, Move{From: from, To: to, Capture: true})
				}
				break
			}
			to = to.Add(dir)
		}
	}
	return moves
}

func (p *Position) castleMoves(moves []Move, from Square, side Color) []Move {
	row := side.BackRow()
	if from != (Square{X: 4, Y: row}) {
		return moves
	}
	opp := side.Opponent()
	inCheck := false
	checked := false
	for _, rule := range castleRules {
		if !p.Castling.Has(side, rule.side) {
			continue
		}
		if !p.Piece(Square{X: rule.rookX, Y: row}).Is(side, Rook) {
			continue
		}
		empty := true
		for _, x := range rule.between {
			if !p.Piece(Square{X: x, Y: row}).IsEmpty() {
				empty = false
				break
			}
		}
		if !empty {
			continue
		}
		if !checked {
			inCheck = p.IsSquareAttacked(from, opp)
			checked = true
		}
		if inCheck {
			return moves
		}
		transit := Square{X: rule.transit, Y: row}
		to := Square{X: rule.kingX, Y: row}
		if p.IsSquareAttacked(transit, opp) || p.IsSquareAttacked(to, opp) {
			continue
		}
		moves = append(moves, Move{From: from, To: to, Castle: rule.side})
	}
	return moves
}
