package chess

// After returns the position reached by playing m. Legality is not checked:
// m must come from the move generator for this position.
func (p *Position) After(m Move) Position {
	return p.apply(m, nil)
}

// Apply is After plus a Ply describing the effects of m.
func (p *Position) Apply(m Move) (Position, Ply) {
	ply := Ply{Move: m, CapturedOn: NoSquare, Notation: p.SAN(m)}
	next := p.apply(m, &ply)
	return next, ply
}

func (p *Position) apply(m Move, ply *Ply) Position {
	next := *p
	piece := next.Piece(m.From)
	side := piece.Color
	target := next.Piece(m.To)

	captured, capturedOn := target, m.To
	if m.EnPassant {
		capturedOn = Square{X: m.To.X, Y: m.From.Y}
		captured = next.Piece(capturedOn)
		next.set(capturedOn, Piece{})
	}

	placed := piece
	if m.Promotion != NoPiece {
		placed = Piece{Type: m.Promotion, Color: side}
	}
	next.set(m.To, placed)
	next.set(m.From, Piece{})

	var rookMove *CastleRookMove
	if m.Castle != NoCastle {
		rule := castleRuleFor(m.Castle)
		rookMove = &CastleRookMove{
			From: Square{X: rule.rookX, Y: m.From.Y},
			To:   Square{X: rule.transit, Y: m.From.Y},
		}
		next.set(rookMove.To, next.Piece(rookMove.From))
		next.set(rookMove.From, Piece{})
	}

	switch piece.Type {
	case King:
		next.Castling.revoke(side, KingSide)
		next.Castling.revoke(side, QueenSide)
	case Rook:
		next.revokeRookHome(side, m.From)
	}
	if target.Type == Rook {
		next.revokeRookHome(target.Color, m.To)
	}

	if m.DoublePush {
		next.EnPassant = Square{X: m.From.X, Y: (m.From.Y + m.To.Y) / 2}
	} else {
		next.EnPassant = NoSquare
	}

	if piece.Type == Pawn || !captured.IsEmpty() {
		next.HalfMoveClock = 0
	} else {
		next.HalfMoveClock++
	}
	if side == Black {
		next.FullMoveNumber++
	}
	next.Turn = side.Opponent()

	if ply != nil {
		ply.Piece = piece
		if !captured.IsEmpty() {
			ply.Captured = captured
			ply.CapturedOn = capturedOn
		}
		ply.CastleRookMove = rookMove
		ply.Promotion = m.Promotion
	}
	return next
}

func castleRuleFor(side CastleSide) castleRule {
	for _, rule := range castleRules {
		if rule.side == side {
			return rule
		}
	}
	return castleRules[0]
}

// revokeRookHome drops the right tied to a rook leaving or dying on its
// home square.
func (p *Position) revokeRookHome(side Color, sq Square) {
	if sq.Y != side.BackRow() {
		return
	}
	for _, rule := range castleRules {
		if sq.X == rule.rookX {
			p.Castling.revoke(side, rule.side)
		}
	}
}
