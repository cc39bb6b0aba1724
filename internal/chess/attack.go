package chess

var (
	rookDirs   = []Square{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Square{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	queenDirs  = append(append([]Square{}, bishopDirs...), rookDirs...)
	knightDirs = []Square{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = []Square{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
)

// IsSquareAttacked reports whether any piece of side by attacks sq. The sweep
// runs outward from sq as if a king of the other side stood there, so the
// content of sq itself is irrelevant.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	if !sq.InBounds() {
		return false
	}
	if p.rayAttacked(sq, by, rookDirs, Rook) || p.rayAttacked(sq, by, bishopDirs, Bishop) {
		return true
	}
	for _, dir := range knightDirs {
		if p.Piece(sq.Add(dir)).Is(by, Knight) {
			return true
		}
	}
	for _, dir := range kingDirs {
		if p.Piece(sq.Add(dir)).Is(by, King) {
			return true
		}
	}
	// an attacking pawn sits one row toward the defender's forward direction
	row := sq.Y - by.Forward()
	for _, dx := range []int{-1, 1} {
		if p.Piece(Square{X: sq.X + dx, Y: row}).Is(by, Pawn) {
			return true
		}
	}
	return false
}

func (p *Position) rayAttacked(sq Square, by Color, dirs []Square, slider PieceType) bool {
	for _, dir := range dirs {
		target := sq.Add(dir)
		for target.InBounds() {
			pc := p.Piece(target)
			if !pc.IsEmpty() {
				if pc.Color == by && (pc.Type == slider || pc.Type == Queen) {
					return true
				}
				break
			}
			target = target.Add(dir)
		}
	}
	return false
}

// InCheck reports whether side's king is attacked. A board without that king
// is never in check.
func (p *Position) InCheck(side Color) bool {
	king, ok := p.KingSquare(side)
	if !ok {
		return false
	}
	return p.IsSquareAttacked(king, side.Opponent())
}
