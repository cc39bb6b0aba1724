package chess

// PerftCounts breaks a perft total down by move kind, counted at the leaves.
type PerftCounts struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

// Perft counts the leaf nodes of the legal move tree to depth.
func Perft(p Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := p.LegalMoves(p.Turn)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += Perft(p.After(m), depth-1)
	}
	return nodes
}

// PerftDetailed is Perft with per-kind counts of the moves made at the last ply.
func PerftDetailed(p Position, depth int) PerftCounts {
	var c PerftCounts
	perftDetailed(p, depth, &c)
	return c
}

func perftDetailed(p Position, depth int, c *PerftCounts) {
	if depth == 0 {
		c.Nodes++
		return
	}
	for _, m := range p.LegalMoves(p.Turn) {
		next := p.After(m)
		if depth == 1 {
			if m.Capture {
				c.Captures++
			}
			if m.EnPassant {
				c.EnPassants++
			}
			if m.Castle != NoCastle {
				c.Castles++
			}
			if m.Promotion != NoPiece {
				c.Promotions++
			}
			if next.InCheck(next.Turn) {
				c.Checks++
			}
		}
		perftDetailed(next, depth-1, c)
	}
}

// Divide reports the perft count below each root move, keyed by its
// coordinate notation.
func Divide(p Position, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth < 1 {
		return out
	}
	for _, m := range p.LegalMoves(p.Turn) {
		out[m.String()] = Perft(p.After(m), depth-1)
	}
	return out
}
