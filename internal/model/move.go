package model

import (
	"fmt"

	"github.com/benbeisheim/pixelchess-backend/internal/chess"
)

// MoveRequest is a move as submitted by a client, squares in algebraic
// notation. A missing promotion on a promoting move means queen.
type MoveRequest struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Promotion chess.PieceType `json:"promotion,omitempty"`
}

func (r MoveRequest) squares() (chess.Square, chess.Square, error) {
	from, err := chess.ParseSquare(r.From)
	if err != nil {
		return chess.NoSquare, chess.NoSquare, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	to, err := chess.ParseSquare(r.To)
	if err != nil {
		return chess.NoSquare, chess.NoSquare, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return from, to, nil
}

// resolve matches r against the legal moves of p.
func (r MoveRequest) resolve(p *chess.Position) (chess.Move, error) {
	from, to, err := r.squares()
	if err != nil {
		return chess.Move{}, err
	}
	req := chess.Move{From: from, To: to, Promotion: r.Promotion}
	if m, ok := p.FindLegal(req); ok {
		return m, nil
	}
	// promotion pieces sent with plain moves are ignored
	req.Promotion = chess.Queen
	if r.Promotion != chess.NoPiece {
		req.Promotion = chess.NoPiece
	}
	if m, ok := p.FindLegal(req); ok {
		return m, nil
	}
	return chess.Move{}, fmt.Errorf("%w: %s%s", ErrIllegalMove, r.From, r.To)
}

// MoveRecord pairs the plies of one full move for the history panel.
type MoveRecord struct {
	WhitePly *chess.Ply `json:"whitePly"`
	BlackPly *chess.Ply `json:"blackPly"`
}

type SimpleMove struct {
	From chess.Square `json:"from"`
	To   chess.Square `json:"to"`
}

func pairPlies(plies []chess.Ply) []MoveRecord {
	records := make([]MoveRecord, 0, (len(plies)+1)/2)
	for i := range plies {
		ply := plies[i]
		if ply.Piece.Color == chess.White {
			records = append(records, MoveRecord{WhitePly: &ply})
			continue
		}
		if n := len(records); n > 0 && records[n-1].BlackPly == nil {
			records[n-1].BlackPly = &ply
			continue
		}
		records = append(records, MoveRecord{BlackPly: &ply})
	}
	return records
}
