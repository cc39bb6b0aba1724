package chess

import "fmt"

type Outcome uint8

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
)

func (o Outcome) String() string {
	switch o {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Ongoing:
		return ""
	}
	return ""
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Status is the game-over state of a position. Winner is only meaningful
// for Checkmate.
type Status struct {
	Outcome Outcome `json:"outcome"`
	Winner  Color   `json:"winner"`
}

func (s Status) IsOver() bool {
	return s.Outcome != Ongoing
}

func (s Status) String() string {
	switch s.Outcome {
	case Checkmate:
		return fmt.Sprintf("checkmate, %s wins", s.Winner)
	case Stalemate:
		return "stalemate"
	case Ongoing:
	}
	return "ongoing"
}

// Status classifies the position for the side to move.
func (p *Position) Status() Status {
	if p.HasLegalMoves(p.Turn) {
		return Status{Outcome: Ongoing}
	}
	if p.InCheck(p.Turn) {
		return Status{Outcome: Checkmate, Winner: p.Turn.Opponent()}
	}
	return Status{Outcome: Stalemate}
}
