package main

import (
	"io"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/benbeisheim/pixelchess-backend/internal/chess"
)

func runPerft(w io.Writer, p chess.Position, depth int, divide bool) {
	printer := message.NewPrinter(language.English)

	if divide {
		counts := chess.Divide(p, depth)
		moves := maps.Keys(counts)
		slices.Sort(moves)
		var total uint64
		for _, m := range moves {
			printer.Fprintf(w, "%s: %d\n", m, counts[m])
			total += counts[m]
		}
		printer.Fprintf(w, "\nmoves: %d nodes: %d\n", len(moves), total)
		return
	}

	for d := 1; d <= depth; d++ {
		start := time.Now()
		c := chess.PerftDetailed(p, d)
		took := time.Since(start)
		nps := float64(c.Nodes) / took.Seconds()
		printer.Fprintf(w, "depth %d: %d nodes, %d captures, %d e.p., %d castles, %d promotions, %d checks (%v, %.0f nps)\n",
			d, c.Nodes, c.Captures, c.EnPassants, c.Castles, c.Promotions, c.Checks, took.Round(time.Millisecond), nps)
	}
}
