// Command play is a terminal chess client for the rules engine and the
// search, plus a perft runner.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/pixelchess-backend/internal/ai"
	"github.com/benbeisheim/pixelchess-backend/internal/chess"
	"github.com/benbeisheim/pixelchess-backend/internal/logging"
)

func main() {
	fen := flag.String("fen", chess.StartFEN, "starting position")
	depth := flag.Int("depth", ai.DefaultDepth, "engine search depth")
	side := flag.String("ai", "black", "engine side: white, black or none")
	perft := flag.Int("perft", 0, "run perft to this depth and exit")
	divide := flag.Bool("divide", false, "with -perft, print per-move counts at that depth")
	verbose := flag.Bool("v", false, "log search statistics")
	noColor := flag.Bool("no-color", false, "disable colors")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := logging.New(os.Stderr, level, true)
	color.NoColor = color.NoColor || *noColor

	start, err := chess.ParseFEN(*fen)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse fen")
	}
	if *perft > 0 {
		runPerft(os.Stdout, start, *perft, *divide)
		return
	}

	aiSide, err := parseSide(*side)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse side")
	}
	engine := ai.NewEngine(ai.WithDepth(*depth), ai.WithLogger(logger))
	s := newSession(start, engine, aiSide)
	if err := loop(os.Stdin, os.Stdout, s); err != nil {
		logger.Fatal().Err(err).Msg("play")
	}
}

func parseSide(s string) (*chess.Color, error) {
	switch s {
	case "none", "":
		return nil, nil
	case "white":
		c := chess.White
		return &c, nil
	case "black":
		c := chess.Black
		return &c, nil
	}
	return nil, fmt.Errorf("unknown side %q", s)
}

func loop(in io.Reader, out io.Writer, s *session) error {
	scanner := bufio.NewScanner(in)
	for {
		for s.aiToMove() {
			ply, res, err := s.reply()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "engine plays %s (score %d, %d nodes)\n", ply.Notation, res.Score, res.Nodes)
		}

		render(out, &s.pos, s.lastMove())
		if st := s.pos.Status(); st.IsOver() {
			fmt.Fprintln(out, st)
			return nil
		}
		if s.pos.InCheck(s.pos.Turn) {
			fmt.Fprintln(out, "check")
		}
		fmt.Fprintf(out, "%s to move> ", s.pos.Turn)

		if !scanner.Scan() {
			return scanner.Err()
		}
		switch cmd := strings.TrimSpace(scanner.Text()); cmd {
		case "":
		case "quit", "exit":
			return nil
		case "undo":
			if err := s.undo(); err != nil {
				fmt.Fprintln(out, err)
			}
		case "fen":
			fmt.Fprintln(out, s.pos.FEN())
		case "moves":
			var list []string
			for _, m := range s.pos.LegalMoves(s.pos.Turn) {
				list = append(list, s.pos.SAN(m))
			}
			fmt.Fprintln(out, strings.Join(list, " "))
		default:
			if _, err := s.play(cmd); err != nil {
				if errors.Is(err, chess.ErrInvalidMove) || errors.Is(err, chess.ErrIllegalMove) {
					fmt.Fprintln(out, err)
					continue
				}
				return err
			}
		}
	}
}
