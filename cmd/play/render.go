package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/benbeisheim/pixelchess-backend/internal/chess"
)

var (
	lightSquare = color.New(color.BgHiWhite)
	darkSquare  = color.New(color.BgGreen)
	highlight   = color.New(color.BgYellow)
	whitePiece  = color.New(color.FgHiBlue, color.Bold)
	blackPiece  = color.New(color.FgBlack, color.Bold)
)

// render draws p with rank 8 on top, highlighting the squares of last.
func render(w io.Writer, p *chess.Position, last *chess.Move) {
	var b strings.Builder
	for y := 0; y < 8; y++ {
		fmt.Fprintf(&b, "%d ", 8-y)
		for x := 0; x < 8; x++ {
			sq := chess.Square{X: x, Y: y}
			bg := lightSquare
			if (x+y)%2 == 1 {
				bg = darkSquare
			}
			if last != nil && (sq == last.From || sq == last.To) {
				bg = highlight
			}
			b.WriteString(bg.Sprint(" " + glyph(p.Piece(sq)) + " "))
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a  b  c  d  e  f  g  h\n")
	fmt.Fprint(w, b.String())
}

func glyph(pc chess.Piece) string {
	if pc.IsEmpty() {
		return " "
	}
	s := string(pc.FEN())
	if pc.Color == chess.White {
		return whitePiece.Sprint(s)
	}
	return blackPiece.Sprint(s)
}
