package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/park285/cheese-board/internal/boardfile"
	"github.com/park285/cheese-board/internal/engine"
	"github.com/park285/cheese-board/internal/render"
)

// boardcheck parses a board annotation file, reports skipped tokens and
// prints the position. With -png it also writes a rendered image.
func main() {
	pngOut := flag.String("png", "", "write a rendered PNG to this path")
	square := flag.Int("square", render.DefaultSquareSize, "square size in pixels for -png")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-png out.png] [-square N] <board file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	var doc *boardfile.Document
	var warns []boardfile.Warning
	switch flag.NArg() {
	case 0:
		log.Println("no file given; checking the built-in start position")
		doc = boardfile.StartingPosition()
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatalf("open: %v", err)
		}
		doc, warns, err = boardfile.Parse(f)
		_ = f.Close()
		if err != nil {
			log.Fatalf("parse: %v", err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	warnTag := color.New(color.FgYellow, color.Bold).SprintFunc()
	label := color.New(color.FgCyan).SprintFunc()

	for _, w := range warns {
		log.Printf("%s %s", warnTag("warning:"), w)
	}

	fmt.Printf("%s %s  %s %s\n", label("mover:"), doc.Mover, label("game type:"), doc.GameType)
	for _, p := range doc.Players {
		fmt.Printf("%s %s (%s)\n", label("player:"), p.Name, p.Color)
	}
	fmt.Printf("%s white=%d black=%d\n", label("kings:"), doc.Board.KingCount(engine.White), doc.Board.KingCount(engine.Black))
	fmt.Printf("%s %s\n", label("fen:"), engine.FEN(doc.Board))
	fmt.Println(engine.ToNChess(doc.Board).Draw())

	if *pngOut != "" {
		writePNG(*pngOut, *square, doc)
	}
	if len(warns) > 0 {
		os.Exit(1)
	}
}

func writePNG(path string, square int, doc *boardfile.Document) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	out, err := render.New(square).RenderPNG(ctx, engine.ToNChess(doc.Board), render.Options{})
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		log.Fatalf("write png: %v", err)
	}
	log.Printf("wrote %s (%d bytes)", path, len(out))
}
