package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"

	nchess "github.com/corentings/chess/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const DefaultSquareSize = 64

type Options struct {
	// Selected is outlined; Targets get a dot each.
	Selected *nchess.Square
	Targets  []nchess.Square
	// Changed squares from the last move are tinted.
	Changed []nchess.Square
}

// Renderer draws a corentings board as a PNG with rank and file labels.
type Renderer struct {
	squareSize int
}

func New(squareSize int) *Renderer {
	if squareSize <= 0 {
		squareSize = DefaultSquareSize
	}
	return &Renderer{squareSize: squareSize}
}

func (r *Renderer) margin() int { return r.squareSize / 3 }

// Size is the edge length of the rendered image.
func (r *Renderer) Size() int { return r.squareSize*8 + r.margin()*2 }

var (
	lightSquare     = color.RGBA{233, 207, 163, 255}
	darkSquare      = color.RGBA{187, 136, 96, 255}
	frameColor      = color.RGBA{40, 44, 60, 255}
	selectedColor   = color.NRGBA{R: 255, G: 228, B: 120, A: 150}
	changedColor    = color.NRGBA{R: 148, G: 207, B: 255, A: 110}
	targetDotColor  = color.NRGBA{R: 20, G: 20, B: 20, A: 90}
	coordinateColor = color.NRGBA{R: 236, G: 239, B: 255, A: 255}
)

func (r *Renderer) RenderPNG(ctx context.Context, board *nchess.Board, opts Options) ([]byte, error) {
	if board == nil {
		return nil, fmt.Errorf("board is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	size := r.Size()
	origin := image.Point{X: r.margin(), Y: r.margin()}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(frameColor), image.Point{}, imagedraw.Src)

	r.drawSquares(img, origin)
	for _, sq := range opts.Changed {
		r.drawSquareOverlay(img, sq, origin, changedColor)
	}
	if opts.Selected != nil {
		r.drawSquareOverlay(img, *opts.Selected, origin, selectedColor)
	}
	if err := r.drawPieces(img, board, origin); err != nil {
		return nil, err
	}
	for _, sq := range opts.Targets {
		r.drawDot(img, sq, origin)
	}
	r.drawCoordinates(img, origin)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return pngBuf.Bytes(), nil
}

// RenderFEN draws a board given as a FEN piece placement field.
func (r *Renderer) RenderFEN(ctx context.Context, placement string) ([]byte, error) {
	var board nchess.Board
	if err := board.UnmarshalText([]byte(placement)); err != nil {
		return nil, fmt.Errorf("parse placement %q: %w", placement, err)
	}
	return r.RenderPNG(ctx, &board, Options{})
}

// squareRect places rank 8 at the top.
func (r *Renderer) squareRect(sq nchess.Square, origin image.Point) image.Rectangle {
	col := int(sq.File())
	row := 7 - int(sq.Rank())
	x := origin.X + col*r.squareSize
	y := origin.Y + row*r.squareSize
	return image.Rect(x, y, x+r.squareSize, y+r.squareSize)
}

func (r *Renderer) drawSquares(dst imagedraw.Image, origin image.Point) {
	for f := 0; f < 8; f++ {
		for rk := 0; rk < 8; rk++ {
			sq := nchess.NewSquare(nchess.File(f), nchess.Rank(rk))
			clr := lightSquare
			if (f+rk)%2 == 0 {
				clr = darkSquare
			}
			imagedraw.Draw(dst, r.squareRect(sq, origin), image.NewUniform(clr), image.Point{}, imagedraw.Src)
		}
	}
}

func (r *Renderer) drawPieces(dst imagedraw.Image, board *nchess.Board, origin image.Point) error {
	for sq, piece := range board.SquareMap() {
		if piece == nchess.NoPiece {
			continue
		}
		img, err := renderPieceImage(piece, r.squareSize)
		if err != nil {
			return err
		}
		imagedraw.Draw(dst, r.squareRect(sq, origin), img, image.Point{}, imagedraw.Over)
	}
	return nil
}

func (r *Renderer) drawSquareOverlay(img *image.RGBA, sq nchess.Square, origin image.Point, clr color.Color) {
	imagedraw.Draw(img, r.squareRect(sq, origin), image.NewUniform(clr), image.Point{}, imagedraw.Over)
}

func (r *Renderer) drawDot(img *image.RGBA, sq nchess.Square, origin image.Point) {
	rect := r.squareRect(sq, origin)
	c := rect.Min.Add(image.Pt(r.squareSize/2, r.squareSize/2))
	rad := r.squareSize / 7
	dot := image.NewUniform(targetDotColor)
	for y := -rad; y <= rad; y++ {
		for x := -rad; x <= rad; x++ {
			if x*x+y*y > rad*rad {
				continue
			}
			p := c.Add(image.Pt(x, y))
			imagedraw.Draw(img, image.Rect(p.X, p.Y, p.X+1, p.Y+1), dot, image.Point{}, imagedraw.Over)
		}
	}
}

func (r *Renderer) drawCoordinates(img *image.RGBA, origin image.Point) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{Dst: img, Src: image.NewUniform(coordinateColor), Face: face}
	m := r.margin()
	boardEdge := origin.X + r.squareSize*8
	ascent := face.Metrics().Ascent.Ceil()

	for f := 0; f < 8; f++ {
		label := string(rune('a' + f))
		w := drawer.MeasureString(label).Ceil()
		x := origin.X + f*r.squareSize + (r.squareSize-w)/2
		y := boardEdge + (m+ascent)/2
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(label)
	}
	for rk := 0; rk < 8; rk++ {
		label := string(rune('1' + rk))
		w := drawer.MeasureString(label).Ceil()
		x := (m - w) / 2
		y := origin.Y + (7-rk)*r.squareSize + (r.squareSize+ascent)/2
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(label)
	}
}
