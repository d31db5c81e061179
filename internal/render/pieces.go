package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	svg "github.com/ajstarks/svgo"
	nchess "github.com/corentings/chess/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Piece icons are drawn on a 45x45 canvas.
const iconBox = 45

type pieceCacheKey struct {
	piece nchess.Piece
	size  int
}

var (
	pieceCache   = map[pieceCacheKey]image.Image{}
	pieceCacheMu sync.RWMutex
)

type pieceStyle struct {
	body   string
	detail string
}

func styleFor(c nchess.Color) pieceStyle {
	if c == nchess.Black {
		return pieceStyle{
			body:   "fill:#262626;stroke:#f2f2f2;stroke-width:1.5",
			detail: "fill:#f2f2f2;stroke:#f2f2f2;stroke-width:1",
		}
	}
	return pieceStyle{
		body:   "fill:#ffffff;stroke:#1a1a1a;stroke-width:1.5",
		detail: "fill:#1a1a1a;stroke:#1a1a1a;stroke-width:1",
	}
}

// PieceSVG returns the SVG document for one piece.
func PieceSVG(piece nchess.Piece) ([]byte, error) {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(iconBox, iconBox, 0, 0, iconBox, iconBox)
	st := styleFor(piece.Color())

	// shared base
	canvas.Roundrect(9, 36, 27, 5, 2, 2, st.body)

	switch piece.Type() {
	case nchess.Pawn:
		canvas.Polygon([]int{15, 30, 27, 18}, []int{36, 36, 24, 24}, st.body)
		canvas.Circle(22, 17, 6, st.body)
	case nchess.Rook:
		canvas.Rect(13, 17, 19, 19, st.body)
		canvas.Rect(11, 10, 23, 7, st.body)
		canvas.Rect(14, 10, 4, 3, st.detail)
		canvas.Rect(20, 10, 5, 3, st.detail)
		canvas.Rect(27, 10, 4, 3, st.detail)
	case nchess.Knight:
		canvas.Polygon(
			[]int{13, 32, 33, 29, 21, 12, 11, 19, 18},
			[]int{36, 36, 20, 10, 7, 14, 21, 20, 27},
			st.body,
		)
		canvas.Circle(22, 13, 1, st.detail)
	case nchess.Bishop:
		canvas.Polygon([]int{14, 31, 27, 18}, []int{36, 36, 29, 29}, st.body)
		canvas.Ellipse(22, 21, 7, 9, st.body)
		canvas.Circle(22, 9, 3, st.body)
		canvas.Path("M 19 21 L 25 21 M 22 18 L 22 24", "fill:none;stroke:"+strokeOf(piece.Color())+";stroke-width:1.5")
	case nchess.Queen:
		canvas.Polygon(
			[]int{11, 34, 36, 30, 27, 22, 18, 15, 9},
			[]int{36, 36, 14, 25, 12, 24, 12, 25, 14},
			st.body,
		)
		for _, x := range []int{9, 18, 27, 36} {
			canvas.Circle(x, 12, 2, st.body)
		}
		canvas.Circle(22, 9, 2, st.body)
	case nchess.King:
		canvas.Polygon([]int{12, 33, 30, 15}, []int{36, 36, 18, 18}, st.body)
		canvas.Rect(20, 5, 5, 13, st.body)
		canvas.Rect(16, 8, 13, 4, st.body)
	default:
		return nil, fmt.Errorf("no icon for piece %v", piece)
	}
	canvas.End()
	return buf.Bytes(), nil
}

func strokeOf(c nchess.Color) string {
	if c == nchess.Black {
		return "#f2f2f2"
	}
	return "#1a1a1a"
}

func renderPieceImage(piece nchess.Piece, size int) (image.Image, error) {
	key := pieceCacheKey{piece: piece, size: size}

	pieceCacheMu.RLock()
	if img, ok := pieceCache[key]; ok {
		pieceCacheMu.RUnlock()
		return img, nil
	}
	pieceCacheMu.RUnlock()

	data, err := PieceSVG(piece)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse piece svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	pieceCacheMu.Lock()
	pieceCache[key] = img
	pieceCacheMu.Unlock()

	return img, nil
}
