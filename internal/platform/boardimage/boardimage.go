// Package boardimage draws a board as a PNG: viruses as discs, pill
// halves as rounded blocks, on a grid.
package boardimage

import (
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
)

// DefaultCellSize is the edge of one board cell in pixels.
const DefaultCellSize = 32

var (
	background = color.RGBA{R: 0x10, G: 0x10, B: 0x20, A: 0xff}
	gridLine   = color.RGBA{R: 0x40, G: 0x40, B: 0x58, A: 0xff}

	palette = map[board.CellState]color.RGBA{
		board.VirusRed:    {R: 0xe0, G: 0x30, B: 0x30, A: 0xff},
		board.VirusBlue:   {R: 0x30, G: 0x60, B: 0xe0, A: 0xff},
		board.VirusYellow: {R: 0xe8, G: 0xc8, B: 0x20, A: 0xff},
		board.PillRed:     {R: 0xff, G: 0x60, B: 0x60, A: 0xff},
		board.PillBlue:    {R: 0x60, G: 0x90, B: 0xff, A: 0xff},
		board.PillYellow:  {R: 0xff, G: 0xe0, B: 0x60, A: 0xff},
	}
)

// Render draws b with square cells of cellSize pixels. A non-positive
// cellSize uses DefaultCellSize.
func Render(b board.Board, cellSize int) image.Image {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	width, height := b.Width()*cellSize, b.Height()*cellSize
	dc := gg.NewContext(max(width, 1), max(height, 1))

	dc.SetColor(background)
	dc.Clear()
	renderGrid(dc, width, height, cellSize)

	size := float64(cellSize)
	for y := range b.Height() {
		for x := range b.Width() {
			state, _ := b.Cell(x, y)
			c, ok := palette[state]
			if !ok {
				continue
			}
			dc.SetColor(c)
			px, py := float64(x)*size, float64(y)*size
			switch {
			case state.IsVirus():
				dc.DrawCircle(px+size/2, py+size/2, size*0.38)
			case state.IsPill():
				dc.DrawRoundedRectangle(px+2, py+2, size-4, size-4, size/4)
			}
			dc.Fill()
		}
	}

	return dc.Image()
}

func renderGrid(dc *gg.Context, width, height, cellSize int) {
	dc.SetColor(gridLine)
	dc.SetLineWidth(1)
	for x := 0; x <= width; x += cellSize {
		dc.DrawLine(float64(x), 0, float64(x), float64(height))
		dc.Stroke()
	}
	for y := 0; y <= height; y += cellSize {
		dc.DrawLine(0, float64(y), float64(width), float64(y))
		dc.Stroke()
	}
}

// Thumbnail scales img to the given width keeping its aspect ratio.
// A non-positive width returns img unchanged.
func Thumbnail(img image.Image, width int) image.Image {
	if width <= 0 {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// WritePNG renders b, scales it to width when positive and writes a PNG.
func WritePNG(w io.Writer, b board.Board, cellSize, width int) error {
	return imaging.Encode(w, Thumbnail(Render(b, cellSize), width), imaging.PNG)
}
