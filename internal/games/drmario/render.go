package drmario

import (
	"fmt"

	"github.com/vovakirdan/tui-drmario/internal/core"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/board"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/pill"
)

const (
	cellW      = 2 // screen columns per board cell
	boardLeft  = 1
	boardTop   = 1
	hudGap     = 3
	smallHint  = "Terminal too small"
	checkLabel = "Checksum:"
)

var (
	virusGlyph = [2]rune{'<', '>'}
	pillGlyph  = [2]rune{'[', ']'}
)

// cellColor maps a board state to its screen color.
func cellColor(s board.CellState) core.Color {
	switch s {
	case board.VirusRed, board.PillRed:
		return core.ColorRed
	case board.VirusBlue, board.PillBlue:
		return core.ColorBlue
	case board.VirusYellow, board.PillYellow:
		return core.ColorYellow
	default:
		return core.ColorDefault
	}
}

// fallingColor brightens falling pill halves so they stand out from
// locked ones.
func fallingColor(c pill.Color) core.Color {
	switch c {
	case pill.Red:
		return core.ColorBrightRed
	case pill.Blue:
		return core.ColorBrightBlue
	case pill.Yellow:
		return core.ColorBrightYellow
	default:
		return core.ColorWhite
	}
}

// Render draws the board and the HUD.
func (g *Game) Render(dst *core.Screen) {
	w, h := g.viruses.Width(), g.viruses.Height()
	box := core.NewRect(boardLeft, boardTop, w*cellW+2, h+2)
	if w == 0 || box.Right() > dst.Width() || box.Bottom() > dst.Height() {
		dst.DrawTextCentered(dst.Height()/2, smallHint)
		return
	}

	dst.DrawBox(box, core.ColorGray)
	g.drawCells(dst, box)
	g.drawHUD(dst, box.Right()+hudGap, box.Y)
}

func (g *Game) drawCells(dst *core.Screen, box core.Rect) {
	locked, err := pill.PlaceAll(g.viruses, g.locked)
	if err != nil {
		locked = g.viruses
	}

	for y := range locked.Height() {
		for x := range locked.Width() {
			state, _ := locked.Cell(x, y)
			sx, sy := box.X+1+x*cellW, box.Y+1+y
			switch {
			case state.IsVirus():
				dst.SetWithColor(sx, sy, virusGlyph[0], cellColor(state))
				dst.SetWithColor(sx+1, sy, virusGlyph[1], cellColor(state))
			case state.IsPill():
				dst.SetWithColor(sx, sy, pillGlyph[0], cellColor(state))
				dst.SetWithColor(sx+1, sy, pillGlyph[1], cellColor(state))
			default:
				dst.SetWithColor(sx, sy, ' ', core.ColorDefault)
				dst.SetWithColor(sx+1, sy, '.', core.ColorGray)
			}
		}
	}

	for _, fp := range g.falling {
		for _, c := range pill.Cells(fp.Pill) {
			if !locked.InBounds(c.X, c.Y) {
				continue
			}
			color := fallingColor(c.Color)
			if fp.Landed {
				color = cellColor(mustPillState(c.Color))
			}
			sx, sy := box.X+1+c.X*cellW, box.Y+1+c.Y
			dst.SetWithColor(sx, sy, pillGlyph[0], color)
			dst.SetWithColor(sx+1, sy, pillGlyph[1], color)
		}
	}
}

func mustPillState(c pill.Color) board.CellState {
	s, err := pill.CellState(c)
	if err != nil {
		return board.Empty
	}
	return s
}

func (g *Game) drawHUD(dst *core.Screen, x, y int) {
	lines := []string{
		"DR. MARIO",
		"",
		fmt.Sprintf("Frame:     %d", g.frame),
		fmt.Sprintf("Seed:      %s", HexSeed(g.seed)),
		fmt.Sprintf("Min Y:     %d", g.minY),
		fmt.Sprintf("Speed:     %d", g.fallSpeed),
		fmt.Sprintf("Viruses:   %d", len(g.placements)),
		fmt.Sprintf("Falling:   %d", len(g.falling)),
		fmt.Sprintf("Locked:    %d", len(g.locked)),
		fmt.Sprintf("Snapshots: %d", g.history.Count()),
		fmt.Sprintf("%s %s", checkLabel, g.Checksum()),
	}
	for i, line := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorCyan
		}
		dst.DrawTextWithColor(x, y+i, line, color)
	}

	row := y + len(lines) + 1
	if g.paused {
		dst.DrawTextWithColor(x, row, "PAUSED", core.ColorBrightYellow)
		row++
	}
	if g.status != "" {
		dst.DrawTextWithColor(x, row, g.status, core.ColorWhite)
	}
}

// HexSeed renders a seed as uppercase hex of its magnitude.
func HexSeed(seed int64) string {
	u := uint64(seed)
	if seed < 0 {
		u = -u
	}
	return fmt.Sprintf("%X", u)
}
