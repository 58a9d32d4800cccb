// Package pill implements two-cell pill geometry, rotation and placement
// against a board.
package pill

import (
	"errors"
	"fmt"
)

// Color is a pill or virus color.
type Color string

const (
	Red    Color = "RED"
	Blue   Color = "BLUE"
	Yellow Color = "YELLOW"
)

// Colors lists the palette in draw order.
var Colors = [...]Color{Red, Blue, Yellow}

// Valid reports whether c is one of the three palette colors.
func (c Color) Valid() bool {
	return c == Red || c == Blue || c == Yellow
}

// Orientation describes how a pill lies. It is informational only;
// geometry follows Rotation.
type Orientation string

const (
	Horizontal Orientation = "HORIZONTAL"
	Vertical   Orientation = "VERTICAL"
)

// Rotation is the pill rotation in degrees: 0, 90, 180 or 270.
type Rotation int

// Rotations lists the four valid rotations.
var Rotations = [...]Rotation{0, 90, 180, 270}

// Valid reports whether r is one of the four quarter turns.
func (r Rotation) Valid() bool {
	return r == 0 || r == 90 || r == 180 || r == 270
}

// Orientation returns the orientation implied by the rotation.
func (r Rotation) Orientation() Orientation {
	if r == 90 || r == 270 {
		return Vertical
	}
	return Horizontal
}

// Direction is a rotation direction.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

var (
	ErrColorCount      = errors.New("pill: must have exactly two colors")
	ErrInvalidColor    = errors.New("pill: invalid color")
	ErrInvalidRotation = errors.New("pill: rotation must be 0, 90, 180 or 270")
)

// Pill is an immutable two-cell piece anchored at (X, Y).
type Pill struct {
	Colors      [2]Color
	X, Y        int
	Orientation Orientation
	Rotation    Rotation
}

// New creates a pill after checking the color pair and rotation.
func New(colors []Color, x, y int, orientation Orientation, rotation Rotation) (Pill, error) {
	if len(colors) != 2 {
		return Pill{}, fmt.Errorf("%w: got %d", ErrColorCount, len(colors))
	}
	for _, c := range colors {
		if !c.Valid() {
			return Pill{}, fmt.Errorf("%w: %q", ErrInvalidColor, string(c))
		}
	}
	if !rotation.Valid() {
		return Pill{}, fmt.Errorf("%w: got %d", ErrInvalidRotation, rotation)
	}
	return Pill{
		Colors:      [2]Color{colors[0], colors[1]},
		X:           x,
		Y:           y,
		Orientation: orientation,
		Rotation:    rotation,
	}, nil
}

// Rotate returns the pill turned a quarter in the given direction with its
// orientation recomputed.
func Rotate(p Pill, dir Direction) Pill {
	delta := Rotation(90)
	if dir == CounterClockwise {
		delta = -90
	}
	p.Rotation = (p.Rotation + delta + 360) % 360
	p.Orientation = p.Rotation.Orientation()
	return p
}

// Moved returns the pill shifted by (dx, dy).
func (p Pill) Moved(dx, dy int) Pill {
	p.X += dx
	p.Y += dy
	return p
}

// String renders the pill for logs and debugging.
func (p Pill) String() string {
	return fmt.Sprintf("%s/%s@(%d,%d) %d°", p.Colors[0], p.Colors[1], p.X, p.Y, p.Rotation)
}
