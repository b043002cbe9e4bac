package render

import (
	"math"

	"github.com/lixenwraith/divide-conquer/constants"
	"github.com/lixenwraith/divide-conquer/vmath"
)

// Layout maps the terminal to the play area and status bar
// One cell is one play-area unit; the play area starts at the top-left cell
type Layout struct {
	Width      int
	Height     int
	PlayWidth  int
	PlayHeight int
	StatusY    int
}

// NewLayout splits a terminal of w x h cells
func NewLayout(w, h int) Layout {
	ph := max(h-constants.StatusBarHeight, 0)
	return Layout{
		Width:      w,
		Height:     h,
		PlayWidth:  w,
		PlayHeight: ph,
		StatusY:    ph,
	}
}

// TooSmall reports whether the play area is below the playable minimum
func (l Layout) TooSmall() bool {
	return l.PlayWidth < constants.MinPlayWidth || l.PlayHeight < constants.MinPlayHeight
}

// PlayBounds returns the play area in engine units
func (l Layout) PlayBounds() vmath.Rect {
	return vmath.NewRect(0, 0, float64(l.PlayWidth), float64(l.PlayHeight))
}

// CellCenter returns the play-area point at the center of a cell
func (l Layout) CellCenter(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(y) + 0.5
}

// CellAt returns the cell holding a play-area point
func (l Layout) CellAt(px, py float64) (int, int) {
	return int(math.Floor(px)), int(math.Floor(py))
}

// CenterCell returns the cell under the middle of the play area
func (l Layout) CenterCell() (int, int) {
	c := l.PlayBounds().Center()
	return l.CellAt(c.X, c.Y)
}

// InPlay reports whether a cell lies in the play area
func (l Layout) InPlay(x, y int) bool {
	return x >= 0 && x < l.PlayWidth && y >= 0 && y < l.PlayHeight
}

// ClampCell pulls a cell into the play area
func (l Layout) ClampCell(x, y int) (int, int) {
	return max(0, min(x, l.PlayWidth-1)), max(0, min(y, l.PlayHeight-1))
}
