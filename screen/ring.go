package screen

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/focusring/dial"
)

// a terminal cell is roughly twice as tall as it is wide
const aspect = 2

// ring draws the dial as a circle of cells and maps pointer positions on it
// back to dial coordinates.
type ring struct {
	radius int
}

func (r ring) width() int {
	return 2*aspect*r.radius + 1
}

func (r ring) height() int {
	return 2*r.radius + 1
}

// offset converts a cell relative to the ring's top-left corner into a
// pointer position relative to its centre, corrected for the cell aspect.
func (r ring) offset(col, row int) (dx, dy float64) {
	return float64(col-aspect*r.radius) / aspect, float64(row - r.radius)
}

func (r ring) onRing(col, row int) bool {
	d := math.Hypot(r.offset(col, row))

	return math.Abs(d-float64(r.radius)) < 0.55
}

// hit reports whether a press at the cell should grab the dial.
func (r ring) hit(col, row int) bool {
	return math.Hypot(r.offset(col, row)) <= float64(r.radius)+1.5
}

// knob returns the ring cell closest to angle.
func (r ring) knob(angle float64) (col, row int) {
	rad := (angle - 90) * math.Pi / 180
	dx := math.Cos(rad) * float64(r.radius)
	dy := math.Sin(rad) * float64(r.radius)

	return int(math.Round(dx*aspect)) + aspect*r.radius,
		int(math.Round(dy)) + r.radius
}

// render draws the ring with the arc up to angle filled and label centred
// inside it.
func (r ring) render(angle float64, label []string, st style) string {
	cells := make([][]string, r.height())

	kc, kr := r.knob(angle)

	for row := range cells {
		cells[row] = make([]string, r.width())

		for col := range cells[row] {
			cells[row][col] = " "

			if !r.onRing(col, row) {
				continue
			}

			a := dial.Angle(r.offset(col, row))

			switch {
			case col == kc && row == kr:
				cells[row][col] = st.knob.Render("◉")
			case angle >= 360 || (angle > 0 && a <= angle):
				cells[row][col] = st.filled.Render("●")
			default:
				cells[row][col] = st.empty.Render("·")
			}
		}
	}

	if kr >= 0 && kr < len(cells) && kc >= 0 && kc < r.width() {
		cells[kr][kc] = st.knob.Render("◉")
	}

	top := r.radius - len(label)/2

	for i, line := range label {
		row := top + i
		if row < 0 || row >= len(cells) {
			continue
		}

		w := lipgloss.Width(line)
		start := aspect*r.radius - w/2

		if start < 0 {
			continue
		}

		cells[row][start] = line

		for col := start + 1; col < start+w && col < r.width(); col++ {
			cells[row][col] = ""
		}
	}

	var b strings.Builder

	for i, row := range cells {
		if i > 0 {
			b.WriteByte('\n')
		}

		b.WriteString(strings.Join(row, ""))
	}

	return b.String()
}
