package site

import (
	"fmt"
	"strings"

	"github.com/atelier-theatral/sitectl/internal/util/sets"
)

// Auditorium geometry. 16 rows (no "I" row, per house convention), 24 seats
// per full row with odd numbers house-left and even numbers house-right,
// aisle gaps carrying the row label, a stage band at the front and the
// control booth at the back. Seats numbered above 20 are balcony seats and
// drawn tinted.
const (
	seatSize   = 40
	rowLabels  = "ABCDEFGHJKLMNOPQ"
	stageColor = "#8bc34a"
	bookedTint = "#ffcccb"
)

// seatColumns returns the full-width column layout: descending odd numbers,
// an aisle (0 = empty, -1 = row label slot), ascending odd remainder, then
// the even side mirrored.
func seatColumns() []int {
	var ls, rs []int
	for i := 11; i >= 0; i-- {
		ls = append(ls, i*2+1)
	}
	for i := 0; i < 12; i++ {
		rs = append(rs, i*2+2)
	}

	cols := make([]int, 0, 30)
	cols = append(cols, ls[:6]...)
	cols = append(cols, 0, -1, 0)
	cols = append(cols, ls[6:]...)
	cols = append(cols, rs[:6]...)
	cols = append(cols, 0, -1, 0)
	cols = append(cols, rs[6:]...)
	return cols
}

// seatGrid builds the per-row seat layout, narrowing toward the back.
func seatGrid() [][]int {
	cols := seatColumns()
	pad := func(left int, mid []int, right int) []int {
		row := make([]int, 0, len(cols))
		row = append(row, make([]int, left)...)
		row = append(row, mid...)
		row = append(row, make([]int, right)...)
		return row
	}

	grid := make([][]int, 0, len(rowLabels))
	for i := 0; i < 2; i++ {
		grid = append(grid, pad(0, cols, 0))
	}
	for i := 0; i < 8; i++ {
		grid = append(grid, pad(2, cols[2:len(cols)-2], 2))
	}
	grid = append(grid, pad(2, cols[2:len(cols)-4], 4))
	for i := 0; i < 4; i++ {
		grid = append(grid, pad(6, cols[6:len(cols)-6], 6))
	}
	last := make([]int, 0, len(cols))
	last = append(last, make([]int, 6)...)
	last = append(last, cols[6:13]...)
	last = append(last, make([]int, 4)...)
	last = append(last, cols[len(cols)-13:len(cols)-6]...)
	last = append(last, make([]int, 6)...)
	grid = append(grid, last)

	return grid
}

func drawText(x, y, size int, text, fill, dy string) string {
	extra := ""
	if dy != "" {
		extra = fmt.Sprintf(` dy="%s"`, dy)
	}
	return fmt.Sprintf(`<text x="%d" y="%d" dominant-baseline="middle" text-anchor="middle" font-family="sans-serif" font-size="%d" fill="%s"%s>%s</text>`,
		x, y, size, fill, extra, text)
}

func drawRect(x, y, w, h int, stroke, fill string) string {
	return fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" stroke="%s" fill="%s" />`,
		x, y, w, h, stroke, fill)
}

func drawSeat(x, y, number int, color string) string {
	return strings.Join([]string{
		fmt.Sprintf(`<g transform="translate(%d,%d) scale(1.6)">`, x, y),
		"  " + drawRect(-10, -10, 20, 20, "black", color),
		"  " + drawText(0, 0, 9, fmt.Sprintf("%d", number), "black", ".1em"),
		"</g>",
	}, "\n")
}

// renderSeatMap produces the SVG auditorium map with the given seat IDs
// (e.g. "J12") marked as reserved. Output is deterministic for a given
// reservation list.
func renderSeatMap(reserved []string) string {
	reservedSet := sets.New(reserved...)
	grid := seatGrid()
	cols := len(grid[0])

	w := seatSize*cols + 2*seatSize
	h := seatSize*len(grid) + 6*seatSize
	stage := seatSize * 2

	svg := []string{
		fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`, w, h),
		// stage band at the front
		drawRect(0, 0, w, stage, "none", stageColor),
		drawText(w/2, stage/2+5, 24, "Scène", "white", ""),
		// control booth at the back
		drawRect(0, h-stage, w, stage, "none", stageColor),
		drawText(w/2, h-stage/2+5, 24, "Régie", "white", ""),
	}

	for j, row := range grid {
		for i, k := range row {
			if k == 0 {
				continue
			}
			x := seatSize*i + seatSize*3/2
			y := seatSize*j + seatSize*7/2
			if k < 0 {
				svg = append(svg, drawText(x, y, 20, string(rowLabels[j]), "black", ""))
				continue
			}
			color := "none"
			if k > 20 {
				color = "yellow"
			}
			if reservedSet.Has(fmt.Sprintf("%c%d", rowLabels[j], k)) {
				color = bookedTint
			}
			svg = append(svg, drawSeat(x, y, k, color))
		}
	}

	svg = append(svg, "</svg>")
	return strings.Join(svg, "\n")
}
