package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/idlab-discover/berryroc/internal/berry"
	"github.com/idlab-discover/berryroc/internal/metrics"
)

const matrixCell = 7

func cell(s string) string {
	return lipgloss.NewStyle().Width(matrixCell).Align(lipgloss.Center).Render(s)
}

func rowLabel(s string) string {
	return lipgloss.NewStyle().Width(9).Render(s)
}

// RenderMatrix draws the 2x2 confusion matrix: actual class on the rows,
// predicted class on the columns, positives first.
func RenderMatrix(c metrics.Counts) string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		rowLabel(""), cell(ClassMark(true)), cell(ClassMark(false)))
	pos := lipgloss.JoinHorizontal(lipgloss.Top,
		rowLabel(Dim.Render("actual ")+ClassMark(true)), cell(strconv.Itoa(c.TP)), cell(strconv.Itoa(c.FN)))
	neg := lipgloss.JoinHorizontal(lipgloss.Top,
		rowLabel(Dim.Render("actual ")+ClassMark(false)), cell(strconv.Itoa(c.FP)), cell(strconv.Itoa(c.TN)))

	title := rowLabel("") + lipgloss.NewStyle().Width(2*matrixCell).Align(lipgloss.Center).Render(Dim.Render("predicted"))
	return lipgloss.JoinVertical(lipgloss.Left, title, header, pos, neg)
}

// RateLine is one labelled rate as shown by RenderRates.
type RateLine struct {
	Name string
	Rate metrics.Rate
}

// RateLines lists the summary's rates in display order.
func RateLines(s metrics.Summary) []RateLine {
	return []RateLine{
		{"sensitivity", s.Sensitivity},
		{"specificity", s.Specificity},
		{"false positive rate", s.FalsePositiveRate},
		{"false negative rate", s.FalseNegativeRate},
		{"precision", s.Precision},
	}
}

// RenderRates lists the five rates as "name  num/den (x.xx)".
func RenderRates(s metrics.Summary) string {
	var sb strings.Builder
	for i, l := range RateLines(s) {
		if i > 0 {
			sb.WriteString("\n")
		}
		value := l.Rate.Format()
		if !l.Rate.Defined() {
			value = Muted.Render(value)
		}
		sb.WriteString(Dim.Render(fmt.Sprintf("%-20s", l.Name)))
		sb.WriteString(value)
	}
	return sb.String()
}

// RenderROC plots points on a width x height character grid with the chance
// diagonal. When current is not nil it is drawn on top of the curve.
func RenderROC(points []metrics.Point, current *metrics.Point, width, height int) string {
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}

	grid := make([][]rune, height+1)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width+1))
	}
	col := func(x float64) int { return clampInt(int(math.Round(x*float64(width))), 0, width) }
	row := func(y float64) int { return height - clampInt(int(math.Round(y*float64(height))), 0, height) }

	for i := 0; i <= width; i++ {
		x := float64(i) / float64(width)
		grid[row(x)][i] = '·'
	}

	for i := 1; i < len(points); i++ {
		drawSegment(grid, col(points[i-1].FPR), row(points[i-1].TPR), col(points[i].FPR), row(points[i].TPR))
	}
	if len(points) == 1 {
		grid[row(points[0].TPR)][col(points[0].FPR)] = '•'
	}

	curR, curC := -1, -1
	if current != nil {
		curR, curC = row(current.TPR), col(current.FPR)
	}

	var sb strings.Builder
	for r, line := range grid {
		switch r {
		case 0:
			sb.WriteString(Dim.Render("1.00 │"))
		case height:
			sb.WriteString(Dim.Render("0.00 │"))
		default:
			sb.WriteString(Dim.Render("     │"))
		}
		for c, ch := range line {
			switch {
			case r == curR && c == curC:
				sb.WriteString(Highlight.Render("●"))
			case ch == '•':
				sb.WriteString(Secondary.Render("•"))
			case ch == '·':
				sb.WriteString(Muted.Render("·"))
			default:
				sb.WriteRune(ch)
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString(Dim.Render("     └" + strings.Repeat("─", width+1)))
	sb.WriteString("\n")
	sb.WriteString(Dim.Render(fmt.Sprintf("      0.00%s1.00", strings.Repeat(" ", max(width-7, 1)))))
	sb.WriteString("\n")
	sb.WriteString(Dim.Render("      false positive rate → / true positive rate ↑"))
	return sb.String()
}

func drawSegment(grid [][]rune, c0, r0, c1, r1 int) {
	steps := max(abs(c1-c0), abs(r1-r0))
	if steps == 0 {
		grid[r0][c0] = '•'
		return
	}
	for i := 0; i <= steps; i++ {
		c := c0 + int(math.Round(float64(i*(c1-c0))/float64(steps)))
		r := r0 + int(math.Round(float64(i*(r1-r0))/float64(steps)))
		grid[r][c] = '•'
	}
}

// RenderScale places scored berries on a 0..1 axis of the given width and
// marks the threshold underneath. Berries at or right of the marker are
// predicted raspberries.
func RenderScale(items []berry.Item, threshold float64, width int) string {
	if width < 10 {
		width = 10
	}
	cells := make([]string, width+1)
	for i := range cells {
		cells[i] = Muted.Render("─")
	}
	for _, it := range items {
		if it.Value == nil {
			continue
		}
		c := clampInt(int(math.Round(*it.Value*float64(width))), 0, width)
		if it.Type.Positive() {
			cells[c] = Raspberry.Render("●")
		} else {
			cells[c] = Blueberry.Render("●")
		}
	}

	marker := clampInt(int(math.Round(threshold*float64(width))), 0, width)
	label := fmt.Sprintf("▲ %.2f", threshold)
	pad := marker
	if pad+len("▲ 0.00") > width+1 {
		label = fmt.Sprintf("%.2f ▲", threshold)
		pad = max(marker-len("0.00 "), 0)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(cells, ""))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString(Highlight.Render(label))
	sb.WriteString("\n")
	sb.WriteString(Dim.Render(fmt.Sprintf("0.00%s1.00", strings.Repeat(" ", max(width-7, 1)))))
	sb.WriteString("\n")
	sb.WriteString(Dim.Render("likelihood of raspberry"))
	return sb.String()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
