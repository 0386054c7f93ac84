package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var popupStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorAccent).
	Padding(0, 1)

// RenderPopup centres popup over base, keeping the base visible around it.
// The result is exactly width x height cells.
func RenderPopup(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := fitLines(base, width, height)
	card := splitToLines(popupStyle.Render(popup), 0)
	cardWidth := maxLineWidth(card)
	if cardWidth == 0 || len(card) == 0 {
		return strings.Join(canvas, "\n")
	}
	x := max(0, (width-cardWidth)/2)
	y := max(0, (height-len(card))/2)
	for i, line := range card {
		row := y + i
		if row >= height {
			break
		}
		target := canvas[row]
		left := padRight(ansi.Truncate(target, x, ""), x)
		mid := padRight(line, min(cardWidth, width-x))
		pos := x + ansi.StringWidth(mid)
		right := ansi.Cut(target, pos, width)
		canvas[row] = padRight(left+mid+right, width)
	}
	return strings.Join(canvas, "\n")
}

func fitLines(s string, width, height int) []string {
	lines := splitToLines(s, height)
	for i := range lines {
		lines[i] = padRight(lines[i], width)
	}
	return lines
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for height > 0 && len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, ansi.StringWidth(line))
	}
	return w
}
