package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	colorText   = lipgloss.Color("#cdd6f4")
	colorMuted  = lipgloss.Color("#a6adc8")
	colorBorder = lipgloss.Color("#6c7086")
	colorAccent = lipgloss.Color("#89b4fa")
	colorActive = lipgloss.Color("#a6e3a1")
	colorWarn   = lipgloss.Color("#f9e2af")
)

// Pane draws a rounded frame with a title on the top edge and an optional
// badge on the right of it.
type Pane struct {
	Title   string
	Badge   string
	Content string
	Focused bool
	Paused  bool
}

// Offset of the content area from the pane's top-left corner.
const (
	InsetX = 2
	InsetY = 1
)

// ContentSize returns the content area for a pane of the given size.
func ContentSize(width, height int) (int, int) {
	return max(0, width-2*InsetX), max(0, height-2*InsetY)
}

func (p Pane) Render(width, height int) string {
	if width <= 0 {
		return ""
	}
	width = max(width, 4)
	h := max(height, 3)

	border := colorBorder
	if p.Focused {
		border = colorAccent
	}
	if p.Paused {
		border = colorWarn
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(colorText).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(colorMuted)
	if p.Paused {
		badgeStyle = badgeStyle.Foreground(colorWarn)
	} else if p.Focused {
		badgeStyle = badgeStyle.Foreground(colorActive)
	}

	innerWidth := width - 2
	contentWidth, _ := ContentSize(width, h)
	contentWidth = max(1, contentWidth)

	titleText := ""
	if t := strings.TrimSpace(p.Title); t != "" {
		titleText = " " + ansi.Truncate(t, max(1, innerWidth-3), "…") + " "
	}
	badgeText := ""
	if b := strings.TrimSpace(p.Badge); b != "" {
		badgeText = " " + b + " "
		if ansi.StringWidth(titleText)+ansi.StringWidth(badgeText)+2 > innerWidth {
			badgeText = ""
		}
	}
	dashes := max(0, innerWidth-1-ansi.StringWidth(titleText)-ansi.StringWidth(badgeText))
	leftDash := min(1, innerWidth)
	rightDash := dashes
	if badgeText != "" {
		rightDash = max(0, dashes-1)
	}

	v := borderStyle.Render("│")
	top := borderStyle.Render("╭"+strings.Repeat("─", leftDash)) +
		titleStyle.Render(titleText) +
		borderStyle.Render(strings.Repeat("─", rightDash)) +
		badgeStyle.Render(badgeText)
	if badgeText != "" {
		top += borderStyle.Render("─")
	}
	top += borderStyle.Render("╮")

	lines := strings.Split(p.Content, "\n")
	rows := make([]string, 0, h)
	rows = append(rows, top)
	for i := 0; i < h-2; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, v+" "+padRight(line, contentWidth)+" "+v)
	}
	rows = append(rows, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(rows, "\n")
}

func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
