package demo

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/marquee/core/widgets"
	"github.com/jask/marquee/internal/content"
	"github.com/jask/marquee/internal/marquee"
)

var (
	colorText    = lipgloss.Color("#cdd6f4")
	colorMuted   = lipgloss.Color("#a6adc8")
	colorAccent  = lipgloss.Color("#89b4fa")
	colorMarked  = lipgloss.Color("#a6e3a1")
	colorDelete  = lipgloss.Color("#f38ba8")
	colorSurface = lipgloss.Color("#313244")
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(colorMuted).Background(colorSurface)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorDelete).Background(colorSurface)
	focusMark      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	markedMark     = lipgloss.NewStyle().Foreground(colorMarked).Bold(true)
	deleteMark     = lipgloss.NewStyle().Foreground(colorDelete)
	deletingStyle  = lipgloss.NewStyle().Faint(true).Strikethrough(true)
)

// renderItem draws one item with its state markers: the focus caret, a check
// when marked and a cross while it is being removed.
func (a *App) renderItem(v marquee.ItemView) string {
	var body string
	switch v.Type {
	case content.TypeImage:
		body = marquee.RenderImage(v.Content)
	default:
		body = marquee.RenderText(v.Content, a.cfg.Marquee.TextElementType)
	}

	caret := " "
	if v.ID == a.focusID {
		caret = focusMark.Render("▸")
	}
	state := " "
	switch {
	case v.IsTransitioning:
		state = deleteMark.Render("✗")
		body = deletingStyle.Render(ansi.Strip(body))
	case v.Flag(markedKey):
		state = markedMark.Render("✓")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, caret, body, state)
}

func (a *App) renderPane(width, height int) string {
	badge := string(a.marquee.Options().Direction)
	if a.marquee.Paused() {
		badge += " · paused"
	}
	return widgets.Pane{
		Title:   "Marquee",
		Badge:   badge,
		Content: a.marquee.View(),
		Focused: true,
		Paused:  a.marquee.Paused(),
	}.Render(width, height)
}

func (a *App) renderFooter(width, height int) string {
	if a.finding {
		return a.find.View()
	}
	return ansi.Truncate(renderBindings(a.keys.short(), "  "), width, "")
}

func (a *App) renderStatus(width, height int) string {
	msg := a.status
	if msg == "" {
		msg = "Ready"
	}
	msg = ansi.Truncate(msg, width, "…")
	style := statusStyle
	if a.statusErr {
		style = statusErrStyle
	}
	return style.Width(width).Render(msg)
}

func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	out := a.layout().Render(a.width, a.height)
	if a.showHelp {
		help := titleStyle.Render("Keys") + "\n\n" + renderBindings(a.keys.full(), "\n")
		out = widgets.RenderPopup(out, help, a.width, a.height)
	}
	return out
}
