package marquee

import (
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	colorText   = lipgloss.Color("#cdd6f4")
	colorMuted  = lipgloss.Color("#a6adc8")
	colorBorder = lipgloss.Color("#585b70")
	colorAccent = lipgloss.Color("#89b4fa")
	colorGreen  = lipgloss.Color("#a6e3a1")
	colorPeach  = lipgloss.Color("#fab387")
)

var headingStyles = map[string]lipgloss.Style{
	"p":  lipgloss.NewStyle().Foreground(colorText),
	"h1": lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Underline(true),
	"h2": lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
	"h3": lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
	"h4": lipgloss.NewStyle().Foreground(colorGreen),
	"h5": lipgloss.NewStyle().Foreground(colorPeach).Italic(true),
	"h6": lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
}

var imageStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorBorder).
	Foreground(colorMuted).
	Padding(0, 1)

// RenderText renders text as the given element type (p, h1..h6).
func RenderText(text, element string) string {
	st, ok := headingStyles[element]
	if !ok {
		st = headingStyles["p"]
	}
	if element == "h1" {
		text = strings.ToUpper(text)
	}
	return st.Render(text)
}

// RenderImage renders a placeholder for an image source.
func RenderImage(src string) string {
	return imageStyle.Render("▣ " + imageName(src))
}

func imageName(src string) string {
	src, _, _ = strings.Cut(src, "?")
	name := path.Base(src)
	if name == "." || name == "/" {
		return "image"
	}
	return name
}

// renderBlocks renders one strip's worth of items using the first available
// source: the custom renderer, image content, then text content.
func (m *Model) renderBlocks() []string {
	switch {
	case m.opts.RenderItem != nil:
		views := m.Items()
		out := make([]string, 0, len(views))
		for _, v := range views {
			out = append(out, m.opts.RenderItem(v))
		}
		return out
	case len(m.opts.ImageContent) > 0:
		out := make([]string, 0, len(m.opts.ImageContent))
		for _, src := range m.opts.ImageContent {
			out = append(out, RenderImage(src))
		}
		return out
	case len(m.opts.TextContent) > 0:
		out := make([]string, 0, len(m.opts.TextContent))
		for _, text := range m.opts.TextContent {
			out = append(out, RenderText(text, m.opts.TextElementType))
		}
		return out
	}
	return nil
}

// strip is one rendered pass over every item, laid along the scroll axis.
type strip struct {
	lines  []string
	length int // cells along the scroll axis
	cross  int // cells across it
}

func buildStrip(blocks []string, vertical bool, gap int) strip {
	if len(blocks) == 0 {
		return strip{}
	}
	var joined string
	if vertical {
		parts := make([]string, 0, len(blocks))
		for _, b := range blocks {
			parts = append(parts, b+strings.Repeat("\n", gap))
		}
		joined = lipgloss.JoinVertical(lipgloss.Left, parts...)
	} else {
		parts := make([]string, 0, len(blocks))
		spacer := strings.Repeat(" ", gap)
		for _, b := range blocks {
			parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, b, spacer))
		}
		joined = lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}
	lines := strings.Split(joined, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	for i, l := range lines {
		lines[i] = padRight(l, w)
	}
	if vertical {
		return strip{lines: lines, length: len(lines), cross: w}
	}
	return strip{lines: lines, length: w, cross: len(lines)}
}

// window renders the viewport over two copies of the strip placed back to
// back, starting at off along the scroll axis.
func (s strip) window(p Projection, off int) string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}
	rows := make([]string, 0, p.Width)
	if p.Vertical {
		// The scroll axis runs down the rows: Width rows of Height columns.
		for i := 0; i < p.Width; i++ {
			line := ""
			if s.length > 0 {
				idx := off + i
				if idx < 2*s.length {
					line = s.lines[idx%s.length]
				}
			}
			rows = append(rows, padRight(ansi.Truncate(line, p.Height, ""), p.Height))
		}
		return strings.Join(rows, "\n")
	}
	for i := 0; i < p.Height; i++ {
		line := ""
		if i < len(s.lines) {
			doubled := s.lines[i] + s.lines[i]
			// Cut keeps a wide rune whole when off lands on its second cell.
			line = ansi.Truncate(ansi.Cut(doubled, off, off+p.Width), p.Width, "")
		}
		rows = append(rows, padRight(line, p.Width))
	}
	return strings.Join(rows, "\n")
}

func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
