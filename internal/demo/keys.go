package demo

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Delete    key.Binding
	Mark      key.Binding
	Pause     key.Binding
	Direction key.Binding
	Find      key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Mark:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark")),
		Pause:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Direction: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "direction")),
		Find:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Delete, k.Mark, k.Pause, k.Find, k.Help, k.Quit}
}

func (k keyMap) full() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Delete, k.Mark, k.Pause, k.Direction, k.Find, k.Save, k.Help, k.Quit}
}

var (
	keyStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	descStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

func renderBindings(bindings []key.Binding, sep string) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Desc))
	}
	return strings.Join(parts, sep)
}
