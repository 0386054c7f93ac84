// Package demo is an interactive harness for the marquee widget.
package demo

import (
	"log"
	"path"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/marquee/core/widgets"
	"github.com/jask/marquee/internal/config"
	"github.com/jask/marquee/internal/content"
	"github.com/jask/marquee/internal/marquee"
)

const markedKey = "marked"

// Rows taken by the header, footer and status line.
const (
	headerHeight = 1
	footerHeight = 1
	statusHeight = 1
)

type statusMsg string

type errMsg struct{ error }

// App frames a marquee in a pane and drives it from the keyboard.
type App struct {
	cfg     config.Config
	keys    keyMap
	marquee *marquee.Model
	find    textinput.Model
	save    func(config.Config) error

	width, height int
	focusID       string
	focusIdx      int
	finding       bool
	showHelp      bool
	status        string
	statusErr     bool
}

// New builds the harness around items. The marquee takes its options from
// cfg.Marquee.
func New(cfg config.Config, items []content.Item) *App {
	a := &App{
		cfg:  cfg,
		keys: defaultKeys(),
		save: config.Save,
	}
	a.find = textinput.New()
	a.find.Prompt = "find: "
	a.find.Placeholder = "text or image name"
	a.find.CharLimit = 64

	opts := cfg.Marquee.Options()
	opts.Content = items
	opts.RenderItem = a.renderItem
	opts.OnMount = func() { log.Printf("marquee %s: mounted", cfg.Demo.Title) }
	opts.OnAnimationStart = func() { log.Printf("marquee %s: animation start", cfg.Demo.Title) }
	opts.OnAnimationIteration = func() { log.Printf("marquee %s: animation iteration", cfg.Demo.Title) }
	opts.OnAnimationEnd = func() { log.Printf("marquee %s: animation end", cfg.Demo.Title) }
	a.marquee = marquee.New(opts)

	if views := a.marquee.Items(); len(views) > 0 {
		a.setFocus(views, 0)
		a.marquee.Refresh()
	}
	return a
}

// Marquee returns the hosted widget.
func (a *App) Marquee() *marquee.Model { return a.marquee }

func (a *App) Init() tea.Cmd {
	return a.marquee.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil
	case marquee.FrameMsg, tea.MouseMsg:
		_, cmd := a.marquee.Update(msg)
		return a, cmd
	case marquee.ItemsChangedMsg:
		_, cmd := a.marquee.Update(msg)
		if a.fixFocus() {
			a.marquee.Refresh()
		}
		return a, cmd
	case statusMsg:
		a.status, a.statusErr = string(msg), false
		return a, nil
	case errMsg:
		a.status, a.statusErr = "error: "+msg.Error(), true
		return a, nil
	case tea.KeyMsg:
		if a.finding {
			return a.updateFind(msg)
		}
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showHelp {
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help), msg.String() == "esc":
			a.showHelp = false
		}
		return a, nil
	}
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
	case key.Matches(msg, a.keys.Prev):
		a.moveFocus(-1)
	case key.Matches(msg, a.keys.Next):
		a.moveFocus(1)
	case key.Matches(msg, a.keys.Delete):
		if v, ok := a.focused(); ok {
			v.DeleteItem()
			a.status = "deleting " + label(v.Record)
			a.refresh()
		}
	case key.Matches(msg, a.keys.Mark):
		if v, ok := a.focused(); ok {
			if v.Flag(markedKey) {
				v.RemoveProperty(markedKey)
				a.status = "unmarked " + label(v.Record)
			} else {
				v.SetProperty(markedKey, true)
				a.status = "marked " + label(v.Record)
			}
			a.refresh()
		}
	case key.Matches(msg, a.keys.Pause):
		cmd := a.marquee.TogglePause()
		if a.marquee.Paused() {
			a.status = "paused"
		} else {
			a.status = "running"
		}
		return a, cmd
	case key.Matches(msg, a.keys.Direction):
		dir := a.marquee.Options().Direction.Next()
		a.marquee.SetDirection(dir)
		a.cfg.Marquee.Direction = string(dir)
		a.status = "direction " + string(dir)
	case key.Matches(msg, a.keys.Find):
		a.finding = true
		a.find.SetValue("")
		return a, a.find.Focus()
	case key.Matches(msg, a.keys.Save):
		return a, a.saveCmd()
	}
	return a, nil
}

func (a *App) updateFind(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.finding = false
		a.find.Blur()
		return a, nil
	case "enter":
		a.finding = false
		a.find.Blur()
		query := strings.TrimSpace(a.find.Value())
		if query == "" {
			return a, nil
		}
		views := a.marquee.Items()
		if i := closest(views, query); i >= 0 {
			a.setFocus(views, i)
			a.marquee.Refresh()
			a.status = "found " + label(views[i].Record)
		} else {
			a.status = "nothing to search"
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.find, cmd = a.find.Update(msg)
	return a, cmd
}

func (a *App) saveCmd() tea.Cmd {
	cfg, save := a.cfg, a.save
	return func() tea.Msg {
		if err := save(cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg("settings saved to " + config.Path())
	}
}

func (a *App) focused() (marquee.ItemView, bool) {
	for _, v := range a.marquee.Items() {
		if v.ID == a.focusID {
			return v, true
		}
	}
	return marquee.ItemView{}, false
}

func (a *App) moveFocus(delta int) {
	views := a.marquee.Items()
	if len(views) == 0 {
		return
	}
	idx := a.indexOf(views)
	if idx < 0 {
		idx = 0
	}
	a.setFocus(views, (idx+delta+len(views))%len(views))
	a.marquee.Refresh()
}

func (a *App) setFocus(views []marquee.ItemView, idx int) {
	a.focusIdx = idx
	a.focusID = views[idx].ID
}

func (a *App) indexOf(views []marquee.ItemView) int {
	for i, v := range views {
		if v.ID == a.focusID {
			return i
		}
	}
	return -1
}

// refresh re-reads the store after a local mutation so the next key sees it.
func (a *App) refresh() {
	a.marquee.Refresh()
	if a.fixFocus() {
		a.marquee.Refresh()
	}
}

// fixFocus moves focus to the item now at the old position when the focused
// one is gone and reports whether it changed.
func (a *App) fixFocus() bool {
	views := a.marquee.Items()
	if i := a.indexOf(views); i >= 0 {
		a.focusIdx = i
		return false
	}
	if len(views) == 0 {
		changed := a.focusID != ""
		a.focusID, a.focusIdx = "", 0
		return changed
	}
	a.setFocus(views, min(a.focusIdx, len(views)-1))
	return true
}

func (a *App) layout() widgets.VStack {
	return widgets.VStack{
		Widgets: []widgets.Widget{
			widgets.Text(titleStyle.Render(a.cfg.Demo.Title)),
			widgets.Func(a.renderPane),
			widgets.Func(a.renderFooter),
			widgets.Func(a.renderStatus),
		},
		Heights: []int{headerHeight, 0, footerHeight, statusHeight},
	}
}

func (a *App) resize(width, height int) {
	a.width, a.height = width, height
	heights := a.layout().Layout(height)
	w, h := widgets.ContentSize(width, heights[1])
	a.marquee.SetSize(w, h)
	a.marquee.SetOrigin(widgets.InsetX, heights[0]+widgets.InsetY)
	a.find.Width = max(10, width-len(a.find.Prompt)-2)
}

// Close releases the marquee.
func (a *App) Close() {
	a.marquee.Close()
}

func label(r content.Record) string {
	if r.Type == content.TypeImage {
		src, _, _ := strings.Cut(r.Content, "?")
		return path.Base(src)
	}
	return r.Content
}

// closest returns the index of the item whose label is nearest to query by
// edit distance. Ties keep the earliest item.
func closest(views []marquee.ItemView, query string) int {
	query = strings.ToLower(query)
	best, bestDist := -1, 0
	for i, v := range views {
		l := strings.ToLower(label(v.Record))
		d := levenshtein.ComputeDistance(query, l)
		if strings.Contains(l, query) {
			d = 0
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
