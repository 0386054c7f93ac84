// Package marquee is a Bubble Tea widget that scrolls a list of items across
// a fixed viewport without a visible seam.
//
// The widget renders every item once into a strip, places two copies of the
// strip back to back and moves the viewport along them by one strip length
// per loop. Because the second copy starts where the first ends, wrapping
// the offset back to zero is invisible.
package marquee

import (
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/marquee/internal/content"
	"github.com/jask/marquee/internal/resize"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// FrameMsg advances the scroll. It is addressed to one model instance.
type FrameMsg struct {
	ID   int
	tag  int
	Time time.Time
}

// ItemsChangedMsg reports that the item store was mutated.
type ItemsChangedMsg struct {
	ID int
}

// Model is the marquee widget.
type Model struct {
	id   int
	tag  int
	opts Options

	store       *content.Store
	observer    *resize.Observer
	frame       *resize.Element
	stripElem   *resize.Element
	changes     chan struct{}
	done        chan struct{}
	unsubscribe func()

	visible []content.Record
	strip   strip
	// duration of one loop in whole seconds
	duration int

	originX, originY int
	paused           bool
	hovered          bool
	started          bool
	ended            bool
	closed           bool
	ticking          bool
	// stalled is set when the loop stopped because the duration was zero.
	stalled bool
	delayLeft        time.Duration
	progress         time.Duration
	iteration        int
	lastFrame        time.Time
}

// New builds a marquee and ingests opts.Content into its own store.
func New(opts Options) *Model {
	opts = opts.normalized()
	m := &Model{
		id:        nextID(),
		opts:      opts,
		frame:     resize.NewElement("frame"),
		stripElem: resize.NewElement("strip"),
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
		delayLeft: opts.AnimationDelay,
	}
	storeOpts := []content.Option{content.WithTransition(opts.TransitionDuration)}
	if opts.Scheduler != nil {
		storeOpts = append(storeOpts, content.WithScheduler(opts.Scheduler))
	}
	m.store = content.New(storeOpts...)
	m.unsubscribe = m.store.Subscribe(func() {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	m.observer = resize.New(m.measured)
	m.observer.Observe(m.frame, m.stripElem)

	m.store.Ingest(opts.Content)
	m.Refresh()
	return m
}

// ID identifies the instance in frame and change messages.
func (m *Model) ID() int { return m.id }

// Store exposes the instance's item store.
func (m *Model) Store() *content.Store { return m.store }

// Options returns the normalised options.
func (m *Model) Options() Options { return m.opts }

// Init fires OnMount and starts the change feed and the frame loop.
func (m *Model) Init() tea.Cmd {
	if m.closed {
		return nil
	}
	if m.opts.OnMount != nil {
		m.opts.OnMount()
	}
	return tea.Batch(m.waitForChange(), m.startTicking())
}

func (m *Model) waitForChange() tea.Cmd {
	ch, done, id := m.changes, m.done, m.id
	return func() tea.Msg {
		select {
		case <-ch:
			return ItemsChangedMsg{ID: id}
		case <-done:
			return nil
		}
	}
}

func (m *Model) frameCmd() tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, tag: tag, Time: t}
	})
}

func (m *Model) startTicking() tea.Cmd {
	if m.closed || m.paused || m.ended || m.ticking {
		return nil
	}
	m.ticking = true
	m.stalled = false
	m.tag++
	m.lastFrame = time.Time{}
	return m.frameCmd()
}

func (m *Model) stopTicking() {
	m.ticking = false
	m.tag++
}

// Update handles frames, store changes, window size and mouse events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		if msg.ID != m.id || msg.tag != m.tag || !m.ticking {
			return m, nil
		}
		return m, m.advance(msg.Time)
	case ItemsChangedMsg:
		if msg.ID != m.id || m.closed {
			return m, nil
		}
		m.Refresh()
		return m, tea.Batch(m.waitForChange(), m.wake())
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) advance(now time.Time) tea.Cmd {
	var dt time.Duration
	if !m.lastFrame.IsZero() {
		dt = now.Sub(m.lastFrame)
	}
	m.lastFrame = now
	if dt < 0 {
		dt = 0
	}

	if m.delayLeft > 0 {
		m.delayLeft -= dt
		if m.delayLeft > 0 {
			return m.frameCmd()
		}
		dt = -m.delayLeft
		m.delayLeft = 0
	}

	period := time.Duration(m.duration) * time.Second
	if period <= 0 {
		m.stalled = true
		m.stopTicking()
		return nil
	}
	if !m.started {
		m.started = true
		if m.opts.OnAnimationStart != nil {
			m.opts.OnAnimationStart()
		}
	}

	m.progress += dt
	for m.progress >= period {
		m.progress -= period
		m.iteration++
		if n := m.opts.AnimationIterationCount; n > 0 && m.iteration >= n {
			m.progress = 0
			m.ended = true
			m.stopTicking()
			if m.opts.OnAnimationEnd != nil {
				m.opts.OnAnimationEnd()
			}
			return nil
		}
		if m.opts.OnAnimationIteration != nil {
			m.opts.OnAnimationIteration()
		}
	}
	return m.frameCmd()
}

// Refresh re-reads the store, re-renders the strip and reports its new size
// to the observer.
func (m *Model) Refresh() {
	m.visible = m.store.Visible()
	p := m.Projection()
	m.strip = buildStrip(m.renderBlocks(), p.Vertical, m.opts.Gap)
	m.observer.Deliver(resize.Entry{
		Target: m.stripElem,
		Size:   resize.Dimensions{Width: m.strip.length, Height: m.strip.cross},
	})
}

// measured runs whenever the observer sees a new frame size or strip width.
func (m *Model) measured(s resize.Snapshot) {
	px := s.ItemsWidth * m.opts.CellPixels
	if m.opts.Direction.Vertical() {
		px *= 2
	}
	m.duration = Duration(float64(px), m.opts.AnimationDuration)
	period := time.Duration(m.duration) * time.Second
	if period > 0 && m.progress >= period {
		m.progress %= period
	}
	if m.stalled && period > 0 {
		// Picked up by the change feed, whose handler restarts the loop.
		select {
		case m.changes <- struct{}{}:
		default:
		}
	}
}

// wake restarts a loop that stalled on a zero duration.
func (m *Model) wake() tea.Cmd {
	if !m.stalled || m.duration <= 0 {
		return nil
	}
	return m.startTicking()
}

// SetSize sets the frame the marquee is laid into.
func (m *Model) SetSize(width, height int) {
	m.observer.Deliver(resize.Entry{
		Target: m.frame,
		Size:   resize.Dimensions{Width: max(0, width), Height: max(0, height)},
	})
}

// SetOrigin sets the screen position of the frame's top-left cell, used to
// hit-test mouse events.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// SetDirection changes the scroll direction and re-renders the strip.
func (m *Model) SetDirection(d Direction) {
	if parsed, ok := ParseDirection(string(d)); ok {
		m.opts.Direction = parsed
	}
	m.Refresh()
	m.measured(m.observer.Snapshot())
}

// SetContent ingests items if the store is empty. A non-empty store keeps
// its items.
func (m *Model) SetContent(items []content.Item) bool {
	m.opts.Content = items
	if !m.store.Ingest(items) {
		return false
	}
	m.Refresh()
	return true
}

// Duration returns the current loop duration in whole seconds.
func (m *Model) Duration() int { return m.duration }

// Paused reports whether the animation is frozen.
func (m *Model) Paused() bool { return m.paused }

// Ended reports whether a finite iteration count has run out.
func (m *Model) Ended() bool { return m.ended }

// Iteration returns the number of completed loops.
func (m *Model) Iteration() int { return m.iteration }

// Progress returns the fraction of the current loop that has elapsed.
func (m *Model) Progress() float64 {
	period := time.Duration(m.duration) * time.Second
	if period <= 0 {
		return 0
	}
	return float64(m.progress) / float64(period)
}

// Pause freezes the animation without resetting its progress.
func (m *Model) Pause() {
	if m.paused {
		return
	}
	m.paused = true
	m.stopTicking()
}

// Resume restarts a paused animation where it stopped.
func (m *Model) Resume() tea.Cmd {
	if !m.paused {
		return nil
	}
	m.paused = false
	return m.startTicking()
}

// TogglePause flips between paused and running.
func (m *Model) TogglePause() tea.Cmd {
	if m.paused {
		return m.Resume()
	}
	m.Pause()
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	inside := m.contains(msg.X, msg.Y)
	var cmds []tea.Cmd
	if m.opts.PauseOnHover && inside != m.hovered {
		m.hovered = inside
		cmds = append(cmds, m.TogglePause())
	}
	if m.opts.PauseOnClick && inside &&
		msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		cmds = append(cmds, m.TogglePause())
	}
	return tea.Batch(cmds...)
}

func (m *Model) contains(x, y int) bool {
	parent := m.observer.Snapshot().Parent
	return x >= m.originX && x < m.originX+parent.Width &&
		y >= m.originY && y < m.originY+parent.Height
}

// Projection returns the current layout projection.
func (m *Model) Projection() Projection {
	p := Project(m.opts.Direction, m.observer.Snapshot().Parent)
	if n := m.opts.AnimationIterationCount; n > 0 {
		p.IterationCount = strconv.Itoa(n)
	}
	p.Delay = m.opts.AnimationDelay
	return p
}

// Items returns the visible items with their mutation handles bound.
func (m *Model) Items() []ItemView {
	transitioning := m.store.Transitioning()
	out := make([]ItemView, 0, len(m.visible))
	for _, rec := range m.visible {
		id := rec.ID
		out = append(out, ItemView{
			Record:          rec,
			IsTransitioning: slices.Contains(transitioning, id),
			DeleteItem:      func() { m.store.Delete(id) },
			SetProperty:     func(key string, value any) { m.store.SetProperty(id, key, value) },
			RemoveProperty:  func(key string) { m.store.RemoveProperty(id, key) },
		})
	}
	return out
}

// View renders the viewport. It is empty once the model is closed.
func (m *Model) View() string {
	if !m.observer.Observing() {
		return ""
	}
	p := m.Projection()
	off := Offset(m.Progress(), m.strip.length, p.PlayDirection == PlayReverse)
	return m.strip.window(p, off)
}

// Close stops the frame loop and the change feed, cancels pending removals
// and stops observing sizes. It is safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.stopTicking()
	m.unsubscribe()
	m.store.Close()
	m.observer.Disconnect()
	close(m.done)
}
