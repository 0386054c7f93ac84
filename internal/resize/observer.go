// Package resize tracks the measured size of two rendered elements: the frame a
// marquee is laid into and one of its item strips.
//
// The host delivers measurements (window size messages, re-measured strips)
// through Deliver. The observer dispatches each entry by comparing its target
// against the two observed handles, so the order of entries never matters.
package resize

import "sync"

// Dimensions is a measured size in terminal cells.
type Dimensions struct {
	Width  int
	Height int
}

// Element is a handle to a rendered block. Handles are compared by identity.
type Element struct {
	name string
}

// NewElement returns a new handle. The name only shows up in String.
func NewElement(name string) *Element {
	return &Element{name: name}
}

func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	return e.name
}

// Entry is one measurement for one element.
type Entry struct {
	Target *Element
	Size   Dimensions
}

// Snapshot is the observer's current view of both elements.
type Snapshot struct {
	Parent     Dimensions
	ItemsWidth int
}

// Observer reports the frame dimensions and the strip width.
type Observer struct {
	mu        sync.Mutex
	container *Element
	strip     *Element
	snap      Snapshot
	onChange  func(Snapshot)
}

// New returns an observer that is not yet observing anything. onChange may be
// nil.
func New(onChange func(Snapshot)) *Observer {
	return &Observer{onChange: onChange}
}

// Observe starts observing container and strip. A nil container leaves the
// observer idle; a nil strip only observes the container.
func (o *Observer) Observe(container, strip *Element) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if container == nil {
		return
	}
	o.container = container
	o.strip = strip
}

// Observing reports whether a container handle is attached.
func (o *Observer) Observing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.container != nil
}

// Deliver applies measurements. Entries for elements that are not observed
// are dropped. onChange runs once if anything changed.
func (o *Observer) Deliver(entries ...Entry) {
	o.mu.Lock()
	if o.container == nil {
		o.mu.Unlock()
		return
	}
	prev := o.snap
	for _, e := range entries {
		switch {
		case e.Target == nil:
		case e.Target == o.container:
			o.snap.Parent = e.Size
		case e.Target == o.strip:
			o.snap.ItemsWidth = e.Size.Width
		}
	}
	next := o.snap
	fn := o.onChange
	o.mu.Unlock()

	if next != prev && fn != nil {
		fn(next)
	}
}

// Snapshot returns the latest measurements.
func (o *Observer) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap
}

// Disconnect stops observing both elements and drops the change callback.
// Measurements taken so far stay readable through Snapshot.
func (o *Observer) Disconnect() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.container = nil
	o.strip = nil
	o.onChange = nil
}
