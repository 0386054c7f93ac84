// Package content owns the live list of marquee items and the mutations a
// rendered item may request (delete, tag, untag).
package content

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Item is caller-provided content. Type is usually one of the Type* constants
// but any string is accepted.
type Item struct {
	Content string
	Type    string
}

const (
	TypeText   = "text"
	TypeImage  = "image"
	TypeVideo  = "video"
	TypeIframe = "iframe"
)

// Reserved property keys. "content" and "type" write through to the record
// fields; "id" can never be changed.
const (
	KeyID      = "id"
	KeyContent = "content"
	KeyType    = "type"
)

// Record is a live item. Records returned by the store are snapshots: a
// mutation replaces the stored record, it never edits one in place, and
// writes to a returned record's Props never reach the store.
type Record struct {
	ID      string
	Content string
	Type    string
	Props   map[string]any
}

// Prop returns the extra property stored under key.
func (r Record) Prop(key string) (any, bool) {
	v, ok := r.Props[key]
	return v, ok
}

func (r Record) clone() Record {
	r.Props = maps.Clone(r.Props)
	return r
}

// Flag reports whether key is set to boolean true.
func (r Record) Flag(key string) bool {
	b, _ := r.Props[key].(bool)
	return b
}

// Store holds the ordered live set for one marquee instance.
//
// Removals scheduled by Delete fire on timer goroutines, so every method is
// safe for concurrent use. Listeners are always called without the lock held.
type Store struct {
	mu         sync.Mutex
	records    map[string]Record
	order      []string
	transition map[string]Timer
	delay      time.Duration
	scheduler  Scheduler
	listeners  map[int]func()
	nextID     int
	closed     bool
	newID      func() string
}

// Option configures a Store.
type Option func(*Store)

// WithTransition sets how long a deleted item stays in transition before it
// is removed. Zero or negative removes immediately.
func WithTransition(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// WithScheduler replaces the timer source used for deferred removal.
func WithScheduler(sch Scheduler) Option {
	return func(s *Store) {
		if sch != nil {
			s.scheduler = sch
		}
	}
}

// WithIDFunc replaces the identity generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		records:    make(map[string]Record),
		transition: make(map[string]Timer),
		scheduler:  RealScheduler{},
		listeners:  make(map[int]func()),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest assigns fresh identities to items and adds them to the live set.
// It only takes effect while the live set is empty and reports whether it
// did.
func (s *Store) Ingest(items []Item) bool {
	s.mu.Lock()
	if s.closed || len(s.records) > 0 || len(items) == 0 {
		s.mu.Unlock()
		return false
	}
	for _, it := range items {
		id := s.newID()
		s.records[id] = Record{ID: id, Content: it.Content, Type: it.Type}
		s.order = append(s.order, id)
	}
	s.mu.Unlock()
	s.notify()
	return true
}

// Delete removes the item with the given id. With a transition delay the item
// is marked in transition first and removed once the delay elapses. Deleting
// an unknown id, or one already in transition, does nothing and returns
// false.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	if _, ok := s.records[id]; !ok {
		s.mu.Unlock()
		return false
	}
	if _, pending := s.transition[id]; pending {
		s.mu.Unlock()
		return false
	}
	if s.delay <= 0 {
		s.removeLocked(id)
		s.mu.Unlock()
		s.notify()
		return true
	}
	s.transition[id] = s.scheduler.AfterFunc(s.delay, func() { s.finish(id) })
	s.mu.Unlock()
	s.notify()
	return true
}

func (s *Store) finish(id string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if _, ok := s.transition[id]; !ok {
		s.mu.Unlock()
		return
	}
	s.removeLocked(id)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) removeLocked(id string) {
	delete(s.records, id)
	delete(s.transition, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// SetProperty merges {key: value} into the record with the given id.
func (s *Store) SetProperty(id, key string, value any) bool {
	if key == "" || key == KeyID {
		return false
	}
	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok || s.closed {
		s.mu.Unlock()
		return false
	}
	next := rec
	next.Props = maps.Clone(rec.Props)
	switch key {
	case KeyContent:
		str, isStr := value.(string)
		if !isStr {
			s.mu.Unlock()
			return false
		}
		next.Content = str
	case KeyType:
		str, isStr := value.(string)
		if !isStr {
			s.mu.Unlock()
			return false
		}
		next.Type = str
	default:
		if next.Props == nil {
			next.Props = make(map[string]any, 1)
		}
		next.Props[key] = value
	}
	s.records[id] = next
	s.mu.Unlock()
	s.notify()
	return true
}

// RemoveProperty deletes key from the record with the given id. The key is
// gone afterwards, not set to a zero value.
func (s *Store) RemoveProperty(id, key string) bool {
	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok || s.closed {
		s.mu.Unlock()
		return false
	}
	if _, has := rec.Props[key]; !has {
		s.mu.Unlock()
		return false
	}
	next := rec
	next.Props = maps.Clone(rec.Props)
	delete(next.Props, key)
	if len(next.Props) == 0 {
		next.Props = nil
	}
	s.records[id] = next
	s.mu.Unlock()
	s.notify()
	return true
}

// Visible returns the live records in insertion order.
func (s *Store) Visible() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id].clone())
	}
	return out
}

// Get returns the live record with the given id.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	return rec.clone(), ok
}

// Len returns the size of the live set.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// InTransition reports whether id is waiting for its deferred removal.
func (s *Store) InTransition(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.transition[id]
	return ok
}

// Transitioning returns the ids currently in transition, in live order.
func (s *Store) Transitioning() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.transition))
	for _, id := range s.order {
		if _, ok := s.transition[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Subscribe registers fn to run after every mutation and returns a function
// that removes it.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close cancels every pending removal and drops all listeners. Items still in
// transition stay in the live set. Close is idempotent.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, t := range s.transition {
		t.Stop()
		delete(s.transition, id)
	}
	clear(s.listeners)
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, id := range slices.Sorted(maps.Keys(s.listeners)) {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
