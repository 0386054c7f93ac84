package content

import (
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// manualScheduler fires callbacks only when the test advances its clock.
type manualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{at: m.now + d, fn: f}
	m.timers = append(m.timers, t)
	return t
}

func (m *manualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	due := make([]*manualTimer, 0, len(m.timers))
	for _, t := range m.timers {
		if !t.stopped && !t.fired && t.at <= m.now {
			t.fired = true
			due = append(due, t)
		}
	}
	m.mu.Unlock()
	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

func sampleItems(n int) []Item {
	out := make([]Item, n)
	for i := range out {
		out[i] = Item{Content: fmt.Sprintf("item-%d", i), Type: TypeText}
	}
	return out
}

func ids(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestIngestAssignsDistinctIdentities(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 7, 50} {
		s := New()
		require.True(t, s.Ingest(sampleItems(n)))
		vis := s.Visible()
		require.Len(t, vis, n)

		seen := make(map[string]struct{}, n)
		for i, r := range vis {
			require.NotEmpty(t, r.ID)
			require.Equal(t, fmt.Sprintf("item-%d", i), r.Content)
			require.Equal(t, TypeText, r.Type)
			seen[r.ID] = struct{}{}
		}
		require.Len(t, seen, n)
	}
}

func TestIngestOnlyWhenEmpty(t *testing.T) {
	t.Parallel()

	s := New()
	require.True(t, s.Ingest(sampleItems(3)))
	before := ids(s.Visible())

	require.False(t, s.Ingest(sampleItems(5)))
	require.Equal(t, before, ids(s.Visible()))

	for _, id := range before {
		require.True(t, s.Delete(id))
	}
	require.Zero(t, s.Len())
	require.True(t, s.Ingest(sampleItems(2)))
	require.Equal(t, 2, s.Len())
}

func TestIngestEmptyListIsIgnored(t *testing.T) {
	t.Parallel()

	s := New()
	require.False(t, s.Ingest(nil))
	require.Empty(t, s.Visible())
}

func TestDeleteWithoutTransitionIsSynchronous(t *testing.T) {
	t.Parallel()

	s := New()
	s.Ingest(sampleItems(3))
	vis := s.Visible()

	require.True(t, s.Delete(vis[1].ID))
	require.Equal(t, []string{vis[0].ID, vis[2].ID}, ids(s.Visible()))
	require.False(t, s.InTransition(vis[1].ID))
}

func TestDeleteWithTransitionWaitsForDelay(t *testing.T) {
	t.Parallel()

	sch := &manualScheduler{}
	s := New(WithTransition(500*time.Millisecond), WithScheduler(sch))
	s.Ingest(sampleItems(2))
	target := s.Visible()[0].ID

	require.True(t, s.Delete(target))
	require.True(t, s.InTransition(target))
	require.Equal(t, []string{target}, s.Transitioning())
	require.Len(t, s.Visible(), 2)

	sch.Advance(499 * time.Millisecond)
	require.True(t, s.InTransition(target))
	require.Len(t, s.Visible(), 2)

	sch.Advance(time.Millisecond)
	require.False(t, s.InTransition(target))
	require.Empty(t, s.Transitioning())
	require.Len(t, s.Visible(), 1)
	_, ok := s.Get(target)
	require.False(t, ok)
}

func TestDeleteTwiceSchedulesOnce(t *testing.T) {
	t.Parallel()

	sch := &manualScheduler{}
	s := New(WithTransition(time.Second), WithScheduler(sch))
	s.Ingest(sampleItems(1))
	id := s.Visible()[0].ID

	require.True(t, s.Delete(id))
	require.False(t, s.Delete(id))
	require.Len(t, sch.timers, 1)
}

func TestDeleteWithRealTimer(t *testing.T) {
	t.Parallel()

	s := New(WithTransition(20 * time.Millisecond))
	t.Cleanup(s.Close)
	s.Ingest(sampleItems(2))
	id := s.Visible()[0].ID

	start := time.Now()
	require.True(t, s.Delete(id))
	require.Eventually(t, func() bool { return s.Len() == 1 }, 2*time.Second, 5*time.Millisecond)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	require.False(t, s.InTransition(id))
}

func TestCloseCancelsPendingRemovals(t *testing.T) {
	t.Parallel()

	sch := &manualScheduler{}
	s := New(WithTransition(time.Second), WithScheduler(sch))
	s.Ingest(sampleItems(2))
	id := s.Visible()[0].ID

	var calls int
	s.Subscribe(func() { calls++ })
	require.True(t, s.Delete(id))
	require.Equal(t, 1, calls)

	s.Close()
	require.True(t, sch.timers[0].stopped)
	sch.Advance(2 * time.Second)
	require.Equal(t, 1, calls)
	require.Equal(t, 2, s.Len())

	require.False(t, s.Delete(s.Visible()[1].ID))
	s.Close()
}

func TestSetAndRemoveProperty(t *testing.T) {
	t.Parallel()

	s := New()
	s.Ingest(sampleItems(2))
	id := s.Visible()[0].ID

	require.True(t, s.SetProperty(id, "marked", true))
	rec, ok := s.Get(id)
	require.True(t, ok)
	require.True(t, rec.Flag("marked"))
	require.Equal(t, true, s.Visible()[0].Props["marked"])

	require.True(t, s.RemoveProperty(id, "marked"))
	rec, _ = s.Get(id)
	_, has := rec.Prop("marked")
	require.False(t, has)
	require.NotContains(t, s.Visible()[0].Props, "marked")
}

func TestSnapshotsAreNotMutated(t *testing.T) {
	t.Parallel()

	s := New()
	s.Ingest(sampleItems(1))
	id := s.Visible()[0].ID

	s.SetProperty(id, "score", 1)
	snap := s.Visible()
	s.SetProperty(id, "score", 2)
	s.SetProperty(id, "extra", "x")

	require.Equal(t, 1, snap[0].Props["score"])
	require.NotContains(t, snap[0].Props, "extra")
	require.Equal(t, 2, s.Visible()[0].Props["score"])
}

func TestWritesToSnapshotsStayLocal(t *testing.T) {
	t.Parallel()

	s := New()
	s.Ingest(sampleItems(1))
	id := s.Visible()[0].ID
	s.SetProperty(id, "marked", true)

	calls := 0
	s.Subscribe(func() { calls++ })

	snap := s.Visible()[0]
	snap.Props["injected"] = "x"
	got, ok := s.Get(id)
	require.True(t, ok)
	require.NotContains(t, got.Props, "injected")

	got.Props["other"] = 1
	again, _ := s.Get(id)
	require.Equal(t, map[string]any{"marked": true}, again.Props)
	require.Zero(t, calls)
}

func TestReservedKeys(t *testing.T) {
	t.Parallel()

	s := New()
	s.Ingest(sampleItems(1))
	id := s.Visible()[0].ID

	require.False(t, s.SetProperty(id, KeyID, "other"))
	require.True(t, s.SetProperty(id, KeyContent, "renamed"))
	require.True(t, s.SetProperty(id, KeyType, TypeImage))
	require.False(t, s.SetProperty(id, KeyType, 42))

	rec, _ := s.Get(id)
	require.Equal(t, id, rec.ID)
	require.Equal(t, "renamed", rec.Content)
	require.Equal(t, TypeImage, rec.Type)
	require.Empty(t, rec.Props)
}

func TestMissingIdentityIsNoop(t *testing.T) {
	t.Parallel()

	s := New(WithTransition(time.Second), WithScheduler(&manualScheduler{}))
	s.Ingest(sampleItems(1))

	var calls int
	s.Subscribe(func() { calls++ })

	require.False(t, s.Delete("missing"))
	require.False(t, s.SetProperty("missing", "marked", true))
	require.False(t, s.RemoveProperty("missing", "marked"))
	require.False(t, s.InTransition("missing"))
	require.Zero(t, calls)
	require.Equal(t, 1, s.Len())
}

func TestSubscribeNotifiesEveryMutation(t *testing.T) {
	t.Parallel()

	s := New()
	var calls int
	unsubscribe := s.Subscribe(func() { calls++ })

	s.Ingest(sampleItems(2))
	id := s.Visible()[0].ID
	s.SetProperty(id, "marked", true)
	s.RemoveProperty(id, "marked")
	s.Delete(id)
	require.Equal(t, 4, calls)

	unsubscribe()
	s.Delete(s.Visible()[0].ID)
	require.Equal(t, 4, calls)
}

func TestListenerMayReadStore(t *testing.T) {
	t.Parallel()

	s := New()
	var seen []int
	s.Subscribe(func() { seen = append(seen, len(s.Visible())) })
	s.Ingest(sampleItems(3))
	s.Delete(s.Visible()[0].ID)
	require.Equal(t, []int{3, 2}, seen)
}

func TestWithIDFunc(t *testing.T) {
	t.Parallel()

	n := 0
	s := New(WithIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
	s.Ingest(sampleItems(2))
	require.Equal(t, []string{"id-1", "id-2"}, ids(s.Visible()))
}
