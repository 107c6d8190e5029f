package geofence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// workplace used across monitor tests; positions below are offsets from it.
var testSettings = Settings{
	Enabled:             true,
	WorkplaceLatitude:   -15.7942,
	WorkplaceLongitude:  -47.8822,
	AllowedRadiusMeters: 100,
}

type fakeSource struct {
	ch       chan Reading
	released bool
	watches  int
}

func newFakeSource(buf int) *fakeSource {
	return &fakeSource{ch: make(chan Reading, buf)}
}

func (s *fakeSource) Watch(context.Context) (<-chan Reading, func(), error) {
	s.watches++
	return s.ch, func() { s.released = true }, nil
}

type countingNotifier struct {
	mu    sync.Mutex
	count int
	fail  bool
}

func (n *countingNotifier) Notify(context.Context, string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++
	if n.fail {
		return errors.New("delivery failed")
	}
	return nil
}

func (n *countingNotifier) calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

type countingLog struct {
	*MemoryNotifyLog
	mu    sync.Mutex
	marks int
}

func (l *countingLog) MarkNotified(ctx context.Context, day string) error {
	l.mu.Lock()
	l.marks++
	l.mu.Unlock()
	return l.MemoryNotifyLog.MarkNotified(ctx, day)
}

func (l *countingLog) markCalls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.marks
}

func inside() Position {
	return Position{Latitude: testSettings.WorkplaceLatitude, Longitude: testSettings.WorkplaceLongitude}
}

func outside() Position {
	// ~1.4km east of the workplace.
	return Position{Latitude: testSettings.WorkplaceLatitude, Longitude: testSettings.WorkplaceLongitude + 0.013}
}

func runSequence(t *testing.T, m *Monitor, src *fakeSource, readings []Reading) {
	t.Helper()
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, r := range readings {
		src.ch <- r
	}
	close(src.ch)
	m.Stop()
}

func TestMonitorEdgeTriggered(t *testing.T) {
	src := newFakeSource(8)
	notifier := &countingNotifier{}
	log := &countingLog{MemoryNotifyLog: NewMemoryNotifyLog()}
	m := NewMonitor(testSettings, src, notifier, log, time.UTC, nil)

	seq := []Reading{
		{Position: outside()},
		{Position: outside()},
		{Position: inside()},
		{Position: inside()},
		{Position: outside()},
		{Position: inside()},
	}
	runSequence(t, m, src, seq)

	// Two outside->inside transitions, not four inside readings.
	if got := log.markCalls(); got != 2 {
		t.Fatalf("transitions detected = %d, want 2", got)
	}
	// Same calendar day, so only the first transition notifies.
	if got := notifier.calls(); got != 1 {
		t.Fatalf("notifications = %d, want 1", got)
	}
	if !src.released {
		t.Fatal("subscription not released after stop")
	}
}

func TestMonitorMarksEvenWhenDeliveryFails(t *testing.T) {
	src := newFakeSource(4)
	notifier := &countingNotifier{fail: true}
	log := &countingLog{MemoryNotifyLog: NewMemoryNotifyLog()}
	m := NewMonitor(testSettings, src, notifier, log, time.UTC, nil)

	seq := []Reading{
		{Position: outside()},
		{Position: inside()},
		{Position: outside()},
		{Position: inside()},
	}
	runSequence(t, m, src, seq)

	if got := notifier.calls(); got != 1 {
		t.Fatalf("notifications attempted = %d, want 1 (failure still marks the day)", got)
	}
}

func TestMonitorNewDayResetsNotification(t *testing.T) {
	// Unbuffered so each send synchronizes with the monitor loop and the
	// clock swap below cannot race with a pending update.
	src := newFakeSource(0)
	notifier := &countingNotifier{}
	log := &countingLog{MemoryNotifyLog: NewMemoryNotifyLog()}
	m := NewMonitor(testSettings, src, notifier, log, time.UTC, nil)

	day := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return day }

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	src.ch <- Reading{Position: outside()}
	src.ch <- Reading{Position: inside()}
	// Next transition happens the following day.
	src.ch <- Reading{Position: outside()}
	day = day.Add(24 * time.Hour)
	src.ch <- Reading{Position: inside()}
	close(src.ch)
	m.Stop()

	if got := notifier.calls(); got != 2 {
		t.Fatalf("notifications = %d, want 2 (one per day)", got)
	}
}

func TestMonitorReadFailureSkipsCycle(t *testing.T) {
	src := newFakeSource(4)
	notifier := &countingNotifier{}
	log := &countingLog{MemoryNotifyLog: NewMemoryNotifyLog()}
	m := NewMonitor(testSettings, src, notifier, log, time.UTC, nil)

	seq := []Reading{
		{Position: outside()},
		{Err: errors.New("gps timeout")},
		{Position: inside()},
	}
	runSequence(t, m, src, seq)

	if got := notifier.calls(); got != 1 {
		t.Fatalf("notifications = %d, want 1", got)
	}
}

func TestMonitorStartIdempotentStopSafe(t *testing.T) {
	src := newFakeSource(1)
	m := NewMonitor(testSettings, src, &countingNotifier{}, NewMemoryNotifyLog(), time.UTC, nil)

	// Stop before start must not panic.
	m.Stop()

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("second start: %v", err)
	}
	if src.watches != 1 {
		t.Fatalf("watch subscriptions = %d, want 1", src.watches)
	}
	close(src.ch)
	m.Stop()
	m.Stop()
}
