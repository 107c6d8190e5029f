package geofence

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Position is one location reading from the device.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// Reading is one update cycle from the source: either a position or a
// read failure for that cycle.
type Reading struct {
	Position Position
	Err      error
}

// LocationSource is a push-based stream of location updates. Watch
// returns a channel of readings and a release function that must drop
// the underlying subscription.
type LocationSource interface {
	Watch(ctx context.Context) (<-chan Reading, func(), error)
}

// Notifier delivers the "arrived at the workplace" notification.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// NotifyLog remembers whether the arrival notification already fired on
// a given local calendar day. Injectable so the monitor never hard-codes
// its storage.
type NotifyLog interface {
	AlreadyNotified(ctx context.Context, day string) (bool, error)
	MarkNotified(ctx context.Context, day string) error
}

// Monitor watches a location stream against the configured fence and
// raises at most one arrival notification per local calendar day.
// Start is idempotent and Stop is safe from any state.
type Monitor struct {
	settings Settings
	source   LocationSource
	notifier Notifier
	log      NotifyLog
	zone     *time.Location
	logger   *zap.Logger

	now func() time.Time

	mu         sync.Mutex
	monitoring bool
	cancel     context.CancelFunc
	done       chan struct{}

	wasInside bool
}

// NewMonitor builds a monitor. zone is the workplace time zone used to
// key the daily notification reset.
func NewMonitor(settings Settings, source LocationSource, notifier Notifier, log NotifyLog, zone *time.Location, logger *zap.Logger) *Monitor {
	if zone == nil {
		zone = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		settings: settings,
		source:   source,
		notifier: notifier,
		log:      log,
		zone:     zone,
		logger:   logger,
		now:      time.Now,
	}
}

// Start begins watching the location stream. Calling Start while already
// monitoring is a no-op.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.monitoring {
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	updates, release, err := m.source.Watch(watchCtx)
	if err != nil {
		cancel()
		return err
	}

	m.monitoring = true
	m.cancel = cancel
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)
		defer release()
		for {
			select {
			case r, ok := <-updates:
				if !ok {
					return
				}
				if r.Err != nil {
					// A failed read skips this cycle only.
					m.logger.Warn("location read failed", zap.Error(r.Err))
					continue
				}
				m.handleUpdate(watchCtx, r.Position)
			case <-watchCtx.Done():
				return
			}
		}
	}()
	return nil
}

// Stop cancels the watch and releases the subscription. Safe to call in
// any state, including never-started.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.monitoring {
		m.mu.Unlock()
		return
	}
	m.monitoring = false
	cancel := m.cancel
	done := m.done
	m.mu.Unlock()

	cancel()
	<-done
}

// handleUpdate classifies one reading and fires the arrival notification
// on an outside-to-inside edge. Updates arrive strictly one at a time.
func (m *Monitor) handleUpdate(ctx context.Context, pos Position) {
	inside, distance := m.settings.Classify(pos.Latitude, pos.Longitude)
	arrived := inside && !m.wasInside
	m.wasInside = inside
	if !arrived {
		return
	}

	day := m.now().In(m.zone).Format("2006-01-02")
	notified, err := m.log.AlreadyNotified(ctx, day)
	if err != nil {
		m.logger.Warn("notify log read failed", zap.Error(err))
	}
	if !notified && err == nil {
		if err := m.notifier.Notify(ctx, "Você chegou ao local de trabalho. Não esqueça de registrar o ponto."); err != nil {
			m.logger.Warn("arrival notification failed", zap.Error(err))
		}
	}
	// Mark regardless of delivery so a denied permission or failed send
	// does not retrigger on every re-entry today.
	if err := m.log.MarkNotified(ctx, day); err != nil {
		m.logger.Warn("notify log write failed", zap.Error(err))
	}
	m.logger.Info("workplace arrival detected",
		zap.Float64("distance_m", distance),
		zap.String("day", day))
}
