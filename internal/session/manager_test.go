package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit-cnmi/internal/catalog"
	"transit-cnmi/internal/metrics"
	"transit-cnmi/internal/panel"
	"transit-cnmi/internal/publisher"
)

type recordingPublisher struct {
	mu    sync.Mutex
	panel []publisher.PanelMessage
}

func (r *recordingPublisher) PublishPanel(m publisher.PanelMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panel = append(r.panel, m)
	return nil
}
func (r *recordingPublisher) PublishTheme(publisher.ThemeMessage) error { return nil }
func (r *recordingPublisher) Close()                                    {}

func newManager(t *testing.T, pub publisher.Publisher, col *metrics.Collector, ttl time.Duration) *Manager {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return NewManager(cat, 5, pub, col, ttl)
}

func TestCreateDoDelete(t *testing.T) {
	col := metrics.NewCollector(5, time.Second)
	m := newManager(t, nil, col, 0)

	s := m.Create()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(col.ActiveSessions))

	snap, err := m.Do(s.ID, func(pm *panel.Machine) (panel.Snapshot, error) {
		return pm.SelectDestination("Micro Beach")
	})
	require.NoError(t, err)
	assert.Equal(t, panel.DestinationChosen, snap.State)

	snap, err = m.Snapshot(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Micro Beach", snap.SelectedDestination)

	require.NoError(t, m.Delete(s.ID))
	assert.ErrorIs(t, m.Delete(s.ID), ErrNotFound)
	_, err = m.Snapshot(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0.0, testutil.ToFloat64(col.ActiveSessions))
}

func TestScreensKeepStatePerSession(t *testing.T) {
	m := newManager(t, nil, nil, 0)
	a, b := m.Create(), m.Create()

	require.NoError(t, m.With(a.ID, func(s *Screens) error {
		require.NoError(t, s.Taxi.SelectTaxi("1"))
		return s.Driver.Choose("16")
	}))

	require.NoError(t, m.With(a.ID, func(s *Screens) error {
		_, ok := s.Taxi.Selected()
		assert.True(t, ok)
		_, ok = s.Driver.Pending()
		assert.True(t, ok)
		return nil
	}))
	require.NoError(t, m.With(b.ID, func(s *Screens) error {
		_, ok := s.Taxi.Selected()
		assert.False(t, ok)
		assert.True(t, s.Settings.Notifications)
		return nil
	}))

	assert.ErrorIs(t, m.With("missing", func(*Screens) error { return nil }), ErrNotFound)
}

func TestWithRefreshesIdleClock(t *testing.T) {
	m := newManager(t, nil, nil, time.Minute)
	clock := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	s := m.Create()
	clock = clock.Add(50 * time.Second)
	require.NoError(t, m.With(s.ID, func(*Screens) error { return nil }))
	clock = clock.Add(50 * time.Second)

	assert.Zero(t, m.Sweep())
}

func TestTransitionsArePublishedAndCounted(t *testing.T) {
	pub := &recordingPublisher{}
	col := metrics.NewCollector(5, time.Second)
	m := newManager(t, pub, col, 0)
	s := m.Create()

	_, err := m.Do(s.ID, func(pm *panel.Machine) (panel.Snapshot, error) { return pm.Search("gar"), nil })
	require.NoError(t, err)
	_, err = m.Do(s.ID, func(pm *panel.Machine) (panel.Snapshot, error) { return pm.SelectDestination("Garapan Tourist District") })
	require.NoError(t, err)
	_, err = m.Do(s.ID, func(pm *panel.Machine) (panel.Snapshot, error) { return pm.SelectRoute("2") })
	require.NoError(t, err)

	// searches are counted but not published
	require.Len(t, pub.panel, 2)
	assert.Equal(t, "destination_chosen", pub.panel[0].To)
	assert.Equal(t, "tracking", pub.panel[1].To)
	assert.Equal(t, "2", pub.panel[1].TrackingBus)
	assert.Equal(t, s.ID, pub.panel[1].SessionID)

	assert.Equal(t, 1.0, testutil.ToFloat64(col.Searches))
	assert.Equal(t, 1.0, testutil.ToFloat64(col.PanelTransitions.WithLabelValues("select_route", "tracking")))
}

func TestSweepExpiresIdleSessions(t *testing.T) {
	m := newManager(t, nil, nil, time.Minute)
	clock := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	old := m.Create()
	clock = clock.Add(50 * time.Second)
	fresh := m.Create()
	clock = clock.Add(20 * time.Second)

	assert.Equal(t, 1, m.Sweep())
	_, err := m.Snapshot(old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Snapshot(fresh.ID)
	assert.NoError(t, err)
}

func TestSweepDisabled(t *testing.T) {
	m := newManager(t, nil, nil, 0)
	m.Create()
	assert.Equal(t, 0, m.Sweep())
	m.StartSweeper(context.Background(), time.Millisecond)
	m.Stop()
	assert.Equal(t, 1, m.Len())
}

func TestConcurrentAccess(t *testing.T) {
	m := newManager(t, nil, nil, 0)
	s := m.Create()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Do(s.ID, func(pm *panel.Machine) (panel.Snapshot, error) { return pm.Search("a"), nil })
			_, _ = m.Snapshot(s.ID)
		}()
	}
	wg.Wait()
	snap, err := m.Snapshot(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", snap.Query)
}
