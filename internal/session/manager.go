package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"transit-cnmi/internal/catalog"
	"transit-cnmi/internal/driver"
	mmetrics "transit-cnmi/internal/metrics"
	"transit-cnmi/internal/panel"
	"transit-cnmi/internal/publisher"
	"transit-cnmi/internal/settings"
	"transit-cnmi/internal/taxi"
)

var ErrNotFound = errors.New("session not found")

// Session is one client's screen state: the map panel plus the other
// screens that keep state between requests.
type Session struct {
	ID      string
	Created time.Time

	mu       sync.Mutex
	machine  *panel.Machine
	screens  Screens
	lastUsed time.Time
}

// Screens are the stateful screens besides the map panel.
type Screens struct {
	Taxi     *taxi.Panel
	Driver   *driver.Picker
	Settings *settings.Screen
}

type Manager struct {
	cat         *catalog.Catalog
	searchLimit int
	pub         publisher.Publisher
	metrics     *mmetrics.Collector
	idleTTL     time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session

	sweepCancel context.CancelFunc
	sweepWG     sync.WaitGroup
}

// NewManager returns an empty manager. pub and metrics may be nil. An
// idleTTL of zero keeps sessions until they are deleted.
func NewManager(cat *catalog.Catalog, searchLimit int, pub publisher.Publisher, metrics *mmetrics.Collector, idleTTL time.Duration) *Manager {
	if pub == nil {
		pub = publisher.Nop{}
	}
	return &Manager{
		cat:         cat,
		searchLimit: searchLimit,
		pub:         pub,
		metrics:     metrics,
		idleTTL:     idleTTL,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
}

func (m *Manager) Create() *Session {
	now := m.now()
	s := &Session{
		ID:       uuid.NewString(),
		Created:  now,
		machine:  panel.New(m.cat, m.searchLimit),
		lastUsed: now,
	}
	s.screens = Screens{
		Taxi:     taxi.NewPanel(m.cat),
		Driver:   driver.NewPicker(m.cat),
		Settings: settings.New(m.cat),
	}
	s.machine.OnTransition(m.observer(s.ID))

	m.mu.Lock()
	m.sessions[s.ID] = s
	if m.metrics != nil {
		m.metrics.SessionsCreated.Inc()
		m.metrics.ActiveSessions.Set(float64(len(m.sessions)))
	}
	m.mu.Unlock()
	log.Printf("session %s created", s.ID)
	return s
}

func (m *Manager) observer(id string) panel.Listener {
	return func(tr panel.Transition) {
		if m.metrics != nil {
			m.metrics.PanelTransitions.WithLabelValues(string(tr.Event), tr.To.String()).Inc()
			if tr.Event == panel.EventSearch {
				m.metrics.Searches.Inc()
				m.metrics.SearchResults.Observe(float64(len(tr.Snapshot.Results)))
			}
		}
		if tr.Event == panel.EventSearch {
			return
		}
		err := m.pub.PublishPanel(publisher.PanelMessage{
			SessionID:   id,
			Event:       string(tr.Event),
			From:        tr.From.String(),
			To:          tr.To.String(),
			Destination: tr.Snapshot.SelectedDestination,
			TrackingBus: tr.Snapshot.TrackingBus,
			Timestamp:   m.now().UTC(),
		})
		if err != nil {
			log.Printf("publish panel event for %s: %v", id, err)
		}
	}
}

// lock finds the session and returns it locked with its idle clock reset.
func (m *Manager) lock(id string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	s.lastUsed = m.now()
	return s, nil
}

// Do runs fn against the session's machine while holding its lock.
func (m *Manager) Do(id string, fn func(*panel.Machine) (panel.Snapshot, error)) (panel.Snapshot, error) {
	s, err := m.lock(id)
	if err != nil {
		return panel.Snapshot{}, err
	}
	defer s.mu.Unlock()
	return fn(s.machine)
}

// With runs fn against the session's other screens while holding its lock.
func (m *Manager) With(id string, fn func(*Screens) error) error {
	s, err := m.lock(id)
	if err != nil {
		return err
	}
	defer s.mu.Unlock()
	return fn(&s.screens)
}

func (m *Manager) Snapshot(id string) (panel.Snapshot, error) {
	return m.Do(id, func(pm *panel.Machine) (panel.Snapshot, error) { return pm.Snapshot(), nil })
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	m.removeLocked(id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) removeLocked(id string) {
	delete(m.sessions, id)
	if m.metrics != nil {
		m.metrics.SessionsClosed.Inc()
		m.metrics.ActiveSessions.Set(float64(len(m.sessions)))
	}
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Sweep() int {
	if m.idleTTL <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.idleTTL)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastUsed.Before(cutoff)
		s.mu.Unlock()
		if idle {
			m.removeLocked(id)
			n++
		}
	}
	return n
}

// StartSweeper launches a background loop that expires idle sessions.
func (m *Manager) StartSweeper(parent context.Context, every time.Duration) {
	if m.idleTTL <= 0 || every <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(parent)
	m.sweepCancel = cancel
	m.sweepWG.Add(1)
	go func() {
		defer m.sweepWG.Done()
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.Sweep(); n > 0 {
					log.Printf("expired %d idle sessions", n)
				}
			}
		}
	}()
}

func (m *Manager) Stop() {
	if m.sweepCancel != nil {
		m.sweepCancel()
	}
	m.sweepWG.Wait()
}
