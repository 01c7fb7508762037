package session

import (
	"sync"
	"time"

	"strbrowser/domain/core"
	"strbrowser/internal"
	"strbrowser/internal/dataset"
)

// Manager keeps one Session per browser and evicts idle ones
type Manager struct {
	catalog *dataset.Catalog
	logger  *internal.Logger
	ttl     time.Duration
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[core.SessionID]*Session

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewManager creates a manager and starts its janitor, which sweeps every ttl/2
func NewManager(catalog *dataset.Catalog, ttl time.Duration, logger *internal.Logger) *Manager {
	return newManager(catalog, ttl, logger, time.Now)
}

func newManager(catalog *dataset.Catalog, ttl time.Duration, logger *internal.Logger, now func() time.Time) *Manager {
	m := &Manager{
		catalog:  catalog,
		logger:   logger,
		ttl:      ttl,
		now:      now,
		sessions: make(map[core.SessionID]*Session),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go m.janitor(ttl / 2)
	return m
}

// Catalog returns the catalog sessions read from
func (m *Manager) Catalog() *dataset.Catalog {
	return m.catalog
}

// Get returns the live session for id and marks it as seen
func (m *Manager) Get(id core.SessionID) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch(m.now())
	}
	return s, ok
}

// Create starts a new session on the default selection
func (m *Manager) Create() *Session {
	s := newSession(core.NewSessionID(), m.catalog, m.now())
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.logger.Debug("[Sessions] Created session %s", s.ID)
	return s
}

// Resolve returns the session named by raw, creating a new one when raw is empty, malformed
// or expired. created reports whether a new session was made.
func (m *Manager) Resolve(raw string) (s *Session, created bool) {
	if id, err := core.ParseSessionID(raw); err == nil {
		if s, ok := m.Get(id); ok {
			return s, false
		}
	}
	return m.Create(), true
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many were removed
func (m *Manager) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.idleSince(now) > m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Debug("[Sessions] Evicted %d idle sessions, %d remain", removed, len(m.sessions))
	}
	return removed
}

// Close stops the janitor. It is safe to call more than once.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.stop)
		<-m.done
	})
}

func (m *Manager) janitor(every time.Duration) {
	defer close(m.done)
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-m.stop:
			return
		}
	}
}
