package session

import (
	"sync"
	"time"

	"strbrowser/domain/core"
	"strbrowser/domain/tandem"
	"strbrowser/internal/dataset"
)

// Input is one user interaction. Nil fields are left unchanged.
type Input struct {
	Disease  *string
	BinWidth *int
}

// View is what every panel reads: the selection and the two filtered tables
type View struct {
	Selection Selection
	Alleles   tandem.AlleleTable
	Motifs    tandem.MotifTable
}

// Session pairs a State with its Provider. Events for one session are serialised by mu.
type Session struct {
	ID core.SessionID

	mu       sync.Mutex
	state    *State
	provider *Provider
	lastSeen time.Time
}

// New creates a standalone session, as used by the terminal browser and the CLI
func New(catalog *dataset.Catalog) *Session {
	return newSession(core.NewSessionID(), catalog, time.Now())
}

func newSession(id core.SessionID, catalog *dataset.Catalog, now time.Time) *Session {
	state := NewState(catalog)
	return &Session{
		ID:       id,
		state:    state,
		provider: NewProvider(catalog, state),
		lastSeen: now,
	}
}

// Update validates the whole input, applies it and returns the recomputed view. An invalid
// input leaves the selection untouched.
func (s *Session) Update(in Input) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Disease != nil {
		if err := ValidateDisease(s.state.catalog, *in.Disease); err != nil {
			return s.viewLocked(), err
		}
	}
	if in.BinWidth != nil {
		if err := ValidateBinWidth(*in.BinWidth); err != nil {
			return s.viewLocked(), err
		}
	}
	if in.Disease != nil {
		_ = s.state.SelectDisease(*in.Disease)
	}
	if in.BinWidth != nil {
		_ = s.state.SetBinWidth(*in.BinWidth)
	}
	return s.viewLocked(), nil
}

// View returns the current view without changing the selection
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Selection returns the current selection
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Selection()
}

// Recomputes reports how many times the filtered tables were rebuilt
func (s *Session) Recomputes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider.Recomputes()
}

func (s *Session) viewLocked() View {
	return View{
		Selection: s.state.Selection(),
		Alleles:   s.provider.FilteredData(),
		Motifs:    s.provider.FilteredMotif(),
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
