package alerts

import (
	"fmt"
	"sync"
)

// ChangeListener is called after the active set changes. It receives a
// snapshot of the new set. Listeners run outside the store lock.
type ChangeListener func(active []Alert)

// Store is the in-memory set of active alerts. A refresh replaces the whole
// set; a user dismiss removes one record. Nothing is persisted.
// All methods are safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	alerts    []Alert
	listeners []ChangeListener
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// OnChange registers a listener invoked after every Replace or Dismiss.
func (s *Store) OnChange(fn ChangeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Replace swaps the active set for records. Records must have valid
// severities and unique IDs; on error the previous set is kept.
// Timestamps are normalized to UTC.
func (s *Store) Replace(records []Alert) error {
	seen := make(map[string]bool, len(records))
	next := make([]Alert, 0, len(records))
	for _, r := range records {
		if !r.Severity.IsValid() {
			return fmt.Errorf("alert %q has severity %q: %w", r.ID, string(r.Severity), ErrInvalidSeverity)
		}
		if seen[r.ID] {
			return fmt.Errorf("alert %q: %w", r.ID, ErrDuplicateID)
		}
		seen[r.ID] = true
		r.Timestamp = r.Timestamp.UTC()
		next = append(next, r)
	}

	s.mu.Lock()
	s.alerts = next
	snapshot, listeners := s.snapshotLocked()
	s.mu.Unlock()

	notify(listeners, snapshot)
	return nil
}

// Dismiss removes the alert with the given ID. It returns false if no such
// alert is active.
func (s *Store) Dismiss(id string) bool {
	s.mu.Lock()
	idx := -1
	for i, a := range s.alerts {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	next := make([]Alert, 0, len(s.alerts)-1)
	next = append(next, s.alerts[:idx]...)
	next = append(next, s.alerts[idx+1:]...)
	s.alerts = next
	snapshot, listeners := s.snapshotLocked()
	s.mu.Unlock()

	notify(listeners, snapshot)
	return true
}

// Active returns a copy of the active alerts in insertion order.
func (s *Store) Active() []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Len returns the number of active alerts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.alerts)
}

// snapshotLocked copies the current set and listener list.
// Caller must hold s.mu.
func (s *Store) snapshotLocked() ([]Alert, []ChangeListener) {
	snapshot := make([]Alert, len(s.alerts))
	copy(snapshot, s.alerts)
	listeners := make([]ChangeListener, len(s.listeners))
	copy(listeners, s.listeners)
	return snapshot, listeners
}

func notify(listeners []ChangeListener, snapshot []Alert) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}
