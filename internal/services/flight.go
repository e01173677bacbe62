package services

import (
	"sync"

	"github.com/gaborvas/wordtrainer/internal/models"
)

type flightKey struct {
	userID uint
	kind   models.SuggestionKind
}

// FlightTable tracks which (user, kind) pairs have a generation call
// outstanding, so at most one is ever in flight per key. One coarse lock
// guards the whole map; generation itself is the bottleneck, not the flag
// check. State is in-memory only — a crash mid-generation strands the flag
// until restart, which also resets it.
type FlightTable struct {
	mu       sync.Mutex
	inFlight map[flightKey]bool
}

func NewFlightTable() *FlightTable {
	return &FlightTable{inFlight: make(map[flightKey]bool)}
}

// TryEnter marks the key as in flight. Returns false when a generation for
// the key is already outstanding. Callers must pair a successful TryEnter
// with a deferred Exit on every path.
func (t *FlightTable) TryEnter(userID uint, kind models.SuggestionKind) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := flightKey{userID: userID, kind: kind}
	if t.inFlight[key] {
		return false
	}
	t.inFlight[key] = true
	return true
}

// Exit releases the key. Safe to call for a key that is not in flight.
func (t *FlightTable) Exit(userID uint, kind models.SuggestionKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inFlight, flightKey{userID: userID, kind: kind})
}

// InFlight reports whether a generation for the key is outstanding.
func (t *FlightTable) InFlight(userID uint, kind models.SuggestionKind) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight[flightKey{userID: userID, kind: kind}]
}
