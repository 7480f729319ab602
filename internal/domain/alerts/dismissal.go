package alerts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AlertID derives the deterministic identifier for one occurrence from
// (patient, source label, due instant). The same occurrence always hashes
// to the same id, so a dismissal survives recomputation; the next day's
// dose at the same time-of-day has a different due instant and a fresh id.
//
// The id is not stable across medication renames or schedule edits: editing
// either field silently orphans any prior dismissal of that occurrence.
func AlertID(patientID uuid.UUID, source string, due time.Time) string {
	h := sha256.Sum256([]byte(patientID.String() + "|" + source + "|" + FormatClock(due)))
	return hex.EncodeToString(h[:])
}

// DismissalStore holds acknowledged alert identifiers. Dismiss is
// idempotent; acknowledging an already-dismissed id is a no-op.
type DismissalStore interface {
	Dismiss(ctx context.Context, patientID uuid.UUID, alertID string) error
	DismissedSet(ctx context.Context, patientID uuid.UUID) (map[string]bool, error)
}

// MemoryStore is a process-lifetime dismissal set. State is lost on
// restart; dismissed alerts resurface after a redeploy.
type MemoryStore struct {
	mu        sync.RWMutex
	dismissed map[uuid.UUID]map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{dismissed: make(map[uuid.UUID]map[string]bool)}
}

func (s *MemoryStore) Dismiss(_ context.Context, patientID uuid.UUID, alertID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.dismissed[patientID]
	if !ok {
		set = make(map[string]bool)
		s.dismissed[patientID] = set
	}
	set[alertID] = true
	return nil
}

func (s *MemoryStore) DismissedSet(_ context.Context, patientID uuid.UUID) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.dismissed[patientID]))
	for id := range s.dismissed[patientID] {
		out[id] = true
	}
	return out, nil
}
