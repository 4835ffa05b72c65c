package memory

import (
	"context"
	"sync"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain"
)

const DefaultAuditCapacity = 50_000

// AuditStore keeps the most recent audit entries in a ring of fixed capacity. Once
// full, each new entry overwrites the oldest.
type AuditStore struct {
	mu       sync.RWMutex
	capacity int
	entries  []domain.AuditLog
	next     int // slot the next entry overwrites once the ring is full
}

func NewAuditStore(capacity int) *AuditStore {
	if capacity <= 0 {
		capacity = DefaultAuditCapacity
	}
	return &AuditStore{capacity: capacity}
}

func (s *AuditStore) Create(ctx context.Context, entry *domain.AuditLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) < s.capacity {
		s.entries = append(s.entries, *entry)
		return nil
	}
	s.entries[s.next] = *entry
	s.next = (s.next + 1) % s.capacity
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit returns all.
func (s *AuditStore) Recent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.AuditLog, 0, limit)
	// s.next is the oldest entry when the ring is full and 0 before that.
	for k := 0; k < limit; k++ {
		out = append(out, s.entries[(s.next+n-1-k)%n])
	}
	return out, nil
}

func (s *AuditStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
