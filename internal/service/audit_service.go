package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/clock"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/metrics"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	Recent(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type AuditService struct {
	repo    AuditRepository
	log     *zap.Logger
	metrics *metrics.Collector
	clock   clock.Clock
	entries chan *domain.AuditLog
	done    chan struct{}

	// mu guards closed; senders hold the read lock so Shutdown cannot close entries
	// underneath them.
	mu     sync.RWMutex
	closed bool
}

const (
	auditBufferSize      = 10_000
	auditShutdownTimeout = 10 * time.Second
)

func NewAuditService(repo AuditRepository, m *metrics.Collector, c clock.Clock, log *zap.Logger) *AuditService {
	return newAuditService(repo, m, c, log, auditBufferSize)
}

func newAuditService(repo AuditRepository, m *metrics.Collector, c clock.Clock, log *zap.Logger, buffer int) *AuditService {
	svc := &AuditService{
		repo:    repo,
		log:     log,
		metrics: m,
		clock:   c,
		entries: make(chan *domain.AuditLog, buffer),
		done:    make(chan struct{}),
	}
	go svc.worker()
	return svc
}

// LogAsync enqueues an audit entry for async persistence.
// If the buffer is full, the entry is dropped and a warning is emitted.
func (s *AuditService) LogAsync(ctx context.Context, entry AuditEntry) {
	meta := RequestMetaFrom(ctx)
	if entry.IPAddress == "" {
		entry.IPAddress = meta.IPAddress
	}
	if entry.RequestID == "" {
		entry.RequestID = meta.RequestID
	}

	al := &domain.AuditLog{
		ID:           uuid.New(),
		OccurredAt:   s.clock.Now(),
		Action:       domain.AuditAction(entry.Action),
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		IPAddress:    entry.IPAddress,
		RequestID:    entry.RequestID,
		Changes:      entry.Changes,
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.metrics.AuditBufferDropped.Inc()
		s.log.Warn("audit service stopped, dropping entry",
			zap.String("action", entry.Action),
			zap.String("resource", entry.ResourceType),
		)
		return
	}

	select {
	case s.entries <- al:
	default:
		s.metrics.AuditBufferDropped.Inc()
		s.log.Warn("audit log buffer full, dropping entry",
			zap.String("action", entry.Action),
			zap.String("resource", entry.ResourceType),
		)
	}
}

// Recent returns up to limit persisted entries, newest first.
func (s *AuditService) Recent(ctx context.Context, limit int) (entries []domain.AuditLog, err error) {
	ctx, span := startSpan(ctx, "AuditService.Recent")
	defer func() { endSpan(span, err) }()

	return s.repo.Recent(ctx, limit)
}

// Shutdown stops accepting entries and waits for the worker to drain the buffer.
// Entries logged afterwards are dropped.
func (s *AuditService) Shutdown() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.entries)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
	case <-time.After(auditShutdownTimeout):
		s.log.Warn("audit service shutdown timed out; some entries may be lost")
	}
}

func (s *AuditService) worker() {
	defer close(s.done)
	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.repo.Create(ctx, entry); err != nil {
			s.log.Error("failed to persist audit log", zap.Error(err))
		} else {
			s.metrics.AuditEntriesTotal.Inc()
		}
		cancel()
	}
}
