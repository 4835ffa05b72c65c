package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/repository/memory"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/clock"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/metrics"
)

// blockingAuditRepo holds the worker inside Create until released.
type blockingAuditRepo struct {
	started chan struct{}
	release chan struct{}
	inner   *memory.AuditStore
}

func (r *blockingAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	select {
	case r.started <- struct{}{}:
	default:
	}
	<-r.release
	return r.inner.Create(ctx, entry)
}

func (r *blockingAuditRepo) Recent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	return r.inner.Recent(ctx, limit)
}

func TestAuditService_DropsWhenBufferFull(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	m := metrics.NewCollector("healthhub", prometheus.NewRegistry())
	repo := &blockingAuditRepo{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		inner:   memory.NewAuditStore(0),
	}
	svc := newAuditService(repo, m, clock.NewManaged(testNow), zap.New(core), 1)

	ctx := context.Background()
	svc.LogAsync(ctx, AuditEntry{Action: "create", ResourceType: "patient", ResourceID: "PAT-001"})
	<-repo.started // worker is now blocked on the first entry

	svc.LogAsync(ctx, AuditEntry{Action: "create", ResourceType: "patient", ResourceID: "PAT-002"})
	svc.LogAsync(ctx, AuditEntry{Action: "create", ResourceType: "patient", ResourceID: "PAT-003"})

	close(repo.release)
	svc.Shutdown()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.AuditBufferDropped))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.AuditEntriesTotal))
	assert.Equal(t, 2, repo.inner.Len())
	require.Equal(t, 1, logs.FilterMessage("audit log buffer full, dropping entry").Len())
}

func TestAuditService_ExplicitFieldsWinOverContext(t *testing.T) {
	store := memory.NewAuditStore(0)
	svc := NewAuditService(store, metrics.NewCollector("healthhub", prometheus.NewRegistry()), clock.NewManaged(testNow), zap.NewNop())

	ctx := WithRequestMeta(context.Background(), RequestMeta{IPAddress: "10.0.0.1", RequestID: "req-ctx"})
	svc.LogAsync(ctx, AuditEntry{Action: "read", ResourceType: "doctor", ResourceID: "DOC-001", IPAddress: "192.168.1.1"})
	svc.Shutdown()

	entries, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "192.168.1.1", entries[0].IPAddress)
	assert.Equal(t, "req-ctx", entries[0].RequestID)
	assert.Equal(t, domain.ActionRead, entries[0].Action)
	assert.NotEqual(t, uuid.Nil, entries[0].ID)
}

func TestAuditService_LogAfterShutdownIsDropped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	m := metrics.NewCollector("healthhub", prometheus.NewRegistry())
	store := memory.NewAuditStore(0)
	svc := NewAuditService(store, m, clock.NewManaged(testNow), zap.New(core))

	svc.Shutdown()
	svc.Shutdown()

	assert.NotPanics(t, func() {
		svc.LogAsync(context.Background(), AuditEntry{Action: "update", ResourceType: "appointment", ResourceID: "APT-1"})
	})
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AuditBufferDropped))
	assert.Equal(t, 1, logs.FilterMessage("audit service stopped, dropping entry").Len())
}

func TestAuditService_ConcurrentLogAndShutdown(t *testing.T) {
	m := metrics.NewCollector("healthhub", prometheus.NewRegistry())
	svc := NewAuditService(memory.NewAuditStore(0), m, clock.NewManaged(testNow), zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				svc.LogAsync(context.Background(), AuditEntry{Action: "read", ResourceType: "patient"})
			}
		}()
	}
	svc.Shutdown()
	wg.Wait()

	written := testutil.ToFloat64(m.AuditEntriesTotal)
	dropped := testutil.ToFloat64(m.AuditBufferDropped)
	assert.Equal(t, float64(1600), written+dropped)
}

func TestRequestMetaFrom_Empty(t *testing.T) {
	assert.Equal(t, RequestMeta{}, RequestMetaFrom(context.Background()))
}
