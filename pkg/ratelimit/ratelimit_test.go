package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestStore(rps float64, burst int) (*Store, *time.Time) {
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	s := NewStore(rps, burst, time.Minute)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestStore_AllowBurstThenReject(t *testing.T) {
	s, _ := newTestStore(1, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, s.Allow("10.0.0.1"), "request %d within burst", i)
	}
	assert.False(t, s.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, s.Allow("10.0.0.2"), "other clients have their own bucket")
}

func TestStore_Refill(t *testing.T) {
	s, now := newTestStore(1, 1)

	assert.True(t, s.Allow("ip"))
	assert.False(t, s.Allow("ip"))

	*now = now.Add(time.Second)
	assert.True(t, s.Allow("ip"))
}

func TestStore_Sweep(t *testing.T) {
	s, now := newTestStore(10, 10)

	s.Allow("old")
	*now = now.Add(2 * time.Minute)
	s.Allow("fresh")

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
}
