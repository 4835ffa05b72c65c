package appointment

import (
	"strconv"
	"sync/atomic"

	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/clock"
)

const idPrefix = "APT-"

// IDGenerator issues APT-<n> identifiers where n is the wall-clock time in
// milliseconds. When the clock has not advanced since the previous ID, n is bumped to
// last+1, so IDs from one generator are strictly increasing and never repeat.
type IDGenerator struct {
	clock clock.Clock
	last  atomic.Int64
}

func NewIDGenerator(c clock.Clock) *IDGenerator {
	return &IDGenerator{clock: c}
}

func (g *IDGenerator) Next() string {
	for {
		last := g.last.Load()
		next := g.clock.Now().UnixMilli()
		if next <= last {
			next = last + 1
		}
		if g.last.CompareAndSwap(last, next) {
			return idPrefix + strconv.FormatInt(next, 10)
		}
	}
}
