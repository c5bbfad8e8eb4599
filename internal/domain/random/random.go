// Package random provides the pseudo-random sources used for random picks
// and dice. Sources are injected so tests can seed deterministic output.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"
)

// Source yields uniformly distributed ints in [0, n). n must be positive.
type Source interface {
	Intn(n int) int
}

// New returns a deterministic source for seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) //nolint:gosec // non-cryptographic by contract
}

// NewSeed derives a seed from crypto/rand, falling back to the clock.
func NewSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// FromSeed returns New(seed), or a crypto-seeded source when seed is 0.
func FromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = NewSeed()
	}
	return New(seed)
}

// lockedSource serializes access to a source that is not goroutine safe.
type lockedSource struct {
	mu  sync.Mutex
	src Source
}

// Locked wraps src so it can be shared between goroutines.
func Locked(src Source) Source {
	if ls, ok := src.(*lockedSource); ok {
		return ls
	}
	return &lockedSource{src: src}
}

func (l *lockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}
