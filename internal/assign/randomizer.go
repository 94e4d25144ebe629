package assign

import (
	"math/rand"
	"sync"
	"time"
)

// Randomizer is a Shuffler backed by math/rand. It is safe for concurrent use.
type Randomizer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomizer returns a Randomizer for the given seed. A zero seed uses the clock.
func NewRandomizer(seed int64) *Randomizer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Randomizer{rnd: rand.New(rand.NewSource(seed))} // #nosec G404
}

// Shuffle performs a Fisher-Yates shuffle over n elements.
func (r *Randomizer) Shuffle(n int, swap func(i, j int)) {
	if n <= 1 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rnd.Shuffle(n, swap)
}
