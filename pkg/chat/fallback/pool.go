package fallback

import (
	"math/rand"
	"sync"
)

// Pool selects one of N equivalent human-toned notices shown to a guest when
// automated reply generation fails. The set is content, not control flow, so
// it is injected rather than hardcoded here.
type Pool struct {
	mu       sync.Mutex
	messages []string
	rng      *rand.Rand
}

func NewPool(messages []string, seed int64) *Pool {
	return &Pool{
		messages: messages,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Pick returns a uniformly random message from the pool. An empty pool yields
// a single hardcoded notice so the guest never sees nothing at all.
func (p *Pool) Pick() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.messages) == 0 {
		return "Thanks for your message! A member of our team will reply here soon."
	}
	return p.messages[p.rng.Intn(len(p.messages))]
}

// Messages returns the configured pool, mainly for tests and admin display.
func (p *Pool) Messages() []string {
	out := make([]string, len(p.messages))
	copy(out, p.messages)
	return out
}
