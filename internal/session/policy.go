package session

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Policy decides between the accelerated and fallback renderers. Once
// downgraded it stays downgraded for the life of the process.
type Policy struct {
	mu         sync.Mutex
	tolerance  int
	losses     int
	downgraded bool
	reason     string
}

var shared = NewPolicy(0)

// SharedPolicy returns the process-wide policy used by every Manager that
// is not given its own.
func SharedPolicy() *Policy {
	return shared
}

// NewPolicy creates a policy that tolerates the given number of context
// losses per session before downgrading.
func NewPolicy(tolerance int) *Policy {
	return &Policy{tolerance: max(tolerance, 0)}
}

// SetTolerance changes the loss tolerance.
func (p *Policy) SetTolerance(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tolerance = max(n, 0)
}

// Downgrade permanently selects the fallback renderer. The first reason
// is kept.
func (p *Policy) Downgrade(reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.downgraded {
		return
	}
	p.downgraded = true
	p.reason = reason
	log.Warn("renderer downgraded to fallback", "reason", reason)
}

// Downgraded reports whether new sessions must use the fallback renderer.
func (p *Policy) Downgraded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.downgraded
}

// Reason returns why the policy downgraded, or "".
func (p *Policy) Reason() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reason
}

// ReportLoss records a context loss of a session that has now lost its
// context sessionLosses times. It returns true when this downgraded the
// policy.
func (p *Policy) ReportLoss(sessionLosses int) bool {
	p.mu.Lock()
	p.losses++
	exceeded := sessionLosses > p.tolerance && !p.downgraded
	p.mu.Unlock()

	if exceeded {
		p.Downgrade("context loss tolerance exceeded")
	}
	return exceeded
}

// Losses returns every loss reported so far.
func (p *Policy) Losses() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.losses
}
