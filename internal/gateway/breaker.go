package gateway

import (
	"sync"
	"time"
)

type breakerState int

const (
	stateClosed breakerState = iota
	stateOpen
	stateHalfOpen
)

// MicroBreaker is a minimal circuit breaker: it opens after a run of
// consecutive failures and lets a single probe through once the cooldown
// elapses.
type MicroBreaker struct {
	mu        sync.Mutex
	st        breakerState
	fails     int
	threshold int
	cooldown  time.Duration
	retryAt   time.Time
	probing   bool
}

func NewMicroBreaker(threshold int, cooldown time.Duration) *MicroBreaker {
	return &MicroBreaker{threshold: threshold, cooldown: cooldown}
}

// Ready reports whether a send would currently be admitted.
func (b *MicroBreaker) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.st {
	case stateOpen:
		return time.Now().After(b.retryAt) && !b.probing
	case stateHalfOpen:
		return !b.probing
	default:
		return true
	}
}

// TryAcquire admits a send. While half-open only one probe is in flight.
func (b *MicroBreaker) TryAcquire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.st {
	case stateClosed:
		return true
	case stateOpen:
		if time.Now().After(b.retryAt) && !b.probing {
			b.st = stateHalfOpen
			b.probing = true
			return true
		}
		return false
	case stateHalfOpen:
		if !b.probing {
			b.probing = true
			return true
		}
		return false
	default:
		return true
	}
}

func (b *MicroBreaker) OnSuccess() {
	b.mu.Lock()
	b.fails = 0
	b.st = stateClosed
	b.probing = false
	b.mu.Unlock()
}

func (b *MicroBreaker) OnFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.st == stateHalfOpen {
		b.st = stateOpen
		b.retryAt = time.Now().Add(b.cooldown)
		b.probing = false
		return
	}

	b.fails++
	if b.fails >= b.threshold {
		b.st = stateOpen
		b.retryAt = time.Now().Add(b.cooldown)
	}
}
