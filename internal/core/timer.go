package core

import "time"

// maxBurst caps how many steps a single Due call may release after a stall.
const maxBurst = 256

// Pacer converts elapsed wall-clock time into whole steps at a fixed rate.
type Pacer struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewPacer constructs a Pacer releasing rate steps per second.
func NewPacer(rate int) *Pacer {
	p := &Pacer{now: time.Now}
	p.SetRate(rate)
	return p
}

// SetRate changes the step rate. Non-positive rates fall back to 60.
func (p *Pacer) SetRate(rate int) {
	if rate <= 0 {
		rate = 60
	}
	p.step = time.Second / time.Duration(rate)
}

// Due reports how many steps have become due since the previous call.
func (p *Pacer) Due() int {
	now := p.now()
	if p.last.IsZero() {
		p.last = now
		return 1
	}
	p.accumulator += now.Sub(p.last)
	p.last = now
	n := int(p.accumulator / p.step)
	p.accumulator -= time.Duration(n) * p.step
	if n > maxBurst {
		n = maxBurst
		p.accumulator = 0
	}
	return n
}
