package store

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

const DefaultPageInputDebounce = 300 * time.Millisecond

// pageInput debounces free-text page numbers. After a quiet period the latest
// value is parsed and forwarded, unless it repeats the previously forwarded one.
type pageInput struct {
	delay   time.Duration
	forward func(page int)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	last    string
	hasLast bool
	closed  bool
}

func newPageInput(delay time.Duration, forward func(page int)) *pageInput {
	if delay <= 0 {
		delay = DefaultPageInputDebounce
	}
	return &pageInput{delay: delay, forward: forward}
}

func (p *pageInput) Push(raw string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.pending = strings.TrimSpace(raw)
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.delay, p.fire)
}

func (p *pageInput) fire() {
	p.mu.Lock()
	if p.closed || (p.hasLast && p.pending == p.last) {
		p.mu.Unlock()
		return
	}
	raw := p.pending
	p.last, p.hasLast = raw, true
	p.mu.Unlock()

	page, err := strconv.Atoi(raw)
	if err != nil {
		return
	}
	p.forward(page)
}

// Close drops any pending value; later pushes are ignored
func (p *pageInput) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.timer != nil {
		p.timer.Stop()
	}
}
