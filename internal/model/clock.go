package model

import (
	"sync"
	"time"
)

// Clock is a stoppable countdown. Games reset it at the start of every
// move, so timeLeft is the time the side has left for the current move.
type Clock struct {
	mu          sync.Mutex
	limit       time.Duration
	timeLeft    time.Duration
	lastStarted time.Time
	isRunning   bool
}

func NewClock(limit time.Duration) *Clock {
	return &Clock{
		limit:    limit,
		timeLeft: limit,
	}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = time.Now()
		c.isRunning = true
	}
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.timeLeft -= time.Since(c.lastStarted)
		c.isRunning = false
	}
}

// Reset stops the clock and refills it to the full limit.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timeLeft = c.limit
	c.isRunning = false
}

func (c *Clock) GetTimeLeft() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	left := c.timeLeft
	if c.isRunning {
		left -= time.Since(c.lastStarted)
	}
	if left < 0 {
		return 0
	}
	return left
}

func (c *Clock) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isRunning
}

// tenths is the client representation of the remaining time.
func (c *Clock) tenths() int {
	return int(c.GetTimeLeft().Milliseconds() / 100)
}
