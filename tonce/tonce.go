// Package tonce issues the per-request "tonce" values sent with
// authenticated OSL requests.
package tonce

import (
	"strconv"
	"sync"
	"time"
)

// Generator produces tonces from a clock in microsecond units. Tonces
// issued within the same millisecond are separated by a collision counter.
// A Generator is safe for concurrent use.
type Generator struct {
	mu    sync.Mutex
	clock func() time.Time

	lastBase   int64
	lastIssued int64
	counter    int64
}

// New returns a Generator reading time from clock. A nil clock uses
// time.Now.
func New(clock func() time.Time) *Generator {
	if clock == nil {
		clock = time.Now
	}
	return &Generator{clock: clock}
}

// Next returns the next tonce.
func (g *Generator) Next() Value {
	g.mu.Lock()
	defer g.mu.Unlock()

	base := g.clock().UnixMilli() * 1000

	if base == g.lastBase {
		g.counter++
	} else {
		g.counter = 0
		g.lastBase = base
	}

	v := base + g.counter

	// Over 1000 tonces inside one millisecond, or a clock stepping
	// backwards, would otherwise repeat an issued value.
	if v <= g.lastIssued {
		v = g.lastIssued + 1
	}
	g.lastIssued = v

	return Value(v)
}

// Last returns the most recently issued tonce, or zero.
func (g *Generator) Last() Value {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Value(g.lastIssued)
}

// Value is a single issued tonce.
type Value int64

func (v Value) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v Value) Int64() int64 {
	return int64(v)
}
