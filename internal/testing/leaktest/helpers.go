// Package leaktest provides goroutine and heap growth checks for tests
// around long-lived components: the connection pool, the SSE hub and the
// event retry worker.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// Checker snapshots goroutine count and heap usage at creation so a test
// can assert nothing grew after exercising a component.
type Checker struct {
	goroutines int
	heapBytes  uint64
	t          testing.TB
}

// New records the current goroutine count and heap allocation.
func New(t testing.TB) *Checker {
	t.Helper()

	// Let background goroutines from earlier tests settle first
	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)
	runtime.GC()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &Checker{
		goroutines: runtime.NumGoroutine(),
		heapBytes:  m.Alloc,
		t:          t,
	}
}

// AssertNoGoroutineGrowth fails the test when more than tolerance goroutines
// outlived the code under test.
func (c *Checker) AssertNoGoroutineGrowth(tolerance int) {
	c.t.Helper()

	// Give shutdown paths time to unwind
	runtime.Gosched()
	time.Sleep(50 * time.Millisecond)
	runtime.GC()
	time.Sleep(50 * time.Millisecond)

	after := runtime.NumGoroutine()
	leaked := after - c.goroutines

	if leaked > tolerance {
		c.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			c.goroutines, after, leaked, tolerance)
	}
}

// AssertHeapGrowthUnder fails the test when heap allocation grew by more
// than maxGrowthMB after a GC cycle.
func (c *Checker) AssertHeapGrowthUnder(maxGrowthMB float64) {
	c.t.Helper()

	runtime.GC()
	time.Sleep(50 * time.Millisecond)

	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	beforeMB := float64(c.heapBytes) / 1024 / 1024
	afterMB := float64(after.Alloc) / 1024 / 1024
	growthMB := afterMB - beforeMB

	if growthMB > maxGrowthMB {
		c.t.Errorf("Potential memory leak: before=%.2fMB, after=%.2fMB, growth=%.2fMB (max=%.2fMB)",
			beforeMB, afterMB, growthMB, maxGrowthMB)
	}
}

// Run executes fn and asserts it left no goroutines behind.
func Run(t *testing.T, fn func()) {
	t.Helper()

	checker := New(t)
	fn()
	checker.AssertNoGoroutineGrowth(0)
}

// WaitForGoroutines polls until the goroutine count drops to target or the
// timeout expires. Components whose Shutdown returns before their workers
// fully exit need this before asserting.
func WaitForGoroutines(t *testing.T, target int, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		runtime.Gosched()
		if runtime.NumGoroutine() <= target {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Errorf("Timeout waiting for goroutines to complete: current=%d, target=%d",
		runtime.NumGoroutine(), target)
}
