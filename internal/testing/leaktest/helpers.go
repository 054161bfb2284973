// Package leaktest checks that background goroutines started by a test have
// exited by the time it finishes.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// settleTimeout bounds how long Check waits for goroutines to exit.
const settleTimeout = time.Second

// GoroutineChecker compares the goroutine count against a baseline taken at
// construction.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check polls until at most tolerance goroutines above the baseline remain,
// failing the test once settleTimeout passes.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()
	if !settle(g.before+tolerance, settleTimeout) {
		after := runtime.NumGoroutine()
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, after-g.before, tolerance)
	}
}

// Verify runs fn and checks nothing it started outlives it.
func Verify(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

func settle(target int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		if runtime.NumGoroutine() <= target {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(10 * time.Millisecond)
	}
}
