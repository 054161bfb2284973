package leaktest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recorder captures Errorf instead of failing the real test.
type recorder struct {
	testing.TB
	errors []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestVerify_NoLeak(t *testing.T) {
	Verify(t, func() {
		done := make(chan struct{})
		go func() { close(done) }()
		<-done
	})
}

func TestGoroutineChecker_WithinTolerance(t *testing.T) {
	rec := &recorder{TB: t}
	checker := NewGoroutineChecker(rec)

	stop := make(chan struct{})
	go func() { <-stop }()
	checker.Check(1)
	close(stop)

	assert.Empty(t, rec.errors)
}

func TestGoroutineChecker_ReportsLeak(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the settle timeout")
	}
	rec := &recorder{TB: t}
	checker := NewGoroutineChecker(rec)

	stop := make(chan struct{})
	go func() { <-stop }()
	checker.Check(0)
	close(stop)

	assert.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "goroutine leak")
}
