package concurrency

import (
	"sync"
)

type refLock struct {
	mu   sync.Mutex
	refs int
}

// LockManager hands out named mutexes. A name's entry lives only while some
// caller holds or waits on it, so short-lived keys such as cart item ids do
// not accumulate.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*refLock)}
}

// Lock blocks until the named lock is held and returns its release func.
func (lm *LockManager) Lock(key string) (unlock func()) {
	lm.mu.Lock()
	l, ok := lm.locks[key]
	if !ok {
		l = &refLock{}
		lm.locks[key] = l
	}
	l.refs++
	lm.mu.Unlock()

	l.mu.Lock()
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()
			lm.mu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(lm.locks, key)
			}
			lm.mu.Unlock()
		})
	}
}

// Held returns the number of names currently held or waited on.
func (lm *LockManager) Held() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
