package lock

import (
	"sync"
	"sync/atomic"
)

// Token identifies one acquisition of a UserLock. The zero Token is never issued.
type Token uint64

// UserLock serializes balance mutations for a single user.
//
// Each acquisition hands out a fresh Token and only that Token releases it. Unlock with a
// stale, foreign or zero Token is a no-op, so a deferred Unlock is safe on every path and
// cannot free someone else's critical section.
type UserLock struct {
	sem   chan struct{}
	owner atomic.Uint64
	seq   atomic.Uint64
}

func newUserLock() *UserLock {
	return &UserLock{sem: make(chan struct{}, 1)}
}

// Lock blocks until the caller owns the lock.
func (l *UserLock) Lock() Token {
	l.sem <- struct{}{}
	return l.own()
}

// TryLock acquires the lock only if it is free.
func (l *UserLock) TryLock() (Token, bool) {
	select {
	case l.sem <- struct{}{}:
		return l.own(), true
	default:
		return 0, false
	}
}

// Unlock releases the lock if t is the current owner's token.
func (l *UserLock) Unlock(t Token) {
	if t == 0 || !l.owner.CompareAndSwap(uint64(t), 0) {
		return
	}
	<-l.sem
}

func (l *UserLock) own() Token {
	t := Token(l.seq.Add(1))
	l.owner.Store(uint64(t))
	return t
}

// UserLockManager hands out one UserLock per user id. Locks are created on first use and
// kept for the life of the process.
type UserLockManager struct {
	locks sync.Map // int64 -> *UserLock
	count atomic.Int64
	onNew func(total int64)
}

func NewUserLockManager() *UserLockManager { return &UserLockManager{} }

// OnCreate registers a callback invoked with the new total each time a lock is created.
// It must be set before the manager is shared.
func (m *UserLockManager) OnCreate(fn func(total int64)) { m.onNew = fn }

// GetLock returns the lock for userID. Concurrent first calls for the same id agree on
// a single lock.
func (m *UserLockManager) GetLock(userID int64) *UserLock {
	if l, ok := m.locks.Load(userID); ok {
		return l.(*UserLock)
	}
	l, loaded := m.locks.LoadOrStore(userID, newUserLock())
	if !loaded {
		total := m.count.Add(1)
		if m.onNew != nil {
			m.onNew(total)
		}
	}
	return l.(*UserLock)
}

// Len reports how many distinct user locks exist.
func (m *UserLockManager) Len() int64 { return m.count.Load() }
