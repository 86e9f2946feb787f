package lock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetLockReturnsSameLock(t *testing.T) {
	m := NewUserLockManager()
	require.Same(t, m.GetLock(1), m.GetLock(1))
	require.NotSame(t, m.GetLock(1), m.GetLock(2))
	require.Equal(t, int64(2), m.Len())
}

func TestGetLockConcurrentFirstAccess(t *testing.T) {
	m := NewUserLockManager()
	const workers = 64

	start := make(chan struct{})
	got := make([]*UserLock, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			got[i] = m.GetLock(99)
		}(i)
	}
	close(start)
	wg.Wait()

	for _, l := range got {
		require.Same(t, got[0], l)
	}
	require.Equal(t, int64(1), m.Len())
}

func TestOnCreateCallback(t *testing.T) {
	m := NewUserLockManager()
	var totals []int64
	m.OnCreate(func(total int64) { totals = append(totals, total) })

	m.GetLock(1)
	m.GetLock(1)
	m.GetLock(2)
	require.Equal(t, []int64{1, 2}, totals)
}

func TestUnlockWhenNotHeldIsNoop(t *testing.T) {
	l := NewUserLockManager().GetLock(1)
	require.NotPanics(t, func() { l.Unlock(0) })

	tok := l.Lock()
	l.Unlock(tok)
	l.Unlock(tok)

	again, ok := l.TryLock()
	require.True(t, ok, "a repeated unlock must not leave the lock in a bad state")
	_, ok = l.TryLock()
	require.False(t, ok)
	l.Unlock(again)
}

func TestUnlockFromNonOwnerKeepsLockHeld(t *testing.T) {
	l := NewUserLockManager().GetLock(1)

	held := make(chan Token)
	go func() { held <- l.Lock() }()
	owner := <-held

	stray := make(chan struct{})
	go func() {
		l.Unlock(0)
		close(stray)
	}()
	<-stray

	_, ok := l.TryLock()
	require.False(t, ok, "an unlock by a goroutine that never locked released the owner's lock")

	l.Unlock(owner)
	tok, ok := l.TryLock()
	require.True(t, ok)
	l.Unlock(tok)
}

func TestStaleTokenCannotReleaseLaterOwner(t *testing.T) {
	l := NewUserLockManager().GetLock(1)

	first := l.Lock()
	l.Unlock(first)

	second := l.Lock()
	require.NotEqual(t, first, second)
	l.Unlock(first)

	_, ok := l.TryLock()
	require.False(t, ok, "a token from an earlier acquisition released the current owner")
	l.Unlock(second)
}

func TestLockIsExclusive(t *testing.T) {
	l := NewUserLockManager().GetLock(1)
	tok := l.Lock()

	acquired := make(chan struct{})
	go func() {
		waiter := l.Lock()
		close(acquired)
		l.Unlock(waiter)
	}()

	select {
	case <-acquired:
		t.Fatal("second caller acquired a held lock")
	case <-time.After(50 * time.Millisecond):
	}

	l.Unlock(tok)
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter was not released")
	}
}

func TestDistinctUsersDoNotBlock(t *testing.T) {
	m := NewUserLockManager()
	held := m.GetLock(1)
	tok := held.Lock()
	defer held.Unlock(tok)

	done := make(chan struct{})
	go func() {
		l := m.GetLock(2)
		l.Unlock(l.Lock())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on user 1 blocked user 2")
	}
}

func TestLockSerializesCounter(t *testing.T) {
	l := NewUserLockManager().GetLock(5)
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer l.Unlock(l.Lock())
			counter++
		}()
	}
	wg.Wait()
	require.Equal(t, 100, counter)
}
