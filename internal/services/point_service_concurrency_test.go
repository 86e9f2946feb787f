package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/baharkarakas/point-service/internal/lock"
	"github.com/baharkarakas/point-service/internal/models"
	repo "github.com/baharkarakas/point-service/internal/repository"
	"github.com/baharkarakas/point-service/internal/repository/memory"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const userID int64 = 1

func newService(t *testing.T) *PointService {
	t.Helper()
	repos := memory.NewRepositories()
	return NewPointService(repos.UserPoints, repos.PointHistories, lock.NewUserLockManager(), nil, quietLogger())
}

func countTypes(hs []models.PointHistory) (charges, uses int) {
	for _, h := range hs {
		switch h.Type {
		case models.TxnCharge:
			charges++
		case models.TxnUse:
			uses++
		}
	}
	return charges, uses
}

func TestConcurrentCharges(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	var g errgroup.Group
	for i := 0; i < 5; i++ {
		g.Go(func() error {
			_, err := svc.Charge(ctx, userID, 100)
			return err
		})
	}
	require.NoError(t, g.Wait())

	p, err := svc.GetUserPoint(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(500), p.Point)

	hs, err := svc.GetPointHistories(ctx, userID)
	require.NoError(t, err)
	require.Len(t, hs, 5)
	for _, h := range hs {
		require.Equal(t, models.TxnCharge, h.Type)
		require.Equal(t, int64(100), h.Amount)
	}
}

func TestConcurrentChargesReleasedTogether(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	const workers = 10
	var ready sync.WaitGroup
	ready.Add(workers)
	start := make(chan struct{})

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			ready.Done()
			<-start
			_, err := svc.Charge(ctx, userID, 100)
			return err
		})
	}
	ready.Wait()
	close(start)
	require.NoError(t, g.Wait())

	p, err := svc.GetUserPoint(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(1000), p.Point)
}

func TestConcurrentUses(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	_, err := svc.Charge(ctx, userID, 1000)
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 5; i++ {
		g.Go(func() error {
			_, err := svc.Use(ctx, userID, 100)
			return err
		})
	}
	require.NoError(t, g.Wait())

	p, err := svc.GetUserPoint(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(500), p.Point)

	hs, err := svc.GetPointHistories(ctx, userID)
	require.NoError(t, err)
	charges, uses := countTypes(hs)
	require.Equal(t, 1, charges)
	require.Equal(t, 5, uses)
}

func TestConcurrentUsesBeyondBalance(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	_, err := svc.Charge(ctx, userID, 300)
	require.NoError(t, err)

	errs := make(chan error, 5)
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Use(ctx, userID, 100)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case models.KindOf(err) == models.KindInsufficientBalance:
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 3, ok)
	require.Equal(t, 2, insufficient)

	p, err := svc.GetUserPoint(ctx, userID)
	require.NoError(t, err)
	require.Zero(t, p.Point)

	hs, err := svc.GetPointHistories(ctx, userID)
	require.NoError(t, err)
	require.Len(t, hs, 4)
}

func TestConcurrentMixedOperations(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	_, err := svc.Charge(ctx, userID, 500)
	require.NoError(t, err)

	ops := []func() error{
		func() error { _, err := svc.Charge(ctx, userID, 100); return err },
		func() error { _, err := svc.Use(ctx, userID, 200); return err },
		func() error { _, err := svc.Charge(ctx, userID, 300); return err },
		func() error { _, err := svc.Use(ctx, userID, 100); return err },
	}
	var g errgroup.Group
	for _, op := range ops {
		g.Go(op)
	}
	require.NoError(t, g.Wait())

	p, err := svc.GetUserPoint(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(600), p.Point)

	hs, err := svc.GetPointHistories(ctx, userID)
	require.NoError(t, err)
	require.Len(t, hs, 5)
	charges, uses := countTypes(hs)
	require.Equal(t, 3, charges)
	require.Equal(t, 2, uses)
}

func TestHistoryOrderMatchesCommitOrder(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			_, err := svc.Charge(ctx, userID, 10)
			return err
		})
	}
	require.NoError(t, g.Wait())

	hs, err := svc.GetPointHistories(ctx, userID)
	require.NoError(t, err)
	require.Len(t, hs, 50)
	for i := 1; i < len(hs); i++ {
		require.Greater(t, hs[i].ID, hs[i-1].ID)
		require.GreaterOrEqual(t, hs[i].UpdateMillis, hs[i-1].UpdateMillis)
	}
}

// blockingPoints parks SelectByID for one user until released, simulating a slow
// critical section.
type blockingPoints struct {
	repo.UserPoints
	blockUser int64
	entered   chan struct{}
	release   chan struct{}
}

func (b *blockingPoints) SelectByID(ctx context.Context, id int64) (models.UserPoint, error) {
	if id == b.blockUser {
		close(b.entered)
		<-b.release
	}
	return b.UserPoints.SelectByID(ctx, id)
}

func TestDistinctUsersProceedInParallel(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	points := &blockingPoints{
		UserPoints: repos.UserPoints,
		blockUser:  1,
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	svc := NewPointService(points, repos.PointHistories, lock.NewUserLockManager(), nil, quietLogger())

	slow := make(chan error, 1)
	go func() {
		_, err := svc.Charge(ctx, 1, 10)
		slow <- err
	}()
	<-points.entered

	done := make(chan error, 1)
	go func() {
		_, err := svc.Charge(ctx, 2, 10)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("user 2 was blocked by user 1's critical section")
	}

	close(points.release)
	require.NoError(t, <-slow)
}
