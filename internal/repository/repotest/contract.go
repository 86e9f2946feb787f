// Package repotest holds the behaviour every UserPoints/PointHistories pair must share.
package repotest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/point-service/internal/models"
	repo "github.com/baharkarakas/point-service/internal/repository"
)

// Factory returns an empty pair of stores for one subtest.
type Factory func(t *testing.T) (repo.UserPoints, repo.PointHistories)

type contractCase struct {
	name string
	run  func(t *testing.T, points repo.UserPoints, histories repo.PointHistories)
}

// RunContract runs the shared store behaviour against the stores built by newStores.
func RunContract(t *testing.T, newStores Factory) {
	for _, tc := range contractCases {
		t.Run(tc.name, func(t *testing.T) {
			points, histories := newStores(t)
			tc.run(t, points, histories)
		})
	}
}

var contractCases = []contractCase{
	{name: "unknown user reads as empty balance", run: unknownUserIsEmpty},
	{name: "upsert returns the stored row", run: upsertReturnsStoredRow},
	{name: "balances are kept per user", run: balancesArePerUser},
	{name: "history keeps append order with increasing ids", run: historyAppendOrder},
	{name: "empty history is a non-nil slice", run: emptyHistoryIsNonNil},
	{name: "invalid history entries are refused", run: invalidHistoryRefused},
}

func unknownUserIsEmpty(t *testing.T, points repo.UserPoints, _ repo.PointHistories) {
	p, err := points.SelectByID(context.Background(), 4242)
	require.NoError(t, err)
	assert.Equal(t, int64(4242), p.ID)
	assert.Zero(t, p.Point)
}

func upsertReturnsStoredRow(t *testing.T, points repo.UserPoints, _ repo.PointHistories) {
	ctx := context.Background()

	first, err := points.InsertOrUpdate(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(100), first.Point)

	got, err := points.SelectByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second, err := points.InsertOrUpdate(ctx, 1, 250)
	require.NoError(t, err)
	assert.Equal(t, int64(250), second.Point)
	assert.GreaterOrEqual(t, second.UpdateMillis, first.UpdateMillis)

	got, err = points.SelectByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func balancesArePerUser(t *testing.T, points repo.UserPoints, _ repo.PointHistories) {
	ctx := context.Background()
	_, err := points.InsertOrUpdate(ctx, 1, 10)
	require.NoError(t, err)
	_, err = points.InsertOrUpdate(ctx, 2, 20)
	require.NoError(t, err)

	p1, err := points.SelectByID(ctx, 1)
	require.NoError(t, err)
	p2, err := points.SelectByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(10), p1.Point)
	assert.Equal(t, int64(20), p2.Point)
}

func historyAppendOrder(t *testing.T, _ repo.UserPoints, histories repo.PointHistories) {
	ctx := context.Background()

	a, err := histories.Insert(ctx, 1, 100, models.TxnCharge, 10)
	require.NoError(t, err)
	b, err := histories.Insert(ctx, 2, 5, models.TxnCharge, 11)
	require.NoError(t, err)
	c, err := histories.Insert(ctx, 1, 40, models.TxnUse, 12)
	require.NoError(t, err)
	assert.Less(t, a.ID, b.ID)
	assert.Less(t, b.ID, c.ID)

	got, err := histories.SelectAllByUserID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []models.PointHistory{
		{ID: a.ID, UserID: 1, Amount: 100, Type: models.TxnCharge, UpdateMillis: 10},
		{ID: c.ID, UserID: 1, Amount: 40, Type: models.TxnUse, UpdateMillis: 12},
	}, got)

	other, err := histories.SelectAllByUserID(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []models.PointHistory{b}, other)
}

func emptyHistoryIsNonNil(t *testing.T, _ repo.UserPoints, histories repo.PointHistories) {
	got, err := histories.SelectAllByUserID(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func invalidHistoryRefused(t *testing.T, _ repo.UserPoints, histories repo.PointHistories) {
	ctx := context.Background()

	_, err := histories.Insert(ctx, 1, 0, models.TxnCharge, 1)
	require.ErrorIs(t, err, models.ErrInvalidAmount)
	_, err = histories.Insert(ctx, 1, -3, models.TxnUse, 1)
	require.ErrorIs(t, err, models.ErrInvalidAmount)
	_, err = histories.Insert(ctx, 1, 5, "", 1)
	require.ErrorIs(t, err, models.ErrBadArgument)

	got, err := histories.SelectAllByUserID(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, got)
}
