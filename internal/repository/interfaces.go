package repository

import (
	"context"

	"github.com/baharkarakas/point-service/internal/models"
)

// UserPoints is the balance table. SelectByID never reports "not found": unknown users
// get a synthesized empty balance.
type UserPoints interface {
	SelectByID(ctx context.Context, userID int64) (models.UserPoint, error)
	InsertOrUpdate(ctx context.Context, userID, point int64) (models.UserPoint, error)
}

// PointHistories is the append-only transaction log. Ids are assigned by the log and
// grow monotonically; SelectAllByUserID returns entries in append order.
type PointHistories interface {
	Insert(ctx context.Context, userID, amount int64, typ models.TransactionType, updateMillis int64) (models.PointHistory, error)
	SelectAllByUserID(ctx context.Context, userID int64) ([]models.PointHistory, error)
}
