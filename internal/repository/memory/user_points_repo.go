package memory

import (
	"context"
	"sync"

	"github.com/baharkarakas/point-service/internal/models"
	repo "github.com/baharkarakas/point-service/internal/repository"
)

type userPointsRepo struct {
	mu    sync.RWMutex
	table map[int64]models.UserPoint
}

func NewUserPoints() repo.UserPoints {
	return &userPointsRepo{table: make(map[int64]models.UserPoint)}
}

func (r *userPointsRepo) SelectByID(_ context.Context, userID int64) (models.UserPoint, error) {
	r.mu.RLock()
	p, ok := r.table[userID]
	r.mu.RUnlock()
	if !ok {
		return models.EmptyUserPoint(userID), nil
	}
	return p, nil
}

func (r *userPointsRepo) InsertOrUpdate(_ context.Context, userID, point int64) (models.UserPoint, error) {
	p := models.UserPoint{ID: userID, Point: point, UpdateMillis: models.NowMillis()}
	r.mu.Lock()
	r.table[userID] = p
	r.mu.Unlock()
	return p, nil
}
