package memory

import (
	"context"
	"sync"

	"github.com/baharkarakas/point-service/internal/models"
	repo "github.com/baharkarakas/point-service/internal/repository"
)

type pointHistoriesRepo struct {
	mu     sync.RWMutex
	table  []models.PointHistory
	cursor int64
}

func NewPointHistories() repo.PointHistories {
	return &pointHistoriesRepo{}
}

func (r *pointHistoriesRepo) Insert(_ context.Context, userID, amount int64, typ models.TransactionType, updateMillis int64) (models.PointHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := models.NewPointHistory(r.cursor+1, userID, amount, typ, updateMillis)
	if err != nil {
		return models.PointHistory{}, err
	}
	r.cursor++
	r.table = append(r.table, h)
	return h, nil
}

func (r *pointHistoriesRepo) SelectAllByUserID(_ context.Context, userID int64) ([]models.PointHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.PointHistory, 0)
	for _, h := range r.table {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}
