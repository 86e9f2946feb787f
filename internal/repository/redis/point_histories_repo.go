package redis

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/baharkarakas/point-service/internal/models"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

const historySeqKey = "point_history:seq"

type pointHistoriesRepo struct{ rdb *goredis.Client }

func historyKey(userID int64) string {
	return "point_history:" + strconv.FormatInt(userID, 10)
}

func (r *pointHistoriesRepo) Insert(ctx context.Context, userID, amount int64, typ models.TransactionType, updateMillis int64) (models.PointHistory, error) {
	if _, err := models.NewPointHistory(0, userID, amount, typ, updateMillis); err != nil {
		return models.PointHistory{}, err
	}
	id, err := r.rdb.Incr(ctx, historySeqKey).Result()
	if err != nil {
		return models.PointHistory{}, errors.Wrap(err, "next point history id")
	}
	h, err := models.NewPointHistory(id, userID, amount, typ, updateMillis)
	if err != nil {
		return models.PointHistory{}, err
	}
	data, err := json.Marshal(h)
	if err != nil {
		return models.PointHistory{}, errors.Wrap(err, "encode point history")
	}
	if err := r.rdb.RPush(ctx, historyKey(userID), data).Err(); err != nil {
		return models.PointHistory{}, errors.Wrapf(err, "rpush point history for user %d", userID)
	}
	return h, nil
}

func (r *pointHistoriesRepo) SelectAllByUserID(ctx context.Context, userID int64) ([]models.PointHistory, error) {
	raw, err := r.rdb.LRange(ctx, historyKey(userID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "lrange point histories for user %d", userID)
	}
	out := make([]models.PointHistory, 0, len(raw))
	for _, item := range raw {
		var h models.PointHistory
		if err := json.Unmarshal([]byte(item), &h); err != nil {
			return nil, errors.Errorf("decode point history for user %d: %v", userID, err)
		}
		out = append(out, h)
	}
	return out, nil
}
