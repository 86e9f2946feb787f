package redis

import (
	"context"
	"strconv"

	"github.com/baharkarakas/point-service/internal/models"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

type userPointsRepo struct{ rdb *goredis.Client }

func userPointKey(userID int64) string {
	return "user_point:" + strconv.FormatInt(userID, 10)
}

func (r *userPointsRepo) SelectByID(ctx context.Context, userID int64) (models.UserPoint, error) {
	fields, err := r.rdb.HGetAll(ctx, userPointKey(userID)).Result()
	if err != nil {
		return models.UserPoint{}, errors.Wrapf(err, "hgetall user point %d", userID)
	}
	if len(fields) == 0 {
		return models.EmptyUserPoint(userID), nil
	}

	point, err := strconv.ParseInt(fields["point"], 10, 64)
	if err != nil {
		return models.UserPoint{}, errors.Wrapf(err, "user point %d: point field", userID)
	}
	millis, err := strconv.ParseInt(fields["update_millis"], 10, 64)
	if err != nil {
		return models.UserPoint{}, errors.Wrapf(err, "user point %d: update_millis field", userID)
	}
	return models.UserPoint{ID: userID, Point: point, UpdateMillis: millis}, nil
}

func (r *userPointsRepo) InsertOrUpdate(ctx context.Context, userID, point int64) (models.UserPoint, error) {
	p := models.UserPoint{ID: userID, Point: point, UpdateMillis: models.NowMillis()}
	err := r.rdb.HSet(ctx, userPointKey(userID),
		"point", p.Point,
		"update_millis", p.UpdateMillis,
	).Err()
	if err != nil {
		return models.UserPoint{}, errors.Wrapf(err, "hset user point %d", userID)
	}
	return p, nil
}
