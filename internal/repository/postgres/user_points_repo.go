package postgres

import (
	"context"

	"github.com/baharkarakas/point-service/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

type userPointsRepo struct{ db DB }

func (r *userPointsRepo) SelectByID(ctx context.Context, userID int64) (models.UserPoint, error) {
	var p models.UserPoint
	err := r.db.QueryRow(ctx,
		`SELECT id, point, update_millis
		   FROM user_points
		  WHERE id=$1`,
		userID,
	).Scan(&p.ID, &p.Point, &p.UpdateMillis)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.EmptyUserPoint(userID), nil
	}
	if err != nil {
		return models.UserPoint{}, errors.Wrapf(err, "select user point %d", userID)
	}
	return p, nil
}

func (r *userPointsRepo) InsertOrUpdate(ctx context.Context, userID, point int64) (models.UserPoint, error) {
	var p models.UserPoint
	err := r.db.QueryRow(ctx,
		`INSERT INTO user_points(id, point, update_millis)
		 VALUES($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE
		    SET point = EXCLUDED.point,
		        update_millis = EXCLUDED.update_millis
		 RETURNING id, point, update_millis`,
		userID, point, models.NowMillis(),
	).Scan(&p.ID, &p.Point, &p.UpdateMillis)
	if err != nil {
		return models.UserPoint{}, errors.Wrapf(err, "upsert user point %d", userID)
	}
	return p, nil
}
