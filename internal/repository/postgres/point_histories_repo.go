package postgres

import (
	"context"

	"github.com/baharkarakas/point-service/internal/models"
	"github.com/pkg/errors"
)

type pointHistoriesRepo struct{ db DB }

func (r *pointHistoriesRepo) Insert(ctx context.Context, userID, amount int64, typ models.TransactionType, updateMillis int64) (models.PointHistory, error) {
	// validate before touching the sequence
	if _, err := models.NewPointHistory(0, userID, amount, typ, updateMillis); err != nil {
		return models.PointHistory{}, err
	}
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO point_histories(user_id, amount, type, update_millis)
		 VALUES($1, $2, $3, $4)
		 RETURNING id`,
		userID, amount, typ.String(), updateMillis,
	).Scan(&id)
	if err != nil {
		return models.PointHistory{}, errors.Wrapf(err, "insert point history for user %d", userID)
	}
	return models.NewPointHistory(id, userID, amount, typ, updateMillis)
}

func (r *pointHistoriesRepo) SelectAllByUserID(ctx context.Context, userID int64) ([]models.PointHistory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, amount, type, update_millis
		   FROM point_histories
		  WHERE user_id=$1
		  ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "select point histories for user %d", userID)
	}
	defer rows.Close()

	out := make([]models.PointHistory, 0)
	for rows.Next() {
		var (
			h   models.PointHistory
			typ string
		)
		if err := rows.Scan(&h.ID, &h.UserID, &h.Amount, &typ, &h.UpdateMillis); err != nil {
			return nil, errors.Wrap(err, "scan point history")
		}
		t, parseErr := models.ParseTransactionType(typ)
		if parseErr != nil {
			// corrupt row, not a caller mistake
			return nil, errors.Errorf("point history %d: unknown type %q", h.ID, typ)
		}
		h.Type = t
		out = append(out, h)
	}
	return out, errors.Wrap(rows.Err(), "iterate point histories")
}
