package postgres

import (
	"context"

	repo "github.com/baharkarakas/point-service/internal/repository"
	"github.com/jackc/pgx/v5"
)

// DB is the part of *pgxpool.Pool the repositories use.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repositories struct {
	UserPoints     repo.UserPoints
	PointHistories repo.PointHistories
}

func NewRepositories(db DB) Repositories {
	return Repositories{
		UserPoints:     &userPointsRepo{db},
		PointHistories: &pointHistoriesRepo{db},
	}
}
