package redis

import (
	repo "github.com/baharkarakas/point-service/internal/repository"
	goredis "github.com/redis/go-redis/v9"
)

type Repositories struct {
	UserPoints     repo.UserPoints
	PointHistories repo.PointHistories
}

func NewRepositories(rdb *goredis.Client) Repositories {
	return Repositories{
		UserPoints:     &userPointsRepo{rdb},
		PointHistories: &pointHistoriesRepo{rdb},
	}
}
