package memory

import repo "github.com/baharkarakas/point-service/internal/repository"

type Repositories struct {
	UserPoints     repo.UserPoints
	PointHistories repo.PointHistories
}

func NewRepositories() Repositories {
	return Repositories{
		UserPoints:     NewUserPoints(),
		PointHistories: NewPointHistories(),
	}
}
