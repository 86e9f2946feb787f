package services

import (
	"context"
	"strings"

	"github.com/baharkarakas/point-service/internal/events"
	"github.com/baharkarakas/point-service/internal/lock"
	"github.com/baharkarakas/point-service/internal/metrics"
	"github.com/baharkarakas/point-service/internal/models"
	repo "github.com/baharkarakas/point-service/internal/repository"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type PointService struct {
	points    repo.UserPoints
	histories repo.PointHistories
	locks     *lock.UserLockManager
	notifier  events.Notifier
	log       logrus.FieldLogger
}

// NewPointService wires the service to its collaborators. A nil notifier disables events.
func NewPointService(
	points repo.UserPoints,
	histories repo.PointHistories,
	locks *lock.UserLockManager,
	notifier events.Notifier,
	log logrus.FieldLogger,
) *PointService {
	if notifier == nil {
		notifier = events.Nop{}
	}
	return &PointService{
		points:    points,
		histories: histories,
		locks:     locks,
		notifier:  notifier,
		log:       log,
	}
}

// ----------------- Queries -----------------

// Reads take no lock: each is a single store call and sees the last completed write.
func (s *PointService) GetUserPoint(ctx context.Context, userID int64) (models.UserPoint, error) {
	return s.points.SelectByID(ctx, userID)
}

func (s *PointService) GetPointHistories(ctx context.Context, userID int64) ([]models.PointHistory, error) {
	return s.histories.SelectAllByUserID(ctx, userID)
}

// ----------------- Commands -----------------

func (s *PointService) Charge(ctx context.Context, userID, amount int64) (models.UserPoint, error) {
	return s.apply(ctx, userID, amount, models.TxnCharge)
}

func (s *PointService) Use(ctx context.Context, userID, amount int64) (models.UserPoint, error) {
	return s.apply(ctx, userID, amount, models.TxnUse)
}

func (s *PointService) apply(ctx context.Context, userID, amount int64, typ models.TransactionType) (models.UserPoint, error) {
	after, h, err := s.commit(ctx, userID, amount, typ)
	if err != nil {
		s.reject(userID, amount, typ, err)
		return models.UserPoint{}, err
	}

	metrics.TransactionsTotal.WithLabelValues(label(typ)).Inc()
	s.log.WithFields(logrus.Fields{
		"user_id":    userID,
		"amount":     amount,
		"type":       label(typ),
		"point":      after.Point,
		"history_id": h.ID,
	}).Debug("point transaction committed")

	s.notifier.Notify(h, after)
	return after, nil
}

// commit runs read, compute, upsert and append while holding the user's lock. Arithmetic
// failures return before any write. A failed append after a successful upsert leaves the
// balance changed and is reported to the caller.
func (s *PointService) commit(ctx context.Context, userID, amount int64, typ models.TransactionType) (models.UserPoint, models.PointHistory, error) {
	l := s.locks.GetLock(userID)
	tok := l.Lock()
	defer l.Unlock(tok)

	before, err := s.points.SelectByID(ctx, userID)
	if err != nil {
		return models.UserPoint{}, models.PointHistory{}, errors.Wrap(err, "load balance")
	}

	var after models.UserPoint
	switch typ {
	case models.TxnCharge:
		after, err = before.Charge(amount)
	case models.TxnUse:
		after, err = before.Use(amount)
	default:
		err = models.BadArgument("Invalid transaction type: " + string(typ) + ". Valid types are: CHARGE, USE.")
	}
	if err != nil {
		return models.UserPoint{}, models.PointHistory{}, err
	}

	stored, err := s.points.InsertOrUpdate(ctx, userID, after.Point)
	if err != nil {
		return models.UserPoint{}, models.PointHistory{}, errors.Wrap(err, "store balance")
	}
	h, err := s.histories.Insert(ctx, userID, amount, typ, stored.UpdateMillis)
	if err != nil {
		return models.UserPoint{}, models.PointHistory{}, errors.Wrap(err, "append history")
	}
	return stored, h, nil
}

func (s *PointService) reject(userID, amount int64, typ models.TransactionType, err error) {
	kind := models.KindOf(err)
	metrics.TransactionsRejected.WithLabelValues(label(typ), kind.String()).Inc()

	entry := s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount,
		"type":    label(typ),
		"kind":    kind.String(),
	})
	if kind == models.KindUnexpected {
		entry.WithError(err).Error("point transaction failed")
		return
	}
	entry.WithError(err).Info("point transaction rejected")
}

func label(typ models.TransactionType) string { return strings.ToLower(string(typ)) }
