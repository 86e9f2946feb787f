package events

import (
	"encoding/json"

	"github.com/baharkarakas/point-service/internal/metrics"
	"github.com/baharkarakas/point-service/internal/models"
	"github.com/baharkarakas/point-service/internal/worker"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PointEvent is published once for every committed charge or use.
type PointEvent struct {
	EventID      string                 `json:"eventId"`
	HistoryID    int64                  `json:"historyId"`
	UserID       int64                  `json:"userId"`
	Amount       int64                  `json:"amount"`
	Type         models.TransactionType `json:"type"`
	Point        int64                  `json:"point"`
	UpdateMillis int64                  `json:"updateMillis"`
}

// Notifier receives committed transactions. Implementations must not block the caller
// on broker I/O. Dropping an event is preferred over waiting.
type Notifier interface {
	Notify(h models.PointHistory, balance models.UserPoint)
}

type Nop struct{}

func (Nop) Notify(models.PointHistory, models.UserPoint) {}

// Publisher is the subset of *nats.Conn the dispatcher needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Dispatcher publishes events on a worker pool so broker latency stays off the request path.
// When the pool's queue is full the event is dropped and counted.
type Dispatcher struct {
	pub     Publisher
	subject string
	pool    *worker.Pool
	log     logrus.FieldLogger
}

func NewDispatcher(pub Publisher, subject string, pool *worker.Pool, log logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{pub: pub, subject: subject, pool: pool, log: log}
}

func (d *Dispatcher) Notify(h models.PointHistory, balance models.UserPoint) {
	ev := PointEvent{
		EventID:      uuid.NewString(),
		HistoryID:    h.ID,
		UserID:       h.UserID,
		Amount:       h.Amount,
		Type:         h.Type,
		Point:        balance.Point,
		UpdateMillis: h.UpdateMillis,
	}
	if !d.pool.Submit(func() { d.publish(ev) }) {
		metrics.EventsPublished.WithLabelValues("dropped").Inc()
		d.log.WithField("history_id", h.ID).Warn("event dropped, queue full or dispatcher stopped")
	}
}

func (d *Dispatcher) publish(ev PointEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		d.log.WithError(err).Error("encode point event")
		return
	}
	if err := d.pub.Publish(d.subject, data); err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		d.log.WithError(err).WithFields(logrus.Fields{
			"event_id": ev.EventID,
			"user_id":  ev.UserID,
		}).Error("publish point event")
		return
	}
	metrics.EventsPublished.WithLabelValues("ok").Inc()
}
