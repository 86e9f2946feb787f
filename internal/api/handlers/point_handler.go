package handlers

//go:generate mockgen -source=point_handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/baharkarakas/point-service/internal/api/httpx"
	"github.com/baharkarakas/point-service/internal/models"
)

type PointServicer interface {
	GetUserPoint(ctx context.Context, userID int64) (models.UserPoint, error)
	GetPointHistories(ctx context.Context, userID int64) ([]models.PointHistory, error)
	Charge(ctx context.Context, userID, amount int64) (models.UserPoint, error)
	Use(ctx context.Context, userID, amount int64) (models.UserPoint, error)
}

type PointHandler struct {
	svc PointServicer
	log logrus.FieldLogger
}

func NewPointHandler(svc PointServicer, log logrus.FieldLogger) *PointHandler {
	return &PointHandler{svc: svc, log: log}
}

// Routes mounts the point endpoints on r, which is expected to sit under /point.
func (h *PointHandler) Routes(r chi.Router) {
	r.Get("/{id}", h.Point)
	r.Get("/{id}/histories", h.Histories)
	r.Patch("/{id}/charge", h.Charge)
	r.Patch("/{id}/use", h.Use)
}

// GET /point/{id}
func (h *PointHandler) Point(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	p, err := h.svc.GetUserPoint(r.Context(), id)
	if err != nil {
		httpx.WriteServiceError(w, err, h.log)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

// GET /point/{id}/histories
func (h *PointHandler) Histories(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	hs, err := h.svc.GetPointHistories(r.Context(), id)
	if err != nil {
		httpx.WriteServiceError(w, err, h.log)
		return
	}
	if hs == nil {
		hs = []models.PointHistory{}
	}
	httpx.WriteJSON(w, http.StatusOK, hs)
}

// PATCH /point/{id}/charge
func (h *PointHandler) Charge(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.svc.Charge)
}

// PATCH /point/{id}/use
func (h *PointHandler) Use(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.svc.Use)
}

func (h *PointHandler) mutate(w http.ResponseWriter, r *http.Request, op func(context.Context, int64, int64) (models.UserPoint, error)) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	amount, err := decodeAmount(r.Body)
	if err != nil {
		h.log.WithError(err).WithField("user_id", id).Debug("rejecting request body")
		httpx.WriteBadRequest(w)
		return
	}
	p, err := op(r.Context(), id, amount)
	if err != nil {
		httpx.WriteServiceError(w, err, h.log)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.WriteBadRequest(w)
		return 0, false
	}
	return id, true
}

var errNotInteger = errors.New("body is not a single integer")

// decodeAmount accepts exactly one JSON number that fits in int64. Objects, strings,
// fractions, null and trailing values are refused.
func decodeAmount(body io.Reader) (int64, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, errNotInteger
	}
	amount, err := n.Int64()
	if err != nil {
		return 0, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return 0, errNotInteger
	}
	return amount, nil
}
