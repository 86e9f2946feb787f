package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/baharkarakas/point-service/internal/api/httpx"
)

func Recover(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithFields(logrus.Fields{
						"request_id": RequestIDFrom(r.Context()),
						"panic":      rec,
						"stack":      string(debug.Stack()),
					}).Error("panic")
					httpx.WriteError(w, http.StatusInternalServerError, httpx.MsgUnexpected)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
