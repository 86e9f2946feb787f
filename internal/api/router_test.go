package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/baharkarakas/point-service/internal/lock"
	"github.com/baharkarakas/point-service/internal/models"
	"github.com/baharkarakas/point-service/internal/repository/memory"
	"github.com/baharkarakas/point-service/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	repos := memory.NewRepositories()
	svc := services.NewPointService(repos.UserPoints, repos.PointHistories, lock.NewUserLockManager(), nil, log)
	srv := httptest.NewServer(NewRouter(RouterDeps{Points: svc, Log: log}))
	t.Cleanup(srv.Close)
	return srv
}

func patch(t *testing.T, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPatch, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealthAndRequestID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestUnknownUserHasZeroBalance(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/point/999")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p := decode[models.UserPoint](t, resp)
	require.Equal(t, int64(999), p.ID)
	require.Zero(t, p.Point)

	resp, err = http.Get(srv.URL + "/point/999/histories")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, decode[[]map[string]any](t, resp))
}

func TestChargeUseFlow(t *testing.T) {
	srv := newTestServer(t)

	resp := patch(t, srv.URL+"/point/1/charge", "10000")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, int64(10000), decode[models.UserPoint](t, resp).Point)

	resp = patch(t, srv.URL+"/point/1/use", "300")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, int64(9700), decode[models.UserPoint](t, resp).Point)

	resp = patch(t, srv.URL+"/point/1/use", "9701")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, map[string]string{"code": "400", "message": "Insufficient balance."}, decode[map[string]string](t, resp))

	resp = patch(t, srv.URL+"/point/1/charge", `{"amount":100,"transactionType":"CHARGE"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, map[string]string{"code": "400", "message": "Invalid request value."}, decode[map[string]string](t, resp))

	resp, err := http.Get(srv.URL + "/point/1/histories")
	require.NoError(t, err)
	hs := decode[[]map[string]any](t, resp)
	require.Len(t, hs, 2)
	require.Equal(t, "charge", hs[0]["type"])
	require.Equal(t, "use", hs[1]["type"])
	require.EqualValues(t, 10000, hs[0]["amount"])
	require.EqualValues(t, 1, hs[0]["userId"])
}

func TestParallelChargesOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	var g errgroup.Group
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			req, err := http.NewRequest(http.MethodPatch, srv.URL+"/point/5/charge", strings.NewReader("50"))
			if err != nil {
				return err
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return &statusError{resp.StatusCode}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	resp, err := http.Get(srv.URL + "/point/5")
	require.NoError(t, err)
	require.Equal(t, int64(1000), decode[models.UserPoint](t, resp).Point)
}

type statusError struct{ code int }

func (e *statusError) Error() string { return "unexpected status " + strconv.Itoa(e.code) }

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/point/1/charge", "application/json", strings.NewReader("10"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
