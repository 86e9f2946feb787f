package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/baharkarakas/point-service/internal/api"
	"github.com/baharkarakas/point-service/internal/config"
	"github.com/baharkarakas/point-service/internal/db"
	"github.com/baharkarakas/point-service/internal/events"
	"github.com/baharkarakas/point-service/internal/lock"
	"github.com/baharkarakas/point-service/internal/logger"
	"github.com/baharkarakas/point-service/internal/metrics"
	repo "github.com/baharkarakas/point-service/internal/repository"
	"github.com/baharkarakas/point-service/internal/repository/memory"
	"github.com/baharkarakas/point-service/internal/repository/postgres"
	redisrepo "github.com/baharkarakas/point-service/internal/repository/redis"
	"github.com/baharkarakas/point-service/internal/services"
	"github.com/baharkarakas/point-service/internal/worker"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.Env, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("point service stopped")
	}
	log.Info("bye")
}

// stores bundles the selected balance/history pair with the cleanup of its backing client.
type stores struct {
	points    repo.UserPoints
	histories repo.PointHistories
	close     func()
}

func openStores(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, 0)
		if err != nil {
			return stores{}, errors.Wrap(err, "db connect")
		}
		if cfg.Migrate {
			if err := db.RunMigrations(ctx, pool, log); err != nil {
				pool.Close()
				return stores{}, errors.Wrap(err, "migrations")
			}
		}
		repos := postgres.NewRepositories(pool)
		return stores{repos.UserPoints, repos.PointHistories, pool.Close}, nil

	case config.StoreRedis:
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return stores{}, errors.Wrapf(err, "redis ping %s", cfg.RedisAddr)
		}
		repos := redisrepo.NewRepositories(rdb)
		return stores{repos.UserPoints, repos.PointHistories, func() { _ = rdb.Close() }}, nil

	default:
		repos := memory.NewRepositories()
		return stores{repos.UserPoints, repos.PointHistories, func() {}}, nil
	}
}

func run(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()
	log.WithField("driver", cfg.StoreDriver).Info("store ready")

	metrics.Init()

	locks := lock.NewUserLockManager()
	locks.OnCreate(func(total int64) { metrics.UserLocks.Set(float64(total)) })

	wp := worker.NewPool(cfg.EventWorkers, 0)
	wp.OnDepth(func(depth int) { metrics.WorkerQueueDepth.Set(float64(depth)) })

	var notifier events.Notifier = events.Nop{}
	var nc *nats.Conn
	if cfg.NATSURL != "" {
		nc, err = events.ConnectNATS(cfg.NATSURL, log)
		if err != nil {
			wp.Stop()
			return err
		}
		notifier = events.NewDispatcher(nc, cfg.EventsSubject, wp, log)
		log.WithField("subject", cfg.EventsSubject).Info("publishing point events")
	}

	pointSvc := services.NewPointService(st.points, st.histories, locks, notifier, log)

	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: api.NewRouter(api.RouterDeps{
			Points:      pointSvc,
			Log:         log,
			CORSOrigins: cfg.CORSOrigins,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("port", cfg.HTTPPort).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	err = g.Wait()

	// requests are done, flush pending events before the broker goes away
	wp.Stop()
	if nc != nil {
		if drainErr := nc.Drain(); drainErr != nil {
			log.WithError(drainErr).Warn("nats drain")
		}
	}
	return err
}
