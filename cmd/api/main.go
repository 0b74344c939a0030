// Exercise tracker API
// Registers users, records their activities and serves filtered activity logs under /api/exercise.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/leqihan/fcc-exercise-tracker/internal/api"
	"github.com/leqihan/fcc-exercise-tracker/internal/events"
	"github.com/leqihan/fcc-exercise-tracker/internal/repository"
	"github.com/leqihan/fcc-exercise-tracker/internal/service"
	"github.com/leqihan/fcc-exercise-tracker/pkg/cleanup"
	"github.com/leqihan/fcc-exercise-tracker/pkg/config"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})))
	defer func() {
		if err := cleanup.CleanUp(); err != nil {
			slog.Error("cleanup error", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbCfg := repository.PGCfg{
		Address:  cfg.Postgres.Address,
		Username: cfg.Postgres.Username,
		Password: cfg.Postgres.Password,
		DB:       cfg.Postgres.DB,
		Params:   cfg.Postgres.Params,
	}
	if cfg.MigrationsDir != "" {
		if err := repository.Migrate(&dbCfg, cfg.MigrationsDir); err != nil {
			log.Fatal("migrations error: " + err.Error())
		}
	}
	pool, err := repository.NewPool(ctx, &dbCfg)
	if err != nil {
		log.Fatal("database error: " + err.Error())
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		cleanup.Register(&cleanup.Job{
			Name: "closing kafka writer",
			F:    publisher.Close,
		})
		slog.Info("publishing activity events", slog.String("topic", cfg.KafkaTopic))
	}

	usersRepo := repository.NewUsersRepoWithConn(pool)
	activitiesRepo := repository.NewActivitiesRepoWithConn(pool)
	serv := api.New(&api.ServicesList{
		UserService:     service.NewUserService(usersRepo),
		ExerciseService: service.NewExerciseService(usersRepo, activitiesRepo, publisher),
		DB:              pool,
	})
	if err = serv.Run(ctx, cfg.APIAddress); err != nil {
		slog.Error("server error", slog.String("error", err.Error()))
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
