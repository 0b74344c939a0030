package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose"

	"github.com/leqihan/fcc-exercise-tracker/pkg/cleanup"
)

// NewPool opens a pgx pool shared by all repositories and registers its closing.
func NewPool(ctx context.Context, cfg DBConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, errors.New("creating pgxpool error: " + err.Error())
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.New("error while pinging pgxpool: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return pool, nil
}

// Migrate applies goose migrations from dir.
func Migrate(cfg DBConfig, dir string) error {
	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		return errors.New("opening db for migrations error: " + err.Error())
	}
	defer db.Close()
	if err = goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err = goose.Up(db, dir); err != nil {
		return errors.New("applying migrations error: " + err.Error())
	}
	return nil
}
