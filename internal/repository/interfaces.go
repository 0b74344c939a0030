package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leqihan/fcc-exercise-tracker/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type UsersRepositoryI interface {
	// Creates new user in database, returns generated id
	Create(ctx context.Context, user *entity.User) (uuid.UUID, error)
	// Looks up user by name. Used to reject duplicates before insert
	FindByName(ctx context.Context, username string) (*entity.User, error)
	// Looks up user by uid
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Lists all users ordered by username
	List(ctx context.Context) ([]*entity.User, error)
}

type ActivitiesRepositoryI interface {
	// Creates new activity. UserID, Description, Duration and Date are necessary
	Create(ctx context.Context, activity *entity.Activity) (uuid.UUID, error)
	// Returns activity with its owner resolved
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ActivityWithUser, error)
	// Returns user's activities matching filter, ordered by date then insertion
	GetLog(ctx context.Context, filter entity.LogFilter) ([]*entity.Activity, error)
	// Returns every activity with its owner resolved, in log order
	ListAll(ctx context.Context) ([]*entity.ActivityWithUser, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
	// Extra query parameters, e.g. "sslmode=disable"
	Params string
}

func (pgcfg *PGCfg) ConnString() string {
	s := fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
	if pgcfg.Params != "" {
		s += "?" + pgcfg.Params
	}
	return s
}
