package service

import (
	"context"

	"github.com/leqihan/fcc-exercise-tracker/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type CreateUserRequest struct {
	Username string `validate:"required,max=100"`
}

// AddActivityRequest carries raw client input. Date is checked separately so a bad date reports ErrInvalidDate.
type AddActivityRequest struct {
	UserID      string
	Description string `validate:"required,max=1000"`
	Duration    string `validate:"required,numeric"`
	Date        string
}

// LogQuery carries raw query parameters; empty means absent.
type LogQuery struct {
	UserID string
	From   string
	To     string
	Limit  string
}

type UserServiceI interface {
	// Validates username and creates the user. Fails with ErrUserExists on duplicates
	CreateUser(ctx context.Context, req *CreateUserRequest) (*entity.User, error)
	// Malformed ids are reported as ErrUserNotFound
	GetByID(ctx context.Context, id string) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
}

type ExerciseServiceI interface {
	// Persists activity for existing user and returns it with the owner resolved
	AddActivity(ctx context.Context, req *AddActivityRequest) (*entity.ActivityWithUser, error)
	// Builds user's filtered and limited exercise log
	QueryLog(ctx context.Context, q *LogQuery) (*entity.ExerciseLog, error)
	ListActivities(ctx context.Context) ([]*entity.ActivityWithUser, error)
}
