package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/leqihan/fcc-exercise-tracker/internal/error_values"
	"github.com/leqihan/fcc-exercise-tracker/internal/observability"
	"github.com/leqihan/fcc-exercise-tracker/internal/repository"
	"github.com/leqihan/fcc-exercise-tracker/pkg/entity"
)

type UserService struct {
	repo repository.UsersRepositoryI
}

func NewUserService(usersRepo repository.UsersRepositoryI) *UserService {
	if usersRepo == nil {
		log.Fatal("provided nil usersRepo")
	}
	InitValidator()
	return &UserService{
		repo: usersRepo,
	}
}

// CreateUser checks the name up front; the unique constraint is the final guard against concurrent duplicates.
func (us *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*entity.User, error) {
	if err := validate.Struct(*req); err != nil {
		return nil, validationError(err)
	}
	_, err := us.repo.FindByName(ctx, req.Username)
	switch {
	case err == nil:
		return nil, errorvalues.ErrUserExists
	case !errors.Is(err, errorvalues.ErrUserNotFound):
		return nil, errors.New("repository searching error: " + err.Error())
	}
	id, err := us.repo.Create(ctx, &entity.User{Username: req.Username})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			return nil, errorvalues.ErrUserExists
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	observability.RecordUserCreated()
	return &entity.User{
		ID:       id,
		Username: req.Username,
	}, nil
}

func (us *UserService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return findUser(ctx, us.repo, id)
}

func (us *UserService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := us.repo.List(ctx)
	if err != nil {
		return nil, errors.New("repository listing error: " + err.Error())
	}
	return users, nil
}

func findUser(ctx context.Context, repo repository.UsersRepositoryI, rawID string) (*entity.User, error) {
	uid, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errorvalues.ErrUserNotFound
	}
	user, err := repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}
