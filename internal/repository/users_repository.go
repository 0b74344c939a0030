package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/leqihan/fcc-exercise-tracker/internal/error_values"
	"github.com/leqihan/fcc-exercise-tracker/pkg/entity"
)

type UsersRepository struct {
	conn PgConnection
}

func NewUsersRepoWithConn(conn PgConnection) *UsersRepository {
	return &UsersRepository{
		conn: conn,
	}
}

func (ur *UsersRepository) Create(ctx context.Context, user *entity.User) (uuid.UUID, error) {
	if user == nil {
		return uuid.Nil, errors.New("user is nil")
	}
	var id uuid.UUID
	row := ur.conn.QueryRow(ctx, `INSERT INTO users (username) VALUES ($1) RETURNING id;`, user.Username)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return uuid.Nil, errorvalues.ErrUserExists
			}
		}
		return uuid.Nil, errors.New("creating user db error: " + err.Error())
	}
	return id, nil
}

func (ur *UsersRepository) FindByName(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	row := ur.conn.QueryRow(ctx, `SELECT id, username FROM users WHERE username = $1;`, username)
	if err := row.Scan(&user.ID, &user.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by name error: " + err.Error())
	}
	return &user, nil
}

func (ur *UsersRepository) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	var user entity.User
	row := ur.conn.QueryRow(ctx, `SELECT id, username FROM users WHERE id = $1;`, uid)
	if err := row.Scan(&user.ID, &user.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by id error: " + err.Error())
	}
	return &user, nil
}

func (ur *UsersRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := ur.conn.Query(ctx, `SELECT id, username FROM users ORDER BY username;`)
	if err != nil {
		return nil, errors.New("listing users error: " + err.Error())
	}
	defer rows.Close()
	result := make([]*entity.User, 0)
	for rows.Next() {
		user := &entity.User{}
		if err = rows.Scan(&user.ID, &user.Username); err != nil {
			return nil, errors.New("user row parsing error: " + err.Error())
		}
		result = append(result, user)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected user rows error: " + err.Error())
	}
	return result, nil
}
