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

const (
	insertActivityQuery = `INSERT INTO activities (user_id, description, duration, activity_date) VALUES ($1, $2, $3, $4::date) RETURNING id;`

	selectActivityWithUserQuery = `SELECT a.id, a.description, a.duration, to_char(a.activity_date, 'YYYY-MM-DD'), a.created_at, u.id, u.username
FROM activities a JOIN users u ON u.id = a.user_id WHERE a.id = $1;`

	// NULL bounds disable the corresponding filter, LIMIT NULL means no limit
	selectLogQuery = `SELECT a.id, a.user_id, a.description, a.duration, to_char(a.activity_date, 'YYYY-MM-DD'), a.created_at
FROM activities a
WHERE a.user_id = $1
AND ($2::date IS NULL OR a.activity_date >= $2::date)
AND ($3::date IS NULL OR a.activity_date <= $3::date)
ORDER BY a.activity_date, a.seq
LIMIT $4;`

	selectAllActivitiesQuery = `SELECT a.id, a.description, a.duration, to_char(a.activity_date, 'YYYY-MM-DD'), a.created_at, u.id, u.username
FROM activities a JOIN users u ON u.id = a.user_id
ORDER BY a.activity_date, a.seq;`
)

type ActivitiesRepository struct {
	conn PgConnection
}

func NewActivitiesRepoWithConn(conn PgConnection) *ActivitiesRepository {
	return &ActivitiesRepository{
		conn: conn,
	}
}

func (ar *ActivitiesRepository) Create(ctx context.Context, activity *entity.Activity) (uuid.UUID, error) {
	if activity == nil {
		return uuid.Nil, errors.New("activity is nil")
	}
	var id uuid.UUID
	row := ar.conn.QueryRow(ctx, insertActivityQuery,
		activity.UserID,
		activity.Description,
		activity.Duration,
		activity.Date,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.Nil, errorvalues.ErrUserNotFound
			// Invalid datetime format, datetime field overflow
			case "22007", "22008":
				return uuid.Nil, errorvalues.ErrInvalidDate
			}
		}
		return uuid.Nil, errors.New("creating activity db error: " + err.Error())
	}
	return id, nil
}

func (ar *ActivitiesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ActivityWithUser, error) {
	row := ar.conn.QueryRow(ctx, selectActivityWithUserQuery, id)
	activity, err := scanActivityWithUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrActivityNotFound
		}
		return nil, errors.New("searching activity by id error: " + err.Error())
	}
	return activity, nil
}

func (ar *ActivitiesRepository) GetLog(ctx context.Context, filter entity.LogFilter) ([]*entity.Activity, error) {
	rows, err := ar.conn.Query(ctx, selectLogQuery, filter.UserID, filter.From, filter.To, filter.Limit)
	if err != nil {
		return nil, errors.New("getting activity log error: " + err.Error())
	}
	defer rows.Close()
	result := make([]*entity.Activity, 0)
	for rows.Next() {
		a := &entity.Activity{}
		err = rows.Scan(&a.ID, &a.UserID, &a.Description, &a.Duration, &a.Date, &a.CreatedAt)
		if err != nil {
			return nil, errors.New("activity row parsing error: " + err.Error())
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected activity rows error: " + err.Error())
	}
	return result, nil
}

func (ar *ActivitiesRepository) ListAll(ctx context.Context) ([]*entity.ActivityWithUser, error) {
	rows, err := ar.conn.Query(ctx, selectAllActivitiesQuery)
	if err != nil {
		return nil, errors.New("listing activities error: " + err.Error())
	}
	defer rows.Close()
	result := make([]*entity.ActivityWithUser, 0)
	for rows.Next() {
		a, err := scanActivityWithUser(rows)
		if err != nil {
			return nil, errors.New("activity row parsing error: " + err.Error())
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected activity rows error: " + err.Error())
	}
	return result, nil
}

func scanActivityWithUser(row pgx.Row) (*entity.ActivityWithUser, error) {
	var a entity.ActivityWithUser
	err := row.Scan(&a.ID, &a.Description, &a.Duration, &a.Date, &a.CreatedAt, &a.User.ID, &a.User.Username)
	if err != nil {
		return nil, err
	}
	a.UserID = a.User.ID
	return &a, nil
}
