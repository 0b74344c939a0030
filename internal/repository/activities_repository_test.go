package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/leqihan/fcc-exercise-tracker/internal/error_values"
	"github.com/leqihan/fcc-exercise-tracker/internal/repository"
	"github.com/leqihan/fcc-exercise-tracker/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var activityWithUserColumns = []string{"id", "description", "duration", "date", "created_at", "user_id", "username"}

func TestCreateActivity(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewActivitiesRepoWithConn(mock)
	query := regexp.QuoteMeta(`INSERT INTO activities (user_id, description, duration, activity_date) VALUES ($1, $2, $3, $4::date) RETURNING id;`)
	activity := entity.Activity{
		UserID:      uuid.New(),
		Description: "run",
		Duration:    30,
		Date:        "2023-01-01",
	}
	activityID := uuid.New()
	testCases := []struct {
		Desc         string
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc:  "successful",
			Error: nil,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).
					WithArgs(activity.UserID, activity.Description, activity.Duration, activity.Date).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(activityID))
			},
		},
		{
			Desc:  "fk violation",
			Error: errorvalues.ErrUserNotFound,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).
					WithArgs(activity.UserID, activity.Description, activity.Duration, activity.Date).
					WillReturnError(&pgconn.PgError{Code: "23503"})
			},
		},
		{
			Desc:  "date rejected by db",
			Error: errorvalues.ErrInvalidDate,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).
					WithArgs(activity.UserID, activity.Description, activity.Duration, activity.Date).
					WillReturnError(&pgconn.PgError{Code: "22008"})
			},
		},
		{
			Desc:  "db error",
			Error: errors.New("creating activity db error: db error"),
			MockPrepFunc: func() {
				mock.ExpectQuery(query).
					WithArgs(activity.UserID, activity.Description, activity.Duration, activity.Date).
					WillReturnError(errors.New("db error"))
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			id, err := repo.Create(ctx, &activity)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
				assert.Equal(t, uuid.Nil, id)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, activityID, id)
			}
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActivityByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewActivitiesRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT a.id, a.description, a.duration, to_char(a.activity_date, 'YYYY-MM-DD'), a.created_at, u.id, u.username
FROM activities a JOIN users u ON u.id = a.user_id WHERE a.id = $1;`)
	ctx := context.Background()
	user := entity.User{ID: uuid.New(), Username: "alice"}
	createdAt := time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)
	activityID := uuid.New()
	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(activityID).WillReturnRows(pgxmock.NewRows(activityWithUserColumns).
			AddRow(activityID, "run", 30.0, "2023-01-01", createdAt, user.ID, user.Username))
		result, err := repo.GetByID(ctx, activityID)
		require.NoError(t, err)
		assert.Equal(t, &entity.ActivityWithUser{
			Activity: entity.Activity{
				ID:          activityID,
				UserID:      user.ID,
				Description: "run",
				Duration:    30,
				Date:        "2023-01-01",
				CreatedAt:   createdAt,
			},
			User: user,
		}, result)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(activityID).WillReturnError(pgx.ErrNoRows)
		_, err := repo.GetByID(ctx, activityID)
		assert.ErrorIs(t, err, errorvalues.ErrActivityNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(activityID).WillReturnError(errors.New("db error"))
		_, err := repo.GetByID(ctx, activityID)
		assert.EqualError(t, err, "searching activity by id error: db error")
	})
}

func TestGetLog(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewActivitiesRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT a.id, a.user_id, a.description, a.duration, to_char(a.activity_date, 'YYYY-MM-DD'), a.created_at
FROM activities a
WHERE a.user_id = $1
AND ($2::date IS NULL OR a.activity_date >= $2::date)
AND ($3::date IS NULL OR a.activity_date <= $3::date)
ORDER BY a.activity_date, a.seq
LIMIT $4;`)
	columns := []string{"id", "user_id", "description", "duration", "date", "created_at"}
	ctx := context.Background()
	userID := uuid.New()
	createdAt := time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)
	from, to, limit := "2023-01-01", "2023-01-31", 2

	t.Run("unbounded", func(t *testing.T) {
		first, second := uuid.New(), uuid.New()
		filter := entity.LogFilter{UserID: userID}
		mock.ExpectQuery(query).
			WithArgs(userID, (*string)(nil), (*string)(nil), (*int)(nil)).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(first, userID, "run", 30.0, "2023-01-01", createdAt).
				AddRow(second, userID, "swim", 45.5, "2023-01-02", createdAt))
		log, err := repo.GetLog(ctx, filter)
		require.NoError(t, err)
		require.Len(t, log, 2)
		assert.Equal(t, first, log[0].ID)
		assert.Equal(t, "swim", log[1].Description)
		assert.Equal(t, 45.5, log[1].Duration)
		assert.Equal(t, "2023-01-02", log[1].Date)
	})
	t.Run("bounded and limited", func(t *testing.T) {
		filter := entity.LogFilter{UserID: userID, From: &from, To: &to, Limit: &limit}
		mock.ExpectQuery(query).
			WithArgs(userID, &from, &to, &limit).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(uuid.New(), userID, "run", 30.0, "2023-01-05", createdAt))
		log, err := repo.GetLog(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, log, 1)
	})
	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(userID, (*string)(nil), (*string)(nil), (*int)(nil)).
			WillReturnRows(pgxmock.NewRows(columns))
		log, err := repo.GetLog(ctx, entity.LogFilter{UserID: userID})
		require.NoError(t, err)
		assert.NotNil(t, log)
		assert.Empty(t, log)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(userID, (*string)(nil), (*string)(nil), (*int)(nil)).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetLog(ctx, entity.LogFilter{UserID: userID})
		assert.EqualError(t, err, "getting activity log error: db error")
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllActivities(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewActivitiesRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT a.id, a.description, a.duration, to_char(a.activity_date, 'YYYY-MM-DD'), a.created_at, u.id, u.username
FROM activities a JOIN users u ON u.id = a.user_id
ORDER BY a.activity_date, a.seq;`)
	ctx := context.Background()
	t.Run("listed", func(t *testing.T) {
		alice, bob := uuid.New(), uuid.New()
		mock.ExpectQuery(query).WillReturnRows(pgxmock.NewRows(activityWithUserColumns).
			AddRow(uuid.New(), "run", 30.0, "2023-01-01", time.Now(), alice, "alice").
			AddRow(uuid.New(), "lift", 20.0, "2023-01-02", time.Now(), bob, "bob"))
		result, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, alice, result[0].UserID)
		assert.Equal(t, "alice", result[0].User.Username)
		assert.Equal(t, "bob", result[1].User.Username)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).WillReturnError(errors.New("db error"))
		_, err := repo.ListAll(ctx)
		assert.Error(t, err)
	})
}
