package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/leqihan/fcc-exercise-tracker/internal/api"
	errorvalues "github.com/leqihan/fcc-exercise-tracker/internal/error_values"
	"github.com/leqihan/fcc-exercise-tracker/internal/repository"
	repomocks "github.com/leqihan/fcc-exercise-tracker/internal/repository/mocks"
	"github.com/leqihan/fcc-exercise-tracker/internal/service"
	"github.com/leqihan/fcc-exercise-tracker/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// runAliceScenario registers alice, logs one run and reads the log back.
func runAliceScenario(t *testing.T, serv http.Handler) {
	rec := httptest.NewRecorder()
	serv.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/api/exercise/new-user", map[string]string{"username": "alice"}))
	require.Equal(t, http.StatusCreated, rec.Code)
	var user api.UserResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "alice", user.Username)

	rec = httptest.NewRecorder()
	serv.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/api/exercise/add", map[string]any{
		"userId":      user.ID,
		"description": "run",
		"duration":    30,
		"date":        "2023-01-01",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	var added api.ActivityResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &added))
	assert.Equal(t, api.ActivityResponse{
		Username:    "alice",
		Description: "run",
		Duration:    30,
		ID:          user.ID,
		Date:        "2023-01-01",
	}, added)

	rec = httptest.NewRecorder()
	serv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/exercise/log?userId="+user.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var log api.LogResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &log))
	assert.Equal(t, api.LogResponse{
		ID:       user.ID,
		Username: "alice",
		Count:    1,
		Log:      []entity.LogEntry{{Description: "run", Duration: 30, Date: "2023-01-01"}},
	}, log)

	rec = httptest.NewRecorder()
	serv.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/api/exercise/new-user", map[string]string{"username": "alice"}))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAliceScenarioWithMockedStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	usersRepo := repomocks.NewMockUsersRepositoryI(ctrl)
	activitiesRepo := repomocks.NewMockActivitiesRepositoryI(ctrl)
	alice := &entity.User{ID: uuid.New(), Username: "alice"}
	activityID := uuid.New()
	run := entity.Activity{
		ID:          activityID,
		UserID:      alice.ID,
		Description: "run",
		Duration:    30,
		Date:        "2023-01-01",
		CreatedAt:   time.Now(),
	}

	gomock.InOrder(
		usersRepo.EXPECT().FindByName(gomock.Any(), "alice").Return(nil, errorvalues.ErrUserNotFound),
		usersRepo.EXPECT().Create(gomock.Any(), &entity.User{Username: "alice"}).Return(alice.ID, nil),
		usersRepo.EXPECT().FindByID(gomock.Any(), alice.ID).Return(alice, nil),
		usersRepo.EXPECT().FindByID(gomock.Any(), alice.ID).Return(alice, nil),
		usersRepo.EXPECT().FindByName(gomock.Any(), "alice").Return(alice, nil),
	)
	activitiesRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(activityID, nil)
	activitiesRepo.EXPECT().GetByID(gomock.Any(), activityID).Return(&entity.ActivityWithUser{Activity: run, User: *alice}, nil)
	activitiesRepo.EXPECT().GetLog(gomock.Any(), entity.LogFilter{UserID: alice.ID}).Return([]*entity.Activity{&run}, nil)

	serv := api.New(&api.ServicesList{
		UserService:     service.NewUserService(usersRepo),
		ExerciseService: service.NewExerciseService(usersRepo, activitiesRepo, nil),
	})
	runAliceScenario(t, serv)
}

type testPGConfig struct {
	connStr string
}

func (cfg *testPGConfig) ConnString() string {
	return cfg.connStr
}

func TestAliceScenarioIntegrational(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:17",
		postgres.WithUsername("test_user"),
		postgres.WithDatabase("exercise"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatal("error running test container: " + err.Error())
	}
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	cfg := &testPGConfig{connStr: connStr}
	require.NoError(t, repository.Migrate(cfg, "../../migrations"))
	pool, err := repository.NewPool(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	usersRepo := repository.NewUsersRepoWithConn(pool)
	activitiesRepo := repository.NewActivitiesRepoWithConn(pool)
	serv := api.New(&api.ServicesList{
		UserService:     service.NewUserService(usersRepo),
		ExerciseService: service.NewExerciseService(usersRepo, activitiesRepo, nil),
		DB:              pool,
	})
	runAliceScenario(t, serv)

	rec := httptest.NewRecorder()
	serv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
