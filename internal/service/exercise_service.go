package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"strconv"

	errorvalues "github.com/leqihan/fcc-exercise-tracker/internal/error_values"
	"github.com/leqihan/fcc-exercise-tracker/internal/events"
	"github.com/leqihan/fcc-exercise-tracker/internal/observability"
	"github.com/leqihan/fcc-exercise-tracker/internal/repository"
	"github.com/leqihan/fcc-exercise-tracker/pkg/entity"
)

type ExerciseService struct {
	usersRepo      repository.UsersRepositoryI
	activitiesRepo repository.ActivitiesRepositoryI
	publisher      events.Publisher
}

func NewExerciseService(usersRepo repository.UsersRepositoryI, activitiesRepo repository.ActivitiesRepositoryI, publisher events.Publisher) *ExerciseService {
	if usersRepo == nil || activitiesRepo == nil {
		log.Fatal("on exercise service provided nil repos")
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	InitValidator()
	return &ExerciseService{
		usersRepo:      usersRepo,
		activitiesRepo: activitiesRepo,
		publisher:      publisher,
	}
}

func (es *ExerciseService) AddActivity(ctx context.Context, req *AddActivityRequest) (*entity.ActivityWithUser, error) {
	// Owner is resolved first: nothing is validated or stored for unknown users
	user, err := findUser(ctx, es.usersRepo, req.UserID)
	if err != nil {
		return nil, err
	}
	if err = validate.Var(req.Date, "required,ymd_date"); err != nil {
		return nil, errorvalues.ErrInvalidDate
	}
	if err = validate.Struct(*req); err != nil {
		return nil, validationError(err)
	}
	duration, err := strconv.ParseFloat(req.Duration, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: duration must be a number", errorvalues.ErrValidation)
	}
	id, err := es.activitiesRepo.Create(ctx, &entity.Activity{
		UserID:      user.ID,
		Description: req.Description,
		Duration:    duration,
		Date:        req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound), errors.Is(err, errorvalues.ErrInvalidDate):
			return nil, err
		}
		return nil, errors.New("activities repository error: " + err.Error())
	}
	activity, err := es.activitiesRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("activities repository error: " + err.Error())
	}
	observability.RecordActivityCreated()
	es.publishCreated(ctx, activity)
	return activity, nil
}

// QueryLog resolves the user on its own so an empty log still echoes the identity.
func (es *ExerciseService) QueryLog(ctx context.Context, q *LogQuery) (*entity.ExerciseLog, error) {
	if q.UserID == "" {
		return nil, errorvalues.ErrMissingUserID
	}
	filter := entity.LogFilter{}
	if q.From != "" {
		if err := validate.Var(q.From, "ymd_date"); err != nil {
			return nil, fmt.Errorf("from: %w", errorvalues.ErrInvalidDate)
		}
		from := q.From
		filter.From = &from
	}
	if q.To != "" {
		if err := validate.Var(q.To, "ymd_date"); err != nil {
			return nil, fmt.Errorf("to: %w", errorvalues.ErrInvalidDate)
		}
		to := q.To
		filter.To = &to
	}
	// Unparsable or non-positive limits leave the log uncapped
	if limit, err := strconv.Atoi(q.Limit); err == nil && limit > 0 {
		filter.Limit = &limit
	}
	user, err := findUser(ctx, es.usersRepo, q.UserID)
	if err != nil {
		return nil, err
	}
	filter.UserID = user.ID
	activities, err := es.activitiesRepo.GetLog(ctx, filter)
	if err != nil {
		return nil, errors.New("activities repository error: " + err.Error())
	}
	entries := make([]entity.LogEntry, 0, len(activities))
	for _, a := range activities {
		entries = append(entries, entity.LogEntry{
			Description: a.Description,
			Duration:    a.Duration,
			Date:        a.Date,
		})
	}
	observability.RecordLogQuery(len(entries))
	return &entity.ExerciseLog{
		User:  *user,
		From:  q.From,
		To:    q.To,
		Count: len(entries),
		Log:   entries,
	}, nil
}

func (es *ExerciseService) ListActivities(ctx context.Context) ([]*entity.ActivityWithUser, error) {
	activities, err := es.activitiesRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.New("activities repository error: " + err.Error())
	}
	return activities, nil
}

// publishCreated never fails the write: the activity is already stored.
func (es *ExerciseService) publishCreated(ctx context.Context, a *entity.ActivityWithUser) {
	err := es.publisher.PublishActivityCreated(ctx, events.ActivityCreated{
		ActivityID:  a.ID.String(),
		UserID:      a.User.ID.String(),
		Username:    a.User.Username,
		Description: a.Description,
		Duration:    a.Duration,
		Date:        a.Date,
		CreatedAt:   a.CreatedAt,
	})
	if err != nil {
		observability.RecordPublishFailure()
		slog.Default().Warn("activity event not published",
			slog.String("activity_id", a.ID.String()),
			slog.String("error", err.Error()))
	}
}
