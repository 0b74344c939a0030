package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	errorvalues "github.com/leqihan/fcc-exercise-tracker/internal/error_values"
	"github.com/leqihan/fcc-exercise-tracker/internal/service"
	"github.com/leqihan/fcc-exercise-tracker/pkg/entity"
	"github.com/leqihan/fcc-exercise-tracker/pkg/httputil"
)

const requestTimeout = 10 * time.Second

type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// ActivityResponse carries the owner's id as _id.
type ActivityResponse struct {
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	ID          string  `json:"_id"`
	Date        string  `json:"date"`
}

type LogResponse struct {
	ID       string            `json:"_id"`
	Username string            `json:"username"`
	From     string            `json:"from"`
	To       string            `json:"to"`
	Count    int               `json:"count"`
	Log      []entity.LogEntry `json:"log"`
}

type ActivityListItem struct {
	ID          string       `json:"_id"`
	Description string       `json:"description"`
	Duration    float64      `json:"duration"`
	Date        string       `json:"date"`
	User        UserResponse `json:"user"`
}

func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Warn("creating user error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, errorvalues.KindValidation, "invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	user, err := s.userService.CreateUser(ctx, &service.CreateUserRequest{
		Username: req.Username,
	})
	if err != nil {
		writeServiceError(w, logger, "creating user", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, UserResponse{
		Username: user.Username,
		ID:       user.ID.String(),
	})
	logger.Info("user created", slog.String("uid", user.ID.String()))
}

func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	users, err := s.userService.ListUsers(ctx)
	if err != nil {
		writeServiceError(w, logger, "listing users", err)
		return
	}
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{Username: u.Username, ID: u.ID.String()})
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
	logger.Info("users provided", slog.Int("count", len(resp)))
}

func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req AddActivityRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Warn("adding activity error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, errorvalues.KindValidation, "invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	activity, err := s.exerciseService.AddActivity(ctx, &service.AddActivityRequest{
		UserID:      req.UserID,
		Description: req.Description,
		Duration:    string(req.Duration),
		Date:        req.Date,
	})
	if err != nil {
		writeServiceError(w, logger, "adding activity", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, ActivityResponse{
		Username:    activity.User.Username,
		Description: activity.Description,
		Duration:    activity.Duration,
		ID:          activity.User.ID.String(),
		Date:        activity.Date,
	})
	logger.Info("activity added", slog.String("activity_id", activity.ID.String()))
}

func (s *Server) GetLog(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	q := r.URL.Query()
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	exerciseLog, err := s.exerciseService.QueryLog(ctx, &service.LogQuery{
		UserID: q.Get("userId"),
		From:   q.Get("from"),
		To:     q.Get("to"),
		Limit:  q.Get("limit"),
	})
	if err != nil {
		writeServiceError(w, logger, "getting log", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, LogResponse{
		ID:       exerciseLog.User.ID.String(),
		Username: exerciseLog.User.Username,
		From:     exerciseLog.From,
		To:       exerciseLog.To,
		Count:    exerciseLog.Count,
		Log:      exerciseLog.Log,
	})
	logger.Info("log provided", slog.Int("count", exerciseLog.Count))
}

func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	activities, err := s.exerciseService.ListActivities(ctx)
	if err != nil {
		writeServiceError(w, logger, "listing activities", err)
		return
	}
	resp := make([]ActivityListItem, 0, len(activities))
	for _, a := range activities {
		resp = append(resp, ActivityListItem{
			ID:          a.ID.String(),
			Description: a.Description,
			Duration:    a.Duration,
			Date:        a.Date,
			User: UserResponse{
				Username: a.User.Username,
				ID:       a.User.ID.String(),
			},
		})
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
	logger.Info("activities provided", slog.Int("count", len(resp)))
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			GetLoggerFromCtx(r.Context()).Error("health check failed", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusServiceUnavailable, errorvalues.KindStoreFailure, "store unavailable")
			return
		}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteErrorResponse(w, http.StatusNotFound, "NotFound", "not found")
}

// writeServiceError is the single place service failures become responses. Store failures never leak details.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, action string, err error) {
	kind := errorvalues.KindOf(err)
	var status int
	switch kind {
	case errorvalues.KindValidation, errorvalues.KindMissingUserID:
		status = http.StatusBadRequest
	case errorvalues.KindUnknownUser:
		status = http.StatusNotFound
	case errorvalues.KindConflict:
		status = http.StatusConflict
	default:
		logger.Error(action+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, kind, "internal error while "+action)
		return
	}
	logger.Warn(action+" error", slog.String("kind", kind), slog.String("error", err.Error()))
	httputil.WriteErrorResponse(w, status, kind, err.Error())
}
