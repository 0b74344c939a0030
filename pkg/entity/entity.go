package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID
	Username string
}

type Activity struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	// Minutes
	Duration float64
	// Always YYYY-MM-DD
	Date      string
	CreatedAt time.Time
}

// ActivityWithUser is an activity with its owner resolved.
type ActivityWithUser struct {
	Activity
	User User
}

// LogFilter narrows a user's activities. Nil bounds and limit mean "unbounded".
type LogFilter struct {
	UserID uuid.UUID
	From   *string
	To     *string
	Limit  *int
}

type LogEntry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

type ExerciseLog struct {
	User  User
	From  string
	To    string
	Count int
	Log   []LogEntry
}
