package cleanup

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Job is a named shutdown step, e.g. closing a pool or a broker writer.
type Job struct {
	Name string
	F    func() error
}

var (
	mu   sync.Mutex
	jobs []*Job
)

func Register(j *Job) {
	mu.Lock()
	defer mu.Unlock()
	jobs = append(jobs, j)
}

// CleanUp runs registered jobs newest first, so dependents close before what they use.
// Jobs run once; the registry is empty afterwards.
func CleanUp() error {
	mu.Lock()
	pending := jobs
	jobs = nil
	mu.Unlock()

	var errs []error
	for i := len(pending) - 1; i >= 0; i-- {
		j := pending[i]
		slog.Info("cleanup job started", slog.String("job", j.Name))
		if err := j.F(); err != nil {
			slog.Error("cleanup job failed", slog.String("job", j.Name), slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("%s: %w", j.Name, err))
			continue
		}
		slog.Info("cleanup job finished", slog.String("job", j.Name))
	}
	return errors.Join(errs...)
}
