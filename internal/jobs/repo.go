package jobs

import "context"

// Repo defines persistence operations for jobs.
type Repo interface {
	Create(ctx context.Context, job Job) error
	GetByID(ctx context.Context, jobID string) (Job, error)
	ListByUser(ctx context.Context, userID string) ([]Job, error)
	Update(ctx context.Context, job Job) error
	Delete(ctx context.Context, jobID string) error
	SearchByKeywords(ctx context.Context, userID string, keywords []string) ([]Job, error)
	UpdateTags(ctx context.Context, jobID string, tags []string) error
	UpdateLastMatchScore(ctx context.Context, jobID string, score float64) error
}

// JobParser turns raw posting text into structured job data. Parsing is an
// external collaborator; the jobs service only consumes its output.
type JobParser interface {
	ParseJob(ctx context.Context, text string) (ParsedJob, error)
}
