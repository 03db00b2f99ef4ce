package recommendations

import "context"

// Repo defines persistence operations for recommendations.
type Repo interface {
	CreateBatch(ctx context.Context, items []Recommendation) error
	GetByID(ctx context.Context, id string) (Recommendation, error)
	ListByProfile(ctx context.Context, profileID string) ([]Recommendation, error)
	ListByProfileAndJob(ctx context.Context, profileID, jobID string) ([]Recommendation, error)
	ListByType(ctx context.Context, profileID string, recType RecommendationType) ([]Recommendation, error)
	ListByPriority(ctx context.Context, profileID string, priority Priority) ([]Recommendation, error)
	Update(ctx context.Context, item Recommendation) error
}
