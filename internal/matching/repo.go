package matching

import "context"

// HistoryRepo defines persistence for recorded scoring runs. RecordMatch is
// an insert-or-replace on the (profileId, jobId, profileVersion) composite
// key; concurrent re-scores of the same version are safe to race because
// both writes carry the same computed value.
type HistoryRepo interface {
	RecordMatch(ctx context.Context, entry MatchHistory) error
	GetTrend(ctx context.Context, profileID, jobID string) ([]MatchHistory, error)
	ListByProfile(ctx context.Context, profileID string) ([]MatchHistory, error)
	ListByJob(ctx context.Context, jobID string) ([]MatchHistory, error)
	GetLatest(ctx context.Context, profileID, jobID string) (MatchHistory, error)
}
