package recommendations

import (
	"time"

	"jobmatch-backend/internal/jobs"
)

// RecommendationType says what kind of profile improvement is suggested.
type RecommendationType string

const (
	TypeAddSkill           RecommendationType = "addSkill"
	TypeRewordExperience   RecommendationType = "rewordExperience"
	TypeAddCertification   RecommendationType = "addCertification"
	TypeGenericImprovement RecommendationType = "genericImprovement"
)

// Priority orders recommendations for display.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Status is the recommendation lifecycle state. Pending is the only
// non-terminal state; completed and rejected are final.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

// Recommendation is one actionable suggestion tied to a job requirement.
type Recommendation struct {
	ID                 string              `json:"id"`
	ProfileID          string              `json:"profileId"`
	JobID              string              `json:"jobId,omitempty"`
	Type               RecommendationType  `json:"type"`
	Priority           Priority            `json:"priority"`
	RelatedRequirement jobs.JobRequirement `json:"relatedRequirement"`
	Action             string              `json:"action"`
	Weight             float64             `json:"weight"`
	Status             Status              `json:"status"`
	RejectionReason    string              `json:"rejectionReason,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	ResolvedAt         *time.Time          `json:"resolvedAt,omitempty"`
}
