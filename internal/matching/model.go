package matching

import (
	"time"

	"jobmatch-backend/internal/jobs"
)

// MatchResult is the aggregate outcome of scoring one profile against one job.
type MatchResult struct {
	OverallScore       float64                          `json:"overallScore"`
	CategoryScores     map[jobs.RequirementType]float64 `json:"categoryScores"`
	MandatoryMissCount int                              `json:"mandatoryMissCount"`
	InsufficientData   bool                             `json:"insufficientData,omitempty"`
	ProfileVersion     int                              `json:"profileVersion"`
	ComputedAt         time.Time                        `json:"computedAt"`
}

// RequirementAssessment is one requirement's comparator outcome plus the
// weight it carried in aggregation.
type RequirementAssessment struct {
	Requirement jobs.JobRequirement `json:"requirement"`
	Score       float64             `json:"score"`
	Satisfied   bool                `json:"satisfied"`
	Rationale   string              `json:"rationale"`
	Weight      float64             `json:"weight"`
}

// DetailedMatch extends MatchResult with per-requirement explanations
// suitable for user display.
type DetailedMatch struct {
	MatchResult
	PerRequirement []RequirementAssessment `json:"perRequirement"`
	Strengths      []RequirementAssessment `json:"strengths"`
	Gaps           []RequirementAssessment `json:"gaps"`
}

// MatchHistory is one recorded scoring run. At most one row exists per
// (profileId, jobId, profileVersion); re-scoring the same version replaces it.
type MatchHistory struct {
	ProfileID      string      `json:"profileId"`
	JobID          string      `json:"jobId"`
	ProfileVersion int         `json:"profileVersion"`
	Result         MatchResult `json:"result"`
	CreatedAt      time.Time   `json:"createdAt"`
}
