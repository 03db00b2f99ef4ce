package matching

import (
	"fmt"
	"time"

	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/profiles"
)

// MandatoryMissPenalty is subtracted from the weighted score for every
// unsatisfied mandatory requirement, beyond the weight it already carried.
// A missing hard requirement must measurably suppress the overall score.
const MandatoryMissPenalty = 0.1

var importanceWeights = map[jobs.ImportanceLevel]float64{
	jobs.ImportanceMandatory:  3,
	jobs.ImportancePreferred:  2,
	jobs.ImportanceNiceToHave: 1,
}

// Score computes the aggregate match of a profile against a job. It is pure
// and deterministic: identical inputs yield identical results apart from
// ComputedAt.
func Score(profile profiles.Profile, job jobs.Job) (MatchResult, error) {
	result, _, err := score(profile, job)
	return result, err
}

func score(profile profiles.Profile, job jobs.Job) (MatchResult, []RequirementAssessment, error) {
	result := MatchResult{
		CategoryScores: make(map[jobs.RequirementType]float64),
		ProfileVersion: profile.Version,
		ComputedAt:     time.Now().UTC(),
	}

	if len(job.Requirements) == 0 {
		result.InsufficientData = true
		return result, nil, nil
	}

	assessments := make([]RequirementAssessment, 0, len(job.Requirements))
	var weightedSum, weightTotal float64
	categoryWeighted := make(map[jobs.RequirementType]float64)
	categoryWeights := make(map[jobs.RequirementType]float64)

	for _, req := range job.Requirements {
		if req.Type == "" || req.Importance == "" {
			reqType, importance, mandatory := ClassifyRequirement(req.Text, req.Text)
			if req.Type == "" {
				req.Type = reqType
			}
			if req.Importance == "" {
				req.Importance = importance
				req.Mandatory = mandatory
			}
		}

		cmp, err := CompareRequirement(req, profile)
		if err != nil {
			return MatchResult{}, nil, fmt.Errorf("%w: compare requirement %q: %v", ErrInvalidOperation, req.Text, err)
		}

		weight := importanceWeights[req.Importance]
		if weight == 0 {
			weight = importanceWeights[jobs.ImportancePreferred]
		}

		weightedSum += weight * cmp.Score
		weightTotal += weight
		categoryWeighted[req.Type] += weight * cmp.Score
		categoryWeights[req.Type] += weight

		if req.Mandatory && !cmp.Satisfied {
			result.MandatoryMissCount++
		}

		assessments = append(assessments, RequirementAssessment{
			Requirement: req,
			Score:       cmp.Score,
			Satisfied:   cmp.Satisfied,
			Rationale:   cmp.Rationale,
			Weight:      weight,
		})
	}

	overall := weightedSum / weightTotal
	overall -= float64(result.MandatoryMissCount) * MandatoryMissPenalty
	result.OverallScore = clamp01(overall)

	for reqType, weighted := range categoryWeighted {
		result.CategoryScores[reqType] = weighted / categoryWeights[reqType]
	}

	return result, assessments, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
