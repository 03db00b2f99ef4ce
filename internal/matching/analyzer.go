package matching

import (
	"sort"

	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/profiles"
)

// strengthThreshold marks a requirement as a strength for display purposes.
const strengthThreshold = 0.8

// Analyze runs the scorer while retaining the per-requirement comparator
// outputs. It shares the scoring path with Score, so OverallScore never
// diverges between the two for identical inputs.
func Analyze(profile profiles.Profile, job jobs.Job) (DetailedMatch, error) {
	result, assessments, err := score(profile, job)
	if err != nil {
		return DetailedMatch{}, err
	}

	detailed := DetailedMatch{
		MatchResult:    result,
		PerRequirement: assessments,
		Strengths:      make([]RequirementAssessment, 0),
		Gaps:           make([]RequirementAssessment, 0),
	}

	for _, a := range assessments {
		if a.Score >= strengthThreshold {
			detailed.Strengths = append(detailed.Strengths, a)
		}
		if !a.Satisfied {
			detailed.Gaps = append(detailed.Gaps, a)
		}
	}

	sort.SliceStable(detailed.Strengths, func(i, j int) bool {
		return detailed.Strengths[i].Weight > detailed.Strengths[j].Weight
	})
	sort.SliceStable(detailed.Gaps, func(i, j int) bool {
		a, b := detailed.Gaps[i], detailed.Gaps[j]
		if a.Requirement.Mandatory != b.Requirement.Mandatory {
			return a.Requirement.Mandatory
		}
		return a.Weight > b.Weight
	})

	return detailed, nil
}
