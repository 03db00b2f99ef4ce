package recommendations

import (
	"fmt"
	"sort"

	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/matching"
)

// gapThreshold: a requirement scored at or above this needs no recommendation.
const gapThreshold = 0.8

var priorityRanks = map[Priority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Generate builds pending recommendations from a detailed match: one per
// unsatisfied or partially-satisfied requirement. It is deterministic;
// identifiers and timestamps are stamped later by the service.
func Generate(detailed matching.DetailedMatch, profileID, jobID string) []Recommendation {
	out := make([]Recommendation, 0, len(detailed.PerRequirement))
	for _, assessment := range detailed.PerRequirement {
		if assessment.Score >= gapThreshold {
			continue
		}
		req := assessment.Requirement
		out = append(out, Recommendation{
			ProfileID:          profileID,
			JobID:              jobID,
			Type:               typeFor(req.Type),
			Priority:           priorityFor(req.Importance),
			RelatedRequirement: req,
			Action:             actionFor(req, assessment),
			Weight:             assessment.Weight,
			Status:             StatusPending,
		})
	}
	return Prioritize(out)
}

// Prioritize sorts by priority then weight, descending. The sort is stable so
// ties keep their generation order and output stays deterministic.
func Prioritize(items []Recommendation) []Recommendation {
	out := make([]Recommendation, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if priorityRanks[a.Priority] != priorityRanks[b.Priority] {
			return priorityRanks[a.Priority] > priorityRanks[b.Priority]
		}
		return a.Weight > b.Weight
	})
	return out
}

func priorityFor(importance jobs.ImportanceLevel) Priority {
	switch importance {
	case jobs.ImportanceMandatory:
		return PriorityHigh
	case jobs.ImportanceNiceToHave:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

func typeFor(reqType jobs.RequirementType) RecommendationType {
	switch reqType {
	case jobs.TypeSkill:
		return TypeAddSkill
	case jobs.TypeExperience:
		return TypeRewordExperience
	case jobs.TypeEducation:
		return TypeAddCertification
	default:
		return TypeGenericImprovement
	}
}

func actionFor(req jobs.JobRequirement, assessment matching.RequirementAssessment) string {
	switch req.Type {
	case jobs.TypeSkill:
		if assessment.Score == 0 {
			return fmt.Sprintf("Add the skill from %q to your profile, or list related experience with it.", req.Text)
		}
		return fmt.Sprintf("Strengthen your proficiency for %q and reflect it in your skill list.", req.Text)
	case jobs.TypeExperience:
		return fmt.Sprintf("Reword your work history to emphasize experience relevant to %q.", req.Text)
	case jobs.TypeEducation:
		return fmt.Sprintf("Add a certification or degree detail covering %q.", req.Text)
	default:
		return fmt.Sprintf("Address %q in your summary or experience descriptions.", req.Text)
	}
}
