package recommendations

import (
	"reflect"
	"testing"

	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/matching"
)

func assessment(text string, reqType jobs.RequirementType, importance jobs.ImportanceLevel, score, weight float64) matching.RequirementAssessment {
	return matching.RequirementAssessment{
		Requirement: jobs.JobRequirement{
			Text:       text,
			Type:       reqType,
			Importance: importance,
			Mandatory:  importance == jobs.ImportanceMandatory,
		},
		Score:     score,
		Satisfied: score >= 0.6,
		Weight:    weight,
	}
}

func TestGenerateSkipsSatisfiedRequirements(t *testing.T) {
	detailed := matching.DetailedMatch{
		PerRequirement: []matching.RequirementAssessment{
			assessment("Python", jobs.TypeSkill, jobs.ImportanceMandatory, 1.0, 3),
			assessment("Go", jobs.TypeSkill, jobs.ImportanceMandatory, 0.8, 3),
			assessment("Kubernetes", jobs.TypeSkill, jobs.ImportancePreferred, 0.4, 2),
		},
	}

	items := Generate(detailed, "p1", "j1")
	if len(items) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(items))
	}
	if items[0].RelatedRequirement.Text != "Kubernetes" {
		t.Errorf("expected the Kubernetes gap, got %q", items[0].RelatedRequirement.Text)
	}
	if items[0].Status != StatusPending {
		t.Errorf("expected pending status, got %q", items[0].Status)
	}
	if items[0].ProfileID != "p1" || items[0].JobID != "j1" {
		t.Errorf("owner fields not stamped: %+v", items[0])
	}
}

func TestGenerateTypeAndPriorityMapping(t *testing.T) {
	tests := []struct {
		name         string
		reqType      jobs.RequirementType
		importance   jobs.ImportanceLevel
		wantType     RecommendationType
		wantPriority Priority
	}{
		{"mandatory skill", jobs.TypeSkill, jobs.ImportanceMandatory, TypeAddSkill, PriorityHigh},
		{"preferred experience", jobs.TypeExperience, jobs.ImportancePreferred, TypeRewordExperience, PriorityMedium},
		{"nice-to-have education", jobs.TypeEducation, jobs.ImportanceNiceToHave, TypeAddCertification, PriorityLow},
		{"other requirement", jobs.TypeOther, jobs.ImportancePreferred, TypeGenericImprovement, PriorityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detailed := matching.DetailedMatch{
				PerRequirement: []matching.RequirementAssessment{
					assessment("req", tt.reqType, tt.importance, 0, 1),
				},
			}
			items := Generate(detailed, "p1", "j1")
			if len(items) != 1 {
				t.Fatalf("expected 1 recommendation, got %d", len(items))
			}
			if items[0].Type != tt.wantType {
				t.Errorf("type = %q, want %q", items[0].Type, tt.wantType)
			}
			if items[0].Priority != tt.wantPriority {
				t.Errorf("priority = %q, want %q", items[0].Priority, tt.wantPriority)
			}
			if items[0].Action == "" {
				t.Error("expected a non-empty action")
			}
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	detailed := matching.DetailedMatch{
		PerRequirement: []matching.RequirementAssessment{
			assessment("Docker", jobs.TypeSkill, jobs.ImportancePreferred, 0.3, 2),
			assessment("Go", jobs.TypeSkill, jobs.ImportanceMandatory, 0, 3),
			assessment("CS degree", jobs.TypeEducation, jobs.ImportanceNiceToHave, 0.5, 1),
		},
	}

	first := Generate(detailed, "p1", "j1")
	second := Generate(detailed, "p1", "j1")
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output for identical input")
	}
}

func TestPrioritizeOrdersByPriorityThenWeight(t *testing.T) {
	items := []Recommendation{
		{ID: "low", Priority: PriorityLow, Weight: 1},
		{ID: "medium-light", Priority: PriorityMedium, Weight: 2},
		{ID: "high", Priority: PriorityHigh, Weight: 3},
		{ID: "medium-heavy", Priority: PriorityMedium, Weight: 2.5},
	}

	sorted := Prioritize(items)
	got := make([]string, len(sorted))
	for i, item := range sorted {
		got[i] = item.ID
	}
	want := []string{"high", "medium-heavy", "medium-light", "low"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}

	// Input order is untouched.
	if items[0].ID != "low" {
		t.Error("Prioritize mutated its input")
	}
}

func TestPrioritizeIsStableOnTies(t *testing.T) {
	items := []Recommendation{
		{ID: "a", Priority: PriorityHigh, Weight: 3},
		{ID: "b", Priority: PriorityHigh, Weight: 3},
		{ID: "c", Priority: PriorityHigh, Weight: 3},
	}
	sorted := Prioritize(items)
	for i, want := range []string{"a", "b", "c"} {
		if sorted[i].ID != want {
			t.Fatalf("position %d = %q, want %q", i, sorted[i].ID, want)
		}
	}
}
