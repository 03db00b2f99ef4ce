package matching

import (
	"testing"

	"jobmatch-backend/internal/jobs"
)

func TestClassifyRequirementTypes(t *testing.T) {
	cases := []struct {
		name string
		text string
		want jobs.RequirementType
	}{
		{"technology", "Strong knowledge of PostgreSQL and Redis", jobs.TypeSkill},
		{"go as single token", "Proficiency in Go", jobs.TypeSkill},
		{"experience years", "5+ years building backend services", jobs.TypeExperience},
		{"education degree", "Bachelor degree in Computer Science", jobs.TypeEducation},
		{"soft skill", "Excellent communication and teamwork", jobs.TypeSoftSkill},
		{"russian education", "Высшее техническое образование", jobs.TypeEducation},
		{"russian experience", "Опыт работы от 3 лет", jobs.TypeExperience},
		{"russian technology", "Знание Python и Docker", jobs.TypeSkill},
		{"unclassifiable", "Willingness to travel occasionally", jobs.TypeOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _, _ := ClassifyRequirement(tc.text, tc.text)
			if got != tc.want {
				t.Fatalf("ClassifyRequirement(%q) type = %s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

func TestClassifyRequirementImportance(t *testing.T) {
	cases := []struct {
		name          string
		text          string
		context       string
		want          jobs.ImportanceLevel
		wantMandatory bool
	}{
		{"required marker", "Python", "Python required", jobs.ImportanceMandatory, true},
		{"must marker", "Kubernetes", "must have Kubernetes in production", jobs.ImportanceMandatory, true},
		{"plus marker", "GraphQL", "GraphQL is a plus", jobs.ImportanceNiceToHave, false},
		{"no marker defaults to preferred", "React", "familiarity with React", jobs.ImportancePreferred, false},
		{"russian mandatory", "Go", "обязательно знание Go", jobs.ImportanceMandatory, true},
		{"russian nice to have", "Kafka", "знание Kafka будет плюсом", jobs.ImportanceNiceToHave, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, importance, mandatory := ClassifyRequirement(tc.text, tc.context)
			if importance != tc.want {
				t.Fatalf("importance = %s, want %s", importance, tc.want)
			}
			if mandatory != tc.wantMandatory {
				t.Fatalf("mandatory = %v, want %v", mandatory, tc.wantMandatory)
			}
		})
	}
}

func TestClassifyRequirementOrderEducationBeforeExperience(t *testing.T) {
	// Mentions both a degree and years; education markers win.
	got, _, _ := ClassifyRequirement("Master degree and 3 years of research", "")
	if got != jobs.TypeEducation {
		t.Fatalf("expected education, got %s", got)
	}
}
