package matching

import (
	"strings"

	"jobmatch-backend/internal/jobs"
)

// Requirement texts arrive in English or Russian, so both marker sets are
// checked side by side.
var (
	mandatoryMarkers = []string{
		"required", "must", "mandatory", "essential", "обязательно", "необходимо", "требуется",
	}
	niceToHaveMarkers = []string{
		"nice to have", "a plus", "is a plus", "would be a plus", "bonus", "желательно", "будет плюсом", "плюсом будет", "приветствуется",
	}

	educationMarkers = []string{
		"degree", "bachelor", "master", "phd", "diploma", "university", "certification", "certificate",
		"образование", "диплом", "университет", "бакалавр", "магистр", "высшее",
	}
	experienceMarkers = []string{
		"years", "year of", "yrs", "experience", "senior", "junior", "lead-level",
		"лет опыта", "года опыта", "опыт работы", "опыт",
	}
	softSkillMarkers = []string{
		"communication", "teamwork", "leadership", "collaboration", "mentoring", "problem solving",
		"коммуника", "команд", "лидерск", "ответствен", "самостоятельн",
	}
	technologyMarkers = []string{
		"python", "golang", " go ", "go,", "java", "javascript", "typescript", "react", "angular", "vue",
		"node", "django", "flask", "spring", "rails", "php", "ruby", "rust", "kotlin", "swift", "scala",
		"c++", "c#", ".net", "sql", "postgres", "postgresql", "mysql", "mongodb", "redis", "kafka",
		"rabbitmq", "elasticsearch", "docker", "kubernetes", "k8s", "terraform", "ansible", "aws",
		"gcp", "azure", "linux", "git", "ci/cd", "graphql", "grpc", "rest api", "html", "css",
	}
)

// ClassifyRequirement categorizes one extracted requirement from its text and
// the sentence or bullet it came from. It is a pure function of the text.
// The returned bool is true iff importance is mandatory; it is the
// authoritative flag for scoring penalties.
func ClassifyRequirement(text, context string) (jobs.RequirementType, jobs.ImportanceLevel, bool) {
	reqType := classifyType(text)
	importance := classifyImportance(context + " " + text)
	return reqType, importance, importance == jobs.ImportanceMandatory
}

func classifyType(text string) jobs.RequirementType {
	// Pad so word-boundary markers like " go " match at the edges.
	lower := " " + strings.ToLower(strings.TrimSpace(text)) + " "
	switch {
	case containsAny(lower, educationMarkers):
		return jobs.TypeEducation
	case containsAny(lower, experienceMarkers):
		return jobs.TypeExperience
	case containsAny(lower, technologyMarkers):
		return jobs.TypeSkill
	case containsAny(lower, softSkillMarkers):
		return jobs.TypeSoftSkill
	default:
		return jobs.TypeOther
	}
}

func classifyImportance(context string) jobs.ImportanceLevel {
	lower := strings.ToLower(context)
	switch {
	case containsAny(lower, mandatoryMarkers):
		return jobs.ImportanceMandatory
	case containsAny(lower, niceToHaveMarkers):
		return jobs.ImportanceNiceToHave
	default:
		return jobs.ImportancePreferred
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
