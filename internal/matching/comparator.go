package matching

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/profiles"
)

// SatisfiedThreshold is the minimum-competence score at which a requirement
// counts as satisfied. Tunable; every comparison uses this one constant.
const SatisfiedThreshold = 0.6

// Comparison is the comparator's verdict for a single requirement.
type Comparison struct {
	Score     float64 `json:"score"`
	Satisfied bool    `json:"satisfied"`
	Rationale string  `json:"rationale"`
}

var proficiencyScores = map[profiles.ProficiencyLevel]float64{
	profiles.ProficiencyExpert:       1.0,
	profiles.ProficiencyAdvanced:     0.8,
	profiles.ProficiencyIntermediate: 0.6,
	profiles.ProficiencyBeginner:     0.4,
}

// skillSynonyms maps common alternate spellings onto a canonical name.
var skillSynonyms = map[string]string{
	"golang":    "go",
	"js":        "javascript",
	"ts":        "typescript",
	"postgres":  "postgresql",
	"k8s":       "kubernetes",
	"nodejs":    "node",
	"node.js":   "node",
	"reactjs":   "react",
	"vuejs":     "vue",
	"angularjs": "angular",
}

var requiredYearsPattern = regexp.MustCompile(`(\d+)\s*\+?\s*(?:years?|yrs?|лет|год(?:а|ов)?)`)

// CompareRequirement scores one requirement against the profile. Missing
// profile data yields score 0, never an error; only malformed inputs such as
// inverted date ranges are reported as errors.
func CompareRequirement(req jobs.JobRequirement, profile profiles.Profile) (Comparison, error) {
	switch req.Type {
	case jobs.TypeSkill:
		return compareSkill(req, profile), nil
	case jobs.TypeExperience:
		return compareExperience(req, profile)
	case jobs.TypeEducation:
		return compareEducation(req, profile), nil
	default:
		return compareLexical(req, profile), nil
	}
}

func compareSkill(req jobs.JobRequirement, profile profiles.Profile) Comparison {
	reqText := normalizeTerm(req.Text)
	for _, skill := range profile.Skills {
		name := normalizeTerm(skill.Name)
		if name == "" {
			continue
		}
		if !termMentioned(reqText, name) {
			continue
		}
		score := proficiencyScores[skill.Proficiency]
		if score == 0 {
			// Unknown proficiency still counts as a present skill.
			score = proficiencyScores[profiles.ProficiencyIntermediate]
		}
		return comparison(score, fmt.Sprintf("skill %q found at %s level", skill.Name, skill.Proficiency))
	}
	return comparison(0, "no matching skill in profile")
}

func compareExperience(req jobs.JobRequirement, profile profiles.Profile) (Comparison, error) {
	actualYears, err := totalExperienceYears(profile.WorkExperience)
	if err != nil {
		return Comparison{}, err
	}

	required, ok := parseRequiredYears(req.Text)
	if !ok {
		// No stated minimum: binary presence check.
		if actualYears > 0 {
			return comparison(1, fmt.Sprintf("%.1f years of relevant experience", actualYears)), nil
		}
		return comparison(0, "no work experience in profile"), nil
	}

	score := actualYears / float64(required)
	if score > 1 {
		score = 1
	}
	return comparison(score, fmt.Sprintf("%.1f of %d required years", actualYears, required)), nil
}

func compareEducation(req jobs.JobRequirement, profile profiles.Profile) Comparison {
	if len(profile.Education) == 0 {
		return comparison(0, "no education in profile")
	}

	requiredLevel := degreeLevel(req.Text)
	reqText := normalizeTerm(req.Text)

	best := Comparison{Score: 0, Rationale: "education does not match requirement"}
	for _, edu := range profile.Education {
		levelMatch := requiredLevel == 0 || degreeLevel(edu.Degree) >= requiredLevel
		fieldMatch := edu.Field != "" && termMentioned(reqText, normalizeTerm(edu.Field))
		var candidate Comparison
		switch {
		case levelMatch && fieldMatch:
			candidate = comparison(1, fmt.Sprintf("degree in %s meets requirement", edu.Field))
		case levelMatch || fieldMatch:
			candidate = comparison(0.5, fmt.Sprintf("partial education match (%s, %s)", edu.Degree, edu.Field))
		default:
			continue
		}
		if candidate.Score > best.Score {
			best = candidate
		}
	}
	return best
}

// compareLexical is the fallback for soft-skill and unclassified requirements:
// token overlap between the requirement and the profile's free-text fields.
func compareLexical(req jobs.JobRequirement, profile profiles.Profile) Comparison {
	reqTokens := contentTokens(req.Text)
	if len(reqTokens) == 0 {
		return comparison(0, "requirement text is empty")
	}

	var freeText strings.Builder
	freeText.WriteString(profile.Summary)
	for _, exp := range profile.WorkExperience {
		freeText.WriteString(" " + exp.Title + " " + exp.Description)
	}
	for _, skill := range profile.Skills {
		freeText.WriteString(" " + skill.Name)
	}
	profileTokens := make(map[string]struct{})
	for _, token := range contentTokens(freeText.String()) {
		profileTokens[token] = struct{}{}
	}

	matched := 0
	for _, token := range reqTokens {
		if _, ok := profileTokens[token]; ok {
			matched++
		}
	}
	score := float64(matched) / float64(len(reqTokens))
	return comparison(score, fmt.Sprintf("%d of %d requirement terms found in profile text", matched, len(reqTokens)))
}

func comparison(score float64, rationale string) Comparison {
	return Comparison{
		Score:     score,
		Satisfied: score >= SatisfiedThreshold,
		Rationale: rationale,
	}
}

// totalExperienceYears sums work history durations after merging overlapping
// date ranges, so parallel positions are not double-counted.
func totalExperienceYears(history []profiles.WorkExperience) (float64, error) {
	type span struct{ start, end time.Time }
	now := time.Now().UTC()

	spans := make([]span, 0, len(history))
	for _, exp := range history {
		if exp.StartDate.IsZero() {
			continue
		}
		end := now
		if exp.EndDate != nil {
			end = *exp.EndDate
		}
		if end.Before(exp.StartDate) {
			return 0, fmt.Errorf("work experience %q: end date precedes start date", exp.Title)
		}
		spans = append(spans, span{start: exp.StartDate, end: end})
	}
	if len(spans) == 0 {
		return 0, nil
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start.Before(spans[j].start) })

	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if !s.start.After(last.end) {
			if s.end.After(last.end) {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}

	var total time.Duration
	for _, s := range merged {
		total += s.end.Sub(s.start)
	}
	return total.Hours() / 24 / 365.25, nil
}

func parseRequiredYears(text string) (int, bool) {
	match := requiredYearsPattern.FindStringSubmatch(strings.ToLower(text))
	if match == nil {
		return 0, false
	}
	years, err := strconv.Atoi(match[1])
	if err != nil || years <= 0 {
		return 0, false
	}
	return years, true
}

var degreeLevels = []struct {
	level   int
	markers []string
}{
	{4, []string{"phd", "doctorate", "доктор", "кандидат наук"}},
	{3, []string{"master", "msc", "магистр"}},
	{2, []string{"bachelor", "bsc", "бакалавр", "высшее"}},
	{1, []string{"certificate", "certification", "diploma", "диплом", "сертификат"}},
}

func degreeLevel(text string) int {
	lower := strings.ToLower(text)
	for _, dl := range degreeLevels {
		if containsAny(lower, dl.markers) {
			return dl.level
		}
	}
	return 0
}

func normalizeTerm(s string) string {
	out := strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := skillSynonyms[out]; ok {
		return canonical
	}
	return out
}

// termMentioned reports whether term appears in text as a whole token or,
// for multi-word terms, as a substring.
func termMentioned(text, term string) bool {
	if term == "" {
		return false
	}
	if strings.Contains(term, " ") || strings.ContainsAny(term, ".+#") {
		return strings.Contains(text, term)
	}
	for _, token := range strings.FieldsFunc(text, isTokenSeparator) {
		if normalizeTerm(token) == term {
			return true
		}
	}
	return false
}

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "with": {}, "for": {}, "of": {}, "in": {}, "to": {}, "a": {}, "an": {},
	"or": {}, "is": {}, "are": {}, "be": {}, "have": {}, "has": {},
	"и": {}, "в": {}, "с": {}, "на": {}, "для": {}, "по": {}, "или": {},
}

func contentTokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), isTokenSeparator)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 3 {
			continue
		}
		if _, ok := stopwords[f]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

func isTokenSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', ',', ';', ':', '(', ')', '/', '"', '\'':
		return true
	}
	return false
}
