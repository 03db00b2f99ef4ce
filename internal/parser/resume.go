// Package parser extracts structured profile and job data from plain text.
// Extraction is heuristic: section headers split the document and line-level
// patterns pull out skills, positions, degrees and salary ranges. English and
// Russian documents are supported.
package parser

import (
	"context"
	"regexp"
	"strings"
	"time"

	"jobmatch-backend/internal/profiles"
)

// Resume parses resume text into a structured profile.
// It satisfies profiles.ResumeParser.
type Resume struct{}

// NewResume constructs a resume parser.
func NewResume() *Resume {
	return &Resume{}
}

type resumeSection string

const (
	sectionNone       resumeSection = ""
	sectionSummary    resumeSection = "summary"
	sectionSkills     resumeSection = "skills"
	sectionExperience resumeSection = "experience"
	sectionEducation  resumeSection = "education"
	sectionLanguages  resumeSection = "languages"
)

var resumeSectionHeaders = map[resumeSection][]string{
	sectionSummary:    {"summary", "about", "profile", "о себе", "обо мне"},
	sectionSkills:     {"skills", "technical skills", "технологии", "навыки"},
	sectionExperience: {"experience", "work experience", "employment", "опыт работы", "опыт"},
	sectionEducation:  {"education", "образование"},
	sectionLanguages:  {"languages", "языки"},
}

// ParseResume splits the text into sections and extracts structured data
// from each. Unrecognized lines before the first header become the summary.
func (p *Resume) ParseResume(_ context.Context, text string) (profiles.ParsedResume, error) {
	var parsed profiles.ParsedResume

	current := sectionNone
	var summary []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if section, ok := matchResumeHeader(line); ok {
			current = section
			continue
		}

		switch current {
		case sectionNone, sectionSummary:
			summary = append(summary, line)
		case sectionSkills:
			parsed.Skills = append(parsed.Skills, parseSkillLine(line)...)
		case sectionExperience:
			if exp, ok := parseExperienceLine(line); ok {
				parsed.WorkExperience = append(parsed.WorkExperience, exp)
			} else if n := len(parsed.WorkExperience); n > 0 {
				last := &parsed.WorkExperience[n-1]
				if last.Description != "" {
					last.Description += " "
				}
				last.Description += stripBullet(line)
			}
		case sectionEducation:
			if edu, ok := parseEducationLine(line); ok {
				parsed.Education = append(parsed.Education, edu)
			}
		case sectionLanguages:
			parsed.Languages = append(parsed.Languages, parseLanguageLine(line)...)
		}
	}
	parsed.Summary = strings.Join(summary, " ")
	return parsed, nil
}

func matchResumeHeader(line string) (resumeSection, bool) {
	normalized := strings.ToLower(strings.TrimRight(line, ":"))
	for section, headers := range resumeSectionHeaders {
		for _, header := range headers {
			if normalized == header {
				return section, true
			}
		}
	}
	return sectionNone, false
}

var proficiencyWords = map[string]profiles.ProficiencyLevel{
	"beginner":     profiles.ProficiencyBeginner,
	"basic":        profiles.ProficiencyBeginner,
	"начальный":    profiles.ProficiencyBeginner,
	"intermediate": profiles.ProficiencyIntermediate,
	"средний":      profiles.ProficiencyIntermediate,
	"advanced":     profiles.ProficiencyAdvanced,
	"продвинутый":  profiles.ProficiencyAdvanced,
	"expert":       profiles.ProficiencyExpert,
	"эксперт":      profiles.ProficiencyExpert,
}

var skillAnnotationPattern = regexp.MustCompile(`^(.*?)\s*\(([^)]+)\)$`)

// parseSkillLine handles comma-separated skill lists. A trailing annotation
// in parentheses is read as a proficiency level when it names one.
func parseSkillLine(line string) []profiles.Skill {
	var out []profiles.Skill
	for _, part := range strings.Split(stripBullet(line), ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		skill := profiles.Skill{Name: name, Proficiency: profiles.ProficiencyIntermediate}
		if m := skillAnnotationPattern.FindStringSubmatch(name); m != nil {
			if level, ok := proficiencyWords[strings.ToLower(strings.TrimSpace(m[2]))]; ok {
				skill.Name = strings.TrimSpace(m[1])
				skill.Proficiency = level
			}
		}
		if skill.Name != "" {
			out = append(out, skill)
		}
	}
	return out
}

// experienceLinePattern matches "Title at Company, Jan 2020 - Mar 2023" and
// "Title, Company (2020 - present)" style lines. The date range anchors the
// match; title and company come from the text before it.
var experienceLinePattern = regexp.MustCompile(
	`^(.+?)[,(]?\s*((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}|\d{1,2}[./]\d{4}|\d{4})\s*[-–—]\s*((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}|\d{1,2}[./]\d{4}|\d{4}|present|current|now|настоящее время|н\.в\.)\)?$`,
)

func parseExperienceLine(line string) (profiles.WorkExperience, bool) {
	m := experienceLinePattern.FindStringSubmatch(stripBullet(line))
	if m == nil {
		return profiles.WorkExperience{}, false
	}

	start, ok := parseMonthYear(m[2])
	if !ok {
		return profiles.WorkExperience{}, false
	}

	exp := profiles.WorkExperience{StartDate: start}
	if end, ok := parseMonthYear(m[3]); ok {
		// An open range ("present" etc.) leaves EndDate nil.
		exp.EndDate = &end
	}

	head := strings.Trim(strings.TrimSpace(m[1]), ",(")
	title, company := head, ""
	for _, sep := range []string{" at ", " @ ", " в компании ", ", "} {
		if idx := strings.Index(head, sep); idx > 0 {
			title = strings.TrimSpace(head[:idx])
			company = strings.TrimSpace(head[idx+len(sep):])
			break
		}
	}
	exp.Title = title
	exp.Company = strings.Trim(company, ",")
	return exp, true
}

var monthNames = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

func parseMonthYear(s string) (time.Time, bool) {
	s = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), "."))
	fields := strings.Fields(s)
	if len(fields) == 2 {
		if month, ok := monthNames[fields[0][:min(3, len(fields[0]))]]; ok {
			if t, err := time.Parse("2006", fields[1]); err == nil {
				return time.Date(t.Year(), month, 1, 0, 0, 0, 0, time.UTC), true
			}
		}
		return time.Time{}, false
	}
	for _, layout := range []string{"1/2006", "1.2006", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

var educationYearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

var degreeWords = []string{
	"phd", "doctorate", "master", "msc", "ma ", "bachelor", "bsc", "bs ", "ba ",
	"associate", "diploma", "certificate",
	"бакалавр", "магистр", "специалист", "аспирантура", "кандидат наук",
}

// parseEducationLine reads "Degree in Field, Institution, Year" style lines.
// A line is accepted when it names a degree or carries a graduation year.
func parseEducationLine(line string) (profiles.Education, bool) {
	clean := stripBullet(line)
	lower := strings.ToLower(clean)

	hasDegree := false
	for _, word := range degreeWords {
		if strings.Contains(lower, word) {
			hasDegree = true
			break
		}
	}
	year := 0
	if m := educationYearPattern.FindString(clean); m != "" {
		if t, err := time.Parse("2006", m); err == nil {
			year = t.Year()
		}
	}
	if !hasDegree && year == 0 {
		return profiles.Education{}, false
	}

	edu := profiles.Education{Year: year}
	parts := strings.Split(clean, ",")
	head := strings.TrimSpace(parts[0])
	if idx := strings.Index(strings.ToLower(head), " in "); idx > 0 {
		edu.Degree = strings.TrimSpace(head[:idx])
		edu.Field = strings.TrimSpace(head[idx+len(" in "):])
	} else {
		edu.Degree = head
	}
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" || educationYearPattern.MatchString(part) && len(part) <= 5 {
			continue
		}
		edu.Institution = part
		break
	}
	return edu, true
}

func parseLanguageLine(line string) []profiles.Language {
	var out []profiles.Language
	for _, part := range strings.Split(stripBullet(line), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lang := profiles.Language{Name: part}
		for _, sep := range []string{" - ", " – ", ": ", " ("} {
			if idx := strings.Index(part, sep); idx > 0 {
				lang.Name = strings.TrimSpace(part[:idx])
				lang.Level = strings.Trim(strings.TrimSpace(part[idx+len(sep):]), ")")
				break
			}
		}
		out = append(out, lang)
	}
	return out
}

func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "-•*·"))
}
