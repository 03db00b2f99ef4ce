package parser

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"jobmatch-backend/internal/jobs"
)

// JobPosting parses posting text into structured job data.
// It satisfies jobs.JobParser. Requirements are extracted with empty type
// and importance; classification happens downstream.
type JobPosting struct{}

// NewJobPosting constructs a job posting parser.
func NewJobPosting() *JobPosting {
	return &JobPosting{}
}

type jobSection string

const (
	jobSectionNone             jobSection = ""
	jobSectionDescription      jobSection = "description"
	jobSectionRequirements     jobSection = "requirements"
	jobSectionResponsibilities jobSection = "responsibilities"
	jobSectionBenefits         jobSection = "benefits"
)

var jobSectionHeaders = map[jobSection][]string{
	jobSectionDescription:      {"description", "about the role", "about us", "описание", "о компании"},
	jobSectionRequirements:     {"requirements", "qualifications", "what we expect", "требования", "ожидания"},
	jobSectionResponsibilities: {"responsibilities", "duties", "what you will do", "обязанности", "задачи"},
	jobSectionBenefits:         {"benefits", "perks", "what we offer", "условия", "мы предлагаем"},
}

// ParseJob reads the posting head (title, company, location, salary) and then
// splits the body into sections, keeping one requirement per bullet line.
func (p *JobPosting) ParseJob(_ context.Context, text string) (jobs.ParsedJob, error) {
	var parsed jobs.ParsedJob

	current := jobSectionNone
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if section, ok := matchJobHeader(line); ok {
			current = section
			continue
		}

		if current == jobSectionNone {
			p.parseHeadLine(&parsed, line)
			continue
		}
		if parsed.Salary == nil {
			if salary, ok := parseSalary(line); ok {
				parsed.Salary = &salary
			}
		}

		switch current {
		case jobSectionRequirements:
			parsed.Requirements = append(parsed.Requirements, jobs.JobRequirement{Text: stripBullet(line)})
		case jobSectionResponsibilities:
			parsed.Responsibilities = append(parsed.Responsibilities, stripBullet(line))
		case jobSectionBenefits:
			parsed.Benefits = append(parsed.Benefits, stripBullet(line))
		}
	}
	return parsed, nil
}

func matchJobHeader(line string) (jobSection, bool) {
	normalized := strings.ToLower(strings.TrimRight(line, ":"))
	for section, headers := range jobSectionHeaders {
		for _, header := range headers {
			if normalized == header {
				return section, true
			}
		}
	}
	return jobSectionNone, false
}

var locationPrefixes = []string{"location:", "город:", "локация:"}
var companyPrefixes = []string{"company:", "компания:"}

// parseHeadLine fills title, company and location from the lines before the
// first section header. The first line is the title; "Title at Company" is
// split when present.
func (p *JobPosting) parseHeadLine(parsed *jobs.ParsedJob, line string) {
	lower := strings.ToLower(line)
	for _, prefix := range locationPrefixes {
		if strings.HasPrefix(lower, prefix) {
			parsed.Location = strings.TrimSpace(line[len(prefix):])
			return
		}
	}
	for _, prefix := range companyPrefixes {
		if strings.HasPrefix(lower, prefix) {
			parsed.Company = strings.TrimSpace(line[len(prefix):])
			return
		}
	}
	if salary, ok := parseSalary(line); ok && parsed.Salary == nil {
		parsed.Salary = &salary
		return
	}

	if parsed.Title == "" {
		title := line
		for _, sep := range []string{" at ", " @ "} {
			if idx := strings.Index(line, sep); idx > 0 {
				title = strings.TrimSpace(line[:idx])
				parsed.Company = strings.TrimSpace(line[idx+len(sep):])
				break
			}
		}
		parsed.Title = title
		return
	}
	if parsed.Company == "" {
		parsed.Company = line
	}
}

// salaryPattern matches "$120,000 - $150,000", "120000-150000 USD" and
// "от 200 000 до 300 000 руб" style ranges.
var salaryPattern = regexp.MustCompile(
	`(?i)(?:от\s+)?([$€£]?)\s?(\d{1,3}(?:[ ,]\d{3})+|\d{4,7})\s*(?:[-–—]|до)\s*[$€£]?\s?(\d{1,3}(?:[ ,]\d{3})+|\d{4,7})\s*([a-zа-я.]{0,6})`,
)

var currencySymbols = map[string]string{"$": "USD", "€": "EUR", "£": "GBP"}

func parseSalary(line string) (jobs.Salary, bool) {
	m := salaryPattern.FindStringSubmatch(line)
	if m == nil {
		return jobs.Salary{}, false
	}
	minAmount, err1 := parseAmount(m[2])
	maxAmount, err2 := parseAmount(m[3])
	if err1 != nil || err2 != nil || minAmount > maxAmount {
		return jobs.Salary{}, false
	}

	salary := jobs.Salary{Min: minAmount, Max: maxAmount}
	if currency, ok := currencySymbols[m[1]]; ok {
		salary.Currency = currency
	} else if suffix := strings.ToLower(strings.Trim(m[4], ".")); suffix != "" {
		switch suffix {
		case "usd":
			salary.Currency = "USD"
		case "eur":
			salary.Currency = "EUR"
		case "руб", "рублей", "rub":
			salary.Currency = "RUB"
		}
	}
	return salary, true
}

func parseAmount(s string) (int, error) {
	s = strings.NewReplacer(" ", "", ",", "").Replace(s)
	return strconv.Atoi(s)
}
