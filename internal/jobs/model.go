package jobs

import "time"

// RequirementType categorizes what a job requirement asks for.
type RequirementType string

const (
	TypeSkill      RequirementType = "skill"
	TypeExperience RequirementType = "experience"
	TypeEducation  RequirementType = "education"
	TypeSoftSkill  RequirementType = "softSkill"
	TypeOther      RequirementType = "other"
)

// ImportanceLevel grades how strongly a requirement is stated.
type ImportanceLevel string

const (
	ImportanceMandatory  ImportanceLevel = "mandatory"
	ImportancePreferred  ImportanceLevel = "preferred"
	ImportanceNiceToHave ImportanceLevel = "niceToHave"
)

// JobRequirement is one extracted requirement. Mandatory mirrors
// Importance == mandatory and is the authoritative flag for scoring
// penalties regardless of how importance is displayed.
type JobRequirement struct {
	Text       string          `json:"text"`
	Type       RequirementType `json:"type"`
	Importance ImportanceLevel `json:"importance"`
	Mandatory  bool            `json:"mandatory"`
}

// Salary is an extracted salary range.
type Salary struct {
	Min      int    `json:"min,omitempty"`
	Max      int    `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// Job is a saved job posting with its structured requirements.
type Job struct {
	ID               string           `json:"id"`
	UserID           string           `json:"userId"`
	Title            string           `json:"title"`
	Company          string           `json:"company"`
	Location         string           `json:"location,omitempty"`
	Description      string           `json:"description,omitempty"`
	Requirements     []JobRequirement `json:"requirements"`
	Responsibilities []string         `json:"responsibilities,omitempty"`
	Benefits         []string         `json:"benefits,omitempty"`
	Tags             []string         `json:"tags,omitempty"`
	Salary           *Salary          `json:"salary,omitempty"`
	LastMatchScore   *float64         `json:"lastMatchScore,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// ParsedJob is structured data produced by the job-posting parser collaborator.
type ParsedJob struct {
	Title            string
	Company          string
	Location         string
	Requirements     []JobRequirement
	Responsibilities []string
	Benefits         []string
	Salary           *Salary
}
