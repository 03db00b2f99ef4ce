package profiles

import "time"

// ProficiencyLevel is a self-reported skill level.
type ProficiencyLevel string

const (
	ProficiencyBeginner     ProficiencyLevel = "beginner"
	ProficiencyIntermediate ProficiencyLevel = "intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "advanced"
	ProficiencyExpert       ProficiencyLevel = "expert"
)

// Skill is a single named skill extracted from a resume.
type Skill struct {
	Name        string           `json:"name"`
	Proficiency ProficiencyLevel `json:"proficiencyLevel"`
	Category    string           `json:"category,omitempty"`
}

// WorkExperience is one position in the candidate's work history.
// EndDate is nil for a current position.
type WorkExperience struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Education is one degree or certificate.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Year        int    `json:"year,omitempty"`
}

// Language is a spoken language with its level.
type Language struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Profile is the structured candidate profile. Version increases on every
// content update; superseded versions are kept as immutable snapshots.
type Profile struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	Version        int              `json:"version"`
	ResumeText     string           `json:"resumeText,omitempty"`
	Summary        string           `json:"summary,omitempty"`
	Skills         []Skill          `json:"skills"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Languages      []Language       `json:"languages,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// ProfileVersion is a snapshot of a profile at a given version number.
type ProfileVersion struct {
	ProfileID string    `json:"profileId"`
	Version   int       `json:"version"`
	Snapshot  Profile   `json:"snapshot"`
	CreatedAt time.Time `json:"createdAt"`
}

// ParsedResume is structured data produced by the resume parser collaborator.
type ParsedResume struct {
	Summary        string
	Skills         []Skill
	WorkExperience []WorkExperience
	Education      []Education
	Languages      []Language
}
