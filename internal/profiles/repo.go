package profiles

import "context"

// Repo defines persistence operations for profiles and their version history.
type Repo interface {
	Create(ctx context.Context, profile Profile) error
	GetByID(ctx context.Context, profileID string) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	Update(ctx context.Context, profile Profile) error
	Delete(ctx context.Context, profileID string) error
	FindBySkill(ctx context.Context, skillName string) ([]Profile, error)
	SaveVersion(ctx context.Context, version ProfileVersion) error
	GetHistory(ctx context.Context, profileID string) ([]ProfileVersion, error)
}

// ResumeParser turns raw resume text into structured profile data. Parsing
// is an external collaborator; the profiles service only consumes its output.
type ResumeParser interface {
	ParseResume(ctx context.Context, text string) (ParsedResume, error)
}
