package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeJobParser emits one untyped requirement per non-empty line.
type fakeJobParser struct {
	title string
	err   error
}

func (p *fakeJobParser) ParseJob(_ context.Context, text string) (ParsedJob, error) {
	if p.err != nil {
		return ParsedJob{}, p.err
	}
	parsed := ParsedJob{Title: p.title}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parsed.Requirements = append(parsed.Requirements, JobRequirement{Text: line})
	}
	return parsed, nil
}

// keywordClassify marks lines containing "must" mandatory skills and
// everything else preferred.
func keywordClassify(text, _ string) (RequirementType, ImportanceLevel, bool) {
	if strings.Contains(strings.ToLower(text), "must") {
		return TypeSkill, ImportanceMandatory, true
	}
	return TypeSkill, ImportancePreferred, false
}

func newTestService() *Service {
	return &Service{Repo: NewMemoryRepo(), Parser: &fakeJobParser{title: "Backend Engineer"}, Classify: keywordClassify}
}

func TestSaveParsesAndClassifies(t *testing.T) {
	svc := newTestService()

	job, err := svc.Save(context.Background(), "user-1", "Must know Go\nDocker is a plus", []string{"backend"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if job.ID == "" {
		t.Error("expected a generated ID")
	}
	if job.Title != "Backend Engineer" {
		t.Errorf("title = %q", job.Title)
	}
	if len(job.Requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(job.Requirements))
	}

	first := job.Requirements[0]
	if first.Importance != ImportanceMandatory || !first.Mandatory {
		t.Errorf("expected a mandatory requirement, got %+v", first)
	}
	second := job.Requirements[1]
	if second.Importance != ImportancePreferred || second.Mandatory {
		t.Errorf("expected a preferred requirement, got %+v", second)
	}

	stored, err := svc.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(stored.Tags) != 1 || stored.Tags[0] != "backend" {
		t.Errorf("tags not persisted: %+v", stored.Tags)
	}
}

func TestSaveValidatesInput(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Save(context.Background(), "", "text", nil); err == nil {
		t.Error("expected an error for missing user ID")
	}
	if _, err := svc.Save(context.Background(), "user-1", " ", nil); err == nil {
		t.Error("expected an error for empty posting text")
	}
}

func TestUpdateKeepsMandatoryConsistent(t *testing.T) {
	svc := newTestService()
	job, err := svc.Save(context.Background(), "user-1", "Must know Go", nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Editors may flip importance without touching the boolean.
	job.Requirements[0].Importance = ImportanceNiceToHave
	updated, err := svc.Update(context.Background(), job)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Requirements[0].Mandatory {
		t.Error("expected Mandatory to follow the downgraded importance")
	}
}

func TestSearchByKeywords(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Save(context.Background(), "user-1", "Must know Go", nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := svc.Save(context.Background(), "user-1", "Python and Django", nil); err != nil {
		t.Fatalf("Save: %v", err)
	}

	found, err := svc.SearchByKeywords(context.Background(), "user-1", []string{"django"})
	if err != nil {
		t.Fatalf("SearchByKeywords: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 match, got %d", len(found))
	}
	if !strings.Contains(found[0].Description, "Django") {
		t.Errorf("matched the wrong job: %q", found[0].Description)
	}

	none, err := svc.SearchByKeywords(context.Background(), "user-1", []string{"  "})
	if err != nil {
		t.Fatalf("SearchByKeywords: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches for blank keywords, got %d", len(none))
	}
}

func TestUpdateTags(t *testing.T) {
	svc := newTestService()
	job, err := svc.Save(context.Background(), "user-1", "Must know Go", []string{"old"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := svc.UpdateTags(context.Background(), job.ID, []string{"remote", "senior"}); err != nil {
		t.Fatalf("UpdateTags: %v", err)
	}
	stored, err := svc.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(stored.Tags) != 2 || stored.Tags[0] != "remote" {
		t.Errorf("tags = %+v", stored.Tags)
	}

	if err := svc.UpdateTags(context.Background(), "missing", []string{"x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateLastMatchScore(t *testing.T) {
	svc := newTestService()
	job, err := svc.Save(context.Background(), "user-1", "Must know Go", nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := svc.UpdateLastMatchScore(context.Background(), job.ID, 0.73); err != nil {
		t.Fatalf("UpdateLastMatchScore: %v", err)
	}
	stored, err := svc.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.LastMatchScore == nil || *stored.LastMatchScore != 0.73 {
		t.Errorf("last match score = %v", stored.LastMatchScore)
	}
}

func TestFindSimilarJobsRanksByOverlap(t *testing.T) {
	svc := newTestService()
	reference, err := svc.Save(context.Background(), "user-1", "Golang microservices experience required", []string{"backend", "golang"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	closest, err := svc.Save(context.Background(), "user-1", "Golang microservices and Kafka", []string{"backend", "golang"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	far, err := svc.Save(context.Background(), "user-1", "Golang scripting", []string{"tools"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := svc.Save(context.Background(), "user-1", "Ruby on Rails", []string{"frontend"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	similar, err := svc.FindSimilarJobs(context.Background(), reference.ID, 10)
	if err != nil {
		t.Fatalf("FindSimilarJobs: %v", err)
	}
	if len(similar) != 2 {
		t.Fatalf("expected 2 similar jobs, got %d", len(similar))
	}
	if similar[0].ID != closest.ID {
		t.Errorf("expected the closest job first, got %q", similar[0].ID)
	}
	if similar[1].ID != far.ID {
		t.Errorf("expected the weaker overlap second, got %q", similar[1].ID)
	}

	limited, err := svc.FindSimilarJobs(context.Background(), reference.ID, 1)
	if err != nil {
		t.Fatalf("FindSimilarJobs: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected the limit to apply, got %d results", len(limited))
	}
}
