package recommendations

import (
	"context"
	"errors"
	"testing"

	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/matching"
)

type stubMatcher struct {
	detailed matching.DetailedMatch
	err      error
}

func (m *stubMatcher) GetDetailedAnalysis(ctx context.Context, profileID, jobID string) (matching.DetailedMatch, error) {
	return m.detailed, m.err
}

func newTestService(detailed matching.DetailedMatch) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	return &Service{Repo: repo, Matcher: &stubMatcher{detailed: detailed}}, repo
}

func TestGenerateStampsAndPersists(t *testing.T) {
	detailed := matching.DetailedMatch{
		PerRequirement: []matching.RequirementAssessment{
			assessment("Go", jobs.TypeSkill, jobs.ImportanceMandatory, 0, 3),
			assessment("Docker", jobs.TypeSkill, jobs.ImportancePreferred, 0.4, 2),
		},
	}
	svc, repo := newTestService(detailed)

	items, err := svc.Generate(context.Background(), "p1", "j1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(items))
	}
	for _, item := range items {
		if item.ID == "" {
			t.Error("expected a generated ID")
		}
		if item.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be stamped")
		}
	}
	if items[0].ID == items[1].ID {
		t.Error("expected unique IDs")
	}

	stored, err := repo.ListByProfile(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ListByProfile: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("expected 2 persisted recommendations, got %d", len(stored))
	}
}

func TestGenerateValidatesInput(t *testing.T) {
	svc, _ := newTestService(matching.DetailedMatch{})
	if _, err := svc.Generate(context.Background(), "", "j1"); err == nil {
		t.Error("expected an error for missing profile ID")
	}
	if _, err := svc.Generate(context.Background(), "p1", " "); err == nil {
		t.Error("expected an error for missing job ID")
	}
}

func TestGeneratePropagatesMatcherError(t *testing.T) {
	wantErr := errors.New("analysis failed")
	svc := &Service{Repo: NewMemoryRepo(), Matcher: &stubMatcher{err: wantErr}}
	if _, err := svc.Generate(context.Background(), "p1", "j1"); !errors.Is(err, wantErr) {
		t.Errorf("expected matcher error, got %v", err)
	}
}

func TestListFiltersByTypeAndPriority(t *testing.T) {
	detailed := matching.DetailedMatch{
		PerRequirement: []matching.RequirementAssessment{
			assessment("Go", jobs.TypeSkill, jobs.ImportanceMandatory, 0, 3),
			assessment("Lead a team", jobs.TypeExperience, jobs.ImportancePreferred, 0.2, 2),
		},
	}
	svc, _ := newTestService(detailed)
	if _, err := svc.Generate(context.Background(), "p1", "j1"); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	byType, err := svc.ListByType(context.Background(), "p1", TypeAddSkill)
	if err != nil {
		t.Fatalf("ListByType: %v", err)
	}
	if len(byType) != 1 || byType[0].Type != TypeAddSkill {
		t.Errorf("expected one addSkill recommendation, got %+v", byType)
	}

	byPriority, err := svc.ListByPriority(context.Background(), "p1", PriorityMedium)
	if err != nil {
		t.Fatalf("ListByPriority: %v", err)
	}
	if len(byPriority) != 1 || byPriority[0].Priority != PriorityMedium {
		t.Errorf("expected one medium recommendation, got %+v", byPriority)
	}

	other, err := svc.ListByType(context.Background(), "someone-else", TypeAddSkill)
	if err != nil {
		t.Fatalf("ListByType: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no recommendations for another profile, got %d", len(other))
	}
}

func TestMarkCompletedSetsTerminalState(t *testing.T) {
	detailed := matching.DetailedMatch{
		PerRequirement: []matching.RequirementAssessment{
			assessment("Go", jobs.TypeSkill, jobs.ImportanceMandatory, 0, 3),
		},
	}
	svc, _ := newTestService(detailed)
	items, err := svc.Generate(context.Background(), "p1", "j1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	done, err := svc.MarkCompleted(context.Background(), items[0].ID)
	if err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if done.Status != StatusCompleted {
		t.Errorf("status = %q, want %q", done.Status, StatusCompleted)
	}
	if done.ResolvedAt == nil {
		t.Error("expected ResolvedAt to be set")
	}

	// Terminal states cannot transition again.
	if _, err := svc.MarkCompleted(context.Background(), items[0].ID); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation on re-completion, got %v", err)
	}
	if _, err := svc.MarkRejected(context.Background(), items[0].ID, "changed my mind"); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation on rejecting a completed item, got %v", err)
	}
}

func TestMarkRejectedRequiresReason(t *testing.T) {
	detailed := matching.DetailedMatch{
		PerRequirement: []matching.RequirementAssessment{
			assessment("Go", jobs.TypeSkill, jobs.ImportanceMandatory, 0, 3),
		},
	}
	svc, _ := newTestService(detailed)
	items, err := svc.Generate(context.Background(), "p1", "j1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := svc.MarkRejected(context.Background(), items[0].ID, "  "); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("expected ErrInvalidOperation for a blank reason, got %v", err)
	}

	rejected, err := svc.MarkRejected(context.Background(), items[0].ID, "not relevant to my goals")
	if err != nil {
		t.Fatalf("MarkRejected: %v", err)
	}
	if rejected.Status != StatusRejected {
		t.Errorf("status = %q, want %q", rejected.Status, StatusRejected)
	}
	if rejected.RejectionReason != "not relevant to my goals" {
		t.Errorf("reason = %q", rejected.RejectionReason)
	}
	if rejected.ResolvedAt == nil {
		t.Error("expected ResolvedAt to be set")
	}
}

func TestResolveUnknownRecommendation(t *testing.T) {
	svc, _ := newTestService(matching.DetailedMatch{})
	if _, err := svc.MarkCompleted(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerateWithOptionsFilters(t *testing.T) {
	detailed := matching.DetailedMatch{
		PerRequirement: []matching.RequirementAssessment{
			assessment("Go", jobs.TypeSkill, jobs.ImportanceMandatory, 0, 3),
			assessment("5 years backend", jobs.TypeExperience, jobs.ImportancePreferred, 0.3, 2),
			assessment("AWS certification", jobs.TypeEducation, jobs.ImportanceNiceToHave, 0.2, 1),
		},
	}

	t.Run("by type", func(t *testing.T) {
		svc, repo := newTestService(detailed)
		items, err := svc.GenerateWithOptions(context.Background(), "p1", "j1",
			GenerateOptions{Types: []RecommendationType{TypeAddSkill}})
		if err != nil {
			t.Fatalf("GenerateWithOptions: %v", err)
		}
		if len(items) != 1 || items[0].Type != TypeAddSkill {
			t.Fatalf("items = %+v, want one addSkill", items)
		}
		stored, err := repo.ListByProfile(context.Background(), "p1")
		if err != nil {
			t.Fatalf("ListByProfile: %v", err)
		}
		if len(stored) != 1 {
			t.Errorf("expected only the filtered recommendation persisted, got %d", len(stored))
		}
	})

	t.Run("by priority with limit", func(t *testing.T) {
		svc, _ := newTestService(detailed)
		items, err := svc.GenerateWithOptions(context.Background(), "p1", "j1",
			GenerateOptions{Priorities: []Priority{PriorityHigh, PriorityMedium}, Limit: 1})
		if err != nil {
			t.Fatalf("GenerateWithOptions: %v", err)
		}
		if len(items) != 1 || items[0].Priority != PriorityHigh {
			t.Fatalf("items = %+v, want the single high-priority recommendation", items)
		}
	})

	t.Run("zero options keep everything", func(t *testing.T) {
		svc, _ := newTestService(detailed)
		items, err := svc.GenerateWithOptions(context.Background(), "p1", "j1", GenerateOptions{})
		if err != nil {
			t.Fatalf("GenerateWithOptions: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected all 3 recommendations, got %d", len(items))
		}
	})
}
