package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	sessionout "careercompass/internal/modules/session/adapter/out"
	sessiondto "careercompass/internal/modules/session/dto"
	sessionin "careercompass/internal/modules/session/port/in"
	sessionservice "careercompass/internal/modules/session/service"
	sessionusecase "careercompass/internal/modules/session/usecase"
	"careercompass/internal/modules/tracker/domain"
	trackerdto "careercompass/internal/modules/tracker/dto"
	trackerin "careercompass/internal/modules/tracker/port/in"
	"careercompass/internal/modules/tracker/service"
	"careercompass/internal/modules/tracker/usecase"
	"careercompass/internal/platform/clock"
	apperrors "careercompass/internal/platform/errors"
)

var analyzedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeGateway struct {
	profile    domain.Profile
	activities []domain.Activity
	drift      domain.DriftResult
	err        error

	calls       int
	created     []domain.Activity
	driftTarget string
	driftSent   []domain.Activity

	// onGetStudent runs while the profile request is in flight.
	onGetStudent func()
}

func (f *fakeGateway) GetStudent(_ context.Context, id string) (domain.Profile, error) {
	f.calls++
	if f.onGetStudent != nil {
		f.onGetStudent()
	}
	if f.err != nil {
		return domain.Profile{}, f.err
	}
	p := f.profile
	p.StudentID = id
	return p, nil
}

func (f *fakeGateway) ListActivities(context.Context, string) ([]domain.Activity, error) {
	f.calls++
	return f.activities, f.err
}

func (f *fakeGateway) CreateActivity(_ context.Context, a domain.Activity) (domain.Activity, error) {
	f.calls++
	if f.err != nil {
		return domain.Activity{}, f.err
	}
	f.created = append(f.created, a)
	a.ID = "101"
	a.Timestamp = analyzedAt
	return a, nil
}

func (f *fakeGateway) PredictDrift(_ context.Context, target string, activities []domain.Activity) (domain.DriftResult, error) {
	f.calls++
	f.driftTarget = target
	f.driftSent = activities
	return f.drift, f.err
}

func setup(t *testing.T, gateway *fakeGateway, withSession bool) (trackerin.Usecase, sessionin.Usecase) {
	t.Helper()
	store, err := sessionout.NewSQLiteLocalStore(filepath.Join(t.TempDir(), "cc.db"), clock.Fixed(analyzedAt))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(store))
	if withSession {
		if _, err := sessionUC.Establish(context.Background(), sessiondto.EstablishInput{StudentID: "5", StudentName: "Old Name", TargetCareer: "Frontend Dev"}); err != nil {
			t.Fatalf("establish: %v", err)
		}
	}
	return usecase.NewInteractor(service.NewTrackerService(clock.Fixed(analyzedAt), gateway), sessionUC), sessionUC
}

func TestLoadProfileRefreshesStoredSession(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{profile: domain.Profile{Name: "Ada", TargetCareer: "Data Scientist"}}
	uc, sessionUC := setup(t, gateway, true)

	profile, err := uc.LoadProfile(context.Background())
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.StudentID != "5" || profile.Name != "Ada" {
		t.Fatalf("unexpected profile %+v", profile)
	}
	stored, _ := sessionUC.Current(context.Background())
	if stored.StudentName != "Ada" || stored.TargetCareer != "Data Scientist" || stored.StudentID != "5" {
		t.Fatalf("session not refreshed: %+v", stored)
	}
}

func TestLoadProfileKeepsSessionReplacedDuringFetch(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{profile: domain.Profile{Name: "Ada", TargetCareer: "Data Scientist"}}
	uc, sessionUC := setup(t, gateway, true)
	ctx := context.Background()
	gateway.onGetStudent = func() {
		if err := sessionUC.Logout(ctx); err != nil {
			t.Errorf("logout: %v", err)
		}
		if _, err := sessionUC.Establish(ctx, sessiondto.EstablishInput{StudentID: "9", StudentName: "Bea", TargetCareer: "Backend Dev"}); err != nil {
			t.Errorf("establish: %v", err)
		}
	}

	if _, err := uc.LoadProfile(ctx); err != nil {
		t.Fatalf("load profile: %v", err)
	}
	stored, err := sessionUC.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	want := sessiondto.SessionOutput{StudentID: "9", StudentName: "Bea", TargetCareer: "Backend Dev"}
	if stored != want {
		t.Fatalf("stale profile overwrote new session: got %+v, want %+v", stored, want)
	}
}

func TestOperationsWithoutSessionIssueNoCalls(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{}
	uc, _ := setup(t, gateway, false)
	ctx := context.Background()

	if _, err := uc.LoadProfile(ctx); err != apperrors.ErrNoSession {
		t.Fatalf("expected no session, got %v", err)
	}
	if _, err := uc.ListActivities(ctx); err != apperrors.ErrNoSession {
		t.Fatalf("expected no session, got %v", err)
	}
	if _, err := uc.AddActivity(ctx, trackerdto.AddActivityInput{Name: "x", Category: "Other"}); err != apperrors.ErrNoSession {
		t.Fatalf("expected no session, got %v", err)
	}
	if gateway.calls != 0 {
		t.Fatalf("expected no backend calls, got %d", gateway.calls)
	}
}

func TestListActivitiesNeverReturnsNil(t *testing.T) {
	t.Parallel()
	uc, _ := setup(t, &fakeGateway{}, true)
	activities, err := uc.ListActivities(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if activities == nil || len(activities) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", activities)
	}
}

func TestAddActivity(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{}
	uc, _ := setup(t, gateway, true)
	ctx := context.Background()

	if _, err := uc.AddActivity(ctx, trackerdto.AddActivityInput{Name: "   ", Category: "Frontend Dev"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank name, got %v", err)
	}
	if gateway.calls != 0 {
		t.Fatalf("blank name must not reach the backend")
	}

	saved, err := uc.AddActivity(ctx, trackerdto.AddActivityInput{Name: "CSS Grid", Category: "frontend-dev"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if saved.ID != "101" || saved.Name != "CSS Grid" || saved.Category != "Frontend Dev" || saved.Type != "Learning" || saved.StudentID != "5" {
		t.Fatalf("unexpected saved activity %+v", saved)
	}
	if len(gateway.created) != 1 || gateway.created[0].Type != domain.TypeLearning {
		t.Fatalf("unexpected created payloads %+v", gateway.created)
	}

	gateway.err = errors.New("boom")
	if _, err := uc.AddActivity(ctx, trackerdto.AddActivityInput{Name: "Docker", Category: "Backend Dev"}); err == nil {
		t.Fatalf("expected backend error to propagate")
	}
}

func TestAnalyzeDriftUsesGivenCareerAndList(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{drift: domain.DriftResult{HasScore: true, OnTrackScore: 0.42, IsDrifting: true, Message: "Needs Attention"}}
	uc, _ := setup(t, gateway, true)

	out, err := uc.AnalyzeDrift(context.Background(), trackerdto.DriftInput{
		TargetCareer: "Data Scientist",
		Activities:   []trackerdto.ActivityOutput{{Name: "Sketching", Category: "Art"}},
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if out.Percent != "42%" || out.Message != "Needs Attention" || !out.IsDrifting || !out.AnalyzedAt.Equal(analyzedAt) {
		t.Fatalf("unexpected drift output %+v", out)
	}
	if gateway.driftTarget != "Data Scientist" || len(gateway.driftSent) != 1 || gateway.driftSent[0].Category != domain.CategoryArt {
		t.Fatalf("unexpected drift request %s %+v", gateway.driftTarget, gateway.driftSent)
	}
}

func TestAnalyzeDriftFallsBackToSessionCareer(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{drift: domain.DriftResult{Message: "Add activities to analyze."}}
	uc, _ := setup(t, gateway, true)

	out, err := uc.AnalyzeDrift(context.Background(), trackerdto.DriftInput{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if gateway.driftTarget != "Frontend Dev" || len(gateway.driftSent) != 0 {
		t.Fatalf("expected session career and empty list, got %s %+v", gateway.driftTarget, gateway.driftSent)
	}
	if out.HasScore {
		t.Fatalf("result without score must report HasScore=false")
	}
}

func TestCategoriesListsFiveChoices(t *testing.T) {
	t.Parallel()
	uc, _ := setup(t, &fakeGateway{}, false)
	cats := uc.Categories()
	if len(cats) != 5 || cats[3].Label != "Art (Irrelevant)" {
		t.Fatalf("unexpected categories %+v", cats)
	}
}
