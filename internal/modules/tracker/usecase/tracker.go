package usecase

import (
	"context"
	"fmt"

	sessiondto "careercompass/internal/modules/session/dto"
	sessionin "careercompass/internal/modules/session/port/in"
	"careercompass/internal/modules/tracker/domain"
	trackerdto "careercompass/internal/modules/tracker/dto"
	trackerin "careercompass/internal/modules/tracker/port/in"
	"careercompass/internal/modules/tracker/service"
)

type Interactor struct {
	svc     *service.TrackerService
	session sessionin.Usecase
}

func NewInteractor(svc *service.TrackerService, session sessionin.Usecase) trackerin.Usecase {
	return &Interactor{svc: svc, session: session}
}

// LoadProfile fetches the stored student's profile and writes the fresh
// name and career back into the session, unless another student signed in
// while the request was in flight.
func (i *Interactor) LoadProfile(ctx context.Context) (trackerdto.ProfileOutput, error) {
	current, err := i.session.Current(ctx)
	if err != nil {
		return trackerdto.ProfileOutput{}, err
	}
	profile, err := i.svc.Profile(ctx, current.StudentID)
	if err != nil {
		return trackerdto.ProfileOutput{}, err
	}
	if _, err := i.session.Refresh(ctx, sessiondto.RefreshInput{StudentID: current.StudentID, StudentName: profile.Name, TargetCareer: profile.TargetCareer}); err != nil {
		return trackerdto.ProfileOutput{}, fmt.Errorf("refresh session: %w", err)
	}
	if profile.StudentID == "" {
		profile.StudentID = current.StudentID
	}
	return trackerdto.ProfileOutput{StudentID: profile.StudentID, Name: profile.Name, TargetCareer: profile.TargetCareer}, nil
}

func (i *Interactor) ListActivities(ctx context.Context) ([]trackerdto.ActivityOutput, error) {
	current, err := i.session.Current(ctx)
	if err != nil {
		return nil, err
	}
	activities, err := i.svc.Activities(ctx, current.StudentID)
	if err != nil {
		return nil, err
	}
	out := make([]trackerdto.ActivityOutput, len(activities))
	for idx, a := range activities {
		out[idx] = toActivityOutput(a)
	}
	return out, nil
}

func (i *Interactor) AddActivity(ctx context.Context, input trackerdto.AddActivityInput) (trackerdto.ActivityOutput, error) {
	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return trackerdto.ActivityOutput{}, err
	}
	current, err := i.session.Current(ctx)
	if err != nil {
		return trackerdto.ActivityOutput{}, err
	}
	saved, err := i.svc.Add(ctx, current.StudentID, input.Name, category)
	if err != nil {
		return trackerdto.ActivityOutput{}, err
	}
	return toActivityOutput(saved), nil
}

func (i *Interactor) AnalyzeDrift(ctx context.Context, input trackerdto.DriftInput) (trackerdto.DriftOutput, error) {
	target := input.TargetCareer
	if target == "" {
		current, err := i.session.Current(ctx)
		if err != nil {
			return trackerdto.DriftOutput{}, err
		}
		target = current.TargetCareer
	}
	activities := make([]domain.Activity, len(input.Activities))
	for idx, a := range input.Activities {
		activities[idx] = domain.Activity{
			ID:        a.ID,
			StudentID: a.StudentID,
			Name:      a.Name,
			Category:  domain.Category(a.Category),
			Type:      a.Type,
			Timestamp: a.Timestamp,
		}
	}
	result, err := i.svc.Analyze(ctx, target, activities)
	if err != nil {
		return trackerdto.DriftOutput{}, err
	}
	return trackerdto.DriftOutput{
		HasScore:      result.HasScore,
		OnTrackScore:  result.OnTrackScore,
		Percent:       result.Percent(),
		DriftScore:    result.DriftScore,
		IsDrifting:    result.IsDrifting,
		RelevantRatio: result.RelevantRatio,
		Status:        result.Status,
		Message:       result.Message,
		Suggestions:   result.Suggestions,
		Error:         result.Error,
		AnalyzedAt:    result.AnalyzedAt,
	}, nil
}

func (i *Interactor) Categories() []trackerdto.CategoryOutput {
	out := make([]trackerdto.CategoryOutput, len(domain.Categories))
	for idx, c := range domain.Categories {
		out[idx] = trackerdto.CategoryOutput{ID: string(c), Label: c.Label()}
	}
	return out
}

func toActivityOutput(a domain.Activity) trackerdto.ActivityOutput {
	return trackerdto.ActivityOutput{
		ID:        a.ID,
		StudentID: a.StudentID,
		Name:      a.Name,
		Category:  string(a.Category),
		Type:      a.Type,
		Timestamp: a.Timestamp,
	}
}
