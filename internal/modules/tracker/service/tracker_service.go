package service

import (
	"context"

	"careercompass/internal/modules/tracker/domain"
	trackerout "careercompass/internal/modules/tracker/port/out"
	"careercompass/internal/platform/clock"
)

type TrackerService struct {
	clock   clock.Clock
	gateway trackerout.Gateway
}

func NewTrackerService(clock clock.Clock, gateway trackerout.Gateway) *TrackerService {
	return &TrackerService{clock: clock, gateway: gateway}
}

func (s *TrackerService) Profile(ctx context.Context, studentID string) (domain.Profile, error) {
	return s.gateway.GetStudent(ctx, studentID)
}

func (s *TrackerService) Activities(ctx context.Context, studentID string) ([]domain.Activity, error) {
	activities, err := s.gateway.ListActivities(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []domain.Activity{}
	}
	return activities, nil
}

// Add validates before sending so a blank name never reaches the backend.
func (s *TrackerService) Add(ctx context.Context, studentID, name string, category domain.Category) (domain.Activity, error) {
	activity, err := domain.NewActivity(studentID, name, category)
	if err != nil {
		return domain.Activity{}, err
	}
	return s.gateway.CreateActivity(ctx, activity)
}

func (s *TrackerService) Analyze(ctx context.Context, targetCareer string, activities []domain.Activity) (domain.DriftResult, error) {
	result, err := s.gateway.PredictDrift(ctx, targetCareer, activities)
	if err != nil {
		return domain.DriftResult{}, err
	}
	result.AnalyzedAt = s.clock.Now()
	return result, nil
}
