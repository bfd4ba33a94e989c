package out

import (
	"context"

	"careercompass/internal/modules/tracker/domain"
)

// Gateway is the backend side of the dashboard.
type Gateway interface {
	GetStudent(ctx context.Context, studentID string) (domain.Profile, error)
	ListActivities(ctx context.Context, studentID string) ([]domain.Activity, error)
	CreateActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	PredictDrift(ctx context.Context, targetCareer string, activities []domain.Activity) (domain.DriftResult, error)
}
