package in

import (
	"context"

	"careercompass/internal/modules/tracker/dto"
)

type Usecase interface {
	LoadProfile(ctx context.Context) (dto.ProfileOutput, error)
	ListActivities(ctx context.Context) ([]dto.ActivityOutput, error)
	AddActivity(ctx context.Context, input dto.AddActivityInput) (dto.ActivityOutput, error)
	AnalyzeDrift(ctx context.Context, input dto.DriftInput) (dto.DriftOutput, error)
	Categories() []dto.CategoryOutput
}
