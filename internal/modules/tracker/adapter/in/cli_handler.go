package in

import (
	"context"

	trackerdto "careercompass/internal/modules/tracker/dto"
	trackerin "careercompass/internal/modules/tracker/port/in"
)

type CLIHandler struct {
	usecase trackerin.Usecase
}

func NewCLIHandler(usecase trackerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) LoadProfile(ctx context.Context) (trackerdto.ProfileOutput, error) {
	return h.usecase.LoadProfile(ctx)
}

func (h CLIHandler) ListActivities(ctx context.Context) ([]trackerdto.ActivityOutput, error) {
	return h.usecase.ListActivities(ctx)
}

func (h CLIHandler) AddActivity(ctx context.Context, name, category string) (trackerdto.ActivityOutput, error) {
	return h.usecase.AddActivity(ctx, trackerdto.AddActivityInput{Name: name, Category: category})
}

func (h CLIHandler) AnalyzeDrift(ctx context.Context, targetCareer string, activities []trackerdto.ActivityOutput) (trackerdto.DriftOutput, error) {
	return h.usecase.AnalyzeDrift(ctx, trackerdto.DriftInput{TargetCareer: targetCareer, Activities: activities})
}

func (h CLIHandler) Categories() []trackerdto.CategoryOutput {
	return h.usecase.Categories()
}
