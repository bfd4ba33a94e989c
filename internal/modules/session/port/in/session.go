package in

import (
	"context"

	"careercompass/internal/modules/session/dto"
)

type Usecase interface {
	Establish(ctx context.Context, input dto.EstablishInput) (dto.SessionOutput, error)
	Current(ctx context.Context) (dto.SessionOutput, error)
	Refresh(ctx context.Context, input dto.RefreshInput) (dto.SessionOutput, error)
	Logout(ctx context.Context) error
}
