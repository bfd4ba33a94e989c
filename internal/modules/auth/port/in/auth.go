package in

import (
	"context"

	"careercompass/internal/modules/auth/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.AuthOutput, error)
	Register(ctx context.Context, input dto.RegisterInput) (dto.AuthOutput, error)
	CreateProfile(ctx context.Context, input dto.CreateProfileInput) (dto.AuthOutput, error)
	Careers() []dto.CareerOutput
}
