package service

import (
	"context"
	"fmt"

	"careercompass/internal/modules/auth/domain"
	authout "careercompass/internal/modules/auth/port/out"
)

type AuthService struct {
	gateway authout.Gateway
}

func NewAuthService(gateway authout.Gateway) *AuthService {
	return &AuthService{gateway: gateway}
}

// Submit validates creds for mode and sends exactly one request.
func (s *AuthService) Submit(ctx context.Context, mode domain.Mode, creds domain.Credentials) (domain.Identity, error) {
	if err := creds.Validate(mode); err != nil {
		return domain.Identity{}, err
	}
	creds = creds.Normalize()
	switch mode {
	case domain.ModeLogin:
		return s.gateway.Login(ctx, creds.Email, creds.Password)
	case domain.ModeRegister:
		return s.gateway.Register(ctx, creds)
	case domain.ModeProfile:
		return s.gateway.CreateProfile(ctx, creds.Name, creds.TargetCareer)
	}
	return domain.Identity{}, fmt.Errorf("unknown auth mode %q", mode)
}
