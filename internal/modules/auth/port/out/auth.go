package out

import (
	"context"

	"careercompass/internal/modules/auth/domain"
)

// Gateway is the backend side of onboarding.
type Gateway interface {
	Login(ctx context.Context, email, password string) (domain.Identity, error)
	Register(ctx context.Context, creds domain.Credentials) (domain.Identity, error)
	CreateProfile(ctx context.Context, name, targetCareer string) (domain.Identity, error)
}
