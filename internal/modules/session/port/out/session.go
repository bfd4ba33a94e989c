package out

import (
	"context"

	"careercompass/internal/modules/session/domain"
)

// Store persists the session across restarts. Load returns
// apperrors.ErrNoSession when no student id is stored.
type Store interface {
	Save(ctx context.Context, session domain.Session) error
	Load(ctx context.Context) (domain.Session, error)
	Clear(ctx context.Context) error
}
