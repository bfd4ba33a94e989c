package service

import (
	"context"
	"strings"

	"careercompass/internal/modules/session/domain"
	sessionout "careercompass/internal/modules/session/port/out"
	apperrors "careercompass/internal/platform/errors"
)

type SessionService struct {
	store sessionout.Store
}

func NewSessionService(store sessionout.Store) *SessionService {
	return &SessionService{store: store}
}

func (s *SessionService) Establish(ctx context.Context, session domain.Session) (domain.Session, error) {
	session.StudentID = strings.TrimSpace(session.StudentID)
	if !session.Valid() {
		return domain.Session{}, apperrors.Invalid("student id")
	}
	if err := s.store.Save(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *SessionService) Current(ctx context.Context) (domain.Session, error) {
	return s.store.Load(ctx)
}

// Refresh overwrites the stored name and career with non-empty values,
// keeping the student id. A non-empty studentID that no longer matches the
// stored session leaves the store untouched.
func (s *SessionService) Refresh(ctx context.Context, studentID, name, career string) (domain.Session, error) {
	current, err := s.store.Load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	if id := strings.TrimSpace(studentID); id != "" && id != current.StudentID {
		return current, nil
	}
	if name != "" {
		current.StudentName = name
	}
	if career != "" {
		current.TargetCareer = career
	}
	if err := s.store.Save(ctx, current); err != nil {
		return domain.Session{}, err
	}
	return current, nil
}

func (s *SessionService) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}
