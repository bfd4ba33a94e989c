package usecase

import (
	"context"

	"careercompass/internal/modules/session/domain"
	sessiondto "careercompass/internal/modules/session/dto"
	sessionin "careercompass/internal/modules/session/port/in"
	"careercompass/internal/modules/session/service"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Establish(ctx context.Context, input sessiondto.EstablishInput) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Establish(ctx, domain.Session{
		StudentID:    input.StudentID,
		StudentName:  input.StudentName,
		TargetCareer: input.TargetCareer,
	})
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Current(ctx context.Context) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Current(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Refresh(ctx context.Context, input sessiondto.RefreshInput) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Refresh(ctx, input.StudentID, input.StudentName, input.TargetCareer)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.svc.Logout(ctx)
}

func toOutput(session domain.Session) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		StudentID:    session.StudentID,
		StudentName:  session.StudentName,
		TargetCareer: session.TargetCareer,
	}
}
