package usecase

import (
	"context"

	"careercompass/internal/modules/auth/domain"
	authdto "careercompass/internal/modules/auth/dto"
	authin "careercompass/internal/modules/auth/port/in"
	"careercompass/internal/modules/auth/service"
	sessiondto "careercompass/internal/modules/session/dto"
	sessionin "careercompass/internal/modules/session/port/in"
)

type Interactor struct {
	svc     *service.AuthService
	session sessionin.Usecase
}

func NewInteractor(svc *service.AuthService, session sessionin.Usecase) authin.Usecase {
	return &Interactor{svc: svc, session: session}
}

func (i *Interactor) Login(ctx context.Context, input authdto.LoginInput) (authdto.AuthOutput, error) {
	return i.submit(ctx, domain.ModeLogin, domain.Credentials{Email: input.Email, Password: input.Password})
}

func (i *Interactor) Register(ctx context.Context, input authdto.RegisterInput) (authdto.AuthOutput, error) {
	return i.submit(ctx, domain.ModeRegister, domain.Credentials{
		Name:         input.Name,
		Email:        input.Email,
		Password:     input.Password,
		TargetCareer: input.TargetCareer,
	})
}

func (i *Interactor) CreateProfile(ctx context.Context, input authdto.CreateProfileInput) (authdto.AuthOutput, error) {
	return i.submit(ctx, domain.ModeProfile, domain.Credentials{Name: input.Name, TargetCareer: input.TargetCareer})
}

func (i *Interactor) Careers() []authdto.CareerOutput {
	out := make([]authdto.CareerOutput, len(domain.Careers))
	for idx, c := range domain.Careers {
		out[idx] = authdto.CareerOutput{ID: c.ID, Label: c.Label, Icon: c.Icon, Summary: c.Summary}
	}
	return out
}

// submit stores the session only after the backend accepted the request.
func (i *Interactor) submit(ctx context.Context, mode domain.Mode, creds domain.Credentials) (authdto.AuthOutput, error) {
	identity, err := i.svc.Submit(ctx, mode, creds)
	if err != nil {
		return authdto.AuthOutput{}, err
	}
	stored, err := i.session.Establish(ctx, sessiondto.EstablishInput{
		StudentID:    identity.StudentID,
		StudentName:  identity.Name,
		TargetCareer: identity.TargetCareer,
	})
	if err != nil {
		return authdto.AuthOutput{}, err
	}
	return authdto.AuthOutput{StudentID: stored.StudentID, Name: stored.StudentName, TargetCareer: stored.TargetCareer}, nil
}
