package in

import (
	"context"

	authdto "careercompass/internal/modules/auth/dto"
	authin "careercompass/internal/modules/auth/port/in"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (authdto.AuthOutput, error) {
	return h.usecase.Login(ctx, authdto.LoginInput{Email: email, Password: password})
}

func (h CLIHandler) Register(ctx context.Context, name, email, password, career string) (authdto.AuthOutput, error) {
	return h.usecase.Register(ctx, authdto.RegisterInput{Name: name, Email: email, Password: password, TargetCareer: career})
}

func (h CLIHandler) CreateProfile(ctx context.Context, name, career string) (authdto.AuthOutput, error) {
	return h.usecase.CreateProfile(ctx, authdto.CreateProfileInput{Name: name, TargetCareer: career})
}

func (h CLIHandler) Careers() []authdto.CareerOutput {
	return h.usecase.Careers()
}
