package out

import (
	"context"
	"fmt"

	"careercompass/internal/modules/auth/domain"
	authout "careercompass/internal/modules/auth/port/out"
	"careercompass/internal/platform/httpapi"
)

type identityResponse struct {
	ID           httpapi.FlexID `json:"id"`
	Name         string         `json:"name"`
	TargetCareer string         `json:"target_career"`
}

func (r identityResponse) identity() domain.Identity {
	return domain.Identity{StudentID: string(r.ID), Name: r.Name, TargetCareer: r.TargetCareer}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	TargetCareer string `json:"target_career"`
}

type profileRequest struct {
	Name              string  `json:"name"`
	TargetCareer      string  `json:"target_career"`
	CurrentDriftScore float64 `json:"current_drift_score"`
}

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) authout.Gateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	var resp identityResponse
	if err := g.client.Post(ctx, "/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return domain.Identity{}, fmt.Errorf("login: %w", err)
	}
	return resp.identity(), nil
}

func (g *HTTPGateway) Register(ctx context.Context, creds domain.Credentials) (domain.Identity, error) {
	req := registerRequest{Name: creds.Name, Email: creds.Email, Password: creds.Password, TargetCareer: creds.TargetCareer}
	var resp identityResponse
	if err := g.client.Post(ctx, "/register", req, &resp); err != nil {
		return domain.Identity{}, fmt.Errorf("register: %w", err)
	}
	return resp.identity(), nil
}

func (g *HTTPGateway) CreateProfile(ctx context.Context, name, targetCareer string) (domain.Identity, error) {
	var resp identityResponse
	if err := g.client.Post(ctx, "/students/", profileRequest{Name: name, TargetCareer: targetCareer}, &resp); err != nil {
		return domain.Identity{}, fmt.Errorf("create profile: %w", err)
	}
	return resp.identity(), nil
}
