package domain

import (
	"strings"

	apperrors "careercompass/internal/platform/errors"
)

type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
	// ModeProfile is the legacy name-only onboarding.
	ModeProfile Mode = "profile"
)

func (m Mode) Toggle() Mode {
	if m == ModeRegister {
		return ModeLogin
	}
	return ModeRegister
}

// FailureMessage is shown when the backend rejects a submission without detail.
func (m Mode) FailureMessage() string {
	switch m {
	case ModeRegister:
		return "Registration failed"
	case ModeProfile:
		return "Error creating profile"
	default:
		return "Authentication failed"
	}
}

type Career struct {
	ID      string
	Label   string
	Icon    string
	Summary string
}

var Careers = []Career{
	{ID: "Data Scientist", Label: "Data Scientist", Icon: "📊", Summary: "Python, ML, Analytics"},
	{ID: "Frontend Dev", Label: "Frontend Developer", Icon: "🎨", Summary: "React, CSS, UI/UX"},
	{ID: "Backend Dev", Label: "Backend Developer", Icon: "⚙️", Summary: "API, Database, System Design"},
}

func IsCareer(id string) bool {
	for _, c := range Careers {
		if c.ID == id {
			return true
		}
	}
	return false
}

type Credentials struct {
	Name         string
	Email        string
	Password     string
	TargetCareer string
}

// Normalize trims every field except the password.
func (c Credentials) Normalize() Credentials {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.TargetCareer = strings.TrimSpace(c.TargetCareer)
	return c
}

// Validate checks the fields required by mode. Only presence is checked;
// the backend owns every other rule.
func (c Credentials) Validate(mode Mode) error {
	c = c.Normalize()
	if mode == ModeRegister || mode == ModeProfile {
		if c.Name == "" {
			return apperrors.Invalid("name")
		}
	}
	if mode == ModeLogin || mode == ModeRegister {
		if c.Email == "" {
			return apperrors.Invalid("email")
		}
		if strings.TrimSpace(c.Password) == "" {
			return apperrors.Invalid("password")
		}
	}
	if mode == ModeRegister || mode == ModeProfile {
		if !IsCareer(c.TargetCareer) {
			return apperrors.Invalid("target career")
		}
	}
	return nil
}

// Identity is what the backend returns for an authenticated student.
type Identity struct {
	StudentID    string
	Name         string
	TargetCareer string
}
