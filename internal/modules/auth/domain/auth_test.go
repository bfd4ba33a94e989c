package domain_test

import (
	"errors"
	"strings"
	"testing"

	"careercompass/internal/modules/auth/domain"
	apperrors "careercompass/internal/platform/errors"
)

func TestValidateByMode(t *testing.T) {
	t.Parallel()
	full := domain.Credentials{Name: "Ada", Email: "ada@example.com", Password: "pw", TargetCareer: "Data Scientist"}
	cases := []struct {
		name  string
		mode  domain.Mode
		creds domain.Credentials
		field string
	}{
		{"login ok", domain.ModeLogin, domain.Credentials{Email: "a@b", Password: "x"}, ""},
		{"login ignores name and career", domain.ModeLogin, domain.Credentials{Email: "a@b", Password: "x", TargetCareer: "Chef"}, ""},
		{"login missing email", domain.ModeLogin, domain.Credentials{Email: "  ", Password: "x"}, "email"},
		{"login missing password", domain.ModeLogin, domain.Credentials{Email: "a@b", Password: " "}, "password"},
		{"register ok", domain.ModeRegister, full, ""},
		{"register missing name", domain.ModeRegister, domain.Credentials{Email: "a@b", Password: "x", TargetCareer: "Backend Dev"}, "name"},
		{"register missing career", domain.ModeRegister, domain.Credentials{Name: "Ada", Email: "a@b", Password: "x"}, "target career"},
		{"register unknown career", domain.ModeRegister, domain.Credentials{Name: "Ada", Email: "a@b", Password: "x", TargetCareer: "Chef"}, "target career"},
		{"profile ok", domain.ModeProfile, domain.Credentials{Name: "Ada", TargetCareer: "Frontend Dev"}, ""},
		{"profile missing name", domain.ModeProfile, domain.Credentials{TargetCareer: "Frontend Dev"}, "name"},
	}
	for _, tc := range cases {
		err := tc.creds.Validate(tc.mode)
		if tc.field == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if !errors.Is(err, apperrors.ErrInvalidInput) || !strings.Contains(err.Error(), tc.field) {
			t.Fatalf("%s: expected invalid %s, got %v", tc.name, tc.field, err)
		}
	}
}

func TestModeToggleAndFailureMessages(t *testing.T) {
	t.Parallel()
	if domain.ModeLogin.Toggle() != domain.ModeRegister || domain.ModeRegister.Toggle() != domain.ModeLogin {
		t.Fatalf("toggle must flip login and register")
	}
	if domain.ModeProfile.FailureMessage() != "Error creating profile" {
		t.Fatalf("unexpected profile fallback %q", domain.ModeProfile.FailureMessage())
	}
	if domain.ModeLogin.FailureMessage() == domain.ModeRegister.FailureMessage() {
		t.Fatalf("login and register fallbacks should differ")
	}
}

func TestCareerCatalogue(t *testing.T) {
	t.Parallel()
	if len(domain.Careers) != 3 {
		t.Fatalf("expected three careers, got %d", len(domain.Careers))
	}
	for _, c := range domain.Careers {
		if !domain.IsCareer(c.ID) || c.Label == "" || c.Summary == "" {
			t.Fatalf("incomplete career %+v", c)
		}
	}
	if domain.IsCareer("Art") {
		t.Fatalf("Art is an activity category, not a career")
	}
}
