package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"

	authout "careercompass/internal/modules/auth/adapter/out"
	authdto "careercompass/internal/modules/auth/dto"
	authin "careercompass/internal/modules/auth/port/in"
	authservice "careercompass/internal/modules/auth/service"
	"careercompass/internal/modules/auth/usecase"
	sessionout "careercompass/internal/modules/session/adapter/out"
	sessiondto "careercompass/internal/modules/session/dto"
	sessionin "careercompass/internal/modules/session/port/in"
	sessionservice "careercompass/internal/modules/session/service"
	sessionusecase "careercompass/internal/modules/session/usecase"
	"careercompass/internal/platform/clock"
	apperrors "careercompass/internal/platform/errors"
	"careercompass/internal/platform/httpapi"
)

var fixedNow = clock.Fixed(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

type fakeBackend struct {
	calls atomic.Int32

	mu       sync.Mutex
	lastBody map[string]any
}

func (b *fakeBackend) record(req *http.Request) map[string]any {
	b.calls.Add(1)
	body := map[string]any{}
	_ = json.NewDecoder(req.Body).Decode(&body)
	b.mu.Lock()
	b.lastBody = body
	b.mu.Unlock()
	return body
}

func (b *fakeBackend) body() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastBody
}

func (b *fakeBackend) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/register", func(w http.ResponseWriter, req *http.Request) {
		body := b.record(req)
		if body["email"] == "taken@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"Email already registered"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id": 17, "name": "Ada Server", "target_career": "Backend Dev", "email": "ada@example.com"}`))
	}).Methods(http.MethodPost)
	r.HandleFunc("/login", func(w http.ResponseWriter, req *http.Request) {
		body := b.record(req)
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id": 4, "name": "Lin", "target_career": "Frontend Dev"}`))
	}).Methods(http.MethodPost)
	r.HandleFunc("/students/", func(w http.ResponseWriter, req *http.Request) {
		b.record(req)
		_, _ = w.Write([]byte(`{"id": 9, "name": "Sam", "target_career": "Data Scientist", "current_drift_score": 0}`))
	}).Methods(http.MethodPost)
	return r
}

func setup(t *testing.T, baseURL string) (authin.Usecase, sessionin.Usecase) {
	t.Helper()
	store, err := sessionout.NewSQLiteLocalStore(filepath.Join(t.TempDir(), "cc.db"), fixedNow)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(store))
	gateway := authout.NewHTTPGateway(httpapi.New(baseURL, 0, nil))
	return usecase.NewInteractor(authservice.NewAuthService(gateway), sessionUC), sessionUC
}

func newBackend(t *testing.T) (*fakeBackend, string) {
	t.Helper()
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.router())
	t.Cleanup(srv.Close)
	return backend, srv.URL
}

func TestRegisterStoresExactlyTheResponseIdentity(t *testing.T) {
	t.Parallel()
	backend, url := newBackend(t)
	uc, sessionUC := setup(t, url)

	out, err := uc.Register(context.Background(), authdto.RegisterInput{
		Name: " Ada ", Email: "ada@example.com", Password: "pw", TargetCareer: "Data Scientist",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	want := sessiondto.SessionOutput{StudentID: "17", StudentName: "Ada Server", TargetCareer: "Backend Dev"}
	if out.StudentID != want.StudentID || out.Name != want.StudentName || out.TargetCareer != want.TargetCareer {
		t.Fatalf("unexpected output %+v", out)
	}
	stored, err := sessionUC.Current(context.Background())
	if err != nil {
		t.Fatalf("current session: %v", err)
	}
	if stored != want {
		t.Fatalf("expected stored session %+v, got %+v", want, stored)
	}
	body := backend.body()
	if body["name"] != "Ada" || body["target_career"] != "Data Scientist" || body["password"] != "pw" {
		t.Fatalf("unexpected register payload %v", body)
	}
	if backend.calls.Load() != 1 {
		t.Fatalf("expected one request, got %d", backend.calls.Load())
	}
}

func TestFailedLoginKeepsSessionUntouched(t *testing.T) {
	t.Parallel()
	_, url := newBackend(t)
	uc, sessionUC := setup(t, url)
	ctx := context.Background()
	prior := sessiondto.EstablishInput{StudentID: "1", StudentName: "Old", TargetCareer: "Art"}
	if _, err := sessionUC.Establish(ctx, prior); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	_, err := uc.Login(ctx, authdto.LoginInput{Email: "lin@example.com", Password: "wrong"})
	if got := apperrors.UserMessage(err, "Authentication failed"); got != "Invalid credentials" {
		t.Fatalf("expected backend detail, got %q (%v)", got, err)
	}
	stored, err := sessionUC.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if stored.StudentID != "1" || stored.StudentName != "Old" {
		t.Fatalf("session must be unchanged, got %+v", stored)
	}
}

func TestLoginSuccessAndLegacyProfile(t *testing.T) {
	t.Parallel()
	backend, url := newBackend(t)
	uc, sessionUC := setup(t, url)
	ctx := context.Background()

	if _, err := uc.Login(ctx, authdto.LoginInput{Email: "lin@example.com", Password: "secret"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if s, _ := sessionUC.Current(ctx); s.StudentID != "4" || s.TargetCareer != "Frontend Dev" {
		t.Fatalf("unexpected session after login %+v", s)
	}

	out, err := uc.CreateProfile(ctx, authdto.CreateProfileInput{Name: "Sam", TargetCareer: "Data Scientist"})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if out.StudentID != "9" {
		t.Fatalf("unexpected profile output %+v", out)
	}
	body := backend.body()
	if score, ok := body["current_drift_score"].(float64); !ok || score != 0 {
		t.Fatalf("legacy payload must carry current_drift_score 0, got %v", body)
	}
}

func TestInvalidInputIssuesNoRequest(t *testing.T) {
	t.Parallel()
	backend, url := newBackend(t)
	uc, sessionUC := setup(t, url)
	ctx := context.Background()

	if _, err := uc.Login(ctx, authdto.LoginInput{Email: "", Password: "x"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.Register(ctx, authdto.RegisterInput{Name: "Ada", Email: "a@b", Password: "x"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing career, got %v", err)
	}
	if backend.calls.Load() != 0 {
		t.Fatalf("expected no requests, got %d", backend.calls.Load())
	}
	if _, err := sessionUC.Current(ctx); err != apperrors.ErrNoSession {
		t.Fatalf("expected no session, got %v", err)
	}
}

func TestRegisterUnreachableBackend(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	uc, _ := setup(t, url)

	_, err := uc.Register(context.Background(), authdto.RegisterInput{Name: "Ada", Email: "a@b", Password: "x", TargetCareer: "Backend Dev"})
	if apperrors.UserMessage(err, "Registration failed") != apperrors.ConnectivityMessage {
		t.Fatalf("expected connectivity message, got %v", err)
	}
}

func TestCareersExposeCatalogue(t *testing.T) {
	t.Parallel()
	uc, _ := setup(t, "http://127.0.0.1:1")
	careers := uc.Careers()
	if len(careers) != 3 || careers[0].ID != "Data Scientist" {
		t.Fatalf("unexpected careers %+v", careers)
	}
}
