package bootstrap

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	authinadapter "careercompass/internal/modules/auth/adapter/in"
	authoutadapter "careercompass/internal/modules/auth/adapter/out"
	authservice "careercompass/internal/modules/auth/service"
	authusecase "careercompass/internal/modules/auth/usecase"
	sessioninadapter "careercompass/internal/modules/session/adapter/in"
	sessionoutadapter "careercompass/internal/modules/session/adapter/out"
	sessionout "careercompass/internal/modules/session/port/out"
	sessionservice "careercompass/internal/modules/session/service"
	sessionusecase "careercompass/internal/modules/session/usecase"
	trackerinadapter "careercompass/internal/modules/tracker/adapter/in"
	trackeroutadapter "careercompass/internal/modules/tracker/adapter/out"
	trackerservice "careercompass/internal/modules/tracker/service"
	trackerusecase "careercompass/internal/modules/tracker/usecase"
	"careercompass/internal/platform/clock"
	"careercompass/internal/platform/config"
	"careercompass/internal/platform/httpapi"
	"careercompass/internal/platform/id"
	"careercompass/internal/platform/logging"
	uiapp "careercompass/internal/ui/app"
)

type App struct {
	AuthCLI    authinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
	TrackerCLI trackerinadapter.CLIHandler
	Log        *zap.Logger

	closers []io.Closer
}

func New(cfg config.Config) (*App, error) {
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	clk := clock.SystemClock{}

	store, err := newSessionStore(cfg, clk)
	if err != nil {
		return nil, err
	}
	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(store))

	client := httpapi.New(cfg.APIBaseURL, cfg.RequestTimeout, log, httpapi.WithIDGenerator(id.UUID{}))
	authUC := authusecase.NewInteractor(
		authservice.NewAuthService(authoutadapter.NewHTTPGateway(client)),
		sessionUC,
	)
	trackerUC := trackerusecase.NewInteractor(
		trackerservice.NewTrackerService(clk, trackeroutadapter.NewHTTPGateway(client)),
		sessionUC,
	)

	app := &App{
		AuthCLI:    authinadapter.NewCLIHandler(authUC),
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		TrackerCLI: trackerinadapter.NewCLIHandler(trackerUC),
		Log:        log,
	}
	if c, ok := store.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}
	log.Debug("bootstrap complete",
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("session_store", cfg.SessionStore),
		zap.String("data_dir", cfg.DataDir),
	)
	return app, nil
}

func newSessionStore(cfg config.Config, clk clock.Clock) (sessionout.Store, error) {
	switch cfg.SessionStore {
	case config.StoreFile:
		return sessionoutadapter.NewFileSessionStore(cfg.SessionPath), nil
	default:
		store, err := sessionoutadapter.NewSQLiteLocalStore(cfg.DBPath, clk)
		if err != nil {
			return nil, fmt.Errorf("new local store: %w", err)
		}
		return store, nil
	}
}

// Close releases the local store and flushes the logger.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	// Sync on a file-less logger can fail harmlessly on some platforms.
	_ = a.Log.Sync()
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.AuthCLI, app.SessionCLI, app.TrackerCLI, app.Log)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
