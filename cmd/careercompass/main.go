package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"careercompass/internal/bootstrap"
	trackerdto "careercompass/internal/modules/tracker/dto"
	"careercompass/internal/platform/config"
	apperrors "careercompass/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dataDir string
	envFile string
	apiURL  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "careercompass",
		Short:         "CareerCompass AI career-drift tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "directory for config, local storage and logs (default: user config dir)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file")
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "backend base URL (default "+config.DefaultAPIBaseURL+")")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newRegisterCmd(opts))
	root.AddCommand(newLoginCmd(opts))
	root.AddCommand(newProfileCmd(opts))
	root.AddCommand(newLogoutCmd(opts))
	root.AddCommand(newWhoamiCmd(opts))
	root.AddCommand(newActivityCmd(opts))
	root.AddCommand(newDriftCmd(opts))
	root.AddCommand(newDashboardCmd(opts))
	return root
}

func loadApp(opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := config.New(config.Options{
		DataDir:    opts.dataDir,
		EnvFile:    opts.envFile,
		APIBaseURL: opts.apiURL,
	})
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// withApp builds the app, runs fn and releases the app's resources.
func withApp(opts *rootOptions, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(opts)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

// userError turns backend failures into the message a user would see in the TUI.
func userError(err error, fallback string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrNoSession):
		return err
	}
	return errors.New(apperrors.UserMessage(err, fallback))
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the CareerCompass terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(opts, bootstrap.RunTUI)
		},
	}
}

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var name, email, password, career string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.AuthCLI.Register(context.Background(), name, email, password, career)
				if err != nil {
					return userError(err, "Registration failed")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "registered %s (id=%s) target=%s\n", out.Name, out.StudentID, out.TargetCareer)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&career, "career", "", "target career: Data Scientist|Frontend Dev|Backend Dev")
	return cmd
}

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.AuthCLI.Login(context.Background(), email, password)
				if err != nil {
					return userError(err, "Authentication failed")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (id=%s) target=%s\n", out.Name, out.StudentID, out.TargetCareer)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func newProfileCmd(opts *rootOptions) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Legacy profile commands"}

	var name, career string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a student profile without credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.AuthCLI.CreateProfile(context.Background(), name, career)
				if err != nil {
					return userError(err, "Error creating profile")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "profile created: %s (id=%s) target=%s\n", out.Name, out.StudentID, out.TargetCareer)
				return nil
			})
		},
	}
	create.Flags().StringVar(&name, "name", "", "full name")
	create.Flags().StringVar(&career, "career", "", "target career")
	profile.AddCommand(create)
	return profile
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				if err := app.SessionCLI.Logout(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			})
		},
	}
}

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				s, err := app.SessionCLI.Current(context.Background())
				if errors.Is(err, apperrors.ErrNoSession) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
					return nil
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\ntarget: %s\n", s.StudentID, s.StudentName, s.TargetCareer)
				return nil
			})
		},
	}
}

func newActivityCmd(opts *rootOptions) *cobra.Command {
	activity := &cobra.Command{Use: "activity", Short: "Learning activity log"}

	var category string
	add := &cobra.Command{
		Use:   "add <name...>",
		Short: "Log a learning activity",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return apperrors.Invalid("activity name")
			}
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.TrackerCLI.AddActivity(context.Background(), name, category)
				if err != nil {
					return userError(err, "Failed to save activity")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s [%s] id=%s\n", out.Name, out.Category, out.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&category, "category", "Frontend Dev", "Data Scientist|Frontend Dev|Backend Dev|Art|Other")

	list := &cobra.Command{
		Use:   "list",
		Short: "List logged activities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				acts, err := app.TrackerCLI.ListActivities(context.Background())
				if err != nil {
					return userError(err, "Failed to load activities")
				}
				printActivities(cmd, acts)
				return nil
			})
		},
	}
	activity.AddCommand(add, list)
	return activity
}

func newDriftCmd(opts *rootOptions) *cobra.Command {
	var career string
	cmd := &cobra.Command{
		Use:   "drift",
		Short: "Analyze drift of logged activities against the target career",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				ctx := context.Background()
				acts, err := app.TrackerCLI.ListActivities(ctx)
				if err != nil {
					return userError(err, apperrors.ConnectivityMessage)
				}
				res, err := app.TrackerCLI.AnalyzeDrift(ctx, career, acts)
				if err != nil {
					return errors.New(apperrors.ConnectivityMessage)
				}
				printDrift(cmd, res)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&career, "career", "", "target career (default: stored session)")
	return cmd
}

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print profile and activity log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				s, err := app.SessionCLI.Current(context.Background())
				if err != nil {
					return err
				}
				name, career := s.StudentName, s.TargetCareer
				var acts []trackerdto.ActivityOutput

				// Both fetches are best effort; failures leave the stored defaults.
				g, ctx := errgroup.WithContext(context.Background())
				g.Go(func() error {
					p, err := app.TrackerCLI.LoadProfile(ctx)
					if err != nil {
						app.Log.Sugar().Warnw("fetch profile", "error", err)
						return nil
					}
					name, career = mergeProfile(name, career, p)
					return nil
				})
				g.Go(func() error {
					list, err := app.TrackerCLI.ListActivities(ctx)
					if err != nil {
						app.Log.Sugar().Warnw("fetch activities", "error", err)
						return nil
					}
					acts = list
					return nil
				})
				if err := g.Wait(); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\ntarget career: %s\n\n", name, career)
				printActivities(cmd, acts)
				return nil
			})
		},
	}
}

// mergeProfile prefers the fetched name and career, keeping the stored
// values for any field the backend left empty.
func mergeProfile(name, career string, p trackerdto.ProfileOutput) (string, string) {
	if p.Name != "" {
		name = p.Name
	}
	if p.TargetCareer != "" {
		career = p.TargetCareer
	}
	return name, career
}

func printActivities(cmd *cobra.Command, acts []trackerdto.ActivityOutput) {
	if len(acts) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No activities logged.")
		return
	}
	for _, a := range acts {
		ts := ""
		if !a.Timestamp.IsZero() {
			ts = a.Timestamp.Format("2006-01-02 15:04")
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", a.ID, a.Category, a.Name, ts)
	}
}

func printDrift(cmd *cobra.Command, res trackerdto.DriftOutput) {
	out := cmd.OutOrStdout()
	if !res.HasScore {
		if res.Error != "" {
			_, _ = fmt.Fprintln(out, res.Error)
		}
		if res.Message != "" {
			_, _ = fmt.Fprintln(out, res.Message)
		}
		_, _ = fmt.Fprintln(out, "Add matching activities to analyze your progress.")
		return
	}
	state := "on track"
	if res.IsDrifting {
		state = "drifting"
	}
	_, _ = fmt.Fprintf(out, "on-track confidence: %s (%s)\n%s\n", res.Percent, state, res.Message)
	for _, s := range res.Suggestions {
		_, _ = fmt.Fprintf(out, "  - %s\n", s)
	}
}
