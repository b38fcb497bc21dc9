package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/calegray/laurel/internal/achievement"
	"github.com/calegray/laurel/internal/auth"
	"github.com/calegray/laurel/internal/config"
	"github.com/calegray/laurel/internal/content"
	"github.com/calegray/laurel/internal/detector"
	"github.com/calegray/laurel/internal/mail"
	"github.com/calegray/laurel/internal/store"
	"github.com/calegray/laurel/internal/web"
)

// NewServeCommand creates the serve command: run the site.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio site",
		Long:  "Starts the HTTP server. All settings come from the environment (or a .env file).",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
	return cmd
}

func runServe(opts *RootOptions) error {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot open database", err)
	}
	defer st.Close()

	authSvc, err := auth.NewService(cfg.AdminPassword)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot initialise auth", err)
	}

	var mailer mail.Mailer = mail.LogMailer{}
	if cfg.SMTPConfigured() {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPass,
			To:       cfg.ContactTo,
		})
	} else {
		slog.Info("smtp not configured, contact messages will only be stored")
	}

	resolver := content.NewResolver(st.Content(), content.MustDefaults())
	sessions := web.NewSessionManager(
		st,
		achievement.DefaultCatalog(),
		detector.SystemScheduler{},
		cfg.AchievementSecret,
		cfg.SecretPhrase,
	)
	defer sessions.Close()

	srv := web.New(cfg, st, resolver, sessions, authSvc, mailer, "templates/*")
	return srv.Run()
}
