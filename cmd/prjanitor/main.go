package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/efisher/prjanitor/internal/adapter/driven/github"
	smtpadapter "github.com/efisher/prjanitor/internal/adapter/driven/smtp"
	"github.com/efisher/prjanitor/internal/application"
	"github.com/efisher/prjanitor/internal/config"
	"github.com/efisher/prjanitor/internal/domain/model"
	"github.com/efisher/prjanitor/internal/domain/port/driven"
	"github.com/efisher/prjanitor/internal/logger"
)

// version is set via -ldflags at build time.
var version = "dev"

// cli declares the command-line interface. The job is configured through the
// YAML file; flags only cover configuration injection and run mode.
type cli struct {
	Config  string           `help:"Path to the YAML configuration file." default:"config.yaml" type:"path"`
	Once    bool             `help:"Run a single triage sweep and exit (for external schedulers)."`
	Version kong.VersionFlag `help:"Print version and exit."`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("prjanitor"),
		kong.Description("Sweeps open pull requests and notifies, warns, or closes based on label state and staleness."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := run(c); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(c cli) error {
	// 1. Load configuration (fail fast on invalid or incomplete settings).
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	// 2. Initialize logging before anything logs.
	if err := logger.Init(cfg.Log); err != nil {
		return err
	}
	slog.Info("config loaded",
		"repos", cfg.Repositories,
		"recipient", cfg.Recipient,
		"interval", cfg.Interval,
		"fetch_timeout", cfg.FetchTimeout,
		"close_enabled", cfg.CloseEnabled,
	)

	// 3. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Wire adapters.
	ghClient := githubadapter.NewClient(cfg.GitHubToken)
	mailer := smtpadapter.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)

	// 5. Pick action handlers. Warn has no delivery channel yet and close
	// stays a logging stub unless explicitly enabled.
	var closeHandler driven.ActionHandler
	if cfg.CloseEnabled {
		closeHandler = application.NewCloseHandler(ghClient)
		slog.Info("close action enabled, expired PRs will be closed")
	}

	// 6. Create the triage service.
	svc := application.NewTriageService(ghClient, mailer, nil, closeHandler, application.Settings{
		Repositories: cfg.Repositories,
		Recipient:    cfg.Recipient,
		Labels: model.TriageLabels{
			Ready:      cfg.ReadyLabel,
			InProgress: cfg.InProgressLabel,
			HelpWanted: cfg.HelpWantedLabel,
		},
		Thresholds: model.Thresholds{
			NotifyAfter: cfg.NotifyAfter,
			WarnAfter:   cfg.WarnAfter,
			CloseAfter:  cfg.CloseAfter,
		},
		Interval:     cfg.Interval,
		FetchTimeout: cfg.FetchTimeout,
		Location:     cfg.Location,
	})

	// 7. Run once or on the schedule loop.
	if c.Once {
		return svc.RunOnce(ctx)
	}

	svc.Start(ctx)
	return nil
}
