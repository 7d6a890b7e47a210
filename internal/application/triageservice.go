package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/efisher/prjanitor/internal/domain/model"
	"github.com/efisher/prjanitor/internal/domain/port/driven"
)

// Settings carries the run-time parameters of the triage job. It is passed
// explicitly into NewTriageService so that independent service instances
// (and tests) never share hidden state.
type Settings struct {
	// Repositories is the fixed list of "owner/repo" names to sweep.
	Repositories []string
	// Recipient receives the batched review reminder mail.
	Recipient string
	// Labels and Thresholds parameterize the classifier.
	Labels     model.TriageLabels
	Thresholds model.Thresholds
	// Interval is the pause between scheduled runs.
	Interval time.Duration
	// FetchTimeout bounds each repository fetch. An unresponsive upstream
	// fails that fetch instead of stalling the run forever.
	FetchTimeout time.Duration
	// Location is the timezone run timestamps are logged in.
	Location *time.Location
}

// TriageService coordinates one triage run: concurrent PR fetches across all
// configured repositories, classification, and action dispatch. The schedule
// loop in Start owns all runs, so runs never overlap.
type TriageService struct {
	gh           driven.GitHubClient
	mailer       driven.Mailer
	warnHandler  driven.ActionHandler
	closeHandler driven.ActionHandler
	settings     Settings
}

// NewTriageService creates a TriageService with all required dependencies.
// Nil warn/close handlers default to no-ops.
func NewTriageService(
	gh driven.GitHubClient,
	mailer driven.Mailer,
	warnHandler driven.ActionHandler,
	closeHandler driven.ActionHandler,
	settings Settings,
) *TriageService {
	if warnHandler == nil {
		warnHandler = &NoopHandler{Action: model.ActionWarn}
	}
	if closeHandler == nil {
		closeHandler = &NoopHandler{Action: model.ActionClose}
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}

	return &TriageService{
		gh:           gh,
		mailer:       mailer,
		warnHandler:  warnHandler,
		closeHandler: closeHandler,
		settings:     settings,
	}
}

// Start begins the schedule loop. It runs an immediate sweep, then sweeps on
// the configured interval. Start blocks until the context is canceled. A
// failed run is logged and the loop continues; the next run starts fresh.
func (s *TriageService) Start(ctx context.Context) {
	if err := s.RunOnce(ctx); err != nil {
		slog.Error("triage run failed", "error", err)
	}

	ticker := time.NewTicker(s.settings.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("triage service stopped")
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				slog.Error("triage run failed", "error", err)
			}
		}
	}
}

// RunOnce executes a single triage run: fetch, classify, dispatch.
//
// Fetches fan out concurrently, one goroutine per repository, and the run
// joins on all of them. Failure policy is all-or-nothing: if any fetch
// errors, the run aborts before any action executes and partial results are
// discarded. Action dispatch happens at most once per bucket per run, with
// all qualifying PRs batched into the single call.
func (s *TriageService) RunOnce(ctx context.Context) error {
	runID := uuid.NewString()
	start := time.Now()
	slog.Info("triage run started",
		"run_id", runID,
		"repos", len(s.settings.Repositories),
		"started_at", start.In(s.settings.Location).Format(time.RFC3339),
	)

	prs, err := s.fetchAll(ctx)
	if err != nil {
		return fmt.Errorf("run %s: %w", runID, err)
	}

	buckets := BucketAll(prs, time.Now(), s.settings.Labels, s.settings.Thresholds)

	s.dispatchNotify(ctx, runID, buckets.Notify)
	s.dispatchHandler(ctx, runID, model.ActionClose, s.closeHandler, buckets.Close)
	s.dispatchHandler(ctx, runID, model.ActionWarn, s.warnHandler, buckets.Warn)

	slog.Info("triage run complete",
		"run_id", runID,
		"fetched", len(prs),
		"notify", len(buckets.Notify),
		"warn", len(buckets.Warn),
		"close", len(buckets.Close),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return nil
}

// fetchAll fans out one fetch per repository and joins on all of them.
// Each fetch runs under its own deadline; the first error cancels the rest
// via the group context and fails the whole fetch.
func (s *TriageService) fetchAll(ctx context.Context) ([]model.PullRequest, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([][]model.PullRequest, len(s.settings.Repositories))

	for i, repo := range s.settings.Repositories {
		g.Go(func() error {
			fetchCtx := ctx
			if s.settings.FetchTimeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(ctx, s.settings.FetchTimeout)
				defer cancel()
			}

			prs, err := s.gh.FetchOpenPullRequests(fetchCtx, repo)
			if err != nil {
				return fmt.Errorf("fetching open PRs for %s: %w", repo, err)
			}
			results[i] = prs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.PullRequest
	for _, prs := range results {
		all = append(all, prs...)
	}
	return all, nil
}

// dispatchNotify sends the single batched review reminder for the notify
// bucket. Mail failures are logged and swallowed; a flaky relay must not
// abort the run or suppress the close sweep.
func (s *TriageService) dispatchNotify(ctx context.Context, runID string, prs []model.PullRequest) {
	if len(prs) == 0 {
		return
	}

	body, err := ReviewMailBody(prs)
	if err != nil {
		slog.Error("review mail rendering failed", "run_id", runID, "error", err)
		return
	}

	subject := ReviewMailSubject(len(prs))
	if err := s.mailer.Send(ctx, s.settings.Recipient, subject, body); err != nil {
		slog.Error("review mail delivery failed",
			"run_id", runID,
			"recipient", s.settings.Recipient,
			"prs", len(prs),
			"error", err,
		)
		return
	}

	slog.Info("review mail sent", "run_id", runID, "recipient", s.settings.Recipient, "prs", len(prs))
}

// dispatchHandler invokes one action handler with its full bucket, at most
// once per run. Handler errors are logged and swallowed.
func (s *TriageService) dispatchHandler(ctx context.Context, runID string, action model.Action, h driven.ActionHandler, prs []model.PullRequest) {
	if len(prs) == 0 {
		return
	}

	if err := h.Handle(ctx, prs); err != nil {
		slog.Error("action handler failed", "run_id", runID, "action", action.String(), "prs", len(prs), "error", err)
	}
}
