package application

import (
	"context"
	"log/slog"

	"github.com/efisher/prjanitor/internal/domain/model"
	"github.com/efisher/prjanitor/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.ActionHandler = (*NoopHandler)(nil)
	_ driven.ActionHandler = (*CloseHandler)(nil)
)

// NoopHandler logs the batch it receives and does nothing else. It is the
// default handler for the warn and close buckets: warning has no delivery
// channel yet, and closing other people's PRs stays off until someone turns
// it on in the configuration.
type NoopHandler struct {
	// Action names the bucket this handler is wired to, for logging.
	Action model.Action
}

// Handle logs the PRs that would have been acted on.
func (h *NoopHandler) Handle(_ context.Context, prs []model.PullRequest) error {
	for _, pr := range prs {
		slog.Info("triage action skipped (no handler configured)",
			"action", h.Action.String(),
			"repo", pr.RepoFullName,
			"pr", pr.Number,
			"title", pr.Title,
		)
	}
	return nil
}

// CloseHandler closes every PR in the batch through the GitHub port.
// Per-PR failures are logged and the batch continues; one stubborn PR must
// not keep the rest open for another month.
type CloseHandler struct {
	gh driven.GitHubClient
}

// NewCloseHandler creates a CloseHandler backed by the given client.
func NewCloseHandler(gh driven.GitHubClient) *CloseHandler {
	return &CloseHandler{gh: gh}
}

// Handle closes each PR in the batch.
func (h *CloseHandler) Handle(ctx context.Context, prs []model.PullRequest) error {
	for _, pr := range prs {
		if err := h.gh.ClosePullRequest(ctx, pr.RepoFullName, pr.Number); err != nil {
			slog.Error("close failed", "repo", pr.RepoFullName, "pr", pr.Number, "error", err)
			continue
		}
		slog.Info("closed expired PR", "repo", pr.RepoFullName, "pr", pr.Number, "title", pr.Title)
	}
	return nil
}
