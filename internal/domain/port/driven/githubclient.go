// Package driven declares the outbound ports the application core consumes.
package driven

import (
	"context"

	"github.com/efisher/prjanitor/internal/domain/model"
)

// GitHubClient defines the driven port for the repository-hosting API.
type GitHubClient interface {
	// FetchOpenPullRequests returns every currently open pull request in
	// the given repository, labels included.
	FetchOpenPullRequests(ctx context.Context, repoFullName string) ([]model.PullRequest, error)
	// ClosePullRequest closes the given pull request without merging it.
	ClosePullRequest(ctx context.Context, repoFullName string, number int) error
}
