package model

import (
	"strings"
	"time"
)

// PullRequest represents an open GitHub pull request as observed during one
// triage run. Instances are fetched fresh every run and discarded afterwards;
// nothing about a PR survives between runs.
type PullRequest struct {
	Number       int
	RepoFullName string
	Title        string
	Author       string
	URL          string
	Labels       []string
	OpenedAt     time.Time
	UpdatedAt    time.Time
}

// HasLabel reports whether the PR carries the given label.
// Comparison is case-insensitive; GitHub treats label names that way.
func (pr PullRequest) HasLabel(name string) bool {
	for _, l := range pr.Labels {
		if strings.EqualFold(l, name) {
			return true
		}
	}
	return false
}

// HasAnyLabel reports whether the PR carries at least one of the given labels.
func (pr PullRequest) HasAnyLabel(names ...string) bool {
	for _, name := range names {
		if pr.HasLabel(name) {
			return true
		}
	}
	return false
}

// IdleSince returns how long the PR has gone without updates, relative to now.
func (pr PullRequest) IdleSince(now time.Time) time.Duration {
	return now.Sub(pr.UpdatedAt)
}
