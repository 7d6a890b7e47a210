// Package application contains use-case orchestration services.
package application

import (
	"time"

	"github.com/efisher/prjanitor/internal/domain/model"
)

// Classify maps one pull request to its triage action for this run.
//
// Branches are mutually exclusive and evaluated in priority order: a PR
// labeled ready is only ever eligible for notify, even if it also carries an
// in-progress or help-wanted label. All threshold comparisons are strict --
// a PR updated exactly NotifyAfter ago is not yet notifiable.
func Classify(pr model.PullRequest, now time.Time, labels model.TriageLabels, thresholds model.Thresholds) model.Action {
	idle := pr.IdleSince(now)

	switch {
	case pr.HasLabel(labels.Ready):
		if idle > thresholds.NotifyAfter {
			return model.ActionNotify
		}
		return model.ActionNone

	case pr.HasAnyLabel(labels.InProgress, labels.HelpWanted):
		if idle > thresholds.CloseAfter {
			return model.ActionClose
		}
		if idle > thresholds.WarnAfter {
			return model.ActionWarn
		}
		return model.ActionNone

	default:
		return model.ActionNone
	}
}

// Buckets groups the pull requests of one run by triage action. PRs that
// classified as none are not retained.
type Buckets struct {
	Notify []model.PullRequest
	Warn   []model.PullRequest
	Close  []model.PullRequest
}

// Total returns the number of PRs across all buckets.
func (b Buckets) Total() int {
	return len(b.Notify) + len(b.Warn) + len(b.Close)
}

// BucketAll classifies every PR and groups the results.
func BucketAll(prs []model.PullRequest, now time.Time, labels model.TriageLabels, thresholds model.Thresholds) Buckets {
	var b Buckets
	for _, pr := range prs {
		switch Classify(pr, now, labels, thresholds) {
		case model.ActionNotify:
			b.Notify = append(b.Notify, pr)
		case model.ActionWarn:
			b.Warn = append(b.Warn, pr)
		case model.ActionClose:
			b.Close = append(b.Close, pr)
		}
	}
	return b
}
