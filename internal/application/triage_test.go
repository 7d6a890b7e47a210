package application_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/efisher/prjanitor/internal/application"
	"github.com/efisher/prjanitor/internal/domain/model"
)

// prIdleFor returns a PullRequest last updated the given duration before now.
func prIdleFor(now time.Time, idle time.Duration, labels ...string) model.PullRequest {
	return model.PullRequest{
		Number:       1,
		RepoFullName: "octo/widgets",
		Title:        "Add widget cache",
		Labels:       labels,
		UpdatedAt:    now.Add(-idle),
	}
}

func TestClassify_ReadyBranch(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	labels := model.DefaultTriageLabels()
	thresholds := model.DefaultThresholds()

	t.Run("idle 7 days + 1 second -> notify", func(t *testing.T) {
		pr := prIdleFor(now, 7*24*time.Hour+time.Second, "status:ready")
		assert.Equal(t, model.ActionNotify, application.Classify(pr, now, labels, thresholds))
	})

	t.Run("idle exactly 7 days -> none (strict inequality)", func(t *testing.T) {
		pr := prIdleFor(now, 7*24*time.Hour, "status:ready")
		assert.Equal(t, model.ActionNone, application.Classify(pr, now, labels, thresholds))
	})

	t.Run("idle 1 day -> none", func(t *testing.T) {
		pr := prIdleFor(now, 24*time.Hour, "status:ready")
		assert.Equal(t, model.ActionNone, application.Classify(pr, now, labels, thresholds))
	})

	t.Run("label match is case-insensitive", func(t *testing.T) {
		pr := prIdleFor(now, 10*24*time.Hour, "Status:Ready")
		assert.Equal(t, model.ActionNotify, application.Classify(pr, now, labels, thresholds))
	})
}

func TestClassify_InProgressBranch(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	labels := model.DefaultTriageLabels()
	thresholds := model.DefaultThresholds()

	t.Run("idle 30 days + 1 second -> close", func(t *testing.T) {
		pr := prIdleFor(now, 30*24*time.Hour+time.Second, "status:in progress")
		assert.Equal(t, model.ActionClose, application.Classify(pr, now, labels, thresholds))
	})

	t.Run("idle exactly 30 days -> warn (close is strict)", func(t *testing.T) {
		pr := prIdleFor(now, 30*24*time.Hour, "status:in progress")
		assert.Equal(t, model.ActionWarn, application.Classify(pr, now, labels, thresholds))
	})

	t.Run("idle 26 days -> warn", func(t *testing.T) {
		pr := prIdleFor(now, 26*24*time.Hour, "status:in progress")
		assert.Equal(t, model.ActionWarn, application.Classify(pr, now, labels, thresholds))
	})

	t.Run("idle exactly 25 days -> none (warn is strict)", func(t *testing.T) {
		pr := prIdleFor(now, 25*24*time.Hour, "status:in progress")
		assert.Equal(t, model.ActionNone, application.Classify(pr, now, labels, thresholds))
	})

	t.Run("idle 10 days -> none", func(t *testing.T) {
		pr := prIdleFor(now, 10*24*time.Hour, "status:in progress")
		assert.Equal(t, model.ActionNone, application.Classify(pr, now, labels, thresholds))
	})

	t.Run("help-wanted follows the same thresholds", func(t *testing.T) {
		pr := prIdleFor(now, 35*24*time.Hour, "status:help wanted")
		assert.Equal(t, model.ActionClose, application.Classify(pr, now, labels, thresholds))

		pr = prIdleFor(now, 27*24*time.Hour, "status:help wanted")
		assert.Equal(t, model.ActionWarn, application.Classify(pr, now, labels, thresholds))
	})
}

func TestClassify_ReadyTakesPriority(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	labels := model.DefaultTriageLabels()
	thresholds := model.DefaultThresholds()

	t.Run("ready + in-progress idle 2 months -> notify, never close", func(t *testing.T) {
		pr := prIdleFor(now, 60*24*time.Hour, "status:ready", "status:in progress")
		assert.Equal(t, model.ActionNotify, application.Classify(pr, now, labels, thresholds))
	})

	t.Run("ready + in-progress idle 8 days -> notify", func(t *testing.T) {
		pr := prIdleFor(now, 8*24*time.Hour, "status:ready", "status:in progress")
		assert.Equal(t, model.ActionNotify, application.Classify(pr, now, labels, thresholds))
	})

	t.Run("ready + in-progress idle 6 days -> none", func(t *testing.T) {
		pr := prIdleFor(now, 6*24*time.Hour, "status:ready", "status:in progress")
		assert.Equal(t, model.ActionNone, application.Classify(pr, now, labels, thresholds))
	})
}

func TestClassify_NoRecognizedLabel(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	labels := model.DefaultTriageLabels()
	thresholds := model.DefaultThresholds()

	t.Run("unrelated labels -> none regardless of age", func(t *testing.T) {
		for _, idle := range []time.Duration{0, 8 * 24 * time.Hour, 365 * 24 * time.Hour} {
			pr := prIdleFor(now, idle, "bug", "priority:high")
			assert.Equal(t, model.ActionNone, application.Classify(pr, now, labels, thresholds))
		}
	})

	t.Run("no labels at all -> none", func(t *testing.T) {
		pr := prIdleFor(now, 90*24*time.Hour)
		assert.Equal(t, model.ActionNone, application.Classify(pr, now, labels, thresholds))
	})
}

func TestClassify_CustomLabelsAndThresholds(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	labels := model.TriageLabels{Ready: "ready-for-review", InProgress: "wip", HelpWanted: "help wanted"}
	thresholds := model.Thresholds{
		NotifyAfter: 48 * time.Hour,
		WarnAfter:   96 * time.Hour,
		CloseAfter:  120 * time.Hour,
	}

	pr := prIdleFor(now, 3*24*time.Hour, "ready-for-review")
	assert.Equal(t, model.ActionNotify, application.Classify(pr, now, labels, thresholds))

	pr = prIdleFor(now, 100*time.Hour, "wip")
	assert.Equal(t, model.ActionWarn, application.Classify(pr, now, labels, thresholds))

	// The default label names are not recognized under custom configuration.
	pr = prIdleFor(now, 60*24*time.Hour, "status:in progress")
	assert.Equal(t, model.ActionNone, application.Classify(pr, now, labels, thresholds))
}

func TestBucketAll(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	labels := model.DefaultTriageLabels()
	thresholds := model.DefaultThresholds()

	prs := []model.PullRequest{
		prIdleFor(now, 10*24*time.Hour, "status:ready"),
		prIdleFor(now, 27*24*time.Hour, "status:in progress"),
		prIdleFor(now, 45*24*time.Hour, "status:help wanted"),
		prIdleFor(now, 2*24*time.Hour, "status:ready"),
		prIdleFor(now, 400*24*time.Hour, "wontfix"),
	}

	buckets := application.BucketAll(prs, now, labels, thresholds)

	assert.Len(t, buckets.Notify, 1)
	assert.Len(t, buckets.Warn, 1)
	assert.Len(t, buckets.Close, 1)
	assert.Equal(t, 3, buckets.Total())
}
