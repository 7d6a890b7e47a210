package model

import "time"

// Action is the triage bucket a pull request lands in during a run.
// A PR lands in at most one bucket per run.
type Action int

const (
	// ActionNone means the PR needs nothing this run.
	ActionNone Action = iota
	// ActionNotify means the PR is ready for review and has waited long
	// enough that reviewers should be reminded.
	ActionNotify
	// ActionWarn means work on the PR has stalled and it is approaching
	// the close threshold.
	ActionWarn
	// ActionClose means the PR has been abandoned long enough to close.
	ActionClose
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionNotify:
		return "notify"
	case ActionWarn:
		return "warn"
	case ActionClose:
		return "close"
	default:
		return "unknown"
	}
}

// Default staleness thresholds. "Close" is one month, counted as 30 days;
// the warn window sits between WarnAfter and CloseAfter.
const (
	defaultNotifyAfter = 7 * 24 * time.Hour
	defaultWarnAfter   = 25 * 24 * time.Hour
	defaultCloseAfter  = 30 * 24 * time.Hour
)

// Thresholds holds the staleness durations the classifier compares against.
// NotifyAfter applies to ready PRs; WarnAfter and CloseAfter apply to PRs
// still being worked on (in-progress or help-wanted).
type Thresholds struct {
	NotifyAfter time.Duration
	WarnAfter   time.Duration
	CloseAfter  time.Duration
}

// DefaultThresholds returns the hard-coded thresholds used when the
// configuration does not override them.
func DefaultThresholds() Thresholds {
	return Thresholds{
		NotifyAfter: defaultNotifyAfter,
		WarnAfter:   defaultWarnAfter,
		CloseAfter:  defaultCloseAfter,
	}
}

// TriageLabels names the labels the classifier recognizes. Ready takes
// priority: a PR carrying Ready is never evaluated against the
// in-progress/help-wanted branch, whatever else it carries.
type TriageLabels struct {
	Ready      string
	InProgress string
	HelpWanted string
}

// DefaultTriageLabels returns the label names used when the configuration
// does not override them.
func DefaultTriageLabels() TriageLabels {
	return TriageLabels{
		Ready:      "status:ready",
		InProgress: "status:in progress",
		HelpWanted: "status:help wanted",
	}
}
