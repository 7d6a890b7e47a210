package driven

import (
	"context"

	"github.com/efisher/prjanitor/internal/domain/model"
)

// ActionHandler receives the full contents of one triage bucket, once per
// run. Handlers for the warn and close buckets are pluggable; the default
// wiring installs a no-op so that enabling a destructive action is always an
// explicit configuration choice.
type ActionHandler interface {
	Handle(ctx context.Context, prs []model.PullRequest) error
}
