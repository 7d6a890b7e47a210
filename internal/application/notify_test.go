package application_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efisher/prjanitor/internal/application"
	"github.com/efisher/prjanitor/internal/domain/model"
)

func TestReviewMailSubject(t *testing.T) {
	assert.Equal(t, "1 pull requests need review", application.ReviewMailSubject(1))
	assert.Equal(t, "14 pull requests need review", application.ReviewMailSubject(14))
}

func TestReviewMailBody(t *testing.T) {
	prs := []model.PullRequest{
		{Title: "Fix flaky watcher test", URL: "https://github.com/octo/alpha/pull/3", UpdatedAt: time.Now()},
		{Title: "Bump parser deps", URL: "https://github.com/octo/beta/pull/9", UpdatedAt: time.Now()},
	}

	body, err := application.ReviewMailBody(prs)
	require.NoError(t, err)

	// Fixed greeting, one line per PR, fixed closing.
	lines := strings.Split(body, "\n")
	assert.Equal(t, "Hello,", lines[0])
	assert.Contains(t, body, "- Fix flaky watcher test --- https://github.com/octo/alpha/pull/3")
	assert.Contains(t, body, "- Bump parser deps --- https://github.com/octo/beta/pull/9")
	assert.Contains(t, body, "Please take a look when you get a chance.")

	// PR lines appear in input order.
	assert.Less(t,
		strings.Index(body, "Fix flaky watcher test"),
		strings.Index(body, "Bump parser deps"),
	)
}
