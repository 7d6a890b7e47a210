package application

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/efisher/prjanitor/internal/domain/model"
)

// reviewMailTemplate renders the batched review reminder. One line per PR,
// formatted as "- {title} --- {url}".
const reviewMailTemplate = `Hello,

the following pull requests are ready and waiting for a review:

{{range .PRs}}- {{.Title}} --- {{.URL}}
{{end}}
Please take a look when you get a chance.

This is an automated message from prjanitor.
`

var reviewMail = template.Must(template.New("review").Parse(reviewMailTemplate))

// ReviewMailSubject returns the subject line for a batch of the given size.
func ReviewMailSubject(count int) string {
	return fmt.Sprintf("%d pull requests need review", count)
}

// ReviewMailBody renders the plain-text body for the notify bucket.
func ReviewMailBody(prs []model.PullRequest) (string, error) {
	data := struct {
		PRs []model.PullRequest
	}{PRs: prs}

	var body strings.Builder
	if err := reviewMail.Execute(&body, data); err != nil {
		return "", fmt.Errorf("rendering review mail: %w", err)
	}
	return body.String(), nil
}
