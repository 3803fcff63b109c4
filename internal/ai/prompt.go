package ai

import (
	"fmt"
	"strings"

	"github.com/teemow/frontdesk/internal/knowledge"
)

// ContextCharBudget bounds how much corpus text is packed into the user
// prompt so prompt size stays predictable.
const ContextCharBudget = 8000

// maxContextDocuments caps how many corpus documents feed one prompt.
const maxContextDocuments = 2

// CollateralSystemPrompt instructs the model how to write collateral.
const CollateralSystemPrompt = "You are a marketing copywriter for a small business. " +
	"Write polished, ready-to-send collateral. Ground every claim in the " +
	"provided background documents when they are relevant; never invent " +
	"prices, dates or policies."

// BuildCollateralPrompt shapes the user prompt from the topic, the
// requested format, and the top-scoring corpus documents. Context is
// truncated to ContextCharBudget characters.
func BuildCollateralPrompt(topic, format string, matches []knowledge.Match) string {
	if format == "" {
		format = "one-page flyer"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s about: %s\n", format, topic)

	context := collateralContext(matches)
	if context != "" {
		b.WriteString("\nBackground documents:\n")
		b.WriteString(context)
	}

	return b.String()
}

// collateralContext concatenates up to maxContextDocuments match texts
// under the character budget.
func collateralContext(matches []knowledge.Match) string {
	if len(matches) > maxContextDocuments {
		matches = matches[:maxContextDocuments]
	}

	var b strings.Builder
	remaining := ContextCharBudget
	for _, m := range matches {
		if remaining <= 0 {
			break
		}

		section := fmt.Sprintf("--- %s ---\n%s\n", m.Document.Filename, m.Document.Text)
		if len(section) > remaining {
			section = section[:remaining]
		}
		b.WriteString(section)
		remaining -= len(section)
	}
	return b.String()
}
