package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teemow/frontdesk/internal/knowledge"
)

func TestBuildCollateralPrompt(t *testing.T) {
	matches := []knowledge.Match{
		{Document: knowledge.DocumentRecord{Filename: "pricing.txt", Text: "Haircuts start at 40."}, Score: 2},
		{Document: knowledge.DocumentRecord{Filename: "hours.txt", Text: "Open Tuesday to Saturday."}, Score: 1},
	}

	prompt := BuildCollateralPrompt("spring discount", "email newsletter", matches)

	assert.Contains(t, prompt, "Write a email newsletter about: spring discount")
	assert.Contains(t, prompt, "--- pricing.txt ---")
	assert.Contains(t, prompt, "Haircuts start at 40.")
	assert.Contains(t, prompt, "--- hours.txt ---")
}

func TestBuildCollateralPromptDefaults(t *testing.T) {
	prompt := BuildCollateralPrompt("open house", "", nil)

	assert.Contains(t, prompt, "Write a one-page flyer about: open house")
	assert.NotContains(t, prompt, "Background documents")
}

func TestCollateralContextBudget(t *testing.T) {
	big := strings.Repeat("x", ContextCharBudget)
	matches := []knowledge.Match{
		{Document: knowledge.DocumentRecord{Filename: "big.txt", Text: big}},
		{Document: knowledge.DocumentRecord{Filename: "second.txt", Text: "should be cut"}},
	}

	context := collateralContext(matches)
	assert.LessOrEqual(t, len(context), ContextCharBudget)
	assert.NotContains(t, context, "should be cut")
}

func TestCollateralContextCapsDocumentCount(t *testing.T) {
	matches := []knowledge.Match{
		{Document: knowledge.DocumentRecord{Filename: "a.txt", Text: "alpha"}},
		{Document: knowledge.DocumentRecord{Filename: "b.txt", Text: "beta"}},
		{Document: knowledge.DocumentRecord{Filename: "c.txt", Text: "gamma"}},
	}

	context := collateralContext(matches)
	assert.Contains(t, context, "alpha")
	assert.Contains(t, context, "beta")
	assert.NotContains(t, context, "gamma", "only the top two documents feed the prompt")
}
