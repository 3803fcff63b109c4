package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpus() *Corpus {
	return NewCorpus([]DocumentRecord{
		{Filename: "billing.txt", Text: "Our refund policy allows returns within 30 days of purchase."},
		{Filename: "onboarding.txt", Text: "Welcome guide for new customers and their first week."},
		{Filename: "returns.txt", Text: "Detailed refund workflow and escalation contacts."},
	})
}

func TestSearchRanksByTokenOverlap(t *testing.T) {
	corpus := testCorpus()

	matches := corpus.Search("refund policy details", 3)

	require.NotEmpty(t, matches)
	// billing.txt contains both "refund" and "policy"; onboarding.txt
	// contains neither and must be excluded entirely.
	assert.Equal(t, "billing.txt", matches[0].Document.Filename)
	assert.Equal(t, 2, matches[0].Score)
	for _, m := range matches {
		assert.NotEqual(t, "onboarding.txt", m.Document.Filename)
	}
}

func TestSearchSingleCountPerToken(t *testing.T) {
	corpus := NewCorpus([]DocumentRecord{
		{Filename: "a.txt", Text: "refund refund refund refund"},
		{Filename: "b.txt", Text: "refund policy"},
	})

	matches := corpus.Search("refund policy", 0)

	require.Len(t, matches, 2)
	// Repetition does not raise the score: b.txt matches two distinct
	// tokens and outranks a.txt's single repeated one.
	assert.Equal(t, "b.txt", matches[0].Document.Filename)
	assert.Equal(t, 2, matches[0].Score)
	assert.Equal(t, 1, matches[1].Score)
}

func TestSearchStableOnTies(t *testing.T) {
	corpus := NewCorpus([]DocumentRecord{
		{Filename: "first.txt", Text: "pricing sheet"},
		{Filename: "second.txt", Text: "pricing overview"},
		{Filename: "third.txt", Text: "pricing appendix"},
	})

	matches := corpus.Search("pricing", 10)

	require.Len(t, matches, 3)
	assert.Equal(t, "first.txt", matches[0].Document.Filename)
	assert.Equal(t, "second.txt", matches[1].Document.Filename)
	assert.Equal(t, "third.txt", matches[2].Document.Filename)
}

func TestSearchIdempotent(t *testing.T) {
	corpus := testCorpus()

	first := corpus.Search("refund policy details", 3)
	second := corpus.Search("refund policy details", 3)

	assert.Equal(t, first, second)
}

func TestSearchShortTokensDiscarded(t *testing.T) {
	corpus := testCorpus()

	// Every token has length <= 3, so nothing is usable.
	assert.Empty(t, corpus.Search("the of a to", 3))
	assert.Empty(t, corpus.Search("", 3))
	assert.Empty(t, corpus.Search("   ", 3))
}

func TestSearchCaseInsensitive(t *testing.T) {
	corpus := testCorpus()

	matches := corpus.Search("REFUND Policy", 3)
	require.NotEmpty(t, matches)
	assert.Equal(t, "billing.txt", matches[0].Document.Filename)
	assert.Equal(t, 2, matches[0].Score)
}

func TestSearchTruncatesToLimit(t *testing.T) {
	corpus := NewCorpus([]DocumentRecord{
		{Filename: "a.txt", Text: "shipping rates"},
		{Filename: "b.txt", Text: "shipping zones"},
		{Filename: "c.txt", Text: "shipping labels"},
		{Filename: "d.txt", Text: "shipping insurance"},
	})

	assert.Len(t, corpus.Search("shipping", 2), 2)
	// limit <= 0 falls back to the default of 3.
	assert.Len(t, corpus.Search("shipping", 0), DefaultLimit)
}

func TestQueryTokensDeduplicated(t *testing.T) {
	tokens := queryTokens("Refund refund REFUND policy")
	assert.Equal(t, []string{"refund", "policy"}, tokens)
}
