package knowledge

import (
	"sort"
	"strings"
)

// DefaultLimit is the number of matches returned when the caller does
// not specify one.
const DefaultLimit = 3

// minTokenLength is the stop-word heuristic: tokens this short or
// shorter ("the", "for", "a") are discarded before scoring.
const minTokenLength = 3

// Match pairs a document with its relevance score. Order is the ranking
// signal: results are sorted by descending score, corpus order on ties.
type Match struct {
	Document DocumentRecord
	Score    int
}

// Search ranks the corpus against a free-text query.
//
// The query is tokenized on whitespace and lower-cased; tokens of length
// <= 3 are dropped. A document scores one point per distinct query token
// contained anywhere in its text. Containment, not term frequency, so a
// token scores at most once however often it repeats. Zero-score
// documents are discarded and the result is truncated to limit
// (DefaultLimit when limit <= 0). A query with no usable tokens matches
// nothing.
func (c *Corpus) Search(query string, limit int) []Match {
	if limit <= 0 {
		limit = DefaultLimit
	}

	tokens := queryTokens(query)
	if len(tokens) == 0 {
		return nil
	}

	var matches []Match
	for _, doc := range c.docs {
		text := strings.ToLower(doc.Text)
		score := 0
		for _, token := range tokens {
			if strings.Contains(text, token) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, Match{Document: doc, Score: score})
		}
	}

	// Stable: equal scores keep corpus order.
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// queryTokens returns the distinct lower-cased query tokens that survive
// the length filter, in first-seen order.
func queryTokens(query string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(query)) {
		if len(field) <= minTokenLength || seen[field] {
			continue
		}
		seen[field] = true
		tokens = append(tokens, field)
	}
	return tokens
}
