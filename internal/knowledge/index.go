// Package knowledge wraps the searchable corpus used for grounded fallback
// answers. The corpus itself is an external collaborator; this package
// defines the interface the orchestrator consumes plus a deterministic
// in-memory implementation for deployments and tests that bring no host
// index.
package knowledge

import (
	"context"
	"sort"

	"wayfind/internal/logging"
	"wayfind/internal/normalize"
	"wayfind/internal/types"
)

// Document is one corpus entry.
type Document struct {
	Title               string
	Description         string
	LongForm            string
	RelatedDestinations []string
}

// Hit is a scored search result.
type Hit struct {
	Document
	Score float64
}

// Searcher is what the orchestrator depends on. A host may inject its own;
// errors degrade to the empty-state response rather than propagating.
type Searcher interface {
	Search(ctx context.Context, query string, lang types.Language) ([]Hit, error)
}

// =============================================================================
// IN-MEMORY INDEX
// =============================================================================

// Field weights for token-overlap scoring.
const (
	titleWeight       = 3.0
	descriptionWeight = 2.0
	longFormWeight    = 1.0
)

// Index is a deterministic token-overlap index over a fixed document set.
type Index struct {
	docs   []Document
	tokens []indexedDoc
}

type indexedDoc struct {
	title    map[string]bool
	desc     map[string]bool
	longForm map[string]bool
}

// NewIndex tokenizes the documents once up front.
func NewIndex(docs []Document) *Index {
	ix := &Index{docs: docs, tokens: make([]indexedDoc, len(docs))}
	for i, d := range docs {
		ix.tokens[i] = indexedDoc{
			title:    toSet(normalize.Tokenize(d.Title)),
			desc:     toSet(normalize.Tokenize(d.Description)),
			longForm: toSet(normalize.Tokenize(d.LongForm)),
		}
	}
	return ix
}

// Search scores every document against the query's tokens and returns hits in
// descending score order. Scores are normalized by query length so they stay
// comparable across queries.
func (ix *Index) Search(ctx context.Context, query string, lang types.Language) ([]Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queryTokens := normalize.Tokenize(query)
	if len(queryTokens) == 0 {
		return nil, nil
	}

	hits := make([]Hit, 0, len(ix.docs))
	maxPerToken := titleWeight + descriptionWeight + longFormWeight
	for i, d := range ix.docs {
		var raw float64
		for _, tok := range queryTokens {
			if ix.tokens[i].title[tok] {
				raw += titleWeight
			}
			if ix.tokens[i].desc[tok] {
				raw += descriptionWeight
			}
			if ix.tokens[i].longForm[tok] {
				raw += longFormWeight
			}
		}
		if raw == 0 {
			continue
		}
		hits = append(hits, Hit{
			Document: d,
			Score:    raw / (maxPerToken * float64(len(queryTokens))),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	logging.Get(logging.CategoryKnowledge).Debug("query=%q hits=%d", query, len(hits))
	return hits, nil
}

func toSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
