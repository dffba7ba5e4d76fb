// Package intent classifies a normalized utterance into one of three lanes:
// a tier-1 transformation command (lock + opaque payload), an informational
// question (knowledge mode), or an open phrase handed to the skill matcher
// with a routing confidence. Classification is rule/score based and
// deterministic for the same input.
package intent

import (
	"strings"

	"wayfind/internal/logging"
	"wayfind/internal/normalize"
	"wayfind/internal/types"
)

// Mode values for Result.Mode.
const (
	ModeKnowledge = "knowledge"
)

// knowledgeConfidence is the fixed confidence assigned when the question
// heuristic fires.
const knowledgeConfidence = 0.9

// minQuestionLen keeps trivially short utterances off the knowledge path.
const minQuestionLen = 12

// Result is the router's classification of one utterance.
type Result struct {
	// Tier1Locked means a transformation prefix matched; Command names it and
	// Payload carries the remainder verbatim. The payload is free text to
	// transform, never a command, and is never fed to skill matching.
	Tier1Locked bool
	Command     string
	Payload     string

	// Query is the (possibly synonym-expanded) text later stages consume.
	Query string

	// DetectedIntents are the non-exclusive keyword-bucket tags.
	DetectedIntents []string

	// Mode is ModeKnowledge for informational questions, empty otherwise.
	Mode string

	// RoutingConfidence grows with the number of distinct intent tags,
	// capped at 1.0.
	RoutingConfidence float64
}

// Router is stateless; one instance serves all sessions.
type Router struct{}

// NewRouter creates a Router.
func NewRouter() *Router { return &Router{} }

// Route classifies a normalized query. An empty query returns the zero
// classification with the query unchanged.
func (r *Router) Route(query string, lang types.Language) Result {
	timer := logging.StartTimer(logging.CategoryIntent, "Route")
	defer timer.Stop()

	res := Result{Query: query}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return res
	}

	// Tier 1: transformation lock takes absolute precedence.
	for _, p := range tier1Patterns {
		if loc := p.re.FindStringIndex(trimmed); loc != nil && loc[0] == 0 {
			res.Tier1Locked = true
			res.Command = p.command
			res.Payload = trimmed[loc[1]:]
			logging.Get(logging.CategoryIntent).Info("tier1 lock: command=%s payload=%q", p.command, res.Payload)
			return res
		}
	}

	// Synonym expansion: append canonical keywords, keep the literal text.
	res.Query = ExpandSynonyms(trimmed)

	// Informational-question detection.
	if isQuestion(trimmed, lang) {
		res.Mode = ModeKnowledge
		res.RoutingConfidence = knowledgeConfidence
		logging.Get(logging.CategoryIntent).Info("knowledge mode: %q", trimmed)
		return res
	}

	// Keyword-bucket intent tags.
	tokens := tokenSet(res.Query)
	for _, bucket := range intentBuckets {
		for _, kw := range bucket.keywords {
			if tokens[kw] {
				res.DetectedIntents = append(res.DetectedIntents, bucket.tag)
				break
			}
		}
	}
	res.RoutingConfidence = confidenceFromTags(len(res.DetectedIntents))

	logging.Get(logging.CategoryIntent).Debug("tags=%v confidence=%.2f", res.DetectedIntents, res.RoutingConfidence)
	return res
}

// ExpandSynonyms appends canonical keywords for every synonym phrase present.
func ExpandSynonyms(query string) string {
	expanded := query
	for _, s := range synonyms {
		if s.re.MatchString(query) && !strings.Contains(expanded, s.canonical) {
			expanded += " " + s.canonical
		}
	}
	return expanded
}

// isQuestion applies the informational-question heuristic: long enough, not a
// short strong action phrase, and either question-prefixed for the language
// or carrying a question mark.
func isQuestion(query string, lang types.Language) bool {
	if len(query) < minQuestionLen {
		return false
	}
	if strongActionPhrases[strings.ToLower(strings.TrimRight(query, "?! "))] {
		return false
	}
	if strings.Contains(query, "?") {
		return true
	}

	prefixes := questionPrefixes[lang]
	if prefixes == nil {
		prefixes = questionPrefixes[types.LangEN]
	}
	padded := " " + strings.ToLower(query) + " "
	for _, p := range prefixes {
		if strings.HasPrefix(strings.ToLower(query), p+" ") {
			return true
		}
		if strings.Contains(padded, " "+p+" ") {
			return true
		}
	}
	return false
}

// confidenceFromTags is monotonic in the number of distinct tags: zero tags
// gets a fixed low confidence, each tag adds 0.2 over a 0.4 base, capped at 1.
func confidenceFromTags(n int) float64 {
	if n == 0 {
		return 0.2
	}
	c := 0.4 + 0.2*float64(n)
	if c > 1.0 {
		c = 1.0
	}
	return c
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range normalize.Tokenize(s) {
		set[tok] = true
	}
	return set
}
