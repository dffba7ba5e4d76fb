package skill

import (
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"wayfind/internal/config"
	"wayfind/internal/logging"
	"wayfind/internal/normalize"
	"wayfind/internal/types"
)

// Routing score weights, floored at zero after summing.
const (
	bonusCommandPhrase = 3 // explicit command-phrase prefix
	bonusStrongVerb    = 2 // strong verb for the detected language
	bonusContext       = 1 // on a recognized location
	penaltyNegation    = 2 // negation/contradiction pattern
)

var strongVerbs = map[types.Language][]string{
	types.LangEN: {"go", "open", "show", "create", "start", "take", "view"},
	types.LangES: {"ve", "ir", "abre", "abrir", "muestra", "crear", "crea", "llevame"},
}

var negationPatterns = []string{
	"don't", "dont", "do not", "not ", "never", "no quiero", "nunca", "no ",
}

// MatchContext is the per-turn context the matcher scores against.
type MatchContext struct {
	Location string
	// KnownLocation is true when the current location is registered, earning
	// the contextual-relevance bonus.
	KnownLocation bool
	Language      types.Language
	User          types.UserContext
}

// Result is a committed match.
type Result struct {
	Skill           *Skill
	Confidence      float64
	Plan            types.ActionPlan
	IsFuzzy         bool
	FuzzySimilarity float64
}

// Clarification is the alternative outcome when the top candidates score too
// close together to commit.
type Clarification struct {
	NeedsClarification bool
	Options            []string // up to 3 human-readable labels
}

// Matcher scores registry skills against normalized input. Matching is a pure
// function of (query, context, registry) plus the two retrievable "last
// blocked" values, which are consumed on read.
type Matcher struct {
	registry *Registry
	policy   config.PolicyConfig

	mu                sync.Mutex
	lastBlockedSkill  string
	lastBlockedReason string
}

// NewMatcher creates a matcher over a frozen registry.
func NewMatcher(registry *Registry, policy config.PolicyConfig) *Matcher {
	return &Matcher{registry: registry, policy: policy}
}

// candidate is one scored skill during a matching pass.
type candidate struct {
	skill      *Skill
	score      float64
	routing    int
	combined   float64
	similarity float64 // mean similarity of fuzzy hits (fuzzy pass only)
}

// Match runs the exact pass, then the fuzzy pass, and returns exactly one of
// a committed result, a clarification, or neither. Every call starts with a
// clean blocked state; a blocked candidate is recorded only when the call
// commits nothing, so it can never leak into a later turn.
func (m *Matcher) Match(query string, mctx MatchContext) (*Result, *Clarification) {
	timer := logging.StartTimer(logging.CategoryMatch, "Match")
	defer timer.Stop()

	m.clearBlocked()

	tokens := normalize.Tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	inScope := m.registry.ForLocation(mctx.Location)
	logging.MatchDebug("query=%q tokens=%d inScope=%d", query, len(tokens), len(inScope))

	// Exact pass.
	exact := m.exactPass(query, tokens, inScope, mctx)
	if len(exact) > 0 {
		return m.selectCandidate(exact, mctx, false)
	}

	// Fuzzy pass: non-mutation skills only.
	fuzzy, blocked := m.fuzzyPass(query, tokens, inScope, mctx)
	if len(fuzzy) > 0 {
		return m.selectCandidate(fuzzy, mctx, true)
	}
	if blocked != nil {
		m.recordBlocked(blocked.skill.ID, "low-confidence fuzzy match")
	}
	return nil, nil
}

func (m *Matcher) exactPass(query string, tokens []string, skills []*Skill, mctx MatchContext) []candidate {
	var out []candidate
	for _, s := range skills {
		score := coverageScore(tokens, s.AllKeywords())
		if score < m.policy.MinConfidence {
			continue
		}
		routing := m.routingScore(query, s, mctx)
		out = append(out, candidate{
			skill:    s,
			score:    score,
			routing:  routing,
			combined: 10*score + float64(routing),
		})
		logging.MatchDebug("exact candidate %s score=%.3f routing=%d", s.ID, score, routing)
	}
	return out
}

// fuzzyPass scores skills by per-token edit-distance similarity. Scores
// between the match threshold and the execution threshold are held back as
// the blocked candidate instead of executing.
func (m *Matcher) fuzzyPass(query string, tokens []string, skills []*Skill, mctx MatchContext) ([]candidate, *candidate) {
	var out []candidate
	var bestBlocked *candidate

	for _, s := range skills {
		if s.Mutating {
			continue
		}
		score, meanSim := m.fuzzyCoverage(tokens, s.AllKeywords())
		if score < m.policy.MinConfidence {
			continue
		}
		routing := m.routingScore(query, s, mctx)
		c := candidate{
			skill:      s,
			score:      score,
			routing:    routing,
			combined:   10*score + float64(routing),
			similarity: meanSim,
		}
		if score < m.policy.FuzzyExecution {
			logging.MatchDebug("fuzzy blocked %s score=%.3f (< execution %.2f)", s.ID, score, m.policy.FuzzyExecution)
			if bestBlocked == nil || c.combined > bestBlocked.combined {
				blocked := c
				bestBlocked = &blocked
			}
			continue
		}
		logging.MatchDebug("fuzzy candidate %s score=%.3f sim=%.3f", s.ID, score, meanSim)
		out = append(out, c)
	}
	return out, bestBlocked
}

// selectCandidate applies tier ordering, combined-score ordering, and the
// ambiguity band.
func (m *Matcher) selectCandidate(cands []candidate, mctx MatchContext, fuzzy bool) (*Result, *Clarification) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].skill.Tier != cands[j].skill.Tier {
			return cands[i].skill.Tier < cands[j].skill.Tier
		}
		return cands[i].combined > cands[j].combined
	})

	top := cands[0]
	if len(cands) > 1 {
		second := cands[1]
		if second.skill.Tier == top.skill.Tier &&
			top.combined-second.combined <= m.policy.AmbiguityBand {
			options := make([]string, 0, 3)
			for _, c := range cands {
				options = append(options, c.skill.Label(mctx.Language))
				if len(options) == 3 {
					break
				}
			}
			logging.Match("ambiguous: %v", options)
			return nil, &Clarification{NeedsClarification: true, Options: options}
		}
	}

	skillCtx := types.SkillContext{
		User:     mctx.User,
		Location: mctx.Location,
		Language: mctx.Language,
	}
	res := &Result{
		Skill:           top.skill,
		Confidence:      top.score,
		Plan:            top.skill.Execute(skillCtx),
		IsFuzzy:         fuzzy,
		FuzzySimilarity: top.similarity,
	}
	logging.Match("matched %s confidence=%.3f fuzzy=%v", top.skill.ID, top.score, fuzzy)
	return res, nil
}

// routingScore rewards explicit command phrasing, strong verbs, and context,
// and penalizes negation. Floored at zero.
func (m *Matcher) routingScore(query string, s *Skill, mctx MatchContext) int {
	score := 0
	lower := strings.ToLower(query)

	for _, phrase := range s.CommandPhrases {
		if strings.HasPrefix(lower, strings.ToLower(phrase)) {
			score += bonusCommandPhrase
			break
		}
	}

	verbs := strongVerbs[mctx.Language]
	padded := " " + lower + " "
	for _, v := range verbs {
		if strings.Contains(padded, " "+v+" ") {
			score += bonusStrongVerb
			break
		}
	}

	if mctx.KnownLocation {
		score += bonusContext
	}

	for _, neg := range negationPatterns {
		if strings.Contains(padded, " "+strings.TrimRight(neg, " ")+" ") {
			score -= penaltyNegation
			break
		}
	}

	if score < 0 {
		score = 0
	}
	return score
}

// coverageScore averages keyword coverage and token coverage, where a match
// is substring containment in either direction (exact match for short
// strings).
func coverageScore(tokens, keywords []string) float64 {
	if len(tokens) == 0 || len(keywords) == 0 {
		return 0
	}

	kwHits := 0
	for _, kw := range keywords {
		for _, tok := range tokens {
			if containsEither(tok, kw) {
				kwHits++
				break
			}
		}
	}
	tokHits := 0
	for _, tok := range tokens {
		for _, kw := range keywords {
			if containsEither(tok, kw) {
				tokHits++
				break
			}
		}
	}

	kwFrac := float64(kwHits) / float64(len(keywords))
	tokFrac := float64(tokHits) / float64(len(tokens))
	return (kwFrac + tokFrac) / 2
}

// fuzzyCoverage mirrors coverageScore, but a token hits a keyword only when
// their normalized edit-distance similarity clears the similarity floor. The
// result is scaled down so fuzzy scores stay below exact scores.
func (m *Matcher) fuzzyCoverage(tokens, keywords []string) (float64, float64) {
	if len(tokens) == 0 || len(keywords) == 0 {
		return 0, 0
	}

	var simSum float64
	simCount := 0

	kwHits := 0
	for _, kw := range keywords {
		best := 0.0
		for _, tok := range tokens {
			if sim := similarity(tok, kw); sim > best {
				best = sim
			}
		}
		if best >= m.policy.FuzzySimilarity {
			kwHits++
			simSum += best
			simCount++
		}
	}
	tokHits := 0
	for _, tok := range tokens {
		for _, kw := range keywords {
			if similarity(tok, kw) >= m.policy.FuzzySimilarity {
				tokHits++
				break
			}
		}
	}

	kwFrac := float64(kwHits) / float64(len(keywords))
	tokFrac := float64(tokHits) / float64(len(tokens))
	score := (kwFrac + tokFrac) / 2 * m.policy.FuzzyScale

	meanSim := 0.0
	if simCount > 0 {
		meanSim = simSum / float64(simCount)
	}
	return score, meanSim
}

// similarity is 1 - editDistance/maxLen, in [0,1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	sim := 1 - float64(dist)/float64(maxLen)
	if sim < 0 {
		sim = 0
	}
	return sim
}

// containsEither treats a token and keyword as matching when either contains
// the other. Strings under three runes match only by equality, so filler
// words like "a" or "to" cannot hit inside longer keywords.
func containsEither(a, b string) bool {
	if len(a) < 3 || len(b) < 3 {
		return a == b
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// recordBlocked stores the blocked skill for the orchestrator to retrieve.
func (m *Matcher) recordBlocked(skillID, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastBlockedSkill = skillID
	m.lastBlockedReason = reason
}

// clearBlocked drops any held candidate from an earlier call.
func (m *Matcher) clearBlocked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastBlockedSkill, m.lastBlockedReason = "", ""
}

// LastBlocked returns and clears the last blocked skill id and reason. The
// second read after any block returns empty values.
func (m *Matcher) LastBlocked() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, r := m.lastBlockedSkill, m.lastBlockedReason
	m.lastBlockedSkill, m.lastBlockedReason = "", ""
	return s, r
}
