package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfind/internal/config"
	"wayfind/internal/types"
)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	r, err := NewRegistry(DefaultCatalog())
	require.NoError(t, err)
	return NewMatcher(r, config.Default().Policy)
}

func enContext() MatchContext {
	return MatchContext{
		Location:      "/dashboard",
		KnownLocation: true,
		Language:      types.LangEN,
		User:          types.UserContext{UserID: "u1", Role: types.RoleWorker},
	}
}

// TestMatch_ExactNavigation verifies a clean command commits without
// clarification.
func TestMatch_ExactNavigation(t *testing.T) {
	m := newTestMatcher(t)

	res, clar := m.Match("go to tasks", enContext())
	require.Nil(t, clar)
	require.NotNil(t, res)
	assert.Equal(t, "nav-tasks", res.Skill.ID)
	assert.Equal(t, types.PlanNavigation, res.Plan.Type)
	assert.Equal(t, "/tasks", res.Plan.TargetLocation)
	assert.False(t, res.IsFuzzy)
	assert.GreaterOrEqual(t, res.Confidence, 0.35)
}

// TestMatch_SpanishNavigation verifies bilingual keyword coverage.
func TestMatch_SpanishNavigation(t *testing.T) {
	m := newTestMatcher(t)
	mctx := enContext()
	mctx.Language = types.LangES

	res, clar := m.Match("ve a tareas", mctx)
	require.Nil(t, clar)
	require.NotNil(t, res)
	assert.Equal(t, "nav-tasks", res.Skill.ID)
}

// TestMatch_TierPrecedence verifies an action skill outranks navigation when
// both clear the confidence floor.
func TestMatch_TierPrecedence(t *testing.T) {
	m := newTestMatcher(t)
	mctx := enContext()
	mctx.Language = types.LangES

	res, clar := m.Match("crear proyecto", mctx)
	require.Nil(t, clar)
	require.NotNil(t, res)
	assert.Equal(t, "create-project", res.Skill.ID)
	assert.Equal(t, types.PlanMutation, res.Plan.Type)
	assert.True(t, res.Plan.RequiresConfirmation)
}

// TestMatch_Ambiguity verifies a bare verb hits several same-tier skills and
// triggers a clarification instead of a guess.
func TestMatch_Ambiguity(t *testing.T) {
	m := newTestMatcher(t)

	res, clar := m.Match("open", enContext())
	assert.Nil(t, res)
	require.NotNil(t, clar)
	assert.True(t, clar.NeedsClarification)
	assert.NotEmpty(t, clar.Options)
	assert.LessOrEqual(t, len(clar.Options), 3)
}

// TestMatch_FuzzyBlocked verifies a near-miss is held back rather than
// executed, and that the blocked skill is retrievable exactly once.
func TestMatch_FuzzyBlocked(t *testing.T) {
	m := newTestMatcher(t)

	res, clar := m.Match("dashbord", enContext())
	assert.Nil(t, res)
	assert.Nil(t, clar)

	id, reason := m.LastBlocked()
	assert.Equal(t, "nav-dashboard", id)
	assert.NotEmpty(t, reason)

	id, reason = m.LastBlocked()
	assert.Empty(t, id)
	assert.Empty(t, reason)
}

// TestMatch_BlockedNeverLeaksAcrossCalls verifies that a candidate held back
// during a call that commits another skill is not retrievable from a later
// call that matches nothing.
func TestMatch_BlockedNeverLeaksAcrossCalls(t *testing.T) {
	r, err := NewRegistry([]Skill{
		{
			ID:   "goto-tasks",
			Tier: TierNavigation,
			Keywords: map[types.Language][]string{
				types.LangEN: {"tasks"},
			},
			Execute: NavigateTo("/tasks"),
		},
		{
			ID:   "task-board",
			Tier: TierNavigation,
			Keywords: map[types.Language][]string{
				types.LangEN: {"tasks", "board"},
			},
			Execute: NavigateTo("/tasks/board"),
		},
	})
	require.NoError(t, err)
	m := NewMatcher(r, config.Default().Policy)

	// "tazsks" commits goto-tasks fuzzily while task-board lands in the
	// blocked band; the held candidate must die with the commit.
	res, clar := m.Match("tazsks", enContext())
	require.Nil(t, clar)
	require.NotNil(t, res)
	assert.Equal(t, "goto-tasks", res.Skill.ID)

	res, clar = m.Match("qqqq wwww", enContext())
	assert.Nil(t, res)
	assert.Nil(t, clar)

	id, reason := m.LastBlocked()
	assert.Empty(t, id)
	assert.Empty(t, reason)
}

// TestMatch_FuzzyExecutes verifies a high-confidence fuzzy hit commits and is
// flagged as fuzzy.
func TestMatch_FuzzyExecutes(t *testing.T) {
	r, err := NewRegistry([]Skill{{
		ID:   "goto-tasks",
		Tier: TierNavigation,
		Keywords: map[types.Language][]string{
			types.LangEN: {"tasks"},
		},
		Execute: NavigateTo("/tasks"),
	}})
	require.NoError(t, err)
	m := NewMatcher(r, config.Default().Policy)

	res, clar := m.Match("tazsks", enContext())
	require.Nil(t, clar)
	require.NotNil(t, res)
	assert.Equal(t, "goto-tasks", res.Skill.ID)
	assert.True(t, res.IsFuzzy)
	assert.Greater(t, res.FuzzySimilarity, 0.82)
}

// TestMatch_MutationNeverFuzzy verifies mutation skills are excluded from the
// fuzzy pass entirely.
func TestMatch_MutationNeverFuzzy(t *testing.T) {
	r, err := NewRegistry([]Skill{{
		ID:   "purge-data",
		Tier: TierAction,
		Keywords: map[types.Language][]string{
			types.LangEN: {"purge"},
		},
		Mutating: true,
		Execute: ProposeMutation(map[types.Language]string{
			types.LangEN: "Really purge?",
		}),
	}})
	require.NoError(t, err)
	m := NewMatcher(r, config.Default().Policy)

	res, clar := m.Match("purgge", enContext())
	assert.Nil(t, res)
	assert.Nil(t, clar)

	id, _ := m.LastBlocked()
	assert.Empty(t, id)
}

// TestMatch_EmptyQuery verifies the matcher declines empty input.
func TestMatch_EmptyQuery(t *testing.T) {
	m := newTestMatcher(t)
	res, clar := m.Match("  ", enContext())
	assert.Nil(t, res)
	assert.Nil(t, clar)
}

// TestRoutingScore verifies the bonus/penalty arithmetic and the zero floor.
func TestRoutingScore(t *testing.T) {
	m := newTestMatcher(t)
	s, ok := m.registry.Get("nav-settings")
	require.True(t, ok)

	t.Run("FullBonuses", func(t *testing.T) {
		got := m.routingScore("open settings", s, enContext())
		assert.Equal(t, bonusCommandPhrase+bonusStrongVerb+bonusContext, got)
	})

	t.Run("NegationPenalty", func(t *testing.T) {
		got := m.routingScore("don't open settings", s, enContext())
		assert.Equal(t, bonusStrongVerb+bonusContext-penaltyNegation, got)
	})

	t.Run("FlooredAtZero", func(t *testing.T) {
		mctx := enContext()
		mctx.KnownLocation = false
		got := m.routingScore("never do that", s, mctx)
		assert.Equal(t, 0, got)
	})
}

// TestCoverageScore verifies the symmetric substring coverage average.
func TestCoverageScore(t *testing.T) {
	score := coverageScore([]string{"go", "to", "tasks"}, []string{"go", "tasks", "task"})
	// Keywords: all three hit (task via substring). Tokens: 2 of 3 hit.
	assert.InDelta(t, (1.0+2.0/3.0)/2, score, 1e-9)

	assert.Zero(t, coverageScore(nil, []string{"go"}))
	assert.Zero(t, coverageScore([]string{"go"}, nil))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, similarity("tasks", "tasks"), 1e-9)
	assert.InDelta(t, 1-1.0/9.0, similarity("dashbord", "dashboard"), 1e-9)
	assert.Less(t, similarity("banana", "tasks"), 0.5)
}
