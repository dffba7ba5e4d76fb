package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfind/internal/types"
)

// TestRoute_Tier1Lock verifies that transformation prefixes lock the turn and
// carry the remainder as an opaque payload.
func TestRoute_Tier1Lock(t *testing.T) {
	r := NewRouter()

	cases := []struct {
		name    string
		query   string
		lang    types.Language
		command string
		payload string
	}{
		{"TranslateEN", "translate hello world", types.LangEN, "translate", "hello world"},
		{"TranslateColon", "translate: hola mundo", types.LangEN, "translate", "hola mundo"},
		{"SummarizeES", "resumeme este parrafo largo", types.LangES, "summarize", "este parrafo largo"},
		{"ExplainES", "explicame los roles", types.LangES, "explain", "los roles"},
		{"RewriteEN", "rewrite this sentence", types.LangEN, "rewrite", "this sentence"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := r.Route(tc.query, tc.lang)
			require.True(t, res.Tier1Locked)
			assert.Equal(t, tc.command, res.Command)
			assert.Equal(t, tc.payload, res.Payload)
		})
	}
}

// TestRoute_PayloadIsOpaque verifies that command-looking text after a tier-1
// prefix stays payload, never a command.
func TestRoute_PayloadIsOpaque(t *testing.T) {
	r := NewRouter()
	res := r.Route("translate go to tasks", types.LangEN)
	require.True(t, res.Tier1Locked)
	assert.Equal(t, "translate", res.Command)
	assert.Equal(t, "go to tasks", res.Payload)
	assert.Empty(t, res.DetectedIntents)
}

// TestRoute_KnowledgeMode verifies the informational-question heuristic.
func TestRoute_KnowledgeMode(t *testing.T) {
	r := NewRouter()

	t.Run("QuestionMark", func(t *testing.T) {
		res := r.Route("is there a way to see reports?", types.LangEN)
		assert.Equal(t, ModeKnowledge, res.Mode)
		assert.InDelta(t, 0.9, res.RoutingConfidence, 1e-9)
	})

	t.Run("EnglishPrefix", func(t *testing.T) {
		res := r.Route("how do i create a project", types.LangEN)
		assert.Equal(t, ModeKnowledge, res.Mode)
	})

	t.Run("SpanishPrefix", func(t *testing.T) {
		res := r.Route("como funcionan los permisos", types.LangES)
		assert.Equal(t, ModeKnowledge, res.Mode)
	})

	t.Run("ShortUtteranceNeverQuestion", func(t *testing.T) {
		res := r.Route("what next", types.LangEN)
		assert.Empty(t, res.Mode)
	})

	t.Run("StrongActionPhraseStaysOnSkillPath", func(t *testing.T) {
		res := r.Route("que sigue", types.LangES)
		assert.Empty(t, res.Mode)
	})

	t.Run("CommandIsNotQuestion", func(t *testing.T) {
		res := r.Route("go to my tasks please", types.LangEN)
		assert.Empty(t, res.Mode)
	})
}

// TestRoute_IntentTags verifies the non-exclusive bucket tags and the
// confidence curve.
func TestRoute_IntentTags(t *testing.T) {
	r := NewRouter()

	t.Run("NavigationPlusTask", func(t *testing.T) {
		res := r.Route("go to tasks", types.LangEN)
		assert.ElementsMatch(t, []string{"navigation", "task"}, res.DetectedIntents)
		assert.InDelta(t, 0.8, res.RoutingConfidence, 1e-9)
	})

	t.Run("CreationPlusProject", func(t *testing.T) {
		res := r.Route("crear proyecto", types.LangES)
		assert.ElementsMatch(t, []string{"creation", "project"}, res.DetectedIntents)
	})

	t.Run("NoTags", func(t *testing.T) {
		res := r.Route("banana", types.LangEN)
		assert.Empty(t, res.DetectedIntents)
		assert.InDelta(t, 0.2, res.RoutingConfidence, 1e-9)
	})

	t.Run("ConfidenceCapped", func(t *testing.T) {
		res := r.Route("go create new task project report team help settings", types.LangEN)
		assert.InDelta(t, 1.0, res.RoutingConfidence, 1e-9)
	})
}

// TestRoute_EmptyQuery verifies the zero classification.
func TestRoute_EmptyQuery(t *testing.T) {
	res := NewRouter().Route("   ", types.LangEN)
	assert.False(t, res.Tier1Locked)
	assert.Empty(t, res.Mode)
	assert.Empty(t, res.DetectedIntents)
	assert.Zero(t, res.RoutingConfidence)
}

// TestExpandSynonyms verifies canonical keywords are appended, not
// substituted.
func TestExpandSynonyms(t *testing.T) {
	assert.Equal(t, "go home dashboard", ExpandSynonyms("go home"))
	assert.Equal(t, "mis pendientes tareas", ExpandSynonyms("mis pendientes"))
	assert.Equal(t, "open tasks", ExpandSynonyms("open tasks"))
}
