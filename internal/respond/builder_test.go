package respond

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfind/internal/knowledge"
	"wayfind/internal/skill"
	"wayfind/internal/types"
)

func findSkill(t *testing.T, id string) *skill.Skill {
	t.Helper()
	r, err := skill.NewRegistry(skill.DefaultCatalog())
	require.NoError(t, err)
	s, ok := r.Get(id)
	require.True(t, ok)
	return s
}

// TestBuildSkillResponse verifies the per-plan-type templates in both
// languages and confirmation prompt propagation.
func TestBuildSkillResponse(t *testing.T) {
	b := NewBuilder(3)

	t.Run("NavigationEN", func(t *testing.T) {
		res := &skill.Result{
			Skill: findSkill(t, "nav-tasks"),
			Plan:  types.ActionPlan{Type: types.PlanNavigation, TargetLocation: "/tasks"},
		}
		response, chips := b.BuildSkillResponse(res, types.LangEN)
		assert.Contains(t, response, "**Tasks**")
		assert.Contains(t, response, "/tasks")
		assert.NotEmpty(t, chips)
	})

	t.Run("MutationESWithPrompt", func(t *testing.T) {
		res := &skill.Result{
			Skill: findSkill(t, "create-task"),
			Plan: types.ActionPlan{
				Type:                 types.PlanMutation,
				RequiresConfirmation: true,
				ConfirmationPrompt:   "Quieres que cree esta tarea?",
			},
		}
		response, _ := b.BuildSkillResponse(res, types.LangES)
		assert.Contains(t, response, "**Crear una tarea**")
		assert.Contains(t, response, "Quieres que cree esta tarea?")
	})

	t.Run("InstructionEN", func(t *testing.T) {
		res := &skill.Result{
			Skill: findSkill(t, "export-report"),
			Plan:  types.ActionPlan{Type: types.PlanInstruction, Payload: "export_report"},
		}
		response, _ := b.BuildSkillResponse(res, types.LangEN)
		assert.Contains(t, response, "**Export the report**")
	})
}

// TestBuildClarifyingResponse verifies the single affirmative chip whose
// query re-enters the pipeline in the user's language.
func TestBuildClarifyingResponse(t *testing.T) {
	b := NewBuilder(3)
	s := findSkill(t, "nav-tasks")

	t.Run("English", func(t *testing.T) {
		response, chips := b.BuildClarifyingResponse(s, types.LangEN)
		assert.Contains(t, response, "**Tasks**")
		require.Len(t, chips, 1)
		assert.Equal(t, "go to tasks", chips[0].Query)
	})

	t.Run("Spanish", func(t *testing.T) {
		response, chips := b.BuildClarifyingResponse(s, types.LangES)
		assert.Contains(t, response, "**Tareas**")
		require.Len(t, chips, 1)
		assert.Equal(t, "ve a tareas", chips[0].Query)
	})
}

// TestBuildAmbiguousResponse verifies option listing and the chip cap.
func TestBuildAmbiguousResponse(t *testing.T) {
	b := NewBuilder(3)
	response, chips := b.BuildAmbiguousResponse(
		[]string{"Tasks", "Projects", "Reports", "Team"}, types.LangEN)
	assert.Contains(t, response, "Tasks")
	assert.Len(t, chips, 3)
}

// TestBuildEmptyStateResponse verifies the coaching fallback carries example
// chips in the right language.
func TestBuildEmptyStateResponse(t *testing.T) {
	b := NewBuilder(3)

	response, chips := b.BuildEmptyStateResponse(types.LangES)
	assert.Contains(t, response, "**ve a tareas**")
	require.NotEmpty(t, chips)
	assert.Equal(t, "ve a tareas", chips[0].Query)

	response, chips = b.BuildEmptyStateResponse(types.LangEN)
	assert.Contains(t, response, "**go to tasks**")
	assert.Equal(t, "go to tasks", chips[0].Query)
}

// TestBuildKnowledgeResponse verifies grounded answers link their related
// destinations as chips.
func TestBuildKnowledgeResponse(t *testing.T) {
	b := NewBuilder(3)
	hit := knowledge.Hit{
		Document: knowledge.Document{
			Title:               "Reports",
			Description:         "Reports show progress.",
			LongForm:            "The reports screen charts completed work.",
			RelatedDestinations: []string{"/reports", "/dashboard"},
		},
		Score: 0.5,
	}
	response, chips := b.BuildKnowledgeResponse(hit, types.LangEN)
	assert.Contains(t, response, "**Reports**")
	require.Len(t, chips, 2)
	assert.Equal(t, "go to /reports", chips[0].Query)
}

// TestBuildTransformResponse verifies payload echo and the empty-payload
// prompt.
func TestBuildTransformResponse(t *testing.T) {
	b := NewBuilder(3)

	withPayload := b.BuildTransformResponse("summarize", "the quarterly report", types.LangEN)
	assert.Contains(t, withPayload, "summarize")
	assert.Contains(t, withPayload, "**the quarterly report**")

	empty := b.BuildTransformResponse("translate", "  ", types.LangES)
	assert.Contains(t, empty, "**traduzca**")
}

// TestFixedResponses spot-checks the remaining bilingual templates.
func TestFixedResponses(t *testing.T) {
	b := NewBuilder(3)

	assert.Contains(t, b.BuildRoleDeniedResponse(findSkill(t, "invite-member"), types.LangEN), "admin")
	assert.Contains(t, b.BuildOutOfScopeResponse(types.LangES), "aplicacion")
	assert.Contains(t, b.BuildTooLongResponse(types.LangEN), "too long")
	assert.Contains(t, b.BuildCancelResponse(types.LangES), "cancele")
}
