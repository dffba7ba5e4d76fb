package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfind/internal/clock"
	"wayfind/internal/types"
)

func newTestEngine(t *testing.T) (*Engine, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	return NewEngine(DefaultFlows(), 10*time.Minute, clk), clk
}

// TestEngine_FlowLifecycle verifies flow start, step advance, and reset.
func TestEngine_FlowLifecycle(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.NotEmpty(t, e.State().ConversationID)
	assert.Nil(t, e.ActiveFlow())

	e.SetFlowFromSkill("create-project", "/projects")
	flow := e.ActiveFlow()
	require.NotNil(t, flow)
	assert.Equal(t, "create-project", flow.ID)
	assert.Equal(t, 0, e.State().FlowStepIndex)
	assert.Equal(t, "/projects", e.State().ActiveLocation)

	e.AdvanceStep()
	assert.Equal(t, 1, e.State().FlowStepIndex)

	e.ResetFlow()
	assert.Nil(t, e.ActiveFlow())
	assert.Equal(t, 0, e.State().FlowStepIndex)
}

// TestEngine_SkillOutsideAnyFlow verifies that skills without a flow mapping
// leave flow state untouched.
func TestEngine_SkillOutsideAnyFlow(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SetFlowFromSkill("nav-tasks", "/tasks")
	assert.Nil(t, e.ActiveFlow())
}

// TestEngine_TTLExpiry verifies lazy expiry against a manual clock.
func TestEngine_TTLExpiry(t *testing.T) {
	e, clk := newTestEngine(t)
	e.SetFlowFromSkill("create-project", "/projects")

	clk.Advance(9 * time.Minute)
	assert.False(t, e.IsFlowExpired())

	clk.Advance(2 * time.Minute)
	assert.True(t, e.IsFlowExpired())

	// Expiry is observed, not enforced: the flow stays until cleared.
	assert.NotNil(t, e.ActiveFlow())
	e.ClearFlow()
	assert.Nil(t, e.ActiveFlow())
	assert.False(t, e.IsFlowExpired())
}

// TestEngine_UnrelatedSkillReset verifies the drift rule for skills outside
// the active flow's declared set.
func TestEngine_UnrelatedSkillReset(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SetFlowFromSkill("create-project", "/projects")

	e.CheckUnrelatedSkillReset("create-project")
	assert.NotNil(t, e.ActiveFlow())

	e.CheckUnrelatedSkillReset("nav-reports")
	assert.Nil(t, e.ActiveFlow())
}

// TestEngine_Reset verifies a full reset issues a new conversation id.
func TestEngine_Reset(t *testing.T) {
	e, _ := newTestEngine(t)
	first := e.State().ConversationID
	e.SetLanguage(types.LangES)
	e.SetFlowFromSkill("invite-member", "/team")

	e.Reset()
	assert.NotEqual(t, first, e.State().ConversationID)
	assert.Equal(t, types.LangEN, e.State().Language)
	assert.Nil(t, e.ActiveFlow())
}

// TestFlowDefinition_IsValidLocation verifies exact and wildcard location
// membership.
func TestFlowDefinition_IsValidLocation(t *testing.T) {
	flows := DefaultFlows()
	f, ok := flows.Get("create-project")
	require.True(t, ok)

	assert.True(t, f.IsValidLocation("/projects"))
	assert.True(t, f.IsValidLocation("/projects/new"))
	assert.True(t, f.IsValidLocation("/projects/42"))
	assert.False(t, f.IsValidLocation("/settings"))
	assert.False(t, f.IsValidLocation("/projectsx"))
}

func TestFlowSet_FlowForSkill(t *testing.T) {
	flows := DefaultFlows()

	f, ok := flows.FlowForSkill("invite-member")
	require.True(t, ok)
	assert.Equal(t, "invite-member", f.ID)

	_, ok = flows.FlowForSkill("nav-tasks")
	assert.False(t, ok)
}
