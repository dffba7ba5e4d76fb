// Package session owns the process-local, session-scoped conversational
// state: the active multi-step flow, its step index and start time, the last
// route and skill, and the language preference. All mutation goes through
// named transition functions on the Engine so multiple sessions can run side
// by side; there is no ambient global state.
package session

import (
	"time"

	"github.com/google/uuid"

	"wayfind/internal/clock"
	"wayfind/internal/logging"
	"wayfind/internal/types"
)

// State is one live session's conversational state. FlowStepIndex is
// meaningful only while ActiveFlow is non-empty.
type State struct {
	ConversationID    string
	ActiveFlow        string
	FlowStepIndex     int
	FlowStartedAt     time.Time
	ActiveLocation    string
	LastSkillExecuted string
	Language          types.Language
}

// Engine owns one session's state and its transitions. Not safe for
// concurrent writers: the deployment serializes turns per session.
type Engine struct {
	clk   clock.Clock
	ttl   time.Duration
	flows *FlowSet
	state State
}

// NewEngine creates a session with a fresh conversation id. The clock is
// injectable so TTL expiry can be simulated in tests.
func NewEngine(flows *FlowSet, ttl time.Duration, clk clock.Clock) *Engine {
	return &Engine{
		clk:   clk,
		ttl:   ttl,
		flows: flows,
		state: State{
			ConversationID: uuid.NewString(),
			Language:       types.LangEN,
		},
	}
}

// State returns a snapshot of the current session state.
func (e *Engine) State() State { return e.state }

// Flows returns the flow configuration this session runs against.
func (e *Engine) Flows() *FlowSet { return e.flows }

// SetLocation records the user's current location.
func (e *Engine) SetLocation(location string) {
	e.state.ActiveLocation = location
}

// SetLanguage records the detected language preference.
func (e *Engine) SetLanguage(lang types.Language) {
	e.state.Language = lang
}

// SetFlowFromSkill maps a just-executed skill to its flow via the static
// skill-to-flow table and stamps the flow start time. Skills outside any
// flow leave the state untouched.
func (e *Engine) SetFlowFromSkill(skillID, targetLocation string) {
	flow, ok := e.flows.FlowForSkill(skillID)
	if !ok {
		return
	}
	e.state.ActiveFlow = flow.ID
	e.state.FlowStepIndex = 0
	e.state.FlowStartedAt = e.clk.Now()
	if targetLocation != "" {
		e.state.ActiveLocation = targetLocation
	}
	logging.Get(logging.CategorySession).Info("flow %s started by skill %s (conv=%s)",
		flow.ID, skillID, e.state.ConversationID)
}

// ActiveFlow returns the active flow definition, or nil when none is active.
func (e *Engine) ActiveFlow() *FlowDefinition {
	if e.state.ActiveFlow == "" {
		return nil
	}
	f, ok := e.flows.Get(e.state.ActiveFlow)
	if !ok {
		return nil
	}
	return f
}

// IsFlowExpired is true once the active flow is older than the TTL window.
// Expiry is checked lazily at the start of a turn, never by a background
// timer.
func (e *Engine) IsFlowExpired() bool {
	if e.state.ActiveFlow == "" {
		return false
	}
	return e.clk.Now().Sub(e.state.FlowStartedAt) > e.ttl
}

// AdvanceStep moves the flow to its next step.
func (e *Engine) AdvanceStep() {
	if e.state.ActiveFlow == "" {
		return
	}
	e.state.FlowStepIndex++
	logging.Get(logging.CategorySession).Debug("flow %s advanced to step %d",
		e.state.ActiveFlow, e.state.FlowStepIndex)
}

// ResetFlow zeroes the flow fields without touching the conversation id.
func (e *Engine) ResetFlow() {
	if e.state.ActiveFlow != "" {
		logging.Get(logging.CategorySession).Info("flow %s reset", e.state.ActiveFlow)
	}
	e.state.ActiveFlow = ""
	e.state.FlowStepIndex = 0
	e.state.FlowStartedAt = time.Time{}
}

// ClearFlow is an alias for ResetFlow, used by explicit cancellation.
func (e *Engine) ClearFlow() { e.ResetFlow() }

// CheckUnrelatedSkillReset resets the flow when the skill just executed does
// not belong to the active flow's declared skill set.
func (e *Engine) CheckUnrelatedSkillReset(skillID string) {
	flow := e.ActiveFlow()
	if flow == nil {
		return
	}
	if !flow.HasSkill(skillID) {
		logging.Get(logging.CategorySession).Info("skill %s unrelated to flow %s, resetting",
			skillID, flow.ID)
		e.ResetFlow()
	}
}

// RecordSkill stores the last executed skill id.
func (e *Engine) RecordSkill(skillID string) {
	e.state.LastSkillExecuted = skillID
}

// Reset restores defaults (logout or explicit cancellation of the whole
// conversation), keeping a fresh conversation id.
func (e *Engine) Reset() {
	e.state = State{
		ConversationID: uuid.NewString(),
		Language:       types.LangEN,
	}
}
