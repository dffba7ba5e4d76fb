package session

import (
	"fmt"
	"strings"

	"wayfind/internal/logging"
	"wayfind/internal/normalize"
	"wayfind/internal/types"
)

// ambiguousContinuations are the short follow-up phrases that mean "keep
// guiding me" while a flow is active. Keyed by normalized form.
var ambiguousContinuations = map[types.Language]map[string]bool{
	types.LangEN: {
		"now what": true, "what now": true, "ok": true, "okay": true,
		"next": true, "what next": true, "whats next": true,
		"and now": true, "then what": true, "done": true, "and then": true,
	},
	types.LangES: {
		"que sigue": true, "ahora que": true, "y ahora": true, "ok": true,
		"listo": true, "siguiente": true, "ya": true, "vale": true,
		"que hago ahora": true,
	},
}

// ContinuationResult is the handler's outcome. The handler never triggers
// navigation itself; it only returns guidance text and optional chips.
type ContinuationResult struct {
	Handled      bool
	Response     string
	Chips        []types.SuggestionChip
	Drift        bool
	StepMismatch bool
}

// Continuation intercepts short ambiguous follow-ups while a flow is active
// and either advances guidance or raises a drift-recovery prompt.
type Continuation struct {
	engine *Engine
	maxLen int
}

// NewContinuation creates the handler for one session engine.
func NewContinuation(engine *Engine, maxLen int) *Continuation {
	return &Continuation{engine: engine, maxLen: maxLen}
}

// Handle inspects a query against the active flow. It returns nil when the
// handler does not engage (no active flow, or not an ambiguous follow-up).
func (c *Continuation) Handle(query, location string, lang types.Language) *ContinuationResult {
	flow := c.engine.ActiveFlow()
	if flow == nil {
		return nil
	}
	if len(query) > c.maxLen {
		return nil
	}

	normalized := strings.Join(normalize.Tokenize(query), " ")
	set := ambiguousContinuations[lang]
	if set == nil || !set[normalized] {
		return nil
	}

	logging.Get(logging.CategoryFlow).Info("continuation %q in flow %s at %s", normalized, flow.ID, location)

	// Drift: the user wandered off every flow-valid location.
	if !flow.IsValidLocation(location) {
		return c.driftResponse(flow, lang)
	}

	// The location is flow-valid. When it no longer matches the current step
	// but does match a later step's screen, the user moved on: advance the
	// flow there and guide from that step. A flow-valid location matching no
	// step at all is still a mismatch.
	idx := c.engine.State().FlowStepIndex
	if idx >= len(flow.Steps) {
		return c.stepMismatchResponse(flow, lang)
	}
	if !locationMatchesStep(location, flow.Steps[idx]) {
		next := -1
		for i := idx + 1; i < len(flow.Steps); i++ {
			if locationMatchesStep(location, flow.Steps[i]) {
				next = i
				break
			}
		}
		if next == -1 {
			return c.stepMismatchResponse(flow, lang)
		}
		for c.engine.State().FlowStepIndex < next {
			c.engine.AdvanceStep()
		}
		idx = next
	}

	step := flow.Steps[idx]
	instruction := step.Instruction[lang]
	if instruction == "" {
		instruction = step.Instruction[types.LangEN]
	}

	var prefix string
	if lang == types.LangES {
		prefix = fmt.Sprintf("Sigues en **%s** (paso %d de %d). ", flow.Name(lang), idx+1, len(flow.Steps))
	} else {
		prefix = fmt.Sprintf("You're still in **%s** (step %d of %d). ", flow.Name(lang), idx+1, len(flow.Steps))
	}

	return &ContinuationResult{
		Handled:  true,
		Response: prefix + instruction,
	}
}

func (c *Continuation) driftResponse(flow *FlowDefinition, lang types.Language) *ContinuationResult {
	var response string
	var backLabel, backQuery, cancelLabel, cancelQuery string
	if lang == types.LangES {
		response = fmt.Sprintf(
			"Parece que saliste de **%s**. Puedo llevarte de vuelta a %s para continuar, o cancelar el proceso.",
			flow.Name(lang), flow.HomeLocation)
		backLabel, backQuery = "Volver", "ve a "+flow.HomeLocation
		cancelLabel, cancelQuery = "Cancelar", "cancelar"
	} else {
		response = fmt.Sprintf(
			"Looks like you've left **%s**. I can take you back to %s to continue, or cancel the flow.",
			flow.Name(lang), flow.HomeLocation)
		backLabel, backQuery = "Take me back", "go to "+flow.HomeLocation
		cancelLabel, cancelQuery = "Cancel", "cancel"
	}
	return &ContinuationResult{
		Handled:  true,
		Drift:    true,
		Response: response,
		Chips: []types.SuggestionChip{
			{Label: backLabel, Query: backQuery},
			{Label: cancelLabel, Query: cancelQuery},
		},
	}
}

func (c *Continuation) stepMismatchResponse(flow *FlowDefinition, lang types.Language) *ContinuationResult {
	var response string
	if lang == types.LangES {
		response = fmt.Sprintf(
			"Estas en una pantalla valida para **%s**, pero no coincide con el paso actual. Dime en que pantalla estas para seguir guiandote.",
			flow.Name(lang))
	} else {
		response = fmt.Sprintf(
			"You're on a valid screen for **%s**, but it doesn't match the current step. Tell me which screen you're on and I'll pick up from there.",
			flow.Name(lang))
	}
	return &ContinuationResult{
		Handled:      true,
		StepMismatch: true,
		Response:     response,
	}
}

func locationMatchesStep(location string, step FlowStep) bool {
	return locationMatchesPattern(trimLocation(location), step.LocationPattern)
}
