// Package types holds the shared data structures passed between pipeline
// stages. It exists so that leaf packages (normalize, guard, respond) and the
// orchestrator can exchange values without import cycles.
package types

// Language is one of the two supported locales.
type Language string

const (
	// LangEN is the primary locale; detection falls back to it.
	LangEN Language = "en"
	// LangES is the secondary locale.
	LangES Language = "es"
)

// Role is the caller's resolved role, supplied by the host.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleWorker  Role = "worker"
)

// UserContext is the opaque auth context injected by the host per turn.
type UserContext struct {
	UserID   string
	Role     Role
	TenantID string
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// NormalizationTrace records every intermediate stage of the normalization
// pipeline. Immutable once produced; used for debugging and for downstream
// language-aware branching.
type NormalizationTrace struct {
	Raw                   string
	AfterDiacriticRemoval string
	AfterSpeechCorrection string
	AfterSlangNormalized  string
	FinalNormalized       string // always lowercase, whitespace-collapsed
	DetectedLanguage      Language
}

// =============================================================================
// ACTION PLANS
// =============================================================================

// PlanType classifies what an approved plan does.
type PlanType string

const (
	PlanNavigation  PlanType = "navigation"
	PlanMutation    PlanType = "mutation"
	PlanInstruction PlanType = "instruction"
)

// ActionPlan is the structured result of a matched skill describing what
// should happen and whether it needs user confirmation. A mutation plan never
// causes a persisted side effect in this phase.
type ActionPlan struct {
	Type                 PlanType
	TargetLocation       string
	Payload              string
	RequiresConfirmation bool
	ConfirmationPrompt   string
	UIHints              map[string]string
}

// SkillContext is what a skill's execute function sees when producing a plan.
type SkillContext struct {
	User     UserContext
	Location string
	Language Language
}

// =============================================================================
// WARNINGS, CHIPS, DEBUG
// =============================================================================

// Warning codes attached to the per-turn debug trace. None may be swallowed
// silently: every warning that triggers a fallback is observable by the caller.
const (
	WarnRouteNotRegistered    = "route_not_registered"
	WarnSkillNotRegistered    = "skill_not_registered"
	WarnMalformedResponse     = "malformed_response"
	WarnKnowledgeSearchFailed = "knowledge_search_failed"
	WarnFlowExpired           = "flow_expired"
)

// ValidationWarning records a recovered validation failure.
type ValidationWarning struct {
	Code   string
	Detail string
}

// SuggestionChip is a tappable follow-up. Query is itself a valid re-entrant
// utterance the system can consume.
type SuggestionChip struct {
	Label string
	Query string
}

// DebugTrace aggregates everything the pipeline observed in one turn.
type DebugTrace struct {
	Normalization NormalizationTrace
	Tier1Locked   bool
	Command       string
	Mode          string
	Intents       []string
	Confidence    float64

	// MatchPath is one of "", "exact", "fuzzy", "blocked", "ambiguous",
	// "continuation", "knowledge", "tier1".
	MatchPath       string
	MatchedSkillID  string
	FuzzySimilarity float64

	Warnings []ValidationWarning
	Stages   []string
}

// AddWarning appends a warning to the trace.
func (d *DebugTrace) AddWarning(code, detail string) {
	d.Warnings = append(d.Warnings, ValidationWarning{Code: code, Detail: detail})
}

// AddStage records that a pipeline stage ran, for trace readability.
func (d *DebugTrace) AddStage(name string) {
	d.Stages = append(d.Stages, name)
}
