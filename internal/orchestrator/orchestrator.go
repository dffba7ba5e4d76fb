// Package orchestrator is the single entry point: it sequences
// normalization, intent routing, flow continuation, knowledge lookup, skill
// matching, validation, and response building for one utterance, and always
// terminates in a well-formed {response, debug} pair. It never invokes the
// execution bridge itself; the caller decides whether to act on the returned
// plan.
package orchestrator

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"wayfind/internal/config"
	"wayfind/internal/guard"
	"wayfind/internal/intent"
	"wayfind/internal/knowledge"
	"wayfind/internal/logging"
	"wayfind/internal/normalize"
	"wayfind/internal/respond"
	"wayfind/internal/session"
	"wayfind/internal/skill"
	"wayfind/internal/types"
)

// Blocked reasons surfaced to the caller.
const (
	ReasonInsufficientRole = "INSUFFICIENT_ROLE"
	ReasonOutOfScope       = "OUT_OF_SCOPE"
)

// cancelPhrases clear the active flow synchronously.
var cancelPhrases = map[string]bool{
	"cancel": true, "stop": true, "never mind": true, "forget it": true,
	"cancelar": true, "cancela": true, "para": true, "olvidalo": true,
	"dejalo": true,
}

// Result is the orchestrator's output for one turn.
type Result struct {
	Response           string
	Debug              types.DebugTrace
	ActionPlan         *types.ActionPlan
	MatchedSkill       string
	SuggestionChips    []types.SuggestionChip
	IsCoachingResponse bool
	Blocked            bool
	Reason             string
}

// Orchestrator wires the pipeline over injected configuration. One instance
// serves many sessions; per-session state arrives as an explicit handle.
type Orchestrator struct {
	cfg        *config.Config
	normalizer *normalize.Normalizer
	router     *intent.Router
	registry   *skill.Registry
	matcher    *skill.Matcher
	routes     *guard.RouteRegistry
	validator  *guard.Validator
	builder    *respond.Builder
	search     knowledge.Searcher
	log        *zap.Logger
}

// New assembles an orchestrator from the injected catalogs. search may be
// nil; knowledge questions then fall through to the out-of-scope path.
func New(cfg *config.Config, registry *skill.Registry, routes *guard.RouteRegistry, search knowledge.Searcher) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		normalizer: normalize.New(),
		router:     intent.NewRouter(),
		registry:   registry,
		matcher:    skill.NewMatcher(registry, cfg.Policy),
		routes:     routes,
		validator:  guard.NewValidator(routes, registry),
		builder:    respond.NewBuilder(cfg.Policy.MaxChips),
		search:     search,
		log:        zap.NewNop(),
	}
}

// WithLogger installs a structured logger for per-turn summaries.
func (o *Orchestrator) WithLogger(l *zap.Logger) *Orchestrator {
	if l != nil {
		o.log = l
	}
	return o
}

// Matcher exposes the matcher for hosts that pre-warm or inspect it.
func (o *Orchestrator) Matcher() *skill.Matcher { return o.matcher }

// Orchestrate processes one utterance to completion. It never panics and
// never returns an error: every branch ends in a response plus debug trace.
func (o *Orchestrator) Orchestrate(ctx context.Context, utterance, currentLocation string, user types.UserContext, sess *session.Engine) Result {
	timer := logging.StartTimer(logging.CategoryOrchestrator, "Orchestrate")
	defer timer.Stop()

	var debug types.DebugTrace

	// Oversized input is rejected before any processing. The cap counts
	// runes, not bytes, so accented text is not penalized.
	if utf8.RuneCountInString(utterance) > o.cfg.Policy.MaxUtteranceLen {
		debug.AddStage("reject:too_long")
		lang := sess.State().Language
		return Result{
			Response:           o.builder.BuildTooLongResponse(lang),
			Debug:              debug,
			IsCoachingResponse: true,
		}
	}

	// 1. Normalize.
	normalized, trace := o.normalizer.Normalize(utterance)
	debug.Normalization = trace
	debug.AddStage("normalize")
	lang := trace.DetectedLanguage
	sess.SetLanguage(lang)
	sess.SetLocation(currentLocation)

	// 2. Lazy flow TTL expiry, checked at the start of the turn.
	if sess.IsFlowExpired() {
		debug.AddWarning(types.WarnFlowExpired, fmt.Sprintf("flow %q expired", sess.State().ActiveFlow))
		sess.ClearFlow()
	}

	// 3. Explicit cancellation clears the flow synchronously.
	if cancelPhrases[normalized] {
		sess.ClearFlow()
		debug.AddStage("cancel")
		return o.finalize(Result{
			Response:           o.builder.BuildCancelResponse(lang),
			IsCoachingResponse: true,
		}, &debug, lang)
	}

	// 4. Intent routing.
	route := o.router.Route(normalized, lang)
	debug.Tier1Locked = route.Tier1Locked
	debug.Command = route.Command
	debug.Mode = route.Mode
	debug.Intents = route.DetectedIntents
	debug.Confidence = route.RoutingConfidence
	debug.AddStage("route")

	// Tier-1 transformation lock: the payload is free text, never a command.
	if route.Tier1Locked {
		debug.MatchPath = "tier1"
		plan := &types.ActionPlan{Type: types.PlanInstruction, Payload: route.Payload}
		return o.finalize(Result{
			Response:   o.builder.BuildTransformResponse(route.Command, route.Payload, lang),
			ActionPlan: plan,
		}, &debug, lang)
	}

	// 5. Flow continuation intercepts short ambiguous follow-ups.
	continuation := session.NewContinuation(sess, o.cfg.Policy.MaxContinuationLen)
	if cres := continuation.Handle(normalized, currentLocation, lang); cres != nil && cres.Handled {
		debug.MatchPath = "continuation"
		debug.AddStage("continuation")
		return o.finalize(Result{
			Response:           cres.Response,
			SuggestionChips:    cres.Chips,
			IsCoachingResponse: true,
		}, &debug, lang)
	}

	// 6. Knowledge mode bypasses skill matching entirely.
	if route.Mode == intent.ModeKnowledge {
		debug.MatchPath = "knowledge"
		debug.AddStage("knowledge")
		return o.answerKnowledge(ctx, route.Query, lang, &debug)
	}

	// 7. Skill matching.
	mctx := skill.MatchContext{
		Location:      currentLocation,
		KnownLocation: o.routes.IsRegistered(currentLocation),
		Language:      lang,
		User:          user,
	}
	res, ambiguous := o.matcher.Match(route.Query, mctx)
	debug.AddStage("match")

	if ambiguous != nil {
		debug.MatchPath = "ambiguous"
		response, chips := o.builder.BuildAmbiguousResponse(ambiguous.Options, lang)
		return o.finalize(Result{
			Response:           response,
			SuggestionChips:    chips,
			IsCoachingResponse: true,
		}, &debug, lang)
	}

	if res != nil {
		return o.commitMatch(res, user, lang, sess, &debug)
	}

	// 8. A low-confidence fuzzy candidate was held back: ask, don't guess.
	if blockedID, reason := o.matcher.LastBlocked(); blockedID != "" {
		if blockedSkill, ok := o.registry.Get(blockedID); ok {
			debug.MatchPath = "blocked"
			debug.AddStage("clarify")
			o.log.Debug("fuzzy candidate held for clarification",
				zap.String("skill", blockedID), zap.String("reason", reason))
			response, chips := o.builder.BuildClarifyingResponse(blockedSkill, lang)
			return o.finalize(Result{
				Response:           response,
				SuggestionChips:    chips,
				IsCoachingResponse: true,
			}, &debug, lang)
		}
	}

	// 9. Nothing matched: coach instead of inventing a capability.
	debug.AddStage("empty_state")
	response, chips := o.builder.BuildEmptyStateResponse(lang)
	return o.finalize(Result{
		Response:           response,
		SuggestionChips:    chips,
		IsCoachingResponse: true,
	}, &debug, lang)
}

// commitMatch gates a committed match on role, validates the plan against
// the catalogs, and builds the final response.
func (o *Orchestrator) commitMatch(res *skill.Result, user types.UserContext, lang types.Language, sess *session.Engine, debug *types.DebugTrace) Result {
	if res.IsFuzzy {
		debug.MatchPath = "fuzzy"
	} else {
		debug.MatchPath = "exact"
	}
	debug.MatchedSkillID = res.Skill.ID
	debug.FuzzySimilarity = res.FuzzySimilarity

	// Role gate: matched but not permitted.
	if !res.Skill.AllowsRole(user.Role) {
		o.log.Info("skill blocked by role",
			zap.String("skill", res.Skill.ID), zap.String("role", string(user.Role)))
		_, chips := o.builder.BuildEmptyStateResponse(lang)
		return o.finalize(Result{
			Response:        o.builder.BuildRoleDeniedResponse(res.Skill, lang),
			SuggestionChips: chips,
			Blocked:         true,
			Reason:          ReasonInsufficientRole,
		}, debug, lang)
	}

	// Anti-hallucination: the skill must be in the catalog, and a navigation
	// target must be a registered destination.
	if ok, warning := o.validator.ValidateSkill(res.Skill.ID); !ok {
		debug.Warnings = append(debug.Warnings, *warning)
		response, chips := o.builder.BuildEmptyStateResponse(lang)
		return o.finalize(Result{
			Response:           response,
			SuggestionChips:    chips,
			IsCoachingResponse: true,
		}, debug, lang)
	}
	if res.Plan.Type == types.PlanNavigation {
		if ok, warning := o.validator.ValidateRoute(res.Plan.TargetLocation); !ok {
			debug.Warnings = append(debug.Warnings, *warning)
			response, chips := o.builder.BuildEmptyStateResponse(lang)
			return o.finalize(Result{
				Response:           response,
				SuggestionChips:    chips,
				IsCoachingResponse: true,
			}, debug, lang)
		}
	}

	response, chips := o.builder.BuildSkillResponse(res, lang)

	// Session transitions: reset a flow the skill doesn't belong to, then
	// start the skill's own flow if it has one.
	sess.RecordSkill(res.Skill.ID)
	sess.CheckUnrelatedSkillReset(res.Skill.ID)
	sess.SetFlowFromSkill(res.Skill.ID, res.Plan.TargetLocation)

	plan := res.Plan
	o.log.Info("turn matched",
		zap.String("skill", res.Skill.ID),
		zap.Float64("confidence", res.Confidence),
		zap.Bool("fuzzy", res.IsFuzzy))

	return o.finalize(Result{
		Response:        response,
		ActionPlan:      &plan,
		MatchedSkill:    res.Skill.ID,
		SuggestionChips: chips,
	}, debug, lang)
}

// answerKnowledge grounds an informational question in the corpus, degrading
// to the empty state on search failure and to OUT_OF_SCOPE when nothing in
// the index clears the score floor.
func (o *Orchestrator) answerKnowledge(ctx context.Context, query string, lang types.Language, debug *types.DebugTrace) Result {
	hits, err := o.safeSearch(ctx, query, lang)
	if err != nil {
		debug.AddWarning(types.WarnKnowledgeSearchFailed, err.Error())
		response, chips := o.builder.BuildEmptyStateResponse(lang)
		return o.finalize(Result{
			Response:           response,
			SuggestionChips:    chips,
			IsCoachingResponse: true,
		}, debug, lang)
	}

	if len(hits) > 0 && hits[0].Score >= o.cfg.Policy.KnowledgeMinScore {
		response, chips := o.builder.BuildKnowledgeResponse(hits[0], lang)
		return o.finalize(Result{
			Response:           response,
			SuggestionChips:    chips,
			IsCoachingResponse: true,
		}, debug, lang)
	}

	// Domain denial: never answer from thin air.
	return o.finalize(Result{
		Response:           o.builder.BuildOutOfScopeResponse(lang),
		SuggestionChips:    []types.SuggestionChip{},
		IsCoachingResponse: true,
		Blocked:            true,
		Reason:             ReasonOutOfScope,
	}, debug, lang)
}

// safeSearch shields the pipeline from a hostile or failing host searcher.
func (o *Orchestrator) safeSearch(ctx context.Context, query string, lang types.Language) (hits []knowledge.Hit, err error) {
	if o.search == nil {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("knowledge search panicked: %v", r)
		}
	}()
	return o.search.Search(ctx, query, lang)
}

// finalize runs the response-structure check on every outgoing response and
// substitutes the safe empty state when it fails. Warnings always land in
// the debug trace.
func (o *Orchestrator) finalize(r Result, debug *types.DebugTrace, lang types.Language) Result {
	if ok, warning := o.validator.ValidateResponse(r.Response); !ok {
		debug.Warnings = append(debug.Warnings, *warning)
		response, chips := o.builder.BuildEmptyStateResponse(lang)
		r.Response = response
		if len(r.SuggestionChips) == 0 {
			r.SuggestionChips = chips
		}
		r.IsCoachingResponse = true
		r.ActionPlan = nil
		r.MatchedSkill = ""
	}
	r.Debug = *debug
	logging.Orchestrator("turn done: path=%s blocked=%v warnings=%d",
		r.Debug.MatchPath, r.Blocked, len(r.Debug.Warnings))
	return r
}

// NormalizedCancelPhrases exposes the cancel set for host UIs that render a
// cancel affordance.
func NormalizedCancelPhrases() []string {
	out := make([]string, 0, len(cancelPhrases))
	for p := range cancelPhrases {
		out = append(out, p)
	}
	return out
}
