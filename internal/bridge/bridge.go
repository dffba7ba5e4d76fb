// Package bridge turns an approved action plan into its single side effect.
// Navigation is debounced and idempotent; mutation plans are a hard safety
// floor and never execute in this phase; instruction plans complete with no
// external effect. The host injects the navigate and current-location
// functions; both may be absent, in which case calls are safe no-ops.
package bridge

import (
	"sync"
	"time"

	"wayfind/internal/clock"
	"wayfind/internal/guard"
	"wayfind/internal/logging"
	"wayfind/internal/skill"
	"wayfind/internal/types"
)

// NavigateFunc performs the host's navigation.
type NavigateFunc func(target string)

// LocationFunc returns the host's current location.
type LocationFunc func() string

// Result reports what Execute did. Executed is false for rejected targets,
// no-op navigations, and all mutation plans.
type Result struct {
	OK       bool
	Executed bool
}

// Bridge is the execution side channel. Safe for concurrent use; rapid
// repeated calls collapse to the single most recent pending target.
type Bridge struct {
	routes *guard.RouteRegistry
	clk    clock.Clock
	window time.Duration

	mu       sync.Mutex
	navigate NavigateFunc
	location LocationFunc
	pending  string
	timer    clock.Timer
}

// New creates a bridge over the injected route registry.
func New(routes *guard.RouteRegistry, clk clock.Clock, window time.Duration) *Bridge {
	return &Bridge{routes: routes, clk: clk, window: window}
}

// RegisterNavigate installs the host's navigation function.
func (b *Bridge) RegisterNavigate(f NavigateFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.navigate = f
}

// RegisterLocation installs the host's current-location function.
func (b *Bridge) RegisterLocation(f LocationFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.location = f
}

// Execute runs an approved plan.
func (b *Bridge) Execute(plan types.ActionPlan) Result {
	switch plan.Type {
	case types.PlanMutation:
		// Hard safety floor: nothing persists in this phase.
		logging.Bridge("mutation plan suppressed (confirmation-only phase)")
		return Result{OK: true, Executed: false}

	case types.PlanInstruction:
		logging.Bridge("instruction plan complete: %s", plan.Payload)
		return Result{OK: true, Executed: true}

	case types.PlanNavigation:
		return b.executeNavigation(plan.TargetLocation)

	default:
		logging.Get(logging.CategoryBridge).Warn("unknown plan type %q", plan.Type)
		return Result{OK: false, Executed: false}
	}
}

func (b *Bridge) executeNavigation(target string) Result {
	// An unregistered target is never an error the user sees; it simply does
	// not execute.
	if !b.routes.IsRegistered(target) {
		logging.Get(logging.CategoryBridge).Warn("refusing navigation to unregistered target %q", target)
		return Result{OK: false, Executed: false}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.location != nil {
		current := skill.NormalizeLocation(b.location())
		if current == skill.NormalizeLocation(target) {
			logging.Bridge("already at %s, skipping navigation", target)
			return Result{OK: true, Executed: false}
		}
	}

	// Debounce: the most recent target wins; earlier pending targets are
	// dropped.
	b.pending = target
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = b.clk.AfterFunc(b.window, b.fire)
	logging.Bridge("navigation to %s scheduled in %s", target, b.window)
	return Result{OK: true, Executed: true}
}

// fire delivers the pending navigation after the debounce window.
func (b *Bridge) fire() {
	b.mu.Lock()
	target := b.pending
	nav := b.navigate
	b.pending = ""
	b.timer = nil
	b.mu.Unlock()

	if target == "" {
		return
	}
	if nav == nil {
		logging.Get(logging.CategoryBridge).Debug("no navigate function registered, dropping %s", target)
		return
	}
	logging.Bridge("navigating to %s", target)
	nav(target)
}

// Close cancels any pending navigation.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.pending = ""
}
