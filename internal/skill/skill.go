// Package skill holds the declarative skill catalog, the location-scoped
// registry, and the matcher that scores skills against a normalized query.
// Skills are data plus a pure execute function; matching is a scoring and
// selection algorithm over a flat list, never dispatch over a hierarchy.
package skill

import (
	"fmt"
	"strings"

	"wayfind/internal/types"
)

// Tier is a priority class: transformation commands outrank discrete actions,
// which outrank simple navigation.
type Tier int

const (
	TierTransform  Tier = 1
	TierAction     Tier = 2
	TierNavigation Tier = 3
)

// Skill is one declarative unit. Registered once at process start from
// configuration, immutable thereafter, never persisted.
type Skill struct {
	ID   string
	Tier Tier

	// Keywords per language; matching scores against the union.
	Keywords map[types.Language][]string

	// CommandPhrases are explicit leading phrases that earn a routing bonus
	// (e.g. "go to tasks", "ve a tareas").
	CommandPhrases []string

	// Labels are the human-readable names used in clarification prompts.
	Labels map[types.Language]string

	RequiredPermissions []string

	// RequiredRoles empty means any role may execute.
	RequiredRoles []types.Role

	// LocationPatterns empty means the skill is in scope everywhere.
	// Patterns support exact ("/tasks"), prefix ("/projects/") and
	// wildcard ("/projects/*") forms.
	LocationPatterns []string

	RequiresConfirmation bool

	// Mutating marks mutation-class skills. They are never fuzzy-matched,
	// so a mis-heard phrase cannot propose a destructive action.
	Mutating bool

	// Execute produces a fresh ActionPlan for the matched context.
	Execute func(types.SkillContext) types.ActionPlan
}

// Label returns the skill's display name in the given language, falling back
// to English, then to the id.
func (s *Skill) Label(lang types.Language) string {
	if l, ok := s.Labels[lang]; ok && l != "" {
		return l
	}
	if l, ok := s.Labels[types.LangEN]; ok && l != "" {
		return l
	}
	return s.ID
}

// AllowsRole reports whether the caller's role may execute this skill.
func (s *Skill) AllowsRole(role types.Role) bool {
	if len(s.RequiredRoles) == 0 {
		return true
	}
	for _, r := range s.RequiredRoles {
		if r == role {
			return true
		}
	}
	return false
}

// AllKeywords returns the union of both languages' keyword lists.
func (s *Skill) AllKeywords() []string {
	var out []string
	for _, list := range s.Keywords {
		out = append(out, list...)
	}
	return out
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds the immutable skill list and filters it by location.
type Registry struct {
	skills []Skill
	byID   map[string]*Skill
}

// NewRegistry validates and freezes a catalog. Duplicate ids and skills
// without an execute function are rejected.
func NewRegistry(skills []Skill) (*Registry, error) {
	r := &Registry{
		skills: make([]Skill, len(skills)),
		byID:   make(map[string]*Skill, len(skills)),
	}
	copy(r.skills, skills)
	for i := range r.skills {
		s := &r.skills[i]
		if s.ID == "" {
			return nil, fmt.Errorf("skill at index %d has no id", i)
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate skill id %q", s.ID)
		}
		if s.Execute == nil {
			return nil, fmt.Errorf("skill %q has no execute function", s.ID)
		}
		r.byID[s.ID] = s
	}
	return r, nil
}

// All returns a copy of the registered skills. The catalog itself stays
// frozen no matter what the caller does with the slice.
func (r *Registry) All() []Skill {
	out := make([]Skill, len(r.skills))
	copy(out, r.skills)
	return out
}

// Has reports whether a skill id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Get returns a registered skill by id.
func (r *Registry) Get(id string) (*Skill, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// ForLocation returns the skills in scope at the given location. A skill with
// no declared pattern matches every location.
func (r *Registry) ForLocation(location string) []*Skill {
	var out []*Skill
	for i := range r.skills {
		s := &r.skills[i]
		if len(s.LocationPatterns) == 0 || matchesAnyLocation(location, s.LocationPatterns) {
			out = append(out, s)
		}
	}
	return out
}

func matchesAnyLocation(location string, patterns []string) bool {
	loc := normalizeLocation(location)
	for _, p := range patterns {
		if matchesLocation(loc, p) {
			return true
		}
	}
	return false
}

func matchesLocation(loc, pattern string) bool {
	switch {
	case strings.HasSuffix(pattern, "/*"):
		base := normalizeLocation(strings.TrimSuffix(pattern, "/*"))
		return loc == base || strings.HasPrefix(loc, base+"/")
	case strings.HasSuffix(pattern, "/") && pattern != "/":
		return strings.HasPrefix(loc+"/", pattern)
	default:
		return loc == normalizeLocation(pattern)
	}
}

// normalizeLocation trims trailing slashes so "/tasks/" and "/tasks" compare
// equal. The root path is preserved.
func normalizeLocation(loc string) string {
	if loc == "/" || loc == "" {
		return loc
	}
	return strings.TrimRight(loc, "/")
}

// NormalizeLocation is the exported form used by the bridge's idempotence
// check.
func NormalizeLocation(loc string) string { return normalizeLocation(loc) }

// =============================================================================
// EXECUTE HELPERS
// =============================================================================

// NavigateTo returns an execute function producing a navigation plan to a
// fixed target, never requiring confirmation.
func NavigateTo(target string) func(types.SkillContext) types.ActionPlan {
	return func(types.SkillContext) types.ActionPlan {
		return types.ActionPlan{
			Type:           types.PlanNavigation,
			TargetLocation: target,
		}
	}
}

// ProposeMutation returns an execute function producing a confirmation-gated
// mutation plan. Nothing persists in this phase; the plan only carries the
// localized confirmation prompt.
func ProposeMutation(prompts map[types.Language]string) func(types.SkillContext) types.ActionPlan {
	return func(ctx types.SkillContext) types.ActionPlan {
		prompt := prompts[ctx.Language]
		if prompt == "" {
			prompt = prompts[types.LangEN]
		}
		return types.ActionPlan{
			Type:                 types.PlanMutation,
			RequiresConfirmation: true,
			ConfirmationPrompt:   prompt,
		}
	}
}

// Instruct returns an execute function producing an instruction plan with a
// fixed payload.
func Instruct(payload string) func(types.SkillContext) types.ActionPlan {
	return func(types.SkillContext) types.ActionPlan {
		return types.ActionPlan{
			Type:    types.PlanInstruction,
			Payload: payload,
		}
	}
}
