// Package guard performs the anti-hallucination checks: a target route must
// be registered, a skill must exist in the catalog, and a response must be
// well-formed, certain, and actionable. Failures never crash the turn; the
// caller substitutes a safe fallback and records the returned warning.
package guard

import (
	"fmt"
	"strings"

	"wayfind/internal/logging"
	"wayfind/internal/types"
)

// RouteRegistry is the injected destination set: exact route strings plus
// declared dynamic-segment prefixes (e.g. "/projects/" for "/projects/42").
type RouteRegistry struct {
	exact    map[string]bool
	prefixes []string
}

// NewRouteRegistry builds a registry from exact routes and dynamic prefixes.
func NewRouteRegistry(exact []string, dynamicPrefixes []string) *RouteRegistry {
	r := &RouteRegistry{exact: make(map[string]bool, len(exact))}
	for _, e := range exact {
		r.exact[normalizePath(e)] = true
	}
	for _, p := range dynamicPrefixes {
		if !strings.HasSuffix(p, "/") {
			p += "/"
		}
		r.prefixes = append(r.prefixes, p)
	}
	return r
}

// IsRegistered reports whether a path is an exact route or falls under a
// declared dynamic prefix. Trailing slashes are insignificant.
func (r *RouteRegistry) IsRegistered(path string) bool {
	p := normalizePath(path)
	if p == "" {
		return false
	}
	if r.exact[p] {
		return true
	}
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(p+"/", prefix) && p+"/" != prefix {
			return true
		}
	}
	return false
}

func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "/" {
		return p
	}
	return strings.TrimRight(p, "/")
}

// =============================================================================
// VALIDATOR
// =============================================================================

// SkillCatalog is the slice of the registry the validator needs.
type SkillCatalog interface {
	Has(id string) bool
}

// Validator runs the three independent checks.
type Validator struct {
	routes *RouteRegistry
	skills SkillCatalog
}

// NewValidator creates a validator over the injected catalogs.
func NewValidator(routes *RouteRegistry, skills SkillCatalog) *Validator {
	return &Validator{routes: routes, skills: skills}
}

// ValidateRoute checks target route existence.
func (v *Validator) ValidateRoute(path string) (bool, *types.ValidationWarning) {
	if v.routes.IsRegistered(path) {
		return true, nil
	}
	logging.Get(logging.CategoryGuard).Warn("route not registered: %q", path)
	return false, &types.ValidationWarning{
		Code:   types.WarnRouteNotRegistered,
		Detail: fmt.Sprintf("route %q is not in the destination registry", path),
	}
}

// ValidateSkill checks skill-id existence.
func (v *Validator) ValidateSkill(id string) (bool, *types.ValidationWarning) {
	if v.skills.Has(id) {
		return true, nil
	}
	logging.Get(logging.CategoryGuard).Warn("skill not registered: %q", id)
	return false, &types.ValidationWarning{
		Code:   types.WarnSkillNotRegistered,
		Detail: fmt.Sprintf("skill %q is not in the catalog", id),
	}
}

// placeholderMarkers betray template or nil leakage into user-facing text.
var placeholderMarkers = []string{
	"{{", "}}", "%s", "%d", "%v", "<nil>", "null", "undefined", "NaN",
}

// uncertaintyPhrases may not appear in a committed response; the router must
// never sound unsure about an action it is about to take.
var uncertaintyPhrases = []string{
	"maybe", "not sure", "i think", "probably", "perhaps", "i guess",
	"quizas", "tal vez", "no estoy seguro", "no estoy segura", "creo que",
	"puede ser", "a lo mejor",
}

// actionableVerbs satisfy the actionable-content requirement on short
// responses.
var actionableVerbs = []string{
	"go", "open", "tap", "click", "press", "select", "navigate", "taking",
	"ve", "abre", "pulsa", "selecciona", "toca", "llevando", "abriendo",
}

// minActionableLen is the response length at which we stop demanding an
// explicit actionable marker.
const minActionableLen = 40

// ValidateResponse checks response-structure validity: non-empty, no leftover
// placeholders, no uncertainty phrasing, and some actionable content.
func (v *Validator) ValidateResponse(response string) (bool, *types.ValidationWarning) {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return false, &types.ValidationWarning{
			Code:   types.WarnMalformedResponse,
			Detail: "empty response",
		}
	}

	for _, marker := range placeholderMarkers {
		if strings.Contains(trimmed, marker) {
			logging.Get(logging.CategoryGuard).Warn("placeholder leak %q in response", marker)
			return false, &types.ValidationWarning{
				Code:   types.WarnMalformedResponse,
				Detail: fmt.Sprintf("response contains placeholder %q", marker),
			}
		}
	}

	lower := strings.ToLower(trimmed)
	for _, phrase := range uncertaintyPhrases {
		if strings.Contains(lower, phrase) {
			logging.Get(logging.CategoryGuard).Warn("uncertainty phrase %q in response", phrase)
			return false, &types.ValidationWarning{
				Code:   types.WarnMalformedResponse,
				Detail: fmt.Sprintf("response contains uncertainty phrase %q", phrase),
			}
		}
	}

	if !hasActionableContent(trimmed, lower) {
		return false, &types.ValidationWarning{
			Code:   types.WarnMalformedResponse,
			Detail: "response has no actionable content",
		}
	}
	return true, nil
}

func hasActionableContent(text, lower string) bool {
	if strings.Contains(text, "**") {
		return true
	}
	if len(text) >= minActionableLen {
		return true
	}
	padded := " " + lower + " "
	for _, verb := range actionableVerbs {
		if strings.Contains(padded, " "+verb+" ") {
			return true
		}
	}
	return false
}
