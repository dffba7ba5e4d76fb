// Package respond produces all user-facing text. Every string exists in both
// supported languages; the structure is acknowledge, confirm the destination
// or action, state what is happening, and optionally ask for confirmation.
// Templates live in data tables so the building code stays language-agnostic.
package respond

import (
	"fmt"
	"strings"

	"wayfind/internal/knowledge"
	"wayfind/internal/logging"
	"wayfind/internal/skill"
	"wayfind/internal/types"
)

// Builder assembles responses and suggestion chips.
type Builder struct {
	maxChips int
}

// NewBuilder creates a Builder. maxChips caps chips per response.
func NewBuilder(maxChips int) *Builder {
	if maxChips <= 0 {
		maxChips = 3
	}
	return &Builder{maxChips: maxChips}
}

// BuildSkillResponse renders the response for a committed match.
func (b *Builder) BuildSkillResponse(res *skill.Result, lang types.Language) (string, []types.SuggestionChip) {
	timer := logging.StartTimer(logging.CategoryRespond, "BuildSkillResponse")
	defer timer.Stop()

	label := res.Skill.Label(lang)
	var sb strings.Builder

	switch res.Plan.Type {
	case types.PlanNavigation:
		sb.WriteString(pick(lang,
			fmt.Sprintf("Sure — **%s** it is. Taking you to %s now.", label, res.Plan.TargetLocation),
			fmt.Sprintf("Claro — vamos a **%s**. Te llevo a %s ahora.", label, res.Plan.TargetLocation),
		))
	case types.PlanMutation:
		sb.WriteString(pick(lang,
			fmt.Sprintf("Got it — **%s**. Nothing is saved until you confirm.", label),
			fmt.Sprintf("Entendido — **%s**. No se guarda nada hasta que confirmes.", label),
		))
	case types.PlanInstruction:
		sb.WriteString(pick(lang,
			fmt.Sprintf("On it — **%s**. I'll walk you through it.", label),
			fmt.Sprintf("Voy — **%s**. Te guio paso a paso.", label),
		))
	}

	if res.Plan.RequiresConfirmation && res.Plan.ConfirmationPrompt != "" {
		sb.WriteString(" ")
		sb.WriteString(res.Plan.ConfirmationPrompt)
	}

	return sb.String(), b.chipsForSkill(res.Skill.ID, lang)
}

// BuildEmptyStateResponse is the safe fallback when nothing matched or a
// validation check failed.
func (b *Builder) BuildEmptyStateResponse(lang types.Language) (string, []types.SuggestionChip) {
	response := pick(lang,
		"I didn't catch a destination or action there. Try something like **go to tasks** or ask a question about the app.",
		"No reconoci un destino o una accion. Prueba algo como **ve a tareas** o hazme una pregunta sobre la aplicacion.",
	)
	return response, b.emptyStateChips(lang)
}

// BuildClarifyingResponse asks whether a single held-back skill is what the
// user meant. It names the destination in the user's language and offers
// exactly one affirmative chip whose query re-enters the pipeline literally.
func (b *Builder) BuildClarifyingResponse(s *skill.Skill, lang types.Language) (string, []types.SuggestionChip) {
	label := s.Label(lang)
	reentry := reentryQuery(s, lang)
	response := pick(lang,
		fmt.Sprintf("I almost understood that — did you mean **%s**?", label),
		fmt.Sprintf("Casi te entiendo — te referias a **%s**?", label),
	)
	chip := types.SuggestionChip{
		Label: pick(lang, "Yes, "+label, "Si, "+label),
		Query: reentry,
	}
	return response, []types.SuggestionChip{chip}
}

// BuildAmbiguousResponse lists the close-scoring options instead of guessing.
func (b *Builder) BuildAmbiguousResponse(options []string, lang types.Language) (string, []types.SuggestionChip) {
	if len(options) > b.maxChips {
		options = options[:b.maxChips]
	}
	response := pick(lang,
		fmt.Sprintf("I can do a few things that fit — which one did you mean: %s?", strings.Join(options, ", ")),
		fmt.Sprintf("Hay varias opciones que encajan — cual querias: %s?", strings.Join(options, ", ")),
	)
	chips := make([]types.SuggestionChip, 0, len(options))
	for _, opt := range options {
		chips = append(chips, types.SuggestionChip{Label: opt, Query: opt})
	}
	return response, chips
}

// BuildRoleDeniedResponse is the fallback when a matched skill's required
// role excludes the caller.
func (b *Builder) BuildRoleDeniedResponse(s *skill.Skill, lang types.Language) string {
	label := s.Label(lang)
	return pick(lang,
		fmt.Sprintf("**%s** needs a higher permission level than your account has. Ask an admin to do it, or to upgrade your role.", label),
		fmt.Sprintf("**%s** requiere un nivel de permisos mayor que el de tu cuenta. Pide a un administrador que lo haga o que ajuste tu rol.", label),
	)
}

// BuildOutOfScopeResponse is the coaching fallback for questions the app
// cannot ground.
func (b *Builder) BuildOutOfScopeResponse(lang types.Language) string {
	return pick(lang,
		"That's outside what I can help with here — I only know this app. Ask me about your tasks, projects, reports, or team.",
		"Eso queda fuera de lo que puedo responder — solo conozco esta aplicacion. Preguntame por tus tareas, proyectos, reportes o equipo.",
	)
}

// BuildTooLongResponse is the fixed rejection for oversized input.
func (b *Builder) BuildTooLongResponse(lang types.Language) string {
	return pick(lang,
		"That message is too long for me to process. Please try a shorter request.",
		"Ese mensaje es demasiado largo para procesarlo. Intenta con una peticion mas corta.",
	)
}

// BuildCancelResponse acknowledges an explicit flow cancellation.
func (b *Builder) BuildCancelResponse(lang types.Language) string {
	return pick(lang,
		"Okay, I've cancelled that. Tell me where to **go** next whenever you're ready.",
		"Listo, lo cancele. Dime a donde quieres **ir** cuando estes listo.",
	)
}

// BuildTransformResponse acknowledges a tier-1 transformation command.
func (b *Builder) BuildTransformResponse(command, payload string, lang types.Language) string {
	verb := transformVerb(command, lang)
	if strings.TrimSpace(payload) == "" {
		return pick(lang,
			fmt.Sprintf("Tell me what you'd like me to **%s**.", verb),
			fmt.Sprintf("Dime que quieres que **%s**.", verb),
		)
	}
	return pick(lang,
		fmt.Sprintf("Here's what I'll %s: **%s**", verb, payload),
		fmt.Sprintf("Esto es lo que voy a %s: **%s**", verb, payload),
	)
}

// BuildKnowledgeResponse renders a grounded answer from the knowledge index,
// with chips pointing at the hit's related destinations.
func (b *Builder) BuildKnowledgeResponse(hit knowledge.Hit, lang types.Language) (string, []types.SuggestionChip) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**%s** — %s", hit.Title, hit.Description))
	if hit.LongForm != "" {
		sb.WriteString(" ")
		sb.WriteString(hit.LongForm)
	}

	chips := make([]types.SuggestionChip, 0, b.maxChips)
	for _, dest := range hit.RelatedDestinations {
		if len(chips) == b.maxChips {
			break
		}
		chips = append(chips, types.SuggestionChip{
			Label: pick(lang, "Open "+dest, "Abrir "+dest),
			Query: pick(lang, "go to "+dest, "ve a "+dest),
		})
	}
	return sb.String(), chips
}

// =============================================================================
// CHIP TABLES
// =============================================================================

var chipsBySkill = map[string]map[types.Language][]types.SuggestionChip{
	"nav-tasks": {
		types.LangEN: {
			{Label: "Create a task", Query: "create a task"},
			{Label: "View reports", Query: "go to reports"},
		},
		types.LangES: {
			{Label: "Crear una tarea", Query: "crear una tarea"},
			{Label: "Ver reportes", Query: "ve a reportes"},
		},
	},
	"nav-projects": {
		types.LangEN: {
			{Label: "Create a project", Query: "create a project"},
			{Label: "Go to tasks", Query: "go to tasks"},
		},
		types.LangES: {
			{Label: "Crear un proyecto", Query: "crear un proyecto"},
			{Label: "Ve a tareas", Query: "ve a tareas"},
		},
	},
	"nav-reports": {
		types.LangEN: {
			{Label: "Export the report", Query: "export the report"},
			{Label: "Go to dashboard", Query: "go to dashboard"},
		},
		types.LangES: {
			{Label: "Exportar el reporte", Query: "exportar el reporte"},
			{Label: "Ve al panel", Query: "ve al panel"},
		},
	},
	"nav-team": {
		types.LangEN: {
			{Label: "Invite a member", Query: "invite a member"},
		},
		types.LangES: {
			{Label: "Invitar un miembro", Query: "invitar un miembro"},
		},
	},
	"create-project": {
		types.LangEN: {
			{Label: "Go to projects", Query: "go to projects"},
		},
		types.LangES: {
			{Label: "Ve a proyectos", Query: "ve a proyectos"},
		},
	},
	"create-task": {
		types.LangEN: {
			{Label: "Go to tasks", Query: "go to tasks"},
		},
		types.LangES: {
			{Label: "Ve a tareas", Query: "ve a tareas"},
		},
	},
}

func (b *Builder) chipsForSkill(skillID string, lang types.Language) []types.SuggestionChip {
	byLang, ok := chipsBySkill[skillID]
	if !ok {
		return b.emptyStateChips(lang)
	}
	chips := byLang[lang]
	if chips == nil {
		chips = byLang[types.LangEN]
	}
	if len(chips) > b.maxChips {
		chips = chips[:b.maxChips]
	}
	out := make([]types.SuggestionChip, len(chips))
	copy(out, chips)
	return out
}

func (b *Builder) emptyStateChips(lang types.Language) []types.SuggestionChip {
	chips := pickChips(lang,
		[]types.SuggestionChip{
			{Label: "Go to tasks", Query: "go to tasks"},
			{Label: "Go to dashboard", Query: "go to dashboard"},
			{Label: "Help", Query: "go to help"},
		},
		[]types.SuggestionChip{
			{Label: "Ve a tareas", Query: "ve a tareas"},
			{Label: "Ve al panel", Query: "ve al panel"},
			{Label: "Ayuda", Query: "ve a ayuda"},
		},
	)
	if len(chips) > b.maxChips {
		chips = chips[:b.maxChips]
	}
	return chips
}

// reentryQuery is the literal utterance the affirmative clarification chip
// feeds back into the pipeline.
func reentryQuery(s *skill.Skill, lang types.Language) string {
	if len(s.CommandPhrases) > 0 {
		// Prefer a phrase in the user's language when one exists.
		for _, p := range s.CommandPhrases {
			if lang == types.LangES && looksSpanish(p) {
				return p
			}
			if lang == types.LangEN && !looksSpanish(p) {
				return p
			}
		}
		return s.CommandPhrases[0]
	}
	return strings.ToLower(s.Label(lang))
}

func looksSpanish(phrase string) bool {
	for _, w := range []string{"ve ", "ir ", "crear", "nueva", "nuevo", "invitar", "exportar", "mis "} {
		if strings.HasPrefix(phrase, w) {
			return true
		}
	}
	return false
}

func transformVerb(command string, lang types.Language) string {
	verbs := map[string][2]string{
		"translate": {"translate", "traduzca"},
		"summarize": {"summarize", "resuma"},
		"explain":   {"explain", "explique"},
		"rewrite":   {"rewrite", "reescriba"},
		"define":    {"define", "defina"},
	}
	v, ok := verbs[command]
	if !ok {
		return command
	}
	return pick(lang, v[0], v[1])
}

func pick(lang types.Language, en, es string) string {
	if lang == types.LangES {
		return es
	}
	return en
}

func pickChips(lang types.Language, en, es []types.SuggestionChip) []types.SuggestionChip {
	if lang == types.LangES {
		return es
	}
	return en
}
