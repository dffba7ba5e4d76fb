package intent

import (
	"fmt"
	"regexp"
	"sort"

	"wayfind/internal/types"
)

// =============================================================================
// TIER 1: TRANSFORMATION COMMAND PREFIXES
// =============================================================================
// A fixed, bilingual set of leading verb patterns. A match locks the turn:
// everything after the prefix becomes an opaque payload and is never fed to
// skill matching.

type tier1Pattern struct {
	command string
	prefix  string
	re      *regexp.Regexp
}

var rawTier1 = []struct {
	command string
	prefix  string
}{
	{"translate", "translate"},
	{"translate", "traduce"},
	{"translate", "traducir"},
	{"summarize", "summarize"},
	{"summarize", "summarise"},
	{"summarize", "resume"},
	{"summarize", "resumir"},
	{"summarize", "resumeme"},
	{"explain", "explain"},
	{"explain", "explica"},
	{"explain", "explicame"},
	{"explain", "explicar"},
	{"rewrite", "rewrite"},
	{"rewrite", "reescribe"},
	{"define", "define"},
}

var tier1Patterns []tier1Pattern

func init() {
	tier1Patterns = make([]tier1Pattern, 0, len(rawTier1))
	for _, p := range rawTier1 {
		tier1Patterns = append(tier1Patterns, tier1Pattern{
			command: p.command,
			prefix:  p.prefix,
			re:      regexp.MustCompile(fmt.Sprintf(`(?i)^%s\b[:,]?\s*`, regexp.QuoteMeta(p.prefix))),
		})
	}
	// Longest prefix first so "resumeme" wins over "resume".
	sort.SliceStable(tier1Patterns, func(i, j int) bool {
		return len(tier1Patterns[i].prefix) > len(tier1Patterns[j].prefix)
	})
}

// =============================================================================
// SYNONYM EXPANSION
// =============================================================================
// Canonical keywords are appended (never substituted) whenever a synonym
// phrase is present, so token-overlap scoring benefits without losing the
// original literal text.

type synonym struct {
	phrase    string
	canonical string
	re        *regexp.Regexp
}

var rawSynonyms = []struct {
	phrase    string
	canonical string
}{
	{"home", "dashboard"},
	{"main screen", "dashboard"},
	{"panel principal", "dashboard"},
	{"inicio", "dashboard"},
	{"to-dos", "tasks"},
	{"todo list", "tasks"},
	{"pendientes", "tareas"},
	{"mis pendientes", "tareas"},
	{"informes", "reportes"},
	{"analytics", "reports"},
	{"numbers", "reports"},
	{"people", "team"},
	{"colleagues", "team"},
	{"companeros", "equipo"},
	{"preferences", "settings"},
	{"opciones", "configuracion"},
	{"sign out", "logout"},
	{"log off", "logout"},
}

var synonyms []synonym

func init() {
	synonyms = make([]synonym, 0, len(rawSynonyms))
	for _, s := range rawSynonyms {
		synonyms = append(synonyms, synonym{
			phrase:    s.phrase,
			canonical: s.canonical,
			re:        regexp.MustCompile(fmt.Sprintf(`(?i)\b%s\b`, regexp.QuoteMeta(s.phrase))),
		})
	}
}

// =============================================================================
// QUESTION PREFIXES
// =============================================================================

var questionPrefixes = map[types.Language][]string{
	types.LangEN: {
		"what", "why", "how", "when", "where", "who", "which",
		"can", "could", "should", "is", "are", "does", "do",
	},
	types.LangES: {
		"que", "por que", "como", "cuando", "donde", "quien", "cual",
		"cuanto", "cuantos", "puedo", "deberia", "es", "son", "hay",
	},
}

// strongActionPhrases are short commands that look like questions to the
// heuristic but must stay on the skill path.
var strongActionPhrases = map[string]bool{
	"what next":  true,
	"where to":   true,
	"que sigue":  true,
	"ahora que":  true,
	"show tasks": true,
	"show me":    true,
	"muestra":    true,
}

// =============================================================================
// INTENT TAG BUCKETS
// =============================================================================
// Non-exclusive keyword buckets; a query may carry several tags.

var intentBuckets = []struct {
	tag      string
	keywords []string
}{
	{"navigation", []string{"go", "open", "show", "view", "take", "navigate", "ir", "ve", "abre", "abrir", "muestra", "ver", "llevame"}},
	{"creation", []string{"create", "new", "add", "make", "start", "crear", "crea", "nuevo", "nueva", "agregar"}},
	{"task", []string{"task", "tasks", "tarea", "tareas"}},
	{"project", []string{"project", "projects", "proyecto", "proyectos"}},
	{"reporting", []string{"report", "reports", "export", "informe", "informes", "reporte", "reportes", "exportar"}},
	{"team", []string{"team", "member", "invite", "equipo", "miembro", "invitar", "invita"}},
	{"settings", []string{"settings", "configuracion", "ajustes"}},
	{"help", []string{"help", "ayuda"}},
}
