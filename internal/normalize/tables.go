package normalize

import (
	"fmt"
	"regexp"
	"sort"

	"wayfind/internal/types"
)

// correction is one fixed speech-recognition fix. Patterns are applied
// longest-phrase-first so a short fix never clobbers part of a longer one.
type correction struct {
	phrase      string
	replacement string
	re          *regexp.Regexp
}

// rawCorrections collects misrecognitions observed from the voice capture
// widget. Phrases are written accent-free because corrections run after
// diacritic removal.
var rawCorrections = []struct {
	phrase      string
	replacement string
}{
	// English ASR splits and homophones
	{"dash bored", "dashboard"},
	{"dash board", "dashboard"},
	{"crate a", "create a"},
	{"grate a", "create a"},
	{"navi gate", "navigate"},
	{"re ports", "reports"},
	{"set ings", "settings"},
	{"projects board", "projects"},
	// Spanish ASR splits and misspellings
	{"proyesto", "proyecto"},
	{"projecto", "proyecto"},
	{"tarea s", "tareas"},
	{"ir ha", "ir a"},
	{"ve ha", "ve a"},
	{"nuevo projecto", "nuevo proyecto"},
}

var corrections []correction

func init() {
	corrections = make([]correction, 0, len(rawCorrections))
	for _, rc := range rawCorrections {
		corrections = append(corrections, correction{
			phrase:      rc.phrase,
			replacement: rc.replacement,
			re:          regexp.MustCompile(fmt.Sprintf(`(?i)\b%s\b`, regexp.QuoteMeta(rc.phrase))),
		})
	}
	// Longest phrase first.
	sort.SliceStable(corrections, func(i, j int) bool {
		return len(corrections[i].phrase) > len(corrections[j].phrase)
	})
}

// =============================================================================
// LANGUAGE DETECTION MARKERS
// =============================================================================
// Marker tokens are accent-free: detection runs on diacritic-stripped text.

var spanishMarkers = map[string]bool{
	"que": true, "como": true, "donde": true, "cuando": true, "cual": true,
	"quien": true, "cuanto": true, "por": true, "para": true, "con": true,
	"el": true, "la": true, "los": true, "las": true, "un": true, "una": true,
	"mi": true, "mis": true, "es": true, "son": true, "hay": true,
	"crear": true, "crea": true, "nuevo": true, "nueva": true, "agregar": true,
	"proyecto": true, "proyectos": true, "tarea": true, "tareas": true,
	"informe": true, "informes": true, "reporte": true, "equipo": true,
	"ayuda": true, "ajustes": true, "configuracion": true, "panel": true,
	"ir": true, "ve": true, "abre": true, "abrir": true, "muestra": true,
	"ver": true, "llevame": true, "quiero": true, "puedo": true,
	"sigue": true, "ahora": true, "listo": true, "siguiente": true,
	"traduce": true, "resume": true, "explica": true, "cancela": true,
	"invitar": true, "invita": true, "miembro": true, "exportar": true,
}

var englishMarkers = map[string]bool{
	"the": true, "a": true, "an": true, "my": true, "me": true, "to": true,
	"what": true, "how": true, "where": true, "when": true, "which": true,
	"who": true, "can": true, "should": true, "is": true, "are": true,
	"go": true, "open": true, "show": true, "take": true, "view": true,
	"create": true, "new": true, "add": true, "start": true, "make": true,
	"project": true, "projects": true, "task": true, "tasks": true,
	"report": true, "reports": true, "team": true, "help": true,
	"settings": true, "dashboard": true, "want": true, "need": true,
	"next": true, "now": true, "done": true, "okay": true,
	"translate": true, "summarize": true, "explain": true, "cancel": true,
	"invite": true, "member": true, "export": true,
}

// =============================================================================
// SLANG / ABBREVIATION EXPANSION
// =============================================================================

// slangTable holds one language's expansions. Multi-word entries are applied
// before single-word entries, longest first, to avoid partial overlap.
type slangTable struct {
	single map[string]string
	multi  []slangPhrase
}

type slangPhrase struct {
	phrase      string
	replacement string
	re          *regexp.Regexp
}

var slangTables map[types.Language]*slangTable

func init() {
	slangTables = map[types.Language]*slangTable{
		types.LangEN: buildSlangTable(
			map[string]string{
				"pls":  "please",
				"plz":  "please",
				"thx":  "thanks",
				"proj": "project",
				"rpt":  "report",
				"dash": "dashboard",
				"cfg":  "settings",
				"mins": "minutes",
				"u":    "you",
				"rn":   "right now",
			},
			map[string]string{
				"wanna":      "want to",
				"gimme":      "give me",
				"lemme":      "let me",
				"gotta":      "got to",
				"whats up":   "what is up",
				"to do list": "task list",
			},
		),
		types.LangES: buildSlangTable(
			map[string]string{
				"porfa":  "por favor",
				"xfa":    "por favor",
				"q":      "que",
				"xq":     "porque",
				"pq":     "porque",
				"tmb":    "tambien",
				"config": "configuracion",
			},
			map[string]string{
				"que onda":  "que pasa",
				"echame la": "dame la",
			},
		),
	}
}

func buildSlangTable(single map[string]string, multi map[string]string) *slangTable {
	t := &slangTable{single: single}
	for phrase, repl := range multi {
		t.multi = append(t.multi, slangPhrase{
			phrase:      phrase,
			replacement: repl,
			re:          regexp.MustCompile(fmt.Sprintf(`(?i)\b%s\b`, regexp.QuoteMeta(phrase))),
		})
	}
	sort.SliceStable(t.multi, func(i, j int) bool {
		return len(t.multi[i].phrase) > len(t.multi[j].phrase)
	})
	return t
}
