// Package normalize canonicalizes raw utterances before any routing happens.
// The pipeline is strictly ordered: whitespace collapse, diacritic removal,
// speech-recognition correction, language detection, slang expansion,
// lowercasing. It never fails; undetectable language falls back to English.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"wayfind/internal/logging"
	"wayfind/internal/types"
)

// Normalizer runs the canonicalization pipeline. Stateless and safe to share.
type Normalizer struct {
	stripper transform.Transformer
}

// New creates a Normalizer.
func New() *Normalizer {
	// NFD decomposition followed by removal of combining marks, then NFC
	// recomposition of whatever survives.
	return &Normalizer{
		stripper: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
}

// Normalize canonicalizes raw text and returns the final form plus a trace of
// every intermediate stage.
func (n *Normalizer) Normalize(raw string) (string, types.NormalizationTrace) {
	timer := logging.StartTimer(logging.CategoryNormalize, "Normalize")
	defer timer.Stop()

	trace := types.NormalizationTrace{Raw: raw}

	// 1. Trim and collapse internal whitespace.
	text := collapseWhitespace(raw)

	// 2. Canonical decomposition + strip combining marks.
	text = n.stripDiacritics(text)
	trace.AfterDiacriticRemoval = text

	// 3. Fixed speech-recognition corrections, longest phrase first.
	text = applyCorrections(text)
	trace.AfterSpeechCorrection = text

	// 4. Detect language on the corrected text.
	lang := DetectLanguage(text)
	trace.DetectedLanguage = lang

	// 5. Slang/abbreviation expansion for the detected language.
	text = expandSlang(text, lang)
	trace.AfterSlangNormalized = text

	// 6. Lowercase.
	text = strings.ToLower(text)
	trace.FinalNormalized = text

	logging.Get(logging.CategoryNormalize).Debug("%q -> %q (lang=%s)", raw, text, lang)
	return text, trace
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (n *Normalizer) stripDiacritics(s string) string {
	out, _, err := transform.String(n.stripper, s)
	if err != nil {
		// The chain cannot fail on valid UTF-8; on malformed input keep the
		// original rather than dropping the turn.
		return s
	}
	return out
}

func applyCorrections(s string) string {
	for _, c := range corrections {
		s = c.re.ReplaceAllString(s, c.replacement)
	}
	return s
}

// DetectLanguage scores the text against both locales' marker sets. Spanish
// wins only on a strict majority of marker hits; ties and zero hits default
// to English.
func DetectLanguage(text string) types.Language {
	esHits, enHits := 0, 0
	for _, tok := range tokenize(text) {
		if spanishMarkers[tok] {
			esHits++
		}
		if englishMarkers[tok] {
			enHits++
		}
	}
	if esHits > enHits {
		return types.LangES
	}
	return types.LangEN
}

func expandSlang(s string, lang types.Language) string {
	table := slangTables[lang]
	if table == nil {
		return s
	}

	// Multi-word entries first, longest first.
	for _, p := range table.multi {
		s = p.re.ReplaceAllString(s, p.replacement)
	}

	// Single-word entries on exact token match only.
	words := strings.Fields(s)
	changed := false
	for i, w := range words {
		if repl, ok := table.single[strings.ToLower(w)]; ok {
			words[i] = repl
			changed = true
		}
	}
	if changed {
		return strings.Join(words, " ")
	}
	return s
}

// tokenize lowercases, strips punctuation, and splits on whitespace. Shared
// with the matcher's view of a query.
func tokenize(s string) []string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

// Tokenize exposes the canonical tokenization used across the pipeline.
func Tokenize(s string) []string { return tokenize(s) }
