// Package config holds wayfind's tunable configuration. The numeric policy
// thresholds are deliberately configuration, not hard-coded invariants: the
// defaults reproduce observed behavior but every one can be overridden by a
// YAML file or environment variable.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "10m" parse directly.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration back to its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all wayfind configuration.
type Config struct {
	Policy    PolicyConfig   `yaml:"policy"`
	Languages LanguageConfig `yaml:"languages"`
}

// PolicyConfig carries the routing/matching policy constants.
type PolicyConfig struct {
	// MinConfidence is the coverage score a skill must reach to be an exact
	// candidate (default 0.35).
	MinConfidence float64 `yaml:"min_confidence"`

	// FuzzySimilarity is the per-token edit-distance similarity floor for a
	// fuzzy hit (default 0.82).
	FuzzySimilarity float64 `yaml:"fuzzy_similarity"`

	// FuzzyExecution is the score a fuzzy candidate needs to execute rather
	// than be held for a clarifying question (default 0.85).
	FuzzyExecution float64 `yaml:"fuzzy_execution"`

	// FuzzyScale keeps fuzzy scores below exact scores (default 0.95).
	FuzzyScale float64 `yaml:"fuzzy_scale"`

	// AmbiguityBand: if the top two combined scores differ by no more than
	// this, ask for clarification instead of committing (default 1.0).
	AmbiguityBand float64 `yaml:"ambiguity_band"`

	// FlowTTL expires an active multi-step flow (default 10m).
	FlowTTL Duration `yaml:"flow_ttl"`

	// DebounceWindow collapses rapid navigation requests (default 250ms).
	DebounceWindow Duration `yaml:"debounce_window"`

	// MaxUtteranceLen rejects oversized input before any processing
	// (default 2000).
	MaxUtteranceLen int `yaml:"max_utterance_len"`

	// MaxChips caps suggestion chips per response (default 3).
	MaxChips int `yaml:"max_chips"`

	// MaxContinuationLen is the longest query the flow continuation handler
	// will intercept (default 25).
	MaxContinuationLen int `yaml:"max_continuation_len"`

	// KnowledgeMinScore is the index score below which an informational
	// question is judged out of scope (default 0.25).
	KnowledgeMinScore float64 `yaml:"knowledge_min_score"`
}

// LanguageConfig names the supported locales.
type LanguageConfig struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
}

// Default returns the configuration with observed-behavior defaults.
func Default() *Config {
	return &Config{
		Policy: PolicyConfig{
			MinConfidence:      0.35,
			FuzzySimilarity:    0.82,
			FuzzyExecution:     0.85,
			FuzzyScale:         0.95,
			AmbiguityBand:      1.0,
			FlowTTL:            Duration(10 * time.Minute),
			DebounceWindow:     Duration(250 * time.Millisecond),
			MaxUtteranceLen:    2000,
			MaxChips:           3,
			MaxContinuationLen: 25,
			KnowledgeMinScore:  0.25,
		},
		Languages: LanguageConfig{
			Primary:   "en",
			Secondary: "es",
		},
	}
}

// Load reads a YAML config file over the defaults, then applies environment
// overrides. A missing file is not an error: defaults + env apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets single values be tuned without a config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("WAYFIND_FLOW_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Policy.FlowTTL = Duration(d)
		}
	}
	if v := os.Getenv("WAYFIND_DEBOUNCE_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Policy.DebounceWindow = Duration(d)
		}
	}
	if v := os.Getenv("WAYFIND_MIN_CONFIDENCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Policy.MinConfidence = f
		}
	}
	if v := os.Getenv("WAYFIND_FUZZY_SIMILARITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Policy.FuzzySimilarity = f
		}
	}
	if v := os.Getenv("WAYFIND_FUZZY_EXECUTION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Policy.FuzzyExecution = f
		}
	}
	if v := os.Getenv("WAYFIND_MAX_UTTERANCE_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Policy.MaxUtteranceLen = n
		}
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	p := c.Policy
	if p.MinConfidence <= 0 || p.MinConfidence >= 1 {
		return fmt.Errorf("min_confidence must be in (0,1), got %v", p.MinConfidence)
	}
	if p.FuzzySimilarity <= 0 || p.FuzzySimilarity >= 1 {
		return fmt.Errorf("fuzzy_similarity must be in (0,1), got %v", p.FuzzySimilarity)
	}
	if p.FuzzyExecution < p.MinConfidence {
		return fmt.Errorf("fuzzy_execution (%v) must not be below min_confidence (%v)",
			p.FuzzyExecution, p.MinConfidence)
	}
	if p.FlowTTL.Std() <= 0 {
		return fmt.Errorf("flow_ttl must be positive, got %v", p.FlowTTL.Std())
	}
	if p.DebounceWindow.Std() <= 0 {
		return fmt.Errorf("debounce_window must be positive, got %v", p.DebounceWindow.Std())
	}
	if p.MaxUtteranceLen <= 0 {
		return fmt.Errorf("max_utterance_len must be positive, got %d", p.MaxUtteranceLen)
	}
	return nil
}
