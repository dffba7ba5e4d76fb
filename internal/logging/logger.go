// Package logging provides categorized debug logging for wayfind.
// Logging is off by default; set WAYFIND_DEBUG=1 to enable, and optionally
// WAYFIND_LOG_CATEGORIES=match,bridge to restrict output to a category subset.
// Output goes to stderr so it never mixes with the assistant's responses.
package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategoryNormalize    Category = "normalize"    // Text normalization pipeline
	CategoryIntent       Category = "intent"       // Intent routing decisions
	CategoryMatch        Category = "match"        // Skill matching and scoring
	CategorySession      Category = "session"      // Session state transitions
	CategoryFlow         Category = "flow"         // Flow continuation handling
	CategoryGuard        Category = "guard"        // Validation guard checks
	CategoryRespond      Category = "respond"      // Response building
	CategoryBridge       Category = "bridge"       // Execution bridge side effects
	CategoryKnowledge    Category = "knowledge"    // Knowledge index lookups
	CategoryOrchestrator Category = "orchestrator" // Per-turn pipeline sequencing
)

// Log levels.
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Logger writes for one category. The zero-ish value (nil inner logger) is a
// no-op, so disabled categories cost a map lookup and nothing else.
type Logger struct {
	category Category
	logger   *log.Logger
}

var (
	mu         sync.RWMutex
	loggers    = make(map[Category]*Logger)
	enabled    bool
	categories map[Category]bool // nil means all categories
	level      int
)

func init() {
	reloadFromEnv()
}

// reloadFromEnv reads WAYFIND_DEBUG / WAYFIND_LOG_CATEGORIES / WAYFIND_LOG_LEVEL.
func reloadFromEnv() {
	mu.Lock()
	defer mu.Unlock()

	switch strings.ToLower(os.Getenv("WAYFIND_DEBUG")) {
	case "1", "true", "yes", "on":
		enabled = true
	default:
		enabled = false
	}

	categories = nil
	if raw := os.Getenv("WAYFIND_LOG_CATEGORIES"); raw != "" {
		categories = make(map[Category]bool)
		for _, c := range strings.Split(raw, ",") {
			c = strings.TrimSpace(c)
			if c != "" {
				categories[Category(c)] = true
			}
		}
	}

	switch strings.ToLower(os.Getenv("WAYFIND_LOG_LEVEL")) {
	case "debug":
		level = LevelDebug
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	default:
		level = LevelInfo
	}

	loggers = make(map[Category]*Logger)
}

// Reload re-reads the environment. Exposed for tests.
func Reload() { reloadFromEnv() }

// IsEnabled reports whether debug logging is on at all.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

func categoryEnabled(c Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return false
	}
	if categories == nil {
		return true
	}
	return categories[c]
}

// Get returns (or creates) the logger for a category. Disabled categories get
// a no-op logger.
func Get(c Category) *Logger {
	if !categoryEnabled(c) {
		return &Logger{category: c}
	}

	mu.RLock()
	if l, ok := loggers[c]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[c]; ok {
		return l
	}
	l := &Logger{
		category: c,
		logger:   log.New(os.Stderr, fmt.Sprintf("[wayfind:%s] ", c), log.Ltime|log.Lmicroseconds),
	}
	loggers[c] = l
	return l
}

func (l *Logger) printf(lvl int, tag, format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	mu.RLock()
	min := level
	mu.RUnlock()
	if lvl < min {
		return
	}
	l.logger.Printf("[%s] %s", tag, fmt.Sprintf(format, args...))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.printf(LevelDebug, "DEBUG", format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.printf(LevelInfo, "INFO", format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.printf(LevelWarn, "WARN", format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.printf(LevelError, "ERROR", format, args...)
}

// =============================================================================
// CONVENIENCE HELPERS (hot categories)
// =============================================================================

// Match logs to the match category at info level.
func Match(format string, args ...interface{}) { Get(CategoryMatch).Info(format, args...) }

// MatchDebug logs to the match category at debug level.
func MatchDebug(format string, args ...interface{}) { Get(CategoryMatch).Debug(format, args...) }

// Bridge logs to the bridge category at info level.
func Bridge(format string, args ...interface{}) { Get(CategoryBridge).Info(format, args...) }

// Orchestrator logs to the orchestrator category at info level.
func Orchestrator(format string, args ...interface{}) {
	Get(CategoryOrchestrator).Info(format, args...)
}

// =============================================================================
// OPERATION TIMERS
// =============================================================================

// Timer measures one operation's duration.
type Timer struct {
	category  Category
	operation string
	start     time.Time
}

// StartTimer begins timing an operation in a category.
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, operation: operation, start: time.Now()}
}

// Stop logs the elapsed duration at debug level.
func (t *Timer) Stop() {
	Get(t.category).Debug("%s took %s", t.operation, time.Since(t.start))
}
