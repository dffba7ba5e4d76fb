package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDisabledByDefault verifies logging is off without WAYFIND_DEBUG and
// that disabled loggers are no-ops rather than nil.
func TestDisabledByDefault(t *testing.T) {
	t.Setenv("WAYFIND_DEBUG", "")
	Reload()

	assert.False(t, IsEnabled())
	l := Get(CategoryMatch)
	assert.NotNil(t, l)
	l.Info("should not panic")
}

// TestCategoryFilter verifies the category allowlist.
func TestCategoryFilter(t *testing.T) {
	t.Setenv("WAYFIND_DEBUG", "1")
	t.Setenv("WAYFIND_LOG_CATEGORIES", "match,bridge")
	Reload()
	t.Cleanup(Reload)

	assert.True(t, IsEnabled())
	assert.True(t, categoryEnabled(CategoryMatch))
	assert.True(t, categoryEnabled(CategoryBridge))
	assert.False(t, categoryEnabled(CategorySession))
}

// TestAllCategoriesWhenUnfiltered verifies an empty filter means everything.
func TestAllCategoriesWhenUnfiltered(t *testing.T) {
	t.Setenv("WAYFIND_DEBUG", "true")
	t.Setenv("WAYFIND_LOG_CATEGORIES", "")
	Reload()
	t.Cleanup(Reload)

	assert.True(t, categoryEnabled(CategoryOrchestrator))
	assert.True(t, categoryEnabled(CategoryGuard))
}

// TestTimer verifies timing a disabled category is safe.
func TestTimer(t *testing.T) {
	t.Setenv("WAYFIND_DEBUG", "")
	Reload()

	timer := StartTimer(CategoryNormalize, "op")
	timer.Stop()
}
