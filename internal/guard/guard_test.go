package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfind/internal/types"
)

type fakeCatalog map[string]bool

func (f fakeCatalog) Has(id string) bool { return f[id] }

// TestRouteRegistry_IsRegistered verifies exact routes, dynamic prefixes, and
// trailing-slash insensitivity.
func TestRouteRegistry_IsRegistered(t *testing.T) {
	r := NewRouteRegistry(
		[]string{"/tasks", "/projects", "/projects/new"},
		[]string{"/projects/"},
	)

	cases := []struct {
		path string
		want bool
	}{
		{"/tasks", true},
		{"/tasks/", true},
		{"/projects/new", true},
		{"/projects/42", true},
		{"/projects", true},
		{"/projectsfoo", false},
		{"/reports", false},
		{"", false},
		{"/", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, r.IsRegistered(tc.path), "path=%q", tc.path)
	}
}

// TestDefaultRoutes spot-checks the default destination registry.
func TestDefaultRoutes(t *testing.T) {
	r := DefaultRoutes()
	assert.True(t, r.IsRegistered("/dashboard"))
	assert.True(t, r.IsRegistered("/team/invite"))
	assert.True(t, r.IsRegistered("/projects/123"))
	assert.False(t, r.IsRegistered("/admin"))
}

// TestValidator_RouteAndSkill verifies the existence checks and their warning
// codes.
func TestValidator_RouteAndSkill(t *testing.T) {
	v := NewValidator(
		NewRouteRegistry([]string{"/tasks"}, nil),
		fakeCatalog{"nav-tasks": true},
	)

	ok, warning := v.ValidateRoute("/tasks")
	assert.True(t, ok)
	assert.Nil(t, warning)

	ok, warning = v.ValidateRoute("/nowhere")
	assert.False(t, ok)
	require.NotNil(t, warning)
	assert.Equal(t, types.WarnRouteNotRegistered, warning.Code)

	ok, warning = v.ValidateSkill("nav-tasks")
	assert.True(t, ok)
	assert.Nil(t, warning)

	ok, warning = v.ValidateSkill("teleport")
	assert.False(t, ok)
	require.NotNil(t, warning)
	assert.Equal(t, types.WarnSkillNotRegistered, warning.Code)
}

// TestValidator_ValidateResponse verifies the response-structure rules.
func TestValidator_ValidateResponse(t *testing.T) {
	v := NewValidator(NewRouteRegistry(nil, nil), fakeCatalog{})

	valid := []struct {
		name     string
		response string
	}{
		{"BoldMarker", "Sure — **Tasks** it is."},
		{"LongEnough", "Taking you straight to the reports screen right away."},
		{"ShortWithVerb", "go to tasks now"},
		{"SpanishVerb", "ve a tareas ahora"},
	}
	for _, tc := range valid {
		t.Run("Valid/"+tc.name, func(t *testing.T) {
			ok, warning := v.ValidateResponse(tc.response)
			assert.True(t, ok)
			assert.Nil(t, warning)
		})
	}

	invalid := []struct {
		name     string
		response string
	}{
		{"Empty", "   "},
		{"TemplateLeak", "Taking you to {{destination}} right now, hold on."},
		{"FormatVerbLeak", "Opening %s for you right away, one moment please."},
		{"NilLeak", "Your current project is <nil>, opening it right now."},
		{"UncertaintyEN", "I think this is probably the tasks screen you want."},
		{"UncertaintyES", "Quizas esta es la pantalla de tareas que buscas aqui."},
		{"ShortNotActionable", "Done."},
	}
	for _, tc := range invalid {
		t.Run("Invalid/"+tc.name, func(t *testing.T) {
			ok, warning := v.ValidateResponse(tc.response)
			assert.False(t, ok)
			require.NotNil(t, warning)
			assert.Equal(t, types.WarnMalformedResponse, warning.Code)
		})
	}
}
