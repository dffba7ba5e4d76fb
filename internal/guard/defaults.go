package guard

// DefaultRoutes returns the destination registry for the default deployment
// catalog. Hosts replace this with their own configuration.
func DefaultRoutes() *RouteRegistry {
	return NewRouteRegistry(
		[]string{
			"/dashboard",
			"/tasks",
			"/projects",
			"/projects/new",
			"/reports",
			"/team",
			"/team/invite",
			"/settings",
			"/help",
		},
		[]string{
			"/projects/",
			"/tasks/",
			"/team/",
		},
	)
}
