package knowledge

// DefaultCorpus returns the knowledge documents for the default deployment
// catalog. Hosts inject their own searchable corpus instead.
func DefaultCorpus() *Index {
	return NewIndex([]Document{
		{
			Title:               "Tasks",
			Description:         "Tasks are the day-to-day work items assigned to you or your team.",
			LongForm:            "Open the tasks screen to see what is assigned to you, mark work done, and filter by project or due date. Tareas son los elementos de trabajo asignados a ti o a tu equipo.",
			RelatedDestinations: []string{"/tasks"},
		},
		{
			Title:               "Projects",
			Description:         "Projects group related tasks under one deadline and owner.",
			LongForm:            "Each project has a board, a deadline, and members. Managers and admins can create projects. Los proyectos agrupan tareas relacionadas bajo una fecha limite.",
			RelatedDestinations: []string{"/projects"},
		},
		{
			Title:               "Reports",
			Description:         "Reports show progress and workload across projects and people.",
			LongForm:            "The reports screen charts completed work per week and flags overdue items. You can export any report. Los reportes muestran el progreso y la carga de trabajo.",
			RelatedDestinations: []string{"/reports"},
		},
		{
			Title:               "Team and roles",
			Description:         "Team members have roles: admin, manager, or worker.",
			LongForm:            "Admins can invite members and change roles. Managers can create projects and tasks. Workers can view and complete work. Los roles son administrador, gerente y trabajador.",
			RelatedDestinations: []string{"/team", "/settings"},
		},
		{
			Title:               "Permissions",
			Description:         "What each role is allowed to do in the app.",
			LongForm:            "Creating or changing data needs the manager or admin role. Inviting people needs admin. Navigation is open to every role. Los permisos dependen del rol de tu cuenta.",
			RelatedDestinations: []string{"/team"},
		},
		{
			Title:               "Getting started",
			Description:         "A quick tour of the dashboard and where everything lives.",
			LongForm:            "The dashboard summarizes your tasks, recent projects, and alerts. Use the sidebar or ask me to go anywhere. El panel resume tus tareas y proyectos recientes.",
			RelatedDestinations: []string{"/dashboard", "/help"},
		},
	})
}
