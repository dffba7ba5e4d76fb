package skill

import "wayfind/internal/types"

// DefaultCatalog returns the skill catalog for the default deployment: seven
// navigation skills and four gated actions for a bilingual work-management
// app. Hosts register their own catalog instead.
func DefaultCatalog() []Skill {
	return []Skill{
		// ---------------------------------------------------------------------
		// Tier 3: navigation
		// ---------------------------------------------------------------------
		{
			ID:   "nav-dashboard",
			Tier: TierNavigation,
			Keywords: map[types.Language][]string{
				types.LangEN: {"go", "open", "dashboard"},
				types.LangES: {"ve", "panel", "inicio"},
			},
			CommandPhrases: []string{"go to dashboard", "open dashboard", "ve al panel", "ir a inicio"},
			Labels: map[types.Language]string{
				types.LangEN: "Dashboard",
				types.LangES: "Panel",
			},
			Execute: NavigateTo("/dashboard"),
		},
		{
			ID:   "nav-tasks",
			Tier: TierNavigation,
			Keywords: map[types.Language][]string{
				types.LangEN: {"go", "open", "tasks", "task"},
				types.LangES: {"ve", "tareas", "tarea", "pendientes"},
			},
			CommandPhrases: []string{"go to tasks", "open tasks", "ve a tareas", "mis tareas"},
			Labels: map[types.Language]string{
				types.LangEN: "Tasks",
				types.LangES: "Tareas",
			},
			Execute: NavigateTo("/tasks"),
		},
		{
			ID:   "nav-projects",
			Tier: TierNavigation,
			Keywords: map[types.Language][]string{
				types.LangEN: {"go", "open", "projects", "project"},
				types.LangES: {"ve", "proyectos", "proyecto"},
			},
			CommandPhrases: []string{"go to projects", "open projects", "ve a proyectos"},
			Labels: map[types.Language]string{
				types.LangEN: "Projects",
				types.LangES: "Proyectos",
			},
			Execute: NavigateTo("/projects"),
		},
		{
			ID:   "nav-reports",
			Tier: TierNavigation,
			Keywords: map[types.Language][]string{
				types.LangEN: {"go", "open", "reports", "report"},
				types.LangES: {"ve", "reportes", "reporte", "informes", "informe"},
			},
			CommandPhrases: []string{"go to reports", "open reports", "ve a reportes", "ver informes"},
			Labels: map[types.Language]string{
				types.LangEN: "Reports",
				types.LangES: "Reportes",
			},
			Execute: NavigateTo("/reports"),
		},
		{
			ID:   "nav-team",
			Tier: TierNavigation,
			Keywords: map[types.Language][]string{
				types.LangEN: {"go", "open", "team"},
				types.LangES: {"ve", "equipo"},
			},
			CommandPhrases: []string{"go to team", "open team", "ve al equipo"},
			Labels: map[types.Language]string{
				types.LangEN: "Team",
				types.LangES: "Equipo",
			},
			Execute: NavigateTo("/team"),
		},
		{
			ID:   "nav-settings",
			Tier: TierNavigation,
			Keywords: map[types.Language][]string{
				types.LangEN: {"go", "open", "settings"},
				types.LangES: {"ve", "configuracion", "ajustes"},
			},
			CommandPhrases: []string{"go to settings", "open settings", "ve a configuracion"},
			Labels: map[types.Language]string{
				types.LangEN: "Settings",
				types.LangES: "Configuracion",
			},
			Execute: NavigateTo("/settings"),
		},
		{
			ID:   "nav-help",
			Tier: TierNavigation,
			Keywords: map[types.Language][]string{
				types.LangEN: {"go", "open", "help"},
				types.LangES: {"ve", "ayuda"},
			},
			CommandPhrases: []string{"go to help", "open help", "ve a ayuda"},
			Labels: map[types.Language]string{
				types.LangEN: "Help",
				types.LangES: "Ayuda",
			},
			Execute: NavigateTo("/help"),
		},

		// ---------------------------------------------------------------------
		// Tier 2: actions
		// ---------------------------------------------------------------------
		{
			ID:   "create-task",
			Tier: TierAction,
			Keywords: map[types.Language][]string{
				types.LangEN: {"create", "new", "add", "task"},
				types.LangES: {"crear", "nueva", "agregar", "tarea"},
			},
			CommandPhrases:       []string{"create a task", "add a task", "crear una tarea", "nueva tarea"},
			RequiredRoles:        []types.Role{types.RoleAdmin, types.RoleManager},
			RequiredPermissions:  []string{"tasks:write"},
			RequiresConfirmation: true,
			Mutating:             true,
			Labels: map[types.Language]string{
				types.LangEN: "Create a task",
				types.LangES: "Crear una tarea",
			},
			Execute: ProposeMutation(map[types.Language]string{
				types.LangEN: "Do you want me to create this task?",
				types.LangES: "Quieres que cree esta tarea?",
			}),
		},
		{
			ID:   "create-project",
			Tier: TierAction,
			Keywords: map[types.Language][]string{
				types.LangEN: {"create", "new", "start", "project"},
				types.LangES: {"crear", "nuevo", "empezar", "proyecto"},
			},
			CommandPhrases:       []string{"create a project", "start a project", "crear un proyecto", "nuevo proyecto"},
			RequiredRoles:        []types.Role{types.RoleAdmin, types.RoleManager},
			RequiredPermissions:  []string{"projects:write"},
			RequiresConfirmation: true,
			Mutating:             true,
			Labels: map[types.Language]string{
				types.LangEN: "Create a project",
				types.LangES: "Crear un proyecto",
			},
			Execute: ProposeMutation(map[types.Language]string{
				types.LangEN: "Do you want me to start a new project?",
				types.LangES: "Quieres que empiece un nuevo proyecto?",
			}),
		},
		{
			ID:   "invite-member",
			Tier: TierAction,
			Keywords: map[types.Language][]string{
				types.LangEN: {"invite", "member", "teammate"},
				types.LangES: {"invitar", "invita", "miembro"},
			},
			CommandPhrases:       []string{"invite a member", "invite someone", "invitar un miembro"},
			RequiredRoles:        []types.Role{types.RoleAdmin},
			RequiredPermissions:  []string{"team:invite"},
			RequiresConfirmation: true,
			Mutating:             true,
			Labels: map[types.Language]string{
				types.LangEN: "Invite a team member",
				types.LangES: "Invitar a un miembro",
			},
			Execute: ProposeMutation(map[types.Language]string{
				types.LangEN: "Should I send the invitation?",
				types.LangES: "Envio la invitacion?",
			}),
		},
		{
			ID:   "export-report",
			Tier: TierAction,
			Keywords: map[types.Language][]string{
				types.LangEN: {"export", "download", "report"},
				types.LangES: {"exportar", "descargar", "reporte", "informe"},
			},
			CommandPhrases:      []string{"export the report", "download report", "exportar el reporte"},
			RequiredPermissions: []string{"reports:read"},
			LocationPatterns:    []string{"/reports"},
			Labels: map[types.Language]string{
				types.LangEN: "Export the report",
				types.LangES: "Exportar el reporte",
			},
			Execute: Instruct("export_report"),
		},
	}
}
