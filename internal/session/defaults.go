package session

import "wayfind/internal/types"

// DefaultFlows returns the flow definitions for the default deployment
// catalog. Hosts replace these with their own configuration.
func DefaultFlows() *FlowSet {
	return NewFlowSet([]FlowDefinition{
		{
			ID: "create-project",
			Names: map[types.Language]string{
				types.LangEN: "Create a project",
				types.LangES: "Crear un proyecto",
			},
			Steps: []FlowStep{
				{
					LocationPattern: "/projects",
					Instruction: map[types.Language]string{
						types.LangEN: "Tap **New project** in the top right corner.",
						types.LangES: "Pulsa **Nuevo proyecto** en la esquina superior derecha.",
					},
				},
				{
					LocationPattern: "/projects/new",
					Instruction: map[types.Language]string{
						types.LangEN: "Fill in the project name and deadline, then tap **Save**.",
						types.LangES: "Completa el nombre del proyecto y la fecha limite, luego pulsa **Guardar**.",
					},
				},
				{
					LocationPattern: "/projects/*",
					Instruction: map[types.Language]string{
						types.LangEN: "Your project is ready. Tap **Add task** to start planning work.",
						types.LangES: "Tu proyecto esta listo. Pulsa **Agregar tarea** para empezar a planificar.",
					},
				},
			},
			ValidLocations: []string{"/projects", "/projects/*"},
			SkillIDs:       []string{"create-project"},
			HomeLocation:   "/projects",
		},
		{
			ID: "invite-member",
			Names: map[types.Language]string{
				types.LangEN: "Invite a team member",
				types.LangES: "Invitar a un miembro",
			},
			Steps: []FlowStep{
				{
					LocationPattern: "/team",
					Instruction: map[types.Language]string{
						types.LangEN: "Tap **Invite** and enter the person's email address.",
						types.LangES: "Pulsa **Invitar** e ingresa el correo de la persona.",
					},
				},
				{
					LocationPattern: "/team/invite",
					Instruction: map[types.Language]string{
						types.LangEN: "Pick a role for the new member, then tap **Send invite**.",
						types.LangES: "Elige un rol para el nuevo miembro y pulsa **Enviar invitacion**.",
					},
				},
			},
			ValidLocations: []string{"/team", "/team/invite"},
			SkillIDs:       []string{"invite-member"},
			HomeLocation:   "/team",
		},
	})
}
