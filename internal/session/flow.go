package session

import (
	"wayfind/internal/types"
)

// FlowStep is one step of a guided multi-step task, tied to a location
// pattern and bilingual instruction text.
type FlowStep struct {
	LocationPattern string
	Instruction     map[types.Language]string
}

// FlowDefinition describes a guided task. Static configuration, read-only at
// run time.
type FlowDefinition struct {
	ID    string
	Steps []FlowStep

	// ValidLocations are the locations at which the flow is considered on
	// track; anywhere else is drift.
	ValidLocations []string

	// SkillIDs are the skills that belong to this flow. Executing a skill
	// outside this set resets the flow.
	SkillIDs []string

	// HomeLocation is where drift recovery offers to route back to.
	HomeLocation string

	// Names are the human-readable flow names used in continuation responses.
	Names map[types.Language]string
}

// Name returns the flow's display name, falling back to English then the id.
func (f *FlowDefinition) Name(lang types.Language) string {
	if n, ok := f.Names[lang]; ok && n != "" {
		return n
	}
	if n, ok := f.Names[types.LangEN]; ok && n != "" {
		return n
	}
	return f.ID
}

// HasSkill reports whether a skill belongs to this flow.
func (f *FlowDefinition) HasSkill(skillID string) bool {
	for _, id := range f.SkillIDs {
		if id == skillID {
			return true
		}
	}
	return false
}

// IsValidLocation reports whether a location is on track for this flow.
// Entries may be exact ("/team") or wildcard ("/projects/*") patterns.
func (f *FlowDefinition) IsValidLocation(location string) bool {
	loc := trimLocation(location)
	for _, v := range f.ValidLocations {
		if locationMatchesPattern(loc, v) {
			return true
		}
	}
	return false
}

func locationMatchesPattern(loc, pattern string) bool {
	pattern = trimLocation(pattern)
	if len(pattern) > 2 && pattern[len(pattern)-2:] == "/*" {
		base := pattern[:len(pattern)-2]
		return loc == base || (len(loc) > len(base) && loc[:len(base)+1] == base+"/")
	}
	return loc == pattern
}

// FlowSet is the full flow configuration: definitions plus the static
// skill-to-flow entry table.
type FlowSet struct {
	flows       map[string]*FlowDefinition
	skillToFlow map[string]string
}

// NewFlowSet builds a FlowSet from definitions. Every flow's SkillIDs are
// registered as entry points for that flow.
func NewFlowSet(defs []FlowDefinition) *FlowSet {
	fs := &FlowSet{
		flows:       make(map[string]*FlowDefinition, len(defs)),
		skillToFlow: make(map[string]string),
	}
	for i := range defs {
		def := defs[i]
		fs.flows[def.ID] = &def
		for _, sid := range def.SkillIDs {
			fs.skillToFlow[sid] = def.ID
		}
	}
	return fs
}

// Get returns a flow definition by id.
func (fs *FlowSet) Get(id string) (*FlowDefinition, bool) {
	f, ok := fs.flows[id]
	return f, ok
}

// FlowForSkill maps a just-executed skill to its flow, if any.
func (fs *FlowSet) FlowForSkill(skillID string) (*FlowDefinition, bool) {
	id, ok := fs.skillToFlow[skillID]
	if !ok {
		return nil, false
	}
	return fs.flows[id], true
}

func trimLocation(loc string) string {
	if loc == "/" || loc == "" {
		return loc
	}
	for len(loc) > 1 && loc[len(loc)-1] == '/' {
		loc = loc[:len(loc)-1]
	}
	return loc
}
