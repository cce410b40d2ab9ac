package skills

// Builtins are the command bridges that are always offered, even when no
// SKILL.md directory defines them.
func Builtins() []Skill {
	return []Skill{
		{
			Name:        "command-spec-kit",
			Description: "Create specifications and plans using /spec_kit slash command for new features or complex changes.",
			Weight:      DefaultWeight,
		},
		{
			Name:        "command-memory-save",
			Description: "Save conversation context to memory using /memory:save.",
			Weight:      DefaultWeight,
		},
	}
}
