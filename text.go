package main

var (
	AboutMe = `I make games that are small enough to finish and strange enough to remember.
	Most of my work lives where systems meet feel: procedural levels that still read as
	hand-made, netcode that disappears under the player's thumbs, and tools that let the
	rest of the team move faster than I can.
	When I'm not shipping builds you'll find me at a local game jam, sketching level maps
	in a notebook, or losing at fighting games to people half my age.`

	SkillGroups = []SkillGroup{
		{Name: "Engines", Skills: []string{"Unity", "Godot", "Unreal Engine", "Ebitengine"}},
		{Name: "Languages", Skills: []string{"C#", "C++", "GDScript", "Go", "HLSL"}},
		{Name: "Systems", Skills: []string{"Procedural generation", "Rollback netcode", "Save migration", "Gameplay ability systems"}},
		{Name: "Tools", Skills: []string{"Git LFS", "Perforce", "Blender", "FMOD", "CI build pipelines"}},
	}

	Jobs = []Experience{
		{
			Title:    "Gameplay Programmer",
			Company:  "Northlight Harbor Games",
			Start:    "Mar 2022",
			End:      "Present",
			LogoPath: "images/northlight-logo.png",
			Bullets: []string{
				"Shipped two commercial titles, owning procedural generation and the save pipeline",
				"Cut level load times by 60% by streaming generated chunks on a background job queue",
				"Built the designer-facing encounter editor used for every level in Lanternfall",
			},
		},
		{
			Title:    "Junior Programmer",
			Company:  "Pinecone Mobile",
			Start:    "Jun 2020",
			End:      "Feb 2022",
			LogoPath: "images/pinecone-logo.png",
			Bullets: []string{
				"Implemented offline progression and seasonal live-ops events for Pocket Orchard",
				"Wrote the save migration framework that carried players through 14 schema changes",
			},
		},
	}

	Schooling = []Experience{
		{
			Title:    "B.S. Game Design & Development",
			Company:  "Lakeshore Institute of Technology",
			Start:    "Sept 2016",
			End:      "May 2020",
			LogoPath: "images/school-logo.png",
			Bullets: []string{
				"Capstone: networked co-op prototype that became Tidebound",
				"Teaching assistant for Intro to Game Engines",
			},
		},
	}
)

// SkillGroup is one column of the skills tab.
type SkillGroup struct {
	Name   string
	Skills []string
}

// Experience is a job or degree on the experience tabs.
type Experience struct {
	Title    string
	Company  string
	Start    string
	End      string
	LogoPath string
	Bullets  []string
}
