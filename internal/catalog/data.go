package catalog

// Projects is the catalog seeded into the projects table. Order here is the
// display order within the pinned and unpinned groups.
var Projects = []Project{
	{
		Slug:    "lanternfall",
		Title:   "Lanternfall",
		Tagline: "A cozy roguelite about keeping the lights on.",
		Summary: "Descend a flooded mine with a single lantern, trading oil for light and " +
			"light for safety in a procedurally carved cavern.",
		Description: "Lanternfall started as a jam prototype and grew into a full release. I " +
			"owned gameplay programming and the procedural generation pipeline: a chunked " +
			"cellular automaton that carves caverns, then a flow-field pass that places " +
			"oil caches where the player is most likely to run dry.",
		Genre:      "Roguelite",
		Engine:     "Unity",
		Role:       "Lead Gameplay Programmer",
		Platforms:  []string{"Windows", "macOS", "Steam Deck"},
		Tags:       []string{"Commercial", "Procedural", "Unity"},
		DevTime:    "14 months",
		TeamSize:   4,
		Year:       2024,
		TrailerURL: "https://www.youtube.com/watch?v=Lf7aQx3bK9M",
		Starred:    true,
		Media: []Media{
			{Kind: MediaImage, URL: "/images/lanternfall/cover.jpg", Caption: "The first descent"},
			{Kind: MediaImage, URL: "/images/lanternfall/caverns.jpg", Caption: "Generated caverns at depth 12"},
			{Kind: MediaVideo, URL: "https://youtu.be/Lf7aQx3bK9M", Caption: "Launch trailer"},
		},
		Awards: []Award{
			{Title: "Best Visual Design", Event: "Indie Showcase Minneapolis", Year: 2024},
		},
		Team: []Credit{
			{Name: "Jordan Vale", Role: "Gameplay & Systems"},
			{Name: "Mira Okafor", Role: "Art Direction"},
			{Name: "Dev Halvorsen", Role: "Audio"},
			{Name: "Sam Reyes", Role: "Level Design"},
		},
		Links: []Link{
			{Label: "Steam", URL: "https://store.steampowered.com/"},
		},
	},
	{
		Slug:    "clockwork-courier",
		Title:   "Clockwork Courier",
		Tagline: "Deliver parcels across a city that rewinds every minute.",
		Summary: "A 48-hour jam puzzle-platformer where every delivery changes the next " +
			"loop of the city.",
		Description: "Built for a 48 hour jam with the theme \"Loop\". I wrote the rewind " +
			"system, which records every actor's transform and replays deterministic " +
			"inputs, and designed six of the nine levels.",
		Genre:      "Puzzle Platformer",
		Engine:     "Godot",
		Role:       "Programmer & Designer",
		Platforms:  []string{"Web", "Windows"},
		Tags:       []string{"Game Jam", "Godot", "Puzzle"},
		DevTime:    "48 hours",
		TeamSize:   3,
		Year:       2023,
		TrailerURL: "https://youtu.be/c9WkTq2vYpE",
		Starred:    true,
		Media: []Media{
			{Kind: MediaImage, URL: "/images/courier/cover.png", Caption: "Rooftop route"},
			{Kind: MediaImage, URL: "/images/courier/rewind.png", Caption: "Ghost replays of earlier loops"},
		},
		Awards: []Award{
			{Title: "1st Place Overall", Event: "Global Loop Jam", Year: 2023},
			{Title: "Most Innovative", Event: "Global Loop Jam", Year: 2023},
		},
		Team: []Credit{
			{Name: "Jordan Vale", Role: "Programming & Design"},
			{Name: "Priya Nand", Role: "Art"},
			{Name: "Leo Brandt", Role: "Music"},
		},
		Links: []Link{
			{Label: "Jam entry", URL: "https://itch.io/"},
		},
	},
	{
		Slug:    "tidebound",
		Title:   "Tidebound",
		Tagline: "Co-op sailing where the sea fights back.",
		Summary: "Two players share one ship: one steers, one patches. Online co-op with " +
			"rollback netcode.",
		Description: "Tidebound is a networking playground. I built a rollback layer over " +
			"a lockstep simulation, with input delay tuned per connection and a desync " +
			"detector that checksums the physics state every 30 frames.",
		Genre:      "Co-op Action",
		Engine:     "Unreal Engine",
		Role:       "Network Programmer",
		Platforms:  []string{"Windows"},
		Tags:       []string{"Multiplayer", "Networking", "Unreal"},
		DevTime:    "~6 mos",
		TeamSize:   5,
		Year:       2023,
		TrailerURL: "https://www.youtube.com/embed/T1dEb0uNd_4",
		Media: []Media{
			{Kind: MediaImage, URL: "/images/tidebound/storm.jpg", Caption: "Riding out a storm"},
			{Kind: MediaVideo, URL: "https://www.youtube.com/watch?v=T1dEb0uNd_4", Caption: "Netcode deep dive"},
		},
		Team: []Credit{
			{Name: "Jordan Vale", Role: "Networking"},
			{Name: "Ana Lucia Ferro", Role: "Gameplay"},
			{Name: "Tom Ishikawa", Role: "Art"},
			{Name: "Rae Collins", Role: "Design"},
			{Name: "June Park", Role: "Production"},
		},
	},
	{
		Slug:    "pocket-orchard",
		Title:   "Pocket Orchard",
		Tagline: "An idle farming game that fits in your pocket.",
		Summary: "A mobile idle game with offline progress, seasonal events and a tiny " +
			"economy simulation.",
		Description: "Pocket Orchard shipped on both mobile stores. I implemented the " +
			"offline progression model, the save migration system and the live-ops " +
			"event calendar driven by remote config.",
		Genre:     "Idle",
		Engine:    "Unity",
		Role:      "Gameplay Programmer",
		Platforms: []string{"iOS", "Android"},
		Tags:      []string{"Commercial", "Mobile", "Unity"},
		DevTime:   "9 months",
		TeamSize:  6,
		Year:      2022,
		Media: []Media{
			{Kind: MediaImage, URL: "/images/orchard/cover.png", Caption: "Autumn season"},
		},
		Team: []Credit{
			{Name: "Jordan Vale", Role: "Gameplay"},
			{Name: "Hollis Grant", Role: "Lead"},
		},
	},
	{
		Slug:    "glyphbreaker",
		Title:   "Glyphbreaker",
		Tagline: "Type fast, cast faster.",
		Summary: "A typing-driven spellcasting arena built in a weekend with a custom " +
			"Go + Ebitengine stack.",
		Description: "Glyphbreaker is a small engine experiment: an entity component " +
			"system in Go, a hand-rolled text shaper for the rune glyphs and a " +
			"deterministic spell resolver that makes replays trivial.",
		Genre:      "Arena",
		Engine:     "Ebitengine",
		Role:       "Solo Developer",
		Platforms:  []string{"Web", "Linux"},
		Tags:       []string{"Game Jam", "Go", "Solo"},
		DevTime:    "72 hrs",
		TeamSize:   1,
		Year:       2024,
		TrailerURL: "https://youtube.com/shorts/Gly9hBr3ak0",
		Media: []Media{
			{Kind: MediaVideo, URL: "https://youtube.com/shorts/Gly9hBr3ak0", Caption: "Gameplay clip"},
		},
		Awards: []Award{
			{Title: "Audience Choice", Event: "Ebiten Game Jam", Year: 2024},
		},
		Team: []Credit{
			{Name: "Jordan Vale", Role: "Everything"},
		},
	},
}
