package catalog

// Built-in prompt tables, three per tier. Content is static configuration;
// callers that want their own tables go through NewCatalog.

var builtinTruths = map[Difficulty][]string{
	Easy: {
		"What's your favorite color?",
		"What's your biggest fear?",
		"Have you ever lied to your best friend?",
	},
	Medium: {
		"What's your biggest secret?",
		"Who was your first crush?",
		"What's a lie you've told recently?",
	},
	Spicy: {
		"What's your wildest fantasy?",
		"Have you ever skinny dipped?",
		"What's your most embarrassing intimate moment?",
	},
}

var builtinDares = map[Difficulty][]string{
	Easy: {
		"Do 10 jumping jacks.",
		"Sing a song and send it!",
		"Imitate your favorite celebrity for 15 seconds.",
	},
	Medium: {
		"Change your bio to 'I'm a potato' for 10 minutes.",
		"Do a funny dance for 15 seconds.",
		"Send a silly selfie.",
	},
	Spicy: {
		"Send a sultry selfie (safe for group).",
		"Do a sexy dance for 10 seconds on video.",
		"Text your crush something naughty.",
	},
}
