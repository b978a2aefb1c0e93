package runtime

import (
	"clinic-chat/moderation"
	"embed"
	"log/slog"
)

//go:embed censored/*
var censoredFolder embed.FS

// LoadModerator loads the embedded dictionaries and builds the Aho-Corasick automaton.
func LoadModerator(charReplacement rune, log *slog.Logger) (moderation.Moderator, error) {
	dictionaries, err := LoadDictionaries(censoredFolder, "censored")
	if err != nil {
		return moderation.Moderator{}, err
	}
	for _, language := range dictionaries.Languages() {
		log.Info("Censored dictionary loaded", "language", language, "words", len(dictionaries[language]))
	}

	words := dictionaries.Words()
	log.Info("Censored words loaded", "unique", len(words))
	return moderation.NewModerator(words, charReplacement, log)
}
