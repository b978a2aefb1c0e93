package runtime

import (
	"bufio"
	"bytes"
	"clinic-chat/errors"
	"clinic-chat/moderation"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Dictionaries maps an ISO 639-1 code to the censored words of that language.
type Dictionaries map[string][]string

func (d Dictionaries) Languages() []string {
	languages := lo.Keys(d)
	sort.Strings(languages)
	return languages
}

// Words merges every dictionary, without duplicates.
func (d Dictionaries) Words() []string {
	words := lo.Uniq(lo.Flatten(lo.Values(d)))
	sort.Strings(words)
	return words
}

// LoadDictionaries reads every "<code>.txt" file of dir, one word per line.
// The file name must be a language the message detector can tag.
func LoadDictionaries(fsys fs.FS, dir string) (Dictionaries, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	dictionaries := make(Dictionaries)
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txt" {
			continue
		}
		language := strings.TrimSuffix(entry.Name(), ".txt")
		if !moderation.IsKnownLanguage(language) {
			return nil, fmt.Errorf("%w: %s", errors.ErrUnknownLanguage, entry.Name())
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		// Scanner copes with \r\n dictionaries
		scanner := bufio.NewScanner(bytes.NewReader(data))
		var words []string
		for scanner.Scan() {
			if word := strings.TrimSpace(scanner.Text()); word != "" {
				words = append(words, word)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		if len(words) > 0 {
			dictionaries[language] = lo.Uniq(words)
		}
	}

	if len(dictionaries) == 0 {
		return nil, errors.ErrEmptyWords
	}
	return dictionaries, nil
}
