package services

import (
	"regexp"
	"strings"

	"github.com/gaborvas/wordtrainer/internal/models"
)

// suggestionCount is how many pairs every prompt asks for and how many a
// response must yield to be accepted.
const suggestionCount = 4

// enumPrefix matches leading list markers like "1." or "2)".
var enumPrefix = regexp.MustCompile(`^\s*\d+\s*[.)]\s*`)

// fieldCutset is trimmed from both ends of a word or translation: stray
// punctuation, quotes and markdown the model tends to wrap fields in.
const fieldCutset = " \t\"'`*.,;:!?()[]"

// parsePairs extracts word/translation pairs from raw model output. Each
// line must be of the form "word : translation"; leading enumeration markers
// are stripped first. The parse is accepted only when it yields exactly
// suggestionCount valid pairs — anything else returns nil, even if some lines
// were well-formed. A partial parse means garbled model output; serving half
// a batch is worse than serving nothing.
func parsePairs(raw string) []models.SuggestionPair {
	var pairs []models.SuggestionPair

	for _, line := range strings.Split(raw, "\n") {
		line = enumPrefix.ReplaceAllString(line, "")
		word, translation, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		word = strings.Trim(word, fieldCutset)
		translation = strings.Trim(translation, fieldCutset)
		if word == "" || translation == "" {
			continue
		}
		pairs = append(pairs, models.SuggestionPair{Word: word, Translation: translation})
	}

	if len(pairs) != suggestionCount {
		return nil
	}
	return pairs
}
