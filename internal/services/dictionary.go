package services

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/gaborvas/wordtrainer/internal/models"
)

// FallbackDictionary is a static word list used when AI generation is
// disabled or comes up empty. Entries are loaded once at startup; sampling
// still dedups against the live vocabulary.
type FallbackDictionary struct {
	pairs []models.SuggestionPair
}

// fallbackEntry matches the on-disk format: a JSON array of
// {"source_word": ..., "target_word": ...} objects.
type fallbackEntry struct {
	SourceWord string `json:"source_word"`
	TargetWord string `json:"target_word"`
}

// LoadFallbackDictionary reads the dictionary file. An empty path is not an
// error; it yields a nil dictionary and the service simply has no fallback.
func LoadFallbackDictionary(path string) (*FallbackDictionary, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback dictionary %s: %w", path, err)
	}

	var entries []fallbackEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse fallback dictionary %s: %w", path, err)
	}

	dict := &FallbackDictionary{}
	for _, e := range entries {
		if e.SourceWord == "" || e.TargetWord == "" {
			continue
		}
		dict.pairs = append(dict.pairs, models.SuggestionPair{
			Word:        e.SourceWord,
			Translation: e.TargetWord,
		})
	}
	infoLog("Fallback dictionary loaded: %d entries from %s", len(dict.pairs), path)
	return dict, nil
}

// Sample returns up to n random pairs whose words are not in known.
func (d *FallbackDictionary) Sample(n int, known map[string]struct{}) []models.SuggestionPair {
	if d == nil || len(d.pairs) == 0 {
		return nil
	}

	perm := rand.Perm(len(d.pairs))
	var out []models.SuggestionPair
	for _, i := range perm {
		if len(out) >= n {
			break
		}
		p := d.pairs[i]
		if _, ok := known[models.NormalizeWord(p.Word)]; ok {
			continue
		}
		out = append(out, p)
	}
	return out
}
