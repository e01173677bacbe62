package services

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/gaborvas/wordtrainer/internal/models"
)

// smartSampleSize caps how many existing words the smart prompt carries.
// More would bloat the prompt without improving the difficulty match.
const smartSampleSize = 40

const randomPromptTemplate = `You are helping someone learn Hungarian.
Give me exactly %d useful English words with their Hungarian translations.
Respond with exactly %d lines and nothing else, each line in the form:
word : translation
Do not add explanations, numbering is allowed.`

const smartPromptTemplate = `You are helping someone learn Hungarian.
Here are English words the learner already knows:
%s
Give me exactly %d NEW English words with their Hungarian translations,
matching the commonness and difficulty level of the list above. Do not
repeat any word from the list. Respond with exactly %d lines and nothing
else, each line in the form:
word : translation`

// randomPrompt asks for unconstrained pairs.
func randomPrompt() string {
	return fmt.Sprintf(randomPromptTemplate, suggestionCount, suggestionCount)
}

// smartPrompt embeds a sample of the user's vocabulary so the model can
// match its level. When the vocabulary is larger than smartSampleSize a
// random sample is sent instead. This is a heuristic difficulty match, not
// a learned model.
func smartPrompt(words []models.Word) string {
	sample := make([]string, 0, len(words))
	for _, w := range words {
		sample = append(sample, w.Word)
	}
	if len(sample) > smartSampleSize {
		rand.Shuffle(len(sample), func(i, j int) {
			sample[i], sample[j] = sample[j], sample[i]
		})
		sample = sample[:smartSampleSize]
	}
	return fmt.Sprintf(smartPromptTemplate, strings.Join(sample, ", "), suggestionCount, suggestionCount)
}
