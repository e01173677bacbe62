package services

import (
	"context"
	"errors"

	"github.com/gaborvas/wordtrainer/internal/metrics"
	"github.com/gaborvas/wordtrainer/internal/models"
)

var (
	// ErrBusy: a generation for this (user, kind) is already in flight.
	// Advisory and immediately retryable by the caller.
	ErrBusy = errors.New("suggestion generation already in progress")
	// ErrUnavailable: the backend produced no parseable result in time.
	ErrUnavailable = errors.New("suggestion generation unavailable")
	// ErrNothingNew: generation succeeded but every candidate was already
	// in the user's vocabulary.
	ErrNothingNew = errors.New("no new suggestions for this user")
)

// replenishLowWater: background refills are skipped while the buffer still
// holds at least this many pairs.
const replenishLowWater = 4

// SuggestionService orchestrates buffer pop, synchronous fallback generation
// and fire-and-forget replenishment on top of the cache, the flight table and
// the generator.
type SuggestionService struct {
	cache     *SuggestionCache
	flights   *FlightTable
	generator *WordGenerator
	words     *WordStore
	fallback  *FallbackDictionary
	aiEnabled bool
}

func NewSuggestionService(cache *SuggestionCache, flights *FlightTable, generator *WordGenerator, words *WordStore, fallback *FallbackDictionary, aiEnabled bool) *SuggestionService {
	return &SuggestionService{
		cache:     cache,
		flights:   flights,
		generator: generator,
		words:     words,
		fallback:  fallback,
		aiEnabled: aiEnabled,
	}
}

// Next returns the next suggestion for the user, or one of ErrBusy,
// ErrUnavailable, ErrNothingNew.
//
// Buffer empty with a generation in flight: report busy without blocking, so
// callers cannot stack redundant generation attempts. Buffer empty and idle:
// generate synchronously under the flight flag. Every served pair kicks off a
// detached replenishment once the flag is free, so the buffer tends toward
// non-empty.
func (s *SuggestionService) Next(ctx context.Context, userID uint, kind models.SuggestionKind) (*models.SuggestionPair, error) {
	if pair, ok := s.cache.Pop(userID, kind); ok {
		go s.Replenish(userID, kind)
		metrics.SuggestionsServedTotal.WithLabelValues(string(kind), "success").Inc()
		return pair, nil
	}

	if !s.flights.TryEnter(userID, kind) {
		metrics.SuggestionsServedTotal.WithLabelValues(string(kind), "busy").Inc()
		return nil, ErrBusy
	}

	pair, err := s.generateAndPop(ctx, userID, kind)
	if err != nil {
		return nil, err
	}

	// The flight flag is free again; the detached refill below would no-op
	// against a still-held flag, so it must not fire any earlier.
	go s.Replenish(userID, kind)
	metrics.SuggestionsServedTotal.WithLabelValues(string(kind), "success").Inc()
	return pair, nil
}

// generateAndPop owns the flight flag for the synchronous generation path:
// generate a batch, buffer it, pop the first fresh pair. The flag is released
// before the caller runs again.
func (s *SuggestionService) generateAndPop(ctx context.Context, userID uint, kind models.SuggestionKind) (*models.SuggestionPair, error) {
	defer s.flights.Exit(userID, kind)

	pairs, ok := s.generate(ctx, userID, kind)
	if !ok {
		metrics.SuggestionsServedTotal.WithLabelValues(string(kind), "unavailable").Inc()
		return nil, ErrUnavailable
	}

	if _, err := s.cache.Append(userID, kind, pairs); err != nil {
		infoLog("Buffer append failed for user=%d kind=%s: %v", userID, kind, err)
		return nil, ErrUnavailable
	}

	pair, ok := s.cache.Pop(userID, kind)
	if !ok {
		// The model only offered words the user already knows.
		metrics.SuggestionsServedTotal.WithLabelValues(string(kind), "exhausted").Inc()
		return nil, ErrNothingNew
	}
	return pair, nil
}

// Replenish refills the buffer for one (user, kind) unless it is still
// comfortably stocked or a generation is already in flight. Safe to call
// from detached goroutines: failures are logged and swallowed, the request
// that triggered the refill has already been answered.
func (s *SuggestionService) Replenish(userID uint, kind models.SuggestionKind) {
	if len(s.cache.Read(userID, kind)) >= replenishLowWater {
		return
	}
	if !s.flights.TryEnter(userID, kind) {
		return
	}
	defer s.flights.Exit(userID, kind)

	pairs, ok := s.generate(context.Background(), userID, kind)
	if !ok {
		debugLog("Background replenish produced nothing for user=%d kind=%s", userID, kind)
		return
	}
	added, err := s.cache.Append(userID, kind, pairs)
	if err != nil {
		infoLog("Background replenish append failed for user=%d kind=%s: %v", userID, kind, err)
		return
	}
	debugLog("Replenished user=%d kind=%s with %d pairs", userID, kind, added)
}

// generate produces one batch of candidate pairs. The smart kind reads a
// fresh vocabulary snapshot for its prompt on every call — the prompt depends
// on words that may have been added seconds ago. With AI disabled the static
// fallback dictionary serves the random kind.
func (s *SuggestionService) generate(ctx context.Context, userID uint, kind models.SuggestionKind) ([]models.SuggestionPair, bool) {
	if !s.aiEnabled {
		return s.fallbackPairs(userID, kind)
	}

	var prompt string
	switch kind {
	case models.KindSmart:
		vocab, err := s.words.ByUser(userID)
		if err != nil {
			infoLog("Vocabulary load failed for smart prompt, user=%d: %v", userID, err)
			return nil, false
		}
		prompt = smartPrompt(vocab)
	default:
		prompt = randomPrompt()
	}

	pairs, ok := s.generator.SuggestPairs(ctx, prompt)
	if !ok && kind == models.KindRandom {
		// AI came up empty; a static pair beats an error for random mode.
		return s.fallbackPairs(userID, kind)
	}
	return pairs, ok
}

func (s *SuggestionService) fallbackPairs(userID uint, kind models.SuggestionKind) ([]models.SuggestionPair, bool) {
	if s.fallback == nil || kind != models.KindRandom {
		return nil, false
	}
	known, err := s.words.KnownWords(userID)
	if err != nil {
		return nil, false
	}
	pairs := s.fallback.Sample(suggestionCount, known)
	if len(pairs) == 0 {
		return nil, false
	}
	infoLog("Serving %d fallback dictionary pairs for user=%d", len(pairs), userID)
	return pairs, true
}
