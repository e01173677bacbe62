package services

import (
	"time"

	"github.com/go-co-op/gocron"

	"github.com/gaborvas/wordtrainer/internal/models"
)

// TopUpScheduler periodically sweeps every user and refills suggestion
// buffers that have drained below the low-water mark. This keeps buffers
// warm for users who practice in bursts, without waiting for their next
// suggestion request.
type TopUpScheduler struct {
	scheduler   *gocron.Scheduler
	suggestions *SuggestionService
	users       *UserStore
	cache       *SuggestionCache
	interval    time.Duration
}

func NewTopUpScheduler(suggestions *SuggestionService, users *UserStore, cache *SuggestionCache, interval time.Duration) *TopUpScheduler {
	return &TopUpScheduler{
		scheduler:   gocron.NewScheduler(time.UTC),
		suggestions: suggestions,
		users:       users,
		cache:       cache,
		interval:    interval,
	}
}

// Start begins the periodic sweep in a non-blocking manner.
func (s *TopUpScheduler) Start() {
	if _, err := s.scheduler.Every(s.interval).Do(s.sweep); err != nil {
		infoLog("Top-up sweep not scheduled: %v", err)
		return
	}
	s.scheduler.StartAsync()
	infoLog("Top-up scheduler started: every %s", s.interval)
}

// Stop terminates the scheduled sweep.
func (s *TopUpScheduler) Stop() {
	s.scheduler.Stop()
}

func (s *TopUpScheduler) sweep() {
	userIDs, err := s.users.IDs()
	if err != nil {
		infoLog("Top-up sweep aborted: %v", err)
		return
	}

	refilled := 0
	for _, userID := range userIDs {
		for _, kind := range models.Kinds {
			if len(s.cache.Read(userID, kind)) >= replenishLowWater {
				continue
			}
			s.suggestions.Replenish(userID, kind)
			refilled++
		}
	}
	if refilled > 0 {
		infoLog("Top-up sweep refilled %d buffers across %d users", refilled, len(userIDs))
	}
}
