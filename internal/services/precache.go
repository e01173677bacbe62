package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/gaborvas/wordtrainer/internal/models"
)

const defaultPrecacheWorkers = 4

// Precacher warms every user's suggestion buffers at startup so first
// requests hit a full buffer instead of a cold AI call. It runs on its own
// goroutine with a bounded worker pool and never blocks the serving path.
type Precacher struct {
	suggestions *SuggestionService
	users       *UserStore
	workers     int
}

func NewPrecacher(suggestions *SuggestionService, users *UserStore, workers int) *Precacher {
	if workers < 1 {
		workers = defaultPrecacheWorkers
	}
	return &Precacher{suggestions: suggestions, users: users, workers: workers}
}

// Start launches the warmup sweep in the background and returns immediately.
func (p *Precacher) Start() {
	go p.run()
}

func (p *Precacher) run() {
	jobID := uuid.NewString()[:8]

	userIDs, err := p.users.IDs()
	if err != nil {
		infoLog("Precache %s aborted: %v", jobID, err)
		return
	}
	infoLog("Precache %s started: %d users, %d workers", jobID, len(userIDs), p.workers)

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for _, userID := range userIDs {
		for _, kind := range models.Kinds {
			wg.Add(1)
			go func(userID uint, kind models.SuggestionKind) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				// One user's failure must not abort the others;
				// Replenish already logs and swallows its errors.
				p.suggestions.Replenish(userID, kind)
			}(userID, kind)
		}
	}

	wg.Wait()
	infoLog("Precache %s completed", jobID)
}
