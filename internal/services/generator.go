package services

import (
	"context"
	"strings"
	"time"

	"github.com/gaborvas/wordtrainer/internal/metrics"
	"github.com/gaborvas/wordtrainer/internal/models"
)

const (
	// defaultGenerateTimeout bounds a whole generation attempt, measured
	// from the first backend call across every retry and poll.
	defaultGenerateTimeout = 180 * time.Second
	// generatePollInterval paces handle polling and call retries.
	generatePollInterval = 1 * time.Second
)

// WordGenerator turns prompts into suggestion pairs by driving an unreliable
// generative backend. It retries and polls until either a strict parse
// succeeds or the wall-clock timeout expires. Timeout is a soft outcome, not
// an error: the caller gets (nil, false) and decides how to degrade.
type WordGenerator struct {
	client       GenerateClient
	model        string
	timeout      time.Duration
	pollInterval time.Duration
}

func NewWordGenerator(client GenerateClient, model string, timeout time.Duration) *WordGenerator {
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	return &WordGenerator{
		client:       client,
		model:        model,
		timeout:      timeout,
		pollInterval: generatePollInterval,
	}
}

// SuggestPairs runs the generation loop for one prompt.
func (g *WordGenerator) SuggestPairs(ctx context.Context, prompt string) ([]models.SuggestionPair, bool) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.GenerateLatency.Observe(time.Since(start).Seconds())
	}()

	for {
		metrics.GenerateRequestsTotal.Inc()
		res, err := g.client.Generate(ctx, g.model, prompt)
		if err != nil {
			if ctx.Err() != nil {
				metrics.GenerateErrorsTotal.WithLabelValues("timeout").Inc()
				return nil, false
			}
			metrics.GenerateErrorsTotal.WithLabelValues("request").Inc()
			infoLog("Generation call failed, retrying: %v", err)
			if !sleepCtx(ctx, g.pollInterval) {
				return nil, false
			}
			continue
		}

		var raw string
		switch {
		case res.Chunks != nil:
			if pairs, ok := g.drainStream(ctx, res.Chunks, &raw); ok {
				return pairs, true
			}
		case res.Handle != "":
			if pairs, ok := g.pollHandle(ctx, res.Handle, &raw); ok {
				return pairs, true
			}
		default:
			raw = res.Text
			if pairs := parsePairs(raw); pairs != nil {
				return pairs, true
			}
		}

		if ctx.Err() != nil {
			metrics.GenerateErrorsTotal.WithLabelValues("timeout").Inc()
			return nil, false
		}

		// The attempt completed but did not yield exactly four pairs.
		// Log the offending text for diagnosis and issue a fresh call.
		metrics.GenerateErrorsTotal.WithLabelValues("parse").Inc()
		debugLog("Unparseable model output, reissuing generation: %q", raw)
		if !sleepCtx(ctx, g.pollInterval) {
			return nil, false
		}
	}
}

// drainStream accumulates chunks and re-attempts the parse after each one.
// Aborts when the deadline hits mid-stream. Returning with the channel still
// open is fine: the producer is bound to the same ctx, which SuggestPairs
// cancels on every return.
func (g *WordGenerator) drainStream(ctx context.Context, chunks <-chan string, raw *string) ([]models.SuggestionPair, bool) {
	var buf strings.Builder
	for {
		select {
		case <-ctx.Done():
			*raw = buf.String()
			return nil, false
		case chunk, open := <-chunks:
			if !open {
				*raw = buf.String()
				return nil, false
			}
			buf.WriteString(chunk)
			if pairs := parsePairs(buf.String()); pairs != nil {
				return pairs, true
			}
		}
	}
}

// pollHandle fetches job status roughly once per second until the job
// finishes or the deadline hits.
func (g *WordGenerator) pollHandle(ctx context.Context, handle string, raw *string) ([]models.SuggestionPair, bool) {
	ticker := time.NewTicker(g.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, false
		case <-ticker.C:
			text, done, err := g.client.FetchResult(ctx, handle)
			if err != nil {
				infoLog("Status fetch for job %s failed: %v", handle, err)
				return nil, false
			}
			if !done {
				continue
			}
			*raw = text
			if pairs := parsePairs(text); pairs != nil {
				return pairs, true
			}
			return nil, false
		}
	}
}

// sleepCtx waits d or until ctx expires; false means the deadline hit.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
