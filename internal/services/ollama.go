package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// ollamaRequestTimeout bounds a single HTTP call, not the whole
	// generation attempt (the generator loop owns the wall clock).
	ollamaRequestTimeout = 60 * time.Second
)

// GenerateResult is the backend response resolved into exactly one of three
// shapes at the client boundary. Direct text, an incremental chunk stream, or
// a job handle that must be polled via FetchResult. Callers switch on the
// populated field instead of inspecting response types at runtime.
type GenerateResult struct {
	Text   string
	Chunks <-chan string
	Handle string
}

// GenerateClient is the single operation the suggestion pipeline needs from
// a generative text backend.
type GenerateClient interface {
	Generate(ctx context.Context, model, prompt string) (*GenerateResult, error)
	// FetchResult polls a handle-shaped response. done=false means the job
	// is still running and the handle should be polled again.
	FetchResult(ctx context.Context, handle string) (text string, done bool, err error)
}

// OllamaClient talks to an Ollama-compatible generation API. Plain Ollama
// answers /api/generate with either a single JSON object or an NDJSON chunk
// stream; some proxy deployments instead return 202 with a job id that is
// fetched from /api/generate/jobs/<id>. All three arrive here.
type OllamaClient struct {
	baseURL    string
	httpClient *http.Client
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	ID       string `json:"id,omitempty"`
	Error    string `json:"error,omitempty"`
}

func NewOllamaClient(baseURL string) *OllamaClient {
	return &OllamaClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: ollamaRequestTimeout},
	}
}

// Generate issues one generation call and resolves the response shape.
func (c *OllamaClient) Generate(ctx context.Context, model, prompt string) (*GenerateResult, error) {
	reqBody, err := json.Marshal(ollamaGenerateRequest{Model: model, Prompt: prompt, Stream: true})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}

	url := c.baseURL + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generate request failed: %w", err)
	}

	// Job-handle shape: the backend accepted the request and will produce
	// the result out of band.
	if resp.StatusCode == http.StatusAccepted {
		defer resp.Body.Close()
		var accepted ollamaGenerateResponse
		if err := json.NewDecoder(resp.Body).Decode(&accepted); err != nil {
			return nil, fmt.Errorf("failed to decode job handle: %w", err)
		}
		if accepted.ID == "" {
			return nil, fmt.Errorf("backend returned 202 without a job id")
		}
		debugLog("Generate: got job handle %s", accepted.ID)
		return &GenerateResult{Handle: accepted.ID}, nil
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(body))
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/x-ndjson") {
		return &GenerateResult{Chunks: c.streamChunks(ctx, resp.Body)}, nil
	}

	// Direct shape: a single JSON object carrying the full text.
	defer resp.Body.Close()
	var direct ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&direct); err != nil {
		return nil, fmt.Errorf("failed to decode generate response: %w", err)
	}
	if direct.Error != "" {
		return nil, fmt.Errorf("backend error: %s", direct.Error)
	}
	return &GenerateResult{Text: direct.Response}, nil
}

// streamChunks drains an NDJSON body into a channel, one decoded chunk per
// line. The channel is closed when the stream ends, turns unreadable, or ctx
// is canceled. Consumers that stop reading mid-stream must cancel ctx, or the
// producer would block on the send forever and pin the connection; the
// generation loop cancels its context on every return, so abandoning the
// channel there is safe.
func (c *OllamaClient) streamChunks(ctx context.Context, body io.ReadCloser) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		defer body.Close()

		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			var chunk ollamaGenerateResponse
			if err := json.Unmarshal(line, &chunk); err != nil {
				debugLog("Stream: skipping undecodable chunk: %v", err)
				continue
			}
			if chunk.Response != "" {
				select {
				case out <- chunk.Response:
				case <-ctx.Done():
					return
				}
			}
			if chunk.Done {
				return
			}
		}
	}()
	return out
}

// FetchResult polls a job handle. done=false while the backend is still
// generating.
func (c *OllamaClient) FetchResult(ctx context.Context, handle string) (string, bool, error) {
	url := c.baseURL + "/api/generate/jobs/" + handle
	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to create status request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", false, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusAccepted || resp.StatusCode == http.StatusNoContent {
		return "", false, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", false, fmt.Errorf("status fetch returned %d: %s", resp.StatusCode, string(body))
	}

	var job ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return "", false, fmt.Errorf("failed to decode job status: %w", err)
	}
	if job.Error != "" {
		return "", false, fmt.Errorf("backend error: %s", job.Error)
	}
	return job.Response, job.Done, nil
}
