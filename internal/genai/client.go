// Package genai calls the Gemini generateContent API for the workload
// summary and content-idea suggestions. The call is treated as an opaque
// boundary: tasks in, structured report out, and any failure is non-fatal
// to stored state.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cloudcrave/craveops/internal/models"
)

var (
	// ErrBusy is returned while a summary request is already in flight.
	// Concurrent invocations are rejected, not queued.
	ErrBusy = errors.New("a summary request is already in flight")

	ErrNoAPIKey = errors.New("no generation API key configured")
)

const (
	summaryModel = "gemini-3-pro-preview"
	ideaModel    = "gemini-3-flash-preview"

	requestTimeout = 60 * time.Second
)

type Client struct {
	httpc   *http.Client
	apiKey  string
	baseURL string
	logger  *zap.Logger

	busy atomic.Bool
}

func NewClient(apiKey, baseURL string, logger *zap.Logger) *Client {
	return &Client{
		httpc:   &http.Client{Timeout: requestTimeout},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// wire types for the generateContent endpoint.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate runs one structured-output completion and returns the raw JSON
// text of the first candidate.
func (c *Client) generate(ctx context.Context, model, prompt string, schema json.RawMessage) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("call generation service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation service returned %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no textual response received from the model")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// AnalyzeTasks sends the visible task set and returns the structured
// workload report. Only one request may be in flight at a time; a second
// call returns ErrBusy immediately.
func (c *Client) AnalyzeTasks(ctx context.Context, tasks []models.StaffTask) (*models.ManagementSummary, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer c.busy.Store(false)

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}

	prompt := fmt.Sprintf(`You are an operations assistant reviewing a hierarchical task board for Cloudcrave Solutions.

Data:
%s

Current Date Reference: Nov 20, 2024

INSTRUCTIONS:
1. Group tasks by task owner (staff_name).
2. Analyze productivity based on "hours_spent".
3. Calculate total hours by cadence (Daily, Weekly, Monthly, N/A).
4. Maintain a professional, neutral tone.`, data)

	text, err := c.generate(ctx, summaryModel, prompt, summarySchema)
	if err != nil {
		c.logger.Warn("task analysis failed", zap.Error(err))
		return nil, err
	}

	var summary models.ManagementSummary
	if err := json.Unmarshal([]byte(text), &summary); err != nil {
		c.logger.Warn("task analysis returned unparseable output", zap.Error(err))
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return &summary, nil
}

// SuggestionInput describes the calendar entry a content idea is wanted
// for.
type SuggestionInput struct {
	Platforms   []models.ContentPlatform
	ContentType models.ContentType
	BrandName   string
	Topic       string
}

// ContentSuggestion is what the model proposes. The caller decides which
// fields actually land on the entry.
type ContentSuggestion struct {
	Topic              string `json:"topic"`
	Caption            string `json:"caption"`
	VisualInstructions string `json:"visualInstructions"`
}

// SuggestContent asks for a single content idea. Suggestions do not share
// the summary busy flag; they are small per-entry calls.
func (c *Client) SuggestContent(ctx context.Context, in SuggestionInput) (*ContentSuggestion, error) {
	platforms := make([]string, len(in.Platforms))
	for i, p := range in.Platforms {
		platforms[i] = string(p)
	}
	topic := in.Topic
	if topic == "" {
		topic = "Any relevant topic"
	}

	prompt := fmt.Sprintf(`Suggest a professional content idea for a %s %s post for the brand %q.
Topic: %s
Return JSON only with: { "topic": "...", "caption": "...", "visualInstructions": "..." }`,
		strings.Join(platforms, "/"), in.ContentType, in.BrandName, topic)

	text, err := c.generate(ctx, ideaModel, prompt, nil)
	if err != nil {
		c.logger.Warn("content suggestion failed", zap.Error(err))
		return nil, err
	}

	var suggestion ContentSuggestion
	if err := json.Unmarshal([]byte(text), &suggestion); err != nil {
		return nil, fmt.Errorf("decode suggestion: %w", err)
	}
	return &suggestion, nil
}
