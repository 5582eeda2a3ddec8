package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultAPIURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterError represents an error that occurred during OpenRouter API interaction
type OpenRouterError struct {
	Op  string // Operation that caused the error
	Err error  // Original error
}

// Error implements the error interface
func (e *OpenRouterError) Error() string {
	if e.Err == nil {
		return "openrouter error: " + e.Op
	}
	return "openrouter error: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *OpenRouterError) Unwrap() error {
	return e.Err
}

// Client represents a client for the OpenRouter API
type Client struct {
	apiKey     string
	apiURL     string
	modelID    string
	httpClient *http.Client
}

// Config holds configuration for the OpenRouter client
type Config struct {
	APIKey  string
	APIURL  string
	ModelID string
	Timeout time.Duration
}

// DefaultConfig returns a default configuration for the OpenRouter client
func DefaultConfig() *Config {
	return &Config{
		ModelID: "meta-llama/llama-3.3-70b-instruct:free",
		Timeout: 60 * time.Second,
	}
}

// NewClient creates a new OpenRouter client
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	apiURL := config.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	return &Client{
		apiKey:     config.APIKey,
		apiURL:     apiURL,
		modelID:    config.ModelID,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// chatRequest is the OpenRouter chat completions request payload
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the OpenRouter chat completions response payload
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const summaryPrompt = "Summarize the content of the following web page in a few short paragraphs. " +
	"Start the first line with a concise title for the page, then a blank line, then the summary. " +
	"Answer in the language of the page content.\n\nURL: %s"

// SummarizeURL asks the model for a title and summary of the page at the
// given URL. The first response line is the title, the rest the summary.
func (c *Client) SummarizeURL(ctx context.Context, url string) (title string, summary string, err error) {
	payload := chatRequest{
		Model: c.modelID,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(summaryPrompt, url)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", &OpenRouterError{Op: "marshal_request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", "", &OpenRouterError{Op: "build_request", Err: err}
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", &OpenRouterError{Op: "send_request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", "", &OpenRouterError{
			Op:  "send_request",
			Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", "", &OpenRouterError{Op: "parse_response", Err: err}
	}

	if len(parsed.Choices) == 0 {
		return "", "", &OpenRouterError{Op: "parse_response", Err: fmt.Errorf("response has no choices")}
	}

	return splitTitleAndSummary(parsed.Choices[0].Message.Content)
}

// splitTitleAndSummary separates the title line from the summary body
func splitTitleAndSummary(content string) (string, string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", "", &OpenRouterError{Op: "parse_response", Err: fmt.Errorf("model returned empty content")}
	}

	title, summary, found := strings.Cut(content, "\n")
	if !found {
		return content, content, nil
	}

	return strings.TrimSpace(title), strings.TrimSpace(summary), nil
}
