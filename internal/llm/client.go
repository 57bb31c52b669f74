// Package llm is a thin client for the Together chat-completions API
// (OpenAI-compatible). It owns the provider credential and request
// parameters and knows nothing about conversations.
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"susafchat/internal/models"
)

// ErrUnavailable wraps transport-level failures reaching the backend.
var ErrUnavailable = errors.New("completion backend unavailable")

// APIError is a non-success response from the completion backend.
type APIError struct {
	Status  int
	Message string
	Type    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("backend error [%d]: %s (type: %s)", e.Status, e.Message, e.Type)
	}
	return fmt.Sprintf("backend error [%d]: %s", e.Status, e.Message)
}

// Params are the sampling options forwarded verbatim to the backend.
type Params struct {
	Temperature       float64  `json:"temperature"`
	TopP              float64  `json:"top_p"`
	TopK              int      `json:"top_k"`
	RepetitionPenalty float64  `json:"repetition_penalty"`
	Stop              []string `json:"stop,omitempty"`
}

// DefaultParams are the fixed sampling parameters used for every call in
// this service, streaming and one-shot alike.
var DefaultParams = Params{
	Temperature:       0.7,
	TopP:              0.7,
	TopK:              50,
	RepetitionPenalty: 1,
	Stop:              []string{"<|eot_id|>", "<|eom_id|>"},
}

// Client issues chat-completion requests against one configured model.
type Client struct {
	baseURL string
	apiKey  string
	model   string

	// httpClient bounds one-shot calls; streamClient carries no client
	// timeout because streams are bounded by the caller's context.
	httpClient   *http.Client
	streamClient *http.Client
}

// NewClient creates a completion client. timeout bounds non-streaming
// calls only.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		apiKey:       apiKey,
		model:        model,
		httpClient:   &http.Client{Timeout: timeout},
		streamClient: &http.Client{},
	}
}

type chatRequest struct {
	Model    string           `json:"model"`
	Messages []models.Message `json:"messages"`
	Params
	Stream bool `json:"stream,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type choice struct {
	Index        int          `json:"index"`
	Message      *chatMessage `json:"message,omitempty"`
	Delta        *chatMessage `json:"delta,omitempty"`
	FinishReason string       `json:"finish_reason,omitempty"`
}

type chatResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
}

type streamChunk struct {
	ID      string   `json:"id"`
	Choices []choice `json:"choices"`
}

type errorResponse struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends one non-streaming chat completion and returns the
// assistant content. No retries are performed.
func (c *Client) Complete(ctx context.Context, msgs []models.Message, params Params) (string, error) {
	resp, err := c.send(ctx, c.httpClient, &chatRequest{Model: c.model, Messages: msgs, Params: params})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}
	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message == nil {
		return "", &APIError{Status: resp.StatusCode, Message: "completion response carried no choices"}
	}
	return result.Choices[0].Message.Content, nil
}

// CompleteStream sends one streaming chat completion and invokes fn for
// each text fragment in arrival order. An error from fn aborts the stream
// and is returned unchanged. No retries are performed.
func (c *Client) CompleteStream(ctx context.Context, msgs []models.Message, params Params, fn func(fragment string) error) error {
	resp, err := c.send(ctx, c.streamClient, &chatRequest{Model: c.model, Messages: msgs, Params: params, Stream: true})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read completion stream: %w", err)
		}
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			return nil
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// skip malformed keep-alive chunks
			continue
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta == nil {
			continue
		}
		if content := chunk.Choices[0].Delta.Content; content != "" {
			if err := fn(content); err != nil {
				return err
			}
		}
	}
}

// send issues the request and maps non-200 responses to *APIError. The
// caller owns the response body on success.
func (c *Client) send(ctx context.Context, hc *http.Client, req *chatRequest) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			return nil, &APIError{Status: resp.StatusCode, Message: errResp.Error.Message, Type: errResp.Error.Type}
		}
		return nil, &APIError{Status: resp.StatusCode, Message: string(respBody)}
	}
	return resp, nil
}
