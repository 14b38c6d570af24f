package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/sudspis/sudspis/internal/interfaces"
	"github.com/sudspis/sudspis/internal/models"
)

const (
	// DefaultTimeout is the per-request HTTP timeout
	DefaultTimeout = 60 * time.Second

	analysesPath = "/v1/analyses"
)

// APIError is an error response from the OCR engine API
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ocr engine API error: %s (status %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// Client is the HTTP client for the external OCR engine, implementing the
// submit/poll contract over its REST API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
}

// Compile-time assertion
var _ interfaces.OcrEngine = (*Client)(nil)

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates an engine client for the given base URL
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// submitRequest is the analysis submission payload
type submitRequest struct {
	FileName string   `json:"file_name"`
	Features []string `json:"features,omitempty"`
	Document []byte   `json:"document"` // base64-encoded by encoding/json
}

// submitResponse carries the external job handle
type submitResponse struct {
	JobHandle string `json:"job_handle"`
}

// pollResponse is one observation of the analysis job
type pollResponse struct {
	Status  string            `json:"status"`
	Blocks  []models.RawBlock `json:"blocks,omitempty"`
	Message string            `json:"message,omitempty"`
}

// Submit sends the document for analysis and returns the engine job handle
func (c *Client) Submit(ctx context.Context, input interfaces.SubmitInput) (string, error) {
	body, err := json.Marshal(submitRequest{
		FileName: input.FileName,
		Features: input.Features,
		Document: input.Data,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode submit request: %w", err)
	}

	var resp submitResponse
	if err := c.do(ctx, http.MethodPost, analysesPath, bytes.NewReader(body), &resp); err != nil {
		return "", err
	}
	if resp.JobHandle == "" {
		return "", fmt.Errorf("ocr engine returned no job handle")
	}
	return resp.JobHandle, nil
}

// Poll fetches the current state of an analysis job
func (c *Client) Poll(ctx context.Context, jobHandle string) (interfaces.PollResult, error) {
	var resp pollResponse
	if err := c.do(ctx, http.MethodGet, analysesPath+"/"+jobHandle, nil, &resp); err != nil {
		return interfaces.PollResult{}, err
	}

	return interfaces.PollResult{
		Status:  interfaces.AnalysisStatus(resp.Status),
		Blocks:  resp.Blocks,
		Message: resp.Message,
	}, nil
}

// do performs one API request and decodes the JSON response
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(data),
			Endpoint:   path,
		}
	}

	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
