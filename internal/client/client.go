// Package client talks to the novelty scoring service over HTTP.
// Each call issues exactly one request; nothing is retried or cached.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/novelty-score/internal/schemas"
	"github.com/jonathan/novelty-score/internal/types"
)

// DefaultBaseURL is the scoring service API root used when none is configured.
const DefaultBaseURL = "http://localhost:8000/api"

// DefaultTimeout bounds a single request. Embedding generation on the
// service side can take a while for long documents.
const DefaultTimeout = 2 * time.Minute

// DefaultUserAgent is the user agent string for outbound requests.
const DefaultUserAgent = "novelty-score-client/1.0"

// RequestIDHeader carries a fresh identifier on every outbound request.
const RequestIDHeader = "X-Request-ID"

// Options configures the client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client // overrides Timeout when set
	Verbose    bool
}

// DefaultOptions returns sensible defaults for the client.
func DefaultOptions() *Options {
	return &Options{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client is a scoring service client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	verbose    bool
}

// New creates a client. A nil opts uses DefaultOptions.
func New(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
		verbose:    opts.Verbose,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SubmitText checks raw proposal text for novelty.
func (c *Client) SubmitText(ctx context.Context, text string) (*types.NoveltyResult, error) {
	const op = "novelty check"

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, &TransportError{Op: op, Fallback: FallbackCheckMessage, Cause: err}
	}

	var result types.NoveltyResult
	req := request{
		op:          op,
		method:      http.MethodPost,
		url:         c.baseURL + "/novelty",
		body:        body,
		contentType: "application/json",
		fallback:    FallbackCheckMessage,
		schema:      schemas.NoveltyResult,
	}
	if err := c.do(ctx, req, &result); err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, &TransportError{Op: op, Fallback: FallbackCheckMessage, Cause: fmt.Errorf("result out of range: %w", err)}
	}
	return &result, nil
}

// SubmitFile uploads a proposal document and checks it for novelty.
func (c *Client) SubmitFile(ctx context.Context, file *types.FileInput) (*types.NoveltyResult, error) {
	const op = "novelty file check"

	body, contentType, err := c.encodeUpload(file, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Fallback: FallbackCheckMessage, Cause: err}
	}

	var result types.NoveltyResult
	req := request{
		op:          op,
		method:      http.MethodPost,
		url:         c.baseURL + "/novelty/file",
		body:        body,
		contentType: contentType,
		fallback:    FallbackCheckMessage,
		schema:      schemas.NoveltyResult,
	}
	if err := c.do(ctx, req, &result); err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, &TransportError{Op: op, Fallback: FallbackCheckMessage, Cause: fmt.Errorf("result out of range: %w", err)}
	}
	return &result, nil
}

// Ingest uploads a proposal document into the comparison corpus.
// An empty title lets the service use the filename.
func (c *Client) Ingest(ctx context.Context, file *types.FileInput, title string) (*types.IngestResponse, error) {
	const op = "ingest"

	var fields map[string]string
	if strings.TrimSpace(title) != "" {
		fields = map[string]string{"title": title}
	}

	body, contentType, err := c.encodeUpload(file, fields)
	if err != nil {
		return nil, &TransportError{Op: op, Fallback: FallbackIngestMessage, Cause: err}
	}

	var resp types.IngestResponse
	req := request{
		op:          op,
		method:      http.MethodPost,
		url:         c.baseURL + "/ingest",
		body:        body,
		contentType: contentType,
		fallback:    FallbackIngestMessage,
		schema:      schemas.IngestResponse,
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckApplication scores extracted application text. The service stores the
// application under its number before comparing, and excludes it from matches.
func (c *Client) CheckApplication(ctx context.Context, applicationNumber, text string) (*types.ApplicationCheckResult, error) {
	const op = "application check"

	body, err := json.Marshal(types.ApplicationCheckRequest{
		ApplicationNumber: applicationNumber,
		ExtractedText:     text,
	})
	if err != nil {
		return nil, &TransportError{Op: op, Fallback: FallbackApplicationMessage, Cause: err}
	}

	var result types.ApplicationCheckResult
	req := request{
		op:          op,
		method:      http.MethodPost,
		url:         c.baseURL + "/novelty-check",
		body:        body,
		contentType: "application/json",
		fallback:    FallbackApplicationMessage,
		schema:      schemas.ApplicationCheckResult,
	}
	if err := c.do(ctx, req, &result); err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, &TransportError{Op: op, Fallback: FallbackApplicationMessage, Cause: fmt.Errorf("result out of range: %w", err)}
	}
	return &result, nil
}

// Health probes the service's /health endpoint, which lives at the service
// root rather than under the API prefix.
func (c *Client) Health(ctx context.Context) (*types.HealthStatus, error) {
	const op = "health"

	healthURL, err := originURL(c.baseURL, "/health")
	if err != nil {
		return nil, &TransportError{Op: op, Fallback: FallbackHealthMessage, Cause: err}
	}

	var status types.HealthStatus
	req := request{
		op:       op,
		method:   http.MethodGet,
		url:      healthURL,
		fallback: FallbackHealthMessage,
		schema:   schemas.HealthStatus,
	}
	if err := c.do(ctx, req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// request describes one outbound call.
type request struct {
	op          string
	method      string
	url         string
	body        []byte
	contentType string
	fallback    string
	schema      string
}

// do performs a single request and decodes a 2xx body into out after
// checking it against the request's schema.
func (c *Client) do(ctx context.Context, r request, out any) error {
	requestID := uuid.NewString()

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return &TransportError{Op: r.op, Fallback: r.fallback, RequestID: requestID, Cause: err}
	}

	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	if c.verbose {
		log.Printf("[VERBOSE] %s %s (request %s, %d bytes)", r.method, r.url, requestID, len(r.body))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: r.op, Fallback: r.fallback, RequestID: requestID, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{
			Op:         r.op,
			StatusCode: resp.StatusCode,
			Fallback:   r.fallback,
			RequestID:  requestID,
			Cause:      fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if c.verbose {
		log.Printf("[VERBOSE] %s %s -> %d in %v", r.method, r.url, resp.StatusCode, time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{
			Op:            r.op,
			StatusCode:    resp.StatusCode,
			ServerMessage: extractServerMessage(respBody),
			Fallback:      r.fallback,
			RequestID:     requestID,
		}
	}

	if r.schema != "" {
		if err := schemas.ValidateBytes(r.schema, respBody); err != nil {
			return &TransportError{
				Op:         r.op,
				StatusCode: resp.StatusCode,
				Fallback:   r.fallback,
				RequestID:  requestID,
				Cause:      fmt.Errorf("unexpected response: %w", err),
			}
		}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &TransportError{
			Op:         r.op,
			StatusCode: resp.StatusCode,
			Fallback:   r.fallback,
			RequestID:  requestID,
			Cause:      fmt.Errorf("failed to decode response: %w", err),
		}
	}

	return nil
}

// originURL replaces the path of base with p, keeping scheme and host.
func originURL(base, p string) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid base URL %q", base)
	}
	return parsed.Scheme + "://" + parsed.Host + p, nil
}
