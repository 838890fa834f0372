package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/polkiloo/posdocs/internal/domain/model"
	"github.com/polkiloo/posdocs/internal/session"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 64 << 10
)

// Client exposes the POS backend operations used by the document workflow.
type Client interface {
	Login(ctx context.Context, username, password string) (string, model.User, error)
	Order(ctx context.Context, creds model.Credentials, id string) (*model.Order, error)
	Receipt(ctx context.Context, creds model.Credentials, id string) (*model.ReceiptData, error)
	Document(ctx context.Context, creds model.Credentials, endpoint string) (*model.Payload, error)
}

// ErrorRecorder counts failed calls by kind.
type ErrorRecorder interface {
	BackendError(kind string)
}

// Options tune HTTPClient.
type Options struct {
	Timeout   time.Duration
	Rate      float64
	Transport http.RoundTripper
	Recorder  ErrorRecorder
}

// HTTPClient implements Client over the backend REST API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	recorder   ErrorRecorder
	logger     *slog.Logger
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPClient creates a backend client for baseURL.
func NewHTTPClient(baseURL string, logger *slog.Logger, opts Options) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("backend url must be absolute")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limit := rate.Inf
	burst := 1
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
		burst = max(1, int(opts.Rate))
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPClient{
		baseURL:  parsed,
		limiter:  rate.NewLimiter(limit, burst),
		recorder: opts.Recorder,
		logger:   logger,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

// Login exchanges operator credentials for a backend token.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, model.User, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", model.User{}, err
	}

	var out loginResponse
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL.JoinPath("auth", "login"), bytes.NewReader(body), &out); err != nil {
		return "", model.User{}, err
	}
	if out.Token == "" {
		return "", model.User{}, c.fail(&APIError{Kind: KindServer, Status: http.StatusOK, Message: "login response without token"})
	}
	return out.Token, out.User, nil
}

// Order fetches the order snapshot.
func (c *HTTPClient) Order(ctx context.Context, creds model.Credentials, id string) (*model.Order, error) {
	var order model.Order
	ctx = session.WithCredentials(ctx, creds)
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL.JoinPath("orders", url.PathEscape(id)), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Receipt fetches the receipt projection of the order. It is never cached.
func (c *HTTPClient) Receipt(ctx context.Context, creds model.Credentials, id string) (*model.ReceiptData, error) {
	var receipt model.ReceiptData
	ctx = session.WithCredentials(ctx, creds)
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL.JoinPath("receipts", "order", url.PathEscape(id)), nil, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// Document downloads the binary served at endpoint, a path relative to the base URL.
func (c *HTTPClient) Document(ctx context.Context, creds model.Credentials, endpoint string) (*model.Payload, error) {
	ctx = session.WithCredentials(ctx, creds)
	resp, err := c.do(ctx, http.MethodGet, c.baseURL.JoinPath(endpoint), nil, "application/pdf, application/octet-stream")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(&APIError{Kind: KindNetwork, Err: err})
	}
	if len(data) == 0 {
		return nil, c.fail(&APIError{Kind: KindServer, Status: resp.StatusCode, Message: "empty document payload"})
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &model.Payload{Data: data, ContentType: contentType}, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method string, endpoint *url.URL, body io.Reader, out any) error {
	resp, err := c.do(ctx, method, endpoint, body, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(&APIError{Kind: KindServer, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)})
	}
	return nil
}

// do performs the request and converts every non-2xx answer into an APIError.
func (c *HTTPClient) do(ctx context.Context, method string, endpoint *url.URL, body io.Reader, accept string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.fail(&APIError{Kind: KindNetwork, Err: err})
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(&APIError{Kind: KindNetwork, Err: err})
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Kind: classify(resp.StatusCode), Status: resp.StatusCode}

	var parsed errorResponse
	if json.Unmarshal(raw, &parsed) == nil && apiErr.Kind == KindClient {
		apiErr.Message = parsed.Message
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		apiErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	}

	c.logger.ErrorContext(ctx, "backend request failed",
		slog.String("method", method),
		slog.String("path", endpoint.Path),
		slog.Int("status", resp.StatusCode),
		slog.String("body", string(raw)),
	)
	return nil, c.fail(apiErr)
}

func (c *HTTPClient) fail(err *APIError) error {
	if c.recorder != nil {
		c.recorder.BackendError(string(err.Kind))
	}
	return err
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
