package glide

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apierrors "github.com/olgasafonova/glide-mcp-server/internal/errors"
	"github.com/olgasafonova/glide-mcp-server/metrics"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "glide-mcp-server/1.0 (github.com/olgasafonova/glide-mcp-server)"
)

// Client is one API generation bound to one credential. It is immutable once
// constructed; switching version or credential means building a new Client
// (see Session.SetVersion).
type Client struct {
	version    Version
	baseURL    string
	headers    http.Header
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client at construction time.
type ClientOption func(*Client)

// WithBaseURL overrides the variant's base URL (useful for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithTimeout sets the HTTP client timeout. Ignored when WithHTTPClient is
// also supplied after it.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient builds a client for one version and credential pair. The version
// must come from the known set; credential validation is the caller's job
// (see Session.SetVersion).
func NewClient(version Version, apiKey string, opts ...ClientOption) (*Client, error) {
	desc, ok := variants[version]
	if !ok {
		return nil, apierrors.NewInvalidParams("unknown API version %q", string(version))
	}

	c := &Client{
		version:    version,
		baseURL:    desc.baseURL,
		headers:    desc.headers(apiKey),
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Version returns the API generation this client is bound to.
func (c *Client) Version() Version {
	return c.version
}

// Execute performs one HTTP call against this client's backend. method is
// GET or POST, path is joined to the base URL verbatim (query parameters
// must be pre-encoded), and a non-nil body is sent as JSON.
//
// A 2xx response body is parsed and returned as-is; payload shapes are not
// validated. Any other outcome maps to an InternalError carrying the
// backend's message field when the body provides one, or the raw failure
// text otherwise. There are no retries.
func (c *Client) Execute(ctx context.Context, method, path string, body any) (any, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, apierrors.NewInternal("encoding request body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	reqURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, apierrors.NewInternal("creating request: %v", err)
	}
	for name, values := range c.headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("Backend request",
		"version", c.version,
		"method", method,
		"url", reqURL,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewInternal("%v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewInternal("reading response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, backendError(resp.StatusCode, respBody)
	}

	if len(respBody) == 0 {
		return nil, nil
	}
	var parsed any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		// Non-JSON 2xx bodies pass through as raw text.
		return string(respBody), nil
	}
	return parsed, nil
}

// backendError maps a non-2xx response to an InternalError, preferring the
// backend's own message field over the raw body.
func backendError(status int, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return apierrors.NewInternal("%s", apiErr.Message)
	}
	if len(body) == 0 {
		return apierrors.NewInternal("request failed with status %d", status)
	}
	return apierrors.NewInternal("request failed with status %d: %s", status, string(body))
}

// GetApp retrieves an app's metadata.
func (c *Client) GetApp(ctx context.Context, appID string) (any, error) {
	return c.call(ctx, "get_app", http.MethodGet, "/apps/"+appID, nil)
}

// GetTables lists the tables of an app.
func (c *Client) GetTables(ctx context.Context, appID string) (any, error) {
	return c.call(ctx, "get_tables", http.MethodGet, "/apps/"+appID+"/tables", nil)
}

// GetTableRows reads rows from a table. limit and offset are appended to the
// query string only when positive: a zero offset is omitted, which the
// backend treats as starting from the first row.
func (c *Client) GetTableRows(ctx context.Context, appID, tableID string, limit, offset int) (any, error) {
	path := "/apps/" + appID + "/tables/" + tableID + "/rows"
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return c.call(ctx, "get_table_rows", http.MethodGet, path, nil)
}

// AddTableRow appends a row to a table. values maps column names to cell
// values and is passed through opaquely.
func (c *Client) AddTableRow(ctx context.Context, appID, tableID string, values map[string]any) (any, error) {
	return c.call(ctx, "add_table_row", http.MethodPost, "/apps/"+appID+"/tables/"+tableID+"/rows", values)
}

// UpdateTableRow overwrites columns of an existing row.
func (c *Client) UpdateTableRow(ctx context.Context, appID, tableID, rowID string, values map[string]any) (any, error) {
	return c.call(ctx, "update_table_row", http.MethodPost, "/apps/"+appID+"/tables/"+tableID+"/rows/"+rowID, values)
}

// call wraps Execute with per-operation backend metrics.
func (c *Client) call(ctx context.Context, operation, method, path string, body any) (any, error) {
	start := time.Now()
	result, err := c.Execute(ctx, method, path, body)

	errorCode := ""
	if err != nil {
		errorCode = apierrors.Label(err)
		c.logger.Warn("Backend call failed",
			"version", c.version,
			"operation", operation,
			"error", err,
		)
	}
	metrics.RecordAPICall(string(c.version), operation, time.Since(start).Seconds(), err == nil, errorCode)

	return result, err
}
