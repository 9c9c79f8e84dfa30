package rosette

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aweissman/depviz/pkg/adm"
	"github.com/aweissman/depviz/pkg/cache"
	"github.com/aweissman/depviz/pkg/errors"
)

const (
	// DefaultBaseURL is the public Rosette API service URL.
	DefaultBaseURL = "https://api.rosette.com/rest/v1/"

	// DefaultEndpoint is the dependency parse endpoint.
	DefaultEndpoint = "syntax/dependencies"

	// DefaultCacheTTL is how long fetched documents stay cached.
	DefaultCacheTTL = 24 * time.Hour

	httpTimeout = 30 * time.Second
)

// Config configures a Client.
type Config struct {
	Key      string        // API key, sent as X-RosetteAPI-Key
	BaseURL  string        // Service URL (default: DefaultBaseURL)
	Cache    cache.Cache   // Response cache backend (default: NullCache)
	CacheTTL time.Duration // Cache entry TTL (default: DefaultCacheTTL)
}

// Client calls the Rosette API and decodes ADM responses.
// All methods are safe for concurrent use.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	baseURL string
	key     string
}

// NewClient creates a Rosette API client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cfg.Cache,
		ttl:     cfg.CacheTTL,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		key:     cfg.Key,
	}
}

// Request describes one document analysis request. Exactly one of
// Content or ContentURI should be set.
type Request struct {
	Content    string // Raw document text
	ContentURI string // URI to extract document content from
	Language   string // Optional ISO 639-2 T language override
	Endpoint   string // Analysis endpoint (default: DefaultEndpoint)
	Refresh    bool   // Bypass the response cache
}

// endpoint returns the request's endpoint path. The legacy underscore
// spelling ("syntax_dependencies") is accepted as an alias.
func (r Request) endpoint() string {
	if r.Endpoint == "" {
		return DefaultEndpoint
	}
	return strings.ReplaceAll(r.Endpoint, "_", "/")
}

// requestBody is the JSON document parameters payload.
type requestBody struct {
	Content    string `json:"content,omitempty"`
	ContentURI string `json:"contentUri,omitempty"`
	Language   string `json:"language,omitempty"`
}

// errorBody is the JSON shape of Rosette API error responses.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FetchDocument requests an annotated document for req.
//
// The raw ADM response is cached under a hash of the full request
// (endpoint, content, URI, language); req.Refresh forces a fresh fetch.
// Failures are terminal; the client performs no retries.
func (c *Client) FetchDocument(ctx context.Context, req Request) (*adm.Document, error) {
	key := cache.Key("rosette", req.endpoint(), req.Content, req.ContentURI, req.Language)

	if !req.Refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			var doc adm.Document
			if err := json.Unmarshal(data, &doc); err == nil {
				return &doc, nil
			}
			// Undecodable entry: fall through to a fresh fetch.
		}
	}

	data, err := c.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	var doc adm.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStructural, err, "decode ADM response")
	}

	_ = c.cache.Set(ctx, key, data, c.ttl)
	return &doc, nil
}

func (c *Client) fetch(ctx context.Context, req Request) ([]byte, error) {
	body, err := json.Marshal(requestBody{
		Content:    req.Content,
		ContentURI: req.ContentURI,
		Language:   req.Language,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode request")
	}

	url := fmt.Sprintf("%s/%s?output=rosette", c.baseURL, req.endpoint())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-RosetteAPI-Key", c.key)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "fetch document")
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch document")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, data)
	}
	return data, nil
}

// statusError maps a non-200 response to a structured error, surfacing
// the service's own message when the body carries one.
func statusError(status int, body []byte) error {
	msg := serviceMessage(body)

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.New(errors.ErrCodeUnauthorized, "API key rejected: %s", msg)
	case http.StatusTooManyRequests:
		return errors.New(errors.ErrCodeRateLimited, "rate limited: %s", msg)
	default:
		return errors.New(errors.ErrCodeRemoteService, "service returned status %d: %s", status, msg)
	}
}

func serviceMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
		return eb.Message
	}
	if len(body) == 0 {
		return "(no response body)"
	}
	return strings.TrimSpace(string(body))
}
