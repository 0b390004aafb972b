package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/vadimtrunov/tmdbapi/internal/transport"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	imageBaseURL   = "https://image.tmdb.org/t/p/"
)

// Client is a TMDb API v3 client.
type Client struct {
	baseURL  string
	apiKey   string
	language string
	http     *transport.Transport
	logger   *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithLanguage sets the language used when a call passes an empty one.
func WithLanguage(language string) Option {
	return func(c *Client) { c.language = language }
}

// New creates a new TMDb client. A nil transport gets one with default
// settings.
func New(apiKey string, tr *transport.Transport, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if tr == nil {
		tr = transport.New(transport.DefaultConfig(), logger)
	}
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    tr,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIKey returns the API key sent with every request.
func (c *Client) APIKey() string { return c.apiKey }

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Transport returns the transport, and with it the cookie session and
// proxy settings, used by the client.
func (c *Client) Transport() *transport.Transport { return c.http }

// buildURL assembles baseURL + path with the api_key and params.
func (c *Client) buildURL(path string, params url.Values) (*url.URL, error) {
	u, err := transport.ParseURL(c.baseURL + path)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	for k, vs := range params {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	u.RawQuery = q.Encode()
	return u, nil
}

// get performs a GET request to the TMDb API and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	return c.do(ctx, path, params, nil, false, result)
}

// post serializes payload to JSON and sends it.
func (c *Client) post(ctx context.Context, path string, params url.Values, payload, result any) error {
	return c.do(ctx, path, params, payload, false, result)
}

// delete sends a deletion request.
func (c *Client) delete(ctx context.Context, path string, params url.Values, result any) error {
	return c.do(ctx, path, params, nil, true, result)
}

func (c *Client) do(ctx context.Context, path string, params url.Values, payload any, deletion bool, result any) error {
	u, err := c.buildURL(path, params)
	if err != nil {
		return err
	}

	var body string
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = string(data)
	}

	text, err := c.http.Send(ctx, u, body, deletion)
	if err != nil {
		return err
	}
	return c.decode(ctx, text, result)
}

// statusEnvelope is the status object TMDb returns for failures and for
// write operations.
type statusEnvelope struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       *bool  `json:"success"`
}

func (s statusEnvelope) failed() bool {
	if s.Success != nil && !*s.Success {
		return true
	}
	return s.StatusCode != 0 && !slices.Contains(successCodes, s.StatusCode)
}

// decode checks text for a failing status envelope, then maps it into result.
func (c *Client) decode(ctx context.Context, text string, result any) error {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") {
		var env statusEnvelope
		if err := json.Unmarshal([]byte(trimmed), &env); err == nil && env.failed() {
			return &APIError{StatusCode: env.StatusCode, Message: env.StatusMessage}
		}
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(trimmed), result); err != nil {
		return fmt.Errorf("%w: %w", ErrMappingFailed, err)
	}
	if c.logger.Enabled(ctx, slog.LevelDebug) {
		c.logUnknown(trimmed, result)
	}
	return nil
}

// logUnknown reports top-level properties that result has no field for.
func (c *Client) logUnknown(text string, result any) {
	t := reflect.TypeOf(result)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return
	}
	known := knownFields(t)
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		if _, ok := known[key]; ok {
			continue
		}
		c.logger.Debug("unknown property",
			slog.String("type", t.Name()),
			slog.String("key", key),
			slog.String("value", string(raw[key])),
		)
	}
}

var fieldCache sync.Map

// knownFields returns the JSON names decoded by struct type t.
func knownFields(t reflect.Type) map[string]struct{} {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]struct{})
	}

	fields := map[string]struct{}{
		"status_code":    {},
		"status_message": {},
		"success":        {},
	}
	for i := range t.NumField() {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				maps.Copy(fields, knownFields(ft))
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields[name] = struct{}{}
	}

	fieldCache.Store(t, fields)
	return fields
}

// languageParams returns the language parameter, defaulting to the client's.
func (c *Client) languageParams(language string) url.Values {
	if language == "" {
		language = c.language
	}
	params := url.Values{}
	if language != "" {
		params.Set("language", language)
	}
	return params
}

// pageParams adds a page number to the language parameters.
func (c *Client) pageParams(language string, page int) url.Values {
	params := c.languageParams(language)
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	return params
}

func requireID(kind string, id int) error {
	if id <= 0 {
		return invalidArgument("%s id must be positive, got %d", kind, id)
	}
	return nil
}

func requireText(kind, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalidArgument("%s must not be blank", kind)
	}
	return nil
}
