package transport

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultConnectTimeout bounds dialing a new connection.
	DefaultConnectTimeout = 25 * time.Second
	// DefaultReadTimeout bounds every read on an open connection.
	DefaultReadTimeout = 90 * time.Second

	userAgent       = "Mozilla/5.25 Netscape/5.0 (Windows; I; Win95)"
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// browserHeaders are sent with every request.
var browserHeaders = sync.OnceValue(func() http.Header {
	return http.Header{
		"User-Agent":   {userAgent},
		"Accept":       {contentTypeJSON},
		"Content-Type": {contentTypeJSON},
	}
})

// Config holds timeout and proxy configuration.
type Config struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	Proxy          ProxyConfig
}

// DefaultConfig returns the default timeouts and no proxy.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultReadTimeout,
	}
}

// Transport performs one HTTP request/response cycle per call and keeps a
// cookie session across calls. Share a Transport to share the session.
type Transport struct {
	mu             sync.RWMutex
	connectTimeout time.Duration
	readTimeout    time.Duration
	proxy          ProxyConfig
	proxyAuth      string

	cookies      *CookieStore
	roundTripper http.RoundTripper
	logger       *slog.Logger
}

// Option customizes a Transport.
type Option func(*Transport)

// WithRoundTripper replaces the per-request network transport. Proxy and
// timeout settings are not applied to it; the Proxy-Authorization header is.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(t *Transport) { t.roundTripper = rt }
}

// WithCookieStore makes the Transport use an existing cookie session.
// A nil store is ignored.
func WithCookieStore(store *CookieStore) Option {
	return func(t *Transport) {
		if store != nil {
			t.cookies = store
		}
	}
}

// New creates a Transport from cfg.
func New(cfg Config, logger *slog.Logger, opts ...Option) *Transport {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Transport{
		connectTimeout: cfg.ConnectTimeout,
		readTimeout:    cfg.ReadTimeout,
		cookies:        NewCookieStore(),
		logger:         logger,
	}
	t.SetProxyScheme(cfg.Proxy.Scheme)
	t.SetProxyHost(cfg.Proxy.Host)
	t.SetProxyPort(cfg.Proxy.Port)
	t.SetProxyUsername(cfg.Proxy.Username)
	t.SetProxyPassword(cfg.Proxy.Password)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Cookies returns the cookie session used by this Transport.
func (t *Transport) Cookies() *CookieStore { return t.cookies }

// Get requests rawURL and returns the response body.
func (t *Transport) Get(ctx context.Context, rawURL string) (string, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return "", err
	}
	return t.Send(ctx, u, "", false)
}

// Post sends body to rawURL. A blank body degrades to a GET.
func (t *Transport) Post(ctx context.Context, rawURL, body string) (string, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return "", err
	}
	return t.Send(ctx, u, body, false)
}

// Delete sends a DELETE with a form content type to rawURL.
func (t *Transport) Delete(ctx context.Context, rawURL, body string) (string, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return "", err
	}
	return t.Send(ctx, u, body, true)
}

// Send performs a single request to target and returns the whole response
// body as one string with line separators removed. Responses with status
// 400 and above are returned as text too; only transport failures are errors.
func (t *Transport) Send(ctx context.Context, target *url.URL, body string, deletion bool) (string, error) {
	if err := validateURL(target); err != nil {
		return "", err
	}

	conn, err := t.open(ctx, target)
	if err != nil {
		return "", err
	}
	defer conn.Disconnect()

	req := conn.Request
	hasBody := strings.TrimSpace(body) != ""
	switch {
	case deletion:
		req.Method = http.MethodDelete
	case hasBody:
		req.Method = http.MethodPost
	}

	t.sendHeader(req, deletion)

	if hasBody {
		payload, err := DetectCharset(req.Header.Get("Content-Type")).Encode(body)
		if err != nil {
			return "", connectionError(target, err)
		}
		req.Body = io.NopCloser(bytes.NewReader(payload))
		req.ContentLength = int64(len(payload))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(payload)), nil
		}
	}

	t.logger.Debug("sending request",
		slog.String("method", req.Method),
		slog.String("url", redactURL(target)),
	)

	resp, err := conn.Do()
	if err != nil {
		return "", connectionError(target, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			t.logger.Debug("failed to close response body", slog.String("error", cerr.Error()))
		}
	}()

	t.readHeader(target, resp)

	charset := DetectCharset(resp.Header.Get("Content-Type"))
	if resp.StatusCode >= http.StatusBadRequest {
		t.logger.Debug("reading error response",
			slog.Int("status", resp.StatusCode),
			slog.String("url", redactURL(target)),
		)
	}

	content, err := readLines(charset.NewReader(resp.Body))
	if err != nil {
		return "", connectionError(target, err)
	}
	return content, nil
}

// sendHeader applies the fixed headers and the cookie header.
func (t *Transport) sendHeader(req *http.Request, deletion bool) {
	for name, values := range browserHeaders() {
		req.Header[name] = append([]string(nil), values...)
	}
	if deletion {
		req.Header.Set("Content-Type", contentTypeForm)
	}
	if header := t.cookies.Header(req.URL.Hostname()); header != "" {
		req.Header.Set("Cookie", header)
	}
}

// readHeader merges every Set-Cookie value into the cookie store.
func (t *Transport) readHeader(target *url.URL, resp *http.Response) {
	for _, value := range resp.Header.Values("Set-Cookie") {
		t.cookies.SetCookie(value, target.Hostname())
	}
}

var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

// readLines reads r to the end, concatenating lines without separators.
func readLines(r io.Reader) (string, error) {
	var sb strings.Builder
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		sb.WriteString(lineBreaks.Replace(line))
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}
