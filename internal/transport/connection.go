package transport

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Connection is a prepared request bound to a single-use client. Proxy
// settings and proxy credentials are applied; nothing else is.
type Connection struct {
	Request *http.Request
	client  *http.Client
}

// Do sends the request. The caller owns the response body.
func (c *Connection) Do() (*http.Response, error) {
	return c.client.Do(c.Request)
}

// Disconnect releases the underlying network connection.
func (c *Connection) Disconnect() {
	c.client.CloseIdleConnections()
}

// OpenConnection prepares a GET request to rawURL through the configured proxy.
func (t *Transport) OpenConnection(ctx context.Context, rawURL string) (*Connection, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return t.open(ctx, u)
}

func (t *Transport) open(ctx context.Context, target *url.URL) (*Connection, error) {
	client, err := t.newClient()
	if err != nil {
		return nil, connectionError(target, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), http.NoBody)
	if err != nil {
		return nil, invalidURLError(redactURL(target), err)
	}

	if auth := t.proxyAuthorization(); auth != "" {
		req.Header.Set("Proxy-Authorization", auth)
	}

	return &Connection{Request: req, client: client}, nil
}

// newClient builds a client from the current settings. Keep-alives are off
// so every request opens and closes its own connection.
func (t *Transport) newClient() (*http.Client, error) {
	if t.roundTripper != nil {
		return &http.Client{Transport: t.roundTripper}, nil
	}

	t.mu.RLock()
	connectTimeout := t.connectTimeout
	readTimeout := t.readTimeout
	proxy := t.proxy
	proxyAuth := t.proxyAuth
	t.mu.RUnlock()

	dialer := &net.Dialer{Timeout: connectTimeout}
	tr := &http.Transport{
		DialContext:           readDeadlineDialer(dialer.DialContext, readTimeout),
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
		DisableKeepAlives:     true,
	}
	if err := proxy.apply(tr, dialer, proxyAuth, readTimeout); err != nil {
		return nil, err
	}
	return &http.Client{Transport: tr}, nil
}

type dialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// readDeadlineDialer wraps dial so that each Read on the connection must
// complete within timeout.
func readDeadlineDialer(dial dialFunc, timeout time.Duration) dialFunc {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := dial(ctx, network, addr)
		if err != nil || timeout <= 0 {
			return conn, err
		}
		return &deadlineConn{Conn: conn, timeout: timeout}, nil
	}
}

type deadlineConn struct {
	net.Conn
	timeout time.Duration
}

func (c *deadlineConn) Read(p []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(p)
}
