package transport

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// Proxy schemes understood by the transport.
const (
	ProxySchemeHTTP   = "http"
	ProxySchemeSOCKS5 = "socks5"
)

// ErrUnsupportedProxyScheme is returned when a request is made through a
// proxy whose scheme is neither http nor socks5.
var ErrUnsupportedProxyScheme = errors.New("unsupported proxy scheme")

// ProxyConfig holds the upstream proxy settings. Values are stored as given
// and never validated.
type ProxyConfig struct {
	Scheme   string
	Host     string
	Port     string
	Username string
	Password string
}

// address returns host:port, or the bare host when no port is set.
func (p ProxyConfig) address() string {
	if p.Port == "" {
		return p.Host
	}
	return net.JoinHostPort(p.Host, p.Port)
}

// apply routes tr through the proxy. A no-op when no host is configured.
func (p ProxyConfig) apply(tr *http.Transport, dialer *net.Dialer, auth string, readTimeout time.Duration) error {
	if p.Host == "" {
		return nil
	}

	switch strings.ToLower(p.Scheme) {
	case "", ProxySchemeHTTP:
		tr.Proxy = http.ProxyURL(&url.URL{Scheme: ProxySchemeHTTP, Host: p.address()})
		if auth != "" {
			tr.ProxyConnectHeader = http.Header{"Proxy-Authorization": {auth}}
		}
		return nil

	case ProxySchemeSOCKS5:
		var socksAuth *proxy.Auth
		if p.Username != "" {
			socksAuth = &proxy.Auth{User: p.Username, Password: p.Password}
		}
		d, err := proxy.SOCKS5("tcp", p.address(), socksAuth, dialer)
		if err != nil {
			return fmt.Errorf("create socks5 dialer: %w", err)
		}
		cd, ok := d.(proxy.ContextDialer)
		if !ok {
			return fmt.Errorf("socks5 dialer does not support contexts")
		}
		tr.DialContext = readDeadlineDialer(cd.DialContext, readTimeout)
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedProxyScheme, p.Scheme)
	}
}

// basicAuth returns the Proxy-Authorization value for username:password.
func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// ProxyScheme returns the configured proxy scheme.
func (t *Transport) ProxyScheme() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.proxy.Scheme
}

// SetProxyScheme sets the proxy scheme ("http" or "socks5"; empty means http).
func (t *Transport) SetProxyScheme(scheme string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.proxy.Scheme = scheme
}

// ProxyHost returns the configured proxy host.
func (t *Transport) ProxyHost() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.proxy.Host
}

// SetProxyHost sets the proxy host. An empty host disables the proxy.
func (t *Transport) SetProxyHost(host string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.proxy.Host = host
}

// ProxyPort returns the configured proxy port.
func (t *Transport) ProxyPort() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.proxy.Port
}

// SetProxyPort sets the proxy port.
func (t *Transport) SetProxyPort(port string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.proxy.Port = port
}

// ProxyUsername returns the configured proxy username.
func (t *Transport) ProxyUsername() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.proxy.Username
}

// SetProxyUsername sets the proxy username and refreshes the credential.
func (t *Transport) SetProxyUsername(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.proxy.Username = username
	t.refreshProxyAuth()
}

// ProxyPassword returns the configured proxy password.
func (t *Transport) ProxyPassword() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.proxy.Password
}

// SetProxyPassword sets the proxy password. The credential is recomputed
// only when a username is present.
func (t *Transport) SetProxyPassword(password string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.proxy.Password = password
	t.refreshProxyAuth()
}

// refreshProxyAuth must be called with t.mu held.
func (t *Transport) refreshProxyAuth() {
	if t.proxy.Username == "" {
		t.proxyAuth = ""
		return
	}
	t.proxyAuth = basicAuth(t.proxy.Username, t.proxy.Password)
}

func (t *Transport) proxyAuthorization() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.proxyAuth
}

// ConnectTimeout returns the dial timeout applied to new connections.
func (t *Transport) ConnectTimeout() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.connectTimeout
}

// SetConnectTimeout changes the dial timeout for connections opened afterwards.
func (t *Transport) SetConnectTimeout(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connectTimeout = d
}

// ReadTimeout returns the per-read timeout applied to new connections.
func (t *Transport) ReadTimeout() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.readTimeout
}

// SetReadTimeout changes the per-read timeout for connections opened afterwards.
func (t *Transport) SetReadTimeout(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.readTimeout = d
}
