package transport

import (
	"context"
	"encoding/base64"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func decodeBasic(t *testing.T, header string) string {
	t.Helper()
	encoded, ok := strings.CutPrefix(header, "Basic ")
	if !ok {
		t.Fatalf("expected Basic credentials, got %q", header)
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("decode credentials: %v", err)
	}
	return string(raw)
}

func proxyHostPort(t *testing.T, server *httptest.Server) (string, string) {
	t.Helper()
	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse proxy URL: %v", err)
	}
	host, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("split proxy address: %v", err)
	}
	return host, port
}

func TestProxy_ForwardsThroughHTTPProxy(t *testing.T) {
	var gotAuth, gotTarget string
	proxyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Proxy-Authorization")
		gotTarget = r.URL.String()
		w.Write([]byte(`{"via":"proxy"}`))
	}))
	defer proxyServer.Close()

	host, port := proxyHostPort(t, proxyServer)
	cfg := DefaultConfig()
	cfg.Proxy = ProxyConfig{Host: host, Port: port, Username: "user", Password: "pass"}
	tr := New(cfg, testLogger())

	body, err := tr.Get(context.Background(), "http://movies.example/3/movie/78")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != `{"via":"proxy"}` {
		t.Errorf("unexpected body %q", body)
	}
	if gotTarget != "http://movies.example/3/movie/78" {
		t.Errorf("proxy saw target %q", gotTarget)
	}
	if got := decodeBasic(t, gotAuth); got != "user:pass" {
		t.Errorf("proxy credentials = %q, want %q", got, "user:pass")
	}
}

func TestProxy_HTTPSTargetUsesConnect(t *testing.T) {
	type connectRecord struct {
		method, target, auth string
	}
	seen := make(chan connectRecord, 1)
	proxyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case seen <- connectRecord{r.Method, r.Host, r.Header.Get("Proxy-Authorization")}:
		default:
		}
		// Refuse the tunnel: only the CONNECT itself is under test.
		w.WriteHeader(http.StatusForbidden)
	}))
	defer proxyServer.Close()

	host, port := proxyHostPort(t, proxyServer)
	cfg := DefaultConfig()
	cfg.Proxy = ProxyConfig{Host: host, Port: port, Username: "user", Password: "pass"}
	tr := New(cfg, testLogger())

	_, err := tr.Get(context.Background(), "https://movies.example/3/movie/78?api_key=k")
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection for a refused tunnel, got %v", err)
	}

	var got connectRecord
	select {
	case got = <-seen:
	default:
		t.Fatal("proxy received no request")
	}
	if got.method != http.MethodConnect {
		t.Errorf("method = %q, want CONNECT", got.method)
	}
	if got.target != "movies.example:443" {
		t.Errorf("tunnel target = %q, want movies.example:443", got.target)
	}
	if decodeBasic(t, got.auth) != "user:pass" {
		t.Errorf("CONNECT credentials = %q", got.auth)
	}
}

func TestProxy_CredentialsOnRequest(t *testing.T) {
	rt := &fakeRoundTripper{respond: func(*http.Request) *http.Response {
		return textResponse(http.StatusOK, "{}", nil)
	}}
	tr := newTestTransport(WithRoundTripper(rt))
	tr.SetProxyHost("proxy.local")
	tr.SetProxyPort("3128")
	tr.SetProxyUsername("user")
	tr.SetProxyPassword("pass")

	if _, err := tr.Get(context.Background(), "https://api.themoviedb.org/3/configuration"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := decodeBasic(t, rt.last().Header.Get("Proxy-Authorization")); got != "user:pass" {
		t.Errorf("credentials = %q", got)
	}
}

func TestProxy_CredentialUpdates(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*Transport)
		wantAuth string
	}{
		{
			name:     "none",
			setup:    func(*Transport) {},
			wantAuth: "",
		},
		{
			name: "username_then_password",
			setup: func(tr *Transport) {
				tr.SetProxyUsername("user")
				tr.SetProxyPassword("pass")
			},
			wantAuth: "user:pass",
		},
		{
			name: "password_then_username",
			setup: func(tr *Transport) {
				tr.SetProxyPassword("pass")
				tr.SetProxyUsername("user")
			},
			wantAuth: "user:pass",
		},
		{
			name: "username_only",
			setup: func(tr *Transport) {
				tr.SetProxyUsername("user")
			},
			wantAuth: "user:",
		},
		{
			name: "password_only",
			setup: func(tr *Transport) {
				tr.SetProxyPassword("pass")
			},
			wantAuth: "",
		},
		{
			name: "username_cleared",
			setup: func(tr *Transport) {
				tr.SetProxyUsername("user")
				tr.SetProxyPassword("pass")
				tr.SetProxyUsername("")
			},
			wantAuth: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTransport()
			tt.setup(tr)

			auth := tr.proxyAuthorization()
			if tt.wantAuth == "" {
				if auth != "" {
					t.Errorf("expected no credential, got %q", auth)
				}
				return
			}
			if got := decodeBasic(t, auth); got != tt.wantAuth {
				t.Errorf("credential = %q, want %q", got, tt.wantAuth)
			}
		})
	}
}

func TestProxy_SettingsRoundTrip(t *testing.T) {
	tr := newTestTransport()
	tr.SetProxyScheme(ProxySchemeSOCKS5)
	tr.SetProxyHost("10.0.0.1")
	tr.SetProxyPort("1080")
	tr.SetProxyUsername("u")
	tr.SetProxyPassword("p")

	if tr.ProxyScheme() != "socks5" || tr.ProxyHost() != "10.0.0.1" || tr.ProxyPort() != "1080" {
		t.Errorf("unexpected proxy settings %q %q %q", tr.ProxyScheme(), tr.ProxyHost(), tr.ProxyPort())
	}
	if tr.ProxyUsername() != "u" || tr.ProxyPassword() != "p" {
		t.Errorf("unexpected proxy credentials %q %q", tr.ProxyUsername(), tr.ProxyPassword())
	}
}

func TestProxy_UnsupportedScheme(t *testing.T) {
	tr := newTestTransport()
	tr.SetProxyScheme("ftp")
	tr.SetProxyHost("proxy.local")

	_, err := tr.Get(context.Background(), "https://api.themoviedb.org/3/configuration")
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
	if !errors.Is(err, ErrUnsupportedProxyScheme) {
		t.Errorf("expected ErrUnsupportedProxyScheme cause, got %v", err)
	}
}

func TestProxy_SOCKS5Unreachable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	host, port, _ := net.SplitHostPort(listener.Addr().String())
	listener.Close()

	tr := newTestTransport()
	tr.SetProxyScheme(ProxySchemeSOCKS5)
	tr.SetProxyHost(host)
	tr.SetProxyPort(port)

	_, err = tr.Get(context.Background(), "http://movies.example/")
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
}

func TestProxyConfig_Address(t *testing.T) {
	tests := []struct {
		cfg  ProxyConfig
		want string
	}{
		{ProxyConfig{Host: "proxy.local", Port: "8080"}, "proxy.local:8080"},
		{ProxyConfig{Host: "proxy.local"}, "proxy.local"},
		{ProxyConfig{Host: "::1", Port: "3128"}, "[::1]:3128"},
	}
	for _, tt := range tests {
		if got := tt.cfg.address(); got != tt.want {
			t.Errorf("address(%+v) = %q, want %q", tt.cfg, got, tt.want)
		}
	}
}
