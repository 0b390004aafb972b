package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/vadimtrunov/tmdbapi/internal/transport"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := testLogger()
	tr := transport.New(transport.DefaultConfig(), logger)
	return New("test-key", tr, logger, append([]Option{WithBaseURL(server.URL)}, opts...)...)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestSearchMovies(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Error("missing api_key")
		}
		if r.URL.Query().Get("query") != "blade runner" {
			t.Errorf("unexpected query: %s", r.URL.Query().Get("query"))
		}
		if r.URL.Query().Has("year") {
			t.Error("year must be omitted when zero")
		}

		writeJSON(t, w, ResultList[Movie]{
			Page: 1,
			Results: []Movie{
				{ID: 78, Title: "Blade Runner", VoteAverage: 7.9, ReleaseDate: "1982-06-25"},
			},
			TotalResults: 1,
		})
	}))

	resp, err := client.SearchMovies(context.Background(), "blade runner", SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 movie, got %d", len(resp.Results))
	}
	if resp.Results[0].Title != "Blade Runner" {
		t.Errorf("expected Blade Runner, got %s", resp.Results[0].Title)
	}
	if resp.Results[0].Year() != "1982" {
		t.Errorf("expected year 1982, got %s", resp.Results[0].Year())
	}
}

func TestSearchMoviesWithOptions(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("year") != "1982" {
			t.Errorf("expected year=1982, got %s", q.Get("year"))
		}
		if q.Get("language") != "ru" {
			t.Errorf("expected language=ru, got %s", q.Get("language"))
		}
		if q.Get("include_adult") != "true" {
			t.Errorf("expected include_adult=true, got %s", q.Get("include_adult"))
		}
		if q.Get("page") != "2" {
			t.Errorf("expected page=2, got %s", q.Get("page"))
		}
		writeJSON(t, w, ResultList[Movie]{Page: 2})
	}))

	opts := SearchOptions{Year: 1982, Language: "ru", IncludeAdult: true, Page: 2}
	if _, err := client.SearchMovies(context.Background(), "Бегущий по лезвию", opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchBlankQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("blank query must not reach the server")
	}))

	_, err := client.SearchMovies(context.Background(), "  ", SearchOptions{})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestDefaultLanguage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("language") != "de-DE" {
			t.Errorf("expected default language, got %q", r.URL.Query().Get("language"))
		}
		writeJSON(t, w, ResultList[Movie]{})
	}), WithLanguage("de-DE"))

	if _, err := client.GetPopular(context.Background(), "", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		notFound     bool
		unauthorized bool
	}{
		{
			name:         "invalid_key",
			status:       http.StatusUnauthorized,
			body:         `{"success":false,"status_code":7,"status_message":"Invalid API key: You must be granted a valid key."}`,
			unauthorized: true,
		},
		{
			name:     "not_found",
			status:   http.StatusNotFound,
			body:     `{"success":false,"status_code":34,"status_message":"The resource you requested could not be found."}`,
			notFound: true,
		},
		{
			name:   "failure_without_success_flag",
			status: http.StatusOK,
			body:   `{"status_code":11,"status_message":"Internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			_, err := client.GetMovie(context.Background(), 550, "")
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.IsNotFound() != tt.notFound {
				t.Errorf("IsNotFound = %v, want %v", apiErr.IsNotFound(), tt.notFound)
			}
			if apiErr.IsUnauthorized() != tt.unauthorized {
				t.Errorf("IsUnauthorized = %v, want %v", apiErr.IsUnauthorized(), tt.unauthorized)
			}
		})
	}
}

func TestMappingFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))

	_, err := client.GetMovie(context.Background(), 550, "")
	if !errors.Is(err, ErrMappingFailed) {
		t.Fatalf("expected ErrMappingFailed, got %v", err)
	}
}

func TestConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := New("test-key", nil, testLogger(), WithBaseURL(baseURL))
	_, err := client.GetMovie(context.Background(), 550, "")
	if !errors.Is(err, transport.ErrConnection) {
		t.Fatalf("expected transport.ErrConnection, got %v", err)
	}
}

func TestInvalidBaseURL(t *testing.T) {
	client := New("test-key", nil, testLogger(), WithBaseURL("not a url"))
	_, err := client.GetLatestMovie(context.Background())
	if !errors.Is(err, transport.ErrInvalidURL) {
		t.Fatalf("expected transport.ErrInvalidURL, got %v", err)
	}
}

func TestUnknownPropertiesLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":1,"name":"Drama","mystery_field":42}`))
	}))
	defer server.Close()

	client := New("test-key", transport.New(transport.DefaultConfig(), testLogger()), logger, WithBaseURL(server.URL))
	keyword, err := client.GetKeyword(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if keyword.Name != "Drama" {
		t.Errorf("expected Drama, got %s", keyword.Name)
	}

	out := buf.String()
	if !strings.Contains(out, "unknown property") || !strings.Contains(out, "mystery_field") {
		t.Errorf("expected unknown property log, got %q", out)
	}
	if strings.Contains(out, "key=name") {
		t.Errorf("known field reported as unknown: %q", out)
	}
}

func TestKnownFieldsFollowsEmbedding(t *testing.T) {
	fields := knownFields(reflect.TypeFor[TVDetails]())

	for _, name := range []string{"id", "name", "first_air_date", "number_of_seasons"} {
		if _, ok := fields[name]; !ok {
			t.Errorf("expected %q to be known", name)
		}
	}
	if _, ok := fields["TVSeries"]; ok {
		t.Error("embedded struct must be flattened")
	}
}

func TestCookieSessionSharedAcrossCalls(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Add("Set-Cookie", "tmdb.session=xyz; path=/")
		} else if got := r.Header.Get("Cookie"); got != "tmdb.session=xyz" {
			t.Errorf("expected session cookie, got %q", got)
		}
		writeJSON(t, w, Configuration{})
	}))

	for range 2 {
		if _, err := client.GetConfiguration(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if client.Transport().Cookies().Header("127.0.0.1") == "" {
		t.Error("expected cookie in the client's transport")
	}
}
