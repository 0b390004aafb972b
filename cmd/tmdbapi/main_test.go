package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := newRootCmd()

	want := map[string]bool{
		"version":   false,
		"config":    false,
		"movie":     false,
		"person":    false,
		"tv":        false,
		"search":    false,
		"auth":      false,
		"list":      false,
		"browse":    false,
		"bot":       false,
		"mcp-serve": false,
	}

	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	root := newRootCmd()
	flag := root.PersistentFlags().Lookup("config")
	if flag == nil {
		t.Fatal("--config flag not registered")
	}
	if flag.DefValue != "configs/tmdbapi.yaml" {
		t.Errorf("--config default = %q, want %q", flag.DefValue, "configs/tmdbapi.yaml")
	}
	if flag.Shorthand != "c" {
		t.Errorf("--config shorthand = %q, want %q", flag.Shorthand, "c")
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "tmdbapi v"+version+"\n" {
		t.Errorf("output = %q", got)
	}
}

func TestSubcommandGroups(t *testing.T) {
	groups := map[string][]string{
		"config": {"validate", "show"},
		"auth":   {"token", "session", "guest"},
		"list":   {"get", "create", "add", "remove", "delete"},
	}
	root := newRootCmd()
	for parent, subs := range groups {
		cmd, _, err := root.Find([]string{parent})
		if err != nil {
			t.Fatalf("find %s: %v", parent, err)
		}
		names := make(map[string]bool)
		for _, c := range cmd.Commands() {
			names[c.Name()] = true
		}
		for _, s := range subs {
			if !names[s] {
				t.Errorf("%s is missing %q subcommand", parent, s)
			}
		}
	}
}

func TestSearchCommand_RequiresArgs(t *testing.T) {
	cmd := newSearchCmd()
	if err := cmd.Args(cmd, []string{"movie"}); err == nil {
		t.Error("search should require a kind and a query")
	}
	if err := cmd.Args(cmd, []string{"movie", "the", "matrix"}); err != nil {
		t.Errorf("search should accept a multi-word query: %v", err)
	}
}

// fakeTMDb serves the handful of endpoints the commands below exercise.
func fakeTMDb(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/27205", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"id":27205,"title":"Inception","release_date":"2010-07-15","vote_average":8.4,"vote_count":35000}`))
	})
	mux.HandleFunc("/movie/1", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	})
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("query") != "inception" {
			_, _ = w.Write([]byte(`{"page":1,"results":[],"total_results":0,"total_pages":0}`))
			return
		}
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":27205,"title":"Inception","release_date":"2010-07-15","vote_average":8.4}],"total_results":1,"total_pages":1}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tmdbapi.yaml")
	content := "tmdb:\n  api_key: test-key\n  base_url: " + baseURL + "\napp:\n  log_level: error\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMovieCommand_JSON(t *testing.T) {
	srv := fakeTMDb(t)
	cfgPath := writeConfig(t, srv.URL)

	out, err := execute(t, "-c", cfgPath, "movie", "27205", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.ID != 27205 || got.Title != "Inception" {
		t.Errorf("got %+v", got)
	}
}

func TestMovieCommand_Rendered(t *testing.T) {
	srv := fakeTMDb(t)
	cfgPath := writeConfig(t, srv.URL)

	out, err := execute(t, "-c", cfgPath, "movie", "27205")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Inception (2010)", "27205", "35000 votes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMovieCommand_NotFound(t *testing.T) {
	srv := fakeTMDb(t)
	cfgPath := writeConfig(t, srv.URL)

	_, err := execute(t, "-c", cfgPath, "movie", "1")
	if err == nil {
		t.Fatal("expected an error for a missing movie")
	}
}

func TestMovieCommand_InvalidID(t *testing.T) {
	_, err := execute(t, "-c", "does-not-matter.yaml", "movie", "abc")
	if err == nil || !strings.Contains(err.Error(), "invalid movie id") {
		t.Errorf("err = %v, want invalid movie id", err)
	}
}

func TestSearchCommand(t *testing.T) {
	srv := fakeTMDb(t)
	cfgPath := writeConfig(t, srv.URL)

	out, err := execute(t, "-c", cfgPath, "search", "movie", "inception")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Inception (2010)") {
		t.Errorf("output missing result:\n%s", out)
	}

	out, err = execute(t, "-c", cfgPath, "search", "movie", "nothing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No results.") {
		t.Errorf("expected empty result message:\n%s", out)
	}
}

func TestSearchCommand_UnknownKind(t *testing.T) {
	_, err := execute(t, "-c", "does-not-matter.yaml", "search", "song", "x")
	if err == nil || !strings.Contains(err.Error(), "unknown search kind") {
		t.Errorf("err = %v, want unknown search kind", err)
	}
}

func TestListAdd_RequiresSession(t *testing.T) {
	t.Setenv(sessionEnv, "")
	_, err := execute(t, "-c", "does-not-matter.yaml", "list", "add", "8224", "27205")
	if !errors.Is(err, errNoSession) {
		t.Errorf("err = %v, want %v", err, errNoSession)
	}
}

func TestConfigShow_MasksSecrets(t *testing.T) {
	cfgPath := writeConfig(t, "http://localhost:1")

	out, err := execute(t, "-c", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "test-key") {
		t.Errorf("api key leaked:\n%s", out)
	}
	if !strings.Contains(out, "****") {
		t.Errorf("expected masked api key:\n%s", out)
	}
}

func TestConfigValidate_MissingFile(t *testing.T) {
	_, err := execute(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "config", "validate")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
