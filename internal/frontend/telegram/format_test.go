package telegram

import (
	"strings"
	"testing"

	"github.com/vadimtrunov/tmdbapi/internal/metadata/tmdb"
)

func TestEscapeMdV2(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "hello world", want: "hello world"},
		{name: "dots", in: "hello.", want: "hello\\."},
		{name: "exclamation", in: "Done!", want: "Done\\!"},
		{name: "parentheses", in: "(2024)", want: "\\(2024\\)"},
		{name: "brackets", in: "[link]", want: "\\[link\\]"},
		{name: "underscores", in: "foo_bar", want: "foo\\_bar"},
		{name: "stars", in: "*bold*", want: "\\*bold\\*"},
		{name: "mixed", in: "Dune (2021) - 8.0*", want: "Dune \\(2021\\) \\- 8\\.0\\*"},
		{name: "all specials", in: "_*[]()~`>#+-=|{}.!", want: "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeMdV2(tt.in)
			if got != tt.want {
				t.Errorf("EscapeMdV2(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatBold(t *testing.T) {
	got := FormatBold("Dune")
	want := "*Dune*"
	if got != want {
		t.Errorf("FormatBold(%q) = %q, want %q", "Dune", got, want)
	}

	got = FormatBold("Dune (2021)")
	want = "*Dune \\(2021\\)*"
	if got != want {
		t.Errorf("FormatBold(%q) = %q, want %q", "Dune (2021)", got, want)
	}
}

func TestFormatItalic(t *testing.T) {
	got := FormatItalic("description")
	want := "_description_"
	if got != want {
		t.Errorf("FormatItalic(%q) = %q, want %q", "description", got, want)
	}
}

func TestRatingBar(t *testing.T) {
	tests := []struct {
		name  string
		vote  float64
		width int
		want  string
	}{
		{name: "zero", vote: 0, width: 5, want: "☆☆☆☆☆ 0.0/10"},
		{name: "half", vote: 5, width: 4, want: "★★☆☆ 5.0/10"},
		{name: "full", vote: 10, width: 3, want: "★★★ 10.0/10"},
		{name: "default width", vote: 8.4, width: 0, want: "★★★★★★★★☆☆ 8.4/10"},
		{name: "over range", vote: 12, width: 2, want: "★★ 12.0/10"},
		{name: "negative", vote: -1, width: 2, want: "☆☆ -1.0/10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RatingBar(tt.vote, tt.width); got != tt.want {
				t.Errorf("RatingBar(%v, %d) = %q, want %q", tt.vote, tt.width, got, tt.want)
			}
		})
	}
}

func TestFormatMovieList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := FormatMovieList("Results", nil); got != "No movies found\\." {
			t.Errorf("unexpected empty list: %q", got)
		}
	})

	t.Run("numbered", func(t *testing.T) {
		got := FormatMovieList("Movies matching dune", []tmdb.Movie{
			{ID: 438631, Title: "Dune", ReleaseDate: "2021-09-15", VoteAverage: 7.8},
			{ID: 841, Title: "Dune", VoteAverage: 6.2},
		})
		want := "*Movies matching dune*\n\n1\\. Dune \\(2021\\) \\- 7\\.8\n2\\. Dune \\- 6\\.2"
		if got != want {
			t.Errorf("got %q\nwant %q", got, want)
		}
	})

	t.Run("capped", func(t *testing.T) {
		movies := make([]tmdb.Movie, maxListItems+3)
		got := FormatMovieList("Many", movies)
		if lines := strings.Count(got, "\n"); lines != maxListItems+1 {
			t.Errorf("expected %d items, got output %q", maxListItems, got)
		}
	})
}

func TestFormatMovieDetails(t *testing.T) {
	m := &tmdb.MovieDetails{
		Title:       "Inception",
		ReleaseDate: "2010-07-15",
		Tagline:     "Your mind is the scene of the crime.",
		Runtime:     148,
		VoteAverage: 8.4,
		Genres:      []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
		Overview:    "Cobb steals secrets.",
		Credits: &tmdb.Credits{Cast: []tmdb.CastMember{
			{Name: "Leonardo DiCaprio"}, {Name: "Joseph Gordon-Levitt"},
		}},
	}
	got := FormatMovieDetails(m)

	for _, want := range []string{
		"*Inception \\(2010\\)*",
		"_Your mind is the scene of the crime\\._",
		"Action, Science Fiction",
		"148 min",
		"8\\.4/10",
		"*Cast:* Leonardo DiCaprio, Joseph Gordon\\-Levitt",
		"Cobb steals secrets\\.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("details missing %q:\n%s", want, got)
		}
	}
}

func TestFormatPerson(t *testing.T) {
	got := FormatPerson(&tmdb.Person{
		Name:               "Christopher Nolan",
		KnownForDepartment: "Directing",
		Birthday:           "1970-07-30",
		PlaceOfBirth:       "London",
		Biography:          "British-American filmmaker.",
	})
	for _, want := range []string{
		"*Christopher Nolan*",
		"_Directing_",
		"Born 1970\\-07\\-30 in London",
		"British\\-American filmmaker\\.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("person missing %q:\n%s", want, got)
		}
	}
}

func TestFormatTV(t *testing.T) {
	s := &tmdb.TVDetails{NumberOfSeasons: 5, NumberOfEpisodes: 62, Status: "Ended"}
	s.Name = "Breaking Bad"
	s.FirstAirDate = "2008-01-20"
	s.VoteAverage = 8.9

	got := FormatTV(s)
	for _, want := range []string{
		"*Breaking Bad \\(2008\\)*",
		"5 seasons, 62 episodes",
		"Status: Ended",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("tv missing %q:\n%s", want, got)
		}
	}

	list := FormatTVList("Series", []tmdb.TVSeries{s.TVSeries})
	if !strings.Contains(list, "1\\. Breaking Bad \\(2008\\) \\- 8\\.9") {
		t.Errorf("unexpected tv list: %q", list)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Amélie", 10); got != "Amélie" {
		t.Errorf("short string changed: %q", got)
	}
	if got := truncate("Amélie Poulain", 6); got != "Amélie…" {
		t.Errorf("expected rune-safe truncation, got %q", got)
	}
}
