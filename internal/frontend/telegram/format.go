package telegram

import (
	"fmt"
	"strings"

	"github.com/vadimtrunov/tmdbapi/internal/metadata/tmdb"
)

const (
	maxListItems   = 8  // search results shown per reply
	maxCastNames   = 5  // cast members listed in movie details
	maxOverviewLen = 600
)

// mdV2Replacer escapes special characters for Telegram MarkdownV2.
var mdV2Replacer = strings.NewReplacer(
	`\`, `\\`,
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// EscapeMdV2 escapes a string for safe use in Telegram MarkdownV2.
func EscapeMdV2(s string) string {
	return mdV2Replacer.Replace(s)
}

// FormatBold returns MarkdownV2 bold text.
func FormatBold(s string) string {
	return "*" + EscapeMdV2(s) + "*"
}

// FormatItalic returns MarkdownV2 italic text.
func FormatItalic(s string) string {
	return "_" + EscapeMdV2(s) + "_"
}

// RatingBar renders a TMDb vote average (0-10) as a bar of width cells.
func RatingBar(vote float64, width int) string {
	if width < 1 {
		width = 10
	}
	filled := int(vote / 10 * float64(width))
	filled = min(max(filled, 0), width)
	return fmt.Sprintf("%s%s %.1f/10",
		strings.Repeat("★", filled),
		strings.Repeat("☆", width-filled),
		vote,
	)
}

// withYear appends " (year)" when year is known.
func withYear(title, year string) string {
	if year == "" {
		return title
	}
	return title + " (" + year + ")"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// FormatMovieList renders search results as a numbered MarkdownV2 list.
func FormatMovieList(heading string, movies []tmdb.Movie) string {
	if len(movies) == 0 {
		return EscapeMdV2("No movies found.")
	}
	var sb strings.Builder
	sb.WriteString(FormatBold(heading))
	sb.WriteString("\n\n")
	for i, m := range movies[:min(len(movies), maxListItems)] {
		fmt.Fprintf(&sb, "%s %s\n",
			EscapeMdV2(fmt.Sprintf("%d.", i+1)),
			EscapeMdV2(fmt.Sprintf("%s - %.1f", withYear(m.Title, m.Year()), m.VoteAverage)),
		)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatMovieDetails renders a movie card.
func FormatMovieDetails(m *tmdb.MovieDetails) string {
	var sb strings.Builder
	sb.WriteString(FormatBold(withYear(m.Title, m.Year())))
	sb.WriteString("\n")
	if m.Tagline != "" {
		sb.WriteString(FormatItalic(m.Tagline))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	genres := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, g.Name)
	}
	if len(genres) > 0 {
		sb.WriteString(EscapeMdV2(strings.Join(genres, ", ")))
		sb.WriteString("\n")
	}
	if m.Runtime > 0 {
		sb.WriteString(EscapeMdV2(fmt.Sprintf("%d min", m.Runtime)))
		sb.WriteString("\n")
	}
	sb.WriteString(EscapeMdV2(RatingBar(m.VoteAverage, 10)))
	sb.WriteString("\n")

	if m.Credits != nil && len(m.Credits.Cast) > 0 {
		names := make([]string, 0, maxCastNames)
		for _, c := range m.Credits.Cast[:min(len(m.Credits.Cast), maxCastNames)] {
			names = append(names, c.Name)
		}
		sb.WriteString(FormatBold("Cast:") + " " + EscapeMdV2(strings.Join(names, ", ")))
		sb.WriteString("\n")
	}
	if m.Overview != "" {
		sb.WriteString("\n")
		sb.WriteString(EscapeMdV2(truncate(m.Overview, maxOverviewLen)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatPersonList renders people search results as a numbered list.
func FormatPersonList(heading string, people []tmdb.Person) string {
	if len(people) == 0 {
		return EscapeMdV2("No people found.")
	}
	var sb strings.Builder
	sb.WriteString(FormatBold(heading))
	sb.WriteString("\n\n")
	for i, p := range people[:min(len(people), maxListItems)] {
		line := fmt.Sprintf("%d. %s", i+1, p.Name)
		if p.KnownForDepartment != "" {
			line += " - " + p.KnownForDepartment
		}
		sb.WriteString(EscapeMdV2(line))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatPerson renders a person card.
func FormatPerson(p *tmdb.Person) string {
	var sb strings.Builder
	sb.WriteString(FormatBold(p.Name))
	sb.WriteString("\n")
	if p.KnownForDepartment != "" {
		sb.WriteString(FormatItalic(p.KnownForDepartment))
		sb.WriteString("\n")
	}
	if p.Birthday != "" {
		born := "Born " + p.Birthday
		if p.PlaceOfBirth != "" {
			born += " in " + p.PlaceOfBirth
		}
		sb.WriteString(EscapeMdV2(born))
		sb.WriteString("\n")
	}
	if p.Deathday != "" {
		sb.WriteString(EscapeMdV2("Died " + p.Deathday))
		sb.WriteString("\n")
	}
	if p.Biography != "" {
		sb.WriteString("\n")
		sb.WriteString(EscapeMdV2(truncate(p.Biography, maxOverviewLen)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatTVList renders series search results as a numbered list.
func FormatTVList(heading string, series []tmdb.TVSeries) string {
	if len(series) == 0 {
		return EscapeMdV2("No series found.")
	}
	var sb strings.Builder
	sb.WriteString(FormatBold(heading))
	sb.WriteString("\n\n")
	for i, s := range series[:min(len(series), maxListItems)] {
		sb.WriteString(EscapeMdV2(fmt.Sprintf("%d. %s - %.1f", i+1, withYear(s.Name, s.Year()), s.VoteAverage)))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatTV renders a series card.
func FormatTV(s *tmdb.TVDetails) string {
	var sb strings.Builder
	sb.WriteString(FormatBold(withYear(s.Name, s.Year())))
	sb.WriteString("\n")
	if s.Tagline != "" {
		sb.WriteString(FormatItalic(s.Tagline))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(EscapeMdV2(fmt.Sprintf("%d seasons, %d episodes", s.NumberOfSeasons, s.NumberOfEpisodes)))
	sb.WriteString("\n")
	if s.Status != "" {
		sb.WriteString(EscapeMdV2("Status: " + s.Status))
		sb.WriteString("\n")
	}
	sb.WriteString(EscapeMdV2(RatingBar(s.VoteAverage, 10)))
	sb.WriteString("\n")
	if s.Overview != "" {
		sb.WriteString("\n")
		sb.WriteString(EscapeMdV2(truncate(s.Overview, maxOverviewLen)))
	}
	return strings.TrimRight(sb.String(), "\n")
}
