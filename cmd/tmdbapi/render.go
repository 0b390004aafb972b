package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vadimtrunov/tmdbapi/internal/metadata/tmdb"
)

const (
	maxCast     = 8
	maxCredits  = 10
	ratingWidth = 10
)

// row is one line of a search result table.
type row struct {
	id     string
	title  string
	detail string
}

// renderRows prints a numbered result table under a header.
func renderRows(heading string, rows []row, total int) string {
	var sb strings.Builder
	sb.WriteString(styleHeader.Render(heading))
	sb.WriteString("\n")
	if len(rows) == 0 {
		sb.WriteString(styleDim.Render("No results."))
		sb.WriteString("\n")
		return sb.String()
	}
	for i, r := range rows {
		fmt.Fprintf(&sb, "%s %s %s",
			styleLabel.Render(fmt.Sprintf("%2d.", i+1)),
			styleTitle.Render(r.title),
			styleDim.Render("["+r.id+"]"),
		)
		if r.detail != "" {
			sb.WriteString("  " + r.detail)
		}
		sb.WriteString("\n")
	}
	if total > len(rows) {
		sb.WriteString(styleDim.Render(fmt.Sprintf("%d of %d results", len(rows), total)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func titleYear(title, year string) string {
	if year == "" {
		return title
	}
	return title + " (" + year + ")"
}

func movieRows(movies []tmdb.Movie) []row {
	rows := make([]row, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, row{
			id:     strconv.Itoa(m.ID),
			title:  titleYear(m.Title, m.Year()),
			detail: fmt.Sprintf("%.1f", m.VoteAverage),
		})
	}
	return rows
}

func personRows(people []tmdb.Person) []row {
	rows := make([]row, 0, len(people))
	for _, p := range people {
		known := make([]string, 0, len(p.KnownFor))
		for _, k := range p.KnownFor {
			known = append(known, k.DisplayTitle())
		}
		rows = append(rows, row{
			id:     strconv.Itoa(p.ID),
			title:  p.Name,
			detail: strings.Join(known, ", "),
		})
	}
	return rows
}

func tvRows(series []tmdb.TVSeries) []row {
	rows := make([]row, 0, len(series))
	for _, s := range series {
		rows = append(rows, row{
			id:     strconv.Itoa(s.ID),
			title:  titleYear(s.Name, s.Year()),
			detail: fmt.Sprintf("%.1f", s.VoteAverage),
		})
	}
	return rows
}

// ratingBar renders a 0-10 vote average as a bar.
func ratingBar(vote float64, width int) string {
	filled := min(max(int(vote/10*float64(width)), 0), width)
	return styleInfo.Render(strings.Repeat("█", filled)) +
		styleDim.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %.1f", vote)
}

func field(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "%s %s\n", styleLabel.Render(fmt.Sprintf("%-10s", label+":")), value)
}

func renderMovie(m *tmdb.MovieDetails) string {
	var sb strings.Builder
	sb.WriteString(styleHeader.Render(titleYear(m.Title, m.Year())))
	sb.WriteString("\n")
	if m.Tagline != "" {
		sb.WriteString(styleDim.Render(m.Tagline))
		sb.WriteString("\n\n")
	}

	genres := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, g.Name)
	}
	field(&sb, "ID", strconv.Itoa(m.ID))
	field(&sb, "Genres", strings.Join(genres, ", "))
	if m.Runtime > 0 {
		field(&sb, "Runtime", fmt.Sprintf("%d min", m.Runtime))
	}
	field(&sb, "Status", m.Status)
	field(&sb, "IMDb", m.IMDbID)
	field(&sb, "Rating", ratingBar(m.VoteAverage, ratingWidth)+fmt.Sprintf(" (%d votes)", m.VoteCount))
	if m.BelongsToCollection != nil {
		field(&sb, "Series", m.BelongsToCollection.Name)
	}
	if m.Credits != nil {
		var directors []string
		for _, c := range m.Credits.Crew {
			if c.Job == "Director" {
				directors = append(directors, c.Name)
			}
		}
		field(&sb, "Director", strings.Join(directors, ", "))

		cast := make([]string, 0, maxCast)
		for _, c := range m.Credits.Cast[:min(len(m.Credits.Cast), maxCast)] {
			cast = append(cast, c.Name)
		}
		field(&sb, "Cast", strings.Join(cast, ", "))
	}
	if m.Overview != "" {
		sb.WriteString("\n")
		sb.WriteString(m.Overview)
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderPerson(p *tmdb.Person, credits *tmdb.PersonCredits) string {
	var sb strings.Builder
	sb.WriteString(styleHeader.Render(p.Name))
	sb.WriteString("\n")
	field(&sb, "ID", strconv.Itoa(p.ID))
	field(&sb, "Known for", p.KnownForDepartment)
	field(&sb, "Born", strings.TrimSpace(p.Birthday+" "+p.PlaceOfBirth))
	field(&sb, "Died", p.Deathday)
	field(&sb, "IMDb", p.IMDbID)

	if credits != nil && len(credits.Cast)+len(credits.Crew) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styleTitle.Render("Credits"))
		sb.WriteString("\n")
		for _, c := range credits.Cast[:min(len(credits.Cast), maxCredits)] {
			role := c.Character
			if role == "" {
				role = "Actor"
			}
			fmt.Fprintf(&sb, "  %s %s\n", titleYear(c.Title, yearPrefix(c.ReleaseDate)), styleDim.Render("as "+role))
		}
		for _, c := range credits.Crew[:min(len(credits.Crew), maxCredits)] {
			fmt.Fprintf(&sb, "  %s %s\n", titleYear(c.Title, yearPrefix(c.ReleaseDate)), styleDim.Render(c.Job))
		}
	}
	if p.Biography != "" {
		sb.WriteString("\n")
		sb.WriteString(p.Biography)
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderTV(s *tmdb.TVDetails) string {
	var sb strings.Builder
	sb.WriteString(styleHeader.Render(titleYear(s.Name, s.Year())))
	sb.WriteString("\n")
	field(&sb, "ID", strconv.Itoa(s.ID))
	field(&sb, "Status", s.Status)
	field(&sb, "Seasons", fmt.Sprintf("%d (%d episodes)", s.NumberOfSeasons, s.NumberOfEpisodes))
	field(&sb, "Rating", ratingBar(s.VoteAverage, ratingWidth))

	creators := make([]string, 0, len(s.CreatedBy))
	for _, c := range s.CreatedBy {
		creators = append(creators, c.Name)
	}
	field(&sb, "Created by", strings.Join(creators, ", "))

	for _, season := range s.Seasons {
		fmt.Fprintf(&sb, "  %s %s\n", season.Name, styleDim.Render(fmt.Sprintf("%d episodes", season.EpisodeCount)))
	}
	if s.Overview != "" {
		sb.WriteString("\n")
		sb.WriteString(s.Overview)
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderList(l *tmdb.ListDetails) string {
	heading := l.Name
	if heading == "" {
		heading = "List " + l.ID
	}
	out := renderRows(heading, movieRows(l.Items), l.ItemCount)
	if l.Description != "" {
		out = styleDim.Render(l.Description) + "\n" + out
	}
	return out
}

func yearPrefix(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

func renderSeason(s *tmdb.Season) string {
	var sb strings.Builder
	sb.WriteString(styleHeader.Render(titleYear(s.Name, yearPrefix(s.AirDate))))
	sb.WriteString("\n")
	for _, e := range s.Episodes {
		fmt.Fprintf(&sb, "%s %s %s\n",
			styleLabel.Render(fmt.Sprintf("E%02d", e.EpisodeNumber)),
			e.Name,
			styleDim.Render(e.AirDate),
		)
	}
	if len(s.Episodes) == 0 && s.Overview != "" {
		sb.WriteString(s.Overview)
		sb.WriteString("\n")
	}
	return sb.String()
}
