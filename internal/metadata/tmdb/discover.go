package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DiscoverQuery filters the discover endpoint. Zero values are omitted.
type DiscoverQuery struct {
	Page                 int
	Language             string
	SortBy               string
	IncludeAdult         bool
	Year                 int
	PrimaryReleaseYear   int
	VoteCountGte         int
	VoteAverageGte       float64
	WithGenres           []int
	WithCompanies        []int
	WithKeywords         []int
	ReleaseDateGte       string
	ReleaseDateLte       string
	Certification        string
	CertificationCountry string
}

// Values renders the query as URL parameters.
func (q DiscoverQuery) Values() url.Values {
	v := url.Values{}
	setInt := func(key string, n int) {
		if n > 0 {
			v.Set(key, strconv.Itoa(n))
		}
	}
	setString := func(key, s string) {
		if s != "" {
			v.Set(key, s)
		}
	}

	setInt("page", q.Page)
	setString("language", q.Language)
	setString("sort_by", q.SortBy)
	if q.IncludeAdult {
		v.Set("include_adult", "true")
	}
	setInt("year", q.Year)
	setInt("primary_release_year", q.PrimaryReleaseYear)
	setInt("vote_count.gte", q.VoteCountGte)
	if q.VoteAverageGte > 0 {
		v.Set("vote_average.gte", strconv.FormatFloat(q.VoteAverageGte, 'f', -1, 64))
	}
	setString("with_genres", joinIDs(q.WithGenres))
	setString("with_companies", joinIDs(q.WithCompanies))
	setString("with_keywords", joinIDs(q.WithKeywords))
	setString("release_date.gte", q.ReleaseDateGte)
	setString("release_date.lte", q.ReleaseDateLte)
	setString("certification", q.Certification)
	setString("certification_country", q.CertificationCountry)
	return v
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// Discover finds movies matching q.
func (c *Client) Discover(ctx context.Context, q DiscoverQuery) (*ResultList[Movie], error) {
	params := q.Values()
	if params.Get("language") == "" && c.language != "" {
		params.Set("language", c.language)
	}

	var resp ResultList[Movie]
	if err := c.get(ctx, "/discover/movie", params, &resp); err != nil {
		return nil, fmt.Errorf("discover movies: %w", err)
	}
	return &resp, nil
}
