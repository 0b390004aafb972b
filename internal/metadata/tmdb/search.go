package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchOptions narrows a search. Zero values are omitted.
type SearchOptions struct {
	Year         int
	Language     string
	IncludeAdult bool
	Page         int
}

func (c *Client) searchParams(query string, opts SearchOptions, yearParam string) url.Values {
	params := c.pageParams(opts.Language, opts.Page)
	params.Set("query", query)
	if opts.Year > 0 && yearParam != "" {
		params.Set(yearParam, strconv.Itoa(opts.Year))
	}
	if opts.IncludeAdult {
		params.Set("include_adult", "true")
	}
	return params
}

func search[T any](ctx context.Context, c *Client, kind, query string, opts SearchOptions, yearParam string) (*ResultList[T], error) {
	if err := requireText("query", query); err != nil {
		return nil, err
	}

	var resp ResultList[T]
	if err := c.get(ctx, "/search/"+kind, c.searchParams(query, opts, yearParam), &resp); err != nil {
		return nil, fmt.Errorf("search %s: %w", kind, err)
	}
	return &resp, nil
}

// SearchMovies searches for movies by title. Year 0 means no year filter.
func (c *Client) SearchMovies(ctx context.Context, query string, opts SearchOptions) (*ResultList[Movie], error) {
	return search[Movie](ctx, c, "movie", query, opts, "year")
}

// SearchPeople searches for people by name.
func (c *Client) SearchPeople(ctx context.Context, query string, opts SearchOptions) (*ResultList[Person], error) {
	return search[Person](ctx, c, "person", query, opts, "")
}

// SearchTV searches for series by name. Year filters on the first air date.
func (c *Client) SearchTV(ctx context.Context, query string, opts SearchOptions) (*ResultList[TVSeries], error) {
	return search[TVSeries](ctx, c, "tv", query, opts, "first_air_date_year")
}

// SearchCompanies searches for production companies.
func (c *Client) SearchCompanies(ctx context.Context, query string, opts SearchOptions) (*ResultList[Company], error) {
	return search[Company](ctx, c, "company", query, opts, "")
}

// SearchCollections searches for movie collections.
func (c *Client) SearchCollections(ctx context.Context, query string, opts SearchOptions) (*ResultList[Collection], error) {
	return search[Collection](ctx, c, "collection", query, opts, "")
}

// SearchLists searches for user lists.
func (c *Client) SearchLists(ctx context.Context, query string, opts SearchOptions) (*ResultList[MovieList], error) {
	return search[MovieList](ctx, c, "list", query, opts, "")
}

// SearchKeywords searches for keywords.
func (c *Client) SearchKeywords(ctx context.Context, query string, opts SearchOptions) (*ResultList[Keyword], error) {
	return search[Keyword](ctx, c, "keyword", query, opts, "")
}
