package tmdb

import (
	"context"
	"fmt"
)

// GetCollection retrieves a collection and its parts.
func (c *Client) GetCollection(ctx context.Context, id int, language string) (*CollectionDetails, error) {
	if err := requireID("collection", id); err != nil {
		return nil, err
	}

	var details CollectionDetails
	path := fmt.Sprintf("/collection/%d", id)
	if err := c.get(ctx, path, c.languageParams(language), &details); err != nil {
		return nil, fmt.Errorf("get collection %d: %w", id, err)
	}
	return &details, nil
}

// GetCollectionImages returns posters and backdrops of a collection.
func (c *Client) GetCollectionImages(ctx context.Context, id int, language string) (*Images, error) {
	if err := requireID("collection", id); err != nil {
		return nil, err
	}

	var images Images
	path := fmt.Sprintf("/collection/%d/images", id)
	if err := c.get(ctx, path, c.languageParams(language), &images); err != nil {
		return nil, fmt.Errorf("get images for collection %d: %w", id, err)
	}
	return &images, nil
}

// GetCompany retrieves a production company.
func (c *Client) GetCompany(ctx context.Context, id int) (*Company, error) {
	if err := requireID("company", id); err != nil {
		return nil, err
	}

	var company Company
	path := fmt.Sprintf("/company/%d", id)
	if err := c.get(ctx, path, nil, &company); err != nil {
		return nil, fmt.Errorf("get company %d: %w", id, err)
	}
	return &company, nil
}

// GetCompanyMovies returns the movies of a production company.
func (c *Client) GetCompanyMovies(ctx context.Context, id int, language string, page int) (*ResultList[Movie], error) {
	if err := requireID("company", id); err != nil {
		return nil, err
	}

	var resp ResultList[Movie]
	path := fmt.Sprintf("/company/%d/movies", id)
	if err := c.get(ctx, path, c.pageParams(language, page), &resp); err != nil {
		return nil, fmt.Errorf("get movies for company %d: %w", id, err)
	}
	return &resp, nil
}

// GetKeyword retrieves a keyword.
func (c *Client) GetKeyword(ctx context.Context, id int) (*Keyword, error) {
	if err := requireID("keyword", id); err != nil {
		return nil, err
	}

	var keyword Keyword
	path := fmt.Sprintf("/keyword/%d", id)
	if err := c.get(ctx, path, nil, &keyword); err != nil {
		return nil, fmt.Errorf("get keyword %d: %w", id, err)
	}
	return &keyword, nil
}

// GetKeywordMovies returns the movies tagged with a keyword.
func (c *Client) GetKeywordMovies(ctx context.Context, id int, language string, page int) (*ResultList[Movie], error) {
	if err := requireID("keyword", id); err != nil {
		return nil, err
	}

	var resp ResultList[Movie]
	path := fmt.Sprintf("/keyword/%d/movies", id)
	if err := c.get(ctx, path, c.pageParams(language, page), &resp); err != nil {
		return nil, fmt.Errorf("get movies for keyword %d: %w", id, err)
	}
	return &resp, nil
}

type genresResponse struct {
	Genres []Genre `json:"genres"`
}

// GetGenres returns the movie genres.
func (c *Client) GetGenres(ctx context.Context, language string) ([]Genre, error) {
	var resp genresResponse
	if err := c.get(ctx, "/genre/movie/list", c.languageParams(language), &resp); err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return resp.Genres, nil
}

// GetGenreMovies returns the movies of a genre. includeAllMovies also
// returns movies with few votes.
func (c *Client) GetGenreMovies(ctx context.Context, id int, language string, page int, includeAllMovies bool) (*ResultList[Movie], error) {
	if err := requireID("genre", id); err != nil {
		return nil, err
	}

	params := c.pageParams(language, page)
	if includeAllMovies {
		params.Set("include_all_movies", "true")
	}

	var resp ResultList[Movie]
	path := fmt.Sprintf("/genre/%d/movies", id)
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, fmt.Errorf("get movies for genre %d: %w", id, err)
	}
	return &resp, nil
}

type jobsResponse struct {
	Jobs []JobDepartment `json:"jobs"`
}

// GetJobs returns the crew jobs grouped by department.
func (c *Client) GetJobs(ctx context.Context) ([]JobDepartment, error) {
	var resp jobsResponse
	if err := c.get(ctx, "/job/list", nil, &resp); err != nil {
		return nil, fmt.Errorf("get jobs: %w", err)
	}
	return resp.Jobs, nil
}
