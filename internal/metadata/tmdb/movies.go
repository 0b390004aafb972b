package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// GetMovie retrieves full details for a movie by TMDb ID. appendToResponse
// names sub-resources (credits, images, videos, ...) to fetch in the same call.
func (c *Client) GetMovie(ctx context.Context, id int, language string, appendToResponse ...string) (*MovieDetails, error) {
	if err := requireID("movie", id); err != nil {
		return nil, err
	}

	params := c.languageParams(language)
	if len(appendToResponse) > 0 {
		params.Set("append_to_response", strings.Join(appendToResponse, ","))
	}

	var details MovieDetails
	path := fmt.Sprintf("/movie/%d", id)
	if err := c.get(ctx, path, params, &details); err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	return &details, nil
}

// GetMovieByIMDb retrieves a movie by its IMDb id (e.g. tt0083658).
func (c *Client) GetMovieByIMDb(ctx context.Context, imdbID, language string) (*MovieDetails, error) {
	if err := requireText("imdb id", imdbID); err != nil {
		return nil, err
	}

	var details MovieDetails
	path := "/movie/" + url.PathEscape(imdbID)
	if err := c.get(ctx, path, c.languageParams(language), &details); err != nil {
		return nil, fmt.Errorf("get movie %s: %w", imdbID, err)
	}
	return &details, nil
}

// GetMovieAlternativeTitles returns the alternative titles of a movie,
// optionally restricted to one country.
func (c *Client) GetMovieAlternativeTitles(ctx context.Context, id int, country string) ([]AlternativeTitle, error) {
	if err := requireID("movie", id); err != nil {
		return nil, err
	}

	params := url.Values{}
	if country != "" {
		params.Set("country", country)
	}

	var resp AlternativeTitles
	path := fmt.Sprintf("/movie/%d/alternative_titles", id)
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, fmt.Errorf("get alternative titles for %d: %w", id, err)
	}
	return resp.Titles, nil
}

// GetMovieCredits returns the cast and crew of a movie.
func (c *Client) GetMovieCredits(ctx context.Context, id int) (*Credits, error) {
	if err := requireID("movie", id); err != nil {
		return nil, err
	}

	var credits Credits
	path := fmt.Sprintf("/movie/%d/credits", id)
	if err := c.get(ctx, path, nil, &credits); err != nil {
		return nil, fmt.Errorf("get credits for %d: %w", id, err)
	}
	return &credits, nil
}

// GetMovieImages returns posters and backdrops of a movie.
func (c *Client) GetMovieImages(ctx context.Context, id int, language string) (*Images, error) {
	if err := requireID("movie", id); err != nil {
		return nil, err
	}

	var images Images
	path := fmt.Sprintf("/movie/%d/images", id)
	if err := c.get(ctx, path, c.languageParams(language), &images); err != nil {
		return nil, fmt.Errorf("get images for %d: %w", id, err)
	}
	return &images, nil
}

// GetMovieKeywords returns the keywords of a movie.
func (c *Client) GetMovieKeywords(ctx context.Context, id int) ([]Keyword, error) {
	if err := requireID("movie", id); err != nil {
		return nil, err
	}

	var resp Keywords
	path := fmt.Sprintf("/movie/%d/keywords", id)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get keywords for %d: %w", id, err)
	}
	return resp.Keywords, nil
}

// GetMovieReleases returns the per-country releases of a movie.
func (c *Client) GetMovieReleases(ctx context.Context, id int) ([]ReleaseInfo, error) {
	if err := requireID("movie", id); err != nil {
		return nil, err
	}

	var resp Releases
	path := fmt.Sprintf("/movie/%d/releases", id)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get releases for %d: %w", id, err)
	}
	return resp.Countries, nil
}

// GetMovieVideos returns trailers and clips of a movie.
func (c *Client) GetMovieVideos(ctx context.Context, id int, language string) ([]Video, error) {
	if err := requireID("movie", id); err != nil {
		return nil, err
	}

	var resp Videos
	path := fmt.Sprintf("/movie/%d/videos", id)
	if err := c.get(ctx, path, c.languageParams(language), &resp); err != nil {
		return nil, fmt.Errorf("get videos for %d: %w", id, err)
	}
	return resp.Results, nil
}

// GetMovieTranslations returns the languages a movie is translated into.
func (c *Client) GetMovieTranslations(ctx context.Context, id int) ([]Translation, error) {
	if err := requireID("movie", id); err != nil {
		return nil, err
	}

	var resp Translations
	path := fmt.Sprintf("/movie/%d/translations", id)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get translations for %d: %w", id, err)
	}
	return resp.Translations, nil
}

// GetSimilar returns movies similar to a given movie ID.
func (c *Client) GetSimilar(ctx context.Context, movieID int, language string, page int) (*ResultList[Movie], error) {
	return movieSubList[Movie](ctx, c, movieID, "similar", language, page)
}

// GetRecommendations returns recommended movies based on a movie ID.
func (c *Client) GetRecommendations(ctx context.Context, movieID int, language string, page int) (*ResultList[Movie], error) {
	return movieSubList[Movie](ctx, c, movieID, "recommendations", language, page)
}

// GetMovieLists returns the user lists a movie belongs to.
func (c *Client) GetMovieLists(ctx context.Context, movieID int, language string, page int) (*ResultList[MovieList], error) {
	return movieSubList[MovieList](ctx, c, movieID, "lists", language, page)
}

// GetMovieReviews returns user reviews of a movie.
func (c *Client) GetMovieReviews(ctx context.Context, movieID int, language string, page int) (*ResultList[Review], error) {
	return movieSubList[Review](ctx, c, movieID, "reviews", language, page)
}

func movieSubList[T any](ctx context.Context, c *Client, movieID int, kind, language string, page int) (*ResultList[T], error) {
	if err := requireID("movie", movieID); err != nil {
		return nil, err
	}

	var resp ResultList[T]
	path := fmt.Sprintf("/movie/%d/%s", movieID, kind)
	if err := c.get(ctx, path, c.pageParams(language, page), &resp); err != nil {
		return nil, fmt.Errorf("get %s for %d: %w", kind, movieID, err)
	}
	return &resp, nil
}

// GetMovieChanges returns the edits made to a movie between two dates
// (YYYY-MM-DD, either may be empty).
func (c *Client) GetMovieChanges(ctx context.Context, id int, startDate, endDate string) ([]Change, error) {
	if err := requireID("movie", id); err != nil {
		return nil, err
	}

	var resp changesResponse
	path := fmt.Sprintf("/movie/%d/changes", id)
	params := url.Values{"start_date": {startDate}, "end_date": {endDate}}
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, fmt.Errorf("get changes for %d: %w", id, err)
	}
	return resp.Changes, nil
}

// GetLatestMovie returns the most recently added movie.
func (c *Client) GetLatestMovie(ctx context.Context) (*MovieDetails, error) {
	var details MovieDetails
	if err := c.get(ctx, "/movie/latest", nil, &details); err != nil {
		return nil, fmt.Errorf("get latest movie: %w", err)
	}
	return &details, nil
}

// GetNowPlaying returns movies currently in theatres.
func (c *Client) GetNowPlaying(ctx context.Context, language string, page int) (*ResultList[Movie], error) {
	return c.movieChart(ctx, "now_playing", language, page)
}

// GetPopular returns the popular movies.
func (c *Client) GetPopular(ctx context.Context, language string, page int) (*ResultList[Movie], error) {
	return c.movieChart(ctx, "popular", language, page)
}

// GetTopRated returns the top rated movies.
func (c *Client) GetTopRated(ctx context.Context, language string, page int) (*ResultList[Movie], error) {
	return c.movieChart(ctx, "top_rated", language, page)
}

// GetUpcoming returns upcoming movies.
func (c *Client) GetUpcoming(ctx context.Context, language string, page int) (*ResultList[Movie], error) {
	return c.movieChart(ctx, "upcoming", language, page)
}

func (c *Client) movieChart(ctx context.Context, chart, language string, page int) (*ResultList[Movie], error) {
	var resp ResultList[Movie]
	if err := c.get(ctx, "/movie/"+chart, c.pageParams(language, page), &resp); err != nil {
		return nil, fmt.Errorf("get %s movies: %w", chart, err)
	}
	return &resp, nil
}
