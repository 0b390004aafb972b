package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"slices"
)

const (
	minRating = 0.5
	maxRating = 10.0
)

// Account is the TMDb account behind a session.
type Account struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	IncludeAdult bool   `json:"include_adult"`
	Language     string `json:"iso_639_1"`
	Country      string `json:"iso_3166_1"`
}

type mediaFavorite struct {
	MediaType string `json:"media_type"`
	MediaID   int    `json:"media_id"`
	Favorite  bool   `json:"favorite"`
}

type mediaWatchlist struct {
	MediaType string `json:"media_type"`
	MediaID   int    `json:"media_id"`
	Watchlist bool   `json:"watchlist"`
}

type ratingValue struct {
	Value float64 `json:"value"`
}

func sessionParams(sessionID string) url.Values {
	return url.Values{"session_id": {sessionID}}
}

// GetAccount returns the account of a session.
func (c *Client) GetAccount(ctx context.Context, sessionID string) (*Account, error) {
	if err := requireText("session id", sessionID); err != nil {
		return nil, err
	}

	var account Account
	if err := c.get(ctx, "/account", sessionParams(sessionID), &account); err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &account, nil
}

// GetFavoriteMovies returns the account's favorite movies.
func (c *Client) GetFavoriteMovies(ctx context.Context, sessionID string, accountID int) ([]Movie, error) {
	return c.accountMovies(ctx, sessionID, accountID, "favorite/movies")
}

// GetWatchList returns the account's movie watchlist.
func (c *Client) GetWatchList(ctx context.Context, sessionID string, accountID int) ([]Movie, error) {
	return c.accountMovies(ctx, sessionID, accountID, "watchlist/movies")
}

// GetRatedMovies returns the movies the account has rated.
func (c *Client) GetRatedMovies(ctx context.Context, sessionID string, accountID int) ([]Movie, error) {
	return c.accountMovies(ctx, sessionID, accountID, "rated/movies")
}

func (c *Client) accountMovies(ctx context.Context, sessionID string, accountID int, kind string) ([]Movie, error) {
	if err := requireText("session id", sessionID); err != nil {
		return nil, err
	}
	if err := requireID("account", accountID); err != nil {
		return nil, err
	}

	var resp ResultList[Movie]
	path := fmt.Sprintf("/account/%d/%s", accountID, kind)
	if err := c.get(ctx, path, sessionParams(sessionID), &resp); err != nil {
		return nil, fmt.Errorf("get %s for account %d: %w", kind, accountID, err)
	}
	return resp.Results, nil
}

// ChangeFavoriteStatus marks or unmarks a movie as favorite.
func (c *Client) ChangeFavoriteStatus(ctx context.Context, sessionID string, accountID, movieID int, favorite bool) (*Status, error) {
	if err := c.checkAccountMovie(sessionID, accountID, movieID); err != nil {
		return nil, err
	}

	var status Status
	path := fmt.Sprintf("/account/%d/favorite", accountID)
	payload := mediaFavorite{MediaType: "movie", MediaID: movieID, Favorite: favorite}
	if err := c.post(ctx, path, sessionParams(sessionID), payload, &status); err != nil {
		return nil, fmt.Errorf("change favorite status of %d: %w", movieID, err)
	}
	return &status, nil
}

// AddToWatchList adds a movie to the account's watchlist.
func (c *Client) AddToWatchList(ctx context.Context, sessionID string, accountID, movieID int) (*Status, error) {
	return c.modifyWatchList(ctx, sessionID, accountID, movieID, true)
}

// RemoveFromWatchList removes a movie from the account's watchlist.
func (c *Client) RemoveFromWatchList(ctx context.Context, sessionID string, accountID, movieID int) (*Status, error) {
	return c.modifyWatchList(ctx, sessionID, accountID, movieID, false)
}

func (c *Client) modifyWatchList(ctx context.Context, sessionID string, accountID, movieID int, add bool) (*Status, error) {
	if err := c.checkAccountMovie(sessionID, accountID, movieID); err != nil {
		return nil, err
	}

	var status Status
	path := fmt.Sprintf("/account/%d/watchlist", accountID)
	payload := mediaWatchlist{MediaType: "movie", MediaID: movieID, Watchlist: add}
	if err := c.post(ctx, path, sessionParams(sessionID), payload, &status); err != nil {
		return nil, fmt.Errorf("modify watchlist with %d: %w", movieID, err)
	}
	return &status, nil
}

func (c *Client) checkAccountMovie(sessionID string, accountID, movieID int) error {
	if err := requireText("session id", sessionID); err != nil {
		return err
	}
	if err := requireID("account", accountID); err != nil {
		return err
	}
	return requireID("movie", movieID)
}

// PostMovieRating rates a movie between 0.5 and 10. It reports whether TMDb
// accepted the rating as new or updated.
func (c *Client) PostMovieRating(ctx context.Context, sessionID string, movieID int, rating float64) (bool, error) {
	if err := requireText("session id", sessionID); err != nil {
		return false, err
	}
	if err := requireID("movie", movieID); err != nil {
		return false, err
	}
	if rating < minRating || rating > maxRating {
		return false, invalidArgument("rating %.1f outside %.1f-%.1f", rating, minRating, maxRating)
	}

	var status Status
	path := fmt.Sprintf("/movie/%d/rating", movieID)
	if err := c.post(ctx, path, sessionParams(sessionID), ratingValue{Value: rating}, &status); err != nil {
		return false, fmt.Errorf("post rating for %d: %w", movieID, err)
	}
	return slices.Contains([]int{StatusSuccess, StatusUpdated}, status.StatusCode), nil
}
