package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListDetails is a user list with its items.
type ListDetails struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	CreatedBy     string  `json:"created_by"`
	FavoriteCount int     `json:"favorite_count"`
	ItemCount     int     `json:"item_count"`
	Language      string  `json:"iso_639_1"`
	PosterPath    string  `json:"poster_path"`
	Items         []Movie `json:"items"`
}

type listCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language,omitempty"`
}

type listCreated struct {
	Status
	ListID int `json:"list_id"`
}

type listItem struct {
	MediaID int `json:"media_id"`
}

type listItemStatus struct {
	ID          any  `json:"id"`
	ItemPresent bool `json:"item_present"`
}

// GetList retrieves a list and its items.
func (c *Client) GetList(ctx context.Context, listID string) (*ListDetails, error) {
	if err := requireText("list id", listID); err != nil {
		return nil, err
	}

	var list ListDetails
	if err := c.get(ctx, "/list/"+url.PathEscape(listID), nil, &list); err != nil {
		return nil, fmt.Errorf("get list %s: %w", listID, err)
	}
	return &list, nil
}

// CreateList creates a list owned by the session's account and returns its id.
func (c *Client) CreateList(ctx context.Context, sessionID, name, description string) (string, error) {
	if err := requireText("session id", sessionID); err != nil {
		return "", err
	}
	if err := requireText("list name", name); err != nil {
		return "", err
	}

	var resp listCreated
	payload := listCreate{Name: name, Description: description, Language: c.language}
	if err := c.post(ctx, "/list", sessionParams(sessionID), payload, &resp); err != nil {
		return "", fmt.Errorf("create list %q: %w", name, err)
	}
	return strconv.Itoa(resp.ListID), nil
}

// AddMovieToList adds a movie to a list.
func (c *Client) AddMovieToList(ctx context.Context, sessionID, listID string, movieID int) (*Status, error) {
	return c.modifyList(ctx, sessionID, listID, movieID, "add_item")
}

// RemoveMovieFromList removes a movie from a list.
func (c *Client) RemoveMovieFromList(ctx context.Context, sessionID, listID string, movieID int) (*Status, error) {
	return c.modifyList(ctx, sessionID, listID, movieID, "remove_item")
}

func (c *Client) modifyList(ctx context.Context, sessionID, listID string, movieID int, op string) (*Status, error) {
	if err := requireText("session id", sessionID); err != nil {
		return nil, err
	}
	if err := requireText("list id", listID); err != nil {
		return nil, err
	}
	if err := requireID("movie", movieID); err != nil {
		return nil, err
	}

	var status Status
	path := "/list/" + url.PathEscape(listID) + "/" + op
	if err := c.post(ctx, path, sessionParams(sessionID), listItem{MediaID: movieID}, &status); err != nil {
		return nil, fmt.Errorf("%s %d on list %s: %w", op, movieID, listID, err)
	}
	return &status, nil
}

// ListContainsMovie reports whether a movie is on a list.
func (c *Client) ListContainsMovie(ctx context.Context, listID string, movieID int) (bool, error) {
	if err := requireText("list id", listID); err != nil {
		return false, err
	}
	if err := requireID("movie", movieID); err != nil {
		return false, err
	}

	var resp listItemStatus
	path := "/list/" + url.PathEscape(listID) + "/item_status"
	params := url.Values{"movie_id": {strconv.Itoa(movieID)}}
	if err := c.get(ctx, path, params, &resp); err != nil {
		return false, fmt.Errorf("check list %s for %d: %w", listID, movieID, err)
	}
	return resp.ItemPresent, nil
}

// DeleteList deletes a list owned by the session's account.
func (c *Client) DeleteList(ctx context.Context, sessionID, listID string) (*Status, error) {
	if err := requireText("session id", sessionID); err != nil {
		return nil, err
	}
	if err := requireText("list id", listID); err != nil {
		return nil, err
	}

	var status Status
	if err := c.delete(ctx, "/list/"+url.PathEscape(listID), sessionParams(sessionID), &status); err != nil {
		return nil, fmt.Errorf("delete list %s: %w", listID, err)
	}
	return &status, nil
}
