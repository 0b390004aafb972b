package tmdb

import (
	"context"
	"fmt"
	"net/url"
)

const authenticateURL = "https://www.themoviedb.org/authenticate/"

// TokenAuthorisation is a request token that the user approves on the
// TMDb website.
type TokenAuthorisation struct {
	Success      bool   `json:"success"`
	ExpiresAt    string `json:"expires_at"`
	RequestToken string `json:"request_token"`
}

// AuthenticationURL returns the page where the user approves the token.
func (t *TokenAuthorisation) AuthenticationURL() string {
	return authenticateURL + url.PathEscape(t.RequestToken)
}

// TokenSession is a user or guest session.
type TokenSession struct {
	Success        bool   `json:"success"`
	SessionID      string `json:"session_id"`
	GuestSessionID string `json:"guest_session_id"`
	ExpiresAt      string `json:"expires_at"`
}

// GetAuthorisationToken requests a new request token.
func (c *Client) GetAuthorisationToken(ctx context.Context) (*TokenAuthorisation, error) {
	var token TokenAuthorisation
	if err := c.get(ctx, "/authentication/token/new", nil, &token); err != nil {
		return nil, fmt.Errorf("get authorisation token: %w", err)
	}
	return &token, nil
}

// GetSessionToken exchanges an approved request token for a session.
func (c *Client) GetSessionToken(ctx context.Context, token *TokenAuthorisation) (*TokenSession, error) {
	if token == nil || !token.Success {
		return nil, invalidArgument("authorisation token was not successful")
	}
	if err := requireText("request token", token.RequestToken); err != nil {
		return nil, err
	}

	var session TokenSession
	params := url.Values{"request_token": {token.RequestToken}}
	if err := c.get(ctx, "/authentication/session/new", params, &session); err != nil {
		return nil, fmt.Errorf("get session token: %w", err)
	}
	return &session, nil
}

// GetGuestSessionToken opens a guest session.
func (c *Client) GetGuestSessionToken(ctx context.Context) (*TokenSession, error) {
	var session TokenSession
	if err := c.get(ctx, "/authentication/guest_session/new", nil, &session); err != nil {
		return nil, fmt.Errorf("get guest session token: %w", err)
	}
	return &session, nil
}
