package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// defaultUserInfoURL is Google's OpenID Connect userinfo endpoint.
const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Google drives the OAuth 2.0 authorization-code flow against Google.
type Google struct {
	cfg *oauth2.Config

	// userInfoURL is overridable so tests can point at an httptest server.
	userInfoURL string
}

// NewGoogle constructs the OAuth client. redirectURL must match the
// authorized redirect URI registered in the Google Cloud console.
func NewGoogle(clientID, clientSecret, redirectURL string) *Google {
	return &Google{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
				"openid",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL: defaultUserInfoURL,
	}
}

// AuthCodeURL returns the Google consent-screen URL carrying the CSRF state.
func (g *Google) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

// Exchange swaps the callback authorization code for an access token.
func (g *Google) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth.Google.Exchange: %w", err)
	}
	return token, nil
}

// ExchangeAndFetch runs the whole callback leg: code for token, token for
// identity. The access token is discarded afterwards — the application only
// keeps the name and email inside its own session.
func (g *Google) ExchangeAndFetch(ctx context.Context, code string) (name, email string, err error) {
	token, err := g.Exchange(ctx, code)
	if err != nil {
		return "", "", err
	}
	return g.UserInfo(ctx, token)
}

// UserInfo fetches the authenticated user's name and email with the token.
func (g *Google) UserInfo(ctx context.Context, token *oauth2.Token) (name, email string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("auth.Google.UserInfo: %w", err)
	}

	resp, err := g.cfg.Client(ctx, token).Do(req)
	if err != nil {
		return "", "", fmt.Errorf("auth.Google.UserInfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("auth.Google.UserInfo: unexpected status %d", resp.StatusCode)
	}

	var info struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", "", fmt.Errorf("auth.Google.UserInfo: decode: %w", err)
	}
	return info.Name, info.Email, nil
}
