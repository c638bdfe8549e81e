package oidc

import (
	"golang.org/x/oauth2"
)

// Client builds the authorization-code login URL the frontend redirects to.
type Client struct {
	config *oauth2.Config
}

// NewClient creates an OAuth2 client for the configured provider
func NewClient(issuer, clientID, redirectURI string) *Client {
	return &Client{
		config: &oauth2.Config{
			ClientID:    clientID,
			RedirectURL: redirectURI,
			Scopes:      []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  issuer + "/oauth2/authorize",
				TokenURL: issuer + "/oauth2/token",
			},
		},
	}
}

// AuthCodeURL returns the provider login URL for the given CSRF state
func (c *Client) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state)
}

// LoginConfig is the public login configuration handed to the frontend
type LoginConfig struct {
	AuthURL  string `json:"auth_url"`
	ClientID string `json:"client_id"`
	Issuer   string `json:"issuer"`
}

// LoginConfigFor assembles the login configuration for the frontend
func LoginConfigFor(issuer, clientID string, client *Client, state string) LoginConfig {
	return LoginConfig{
		AuthURL:  client.AuthCodeURL(state),
		ClientID: clientID,
		Issuer:   issuer,
	}
}
