// Package sessionexchange calls the external OAuth session-data service that
// turns a one-time session identifier into a user identity.
package sessionexchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/neweraservicez/startup-os/internal/domain"
)

// HeaderSessionID carries the short-lived external session identifier.
const HeaderSessionID = "X-Session-ID"

// DefaultURL is the session-data endpoint of the hosted login service.
const DefaultURL = "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data"

type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:        url,
		httpClient: http.DefaultClient,
	}
}

var _ domain.SessionExchanger = (*Client)(nil)

type sessionData struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Picture      *string `json:"picture"`
	SessionToken string  `json:"session_token"`
}

// Exchange makes one authenticated GET. Any non-200 answer is
// domain.ErrInvalidExternalSession.
func (c *Client) Exchange(ctx context.Context, externalSessionID string) (*domain.ExternalIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(HeaderSessionID, externalSessionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session-data request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: session-data returned %d", domain.ErrInvalidExternalSession, resp.StatusCode)
	}

	var data sessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode session-data: %v", domain.ErrInvalidExternalSession, err)
	}
	if data.Email == "" {
		return nil, fmt.Errorf("%w: session-data has no email", domain.ErrInvalidExternalSession)
	}

	return &domain.ExternalIdentity{
		Email:        data.Email,
		Name:         data.Name,
		Picture:      data.Picture,
		SessionToken: domain.SessionToken(data.SessionToken),
	}, nil
}
