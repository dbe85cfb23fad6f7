package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	httpclient "rma-desk/internal/common/http"
)

// Client talks to a Zendesk-style helpdesk directory over its REST API.
type Client struct {
	baseURL    string
	email      string
	token      string
	httpClient *httpclient.Client
}

// User is a directory user as returned by the search endpoint.
type User struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	OrganizationID int64  `json:"organization_id,omitempty"`
}

// Organization carries the display name plus the free-text details blob the
// desk stores the postal address in.
type Organization struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Details string `json:"details,omitempty"`
}

func NewClient(baseURL, email, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		email:      email,
		token:      token,
		httpClient: httpclient.NewClient(timeout),
	}
}

// SearchUsersByEmail runs GET /users/search?query=email:{email} and returns
// the matches in API order.
func (c *Client) SearchUsersByEmail(ctx context.Context, email string) ([]User, error) {
	searchURL := fmt.Sprintf("%s/users/search?query=%s", c.baseURL, url.QueryEscape("email:"+email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to search users (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Users []User `json:"users"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Users, nil
}

// GetOrganization runs GET /organizations/{id}.
func (c *Client) GetOrganization(ctx context.Context, orgID int64) (*Organization, error) {
	orgURL := fmt.Sprintf("%s/organizations/%d", c.baseURL, orgID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, orgURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get organization (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Organization Organization `json:"organization"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result.Organization, nil
}
