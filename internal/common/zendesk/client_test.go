package zendesk

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "agent@example.com", "secret-token", 5*time.Second)
	return srv, client
}

func TestSearchUsersByEmail(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/search", r.URL.Path)
		assert.Equal(t, "email:jane@example.com", r.URL.Query().Get("query"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "agent@example.com", user)
		assert.Equal(t, "secret-token", pass)

		fmt.Fprint(w, `{"users":[{"id":9001,"name":"Jane Doe","email":"jane@example.com","phone":"+15551234567","organization_id":42}]}`)
	})

	users, err := client.SearchUsersByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(9001), users[0].ID)
	assert.Equal(t, "Jane Doe", users[0].Name)
	assert.Equal(t, "+15551234567", users[0].Phone)
	assert.Equal(t, int64(42), users[0].OrganizationID)
}

func TestSearchUsersByEmailNoMatches(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"users":[]}`)
	})

	users, err := client.SearchUsersByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSearchUsersByEmailServerError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})

	_, err := client.SearchUsersByEmail(context.Background(), "jane@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestSearchUsersByEmailMalformedPayload(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"users":`)
	})

	_, err := client.SearchUsersByEmail(context.Background(), "jane@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestGetOrganization(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organizations/42", r.URL.Path)
		fmt.Fprint(w, `{"organization":{"id":42,"name":"Acme Corp","details":"123 Main St, Springfield, IL 62704, USA"}}`)
	})

	org, err := client.GetOrganization(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", org.Name)
	assert.Equal(t, "123 Main St, Springfield, IL 62704, USA", org.Details)
}

func TestGetOrganizationNotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"RecordNotFound"}`, http.StatusNotFound)
	})

	_, err := client.GetOrganization(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
