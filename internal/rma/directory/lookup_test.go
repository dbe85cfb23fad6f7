package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rma-desk/internal/common/config"
	"rma-desk/internal/common/database"
	stderrors "rma-desk/internal/common/errors"
	"rma-desk/internal/common/logger"
	"rma-desk/internal/common/zendesk"
	"rma-desk/internal/rma"
)

// ==========================
// Stub API
// ==========================

type stubAPI struct {
	users       []zendesk.User
	usersErr    error
	org         *zendesk.Organization
	orgErr      error
	searchCalls int
	orgCalls    int
}

func (s *stubAPI) SearchUsersByEmail(ctx context.Context, email string) ([]zendesk.User, error) {
	s.searchCalls++
	return s.users, s.usersErr
}

func (s *stubAPI) GetOrganization(ctx context.Context, orgID int64) (*zendesk.Organization, error) {
	s.orgCalls++
	return s.org, s.orgErr
}

func newLookup(t *testing.T, api API, opts LookupOptions) *Lookup {
	t.Helper()
	opts.API = api
	if opts.Logger == nil {
		opts.Logger = logger.NewTestLogger(t)
	}
	return NewLookup(opts)
}

// ==========================
// Tests
// ==========================

func TestFindByEmailSingleMatch(t *testing.T) {
	api := &stubAPI{users: []zendesk.User{
		{ID: 9001, Name: "Jane Doe", Email: "jane@example.com", Phone: "+15551234567", OrganizationID: 42},
	}}
	lookup := newLookup(t, api, LookupOptions{})

	contact, err := lookup.FindByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "9001", contact.ExternalID)
	assert.Equal(t, int64(42), contact.OrganizationID)
	assert.Equal(t, "Jane Doe", contact.Name)
	assert.Equal(t, "jane@example.com", contact.Email)
	assert.Equal(t, "+15551234567", contact.Phone)
}

func TestFindByEmailDefaultsAbsentPhone(t *testing.T) {
	api := &stubAPI{users: []zendesk.User{
		{ID: 9001, Name: "Jane Doe", Email: "jane@example.com"},
	}}
	lookup := newLookup(t, api, LookupOptions{})

	contact, err := lookup.FindByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, rma.PhoneUnknown, contact.Phone)
}

func TestFindByEmailNoMatch(t *testing.T) {
	lookup := newLookup(t, &stubAPI{}, LookupOptions{})

	_, err := lookup.FindByEmail(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.True(t, stderrors.IsCode(err, stderrors.ErrCodeContactNotFound))
}

func TestFindByEmailTransportFailure(t *testing.T) {
	api := &stubAPI{usersErr: errors.New("connection refused")}
	lookup := newLookup(t, api, LookupOptions{})

	_, err := lookup.FindByEmail(context.Background(), "jane@example.com")
	require.Error(t, err)
	assert.True(t, stderrors.IsCode(err, stderrors.ErrCodeDirectoryUnavailable))
}

func TestFindByEmailMultiMatchTakesFirst(t *testing.T) {
	api := &stubAPI{users: []zendesk.User{
		{ID: 1, Name: "First Match", Email: "shared@example.com"},
		{ID: 2, Name: "Second Match", Email: "shared@example.com"},
	}}
	lookup := newLookup(t, api, LookupOptions{MultiMatch: MultiMatchFirst})

	contact, err := lookup.FindByEmail(context.Background(), "shared@example.com")
	require.NoError(t, err)
	assert.Equal(t, "First Match", contact.Name)
}

func TestFindByEmailMultiMatchFailPolicy(t *testing.T) {
	api := &stubAPI{users: []zendesk.User{
		{ID: 1, Email: "shared@example.com"},
		{ID: 2, Email: "shared@example.com"},
	}}
	lookup := newLookup(t, api, LookupOptions{MultiMatch: MultiMatchFail})

	_, err := lookup.FindByEmail(context.Background(), "shared@example.com")
	require.Error(t, err)
	assert.True(t, stderrors.IsCode(err, stderrors.ErrCodeDirectoryAmbiguous))
}

func TestOrganizationAddress(t *testing.T) {
	api := &stubAPI{org: &zendesk.Organization{
		ID: 42, Name: "Acme Corp", Details: "123 Main St, Springfield, IL 62704, USA",
	}}
	lookup := newLookup(t, api, LookupOptions{})

	name, details, err := lookup.OrganizationAddress(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", name)
	assert.Equal(t, "123 Main St, Springfield, IL 62704, USA", details)
}

func TestOrganizationAddressTransportFailure(t *testing.T) {
	api := &stubAPI{orgErr: errors.New("read timeout")}
	lookup := newLookup(t, api, LookupOptions{})

	_, _, err := lookup.OrganizationAddress(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, stderrors.IsCode(err, stderrors.ErrCodeDirectoryUnavailable))
}

func TestLookupsAreServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer rdb.Close()

	api := &stubAPI{
		users: []zendesk.User{{ID: 9001, Name: "Jane Doe", Email: "jane@example.com"}},
		org:   &zendesk.Organization{ID: 42, Name: "Acme Corp", Details: "123 Main St, Springfield, IL 62704"},
	}
	lookup := newLookup(t, api, LookupOptions{
		Cache:    rdb,
		CacheTTL: time.Minute,
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := lookup.FindByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		_, _, err = lookup.OrganizationAddress(ctx, 42)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, api.searchCalls)
	assert.Equal(t, 1, api.orgCalls)
}
