// Package directory resolves customers and organization addresses against
// the helpdesk directory API.
package directory

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	stderrors "rma-desk/internal/common/errors"
	"rma-desk/internal/common/logger"
	"rma-desk/internal/common/metrics"
	"rma-desk/internal/common/zendesk"
	"rma-desk/internal/rma"
)

// MultiMatchFirst and MultiMatchFail are the supported tie-breaks when
// several directory users share an email.
const (
	MultiMatchFirst = "first"
	MultiMatchFail  = "fail"
)

// API is the subset of the directory REST client the lookup needs.
type API interface {
	SearchUsersByEmail(ctx context.Context, email string) ([]zendesk.User, error)
	GetOrganization(ctx context.Context, orgID int64) (*zendesk.Organization, error)
}

// Cache stores serialized lookup results. Satisfied by database.RedisClient.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

type LookupOptions struct {
	API        API
	Cache      Cache // optional
	CacheTTL   time.Duration
	MultiMatch string
	Logger     logger.Logger
}

// Lookup wraps the REST client with the pipeline's failure taxonomy, the
// multi-match policy and an optional result cache.
type Lookup struct {
	api        API
	cache      Cache
	cacheTTL   time.Duration
	multiMatch string
	logger     logger.Logger
}

func NewLookup(opts LookupOptions) *Lookup {
	multiMatch := opts.MultiMatch
	if multiMatch == "" {
		multiMatch = MultiMatchFirst
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Lookup{
		api:        opts.API,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		multiMatch: multiMatch,
		logger:     log,
	}
}

// FindByEmail resolves exactly one contact for the given email. Zero matches
// is CONTACT_NOT_FOUND; multiple matches follow the configured tie-break;
// transport or API failures are DIRECTORY_UNAVAILABLE. The returned contact
// carries the directory id, name, email and phone (defaulted to the
// "unknown" sentinel when absent).
func (l *Lookup) FindByEmail(ctx context.Context, email string) (*rma.Contact, error) {
	users, err := l.searchUsers(ctx, email)
	if err != nil {
		metrics.DirectoryLookupsTotal.WithLabelValues("error").Inc()
		return nil, stderrors.NewDirectoryUnavailableError(err)
	}

	if len(users) == 0 {
		metrics.DirectoryLookupsTotal.WithLabelValues("not_found").Inc()
		return nil, stderrors.NewContactNotFoundError(email)
	}

	if len(users) > 1 {
		if l.multiMatch == MultiMatchFail {
			metrics.DirectoryLookupsTotal.WithLabelValues("ambiguous").Inc()
			return nil, stderrors.NewDirectoryAmbiguousError(email, len(users))
		}
		l.logger.Warn("Multiple directory matches, taking the first", map[string]interface{}{
			"email":   email,
			"matches": len(users),
		})
	}

	u := users[0]
	phone := strings.TrimSpace(u.Phone)
	if phone == "" {
		phone = rma.PhoneUnknown
	}

	metrics.DirectoryLookupsTotal.WithLabelValues("found").Inc()
	return &rma.Contact{
		ExternalID:     strconv.FormatInt(u.ID, 10),
		OrganizationID: u.OrganizationID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          phone,
	}, nil
}

// OrganizationAddress fetches the organization's display name and the raw
// free-text details blob holding the postal address.
func (l *Lookup) OrganizationAddress(ctx context.Context, orgID int64) (name, details string, err error) {
	org, err := l.getOrganization(ctx, orgID)
	if err != nil {
		return "", "", stderrors.NewDirectoryUnavailableError(err)
	}
	return org.Name, org.Details, nil
}

func (l *Lookup) searchUsers(ctx context.Context, email string) ([]zendesk.User, error) {
	key := "rma:users:" + email

	if l.cache != nil {
		if raw, err := l.cache.Get(ctx, key); err == nil {
			var users []zendesk.User
			if err := json.Unmarshal([]byte(raw), &users); err == nil {
				return users, nil
			}
		}
	}

	users, err := l.api.SearchUsersByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	l.cachePut(ctx, key, users)
	return users, nil
}

func (l *Lookup) getOrganization(ctx context.Context, orgID int64) (*zendesk.Organization, error) {
	key := "rma:org:" + strconv.FormatInt(orgID, 10)

	if l.cache != nil {
		if raw, err := l.cache.Get(ctx, key); err == nil {
			var org zendesk.Organization
			if err := json.Unmarshal([]byte(raw), &org); err == nil {
				return &org, nil
			}
		}
	}

	org, err := l.api.GetOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	l.cachePut(ctx, key, org)
	return org, nil
}

func (l *Lookup) cachePut(ctx context.Context, key string, v interface{}) {
	if l.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := l.cache.Set(ctx, key, string(raw), l.cacheTTL); err != nil {
		l.logger.Warn("Directory cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
