package ports

import (
	"context"

	"github.com/openadr/vtn/internal/core/domain"
)

// UserFilter carries the query parameters for listing users.
type UserFilter struct{}

// UserRepository persists users. Visibility is uniform (write_users gates
// every operation, spec §4.4), so unlike the other repositories this one
// takes no Predicate.
type UserRepository interface {
	List(ctx context.Context, filter UserFilter, page Pagination) (ListPage[domain.User], error)
	Get(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	Update(ctx context.Context, id string, u domain.User) (domain.User, error)
	Delete(ctx context.Context, id string) error
}

// CredentialRepository persists per-user client credentials (spec §3).
// Credential is exclusively owned by a User; the password hash/salt pair
// is the only representation of the secret ever stored (spec §6).
type CredentialRepository interface {
	FindByClientID(ctx context.Context, clientID string) (domain.Credential, error)
	Create(ctx context.Context, c domain.Credential) (domain.Credential, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
