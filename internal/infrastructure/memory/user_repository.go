package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/ports"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[string]domain.User{}}
}

func (r *UserRepository) List(_ context.Context, _ ports.UserFilter, page ports.Pagination) (ports.ListPage[domain.User], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedDateTime.After(all[j].CreatedDateTime) })
	return paginate(all, page), nil
}

func (r *UserRepository) Get(_ context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) Create(_ context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[u.ID] = u
	return u, nil
}

func (r *UserRepository) Update(_ context.Context, id string, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return domain.User{}, domain.ErrNotFound
	}
	r.users[id] = u
	return u, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// CredentialRepository is a ports.CredentialRepository over an in-memory
// map keyed by client_id.
type CredentialRepository struct {
	mu         sync.RWMutex
	byClientID map[string]domain.Credential
}

func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{byClientID: map[string]domain.Credential{}}
}

func (r *CredentialRepository) FindByClientID(_ context.Context, clientID string) (domain.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byClientID[clientID]
	if !ok {
		return domain.Credential{}, domain.ErrNotFound
	}
	return c, nil
}

func (r *CredentialRepository) Create(_ context.Context, c domain.Credential) (domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byClientID[c.ClientID] = c
	return c, nil
}

func (r *CredentialRepository) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.byClientID {
		if c.UserID == userID {
			delete(r.byClientID, id)
		}
	}
	return nil
}
