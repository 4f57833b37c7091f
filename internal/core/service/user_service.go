package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/openadr/vtn/internal/core/auth"
	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/policy"
	"github.com/openadr/vtn/internal/core/ports"
)

// UserService orchestrates user operations. write_users gates every
// method uniformly, including reads (spec §4.4), so unlike the other
// services there is no predicate to push down into the repository.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context, caller auth.Caller, filter ports.UserFilter, page ports.Pagination) (ports.ListPage[domain.User], error) {
	if !policy.CanListUsers(caller).Allowed {
		return ports.ListPage[domain.User]{}, domain.ErrForbidden
	}
	items, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return ports.ListPage[domain.User]{}, mapRepoErr(s.logger, err)
	}
	return items, nil
}

func (s *UserService) Get(ctx context.Context, caller auth.Caller, id string) (domain.User, error) {
	if !policy.CanGetUser(caller).Allowed {
		return domain.User{}, domain.ErrForbidden
	}
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.User{}, mapRepoErr(s.logger, err)
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, caller auth.Caller, u domain.User) (domain.User, error) {
	if !policy.CanWriteUser(caller).Allowed {
		return domain.User{}, domain.ErrForbidden
	}

	now := time.Now().UTC()
	u.ID = newID("user")
	u.CreatedDateTime = now
	u.ModificationDateTime = now

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return domain.User{}, mapRepoErr(s.logger, err)
	}
	s.logger.Info().Str("user_id", created.ID).Msg("user created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, caller auth.Caller, id string, u domain.User) (domain.User, error) {
	if !policy.CanWriteUser(caller).Allowed {
		return domain.User{}, domain.ErrForbidden
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.User{}, mapRepoErr(s.logger, err)
	}

	u.ID = existing.ID
	u.CreatedDateTime = existing.CreatedDateTime
	u.ModificationDateTime = time.Now().UTC()

	updated, err := s.repo.Update(ctx, id, u)
	if err != nil {
		return domain.User{}, mapRepoErr(s.logger, err)
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, caller auth.Caller, id string) error {
	if !policy.CanWriteUser(caller).Allowed {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(s.logger, err)
	}
	return nil
}
