package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/openadr/vtn/internal/core/auth"
	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/policy"
	"github.com/openadr/vtn/internal/core/ports"
)

// VenService orchestrates VEN operations. Deletion delegates the
// resource cascade to the repository (spec §3: resources cannot outlive
// their VEN) rather than the service fetching and deleting each resource
// itself.
type VenService struct {
	repo   ports.VenRepository
	logger zerolog.Logger
}

func NewVenService(repo ports.VenRepository, logger zerolog.Logger) *VenService {
	return &VenService{repo: repo, logger: logger}
}

func (s *VenService) List(ctx context.Context, caller auth.Caller, filter ports.VenFilter, page ports.Pagination) (ports.ListPage[domain.Ven], error) {
	decision := policy.CanListVens(caller)
	if !decision.Allowed {
		return ports.ListPage[domain.Ven]{}, domain.ErrForbidden
	}
	items, err := s.repo.List(ctx, decision.Predicate, filter, page)
	if err != nil {
		return ports.ListPage[domain.Ven]{}, mapRepoErr(s.logger, err)
	}
	return items, nil
}

func (s *VenService) Get(ctx context.Context, caller auth.Caller, id string) (domain.Ven, error) {
	decision := policy.CanGetVen(caller)
	if !decision.Allowed {
		return domain.Ven{}, domain.ErrForbidden
	}
	v, err := s.repo.Get(ctx, decision.Predicate, id)
	if err != nil {
		return domain.Ven{}, mapRepoErr(s.logger, err)
	}
	return v, nil
}

func (s *VenService) Create(ctx context.Context, caller auth.Caller, v domain.Ven) (domain.Ven, error) {
	if !policy.CanWriteVen(caller).Allowed {
		return domain.Ven{}, domain.ErrForbidden
	}

	now := time.Now().UTC()
	v.ID = newID("ven")
	v.CreatedDateTime = now
	v.ModificationDateTime = now

	created, err := s.repo.Create(ctx, v)
	if err != nil {
		return domain.Ven{}, mapRepoErr(s.logger, err)
	}
	s.logger.Info().Str("ven_id", created.ID).Msg("ven created")
	return created, nil
}

func (s *VenService) Update(ctx context.Context, caller auth.Caller, id string, v domain.Ven) (domain.Ven, error) {
	if !policy.CanWriteVen(caller).Allowed {
		return domain.Ven{}, domain.ErrForbidden
	}
	existing, err := s.repo.Get(ctx, policy.AllowAll(), id)
	if err != nil {
		return domain.Ven{}, mapRepoErr(s.logger, err)
	}

	v.ID = existing.ID
	v.CreatedDateTime = existing.CreatedDateTime
	v.ModificationDateTime = time.Now().UTC()

	updated, err := s.repo.Update(ctx, policy.AllowAll(), id, v)
	if err != nil {
		return domain.Ven{}, mapRepoErr(s.logger, err)
	}
	return updated, nil
}

func (s *VenService) Delete(ctx context.Context, caller auth.Caller, id string) error {
	if !policy.CanWriteVen(caller).Allowed {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, policy.AllowAll(), id); err != nil {
		return mapRepoErr(s.logger, err)
	}
	return nil
}

// ResourceService orchestrates resource operations. Every method first
// resolves the owning VEN and checks it against the caller's VEN
// visibility, so a resource under a VEN the caller cannot see is
// indistinguishable from an absent one (spec §7); policy.CanAccessResource
// then decides read/write authority over a visible VEN.
type ResourceService struct {
	vens      ports.VenRepository
	resources ports.ResourceRepository
	logger    zerolog.Logger
}

func NewResourceService(vens ports.VenRepository, resources ports.ResourceRepository, logger zerolog.Logger) *ResourceService {
	return &ResourceService{vens: vens, resources: resources, logger: logger}
}

func (s *ResourceService) ownedVen(ctx context.Context, venID string) (domain.Ven, error) {
	return s.vens.Get(ctx, policy.AllowAll(), venID)
}

func (s *ResourceService) authorize(ctx context.Context, caller auth.Caller, venID string, write bool) error {
	ven, err := s.ownedVen(ctx, venID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return mapRepoErr(s.logger, err)
	}
	own := policy.Object{ID: ven.ID}
	if read := policy.CanGetVen(caller); read.Allowed && !read.Predicate.Matches(own) {
		return domain.ErrNotFound
	}
	if !policy.CanAccessResource(caller, own, write).Allowed {
		return domain.ErrForbidden
	}
	return nil
}

func (s *ResourceService) List(ctx context.Context, caller auth.Caller, venID string, filter ports.ResourceFilter, page ports.Pagination) (ports.ListPage[domain.Resource], error) {
	if err := s.authorize(ctx, caller, venID, false); err != nil {
		return ports.ListPage[domain.Resource]{}, err
	}
	filter.VenID = venID
	items, err := s.resources.List(ctx, filter, page)
	if err != nil {
		return ports.ListPage[domain.Resource]{}, mapRepoErr(s.logger, err)
	}
	return items, nil
}

func (s *ResourceService) Get(ctx context.Context, caller auth.Caller, venID, id string) (domain.Resource, error) {
	if err := s.authorize(ctx, caller, venID, false); err != nil {
		return domain.Resource{}, err
	}
	r, err := s.resources.Get(ctx, venID, id)
	if err != nil {
		return domain.Resource{}, mapRepoErr(s.logger, err)
	}
	return r, nil
}

func (s *ResourceService) Create(ctx context.Context, caller auth.Caller, venID string, r domain.Resource) (domain.Resource, error) {
	if err := s.authorize(ctx, caller, venID, true); err != nil {
		return domain.Resource{}, err
	}

	now := time.Now().UTC()
	r.ID = newID("resource")
	r.VenID = venID
	r.CreatedDateTime = now
	r.ModificationDateTime = now

	created, err := s.resources.Create(ctx, r)
	if err != nil {
		return domain.Resource{}, mapRepoErr(s.logger, err)
	}
	return created, nil
}

func (s *ResourceService) Update(ctx context.Context, caller auth.Caller, venID, id string, r domain.Resource) (domain.Resource, error) {
	if err := s.authorize(ctx, caller, venID, true); err != nil {
		return domain.Resource{}, err
	}
	existing, err := s.resources.Get(ctx, venID, id)
	if err != nil {
		return domain.Resource{}, mapRepoErr(s.logger, err)
	}

	r.ID = existing.ID
	r.VenID = venID
	r.CreatedDateTime = existing.CreatedDateTime
	r.ModificationDateTime = time.Now().UTC()

	updated, err := s.resources.Update(ctx, venID, id, r)
	if err != nil {
		return domain.Resource{}, mapRepoErr(s.logger, err)
	}
	return updated, nil
}

func (s *ResourceService) Delete(ctx context.Context, caller auth.Caller, venID, id string) error {
	if err := s.authorize(ctx, caller, venID, true); err != nil {
		return err
	}
	if err := s.resources.Delete(ctx, venID, id); err != nil {
		return mapRepoErr(s.logger, err)
	}
	return nil
}
