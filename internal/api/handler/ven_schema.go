package handler

import (
	"time"

	"github.com/openadr/vtn/internal/core/domain"
)

type venRequest struct {
	VenName    string          `json:"venName" validate:"required"`
	Targets    []domain.Target `json:"targets,omitempty" validate:"omitempty,dive"`
	Attributes domain.ValuesMap `json:"attributes,omitempty"`
	UserID     string          `json:"userID,omitempty"`
}

func (r venRequest) toDomain() domain.Ven {
	return domain.Ven{
		VenName:    r.VenName,
		Targets:    r.Targets,
		Attributes: r.Attributes,
		UserID:     r.UserID,
	}
}

type venResponse struct {
	ID                   string           `json:"id"`
	VenName              string           `json:"venName"`
	Targets              []domain.Target  `json:"targets,omitempty"`
	Attributes           domain.ValuesMap `json:"attributes,omitempty"`
	UserID               string           `json:"userID,omitempty"`
	CreatedDateTime      time.Time        `json:"createdDateTime"`
	ModificationDateTime time.Time        `json:"modificationDateTime"`
}

func toVenResponse(v domain.Ven) venResponse {
	return venResponse{
		ID:                   v.ID,
		VenName:              v.VenName,
		Targets:              v.Targets,
		Attributes:           v.Attributes,
		UserID:               v.UserID,
		CreatedDateTime:      v.CreatedDateTime,
		ModificationDateTime: v.ModificationDateTime,
	}
}

type listVensResponse struct {
	Data       []venResponse      `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type resourceRequest struct {
	ResourceName string           `json:"resourceName" validate:"required"`
	Targets      []domain.Target  `json:"targets,omitempty" validate:"omitempty,dive"`
	Attributes   domain.ValuesMap `json:"attributes,omitempty"`
}

func (r resourceRequest) toDomain() domain.Resource {
	return domain.Resource{
		ResourceName: r.ResourceName,
		Targets:      r.Targets,
		Attributes:   r.Attributes,
	}
}

type resourceResponse struct {
	ID                   string           `json:"id"`
	VenID                string           `json:"venID"`
	ResourceName         string           `json:"resourceName"`
	Targets              []domain.Target  `json:"targets,omitempty"`
	Attributes           domain.ValuesMap `json:"attributes,omitempty"`
	CreatedDateTime      time.Time        `json:"createdDateTime"`
	ModificationDateTime time.Time        `json:"modificationDateTime"`
}

func toResourceResponse(r domain.Resource) resourceResponse {
	return resourceResponse{
		ID:                   r.ID,
		VenID:                r.VenID,
		ResourceName:         r.ResourceName,
		Targets:              r.Targets,
		Attributes:           r.Attributes,
		CreatedDateTime:      r.CreatedDateTime,
		ModificationDateTime: r.ModificationDateTime,
	}
}

type listResourcesResponse struct {
	Data       []resourceResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
