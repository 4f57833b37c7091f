package handler

import (
	"time"

	"github.com/openadr/vtn/internal/core/domain"
)

type userRequest struct {
	Reference         string   `json:"reference" validate:"required"`
	IsAnyBusinessUser bool     `json:"isAnyBusinessUser,omitempty"`
	IsUserManager     bool     `json:"isUserManager,omitempty"`
	IsVenManager      bool     `json:"isVenManager,omitempty"`
	BusinessIDs       []string `json:"businessIDs,omitempty"`
	VenIDs            []string `json:"venIDs,omitempty"`
}

func (r userRequest) toDomain() domain.User {
	return domain.User{
		Reference:         r.Reference,
		IsAnyBusinessUser: r.IsAnyBusinessUser,
		IsUserManager:     r.IsUserManager,
		IsVenManager:      r.IsVenManager,
		BusinessIDs:       r.BusinessIDs,
		VenIDs:            r.VenIDs,
	}
}

type userResponse struct {
	ID                   string    `json:"id"`
	Reference            string    `json:"reference"`
	IsAnyBusinessUser    bool      `json:"isAnyBusinessUser,omitempty"`
	IsUserManager        bool      `json:"isUserManager,omitempty"`
	IsVenManager         bool      `json:"isVenManager,omitempty"`
	BusinessIDs          []string  `json:"businessIDs,omitempty"`
	VenIDs               []string  `json:"venIDs,omitempty"`
	CreatedDateTime      time.Time `json:"createdDateTime"`
	ModificationDateTime time.Time `json:"modificationDateTime"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:                   u.ID,
		Reference:            u.Reference,
		IsAnyBusinessUser:    u.IsAnyBusinessUser,
		IsUserManager:        u.IsUserManager,
		IsVenManager:         u.IsVenManager,
		BusinessIDs:          u.BusinessIDs,
		VenIDs:               u.VenIDs,
		CreatedDateTime:      u.CreatedDateTime,
		ModificationDateTime: u.ModificationDateTime,
	}
}

type listUsersResponse struct {
	Data       []userResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
