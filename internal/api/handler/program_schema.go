package handler

import (
	"time"

	"github.com/openadr/vtn/internal/core/domain"
)

type programRequest struct {
	BusinessID           *string         `json:"businessId,omitempty"`
	ProgramName          string          `json:"programName" validate:"required"`
	ProgramLongName      string          `json:"programLongName,omitempty"`
	RetailerName         string          `json:"retailerName,omitempty"`
	RetailerLongName     string          `json:"retailerLongName,omitempty"`
	ProgramType          string          `json:"programType,omitempty"`
	Country              string          `json:"country,omitempty"`
	PrincipalSubdivision string          `json:"principalSubdivision,omitempty"`
	BindingEvents        bool            `json:"bindingEvents,omitempty"`
	LocalPrice           bool            `json:"localPrice,omitempty"`
	Targets              []domain.Target `json:"targets,omitempty" validate:"omitempty,dive"`
}

func (r programRequest) toDomain() domain.Program {
	return domain.Program{
		BusinessID:           r.BusinessID,
		ProgramName:          r.ProgramName,
		ProgramLongName:      r.ProgramLongName,
		RetailerName:         r.RetailerName,
		RetailerLongName:     r.RetailerLongName,
		ProgramType:          r.ProgramType,
		Country:              r.Country,
		PrincipalSubdivision: r.PrincipalSubdivision,
		BindingEvents:        r.BindingEvents,
		LocalPrice:           r.LocalPrice,
		Targets:              r.Targets,
	}
}

type programResponse struct {
	ID                   string          `json:"id"`
	BusinessID           *string         `json:"businessId,omitempty"`
	ProgramName          string          `json:"programName"`
	ProgramLongName      string          `json:"programLongName,omitempty"`
	RetailerName         string          `json:"retailerName,omitempty"`
	RetailerLongName     string          `json:"retailerLongName,omitempty"`
	ProgramType          string          `json:"programType,omitempty"`
	Country              string          `json:"country,omitempty"`
	PrincipalSubdivision string          `json:"principalSubdivision,omitempty"`
	BindingEvents        bool            `json:"bindingEvents,omitempty"`
	LocalPrice           bool            `json:"localPrice,omitempty"`
	Targets              []domain.Target `json:"targets,omitempty"`
	CreatedDateTime      time.Time       `json:"createdDateTime"`
	ModificationDateTime time.Time       `json:"modificationDateTime"`
}

func toProgramResponse(p domain.Program) programResponse {
	return programResponse{
		ID:                   p.ID,
		BusinessID:           p.BusinessID,
		ProgramName:          p.ProgramName,
		ProgramLongName:      p.ProgramLongName,
		RetailerName:         p.RetailerName,
		RetailerLongName:     p.RetailerLongName,
		ProgramType:          p.ProgramType,
		Country:              p.Country,
		PrincipalSubdivision: p.PrincipalSubdivision,
		BindingEvents:        p.BindingEvents,
		LocalPrice:           p.LocalPrice,
		Targets:              p.Targets,
		CreatedDateTime:      p.CreatedDateTime,
		ModificationDateTime: p.ModificationDateTime,
	}
}

type listProgramsResponse struct {
	Data       []programResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
