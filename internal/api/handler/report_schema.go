package handler

import (
	"time"

	"github.com/openadr/vtn/internal/core/domain"
)

type reportRequest struct {
	// ProgramID is required on create only; update/delete resolve the
	// existing report's program from storage (spec §4.4's pre/post
	// pre-mutation check), so the field is simply ignored there.
	ProgramID  string   `json:"programID,omitempty"`
	EventID    string   `json:"eventID,omitempty"`
	VenID      string   `json:"venID" validate:"required"`
	ClientName string   `json:"clientName" validate:"required"`
	ReportName string   `json:"reportName,omitempty"`
	Resources  []string `json:"resources,omitempty"`
}

func (r reportRequest) toDomain() domain.Report {
	return domain.Report{
		EventID:    r.EventID,
		VenID:      r.VenID,
		ClientName: r.ClientName,
		ReportName: r.ReportName,
		Resources:  r.Resources,
	}
}

type reportResponse struct {
	ID                   string    `json:"id"`
	ProgramID            string    `json:"programID"`
	EventID              string    `json:"eventID,omitempty"`
	VenID                string    `json:"venID"`
	ClientName           string    `json:"clientName"`
	ReportName           string    `json:"reportName,omitempty"`
	Resources            []string  `json:"resources,omitempty"`
	CreatedDateTime      time.Time `json:"createdDateTime"`
	ModificationDateTime time.Time `json:"modificationDateTime"`
}

func toReportResponse(r domain.Report) reportResponse {
	return reportResponse{
		ID:                   r.ID,
		ProgramID:            r.ProgramID,
		EventID:              r.EventID,
		VenID:                r.VenID,
		ClientName:           r.ClientName,
		ReportName:           r.ReportName,
		Resources:            r.Resources,
		CreatedDateTime:      r.CreatedDateTime,
		ModificationDateTime: r.ModificationDateTime,
	}
}

type listReportsResponse struct {
	Data       []reportResponse   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
