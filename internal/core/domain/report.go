package domain

import "time"

// Report holds measurements/telemetry posted by a VEN, associated to a
// program and optionally to one of that program's events (spec §3).
//
// VenID is the backfilled owning VEN (DESIGN.md resolves the open question
// of client_name-match vs ven_id-backfill visibility in favour of ven_id,
// since the Identity Resolver is pure and has no client_name to compare
// against). ClientName is retained for display and round-tripping only.
// BusinessID is denormalized from the parent program at create time so the
// repository can push business-ownership visibility into a single Find
// call without a join; it is never client-set.
type Report struct {
	ID                   string    `json:"id" bson:"_id,omitempty"`
	ProgramID            string    `json:"programID" bson:"program_id"`
	EventID              string    `json:"eventID,omitempty" bson:"event_id,omitempty"`
	BusinessID           *string   `json:"-" bson:"business_id,omitempty"`
	VenID                string    `json:"venID" bson:"ven_id"`
	ClientName           string    `json:"clientName" bson:"client_name"`
	ReportName           string    `json:"reportName,omitempty" bson:"report_name,omitempty"`
	Resources            []string  `json:"resources,omitempty" bson:"resources,omitempty"`
	CreatedDateTime      time.Time `json:"createdDateTime" bson:"created_date_time"`
	ModificationDateTime time.Time `json:"modificationDateTime" bson:"modification_date_time"`
}
