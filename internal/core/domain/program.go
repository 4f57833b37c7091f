package domain

import "time"

// Program is a demand-response scheme. BusinessID is optional: a nil
// BusinessID means the program is globally visible (spec §4.4 tie-break).
type Program struct {
	ID                   string    `json:"id" bson:"_id,omitempty"`
	BusinessID           *string   `json:"businessId,omitempty" bson:"business_id,omitempty"`
	ProgramName          string    `json:"programName" bson:"program_name"`
	ProgramLongName      string    `json:"programLongName,omitempty" bson:"program_long_name,omitempty"`
	RetailerName         string    `json:"retailerName,omitempty" bson:"retailer_name,omitempty"`
	RetailerLongName     string    `json:"retailerLongName,omitempty" bson:"retailer_long_name,omitempty"`
	ProgramType          string    `json:"programType,omitempty" bson:"program_type,omitempty"`
	Country              string    `json:"country,omitempty" bson:"country,omitempty"`
	PrincipalSubdivision string    `json:"principalSubdivision,omitempty" bson:"principal_subdivision,omitempty"`
	BindingEvents        bool      `json:"bindingEvents,omitempty" bson:"binding_events,omitempty"`
	LocalPrice           bool      `json:"localPrice,omitempty" bson:"local_price,omitempty"`
	Targets              []Target  `json:"targets,omitempty" bson:"targets,omitempty"`
	CreatedDateTime      time.Time `json:"createdDateTime" bson:"created_date_time"`
	ModificationDateTime time.Time `json:"modificationDateTime" bson:"modification_date_time"`
}

// ProgramVenBinding records a many-to-many enrolment between a VEN and a
// program (spec §3, "VEN↔Program binding").
type ProgramVenBinding struct {
	ProgramID string `bson:"program_id"`
	VenID     string `bson:"ven_id"`
}
