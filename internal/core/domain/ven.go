package domain

import "time"

// Ven is a Virtual End Node: a device or controller. It may be bound to a
// User (via UserID) and to zero-or-more programs (tracked separately as
// ProgramVenBinding rows) (spec §3).
type Ven struct {
	ID                   string    `json:"id" bson:"_id,omitempty"`
	VenName              string    `json:"venName" bson:"ven_name"`
	Targets              []Target  `json:"targets,omitempty" bson:"targets,omitempty"`
	Attributes           ValuesMap `json:"attributes,omitempty" bson:"attributes,omitempty"`
	UserID               string    `json:"userID,omitempty" bson:"user_id,omitempty"`
	CreatedDateTime      time.Time `json:"createdDateTime" bson:"created_date_time"`
	ModificationDateTime time.Time `json:"modificationDateTime" bson:"modification_date_time"`
}

// Resource is exclusively owned by a VEN and is deleted with it (cascade
// ownership, spec §3 invariant).
type Resource struct {
	ID                   string    `json:"id" bson:"_id,omitempty"`
	VenID                string    `json:"venID" bson:"ven_id"`
	ResourceName         string    `json:"resourceName" bson:"resource_name"`
	Targets              []Target  `json:"targets,omitempty" bson:"targets,omitempty"`
	Attributes           ValuesMap `json:"attributes,omitempty" bson:"attributes,omitempty"`
	CreatedDateTime      time.Time `json:"createdDateTime" bson:"created_date_time"`
	ModificationDateTime time.Time `json:"modificationDateTime" bson:"modification_date_time"`
}
