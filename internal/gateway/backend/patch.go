package backend

// DeliveryPatch is the JSON body of PATCH /api/deliveries/{id}/. Nil fields
// are left untouched by the backend.
type DeliveryPatch struct {
	TransportModelID   *int64         `json:"transport_model_id,omitempty"`
	TransportNumber    *string        `json:"transport_number,omitempty"`
	PackageTypeID      *int64         `json:"package_type_id,omitempty"`
	ServiceIDs         *[]int64       `json:"services_ids,omitempty"`
	StatusID           *int64         `json:"status_id,omitempty"`
	TechnicalCondition *string        `json:"technical_condition,omitempty"`
	Location           *PatchLocation `json:"location,omitempty"`
	DepartureTime      *string        `json:"departure_time,omitempty"`
	DeliveryTime       *string        `json:"delivery_time,omitempty"`
	TravelTime         *string        `json:"travel_time,omitempty"`
	Description        *string        `json:"description,omitempty"`
	CollectorName      *string        `json:"collector_name,omitempty"`
	CollectorSurname   *string        `json:"collector_surname,omitempty"`
	CollectorLastname  *string        `json:"collector_lastname,omitempty"`
	IsProcessed        *bool          `json:"is_processed,omitempty"`
}

// PatchLocation replaces the route of a delivery.
type PatchLocation struct {
	LocationFrom string `json:"location_from"`
	LocationTo   string `json:"location_to"`
	DistanceKm   string `json:"distance_km"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
