package handlers

import "time"

type serviceCategoryDTO struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type serviceDTO struct {
	ID       int64               `json:"id"`
	Name     string              `json:"name"`
	Category *serviceCategoryDTO `json:"category,omitempty"`
}

type collectorNameDTO struct {
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	LastName  string `json:"last_name"`
}

type fileDTO struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
	Type string `json:"type"`
}

type coordinatesDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type deliveryDTO struct {
	ID                   string           `json:"id"`
	VehicleModel         string           `json:"vehicle_model"`
	VehicleNumber        string           `json:"vehicle_number"`
	DepartureTime        *time.Time       `json:"departure_time"`
	DeliveryTime         *time.Time       `json:"delivery_time"`
	Duration             int              `json:"duration"`
	TravelTime           string           `json:"travel_time"`
	Distance             float64          `json:"distance"`
	Services             []serviceDTO     `json:"services"`
	PackageType          string           `json:"package_type"`
	Status               string           `json:"status"`
	FromLocation         string           `json:"from_location"`
	ToLocation           string           `json:"to_location"`
	FromCoordinates      *coordinatesDTO  `json:"from_coordinates,omitempty"`
	ToCoordinates        *coordinatesDTO  `json:"to_coordinates,omitempty"`
	CollectorName        collectorNameDTO `json:"collector_name"`
	CollectorNameDisplay string           `json:"collector_name_display"`
	CollectorComment     string           `json:"collector_comment"`
	TechnicalState       string           `json:"technical_state"`
	LogFile              *fileDTO         `json:"log_file"`
	MediaFile            *fileDTO         `json:"media_file"`
	IsProcessed          bool             `json:"is_processed"`
}

type operationDTO struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	StartedAt time.Time `json:"started_at"`
}

type snapshotDTO struct {
	Deliveries []deliveryDTO  `json:"deliveries"`
	Loading    bool           `json:"loading"`
	Error      string         `json:"error,omitempty"`
	Operations []operationDTO `json:"operations"`
}

// deliveryRequest is the body of create, update and draft requests.
// travel_time ("HH:MM:SS") wins over duration when both are set.
type deliveryRequest struct {
	VehicleModel     string           `json:"vehicle_model"`
	VehicleNumber    string           `json:"vehicle_number"`
	DepartureTime    *time.Time       `json:"departure_time"`
	DeliveryTime     *time.Time       `json:"delivery_time"`
	Duration         int              `json:"duration"`
	TravelTime       string           `json:"travel_time"`
	Distance         float64          `json:"distance"`
	Services         []serviceDTO     `json:"services"`
	PackageType      string           `json:"package_type"`
	Status           string           `json:"status"`
	FromLocation     string           `json:"from_location"`
	ToLocation       string           `json:"to_location"`
	CollectorName    collectorNameDTO `json:"collector_name"`
	CollectorComment string           `json:"collector_comment"`
	TechnicalState   string           `json:"technical_state"`
}

// processRequest carries the optional edits sent with the processed flag.
type processRequest struct {
	FromLocation     *string           `json:"from_location"`
	ToLocation       *string           `json:"to_location"`
	Distance         *float64          `json:"distance"`
	DepartureTime    *time.Time        `json:"departure_time"`
	DeliveryTime     *time.Time        `json:"delivery_time"`
	TravelTime       *string           `json:"travel_time"`
	CollectorComment *string           `json:"collector_comment"`
	CollectorName    *collectorNameDTO `json:"collector_name"`
	TechnicalState   *string           `json:"technical_state"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authStatusDTO struct {
	Authenticated bool `json:"authenticated"`
}

type refDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type locationDTO struct {
	ID         int64   `json:"id"`
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm float64 `json:"distance_km"`
}

type serviceGroupDTO struct {
	Category *serviceCategoryDTO `json:"category"`
	Services []serviceDTO        `json:"services"`
}
