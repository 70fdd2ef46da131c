package backend

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Decimal is a number the backend serialises either as a JSON string
// ("12.50") or as a JSON number.
type Decimal string

// UnmarshalJSON accepts strings, numbers and null.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Decimal(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*d = Decimal(n.String())
	return nil
}

// Float64 returns the value, or 0 when it is empty or not a number.
func (d Decimal) Float64() float64 {
	f, err := strconv.ParseFloat(string(d), 64)
	if err != nil {
		return 0
	}
	return f
}

// TransportModel is an entry of /api/transport-models/.
type TransportModel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PackageType is an entry of /api/package-types/.
type PackageType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ServiceCategory is an entry of /api/service-categories/.
type ServiceCategory struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Service is an entry of /api/services/.
type Service struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Category *ServiceCategory `json:"category"`
}

// DeliveryStatus is an entry of /api/delivery-statuses/.
type DeliveryStatus struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TechnicalCondition is an entry of /api/deliveries/technical_conditions/.
type TechnicalCondition struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

// CargoType is an entry of /api/cargo-types/.
type CargoType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Location is an entry of /api/locations/ and the nested delivery location.
type Location struct {
	ID           int64   `json:"id"`
	LocationFrom string  `json:"location_from"`
	LocationTo   string  `json:"location_to"`
	DistanceKm   Decimal `json:"distance_km"`
}

// User is the author of a delivery change.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Delivery is a server delivery record with populated relations. Nullable
// strings decode to "" and a null is_processed decodes to false.
type Delivery struct {
	ID                 int64           `json:"id"`
	TransportModel     *TransportModel `json:"transport_model_details"`
	TransportNumber    string          `json:"transport_number"`
	PackageType        *PackageType    `json:"package_type_details"`
	Services           []Service       `json:"services_details"`
	Status             *DeliveryStatus `json:"status_details"`
	CargoType          *CargoType      `json:"cargo_type_details"`
	TechnicalCondition string          `json:"technical_condition"`
	Location           *Location       `json:"location"`
	DepartureTime      string          `json:"departure_time"`
	DeliveryTime       string          `json:"delivery_time"`
	TravelTime         string          `json:"travel_time"`
	Description        string          `json:"description"`
	MediaFile          string          `json:"media_file"`
	Logfile            string          `json:"logfile"`
	CreatedAt          string          `json:"created_at"`
	CreatedBy          *User           `json:"created_by"`
	UpdatedAt          string          `json:"updated_at"`
	UpdatedBy          *User           `json:"updated_by"`
	CollectorName      string          `json:"collector_name"`
	CollectorSurname   string          `json:"collector_surname"`
	CollectorLastname  string          `json:"collector_lastname"`
	IsProcessed        bool            `json:"is_processed"`
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// CreateLocationRequest is the body of POST /api/locations/.
type CreateLocationRequest struct {
	LocationFrom string `json:"location_from"`
	LocationTo   string `json:"location_to"`
	DistanceKm   string `json:"distance_km"`
}
