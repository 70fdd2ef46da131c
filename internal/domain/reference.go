package domain

import "strings"

// TransportModel is a courier vehicle model from the reference list.
type TransportModel struct {
	ID   int64
	Name string
}

// PackageType is a package kind from the reference list.
type PackageType struct {
	ID   int64
	Name string
}

// ServiceCategory groups services in the picker.
type ServiceCategory struct {
	ID    int64
	Title string
}

// Service is an extra delivery service. Category is nil for standalone services.
type Service struct {
	ID       int64
	Name     string
	Category *ServiceCategory
}

// DeliveryStatus is a delivery status from the reference list.
type DeliveryStatus struct {
	ID   int64
	Name string
}

// TechnicalCondition is a vehicle condition value from the reference list.
type TechnicalCondition struct {
	ID    int64
	Value string
}

// CargoType is a cargo kind from the reference list.
type CargoType struct {
	ID   int64
	Name string
}

// Location is a stored route with its distance in kilometres.
type Location struct {
	ID         int64
	From       string
	To         string
	DistanceKm float64
}

// Named is implemented by reference entries that can be matched by label.
type Named interface {
	RefID() int64
	RefLabel() string
}

func (t TransportModel) RefID() int64 { return t.ID }
func (t TransportModel) RefLabel() string { return t.Name }
func (p PackageType) RefID() int64 { return p.ID }
func (p PackageType) RefLabel() string { return p.Name }
func (c ServiceCategory) RefID() int64 { return c.ID }
func (c ServiceCategory) RefLabel() string { return c.Title }
func (s Service) RefID() int64 { return s.ID }
func (s Service) RefLabel() string { return s.Name }
func (s DeliveryStatus) RefID() int64 { return s.ID }
func (s DeliveryStatus) RefLabel() string { return s.Name }
func (c TechnicalCondition) RefID() int64 { return c.ID }
func (c TechnicalCondition) RefLabel() string { return c.Value }
func (c CargoType) RefID() int64 { return c.ID }
func (c CargoType) RefLabel() string { return c.Name }

// RefName is a reference label confirmed against a server-provided list.
// The zero value means "not matched".
type RefName struct {
	id    int64
	label string
}

// ID returns the backend identifier behind the label.
func (n RefName) ID() int64 { return n.id }

// Label returns the human-readable label.
func (n RefName) Label() string { return n.label }

// IsZero reports whether the name was not matched.
func (n RefName) IsZero() bool { return n.id == 0 }

// MatchName looks label up in list by exact match. The server list is the
// only source of valid labels.
func MatchName[T Named](list []T, label string) (RefName, bool) {
	if strings.TrimSpace(label) == "" {
		return RefName{}, false
	}
	for _, item := range list {
		if item.RefLabel() == label {
			return RefName{id: item.RefID(), label: label}, true
		}
	}
	return RefName{}, false
}
