package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Locations travel to the backend as opaque strings: either a free-text
// address or "(lat, lon)". Coordinates are only sniffed when read.
var reCoordinates = regexp.MustCompile(`\(([-\d.]+),\s*([-\d.]+)\)`)

// ParseCoordinates extracts a "(lat, lon)" pair from a location string.
func ParseCoordinates(location string) (Coordinates, bool) {
	m := reCoordinates.FindStringSubmatch(location)
	if m == nil {
		return Coordinates{}, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Coordinates{}, false
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: lat, Longitude: lon}, true
}

// String renders the pair in the wire form accepted by ParseCoordinates.
func (c Coordinates) String() string {
	return fmt.Sprintf("(%s, %s)",
		strconv.FormatFloat(c.Latitude, 'f', -1, 64),
		strconv.FormatFloat(c.Longitude, 'f', -1, 64),
	)
}
