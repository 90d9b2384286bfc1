package domain

import "errors"

var ErrSiteNotFound = errors.New("site not found")
var ErrSiteExists = errors.New("site already exists")
var ErrInvalidSiteBounds = errors.New("invalid site bounds")
var ErrOutsideGeofence = errors.New("location outside all job sites")

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lon float64 `json:"lon" bson:"lon"`
}

// Site is an axis-aligned bounding box around a job site. The reference data
// stores longitude bounds in either order (western-hemisphere rows keep them
// descending), so Contains must not assume MinLon < MaxLon.
type Site struct {
	Name   string  `json:"name" bson:"customer_name"`
	MinLat float64 `json:"min_lat" bson:"min_latitude"`
	MaxLat float64 `json:"max_lat" bson:"max_latitude"`
	MinLon float64 `json:"min_lon" bson:"min_longitude"`
	MaxLon float64 `json:"max_lon" bson:"max_longitude"`
}

// Contains reports whether the point lies inside the box, bounds inclusive.
func (s Site) Contains(lat, lon float64) bool {
	if lat < s.MinLat || lat > s.MaxLat {
		return false
	}
	lo, hi := s.MinLon, s.MaxLon
	if lo > hi {
		lo, hi = hi, lo
	}
	return lon >= lo && lon <= hi
}
