package models

import (
	"fmt"

	"github.com/skypies/geo"
)

// PlanarPoint is an (easting, northing) pair in metres of a Gauss-Krüger zone.
type PlanarPoint struct {
	Easting  float64 `json:"easting"`
	Northing float64 `json:"northing"`
}

// GeoCoordinate is a WGS84 position. The embedded Latlong gives access to
// the geo helpers (distances, bounding boxes) directly on coordinates.
type GeoCoordinate struct {
	geo.Latlong
}

// NewGeoCoordinate builds a coordinate from longitude and latitude in degrees.
// Note the argument order: x before y, like every transform output.
func NewGeoCoordinate(lon, lat float64) GeoCoordinate {
	return GeoCoordinate{Latlong: geo.Latlong{Lat: lat, Long: lon}}
}

// KMLTriple formats the coordinate as "lon,lat,0" with six decimals.
func (c GeoCoordinate) KMLTriple() string {
	return fmt.Sprintf("%.6f,%.6f,0", c.Long, c.Lat)
}

// Tracks holds the two planar polylines assembled from one decoded file.
type Tracks struct {
	Full     []PlanarPoint
	Selected []PlanarPoint
}

// GeoTracks is Tracks after transformation to WGS84.
type GeoTracks struct {
	Full     []GeoCoordinate
	Selected []GeoCoordinate
}
