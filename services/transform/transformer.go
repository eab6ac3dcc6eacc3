// Package transform converts Gauss-Krüger easting/northing pairs to WGS 84
// longitude/latitude: inverse transverse Mercator on Bessel 1841, then a
// 7-parameter Helmert shift through earth-centred cartesian coordinates.
package transform

import (
	"fmt"
	"math"
	"sync"

	"tra2kml/models"
	"tra2kml/services/zones"
)

// Planar inputs further than this from the false origin are outside the
// range the series expansion is valid for.
const (
	maxEastingOffset  = 3_000_000.0
	maxNorthingOffset = 10_000_000.0
)

// TransformFailureError reports the first point the projection rejected.
type TransformFailureError struct {
	Index    int
	Easting  float64
	Northing float64
	Reason   string
}

func (e *TransformFailureError) Error() string {
	return fmt.Sprintf("transform point %d (E=%v, N=%v): %s", e.Index, e.Easting, e.Northing, e.Reason)
}

// Transformer holds the prepared projection and datum shift of one zone.
// It is immutable after construction and safe for concurrent use.
type Transformer struct {
	zone  zones.Definition
	tm    tmerc
	src   ellipsoid
	dst   ellipsoid
	shift helmert
}

// New prepares a transformer for a zone.
func New(def zones.Definition) *Transformer {
	src := newEllipsoid(def.Ellipsoid)
	return &Transformer{
		zone:  def,
		tm:    newTmerc(def.Projection, src),
		src:   src,
		dst:   newEllipsoid(zones.WGS84.Ellipsoid),
		shift: newHelmert(def.ToWGS84),
	}
}

var cache sync.Map // zone id -> *Transformer

// For returns the cached transformer of a zone, building it on first use.
func For(def zones.Definition) *Transformer {
	if t, ok := cache.Load(def.ID); ok {
		return t.(*Transformer)
	}
	t, _ := cache.LoadOrStore(def.ID, New(def))
	return t.(*Transformer)
}

// TransformPoints converts planar points of a zone to geographic
// coordinates. Output order and length match the input.
func TransformPoints(def zones.Definition, points []models.PlanarPoint) ([]models.GeoCoordinate, error) {
	return For(def).Inverse(points)
}

// Zone returns the definition the transformer was built from.
func (t *Transformer) Zone() zones.Definition { return t.zone }

// Inverse converts planar points to WGS 84. The first rejected point aborts
// the whole call.
func (t *Transformer) Inverse(points []models.PlanarPoint) ([]models.GeoCoordinate, error) {
	out := make([]models.GeoCoordinate, len(points))
	for i, p := range points {
		c, reason := t.inverseOne(p)
		if reason != "" {
			return nil, &TransformFailureError{Index: i, Easting: p.Easting, Northing: p.Northing, Reason: reason}
		}
		out[i] = c
	}
	return out, nil
}

func (t *Transformer) inverseOne(p models.PlanarPoint) (models.GeoCoordinate, string) {
	if !finite(p.Easting) || !finite(p.Northing) {
		return models.GeoCoordinate{}, "non-finite coordinate"
	}
	if math.Abs(p.Easting-t.tm.x0) > maxEastingOffset || math.Abs(p.Northing-t.tm.y0) > maxNorthingOffset {
		return models.GeoCoordinate{}, "coordinate outside projection domain"
	}

	lon, lat := t.tm.inverse(p.Easting, p.Northing)
	x, y, z := geodeticToECEF(lon, lat, 0, t.src)
	x, y, z = t.shift.apply(x, y, z)
	lon, lat, _ = ecefToGeodetic(x, y, z, t.dst)

	lonDeg, latDeg := radToDeg(lon), radToDeg(lat)
	if !finite(lonDeg) || !finite(latDeg) || math.Abs(latDeg) > 90 {
		return models.GeoCoordinate{}, "projection produced no valid position"
	}
	return models.NewGeoCoordinate(lonDeg, latDeg), ""
}

// Forward converts WGS 84 coordinates back to the zone's easting/northing.
func (t *Transformer) Forward(coords []models.GeoCoordinate) ([]models.PlanarPoint, error) {
	out := make([]models.PlanarPoint, len(coords))
	for i, c := range coords {
		if !finite(c.Long) || !finite(c.Lat) || math.Abs(c.Lat) > 90 {
			return nil, &TransformFailureError{Index: i, Easting: c.Long, Northing: c.Lat, Reason: "invalid geographic coordinate"}
		}
		x, y, z := geodeticToECEF(degToRad(c.Long), degToRad(c.Lat), 0, t.dst)
		x, y, z = t.shift.invert(x, y, z)
		lon, lat, _ := ecefToGeodetic(x, y, z, t.src)
		e, n := t.tm.forward(lon, lat)
		if !finite(e) || !finite(n) {
			return nil, &TransformFailureError{Index: i, Easting: c.Long, Northing: c.Lat, Reason: "projection produced no valid position"}
		}
		out[i] = models.PlanarPoint{Easting: e, Northing: n}
	}
	return out, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
