// Package zones holds the fixed Gauss-Krüger zone definitions a .TRA file
// can be georeferenced with, and the geodetic system they are converted to.
package zones

import (
	"fmt"
	"sort"
	"strconv"
)

// Ellipsoid is defined by its semi-major axis and inverse flattening.
type Ellipsoid struct {
	Name string
	A    float64 // semi-major axis, metres
	Rf   float64 // inverse flattening
}

// Flattening returns f = 1/rf.
func (e Ellipsoid) Flattening() float64 { return 1 / e.Rf }

// Helmert is a 7-parameter datum shift in the position-vector convention
// used by PROJ's +towgs84: translations in metres, rotations in arc-seconds,
// scale in ppm.
type Helmert struct {
	Tx, Ty, Tz float64
	Rx, Ry, Rz float64
	Scale      float64
}

// TransverseMercator holds the projection parameters of a zone.
type TransverseMercator struct {
	LonOrigin     float64 // degrees
	LatOrigin     float64 // degrees
	ScaleFactor   float64
	FalseEasting  float64 // metres
	FalseNorthing float64 // metres
}

// Definition is one supported projected coordinate system.
type Definition struct {
	ID         string // "2".."5"
	EPSG       int
	Name       string
	Projection TransverseMercator
	Ellipsoid  Ellipsoid
	ToWGS84    Helmert
}

// Geodetic is the target system of every transformation.
type Geodetic struct {
	EPSG      int
	Name      string
	Ellipsoid Ellipsoid
}

var (
	Bessel1841 = Ellipsoid{Name: "bessel", A: 6377397.155, Rf: 299.1528128}
	WGS84      = Geodetic{
		EPSG:      4326,
		Name:      "WGS 84",
		Ellipsoid: Ellipsoid{Name: "WGS84", A: 6378137.0, Rf: 298.257223563},
	}

	// DHDN to WGS 84 shift shared by all four zones.
	dhdnToWGS84 = Helmert{
		Tx: 584.9636, Ty: 107.7175, Tz: 413.8067,
		Rx: 1.1155214628, Ry: 0.2824339890, Rz: -3.1384490633,
		Scale: -7.992235,
	}
)

// UnsupportedZoneError is returned for any zone id outside the registry.
type UnsupportedZoneError struct {
	Zone string
}

func (e *UnsupportedZoneError) Error() string {
	return fmt.Sprintf("unsupported GK zone %q (must be one of %v)", e.Zone, IDs())
}

var registry = map[string]Definition{
	"2": gkZone("2", 5682, 6),
	"3": gkZone("3", 5683, 9),
	"4": gkZone("4", 5684, 12),
	"5": gkZone("5", 5685, 15),
}

// gkZone builds the definition of a 3-degree zone: the central meridian is
// 3 * zone and the false easting carries the zone number in its millions.
func gkZone(id string, epsg int, lon0 float64) Definition {
	n := lon0 / 3
	return Definition{
		ID:   id,
		EPSG: epsg,
		Name: fmt.Sprintf("DHDN / 3-degree Gauss-Kruger zone %s (E-N)", id),
		Projection: TransverseMercator{
			LonOrigin:     lon0,
			LatOrigin:     0,
			ScaleFactor:   1,
			FalseEasting:  n*1e6 + 500000,
			FalseNorthing: 0,
		},
		Ellipsoid: Bessel1841,
		ToWGS84:   dhdnToWGS84,
	}
}

// Resolve returns the definition for a zone id.
func Resolve(id string) (Definition, error) {
	def, ok := registry[id]
	if !ok {
		return Definition{}, &UnsupportedZoneError{Zone: id}
	}
	return def, nil
}

// IDs lists the registered zone ids in ascending order.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Proj4 renders the definition as a PROJ string, for logs and debugging.
func (d Definition) Proj4() string {
	p, h := d.Projection, d.ToWGS84
	return fmt.Sprintf("+proj=tmerc +lat_0=%s +lon_0=%s +k=%s +x_0=%s +y_0=%s +ellps=%s "+
		"+towgs84=%s,%s,%s,%s,%s,%s,%s +units=m +no_defs",
		num(p.LatOrigin), num(p.LonOrigin), num(p.ScaleFactor), num(p.FalseEasting),
		num(p.FalseNorthing), d.Ellipsoid.Name,
		num(h.Tx), num(h.Ty), num(h.Tz), num(h.Rx), num(h.Ry), num(h.Rz), num(h.Scale))
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func (d Definition) String() string {
	return fmt.Sprintf("GK zone %s (EPSG:%d)", d.ID, d.EPSG)
}
