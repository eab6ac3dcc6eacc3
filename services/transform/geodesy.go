package transform

import (
	"math"

	"tra2kml/services/zones"
)

type ellipsoid struct {
	a  float64
	f  float64
	e2 float64
}

func newEllipsoid(e zones.Ellipsoid) ellipsoid {
	f := e.Flattening()
	return ellipsoid{a: e.A, f: f, e2: 2*f - f*f}
}

// geodeticToECEF converts radians and metres to earth-centred cartesian metres.
func geodeticToECEF(lon, lat, h float64, ell ellipsoid) (x, y, z float64) {
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)
	n := ell.a / math.Sqrt(1-ell.e2*sinLat*sinLat)
	x = (n + h) * cosLat * cosLon
	y = (n + h) * cosLat * sinLon
	z = (n*(1-ell.e2) + h) * sinLat
	return
}

// ecefToGeodetic inverts geodeticToECEF: Bowring's start value refined by a
// few fixed-point steps, well below a millimetre on the earth's surface.
func ecefToGeodetic(x, y, z float64, ell ellipsoid) (lon, lat, h float64) {
	p := math.Hypot(x, y)
	if p == 0 {
		lat = math.Copysign(math.Pi/2, z)
		return 0, lat, math.Abs(z) - ell.a*math.Sqrt(1-ell.e2)
	}

	lon = math.Atan2(y, x)
	b := ell.a * (1 - ell.f)
	ep2 := (ell.a*ell.a - b*b) / (b * b)
	theta := math.Atan2(z*ell.a, p*b)
	sinT, cosT := math.Sincos(theta)
	lat = math.Atan2(z+ep2*b*sinT*sinT*sinT, p-ell.e2*ell.a*cosT*cosT*cosT)

	for i := 0; i < 4; i++ {
		sinLat := math.Sin(lat)
		n := ell.a / math.Sqrt(1-ell.e2*sinLat*sinLat)
		h = p/math.Cos(lat) - n
		next := math.Atan2(z, p*(1-ell.e2*n/(n+h)))
		if math.Abs(next-lat) < 1e-14 {
			lat = next
			break
		}
		lat = next
	}
	return lon, lat, h
}

// helmert is a 7-parameter similarity transform in the position-vector
// convention, with rotations in radians and the scale as a multiplier.
type helmert struct {
	tx, ty, tz float64
	rx, ry, rz float64
	m          float64
}

func newHelmert(h zones.Helmert) helmert {
	const arcsec = math.Pi / (180 * 3600)
	return helmert{
		tx: h.Tx, ty: h.Ty, tz: h.Tz,
		rx: h.Rx * arcsec, ry: h.Ry * arcsec, rz: h.Rz * arcsec,
		m: 1 + h.Scale*1e-6,
	}
}

func (h helmert) apply(x, y, z float64) (float64, float64, float64) {
	return h.tx + h.m*(x-h.rz*y+h.ry*z),
		h.ty + h.m*(h.rz*x+y-h.rx*z),
		h.tz + h.m*(-h.ry*x+h.rx*y+z)
}

// invert solves apply for its input by inverting the 3x3 matrix exactly.
func (h helmert) invert(x, y, z float64) (float64, float64, float64) {
	a11, a12, a13 := h.m, -h.m*h.rz, h.m*h.ry
	a21, a22, a23 := h.m*h.rz, h.m, -h.m*h.rx
	a31, a32, a33 := -h.m*h.ry, h.m*h.rx, h.m

	bx, by, bz := x-h.tx, y-h.ty, z-h.tz
	det := a11*(a22*a33-a23*a32) - a12*(a21*a33-a23*a31) + a13*(a21*a32-a22*a31)

	x1 := ((a22*a33-a23*a32)*bx + (a13*a32-a12*a33)*by + (a12*a23-a13*a22)*bz) / det
	y1 := ((a23*a31-a21*a33)*bx + (a11*a33-a13*a31)*by + (a13*a21-a11*a23)*bz) / det
	z1 := ((a21*a32-a22*a31)*bx + (a12*a31-a11*a32)*by + (a11*a22-a12*a21)*bz) / det
	return x1, y1, z1
}

func degToRad(v float64) float64 { return v * math.Pi / 180 }
func radToDeg(v float64) float64 { return v * 180 / math.Pi }
