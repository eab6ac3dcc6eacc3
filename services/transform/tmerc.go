package transform

import (
	"math"

	"tra2kml/services/zones"
)

// tmerc is the ellipsoidal transverse Mercator projection in Krüger's
// n-series form, third order: about a millimetre within a few hundred
// kilometres of the central meridian.
type tmerc struct {
	lon0  float64 // radians
	k0    float64
	x0    float64
	y0    float64 // false northing minus the projected latitude of origin
	e     float64
	bigA  float64 // rectifying radius
	alpha [3]float64
	beta  [3]float64
	delta [3]float64
}

func newTmerc(p zones.TransverseMercator, ell ellipsoid) tmerc {
	n := ell.f / (2 - ell.f)
	n2, n3 := n*n, n*n*n

	t := tmerc{
		lon0: degToRad(p.LonOrigin),
		k0:   p.ScaleFactor,
		x0:   p.FalseEasting,
		e:    math.Sqrt(ell.e2),
		bigA: ell.a / (1 + n) * (1 + n2/4 + n2*n2/64),
		alpha: [3]float64{
			n/2 - 2*n2/3 + 5*n3/16,
			13*n2/48 - 3*n3/5,
			61 * n3 / 240,
		},
		beta: [3]float64{
			n/2 - 2*n2/3 + 37*n3/96,
			n2/48 + n3/15,
			17 * n3 / 480,
		},
		delta: [3]float64{
			2*n - 2*n2/3 - 2*n3,
			7*n2/3 - 8*n3/5,
			56 * n3 / 15,
		},
	}
	_, northAtOrigin := t.project(t.lon0, degToRad(p.LatOrigin))
	t.y0 = p.FalseNorthing - northAtOrigin
	return t
}

// project maps (lon, lat) in radians to unshifted (x, y) metres.
func (t tmerc) project(lon, lat float64) (float64, float64) {
	dl := lon - t.lon0
	s := math.Sin(lat)
	tau := math.Sinh(math.Atanh(s) - t.e*math.Atanh(t.e*s))
	xiP := math.Atan2(tau, math.Cos(dl))
	etaP := math.Atanh(math.Sin(dl) / math.Sqrt(1+tau*tau))

	xi, eta := xiP, etaP
	for j := 0; j < 3; j++ {
		k := float64(2 * (j + 1))
		xi += t.alpha[j] * math.Sin(k*xiP) * math.Cosh(k*etaP)
		eta += t.alpha[j] * math.Cos(k*xiP) * math.Sinh(k*etaP)
	}
	return t.k0 * t.bigA * eta, t.k0 * t.bigA * xi
}

// forward maps geographic radians to easting/northing.
func (t tmerc) forward(lon, lat float64) (east, north float64) {
	x, y := t.project(lon, lat)
	return x + t.x0, y + t.y0
}

// inverse maps easting/northing to geographic radians.
func (t tmerc) inverse(east, north float64) (lon, lat float64) {
	xi := (north - t.y0) / (t.k0 * t.bigA)
	eta := (east - t.x0) / (t.k0 * t.bigA)

	xiP, etaP := xi, eta
	for j := 0; j < 3; j++ {
		k := float64(2 * (j + 1))
		xiP -= t.beta[j] * math.Sin(k*xi) * math.Cosh(k*eta)
		etaP -= t.beta[j] * math.Cos(k*xi) * math.Sinh(k*eta)
	}

	chi := math.Asin(math.Sin(xiP) / math.Cosh(etaP))
	lat = chi
	for j := 0; j < 3; j++ {
		lat += t.delta[j] * math.Sin(float64(2*(j+1))*chi)
	}
	lon = t.lon0 + math.Atan2(math.Sinh(etaP), math.Cos(xiP))
	return lon, lat
}
