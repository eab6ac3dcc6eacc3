package track

import (
	pgeo "github.com/paulmach/go.geo"
	"github.com/skypies/geo"

	"tra2kml/models"
)

// Germany is the box transformed positions are expected in. Points outside
// it usually mean the wrong zone was chosen.
var Germany = geo.LatlongBox{
	SW: geo.Latlong{Lat: 47, Long: 5},
	NE: geo.Latlong{Lat: 56, Long: 16},
}

// BoundsMargin is the fraction added on every side of a track's extent.
const BoundsMargin = 0.10

// Summary describes a converted file.
type Summary struct {
	Records  int
	Selected int

	Bounds    geo.LatlongBox // full track plus margin
	HasBounds bool

	FullLengthKM     float64 // along the ellipsoid
	SelectedLengthKM float64
	FullPlanarM      float64 // in the zone's plane
	SelectedPlanarM  float64

	OutsideGermany int
}

// Summarize measures both polylines before and after transformation.
func Summarize(planar models.Tracks, geoTracks models.GeoTracks) Summary {
	s := Summary{
		Records:          len(planar.Full),
		Selected:         len(planar.Selected),
		FullLengthKM:     GeoLengthKM(geoTracks.Full),
		SelectedLengthKM: GeoLengthKM(geoTracks.Selected),
		FullPlanarM:      PlanarLength(planar.Full),
		SelectedPlanarM:  PlanarLength(planar.Selected),
		OutsideGermany:   CountOutside(geoTracks.Full, Germany),
	}
	s.Bounds, s.HasBounds = Bounds(geoTracks.Full, BoundsMargin)
	return s
}

// Bounds returns the box enclosing coords, grown by margin (a fraction of
// its width and height) on every side. Degenerate extents are grown by a
// small fixed amount so a single point still yields a usable box.
func Bounds(coords []models.GeoCoordinate, margin float64) (geo.LatlongBox, bool) {
	if len(coords) == 0 {
		return geo.LatlongBox{}, false
	}

	box := coords[0].BoxTo(coords[0].Latlong)
	for _, c := range coords[1:] {
		box.Enclose(c.Latlong)
	}

	const minSpan = 0.001 // degrees
	dLat := (box.NE.Lat - box.SW.Lat) * margin
	dLon := (box.NE.Long - box.SW.Long) * margin
	if dLat < minSpan {
		dLat = minSpan
	}
	if dLon < minSpan {
		dLon = minSpan
	}
	box.SW.Lat -= dLat
	box.SW.Long -= dLon
	box.NE.Lat += dLat
	box.NE.Long += dLon
	return box, true
}

// GeoLengthKM sums the great-circle distances between consecutive points.
func GeoLengthKM(coords []models.GeoCoordinate) float64 {
	total := 0.0
	for i := 1; i < len(coords); i++ {
		total += coords[i-1].DistKM(coords[i].Latlong)
	}
	return total
}

// PlanarLength is the polyline length in zone metres.
func PlanarLength(points []models.PlanarPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	path := pgeo.NewPath()
	for _, p := range points {
		path.Push(pgeo.NewPoint(p.Easting, p.Northing))
	}
	return path.Distance()
}

// CountOutside counts coordinates not inside box.
func CountOutside(coords []models.GeoCoordinate, box geo.LatlongBox) int {
	n := 0
	for _, c := range coords {
		if !box.Contains(c.Latlong) {
			n++
		}
	}
	return n
}
