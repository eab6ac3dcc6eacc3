package models

// TrackRecord holds one geometry station of a .TRA alignment.
// Records are produced in file order by the decoder and never mutated.
type TrackRecord struct {
	Station  float64 `json:"station"`  // distance along the alignment, any sign
	Easting  float64 `json:"easting"`  // Rechtswert (Y)
	Northing float64 `json:"northing"` // Hochwert (X)
	Bearing  float64 `json:"bearing"`  // as stored; unit is not interpreted
	Radius   float64 `json:"radius"`   // 0 or a large sentinel on straights
}

// Planar returns the record's position in its Gauss-Krüger zone.
func (r TrackRecord) Planar() PlanarPoint {
	return PlanarPoint{Easting: r.Easting, Northing: r.Northing}
}

func (TrackRecord) CSVHeader() []string {
	return []string{
		"station", "rechtswert_y", "hochwert_x", "richtung", "radius",
	}
}

func (r *TrackRecord) CSVRow() []string {
	return []string{
		tableValue(r.Station),
		tableValue(r.Easting),
		tableValue(r.Northing),
		tableValue(r.Bearing),
		tableValue(r.Radius),
	}
}
