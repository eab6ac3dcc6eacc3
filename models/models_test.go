package models

import (
	"reflect"
	"testing"
)

func TestTableValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.000"},
		{5e-7, "0.000"},
		{-5e-7, "0.000"},
		{1e-6, "0.000"},
		{0.0016, "0.002"},
		{-450.25, "-450.250"},
		{3500000.1234, "3500000.123"},
	}
	for _, tt := range tests {
		if got := tableValue(tt.in); got != tt.want {
			t.Errorf("tableValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKMLTriple(t *testing.T) {
	c := NewGeoCoordinate(9.1, 50.1)
	if got := c.KMLTriple(); got != "9.100000,50.100000,0" {
		t.Errorf("KMLTriple = %q", got)
	}
	if c.Long != 9.1 || c.Lat != 50.1 {
		t.Errorf("axis order swapped: %+v", c.Latlong)
	}
}

func TestBuildTable(t *testing.T) {
	recs := []TrackRecord{{Station: 1}, {Station: 2}, {Station: 3}}
	rows := BuildTable(recs, []bool{true, false, true}, []GeoCoordinate{NewGeoCoordinate(9, 50)})
	if len(rows) != 3 {
		t.Fatalf("len = %d", len(rows))
	}
	if rows[0].Index != 1 || rows[2].Index != 3 {
		t.Errorf("indices = %d, %d", rows[0].Index, rows[2].Index)
	}
	if rows[0].Geo == nil || rows[1].Geo != nil {
		t.Errorf("geo attached wrongly: %v %v", rows[0].Geo, rows[1].Geo)
	}
	if got := rows[1].CSVRow(); got[1] != "0" || got[len(got)-1] != "" {
		t.Errorf("row 2 = %v", got)
	}
	if len(rows[0].CSVRow()) != len(TableRow{}.CSVHeader()) {
		t.Error("row and header widths differ")
	}
}

func TestTraFileBaseName(t *testing.T) {
	f := &TraFile{Path: "/data/trassen/A7_Nord.TRA"}
	if got := f.BaseName(); got != "A7_Nord" {
		t.Errorf("BaseName = %q", got)
	}
	if !reflect.DeepEqual(TrackRecord{}.CSVHeader(), []string{"station", "rechtswert_y", "hochwert_x", "richtung", "radius"}) {
		t.Error("unexpected record header")
	}
}
