// Package track turns decoded records and their selection flags into the
// full and selected polylines, and summarises them for export and preview.
package track

import (
	"fmt"

	"tra2kml/models"
)

// NoDataError means there is nothing to export: the file held no records.
type NoDataError struct{}

func (NoDataError) Error() string { return "no data loaded" }

// NoSelectionError means an export was requested with zero selected records.
type NoSelectionError struct {
	Records int
}

func (e NoSelectionError) Error() string {
	return fmt.Sprintf("nothing selected (0 of %d records)", e.Records)
}

// SelectionMismatchError is returned when the flag slice does not cover the
// record slice one-to-one.
type SelectionMismatchError struct {
	Records int
	Flags   int
}

func (e *SelectionMismatchError) Error() string {
	return fmt.Sprintf("selection has %d flags for %d records", e.Flags, e.Records)
}

// AssembleTracks builds the full polyline from every record and the selected
// polyline from the flagged ones, both in file order. Zero records yield two
// empty polylines, not an error; use RequireExportable before exporting.
func AssembleTracks(records []models.TrackRecord, flags []bool) (models.Tracks, error) {
	if len(flags) != len(records) {
		return models.Tracks{}, &SelectionMismatchError{Records: len(records), Flags: len(flags)}
	}

	t := models.Tracks{
		Full:     make([]models.PlanarPoint, 0, len(records)),
		Selected: make([]models.PlanarPoint, 0, countTrue(flags)),
	}
	for i, rec := range records {
		p := rec.Planar()
		t.Full = append(t.Full, p)
		if flags[i] {
			t.Selected = append(t.Selected, p)
		}
	}
	return t, nil
}

// RequireExportable rejects tracks that cannot be written out.
func RequireExportable(t models.Tracks) error {
	if len(t.Full) == 0 {
		return NoDataError{}
	}
	if len(t.Selected) == 0 {
		return NoSelectionError{Records: len(t.Full)}
	}
	return nil
}

// AllSelected returns n flags set to true, the state right after loading.
func AllSelected(n int) []bool {
	flags := make([]bool, n)
	for i := range flags {
		flags[i] = true
	}
	return flags
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
