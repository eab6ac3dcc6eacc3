package track

import (
	"errors"
	"testing"

	"tra2kml/models"
)

func sampleRecords(n int) []models.TrackRecord {
	recs := make([]models.TrackRecord, n)
	for i := range recs {
		recs[i] = models.TrackRecord{
			Station:  float64(i) * 25,
			Easting:  3500000 + float64(i)*20,
			Northing: 5540000 + float64(i)*15,
		}
	}
	return recs
}

func TestAssembleTracks_AllFalse(t *testing.T) {
	recs := sampleRecords(4)
	got, err := AssembleTracks(recs, make([]bool, 4))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Selected) != 0 {
		t.Errorf("Selected = %v, want empty", got.Selected)
	}
	if len(got.Full) != 4 {
		t.Fatalf("len(Full) = %d, want 4", len(got.Full))
	}
	for i, p := range got.Full {
		if p != recs[i].Planar() {
			t.Errorf("Full[%d] = %v, want %v", i, p, recs[i].Planar())
		}
	}
}

func TestAssembleTracks_AllTrue(t *testing.T) {
	recs := sampleRecords(5)
	got, err := AssembleTracks(recs, AllSelected(5))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Selected) != len(got.Full) {
		t.Fatalf("len(Selected) = %d, len(Full) = %d", len(got.Selected), len(got.Full))
	}
	for i := range got.Full {
		if got.Selected[i] != got.Full[i] {
			t.Errorf("point %d differs: %v vs %v", i, got.Selected[i], got.Full[i])
		}
	}
}

func TestAssembleTracks_KeepsFileOrder(t *testing.T) {
	recs := sampleRecords(6)
	flags := []bool{false, true, false, true, true, false}
	got, err := AssembleTracks(recs, flags)
	if err != nil {
		t.Fatal(err)
	}
	want := []models.PlanarPoint{recs[1].Planar(), recs[3].Planar(), recs[4].Planar()}
	if len(got.Selected) != len(want) {
		t.Fatalf("Selected = %v, want %v", got.Selected, want)
	}
	for i := range want {
		if got.Selected[i] != want[i] {
			t.Errorf("Selected[%d] = %v, want %v", i, got.Selected[i], want[i])
		}
	}
}

func TestAssembleTracks_Mismatch(t *testing.T) {
	_, err := AssembleTracks(sampleRecords(3), []bool{true})
	var sme *SelectionMismatchError
	if !errors.As(err, &sme) {
		t.Fatalf("err = %v, want *SelectionMismatchError", err)
	}
	if sme.Records != 3 || sme.Flags != 1 {
		t.Errorf("got %+v", sme)
	}
}

func TestRequireExportable(t *testing.T) {
	empty, err := AssembleTracks(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty.Full) != 0 || len(empty.Selected) != 0 {
		t.Fatalf("expected empty tracks, got %+v", empty)
	}
	if err := RequireExportable(empty); !errors.As(err, new(NoDataError)) {
		t.Errorf("empty: err = %v, want NoDataError", err)
	}

	none, _ := AssembleTracks(sampleRecords(2), []bool{false, false})
	var nse NoSelectionError
	if err := RequireExportable(none); !errors.As(err, &nse) {
		t.Errorf("none selected: err = %v, want NoSelectionError", err)
	} else if nse.Records != 2 {
		t.Errorf("Records = %d, want 2", nse.Records)
	}

	some, _ := AssembleTracks(sampleRecords(2), []bool{false, true})
	if err := RequireExportable(some); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
