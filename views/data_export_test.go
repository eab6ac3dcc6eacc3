package views

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tra2kml/models"
)

func sampleTable() []models.TableRow {
	recs := []models.TrackRecord{
		{Station: 0, Easting: 3500000.1234, Northing: 5540000, Bearing: 1.5, Radius: 0},
		{Station: 25.5, Easting: 3500020, Northing: 5540015, Bearing: 1.5, Radius: -450.25},
	}
	geo := []models.GeoCoordinate{models.NewGeoCoordinate(8.998959, 49.996345)}
	return models.BuildTable(recs, []bool{true, false}, geo)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestWriteTableCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	if err := WriteTableCSV(path, sampleTable(), CSVOptions{WriteHeader: true}); err != nil {
		t.Fatal(err)
	}
	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if !reflect.DeepEqual(rows[0], TableColumns) {
		t.Errorf("header = %v, want %v", rows[0], TableColumns)
	}
	want1 := []string{"1", "1", "0.000", "3500000.123", "5540000.000", "1.500", "0.000", "8.998959", "49.996345"}
	if !reflect.DeepEqual(rows[1], want1) {
		t.Errorf("row 1 = %v, want %v", rows[1], want1)
	}
	want2 := []string{"2", "0", "25.500", "3500020.000", "5540015.000", "1.500", "-450.250", "", ""}
	if !reflect.DeepEqual(rows[2], want2) {
		t.Errorf("row 2 = %v, want %v", rows[2], want2)
	}
}

func TestCSVWriter_NoHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	w, err := NewCSVWriter(path, 0, false, TableColumns, "")
	if err != nil {
		t.Fatal(err)
	}
	w.WriteRow([]string{"a", "b"})
	w.WriteRow([]string{"c", "d"})
	if w.Rows() != 2 {
		t.Errorf("Rows = %d, want 2", w.Rows())
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if rows := readCSV(t, path); len(rows) != 2 || rows[0][0] != "a" {
		t.Errorf("rows = %v", rows)
	}
}

func TestCSVWriter_Windows1252(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	w, err := NewCSVWriter(path, 0, true, []string{"Straße", "Höhe"}, "windows-1252")
	if err != nil {
		t.Fatal(err)
	}
	w.WriteRow([]string{"Grün", "1"})
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte("Stra\xdfe,H\xf6he\nGr\xfcn,1\n")
	if !bytes.Equal(data, want) {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestEncoder(t *testing.T) {
	for _, name := range []string{"", "UTF-8", "windows-1252", "cp1252", "latin1", "iso-8859-15"} {
		if _, err := Encoder(name); err != nil {
			t.Errorf("Encoder(%q): %v", name, err)
		}
	}
	if _, err := Encoder("ebcdic"); err == nil {
		t.Error("expected error for unknown encoding")
	}
	if _, err := NewCSVWriter(filepath.Join(t.TempDir(), "x.csv"), 0, false, nil, "ebcdic"); err == nil {
		t.Error("NewCSVWriter accepted unknown encoding")
	}
}

func TestExportKind(t *testing.T) {
	tests := []struct {
		k         ExportKind
		name, ext string
	}{
		{ExportKML, "kml", ".kml"},
		{ExportTable, "table", ".csv"},
		{ExportPreview, "preview", ".pdf"},
	}
	for _, tt := range tests {
		if tt.k.String() != tt.name || tt.k.Ext() != tt.ext {
			t.Errorf("%d: got %q %q", tt.k, tt.k.String(), tt.k.Ext())
		}
	}
	if ExportKind(99).String() != "unknown" {
		t.Error("unknown kind not reported")
	}
}
