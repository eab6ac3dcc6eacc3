package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tra2kml/models"
	"tra2kml/utils"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestReadTraFile(t *testing.T) {
	dir := t.TempDir()
	recs := []models.TrackRecord{{Station: 1, Easting: 3500000, Northing: 5540000}}
	good := writeFile(t, dir, "good.tra", EncodeTraFile(recs))

	f := ReadTraFile(good, 0)
	if f.Err != nil {
		t.Fatalf("unexpected error: %v", f.Err)
	}
	if len(f.Records) != 1 || f.Size != 2*RecordSize {
		t.Errorf("got %d records / %d bytes", len(f.Records), f.Size)
	}
	if f.BaseName() != "good" {
		t.Errorf("BaseName() = %q", f.BaseName())
	}

	short := writeFile(t, dir, "short.tra", []byte{1, 2, 3})
	f = ReadTraFile(short, 0)
	var terr *TruncatedFileError
	if !errors.As(f.Err, &terr) {
		t.Errorf("short file error = %v, want *TruncatedFileError", f.Err)
	}

	f = ReadTraFile(filepath.Join(dir, "missing.tra"), 0)
	if f.Err == nil || !errors.Is(f.Err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", f.Err)
	}
}

func TestTraReader_EmitsInOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, name := range []string{"a.tra", "b.tra", "c.tra"} {
		recs := make([]models.TrackRecord, i+1)
		paths = append(paths, writeFile(t, dir, name, EncodeTraFile(recs)))
	}
	paths = append(paths, filepath.Join(dir, "nope.tra"))

	r := NewTraReader(utils.InputConfig{ChannelBuffer: 1})
	r.Start(context.Background(), paths)

	var got []*models.TraFile
	for f := range r.Out {
		got = append(got, f)
	}
	if len(got) != len(paths) {
		t.Fatalf("got %d files, want %d", len(got), len(paths))
	}
	for i, f := range got[:3] {
		if f.Path != paths[i] || len(f.Records) != i+1 {
			t.Errorf("file %d = %s with %d records", i, f.Path, len(f.Records))
		}
	}
	loaded, failed := r.Stats()
	if loaded != 3 || failed != 1 {
		t.Errorf("Stats() = %d, %d; want 3, 1", loaded, failed)
	}
}
