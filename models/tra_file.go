package models

import "path/filepath"

// TraFile is the result of loading one .TRA file from disk.
// Err is set when the file could not be read or decoded completely; Records
// may still hold a partial track in the latter case.
type TraFile struct {
	Path    string        `json:"path"`
	Size    int           `json:"size_bytes"`
	Records []TrackRecord `json:"records"`
	Err     error         `json:"-"`
}

// BaseName returns the file name without directory and extension.
func (f *TraFile) BaseName() string {
	base := filepath.Base(f.Path)
	return base[:len(base)-len(filepath.Ext(base))]
}
