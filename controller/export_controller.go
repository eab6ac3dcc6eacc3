package controller

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"tra2kml/services/track"
	"tra2kml/utils"
	"tra2kml/views"
)

// ExportController is the final pipeline stage. It writes, per conversion:
//   - <name>.kml  (full and selected track)
//   - <name>.csv  (record table, optional)
//   - <name>.pdf  (preview sheet, optional)
//
// Existing files are refused unless overwrite is set.
type ExportController struct {
	cfg     utils.OutputConfig
	written []string
}

// NewExportController makes sure the output directory exists.
func NewExportController(cfg utils.OutputConfig) (*ExportController, error) {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	utils.L().Info("export controller ready  dir=%s overwrite=%v", cfg.Dir, cfg.Overwrite)
	return &ExportController{cfg: cfg}, nil
}

// Export writes the files of one conversion and returns their paths.
func (ec *ExportController) Export(conv *Conversion) ([]string, error) {
	if err := track.RequireExportable(conv.Tracks); err != nil {
		return nil, fmt.Errorf("%s: %w", conv.Source, err)
	}

	var paths []string

	// ── KML ──────────────────────────────────────────────────────────
	data, err := views.SerializeKmlDocument(ec.document(conv), conv.Geo.Full, conv.Geo.Selected)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", conv.Source, err)
	}
	path, err := ec.writeFile(conv.Source, views.ExportKML, data)
	if err != nil {
		return paths, err
	}
	paths = append(paths, path)

	// ── Record table ─────────────────────────────────────────────────
	if ec.cfg.CSV.Enabled {
		path, err := ec.target(conv.Source, views.ExportTable)
		if err != nil {
			return paths, err
		}
		opts := views.CSVOptions{
			Encoding:        ec.cfg.CSV.Encoding,
			WriteHeader:     ec.cfg.CSV.WriteHeader,
			BufferSizeBytes: ec.cfg.CSV.BufferSizeKB * 1024,
		}
		if err := views.WriteTableCSV(path, conv.Table(), opts); err != nil {
			return paths, err
		}
		ec.written = append(ec.written, path)
		paths = append(paths, path)
	}

	// ── Preview ──────────────────────────────────────────────────────
	if ec.cfg.Preview.Enabled && conv.Summary.HasBounds {
		var buf bytes.Buffer
		sheet := views.PreviewSheet{
			Title: conv.Source,
			Subtitle: fmt.Sprintf("%s, %d Punkte, %d ausgewählt, %.3f km",
				conv.Zone.Name, conv.Summary.Records, conv.Summary.Selected, conv.Summary.FullLengthKM),
			Bounds:   conv.Summary.Bounds,
			Full:     conv.Geo.Full,
			Selected: conv.Geo.Selected,
		}
		if err := views.RenderPreviewPDF(&buf, sheet); err != nil {
			return paths, fmt.Errorf("render preview: %w", err)
		}
		path, err := ec.writeFile(conv.Source, views.ExportPreview, buf.Bytes())
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// ExportBatch writes one KML holding the full track of every conversion.
func (ec *ExportController) ExportBatch(name string, convs []*Conversion) (string, error) {
	tracks := make([]views.BatchTrack, 0, len(convs))
	for _, c := range convs {
		tracks = append(tracks, views.BatchTrack{Name: c.Source, Coords: c.Geo.Full})
	}

	doc := views.Document{Name: ec.cfg.KML.DocumentName, Description: ec.cfg.KML.Description}
	if doc.Name == "" {
		doc.Name = name
	}
	if doc.Description == "" && len(convs) > 0 {
		doc.Description = fmt.Sprintf("%d Trassen, %s", len(convs), convs[0].Zone.Name)
	}

	data, err := views.SerializeBatchKml(doc, tracks)
	if err != nil {
		return "", err
	}
	return ec.writeFile(name, views.ExportKML, data)
}

// Written lists every file written so far.
func (ec *ExportController) Written() []string {
	return append([]string(nil), ec.written...)
}

func (ec *ExportController) document(conv *Conversion) views.Document {
	doc := views.Document{Name: ec.cfg.KML.DocumentName, Description: ec.cfg.KML.Description}
	if strings.TrimSpace(doc.Name) == "" {
		doc.Name = conv.Source
	}
	if doc.Description == "" {
		doc.Description = fmt.Sprintf("%s (EPSG:%d), %d Punkte, %d ausgewählt",
			conv.Zone.Name, conv.Zone.EPSG, conv.Summary.Records, conv.Summary.Selected)
	}
	return doc
}

// target resolves the output path for name and refuses existing files
// unless overwrite is set.
func (ec *ExportController) target(name string, kind views.ExportKind) (string, error) {
	path := utils.OutputPath(ec.cfg.Dir, name, kind.Ext())
	if !ec.cfg.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (overwrite=false)", path)
		}
	}
	return path, nil
}

func (ec *ExportController) writeFile(name string, kind views.ExportKind, data []byte) (string, error) {
	path, err := ec.target(name, kind)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", kind, err)
	}
	ec.written = append(ec.written, path)
	utils.L().Info("wrote %-7s %s (%d bytes)", kind, path, len(data))
	return path, nil
}
