package views

// ExportKind identifies one of the files a conversion can produce.
type ExportKind int

const (
	ExportKML ExportKind = iota
	ExportTable
	ExportPreview
)

var exportNames = map[ExportKind]string{
	ExportKML:     "kml",
	ExportTable:   "table",
	ExportPreview: "preview",
}

var exportExts = map[ExportKind]string{
	ExportKML:     ".kml",
	ExportTable:   ".csv",
	ExportPreview: ".pdf",
}

func (k ExportKind) String() string {
	if n, ok := exportNames[k]; ok {
		return n
	}
	return "unknown"
}

// Ext returns the file extension, dot included.
func (k ExportKind) Ext() string { return exportExts[k] }

// TableColumns is the canonical column order of the record table export.
// The header itself is written by models.TableRow.CSVHeader; this list is
// kept as a readable reference and checked against it in tests.
var TableColumns = []string{
	"nr", "auswahl",
	"station", "rechtswert_y", "hochwert_x", "richtung", "radius",
	"lon", "lat",
}
