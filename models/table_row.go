package models

// TableRow is one line of the record table export: the decoded record,
// its selection flag and, when available, its transformed position.
type TableRow struct {
	Index    int            `json:"index"` // 1-based, file order
	Selected bool           `json:"selected"`
	Record   TrackRecord    `json:"record"`
	Geo      *GeoCoordinate `json:"geo,omitempty"`
}

// CSVHeader returns the table header: index and flag, record columns, position.
func (TableRow) CSVHeader() []string {
	h := []string{"nr", "auswahl"}
	h = append(h, TrackRecord{}.CSVHeader()...)
	h = append(h, "lon", "lat")
	return h
}

// CSVRow returns a single table row, using empty strings when no position is known.
func (t *TableRow) CSVRow() []string {
	flag := "0"
	if t.Selected {
		flag = "1"
	}
	row := []string{itoa(t.Index), flag}
	row = append(row, t.Record.CSVRow()...)

	if t.Geo != nil {
		row = append(row, ftoa(t.Geo.Long, 6), ftoa(t.Geo.Lat, 6))
	} else {
		row = append(row, "", "")
	}
	return row
}

// BuildTable pairs records with their flags and positions. geo may be nil
// or shorter than records; missing positions are left empty.
func BuildTable(records []TrackRecord, flags []bool, geo []GeoCoordinate) []TableRow {
	rows := make([]TableRow, len(records))
	for i, rec := range records {
		rows[i] = TableRow{Index: i + 1, Record: rec}
		if i < len(flags) {
			rows[i].Selected = flags[i]
		}
		if i < len(geo) {
			g := geo[i]
			rows[i].Geo = &g
		}
	}
	return rows
}
