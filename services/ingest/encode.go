package ingest

import (
	"bytes"
	"encoding/binary"

	"tra2kml/models"
)

// EncodeTraFile writes records in the .TRA layout, preceded by a header whose
// element-type field announces len(records). Fields a TrackRecord does not
// carry are written as zero.
func EncodeTraFile(records []models.TrackRecord) []byte {
	var buf bytes.Buffer
	buf.Grow(RecordSize * (len(records) + 1))

	header := rawRecord{ElementType: int16(len(records) - HeaderCountOffset)}
	_ = binary.Write(&buf, binary.LittleEndian, header)
	for _, rec := range records {
		raw := rawRecord{
			Radius1:  rec.Radius,
			Easting:  rec.Easting,
			Northing: rec.Northing,
			Bearing:  rec.Bearing,
			Station:  rec.Station,
		}
		_ = binary.Write(&buf, binary.LittleEndian, raw)
	}
	return buf.Bytes()
}
