// Package ingest reads .TRA alignment files.
//
// A .TRA file is a sequence of fixed 78-byte little-endian records. The first
// record is a header whose element-type field holds the number of data
// records minus one; the data records follow it directly.
package ingest

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"tra2kml/models"
)

// RecordSize is the on-disk size of one record: 6*8 + 2 + 3*8 + 4 bytes.
const RecordSize = 78

// HeaderCountOffset is added to the header's element-type field to get the
// number of data records. It is part of the format, not a bug.
const HeaderCountOffset = 1

// rawRecord mirrors the on-disk layout field by field. encoding/binary packs
// it without padding, so binary.Size(rawRecord{}) == RecordSize.
type rawRecord struct {
	Radius1             float64
	Radius2             float64
	Easting             float64
	Northing            float64
	Bearing             float64
	Station             float64
	ElementType         int16
	Length              float64
	SuperelevationStart float64
	SuperelevationEnd   float64
	DistanceToRoute     int32
}

func (r rawRecord) trackRecord() models.TrackRecord {
	return models.TrackRecord{
		Station:  r.Station,
		Easting:  r.Easting,
		Northing: r.Northing,
		Bearing:  r.Bearing,
		Radius:   r.Radius1,
	}
}

// TruncatedFileError reports a buffer that ended before the header or
// before all announced data records. Decoded is the number of records that
// were returned alongside the error.
type TruncatedFileError struct {
	Expected      int  // records announced by the header; 0 if the header is missing
	Decoded       int  // records decoded before the buffer ran out
	HeaderMissing bool // buffer shorter than one record
	Size          int  // buffer length in bytes
}

func (e *TruncatedFileError) Error() string {
	if e.HeaderMissing {
		return fmt.Sprintf("tra: file too short for a header record (%d of %d bytes)", e.Size, RecordSize)
	}
	return fmt.Sprintf("tra: header announces %d records, only %d present (%d bytes)",
		e.Expected, e.Decoded, e.Size)
}

// DecodeTraFile decodes a complete .TRA buffer into track records in file
// order. The header record itself is not part of the result.
//
// When the buffer ends early the records decoded so far are returned
// together with a *TruncatedFileError; a buffer shorter than the header
// yields an empty slice and the same error type. The result never aliases
// data.
func DecodeTraFile(data []byte) ([]models.TrackRecord, error) {
	if len(data) < RecordSize {
		return []models.TrackRecord{}, &TruncatedFileError{HeaderMissing: true, Size: len(data)}
	}

	header, err := decodeRecord(data[:RecordSize])
	if err != nil {
		return nil, err
	}
	n := int(header.ElementType) + HeaderCountOffset
	if n < 0 {
		n = 0
	}

	avail := (len(data) - RecordSize) / RecordSize
	records := make([]models.TrackRecord, 0, min(n, avail))

	offset := RecordSize
	for i := 0; i < n; i++ {
		if offset+RecordSize > len(data) {
			return records, &TruncatedFileError{Expected: n, Decoded: len(records), Size: len(data)}
		}
		raw, err := decodeRecord(data[offset : offset+RecordSize])
		if err != nil {
			return records, err
		}
		records = append(records, raw.trackRecord())
		offset += RecordSize
	}
	return records, nil
}

// ElementCount returns the number of data records the header of data
// announces, without decoding them.
func ElementCount(data []byte) (int, error) {
	if len(data) < RecordSize {
		return 0, &TruncatedFileError{HeaderMissing: true, Size: len(data)}
	}
	header, err := decodeRecord(data[:RecordSize])
	if err != nil {
		return 0, err
	}
	return int(header.ElementType) + HeaderCountOffset, nil
}

func decodeRecord(buf []byte) (rawRecord, error) {
	var raw rawRecord
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &raw); err != nil {
		return rawRecord{}, fmt.Errorf("tra: decode record: %w", err)
	}
	return raw, nil
}
