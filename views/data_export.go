package views

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"tra2kml/models"
)

// CSVWriter is a concurrency-safe, buffered CSV writer for the record
// table export. Rows are transcoded on the way out when a legacy encoding
// is requested, so the file opens cleanly in spreadsheet tools that expect
// Windows code pages.
type CSVWriter struct {
	mu   sync.Mutex
	file *os.File
	buf  *bufio.Writer
	csv  *csv.Writer
	tw   io.Closer // transcoder, when an encoding is set
	rows uint64
}

// Encoder resolves an encoding name to a text encoder. An empty name or
// "utf-8" means no transcoding (nil encoder).
func Encoder(name string) (*encoding.Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "windows-1252", "cp1252":
		return encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()), nil
	case "iso-8859-1", "latin1":
		return encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()), nil
	case "iso-8859-15", "latin9":
		return encoding.ReplaceUnsupported(charmap.ISO8859_15.NewEncoder()), nil
	}
	return nil, fmt.Errorf("unsupported csv encoding %q", name)
}

// NewCSVWriter creates a file and writes the CSV header row.
func NewCSVWriter(path string, bufSizeBytes int, writeHeader bool, header []string, enc string) (*CSVWriter, error) {
	encoder, err := Encoder(enc)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv create %s: %w", path, err)
	}

	if bufSizeBytes <= 0 {
		bufSizeBytes = 64 * 1024
	}

	bw := bufio.NewWriterSize(f, bufSizeBytes)
	var out io.Writer = bw
	if encoder != nil {
		out = encoder.Writer(bw)
	}
	cw := csv.NewWriter(out)

	w := &CSVWriter{
		file: f,
		buf:  bw,
		csv:  cw,
	}
	if c, ok := out.(io.Closer); ok {
		w.tw = c
	}

	if writeHeader && len(header) > 0 {
		if err := cw.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("csv write header: %w", err)
		}
	}

	return w, nil
}

// WriteRow appends a single CSV row. Thread-safe.
func (w *CSVWriter) WriteRow(row []string) {
	w.mu.Lock()
	_ = w.csv.Write(row) // error is buffered; checked on Flush
	w.rows++
	w.mu.Unlock()
}

// Write appends one model row.
func (w *CSVWriter) Write(r models.CSVRowWriter) {
	w.WriteRow(r.CSVRow())
}

// Flush pushes the buffered data to the OS and reports any write error
// seen since the last flush.
func (w *CSVWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	return w.buf.Flush()
}

// Close flushes remaining data and closes the file.
func (w *CSVWriter) Close() error {
	ferr := w.Flush()
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.tw != nil && ferr == nil {
		if ferr = w.tw.Close(); ferr == nil {
			ferr = w.buf.Flush()
		}
	}
	cerr := w.file.Close()
	if ferr != nil {
		return ferr
	}
	return cerr
}

// Rows returns the number of data rows written (excludes header).
func (w *CSVWriter) Rows() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}

// WriteTableCSV writes the record table to path in one go.
func WriteTableCSV(path string, rows []models.TableRow, opts CSVOptions) error {
	w, err := NewCSVWriter(path, opts.BufferSizeBytes, opts.WriteHeader, models.TableRow{}.CSVHeader(), opts.Encoding)
	if err != nil {
		return err
	}
	for i := range rows {
		w.Write(&rows[i])
	}
	return w.Close()
}

// CSVOptions configures WriteTableCSV.
type CSVOptions struct {
	Encoding        string
	WriteHeader     bool
	BufferSizeBytes int
}
