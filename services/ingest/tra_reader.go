package ingest

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"tra2kml/models"
	"tra2kml/utils"
)

// TraReader loads .TRA files in the background and emits one TraFile per
// input path, in input order, on Out.
type TraReader struct {
	cfg    utils.InputConfig
	Out    chan *models.TraFile
	loaded uint64
	failed uint64
}

func NewTraReader(cfg utils.InputConfig) *TraReader {
	buf := cfg.ChannelBuffer
	if buf <= 0 {
		buf = 8
	}
	return &TraReader{
		cfg: cfg,
		Out: make(chan *models.TraFile, buf),
	}
}

func (r *TraReader) Start(ctx context.Context, paths []string) {
	go r.run(ctx, paths)
	utils.L().Info("tra reader started     (files=%d, buffer=%d, max_size=%dMB)",
		len(paths), cap(r.Out), r.cfg.MaxFileSizeMB)
}

func (r *TraReader) run(ctx context.Context, paths []string) {
	defer close(r.Out)

	for _, path := range paths {
		f := ReadTraFile(path, r.cfg.MaxFileSizeMB)
		if f.Err != nil {
			atomic.AddUint64(&r.failed, 1)
		} else {
			atomic.AddUint64(&r.loaded, 1)
		}

		select {
		case <-ctx.Done():
			utils.L().Info("tra reader stopped     (loaded=%d, failed=%d)",
				atomic.LoadUint64(&r.loaded), atomic.LoadUint64(&r.failed))
			return
		case r.Out <- f:
		}
	}
	utils.L().Debug("tra reader finished    (loaded=%d, failed=%d)",
		atomic.LoadUint64(&r.loaded), atomic.LoadUint64(&r.failed))
}

// ReadTraFile loads and decodes a whole file. maxSizeMB <= 0 disables the
// size guard. A truncated file keeps its partial records and reports a
// *TruncatedFileError in Err.
func ReadTraFile(path string, maxSizeMB int) *models.TraFile {
	f := &models.TraFile{Path: path}

	if maxSizeMB > 0 {
		st, err := os.Stat(path)
		if err != nil {
			f.Err = fmt.Errorf("stat %s: %w", path, err)
			return f
		}
		if st.Size() > int64(maxSizeMB)<<20 {
			f.Err = fmt.Errorf("%s: %d bytes exceeds the %d MB limit", path, st.Size(), maxSizeMB)
			return f
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		f.Err = fmt.Errorf("read %s: %w", path, err)
		return f
	}
	f.Size = len(data)

	f.Records, err = DecodeTraFile(data)
	if err != nil {
		f.Err = fmt.Errorf("decode %s: %w", path, err)
	}
	return f
}

// Stats returns the number of files loaded cleanly and the number that failed.
func (r *TraReader) Stats() (uint64, uint64) {
	return atomic.LoadUint64(&r.loaded), atomic.LoadUint64(&r.failed)
}
