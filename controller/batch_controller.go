package controller

import (
	"context"
	"fmt"
	"sync/atomic"

	"tra2kml/services/ingest"
	"tra2kml/utils"
)

// BatchController loads several .TRA files of one zone in the background
// and merges their full tracks into a single KML.
type BatchController struct {
	cfg    *utils.ConverterConfig
	reader *ingest.TraReader
	conv   *ConversionController
	export *ExportController

	converted uint64
	skipped   uint64
}

func NewBatchController(cfg *utils.ConverterConfig, conv *ConversionController, export *ExportController) *BatchController {
	return &BatchController{
		cfg:    cfg,
		reader: ingest.NewTraReader(cfg.Input),
		conv:   conv,
		export: export,
	}
}

// Run converts every path and writes <prefix>_YYYYMMDD_HHMMSS.kml. Files
// that fail to convert are logged and skipped.
func (bc *BatchController) Run(ctx context.Context, paths []string) (string, error) {
	bc.reader.Start(ctx, paths)

	var convs []*Conversion
	for f := range bc.reader.Out {
		c, err := bc.conv.Convert(f)
		if err != nil {
			utils.L().Error("skip %s: %v", f.Path, err)
			atomic.AddUint64(&bc.skipped, 1)
			continue
		}
		convs = append(convs, c)
		atomic.AddUint64(&bc.converted, 1)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("batch interrupted: %w", err)
	}
	if len(convs) == 0 {
		return "", fmt.Errorf("batch: none of %d files could be converted", len(paths))
	}

	return bc.export.ExportBatch(utils.SessionName(bc.cfg.Batch.Prefix), convs)
}

// Stats returns the number of converted and skipped files.
func (bc *BatchController) Stats() (uint64, uint64) {
	return atomic.LoadUint64(&bc.converted), atomic.LoadUint64(&bc.skipped)
}

// LogStats prints reader and conversion counters.
func (bc *BatchController) LogStats() {
	l, f := bc.reader.Stats()
	c, s := bc.Stats()
	utils.L().Info("  reader   loaded=%d  failed=%d", l, f)
	utils.L().Info("  batch    converted=%d  skipped=%d", c, s)
}
