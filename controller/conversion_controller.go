package controller

import (
	"errors"
	"fmt"

	"tra2kml/models"
	"tra2kml/services/ingest"
	"tra2kml/services/track"
	"tra2kml/services/transform"
	"tra2kml/services/zones"
	"tra2kml/utils"
)

// Conversion is everything known about one converted file.
type Conversion struct {
	Source  string // input base name
	Zone    zones.Definition
	Records []models.TrackRecord
	Flags   []bool
	Tracks  models.Tracks
	Geo     models.GeoTracks
	Summary track.Summary
	Partial bool // the file ended before its header count was reached
}

// Table returns the record table rows with positions attached.
func (c *Conversion) Table() []models.TableRow {
	return models.BuildTable(c.Records, c.Flags, c.Geo.Full)
}

// ConversionController runs one file through decode, selection, assembly
// and transformation for a fixed zone.
type ConversionController struct {
	cfg      *utils.ConverterConfig
	zone     zones.Definition
	tr       *transform.Transformer
	selector track.Selector
}

// NewConversionController resolves the configured zone once up front.
func NewConversionController(cfg *utils.ConverterConfig) (*ConversionController, error) {
	zone, err := zones.Resolve(cfg.Converter.Zone)
	if err != nil {
		return nil, err
	}
	cc := &ConversionController{
		cfg:  cfg,
		zone: zone,
		tr:   transform.For(zone),
		selector: track.Selector{
			Include:     cfg.Selection.Include,
			Exclude:     cfg.Selection.Exclude,
			StationFrom: cfg.Selection.StationFrom,
			StationTo:   cfg.Selection.StationTo,
		},
	}
	utils.L().Info("conversion controller ready  zone=%s (EPSG:%d)", zone.ID, zone.EPSG)
	utils.L().Debug("  %s", zone.Proj4())
	return cc, nil
}

// Zone returns the resolved zone.
func (cc *ConversionController) Zone() zones.Definition { return cc.zone }

// ConvertFile reads a .TRA file from disk and converts it.
func (cc *ConversionController) ConvertFile(path string) (*Conversion, error) {
	return cc.Convert(ingest.ReadTraFile(path, cc.cfg.Input.MaxFileSizeMB))
}

// Convert turns a loaded file into planar and geographic tracks. A truncated
// file is accepted with a warning unless strict decoding is configured or
// nothing could be decoded at all.
func (cc *ConversionController) Convert(f *models.TraFile) (*Conversion, error) {
	conv := &Conversion{Source: f.BaseName(), Zone: cc.zone}

	if f.Err != nil {
		var tfe *ingest.TruncatedFileError
		if !errors.As(f.Err, &tfe) || cc.cfg.Converter.StrictDecode || len(f.Records) == 0 {
			return nil, f.Err
		}
		utils.L().Warn("%s: %v; continuing with %d records", f.Path, tfe, len(f.Records))
		conv.Partial = true
	}
	conv.Records = f.Records
	utils.L().Debug("%s: decoded %d records (%d bytes)", f.Path, len(f.Records), f.Size)

	if len(conv.Records) == 0 {
		return nil, fmt.Errorf("%s: %w", f.Path, track.NoDataError{})
	}

	flags, err := cc.selector.Flags(conv.Records)
	if err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}
	conv.Flags = flags

	conv.Tracks, err = track.AssembleTracks(conv.Records, conv.Flags)
	if err != nil {
		return nil, err
	}

	conv.Geo.Full, err = cc.tr.Inverse(conv.Tracks.Full)
	if err != nil {
		return nil, fmt.Errorf("%s: full track: %w", f.Path, err)
	}
	conv.Geo.Selected, err = cc.tr.Inverse(conv.Tracks.Selected)
	if err != nil {
		return nil, fmt.Errorf("%s: selected track: %w", f.Path, err)
	}

	conv.Summary = track.Summarize(conv.Tracks, conv.Geo)
	if n := conv.Summary.OutsideGermany; n > 0 {
		utils.L().Warn("%s: %d of %d points lie outside Germany, check the zone (%s)",
			f.Path, n, conv.Summary.Records, cc.zone.ID)
	}
	utils.L().Info("%s: %d records, %d selected, %.3f km (%.1f m in zone plane)",
		conv.Source, conv.Summary.Records, conv.Summary.Selected,
		conv.Summary.FullLengthKM, conv.Summary.FullPlanarM)
	return conv, nil
}
