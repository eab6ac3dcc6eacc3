package views

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"tra2kml/models"
)

const (
	kmlNamespace = "http://www.opengis.net/kml/2.2"

	FullTrackName       = "Gesamte Trasse"
	SelectedTrackName   = "Ausgewählte Trasse"
	DefaultDocumentName = "TRA zu KML Export"
)

// LineStyle is a KML line colour (aabbggrr) and width.
type LineStyle struct {
	Color string
	Width int
}

var (
	FullTrackStyle     = LineStyle{Color: "ff0000ff", Width: 5}
	SelectedTrackStyle = LineStyle{Color: "ff00ff00", Width: 5}
)

// PaletteColor is one entry of the batch colour cycle.
type PaletteColor struct {
	Name  string
	Color string
}

// Palette colours successive tracks of a batch export.
var Palette = []PaletteColor{
	{"Rot", "ff0000ff"},
	{"Grün", "ff00ff00"},
	{"Blau", "ffff0000"},
	{"Gelb", "ff00ffff"},
	{"Magenta", "ffff00ff"},
	{"Cyan", "ffffff00"},
	{"Orange", "ff0088ff"},
	{"Lila", "ffff0088"},
	{"Pink", "ff8800ff"},
	{"Türkis", "ff88ff00"},
}

// EmptyGeometryError is returned when a placemark would get no coordinates.
type EmptyGeometryError struct {
	Placemark string
}

func (e *EmptyGeometryError) Error() string {
	return fmt.Sprintf("placemark %q has no coordinates", e.Placemark)
}

// ErrNoTracks is returned by SerializeBatchKml for an empty batch.
var ErrNoTracks = errors.New("batch contains no tracks")

// Document carries the KML document metadata.
type Document struct {
	Name        string
	Description string
}

// BatchTrack is one file's full track inside a batch export.
type BatchTrack struct {
	Name   string
	Coords []models.GeoCoordinate
}

// ─── KML DTOs ───────────────────────────────────────────────────────────

type kmlRoot struct {
	XMLName  xml.Name    `xml:"kml"`
	Xmlns    string      `xml:"xmlns,attr"`
	Document kmlDocument `xml:"Document"`
}

type kmlDocument struct {
	Name        string         `xml:"name"`
	Description string         `xml:"description,omitempty"`
	Styles      []kmlStyle     `xml:"Style"`
	Placemarks  []kmlPlacemark `xml:"Placemark"`
}

type kmlStyle struct {
	ID        string       `xml:"id,attr"`
	LineStyle kmlLineStyle `xml:"LineStyle"`
}

type kmlLineStyle struct {
	Color string `xml:"color"`
	Width int    `xml:"width"`
}

type kmlPlacemark struct {
	Name        string        `xml:"name"`
	Description string        `xml:"description,omitempty"`
	StyleURL    string        `xml:"styleUrl"`
	LineString  kmlLineString `xml:"LineString"`
}

type kmlLineString struct {
	Tessellate   int    `xml:"tessellate"`
	AltitudeMode string `xml:"altitudeMode"`
	Coordinates  string `xml:"coordinates"`
}

// ─── Serializers ────────────────────────────────────────────────────────

// SerializeKml renders the two-placemark document with default metadata.
func SerializeKml(full, selected []models.GeoCoordinate) ([]byte, error) {
	return SerializeKmlDocument(Document{}, full, selected)
}

// SerializeKmlDocument renders the full track followed by the selected
// track as line placemarks of one KML 2.2 document.
func SerializeKmlDocument(doc Document, full, selected []models.GeoCoordinate) ([]byte, error) {
	if len(full) == 0 {
		return nil, &EmptyGeometryError{Placemark: FullTrackName}
	}
	if len(selected) == 0 {
		return nil, &EmptyGeometryError{Placemark: SelectedTrackName}
	}

	root := newRoot(doc)
	root.Document.Styles = []kmlStyle{
		newStyle("fullTrack", FullTrackStyle),
		newStyle("selectedTrack", SelectedTrackStyle),
	}
	root.Document.Placemarks = []kmlPlacemark{
		newPlacemark(FullTrackName, fmt.Sprintf("Alle %d Punkte der Trasse", len(full)), "fullTrack", full),
		newPlacemark(SelectedTrackName, fmt.Sprintf("Ausgewählte %d Punkte", len(selected)), "selectedTrack", selected),
	}
	return encodeKml(root)
}

// SerializeBatchKml renders one placemark per track, coloured through the
// palette in order.
func SerializeBatchKml(doc Document, tracks []BatchTrack) ([]byte, error) {
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}

	root := newRoot(doc)
	for i, t := range tracks {
		if len(t.Coords) == 0 {
			return nil, &EmptyGeometryError{Placemark: t.Name}
		}
		pc := Palette[i%len(Palette)]
		id := fmt.Sprintf("track%d", i+1)
		root.Document.Styles = append(root.Document.Styles, newStyle(id, LineStyle{Color: pc.Color, Width: FullTrackStyle.Width}))
		desc := fmt.Sprintf("Alle %d Punkte der Trasse (%s)", len(t.Coords), pc.Name)
		root.Document.Placemarks = append(root.Document.Placemarks, newPlacemark(t.Name, desc, id, t.Coords))
	}
	return encodeKml(root)
}

func newRoot(doc Document) kmlRoot {
	name := strings.TrimSpace(doc.Name)
	if name == "" {
		name = DefaultDocumentName
	}
	return kmlRoot{
		Xmlns:    kmlNamespace,
		Document: kmlDocument{Name: name, Description: doc.Description},
	}
}

func newStyle(id string, ls LineStyle) kmlStyle {
	return kmlStyle{ID: id, LineStyle: kmlLineStyle{Color: ls.Color, Width: ls.Width}}
}

func newPlacemark(name, desc, styleID string, coords []models.GeoCoordinate) kmlPlacemark {
	return kmlPlacemark{
		Name:        name,
		Description: desc,
		StyleURL:    "#" + styleID,
		LineString: kmlLineString{
			Tessellate:   1,
			AltitudeMode: "clampToGround",
			Coordinates:  coordinateList(coords),
		},
	}
}

// coordinateList joins "lon,lat,0" triples with single spaces.
func coordinateList(coords []models.GeoCoordinate) string {
	var sb strings.Builder
	for i, c := range coords {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.KMLTriple())
	}
	return sb.String()
}

func encodeKml(root kmlRoot) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encode kml: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
