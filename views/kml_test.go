package views

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"tra2kml/models"
)

func coords(pairs ...float64) []models.GeoCoordinate {
	out := make([]models.GeoCoordinate, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.NewGeoCoordinate(pairs[i], pairs[i+1]))
	}
	return out
}

// parsed mirrors the document structure for read-back checks.
type parsed struct {
	XMLName  xml.Name `xml:"kml"`
	Document struct {
		Name       string `xml:"name"`
		Placemarks []struct {
			Name       string `xml:"name"`
			StyleURL   string `xml:"styleUrl"`
			LineString struct {
				Tessellate  int    `xml:"tessellate"`
				Coordinates string `xml:"coordinates"`
			} `xml:"LineString"`
		} `xml:"Placemark"`
		Styles []struct {
			ID    string `xml:"id,attr"`
			Color string `xml:"LineStyle>color"`
			Width int    `xml:"LineStyle>width"`
		} `xml:"Style"`
	} `xml:"Document"`
}

func parseKml(t *testing.T, data []byte) parsed {
	t.Helper()
	var p parsed
	if err := xml.Unmarshal(data, &p); err != nil {
		t.Fatalf("output is not well-formed XML: %v\n%s", err, data)
	}
	return p
}

func TestSerializeKml_TwoPlacemarks(t *testing.T) {
	full := coords(9.0, 50.0, 9.0, 50.0)
	selected := coords(9.1, 50.1, 9.1, 50.1)

	data, err := SerializeKml(full, selected)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "<?xml") {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(out, `xmlns="http://www.opengis.net/kml/2.2"`) {
		t.Error("missing KML namespace")
	}
	if n := strings.Count(out, "<Placemark>"); n != 2 {
		t.Errorf("found %d placemarks, want 2", n)
	}

	p := parseKml(t, data)
	pms := p.Document.Placemarks
	if len(pms) != 2 {
		t.Fatalf("parsed %d placemarks", len(pms))
	}
	if pms[0].Name != FullTrackName || pms[1].Name != SelectedTrackName {
		t.Errorf("placemark order = %q, %q", pms[0].Name, pms[1].Name)
	}
	if got := pms[0].LineString.Coordinates; got != "9.000000,50.000000,0 9.000000,50.000000,0" {
		t.Errorf("full coordinates = %q", got)
	}
	if got := pms[1].LineString.Coordinates; got != "9.100000,50.100000,0 9.100000,50.100000,0" {
		t.Errorf("selected coordinates = %q", got)
	}
	for _, pm := range pms {
		if pm.LineString.Tessellate != 1 {
			t.Errorf("%s: tessellate = %d", pm.Name, pm.LineString.Tessellate)
		}
	}
	if p.Document.Name != DefaultDocumentName {
		t.Errorf("document name = %q", p.Document.Name)
	}
}

func TestSerializeKml_Styles(t *testing.T) {
	data, err := SerializeKml(coords(9, 50, 9.1, 50.1), coords(9, 50))
	if err != nil {
		t.Fatal(err)
	}
	p := parseKml(t, data)

	styles := map[string]struct {
		color string
		width int
	}{}
	for _, s := range p.Document.Styles {
		styles[s.ID] = struct {
			color string
			width int
		}{s.Color, s.Width}
	}
	for _, pm := range p.Document.Placemarks {
		s, ok := styles[strings.TrimPrefix(pm.StyleURL, "#")]
		if !ok {
			t.Fatalf("%s: style %q not defined", pm.Name, pm.StyleURL)
		}
		want := FullTrackStyle
		if pm.Name == SelectedTrackName {
			want = SelectedTrackStyle
		}
		if s.color != want.Color || s.width != want.Width {
			t.Errorf("%s: style = %+v, want %+v", pm.Name, s, want)
		}
	}
}

func TestSerializeKml_Empty(t *testing.T) {
	tests := []struct {
		name          string
		full, sel     []models.GeoCoordinate
		wantPlacemark string
	}{
		{"no full", nil, coords(9, 50), FullTrackName},
		{"no selected", coords(9, 50), nil, SelectedTrackName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SerializeKml(tt.full, tt.sel)
			var ege *EmptyGeometryError
			if !errors.As(err, &ege) {
				t.Fatalf("err = %v, want *EmptyGeometryError", err)
			}
			if ege.Placemark != tt.wantPlacemark {
				t.Errorf("Placemark = %q, want %q", ege.Placemark, tt.wantPlacemark)
			}
		})
	}
}

func TestSerializeKmlDocument_Metadata(t *testing.T) {
	doc := Document{Name: "Strecke <A7> & B", Description: "Zone 3"}
	data, err := SerializeKmlDocument(doc, coords(9, 50), coords(9, 50))
	if err != nil {
		t.Fatal(err)
	}
	if p := parseKml(t, data); p.Document.Name != doc.Name {
		t.Errorf("document name = %q, want %q", p.Document.Name, doc.Name)
	}
	out := string(data)
	for _, want := range []string{"Zone 3", "Alle 1 Punkte der Trasse", "Ausgewählte 1 Punkte", "clampToGround"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
}

func TestSerializeBatchKml(t *testing.T) {
	var tracks []BatchTrack
	for i := 0; i < 12; i++ {
		tracks = append(tracks, BatchTrack{Name: string(rune('A' + i)), Coords: coords(9, 50, 9.01, 50.01)})
	}
	data, err := SerializeBatchKml(Document{Name: "Batch"}, tracks)
	if err != nil {
		t.Fatal(err)
	}
	p := parseKml(t, data)
	if len(p.Document.Placemarks) != 12 || len(p.Document.Styles) != 12 {
		t.Fatalf("placemarks=%d styles=%d, want 12", len(p.Document.Placemarks), len(p.Document.Styles))
	}
	if p.Document.Styles[0].Color != Palette[0].Color || p.Document.Styles[2].Color != Palette[2].Color {
		t.Errorf("palette not applied in order")
	}
	if p.Document.Styles[10].Color != Palette[0].Color {
		t.Errorf("palette should wrap, got %q", p.Document.Styles[10].Color)
	}
	for i, pm := range p.Document.Placemarks {
		if pm.Name != tracks[i].Name {
			t.Errorf("placemark %d = %q, want %q", i, pm.Name, tracks[i].Name)
		}
	}
}

func TestSerializeBatchKml_Errors(t *testing.T) {
	if _, err := SerializeBatchKml(Document{}, nil); !errors.Is(err, ErrNoTracks) {
		t.Errorf("err = %v, want ErrNoTracks", err)
	}
	_, err := SerializeBatchKml(Document{}, []BatchTrack{{Name: "ok", Coords: coords(9, 50)}, {Name: "leer"}})
	var ege *EmptyGeometryError
	if !errors.As(err, &ege) || ege.Placemark != "leer" {
		t.Errorf("err = %v, want EmptyGeometryError for %q", err, "leer")
	}
}
