package views

import (
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/skypies/geo"

	"tra2kml/models"
)

// The preview frame is from NW(10,20) to SE(287,200) on A4 landscape.
var (
	PreviewFrameX      = 10.0
	PreviewFrameY      = 20.0
	PreviewFrameWidth  = 277.0
	PreviewFrameHeight = 180.0
)

// PreviewSheet describes one preview page.
type PreviewSheet struct {
	Title    string
	Subtitle string
	Bounds   geo.LatlongBox
	Full     []models.GeoCoordinate
	Selected []models.GeoCoordinate
}

// previewMapper maps WGS 84 positions into the frame, equirectangular with
// longitudes shortened by the cosine of the mid latitude so shapes keep
// their aspect.
type previewMapper struct {
	box    geo.LatlongBox
	kx     float64
	scale  float64
	ox, oy float64
}

func newPreviewMapper(box geo.LatlongBox) previewMapper {
	midLat := (box.SW.Lat + box.NE.Lat) / 2
	kx := math.Cos(midLat * math.Pi / 180)
	w := (box.NE.Long - box.SW.Long) * kx
	h := box.NE.Lat - box.SW.Lat
	if w <= 0 {
		w = 1e-9
	}
	if h <= 0 {
		h = 1e-9
	}

	scale := math.Min(PreviewFrameWidth/w, PreviewFrameHeight/h)
	return previewMapper{
		box:   box,
		kx:    kx,
		scale: scale,
		ox:    PreviewFrameX + (PreviewFrameWidth-w*scale)/2,
		oy:    PreviewFrameY + (PreviewFrameHeight-h*scale)/2,
	}
}

func (m previewMapper) xy(c models.GeoCoordinate) (float64, float64) {
	x := m.ox + (c.Long-m.box.SW.Long)*m.kx*m.scale
	y := m.oy + (m.box.NE.Lat-c.Lat)*m.scale // In PDF, the Y scale goes down the page
	return x, y
}

func drawPreviewFrame(pdf *gofpdf.Fpdf) {
	pdf.SetDrawColor(0x00, 0x00, 0x00)
	pdf.SetLineWidth(0.3)
	pdf.Rect(PreviewFrameX, PreviewFrameY, PreviewFrameWidth, PreviewFrameHeight, "D")
}

func drawPolyline(pdf *gofpdf.Fpdf, m previewMapper, coords []models.GeoCoordinate, rgb [3]int, width float64) {
	if len(coords) < 2 {
		return
	}
	pdf.SetDrawColor(rgb[0], rgb[1], rgb[2])
	pdf.SetLineWidth(width)
	for i := range coords[1:] {
		x1, y1 := m.xy(coords[i])
		x2, y2 := m.xy(coords[i+1])
		pdf.Line(x1, y1, x2, y2)
	}
}

// RenderPreviewPDF draws the full track in red and the selected track in
// green inside the sheet's bounding box.
func RenderPreviewPDF(w io.Writer, sheet PreviewSheet) error {
	if len(sheet.Full) == 0 {
		return &EmptyGeometryError{Placemark: FullTrackName}
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(sheet.Title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Text(PreviewFrameX, 12, tr(sheet.Title))
	pdf.SetFont("Arial", "", 9)
	pdf.Text(PreviewFrameX, 17, tr(sheet.Subtitle))

	drawPreviewFrame(pdf)
	m := newPreviewMapper(sheet.Bounds)
	drawPolyline(pdf, m, sheet.Full, [3]int{0xff, 0x00, 0x00}, 0.8)
	drawPolyline(pdf, m, sheet.Selected, [3]int{0x00, 0xb0, 0x00}, 0.5)

	legendY := PreviewFrameY + PreviewFrameHeight + 6
	pdf.SetTextColor(0xff, 0x00, 0x00)
	pdf.Text(PreviewFrameX, legendY, tr(fmt.Sprintf("%s (%d Punkte)", FullTrackName, len(sheet.Full))))
	pdf.SetTextColor(0x00, 0xb0, 0x00)
	pdf.Text(PreviewFrameX+90, legendY, tr(fmt.Sprintf("%s (%d Punkte)", SelectedTrackName, len(sheet.Selected))))
	pdf.SetTextColor(0x00, 0x00, 0x00)
	pdf.Text(PreviewFrameX+180, legendY, fmt.Sprintf("SW %.5f, %.5f  NE %.5f, %.5f",
		sheet.Bounds.SW.Lat, sheet.Bounds.SW.Long, sheet.Bounds.NE.Lat, sheet.Bounds.NE.Long))

	return pdf.Output(w)
}
