package fpdf

import (
	"bytes"
	"io"
	"strings"

	lowimpl "github.com/jung-kurt/gofpdf"

	"github.com/zeptools/pricequote/pdfs"
	"github.com/zeptools/pricequote/rw"
)

const (
	pageMargin       = 56.7 // 2 cm in pt
	watermarkImgName = "page-watermark"
	turkishCodepage  = "cp1254"
)

type Writer struct {
	paperSize   pdfs.PaperSize
	orientation string
	translate   func(string) string

	// implementation details, not exported
	internal *lowimpl.Fpdf
}

// Ensure fpdf.Writer implements pdfs.Writer interface
var _ pdfs.Writer = (*Writer)(nil)

// NewA4 builds a portrait A4 writer working in pt units with 2cm margins.
// Turkish text is translated to cp1254 bytes for the built-in core fonts.
// Those fonts carry WinAnsi glyphs, so ç/ö/ü come out exact while ğ/ş/ı/İ
// degrade to lookalikes; set asciiFold to fold everything non-Latin to
// ASCII when that degradation is not acceptable.
func NewA4(asciiFold bool) *Writer {
	pdf := lowimpl.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	w := &Writer{
		paperSize:   pdfs.A4Size,
		orientation: "P",
		internal:    pdf,
	}
	if asciiFold {
		w.translate = foldToASCII
	} else {
		w.translate = pdf.UnicodeTranslatorFromDescriptor(turkishCodepage)
	}
	return w
}

func (w *Writer) PaperSize() pdfs.PaperSize {
	return w.paperSize
}

func (w *Writer) Orientation() string {
	return w.orientation
}

// SetPageWatermark registers the PNG and hooks it into the page-open callback,
// so it is painted first (under all content) on every page, including pages
// opened by automatic breaks.
func (w *Writer) SetPageWatermark(png []byte, width float64, height float64) {
	opts := lowimpl.ImageOptions{ImageType: "PNG"}
	w.internal.RegisterImageOptionsReader(watermarkImgName, opts, bytes.NewReader(png))
	pageW, pageH := w.internal.GetPageSize()
	x := (pageW - width) / 2
	y := (pageH - height) / 2
	w.internal.SetHeaderFuncMode(func() {
		w.internal.ImageOptions(watermarkImgName, x, y, width, height, false, opts, 0, "")
	}, true)
}

func (w *Writer) AddBlankPage() {
	w.internal.AddPage()
}

func (w *Writer) SetFont(family string, style string, size float64) {
	w.internal.SetFont(family, style, size)
}

func (w *Writer) SetTextColor(c pdfs.Color) {
	w.internal.SetTextColor(c.R, c.G, c.B)
}

func (w *Writer) CenteredLine(text string, lineHeight float64) {
	w.internal.CellFormat(0, lineHeight, w.translate(text), "", 1, "C", false, 0, "")
}

func (w *Writer) Line(text string, lineHeight float64) {
	w.internal.CellFormat(0, lineHeight, w.translate(text), "", 1, "L", false, 0, "")
}

func (w *Writer) Paragraph(text string, lineHeight float64) {
	w.internal.MultiCell(0, lineHeight, w.translate(text), "", "L", false)
}

func (w *Writer) Space(h float64) {
	w.internal.Ln(h)
}

// Table draws the header row (fill + contrasting text, stacked labels
// supported) followed by single-line data rows with alternating fills and a
// full grid. Rows flow across automatic page breaks.
func (w *Writer) Table(spec pdfs.TableSpec) {
	pdf := w.internal
	lineH := spec.FontSize + 2
	rowH := lineH + 2*spec.CellPad

	// header: all cells share the height of the tallest stacked label
	headerLines := make([][]string, len(spec.Header))
	maxLines := 1
	for i, h := range spec.Header {
		headerLines[i] = strings.Split(h, "\n")
		if n := len(headerLines[i]); n > maxLines {
			maxLines = n
		}
	}
	headerH := float64(maxLines)*lineH + 2*spec.CellPad

	pdf.SetFont(spec.FontFamily, "B", spec.FontSize)
	pdf.SetFillColor(spec.HeaderFill.R, spec.HeaderFill.G, spec.HeaderFill.B)
	pdf.SetTextColor(spec.HeaderText.R, spec.HeaderText.G, spec.HeaderText.B)
	pdf.SetDrawColor(0, 0, 0)

	x0, y0 := pdf.GetX(), pdf.GetY()
	x := x0
	for i, lines := range headerLines {
		colW := spec.ColWidths[i]
		pdf.SetXY(x, y0)
		pdf.CellFormat(colW, headerH, "", "1", 0, "", true, 0, "")
		// overlay the label lines, vertically centered
		textY := y0 + (headerH-float64(len(lines))*lineH)/2
		pdf.SetXY(x, textY)
		for _, line := range lines {
			pdf.CellFormat(colW, lineH, w.translate(line), "", 2, "C", false, 0, "")
		}
		x += colW
	}
	pdf.SetXY(x0, y0+headerH)

	// data rows
	pdf.SetFont(spec.FontFamily, "", spec.FontSize)
	pdf.SetTextColor(0, 0, 0)
	for ri, row := range spec.Rows {
		if ri%2 == 0 {
			pdf.SetFillColor(spec.AltRowFill.R, spec.AltRowFill.G, spec.AltRowFill.B)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for ci, cell := range row {
			pdf.CellFormat(spec.ColWidths[ci], rowH, w.translate(cell), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	cw := rw.NewCountWriter(out)
	if err := w.internal.Output(cw); err != nil {
		return cw.BytesWritten(), err
	}
	return cw.BytesWritten(), nil
}

func (w *Writer) WriteToFile(filepath string) error {
	return w.internal.OutputFileAndClose(filepath)
}

func (w *Writer) ProduceBytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
