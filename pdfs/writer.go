package pdfs

import "io"

// Color - 8-bit RGB for text, fills and borders.
type Color struct {
	R int
	G int
	B int
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// TableSpec describes one tabular block. Header cells may contain "\n" for
// stacked labels. Data rows alternate between AltRowFill and white, starting
// with AltRowFill; all cells are drawn with a full grid.
type TableSpec struct {
	FontFamily string
	FontSize   float64
	CellPad    float64
	ColWidths  []float64 // pt, one per column
	Header     []string
	Rows       [][]string
	HeaderFill Color
	HeaderText Color
	AltRowFill Color
}

// Writer — minimal, stream-style, append-only PDF writer. No page navigation.
// T-independent counterpart of the template-based writers: content flows top
// to bottom, pages break automatically.
type Writer interface {
	PaperSize() PaperSize
	Orientation() string

	// SetPageWatermark registers PNG bytes to be drawn centered, behind the
	// content, on every page including pages opened by automatic breaks.
	// Must be called before the first page is added.
	SetPageWatermark(png []byte, width float64, height float64)

	AddBlankPage()

	SetFont(family string, style string, size float64)
	SetTextColor(c Color)

	CenteredLine(text string, lineHeight float64)
	Line(text string, lineHeight float64)
	Paragraph(text string, lineHeight float64)
	Space(h float64)

	Table(spec TableSpec)

	WriteTo(w io.Writer) (int64, error)
	WriteToFile(filepath string) error
	ProduceBytes() ([]byte, error)
}
