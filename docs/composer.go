package docs

import (
	"fmt"
	"log"
	"time"

	"github.com/zeptools/pricequote/pdfs"
	"github.com/zeptools/pricequote/pdfs/impls/fpdf"
	"github.com/zeptools/pricequote/quote"
)

const (
	fontFamily      = "Helvetica" // bundled core font, no runtime fetch
	docTitle        = "FİYAT TEKLİFİ"
	customerHeading = "SAYIN"
	tableHeading    = "FİYAT LİSTESİ (Kilogram Bazında)"
	unitSuffix      = " TL/kg"

	defaultQuotePrefix = "BLD"
)

var notesLines = []string{
	"• Fiyatlar Türk Lirası cinsindendir.",
	"• Fiyatlar kilogram bazında verilmiştir.",
	"• Minimum sipariş miktarları için ayrıca bilgi verilecektir.",
	"• Teslim süresi sipariş onayından sonra belirlenecektir.",
}

var (
	brandRed = pdfs.Color{R: 219, G: 61, B: 66}
	paleRed  = pdfs.Color{R: 255, G: 242, B: 242}
)

// Composer turns a frozen quote snapshot into a paginated PDF document.
// Watermark problems degrade to "no watermark"; everything else that keeps a
// correct document from being produced is a CompositionError.
type Composer struct {
	Conf Conf

	// NewWriter builds a fresh output writer per composition
	NewWriter func() pdfs.Writer

	nums numberGenerator
}

func NewComposer(conf Conf) *Composer {
	if conf.QuotePrefix == "" {
		conf.QuotePrefix = defaultQuotePrefix
	}
	return &Composer{
		Conf: conf,
		NewWriter: func() pdfs.Writer {
			return fpdf.NewA4(conf.AsciiFold)
		},
	}
}

// Compose renders the snapshot. Deterministic given identical inputs except
// for the embedded generation timestamp and quote number.
func (c *Composer) Compose(snap quote.Snapshot, now time.Time) (*Document, error) {
	if len(snap.Items) == 0 {
		return nil, &CompositionError{Reason: "quote has no line items"}
	}
	if snap.Customer.CompanyBlank() {
		return nil, &CompositionError{Reason: "customer company is blank"}
	}

	w := c.NewWriter()
	c.applyWatermark(w)

	quoteNo := c.nums.next(c.Conf.QuotePrefix, now)

	w.AddBlankPage()

	// company header + document title
	w.SetFont(fontFamily, "B", 16)
	w.SetTextColor(brandRed)
	w.CenteredLine(c.Conf.CompanyLegalName, 20)
	w.Space(12)
	w.SetFont(fontFamily, "B", 18)
	w.CenteredLine(docTitle, 22)
	w.Space(16)

	// issue date + quote number
	w.SetFont(fontFamily, "", 10)
	w.SetTextColor(pdfs.Black)
	w.Line("Tarih: "+now.Format("02/01/2006"), 14)
	w.Line("Teklif No: "+quoteNo, 14)
	w.Space(14)

	// addressed-to block
	w.SetFont(fontFamily, "B", 12)
	w.SetTextColor(brandRed)
	w.Line(customerHeading, 16)
	w.SetFont(fontFamily, "", 10)
	w.SetTextColor(pdfs.Black)
	w.Line(snap.Customer.Company, 14)
	if snap.Customer.Contact != "" {
		w.Line("Att: "+snap.Customer.Contact, 14)
	}
	w.Space(14)

	// price table
	w.SetFont(fontFamily, "B", 12)
	w.SetTextColor(brandRed)
	w.Line(tableHeading, 16)
	w.Space(8)
	w.Table(priceTable(snap.Items))
	w.Space(18)

	// fixed notes block
	w.SetFont(fontFamily, "B", 10)
	w.SetTextColor(pdfs.Black)
	w.Line("NOTLAR:", 13)
	w.SetFont(fontFamily, "", 10)
	for _, line := range notesLines {
		w.Line(line, 13)
	}
	w.Space(18)

	// static sender block
	w.SetFont(fontFamily, "B", 10)
	w.Line(c.Conf.SenderName, 13)
	w.SetFont(fontFamily, "", 10)
	if c.Conf.SenderTitle != "" {
		w.Line(c.Conf.SenderTitle, 13)
	}
	if c.Conf.Phone != "" {
		w.Line("Tel: "+c.Conf.Phone, 13)
	}
	if c.Conf.Email != "" {
		w.Line("E-posta: "+c.Conf.Email, 13)
	}

	out, err := w.ProduceBytes()
	if err != nil {
		return nil, &CompositionError{Reason: fmt.Sprintf("rendering failed: %v", err)}
	}
	return &Document{
		ID:        quoteNo,
		Filename:  "quote_" + now.Format("20060102_1504") + ".pdf",
		Bytes:     out,
		Revision:  snap.Revision,
		CreatedAt: now,
	}, nil
}

// applyWatermark wires the derived logo watermark into the writer when a logo
// asset exists. Any failure here only costs the watermark, never the document.
func (c *Composer) applyWatermark(w pdfs.Writer) {
	logoPath, found := FindLogoFile(c.Conf.LogoDir)
	if !found {
		return
	}
	png, err := DeriveWatermark(logoPath)
	if err != nil {
		log.Printf("[WARN][DOCS] watermark skipped: %v", err)
		return
	}
	w.SetPageWatermark(png, WatermarkCanvasSize, WatermarkCanvasSize)
}

func priceTable(items []quote.LineItem) pdfs.TableSpec {
	spec := pdfs.TableSpec{
		FontFamily: fontFamily,
		FontSize:   9,
		CellPad:    8,
		ColWidths:  []float64{170, 99, 57, 99}, // 6 / 3.5 / 2 / 3.5 cm
		Header: []string{
			"Ürün Adı",
			"Birim Fiyat\n(KDV Hariç)",
			"KDV %",
			"Birim Fiyat\n(KDV Dahil)",
		},
		HeaderFill: brandRed,
		HeaderText: pdfs.White,
		AltRowFill: paleRed,
	}
	for _, item := range items {
		spec.Rows = append(spec.Rows, []string{
			item.Name,
			item.UnitPrice.StringFixed(2) + unitSuffix,
			"%" + item.VATRate.Round(0).String(),
			item.VATPrice.StringFixed(2) + unitSuffix,
		})
	}
	return spec
}
