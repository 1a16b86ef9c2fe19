package fpdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"testing"

	"github.com/zeptools/pricequote/pdfs"
)

func producedPDF(t *testing.T, w *Writer) []byte {
	t.Helper()
	out, err := w.ProduceBytes()
	if err != nil {
		t.Fatalf("ProduceBytes: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output does not start with %%PDF- header")
	}
	return out
}

func TestWriterProducesPDFBytes(t *testing.T) {
	w := NewA4(false)
	if w.PaperSize().Name != "A4" || w.Orientation() != "P" {
		t.Fatalf("paper = %v %s, want A4 P", w.PaperSize(), w.Orientation())
	}
	w.AddBlankPage()
	w.SetFont("Helvetica", "B", 16)
	w.SetTextColor(pdfs.Color{R: 219, G: 61, B: 66})
	w.CenteredLine("FİYAT TEKLİFİ", 20)
	w.SetFont("Helvetica", "", 10)
	w.SetTextColor(pdfs.Black)
	w.Line("Tarih: 01/01/2026", 14)
	w.Paragraph("Fiyatlar kilogram bazında verilmiştir.", 13)
	producedPDF(t, w)
}

func TestWriterTableFlowsAcrossPages(t *testing.T) {
	w := NewA4(false)
	w.AddBlankPage()
	w.SetFont("Helvetica", "", 10)

	spec := pdfs.TableSpec{
		FontFamily: "Helvetica",
		FontSize:   9,
		CellPad:    8,
		ColWidths:  []float64{170, 99, 57, 99},
		Header:     []string{"Ürün Adı", "Birim Fiyat\n(KDV Hariç)", "KDV %", "Birim Fiyat\n(KDV Dahil)"},
		HeaderFill: pdfs.Color{R: 219, G: 61, B: 66},
		HeaderText: pdfs.White,
		AltRowFill: pdfs.Color{R: 255, G: 242, B: 242},
	}
	// enough rows to force at least one automatic page break
	for i := 0; i < 60; i++ {
		spec.Rows = append(spec.Rows, []string{
			fmt.Sprintf("Ürün %d", i+1), "100.00 TL/kg", "%20", "120.00 TL/kg",
		})
	}
	w.Table(spec)

	single := NewA4(false)
	single.AddBlankPage()
	single.SetFont("Helvetica", "", 10)
	short := spec
	short.Rows = spec.Rows[:2]
	single.Table(short)

	long := producedPDF(t, w)
	small := producedPDF(t, single)
	if len(long) <= len(small) {
		t.Fatalf("60-row table output (%d bytes) not larger than 2-row output (%d bytes)", len(long), len(small))
	}
}

func TestWriterWatermarkIsEmbedded(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 400, 400))
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}

	with := NewA4(false)
	with.SetPageWatermark(pngBuf.Bytes(), 400, 400)
	with.AddBlankPage()
	with.SetFont("Helvetica", "", 10)
	with.Line("content", 14)

	without := NewA4(false)
	without.AddBlankPage()
	without.SetFont("Helvetica", "", 10)
	without.Line("content", 14)

	a := producedPDF(t, with)
	b := producedPDF(t, without)
	if len(a) <= len(b) {
		t.Fatalf("watermarked output (%d bytes) not larger than plain output (%d bytes)", len(a), len(b))
	}
}

func TestWriterWriteToCountsBytes(t *testing.T) {
	w := NewA4(true)
	w.AddBlankPage()
	w.SetFont("Helvetica", "", 10)
	w.Line("hello", 14)
	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("WriteTo reported %d bytes, buffer has %d", n, buf.Len())
	}
}

func TestFoldToASCII(t *testing.T) {
	cases := []struct{ in, want string }{
		{"FİYAT TEKLİFİ", "FIYAT TEKLIFI"},
		{"Karabiber öğütülmüş", "Karabiber ogutulmus"},
		{"plain ascii", "plain ascii"},
		{"çÇğĞıİöÖşŞüÜ", "cCgGiIoOsSuU"},
	}
	for _, tc := range cases {
		if got := foldToASCII(tc.in); got != tc.want {
			t.Errorf("foldToASCII(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
