package docs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeptools/pricequote/quote"
)

func testSnapshot(t *testing.T) quote.Snapshot {
	t.Helper()
	st := quote.NewState()
	st.SetCustomer(quote.CustomerInfo{Company: "Örnek Gıda A.Ş.", Contact: "Ayşe Yılmaz"})
	if _, err := st.Add("Un Tip 650", decimal.RequireFromString("24.50"), decimal.RequireFromString("1")); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	if _, err := st.Add("Şeker", decimal.RequireFromString("31.00"), decimal.RequireFromString("20")); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return st.Snapshot()
}

func testComposer(t *testing.T) *Composer {
	t.Helper()
	return NewComposer(Conf{
		CompanyLegalName: "BALADEZ GIDA SAN. TİC. LTD. ŞTİ.",
		SenderName:       "Mehmet Demir",
		SenderTitle:      "Satış Müdürü",
		Phone:            "+90 555 000 00 00",
		Email:            "satis@example.com",
		LogoDir:          t.TempDir(), // empty: no watermark
	})
}

func TestComposePreconditions(t *testing.T) {
	c := testComposer(t)
	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	empty := quote.NewState()
	empty.SetCustomer(quote.CustomerInfo{Company: "Örnek Gıda A.Ş."})
	doc, err := c.Compose(empty.Snapshot(), now)
	var cerr *CompositionError
	if !errors.As(err, &cerr) {
		t.Fatalf("no-items error = %v, want CompositionError", err)
	}
	if doc != nil {
		t.Fatalf("no-items compose returned a document")
	}

	noCompany := testSnapshot(t)
	noCompany.Customer.Company = "   "
	if _, err = c.Compose(noCompany, now); !errors.As(err, &cerr) {
		t.Fatalf("blank-company error = %v, want CompositionError", err)
	}
}

func TestComposeProducesDocument(t *testing.T) {
	c := testComposer(t)
	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	snap := testSnapshot(t)

	doc, err := c.Compose(snap, now)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !bytes.HasPrefix(doc.Bytes, []byte("%PDF-")) {
		t.Fatalf("document does not start with a PDF header")
	}
	if doc.ID != "BLD-20260115-1030" {
		t.Fatalf("ID = %q", doc.ID)
	}
	if doc.Filename != "quote_20260115_1030.pdf" {
		t.Fatalf("Filename = %q", doc.Filename)
	}
	if doc.Revision != snap.Revision {
		t.Fatalf("Revision = %d, want %d", doc.Revision, snap.Revision)
	}
	if !doc.CreatedAt.Equal(now) {
		t.Fatalf("CreatedAt = %v", doc.CreatedAt)
	}
}

func TestComposeQuoteNumberCollision(t *testing.T) {
	c := testComposer(t)
	snap := testSnapshot(t)
	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	first, err := c.Compose(snap, now)
	if err != nil {
		t.Fatalf("first Compose: %v", err)
	}
	second, err := c.Compose(snap, now.Add(20*time.Second))
	if err != nil {
		t.Fatalf("second Compose: %v", err)
	}
	if first.ID != "BLD-20260115-1030" || second.ID != "BLD-20260115-1030-2" {
		t.Fatalf("IDs = %q, %q", first.ID, second.ID)
	}

	later, err := c.Compose(snap, now.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("later Compose: %v", err)
	}
	if later.ID != "BLD-20260115-1032" {
		t.Fatalf("minute rollover ID = %q", later.ID)
	}
}

func TestComposeWithWatermarkLogo(t *testing.T) {
	dir := t.TempDir()
	writeLogoPNG(t, filepath.Join(dir, "logo.png"), 400, 400)

	c := testComposer(t)
	plain, err := c.Compose(testSnapshot(t), time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("plain Compose: %v", err)
	}

	c.Conf.LogoDir = dir
	marked, err := c.Compose(testSnapshot(t), time.Date(2026, 1, 15, 10, 31, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("watermarked Compose: %v", err)
	}
	if len(marked.Bytes) <= len(plain.Bytes) {
		t.Fatalf("watermarked doc (%d bytes) not larger than plain (%d bytes)", len(marked.Bytes), len(plain.Bytes))
	}
}

func TestComposeCorruptLogoDegrades(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), []byte("garbage"), 0644); err != nil {
		t.Fatalf("write corrupt logo: %v", err)
	}
	c := testComposer(t)
	c.Conf.LogoDir = dir
	doc, err := c.Compose(testSnapshot(t), time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Compose with corrupt logo: %v", err)
	}
	if !bytes.HasPrefix(doc.Bytes, []byte("%PDF-")) {
		t.Fatalf("document missing PDF header")
	}
}
