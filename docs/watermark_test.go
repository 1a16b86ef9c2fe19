package docs

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeLogoPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 220, G: 60, B: 65, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err = png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func alphaAt(t *testing.T, img image.Image, x, y int) uint8 {
	t.Helper()
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA).A
}

func TestFindLogoFile(t *testing.T) {
	dir := t.TempDir()
	if _, found := FindLogoFile(dir); found {
		t.Fatalf("found a logo in an empty dir")
	}
	writeLogoPNG(t, filepath.Join(dir, "logo.jpeg"), 10, 10)
	writeLogoPNG(t, filepath.Join(dir, "logo.png"), 10, 10)
	path, found := FindLogoFile(dir)
	if !found {
		t.Fatalf("logo not found")
	}
	// first candidate wins
	if filepath.Base(path) != "logo.png" {
		t.Fatalf("picked %s, want logo.png", path)
	}
}

func TestDeriveWatermarkGeometryAndAlpha(t *testing.T) {
	dir := t.TempDir()
	logoPath := filepath.Join(dir, "logo.png")
	writeLogoPNG(t, logoPath, 700, 300) // downscales to 350x150

	pngBytes, err := DeriveWatermark(logoPath)
	if err != nil {
		t.Fatalf("DeriveWatermark: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatalf("decode derived watermark: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != WatermarkCanvasSize || b.Dy() != WatermarkCanvasSize {
		t.Fatalf("canvas = %dx%d, want %dx%d", b.Dx(), b.Dy(), WatermarkCanvasSize, WatermarkCanvasSize)
	}
	// center of the pasted logo: fully opaque source scaled down to 1/4 alpha
	if a := alphaAt(t, img, 200, 200); a != 255/watermarkAlphaDiv {
		t.Fatalf("center alpha = %d, want %d", a, 255/watermarkAlphaDiv)
	}
	// outside the 350x150 centered logo the canvas stays transparent
	if a := alphaAt(t, img, 200, 10); a != 0 {
		t.Fatalf("top band alpha = %d, want 0", a)
	}
	if a := alphaAt(t, img, 5, 200); a != 0 {
		t.Fatalf("left band alpha = %d, want 0", a)
	}
}

func TestDeriveWatermarkNeverUpscales(t *testing.T) {
	dir := t.TempDir()
	logoPath := filepath.Join(dir, "logo.png")
	writeLogoPNG(t, logoPath, 100, 80) // already under the 350 bound

	pngBytes, err := DeriveWatermark(logoPath)
	if err != nil {
		t.Fatalf("DeriveWatermark: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 100x80 centered: x in [150,250), y in [160,240)
	if a := alphaAt(t, img, 200, 200); a == 0 {
		t.Fatalf("logo missing at canvas center")
	}
	if a := alphaAt(t, img, 140, 200); a != 0 {
		t.Fatalf("logo bled outside its unscaled bounds (alpha=%d)", a)
	}
}

func TestDeriveWatermarkCorruptFile(t *testing.T) {
	dir := t.TempDir()
	badPath := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(badPath, []byte("not a png"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := DeriveWatermark(badPath)
	var aerr *AssetError
	if !errors.As(err, &aerr) {
		t.Fatalf("error = %v, want AssetError", err)
	}
}
