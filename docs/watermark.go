package docs

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	// WatermarkCanvasSize is the square canvas (and on-page draw size) in pt.
	WatermarkCanvasSize = 400
	// logo is downscaled so neither dimension exceeds this, never upscaled
	watermarkMaxLogo = 350
	// every pixel's alpha is multiplied by 1/4 to make the mark faint
	watermarkAlphaDiv = 4
)

// logoCandidates is the fixed ordered list of filenames probed for a
// watermark source; first match wins, absence is not an error.
var logoCandidates = []string{"logo.png", "logo.jpg", "logo.jpeg", "Logo.png", "LOGO.png"}

// FindLogoFile probes dir for a logo asset. dir == "" means the working dir.
func FindLogoFile(dir string) (string, bool) {
	for _, name := range logoCandidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// DeriveWatermark turns a logo file into faint watermark PNG bytes:
// decode, downscale within 350x350 preserving aspect ratio (Lanczos), center
// onto a 400x400 fully transparent canvas, then quarter every pixel's alpha.
// The result never touches disk.
func DeriveWatermark(path string) ([]byte, error) {
	src, err := imaging.Open(path)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	fitted := imaging.Fit(src, watermarkMaxLogo, watermarkMaxLogo, imaging.Lanczos)

	canvas := imaging.New(WatermarkCanvasSize, WatermarkCanvasSize, color.NRGBA{})
	composed := imaging.PasteCenter(canvas, fitted)
	for i := 3; i < len(composed.Pix); i += 4 {
		composed.Pix[i] /= watermarkAlphaDiv
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, composed, imaging.PNG); err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	return buf.Bytes(), nil
}
