package cardart

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// Card background geometry, shared with the client apps.
const (
	canvasWidth  = 596
	canvasHeight = 363
	cornerRadius = 30
)

//go:embed overlay.png
var overlayPNG []byte

var (
	overlayOnce sync.Once
	overlayImg  image.Image
	overlayErr  error
)

func loadOverlay() (image.Image, error) {
	overlayOnce.Do(func() {
		overlayImg, overlayErr = png.Decode(bytes.NewReader(overlayPNG))
	})
	return overlayImg, overlayErr
}

// Render produces the PNG card background for a dominant color: a
// 596x363 canvas filled with the color, rounded corners left transparent,
// and the decorative overlay alpha-blended along the bottom edge.
// The color must validate as #RRGGBB; malformed input is rejected before
// any image work.
func Render(color string) ([]byte, error) {
	if err := ValidateColor(color); err != nil {
		return nil, err
	}

	overlay, err := loadOverlay()
	if err != nil {
		return nil, fmt.Errorf("decode overlay: %w", err)
	}

	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.DrawRoundedRectangle(0, 0, canvasWidth, canvasHeight, cornerRadius)
	dc.SetHexColor(color)
	dc.Fill()

	// Clip to the rounded shape so the overlay cannot bleed into the
	// transparent corners.
	dc.DrawRoundedRectangle(0, 0, canvasWidth, canvasHeight, cornerRadius)
	dc.Clip()
	overlay = fitOverlayWidth(overlay, canvasWidth)
	dc.DrawImage(overlay, 0, canvasHeight-overlay.Bounds().Dy())
	dc.ResetClip()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode card background: %w", err)
	}
	return buf.Bytes(), nil
}

// fitOverlayWidth scales the overlay to the canvas width, preserving its
// aspect ratio.
func fitOverlayWidth(img image.Image, width int) image.Image {
	b := img.Bounds()
	if b.Dx() == width {
		return img
	}
	height := b.Dy() * width / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
