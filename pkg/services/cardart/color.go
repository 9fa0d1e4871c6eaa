package cardart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"regexp"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/cenkalti/dominantcolor"
)

// ErrInvalidColor marks a color string that is not of the #RRGGBB form.
var ErrInvalidColor = errors.New("invalid color format, expected a hex color code (e.g., #FFFFFF)")

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateColor checks the 7-character #RRGGBB shape before any image
// processing happens.
func ValidateColor(color string) error {
	if !hexColorPattern.MatchString(color) {
		return fmt.Errorf("%w: got %q", ErrInvalidColor, color)
	}
	return nil
}

// DominantColor extracts the most representative color from an encoded
// image via color quantization and returns it as a #RRGGBB hex string.
func DominantColor(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode logo image: %w", err)
	}
	c := dominantcolor.Find(img)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
}
