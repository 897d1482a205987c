package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

// HexToRGBA converts "#RGB" or "#RRGGBB" (leading # optional) into a CSS
// rgba() string. Alpha is clamped to [0, 1].
func HexToRGBA(hex string, alpha float64) (string, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	switch {
	case alpha < 0:
		alpha = 0
	case alpha > 1:
		alpha = 1
	}

	r, g, b := (v>>16)&0xff, (v>>8)&0xff, v&0xff
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64)), nil
}

// ValidHexColor reports whether s is accepted by HexToRGBA.
func ValidHexColor(s string) bool {
	_, err := HexToRGBA(s, 1)
	return err == nil
}
