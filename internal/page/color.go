package page

import (
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// HexColor normalizes a computed CSS color such as "rgba(255, 0, 0, 1)",
// "rgb(255,0,0)", "#ff0000" or "red" to upper-case "#RRGGBB". Alpha is dropped.
func HexColor(css string) (string, error) {
	c, err := csscolorparser.Parse(strings.TrimSpace(css))
	if err != nil {
		return "", fmt.Errorf("unrecognized color %q: %w", css, err)
	}
	r, g, b, _ := c.RGBA255()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b), nil
}
