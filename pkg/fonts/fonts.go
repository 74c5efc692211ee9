// Package fonts defines the library default font injected into rendering
// backends.
//
// Scales resolve their font as scale font, then gauge font, then the backend
// default. The backend default comes from here; nothing in the scale core
// refers to it directly.
package fonts

import (
	"strings"

	"github.com/matzehuels/gaugekit/pkg/gfx"
)

// FontFamily is the default family name.
const FontFamily = "Helvetica"

// FallbackFontFamily lists CSS fallbacks for the default family.
const FallbackFontFamily = `Helvetica, Arial, 'Liberation Sans', sans-serif`

// DefaultSize is the default font size in user units.
const DefaultSize = 10.0

// Default returns the library default font.
func Default() gfx.Font {
	return gfx.Font{Family: FontFamily, Size: DefaultSize, Weight: "normal", Color: "black"}
}

// CSSFamily returns a font-family value for family with the default
// fallbacks appended. The empty family yields the fallbacks alone.
func CSSFamily(family string) string {
	if family == "" || family == FontFamily {
		return FallbackFontFamily
	}
	if strings.ContainsAny(family, " ,") && !strings.HasPrefix(family, "'") {
		family = "'" + family + "'"
	}
	return family + ", " + FallbackFontFamily
}
