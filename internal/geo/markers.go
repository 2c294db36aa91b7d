package geo

// Marker colors by safety rating, and the outline used for LGBTQ-owned
// businesses. The palette matches the product's map legend.
const (
	ColorSafe    = "#22c55e"
	ColorNeutral = "#f59e0b"
	ColorUnsafe  = "#ef4444"

	OutlineOwned   = "#a855f7"
	OutlineDefault = "#ffffff"
)

type MarkerStyle struct {
	Color   string `json:"color"`
	Outline string `json:"outline"`
}

// StyleFor maps a location's safety rating and ownership flag to its marker
// style. Unknown ratings render as neutral.
func StyleFor(safetyRating string, lgbtqOwned bool) MarkerStyle {
	style := MarkerStyle{Outline: OutlineDefault}

	switch safetyRating {
	case "safe":
		style.Color = ColorSafe
	case "unsafe":
		style.Color = ColorUnsafe
	default:
		style.Color = ColorNeutral
	}

	if lgbtqOwned {
		style.Outline = OutlineOwned
	}
	return style
}
