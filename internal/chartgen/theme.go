package chartgen

import "github.com/slidegrove/analytics-engine/internal/model"

// palette holds the colors and typography an emitter reads from, keyed by
// the request's Theme. Chart.js/ApexCharts both accept plain CSS color
// strings, so there is nothing theme-specific about the library choice.
type palette struct {
	Colors     []string
	GridColor  string
	TextColor  string
	FontFamily string
}

var (
	professionalPalette = palette{
		Colors:     []string{"#2563eb", "#7c3aed", "#0891b2", "#059669", "#d97706", "#dc2626"},
		GridColor:  "#e5e7eb",
		TextColor:  "#1f2937",
		FontFamily: "Inter, sans-serif",
	}
	corporatePalette = palette{
		Colors:     []string{"#1e3a8a", "#374151", "#0f766e", "#92400e", "#991b1b", "#3730a3"},
		GridColor:  "#d1d5db",
		TextColor:  "#111827",
		FontFamily: "Georgia, serif",
	}
	vibrantPalette = palette{
		Colors:     []string{"#f43f5e", "#8b5cf6", "#06b6d4", "#22c55e", "#f59e0b", "#ec4899"},
		GridColor:  "#f3f4f6",
		TextColor:  "#0f172a",
		FontFamily: "Poppins, sans-serif",
	}
)

func paletteFor(theme model.Theme) palette {
	switch theme {
	case model.ThemeCorporate:
		return corporatePalette
	case model.ThemeVibrant:
		return vibrantPalette
	default:
		return professionalPalette
	}
}
