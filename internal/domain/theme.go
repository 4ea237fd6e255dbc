package domain

// Theme is the presentation preference of the storefront.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when no preference has been persisted.
const DefaultTheme = ThemeLight

// ParseTheme returns the theme for a stored raw value.
// Anything other than "light" or "dark" is rejected.
func ParseTheme(raw string) (Theme, bool) {
	switch Theme(raw) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return "", false
	}
}

// Opposite flips light to dark and dark to light.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
