// Package theme holds the colour themes and the per-visitor theme state.
package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomz197/portfolio/internal/draw"
)

// PrefKey is the preference key the selected theme is stored under.
const PrefKey = "portfolio-theme"

// ErrUnknownTheme is returned for names outside the theme table.
var ErrUnknownTheme = errors.New("unknown theme")

// Name identifies a theme.
type Name string

const (
	Alien  Name = "alien"
	Cosmic Name = "cosmic"
	Matrix Name = "matrix"

	Default = Alien
)

// order is the toggle order.
var order = []Name{Alien, Cosmic, Matrix}

// Palette is the set of colours a theme defines.
type Palette struct {
	Primary    draw.Color
	Secondary  draw.Color
	Accent     draw.Color
	Background draw.Color
	Glow       draw.Color // primary at half alpha
}

func palette(primary, secondary, accent, bg string) Palette {
	p := draw.MustHex(primary)
	return Palette{
		Primary:    p,
		Secondary:  draw.MustHex(secondary),
		Accent:     draw.MustHex(accent),
		Background: draw.MustHex(bg),
		Glow:       p.WithAlpha(0x80 / 255.0),
	}
}

var palettes = map[Name]Palette{
	Alien:  palette("#00ff88", "#ff00ff", "#00ffff", "#0a0a1a"),
	Cosmic: palette("#8b5cf6", "#ec4899", "#06b6d4", "#0f0f23"),
	Matrix: palette("#00ff00", "#00cc00", "#00ff88", "#000000"),
}

var icons = map[Name]string{
	Alien:  "👽",
	Cosmic: "🌌",
	Matrix: "💚",
}

// Parse validates a theme name.
func Parse(s string) (Name, error) {
	n := Name(s)
	if _, ok := palettes[n]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
	return n, nil
}

// Lookup returns the palette of a theme.
func Lookup(n Name) (Palette, bool) {
	p, ok := palettes[n]
	return p, ok
}

// Names returns every theme in toggle order.
func Names() []Name {
	return append([]Name(nil), order...)
}

// Icon returns the toggle button icon for a theme.
func Icon(n Name) string {
	if s, ok := icons[n]; ok {
		return s
	}
	return "🎨"
}

// Title returns the display title, e.g. "Cosmic".
func Title(n Name) string {
	if n == "" {
		return ""
	}
	s := string(n)
	return strings.ToUpper(s[:1]) + s[1:]
}
