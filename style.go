package lamina

import (
	"fmt"
	"strings"

	"github.com/laminaui/lamina/scene"
)

// Color is a packed 0xRRGGBBAA value.
type Color uint32

// RGB packs opaque component bytes.
func RGB(r, g, b uint8) Color {
	return Color(r)<<24 | Color(g)<<16 | Color(b)<<8 | 0xff
}

// RGBA returns the components as 0..1 floats, the form renderers want.
func (c Color) RGBA() (r, g, b, a float32) {
	return float32(c>>24&0xff) / 255,
		float32(c>>16&0xff) / 255,
		float32(c>>8&0xff) / 255,
		float32(c&0xff) / 255
}

// Bytes returns the raw component bytes.
func (c Color) Bytes() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Style is the resolved form of a utility class string.
type Style struct {
	Fill    Color
	HasFill bool
	Size    scene.Vec2 // zero means the class string did not size the node
	Hidden  bool
	Clip    bool
}

// ParseStyle resolves a space-separated utility class string:
//
//	bg-<name>       named fill (see palette)
//	bg-[#rgb] bg-[#rrggbb] bg-[#rrggbbaa]
//	w-<n> h-<n>     sizing on the 4px scale (w-16 is 64px)
//	w-[v] h-[v]     arbitrary pixel values, optional px suffix
//	hidden clip     node flags
//
// Unlike a browser stylesheet there is no cascade to absorb typos, so
// unknown classes and malformed values are errors.
func ParseStyle(classes string) (Style, error) {
	var s Style
	for _, class := range strings.Fields(classes) {
		switch {
		case class == "hidden":
			s.Hidden = true
		case class == "clip":
			s.Clip = true
		case strings.HasPrefix(class, "bg-"):
			c, err := parseFill(strings.TrimPrefix(class, "bg-"))
			if err != nil {
				return Style{}, fmt.Errorf("class %q: %w", class, err)
			}
			s.Fill, s.HasFill = c, true
		case strings.HasPrefix(class, "w-"):
			v, err := parseDimension(strings.TrimPrefix(class, "w-"))
			if err != nil {
				return Style{}, fmt.Errorf("class %q: %w", class, err)
			}
			s.Size.X = v
		case strings.HasPrefix(class, "h-"):
			v, err := parseDimension(strings.TrimPrefix(class, "h-"))
			if err != nil {
				return Style{}, fmt.Errorf("class %q: %w", class, err)
			}
			s.Size.Y = v
		default:
			return Style{}, fmt.Errorf("unknown class %q", class)
		}
	}
	return s, nil
}

// parseFill resolves the value part of a bg- class: a palette name, or an
// arbitrary [#hex] value.
func parseFill(value string) (Color, error) {
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		return parseHex(value[1 : len(value)-1])
	}
	if c, ok := palette[value]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("unknown color %q", value)
}

// parseHex parses #rgb, #rrggbb, and #rrggbbaa.
func parseHex(value string) (Color, error) {
	hex, ok := strings.CutPrefix(value, "#")
	if !ok {
		return 0, fmt.Errorf("color %q is not a #hex value", value)
	}
	// Expand shorthand: #rgb → #rrggbb.
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	var r, g, b, a uint32
	switch len(hex) {
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return 0, fmt.Errorf("malformed color %q", value)
		}
		a = 0xff
	case 8:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return 0, fmt.Errorf("malformed color %q", value)
		}
	default:
		return 0, fmt.Errorf("malformed color %q", value)
	}
	return Color(r<<24 | g<<16 | b<<8 | a), nil
}

// parseDimension parses the value part of a w-/h- class: a bare scale
// step (4px units) or an arbitrary [pixel] value.
func parseDimension(value string) (float32, error) {
	arbitrary := false
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		value = strings.TrimSuffix(value[1:len(value)-1], "px")
		arbitrary = true
	}
	var v float32
	if _, err := fmt.Sscanf(value, "%f", &v); err != nil || v < 0 {
		return 0, fmt.Errorf("malformed dimension %q", value)
	}
	if !arbitrary {
		v *= 4
	}
	return v, nil
}

// palette is the named fill set, hex values matching the Tailwind 500
// row plus the common dark neutrals.
var palette = map[string]Color{
	"white":       0xffffffff,
	"black":       0x000000ff,
	"transparent": 0x00000000,

	"slate-500":   0x64748bff,
	"slate-800":   0x1e293bff,
	"slate-900":   0x0f172aff,
	"gray-500":    0x6b7280ff,
	"zinc-800":    0x27272aff,
	"neutral-900": 0x171717ff,

	"red-500":     0xef4444ff,
	"orange-500":  0xf97316ff,
	"amber-500":   0xf59e0bff,
	"yellow-500":  0xeab308ff,
	"lime-500":    0x84cc16ff,
	"green-500":   0x22c55eff,
	"emerald-500": 0x10b981ff,
	"teal-500":    0x14b8a6ff,
	"cyan-500":    0x06b6d4ff,
	"sky-500":     0x0ea5e9ff,
	"blue-500":    0x3b82f6ff,
	"indigo-500":  0x6366f1ff,
	"violet-500":  0x8b5cf6ff,
	"purple-500":  0xa855f7ff,
	"fuchsia-500": 0xd946efff,
	"pink-500":    0xec4899ff,
	"rose-500":    0xf43f5eff,
}
