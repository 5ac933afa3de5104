package attributes

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-drift/engine/pkg/graphics"
	"github.com/go-drift/engine/pkg/layer"
)

// GradientAngle is the 8-way angle enum linear-gradient snaps to, in π/4
// steps clockwise from top-to-bottom, per spec §4.9.2.
type GradientAngle int

const (
	AngleToBottom GradientAngle = iota
	AngleToBottomRight
	AngleToRight
	AngleToTopRight
	AngleToTop
	AngleToTopLeft
	AngleToLeft
	AngleToBottomLeft
)

// mirroredAngle is the RTL postprocessor's horizontal-mirror table, per
// spec §4.9.2: "background/textGradient mirrors the angle enum
// horizontally."
var mirroredAngle = map[GradientAngle]GradientAngle{
	AngleToBottom:      AngleToBottom,
	AngleToBottomRight: AngleToBottomLeft,
	AngleToRight:       AngleToLeft,
	AngleToTopRight:    AngleToTopLeft,
	AngleToTop:         AngleToTop,
	AngleToTopLeft:     AngleToTopRight,
	AngleToLeft:        AngleToRight,
	AngleToBottomLeft:  AngleToBottomRight,
}

// GradientValue is the preprocessed/applied shape for background/
// textGradient: emits [colors[], locations[], angle-enum, radial?] per
// spec §4.9.2.
type GradientValue struct {
	Colors    []graphics.Color
	Locations []float64
	Angle     GradientAngle
	Radial    bool
}

// ParseColor parses a CSS-style color: #rgb, #rgba, #rrggbb, #rrggbbaa, or
// rgb()/rgba() function notation. Named palette lookups are the host's
// responsibility (this core has no palette registry); an unrecognized name
// is a parse error.
func ParseColor(s string) (graphics.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	if strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb(") {
		return parseRGBFunc(s)
	}
	return 0, fmt.Errorf("attributes: unrecognized color %q", s)
}

func parseHexColor(s string) (graphics.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	expand := func(c byte) string { return string([]byte{c, c}) }
	switch len(hex) {
	case 3:
		hex = expand(hex[0]) + expand(hex[1]) + expand(hex[2]) + "ff"
	case 4:
		hex = expand(hex[0]) + expand(hex[1]) + expand(hex[2]) + expand(hex[3])
	case 6:
		hex += "ff"
	case 8:
		// already rrggbbaa
	default:
		return 0, fmt.Errorf("attributes: malformed hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("attributes: malformed hex color %q: %w", s, err)
	}
	r := uint8(v >> 24)
	g := uint8(v >> 16)
	b := uint8(v >> 8)
	a := uint8(v)
	return graphics.RGBA8(r, g, b, a), nil
}

func parseRGBFunc(s string) (graphics.Color, error) {
	open := strings.IndexByte(s, '(')
	shut := strings.LastIndexByte(s, ')')
	if open < 0 || shut < 0 || shut < open {
		return 0, fmt.Errorf("attributes: malformed color function %q", s)
	}
	parts := strings.Split(s[open+1:shut], ",")
	if len(parts) < 3 {
		return 0, fmt.Errorf("attributes: malformed color function %q", s)
	}
	comp := func(i int) (float64, error) {
		return strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
	}
	r, err := comp(0)
	if err != nil {
		return 0, err
	}
	g, err := comp(1)
	if err != nil {
		return 0, err
	}
	b, err := comp(2)
	if err != nil {
		return 0, err
	}
	a := 1.0
	if len(parts) > 3 {
		a, err = comp(3)
		if err != nil {
			return 0, err
		}
	}
	return graphics.RGBA(uint8(r), uint8(g), uint8(b), a), nil
}

// ColorPreprocessor parses a color/backgroundColor raw string value.
func ColorPreprocessor(raw Value) (Value, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("attributes: color expects a string, got %T", raw)
	}
	return ParseColor(s)
}

// BorderValue is the preprocessed shape for the border attribute: width
// alone, or width plus color.
type BorderValue struct {
	Width float64
	Color graphics.Color
	HasColor bool
}

// BorderPreprocessor parses "<width> [<style-ignored> <color>]" into a
// BorderValue, per spec §4.9.2.
func BorderPreprocessor(raw Value) (Value, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("attributes: border expects a string, got %T", raw)
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("attributes: empty border value")
	}
	width, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, fmt.Errorf("attributes: malformed border width %q: %w", fields[0], err)
	}
	if len(fields) == 1 {
		return BorderValue{Width: width}, nil
	}
	// fields[1] is the (ignored) style keyword; the color is the last field.
	color, err := ParseColor(fields[len(fields)-1])
	if err != nil {
		return nil, err
	}
	return BorderValue{Width: width, Color: color, HasColor: true}, nil
}

// BorderRadiusPreprocessor parses 1-4 scalar-or-percent components with CSS
// shorthand rules into a graphics.BorderRadius, per spec §4.9.2: "1 = all;
// 2 = TL/BR, TR/BL; 3 = TL, TR/BL, BR; 4 = TL, TR, BR, BL."
func BorderRadiusPreprocessor(raw Value) (Value, error) {
	fields, err := componentsOf(raw)
	if err != nil {
		return nil, fmt.Errorf("attributes: borderRadius: %w", err)
	}
	corners := make([]graphics.CornerRadius, len(fields))
	for i, f := range fields {
		c, err := parseCornerComponent(f)
		if err != nil {
			return nil, fmt.Errorf("attributes: borderRadius: %w", err)
		}
		corners[i] = c
	}
	switch len(corners) {
	case 1:
		return graphics.BorderRadius{TopLeft: corners[0], TopRight: corners[0], BottomRight: corners[0], BottomLeft: corners[0]}, nil
	case 2:
		return graphics.BorderRadius{TopLeft: corners[0], BottomRight: corners[0], TopRight: corners[1], BottomLeft: corners[1]}, nil
	case 3:
		return graphics.BorderRadius{TopLeft: corners[0], TopRight: corners[1], BottomLeft: corners[1], BottomRight: corners[2]}, nil
	case 4:
		return graphics.BorderRadius{TopLeft: corners[0], TopRight: corners[1], BottomRight: corners[2], BottomLeft: corners[3]}, nil
	default:
		return nil, fmt.Errorf("attributes: borderRadius accepts 1-4 components, got %d", len(corners))
	}
}

// componentsOf splits a raw attribute value (a whitespace-separated string,
// or a single number) into its textual components.
func componentsOf(raw Value) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return strings.Fields(v), nil
	case float64:
		return []string{strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case int:
		return []string{strconv.Itoa(v)}, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", raw)
	}
}

func parseCornerComponent(field string) (graphics.CornerRadius, error) {
	if strings.HasSuffix(field, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(field, "%"), 64)
		if err != nil {
			return graphics.CornerRadius{}, err
		}
		return graphics.CornerRadius{Magnitude: v, IsPercent: true}, nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return graphics.CornerRadius{}, err
	}
	return graphics.CornerRadius{Magnitude: v}, nil
}

// BackgroundGradientPreprocessor parses a solid color, linear-gradient(), or
// radial-gradient() raw string into a GradientValue, per spec §4.9.2.
func BackgroundGradientPreprocessor(raw Value) (Value, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("attributes: gradient expects a string, got %T", raw)
	}
	s = strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(s, "linear-gradient("):
		return parseGradientFunc(s, "linear-gradient(", false)
	case strings.HasPrefix(s, "radial-gradient("):
		return parseGradientFunc(s, "radial-gradient(", true)
	default:
		c, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		return GradientValue{Colors: []graphics.Color{c}, Locations: []float64{0}}, nil
	}
}

func parseGradientFunc(s, prefix string, radial bool) (GradientValue, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(s, prefix), ")")
	stops := splitTopLevel(inner, ',')
	if len(stops) == 0 {
		return GradientValue{}, fmt.Errorf("attributes: empty gradient %q", s)
	}

	gv := GradientValue{Radial: radial}
	start := 0
	if !radial {
		gv.Angle = AngleToBottom
		if angle, ok := parseAngleKeyword(strings.TrimSpace(stops[0])); ok {
			gv.Angle = angle
			start = 1
		}
	}

	for _, stop := range stops[start:] {
		fields := strings.Fields(strings.TrimSpace(stop))
		if len(fields) == 0 {
			continue
		}
		c, err := ParseColor(fields[0])
		if err != nil {
			return GradientValue{}, err
		}
		loc := -1.0 // unresolved; caller/renderer distributes evenly
		if len(fields) > 1 {
			if v, err := strconv.ParseFloat(strings.TrimSuffix(fields[1], "%"), 64); err == nil {
				loc = v / 100
			}
		}
		gv.Colors = append(gv.Colors, c)
		gv.Locations = append(gv.Locations, loc)
	}
	distributeLocations(gv.Locations)
	return gv, nil
}

// distributeLocations fills any unresolved (-1) stop locations by even
// spacing between its resolved neighbors, matching typical CSS
// gradient-stop defaulting.
func distributeLocations(locs []float64) {
	if len(locs) == 0 {
		return
	}
	if locs[0] < 0 {
		locs[0] = 0
	}
	if locs[len(locs)-1] < 0 {
		locs[len(locs)-1] = 1
	}
	i := 0
	for i < len(locs) {
		if locs[i] >= 0 {
			i++
			continue
		}
		j := i
		for j < len(locs) && locs[j] < 0 {
			j++
		}
		lo, hi := locs[i-1], locs[j]
		span := j - i + 1
		for k := i; k < j; k++ {
			locs[k] = lo + (hi-lo)*float64(k-i+1)/float64(span)
		}
		i = j
	}
}

var angleKeywords = map[string]GradientAngle{
	"to bottom":       AngleToBottom,
	"to bottom right": AngleToBottomRight,
	"to right":        AngleToRight,
	"to top right":    AngleToTopRight,
	"to top":          AngleToTop,
	"to top left":     AngleToTopLeft,
	"to left":         AngleToLeft,
	"to bottom left":  AngleToBottomLeft,
}

func parseAngleKeyword(s string) (GradientAngle, bool) {
	if a, ok := angleKeywords[s]; ok {
		return a, true
	}
	if strings.HasSuffix(s, "deg") {
		deg, err := strconv.ParseFloat(strings.TrimSuffix(s, "deg"), 64)
		if err != nil {
			return 0, false
		}
		steps := int(math.Round(deg/45)) % 8
		if steps < 0 {
			steps += 8
		}
		return GradientAngle(steps), true
	}
	return 0, false
}

// splitTopLevel splits s on sep, ignoring occurrences inside parentheses
// (gradient color stops may themselves contain rgb(...) commas).
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				out = append(out, s[last:i])
				last = i + 1
			}
		}
	}
	out = append(out, s[last:])
	return out
}

// ShadowValue is the preprocessed shape shared by boxShadow and textShadow.
type ShadowValue struct {
	Complex bool
	H, V    float64
	Blur    float64
	Opacity float64 // textShadow only
	Color   graphics.Color
}

// BoxShadowPreprocessor parses "complex? <h> <v> <blur> <color>" per spec
// §4.9.2.
func BoxShadowPreprocessor(raw Value) (Value, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("attributes: boxShadow expects a string, got %T", raw)
	}
	fields := strings.Fields(s)
	complex := false
	if len(fields) > 0 && fields[0] == "complex" {
		complex = true
		fields = fields[1:]
	}
	if len(fields) != 4 {
		return nil, fmt.Errorf("attributes: boxShadow expects 4 fields, got %d", len(fields))
	}
	h, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, err
	}
	blur, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return nil, err
	}
	color, err := ParseColor(fields[3])
	if err != nil {
		return nil, err
	}
	return ShadowValue{Complex: complex, H: h, V: v, Blur: blur, Color: color}, nil
}

// TextShadowPreprocessor parses "<color> <radius> <opacity> <h> <v>" per
// spec §4.9.2.
func TextShadowPreprocessor(raw Value) (Value, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("attributes: textShadow expects a string, got %T", raw)
	}
	fields := strings.Fields(s)
	if len(fields) != 5 {
		return nil, fmt.Errorf("attributes: textShadow expects 5 fields, got %d", len(fields))
	}
	color, err := ParseColor(fields[0])
	if err != nil {
		return nil, err
	}
	radius, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, err
	}
	opacity, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return nil, err
	}
	h, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return nil, err
	}
	return ShadowValue{H: h, V: v, Blur: radius, Opacity: opacity, Color: color}, nil
}

// isRTL reports whether node resolves to right-to-left layout direction.
func isRTL(node *layer.ViewNode) bool { return node.Direction == graphics.RTL }

// BoxShadowPostprocessor negates h in RTL, per spec §4.9.2.
func BoxShadowPostprocessor(node *layer.ViewNode, value Value) Value {
	sv, ok := value.(ShadowValue)
	if !ok || !isRTL(node) {
		return value
	}
	sv.H = -sv.H
	return sv
}

// GradientPostprocessor mirrors the angle enum horizontally in RTL, per
// spec §4.9.2.
func GradientPostprocessor(node *layer.ViewNode, value Value) Value {
	gv, ok := value.(GradientValue)
	if !ok || !isRTL(node) || gv.Radial {
		return value
	}
	gv.Angle = mirroredAngle[gv.Angle]
	return gv
}

// BorderRadiusPostprocessor swaps TL<->TR and BL<->BR in RTL when corners
// differ, per spec §4.9.2.
func BorderRadiusPostprocessor(node *layer.ViewNode, value Value) Value {
	br, ok := value.(graphics.BorderRadius)
	if !ok || !isRTL(node) {
		return value
	}
	br.TopLeft, br.TopRight = br.TopRight, br.TopLeft
	br.BottomLeft, br.BottomRight = br.BottomRight, br.BottomLeft
	return br
}
