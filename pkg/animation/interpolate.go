package animation

import (
	"math"

	"github.com/go-drift/engine/pkg/graphics"
)

// InterpolatePoint linearly interpolates between two Points.
func InterpolatePoint(a, b graphics.Point, t float64) graphics.Point {
	return graphics.Point{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
	}
}

// InterpolateVector linearly interpolates between two Vectors.
func InterpolateVector(a, b graphics.Vector, t float64) graphics.Vector {
	return graphics.Vector{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
	}
}

// InterpolateSize linearly interpolates between two Sizes.
func InterpolateSize(a, b graphics.Size, t float64) graphics.Size {
	return graphics.Size{
		Width:  LerpFloat64(a.Width, b.Width, t),
		Height: LerpFloat64(a.Height, b.Height, t),
	}
}

// InterpolateFrame linearly interpolates between two Frames, component by
// component (x, y, width, height).
func InterpolateFrame(a, b graphics.Frame, t float64) graphics.Frame {
	return graphics.Frame{
		X:      LerpFloat64(a.X, b.X, t),
		Y:      LerpFloat64(a.Y, b.Y, t),
		Width:  LerpFloat64(a.Width, b.Width, t),
		Height: LerpFloat64(a.Height, b.Height, t),
	}
}

// InterpolateColor blends two colors channel by channel using an
// energy-preserving mix: each channel is blended in squared ("energy")
// space, sqrt((1-t)*c1^2 + t*c2^2), rather than plain linear
// interpolation, so a red-to-blue fade passes through a perceptually
// correct purple instead of a muddy, darker midpoint. Alpha is blended
// linearly, since it is not a light-energy channel.
func InterpolateColor(a, b graphics.Color, t float64) graphics.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	blend := func(c1, c2 uint8) uint8 {
		v1 := float64(c1)
		v2 := float64(c2)
		v := math.Sqrt((1-t)*v1*v1 + t*v2*v2)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return uint8(math.Round(v))
	}
	aA := uint8(a >> 24)
	aR := uint8(a >> 16)
	aG := uint8(a >> 8)
	aB := uint8(a)
	bA := uint8(b >> 24)
	bR := uint8(b >> 16)
	bG := uint8(b >> 8)
	bB := uint8(b)

	alpha := uint8(math.Round(LerpFloat64(float64(aA), float64(bA), t)))
	r := blend(aR, bR)
	g := blend(aG, bG)
	bl := blend(aB, bB)

	return graphics.Color(uint32(alpha)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(bl))
}

// InterpolateBorderRadius blends two BorderRadius values corner by corner.
// Corners of the same unit blend their magnitudes directly. For a percent
// corner and an absolute corner, the source corner is first converted into
// the destination corner's unit using bounds' shortest side
// (graphics.CornerRadius.Resolve), so the two never lerp incompatible
// units. Each resulting corner carries the destination corner's percent
// flag.
func InterpolateBorderRadius(a, b graphics.BorderRadius, bounds graphics.Frame, t float64) graphics.BorderRadius {
	lerpCorner := func(ca, cb graphics.CornerRadius) graphics.CornerRadius {
		from := ca.Magnitude
		if ca.IsPercent != cb.IsPercent {
			from = ca.Resolve(bounds)
			if cb.IsPercent {
				if shortest := math.Min(bounds.Width, bounds.Height); shortest > 0 {
					from = from * 100 / shortest
				} else {
					from = 0
				}
			}
		}
		return graphics.CornerRadius{Magnitude: LerpFloat64(from, cb.Magnitude, t), IsPercent: cb.IsPercent}
	}
	return graphics.BorderRadius{
		TopLeft:     lerpCorner(a.TopLeft, b.TopLeft),
		TopRight:    lerpCorner(a.TopRight, b.TopRight),
		BottomLeft:  lerpCorner(a.BottomLeft, b.BottomLeft),
		BottomRight: lerpCorner(a.BottomRight, b.BottomRight),
	}
}

// BorderRadiusApplier returns a TimingConfig.Applier blending from to to as
// ratio advances, resolving percent corners against the layer's own frame
// on every step (the frame itself may be mid-animation).
func BorderRadiusApplier(from, to graphics.BorderRadius) func(layer *graphics.Layer, ratio float64) {
	return func(layer *graphics.Layer, ratio float64) {
		layer.BorderRadius = InterpolateBorderRadius(from, to, layer.Frame, ratio)
	}
}
