package layer_test

import (
	"testing"

	"github.com/go-drift/engine/pkg/animation"
	"github.com/go-drift/engine/pkg/graphics"
	"github.com/go-drift/engine/pkg/layer"
)

// TestAnimateBorderRadiusResolvesPercentAgainstFrame reproduces spec §4.2
// scenario 2: a node animating a percent-based border radius toward an
// absolute one resolves the percent side against its own frame before
// blending, rather than lerping incompatible raw magnitudes.
func TestAnimateBorderRadiusResolvesPercentAgainstFrame(t *testing.T) {
	n := layer.NewViewNode("test")
	n.Frame = graphics.Frame{Width: 200, Height: 200}
	n.BorderRadius = graphics.BorderRadius{
		TopLeft:     graphics.CornerRadius{Magnitude: 20, IsPercent: true},
		TopRight:    graphics.CornerRadius{Magnitude: 30, IsPercent: true},
		BottomRight: graphics.CornerRadius{Magnitude: 40, IsPercent: true},
		BottomLeft:  graphics.CornerRadius{Magnitude: 50, IsPercent: true},
	}
	target := graphics.BorderRadius{
		TopLeft:     graphics.CornerRadius{Magnitude: 20},
		TopRight:    graphics.CornerRadius{Magnitude: 30},
		BottomRight: graphics.CornerRadius{Magnitude: 40},
		BottomLeft:  graphics.CornerRadius{Magnitude: 50},
	}

	n.AnimateBorderRadius(target, animation.TimingConfig{Duration: 1000})

	anim := n.Animations["borderRadius"]
	if anim == nil {
		t.Fatalf("AnimateBorderRadius did not install an animation")
	}
	anim.Run(n.Layer, 0)   // first Run applies ratio 0 without consuming delta
	anim.Run(n.Layer, 500) // halfway

	want := graphics.BorderRadius{
		TopLeft:     graphics.CornerRadius{Magnitude: 30},
		TopRight:    graphics.CornerRadius{Magnitude: 45},
		BottomRight: graphics.CornerRadius{Magnitude: 60},
		BottomLeft:  graphics.CornerRadius{Magnitude: 75},
	}
	if !n.BorderRadius.Equal(want) {
		t.Fatalf("BorderRadius at t=0.5 = %+v, want %+v", n.BorderRadius, want)
	}

	if !anim.Run(n.Layer, 500) {
		t.Fatalf("animation did not report completion at elapsed=duration")
	}
	if !n.BorderRadius.Equal(target) {
		t.Fatalf("BorderRadius at t=1 = %+v, want %+v", n.BorderRadius, target)
	}
}
