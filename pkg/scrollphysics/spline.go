// Package scrollphysics implements the platform-native fling decay and
// overscroll-bounce curves layer.ScrollLayer drives its content offset
// with, ported from the Android spline/physical-coefficient model and the
// iOS exponential-decay model in the original engine's scroll physics.
package scrollphysics

import "math"

const splineSampleCount = 100

// SplineConfiguration holds the tunable constants behind the Android
// fling-decay spline. Any field left at zero when passed to
// NewSplineScrollPhysics keeps its default, mirroring the original's getOrDefault partial-override pattern.
type SplineConfiguration struct {
	Gravity            float64
	Inflexion           float64
	StartTension        float64
	EndTension          float64
	PhysicalCoefficient float64
	DecelerationRate    float64
}

// DefaultSplineConfiguration matches Android's OverScroller defaults.
var DefaultSplineConfiguration = SplineConfiguration{
	Gravity:             2000,
	Inflexion:           0.35,
	StartTension:        0.5,
	EndTension:          1.0,
	PhysicalCoefficient: 9.80665 * 39.37 * 160.0 * 0.84,
	DecelerationRate:    2.3582017,
}

func (c SplineConfiguration) getOrDefault() SplineConfiguration {
	d := DefaultSplineConfiguration
	if c.Gravity == 0 {
		c.Gravity = d.Gravity
	}
	if c.Inflexion == 0 {
		c.Inflexion = d.Inflexion
	}
	if c.StartTension == 0 {
		c.StartTension = d.StartTension
	}
	if c.EndTension == 0 {
		c.EndTension = d.EndTension
	}
	if c.PhysicalCoefficient == 0 {
		c.PhysicalCoefficient = d.PhysicalCoefficient
	}
	if c.DecelerationRate == 0 {
		c.DecelerationRate = d.DecelerationRate
	}
	return c
}

// SplineScrollPhysics reproduces Android's OverScroller fling-decay spline:
// a 101-sample precomputed position/time table (built once at construction
// by bisection) used at runtime to linearly interpolate the decelerated
// displacement for a given velocity and elapsed time.
type SplineScrollPhysics struct {
	cfg              SplineConfiguration
	splinePosition   [splineSampleCount + 1]float64
	splineTime       [splineSampleCount + 1]float64
}

// NewSplineScrollPhysics builds the precomputed spline tables for cfg
// (zero fields default per DefaultSplineConfiguration).
func NewSplineScrollPhysics(cfg SplineConfiguration) *SplineScrollPhysics {
	s := &SplineScrollPhysics{cfg: cfg.getOrDefault()}
	s.buildTables()
	return s
}

// buildTables constructs the two sample tables from two distinct cubics, per
// the original OverScroller static initializer: p1/p2 blend inflexion into
// the tension pair used to locate, by bisection, the spline parameter whose
// alpha-matching curve equals i/100; the value actually stored in the table
// is a second, separate cubic evaluated at that parameter with the
// (startTension, 1.0) pair. Using the same curve for both (collapsing to a
// single cubic) makes the table a linear ramp and drops inflexion's effect
// on the result entirely.
func (s *SplineScrollPhysics) buildTables() {
	const tolerance = 1e-5
	startTension := s.cfg.StartTension
	endTension := s.cfg.EndTension
	inflexion := s.cfg.Inflexion

	p1 := startTension * inflexion
	p2 := 1 - endTension*(1-inflexion)

	xMin, yMin := 0.0, 0.0
	for i := 0; i < splineSampleCount; i++ {
		alpha := float64(i) / splineSampleCount

		xMinLoop, xMaxLoop := xMin, 1.0
		var x float64
		for {
			x = xMinLoop + (xMaxLoop-xMinLoop)/2.0
			xCurve := splineCurve(x, p1, p2)
			if math.Abs(xCurve-alpha) < tolerance {
				break
			}
			if xCurve < alpha {
				xMinLoop = x
			} else {
				xMaxLoop = x
			}
		}
		s.splinePosition[i] = splineCurve(x, startTension, 1.0)

		yMinLoop, yMaxLoop := yMin, 1.0
		var y float64
		for {
			y = yMinLoop + (yMaxLoop-yMinLoop)/2.0
			yCurve := splineCurve(y, startTension, 1.0)
			if math.Abs(yCurve-s.splinePosition[i]) < tolerance {
				break
			}
			if yCurve < s.splinePosition[i] {
				yMinLoop = y
			} else {
				yMaxLoop = y
			}
		}
		s.splineTime[i] = splineCurve(y, p1, p2)

		xMin = x
		yMin = y
	}
	s.splinePosition[splineSampleCount] = 1.0
	s.splineTime[splineSampleCount] = 1.0
}

// splineCurve evaluates the cubic bezier blend 3*p1*(1-t)^2*t +
// 3*p2*(1-t)*t^2 + t^3 for control points p1, p2 (endpoints fixed at 0, 1).
// buildTables calls this with two different (p1, p2) pairs: the
// inflexion-blended pair to locate a parameter matching a target alpha, and
// the raw (startTension, 1.0) pair to read off the value actually stored.
func splineCurve(t, p1, p2 float64) float64 {
	return 3*p1*(1-t)*(1-t)*t + 3*p2*(1-t)*t*t + t*t*t
}

// deceleration returns ln(inflexion*|v|/(friction*physicalCoeff)) for the
// given fling velocity (px/s) and friction coefficient.
func (s *SplineScrollPhysics) deceleration(velocity, friction float64) float64 {
	return math.Log(s.cfg.Inflexion * math.Abs(velocity) / (friction * s.cfg.PhysicalCoefficient))
}

// FlingDistance returns the total distance (signed, same sign as velocity)
// an Android-style fling with the given velocity and friction travels
// before coming to rest.
func (s *SplineScrollPhysics) FlingDistance(velocity, friction float64) float64 {
	if velocity == 0 {
		return 0
	}
	dec := s.deceleration(velocity, friction)
	sign := 1.0
	if velocity < 0 {
		sign = -1.0
	}
	rate := s.cfg.DecelerationRate
	return sign * friction * s.cfg.PhysicalCoefficient * math.Exp(rate/(rate-1)*dec)
}

// FlingDuration returns the duration (seconds) for a fling with the given
// velocity and friction coefficient to decelerate to rest.
func (s *SplineScrollPhysics) FlingDuration(velocity, friction float64) float64 {
	if velocity == 0 {
		return 0
	}
	dec := s.deceleration(velocity, friction)
	rate := s.cfg.DecelerationRate
	return math.Exp(dec / (rate - 1))
}

// Position returns the fraction (0-1) of the total fling distance covered
// at ratio (elapsed/duration, clamped to [0, 1]), linearly interpolated
// from the precomputed spline table.
func (s *SplineScrollPhysics) Position(ratio float64) float64 {
	if ratio <= 0 {
		return 0
	}
	return s.lookup(s.splinePosition[:], ratio)
}

// Velocity returns the spline's instantaneous slope (d(position)/d(ratio))
// at ratio, as a forward finite difference (step 1e-3) over the position
// table; the time table is not consulted.
func (s *SplineScrollPhysics) Velocity(ratio float64) float64 {
	const delta = 1e-3
	a := s.lookup(s.splinePosition[:], ratio)
	b := s.lookup(s.splinePosition[:], math.Min(1, ratio+delta))
	return (b - a) / delta
}

func (s *SplineScrollPhysics) lookup(table []float64, ratio float64) float64 {
	if ratio <= 0 {
		return table[0]
	}
	if ratio >= 1 {
		return table[splineSampleCount]
	}
	pos := ratio * splineSampleCount
	index := int(math.Floor(pos))
	if index >= splineSampleCount {
		index = splineSampleCount - 1
	}
	frac := pos - float64(index)
	return table[index] + frac*(table[index+1]-table[index])
}
