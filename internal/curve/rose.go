package curve

import (
	"fmt"
	"math"
)

// Rose draws concentric rose curves r = scale·cos(n/d·θ) rotated by t.
type Rose struct {
	// Numerator returns n for frame time t. Nil means a fixed N.
	Numerator func(t float64) float64
	N, D      float64
	Size      float64
	Passes    int
	PassStep  float64
	// StepsPerTurn samples per unit of d; the sweep covers 4π·d.
	StepsPerTurn int
	HueTimeDiv   float64
	HueOffsetDiv float64
	Sat, Val     float64
	Width        float64
}

// PetalModulation is the default numerator: 4 + sin(t/2).
func PetalModulation(t float64) float64 {
	return 4 + math.Sin(t/2)
}

func DefaultRose() Rose {
	return Rose{
		Numerator:    PetalModulation,
		N:            4,
		D:            5,
		Size:         300,
		Passes:       3,
		PassStep:     20,
		StepsPerTurn: 360,
		HueTimeDiv:   4,
		HueOffsetDiv: 5,
		Sat:          0.8,
		Val:          1,
		Width:        2,
	}
}

func (r Rose) Saturation() float64 { return r.Sat }
func (r Rose) Value() float64      { return r.Val }

// Steps returns the angle sample count for denominator d.
func (r Rose) Steps(d float64) (int, error) {
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("%w: denominator %g", ErrEmptyDomain, d)
	}
	n := int(math.Round(float64(r.StepsPerTurn) * d))
	if n < 2 {
		return 0, fmt.Errorf("%w: %d angle sample(s)", ErrEmptyDomain, n)
	}
	return n, nil
}

func (r Rose) numerator(t float64) float64 {
	if r.Numerator != nil {
		return r.Numerator(t)
	}
	return r.N
}

func (r Rose) Specs(t float64) []Spec {
	if r.Passes <= 0 {
		return nil
	}
	n := r.numerator(t)
	specs := make([]Spec, r.Passes)
	for p := 0; p < r.Passes; p++ {
		off := float64(p)
		specs[p] = Spec{
			Family:    FamilyRose,
			Index:     p,
			Time:      t,
			Offset:    off,
			Amplitude: math.Max(0, r.Size-off*r.PassStep),
			N:         n,
			D:         r.D,
			Hue:       Hue(t, off, r.HueTimeDiv, r.HueOffsetDiv),
			Width:     r.Width,
		}
	}
	return specs
}

func (r Rose) Sample(s Spec) (Points, error) {
	if s.Family != FamilyRose {
		return nil, fmt.Errorf("%w: %s", ErrFamilyMismatch, s.Family)
	}
	steps, err := r.Steps(s.D)
	if err != nil {
		return nil, err
	}
	k := s.N / s.D
	scale := math.Max(0, s.Amplitude)
	end := 4 * math.Pi * s.D
	div := float64(steps - 1)
	pts := make(Points, steps)
	for i := 0; i < steps; i++ {
		theta := end * float64(i) / div
		rad := scale * math.Cos(k*theta)
		sin, cos := math.Sincos(theta + s.Time)
		pts[i] = Point{X: rad * cos, Y: rad * sin}
	}
	return pts, nil
}
