package curve

import (
	"fmt"
	"math"
)

// Harmonic is one sine term: sin(x/Period + t·Freq) · amplitude·Scale.
type Harmonic struct {
	Period float64 `yaml:"period"`
	Freq   float64 `yaml:"freq"`
	Scale  float64 `yaml:"scale"`
}

// Contour draws stacked sum-of-sines rows. Row i sits at i·RowSpacing and its
// amplitude shrinks with |i| to fake depth.
type Contour struct {
	XMin, XMax, Stride float64
	Harmonics          []Harmonic
	// RowMin and RowMax are inclusive.
	RowMin, RowMax int
	RowSpacing     float64
	BaseAmplitude  float64
	AmplitudeDecay float64
	RowTimeDiv     float64
	HueTimeDiv     float64
	HueOffsetDiv   float64
	Sat, Val       float64
	Width          float64
}

func DefaultHarmonics() []Harmonic {
	return []Harmonic{
		{Period: 100, Freq: 1, Scale: 1},
		{Period: 50, Freq: 2, Scale: 0.5},
		{Period: 25, Freq: 3, Scale: 0.25},
	}
}

func DefaultContour() Contour {
	return Contour{
		XMin:           -400,
		XMax:           400,
		Stride:         5,
		Harmonics:      DefaultHarmonics(),
		RowMin:         -5,
		RowMax:         5,
		RowSpacing:     60,
		BaseAmplitude:  100,
		AmplitudeDecay: 8,
		RowTimeDiv:     5,
		HueTimeDiv:     5,
		HueOffsetDiv:   200,
		Sat:            0.8,
		Val:            1,
		Width:          2,
	}
}

func (c Contour) Saturation() float64 { return c.Sat }
func (c Contour) Value() float64      { return c.Val }

// Steps returns the number of samples per row, both domain ends included.
func (c Contour) Steps() (int, error) {
	if c.Stride <= 0 || c.XMax < c.XMin || math.IsNaN(c.XMin) || math.IsNaN(c.XMax) {
		return 0, fmt.Errorf("%w: x in [%g, %g] stride %g", ErrEmptyDomain, c.XMin, c.XMax, c.Stride)
	}
	n := int(math.Floor((c.XMax-c.XMin)/c.Stride+1e-9)) + 1
	if n < 2 {
		return 0, fmt.Errorf("%w: %d sample(s)", ErrEmptyDomain, n)
	}
	return n, nil
}

// Amplitude returns the clamped amplitude of row i.
func (c Contour) Amplitude(i int) float64 {
	a := c.BaseAmplitude - math.Abs(float64(i))*c.AmplitudeDecay
	return math.Max(0, a)
}

// Row builds the spec of row i at frame time t.
func (c Contour) Row(t float64, i int) Spec {
	rowTime := t
	if c.RowTimeDiv != 0 {
		rowTime += float64(i) / c.RowTimeDiv
	}
	offset := float64(i) * c.RowSpacing
	return Spec{
		Family:    FamilyContour,
		Index:     i,
		Time:      rowTime,
		Offset:    offset,
		Amplitude: c.Amplitude(i),
		Hue:       Hue(rowTime, offset, c.HueTimeDiv, c.HueOffsetDiv),
		Width:     c.Width,
	}
}

func (c Contour) Specs(t float64) []Spec {
	if c.RowMax < c.RowMin {
		return nil
	}
	specs := make([]Spec, 0, c.RowMax-c.RowMin+1)
	for i := c.RowMin; i <= c.RowMax; i++ {
		specs = append(specs, c.Row(t, i))
	}
	return specs
}

func (c Contour) Sample(s Spec) (Points, error) {
	if s.Family != FamilyContour {
		return nil, fmt.Errorf("%w: %s", ErrFamilyMismatch, s.Family)
	}
	n, err := c.Steps()
	if err != nil {
		return nil, err
	}
	amp := math.Max(0, s.Amplitude)
	pts := make(Points, n)
	for k := 0; k < n; k++ {
		x := c.XMin + float64(k)*c.Stride
		if k == n-1 && math.Abs(x-c.XMax) < c.Stride*1e-6 {
			x = c.XMax
		}
		y := s.Offset
		for _, h := range c.Harmonics {
			if h.Period == 0 {
				continue
			}
			y += math.Sin(x/h.Period+s.Time*h.Freq) * amp * h.Scale
		}
		pts[k] = Point{X: x, Y: y}
	}
	return pts, nil
}
