package curve

import (
	"errors"
	"math"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"fraction", 0.25, 0.25},
		{"above one", 3.75, 0.75},
		{"negative", -0.25, 0.75},
		{"tiny negative", -1e-18, 0},
		{"integer", 7, 0},
		{"NaN", math.NaN(), 0},
		{"+Inf", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.in); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHueAlwaysInUnitInterval(t *testing.T) {
	for i := -20000; i <= 20000; i++ {
		tm := float64(i) * 0.0137
		for _, off := range []float64{-300, -60, 0, 1, 2, 60, 300} {
			h := Hue(tm, off, 5, 200)
			if h < 0 || h >= 1 {
				t.Fatalf("Hue(%v, %v) = %v outside [0,1)", tm, off, h)
			}
		}
	}
}

func TestHSV(t *testing.T) {
	tests := []struct {
		h, s, v float64
		want    RGB
	}{
		{0, 1, 1, RGB{1, 0, 0}},
		{1.0 / 3, 1, 1, RGB{0, 1, 0}},
		{2.0 / 3, 1, 1, RGB{0, 0, 1}},
		{0, 0, 1, RGB{1, 1, 1}},
		{0.5, 0.8, 1, RGB{0.2, 1, 1}},
	}

	for _, tt := range tests {
		got := HSV(tt.h, tt.s, tt.v)
		if math.Abs(got.R-tt.want.R) > 1e-9 || math.Abs(got.G-tt.want.G) > 1e-9 || math.Abs(got.B-tt.want.B) > 1e-9 {
			t.Errorf("HSV(%v, %v, %v) = %+v, want %+v", tt.h, tt.s, tt.v, got, tt.want)
		}
	}
}

func TestRGBHex(t *testing.T) {
	if got := (RGB{1, 0, 0.5}).Hex(); got != "#ff0080" {
		t.Errorf("Hex() = %q, want #ff0080", got)
	}
}

func TestRGBBytes(t *testing.T) {
	r, g, b := (RGB{1, 0, 2}).Bytes()
	if r != 255 || g != 0 || b != 255 {
		t.Errorf("Bytes() = %d,%d,%d, want 255,0,255", r, g, b)
	}
}

func TestContourSample(t *testing.T) {
	c := DefaultContour()
	pts, err := c.Sample(Spec{Family: FamilyContour, Time: 0, Offset: 0, Amplitude: 100})
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	if len(pts) != 161 {
		t.Fatalf("expected 161 points, got %d", len(pts))
	}
	if pts[0].X != -400 {
		t.Errorf("expected first x -400, got %v", pts[0].X)
	}
	if pts[len(pts)-1].X != 400 {
		t.Errorf("expected last x 400, got %v", pts[len(pts)-1].X)
	}

	// y(0) at t=0: sin(0)·100 + sin(0)·50 + sin(0)·25
	mid := pts[80]
	if mid.X != 0 || math.Abs(mid.Y) > 1e-12 {
		t.Errorf("expected (0, 0) at centre, got %+v", mid)
	}

	x := 100.0
	want := math.Sin(1)*100 + math.Sin(2)*50 + math.Sin(4)*25
	if got := pts[100].Y; pts[100].X != x || math.Abs(got-want) > 1e-9 {
		t.Errorf("y(100) = %v, want %v", got, want)
	}
}

func TestContourSampleIdempotent(t *testing.T) {
	c := DefaultContour()
	spec := Spec{Family: FamilyContour, Time: 1.234, Offset: -120, Amplitude: 84}

	a, err := c.Sample(spec)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Sample(spec)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if math.Float64bits(a[i].X) != math.Float64bits(b[i].X) || math.Float64bits(a[i].Y) != math.Float64bits(b[i].Y) {
			t.Fatalf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestContourStepCounts(t *testing.T) {
	tests := []struct {
		min, max, stride float64
		want             int
	}{
		{-400, 400, 5, 161},
		{0, 10, 1, 11},
		{0, 10, 3, 4},
		{-1, 1, 2, 2},
	}

	for _, tt := range tests {
		c := DefaultContour()
		c.XMin, c.XMax, c.Stride = tt.min, tt.max, tt.stride
		pts, err := c.Sample(Spec{Family: FamilyContour, Amplitude: 10})
		if err != nil {
			t.Fatalf("[%v,%v]/%v: %v", tt.min, tt.max, tt.stride, err)
		}
		if len(pts) != tt.want {
			t.Errorf("[%v,%v]/%v: expected %d points, got %d", tt.min, tt.max, tt.stride, tt.want, len(pts))
		}
	}
}

func TestContourEmptyDomain(t *testing.T) {
	tests := []struct {
		name             string
		min, max, stride float64
	}{
		{"zero stride", -400, 400, 0},
		{"negative stride", -400, 400, -5},
		{"reversed", 400, -400, 5},
		{"single point", 0, 0, 5},
		{"stride wider than range", 0, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultContour()
			c.XMin, c.XMax, c.Stride = tt.min, tt.max, tt.stride
			_, err := c.Sample(Spec{Family: FamilyContour})
			if !errors.Is(err, ErrEmptyDomain) {
				t.Errorf("expected ErrEmptyDomain, got %v", err)
			}
		})
	}
}

func TestContourRows(t *testing.T) {
	c := DefaultContour()
	specs := c.Specs(0)
	if len(specs) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(specs))
	}

	first, last := specs[0], specs[len(specs)-1]
	if first.Index != -5 || last.Index != 5 {
		t.Errorf("expected rows -5..5, got %d..%d", first.Index, last.Index)
	}
	if first.Offset != -300 || last.Offset != 300 {
		t.Errorf("expected offsets -300..300, got %v..%v", first.Offset, last.Offset)
	}
	if specs[5].Amplitude != 100 || first.Amplitude != 60 {
		t.Errorf("unexpected amplitudes: centre %v, edge %v", specs[5].Amplitude, first.Amplitude)
	}
	if math.Abs(last.Time-1.0) > 1e-12 {
		t.Errorf("expected row 5 time 1.0, got %v", last.Time)
	}
	for _, s := range specs {
		if s.Hue < 0 || s.Hue >= 1 {
			t.Errorf("row %d hue %v outside [0,1)", s.Index, s.Hue)
		}
	}
}

func TestContourAmplitudeClamped(t *testing.T) {
	c := DefaultContour()
	c.RowMin, c.RowMax = -20, 20

	for _, s := range c.Specs(0.5) {
		if s.Amplitude < 0 {
			t.Errorf("row %d amplitude %v is negative", s.Index, s.Amplitude)
		}
	}
	if got := c.Amplitude(15); got != 0 {
		t.Errorf("expected clamped amplitude 0, got %v", got)
	}
}

func TestRoseScenario(t *testing.T) {
	r := DefaultRose()
	r.Numerator = nil

	specs := r.Specs(0)
	if len(specs) != 3 {
		t.Fatalf("expected 3 passes, got %d", len(specs))
	}

	wantScale := []float64{300, 280, 260}
	for i, s := range specs {
		if s.Amplitude != wantScale[i] {
			t.Errorf("pass %d: expected scale %v, got %v", i, wantScale[i], s.Amplitude)
		}
		pts, err := r.Sample(s)
		if err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
		if len(pts) != 1800 {
			t.Errorf("pass %d: expected 1800 samples, got %d", i, len(pts))
		}
		// θ=0, t=0: r = scale, point = (scale, 0)
		if math.Abs(pts[0].X-wantScale[i]) > 1e-9 || math.Abs(pts[0].Y) > 1e-9 {
			t.Errorf("pass %d: first point %+v", i, pts[0])
		}
	}
}

func TestRosePetalModulation(t *testing.T) {
	r := DefaultRose()
	s := r.Specs(math.Pi)[0]
	if want := 4 + math.Sin(math.Pi/2); math.Abs(s.N-want) > 1e-12 {
		t.Errorf("expected n %v, got %v", want, s.N)
	}
}

func TestRoseRadiusBounded(t *testing.T) {
	r := DefaultRose()
	s := r.Specs(2.5)[1]
	pts, err := r.Sample(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range pts {
		if math.Hypot(p.X, p.Y) > s.Amplitude+1e-9 {
			t.Fatalf("point %+v outside radius %v", p, s.Amplitude)
		}
	}
}

func TestRoseEmptyDomain(t *testing.T) {
	r := DefaultRose()
	for _, d := range []float64{0, -5, math.NaN()} {
		_, err := r.Sample(Spec{Family: FamilyRose, N: 4, D: d, Amplitude: 300})
		if !errors.Is(err, ErrEmptyDomain) {
			t.Errorf("d=%v: expected ErrEmptyDomain, got %v", d, err)
		}
	}
}

func TestFamilyMismatch(t *testing.T) {
	if _, err := DefaultContour().Sample(Spec{Family: FamilyRose}); !errors.Is(err, ErrFamilyMismatch) {
		t.Errorf("contour: expected ErrFamilyMismatch, got %v", err)
	}
	if _, err := DefaultRose().Sample(Spec{Family: FamilyContour, D: 5}); !errors.Is(err, ErrFamilyMismatch) {
		t.Errorf("rose: expected ErrFamilyMismatch, got %v", err)
	}
}

func TestPointsBounds(t *testing.T) {
	pts := Points{{1, 2}, {-3, 5}, {4, -1}}
	minX, minY, maxX, maxY := pts.Bounds()
	if minX != -3 || minY != -1 || maxX != 4 || maxY != 5 {
		t.Errorf("Bounds() = %v %v %v %v", minX, minY, maxX, maxY)
	}
}
