package curve

// Point is a sample in turtle coordinates: origin at the centre, y up.
type Point struct {
	X, Y float64
}

type Points []Point

func (p Points) Clone() Points {
	c := make(Points, len(p))
	copy(c, p)
	return c
}

// Bounds returns the axis-aligned extent of the sequence.
func (p Points) Bounds() (minX, minY, maxX, maxY float64) {
	if len(p) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = p[0].X, p[0].X
	minY, maxY = p[0].Y, p[0].Y
	for _, pt := range p[1:] {
		minX = min(minX, pt.X)
		maxX = max(maxX, pt.X)
		minY = min(minY, pt.Y)
		maxY = max(maxY, pt.Y)
	}
	return minX, minY, maxX, maxY
}

type Family int

const (
	FamilyContour Family = iota
	FamilyRose
)

func (f Family) String() string {
	switch f {
	case FamilyContour:
		return "contour"
	case FamilyRose:
		return "rose"
	default:
		return "unknown"
	}
}

// Spec describes one curve of a frame.
type Spec struct {
	Family Family
	Index  int
	Time   float64
	Offset float64
	// Amplitude is the contour amplitude or the rose scale. Never negative.
	Amplitude float64
	// N and D are the rose petal numerator and denominator.
	N, D  float64
	Hue   float64
	Width float64
}

type Generator interface {
	Specs(t float64) []Spec
	Sample(s Spec) (Points, error)
	Saturation() float64
	Value() float64
}
