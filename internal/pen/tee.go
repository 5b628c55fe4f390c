package pen

import (
	"errors"

	"github.com/san-kum/artloop/internal/curve"
)

// Tee forwards every call to each of its surfaces in order.
type Tee []Surface

func (t Tee) Clear() {
	for _, s := range t {
		s.Clear()
	}
}

func (t Tee) Lift() {
	for _, s := range t {
		s.Lift()
	}
}

func (t Tee) SetColor(c curve.RGB) {
	for _, s := range t {
		s.SetColor(c)
	}
}

func (t Tee) SetWidth(w float64) {
	for _, s := range t {
		s.SetWidth(w)
	}
}

func (t Tee) DrawTo(x, y float64) {
	for _, s := range t {
		s.DrawTo(x, y)
	}
}

func (t Tee) Disc(x, y, r float64) {
	for _, s := range t {
		if a, ok := s.(Annotator); ok {
			a.Disc(x, y, r)
		}
	}
}

func (t Tee) Text(x, y float64, str string, bold bool) {
	for _, s := range t {
		if a, ok := s.(Annotator); ok {
			a.Text(x, y, str, bold)
		}
	}
}

// Flush flushes every surface and joins their errors.
func (t Tee) Flush() error {
	var errs []error
	for _, s := range t {
		if err := s.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
