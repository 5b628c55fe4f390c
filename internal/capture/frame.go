package capture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Order is the channel layout of a frame's pixel buffer.
type Order int

const (
	OrderRGBA Order = iota
	OrderRGB
	OrderBGR
)

func (o Order) String() string {
	switch o {
	case OrderRGBA:
		return "rgba"
	case OrderRGB:
		return "rgb24"
	case OrderBGR:
		return "bgr24"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}

func (o Order) Channels() int {
	if o == OrderRGBA {
		return 4
	}
	return 3
}

// Frame is a captured pixel buffer, rows tightly packed.
type Frame struct {
	Width, Height int
	Order         Order
	Pix           []byte
}

func (f Frame) Size() image.Point { return image.Pt(f.Width, f.Height) }

func (f Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyFrame, f.Width, f.Height)
	}
	if want := f.Width * f.Height * f.Order.Channels(); len(f.Pix) != want {
		return fmt.Errorf("%w: %d bytes for %dx%d %s, want %d", ErrFrameSize, len(f.Pix), f.Width, f.Height, f.Order, want)
	}
	return nil
}

// FromImage copies the rectangle r of img into an RGBA frame. An empty r
// captures the whole image.
func FromImage(img image.Image, r image.Rectangle) (Frame, error) {
	b := img.Bounds()
	if r.Empty() {
		r = b
	}
	if !r.In(b) {
		return Frame{}, fmt.Errorf("%w: region %v outside %v", ErrRegion, r, b)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return Frame{Width: r.Dx(), Height: r.Dy(), Order: OrderRGBA, Pix: dst.Pix}, nil
}

// Convert reorders channels into the requested layout. Alpha is dropped
// when converting to a three-channel order.
func Convert(f Frame, to Order) (Frame, error) {
	if err := f.Validate(); err != nil {
		return Frame{}, err
	}
	if to < OrderRGBA || to > OrderBGR {
		return Frame{}, fmt.Errorf("capture: unsupported order %s", to)
	}
	if f.Order == to {
		return f, nil
	}
	n := f.Width * f.Height
	sc, dc := f.Order.Channels(), to.Channels()
	out := Frame{Width: f.Width, Height: f.Height, Order: to, Pix: make([]byte, n*dc)}
	for i := 0; i < n; i++ {
		r, g, b, a := f.at(i * sc)
		d := out.Pix[i*dc : i*dc+dc]
		switch to {
		case OrderRGBA:
			d[0], d[1], d[2], d[3] = r, g, b, a
		case OrderRGB:
			d[0], d[1], d[2] = r, g, b
		case OrderBGR:
			d[0], d[1], d[2] = b, g, r
		}
	}
	return out, nil
}

func (f Frame) at(off int) (r, g, b, a uint8) {
	p := f.Pix[off:]
	switch f.Order {
	case OrderBGR:
		return p[2], p[1], p[0], 0xff
	case OrderRGB:
		return p[0], p[1], p[2], 0xff
	default:
		return p[0], p[1], p[2], p[3]
	}
}

// Image returns the frame as an *image.RGBA.
func (f Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	if f.Order == OrderRGBA {
		copy(img.Pix, f.Pix)
		return img
	}
	c := f.Order.Channels()
	for i := 0; i < f.Width*f.Height; i++ {
		r, g, b, a := f.at(i * c)
		img.SetRGBA(i%f.Width, i/f.Width, color.RGBA{R: r, G: g, B: b, A: a})
	}
	return img
}

// Capturer reads back the pixels of a render surface.
type Capturer interface {
	Capture(r image.Rectangle) (Frame, error)
}
