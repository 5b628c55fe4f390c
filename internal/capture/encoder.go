package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/icza/mjpeg"
)

type Codec string

const (
	CodecMJPEG Codec = "mjpeg"
	CodecGIF   Codec = "gif"
	CodecMP4V  Codec = "mp4v"
)

// Codecs lists the supported codec names.
func Codecs() []string {
	return []string{string(CodecMJPEG), string(CodecGIF), string(CodecMP4V)}
}

// DefaultExt returns the usual file extension for a codec.
func (c Codec) DefaultExt() string {
	switch c {
	case CodecGIF:
		return ".gif"
	case CodecMP4V:
		return ".mp4"
	default:
		return ".avi"
	}
}

// Encoder appends frames to a video output. Close must be called exactly
// once; it finalises the file.
type Encoder interface {
	// Order is the channel layout Write expects.
	Order() Order
	Write(f Frame) error
	Close() error
}

// Options configures Open.
type Options struct {
	Path          string
	Codec         Codec
	FPS           int
	Width, Height int
	// Quality is the JPEG quality for mjpeg (1-100).
	Quality int
	// FFmpeg is the binary used by mp4v.
	FFmpeg string
}

// Open creates the video file and returns its encoder.
func Open(opts Options) (Encoder, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyFrame, opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("capture: fps must be positive, got %d", opts.FPS)
	}
	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	switch Codec(strings.ToLower(string(opts.Codec))) {
	case CodecMJPEG, "":
		return openMJPEG(opts)
	case CodecGIF:
		return openGIF(opts)
	case CodecMP4V:
		return openFFmpeg(opts)
	default:
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownCodec, opts.Codec, Codecs())
	}
}

type mjpegEncoder struct {
	aw      mjpeg.AviWriter
	quality int
	buf     bytes.Buffer
	closed  bool
}

func openMJPEG(opts Options) (Encoder, error) {
	aw, err := mjpeg.New(opts.Path, int32(opts.Width), int32(opts.Height), int32(opts.FPS))
	if err != nil {
		return nil, fmt.Errorf("open mjpeg %s: %w", opts.Path, err)
	}
	q := opts.Quality
	if q <= 0 || q > 100 {
		q = 90
	}
	return &mjpegEncoder{aw: aw, quality: q}, nil
}

func (e *mjpegEncoder) Order() Order { return OrderRGBA }

func (e *mjpegEncoder) Write(f Frame) error {
	if e.closed {
		return ErrClosed
	}
	e.buf.Reset()
	if err := jpeg.Encode(&e.buf, f.Image(), &jpeg.Options{Quality: e.quality}); err != nil {
		return err
	}
	return e.aw.AddFrame(e.buf.Bytes())
}

func (e *mjpegEncoder) Close() error {
	if e.closed {
		return ErrClosed
	}
	e.closed = true
	return e.aw.Close()
}

type gifEncoder struct {
	path   string
	delay  int
	anim   gif.GIF
	closed bool
}

func openGIF(opts Options) (Encoder, error) {
	// Create the file up front so path errors surface before recording.
	f, err := os.Create(opts.Path)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	delay := 100 / opts.FPS
	if delay < 1 {
		delay = 1
	}
	return &gifEncoder{path: opts.Path, delay: delay, anim: gif.GIF{LoopCount: 0}}, nil
}

func (e *gifEncoder) Order() Order { return OrderRGBA }

func (e *gifEncoder) Write(f Frame) error {
	if e.closed {
		return ErrClosed
	}
	src := f.Image()
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, image.Point{})
	e.anim.Image = append(e.anim.Image, dst)
	e.anim.Delay = append(e.anim.Delay, e.delay)
	return nil
}

// Close writes the animation. A GIF with no frames cannot be decoded, so
// an empty recording leaves no file behind.
func (e *gifEncoder) Close() (err error) {
	if e.closed {
		return ErrClosed
	}
	e.closed = true
	if len(e.anim.Image) == 0 {
		return os.Remove(e.path)
	}
	f, err := os.Create(e.path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return gif.EncodeAll(f, &e.anim)
}

// ffmpegEncoder pipes raw bgr24 frames into an ffmpeg child process.
type ffmpegEncoder struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	closed bool
}

func openFFmpeg(opts Options) (Encoder, error) {
	bin := opts.FFmpeg
	if bin == "" {
		bin = "ffmpeg"
	}
	args := []string{
		"-y", "-loglevel", "error",
		"-f", "rawvideo", "-pix_fmt", "bgr24",
		"-s", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"-r", strconv.Itoa(opts.FPS),
		"-i", "-",
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-c:v", "mpeg4", "-tag:v", "mp4v", "-pix_fmt", "yuv420p",
		opts.Path,
	}
	e := &ffmpegEncoder{cmd: exec.Command(bin, args...)}
	e.cmd.Stderr = &e.stderr
	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	e.stdin = stdin
	if err := e.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", bin, err)
	}
	return e, nil
}

func (e *ffmpegEncoder) Order() Order { return OrderBGR }

func (e *ffmpegEncoder) Write(f Frame) error {
	if e.closed {
		return ErrClosed
	}
	_, err := e.stdin.Write(f.Pix)
	return err
}

func (e *ffmpegEncoder) Close() error {
	if e.closed {
		return ErrClosed
	}
	e.closed = true
	cerr := e.stdin.Close()
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(e.stderr.String()))
	}
	return cerr
}
