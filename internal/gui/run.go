package gui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/artloop/internal/curve"
	"github.com/san-kum/artloop/internal/loop"
	"github.com/san-kum/artloop/internal/neural"
)

// Options configures a window run.
type Options struct {
	Title         string
	Width, Height int
	FPS           int
	Background    curve.RGB
	// ShotDir receives screenshots taken with P.
	ShotDir string
	Logger  *slog.Logger
}

var keyNames = map[int32]string{
	rl.KeyLeft:       "left",
	rl.KeyRight:      "right",
	rl.KeyUp:         "up",
	rl.KeyDown:       "down",
	rl.KeyEscape:     "esc",
	rl.KeySpace:      " ",
	rl.KeyEnter:      "enter",
	rl.KeyEqual:      "=",
	rl.KeyMinus:      "-",
	rl.KeyKpAdd:      "+",
	rl.KeyKpSubtract: "-",
}

// keyName converts a raylib key code to the names the keymaps use.
func keyName(k int32) string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= rl.KeyA && k <= rl.KeyZ {
		return string(rune('a' + (k - rl.KeyA)))
	}
	return ""
}

// pressedKeys drains the raylib key queue.
func pressedKeys() []string {
	var keys []string
	for k := rl.GetKeyPressed(); k != 0; k = rl.GetKeyPressed() {
		if name := keyName(k); name != "" {
			keys = append(keys, name)
		}
	}
	return keys
}

// session owns the window and the cancel function of one run.
type session struct {
	win    *Window
	opts   Options
	log    *slog.Logger
	cancel context.CancelFunc
	shots  int
}

func open(opts Options) (*session, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	win, err := OpenWindow(opts.Title, opts.Width, opts.Height, opts.FPS, opts.Background)
	if err != nil {
		return nil, err
	}
	return &session{win: win, opts: opts, log: opts.Logger}, nil
}

func (s *session) screenshot() {
	s.shots++
	name := fmt.Sprintf("%s_%d_%d.png", s.opts.Title, time.Now().Unix(), s.shots)
	path := name
	if s.opts.ShotDir != "" {
		path = filepath.Join(s.opts.ShotDir, name)
	}
	s.win.Screenshot(path)
	s.log.Info("screenshot saved", "path", path)
}

// RunCurves animates gen in a window until it is closed, q is pressed or
// ctx is done. live.FPS is ignored; the frame rate is held by the window.
func RunCurves(ctx context.Context, gen curve.Generator, live loop.LiveConfig, opts Options) (loop.Stats, error) {
	s, err := open(opts)
	if err != nil {
		return loop.Stats{}, err
	}
	defer s.win.Close()

	ctx, s.cancel = context.WithCancel(ctx)
	defer s.cancel()

	d := loop.New(s.win, loop.CurvePainter{Gen: gen})
	d.SetLogger(s.log)
	d.AddObserver(loop.ObserverFunc(func(frame int, t float64) {
		if s.win.ShouldClose() {
			s.cancel()
			return
		}
		for _, k := range pressedKeys() {
			switch k {
			case "q", "esc":
				s.cancel()
			case "p":
				s.screenshot()
			}
		}
	}))
	// raylib paces EndDrawing, so the driver runs unthrottled.
	live.FPS = 0
	return d.RunLive(ctx, live)
}

// RunNeural shows the configurator in a window. Keys go through ctrl; the
// run ends when ctrl asks to exit or the window is closed.
func RunNeural(ctx context.Context, ctrl *neural.Controller, opts Options) (loop.Stats, error) {
	s, err := open(opts)
	if err != nil {
		return loop.Stats{}, err
	}
	defer s.win.Close()

	ctx, s.cancel = context.WithCancel(ctx)
	defer s.cancel()

	d := loop.New(s.win, ctrl)
	d.SetLogger(s.log)
	d.AddObserver(loop.ObserverFunc(func(frame int, t float64) {
		if s.win.ShouldClose() {
			s.cancel()
			return
		}
		for _, k := range pressedKeys() {
			if k == "p" {
				s.screenshot()
				continue
			}
			if ctrl.Key(k) == neural.Exit {
				s.cancel()
			}
		}
	}))
	return d.RunLive(ctx, loop.LiveConfig{Step: 1})
}
