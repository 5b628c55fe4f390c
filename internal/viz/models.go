package viz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/artloop/internal/config"
	"github.com/san-kum/artloop/internal/neural"
)

var animationInfo = map[string]string{
	"contours": "drifting sine ridges",
	"neural":   "layer configurator",
	"rose":     "modulated rose curves",
}

// NewContours builds the contour animation from cfg.
func NewContours(cfg *config.Config, log *slog.Logger) CurveModel {
	c := cfg.Contours
	return NewCurveModel(c.Contour(), CurveOptions{
		Title:      "contours",
		WorldW:     float64(c.Width),
		WorldH:     float64(c.Height),
		Step:       c.Step,
		FPS:        c.FPS,
		Background: c.BackgroundRGB(),
		OutDir:     cfg.DataDir,
		Logger:     log,
	})
}

// NewRose builds a live rose animation. One full sweep from Start to End
// takes Frames ticks.
func NewRose(cfg *config.Config, log *slog.Logger) CurveModel {
	r := cfg.Rose
	step := config.DefaultStep
	if r.Frames > 1 {
		step = (r.End - r.Start) / float64(r.Frames-1)
	}
	return NewCurveModel(r.Rose(), CurveOptions{
		Title:      "rose",
		WorldW:     float64(r.Width),
		WorldH:     float64(r.Height),
		Step:       step,
		FPS:        r.FPS,
		Background: r.BackgroundRGB(),
		OutDir:     cfg.DataDir,
		Logger:     log,
	})
}

// NewNeural builds the configurator from cfg.
func NewNeural(cfg *config.Config, log *slog.Logger) (NeuralModel, error) {
	n := cfg.Neural
	keys, err := n.Keymap()
	if err != nil {
		return NeuralModel{}, err
	}
	ctrl, err := neural.NewController(n.Config(), keys, neural.NewDiagram(neural.NewRand(n.Seed)))
	if err != nil {
		return NeuralModel{}, err
	}
	ctrl.SetLogger(log)
	return NewNeuralModel(ctrl, float64(n.Width), float64(n.Height), log), nil
}

// NewAnimation returns the terminal model for a named animation.
func NewAnimation(name string, cfg *config.Config, log *slog.Logger) (tea.Model, error) {
	switch name {
	case "contours":
		return NewContours(cfg, log), nil
	case "rose":
		return NewRose(cfg, log), nil
	case "neural":
		return NewNeural(cfg, log)
	default:
		return nil, fmt.Errorf("viz: unknown animation %q", name)
	}
}

// releaser is a model that holds resources, such as an open recording,
// past the end of its program.
type releaser interface {
	Release() error
}

// Run starts a program for m on the alternate screen and returns the
// error the model stopped with, if it keeps one. The program also stops
// when ctx is done, and that is a clean exit.
func Run(ctx context.Context, m tea.Model) error {
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return finish(ctx, final, err)
}

// finish releases whatever the final model still holds and folds its
// error into the program's.
func finish(ctx context.Context, final tea.Model, err error) error {
	if ctx.Err() != nil && (errors.Is(err, tea.ErrProgramKilled) ||
		errors.Is(err, tea.ErrInterrupted) || errors.Is(err, ctx.Err())) {
		err = nil
	}
	var merr error
	switch f := final.(type) {
	case releaser:
		merr = f.Release()
	case interface{ Err() error }:
		merr = f.Err()
	}
	return errors.Join(err, merr)
}
