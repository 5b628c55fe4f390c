package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gogpu/gg"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/artloop/internal/capture"
	"github.com/san-kum/artloop/internal/config"
	"github.com/san-kum/artloop/internal/curve"
	"github.com/san-kum/artloop/internal/export"
	"github.com/san-kum/artloop/internal/gui"
	"github.com/san-kum/artloop/internal/loop"
	"github.com/san-kum/artloop/internal/neural"
	"github.com/san-kum/artloop/internal/pen"
	"github.com/san-kum/artloop/internal/raster"
	"github.com/san-kum/artloop/internal/storage"
	"github.com/san-kum/artloop/internal/tui"
	"github.com/san-kum/artloop/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	// Frame and timing
	fps    int
	frames int
	step   float64
	atTime float64
	// Output
	uiMode  string
	outPath string
	codec   string
	preview bool
	// Curve parameters
	seed   uint64
	size   float64
	petalN float64
	petalD float64
	index  int
	width  int
	// Text
	fontSize float64
)

var logger = slog.Default()

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:           "artloop",
		Short:         "generative line-art animations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, "")
			if err != nil {
				return err
			}
			return viz.RunInteractive(cmd.Context(), cfg, logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	contoursCmd := &cobra.Command{
		Use:   "contours",
		Short: "animate drifting sine contours",
		Args:  cobra.NoArgs,
		RunE:  runContours,
	}
	contoursCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	contoursCmd.Flags().IntVar(&frames, "frames", 0, "stop after this many frames (0 runs until closed)")
	contoursCmd.Flags().Float64Var(&step, "step", config.DefaultStep, "time step per frame")
	contoursCmd.Flags().StringVar(&uiMode, "ui", "tui", "output: tui, window or png")
	contoursCmd.Flags().StringVar(&outPath, "out", "contours.png", "png output path")
	contoursCmd.Flags().Float64Var(&atTime, "time", 0, "time of the png frame")

	neuralCmd := &cobra.Command{
		Use:   "neural",
		Short: "interactive neural network layer configurator",
		Args:  cobra.NoArgs,
		RunE:  runNeural,
	}
	neuralCmd.Flags().StringVar(&uiMode, "ui", "tui", "output: tui, window or png")
	neuralCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for activations and weights (0 picks one)")
	neuralCmd.Flags().StringVar(&outPath, "out", "neural.png", "png output path")
	neuralCmd.Flags().Float64Var(&fontSize, "font-size", raster.DefaultFontSize, "panel text size (png)")

	roseCmd := &cobra.Command{
		Use:   "rose",
		Short: "record rotating rose curves to a video file",
		Args:  cobra.NoArgs,
		RunE:  runRose,
	}
	roseCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	roseCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "video frame rate")
	roseCmd.Flags().StringVar(&codec, "codec", string(capture.CodecMJPEG), "codec: "+strings.Join(capture.Codecs(), ", "))
	roseCmd.Flags().StringVar(&outPath, "out", config.DefaultRoseOutput, "video output path")
	roseCmd.Flags().Float64Var(&size, "size", 300, "outer rose scale")
	roseCmd.Flags().Float64Var(&petalN, "n", 0, "fixed petal numerator (0 modulates it)")
	roseCmd.Flags().Float64Var(&petalD, "d", 5, "petal denominator")
	roseCmd.Flags().BoolVar(&preview, "preview", false, "show an ascii preview while recording")

	svgCmd := &cobra.Command{
		Use:   "svg [contours|rose|neural]",
		Short: "export one frame as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().Float64Var(&atTime, "time", 0, "frame time")
	svgCmd.Flags().StringVar(&outPath, "out", "", "output path (default <animation>.svg)")
	svgCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (neural)")

	plotCmd := &cobra.Command{
		Use:   "plot [contours|rose|run_id]",
		Short: "plot one curve, or the hue log of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotCurve,
	}
	plotCmd.Flags().Float64Var(&atTime, "time", 0, "frame time")
	plotCmd.Flags().IntVar(&index, "index", 0, "curve index within the frame")
	plotCmd.Flags().IntVar(&width, "width", 80, "plot width")
	plotCmd.Flags().StringVar(&outPath, "out", "", "also write the curve as svg")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [animation]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			anims := config.Animations()
			if len(args) > 0 {
				anims = args
			}
			for _, a := range anims {
				presets := config.ListPresets(a)
				if len(presets) == 0 {
					fmt.Printf("no presets for animation: %s\n", a)
					continue
				}
				fmt.Printf("presets for %s:\n", a)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(contoursCmd, neuralCmd, roseCmd, svgCmd, plotCmd, listCmd, showCmd, presetsCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)
	return nil
}

// loadConfig resolves defaults, preset and config file, then applies the
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command, animation string) (*config.Config, error) {
	presetName := preset
	if animation == "" {
		presetName = ""
	}
	cfg, err := config.Resolve(animation, presetName, configFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	viz.SetTheme(cfg.Theme)

	changed := cmd.Flags().Changed
	switch animation {
	case "contours":
		if changed("fps") {
			cfg.Contours.FPS = fps
		}
		if changed("step") {
			cfg.Contours.Step = step
		}
		if changed("frames") {
			cfg.Contours.Frames = frames
		}
	case "neural":
		if changed("seed") {
			cfg.Neural.Seed = seed
		}
	case "rose":
		if changed("frames") {
			cfg.Rose.Frames = frames
		}
		if changed("fps") {
			cfg.Rose.FPS = fps
		}
		if changed("codec") {
			cfg.Rose.Codec = codec
			if !changed("out") {
				cfg.Rose.Output = strings.TrimSuffix(cfg.Rose.Output, filepath.Ext(cfg.Rose.Output)) +
					capture.Codec(codec).DefaultExt()
			}
		}
		if changed("out") {
			cfg.Rose.Output = outPath
		}
		if changed("size") {
			cfg.Rose.Size = size
		}
		if changed("n") {
			cfg.Rose.N = petalN
		}
		if changed("d") {
			cfg.Rose.D = petalD
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runContours(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "contours")
	if err != nil {
		return err
	}
	c := cfg.Contours

	switch uiMode {
	case "tui":
		return viz.Run(cmd.Context(), viz.NewContours(cfg, logger))
	case "window":
		stats, err := gui.RunCurves(cmd.Context(), c.Contour(),
			loop.LiveConfig{Step: c.Step, MaxFrames: c.Frames},
			gui.Options{
				Title:      "contours",
				Width:      c.Width,
				Height:     c.Height,
				FPS:        c.FPS,
				Background: c.BackgroundRGB(),
				ShotDir:    cfg.DataDir,
				Logger:     logger,
			})
		if err != nil {
			return err
		}
		fmt.Printf("%d frames in %v (%.1f fps)\n", stats.Frames, stats.Elapsed.Round(time.Millisecond), stats.FPS())
		return nil
	case "png":
		surface, err := raster.New(c.Width, c.Height, c.BackgroundRGB(), raster.WithLogger(logger))
		if err != nil {
			return err
		}
		defer surface.Close()
		d := loop.New(surface, loop.CurvePainter{Gen: c.Contour()})
		d.SetLogger(logger)
		if err := d.Frame(atTime); err != nil {
			return err
		}
		path := "contours.png"
		if cmd.Flags().Changed("out") {
			path = outPath
		}
		if err := surface.SavePNG(path); err != nil {
			return err
		}
		fmt.Printf("saved %s (t=%.2f)\n", path, atTime)
		return nil
	default:
		return fmt.Errorf("unknown --ui %q (available: tui, window, png)", uiMode)
	}
}

func runNeural(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "neural")
	if err != nil {
		return err
	}
	n := cfg.Neural

	switch uiMode {
	case "tui":
		m, err := viz.NewNeural(cfg, logger)
		if err != nil {
			return err
		}
		return viz.Run(cmd.Context(), m)
	case "window":
		keys, err := n.Keymap()
		if err != nil {
			return err
		}
		ctrl, err := neural.NewController(n.Config(), keys, neural.NewDiagram(neural.NewRand(n.Seed)))
		if err != nil {
			return err
		}
		ctrl.SetLogger(logger)
		_, err = gui.RunNeural(cmd.Context(), ctrl, gui.Options{
			Title:      "neural",
			Width:      n.Width,
			Height:     n.Height,
			FPS:        config.DefaultFPS,
			Background: n.BackgroundRGB(),
			ShotDir:    cfg.DataDir,
			Logger:     logger,
		})
		return err
	case "png":
		ctrl, err := neural.NewController(n.Config(), neural.DefaultKeymap(), neural.NewDiagram(neural.NewRand(n.Seed)))
		if err != nil {
			return err
		}
		surface, err := raster.New(n.Width, n.Height, n.BackgroundRGB(),
			raster.WithLogger(logger), raster.WithFontSize(fontSize))
		if err != nil {
			return err
		}
		defer surface.Close()
		if err := loop.New(surface, ctrl).Frame(0); err != nil {
			return err
		}
		path := "neural.png"
		if cmd.Flags().Changed("out") {
			path = outPath
		}
		if err := surface.SavePNG(path); err != nil {
			return err
		}
		fmt.Printf("saved %s (layers %v)\n", path, n.Layers)
		return nil
	default:
		return fmt.Errorf("unknown --ui %q (available: tui, window, png)", uiMode)
	}
}

func runRose(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "rose")
	if err != nil {
		return err
	}
	r := cfg.Rose

	times, err := loop.Linspace(r.Start, r.End, r.Frames)
	if err != nil {
		return err
	}

	surface, err := raster.New(r.Width, r.Height, r.BackgroundRGB(), raster.WithLogger(logger))
	if err != nil {
		return err
	}
	defer surface.Close()

	last := pen.NewRecorder()
	painter := loop.CurvePainter{Gen: r.Rose()}
	d := loop.New(pen.Tee{surface, last}, painter)
	d.SetLogger(logger)

	frameLog := make([]storage.FrameRecord, 0, len(times))
	d.AddObserver(loop.ObserverFunc(func(frame int, t float64) {
		fr := storage.FrameRecord{Frame: frame, Time: t}
		if specs := painter.Scene(t).Specs; len(specs) > 0 {
			fr.Hue = specs[0].Hue
		}
		frameLog = append(frameLog, fr)
	}))

	var strokes func() []pen.Stroke
	if preview {
		strokes = last.Strokes
	}
	progress := tui.NewLiveRenderer(os.Stderr, "rose", len(times), 10, strokes)
	progress.Extent = float64(max(r.Width, r.Height))
	d.AddObserver(progress)

	rec := capture.NewRecorder(surface, image.Rectangle{}, capture.OpenWith(r.Encoder()))
	rec.SetLogger(logger)

	fmt.Printf("recording %d frames to %s (%s, %d fps)...\n", len(times), r.Output, r.Codec, r.FPS)
	progress.Start()
	rep, runErr := capture.Record(cmd.Context(), d, rec, times)
	progress.Stop()

	if rep.Written > 0 {
		runID, err := saveRun(cfg, rep, frameLog)
		if err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("save run: %w", err))
		} else {
			fmt.Printf("run id: %s\n", runID)
		}
	}

	fmt.Printf("completed in %v\n", rep.Elapsed.Round(time.Millisecond))
	fmt.Printf("frames: %d written, %d draw errors\n", rep.Written, rep.FrameErrors)
	return runErr
}

func saveRun(cfg *config.Config, rep capture.Report, frames []storage.FrameRecord) (string, error) {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	r := cfg.Rose
	return st.Save(storage.RunMetadata{
		Animation:   "rose",
		Output:      r.Output,
		Codec:       r.Codec,
		FPS:         r.FPS,
		Width:       rep.Width,
		Height:      rep.Height,
		Frames:      r.Frames,
		Written:     rep.Written,
		FrameErrors: rep.FrameErrors,
		Start:       r.Start,
		End:         r.End,
		Elapsed:     rep.Elapsed.Seconds(),
		Params: map[string]float64{
			"size":      r.Size,
			"n":         r.N,
			"d":         r.D,
			"passes":    float64(r.Passes),
			"pass_step": r.PassStep,
		},
	}, frames)
}

// framePainter returns the painter and canvas size of an animation.
func framePainter(cfg *config.Config, animation string) (loop.Painter, int, int, string, error) {
	switch animation {
	case "contours":
		c := cfg.Contours
		return loop.CurvePainter{Gen: c.Contour()}, c.Width, c.Height, c.Background, nil
	case "rose":
		r := cfg.Rose
		return loop.CurvePainter{Gen: r.Rose()}, r.Width, r.Height, r.Background, nil
	case "neural":
		n := cfg.Neural
		ctrl, err := neural.NewController(n.Config(), nil, neural.NewDiagram(neural.NewRand(n.Seed)))
		if err != nil {
			return nil, 0, 0, "", err
		}
		return ctrl, n.Width, n.Height, n.Background, nil
	default:
		return nil, 0, 0, "", fmt.Errorf("unknown animation %q (available: %v)", animation, config.Animations())
	}
}

func exportSVG(cmd *cobra.Command, args []string) error {
	animation := args[0]
	cfg, err := loadConfig(cmd, animation)
	if err != nil {
		return err
	}
	painter, w, h, bg, err := framePainter(cfg, animation)
	if err != nil {
		return err
	}
	cmds, err := painter.Paint(atTime)
	if err != nil {
		return err
	}
	path := animation + ".svg"
	if cmd.Flags().Changed("out") {
		path = outPath
	}
	if err := export.WriteFile(path, export.CommandsToSVG(cmds, w, h, bg)); err != nil {
		return err
	}
	fmt.Printf("saved %s (%d commands)\n", path, len(cmds))
	return nil
}

func plotCurve(cmd *cobra.Command, args []string) error {
	var gen curve.Generator
	switch args[0] {
	case "contours", "rose":
		cfg, err := loadConfig(cmd, args[0])
		if err != nil {
			return err
		}
		if args[0] == "contours" {
			gen = cfg.Contours.Contour()
		} else {
			gen = cfg.Rose.Rose()
		}
	default:
		return plotRun(cmd, args[0])
	}

	specs := gen.Specs(atTime)
	if index < 0 || index >= len(specs) {
		return fmt.Errorf("index %d out of range (frame has %d curves)", index, len(specs))
	}
	spec := specs[index]
	pts, err := gen.Sample(spec)
	if err != nil {
		return err
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	minX, minY, maxX, maxY := pts.Bounds()
	fmt.Printf("%s %d at t=%.2f: %d points, hue %.3f\n", spec.Family, spec.Index, atTime, len(pts), spec.Hue)
	fmt.Printf("x: [%.1f, %.1f]  y: [%.1f, %.1f]\n\n", minX, maxX, minY, maxY)

	if spec.Family == curve.FamilyRose {
		fmt.Println(asciigraph.Plot(xs, asciigraph.Height(10), asciigraph.Width(width), asciigraph.Caption("x")))
		fmt.Println()
	}
	fmt.Println(asciigraph.Plot(ys, asciigraph.Height(10), asciigraph.Width(width), asciigraph.Caption("y")))

	if cmd.Flags().Changed("out") && outPath != "" {
		svg := export.CurveToSVG(pts, 800, 600, curve.HSV(spec.Hue, gen.Saturation(), gen.Value()).Hex())
		if err := export.WriteFile(outPath, svg); err != nil {
			return err
		}
		fmt.Printf("\nsaved %s\n", outPath)
	}
	return nil
}

func plotRun(cmd *cobra.Command, runID string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	hues := make([]float64, len(frames))
	for i, f := range frames {
		hues[i] = f.Hue
	}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("animation: %s\n", meta.Animation)
	fmt.Printf("frames: %d\n\n", len(frames))
	fmt.Println(asciigraph.Plot(hues,
		asciigraph.Height(10),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption("hue per frame"),
	))
	fmt.Println(viz.HueStrip(hues, 0.8, 1))
	return nil
}

// runStore opens the store of the resolved data directory, which a config
// file can move with data_dir.
func runStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tANIMATION\tTIME\tFRAMES\tERRORS\tCODEC\tOUTPUT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%d\t%s\t%s\n",
			run.ID,
			run.Animation,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Written,
			run.Frames,
			run.FrameErrors,
			run.Codec,
			run.Output,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
