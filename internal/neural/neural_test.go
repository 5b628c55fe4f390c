package neural_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/artloop/internal/neural"
	"github.com/san-kum/artloop/internal/pen"
)

// fixedRand always returns the same value.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

var _ = Describe("Transition", func() {
	var cfg neural.Config

	BeforeEach(func() {
		cfg = neural.DefaultConfig()
	})

	It("does not modify its input", func() {
		next, action := neural.Transition(cfg, neural.Increase)
		Expect(action).To(Equal(neural.Redraw))
		Expect(next.Layers).To(Equal([]int{5, 6, 6, 4}))
		Expect(cfg.Layers).To(Equal([]int{4, 6, 6, 4}))
	})

	DescribeTable("selection wraps",
		func(start int, ev neural.Event, want int) {
			cfg.Selected = start
			next, action := neural.Transition(cfg, ev)
			Expect(action).To(Equal(neural.Redraw))
			Expect(next.Selected).To(Equal(want))
		},
		Entry("prev from first", 0, neural.SelectPrev, 3),
		Entry("next from last", 3, neural.SelectNext, 0),
		Entry("next", 1, neural.SelectNext, 2),
		Entry("prev", 2, neural.SelectPrev, 1),
	)

	It("ignores increase at the maximum", func() {
		cfg.Layers[0] = neural.MaxNeurons
		next, action := neural.Transition(cfg, neural.Increase)
		Expect(action).To(Equal(neural.Ignore))
		Expect(next.Layers[0]).To(Equal(neural.MaxNeurons))
	})

	It("ignores decrease at the minimum", func() {
		cfg.Layers[2] = neural.MinNeurons
		cfg.Selected = 2
		next, action := neural.Transition(cfg, neural.Decrease)
		Expect(action).To(Equal(neural.Ignore))
		Expect(next.Layers[2]).To(Equal(neural.MinNeurons))
	})

	It("resets layers and keeps the selection", func() {
		cfg.Layers = []int{9, 1, 2, 10}
		cfg.Selected = 2
		next, action := neural.Transition(cfg, neural.Reset)
		Expect(action).To(Equal(neural.Redraw))
		Expect(next.Layers).To(Equal([]int{4, 6, 6, 4}))
		Expect(next.Selected).To(Equal(2))
	})

	It("asks to exit on quit", func() {
		next, action := neural.Transition(cfg, neural.Quit)
		Expect(action).To(Equal(neural.Exit))
		Expect(next).To(Equal(cfg))
	})

	It("keeps every layer within bounds under any key sequence", func() {
		keys := neural.DefaultKeymap()
		seq := []string{"up", "up", "up", "up", "up", "up", "up", "right", "down", "down",
			"down", "down", "down", "down", "down", "down", "left", "left", "up", "r", "down"}
		state := neural.DefaultConfig()
		for round := 0; round < 5; round++ {
			for _, k := range seq {
				before := state.Clone()
				var action neural.Action
				state, action = keys.Dispatch(state, k)
				Expect(state.Validate()).To(Succeed())

				if action == neural.Ignore {
					Expect(state).To(Equal(before))
				}
				sel := before.Selected
				switch k {
				case "up":
					Expect(state.Layers[sel]).To(BeNumerically(">=", before.Layers[sel]))
				case "down":
					Expect(state.Layers[sel]).To(BeNumerically("<=", before.Layers[sel]))
				}
			}
		}
	})
})

var _ = Describe("Keymap", func() {
	It("maps arrows and letters", func() {
		keys := neural.DefaultKeymap()
		for key, want := range map[string]neural.Event{
			"left": neural.SelectPrev, "right": neural.SelectNext,
			"up": neural.Increase, "down": neural.Decrease,
			"r": neural.Reset, "q": neural.Quit, "Q": neural.Quit,
		} {
			ev, ok := keys.Lookup(key)
			Expect(ok).To(BeTrue(), key)
			Expect(ev).To(Equal(want), key)
		}
	})

	It("ignores unbound keys", func() {
		cfg := neural.DefaultConfig()
		next, action := neural.DefaultKeymap().Dispatch(cfg, "x")
		Expect(action).To(Equal(neural.Ignore))
		Expect(next).To(Equal(cfg))
	})

	It("parses event names", func() {
		keys, err := neural.ParseKeymap(map[string]string{"A": "select-prev", "d": "select-next"})
		Expect(err).NotTo(HaveOccurred())
		Expect(keys).To(HaveKeyWithValue("a", neural.SelectPrev))

		_, err = neural.ParseKeymap(map[string]string{"x": "explode"})
		Expect(err).To(MatchError(neural.ErrUnknownEvent))
	})
})

var _ = Describe("Config", func() {
	It("validates bounds and selection", func() {
		Expect(neural.DefaultConfig().Validate()).To(Succeed())
		Expect(neural.Config{}.Validate()).To(MatchError(neural.ErrNoLayers))
		Expect(neural.Config{Layers: []int{0}}.Validate()).To(MatchError(neural.ErrLayerSize))
		Expect(neural.Config{Layers: []int{11}}.Validate()).To(MatchError(neural.ErrLayerSize))
		Expect(neural.Config{Layers: []int{3}, Selected: 1}.Validate()).To(MatchError(neural.ErrSelection))
	})
})

var _ = Describe("Layout", func() {
	It("places layers 150 apart and centres columns", func() {
		layout := neural.Layout(neural.DefaultConfig())
		Expect(layout).To(HaveLen(4))
		Expect(layout[0]).To(HaveLen(4))
		Expect(layout[1]).To(HaveLen(6))

		Expect(layout[0][0].X).To(Equal(-300.0))
		Expect(layout[3][0].X).To(Equal(150.0))

		// spacing = min(40, 300/6) = 40
		Expect(layout[0][0].Y).To(Equal(-60.0))
		Expect(layout[0][3].Y).To(Equal(60.0))
		Expect(layout[1][0].Y).To(Equal(-100.0))
	})

	It("tightens spacing for big layers", func() {
		layout := neural.Layout(neural.Config{Layers: []int{10, 1}})
		Expect(layout[0][1].Y - layout[0][0].Y).To(BeNumerically("~", 30, 1e-9))
		Expect(layout[1][0].Y).To(Equal(0.0))
	})
})

var _ = Describe("Diagram", func() {
	It("draws neurons, synapses and the panel", func() {
		d := neural.NewDiagram(fixedRand(0.5))
		cmds := d.Commands(neural.DefaultConfig())

		var discs, texts []pen.Command
		for _, c := range cmds {
			switch c.Kind {
			case pen.KindDisc:
				discs = append(discs, c)
			case pen.KindText:
				texts = append(texts, c)
			}
		}
		Expect(discs).To(HaveLen(20))
		Expect(discs[0].Radius).To(Equal(10.0))

		// 4·6 + 6·6 + 6·4 synapses
		Expect(pen.Strokes(cmds)).To(HaveLen(84))

		Expect(texts[0].Text).To(Equal("Neural Network Layer Configurator"))
		Expect(texts[0].X).To(Equal(200.0))
		Expect(texts[0].Y).To(Equal(250.0))

		last := texts[len(texts)-1]
		Expect(last.Text).To(Equal("Layer 4: 4 neurons"))
		Expect(last.Y).To(Equal(250.0 - 12*30))
		Expect(last.Bold).To(BeFalse())

		var marked []pen.Command
		for _, c := range texts {
			if strings.HasSuffix(c.Text, "<<<") {
				marked = append(marked, c)
			}
		}
		Expect(marked).To(HaveLen(1))
		Expect(marked[0].Text).To(HavePrefix("Layer 1:"))
		Expect(marked[0].Bold).To(BeTrue())
	})

	It("colours by activation and weight", func() {
		d := neural.NewDiagram(fixedRand(1))
		d.NoPanel = true
		cmds := d.Commands(neural.Config{Layers: []int{1, 1}})

		strokes := pen.Strokes(cmds)
		Expect(strokes).To(HaveLen(1))
		Expect(strokes[0].Width).To(BeNumerically("~", 2, 1e-9))
		Expect(strokes[0].Color).To(Equal(neural.WeightColor(1)))

		Expect(neural.ActivationColor(0).B).To(Equal(1.0))
		Expect(neural.ActivationColor(1).R).To(Equal(1.0))
	})
})

var _ = Describe("Controller", func() {
	It("redraws only on accepted keys", func() {
		c, err := neural.NewController(neural.DefaultConfig(), nil, neural.NewDiagram(fixedRand(0.3)))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Dirty()).To(BeTrue())

		_, err = c.Paint(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Dirty()).To(BeFalse())

		Expect(c.Key("x")).To(Equal(neural.Ignore))
		Expect(c.Dirty()).To(BeFalse())

		Expect(c.Key("up")).To(Equal(neural.Redraw))
		Expect(c.Dirty()).To(BeTrue())
		Expect(c.Config().Layers[0]).To(Equal(5))

		Expect(c.Key("q")).To(Equal(neural.Exit))
	})

	It("repaints the same frame until the configuration changes", func() {
		c, err := neural.NewController(neural.DefaultConfig(), nil, neural.NewDiagram(neural.NewRand(11)))
		Expect(err).NotTo(HaveOccurred())

		first, err := c.Paint(0)
		Expect(err).NotTo(HaveOccurred())
		again, err := c.Paint(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(again).To(Equal(first))

		Expect(c.Key("down")).To(Equal(neural.Redraw))
		changed, err := c.Paint(2)
		Expect(err).NotTo(HaveOccurred())
		Expect(changed).NotTo(Equal(first))
		Expect(pen.Strokes(changed)).To(HaveLen(len(pen.Strokes(first)) - 6))
	})

	It("rejects an invalid starting configuration", func() {
		_, err := neural.NewController(neural.Config{Layers: []int{4, 20}}, nil, neural.NewDiagram(fixedRand(0)))
		Expect(err).To(MatchError(neural.ErrLayerSize))
	})
})
