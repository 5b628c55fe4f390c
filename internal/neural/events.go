package neural

import (
	"fmt"
	"strings"
)

type Event int

const (
	SelectPrev Event = iota
	SelectNext
	Increase
	Decrease
	Reset
	Quit
)

var eventNames = map[Event]string{
	SelectPrev: "select-prev",
	SelectNext: "select-next",
	Increase:   "increase",
	Decrease:   "decrease",
	Reset:      "reset",
	Quit:       "quit",
}

func (e Event) String() string {
	if s, ok := eventNames[e]; ok {
		return s
	}
	return fmt.Sprintf("event(%d)", int(e))
}

type Action int

const (
	Ignore Action = iota
	Redraw
	Exit
)

func (a Action) String() string {
	switch a {
	case Ignore:
		return "ignore"
	case Redraw:
		return "redraw"
	case Exit:
		return "exit"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Transition applies ev to cfg. The input is never modified. Bounded
// changes that would leave [MinNeurons, MaxNeurons] are ignored.
func Transition(cfg Config, ev Event) (Config, Action) {
	next := cfg.Clone()
	n := len(next.Layers)

	switch ev {
	case SelectPrev, SelectNext:
		if n == 0 {
			return next, Ignore
		}
		step := 1
		if ev == SelectPrev {
			step = -1
		}
		next.Selected = ((next.Selected+step)%n + n) % n
		return next, Redraw

	case Increase, Decrease:
		if next.Selected < 0 || next.Selected >= n {
			return next, Ignore
		}
		size := next.Layers[next.Selected]
		if ev == Increase && size >= MaxNeurons {
			return next, Ignore
		}
		if ev == Decrease && size <= MinNeurons {
			return next, Ignore
		}
		if ev == Increase {
			next.Layers[next.Selected]++
		} else {
			next.Layers[next.Selected]--
		}
		return next, Redraw

	case Reset:
		next.Layers = DefaultLayers()
		if next.Selected >= len(next.Layers) {
			next.Selected = 0
		}
		return next, Redraw

	case Quit:
		return next, Exit
	}
	return next, Ignore
}

// Keymap binds key names to events. Names follow bubbletea's KeyMsg
// strings ("left", "up", "q", "ctrl+c").
type Keymap map[string]Event

func DefaultKeymap() Keymap {
	return Keymap{
		"left":   SelectPrev,
		"h":      SelectPrev,
		"right":  SelectNext,
		"l":      SelectNext,
		"up":     Increase,
		"k":      Increase,
		"down":   Decrease,
		"j":      Decrease,
		"r":      Reset,
		"q":      Quit,
		"esc":    Quit,
		"ctrl+c": Quit,
	}
}

func (k Keymap) Lookup(key string) (Event, bool) {
	ev, ok := k[strings.ToLower(key)]
	return ev, ok
}

// Dispatch looks up key and applies its event. Unbound keys are ignored.
func (k Keymap) Dispatch(cfg Config, key string) (Config, Action) {
	ev, ok := k.Lookup(key)
	if !ok {
		return cfg, Ignore
	}
	return Transition(cfg, ev)
}

// ParseKeymap builds a keymap from key → event-name pairs, as read from a
// config file.
func ParseKeymap(m map[string]string) (Keymap, error) {
	byName := make(map[string]Event, len(eventNames))
	for ev, name := range eventNames {
		byName[name] = ev
	}
	out := make(Keymap, len(m))
	for key, name := range m {
		ev, ok := byName[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q for key %q", ErrUnknownEvent, name, key)
		}
		out[strings.ToLower(key)] = ev
	}
	return out, nil
}
