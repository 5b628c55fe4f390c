package viz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/artloop/internal/config"
)

const (
	stateMenu = iota
	statePreset
	stateRun
)

const basePreset = "(config)"

// App is the launcher: pick an animation, then a preset, then run it.
type App struct {
	state, cursor int
	animations    []string
	selected      string
	presets       []string
	presetCursor  int
	base          *config.Config
	log           *slog.Logger
	active        tea.Model
	size          tea.WindowSizeMsg
	err           error
}

func NewApp(base *config.Config, log *slog.Logger) App {
	if base == nil {
		base = config.DefaultConfig()
	}
	if log == nil {
		log = slog.Default()
	}
	return App{
		state:      stateMenu,
		animations: config.Animations(),
		base:       base,
		log:        log,
		size:       tea.WindowSizeMsg{Width: 80, Height: 24},
	}
}

func (a App) Init() tea.Cmd { return nil }

// Err returns the running animation's error, or the last launch failure.
func (a App) Err() error {
	if e, ok := a.active.(interface{ Err() error }); ok && e.Err() != nil {
		return e.Err()
	}
	return a.err
}

// Release lets the running animation release what it holds.
func (a App) Release() error {
	if r, ok := a.active.(releaser); ok {
		return r.Release()
	}
	return a.Err()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.size = size
	}
	switch a.state {
	case stateMenu:
		if key, ok := msg.(tea.KeyMsg); ok {
			return a.menuKey(key)
		}
	case statePreset:
		if key, ok := msg.(tea.KeyMsg); ok {
			return a.presetKey(key)
		}
	case stateRun:
		next, cmd := a.active.Update(msg)
		a.active = next
		return a, cmd
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.animations)-1 {
			a.cursor++
		}
	case "enter", " ":
		if len(a.animations) == 0 {
			return a, nil
		}
		a.selected = a.animations[a.cursor]
		a.presets = append([]string{basePreset}, config.ListPresets(a.selected)...)
		a.state, a.presetCursor = statePreset, 0
	}
	return a, nil
}

func (a App) presetKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "q", "esc":
		a.state = stateMenu
	case "up", "k":
		if a.presetCursor > 0 {
			a.presetCursor--
		}
	case "down", "j":
		if a.presetCursor < len(a.presets)-1 {
			a.presetCursor++
		}
	case "enter", " ", "s":
		return a.start()
	}
	return a, nil
}

func (a App) start() (App, tea.Cmd) {
	cfg := a.base
	if name := a.presets[a.presetCursor]; name != basePreset {
		if p := config.GetPreset(a.selected, name); p != nil {
			cfg = p.Clone()
			cfg.DataDir, cfg.Theme = a.base.DataDir, a.base.Theme
		}
	}
	m, err := NewAnimation(a.selected, cfg, a.log)
	if err != nil {
		a.err = err
		return a, nil
	}
	a.err = nil
	m, _ = m.Update(a.size)
	a.active, a.state = m, stateRun
	return a, a.active.Init()
}

func (a App) View() string {
	switch a.state {
	case stateMenu:
		return a.viewList("ARTLOOP", "generative line art", a.animations, a.cursor, animationInfo, "j/k navigate  enter select  q quit")
	case statePreset:
		return a.viewList(strings.ToUpper(a.selected), animationInfo[a.selected], a.presets, a.presetCursor, nil, "j/k select  enter start  esc back")
	case stateRun:
		return a.active.View()
	}
	return ""
}

func (a App) viewList(title, sub string, items []string, cursor int, info map[string]string, hint string) string {
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText(title, CurrentTheme.Primary, CurrentTheme.Secondary))
	b.WriteString("\n    " + hintStyle().Render(sub) + "\n    " + Separator(25) + "\n\n")
	for i, name := range items {
		desc := info[name]
		if i == cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", titleStyle().Render("▸"), selectedStyle().Render(fmt.Sprintf("%-12s", name)), valueStyle().Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", labelStyle().Width(12).Render(name), hintStyle().Render(desc)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + errorStyle().Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hintStyle().Render(hint) + "\n")
	return b.String()
}

// RunInteractive opens the launcher.
func RunInteractive(ctx context.Context, base *config.Config, log *slog.Logger) error {
	return Run(ctx, NewApp(base, log))
}
