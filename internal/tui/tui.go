// Package tui plays the timeline in a terminal. The bubbletea Update loop
// owns the view controller and playback engine, so no locking is needed.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/logging"
	"github.com/agentstation/stagemap/pkg/minichart"
	"github.com/agentstation/stagemap/pkg/playback"
	"github.com/agentstation/stagemap/pkg/render"
	"github.com/agentstation/stagemap/pkg/timeline"
	"github.com/agentstation/stagemap/pkg/view"
)

// Default grid before the first window size message.
const (
	defaultWidth  = 80
	defaultHeight = 24

	// rows used by everything except the map
	chromeRows = 10
	listRows   = 5
)

// Model is the bubbletea model for the terminal player.
type Model struct {
	controller *view.Controller
	engine     *playback.Engine
	sched      *scheduler
	surface    *surface
	markers    *render.Markers
	chart      *minichart.Chart

	last    view.Change
	loadErr error
	speed   int

	width, height int
	styles        styles
	logger        *zerolog.Logger
}

var _ tea.Model = (*Model)(nil)

// Option configures a Model.
type Option func(*config)

type config struct {
	heat     bool
	interval time.Duration
	loadErr  error
	logger   *zerolog.Logger
	noColor  bool
}

// WithHeat declares whether heat mode is available.
func WithHeat(enabled bool) Option {
	return func(c *config) { c.heat = enabled }
}

// WithInterval sets the initial time spent on each month.
func WithInterval(d time.Duration) Option {
	return func(c *config) { c.interval = d }
}

// WithLoadError puts the player in the error state.
func WithLoadError(err error) Option {
	return func(c *config) { c.loadErr = err }
}

// WithLogger sets the logger. Logs must not go to the terminal the
// program draws on.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithNoColor disables colour.
func WithNoColor(disabled bool) Option {
	return func(c *config) { c.noColor = disabled }
}

// New creates a player for tl.
func New(tl *timeline.Timeline, opts ...Option) *Model {
	cfg := &config{
		heat:     true,
		interval: constants.DefaultPlaybackInterval,
		logger:   logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Model{
		sched:   &scheduler{},
		loadErr: cfg.loadErr,
		speed:   nearestSpeed(cfg.interval),
		width:   defaultWidth,
		height:  defaultHeight,
		styles:  newStyles(cfg.noColor),
		logger:  cfg.logger,
	}
	m.controller = view.NewController(tl, view.WithHeat(cfg.heat), view.WithLogger(cfg.logger))
	m.engine = playback.New(m.controller, m.sched,
		playback.WithInterval(cfg.interval),
		playback.WithLogger(cfg.logger),
	)
	m.controller.SetInterrupter(m.engine)

	m.surface = newSurface(m.mapSize())
	m.markers = render.NewMarkers(m.surface, nil)
	m.chart = minichart.FromTimeline(m.controller.Timeline(), m.controller.State().Index)

	m.controller.Subscribe(m.apply)
	m.apply(m.controller.Current())
	return m
}

func (m *Model) apply(ch view.Change) {
	m.last = ch
	m.chart.SetActive(ch.State.Index)
	m.markers.Apply(ch)
}

// Status reports the session status.
func (m *Model) Status() view.Status {
	if m.loadErr != nil {
		return view.StatusError
	}
	return m.controller.Status()
}

// State returns the current month index and mode.
func (m *Model) State() view.State {
	return m.controller.State()
}

// Playing reports whether playback is running.
func (m *Model) Playing() bool {
	return m.engine.State() == playback.Playing
}

// Interval returns the playback interval.
func (m *Model) Interval() time.Duration {
	return m.engine.Interval()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.surface.resize(m.mapSize())

	case tickMsg:
		m.sched.fire(msg.task)

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	}
	return m, m.sched.drain()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.engine.Stop()
		return tea.Quit
	}
	if m.Status() != view.StatusReady {
		return nil
	}

	idx := m.controller.State().Index
	last := m.controller.Len() - 1
	var err error
	switch msg.String() {
	case " ", "p":
		if m.Playing() {
			m.engine.Stop()
		} else {
			m.engine.Start()
		}
	case "right", "l":
		err = m.controller.UserSelect(min(idx+1, last))
	case "left", "h":
		err = m.controller.UserSelect(max(idx-1, 0))
	case "home", "g":
		err = m.controller.UserSelect(0)
	case "end", "G":
		err = m.controller.UserSelect(last)
	case "m":
		next := view.ModeHeat
		if m.controller.State().Mode == view.ModeHeat {
			next = view.ModePoints
		}
		err = m.controller.SetMode(next)
	case "+", "=":
		err = m.setSpeed(m.speed + 1)
	case "-", "_":
		err = m.setSpeed(m.speed - 1)
	}
	if err != nil {
		m.logger.Debug().Err(err).Str("key", msg.String()).Msg("Key ignored")
	}
	return nil
}

// setSpeed moves to PlaybackSpeeds[i], clamped; later entries are faster.
func (m *Model) setSpeed(i int) error {
	i = max(0, min(i, len(constants.PlaybackSpeeds)-1))
	m.speed = i
	return m.engine.SetInterval(constants.PlaybackSpeeds[i])
}

func nearestSpeed(d time.Duration) int {
	best := 0
	for i, s := range constants.PlaybackSpeeds {
		if (s - d).Abs() < (constants.PlaybackSpeeds[best] - d).Abs() {
			best = i
		}
	}
	return best
}

func (m *Model) mapSize() (int, int) {
	return max(m.width-2, 10), max(m.height-chromeRows-listRows, 4)
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
