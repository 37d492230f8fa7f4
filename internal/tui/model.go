package tui

import (
	"context"
	"log/slog"

	help "github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	spinner "github.com/charmbracelet/bubbles/spinner"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"spistory/internal/cache"
	"spistory/internal/dataset"
	"spistory/internal/logger"
	"spistory/internal/nav"
	"spistory/internal/scene"
)

// Loader produces the dataset once.
type Loader interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
}

// Options configures the host.
type Options struct {
	Context        context.Context
	Loader         Loader
	Scale          scene.Scale
	TopN           int
	SortComponents bool
	CaptionStyle   string // glamour standard style name
	Cache          cache.Cache
	Logger         *slog.Logger
}

type loadedMsg struct{ data *dataset.Dataset }

type loadErrMsg struct{ err error }

type Model struct {
	width  int
	height int

	opts    Options
	log     *slog.Logger
	machine *nav.Machine

	// Data
	data    *dataset.Dataset
	loading bool
	loadErr error

	// current scene, rebuilt on every state change
	sc      scene.Scene
	caption string
	bar     controlBar

	zoom    float64
	offsetX int
	offsetY int

	status      string
	helpVisible bool
	help        help.Model
	keys        keyMap
	spin        spinner.Model
	captions    *captionRenderer

	// hover state
	hovering bool
	hoverIdx int
	tooltip  string

	// country picker
	showPicker bool
	l          list.Model

	// record table
	showRecord bool
	tbl        table.Model

	// peer table of the sub-component view
	peers table.Model
}

func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	if opts.CaptionStyle == "" {
		opts.CaptionStyle = "dark"
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewMemoryCache(0, 0)
	}
	m := Model{
		opts:        opts,
		log:         opts.Logger,
		machine:     nav.New(),
		loading:     opts.Loader != nil,
		zoom:        1.0,
		status:      "spistory ready",
		helpVisible: true,
		help:        help.New(),
		keys:        defaultKeys(),
		hoverIdx:    -1,
		captions:    newCaptionRenderer(opts.Cache, opts.CaptionStyle),
	}
	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle))
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Countries"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.peers = table.New(table.WithFocused(false))
	if m.loading {
		m.status = "loading data"
	}
	m.rebuild()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.opts.Loader == nil {
		return nil
	}
	return tea.Batch(m.spin.Tick, m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	ctx, loader := m.opts.Context, m.opts.Loader
	return func() tea.Msg {
		d, err := loader.Load(ctx)
		if err != nil {
			return loadErrMsg{err: err}
		}
		return loadedMsg{data: d}
	}
}

// State returns the navigation state shown.
func (m Model) State() nav.State { return m.machine.State() }

// Scene returns the scene on screen.
func (m Model) Scene() scene.Scene { return m.sc }
