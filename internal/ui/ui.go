package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tunepool/tunepool/internal/downloader"
	"github.com/tunepool/tunepool/internal/models"
	"github.com/tunepool/tunepool/internal/picker"
	"github.com/tunepool/tunepool/internal/pool"
	"github.com/tunepool/tunepool/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	TrackListView ViewState = iota
	ConfirmView
	DownloadView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	pool       *pool.Pool
	picker     *picker.Picker
	downloader *downloader.Downloader
	outputDir  string

	width    int
	height   int
	list     list.Model
	tracks   []models.Track
	selected *models.Track
	path     string
	err      error
	help     help.Model
	keys     keyMap
}

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	enter   key.Binding
	random  key.Binding
	back    key.Binding
	yes     key.Binding
	no      key.Binding
	restart key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "download")),
		random:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "random pick")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "back to list")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.enter, k.random},
		{k.back, k.yes, k.no},
		{k.restart, k.quit},
	}
}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Title + " " + i.track.DisplayArtist() }
func (i trackItem) Title() string       { return i.track.Title }
func (i trackItem) Description() string {
	desc := i.track.DisplayArtist()
	if i.track.Genre != models.UnknownField {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Genre)
	}
	return fmt.Sprintf("%s • %s", desc, shared.FormatDuration(i.track.Duration))
}

type tracksLoadedMsg struct {
	tracks []models.Track
	err    error
}

type downloadDoneMsg struct {
	path string
	err  error
}

// Opts contains the dependencies for creating a [Model].
type Opts struct {
	Ctx        context.Context
	Pool       *pool.Pool
	Picker     *picker.Picker
	Downloader *downloader.Downloader
	OutputDir  string
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(opts Opts) *Model {
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}
	if opts.Picker == nil {
		opts.Picker = picker.New()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "downloads"
	}

	return &Model{
		ctx:        opts.Ctx,
		view:       TrackListView,
		pool:       opts.Pool,
		picker:     opts.Picker,
		downloader: opts.Downloader,
		outputDir:  opts.OutputDir,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init initializes the TUI by loading the track pool.
func (m *Model) Init() tea.Cmd {
	return m.loadTracks()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.list.Width() == 0 {
			m.list.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case TrackListView:
			return m.handleTrackListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case tracksLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.tracks = msg.tracks
		items := make([]list.Item, len(msg.tracks))
		for i, track := range msg.tracks {
			items[i] = trackItem{track: track}
		}
		m.list = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.list.Title = fmt.Sprintf("Track Pool (%d tracks)", len(msg.tracks))
		m.list.SetSize(m.width-4, m.height-8)
		return m, nil

	case downloadDoneMsg:
		m.path = msg.path
		m.err = msg.err
		m.view = ResultView
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case TrackListView:
		return m.renderTrackList()
	case ConfirmView:
		return m.renderConfirm()
	case DownloadView:
		return m.renderDownload()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While filtering, all keys belong to the list input.
	if m.list.FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "R":
		if pick, err := m.picker.SelectOne(m.tracks); err == nil {
			m.selected = &pick
			m.view = ConfirmView
		}
		return m, nil
	case "enter":
		if item, ok := m.list.SelectedItem().(trackItem); ok {
			track := item.track
			m.selected = &track
			m.view = ConfirmView
		}
		return m, nil
	}

	return m.updateList(msg)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = TrackListView
		m.selected = nil
		return m, nil
	case "y":
		m.view = DownloadView
		return m, m.startDownload()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = TrackListView
		m.selected = nil
		m.path = ""
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == TrackListView {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadTracks() tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.pool.Tracks(m.ctx)
		return tracksLoadedMsg{tracks: tracks, err: err}
	}
}

func (m *Model) startDownload() tea.Cmd {
	track := *m.selected
	return func() tea.Msg {
		path, err := m.downloader.Download(m.ctx, track, m.outputDir)
		return downloadDoneMsg{path: path, err: err}
	}
}

func (m *Model) renderTrackList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.random, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.list.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Download '%s'?", m.selected.Title))
	info := fmt.Sprintf("\nArtist: %s\nGenre: %s\nDuration: %s\n",
		m.selected.DisplayArtist(), m.selected.Genre, shared.FormatDuration(m.selected.Duration))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderDownload() string {
	title := styles.title.Render("Downloading")
	return fmt.Sprintf("%s\n\n%s - %s\n", title, m.selected.DisplayArtist(), m.selected.Title)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Download failed: %v\n\nPress r to go back, q to quit", m.err))
	}

	title := styles.ok.Render("✓ Download Complete!")
	info := fmt.Sprintf("\nSaved to: %s", m.path)

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
