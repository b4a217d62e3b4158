package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/randusr/internal/models"
	"github.com/desertthunder/randusr/internal/shared"
)

// Screen identifies an entry on the navigation stack.
type Screen int

const (
	ListScreen Screen = iota
	DetailScreen
)

// LoadState is the state of an asynchronous load. The zero value is [Success].
type LoadState int

const (
	Success LoadState = iota
	Loading
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Success:
		return "success"
	case Loading:
		return "loading"
	case Failed:
		return "error"
	default:
		return ""
	}
}

// Loader is the subset of [tasks.UserEngine] the TUI depends on.
type Loader interface {
	LoadUsersBySize(ctx context.Context, size int) ([]models.User, error)
	LoadUserDetail(ctx context.Context, id string) (*models.UserDetail, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	loader Loader
	stack  []Screen
	width  int
	height int

	listState LoadState
	users     []models.User
	list      list.Model
	listErr   error
	lastSize  int
	listSeq   int
	listStop  context.CancelFunc

	prompting bool
	input     textinput.Model
	inputErr  error

	detailState LoadState
	detail      *models.UserDetail
	detailErr   error
	detailSeq   int
	detailStop  context.CancelFunc

	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model. The list screen starts in [Success] with no users.
func NewModel(ctx context.Context, loader Loader) *Model {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Random Users"
	l.SetShowHelp(false)
	l.SetStatusBarItemName("user", "users")
	l.KeyMap.Quit.SetEnabled(false)

	input := textinput.New()
	input.Prompt = "How many users? "
	input.Placeholder = "10"
	input.CharLimit = 5

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:       ctx,
		loader:    loader,
		stack:     []Screen{ListScreen},
		listState: Success,
		users:     []models.User{},
		list:      l,
		input:     input,
		spinner:   sp,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init implements [tea.Model]. Nothing is fetched until the user asks for a batch.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Screen returns the screen on top of the navigation stack.
func (m *Model) Screen() Screen {
	return m.stack[len(m.stack)-1]
}

func (m *Model) push(s Screen) {
	m.stack = append(m.stack, s)
}

func (m *Model) pop() {
	if len(m.stack) > 1 {
		m.stack = m.stack[:len(m.stack)-1]
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.stopAll()
			return m, tea.Quit
		}
		if m.Screen() == DetailScreen {
			return m.handleDetailKeys(msg)
		}
		if m.prompting {
			return m.handlePromptKeys(msg)
		}
		return m.handleListKeys(msg)

	case usersLoadedMsg:
		if msg.seq != m.listSeq {
			return m, nil
		}
		if m.listStop != nil {
			m.listStop()
			m.listStop = nil
		}
		if msg.err != nil {
			m.listState = Failed
			m.listErr = msg.err
			return m, nil
		}
		m.listState = Success
		m.listErr = nil
		m.users = msg.users
		return m, m.list.SetItems(userItems(msg.users))

	case detailLoadedMsg:
		if msg.seq != m.detailSeq {
			return m, nil
		}
		if m.detailStop != nil {
			m.detailStop()
			m.detailStop = nil
		}
		if msg.err != nil {
			m.detailState = Failed
			m.detailErr = msg.err
			return m, nil
		}
		m.detailState = Success
		m.detailErr = nil
		m.detail = msg.detail
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.Screen() == ListScreen && m.listState == Success {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		m.stopAll()
		return m, tea.Quit
	case key.Matches(msg, m.keys.add):
		m.prompting = true
		m.inputErr = nil
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.reload):
		if m.lastSize != 0 {
			return m, m.loadUsers(m.lastSize)
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if m.listState != Success {
			return m, nil
		}
		if item, ok := m.list.SelectedItem().(userItem); ok {
			m.push(DetailScreen)
			return m, m.loadDetail(item.user.ID)
		}
		return m, nil
	}

	if m.listState != Success {
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.closePrompt()
		return m, nil
	case key.Matches(msg, m.keys.submit):
		size, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
		if err != nil {
			m.inputErr = shared.ErrInvalidSize
			return m, nil
		}
		m.closePrompt()
		return m, m.loadUsers(size)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		if m.detailStop != nil {
			m.detailStop()
			m.detailStop = nil
		}
		m.detailSeq++
		m.detail = nil
		m.pop()
		return m, nil
	case key.Matches(msg, m.keys.quit):
		m.stopAll()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.inputErr = nil
	m.input.Blur()
}

// loadUsers starts a list load, cancelling any load still in flight.
func (m *Model) loadUsers(size int) tea.Cmd {
	if m.listStop != nil {
		m.listStop()
	}
	m.listSeq++
	seq := m.listSeq

	ctx, cancel := context.WithCancel(m.ctx)
	m.listStop = cancel
	m.listState = Loading
	m.listErr = nil
	m.lastSize = size

	loader := m.loader
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		users, err := loader.LoadUsersBySize(ctx, size)
		return usersLoadedMsg{seq: seq, users: users, err: err}
	})
}

// loadDetail starts a detail load, cancelling any detail load still in flight.
func (m *Model) loadDetail(id string) tea.Cmd {
	if m.detailStop != nil {
		m.detailStop()
	}
	m.detailSeq++
	seq := m.detailSeq

	ctx, cancel := context.WithCancel(m.ctx)
	m.detailStop = cancel
	m.detailState = Loading
	m.detailErr = nil
	m.detail = nil

	loader := m.loader
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		detail, err := loader.LoadUserDetail(ctx, id)
		return detailLoadedMsg{seq: seq, detail: detail, err: err}
	})
}

func (m *Model) loading() bool {
	return m.listState == Loading || (m.Screen() == DetailScreen && m.detailState == Loading)
}

func (m *Model) stopAll() {
	if m.listStop != nil {
		m.listStop()
	}
	if m.detailStop != nil {
		m.detailStop()
	}
}
