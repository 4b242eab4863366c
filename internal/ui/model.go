package ui

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/atomicstack/pipeline-console/internal/backend"
	"github.com/atomicstack/pipeline-console/internal/browser"
	"github.com/atomicstack/pipeline-console/internal/data/dispatcher"
	"github.com/atomicstack/pipeline-console/internal/entity"
	"github.com/atomicstack/pipeline-console/internal/menu"
	"github.com/atomicstack/pipeline-console/internal/notice"
	"github.com/atomicstack/pipeline-console/internal/state"
	"github.com/atomicstack/pipeline-console/internal/theme"
	"github.com/atomicstack/pipeline-console/internal/ui/command"
	uistate "github.com/atomicstack/pipeline-console/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

type Mode int

const (
	ModeMenu Mode = iota
	ModePreferencesForm
)

const (
	menuHeaderSeparator = "→"
	defaultRootTitle    = "main menu"

	levelApplications = "applications"
	levelDetail       = "applications:detail"
	levelTopics       = "connections:topics"
)

var styles = theme.Default()

var headerSegmentCleaner = strings.NewReplacer("_", " ", "-", " ")

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []menu.Item, node *menu.Node) *level {
	return uistate.NewLevel(id, title, items, node)
}

// DetailLoader loads one application detail record.
type DetailLoader interface {
	Load(ctx context.Context, namespace, appID string) entity.Outcome
}

// Options configures a Model. Zero values leave the matching feature off;
// LoadTimeout defaults to 30s.
type Options struct {
	Namespace   string
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
	RootMenu    string
	Watcher     *backend.Watcher
	API         menu.Platform
	Loader      DetailLoader
	Browser     browser.Fetcher
	Messages    notice.Messages
	LoadTimeout time.Duration
}

// Model implements the Bubble Tea model for the pipeline console.
type Model struct {
	stack             []*level
	loading           bool
	pendingID         string
	pendingLabel      string
	errMsg            string
	infoMsg           string
	infoExpire        time.Time
	width             int
	height            int
	fixedWidth        bool
	fixedHeight       bool
	backend           *backend.Watcher
	backendState      map[backend.Kind]error
	backendLastErr    string
	showFooter        bool
	verbose           bool
	prefsForm         *menu.PreferencesForm
	filterCursor      cursor.Model
	filterCursorDirty bool
	panelScroll       int

	handlers map[reflect.Type]msgHandler

	registry    *menu.Registry
	bus         *command.Bus
	mode        Mode
	rootMenuID  string
	rootTitle   string
	api         menu.Platform
	loader      DetailLoader
	selector    *browser.Selector
	board       *notice.Board
	loadTimeout time.Duration
	namespaces  state.NamespaceStore
	apps        state.AppStore
	connections state.ConnectionStore
	tables      state.TableStore
	details     state.DetailStore
	dispatcher  *dispatcher.Dispatcher
}

// NewModel initialises the UI state with the root menu and configuration.
func NewModel(opts Options) *Model {
	registry := menu.BuildRegistry()
	namespaces := state.NewNamespaceStore(opts.Namespace)
	apps := state.NewAppStore()
	connections := state.NewConnectionStore()
	tables := state.NewTableStore()
	messages := opts.Messages
	if messages == nil {
		messages = notice.DefaultMessages()
	}
	timeout := opts.LoadTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	root := newLevel("root", "Main Menu", menu.RootItems(), registry.Root())
	m := &Model{
		stack:        []*level{root},
		registry:     registry,
		bus:          command.New(),
		backend:      opts.Watcher,
		backendState: map[backend.Kind]error{},
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		mode:         ModeMenu,
		rootTitle:    defaultRootTitle,
		api:          opts.API,
		loader:       opts.Loader,
		board:        notice.NewBoard(messages),
		loadTimeout:  timeout,
		namespaces:   namespaces,
		apps:         apps,
		connections:  connections,
		tables:       tables,
		details:      state.NewDetailStore(),
		dispatcher:   dispatcher.New(namespaces, apps, connections, tables),
	}
	if opts.Browser != nil {
		m.selector = browser.NewSelector(opts.Browser, nil, namespaces.Current)
	}
	m.applyNodeSettings(root)
	m.syncViewport(root)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.applyRootMenuOverride(opts.RootMenu)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend), refreshTablesCmd(m.backend, m.namespaces.Current()))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	return m, m.finishUpdate(cmds)
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	switch m.mode {
	case ModePreferencesForm:
		return m.handlePreferencesForm(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):             m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):           m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):      m.handleWindowSizeMsg,
		reflect.TypeOf(categoryLoadedMsg{}):      m.handleCategoryLoadedMsg,
		reflect.TypeOf(menu.ActionResult{}):      m.handleActionResultMsg,
		reflect.TypeOf(menu.OpenDetailMsg{}):     m.handleOpenDetailMsg,
		reflect.TypeOf(menu.BrowseMsg{}):         m.handleBrowseMsg,
		reflect.TypeOf(menu.PreferencesPrompt{}): m.handlePreferencesPromptMsg,
		reflect.TypeOf(detailLoadedMsg{}):        m.handleDetailLoadedMsg,
		reflect.TypeOf(browserFetchedMsg{}):      m.handleBrowserFetchedMsg,
		reflect.TypeOf(noticeExpiredMsg{}):       m.handleNoticeExpiredMsg,
		reflect.TypeOf(backendEventMsg{}):        m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):         m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
