// Package picker is the built-in interactive fallback used when fzf is
// not installed. It drives the same debounced reload loop: every query
// change re-runs the source from scratch, stale responses are discarded
// by request id, and the preview pane follows the highlighted row.
package picker

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"golang.org/x/text/unicode/norm"
)

// Source supplies rows for a query. Implementations must be complete and
// self-contained per call; nothing may depend on a previous invocation.
type Source interface {
	Reload(ctx context.Context, query string) ([]string, error)
}

// PreviewFunc renders the preview text for one row. Best-effort: an
// empty string is a valid render.
type PreviewFunc func(row string) string

// Options configures one picker session.
type Options struct {
	InitialQuery string
	Debounce     time.Duration
	PreviewRatio int
}

// reloadDoneMsg is sent when an async Source.Reload completes.
type reloadDoneMsg struct {
	id   uint64
	rows []string
	err  error
}

// debounceMsg fires after the debounce timer expires; only the latest
// timer id is honored.
type debounceMsg struct {
	id uint64
}

// previewDoneMsg delivers an async preview render.
type previewDoneMsg struct {
	id   uint64
	text string
}

type initMsg struct{}

// Model is the Bubble Tea model for the fallback picker.
type Model struct {
	opts      Options
	source    Source
	previewFn PreviewFunc

	input  textinput.Model
	query  string
	rows   []string
	cursor int
	offset int

	marked    map[int]bool
	markOrder []int

	requestID    uint64
	debounceID   uint64
	previewID    uint64
	cancelReload context.CancelFunc
	loading      bool
	err          error

	previewOn   bool
	previewText string

	width  int
	height int

	selection []string
	cancelled bool
}

// New creates a picker model over the given source.
func New(source Source, previewFn PreviewFunc, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.SetValue(opts.InitialQuery)
	ti.Focus()

	if opts.Debounce <= 0 {
		opts.Debounce = 50 * time.Millisecond
	}
	if opts.PreviewRatio <= 0 || opts.PreviewRatio >= 100 {
		opts.PreviewRatio = 60
	}

	return Model{
		opts:      opts,
		source:    source,
		previewFn: previewFn,
		input:     ti,
		query:     norm.NFC.String(opts.InitialQuery),
		marked:    map[int]bool{},
		previewOn: true,
	}
}

// Selection returns the confirmed rows, or nil when cancelled.
func (m Model) Selection() []string {
	if m.cancelled {
		return nil
	}
	return m.selection
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return initMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case initMsg:
		return m, m.startReload()

	case reloadDoneMsg:
		return m.handleReloadDone(msg)

	case debounceMsg:
		if msg.id != m.debounceID {
			return m, nil // stale timer
		}
		return m, m.startReload()

	case previewDoneMsg:
		if msg.id != m.previewID {
			return m, nil
		}
		m.previewText = msg.text
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		m.cancelInflight()
		return m, tea.Quit

	case "enter":
		m.selection = m.confirmedRows()
		m.cancelInflight()
		return m, tea.Quit

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m.afterCursorMove()

	case "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m.afterCursorMove()

	case "tab":
		m.toggleMark(m.cursor)
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m.afterCursorMove()

	case "shift+tab":
		m.toggleMark(m.cursor)
		if m.cursor > 0 {
			m.cursor--
		}
		return m.afterCursorMove()

	case "ctrl+/", "ctrl+_":
		m.previewOn = !m.previewOn
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if q := norm.NFC.String(m.input.Value()); q != m.query {
		m.query = q
		return m, tea.Batch(cmd, m.startDebounce())
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for i := range m.rows {
		if zone.Get(rowZoneID(i)).InBounds(msg) {
			m.cursor = i
			return m.afterCursorMove()
		}
	}
	return m, nil
}

func (m Model) handleReloadDone(msg reloadDoneMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.requestID {
		return m, nil // superseded by a newer reload
	}

	m.loading = false
	if msg.err != nil {
		m.err = msg.err
		m.rows = nil
		m.previewText = ""
		return m, nil
	}

	m.err = nil
	m.rows = msg.rows
	// marks index into the old row set; a reload invalidates them
	m.marked = map[int]bool{}
	m.markOrder = nil
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m.afterCursorMove()
}

// startDebounce arms a fresh debounce timer, invalidating earlier ones.
func (m *Model) startDebounce() tea.Cmd {
	m.debounceID++
	id := m.debounceID
	return tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id}
	})
}

// startReload cancels any in-flight reload and starts a new one tagged
// with the next request id. Last writer wins on display.
func (m *Model) startReload() tea.Cmd {
	m.cancelInflight()
	m.requestID++
	m.loading = true

	id := m.requestID
	query := m.query
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelReload = cancel

	src := m.source
	return func() tea.Msg {
		rows, err := src.Reload(ctx, query)
		return reloadDoneMsg{id: id, rows: rows, err: err}
	}
}

func (m *Model) cancelInflight() {
	if m.cancelReload != nil {
		m.cancelReload()
		m.cancelReload = nil
	}
}

// afterCursorMove schedules a preview render for the highlighted row.
func (m Model) afterCursorMove() (tea.Model, tea.Cmd) {
	if m.previewFn == nil || len(m.rows) == 0 {
		m.previewText = ""
		return m, nil
	}

	m.previewID++
	id := m.previewID
	row := m.rows[m.cursor]
	fn := m.previewFn
	return m, func() tea.Msg {
		return previewDoneMsg{id: id, text: fn(row)}
	}
}

func (m *Model) toggleMark(i int) {
	if i < 0 || i >= len(m.rows) {
		return
	}
	if m.marked[i] {
		delete(m.marked, i)
		for j, idx := range m.markOrder {
			if idx == i {
				m.markOrder = append(m.markOrder[:j], m.markOrder[j+1:]...)
				break
			}
		}
		return
	}
	m.marked[i] = true
	m.markOrder = append(m.markOrder, i)
}

// confirmedRows returns the marked rows in mark order, or the
// highlighted row when nothing is marked.
func (m Model) confirmedRows() []string {
	if len(m.markOrder) > 0 {
		rows := make([]string, 0, len(m.markOrder))
		for _, i := range m.markOrder {
			if i >= 0 && i < len(m.rows) {
				rows = append(rows, m.rows[i])
			}
		}
		return rows
	}
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return []string{m.rows[m.cursor]}
	}
	return nil
}

// Run drives a full picker session and returns the selection. A nil
// selection means the user cancelled, which is a normal outcome.
func Run(source Source, previewFn PreviewFunc, opts Options) ([]string, error) {
	zone.NewGlobal()

	p := tea.NewProgram(New(source, previewFn, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	result, err := p.Run()
	if err != nil {
		return nil, err
	}

	final, ok := result.(Model)
	if !ok {
		return nil, nil
	}
	return final.Selection(), nil
}
