package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/weatherdo/internal/logging"
	"github.com/nibzard/weatherdo/internal/session"
	"github.com/nibzard/weatherdo/internal/todo"
)

type screen int

const (
	screenLogin screen = iota
	screenList
)

type inputMode int

const (
	inputNone inputMode = iota
	inputText
	inputLocation
)

const (
	fieldUsername = iota
	fieldPassword
)

type model struct {
	ctx  context.Context
	deps Deps

	screen screen
	// gen changes whenever a screen is left. Results of commands started
	// under an older gen are dropped.
	gen int

	username   string
	password   string
	loginField int
	loggingIn  bool
	loginErr   string

	filter   todo.Filter
	sortKey  todo.SortKey
	cursor   int
	input    inputMode
	draft    string
	location string
	priority todo.Priority
	inFlight int
	status   string
	errMsg   string
	showHelp bool
}

type loginDoneMsg struct {
	gen  int
	sess session.Session
	err  error
}

type taskCreatedMsg struct {
	gen  int
	task todo.Task
	err  error
}

type weatherRefreshedMsg struct {
	gen  int
	task todo.Task
	err  error
}

func newModel(ctx context.Context, deps Deps) *model {
	deps.Logger = logging.OrDiscard(deps.Logger)
	m := &model{
		ctx:      ctx,
		deps:     deps,
		screen:   screenLogin,
		filter:   todo.DefaultFilter,
		sortKey:  todo.DefaultSortKey,
		priority: todo.DefaultPriority,
	}
	if deps.Sessions.Current().Authenticated {
		m.screen = screenList
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.screen == screenLogin {
			return m.updateLogin(msg)
		}
		return m.updateList(msg)
	case loginDoneMsg:
		m.handleLoginDone(msg)
	case taskCreatedMsg:
		m.handleTaskCreated(msg)
	case weatherRefreshedMsg:
		m.handleWeatherRefreshed(msg)
	}
	return m, nil
}

// leave switches screens and invalidates in-flight commands.
func (m *model) leave(to screen) {
	m.gen++
	m.screen = to
	m.inFlight = 0
	m.loggingIn = false
	m.input = inputNone
	m.showHelp = false
	m.status = ""
	m.errMsg = ""
	m.loginErr = ""
	m.password = ""
	m.cursor = 0
}

func (m *model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loggingIn {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.loginField = 1 - m.loginField
	case tea.KeyEnter:
		if err := session.CheckCredentials(m.username, m.password); err != nil {
			m.loginErr = authMessage(err)
			return m, nil
		}
		m.loggingIn = true
		m.loginErr = ""
		return m, m.loginCmd(m.username, m.password)
	case tea.KeyBackspace:
		m.setLoginField(dropLastRune(m.loginValue()))
		m.loginErr = ""
	case tea.KeySpace:
		m.setLoginField(m.loginValue() + " ")
		m.loginErr = ""
	case tea.KeyRunes:
		m.setLoginField(m.loginValue() + string(msg.Runes))
		m.loginErr = ""
	}
	return m, nil
}

func (m *model) loginValue() string {
	if m.loginField == fieldPassword {
		return m.password
	}
	return m.username
}

func (m *model) setLoginField(v string) {
	if m.loginField == fieldPassword {
		m.password = v
		return
	}
	m.username = v
}

func (m *model) loginCmd(username, password string) tea.Cmd {
	gen, ctx, sessions := m.gen, m.ctx, m.deps.Sessions
	return func() tea.Msg {
		sess, err := sessions.Login(ctx, username, password)
		return loginDoneMsg{gen: gen, sess: sess, err: err}
	}
}

func (m *model) handleLoginDone(msg loginDoneMsg) {
	if msg.gen != m.gen || m.screen != screenLogin {
		return
	}
	m.loggingIn = false
	if msg.err != nil {
		m.loginErr = authMessage(msg.err)
		return
	}
	m.leave(screenList)
	m.status = "Signed in as " + msg.sess.Username()
}

func (m *model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input != inputNone {
		return m.updateInput(msg)
	}

	m.errMsg = ""
	var cmd tea.Cmd
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "esc":
		m.showHelp = false
	case "up", "k":
		m.cursor--
	case "down", "j":
		m.cursor++
	case "n":
		m.input = inputText
		m.draft = ""
		m.location = ""
		m.priority = todo.DefaultPriority
	case " ", "space":
		if t, ok := m.selected(); ok {
			m.deps.Store.ToggleCompleted(t.ID)
		}
	case "d":
		if t, ok := m.selected(); ok {
			m.deps.Store.Delete(t.ID)
			m.status = "Deleted: " + t.Text
		}
	case "p":
		if t, ok := m.selected(); ok {
			next := t.Priority.Next()
			m.deps.Store.SetPriority(t.ID, next)
			m.status = fmt.Sprintf("Priority of %q set to %s", t.Text, PriorityLabel(next))
		}
	case "w":
		cmd = m.refreshSelected()
	case "f":
		m.filter = m.filter.Next()
		m.cursor = 0
	case "s":
		m.sortKey = m.sortKey.Next()
	case "L":
		if err := m.deps.Sessions.Logout(); err != nil {
			m.deps.Logger.Warn("logout failed", "err", err)
		}
		m.leave(screenLogin)
		m.username = ""
		return m, nil
	}
	m.clampCursor()
	return m, cmd
}

func (m *model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input = inputNone
		m.errMsg = ""
	case tea.KeyTab:
		if m.input == inputText {
			m.priority = m.priority.Next()
		}
	case tea.KeyEnter:
		if m.input == inputText {
			if _, err := todo.ValidateText(m.draft); err != nil {
				m.errMsg = "Task text cannot be empty"
				return m, nil
			}
			m.errMsg = ""
			m.input = inputLocation
			return m, nil
		}
		m.input = inputNone
		m.inFlight++
		return m, m.createCmd(m.draft, m.priority, m.location)
	case tea.KeyBackspace:
		m.setInput(dropLastRune(m.inputValue()))
	case tea.KeySpace:
		m.setInput(m.inputValue() + " ")
	case tea.KeyRunes:
		m.setInput(m.inputValue() + string(msg.Runes))
	}
	return m, nil
}

func (m *model) inputValue() string {
	if m.input == inputLocation {
		return m.location
	}
	return m.draft
}

func (m *model) setInput(v string) {
	if m.input == inputLocation {
		m.location = v
		return
	}
	m.draft = v
}

func (m *model) createCmd(text string, priority todo.Priority, location string) tea.Cmd {
	gen, ctx, wf := m.gen, m.ctx, m.deps.Workflow
	return func() tea.Msg {
		task, err := wf.CreateTask(ctx, text, priority, location)
		return taskCreatedMsg{gen: gen, task: task, err: err}
	}
}

func (m *model) handleTaskCreated(msg taskCreatedMsg) {
	if msg.gen != m.gen {
		return
	}
	m.inFlight--
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		return
	}
	m.status = "Added: " + msg.task.Text
	for i, t := range m.visible() {
		if t.ID == msg.task.ID {
			m.cursor = i
			break
		}
	}
}

func (m *model) refreshSelected() tea.Cmd {
	t, ok := m.selected()
	if !ok {
		return nil
	}
	if !t.HasLocation() {
		m.status = "Task has no location"
		return nil
	}
	m.inFlight++
	gen, ctx, wf, id := m.gen, m.ctx, m.deps.Workflow, t.ID
	return func() tea.Msg {
		task, err := wf.RefreshWeather(ctx, id)
		return weatherRefreshedMsg{gen: gen, task: task, err: err}
	}
}

func (m *model) handleWeatherRefreshed(msg weatherRefreshedMsg) {
	if msg.gen != m.gen {
		return
	}
	m.inFlight--
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		return
	}
	m.status = "Weather updated for " + msg.task.Location
}

// visible is the projection shown on the list screen.
func (m *model) visible() []todo.Task {
	return todo.Project(m.deps.Store.Tasks(), m.filter, m.sortKey)
}

func (m *model) selected() (todo.Task, bool) {
	tasks := m.visible()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return todo.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func authMessage(err error) string {
	var ae *session.AuthError
	if errors.As(err, &ae) {
		return capitalize(ae.Reason)
	}
	return err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + s[size:]
}

func dropLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
