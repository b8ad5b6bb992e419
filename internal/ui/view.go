package ui

import (
	"fmt"
	"strings"

	"github.com/nibzard/weatherdo/internal/todo"
)

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("weatherdo") + "\n\n")
	if m.screen == screenLogin {
		m.viewLogin(&b)
	} else {
		m.viewList(&b)
	}
	return b.String()
}

func (m *model) viewLogin(b *strings.Builder) {
	b.WriteString("Sign in to manage your tasks\n\n")

	fields := []struct {
		label string
		value string
	}{
		{"Username", m.username},
		{"Password", strings.Repeat("*", len([]rune(m.password)))},
	}
	var form strings.Builder
	for i, f := range fields {
		label := f.label + ":"
		cursor := ""
		if i == m.loginField {
			label = focusStyle.Render(label)
			cursor = "_"
		}
		fmt.Fprintf(&form, "%s %s%s", label, f.value, cursor)
		if i < len(fields)-1 {
			form.WriteString("\n")
		}
	}
	b.WriteString(boxStyle.Render(form.String()) + "\n\n")

	switch {
	case m.loggingIn:
		b.WriteString(subtleStyle.Render("Signing in...") + "\n\n")
	case m.loginErr != "":
		b.WriteString(errorStyle.Render(m.loginErr) + "\n\n")
	}
	b.WriteString(subtleStyle.Render("tab switch field | enter sign in | esc quit") + "\n")
}

func (m *model) viewList(b *strings.Builder) {
	sess := m.deps.Sessions.Current()
	active, completed := m.deps.Store.Counts()
	b.WriteString(subtleStyle.Render(fmt.Sprintf("Signed in as %s | %d active, %d completed", sess.Username(), active, completed)) + "\n")
	b.WriteString(fmt.Sprintf("Filter: %s  Sort: %s\n\n", FilterLabel(m.filter), m.sortKey.Label()))

	if m.showHelp {
		writeHelp(b)
		return
	}

	if m.input != inputNone {
		m.viewInput(b)
	}

	tasks := m.visible()
	if len(tasks) == 0 {
		b.WriteString("  " + subtleStyle.Render(EmptyListMessage(m.filter, m.deps.Store.Len())) + "\n")
	}
	for i, t := range tasks {
		b.WriteString(m.renderTask(t, i == m.cursor) + "\n")
	}
	b.WriteString("\n")

	if m.inFlight > 0 {
		b.WriteString(subtleStyle.Render("Fetching weather...") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(subtleStyle.Render("n new | space toggle | d delete | p priority | w weather | f filter | s sort | L logout | ? help | q quit") + "\n")
}

func (m *model) viewInput(b *strings.Builder) {
	var form strings.Builder
	textCursor, locCursor := "_", ""
	if m.input == inputLocation {
		textCursor, locCursor = "", "_"
	}
	fmt.Fprintf(&form, "New task: %s%s\n", m.draft, textCursor)
	fmt.Fprintf(&form, "Priority: %s (tab to change)\n", renderPriority(m.priority))
	fmt.Fprintf(&form, "Location (optional): %s%s", m.location, locCursor)
	b.WriteString(boxStyle.Render(form.String()) + "\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString(subtleStyle.Render("enter next/save | esc cancel") + "\n\n")
}

func (m *model) renderTask(t todo.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}
	text := t.Text
	if t.Completed {
		text = doneStyle.Render(text)
	}

	parts := []string{cursor + Checkbox(t.Completed), text, renderPriority(t.Priority)}
	if t.HasLocation() {
		parts = append(parts, subtleStyle.Render("@"+t.Location))
	}
	if t.Weather != nil {
		parts = append(parts, weatherStyle.Render(FormatWeather(t.Weather)))
	}
	parts = append(parts, subtleStyle.Render(FormatCreated(t.CreatedAt)+" "+t.ShortID()))
	return strings.Join(parts, "  ")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  n            Add a task (text, then optional location)\n")
	b.WriteString("  space        Toggle completed\n")
	b.WriteString("  d            Delete task\n")
	b.WriteString("  p            Cycle priority\n")
	b.WriteString("  w            Refresh weather\n")
	b.WriteString("  f            Cycle filter (all, active, completed)\n")
	b.WriteString("  s            Cycle sort order\n")
	b.WriteString("  up/k down/j  Move selection\n")
	b.WriteString("  L            Log out\n")
	b.WriteString("  ?, esc       Close this help screen\n")
	b.WriteString("  q, ctrl+c    Quit\n")
}
