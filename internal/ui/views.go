package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// View renders the screen on top of the navigation stack.
func (m *Model) View() string {
	switch m.Screen() {
	case DetailScreen:
		return m.renderDetail()
	default:
		return m.renderList()
	}
}

func (m *Model) renderList() string {
	var body string
	switch m.listState {
	case Loading:
		body = fmt.Sprintf("%s Loading %d users...", m.spinner.View(), m.lastSize)
	case Failed:
		body = styles.err.Render(m.listErr.Error())
	default:
		if len(m.users) == 0 {
			body = styles.warn.Render("No users yet. Press a to load a batch.")
		} else {
			body = m.list.View() + "\n" + styles.ok.Render(loadedStatus(len(m.users)))
		}
	}

	if m.listState != Success {
		body = styles.title.Render("Random Users") + "\n" + body
	}

	if m.prompting {
		prompt := m.input.View()
		if m.inputErr != nil {
			prompt += "\n" + styles.err.Render(m.inputErr.Error())
		}
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.submit, m.keys.cancel})
		return fmt.Sprintf("%s\n\n%s\n\n%s", body, prompt, helpView)
	}

	helpKeys := []key.Binding{m.keys.add, m.keys.quit}
	if m.listState == Success && len(m.users) > 0 {
		helpKeys = []key.Binding{m.keys.enter, m.keys.add, m.keys.reload, m.keys.quit}
	} else if m.lastSize != 0 {
		helpKeys = []key.Binding{m.keys.add, m.keys.reload, m.keys.quit}
	}
	return fmt.Sprintf("%s\n\n%s", body, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderDetail() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})

	switch m.detailState {
	case Loading:
		return fmt.Sprintf("%s Loading user...\n\n%s", m.spinner.View(), helpView)
	case Failed:
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(m.detailErr.Error()), helpView)
	}

	if m.detail == nil {
		return helpView
	}

	u, a := m.detail.User, m.detail.Address
	rows := []struct{ label, value string }{
		{"Email", u.Email},
		{"Address", a.String()},
		{"Birthday", u.FormattedBirthday()},
		{"Gender", u.Gender},
		{"Nationality", u.Nationality},
		{"Avatar", u.Thumbnail},
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(u.DisplayName()))
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(styles.label.Render(row.label))
		b.WriteString(row.value)
	}

	return fmt.Sprintf("%s\n\n%s", styles.box.Render(b.String()), helpView)
}

func loadedStatus(n int) string {
	if n == 1 {
		return "✓ Loaded 1 user"
	}
	return fmt.Sprintf("✓ Loaded %d users", n)
}
