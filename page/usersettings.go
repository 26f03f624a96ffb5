package page

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/graphql"
	"github.com/parleychat/parley/repo"
	"github.com/parleychat/parley/schema"
)

// UserSettings edits the viewer's account attributes.
type UserSettings struct {
	base
	deps       Deps
	email      string
	firstName  textinput.Model
	lastName   textinput.Model
	focusLast  bool
	submitting bool
	errText    string
	savedText  string
}

type userSavedMsg struct {
	err error
}

// InitUserSettings fetches the viewer's account.
func InitUserSettings(ctx context.Context, deps Deps) (Page, error) {
	op := &graphql.Viewer{}
	if _, err := deps.Session.Request(ctx, op); err != nil {
		return nil, err
	}
	first := textinput.New()
	first.Placeholder = "First name"
	first.CharLimit = 64
	first.SetValue(op.FirstName)
	first.Focus()
	last := textinput.New()
	last.Placeholder = "Last name"
	last.CharLimit = 64
	last.SetValue(op.LastName)
	return &UserSettings{
		deps:      deps,
		email:     op.Email,
		firstName: first,
		lastName:  last,
	}, nil
}

// Update implements Page.
func (p *UserSettings) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case userSavedMsg:
		p.submitting = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		p.savedText = "Saved."
		return p, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			p.focusLast = !p.focusLast
			if p.focusLast {
				p.firstName.Blur()
				return p, p.lastName.Focus()
			}
			p.lastName.Blur()
			return p, p.firstName.Focus()
		case "enter":
			return p, p.submit()
		}
	}
	var cmd tea.Cmd
	if p.focusLast {
		p.lastName, cmd = p.lastName.Update(msg)
	} else {
		p.firstName, cmd = p.firstName.Update(msg)
	}
	return p, cmd
}

func (p *UserSettings) submit() tea.Cmd {
	first := strings.TrimSpace(p.firstName.Value())
	last := strings.TrimSpace(p.lastName.Value())
	if first == "" && last == "" {
		p.errText = "a name is required"
		return nil
	}
	if p.submitting {
		return nil
	}
	p.submitting = true
	p.errText = ""
	p.savedText = ""
	deps := p.deps
	op := &graphql.UpdateUser{FirstName: first, LastName: last}
	return func() tea.Msg {
		_, err := deps.Session.Request(context.Background(), op)
		return userSavedMsg{err: err}
	}
}

// ConsumeEvent implements Page.
func (p *UserSettings) ConsumeEvent(schema.Event, *repo.Repo) (Page, tea.Cmd) { return p, nil }

// View implements Page.
func (p *UserSettings) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render("Your account"))
	b.WriteString("\n\n")
	b.WriteString(ctx.Theme.Muted.Render(p.email))
	b.WriteString("\n\n")
	b.WriteString(p.firstName.View())
	b.WriteString("\n")
	b.WriteString(p.lastName.View())
	b.WriteString("\n\n")
	if p.submitting {
		b.WriteString(ctx.Theme.Muted.Render("Saving..."))
		b.WriteString("\n")
	}
	if p.savedText != "" {
		b.WriteString(ctx.Theme.Accent.Render(p.savedText))
		b.WriteString("\n")
	}
	if p.errText != "" {
		b.WriteString(ctx.Theme.Error.Render(p.errText))
		b.WriteString("\n")
	}
	b.WriteString(ctx.Theme.Help.Render("tab: switch field  enter: save"))
	return b.String()
}

// Title implements Page.
func (p *UserSettings) Title(*repo.Repo) string { return "Settings - Parley" }
