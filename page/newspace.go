package page

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/graphql"
	"github.com/parleychat/parley/repo"
	"github.com/parleychat/parley/routes"
	"github.com/parleychat/parley/schema"
)

// NewSpace collects a name and slug and creates the space.
type NewSpace struct {
	base
	deps       Deps
	name       textinput.Model
	slug       textinput.Model
	slugEdited bool
	focusSlug  bool
	submitting bool
	errText    string
}

type spaceCreatedMsg struct {
	space schema.Space
	err   error
}

// InitNewSpace builds the creation form. No fetch is needed.
func InitNewSpace(deps Deps) Page {
	name := textinput.New()
	name.Placeholder = "Space name"
	name.CharLimit = 64
	name.Focus()
	slug := textinput.New()
	slug.Placeholder = "url-slug"
	slug.CharLimit = 64
	return &NewSpace{deps: deps, name: name, slug: slug}
}

// Update implements Page.
func (p *NewSpace) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case spaceCreatedMsg:
		p.submitting = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		return p, Navigate(routes.SetupGroups{Slug: msg.space.Slug}, routes.Push)
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			p.focusSlug = !p.focusSlug
			if p.focusSlug {
				p.name.Blur()
				return p, p.slug.Focus()
			}
			p.slug.Blur()
			return p, p.name.Focus()
		case "enter":
			return p, p.submit()
		}
	}
	var cmd tea.Cmd
	if p.focusSlug {
		p.slug, cmd = p.slug.Update(msg)
		p.slugEdited = p.slugEdited || p.slug.Value() != ""
	} else {
		p.name, cmd = p.name.Update(msg)
		if !p.slugEdited {
			p.slug.SetValue(Slugify(p.name.Value()))
		}
	}
	return p, cmd
}

func (p *NewSpace) submit() tea.Cmd {
	name := strings.TrimSpace(p.name.Value())
	slug := strings.TrimSpace(p.slug.Value())
	if name == "" || slug == "" {
		p.errText = "name and slug are required"
		return nil
	}
	if p.submitting {
		return nil
	}
	p.submitting = true
	p.errText = ""
	deps := p.deps
	return func() tea.Msg {
		op := &graphql.CreateSpace{Name: name, Slug: schema.Slug(slug)}
		if _, err := deps.Session.Request(context.Background(), op); err != nil {
			return spaceCreatedMsg{err: err}
		}
		return spaceCreatedMsg{space: op.Space}
	}
}

// ConsumeEvent implements Page.
func (p *NewSpace) ConsumeEvent(schema.Event, *repo.Repo) (Page, tea.Cmd) { return p, nil }

// View implements Page.
func (p *NewSpace) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render("Create a space"))
	b.WriteString("\n\n")
	b.WriteString(p.name.View())
	b.WriteString("\n")
	b.WriteString(p.slug.View())
	b.WriteString("\n\n")
	if p.submitting {
		b.WriteString(ctx.Theme.Muted.Render("Creating..."))
		b.WriteString("\n")
	}
	if p.errText != "" {
		b.WriteString(ctx.Theme.Error.Render(p.errText))
		b.WriteString("\n")
	}
	b.WriteString(ctx.Theme.Help.Render("tab: switch field  enter: create"))
	return b.String()
}

// Title implements Page.
func (p *NewSpace) Title(*repo.Repo) string { return "New space - Parley" }

// Slugify derives a URL slug from a display name.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
