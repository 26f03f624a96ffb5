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

// NewGroup collects a name and creates the group.
type NewGroup struct {
	base
	deps       Deps
	space      schema.Space
	name       textinput.Model
	submitting bool
	errText    string
}

type groupCreatedMsg struct {
	group schema.Group
	err   error
}

// InitNewGroup resolves the space so the form can target it.
func InitNewGroup(ctx context.Context, deps Deps, slug schema.Slug) (Page, error) {
	op := &graphql.SpaceBySlug{Slug: slug}
	if _, err := deps.Session.Request(ctx, op); err != nil {
		return nil, err
	}
	name := textinput.New()
	name.Placeholder = "Group name"
	name.CharLimit = 64
	name.Focus()
	return &NewGroup{deps: deps, space: op.Space, name: name}, nil
}

// Prime implements Primer.
func (p *NewGroup) Prime(r *repo.Repo) {
	r.SetSpace(p.space)
}

// Update implements Page.
func (p *NewGroup) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case groupCreatedMsg:
		p.submitting = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		return p, Navigate(routes.Group{Slug: p.space.Slug, ID: msg.group.ID}, routes.Replace)
	case tea.KeyMsg:
		if msg.String() == "enter" {
			return p, p.submit()
		}
	}
	var cmd tea.Cmd
	p.name, cmd = p.name.Update(msg)
	return p, cmd
}

func (p *NewGroup) submit() tea.Cmd {
	name := strings.TrimSpace(p.name.Value())
	if name == "" {
		p.errText = "name is required"
		return nil
	}
	if p.submitting {
		return nil
	}
	p.submitting = true
	p.errText = ""
	deps := p.deps
	op := &graphql.CreateGroup{SpaceID: p.space.ID, Name: name}
	return func() tea.Msg {
		if _, err := deps.Session.Request(context.Background(), op); err != nil {
			return groupCreatedMsg{err: err}
		}
		return groupCreatedMsg{group: op.Group}
	}
}

// ConsumeEvent implements Page.
func (p *NewGroup) ConsumeEvent(schema.Event, *repo.Repo) (Page, tea.Cmd) { return p, nil }

// View implements Page.
func (p *NewGroup) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render("New group in " + p.space.Name))
	b.WriteString("\n\n")
	b.WriteString(p.name.View())
	b.WriteString("\n\n")
	if p.submitting {
		b.WriteString(ctx.Theme.Muted.Render("Creating..."))
		b.WriteString("\n")
	}
	if p.errText != "" {
		b.WriteString(ctx.Theme.Error.Render(p.errText))
		b.WriteString("\n")
	}
	b.WriteString(ctx.Theme.Help.Render("enter: create"))
	return b.String()
}

// Title implements Page.
func (p *NewGroup) Title(*repo.Repo) string {
	return "New group - " + p.space.Name
}
