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

// SpaceSettings renames a space or changes its slug. A slug change
// re-navigates so the address reflects the new identity.
type SpaceSettings struct {
	base
	deps       Deps
	space      schema.Space
	name       textinput.Model
	slug       textinput.Model
	focusSlug  bool
	submitting bool
	errText    string
	savedText  string
}

type spaceSavedMsg struct {
	space schema.Space
	err   error
}

// InitSpaceSettings fetches the space under edit.
func InitSpaceSettings(ctx context.Context, deps Deps, slug schema.Slug) (Page, error) {
	op := &graphql.SpaceBySlug{Slug: slug}
	if _, err := deps.Session.Request(ctx, op); err != nil {
		return nil, err
	}
	name := textinput.New()
	name.Placeholder = "Space name"
	name.CharLimit = 64
	name.SetValue(op.Space.Name)
	name.Focus()
	slugInput := textinput.New()
	slugInput.Placeholder = "url-slug"
	slugInput.CharLimit = 64
	slugInput.SetValue(string(op.Space.Slug))
	return &SpaceSettings{deps: deps, space: op.Space, name: name, slug: slugInput}, nil
}

// Prime implements Primer.
func (p *SpaceSettings) Prime(r *repo.Repo) {
	r.SetSpace(p.space)
}

// Setup implements Page.
func (p *SpaceSettings) Setup() tea.Cmd {
	return subscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID))
}

// Teardown implements Page.
func (p *SpaceSettings) Teardown() tea.Cmd {
	return unsubscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID))
}

// Update implements Page.
func (p *SpaceSettings) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case spaceSavedMsg:
		p.submitting = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		moved := msg.space.Slug != p.space.Slug
		p.space = msg.space
		p.savedText = "Saved."
		if moved {
			return p, Navigate(routes.SpaceSettings{Slug: p.space.Slug}, routes.Replace)
		}
		return p, nil
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
	} else {
		p.name, cmd = p.name.Update(msg)
	}
	return p, cmd
}

func (p *SpaceSettings) submit() tea.Cmd {
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
	p.savedText = ""
	deps := p.deps
	op := &graphql.UpdateSpace{SpaceID: p.space.ID, Name: name, Slug: schema.Slug(slug)}
	return func() tea.Msg {
		if _, err := deps.Session.Request(context.Background(), op); err != nil {
			return spaceSavedMsg{err: err}
		}
		return spaceSavedMsg{space: op.Space}
	}
}

// ConsumeEvent implements Page.
func (p *SpaceSettings) ConsumeEvent(event schema.Event, r *repo.Repo) (Page, tea.Cmd) {
	if event.Type == schema.EventSpaceUpdated && event.Space.ID == p.space.ID {
		p.space = *event.Space
	}
	return p, nil
}

// View implements Page.
func (p *SpaceSettings) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render(p.space.Name))
	b.WriteString(ctx.Theme.Muted.Render("  settings"))
	b.WriteString("\n\n")
	b.WriteString(p.name.View())
	b.WriteString("\n")
	b.WriteString(p.slug.View())
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
func (p *SpaceSettings) Title(*repo.Repo) string {
	return "Settings - " + p.space.Name
}
