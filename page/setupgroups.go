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

const setupGroupSlots = 4

// SetupGroups is the create-groups onboarding step: a batch of group
// names submitted in one round trip.
type SetupGroups struct {
	base
	deps       Deps
	space      schema.Space
	names      []textinput.Model
	focus      int
	submitting bool
	errText    string
}

type setupGroupsDoneMsg struct {
	space schema.Space
	err   error
}

// InitSetupGroups resolves the space being onboarded.
func InitSetupGroups(ctx context.Context, deps Deps, slug schema.Slug) (Page, error) {
	op := &graphql.SpaceBySlug{Slug: slug}
	if _, err := deps.Session.Request(ctx, op); err != nil {
		return nil, err
	}
	names := make([]textinput.Model, setupGroupSlots)
	for i := range names {
		names[i] = textinput.New()
		names[i].Placeholder = "group name"
		names[i].CharLimit = 64
	}
	names[0].SetValue("general")
	names[0].Focus()
	return &SetupGroups{deps: deps, space: op.Space, names: names}, nil
}

// Prime implements Primer.
func (p *SetupGroups) Prime(r *repo.Repo) {
	r.SetSpace(p.space)
}

// Update implements Page.
func (p *SetupGroups) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case setupGroupsDoneMsg:
		p.submitting = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		p.space = msg.space
		return p, Navigate(routes.SetupInvites{Slug: p.space.Slug}, routes.Replace)
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return p, p.setFocus(p.focus + 1)
		case "shift+tab", "up":
			return p, p.setFocus(p.focus - 1)
		case "enter":
			return p, p.submit()
		}
	}
	var cmd tea.Cmd
	p.names[p.focus], cmd = p.names[p.focus].Update(msg)
	return p, cmd
}

func (p *SetupGroups) setFocus(next int) tea.Cmd {
	if next < 0 {
		next = len(p.names) - 1
	}
	if next >= len(p.names) {
		next = 0
	}
	p.names[p.focus].Blur()
	p.focus = next
	return p.names[p.focus].Focus()
}

func (p *SetupGroups) submit() tea.Cmd {
	var names []string
	for i := range p.names {
		if name := strings.TrimSpace(p.names[i].Value()); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		p.errText = "name at least one group"
		return nil
	}
	if p.submitting {
		return nil
	}
	p.submitting = true
	p.errText = ""
	deps := p.deps
	spaceID := p.space.ID
	return func() tea.Msg {
		create := &graphql.BulkCreateGroups{SpaceID: spaceID, Names: names}
		if _, err := deps.Session.Request(context.Background(), create); err != nil {
			return setupGroupsDoneMsg{err: err}
		}
		complete := &graphql.CompleteSetupStep{SpaceID: spaceID, State: schema.SetupStateCreateGroups}
		if _, err := deps.Session.Request(context.Background(), complete); err != nil {
			return setupGroupsDoneMsg{err: err}
		}
		return setupGroupsDoneMsg{space: complete.Space}
	}
}

// ConsumeEvent implements Page.
func (p *SetupGroups) ConsumeEvent(event schema.Event, r *repo.Repo) (Page, tea.Cmd) {
	if event.Type == schema.EventSpaceUpdated && event.Space.ID == p.space.ID {
		p.space = *event.Space
	}
	return p, nil
}

// View implements Page.
func (p *SetupGroups) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render("Set up " + p.space.Name))
	b.WriteString("\n")
	b.WriteString(ctx.Theme.Subtitle.Render("Step 1 of 2: create a few groups"))
	b.WriteString("\n\n")
	for i := range p.names {
		b.WriteString(p.names[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if p.submitting {
		b.WriteString(ctx.Theme.Muted.Render("Creating groups..."))
		b.WriteString("\n")
	}
	if p.errText != "" {
		b.WriteString(ctx.Theme.Error.Render(p.errText))
		b.WriteString("\n")
	}
	b.WriteString(ctx.Theme.Help.Render("tab: next field  enter: continue"))
	return b.String()
}

// Title implements Page.
func (p *SetupGroups) Title(*repo.Repo) string {
	return "Setup - " + p.space.Name
}
