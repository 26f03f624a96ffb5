package page

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/graphql"
	"github.com/parleychat/parley/repo"
	"github.com/parleychat/parley/routes"
	"github.com/parleychat/parley/schema"
)

// SpaceUsers shows a space's membership roster.
type SpaceUsers struct {
	base
	deps    Deps
	space   schema.Space
	members []schema.SpaceUser
	cursor  int
}

// InitSpaceUsers fetches the roster.
func InitSpaceUsers(ctx context.Context, deps Deps, slug schema.Slug) (Page, error) {
	op := &graphql.SpaceMembers{Slug: slug}
	if _, err := deps.Session.Request(ctx, op); err != nil {
		return nil, err
	}
	return &SpaceUsers{deps: deps, space: op.Space, members: op.Members}, nil
}

// Prime implements Primer.
func (p *SpaceUsers) Prime(r *repo.Repo) {
	r.SetSpace(p.space)
	for _, member := range p.members {
		r.SetSpaceUser(member)
	}
}

// Setup implements Page.
func (p *SpaceUsers) Setup() tea.Cmd {
	return subscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID))
}

// Teardown implements Page.
func (p *SpaceUsers) Teardown() tea.Cmd {
	return unsubscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID))
}

// Update implements Page.
func (p *SpaceUsers) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "i":
		return p, Navigate(routes.Invites{Slug: p.space.Slug}, routes.Push)
	default:
		p.cursor = moveCursor(p.cursor, key.String(), len(p.members))
	}
	return p, nil
}

// ConsumeEvent implements Page.
func (p *SpaceUsers) ConsumeEvent(event schema.Event, r *repo.Repo) (Page, tea.Cmd) {
	switch event.Type {
	case schema.EventSpaceUpdated:
		if event.Space.ID == p.space.ID {
			p.space = *event.Space
		}
	case schema.EventSpaceUserUpdated:
		if event.SpaceUser.SpaceID == p.space.ID {
			p.members = upsertSpaceUser(p.members, *event.SpaceUser)
		}
	}
	return p, nil
}

// View implements Page.
func (p *SpaceUsers) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render(p.space.Name))
	b.WriteString(ctx.Theme.Muted.Render("  people"))
	b.WriteString("\n\n")
	for i, member := range p.members {
		line := member.DisplayName()
		if member.Role != schema.RoleMember {
			line += ctx.Theme.Muted.Render("  " + strings.ToLower(member.Role))
		}
		if i == p.cursor {
			b.WriteString(ctx.Theme.Selected.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(ctx.Theme.Help.Render("i: invites  j/k: move"))
	return b.String()
}

// Title implements Page.
func (p *SpaceUsers) Title(*repo.Repo) string {
	return "People - " + p.space.Name
}

func upsertSpaceUser(members []schema.SpaceUser, member schema.SpaceUser) []schema.SpaceUser {
	for i := range members {
		if members[i].ID == member.ID {
			members[i] = member
			return members
		}
	}
	return append(members, member)
}
