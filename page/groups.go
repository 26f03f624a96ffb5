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

// Groups lists the groups in a space and toggles bookmarks.
type Groups struct {
	base
	deps   Deps
	space  schema.Space
	groups []schema.Group
	cursor int
}

type bookmarkToggledMsg struct {
	group schema.Group
	err   error
}

// InitGroups fetches the space's visible groups.
func InitGroups(ctx context.Context, deps Deps, slug schema.Slug) (Page, error) {
	op := &graphql.SpaceGroups{Slug: slug}
	if _, err := deps.Session.Request(ctx, op); err != nil {
		return nil, err
	}
	return &Groups{deps: deps, space: op.Space, groups: op.Groups}, nil
}

// Prime implements Primer.
func (p *Groups) Prime(r *repo.Repo) {
	r.SetSpace(p.space)
	for _, group := range p.groups {
		r.SetGroup(group)
	}
}

// Setup implements Page.
func (p *Groups) Setup() tea.Cmd {
	return subscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID))
}

// Teardown implements Page.
func (p *Groups) Teardown() tea.Cmd {
	return unsubscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID))
}

// Update implements Page.
func (p *Groups) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case bookmarkToggledMsg:
		if msg.err != nil {
			return p, Flash("bookmark failed: "+msg.err.Error(), true)
		}
		p.groups = upsertGroup(p.groups, msg.group)
		return p, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if len(p.groups) > 0 {
				return p, Navigate(routes.Group{Slug: p.space.Slug, ID: p.groups[p.cursor].ID}, routes.Push)
			}
		case "n":
			return p, Navigate(routes.NewGroup{Slug: p.space.Slug}, routes.Push)
		case "b":
			if len(p.groups) > 0 {
				return p, p.toggleBookmark(p.groups[p.cursor])
			}
		default:
			p.cursor = moveCursor(p.cursor, msg.String(), len(p.groups))
		}
	}
	return p, nil
}

func (p *Groups) toggleBookmark(group schema.Group) tea.Cmd {
	deps := p.deps
	return func() tea.Msg {
		if group.IsBookmarked {
			op := &graphql.UnbookmarkGroup{SpaceID: group.SpaceID, GroupID: group.ID}
			if _, err := deps.Session.Request(context.Background(), op); err != nil {
				return bookmarkToggledMsg{err: err}
			}
			return bookmarkToggledMsg{group: op.Group}
		}
		op := &graphql.BookmarkGroup{SpaceID: group.SpaceID, GroupID: group.ID}
		if _, err := deps.Session.Request(context.Background(), op); err != nil {
			return bookmarkToggledMsg{err: err}
		}
		return bookmarkToggledMsg{group: op.Group}
	}
}

// ConsumeEvent implements Page.
func (p *Groups) ConsumeEvent(event schema.Event, r *repo.Repo) (Page, tea.Cmd) {
	switch event.Type {
	case schema.EventSpaceUpdated:
		if event.Space.ID == p.space.ID {
			p.space = *event.Space
		}
	case schema.EventGroupBookmarked, schema.EventGroupUnbookmarked, schema.EventGroupUpdated:
		if event.Group.SpaceID == p.space.ID {
			p.groups = upsertGroup(p.groups, *event.Group)
		}
	}
	return p, nil
}

// View implements Page.
func (p *Groups) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render(p.space.Name))
	b.WriteString(ctx.Theme.Muted.Render("  groups"))
	b.WriteString("\n\n")
	if len(p.groups) == 0 {
		b.WriteString(ctx.Theme.Muted.Render("No groups yet. Press n to create one."))
		b.WriteString("\n")
	}
	for i, group := range p.groups {
		line := "#" + group.Name
		if group.IsPrivate {
			line += ctx.Theme.Muted.Render(" (private)")
		}
		if group.IsDefault {
			line += ctx.Theme.Muted.Render(" (default)")
		}
		if group.IsBookmarked {
			line = ctx.Theme.Bookmark.Render("* ") + line
		} else {
			line = "  " + line
		}
		if i == p.cursor {
			b.WriteString(ctx.Theme.Selected.Render(">") + line)
		} else {
			b.WriteString(" " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(ctx.Theme.Help.Render("enter: open  b: toggle bookmark  n: new group"))
	return b.String()
}

// Title implements Page.
func (p *Groups) Title(*repo.Repo) string {
	return "Groups - " + p.space.Name
}
