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

// Inbox shows the viewer's inbox for a space next to their bookmarked
// groups. It is the landing page a bare space path resolves to.
type Inbox struct {
	base
	deps      Deps
	space     schema.Space
	bookmarks []schema.Group
	posts     []schema.Post
	cursor    int
}

// InitInbox fetches the space, the viewer's bookmarks, and the inbox.
func InitInbox(ctx context.Context, deps Deps, slug schema.Slug) (Page, error) {
	op := &graphql.SpaceInbox{Slug: slug}
	if _, err := deps.Session.Request(ctx, op); err != nil {
		return nil, err
	}
	return &Inbox{deps: deps, space: op.Space, bookmarks: op.Groups, posts: op.Posts}, nil
}

// Prime implements Primer.
func (p *Inbox) Prime(r *repo.Repo) {
	r.SetSpace(p.space)
	for _, group := range p.bookmarks {
		r.SetGroup(group)
	}
	for _, post := range p.posts {
		r.SetPost(post)
	}
}

// Setup implements Page.
func (p *Inbox) Setup() tea.Cmd {
	return subscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID))
}

// Teardown implements Page.
func (p *Inbox) Teardown() tea.Cmd {
	return unsubscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID))
}

// Update implements Page.
func (p *Inbox) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "enter":
		if len(p.posts) > 0 {
			post := p.posts[p.cursor]
			return p, Navigate(routes.Post{Slug: p.space.Slug, ID: post.ID}, routes.Push)
		}
	case "f":
		return p, Navigate(routes.Posts{Slug: p.space.Slug}, routes.Push)
	case "c":
		return p, Navigate(routes.Groups{Slug: p.space.Slug}, routes.Push)
	case "u":
		return p, Navigate(routes.SpaceUsers{Slug: p.space.Slug}, routes.Push)
	case "/":
		return p, Navigate(routes.Search{Slug: p.space.Slug}, routes.Push)
	default:
		p.cursor = moveCursor(p.cursor, key.String(), len(p.posts))
	}
	return p, nil
}

// ConsumeEvent implements Page.
func (p *Inbox) ConsumeEvent(event schema.Event, r *repo.Repo) (Page, tea.Cmd) {
	switch event.Type {
	case schema.EventSpaceUpdated:
		if event.Space.ID == p.space.ID {
			p.space = *event.Space
		}
	case schema.EventPostCreated:
		if event.Post.SpaceID == p.space.ID {
			p.posts = append([]schema.Post{*event.Post}, p.posts...)
			p.cursor = clampCursor(p.cursor+1, len(p.posts))
		}
	case schema.EventPostUpdated:
		for i := range p.posts {
			if p.posts[i].ID == event.Post.ID {
				p.posts[i] = *event.Post
			}
		}
	case schema.EventGroupBookmarked:
		if event.Group.SpaceID == p.space.ID {
			p.bookmarks = upsertGroup(p.bookmarks, *event.Group)
		}
	case schema.EventGroupUnbookmarked:
		p.bookmarks = removeGroup(p.bookmarks, event.Group.ID)
	case schema.EventGroupUpdated:
		for i := range p.bookmarks {
			if p.bookmarks[i].ID == event.Group.ID {
				p.bookmarks[i] = *event.Group
			}
		}
	}
	return p, nil
}

// View implements Page.
func (p *Inbox) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render(p.space.Name))
	b.WriteString(ctx.Theme.Muted.Render("  inbox"))
	b.WriteString("\n\n")
	if len(p.bookmarks) > 0 {
		names := make([]string, 0, len(p.bookmarks))
		for _, group := range p.bookmarks {
			names = append(names, "#"+group.Name)
		}
		b.WriteString(ctx.Theme.Bookmark.Render(strings.Join(names, "  ")))
		b.WriteString("\n\n")
	}
	if len(p.posts) == 0 {
		b.WriteString(ctx.Theme.Muted.Render("Inbox zero."))
		b.WriteString("\n")
	}
	for i, post := range p.posts {
		b.WriteString(postLine(ctx, ctx.Repo, post, i == p.cursor))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(ctx.Theme.Help.Render("enter: open  f: feed  c: groups  u: people  /: search"))
	return b.String()
}

// Title implements Page.
func (p *Inbox) Title(r *repo.Repo) string {
	name := p.space.Name
	if r != nil {
		if space, ok := r.Space(p.space.ID); ok {
			name = space.Name
		}
	}
	return "Inbox - " + name
}

func upsertGroup(groups []schema.Group, group schema.Group) []schema.Group {
	for i := range groups {
		if groups[i].ID == group.ID {
			groups[i] = group
			return groups
		}
	}
	return append(groups, group)
}

func removeGroup(groups []schema.Group, id schema.GroupID) []schema.Group {
	out := groups[:0]
	for _, group := range groups {
		if group.ID != id {
			out = append(out, group)
		}
	}
	return out
}
