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

// Posts is the space-wide activity feed.
type Posts struct {
	base
	deps   Deps
	space  schema.Space
	posts  []schema.Post
	cursor int
}

// InitPosts fetches the space's recent posts across all groups.
func InitPosts(ctx context.Context, deps Deps, slug schema.Slug) (Page, error) {
	op := &graphql.SpaceFeed{Slug: slug}
	if _, err := deps.Session.Request(ctx, op); err != nil {
		return nil, err
	}
	return &Posts{deps: deps, space: op.Space, posts: op.Posts}, nil
}

// Prime implements Primer.
func (p *Posts) Prime(r *repo.Repo) {
	r.SetSpace(p.space)
	for _, post := range p.posts {
		r.SetPost(post)
	}
}

// Setup implements Page.
func (p *Posts) Setup() tea.Cmd {
	return subscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID))
}

// Teardown implements Page.
func (p *Posts) Teardown() tea.Cmd {
	return unsubscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID))
}

// Update implements Page.
func (p *Posts) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "enter":
		if len(p.posts) > 0 {
			return p, Navigate(routes.Post{Slug: p.space.Slug, ID: p.posts[p.cursor].ID}, routes.Push)
		}
	case "i":
		return p, Navigate(routes.Inbox{Slug: p.space.Slug}, routes.Push)
	default:
		p.cursor = moveCursor(p.cursor, key.String(), len(p.posts))
	}
	return p, nil
}

// ConsumeEvent implements Page.
func (p *Posts) ConsumeEvent(event schema.Event, r *repo.Repo) (Page, tea.Cmd) {
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
	}
	return p, nil
}

// View implements Page.
func (p *Posts) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render(p.space.Name))
	b.WriteString(ctx.Theme.Muted.Render("  feed"))
	b.WriteString("\n\n")
	if len(p.posts) == 0 {
		b.WriteString(ctx.Theme.Muted.Render("Nothing posted yet."))
		b.WriteString("\n")
	}
	for i, post := range p.posts {
		b.WriteString(postLine(ctx, ctx.Repo, post, i == p.cursor))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(ctx.Theme.Help.Render("enter: open  i: inbox  j/k: move"))
	return b.String()
}

// Title implements Page.
func (p *Posts) Title(r *repo.Repo) string {
	return "Feed - " + p.space.Name
}
