package page

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/parleychat/parley/graphql"
	"github.com/parleychat/parley/repo"
	"github.com/parleychat/parley/routes"
	"github.com/parleychat/parley/schema"
)

// Group shows one group's feed with a composer for new posts.
type Group struct {
	base
	deps      Deps
	space     schema.Space
	group     schema.Group
	posts     []schema.Post
	cursor    int
	composer  textarea.Model
	composing bool
	sending   bool
	errText   string
}

type postCreatedMsg struct {
	post schema.Post
	err  error
}

// InitGroup fetches the group and its posts.
func InitGroup(ctx context.Context, deps Deps, slug schema.Slug, id schema.GroupID) (Page, error) {
	op := &graphql.GroupFeed{Slug: slug, GroupID: id}
	if _, err := deps.Session.Request(ctx, op); err != nil {
		return nil, err
	}
	composer := textarea.New()
	composer.Placeholder = "Post to #" + op.Group.Name + "..."
	composer.SetHeight(3)
	return &Group{
		deps:     deps,
		space:    op.Space,
		group:    op.Group,
		posts:    op.Posts,
		composer: composer,
	}, nil
}

// Prime implements Primer.
func (p *Group) Prime(r *repo.Repo) {
	r.SetSpace(p.space)
	r.SetGroup(p.group)
	for _, post := range p.posts {
		r.SetPost(post)
	}
}

// Setup implements Page.
func (p *Group) Setup() tea.Cmd {
	return subscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID), groupChannel(p.group.ID))
}

// Teardown implements Page.
func (p *Group) Teardown() tea.Cmd {
	return unsubscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID), groupChannel(p.group.ID))
}

// Update implements Page.
func (p *Group) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case postCreatedMsg:
		p.sending = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		p.posts = upsertPost(p.posts, msg.post)
		return p, nil
	case tea.KeyMsg:
		if p.composing {
			switch msg.String() {
			case "esc":
				p.composing = false
				p.composer.Blur()
				return p, nil
			case "ctrl+d":
				return p, p.submitPost()
			}
			var cmd tea.Cmd
			p.composer, cmd = p.composer.Update(msg)
			return p, cmd
		}
		switch msg.String() {
		case "enter":
			if len(p.posts) > 0 {
				return p, Navigate(routes.Post{Slug: p.space.Slug, ID: p.posts[p.cursor].ID}, routes.Push)
			}
		case "p":
			p.composing = true
			return p, p.composer.Focus()
		default:
			p.cursor = moveCursor(p.cursor, msg.String(), len(p.posts))
		}
	}
	return p, nil
}

func (p *Group) submitPost() tea.Cmd {
	body := strings.TrimSpace(p.composer.Value())
	if body == "" || p.sending {
		return nil
	}
	p.sending = true
	p.errText = ""
	p.composer.Reset()
	p.composing = false
	p.composer.Blur()
	deps := p.deps
	op := &graphql.CreatePost{
		SpaceID:  p.space.ID,
		GroupID:  p.group.ID,
		Body:     body,
		ClientID: uuid.NewString(),
	}
	return func() tea.Msg {
		if _, err := deps.Session.Request(context.Background(), op); err != nil {
			return postCreatedMsg{err: err}
		}
		return postCreatedMsg{post: op.Post}
	}
}

// ConsumeEvent implements Page.
func (p *Group) ConsumeEvent(event schema.Event, r *repo.Repo) (Page, tea.Cmd) {
	switch event.Type {
	case schema.EventSpaceUpdated:
		if event.Space.ID == p.space.ID {
			p.space = *event.Space
		}
	case schema.EventGroupUpdated, schema.EventGroupBookmarked, schema.EventGroupUnbookmarked:
		if event.Group.ID == p.group.ID {
			p.group = *event.Group
		}
	case schema.EventPostCreated:
		if postInGroup(*event.Post, p.group.ID) {
			p.posts = upsertPost(p.posts, *event.Post)
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
func (p *Group) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render("#" + p.group.Name))
	b.WriteString(ctx.Theme.Muted.Render("  " + p.space.Name))
	if p.group.IsBookmarked {
		b.WriteString(ctx.Theme.Bookmark.Render("  *"))
	}
	b.WriteString("\n\n")
	if len(p.posts) == 0 {
		b.WriteString(ctx.Theme.Muted.Render("Nothing here yet. Press p to post."))
		b.WriteString("\n")
	}
	for i, post := range p.posts {
		b.WriteString(postLine(ctx, ctx.Repo, post, i == p.cursor))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if p.composing {
		b.WriteString(p.composer.View())
		b.WriteString("\n")
		b.WriteString(ctx.Theme.Help.Render("ctrl+d: post  esc: cancel"))
	} else {
		if p.sending {
			b.WriteString(ctx.Theme.Muted.Render("Posting..."))
			b.WriteString("\n")
		}
		if p.errText != "" {
			b.WriteString(ctx.Theme.Error.Render(p.errText))
			b.WriteString("\n")
		}
		b.WriteString(ctx.Theme.Help.Render("enter: open  p: post  j/k: move"))
	}
	return b.String()
}

// Title implements Page.
func (p *Group) Title(*repo.Repo) string {
	return "#" + p.group.Name + " - " + p.space.Name
}

func postInGroup(post schema.Post, id schema.GroupID) bool {
	for _, groupID := range post.GroupIDs {
		if groupID == id {
			return true
		}
	}
	return false
}

func upsertPost(posts []schema.Post, post schema.Post) []schema.Post {
	for i := range posts {
		if posts[i].ID == post.ID {
			posts[i] = post
			return posts
		}
	}
	return append([]schema.Post{post}, posts...)
}
