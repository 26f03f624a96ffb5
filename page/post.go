package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/parleychat/parley/graphql"
	"github.com/parleychat/parley/repo"
	"github.com/parleychat/parley/routes"
	"github.com/parleychat/parley/schema"
)

// Post shows one post with its reply thread and a composer.
type Post struct {
	base
	deps      Deps
	space     schema.Space
	post      schema.Post
	replies   []schema.Reply
	authors   []schema.SpaceUser
	composer  textarea.Model
	composing bool
	sending   bool
	errText   string
}

type replyCreatedMsg struct {
	reply schema.Reply
	err   error
}

// InitPost fetches the post, its replies, and everyone involved.
func InitPost(ctx context.Context, deps Deps, slug schema.Slug, id schema.PostID) (Page, error) {
	op := &graphql.PostWithReplies{Slug: slug, PostID: id}
	if _, err := deps.Session.Request(ctx, op); err != nil {
		return nil, err
	}
	composer := textarea.New()
	composer.Placeholder = "Reply..."
	composer.SetHeight(3)
	return &Post{
		deps:     deps,
		space:    op.Space,
		post:     op.Post,
		replies:  op.Replies,
		authors:  op.Authors,
		composer: composer,
	}, nil
}

// Prime implements Primer.
func (p *Post) Prime(r *repo.Repo) {
	r.SetSpace(p.space)
	r.SetPost(p.post)
	for _, author := range p.authors {
		r.SetSpaceUser(author)
	}
}

// Setup implements Page.
func (p *Post) Setup() tea.Cmd {
	return subscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID), postChannel(p.post.ID))
}

// Teardown implements Page.
func (p *Post) Teardown() tea.Cmd {
	return unsubscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID), postChannel(p.post.ID))
}

// Update implements Page.
func (p *Post) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case replyCreatedMsg:
		p.sending = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		// The realtime echo carries the same id; upsert keeps it single.
		p.replies = upsertReply(p.replies, msg.reply)
		return p, nil
	case tea.KeyMsg:
		if p.composing {
			switch msg.String() {
			case "esc":
				p.composing = false
				p.composer.Blur()
				return p, nil
			case "ctrl+d":
				return p, p.submitReply()
			}
			var cmd tea.Cmd
			p.composer, cmd = p.composer.Update(msg)
			return p, cmd
		}
		switch msg.String() {
		case "r":
			p.composing = true
			return p, p.composer.Focus()
		case "y":
			link := canonicalURL(p.deps.Config, routes.Serialize(routes.Post{Slug: p.space.Slug, ID: p.post.ID}))
			if err := clipboard.WriteAll(link); err != nil {
				return p, Flash("copy failed: "+err.Error(), true)
			}
			return p, Flash("link copied", false)
		}
	}
	return p, nil
}

func (p *Post) submitReply() tea.Cmd {
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
	op := &graphql.CreateReply{
		SpaceID:  p.space.ID,
		PostID:   p.post.ID,
		Body:     body,
		ClientID: uuid.NewString(),
	}
	return func() tea.Msg {
		if _, err := deps.Session.Request(context.Background(), op); err != nil {
			return replyCreatedMsg{err: err}
		}
		return replyCreatedMsg{reply: op.Reply}
	}
}

// ConsumeEvent implements Page.
func (p *Post) ConsumeEvent(event schema.Event, r *repo.Repo) (Page, tea.Cmd) {
	switch event.Type {
	case schema.EventPostUpdated:
		if event.Post.ID == p.post.ID {
			p.post = *event.Post
		}
	case schema.EventReplyCreated:
		if event.Reply.PostID == p.post.ID {
			p.replies = upsertReply(p.replies, *event.Reply)
		}
	case schema.EventSpaceUpdated:
		if event.Space.ID == p.space.ID {
			p.space = *event.Space
		}
	case schema.EventSpaceUserUpdated:
		for i := range p.authors {
			if p.authors[i].ID == event.SpaceUser.ID {
				p.authors[i] = *event.SpaceUser
			}
		}
	}
	return p, nil
}

// View implements Page.
func (p *Post) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render(p.space.Name))
	b.WriteString("\n\n")
	b.WriteString(ctx.Theme.Author.Render(authorName(ctx.Repo, p.post.AuthorID)))
	b.WriteString("  ")
	b.WriteString(ctx.Theme.Timestamp.Render(formatTime(p.post.PostedAt)))
	if p.post.State == schema.PostStateClosed {
		b.WriteString(ctx.Theme.Warning.Render("  [closed]"))
	}
	b.WriteString("\n")
	b.WriteString(p.post.Body)
	b.WriteString("\n\n")
	if len(p.replies) > 0 {
		b.WriteString(ctx.Theme.Subtitle.Render(fmt.Sprintf("%d replies", len(p.replies))))
		b.WriteString("\n")
		for _, reply := range p.replies {
			b.WriteString("  ")
			b.WriteString(ctx.Theme.Author.Render(authorName(ctx.Repo, reply.AuthorID)))
			b.WriteString("  ")
			b.WriteString(ctx.Theme.Timestamp.Render(formatTime(reply.PostedAt)))
			b.WriteString("\n  ")
			b.WriteString(reply.Body)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if p.composing {
		b.WriteString(p.composer.View())
		b.WriteString("\n")
		b.WriteString(ctx.Theme.Help.Render("ctrl+d: send  esc: cancel"))
	} else {
		if p.sending {
			b.WriteString(ctx.Theme.Muted.Render("Sending..."))
			b.WriteString("\n")
		}
		if p.errText != "" {
			b.WriteString(ctx.Theme.Error.Render(p.errText))
			b.WriteString("\n")
		}
		b.WriteString(ctx.Theme.Help.Render("r: reply  y: copy link"))
	}
	return b.String()
}

// Title implements Page.
func (p *Post) Title(r *repo.Repo) string {
	return truncate(firstLine(p.post.Body), 40) + " - " + p.space.Name
}

func upsertReply(replies []schema.Reply, reply schema.Reply) []schema.Reply {
	for i := range replies {
		if replies[i].ID == reply.ID {
			replies[i] = reply
			return replies
		}
	}
	return append(replies, reply)
}
