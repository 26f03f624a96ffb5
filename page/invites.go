package page

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/graphql"
	"github.com/parleychat/parley/repo"
	"github.com/parleychat/parley/schema"
)

// Invites shows the space's open invitation link.
type Invites struct {
	base
	deps     Deps
	space    schema.Space
	rotating bool
}

type inviteRotatedMsg struct {
	url string
	err error
}

// InitInvites fetches the space, including its invitation URL.
func InitInvites(ctx context.Context, deps Deps, slug schema.Slug) (Page, error) {
	op := &graphql.SpaceBySlug{Slug: slug}
	if _, err := deps.Session.Request(ctx, op); err != nil {
		return nil, err
	}
	return &Invites{deps: deps, space: op.Space}, nil
}

// Prime implements Primer.
func (p *Invites) Prime(r *repo.Repo) {
	r.SetSpace(p.space)
}

// Setup implements Page.
func (p *Invites) Setup() tea.Cmd {
	return subscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID))
}

// Teardown implements Page.
func (p *Invites) Teardown() tea.Cmd {
	return unsubscribeCmd(p.deps.Realtime, spaceChannel(p.space.ID))
}

// Update implements Page.
func (p *Invites) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case inviteRotatedMsg:
		p.rotating = false
		if msg.err != nil {
			return p, Flash("rotate failed: "+msg.err.Error(), true)
		}
		p.space.OpenInvitationURL = msg.url
		return p, Flash("invitation link rotated", false)
	case tea.KeyMsg:
		switch msg.String() {
		case "y":
			if p.space.OpenInvitationURL == "" {
				return p, Flash("no invitation link", true)
			}
			if err := clipboard.WriteAll(p.space.OpenInvitationURL); err != nil {
				return p, Flash("copy failed: "+err.Error(), true)
			}
			return p, Flash("invitation link copied", false)
		case "r":
			return p, p.rotate()
		}
	}
	return p, nil
}

func (p *Invites) rotate() tea.Cmd {
	if p.rotating {
		return nil
	}
	p.rotating = true
	deps := p.deps
	op := &graphql.CreateInvite{SpaceID: p.space.ID}
	return func() tea.Msg {
		if _, err := deps.Session.Request(context.Background(), op); err != nil {
			return inviteRotatedMsg{err: err}
		}
		return inviteRotatedMsg{url: op.InvitationURL}
	}
}

// ConsumeEvent implements Page.
func (p *Invites) ConsumeEvent(event schema.Event, r *repo.Repo) (Page, tea.Cmd) {
	if event.Type == schema.EventSpaceUpdated && event.Space.ID == p.space.ID {
		p.space = *event.Space
	}
	return p, nil
}

// View implements Page.
func (p *Invites) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render(p.space.Name))
	b.WriteString(ctx.Theme.Muted.Render("  invites"))
	b.WriteString("\n\n")
	if p.space.OpenInvitationURL == "" {
		b.WriteString(ctx.Theme.Muted.Render("Open invitations are disabled for this space."))
		b.WriteString("\n")
	} else {
		b.WriteString("Anyone with this link can join:")
		b.WriteString("\n\n  ")
		b.WriteString(ctx.Theme.Accent.Render(p.space.OpenInvitationURL))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if p.rotating {
		b.WriteString(ctx.Theme.Muted.Render("Rotating..."))
		b.WriteString("\n")
	}
	b.WriteString(ctx.Theme.Help.Render("y: copy link  r: rotate link"))
	return b.String()
}

// Title implements Page.
func (p *Invites) Title(*repo.Repo) string {
	return "Invites - " + p.space.Name
}
