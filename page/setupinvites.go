package page

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/graphql"
	"github.com/parleychat/parley/repo"
	"github.com/parleychat/parley/routes"
	"github.com/parleychat/parley/schema"
)

// SetupInvites is the invite-users onboarding step.
type SetupInvites struct {
	base
	deps       Deps
	space      schema.Space
	submitting bool
	errText    string
}

type setupInvitesDoneMsg struct {
	space schema.Space
	err   error
}

// InitSetupInvites resolves the space being onboarded.
func InitSetupInvites(ctx context.Context, deps Deps, slug schema.Slug) (Page, error) {
	op := &graphql.SpaceBySlug{Slug: slug}
	if _, err := deps.Session.Request(ctx, op); err != nil {
		return nil, err
	}
	return &SetupInvites{deps: deps, space: op.Space}, nil
}

// Prime implements Primer.
func (p *SetupInvites) Prime(r *repo.Repo) {
	r.SetSpace(p.space)
}

// Update implements Page.
func (p *SetupInvites) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case setupInvitesDoneMsg:
		p.submitting = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		p.space = msg.space
		return p, Navigate(routes.Inbox{Slug: p.space.Slug}, routes.Replace)
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
		case "enter":
			return p, p.finish()
		}
	}
	return p, nil
}

func (p *SetupInvites) finish() tea.Cmd {
	if p.submitting {
		return nil
	}
	p.submitting = true
	p.errText = ""
	deps := p.deps
	op := &graphql.CompleteSetupStep{SpaceID: p.space.ID, State: schema.SetupStateInviteUsers}
	return func() tea.Msg {
		if _, err := deps.Session.Request(context.Background(), op); err != nil {
			return setupInvitesDoneMsg{err: err}
		}
		return setupInvitesDoneMsg{space: op.Space}
	}
}

// ConsumeEvent implements Page.
func (p *SetupInvites) ConsumeEvent(event schema.Event, r *repo.Repo) (Page, tea.Cmd) {
	if event.Type == schema.EventSpaceUpdated && event.Space.ID == p.space.ID {
		p.space = *event.Space
	}
	return p, nil
}

// View implements Page.
func (p *SetupInvites) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render("Set up " + p.space.Name))
	b.WriteString("\n")
	b.WriteString(ctx.Theme.Subtitle.Render("Step 2 of 2: invite your team"))
	b.WriteString("\n\n")
	if p.space.OpenInvitationURL != "" {
		b.WriteString("Share this link with anyone who should join:")
		b.WriteString("\n\n  ")
		b.WriteString(ctx.Theme.Accent.Render(p.space.OpenInvitationURL))
		b.WriteString("\n")
	} else {
		b.WriteString(ctx.Theme.Muted.Render("Open invitations are disabled; invite people later from the space settings."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if p.submitting {
		b.WriteString(ctx.Theme.Muted.Render("Finishing up..."))
		b.WriteString("\n")
	}
	if p.errText != "" {
		b.WriteString(ctx.Theme.Error.Render(p.errText))
		b.WriteString("\n")
	}
	b.WriteString(ctx.Theme.Help.Render("y: copy link  enter: finish"))
	return b.String()
}

// Title implements Page.
func (p *SetupInvites) Title(*repo.Repo) string {
	return "Setup - " + p.space.Name
}
