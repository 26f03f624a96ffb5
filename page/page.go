// Package page holds the closed set of pages the shell can display and
// the lifecycle contract the shell drives them through. Pages never
// mutate the entity cache; they read it through Context and surface
// fetched entities for the shell to upsert via Prime.
package page

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/repo"
	"github.com/parleychat/parley/routes"
	"github.com/parleychat/parley/schema"
	"github.com/parleychat/parley/session"
	"github.com/parleychat/parley/ui"
)

// Context carries the per-frame read-only state pages render against.
type Context struct {
	Repo   *repo.Repo
	Theme  ui.Theme
	Width  int
	Height int
}

// Page is one mounted location. The shell owns exactly one at a time.
type Page interface {
	// Setup runs once after mount; realtime channel subscriptions go here.
	Setup() tea.Cmd
	// Teardown runs once before unmount; it undoes Setup.
	Teardown() tea.Cmd
	// Update advances the page one local step.
	Update(msg tea.Msg, ctx Context) (Page, tea.Cmd)
	// ConsumeEvent reacts to a realtime event. The shell has already
	// applied the event's repo upsert when this runs.
	ConsumeEvent(event schema.Event, r *repo.Repo) (Page, tea.Cmd)
	// View renders the page.
	View(ctx Context) string
	// Title computes the window title contribution.
	Title(r *repo.Repo) string
}

// Primer is implemented by pages whose init fetched entities the shell
// should upsert into the repo at mount time.
type Primer interface {
	Prime(r *repo.Repo)
}

// Realtime is the slice of the socket pages subscribe through.
type Realtime interface {
	Subscribe(channel string) error
	Unsubscribe(channel string) error
}

// Deps is what page constructors and commands need from the shell.
type Deps struct {
	Session  session.Session
	Realtime Realtime
	Config   schema.ClientConfig
}

// NavigateMsg asks the shell to transition to a route.
type NavigateMsg struct {
	Route routes.Route
	Mode  routes.Mode
}

// Navigate wraps a navigation request in a command.
func Navigate(route routes.Route, mode routes.Mode) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: route, Mode: mode} }
}

// FlashMsg asks the shell to show a transient status-line message.
type FlashMsg struct {
	Text  string
	IsErr bool
}

// Flash wraps a status flash in a command.
func Flash(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return FlashMsg{Text: text, IsErr: isErr} }
}

// base provides the no-op parts of the contract for pages that do not
// need them.
type base struct{}

func (base) Setup() tea.Cmd    { return nil }
func (base) Teardown() tea.Cmd { return nil }

func spaceChannel(id schema.SpaceID) string { return "space:" + string(id) }
func groupChannel(id schema.GroupID) string { return "group:" + string(id) }
func postChannel(id schema.PostID) string   { return "post:" + string(id) }

func subscribeCmd(rt Realtime, channels ...string) tea.Cmd {
	if rt == nil {
		return nil
	}
	return func() tea.Msg {
		for _, ch := range channels {
			if err := rt.Subscribe(ch); err != nil {
				return FlashMsg{Text: "realtime subscribe failed: " + err.Error(), IsErr: true}
			}
		}
		return nil
	}
}

func unsubscribeCmd(rt Realtime, channels ...string) tea.Cmd {
	if rt == nil {
		return nil
	}
	return func() tea.Msg {
		for _, ch := range channels {
			_ = rt.Unsubscribe(ch)
		}
		return nil
	}
}

// Resolve constructs the page for a route, running its init fetch. Root
// is re-resolved as the space's inbox without a round trip.
func Resolve(ctx context.Context, deps Deps, route routes.Route) (Page, error) {
	switch r := route.(type) {
	case routes.Spaces:
		return InitSpaces(ctx, deps)
	case routes.NewSpace:
		return InitNewSpace(deps), nil
	case routes.UserSettings:
		return InitUserSettings(ctx, deps)
	case routes.Root:
		return InitInbox(ctx, deps, r.Slug)
	case routes.Inbox:
		return InitInbox(ctx, deps, r.Slug)
	case routes.Posts:
		return InitPosts(ctx, deps, r.Slug)
	case routes.Post:
		return InitPost(ctx, deps, r.Slug, r.ID)
	case routes.Groups:
		return InitGroups(ctx, deps, r.Slug)
	case routes.Group:
		return InitGroup(ctx, deps, r.Slug, r.ID)
	case routes.NewGroup:
		return InitNewGroup(ctx, deps, r.Slug)
	case routes.SpaceUsers:
		return InitSpaceUsers(ctx, deps, r.Slug)
	case routes.Invites:
		return InitInvites(ctx, deps, r.Slug)
	case routes.SetupGroups:
		return InitSetupGroups(ctx, deps, r.Slug)
	case routes.SetupInvites:
		return InitSetupInvites(ctx, deps, r.Slug)
	case routes.Search:
		return InitSearch(ctx, deps, r.Slug, r.Query)
	case routes.SpaceSettings:
		return InitSpaceSettings(ctx, deps, r.Slug)
	}
	return NotFound{}, nil
}

// Blank is the page shown before the first navigation completes.
type Blank struct{ base }

// Update implements Page.
func (p Blank) Update(tea.Msg, Context) (Page, tea.Cmd) { return p, nil }

// ConsumeEvent implements Page.
func (p Blank) ConsumeEvent(schema.Event, *repo.Repo) (Page, tea.Cmd) { return p, nil }

// View implements Page.
func (p Blank) View(ctx Context) string {
	return ctx.Theme.Muted.Render("Loading...")
}

// Title implements Page.
func (Blank) Title(*repo.Repo) string { return "Parley" }

// NotFound is shown for unparseable paths.
type NotFound struct{ base }

// Update implements Page.
func (p NotFound) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		return p, Navigate(routes.Spaces{}, routes.Push)
	}
	return p, nil
}

// ConsumeEvent implements Page.
func (p NotFound) ConsumeEvent(schema.Event, *repo.Repo) (Page, tea.Cmd) { return p, nil }

// View implements Page.
func (p NotFound) View(ctx Context) string {
	return ctx.Theme.Title.Render("404") + "\n\n" +
		ctx.Theme.Muted.Render("Nothing lives at this path.") + "\n\n" +
		ctx.Theme.Help.Render("enter: your spaces")
}

// Title implements Page.
func (NotFound) Title(*repo.Repo) string { return "Not found - Parley" }
