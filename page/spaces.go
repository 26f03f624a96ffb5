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

// Spaces lists every space the viewer belongs to.
type Spaces struct {
	base
	spaces []schema.Space
	cursor int
}

// InitSpaces fetches the viewer's spaces.
func InitSpaces(ctx context.Context, deps Deps) (Page, error) {
	op := &graphql.ViewerSpaces{}
	if _, err := deps.Session.Request(ctx, op); err != nil {
		return nil, err
	}
	return &Spaces{spaces: op.Spaces}, nil
}

// Prime implements Primer.
func (p *Spaces) Prime(r *repo.Repo) {
	for _, space := range p.spaces {
		r.SetSpace(space)
	}
}

// Update implements Page.
func (p *Spaces) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "enter":
		if len(p.spaces) > 0 {
			slug := p.spaces[p.cursor].Slug
			return p, Navigate(routes.Root{Slug: slug}, routes.Push)
		}
	case "n":
		return p, Navigate(routes.NewSpace{}, routes.Push)
	default:
		p.cursor = moveCursor(p.cursor, key.String(), len(p.spaces))
	}
	return p, nil
}

// ConsumeEvent implements Page.
func (p *Spaces) ConsumeEvent(event schema.Event, r *repo.Repo) (Page, tea.Cmd) {
	if event.Type == schema.EventSpaceUpdated && event.Space != nil {
		for i := range p.spaces {
			if p.spaces[i].ID == event.Space.ID {
				p.spaces[i] = *event.Space
			}
		}
	}
	return p, nil
}

// View implements Page.
func (p *Spaces) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render("Your spaces"))
	b.WriteString("\n\n")
	if len(p.spaces) == 0 {
		b.WriteString(ctx.Theme.Muted.Render("No spaces yet. Press n to create one."))
		b.WriteString("\n")
	}
	for i, space := range p.spaces {
		line := space.Name + ctx.Theme.Muted.Render("  /"+string(space.Slug))
		if i == p.cursor {
			b.WriteString(ctx.Theme.Selected.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(ctx.Theme.Help.Render("enter: open  n: new space  j/k: move"))
	return b.String()
}

// Title implements Page.
func (p *Spaces) Title(*repo.Repo) string { return "Spaces - Parley" }
