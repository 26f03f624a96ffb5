package page

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/graphql"
	"github.com/parleychat/parley/repo"
	"github.com/parleychat/parley/routes"
	"github.com/parleychat/parley/schema"
)

// Search runs a full-text search over a space's posts. The query lives
// in the route, so re-running a search is a Replace navigation.
type Search struct {
	base
	deps    Deps
	space   schema.Space
	query   string
	results []schema.Post
	input   textinput.Model
	editing bool
	cursor  int
}

// InitSearch executes the route's query. An empty query skips the round
// trip and opens the page in input mode.
func InitSearch(ctx context.Context, deps Deps, slug schema.Slug, query string) (Page, error) {
	input := textinput.New()
	input.Placeholder = "Search posts..."
	input.CharLimit = 120
	input.SetValue(query)

	page := &Search{deps: deps, query: query, input: input}
	if strings.TrimSpace(query) == "" {
		op := &graphql.SpaceBySlug{Slug: slug}
		if _, err := deps.Session.Request(ctx, op); err != nil {
			return nil, err
		}
		page.space = op.Space
		page.editing = true
		page.input.Focus()
		return page, nil
	}
	op := &graphql.SearchPosts{Slug: slug, Query: query}
	if _, err := deps.Session.Request(ctx, op); err != nil {
		return nil, err
	}
	page.space = op.Space
	page.results = op.Results
	return page, nil
}

// Prime implements Primer.
func (p *Search) Prime(r *repo.Repo) {
	r.SetSpace(p.space)
	for _, post := range p.results {
		r.SetPost(post)
	}
}

// Update implements Page.
func (p *Search) Update(msg tea.Msg, ctx Context) (Page, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	if p.editing {
		switch key.String() {
		case "esc":
			p.editing = false
			p.input.Blur()
			return p, nil
		case "enter":
			query := strings.TrimSpace(p.input.Value())
			if query == "" {
				return p, nil
			}
			return p, Navigate(routes.Search{Slug: p.space.Slug, Query: query}, routes.Replace)
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	switch key.String() {
	case "/":
		p.editing = true
		return p, p.input.Focus()
	case "enter":
		if len(p.results) > 0 {
			return p, Navigate(routes.Post{Slug: p.space.Slug, ID: p.results[p.cursor].ID}, routes.Push)
		}
	default:
		p.cursor = moveCursor(p.cursor, key.String(), len(p.results))
	}
	return p, nil
}

// ConsumeEvent implements Page.
func (p *Search) ConsumeEvent(event schema.Event, r *repo.Repo) (Page, tea.Cmd) {
	if event.Type == schema.EventSpaceUpdated && event.Space.ID == p.space.ID {
		p.space = *event.Space
	}
	return p, nil
}

// View implements Page.
func (p *Search) View(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Theme.Title.Render(p.space.Name))
	b.WriteString(ctx.Theme.Muted.Render("  search"))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	if p.query != "" && len(p.results) == 0 {
		b.WriteString(ctx.Theme.Muted.Render("No posts match."))
		b.WriteString("\n")
	}
	for i, post := range p.results {
		b.WriteString(postLine(ctx, ctx.Repo, post, i == p.cursor && !p.editing))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if p.editing {
		b.WriteString(ctx.Theme.Help.Render("enter: search  esc: results"))
	} else {
		b.WriteString(ctx.Theme.Help.Render("enter: open  /: edit query  j/k: move"))
	}
	return b.String()
}

// Title implements Page.
func (p *Search) Title(*repo.Repo) string {
	if p.query == "" {
		return "Search - " + p.space.Name
	}
	return "Search \"" + p.query + "\" - " + p.space.Name
}
