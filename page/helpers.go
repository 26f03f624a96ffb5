package page

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/parleychat/parley/repo"
	"github.com/parleychat/parley/schema"
)

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

func moveCursor(cursor int, key string, length int) int {
	switch key {
	case "up", "k":
		cursor--
	case "down", "j":
		cursor++
	case "home", "g":
		cursor = 0
	case "end", "G":
		cursor = length - 1
	}
	return clampCursor(cursor, length)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("Jan 2 15:04")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func authorName(r *repo.Repo, id schema.SpaceUserID) string {
	if r != nil {
		if author, ok := r.SpaceUser(id); ok {
			return author.DisplayName()
		}
	}
	return "someone"
}

func postLine(ctx Context, r *repo.Repo, post schema.Post, selected bool) string {
	width := ctx.Width
	if width <= 0 {
		width = 80
	}
	line := fmt.Sprintf("%s  %s  %s",
		ctx.Theme.Timestamp.Render(formatTime(post.PostedAt)),
		ctx.Theme.Author.Render(authorName(r, post.AuthorID)),
		truncate(firstLine(post.Body), width-30))
	if post.ReplyCount > 0 {
		line += ctx.Theme.Muted.Render(fmt.Sprintf("  (%d)", post.ReplyCount))
	}
	if selected {
		return ctx.Theme.Selected.Render("> ") + line
	}
	return "  " + line
}

// canonicalURL renders the web-app URL for a path, derived from the
// configured login URL's origin.
func canonicalURL(cfg schema.ClientConfig, path string) string {
	parsed, err := url.Parse(cfg.LoginURL)
	if err != nil || parsed.Host == "" {
		return path
	}
	parsed.Path = path
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String()
}
