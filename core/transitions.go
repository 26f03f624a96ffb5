package core

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/internal/logx"
	"github.com/parleychat/parley/page"
	"github.com/parleychat/parley/routes"
	"github.com/parleychat/parley/schema"
)

// navigate starts a page transition. The outgoing page is torn down
// immediately; it stays visible until the replacement is ready.
func (s *Shell) navigate(route routes.Route, mode routes.Mode) tea.Cmd {
	if mode == routes.Load {
		// A full navigation leaves the application.
		return tea.Quit
	}
	s.transitionSeq++
	s.transitioning = true
	s.pendingMode = mode
	seq := s.transitionSeq
	deps := s.deps()
	log := logx.WithRoute(s.log, routes.Serialize(route))
	log.Debug("page transition start", "seq", seq)

	teardown := s.current.Teardown()
	load := func() tea.Msg {
		p, err := page.Resolve(context.Background(), deps, route)
		return pageInitializedMsg{seq: seq, route: route, page: p, err: err}
	}
	if teardown != nil {
		return tea.Batch(teardown, load)
	}
	return load
}

// handlePageInitialized finishes (or drops) a transition.
func (s *Shell) handlePageInitialized(msg pageInitializedMsg) tea.Cmd {
	if msg.seq != s.transitionSeq {
		s.log.Debug("page transition superseded", "seq", msg.seq, "latest", s.transitionSeq)
		return nil
	}
	s.transitioning = false
	if msg.err != nil {
		if errors.Is(msg.err, schema.ErrSessionExpired) || errors.Is(msg.err, schema.ErrNotSignedIn) {
			s.log.Info("page transition unauthenticated")
			s.signedOut = true
			return nil
		}
		s.log.Warn("page transition failed", "path", routes.Serialize(msg.route), "err", msg.err)
		return s.flash("could not open "+routes.Serialize(msg.route)+": "+msg.err.Error(), true)
	}

	if s.pendingMode == routes.Push && s.currentRoute != nil {
		s.history = append(s.history, s.currentRoute)
	}
	s.current = msg.page
	s.currentRoute = msg.route
	if primer, ok := msg.page.(page.Primer); ok {
		primer.Prime(s.repo)
	}
	cmds := []tea.Cmd{tea.SetWindowTitle(s.current.Title(s.repo))}
	if setup := s.current.Setup(); setup != nil {
		cmds = append(cmds, setup)
	}
	return tea.Batch(cmds...)
}

// back pops the route history. The popped entry is not re-pushed.
func (s *Shell) back() tea.Cmd {
	if len(s.history) == 0 {
		return nil
	}
	route := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	return s.navigate(route, routes.Replace)
}

// consumeEvent applies an event to the shared cache and then hands the
// same event to the current page. Both always run, in that order, for
// every decoded event.
func (s *Shell) consumeEvent(event schema.Event) tea.Cmd {
	log := s.log
	if event.Space != nil {
		log = logx.WithSpace(log, event.Space.Slug)
	}
	log.Debug("realtime event", "type", event.Type)
	switch event.Type {
	case schema.EventGroupBookmarked, schema.EventGroupUnbookmarked, schema.EventGroupUpdated:
		s.repo.SetGroup(*event.Group)
	case schema.EventPostCreated, schema.EventPostUpdated:
		s.repo.SetPost(*event.Post)
	case schema.EventSpaceUpdated:
		s.repo.SetSpace(*event.Space)
	case schema.EventSpaceUserUpdated:
		s.repo.SetSpaceUser(*event.SpaceUser)
	case schema.EventReplyCreated, schema.EventUnknown:
		// No cache effect; pages may still care.
	}
	next, cmd := s.current.ConsumeEvent(event, s.repo)
	s.current = next
	if event.Type == schema.EventSpaceUpdated {
		// Titles derive from space names.
		return tea.Batch(cmd, tea.SetWindowTitle(s.current.Title(s.repo)))
	}
	return cmd
}
