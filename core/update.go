package core

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/page"
	"github.com/parleychat/parley/routes"
	"github.com/parleychat/parley/schema"
	"github.com/parleychat/parley/socket"
)

// Update implements tea.Model.
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, nil

	case pageInitializedMsg:
		return s, s.handlePageInitialized(msg)

	case page.NavigateMsg:
		return s, s.navigate(msg.Route, msg.Mode)

	case page.FlashMsg:
		return s, s.flash(msg.Text, msg.IsErr)

	case flashExpiredMsg:
		if msg.id == s.flashID {
			s.flashText = ""
		}
		return s, nil

	case socketConnectedMsg:
		if msg.err != nil {
			s.log.Warn("socket connect failed", "err", msg.err)
			return s, s.flash("realtime connection failed", true)
		}
		return s, nil

	case socketSignalMsg:
		return s, tea.Batch(s.handleSignal(msg.signal), s.waitForSignal())

	case sessionRefreshedMsg:
		return s, s.handleSessionRefreshed(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	next, cmd := s.current.Update(msg, s.pageContext())
	s.current = next
	return s, cmd
}

func (s *Shell) handleSignal(signal socket.Signal) tea.Cmd {
	switch signal.Kind {
	case socket.SignalStarted:
		s.connected = true
		s.log.Info("socket connected")
		return nil
	case socket.SignalAborted:
		s.connected = false
		s.log.Warn("socket aborted", "err", signal.Err)
		return s.flash("realtime connection lost", true)
	case socket.SignalError:
		// The server rejects frames from stale tokens; refresh and
		// reconnect while the UI stays interactive.
		s.log.Info("socket error frame, refreshing token", "err", signal.Err)
		return s.refreshSessionCmd()
	case socket.SignalMessage:
		return s.consumeEvent(signal.Event)
	}
	return nil
}

func (s *Shell) handleSessionRefreshed(msg sessionRefreshedMsg) tea.Cmd {
	if msg.err != nil {
		if errors.Is(msg.err, schema.ErrSessionExpired) || errors.Is(msg.err, schema.ErrNotSignedIn) {
			s.signedOut = true
			return nil
		}
		s.log.Warn("token refresh failed", "err", msg.err)
		return s.flash("could not refresh session", true)
	}
	s.session = msg.session
	if s.store != nil {
		if err := s.store.Save(s.session.Token()); err != nil {
			s.log.Warn("token persist failed", "err", err)
		}
	}
	if s.socket != nil {
		_ = s.socket.Close()
	}
	return s.connectCmd()
}

func (s *Shell) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// The quit chord wins over every input mode.
	if key == "ctrl+c" {
		return s, tea.Quit
	}

	if s.gotoActive {
		switch key {
		case "esc":
			s.gotoActive = false
			s.gotoInput.Blur()
			return s, nil
		case "enter":
			path := s.gotoInput.Value()
			s.gotoActive = false
			s.gotoInput.Blur()
			s.gotoInput.Reset()
			route, ok := routes.Parse(path)
			if !ok {
				// Mounting NotFound is still a page change; the
				// outgoing page must release its subscriptions.
				teardown := s.current.Teardown()
				s.current = page.NotFound{}
				s.currentRoute = nil
				return s, tea.Batch(teardown, tea.SetWindowTitle(s.current.Title(s.repo)))
			}
			return s, s.navigate(route, routes.Push)
		}
		var cmd tea.Cmd
		s.gotoInput, cmd = s.gotoInput.Update(msg)
		return s, cmd
	}

	switch key {
	case "ctrl+g":
		if s.signedOut {
			return s, nil
		}
		s.gotoActive = true
		return s, s.gotoInput.Focus()
	case "ctrl+b":
		if s.signedOut {
			return s, nil
		}
		return s, s.back()
	}

	if s.signedOut {
		if key == "q" {
			return s, tea.Quit
		}
		return s, nil
	}

	next, cmd := s.current.Update(msg, s.pageContext())
	s.current = next
	return s, cmd
}

func (s *Shell) pageContext() page.Context {
	return page.Context{
		Repo:   s.repo,
		Theme:  s.theme,
		Width:  s.width,
		Height: s.height,
	}
}
