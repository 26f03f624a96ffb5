package core

import (
	"strings"

	"github.com/mdp/qrterminal/v3"

	"github.com/parleychat/parley/routes"
)

// View implements tea.Model.
func (s *Shell) View() string {
	if s.signedOut {
		return s.signedOutView()
	}
	var b strings.Builder
	b.WriteString(s.current.View(s.pageContext()))
	b.WriteString("\n\n")
	if s.gotoActive {
		b.WriteString(s.theme.Accent.Render("go to: "))
		b.WriteString(s.gotoInput.View())
		b.WriteString("\n")
	}
	b.WriteString(s.statusBar())
	return b.String()
}

func (s *Shell) statusBar() string {
	parts := []string{}
	if s.currentRoute != nil {
		parts = append(parts, routes.Serialize(s.currentRoute))
	}
	if s.transitioning {
		parts = append(parts, "loading...")
	}
	if s.connected {
		parts = append(parts, "live")
	} else {
		parts = append(parts, "offline")
	}
	bar := s.theme.StatusBar.Render(strings.Join(parts, "  "))
	if s.flashText != "" {
		style := s.theme.FlashInfo
		if s.flashErr {
			style = s.theme.FlashError
		}
		bar += "  " + style.Render(s.flashText)
	}
	return bar
}

// signedOutView shows the login URL plus a scannable QR so a phone can
// complete the browser flow.
func (s *Shell) signedOutView() string {
	var b strings.Builder
	b.WriteString(s.theme.Title.Render("Signed out"))
	b.WriteString("\n\n")
	b.WriteString("Your session has expired. Sign in again at:")
	b.WriteString("\n\n  ")
	b.WriteString(s.theme.Accent.Render(s.cfg.LoginURL))
	b.WriteString("\n\n")
	var qr strings.Builder
	qrterminal.GenerateHalfBlock(s.cfg.LoginURL, qrterminal.L, &qr)
	b.WriteString(qr.String())
	b.WriteString("\n")
	b.WriteString(s.theme.Muted.Render("Then run `parley login` to paste the new token."))
	b.WriteString("\n\n")
	b.WriteString(s.theme.Help.Render("q: quit"))
	return b.String()
}
