// Package core is the application shell: a Bubble Tea model owning the
// current page, the entity cache, the session, and the realtime socket.
// All repo mutation and page replacement happens inside its Update loop.
package core

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"pkt.systems/pslog"

	"github.com/parleychat/parley/internal/tokenstore"
	"github.com/parleychat/parley/page"
	"github.com/parleychat/parley/repo"
	"github.com/parleychat/parley/routes"
	"github.com/parleychat/parley/schema"
	"github.com/parleychat/parley/session"
	"github.com/parleychat/parley/socket"
	"github.com/parleychat/parley/ui"
)

const flashTTL = 3 * time.Second

// Shell drives the page lifecycle and owns all shared state.
type Shell struct {
	cfg   schema.ClientConfig
	log   pslog.Logger
	theme ui.Theme

	repo    *repo.Repo
	session session.Session
	socket  *socket.Conn
	store   *tokenstore.Store

	current      page.Page
	currentRoute routes.Route
	history      []routes.Route

	// transitionSeq increases on every navigation; completions carrying
	// an older seq are dropped, so a newer navigation supersedes an
	// in-flight one.
	transitionSeq uint64
	transitioning bool
	pendingMode   routes.Mode

	signedOut bool
	connected bool

	gotoInput  textinput.Model
	gotoActive bool

	flashText string
	flashErr  bool
	flashID   int

	width  int
	height int
}

// Options carries the shell's collaborators from main.
type Options struct {
	Config  schema.ClientConfig
	Session session.Session
	Socket  *socket.Conn
	Store   *tokenstore.Store
	Logger  pslog.Logger
}

// New constructs the shell on the Blank page.
func New(opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	gotoInput := textinput.New()
	gotoInput.Placeholder = "/space/path"
	gotoInput.CharLimit = 200
	return &Shell{
		cfg:       opts.Config,
		log:       logger,
		theme:     ui.ForName(opts.Config.Theme),
		repo:      repo.New(),
		session:   opts.Session,
		socket:    opts.Socket,
		store:     opts.Store,
		current:   page.Blank{},
		gotoInput: gotoInput,
	}
}

// Repo exposes the shared entity cache for out-of-loop readers such as
// the desktop notifier. The cache is safe for concurrent reads.
func (s *Shell) Repo() *repo.Repo { return s.repo }

type pageInitializedMsg struct {
	seq   uint64
	route routes.Route
	page  page.Page
	err   error
}

type socketSignalMsg struct {
	signal socket.Signal
}

type socketConnectedMsg struct {
	err error
}

type sessionRefreshedMsg struct {
	session session.Session
	err     error
}

type flashExpiredMsg struct {
	id int
}

// Init implements tea.Model: connect the socket, start draining its
// signals, and navigate to the space list.
func (s *Shell) Init() tea.Cmd {
	cmds := []tea.Cmd{
		s.connectCmd(),
		s.waitForSignal(),
		tea.SetWindowTitle(s.current.Title(s.repo)),
	}
	if !s.session.SignedIn() {
		s.signedOut = true
		return tea.Batch(cmds...)
	}
	cmds = append(cmds, s.navigate(routes.Spaces{}, routes.Push))
	return tea.Batch(cmds...)
}

func (s *Shell) deps() page.Deps {
	deps := page.Deps{
		Session: s.session,
		Config:  s.cfg,
	}
	if s.socket != nil {
		deps.Realtime = s.socket
	}
	return deps
}

func (s *Shell) connectCmd() tea.Cmd {
	if s.socket == nil || !s.session.SignedIn() {
		return nil
	}
	conn := s.socket
	token := s.session.Token()
	return func() tea.Msg {
		return socketConnectedMsg{err: conn.Connect(context.Background(), token)}
	}
}

// waitForSignal blocks on the socket's signal channel and re-arms after
// every delivery, preserving signal order inside the Update loop.
func (s *Shell) waitForSignal() tea.Cmd {
	if s.socket == nil {
		return nil
	}
	signals := s.socket.Signals()
	return func() tea.Msg {
		signal, ok := <-signals
		if !ok {
			return nil
		}
		return socketSignalMsg{signal: signal}
	}
}

func (s *Shell) refreshSessionCmd() tea.Cmd {
	sess := s.session
	return func() tea.Msg {
		next, err := sess.FetchNewToken(context.Background())
		return sessionRefreshedMsg{session: next, err: err}
	}
}

func (s *Shell) flash(text string, isErr bool) tea.Cmd {
	s.flashText = text
	s.flashErr = isErr
	s.flashID++
	id := s.flashID
	return tea.Tick(flashTTL, func(time.Time) tea.Msg {
		return flashExpiredMsg{id: id}
	})
}
