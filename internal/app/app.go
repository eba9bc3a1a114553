package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/classlens/classlens/internal/chat"
	"github.com/classlens/classlens/internal/router"
	"github.com/classlens/classlens/internal/screen"
	"github.com/classlens/classlens/internal/screens/login"
	"github.com/classlens/classlens/internal/screens/shell"
	"github.com/classlens/classlens/internal/session"
	"github.com/classlens/classlens/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	sess   *session.Session
	router *router.Router
	width  int
	height int
}

// newAppModel starts signed out. The login and shell factories refer to
// each other so logout can return to a fresh form.
func newAppModel(sess *session.Session) AppModel {
	var signIn, signedIn func() screen.Screen
	signIn = func() screen.Screen { return login.New(sess, signedIn) }
	signedIn = func() screen.Screen { return shell.New(sess, signIn) }
	return AppModel{
		sess:   sess,
		router: router.New(signIn()),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case chat.ReplyMsg:
		if msg.Conversation != m.sess.Chat.ID() || !m.sess.Chat.Deliver(msg.Token) {
			return m, nil
		}
		// The shell sits at the root, under any overlay.
		return m, m.router.Forward(0, msg)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var chips []string
	if hp, ok := active.(screen.HeaderProvider); ok {
		chips = hp.HeaderChips()
	}
	header := layout.RenderHeader(active.Title(), chips, m.width)

	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	}
	if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "esc", Description: "Back"})
	}
	hints = append(hints, layout.KeyHint{Key: "ctrl+c", Description: "Quit"})
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the terminal UI on sess and blocks until the user quits.
func Run(sess *session.Session, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(newAppModel(sess), opts...)
	_, err := p.Run()
	return err
}
