package login

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/router"
	"github.com/classlens/classlens/internal/screen"
	"github.com/classlens/classlens/internal/session"
	"github.com/classlens/classlens/internal/ui/components"
	"github.com/classlens/classlens/internal/ui/layout"
	"github.com/classlens/classlens/internal/ui/theme"
)

const formWidth = 52

type field int

const (
	usernameField field = iota
	passwordField
	submitButton
)

// LoginScreen is the sign-in form shown before the dashboard.
type LoginScreen struct {
	sess     *session.Session
	signedIn func() screen.Screen

	username components.TextInput
	password components.TextInput
	focus    field
	err      string
	done     bool
}

var _ screen.Screen = (*LoginScreen)(nil)

// New creates the form. signedIn builds the screen that replaces it after
// a successful sign-in.
func New(sess *session.Session, signedIn func() screen.Screen) *LoginScreen {
	l := &LoginScreen{
		sess:     sess,
		signedIn: signedIn,
		username: components.NewTextInput("Username", "teacher", false, 64),
		password: components.NewTextInput("Password", "••••••••", true, 64),
	}
	l.username.Focus()
	return l
}

// Err returns the message shown under the form.
func (l *LoginScreen) Err() string { return l.err }

func (l *LoginScreen) Init() tea.Cmd {
	return l.username.Focus()
}

func (l *LoginScreen) setFocus(f field) tea.Cmd {
	l.focus = f
	l.username.Blur()
	l.password.Blur()
	switch f {
	case usernameField:
		return l.username.Focus()
	case passwordField:
		return l.password.Focus()
	}
	return nil
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return l, nil
	}

	switch kmsg.String() {
	case "tab", "down":
		return l, l.setFocus((l.focus + 1) % 3)
	case "shift+tab", "up":
		return l, l.setFocus((l.focus + 2) % 3)
	case "enter":
		if l.focus == usernameField {
			return l, l.setFocus(passwordField)
		}
		return l, l.submit()
	}

	var cmd tea.Cmd
	switch l.focus {
	case usernameField:
		l.username, cmd = l.username.Update(msg)
	case passwordField:
		l.password, cmd = l.password.Update(msg)
	default:
		return l, nil
	}
	l.err = ""
	return l, cmd
}

func (l *LoginScreen) submit() tea.Cmd {
	if l.done {
		return nil
	}
	if err := l.sess.Login(l.username.Value(), l.password.Value()); err != nil {
		l.err = err.Error()
		return nil
	}
	l.done = true
	next := l.signedIn()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (l *LoginScreen) View(width, height int) string {
	form := []string{
		theme.Title.Render("Teacher Sign In"),
		theme.Hint.Render("Access your classroom analytics"),
		"",
		l.username.View(formWidth - 4),
		l.password.View(formWidth - 4),
		"",
		components.Button{Label: "Sign In", Active: l.focus == submitButton}.View(),
	}
	if l.err != "" {
		form = append(form, "", theme.ErrorText.Render(l.err))
	}
	card := components.Card("", lipgloss.JoinVertical(lipgloss.Left, form...), formWidth)

	body := lipgloss.JoinVertical(lipgloss.Center, RenderBanner(width), "", card)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (l *LoginScreen) Title() string {
	return "Sign In"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "tab", Description: "Next field"},
		{Key: "enter", Description: "Sign in"},
	}
}
