package shell

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/chat"
	"github.com/classlens/classlens/internal/session"
	"github.com/classlens/classlens/internal/ui/components"
	"github.com/classlens/classlens/internal/ui/theme"
)

// ChatWidth is the width of the assistant panel on wide terminals.
const ChatWidth = 46

// scrollStep is how many transcript lines pgup and pgdown move.
const scrollStep = 6

// chatPanel draws the assistant conversation and owns its input field.
// back counts transcript lines scrolled up from the newest message.
type chatPanel struct {
	sess  *session.Session
	input components.TextInput
	quick int
	seen  int
	lines int
	back  int
}

func newChatPanel(sess *session.Session) *chatPanel {
	return &chatPanel{
		sess:  sess,
		input: components.NewTextInput("", "Ask about your class…", false, 200),
	}
}

func (c *chatPanel) open() tea.Cmd {
	c.sess.Chat.Open(c.sess.Filters.State())
	c.seen = -1
	c.sync()
	return c.input.Focus()
}

// sync jumps back to the newest message whenever the transcript grew.
func (c *chatPanel) sync() {
	msgs := c.sess.Chat.Messages()
	if len(msgs) == c.seen {
		return
	}
	c.seen = len(msgs)
	c.lines = lipgloss.Height(transcript(msgs, ChatWidth-4))
	c.back = 0
}

func (c *chatPanel) close() {
	c.sess.Chat.Close()
	c.input.Blur()
}

// update handles keys while the panel is open. It returns true when the
// panel was closed.
func (c *chatPanel) update(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	w := c.sess.Chat
	c.sync()
	switch msg.String() {
	case "esc":
		c.close()
		return nil, true
	case "tab":
		w.UseQuickQuestion(c.quick)
		c.quick = (c.quick + 1) % len(chat.QuickQuestions)
		c.input.SetValue(w.Input())
		c.input.Model.CursorEnd()
		return nil, false
	case "enter":
		w.SetInput(c.input.Value())
		reply, ok := w.Submit(c.sess.Filters.State())
		if !ok {
			return nil, false
		}
		c.input.Reset()
		c.sync()
		conv := w.ID()
		return tea.Tick(reply.Delay, func(time.Time) tea.Msg {
			return chat.ReplyMsg{Conversation: conv, Token: reply.Token}
		}), false
	case "pgup":
		c.back = min(c.back+scrollStep, c.lines)
		return nil, false
	case "pgdown":
		c.back = max(c.back-scrollStep, 0)
		return nil, false
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	w.SetInput(c.input.Value())
	return cmd, false
}

func (c *chatPanel) view(width, height int) string {
	w := c.sess.Chat
	inner := width - 4

	input := c.input.View(inner)
	var hints []string
	for i, q := range chat.QuickQuestions {
		mark := "  "
		if i == c.quick {
			mark = "› "
		}
		hints = append(hints, mark+q)
	}
	quick := theme.Hint.Render("tab: quick question\n" + strings.Join(hints, "\n"))

	status := ""
	if w.Typing() {
		status = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Assistant is typing…")
	}

	fixed := lipgloss.Height(input) + lipgloss.Height(quick) + 4
	vpH := max(height-fixed-1, 3)
	vp := viewport.New(viewport.WithWidth(inner), viewport.WithHeight(vpH))
	vp.SetContent(transcript(w.Messages(), inner))
	vp.GotoBottom()
	vp.ScrollUp(c.back)

	body := lipgloss.JoinVertical(lipgloss.Left, vp.View(), status, input, quick)
	return components.Card("AI Assistant", body, width)
}

func transcript(msgs []chat.Message, width int) string {
	bubble := width - 4
	var parts []string
	for _, m := range msgs {
		stamp := theme.Hint.Render(m.At.Format("15:04"))
		if m.Sender == chat.FromUser {
			text := lipgloss.NewStyle().
				Foreground(theme.Text).
				Background(theme.Primary).
				Padding(0, 1).
				Width(bubble).
				Render(m.Text)
			parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Right, text+"\n"+stamp))
			continue
		}
		text := lipgloss.NewStyle().
			Foreground(theme.Text).
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(theme.Accent).
			PaddingLeft(1).
			Width(bubble).
			Render(m.Text)
		parts = append(parts, text+"\n"+stamp)
	}
	return strings.Join(parts, "\n\n")
}

// badge is the sidebar entry for the assistant.
func (c *chatPanel) badge() string {
	w := c.sess.Chat
	if w.IsOpen() {
		return "c Close assistant"
	}
	return fmt.Sprintf("c AI assistant (%d)", len(w.Messages()))
}
