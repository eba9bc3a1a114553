package shell

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/classlens/classlens/internal/session"
	"github.com/classlens/classlens/internal/ui/components"
	"github.com/classlens/classlens/internal/ui/theme"
)

// questionsPanel lists the latest student questions for the selected topic
// and lets the teacher answer one at a time. It shares the side slot with
// the assistant; only one of them is open.
type questionsPanel struct {
	sess     *session.Session
	isOpen   bool
	topic    string
	list     components.List
	input    components.TextInput
	replying bool
	replies  map[string]string
}

func newQuestionsPanel(sess *session.Session) *questionsPanel {
	return &questionsPanel{
		sess:    sess,
		input:   components.NewTextInput("", "Type your reply…", false, 300),
		replies: make(map[string]string),
	}
}

// open loads the questions for the current topic filter, falling back to
// the general list when no topic is selected.
func (q *questionsPanel) open() {
	q.topic, _ = q.sess.Filters.State().Topic.Get()
	q.list = components.NewList(components.Plain, q.sess.Catalog.QuestionsFor(q.topic)...)
	q.list.Focus = true
	q.isOpen = true
	q.replying = false
}

func (q *questionsPanel) close() {
	q.isOpen = false
	q.replying = false
	q.input.Blur()
}

// answered counts the questions with a reply.
func (q *questionsPanel) answered() int { return len(q.replies) }

func (q *questionsPanel) update(msg tea.KeyPressMsg) tea.Cmd {
	if q.replying {
		switch msg.String() {
		case "esc":
			q.replying = false
			q.input.Blur()
			return nil
		case "enter":
			q.send()
			return nil
		}
		var cmd tea.Cmd
		q.input, cmd = q.input.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "esc", "Q":
		q.close()
		return nil
	}
	var picked bool
	q.list, picked = q.list.Update(msg)
	if !picked {
		return nil
	}
	q.replying = true
	q.input.SetValue(q.replies[q.list.Current()])
	return q.input.Focus()
}

// send records the reply to the selected question. Blank replies are
// ignored and keep the input open.
func (q *questionsPanel) send() {
	text := strings.TrimSpace(q.input.Value())
	if text == "" {
		return
	}
	question := q.list.Current()
	q.replies[question] = text
	q.sess.Log().WithFields(logrus.Fields{
		"topic":    q.topic,
		"question": question,
	}).Info("replied to student question")
	q.input.Reset()
	q.input.Blur()
	q.replying = false
}

func (q *questionsPanel) view(width, height int) string {
	inner := width - 4
	topic := q.topic
	if topic == "" {
		topic = "All topics"
	}
	header := theme.Subtitle.Render(fmt.Sprintf("%s · %d answered", topic, q.answered()))

	var rows []string
	for i, it := range q.list.Items {
		cursor := "  "
		if i == q.list.Cursor {
			cursor = "▸ "
		}
		mark := "? "
		style := theme.Unselected
		if _, ok := q.replies[it.Label]; ok {
			mark = lipgloss.NewStyle().Foreground(theme.Success).Render("✓ ")
		}
		if i == q.list.Cursor {
			style = theme.Selected
		}
		rows = append(rows, cursor+mark+style.Width(inner-4).Render(it.Label))
	}
	list := strings.Join(rows, "\n")

	var footer string
	if q.replying {
		footer = lipgloss.JoinVertical(lipgloss.Left,
			theme.Hint.Render("Reply to:"),
			lipgloss.NewStyle().Width(inner).Italic(true).Render(q.list.Current()),
			q.input.View(inner),
			theme.Hint.Render("enter send · esc cancel"))
	} else {
		footer = theme.Hint.Render("enter reply · esc close")
		if r, ok := q.replies[q.list.Current()]; ok {
			footer = lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().Width(inner).Foreground(theme.TextDim).Render("Your reply: "+r),
				footer)
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, header, "", list, "", footer)
	body = lipgloss.NewStyle().MaxHeight(max(height-2, 3)).Render(body)
	return components.Card("Recent Student Questions", body, width)
}

// badge is the sidebar entry for the panel.
func (q *questionsPanel) badge() string {
	if q.isOpen {
		return "Q Close questions"
	}
	return "Q Student questions"
}
