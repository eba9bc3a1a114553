package chat

import (
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/classlens/classlens/internal/filter"
)

// Sender identifies who wrote a message.
type Sender string

const (
	FromUser Sender = "user"
	FromBot  Sender = "bot"
)

// Message is one entry of the conversation.
type Message struct {
	ID     string
	Sender Sender
	Text   string
	At     time.Time
}

// Options configure a Widget.
type Options struct {
	Seed     uint64
	MinDelay time.Duration
	Jitter   time.Duration
	Now      func() time.Time
}

// DefaultOptions reply after one to two seconds.
func DefaultOptions() Options {
	return Options{
		MinDelay: time.Second,
		Jitter:   time.Second,
		Now:      time.Now,
	}
}

// Reply is a scheduled bot response. The caller delivers it after Delay
// by passing Token back to Deliver.
type Reply struct {
	Token uint64
	Delay time.Duration
}

// Widget is the assistant chat state machine. Replies are computed when a
// message is sent and held until delivered or cancelled.
type Widget struct {
	id       string
	open     bool
	messages []Message
	input    string
	pending  map[uint64]string
	next     uint64

	rng      *rand.Rand
	minDelay time.Duration
	jitter   time.Duration
	now      func() time.Time
}

// New creates a closed widget.
func New(opts Options) *Widget {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Widget{
		id:       uuid.NewString(),
		pending:  make(map[uint64]string),
		rng:      rand.New(rand.NewPCG(opts.Seed, 0x636861)),
		minDelay: opts.MinDelay,
		jitter:   opts.Jitter,
		now:      opts.Now,
	}
}

// ID identifies the conversation. A new widget starts a new conversation.
func (w *Widget) ID() string { return w.id }

// IsOpen reports whether the widget is showing.
func (w *Widget) IsOpen() bool { return w.open }

// Typing reports whether any reply is still pending.
func (w *Widget) Typing() bool { return len(w.pending) > 0 }

// Pending returns how many replies are scheduled.
func (w *Widget) Pending() int { return len(w.pending) }

// Messages returns the conversation so far.
func (w *Widget) Messages() []Message { return slices.Clone(w.messages) }

// Input returns the unsent text.
func (w *Widget) Input() string { return w.input }

// SetInput replaces the unsent text.
func (w *Widget) SetInput(s string) { w.input = s }

// UseQuickQuestion copies quick question i into the input.
func (w *Widget) UseQuickQuestion(i int) bool {
	if i < 0 || i >= len(QuickQuestions) {
		return false
	}
	w.input = QuickQuestions[i]
	return true
}

// Open shows the widget. The first open greets the user with the current
// selection.
func (w *Widget) Open(st filter.State) {
	w.open = true
	if len(w.messages) == 0 {
		w.append(FromBot, Welcome(st))
	}
}

// Close hides the widget and cancels every pending reply.
func (w *Widget) Close() {
	w.open = false
	clear(w.pending)
}

// Submit sends the input. It returns false when the input is blank.
// Earlier pending replies are left to fire on their own.
func (w *Widget) Submit(st filter.State) (Reply, bool) {
	text := strings.TrimSpace(w.input)
	if text == "" || !w.open {
		return Reply{}, false
	}
	w.append(FromUser, w.input)
	w.input = ""

	w.next++
	token := w.next
	w.pending[token] = Respond(text, st)

	delay := w.minDelay
	if w.jitter > 0 {
		delay += time.Duration(w.rng.Float64() * float64(w.jitter))
	}
	return Reply{Token: token, Delay: delay}, true
}

// Deliver appends the reply for token. Cancelled or already delivered
// tokens are ignored and report false.
func (w *Widget) Deliver(token uint64) bool {
	text, ok := w.pending[token]
	if !ok {
		return false
	}
	delete(w.pending, token)
	w.append(FromBot, text)
	return true
}

func (w *Widget) append(from Sender, text string) {
	w.messages = append(w.messages, Message{
		ID:     uuid.NewString(),
		Sender: from,
		Text:   text,
		At:     w.now(),
	})
}

// ReplyMsg is the message a UI schedules to deliver a reply token.
// Conversation is the ID of the widget the token belongs to.
type ReplyMsg struct {
	Conversation string
	Token        uint64
}
