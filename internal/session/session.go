// Package session holds everything a signed-in teacher works with: the
// catalog, the generated datasets, the filter store and the assistant.
// Screens, the exporter and the report command all read views from here so
// the terminal and the CLI show the same numbers.
package session

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/classlens/classlens/internal/auth"
	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/chat"
	"github.com/classlens/classlens/internal/dataset"
	"github.com/classlens/classlens/internal/derive"
	"github.com/classlens/classlens/internal/filter"
	"github.com/classlens/classlens/internal/nav"
)

// Options configure a Session.
type Options struct {
	Seed uint64
	Now  time.Time
	Chat chat.Options
	Log  logrus.FieldLogger
}

// Session is the root-owned application state.
type Session struct {
	Catalog *catalog.Catalog
	Data    *dataset.Dataset
	Filters *filter.Store
	Auth    *auth.Session
	Chat    *chat.Widget
	Page    nav.Page

	log       logrus.FieldLogger
	chatOpts  chat.Options
	gradebook []derive.PerformanceRow
}

// New generates the datasets once and returns a signed-out session.
func New(c *catalog.Catalog, opts Options) *Session {
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if opts.Chat.Seed == 0 {
		opts.Chat.Seed = opts.Seed
	}
	data := dataset.Generate(c, dataset.Options{Seed: opts.Seed, Now: opts.Now})
	log.WithFields(logrus.Fields{
		"seed":    opts.Seed,
		"queries": len(data.Queries),
		"notes":   len(data.Notes),
		"scans":   len(data.Scans),
	}).Info("generated datasets")

	s := &Session{
		Catalog:   c,
		Data:      data,
		Filters:   filter.NewStore(),
		Auth:      &auth.Session{},
		Chat:      chat.New(opts.Chat),
		Page:      nav.Dashboard,
		log:       log,
		chatOpts:  opts.Chat,
		gradebook: derive.PerformanceTable(c),
	}
	s.Filters.Subscribe(func(st filter.State) {
		s.log.WithFields(logrus.Fields{
			"class":    st.Class,
			"subject":  st.Subject,
			"students": len(st.Students),
			"mode":     st.LearningMode,
		}).Debug("filters changed")
	})
	return s
}

// Log returns the session logger.
func (s *Session) Log() logrus.FieldLogger { return s.log }

// Login signs the teacher in.
func (s *Session) Login(username, password string) error {
	if err := s.Auth.Submit(username, password); err != nil {
		return err
	}
	s.log.WithField("user", s.Auth.User()).Info("signed in")
	return nil
}

// Logout signs out, restores the default filters, returns to the
// dashboard and starts a fresh conversation.
func (s *Session) Logout() {
	s.log.WithField("user", s.Auth.User()).Info("signed out")
	s.Auth.Logout()
	s.Filters.Reset()
	s.Page = nav.Dashboard
	s.Chat.Close()
	s.Chat = chat.New(s.chatOpts)
}

// Navigate switches the active page.
func (s *Session) Navigate(p nav.Page) {
	if !p.Valid() || p == s.Page {
		return
	}
	s.Page = p
	s.log.WithField("page", p.Slug()).Debug("navigate")
}

// Dispatch applies a filter action.
func (s *Session) Dispatch(a filter.Action) {
	s.Filters.Dispatch(a)
}
