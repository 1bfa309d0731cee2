package state

import (
	"slices"
	"sync"

	"github.com/huangang/teamboard/internal/metrics"
	"github.com/huangang/teamboard/pkg/logger"
	"github.com/rs/zerolog"
)

// Listener reacts to a domain event while the dispatch that raised it
// still holds the state.
type Listener func(st *State, ev Event)

// Subscriber observes every committed state. It gets its own copy and
// must not dispatch synchronously.
type Subscriber func(st State, a Action)

type subscription struct {
	id int
	fn Subscriber
}

// Store owns the state tree and applies actions to it one at a time.
type Store struct {
	mu        sync.Mutex
	state     State
	limit     int
	listeners []Listener
	subs      []subscription
	nextSub   int

	// notifyMu is taken before mu is released so subscribers see commits
	// in dispatch order.
	notifyMu sync.Mutex
	log      zerolog.Logger
}

type StoreOption func(*Store)

// WithNotificationLimit caps the ui notification list.
func WithNotificationLimit(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

func NewStore(initial State, opts ...StoreOption) *Store {
	s := &Store{
		state: initial.Clone(),
		limit: DefaultNotificationLimit,
		log:   logger.Component("state"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.listeners = []Listener{tasksOnProjectDeleted}
	return s
}

// DefaultNotificationLimit is how many notifications the ui slice keeps.
const DefaultNotificationLimit = 20

// State returns a copy of the current tree.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Listen adds a domain event listener.
func (s *Store) Listen(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Subscribe registers fn and returns a func that removes it.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool { return sub.id == id })
		s.mu.Unlock()
	}
}

// Dispatch reduces a into the tree, runs listeners for any events it
// raised, then notifies subscribers.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()

	var events []Event
	emit := func(ev Event) { events = append(events, ev) }

	st := &s.state
	reduceAuth(&st.Auth, a)
	reduceUsers(&st.Users, a)
	reduceProjects(&st.Projects, a, emit)
	reduceTasks(&st.Tasks, a)
	reduceReports(&st.Reports, a)
	reduceUI(&st.UI, a, s.limit)

	for _, ev := range events {
		for _, l := range s.listeners {
			l(st, ev)
		}
	}

	subs := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub.fn)
	}
	var snapshot State
	if len(subs) > 0 {
		snapshot = st.Clone()
	}

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	metrics.Dispatches.WithLabelValues(a.String()).Inc()
	s.log.Debug().Str("action", a.String()).Int("events", len(events)).Msg("dispatch")

	for _, fn := range subs {
		fn(snapshot.Clone(), a)
	}
}
