// Package roster owns the participant list, the role list, and the latest
// assignment between them. A Store is not safe for concurrent mutation; the
// caller serializes access (the TUI does so through bubbletea's update loop).
package roster

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/kingrea/roledraw/internal/assign"
)

// Logger receives a trace line for every mutation. *logging.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// Draw is the outcome of one AssignRoles call.
type Draw struct {
	ID          uuid.UUID
	At          time.Time
	Assignments []assign.Assignment
}

// IsZero reports whether no draw has been made yet.
func (d Draw) IsZero() bool {
	return d.ID == uuid.Nil
}

// ShortID returns the first eight characters of the draw ID for display.
func (d Draw) ShortID() string {
	return d.ID.String()[:8]
}

// Option customizes Store construction.
type Option func(*Store)

// WithEngine overrides the assignment engine, typically to pin a seed.
func WithEngine(engine *assign.Engine) Option {
	return func(s *Store) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithLogger routes mutation traces to logger.
func WithLogger(logger Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock overrides the time source used to stamp draws.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store holds the three lists of the role draw.
type Store struct {
	participants []string
	roles        []string
	last         Draw

	engine *assign.Engine
	logger Logger
	now    func() time.Time
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.engine == nil {
		s.engine = assign.New()
	}
	return s
}

// SetParticipants replaces the participant list wholesale.
func (s *Store) SetParticipants(names []string) {
	s.participants = slices.Clone(names)
	s.logf("participants: %s", formatList(s.participants))
}

// SetRoles replaces the role list wholesale.
func (s *Store) SetRoles(roles []string) {
	s.roles = slices.Clone(roles)
	s.logf("roles: %s", formatList(s.roles))
}

// AssignRoles draws a fresh assignment from the current lists and replaces
// the previous one.
func (s *Store) AssignRoles() Draw {
	assignments := s.engine.Assign(s.participants, s.roles)
	s.last = Draw{
		ID:          uuid.New(),
		At:          s.now(),
		Assignments: assignments,
	}
	s.logf("draw %s: %s", s.last.ID, formatAssignments(assignments))
	return s.LastDraw()
}

// Participants returns a copy of the participant list.
func (s *Store) Participants() []string {
	return slices.Clone(s.participants)
}

// Roles returns a copy of the role list.
func (s *Store) Roles() []string {
	return slices.Clone(s.roles)
}

// Assignments returns a copy of the latest assignment list.
func (s *Store) Assignments() []assign.Assignment {
	return slices.Clone(s.last.Assignments)
}

// LastDraw returns a copy of the latest draw. The zero Draw means none yet.
func (s *Store) LastDraw() Draw {
	d := s.last
	d.Assignments = slices.Clone(s.last.Assignments)
	return d
}

// Placeholder returns the label the engine uses for participants without a role.
func (s *Store) Placeholder() string {
	return s.engine.PlaceholderLabel()
}

func (s *Store) logf(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}

func formatList(values []string) string {
	return "[" + strings.Join(values, ", ") + "]"
}

func formatAssignments(assignments []assign.Assignment) string {
	pairs := lo.Map(assignments, func(a assign.Assignment, _ int) string {
		return a.Participant + "=" + a.Role
	})
	return formatList(pairs)
}
