package assign

import (
	"slices"

	"github.com/samber/lo"
)

// Placeholder is the role handed to participants once the shuffled roles run out.
const Placeholder = "no role assigned"

// Assignment links one participant to one role or to the placeholder.
type Assignment struct {
	Participant string `json:"participant" yaml:"participant"`
	Role        string `json:"role" yaml:"role"`
	// Vacant is set when Role holds the placeholder rather than a drawn role.
	Vacant bool `json:"vacant,omitempty" yaml:"vacant,omitempty"`
}

// Shuffler permutes n elements in place through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Option customizes Engine construction.
type Option func(*Engine)

// WithShuffler overrides the randomness source.
func WithShuffler(s Shuffler) Option {
	return func(e *Engine) {
		if s != nil {
			e.shuffler = s
		}
	}
}

// WithPlaceholder overrides the label used when roles run out. Blank labels are ignored.
func WithPlaceholder(label string) Option {
	return func(e *Engine) {
		if label != "" {
			e.placeholder = label
		}
	}
}

// Engine produces assignments. The zero value is not usable; call New.
type Engine struct {
	shuffler    Shuffler
	placeholder string
}

// New builds an engine seeded from the clock unless WithShuffler is given.
func New(opts ...Option) *Engine {
	e := &Engine{placeholder: Placeholder}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.shuffler == nil {
		e.shuffler = NewRandomizer(0)
	}
	return e
}

// PlaceholderLabel returns the label used for participants without a role.
func (e *Engine) PlaceholderLabel() string {
	return e.placeholder
}

// Assign shuffles a copy of roles and pairs it with participants by index.
// The result always has len(participants) entries; surplus roles are dropped
// and missing ones are filled with the placeholder. Neither input is modified.
func (e *Engine) Assign(participants, roles []string) []Assignment {
	shuffled := slices.Clone(roles)
	e.shuffler.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return lo.Map(participants, func(name string, i int) Assignment {
		if i < len(shuffled) {
			return Assignment{Participant: name, Role: shuffled[i]}
		}
		return Assignment{Participant: name, Role: e.placeholder, Vacant: true}
	})
}

var defaultEngine = New()

// Assign runs the process-wide default engine.
func Assign(participants, roles []string) []Assignment {
	return defaultEngine.Assign(participants, roles)
}
