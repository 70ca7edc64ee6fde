package weather

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// UnknownStateError is returned when a name is not registered in the table.
type UnknownStateError struct {
	Name       string
	Suggestion string
}

func (e *UnknownStateError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown weather state %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown weather state %q", e.Name)
}

// Table is an immutable registry of named environment bundles.
type Table struct {
	states      map[string]EnvironmentState
	order       []string
	defaultName string
}

// NewTable registers states in the given order. defaultName must be one of
// them; when empty the first name in order is the default.
func NewTable(order []string, states map[string]EnvironmentState, defaultName string) (*Table, error) {
	if len(order) == 0 {
		return nil, fmt.Errorf("weather table needs at least one state")
	}
	t := &Table{
		states: make(map[string]EnvironmentState, len(order)),
		order:  make([]string, 0, len(order)),
	}
	for _, name := range order {
		st, ok := states[name]
		if !ok {
			return nil, fmt.Errorf("weather state %q listed but not defined", name)
		}
		if _, dup := t.states[name]; dup {
			return nil, fmt.Errorf("weather state %q registered twice", name)
		}
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("weather state %q: %w", name, err)
		}
		t.states[name] = st
		t.order = append(t.order, name)
	}

	if defaultName == "" {
		defaultName = t.order[0]
	}
	if _, ok := t.states[defaultName]; !ok {
		return nil, fmt.Errorf("default weather state: %w", t.unknown(defaultName))
	}
	t.defaultName = defaultName
	return t, nil
}

// DefaultTable builds the table from DefaultStates in DefaultOrder.
func DefaultTable() *Table {
	t, err := NewTable(DefaultOrder, DefaultStates(), "")
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Lookup(name string) (EnvironmentState, error) {
	st, ok := t.states[name]
	if !ok {
		return EnvironmentState{}, t.unknown(name)
	}
	return st, nil
}

// Resolve is Lookup with the default state as fallback. It returns the name
// actually resolved alongside any lookup error.
func (t *Table) Resolve(name string) (EnvironmentState, string, error) {
	st, err := t.Lookup(name)
	if err != nil {
		return t.states[t.defaultName], t.defaultName, err
	}
	return st, name, nil
}

func (t *Table) Has(name string) bool {
	_, ok := t.states[name]
	return ok
}

func (t *Table) Default() string { return t.defaultName }

// Names returns the registered names in registration order.
func (t *Table) Names() []string {
	return append([]string(nil), t.order...)
}

func (t *Table) unknown(name string) *UnknownStateError {
	best, bestDist := "", len(name)/2+2
	for _, cand := range t.order {
		if d := levenshtein.ComputeDistance(name, cand); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return &UnknownStateError{Name: name, Suggestion: best}
}
