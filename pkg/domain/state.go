package domain

// State represents the snapshot of an interactive session: the named
// expressions the user has defined so far and the expressions they have
// evaluated, in order.
//
// Defs map a name to its raw expression string rather than to a computed
// distribution; definitions stay cheap to persist and are re-evaluated on
// load, so a stored session never goes stale against engine fixes.
type State struct {
	// Defs holds user definitions, name -> expression.
	Defs map[string]string `json:"defs"`

	// History tracks evaluated expressions in submission order.
	History []string `json:"history"`
}

// NewState creates a clean session state.
func NewState() *State {
	return &State{
		Defs:    make(map[string]string),
		History: []string{},
	}
}

// Clone returns a deep copy of the state.
// Stores copy on save and load so callers cannot mutate persisted snapshots.
func (s *State) Clone() *State {
	c := &State{
		Defs:    make(map[string]string, len(s.Defs)),
		History: make([]string, len(s.History)),
	}
	for k, v := range s.Defs {
		c.Defs[k] = v
	}
	copy(c.History, s.History)
	return c
}
