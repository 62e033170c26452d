// env.go — lexically scoped environments (name -> Value), chained by parent.
package lox

// Env is one scope frame. Closures and active call frames share frames by
// reference, so a frame lives as long as anything that captured it.
type Env struct {
	vars   map[string]Value
	parent *Env
}

// NewEnv creates an empty environment whose lookups fall back to parent.
func NewEnv(parent *Env) *Env {
	return &Env{vars: map[string]Value{}, parent: parent}
}

// Define inserts or overwrites name in this scope only.
func (e *Env) Define(name string, v Value) {
	e.vars[name] = v
}

// Get walks outward through the chain until name is found.
func (e *Env) Get(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Assign overwrites name in the nearest scope that already defines it.
// Assignment never creates a binding; that is Define's job.
func (e *Env) Assign(name string, v Value) bool {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = v
			return true
		}
	}
	return false
}
