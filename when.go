package config

// ConfigureFunc mutates a registry, typically by staging or removing values.
type ConfigureFunc func(r *Registry) error

// PredicateFunc decides whether a conditional block runs.
type PredicateFunc func(r *Registry) bool

// When runs fn with the registry if cond is true. Errors from fn are returned as-is.
func (r *Registry) When(cond bool, fn ConfigureFunc) error {
	if !cond || fn == nil {
		return nil
	}
	return fn(r)
}

// WhenFunc evaluates pred against the registry and runs fn if it returns true.
// No lock is held while pred or fn run, so both may call any Registry method.
func (r *Registry) WhenFunc(pred PredicateFunc, fn ConfigureFunc) error {
	if pred == nil {
		return nil
	}
	return r.When(pred(r), fn)
}
