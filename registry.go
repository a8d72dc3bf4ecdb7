package config

import (
	"sync"

	"go.uber.org/zap"
)

// Registry owns the staging map of a bootstrap phase and guards every write to
// its ConstantNamespace.
type Registry struct {
	staged    map[string]any // Values waiting to be committed
	order     []string       // Staging order, used for deterministic Apply
	namespace ConstantNamespace
	env       Environment
	logger    *zap.Logger
	options   Options
	mutex     sync.RWMutex // Protects staged and order
}

// New creates a Registry bound to the process-wide namespace and OS environment.
func New() *Registry {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a Registry with custom options.
func NewWithOptions(opts Options) *Registry {
	opts = opts.withDefaults()
	return &Registry{
		staged:    make(map[string]any),
		namespace: opts.Namespace,
		env:       opts.Environment,
		logger:    opts.Logger,
		options:   opts,
	}
}

// Namespace returns the namespace this registry commits into.
func (r *Registry) Namespace() ConstantNamespace {
	return r.namespace
}

// Set stages value under key, replacing any previously staged value.
// It fails immediately if key is already committed in the namespace.
func (r *Registry) Set(key string, value any) error {
	if key == "" {
		return ErrInvalidKey
	}

	if r.namespace.IsDefined(key) {
		r.logger.Error("refusing to stage committed constant", zap.String("key", key))
		return redefinitionError(key)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.staged[key]; !exists {
		r.order = append(r.order, key)
	}
	r.staged[key] = value

	r.logger.Debug("staged config value", zap.String("key", key))
	return nil
}

// Define is an alias for Set.
func (r *Registry) Define(key string, value any) error {
	return r.Set(key, value)
}

// MustSet is like Set but panics on error. It returns the registry for chaining.
func (r *Registry) MustSet(key string, value any) *Registry {
	if err := r.Set(key, value); err != nil {
		panic(err)
	}
	return r
}

// Get returns the staged value for key.
func (r *Registry) Get(key string) (any, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	value, exists := r.staged[key]
	if !exists {
		return nil, &UndefinedConfigKeyError{Key: key}
	}
	return value, nil
}

// GetDefault returns the staged value for key, or def if key is not staged.
// def is returned as given, including zero values.
func (r *Registry) GetDefault(key string, def any) any {
	value, err := r.Get(key)
	if err != nil {
		return def
	}
	return value
}

// Has reports whether key is staged.
func (r *Registry) Has(key string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, exists := r.staged[key]
	return exists
}

// Remove drops key from the staging map. Removing an unknown key is a no-op.
// Committed constants are unaffected.
func (r *Registry) Remove(key string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.staged[key]; !exists {
		return
	}

	delete(r.staged, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Keys returns the staged keys in staging order.
func (r *Registry) Keys() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Staged returns a copy of the staging map.
func (r *Registry) Staged() map[string]any {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	staged := make(map[string]any, len(r.staged))
	for key, value := range r.staged {
		staged[key] = value
	}
	return staged
}

// Committed returns the namespace values of every staged key that has been committed.
func (r *Registry) Committed() map[string]any {
	committed := make(map[string]any)
	for _, key := range r.Keys() {
		if !r.namespace.IsDefined(key) {
			continue
		}
		if value, err := r.namespace.ValueOf(key); err == nil {
			committed[key] = value
		}
	}
	return committed
}

// Apply commits the staging map into the namespace.
//
// Every staged key is validated before anything is written: if any key is
// already committed with a different value, Apply returns a
// *ConstantAlreadyDefinedError and performs no writes. Keys committed with an
// equal value are skipped. The staging map is left intact either way, so Apply
// may be called again after corrections or for later bootstrap phases.
// Committed values are deep copies of the staged ones.
//
// No writes on conflict assumes a single writer per namespace: if another
// registry commits a pending key between validation and commit, Apply returns
// that Define error after the keys before it were written.
func (r *Registry) Apply() error {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	// Validation
	pending := make([]string, 0, len(r.order))
	for _, key := range r.order {
		staged := r.staged[key]
		if !r.namespace.IsDefined(key) {
			pending = append(pending, key)
			continue
		}

		committed, err := r.namespace.ValueOf(key)
		if err != nil {
			return err
		}
		if !sameValue(committed, staged) {
			r.logger.Error("constant conflicts with committed value",
				zap.String("key", key),
				zap.Any("committed", committed),
				zap.Any("staged", staged))
			return conflictError(key, committed, staged)
		}
	}

	// Commit
	for _, key := range pending {
		if err := r.namespace.Define(key, cloneValue(r.staged[key])); err != nil {
			return err
		}
		r.logger.Debug("committed constant", zap.String("key", key))
	}

	r.logger.Info("applied configuration",
		zap.Int("committed", len(pending)),
		zap.Int("skipped", len(r.order)-len(pending)))
	return nil
}
