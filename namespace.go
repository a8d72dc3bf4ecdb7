package config

import "sync"

// ConstantNamespace is a write-once key/value store. Once a key is defined it can
// never be overwritten or removed.
type ConstantNamespace interface {
	// IsDefined reports whether key has been committed.
	IsDefined(key string) bool
	// Define commits value under key. Defining an existing key fails.
	Define(key string, value any) error
	// ValueOf returns the committed value for key.
	ValueOf(key string) (any, error)
}

// MemoryNamespace is an in-memory, append-only ConstantNamespace.
// Keys are kept in definition order. Values are deep-copied on the way in and
// out, so a committed map or slice cannot be changed in place.
type MemoryNamespace struct {
	values map[string]any
	order  []string
	mutex  sync.RWMutex
}

// NewMemoryNamespace creates an empty namespace.
func NewMemoryNamespace() *MemoryNamespace {
	return &MemoryNamespace{
		values: make(map[string]any),
	}
}

// IsDefined implements ConstantNamespace.
func (n *MemoryNamespace) IsDefined(key string) bool {
	n.mutex.RLock()
	defer n.mutex.RUnlock()

	_, exists := n.values[key]
	return exists
}

// Define implements ConstantNamespace.
func (n *MemoryNamespace) Define(key string, value any) error {
	if key == "" {
		return ErrInvalidKey
	}

	n.mutex.Lock()
	defer n.mutex.Unlock()

	if _, exists := n.values[key]; exists {
		return redefinitionError(key)
	}

	n.values[key] = cloneValue(value)
	n.order = append(n.order, key)
	return nil
}

// ValueOf implements ConstantNamespace.
func (n *MemoryNamespace) ValueOf(key string) (any, error) {
	n.mutex.RLock()
	defer n.mutex.RUnlock()

	value, exists := n.values[key]
	if !exists {
		return nil, ErrUndefinedConstant
	}
	return cloneValue(value), nil
}

// Keys returns the defined keys in definition order.
func (n *MemoryNamespace) Keys() []string {
	n.mutex.RLock()
	defer n.mutex.RUnlock()

	keys := make([]string, len(n.order))
	copy(keys, n.order)
	return keys
}

// Snapshot returns a copy of every defined constant.
func (n *MemoryNamespace) Snapshot() map[string]any {
	n.mutex.RLock()
	defer n.mutex.RUnlock()

	snapshot := make(map[string]any, len(n.values))
	for key, value := range n.values {
		snapshot[key] = cloneValue(value)
	}
	return snapshot
}

// Len returns the number of defined constants.
func (n *MemoryNamespace) Len() int {
	n.mutex.RLock()
	defer n.mutex.RUnlock()

	return len(n.values)
}

var (
	processConstants     *MemoryNamespace
	processConstantsOnce sync.Once
)

// Constants returns the process-wide constant namespace. It is created on first
// use and lives for the rest of the process.
func Constants() *MemoryNamespace {
	processConstantsOnce.Do(func() {
		processConstants = NewMemoryNamespace()
	})
	return processConstants
}

// Constant returns the process-wide committed value for key.
func Constant(key string) (any, bool) {
	value, err := Constants().ValueOf(key)
	if err != nil {
		return nil, false
	}
	return value, true
}

// IsConstantDefined reports whether key is committed in the process-wide namespace.
func IsConstantDefined(key string) bool {
	return Constants().IsDefined(key)
}
