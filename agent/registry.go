package agent

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotRegistered is returned when no capability of the requested kind exists.
	ErrNotRegistered = errors.New("capability not registered")
	// ErrKindConflict is returned when a second, different instance is registered for a kind.
	ErrKindConflict = errors.New("capability kind already registered")
)

// Registry holds at most one capability per kind, in registration order.
type Registry struct {
	mu     sync.RWMutex
	order  []Kind
	byKind map[Kind]Capability
}

func NewRegistry(caps ...Capability) (*Registry, error) {
	r := &Registry{byKind: make(map[Kind]Capability)}
	for _, c := range caps {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds c. Registering the same instance again is a no-op.
func (r *Registry) Register(c Capability) error {
	if c == nil {
		return errors.New("register: nil capability")
	}
	kind := c.Kind()
	if !kind.Valid() {
		return fmt.Errorf("register %s: invalid kind %q", c.Name(), kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byKind[kind]; ok {
		if existing == c {
			return nil
		}
		return fmt.Errorf("%w: %s (held by %s)", ErrKindConflict, kind, existing.Name())
	}
	r.byKind[kind] = c
	r.order = append(r.order, kind)
	return nil
}

func (r *Registry) Lookup(kind Kind) (Capability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, kind)
	}
	return c, nil
}

// Resolve looks kind up and checks it implements the variant T.
func Resolve[T Capability](r *Registry, kind Kind) (T, error) {
	var zero T
	c, err := r.Lookup(kind)
	if err != nil {
		return zero, err
	}
	typed, ok := c.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s (%s does not implement the %s variant)", ErrNotRegistered, kind, c.Name(), kind)
	}
	return typed, nil
}

func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Kind(nil), r.order...)
}

// Route picks a capability for a free-form request: the first specialist, in
// registration order, whose CanHandle matches, else the general-purpose one.
func (r *Registry) Route(request string) (Capability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, k := range r.order {
		if k == KindGeneral {
			continue
		}
		if c := r.byKind[k]; c.CanHandle(request) {
			return c, nil
		}
	}
	if c, ok := r.byKind[KindGeneral]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: no capability accepts the request", ErrNotRegistered)
}

// Clone returns a registry of cloned capabilities, each with a fresh history.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := &Registry{byKind: make(map[Kind]Capability, len(r.byKind))}
	for _, k := range r.order {
		out.byKind[k] = r.byKind[k].Clone()
		out.order = append(out.order, k)
	}
	return out
}
