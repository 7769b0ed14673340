package trigger

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Source identifies an element that can receive an activation
type Source string

// Listener receives activations dispatched to a container
type Listener func(ctx context.Context, ev *Event)

var (
	// ErrContainerNotFound reports markup without the delegation container
	ErrContainerNotFound = errors.New("delegation container not found")
	// ErrUnknownParent reports an element registered under a missing parent
	ErrUnknownParent = errors.New("unknown parent element")
	// ErrDuplicateSource reports an element registered twice
	ErrDuplicateSource = errors.New("duplicate element")
)

// noTrigger marks an element that is not a trigger
const noTrigger = -1

type element struct {
	parent  Source
	trigger int
}

type registration struct {
	owner    any
	listener Listener
}

// Container is the delegation container: one ancestor on which listeners
// observe activations from many descendant triggers.
type Container struct {
	id string

	mu        sync.RWMutex
	triggers  []Trigger
	sources   []Source
	elements  map[Source]element
	listeners []registration
}

// NewContainer creates an empty container whose root element is Source(id)
func NewContainer(id string) *Container {
	return &Container{
		id: id,
		elements: map[Source]element{
			Source(id): {trigger: noTrigger},
		},
	}
}

// ID returns the container identifier
func (c *Container) ID() string {
	return c.id
}

// Root returns the source of the container element itself
func (c *Container) Root() Source {
	return Source(c.id)
}

// AddElement registers a non-trigger element under parent
func (c *Container) AddElement(src, parent Source) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addLocked(src, parent, noTrigger)
}

// AddTrigger registers a trigger element under parent
func (c *Container) AddTrigger(src, parent Source, t Trigger) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.ID == "" {
		t.ID = string(src)
	}
	if err := c.addLocked(src, parent, len(c.triggers)); err != nil {
		return err
	}
	c.triggers = append(c.triggers, t)
	c.sources = append(c.sources, src)
	return nil
}

func (c *Container) addLocked(src, parent Source, index int) error {
	if _, exists := c.elements[src]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSource, src)
	}
	if _, exists := c.elements[parent]; !exists {
		return fmt.Errorf("%w: %s (child %s)", ErrUnknownParent, parent, src)
	}
	c.elements[src] = element{parent: parent, trigger: index}
	return nil
}

// Has reports whether src is an element of this container
func (c *Container) Has(src Source) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.elements[src]
	return ok
}

// Resolve returns the closest trigger that is src or an ancestor of src,
// stopping at the container root
func (c *Container) Resolve(src Source) (Trigger, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for {
		el, ok := c.elements[src]
		if !ok {
			return Trigger{}, false
		}
		if el.trigger != noTrigger {
			return c.triggers[el.trigger], true
		}
		if src == c.Root() {
			return Trigger{}, false
		}
		src = el.parent
	}
}

// Triggers returns the triggers in declaration order
func (c *Container) Triggers() []Trigger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Trigger, len(c.triggers))
	copy(out, c.triggers)
	return out
}

// TriggerSource returns the element source of the i-th trigger
func (c *Container) TriggerSource(i int) (Source, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.sources) {
		return "", false
	}
	return c.sources[i], true
}

// Len returns the number of triggers
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.triggers)
}

// AddListener registers listener for owner. An owner holds at most one
// registration; later calls for the same owner return false and change
// nothing. owner must be comparable.
func (c *Container) AddListener(owner any, listener Listener) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, reg := range c.listeners {
		if reg.owner == owner {
			return false
		}
	}
	c.listeners = append(c.listeners, registration{owner: owner, listener: listener})
	return true
}

// ListenerCount returns the number of registered listeners
func (c *Container) ListenerCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.listeners)
}

// Dispatch delivers an activation to every listener. Activations on sources
// outside the container are dropped.
func (c *Container) Dispatch(ctx context.Context, ev *Event) {
	c.mu.RLock()
	_, inside := c.elements[ev.Target]
	listeners := make([]registration, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.RUnlock()

	if !inside {
		return
	}
	for _, reg := range listeners {
		reg.listener(ctx, ev)
	}
}

// Event is one activation (a click, an Enter key press) on a target element
type Event struct {
	Target Source

	propagationStopped bool
	defaultPrevented   bool
}

// NewEvent creates an activation on target
func NewEvent(target Source) *Event {
	return &Event{Target: target}
}

// StopPropagation keeps the activation from reaching handlers above the container
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// PreventDefault suppresses the host's default action (e.g. following the link)
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// PropagationStopped reports whether a listener stopped propagation
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// DefaultPrevented reports whether a listener suppressed the default action
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}
