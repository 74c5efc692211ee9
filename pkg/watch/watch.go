package watch

import (
	"sync"

	"github.com/matzehuels/gaugekit/pkg/errors"
)

// Property names an observable property.
type Property string

// Any subscribes a handler to every declared property of a set.
const Any Property = "*"

// Change describes one property assignment.
type Change struct {
	Name Property
	Old  any
	New  any
}

// Handler receives property changes.
type Handler func(Change)

type subscription struct {
	id      uint64
	name    Property
	handler Handler
}

// Set holds the declared properties of one entity and their subscribers.
// The zero value declares nothing; use [NewSet].
type Set struct {
	mu       sync.Mutex
	declared []Property
	subs     []subscription
	nextID   uint64
}

// NewSet creates a set declaring props, in the given order.
func NewSet(props ...Property) *Set {
	return &Set{declared: append([]Property(nil), props...)}
}

// Declared returns the declared properties in declaration order.
func (s *Set) Declared() []Property {
	return append([]Property(nil), s.declared...)
}

// Has reports whether p is declared.
func (s *Set) Has(p Property) bool {
	for _, d := range s.declared {
		if d == p {
			return true
		}
	}
	return false
}

// Watch registers h for changes to p, or to every property when p is [Any].
// Watching an undeclared property fails with [errors.ErrCodeUnknownProperty].
func (s *Set) Watch(p Property, h Handler) (*Handle, error) {
	if h == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "watch %q: nil handler", p)
	}
	if p != Any && !s.Has(p) {
		return nil, errors.New(errors.ErrCodeUnknownProperty, "property %q is not observable", p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.subs = append(s.subs, subscription{id: s.nextID, name: p, handler: h})
	return &Handle{set: s, id: s.nextID, name: p}, nil
}

// Notify delivers a change of p to its subscribers: specific handlers first,
// then [Any] handlers, each group in registration order.
func (s *Set) Notify(p Property, old, new any) {
	s.mu.Lock()
	specific := make([]Handler, 0, len(s.subs))
	var wildcard []Handler
	for _, sub := range s.subs {
		switch sub.name {
		case p:
			specific = append(specific, sub.handler)
		case Any:
			wildcard = append(wildcard, sub.handler)
		}
	}
	s.mu.Unlock()

	c := Change{Name: p, Old: old, New: new}
	for _, h := range specific {
		h(c)
	}
	for _, h := range wildcard {
		h(c)
	}
}

// Count returns the number of live subscriptions.
func (s *Set) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Set) remove(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Handle identifies one subscription.
type Handle struct {
	set  *Set
	id   uint64
	name Property
}

// Property returns the watched property.
func (h *Handle) Property() Property { return h.name }

// Remove cancels the subscription. It reports whether the subscription was
// still live; removing twice is harmless.
func (h *Handle) Remove() bool {
	if h == nil || h.set == nil {
		return false
	}
	return h.set.remove(h.id)
}

// Handles is a group of subscriptions removed together.
type Handles []*Handle

// Add appends h; nil handles are ignored.
func (hs *Handles) Add(h *Handle) {
	if h != nil {
		*hs = append(*hs, h)
	}
}

// RemoveAll removes every handle and empties the group.
func (hs *Handles) RemoveAll() {
	for _, h := range *hs {
		h.Remove()
	}
	*hs = nil
}

// Len returns the number of handles in the group.
func (hs Handles) Len() int { return len(hs) }
