package nix

import "fmt"

type named interface {
	Name() string
}

// Collection is an ordered, name-indexed set of objects. Iteration order
// is insertion order; names are unique within one collection.
type Collection[T named] struct {
	items []T
	index map[string]int
}

// Len returns the number of objects in the collection.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Has reports whether an object with the given name exists.
func (c *Collection[T]) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Get returns the object with the given name.
func (c *Collection[T]) Get(name string) (T, bool) {
	var zero T
	i, ok := c.index[name]
	if !ok {
		return zero, false
	}
	return c.items[i], true
}

// At returns the object at the given insertion position.
func (c *Collection[T]) At(i int) T {
	return c.items[i]
}

// All returns the objects in insertion order. The returned slice is a
// copy; mutating it does not affect the collection.
func (c *Collection[T]) All() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// add appends an object, enforcing name uniqueness.
func (c *Collection[T]) add(item T) error {
	name := item.Name()
	if _, ok := c.index[name]; ok {
		return fmt.Errorf("%w: %q", ErrNameExists, name)
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[name] = len(c.items)
	c.items = append(c.items, item)
	return nil
}
