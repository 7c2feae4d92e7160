// Package object provides a type-indexed, insertion-ordered registry of
// live objects. An object is filed under every type tag it satisfies, so
// polymorphic queries ("give me everything that is-a Component") resolve
// without runtime type introspection.
package object

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when no instance matches the tag.
	ErrNotFound = errors.New("object: not found")
	// ErrDuplicate is returned by Add when the instance is already
	// registered. Double-add is a programming error in the caller.
	ErrDuplicate = errors.New("object: already registered")
)

// Typed is implemented by anything a Registry can hold. TypeTags lists the
// object's own tag first, followed by every base tag it satisfies. The tag
// list is computed once per concrete type, not derived via reflection.
type Typed interface {
	TypeName() string
	TypeTags() []string
}

// Registry indexes live objects by type tag. Entries are added on
// construction-registration and removed on disposal; queries never mutate
// order. Not safe for concurrent use.
type Registry[T Typed] struct {
	objects []T
	buckets map[string][]T
}

func NewRegistry[T Typed]() *Registry[T] {
	return &Registry[T]{
		buckets: make(map[string][]T, 8),
	}
}

// Add files obj under every tag it satisfies. Adding the same instance
// twice returns ErrDuplicate.
func (r *Registry[T]) Add(obj T) error {
	for _, existing := range r.buckets[obj.TypeName()] {
		if any(existing) == any(obj) {
			return fmt.Errorf("%s: %w", obj.TypeName(), ErrDuplicate)
		}
	}
	r.objects = append(r.objects, obj)
	for _, tag := range obj.TypeTags() {
		r.buckets[tag] = append(r.buckets[tag], obj)
	}
	return nil
}

// Remove deletes obj from every tag bucket it was filed under. Removing an
// object that is not present is a no-op.
func (r *Registry[T]) Remove(obj T) {
	r.objects = removeOne(r.objects, obj)
	for _, tag := range obj.TypeTags() {
		bucket := removeOne(r.buckets[tag], obj)
		if len(bucket) == 0 {
			delete(r.buckets, tag)
		} else {
			r.buckets[tag] = bucket
		}
	}
}

// Get returns the first instance filed under tag, or the first instance of
// any type when tag is empty. Returns ErrNotFound when nothing matches.
func (r *Registry[T]) Get(tag string) (T, error) {
	if obj, ok := r.Find(tag); ok {
		return obj, nil
	}
	var zero T
	if tag == "" {
		return zero, ErrNotFound
	}
	return zero, fmt.Errorf("%s: %w", tag, ErrNotFound)
}

// Find is the non-throwing form of Get.
func (r *Registry[T]) Find(tag string) (T, bool) {
	if tag == "" {
		if len(r.objects) > 0 {
			return r.objects[0], true
		}
		var zero T
		return zero, false
	}
	bucket := r.buckets[tag]
	if len(bucket) > 0 {
		return bucket[0], true
	}
	var zero T
	return zero, false
}

// List returns every instance filed under tag in insertion order, or every
// instance of any type when tag is empty. The returned slice is a copy.
func (r *Registry[T]) List(tag string) []T {
	var src []T
	if tag == "" {
		src = r.objects
	} else {
		src = r.buckets[tag]
	}
	if len(src) == 0 {
		return nil
	}
	out := make([]T, len(src))
	copy(out, src)
	return out
}

// Has reports whether at least one instance is filed under tag.
func (r *Registry[T]) Has(tag string) bool {
	if tag == "" {
		return len(r.objects) > 0
	}
	return len(r.buckets[tag]) > 0
}

// Count returns the number of registered instances.
func (r *Registry[T]) Count() int {
	return len(r.objects)
}

func removeOne[T Typed](list []T, obj T) []T {
	for i, existing := range list {
		if any(existing) == any(obj) {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
