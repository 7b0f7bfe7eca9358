// Package tabs models the tabbed switchers on the landing page (products,
// roles, case studies): a fixed list of items with exactly one active entry.
package tabs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmpty indicates a switcher without items.
	ErrEmpty = errors.New("tabs: at least one item is required")
	// ErrOutOfRange indicates a selection outside the item list.
	ErrOutOfRange = errors.New("tabs: index out of range")
	// ErrNotFound indicates SelectFunc matched nothing.
	ErrNotFound = errors.New("tabs: no matching item")
)

// Switcher tracks the active index over items. The zero index is active
// initially.
type Switcher[T any] struct {
	items  []T
	active int
}

// New returns a switcher over a copy of items.
func New[T any](items []T) (*Switcher[T], error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	return &Switcher[T]{items: append([]T(nil), items...)}, nil
}

// Select activates index.
func (s *Switcher[T]) Select(index int) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, index, len(s.items))
	}
	s.active = index
	return nil
}

// SelectFunc activates the first item for which match returns true.
func (s *Switcher[T]) SelectFunc(match func(T) bool) error {
	for i, item := range s.items {
		if match(item) {
			s.active = i
			return nil
		}
	}
	return ErrNotFound
}

// SelectParam activates the item addressed by a query value: either a
// zero-based index or a label matched case-insensitively through label. Blank
// values leave the selection unchanged.
func (s *Switcher[T]) SelectParam(value string, label func(T) string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if index, err := strconv.Atoi(value); err == nil {
		return s.Select(index)
	}
	if label == nil {
		return ErrNotFound
	}
	return s.SelectFunc(func(item T) bool {
		return strings.EqualFold(Slug(label(item)), Slug(value))
	})
}

// Active returns the active item.
func (s *Switcher[T]) Active() T {
	return s.items[s.active]
}

// Index returns the active index.
func (s *Switcher[T]) Index() int {
	return s.active
}

// Len returns the number of items.
func (s *Switcher[T]) Len() int {
	return len(s.items)
}

// Items returns a copy of the items.
func (s *Switcher[T]) Items() []T {
	return append([]T(nil), s.items...)
}

// Slug lowercases label and joins its alphanumeric runs with dashes, the form
// used in tab query parameters.
func Slug(label string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
