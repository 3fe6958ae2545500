package session

import (
	"errors"

	"github.com/google/uuid"
	"github.com/joaquinabian/gnuplot-go/internal/plotitem"
)

// slots is the active-item table. Every entry holds one reference on its
// item, so scratch files outlive the plot command that mentioned them.
type slots struct {
	order []uuid.UUID
	items map[uuid.UUID]plotitem.Item
}

func newSlots() *slots {
	return &slots{items: make(map[uuid.UUID]plotitem.Item)}
}

// add retains each item and appends it. On failure nothing is added.
func (s *slots) add(items ...plotitem.Item) error {
	for i, item := range items {
		if err := item.Retain(); err != nil {
			for _, done := range items[:i] {
				_ = done.Release()
			}
			return err
		}
	}
	for _, item := range items {
		s.order = append(s.order, item.ID())
		s.items[item.ID()] = item
	}
	return nil
}

// list returns the items in plot order.
func (s *slots) list() []plotitem.Item {
	out := make([]plotitem.Item, len(s.order))
	for i, id := range s.order {
		out[i] = s.items[id]
	}
	return out
}

func (s *slots) len() int {
	return len(s.order)
}

// reset releases every held reference.
func (s *slots) reset() error {
	var errs []error
	for _, id := range s.order {
		if err := s.items[id].Release(); err != nil {
			errs = append(errs, err)
		}
	}
	s.order = nil
	s.items = make(map[uuid.UUID]plotitem.Item)
	return errors.Join(errs...)
}
