package partition

import "container/list"

// Container holds the elements of a single chunk.
type Container[T any] interface {
	Append(items ...T)
	Len() int
	Items() []T
}

// Factory returns a new, empty [Container].
type Factory[T any, C Container[T]] func() C

// Slice is the default [Container], backed by a Go slice.
type Slice[T any] struct {
	items []T
}

func NewSlice[T any]() *Slice[T] {
	return &Slice[T]{}
}

func (s *Slice[T]) Append(items ...T) {
	s.items = append(s.items, items...)
}

func (s *Slice[T]) Len() int {
	return len(s.items)
}

func (s *Slice[T]) Items() []T {
	return s.items
}

// List is a [Container] backed by a doubly linked list.
type List[T any] struct {
	l *list.List
}

func NewList[T any]() *List[T] {
	return &List[T]{l: list.New()}
}

func (l *List[T]) Append(items ...T) {
	for _, item := range items {
		l.l.PushBack(item)
	}
}

func (l *List[T]) Len() int {
	return l.l.Len()
}

// Items returns a copy of the list contents in order.
func (l *List[T]) Items() []T {
	result := make([]T, 0, l.l.Len())
	for e := l.l.Front(); e != nil; e = e.Next() {
		result = append(result, e.Value.(T))
	}
	return result
}

// Front returns the first element of the list, or nil if it is empty.
func (l *List[T]) Front() *list.Element {
	return l.l.Front()
}
