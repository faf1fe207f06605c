package util

import (
	"fmt"
	"strings"
)

// Stack is a simple LIFO stack of values. The zero value is an empty stack
// ready to use.
type Stack[T any] struct {
	Of []T
}

// Push adds v to the top of the stack.
func (s *Stack[T]) Push(v T) {
	s.Of = append(s.Of, v)
}

// Pop removes and returns the item at the top of the stack. It panics if the
// stack is empty.
func (s *Stack[T]) Pop() T {
	if len(s.Of) == 0 {
		panic("pop of empty stack")
	}
	v := s.Of[len(s.Of)-1]
	s.Of = s.Of[:len(s.Of)-1]
	return v
}

// Peek returns the item at the top of the stack without removing it. It
// panics if the stack is empty.
func (s Stack[T]) Peek() T {
	if len(s.Of) == 0 {
		panic("peek of empty stack")
	}
	return s.Of[len(s.Of)-1]
}

// PeekAt returns the item n from the top of the stack, where 0 is the top
// item. It panics if n is out of range.
func (s Stack[T]) PeekAt(n int) T {
	idx := len(s.Of) - 1 - n
	if idx < 0 || idx >= len(s.Of) {
		panic(fmt.Sprintf("peek at %d of stack with %d items", n, len(s.Of)))
	}
	return s.Of[idx]
}

// Empty returns whether the stack has no items in it.
func (s Stack[T]) Empty() bool {
	return len(s.Of) == 0
}

// Len returns the number of items in the stack.
func (s Stack[T]) Len() int {
	return len(s.Of)
}

// String gives a top-to-bottom listing of the stack contents.
func (s Stack[T]) String() string {
	str := "["
	for i := len(s.Of) - 1; i >= 0; i-- {
		str += fmt.Sprintf("%v", s.Of[i])
		if i != 0 {
			str += " "
		}
	}
	return str + "]"
}

// ArticleFor returns "a" or "an" depending on whether word begins with a
// vowel sound. If capital is true the article is capitalized.
func ArticleFor(word string, capital bool) string {
	art := "a"

	if len(word) > 0 {
		switch word[0] {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			art = "an"
		}
	}

	if capital {
		art = strings.ToUpper(art[:1]) + art[1:]
	}

	return art
}
