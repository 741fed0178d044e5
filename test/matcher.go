package test

import (
	"fmt"
	"reflect"

	"go.uber.org/mock/gomock"
)

// predicateMatcher matches gomock arguments of type T against a predicate.
type predicateMatcher[T any] struct {
	predicate func(v T) bool
	last      interface{}
}

func (p *predicateMatcher[T]) Matches(arg interface{}) bool {
	p.last = arg
	v, ok := arg.(T)
	return ok && p.predicate(v)
}

func (p *predicateMatcher[T]) String() string {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if p.last == nil {
		return fmt.Sprintf("a %s matching the predicate", typ)
	}
	return fmt.Sprintf("a %s matching the predicate, got %v", typ, p.last)
}

// Match returns a gomock matcher for arguments of type T accepted by the predicate.
func Match[T any](predicate func(v T) bool) gomock.Matcher {
	return &predicateMatcher[T]{predicate: predicate}
}
