package table

import "fmt"

// Predicate decides whether an element is visible. Predicates must be pure:
// the same element always yields the same answer within a render pass.
type Predicate[E any] func(E) (bool, error)

// Match lifts an infallible boolean function into a Predicate.
func Match[E any](fn func(E) bool) Predicate[E] {
	if fn == nil {
		return nil
	}
	return func(e E) (bool, error) {
		return fn(e), nil
	}
}

// All is satisfied when every non-nil predicate is satisfied.
func All[E any](preds ...Predicate[E]) Predicate[E] {
	return func(e E) (bool, error) {
		for _, pred := range preds {
			if pred == nil {
				continue
			}
			ok, err := pred(e)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

// Any is satisfied when at least one non-nil predicate is satisfied. With no
// predicates it is satisfied by everything.
func Any[E any](preds ...Predicate[E]) Predicate[E] {
	return func(e E) (bool, error) {
		active := 0
		for _, pred := range preds {
			if pred == nil {
				continue
			}
			active++
			ok, err := pred(e)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return active == 0, nil
	}
}

// Not negates pred. A nil pred stays nil (everything visible).
func Not[E any](pred Predicate[E]) Predicate[E] {
	if pred == nil {
		return nil
	}
	return func(e E) (bool, error) {
		ok, err := pred(e)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
}

// Filter applies an optional predicate to decide row visibility.
type Filter[E any] struct {
	predicate Predicate[E]
}

// NewFilter wraps pred. A nil pred makes every element visible.
func NewFilter[E any](pred Predicate[E]) Filter[E] {
	return Filter[E]{predicate: pred}
}

// Active reports whether a predicate is configured.
func (f Filter[E]) Active() bool {
	return f.predicate != nil
}

// IsVisible evaluates the predicate against e. Failures, including panics
// raised by the predicate, are reported as ErrCodePredicate errors.
func (f Filter[E]) IsVisible(e E) (visible bool, err error) {
	if f.predicate == nil {
		return true, nil
	}
	defer func() {
		if r := recover(); r != nil {
			visible = false
			err = newPredicateError(fmt.Errorf("predicate panicked: %v", r))
		}
	}()

	ok, predErr := f.predicate(e)
	if predErr != nil {
		return false, newPredicateError(predErr)
	}
	return ok, nil
}
