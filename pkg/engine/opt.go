package engine

// Opt is either a present value or absent. The zero Opt is absent.
type Opt[T any] struct {
	value   T
	present bool
}

func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, present: true}
}

func None[T any]() Opt[T] {
	return Opt[T]{}
}

func (o Opt[T]) Get() (T, bool) {
	return o.value, o.present
}

func (o Opt[T]) IsPresent() bool {
	return o.present
}
