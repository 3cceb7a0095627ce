package engine

// HandlerState carries the payload of a concrete handling policy. Policies
// embed it and supply DoHandle and GetProc themselves.
type HandlerState[T any] struct {
	State T
}

func NewHandlerState[T any](state T) HandlerState[T] {
	return HandlerState[T]{State: state}
}
