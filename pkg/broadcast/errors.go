package broadcast

import "errors"

// Broadcast source errors.
var (
	// ErrInvalidParam indicates a malformed or out-of-range argument.
	// Nothing has been mutated.
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrResourceExhausted indicates no free pool slot or a platform
	// limit was exceeded. Partially built state has been rolled back.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrInvalidState indicates the aggregate source state does not
	// permit the operation. Nothing has been mutated.
	ErrInvalidState = errors.New("invalid broadcast state")

	// ErrAlreadyStopped indicates a Stop with no active BIG: the source
	// is in a stoppable phase but there is nothing to do.
	ErrAlreadyStopped = errors.New("broadcast source not started")

	// ErrCallbacksRegistered indicates the callbacks are already registered.
	ErrCallbacksRegistered = errors.New("callbacks already registered")

	// ErrCallbacksNotRegistered indicates the callbacks were never registered.
	ErrCallbacksNotRegistered = errors.New("callbacks not registered")
)
