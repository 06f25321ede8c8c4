package mandel

import "errors"

// Sentinel errors for the mandel package.
var (
	// ErrUnknownStrategy is returned when a strategy name or value is not
	// recognised.
	ErrUnknownStrategy = errors.New("mandel: unknown scan strategy")

	// ErrAlreadyRunning is returned by Controller.Run when another Run call
	// is active on the same Controller.
	ErrAlreadyRunning = errors.New("mandel: render loop already running")
)
