package projconf

import "errors"

var (
	// ErrConfigUnreadable marks a missing, unreadable, or malformed
	// project configuration file.
	ErrConfigUnreadable = errors.New("project config unreadable")

	// ErrUnknownSubproject marks a subproject name absent from the
	// config's subprojects mapping.
	ErrUnknownSubproject = errors.New("unknown subproject")
)
