package usecases

import "errors"

var (
	// ErrAlreadyRegistered is returned when the route layer is registered twice.
	ErrAlreadyRegistered = errors.New("route layer already registered")
	// ErrNotInitialized is returned when the map host has no widget yet.
	ErrNotInitialized = errors.New("map host not initialized")
)
