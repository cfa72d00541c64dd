package engine

import "errors"

var (
	// ErrNoMontage is returned when links are loaded before any montage
	ErrNoMontage = errors.New("no montage loaded")

	// ErrLinkOutOfRange is returned for a link naming a node the montage lacks
	ErrLinkOutOfRange = errors.New("link endpoint out of range")
)
