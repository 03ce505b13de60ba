package service

import (
	"errors"
	"fmt"

	"github.com/mmynk/eventsdesk/internal/storage"
)

var (
	// ErrNotFound is returned when a referenced participant or event does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned when a required input is missing.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateDescription is returned when an event description is already taken.
	ErrDuplicateDescription = errors.New("duplicate event description")
)

// invalidArgument wraps ErrInvalidArgument with a message.
func invalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

// translateStoreError maps storage sentinels onto service sentinels and leaves
// everything else untouched.
func translateStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, storage.ErrDuplicateDescription):
		return fmt.Errorf("%w: %v", ErrDuplicateDescription, err)
	default:
		return err
	}
}
