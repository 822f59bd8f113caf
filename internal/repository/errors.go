// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to act on a record owned by someone else, while
// ErrConflict signals that an operation cannot proceed because of
// existing dependent records (e.g. cancelling an appointment that
// already produced a recorded visit).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as recording a second visit against the
// same appointment. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")

// ErrNotFound is returned when a lookup by primary key or unique
// column matches no row. Handlers should translate this into an
// HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrRUTExists is returned when registering a client whose RUT is
// already on file. The RUT is the natural key of a client and is
// unique across the clinic.
var ErrRUTExists = errors.New("rut already registered")

// ErrUsernameExists is returned when creating a user account whose
// username is already taken.
var ErrUsernameExists = errors.New("username already registered")

// ErrInsufficientStock is returned by the point-of-sale flow when a
// sale line requests more units than the product has available.
var ErrInsufficientStock = errors.New("insufficient stock")
