package repositories

import "errors"

// ErrDuplicateEmail is returned by Save when the normalized email is
// already claimed. The storage backend's uniqueness guarantee is the
// authoritative check; callers map this to the registered-email error.
var ErrDuplicateEmail = errors.New("email already registered")
