package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStorage indicates a low-level local persistence fault (quota, corruption).
// Callers surface it to the user and do not retry automatically.
var ErrStorage = errors.New("storage error")

// ErrSyncInProgress is returned when a combined sync is requested while
// another one is already in flight.
var ErrSyncInProgress = errors.New("sync already in progress")
