package services

import "errors"

// ErrNotImplemented marks a business operation that exists on the service
// surface but has no behavior yet. Handlers map it to 501 rather than
// fabricating demo data, so missing functionality stays visible.
var ErrNotImplemented = errors.New("operation not implemented")

// ErrInvalidCredentials is returned by Authenticate on a bad email/password
// combination.
var ErrInvalidCredentials = errors.New("invalid credentials")
