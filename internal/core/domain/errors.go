package domain

import "errors"

// Sentinel errors returned by repositories and translated by the HTTP
// adapter into the error taxonomy of the wire protocol.
var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessableEntity = errors.New("unprocessable entity")
	ErrInternal            = errors.New("internal error")
	ErrGatewayTimeout      = errors.New("gateway timeout")
)
