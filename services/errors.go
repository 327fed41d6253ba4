// Package services holds the catalog resolver, the product store
// operations, and the user/address/order linking logic, all expressed
// against the store interfaces.
package services

import "errors"

var (
	// ErrNotFound: a referenced entity identifier does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRequest: missing or malformed required fields, caught
	// before any store mutation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidReference: a dependent entity cannot be created because
	// its parent context is missing, e.g. a new type with no resolvable
	// section.
	ErrInvalidReference = errors.New("invalid reference")
)
