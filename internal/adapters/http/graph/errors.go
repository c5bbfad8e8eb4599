package graph

import "errors"

// Sentinel kinds for the GraphQL boundary.
var (
	ErrSchema     = errors.New("graphql schema")
	ErrBadRequest = errors.New("bad graphql request")
	ErrIntRange   = errors.New("int cannot represent non 32-bit signed integer value")
)
