package dice

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the kind shared by every rejected roll request.
var ErrInvalidArgument = errors.New("invalid argument")

// Sentinel errors for roll requests. All of them match ErrInvalidArgument.
var (
	ErrInvalidSides = fmt.Errorf("%w: sides must be positive", ErrInvalidArgument)
	ErrTooManyRolls = fmt.Errorf("%w: too many rolls", ErrInvalidArgument)
)
