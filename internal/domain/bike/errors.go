package bike

import "errors"

var ErrInvalidBike = errors.New("bike is missing required fields")

// NotFoundError reports a failed delete together with the context the API
// echoes back to the caller.
type NotFoundError struct {
	Key       string // set when the lookup was by id
	Name      string // set when the lookup was by name
	Inventory int    // catalog size at lookup time
}

func (e *NotFoundError) Error() string { return "bike not found" }
