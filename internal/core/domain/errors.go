package domain

import "errors"

// ErrUpstream is wrapped by every failed call to the shop API, whether the
// transport failed or the API answered with a non-2xx status. Callers do not
// distinguish between the two.
var ErrUpstream = errors.New("shop api request failed")

var ErrConfirmationRequired = errors.New("confirmation required")
