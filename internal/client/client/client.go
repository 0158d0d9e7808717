// Package client implements the HTTP client for the index set API.
package client

import "errors"

// ErrUnavailable indicates the server could not be reached at all, as
// opposed to the server answering with an error status.
var ErrUnavailable = errors.New("server unavailable")
