// Package errorspkg provides common app errors and their mapping to HTTP status codes.
package errorspkg

import (
	"errors"
	"net/http"
)

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal server error")

// StatusMap maps sentinel errors to the HTTP status codes they are reported with.
type StatusMap map[error]int

// Resolve returns the status code for err and the error safe to show to the client.
//
// Errors matching no sentinel resolve to 500 and ErrInternal.
func (m StatusMap) Resolve(err error) (int, error) {
	for target, status := range m {
		if errors.Is(err, target) {
			return status, err
		}
	}

	return http.StatusInternalServerError, ErrInternal
}
