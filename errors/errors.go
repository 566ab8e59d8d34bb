package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

var (
	ErrRoomNotFound = fmt.Errorf("chat room not found")
	ErrUserNotFound = fmt.Errorf("user not found")
	ErrRoomExists   = fmt.Errorf("chat room with this name already exists")
)

// MapToStatusCode translates domain errors at the transport edge.
// Anything unrecognized is a 500: the core only fails with
// not-found or conflict, so other errors are adapter bugs.
func MapToStatusCode(err error) int {
	switch {
	case stderrors.Is(err, ErrRoomNotFound), stderrors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, ErrRoomExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
