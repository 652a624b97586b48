package store

import (
	"errors"
	"net/http"
	"strings"

	"tally/internal/api"
)

// Domain errors for tag mutations. The messages double as the user-facing
// text a form shows, so they read as sentences.
var (
	// ErrTagExists reports a 409 from tag creation.
	ErrTagExists = errors.New("Tag name already exists")
	// ErrTagNotFound reports a 404 from tag update or removal.
	ErrTagNotFound = errors.New("Tag not found")
	// ErrTagOperationUnsupported reports a 405: the server does not
	// support the operation at all, as opposed to the tag being missing.
	ErrTagOperationUnsupported = errors.New("Operation not supported by server")
	// ErrTagInUse reports the validation-shaped 400 the server sends when
	// deleting a tag still attached to transactions.
	ErrTagInUse = errors.New("Cannot delete tag that is attached to transactions")
)

// translateTagError maps API errors from tag mutations onto domain errors.
// Anything unrecognized passes through unchanged.
func translateTagError(err error) error {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Status {
	case http.StatusConflict:
		return ErrTagExists
	case http.StatusNotFound:
		return ErrTagNotFound
	case http.StatusMethodNotAllowed:
		return ErrTagOperationUnsupported
	case http.StatusBadRequest:
		if strings.Contains(strings.ToLower(apiErr.Message), "tag in use") {
			return ErrTagInUse
		}
	}
	return err
}
