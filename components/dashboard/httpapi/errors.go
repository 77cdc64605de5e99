package httpapi

import (
	"errors"
	"net/http"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/pkg/identity"
	"github.com/goliatone/go-deskboard/pkg/tasks"
)

// errBadRequest marks malformed payloads.
var errBadRequest = errors.New("httpapi: bad request")

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	var validation *jsonschema.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, dashboard.ErrMissingViewer),
		errors.Is(err, identity.ErrMissingToken),
		errors.Is(err, identity.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, tasks.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, dashboard.ErrUnknownWidgetType),
		errors.Is(err, dashboard.ErrInvalidOverrides),
		errors.Is(err, dashboard.ErrLayoutMismatch),
		errors.Is(err, dashboard.ErrLayoutConstraint),
		errors.Is(err, tasks.ErrInvalidTask),
		errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
