package httpapi

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-billing-console/components/console"
	"github.com/goliatone/go-billing-console/pkg/api"
)

// StatusFor maps console and backend errors to an HTTP status.
func StatusFor(err error) int {
	var apiErr *api.Error
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, console.ErrPageNotFound):
		return http.StatusNotFound
	case errors.Is(err, console.ErrActionNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, console.ErrNoModalOpen):
		return http.StatusConflict
	case errors.Is(err, console.ErrInvalidPayload):
		return http.StatusUnprocessableEntity
	case errors.Is(err, console.ErrUnknownFilter), errors.Is(err, api.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody is the JSON error envelope returned by transports.
type ErrorBody struct {
	Error string `json:"error"`
}
