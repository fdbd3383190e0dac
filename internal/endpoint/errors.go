package endpoint

import (
	"net/http"

	"readease/internal/domain"
)

// fail converts an operation error into a response. Validation and not-found
// errors carry their own message; anything else is a 500 with the operation
// message and the underlying error text.
func (e *Endpoints) fail(message string, err error) Response {
	switch status := domain.StatusCode(err); status {
	case http.StatusBadRequest, http.StatusNotFound:
		return Response{Status: status, Body: MessageBody{Message: err.Error()}}
	default:
		e.logger.Error(message, "error", err)
		return Response{
			Status: http.StatusInternalServerError,
			Body:   MessageBody{Message: message, Error: err.Error()},
		}
	}
}
