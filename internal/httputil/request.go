package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"readease/internal/config"
)

// ErrBodyTooLarge is returned when the request body exceeds MaxRequestBodyBytes.
var ErrBodyTooLarge = errors.New("request body too large")

// ReadBody reads the whole request body, limited to config.MaxRequestBodyBytes.
// The endpoint layer decodes the JSON itself.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrBodyTooLarge
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
