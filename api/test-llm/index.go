package handler

import (
	"net/http"

	"readease/internal/transport/function"
)

// Handler serves /api/test-llm.
func Handler(w http.ResponseWriter, r *http.Request) {
	function.Serve(w, r, "test-llm")
}
