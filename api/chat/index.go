package handler

import (
	"net/http"

	"readease/internal/transport/function"
)

// Handler serves /api/chat.
func Handler(w http.ResponseWriter, r *http.Request) {
	function.Serve(w, r, "chat")
}
