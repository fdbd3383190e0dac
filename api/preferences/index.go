package handler

import (
	"net/http"

	"readease/internal/transport/function"
)

// Handler serves POST /api/preferences and GET /api/preferences/{userId}.
// The platform rewrite passes the user id as ?userId= when the path segment
// does not reach the function.
func Handler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		function.Serve(w, r, "get-preferences")
		return
	}
	function.Serve(w, r, "save-preferences")
}
