package handler

import (
	"net/http"
	"time"

	"readease/internal/httputil"
)

// Health reports liveness. It does not call the LLM provider; use
// GET /api/test-llm for that.
func Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}
