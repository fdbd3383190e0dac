package endpoint

import (
	"context"
	"encoding/json"

	"readease/internal/domain/models"
)

// SavePreferences handles POST /api/preferences. The body carries userId and
// any subset of preference fields; unknown keys are ignored.
func (e *Endpoints) SavePreferences(ctx context.Context, req Request) Response {
	values, _, msg := requireStrings(req.Body, userIDField)
	if msg != "" {
		return badRequest(msg)
	}

	var patch models.PreferencesPatch
	if err := json.Unmarshal(req.Body, &patch); err != nil {
		return badRequest(invalidBodyMessage)
	}

	prefs, err := e.prefs.SavePreferences(ctx, values[0], &patch)
	if err != nil {
		return e.fail("Error saving user preferences", err)
	}
	return ok(prefs)
}

// GetPreferences handles GET /api/preferences/{userId}.
func (e *Endpoints) GetPreferences(ctx context.Context, req Request) Response {
	userID := req.Params["userId"]
	if userID == "" {
		return badRequest(userIDField.required)
	}

	prefs, err := e.prefs.GetPreferences(ctx, userID)
	if err != nil {
		return e.fail("Error getting user preferences", err)
	}
	return ok(prefs)
}
