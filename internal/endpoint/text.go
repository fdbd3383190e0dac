package endpoint

import (
	"context"
	"net/http"
)

// Summarize handles POST /api/summarize.
func (e *Endpoints) Summarize(ctx context.Context, req Request) Response {
	return e.textOp(ctx, req, "summary", "Error processing text summarization", e.assistant.Summarize)
}

// Simplify handles POST /api/simplify.
func (e *Endpoints) Simplify(ctx context.Context, req Request) Response {
	return e.textOp(ctx, req, "simplifiedText", "Error processing text simplification", e.assistant.Simplify)
}

// CorrectGrammar handles POST /api/correct-grammar.
func (e *Endpoints) CorrectGrammar(ctx context.Context, req Request) Response {
	return e.textOp(ctx, req, "correctedText", "Error processing grammar correction", e.assistant.CorrectGrammar)
}

func (e *Endpoints) textOp(ctx context.Context, req Request, key, failure string, op func(context.Context, string) (string, error)) Response {
	values, _, msg := requireStrings(req.Body, textField)
	if msg != "" {
		return badRequest(msg)
	}
	answer, err := op(ctx, values[0])
	if err != nil {
		return e.fail(failure, err)
	}
	return ok(map[string]string{key: e.stripper.Strip(answer)})
}

// Translate handles POST /api/translate. sourceLanguage is optional and
// defaults to "auto".
func (e *Endpoints) Translate(ctx context.Context, req Request) Response {
	values, f, msg := requireStrings(req.Body, textField, targetLanguageField)
	if msg != "" {
		return badRequest(msg)
	}
	source, _ := f.str("sourceLanguage")
	if source == "" {
		source = "auto"
	}

	answer, err := e.assistant.Translate(ctx, values[0], source, values[1])
	if err != nil {
		return e.fail("Error processing translation", err)
	}
	return ok(map[string]string{"translatedText": e.stripper.Strip(answer)})
}

// Chat handles POST /api/chat.
func (e *Endpoints) Chat(ctx context.Context, req Request) Response {
	values, _, msg := requireStrings(req.Body, messageField)
	if msg != "" {
		return badRequest(msg)
	}
	answer, err := e.assistant.Chat(ctx, values[0])
	if err != nil {
		return e.fail("Error processing chat response", err)
	}
	return ok(map[string]string{"response": e.stripper.Strip(answer)})
}

// SuggestedResponses handles POST /api/suggested-responses. The assistant
// never fails here; a bad provider answer yields the default suggestions.
func (e *Endpoints) SuggestedResponses(ctx context.Context, req Request) Response {
	values, _, msg := requireStrings(req.Body, contextField)
	if msg != "" {
		return badRequest(msg)
	}
	suggestions := e.assistant.SuggestReplies(ctx, values[0])
	return ok(map[string][]string{"suggestions": suggestions})
}

// TestLLM handles GET /api/test-llm with a fixed summarization request.
func (e *Endpoints) TestLLM(ctx context.Context, _ Request) Response {
	result, err := e.assistant.Ping(ctx)
	if err != nil {
		e.logger.Error("llm integration test failed", "error", err)
		return Response{Status: http.StatusInternalServerError, Body: map[string]any{
			"success": false,
			"message": "LLM integration test failed",
			"error":   err.Error(),
		}}
	}
	return ok(map[string]any{
		"success":    true,
		"message":    "LLM integration is working",
		"testResult": e.stripper.Strip(result),
	})
}
