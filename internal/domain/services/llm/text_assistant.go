package llm

import "context"

// TextAssistant is the set of text operations offered to readers.
// Every method except SuggestReplies surfaces provider failures as errors.
type TextAssistant interface {
	Summarize(ctx context.Context, text string) (string, error)
	Simplify(ctx context.Context, text string) (string, error)
	CorrectGrammar(ctx context.Context, text string) (string, error)

	// Translate converts text; sourceLanguage "" or "auto" means detect.
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)

	Chat(ctx context.Context, message string) (string, error)

	// SuggestReplies never fails: on any problem it returns the default suggestions.
	SuggestReplies(ctx context.Context, context string) []string

	// Ping runs a fixed summarization to check the provider wiring.
	Ping(ctx context.Context) (string, error)
}
