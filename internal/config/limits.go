package config

const (
	// MaxTextLength is the maximum number of runes accepted in any text field
	// forwarded to the LLM provider (text, message, context). Longer input is
	// rejected, never truncated.
	MaxTextLength = 20000

	// MaxRequestBodyBytes caps every JSON request body.
	MaxRequestBodyBytes = 1 << 20

	// MaxUserIDLength is the maximum length of a preferences user identifier.
	MaxUserIDLength = 255
)
