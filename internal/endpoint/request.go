package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"readease/internal/config"
)

const invalidBodyMessage = "Invalid request body"

// fields is a decoded JSON object body. An empty body decodes to no fields so
// that missing-field checks produce their specific message.
type fields map[string]json.RawMessage

func decodeFields(body []byte) (fields, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return fields{}, nil
	}
	var f fields
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if f == nil {
		return fields{}, nil
	}
	return f, nil
}

// str returns the named field when it is present and a JSON string.
func (f fields) str(name string) (string, bool) {
	raw, present := f[name]
	if !present {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// stringField is one required string input together with its messages.
type stringField struct {
	name     string
	required string // 400 message when missing, empty or not a string
	tooLong  string
	maxRunes int
}

var (
	textField           = stringField{name: "text", required: "Text is required", tooLong: "Text is too long", maxRunes: config.MaxTextLength}
	targetLanguageField = stringField{name: "targetLanguage", required: "Target language is required", tooLong: "Target language is too long", maxRunes: 64}
	messageField        = stringField{name: "message", required: "Message is required", tooLong: "Message is too long", maxRunes: config.MaxTextLength}
	contextField        = stringField{name: "context", required: "Context is required", tooLong: "Context is too long", maxRunes: config.MaxTextLength}
	userIDField         = stringField{name: "userId", required: "User ID is required", tooLong: "User ID is too long", maxRunes: config.MaxUserIDLength}
)

// validate reads and checks the field, returning the 400 message on failure.
func (sf stringField) validate(f fields) (string, string) {
	value, isString := f.str(sf.name)
	if !isString {
		return "", sf.required
	}
	err := validation.Validate(value,
		validation.Required.Error(sf.required),
		validation.RuneLength(0, sf.maxRunes).Error(sf.tooLong),
	)
	if err != nil {
		return "", err.Error()
	}
	return value, ""
}

// requireStrings validates the fields in order and stops at the first failure.
func requireStrings(body []byte, specs ...stringField) ([]string, fields, string) {
	f, err := decodeFields(body)
	if err != nil {
		return nil, nil, invalidBodyMessage
	}
	values := make([]string, len(specs))
	for i, sf := range specs {
		v, msg := sf.validate(f)
		if msg != "" {
			return nil, nil, msg
		}
		values[i] = v
	}
	return values, f, ""
}
