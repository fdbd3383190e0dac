package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Default reading preferences for a user that has never saved any.
const (
	DefaultTheme         = "light"
	DefaultFontFamily    = "roboto"
	DefaultFontSize      = 16
	DefaultLetterSpacing = 1
	DefaultLineHeight    = 15
)

// UserPreferences holds the reading settings of one user.
// JSON names match what the web client already sends and reads.
type UserPreferences struct {
	UserID         string          `json:"userId" db:"user_id"`
	Theme          string          `json:"theme" db:"theme"` // "light" or "dark"
	FontFamily     string          `json:"fontFamily" db:"font_family"`
	FontSize       int             `json:"fontSize" db:"font_size"`
	LetterSpacing  int             `json:"letterSpacing" db:"letter_spacing"`
	LineHeight     int             `json:"lineHeight" db:"line_height"`
	CustomSettings json.RawMessage `json:"customSettings" db:"custom_settings"` // opaque, null when unset
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}

// NewDefaultPreferences returns the record created on a user's first save.
func NewDefaultPreferences(userID string, now time.Time) *UserPreferences {
	return &UserPreferences{
		UserID:        userID,
		Theme:         DefaultTheme,
		FontFamily:    DefaultFontFamily,
		FontSize:      DefaultFontSize,
		LetterSpacing: DefaultLetterSpacing,
		LineHeight:    DefaultLineHeight,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// OptionalJSON tracks presence for a raw JSON field (RFC 7396 style):
//   - Present=false: field absent (don't change)
//   - Present=true, Value=nil: field is null (clear)
//   - Present=true, Value=<raw>: replace with raw value
type OptionalJSON struct {
	Present bool
	Value   json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler. It is only called when the field
// is present in the document, including for an explicit null.
func (o *OptionalJSON) UnmarshalJSON(data []byte) error {
	o.Present = true
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		o.Value = nil
		return nil
	}
	o.Value = append(json.RawMessage(nil), trimmed...)
	return nil
}

// PreferencesPatch is a partial preferences update. Nil fields are left as they are.
type PreferencesPatch struct {
	Theme          *string      `json:"theme"`
	FontFamily     *string      `json:"fontFamily"`
	FontSize       *int         `json:"fontSize"`
	LetterSpacing  *int         `json:"letterSpacing"`
	LineHeight     *int         `json:"lineHeight"`
	CustomSettings OptionalJSON `json:"customSettings"`
}

// Apply overlays the patch onto p. The merge is shallow: customSettings is
// replaced wholesale, never merged key by key.
func (p *UserPreferences) Apply(patch *PreferencesPatch, now time.Time) {
	if patch == nil {
		return
	}
	if patch.Theme != nil {
		p.Theme = *patch.Theme
	}
	if patch.FontFamily != nil {
		p.FontFamily = *patch.FontFamily
	}
	if patch.FontSize != nil {
		p.FontSize = *patch.FontSize
	}
	if patch.LetterSpacing != nil {
		p.LetterSpacing = *patch.LetterSpacing
	}
	if patch.LineHeight != nil {
		p.LineHeight = *patch.LineHeight
	}
	if patch.CustomSettings.Present {
		p.CustomSettings = patch.CustomSettings.Value
	}
	p.UpdatedAt = now
}

// Clone returns a deep copy so callers never share a stored record.
func (p *UserPreferences) Clone() *UserPreferences {
	if p == nil {
		return nil
	}
	out := *p
	if p.CustomSettings != nil {
		out.CustomSettings = append(json.RawMessage(nil), p.CustomSettings...)
	}
	return &out
}
