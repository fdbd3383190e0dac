package llm

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// PromptTemplate is a system prompt plus a user prompt with placeholders.
type PromptTemplate struct {
	System   string `yaml:"system"`
	User     string `yaml:"user"`
	Fallback string `yaml:"fallback"`
}

// TranslationRule overrides the translate prompts for a language pair.
type TranslationRule struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

// TranslationPrompts holds the generic translate prompts and the special cases.
type TranslationPrompts struct {
	System           string            `yaml:"system"`
	User             string            `yaml:"user"`
	DetectedLanguage string            `yaml:"detected_language"`
	Fallback         string            `yaml:"fallback"`
	Rules            []TranslationRule `yaml:"rules"`
}

// SuggestionPrompts holds the reply-suggestion prompts and the default list.
type SuggestionPrompts struct {
	System   string   `yaml:"system"`
	User     string   `yaml:"user"`
	Defaults []string `yaml:"defaults"`
}

// Prompts is the full prompt catalog.
type Prompts struct {
	Summarize      PromptTemplate     `yaml:"summarize"`
	Simplify       PromptTemplate     `yaml:"simplify"`
	CorrectGrammar PromptTemplate     `yaml:"correct_grammar"`
	Chat           PromptTemplate     `yaml:"chat"`
	SuggestReplies SuggestionPrompts  `yaml:"suggest_replies"`
	Translate      TranslationPrompts `yaml:"translate"`
	Ping           struct {
		Text string `yaml:"text"`
	} `yaml:"ping"`
}

// DefaultPrompts returns the embedded catalog.
func DefaultPrompts() *Prompts {
	p, err := ParsePrompts(defaultPrompts)
	if err != nil {
		// The embedded file is part of the binary; failing here is a build defect.
		panic(fmt.Sprintf("embedded prompts.yaml: %v", err))
	}
	return p
}

// LoadPrompts reads a catalog from path, or returns the embedded one when path is empty.
func LoadPrompts(path string) (*Prompts, error) {
	if path == "" {
		return DefaultPrompts(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}
	p, err := ParsePrompts(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParsePrompts decodes and validates a YAML catalog.
func ParsePrompts(data []byte) (*Prompts, error) {
	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid prompts: %w", err)
	}
	return &p, nil
}

// Validate checks that every operation has the prompts it needs.
func (p *Prompts) Validate() error {
	for name, t := range map[string]*PromptTemplate{
		"summarize":       &p.Summarize,
		"simplify":        &p.Simplify,
		"correct_grammar": &p.CorrectGrammar,
		"chat":            &p.Chat,
	} {
		if err := validation.ValidateStruct(t,
			validation.Field(&t.System, validation.Required),
			validation.Field(&t.User, validation.Required),
			validation.Field(&t.Fallback, validation.Required),
		); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	s := &p.SuggestReplies
	if err := validation.ValidateStruct(s,
		validation.Field(&s.System, validation.Required),
		validation.Field(&s.User, validation.Required),
		validation.Field(&s.Defaults, validation.Required, validation.Length(1, MaxSuggestions)),
	); err != nil {
		return fmt.Errorf("suggest_replies: %w", err)
	}

	tr := &p.Translate
	if err := validation.ValidateStruct(tr,
		validation.Field(&tr.System, validation.Required),
		validation.Field(&tr.User, validation.Required),
		validation.Field(&tr.DetectedLanguage, validation.Required),
		validation.Field(&tr.Fallback, validation.Required),
	); err != nil {
		return fmt.Errorf("translate: %w", err)
	}
	for i := range tr.Rules {
		r := &tr.Rules[i]
		if err := validation.ValidateStruct(r,
			validation.Field(&r.System, validation.Required),
			validation.Field(&r.User, validation.Required),
		); err != nil {
			return fmt.Errorf("translate rule %d (%s): %w", i, r.Name, err)
		}
		if r.Source == "" && r.Target == "" {
			return fmt.Errorf("translate rule %d (%s): source or target must be set", i, r.Name)
		}
	}

	if p.Ping.Text == "" {
		return fmt.Errorf("ping: text cannot be blank")
	}
	return nil
}

// render substitutes {name} placeholders. Unknown placeholders are left as they are.
func render(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
