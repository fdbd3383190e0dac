package llm

import "strings"

// AutoDetect is the source language value that asks the model to detect the language.
const AutoDetect = "auto"

// translationPrompt picks the system and user prompts for a language pair.
// The first matching rule wins; otherwise the generic prompt is used with
// "the detected language" standing in for an automatic source.
func (p *TranslationPrompts) translationPrompt(text, source, target string) (system, user, rule string) {
	if source == "" {
		source = AutoDetect
	}

	for _, r := range p.Rules {
		if r.matches(source, target) {
			return r.System, render(r.User, map[string]string{"text": text, "source": source, "target": target}), r.Name
		}
	}

	sourceLabel := source
	if strings.EqualFold(source, AutoDetect) {
		sourceLabel = p.DetectedLanguage
	}
	return p.System, render(p.User, map[string]string{"text": text, "source": sourceLabel, "target": target}), "generic"
}

func (r *TranslationRule) matches(source, target string) bool {
	return (r.Source == "" || r.Source == source) && (r.Target == "" || r.Target == target)
}
