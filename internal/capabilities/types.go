package capabilities

import "gopkg.in/yaml.v3"

// Protocol identifies the wire protocol a provider speaks.
type Protocol string

const (
	// ProtocolOpenAI is the OpenAI-compatible /chat/completions API (Groq, OpenAI, Gemini).
	ProtocolOpenAI Protocol = "openai"
	// ProtocolAnthropic is the Anthropic Messages API.
	ProtocolAnthropic Protocol = "anthropic"
	// ProtocolMeridian routes through a meridian-llm-go provider (OpenRouter, Lorem).
	ProtocolMeridian Protocol = "meridian"
)

// ModelCapabilities represents metadata for a specific model
type ModelCapabilities struct {
	// Model identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	DisplayName string `yaml:"display_name" json:"display_name"`
	Description string `yaml:"description" json:"description"`

	// EmitsReasoningTrace is true for models that wrap their reasoning in
	// <think> blocks before the answer.
	EmitsReasoningTrace bool `yaml:"emits_reasoning_trace" json:"emits_reasoning_trace"`

	// Limits
	ContextWindow int `yaml:"context_window" json:"context_window"`
	MaxOutput     int `yaml:"max_output" json:"max_output"`
}

// ProviderCapabilities represents connection defaults and models for a provider
type ProviderCapabilities struct {
	Provider    string   `yaml:"provider" json:"provider"`
	DisplayName string   `yaml:"display_name" json:"display_name"`
	Protocol    Protocol `yaml:"protocol" json:"protocol"`
	BaseURL     string   `yaml:"base_url" json:"base_url,omitempty"`

	// APIKeyEnv names the environment variable holding the key; empty means no key.
	APIKeyEnv string `yaml:"api_key_env" json:"api_key_env,omitempty"`

	DefaultModel string              `yaml:"default_model" json:"default_model"`
	Models       []ModelCapabilities `yaml:"-" json:"models"` // Ordered slice, populated by custom unmarshaler
}

// UnmarshalYAML implements custom YAML unmarshaling to preserve model order from YAML file
func (p *ProviderCapabilities) UnmarshalYAML(node *yaml.Node) error {
	// Decode scalar fields through an alias type to avoid recursion
	type plain struct {
		Provider     string                       `yaml:"provider"`
		DisplayName  string                       `yaml:"display_name"`
		Protocol     Protocol                     `yaml:"protocol"`
		BaseURL      string                       `yaml:"base_url"`
		APIKeyEnv    string                       `yaml:"api_key_env"`
		DefaultModel string                       `yaml:"default_model"`
		Models       map[string]ModelCapabilities `yaml:"models"`
	}
	var m plain
	if err := node.Decode(&m); err != nil {
		return err
	}

	p.Provider = m.Provider
	p.DisplayName = m.DisplayName
	p.Protocol = m.Protocol
	p.BaseURL = m.BaseURL
	p.APIKeyEnv = m.APIKeyEnv
	p.DefaultModel = m.DefaultModel
	p.Models = nil

	// Now extract model keys in YAML order and build the slice
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "models" {
			modelsNode := node.Content[i+1]
			// modelsNode.Content alternates: key, value, key, value...
			for j := 0; j+1 < len(modelsNode.Content); j += 2 {
				modelID := modelsNode.Content[j].Value
				if model, ok := m.Models[modelID]; ok {
					model.ID = modelID
					p.Models = append(p.Models, model)
				}
			}
			break
		}
	}

	return nil
}

// Model returns the capabilities of a model, or nil when it is not listed.
func (p *ProviderCapabilities) Model(id string) *ModelCapabilities {
	for i := range p.Models {
		if p.Models[i].ID == id {
			return &p.Models[i]
		}
	}
	return nil
}
