package config

import (
	"strings"
	"testing"
)

func TestValidateLLMConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LLMConfig
		wantErr string
	}{
		{
			name: "valid",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "openai", Enabled: true, Priority: 1, Model: "gpt-4o-mini"},
				{Name: "gemini", Enabled: true, Priority: 2, Model: "gemini-2.5-flash"},
			}},
		},
		{
			name:    "empty",
			wantErr: "no LLM providers configured",
		},
		{
			name: "missing model",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "openai", Enabled: true, Priority: 1},
			}},
			wantErr: "model is required",
		},
		{
			name: "duplicate priority",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "openai", Enabled: true, Priority: 1, Model: "a"},
				{Name: "deepseek", Enabled: true, Priority: 1, Model: "b"},
			}},
			wantErr: "duplicate priority",
		},
		{
			name: "nothing enabled",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "openai", Model: "a"},
			}},
			wantErr: "no enabled LLM providers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLLMConfig(&tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("ASSISTANT_TEST_KEY", "secret")

	if got := expandEnvVar("${ASSISTANT_TEST_KEY}"); got != "secret" {
		t.Errorf("expandEnvVar = %q, want secret", got)
	}
	if got := expandEnvVar("literal"); got != "literal" {
		t.Errorf("expandEnvVar = %q, want literal", got)
	}
}

func TestParseProviders(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"name": "gemini", "enabled": true, "priority": 2, "model": "gemini-2.5-flash"},
		map[string]interface{}{"name": "openai", "enabled": true, "priority": float64(1), "model": "gpt-4o-mini"},
		"garbage",
	}

	got := parseProviders(raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(got))
	}
	if got[1].Priority != 1 || got[0].Priority != 2 {
		t.Errorf("unexpected priorities: %+v", got)
	}
}
