package router

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateCatalog(t *testing.T) {
	def := func(key string, isDefault bool) IntentDefinition {
		return IntentDefinition{Intent: key, Description: key, Prompt: "{input}", Default: isDefault}
	}

	tests := []struct {
		name    string
		catalog []IntentDefinition
		want    error
	}{
		{"one default", []IntentDefinition{def("a", true), def("b", false)}, nil},
		{"single entry", []IntentDefinition{def("a", true)}, nil},
		{"empty", nil, ErrEmptyCatalog},
		{"no default", []IntentDefinition{def("a", false), def("b", false)}, ErrNoDefault},
		{"two defaults", []IntentDefinition{def("a", true), def("b", true)}, ErrMultipleDefaults},
		{"duplicate key", []IntentDefinition{def("a", true), def("a", false)}, ErrDuplicateIntent},
		{"blank key", []IntentDefinition{def(" ", true)}, ErrEmptyIntent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCatalog(tt.catalog)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) || !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want ConfigurationError wrapping %v", err, tt.want)
			}
		})
	}
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`
[[intents]]
intent = "purchase a widget"
description = "the human would like to make a purchase"
default = true
prompt = "Sell: {input}"

[[intents]]
intent = "needs customer support"
description = "the human has a support query"
prompt = """Support on {today}.
{chat_history}
{input}"""
`)
	defs, err := ParseCatalog(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 2 || !defs[0].Default || defs[1].Default || defs[1].Intent != "needs customer support" {
		t.Errorf("unexpected catalog: %+v", defs)
	}

	if _, err := ParseCatalog([]byte("[[intents]]\nintent = \"a\"\ncolour = \"red\"\ndefault = true\n")); err == nil {
		t.Error("unknown keys should fail")
	}
	if _, err := ParseCatalog([]byte("[[intents]]\nintent = \"a\"\n")); !errors.Is(err, ErrNoDefault) {
		t.Errorf("expected ErrNoDefault, got %v", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	defs, err := LoadCatalog(filepath.Join("..", "..", "config", "intents.toml"))
	if err != nil {
		t.Fatalf("bundled catalog: %v", err)
	}
	if len(defs) != 2 || defs[0].Intent != "purchase a widget" || !defs[0].Default {
		t.Errorf("unexpected bundled catalog: %+v", defs)
	}

	missing := filepath.Join(t.TempDir(), "nope.toml")
	var cfgErr *ConfigurationError
	if _, err := LoadCatalog(missing); !errors.As(err, &cfgErr) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ConfigurationError wrapping ErrNotExist, got %v", err)
	}
}
