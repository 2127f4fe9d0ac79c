package router

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type catalogFile struct {
	Intents []IntentDefinition `toml:"intents"`
}

// LoadCatalog reads a TOML catalog of [[intents]] tables and validates it.
func LoadCatalog(path string) ([]IntentDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configErr("read catalog "+path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates TOML catalog bytes. Unknown keys fail.
func ParseCatalog(data []byte) ([]IntentDefinition, error) {
	var file catalogFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, configErr("decode catalog", err)
	}
	if err := ValidateCatalog(file.Intents); err != nil {
		return nil, err
	}
	return file.Intents, nil
}

// ValidateCatalog checks that keys are non-empty and unique and that
// exactly one entry is the default.
func ValidateCatalog(defs []IntentDefinition) error {
	if len(defs) == 0 {
		return configErr("catalog", ErrEmptyCatalog)
	}

	seen := make(map[string]struct{}, len(defs))
	var defaults []string
	for i, d := range defs {
		key := strings.TrimSpace(d.Intent)
		if key == "" {
			return configErr(fmt.Sprintf("entry %d", i), ErrEmptyIntent)
		}
		if _, dup := seen[key]; dup {
			return configErr(fmt.Sprintf("intent %q", key), ErrDuplicateIntent)
		}
		seen[key] = struct{}{}
		if d.Default {
			defaults = append(defaults, key)
		}
	}

	switch len(defaults) {
	case 0:
		return configErr("catalog", ErrNoDefault)
	case 1:
		return nil
	default:
		return configErr(fmt.Sprintf("defaults %s", strings.Join(defaults, ", ")), ErrMultipleDefaults)
	}
}
