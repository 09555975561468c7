package config

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeString ConfigValueType = iota
	TypeList
	TypeDuration
	TypeURL
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeDuration:
		return "duration"
	case TypeURL:
		return "url"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type.
type ConfigKeySchema struct {
	Path        string          // Key as written in config files
	Type        ConfigValueType // Expected value type
	Description string          // Human-readable description for help text
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"categories": {
		Path:        "categories",
		Type:        TypeList,
		Description: "Category sections to render, in order",
	},
	"base_issue_url": {
		Path:        "base_issue_url",
		Type:        TypeURL,
		Description: "Prefix for issue links in rewritten closing references (empty = from git origin)",
	},
	"unreleased_name": {
		Path:        "unreleased_name",
		Type:        TypeString,
		Description: "Heading used for the \"unreleased\" release",
	},
	"input": {
		Path:        "input",
		Type:        TypeList,
		Description: "Releases files or URLs read when none are given",
	},
	"output": {
		Path:        "output",
		Type:        TypeString,
		Description: "Output file (empty = stdout)",
	},
	"remote_timeout": {
		Path:        "remote_timeout",
		Type:        TypeDuration,
		Description: "Timeout for each remote input",
	},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns the known key schemas ordered by path.
func SortedKeys() []ConfigKeySchema {
	keys := make([]ConfigKeySchema, 0, len(KnownKeys))
	for _, schema := range KnownKeys {
		keys = append(keys, schema)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Path < keys[j].Path })
	return keys
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

// Value returns the current value of a known key formatted for display.
func (c *Configuration) Value(key string) (string, error) {
	if _, err := GetKeySchema(key); err != nil {
		return "", err
	}
	switch key {
	case "categories":
		return strings.Join(c.Categories, ","), nil
	case "base_issue_url":
		return c.BaseIssueURL, nil
	case "unreleased_name":
		return c.UnreleasedName, nil
	case "input":
		return strings.Join(c.Input, ","), nil
	case "output":
		return c.Output, nil
	case "remote_timeout":
		return c.RemoteTimeout.String(), nil
	default:
		return "", fmt.Errorf("no accessor for key %q", key)
	}
}

// shownConfig is the YAML form of Configuration used by "config show".
type shownConfig struct {
	Categories     []string `yaml:"categories"`
	BaseIssueURL   string   `yaml:"base_issue_url"`
	UnreleasedName string   `yaml:"unreleased_name"`
	Input          []string `yaml:"input"`
	Output         string   `yaml:"output"`
	RemoteTimeout  string   `yaml:"remote_timeout"`
}

// YAML renders the effective configuration in config file syntax.
func (c *Configuration) YAML() ([]byte, error) {
	return yaml.Marshal(shownConfig{
		Categories:     c.Categories,
		BaseIssueURL:   c.BaseIssueURL,
		UnreleasedName: c.UnreleasedName,
		Input:          c.Input,
		Output:         c.Output,
		RemoteTimeout:  c.RemoteTimeout.String(),
	})
}
