package ruleset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/rulebuilder/pkg/validator"
)

// Format is a rule set file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks a format by file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and parses the rule set at path.
func Load(path string) (*Set, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	set, err := Parse(content, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// LoadDir loads every .yaml, .yml and .json file directly in dir. Sets are
// keyed by file name without extension; other files are ignored.
func LoadDir(dir string) (map[string]*Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	sets := make(map[string]*Set)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := FormatFor(entry.Name()); err != nil {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if _, dup := sets[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		set, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		sets[name] = set
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRuleSets, dir)
	}
	return sets, nil
}

// Parse decodes a rule set document.
func Parse(content []byte, format Format) (*Set, error) {
	var raw map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, errors.Join(ErrFailedToParse, err)
		}
	case FormatJSON:
		if !gjson.ValidBytes(content) {
			return nil, fmt.Errorf("%w: malformed JSON", ErrFailedToParse)
		}
		m, ok := gjson.ParseBytes(content).Value().(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: top level must be an object", ErrFailedToParse)
		}
		raw = m
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return fromMap(raw)
}

func fromMap(raw map[string]any) (*Set, error) {
	set := &Set{
		rules:      make(map[string][]string),
		attributes: make(map[string]string),
	}

	for key, val := range raw {
		switch key {
		case "locale":
			s, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("%w: locale must be a string, got %T", ErrInvalidRuleDefinition, val)
			}
			set.locale = s
		case "attributes":
			m, ok := val.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: attributes must be a map, got %T", ErrInvalidRuleDefinition, val)
			}
			for field, name := range m {
				s, ok := name.(string)
				if !ok {
					return nil, fmt.Errorf("%w: attribute %q: expected string, got %T", ErrInvalidRuleDefinition, field, name)
				}
				set.attributes[field] = s
			}
		case "rules":
			m, ok := val.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: rules must be a map, got %T", ErrInvalidRuleDefinition, val)
			}
			for field, def := range m {
				tokens, err := tokensOf(def)
				if err != nil {
					return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidRuleDefinition, field, err)
				}
				set.rules[field] = tokens
			}
		default:
			return nil, fmt.Errorf("%w: unknown section %q", ErrInvalidRuleDefinition, key)
		}
	}

	if len(set.rules) == 0 {
		return nil, fmt.Errorf("%w: no rules defined", ErrInvalidRuleDefinition)
	}
	return set, nil
}

// tokensOf accepts a delimited string or a list of strings.
func tokensOf(def any) ([]string, error) {
	switch v := def.(type) {
	case string:
		tokens := validator.SplitTokens(v)
		if len(tokens) == 0 {
			return nil, errors.New("empty rule string")
		}
		return tokens, nil
	case []any:
		tokens := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: expected string, got %T", i, item)
			}
			if s = strings.TrimSpace(s); s != "" {
				tokens = append(tokens, s)
			}
		}
		if len(tokens) == 0 {
			return nil, errors.New("empty rule list")
		}
		return tokens, nil
	default:
		return nil, fmt.Errorf("expected string or list, got %T", def)
	}
}
