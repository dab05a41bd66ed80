package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes catalog file content into a per-language map.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)
	// Extensions lists the file extensions (without leading dot) the parser handles.
	Extensions() []string
}

// ParserFor picks a parser by file extension. Returns nil for unknown extensions.
func ParserFor(filename string) Parser {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, p := range []Parser{YAMLParser{}, JSONParser{}} {
		for _, e := range p.Extensions() {
			if e == ext {
				return p
			}
		}
	}
	return nil
}

// YAMLParser reads catalogs from YAML documents.
type YAMLParser struct{}

func (YAMLParser) Extensions() []string { return []string{"yaml", "yml"} }

func (YAMLParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return splitLanguages(raw)
}

// JSONParser reads catalogs from JSON documents.
type JSONParser struct{}

func (JSONParser) Extensions() []string { return []string{"json"} }

func (JSONParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return splitLanguages(raw)
}

// splitLanguages checks that every top-level entry is a language map.
func splitLanguages(raw map[string]any) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(raw))
	for lang, val := range raw {
		entries, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrInvalidCatalog, lang, val)
		}
		result[lang] = entries
	}
	return result, nil
}
