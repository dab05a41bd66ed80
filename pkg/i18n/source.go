package i18n

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Source loads a catalog keyed by language code.
type Source interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapSource serves an in-memory catalog.
type MapSource map[string]map[string]any

func (s MapSource) Load(_ context.Context) (map[string]map[string]any, error) {
	if s == nil {
		return map[string]map[string]any{}, nil
	}
	return s, nil
}

// FileSource loads one catalog file. The parser is picked by extension
// unless one is given explicitly.
type FileSource struct {
	Path   string
	Parser Parser
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	parser := s.Parser
	if parser == nil {
		parser = ParserFor(s.Path)
	}
	if parser == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, s.Path)
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCatalogFile, s.Path)
	}

	return parser.Parse(ctx, content)
}

// DirectorySource merges every supported catalog file found directly in Path.
// Files are read in lexical order; later files override earlier keys.
type DirectorySource struct {
	Path string
}

func NewDirectorySource(path string) *DirectorySource {
	return &DirectorySource{Path: path}
}

func (s *DirectorySource) Load(ctx context.Context) (map[string]map[string]any, error) {
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || ParserFor(e.Name()) == nil {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCatalogFiles, s.Path)
	}

	all := make(map[string]map[string]any)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		catalog, err := NewFileSource(filepath.Join(s.Path, name)).Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for lang, entries := range catalog {
			if all[lang] == nil {
				all[lang] = make(map[string]any, len(entries))
			}
			deepMerge(all[lang], entries)
		}
	}

	return all, nil
}

// SourceFor returns a DirectorySource when path is a directory and a
// FileSource otherwise.
func SourceFor(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	if info.IsDir() {
		return NewDirectorySource(path), nil
	}
	return NewFileSource(path), nil
}

// deepMerge copies src into dst, merging nested maps instead of replacing them.
func deepMerge(dst, src map[string]any) {
	for k, v := range src {
		srcMap, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		dstMap, ok := dst[k].(map[string]any)
		if !ok {
			dstMap = make(map[string]any, len(srcMap))
			dst[k] = dstMap
		}
		deepMerge(dstMap, srcMap)
	}
}
