package i18n

import "errors"

var (
	ErrNilSource           = errors.New("translation source is nil")
	ErrEmptyLanguageCode   = errors.New("empty language code in catalog")
	ErrUnsupportedFormat   = errors.New("unsupported catalog file format")
	ErrFailedToParseJSON   = errors.New("failed to parse JSON catalog")
	ErrFailedToParseYAML   = errors.New("failed to parse YAML catalog")
	ErrInvalidCatalog      = errors.New("invalid catalog structure")
	ErrFailedToReadFile    = errors.New("failed to read catalog file")
	ErrFailedToReadDir     = errors.New("failed to read catalog directory")
	ErrEmptyCatalogFile    = errors.New("catalog file is empty")
	ErrNoCatalogFiles      = errors.New("no catalog files found in directory")
	ErrLoadingCancelled    = errors.New("loading catalog cancelled")
	ErrLanguageUnsupported = errors.New("language not supported")
)
