package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// Format names a serialization codec.
type Format string

const (
	FormatJSON Format = "json"
	FormatBSON Format = "bson"
	FormatYAML Format = "yaml"
)

// Formats lists the supported codecs.
var Formats = []Format{FormatJSON, FormatBSON, FormatYAML}

// ParseFormat validates a codec name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatBSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported format %q: expecting json, bson or yaml", s)
}

// FormatFromPath picks the codec from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeUnsupported, "cannot infer format of %q: no extension", path)
	}
	return ParseFormat(ext)
}
