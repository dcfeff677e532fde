// Package filestore persists catalog collections as single JSON or YAML
// documents. Each save writes a complete document to a temp file and renames
// it over the target, so readers never observe a partial write.
package filestore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DocumentVersion is written into every document.
const DocumentVersion = 1

// ErrUnsupportedFormat is returned for file extensions with no codec.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Document is the on-disk envelope around a collection.
type Document[R any] struct {
	Version  int       `json:"version" yaml:"version"`
	Kind     string    `json:"kind" yaml:"kind"`
	Snapshot string    `json:"snapshot" yaml:"snapshot"`
	SavedAt  time.Time `json:"saved_at" yaml:"saved_at"`
	// NextID is the next unused body id. Zero in documents that hold no bodies.
	NextID   int       `json:"next_id,omitempty" yaml:"next_id,omitempty"`
	Items    []R       `json:"items" yaml:"items"`
}

func encode[R any](format Format, doc Document[R]) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func decode[R any](format Format, data []byte) (Document[R], error) {
	var doc Document[R]
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return doc, err
}
