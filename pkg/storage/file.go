// Package storage persists chart responses to disk.
package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chrissnell/jyotish/pkg/chart"
	"github.com/chrissnell/jyotish/pkg/config"
)

// FileStore writes a response to a single file, truncating whatever was there.
// Writes are not atomic: a crash mid-write can leave a truncated file.
type FileStore struct {
	path   string
	format string
}

// NewFileStore creates a store for the configured output file
func NewFileStore(cfg config.OutputData) (*FileStore, error) {
	format := cfg.Format
	if format == "" {
		format = config.FormatJSON
	}
	if format != config.FormatJSON && format != config.FormatMsgPack {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	if cfg.File == "" {
		return nil, fmt.Errorf("no output file configured")
	}
	return &FileStore{path: cfg.File, format: format}, nil
}

// Path returns the destination file
func (f *FileStore) Path() string {
	return f.path
}

// WriteText persists response text as returned by the fetcher. In JSON format the
// file receives exactly these bytes.
func (f *FileStore) WriteText(text string) error {
	if f.format == config.FormatMsgPack {
		return f.writeMsgPack([]byte(text))
	}
	return f.write([]byte(text))
}

// WriteDocument serializes v the same way the fetcher formats responses and persists it
func (f *FileStore) WriteDocument(v any) error {
	if f.format == config.FormatMsgPack {
		b, err := json.Marshal(v)
		if err != nil {
			return &chart.IOError{Path: f.path, Err: fmt.Errorf("unable to encode document: %w", err)}
		}
		return f.writeMsgPack(b)
	}

	b, err := chart.MarshalIndent(v)
	if err != nil {
		return &chart.IOError{Path: f.path, Err: fmt.Errorf("unable to encode document: %w", err)}
	}
	return f.write(b)
}

func (f *FileStore) writeMsgPack(jsonBytes []byte) error {
	b, err := encodeMsgPack(jsonBytes)
	if err != nil {
		return &chart.IOError{Path: f.path, Err: fmt.Errorf("unable to encode MessagePack: %w", err)}
	}
	return f.write(b)
}

func (f *FileStore) write(b []byte) error {
	if err := os.WriteFile(f.path, b, 0644); err != nil {
		return &chart.IOError{Path: f.path, Err: err}
	}
	return nil
}

// ReadMsgPack decodes a file written in MessagePack format back to the indented JSON
// text that was persisted, with object keys in their original order
func ReadMsgPack(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, err := decodeMsgPack(b)
	if err != nil {
		return "", fmt.Errorf("unable to decode MessagePack from %s: %w", path, err)
	}
	return text, nil
}
