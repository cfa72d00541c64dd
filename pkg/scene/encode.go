package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"gopkg.in/yaml.v3"
)

// Format is a snapshot encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatSnappy is JSON compressed with the snappy block format
	FormatSnappy Format = "sz"
)

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".sz":
		return FormatSnappy, nil
	}
	return "", fmt.Errorf("unsupported snapshot extension %q", filepath.Ext(path))
}

// ParseFormat resolves a format name; an empty name selects JSON
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatSnappy:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown snapshot format %q", name)
}

// ContentType is the MIME type served for f
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	}
	return "application/octet-stream"
}

// Marshal encodes a snapshot
func Marshal(s *Snapshot, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatSnappy:
		data, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		return snappy.Encode(nil, data), nil
	}
	return nil, fmt.Errorf("unknown snapshot format %q", f)
}

// Unmarshal decodes a snapshot
func Unmarshal(data []byte, f Format) (*Snapshot, error) {
	var s Snapshot
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot: %w", err)
		}
	case FormatSnappy:
		raw, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
		}
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", f)
	}
	return &s, nil
}

// Write encodes s to w
func Write(w io.Writer, s *Snapshot, f Format) (int, error) {
	data, err := Marshal(s, f)
	if err != nil {
		return 0, err
	}
	return w.Write(data)
}

// Read decodes a snapshot from r
func Read(r io.Reader, f Format) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, f)
}
