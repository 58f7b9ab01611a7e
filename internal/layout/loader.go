package layout

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a layout document encoding.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat converts a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath returns the format implied by the file extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// FileSystem is the file access the loader needs.
// fstest.MapFS satisfies it.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader reads layout documents.
type Loader struct {
	fs FileSystem
}

// NewLoader creates a loader that reads from the OS file system.
func NewLoader() *Loader {
	return &Loader{fs: OSFS{}}
}

// NewLoaderWithFS creates a loader with a custom file system.
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads the layout at path using the OS file system.
func Load(path string) (*Layout, error) {
	return NewLoader().Load(path)
}

// Load reads the layout at path. The format is chosen by extension.
func (l *Loader) Load(path string) (*Layout, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file %s: %w", path, err)
	}
	return parse(path, format, data)
}

// LoadFromReader reads a layout in the given format from r.
func (l *Loader) LoadFromReader(r io.Reader, format Format) (*Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}
	return parse("<reader>", format, data)
}

// Parse decodes a layout document held in memory.
func Parse(data []byte, format Format) (*Layout, error) {
	return parse("<data>", format, data)
}

// parse decodes data strictly: unknown fields are errors in every format.
func parse(source string, format Format, data []byte) (*Layout, error) {
	var (
		l   Layout
		err error
	)

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&l)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&l)
		if errors.Is(err, io.EOF) {
			err = nil // empty document
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&l)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}

	if err != nil {
		pe := &ParseError{
			Path:    source,
			Format:  format,
			Message: err.Error(),
			Err:     err,
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			pe.Line, pe.Column = decodeErr.Position()
		}
		if format == FormatYAML {
			pe.Line = yamlErrorLine(err)
		}
		return nil, pe
	}
	return &l, nil
}

// yamlLinePattern matches the position yaml.v3 embeds in its messages, as in
// "yaml: line 3: did not find expected key" or "line 2: cannot unmarshal".
var yamlLinePattern = regexp.MustCompile(`\bline (\d+):`)

// yamlErrorLine returns the first line number in a yaml.v3 error, or 0.
// yaml.v3 reports no columns.
func yamlErrorLine(err error) int {
	m := yamlLinePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
