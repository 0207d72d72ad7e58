package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML
var ErrUnsupportedFormat = errors.New("unsupported definition file format")

// DecodeFile reads and decodes one definition file. The format follows the
// extension: .yaml/.yml or .toml. Unknown keys are rejected.
func DecodeFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, objerrors.NewFileError("read", path, err)
	}

	f, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, objerrors.NewDecodeError(path, "", err)
	}
	return f, nil
}

// Decode decodes data in the format named by ext
func Decode(ext string, data []byte) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// an empty document is an empty file, not an error
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return &f, nil
}
