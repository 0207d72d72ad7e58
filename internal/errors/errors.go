package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Error types for the object store
type ErrorType string

const (
	// Object creation errors
	ErrorTypeInvalidInput        ErrorType = "invalid_input"
	ErrorTypeUnresolvedReference ErrorType = "unresolved_reference"
	ErrorTypeDuplicateDefinition ErrorType = "duplicate_definition"
	ErrorTypeIndex               ErrorType = "index"

	// Definition file errors
	ErrorTypeDecode       ErrorType = "decode"
	ErrorTypeFileNotFound ErrorType = "file_not_found"
	ErrorTypePermission   ErrorType = "permission"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// Sentinels matched through errors.Is against any *ObjectError of the same type.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrDuplicateDefinition = errors.New("duplicate definition")
	ErrIndex               = errors.New("index failure")
)

func sentinelFor(t ErrorType) error {
	switch t {
	case ErrorTypeInvalidInput:
		return ErrInvalidInput
	case ErrorTypeUnresolvedReference:
		return ErrUnresolvedReference
	case ErrorTypeDuplicateDefinition:
		return ErrDuplicateDefinition
	case ErrorTypeIndex:
		return ErrIndex
	}
	return nil
}

// ObjectError reports a rejected creation or attachment call.
// The entity named by Kind/Name was not constructed.
type ObjectError struct {
	Type       ErrorType
	Kind       string // object kind, e.g. "host", "servicedependency"
	Name       string // object name or "host;description" pair
	Field      string // offending field, if any
	Reference  string // unresolved reference value, if any
	RefKind    string // kind the reference was looked up in
	Suggestion string // closest known name, attached by the loader
	Underlying error
	Timestamp  time.Time
}

func newObjectError(t ErrorType, kind, name string, err error) *ObjectError {
	return &ObjectError{
		Type:       t,
		Kind:       kind,
		Name:       name,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// NewInvalidInput reports a missing required field or an out-of-domain value.
func NewInvalidInput(kind, name, field, msg string) *ObjectError {
	e := newObjectError(ErrorTypeInvalidInput, kind, name, errors.New(msg))
	e.Field = field
	return e
}

// NewUnresolvedReference reports a named reference that does not exist yet.
// refKind is the kind that was searched (e.g. "timeperiod").
func NewUnresolvedReference(kind, name, field, refKind, ref string) *ObjectError {
	e := newObjectError(ErrorTypeUnresolvedReference, kind, name,
		fmt.Errorf("%s '%s' is not defined anywhere", refKind, ref))
	e.Field = field
	e.Reference = ref
	e.RefKind = refKind
	return e
}

// NewDuplicateDefinition reports a key already present in the kind's index.
func NewDuplicateDefinition(kind, name string) *ObjectError {
	return newObjectError(ErrorTypeDuplicateDefinition, kind, name,
		fmt.Errorf("%s '%s' has already been defined", kind, name))
}

// NewIndexError wraps an internal hash table failure.
func NewIndexError(kind, name string, err error) *ObjectError {
	return newObjectError(ErrorTypeIndex, kind, name, err)
}

// WithSuggestion attaches a "did you mean" hint
func (e *ObjectError) WithSuggestion(s string) *ObjectError {
	e.Suggestion = s
	return e
}

// Error implements the error interface
func (e *ObjectError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Type, e.Kind)
	if e.Name != "" {
		fmt.Fprintf(&b, " '%s'", e.Name)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " (%s)", e.Field)
	}
	fmt.Fprintf(&b, ": %v", e.Underlying)
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean '%s'?)", e.Suggestion)
	}
	return b.String()
}

// Unwrap returns the underlying error for errors.Is/As
func (e *ObjectError) Unwrap() error {
	return e.Underlying
}

// Is matches the sentinel belonging to the error's type
func (e *ObjectError) Is(target error) bool {
	s := sentinelFor(e.Type)
	return s != nil && s == target
}

// IsFatal reports whether the current load cannot continue past this error.
// Only index failures are fatal; every other rejection affects one record.
func (e *ObjectError) IsFatal() bool {
	return e.Type == ErrorTypeIndex
}

// DecodeError represents a definition file that could not be decoded
type DecodeError struct {
	Type       ErrorType
	FilePath   string
	Section    string
	Underlying error
	Timestamp  time.Time
}

// NewDecodeError creates a new decode error
func NewDecodeError(path, section string, err error) *DecodeError {
	return &DecodeError{
		Type:       ErrorTypeDecode,
		FilePath:   path,
		Section:    section,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("decode error in %s (section %s): %v", e.FilePath, e.Section, e.Underlying)
	}
	return fmt.Sprintf("decode error in %s: %v", e.FilePath, e.Underlying)
}

// Unwrap returns the underlying error
func (e *DecodeError) Unwrap() error {
	return e.Underlying
}

// FileError represents a file-related error
type FileError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewFileError creates a new file error
func NewFileError(op, path string, err error) *FileError {
	errorType := ErrorTypeFileNotFound
	if errors.Is(err, os.ErrPermission) {
		errorType = ErrorTypePermission
	}

	return &FileError{
		Type:       errorType,
		Path:       path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("file %s failed for %s: %v", e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *FileError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}

// ErrOrNil returns nil when no errors were collected
func (e *MultiError) ErrOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}
