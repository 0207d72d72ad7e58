package errors

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectErrorSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      *ObjectError
		sentinel error
		fatal    bool
	}{
		{"invalid input", NewInvalidInput("host", "h1", "max_check_attempts", "must be positive"), ErrInvalidInput, false},
		{"unresolved", NewUnresolvedReference("host", "h1", "check_period", "timeperiod", "24x7"), ErrUnresolvedReference, false},
		{"duplicate", NewDuplicateDefinition("host", "h1"), ErrDuplicateDefinition, false},
		{"index", NewIndexError("host", "h1", errors.New("boom")), ErrIndex, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.fatal, tt.err.IsFatal())
			for _, other := range []error{ErrInvalidInput, ErrUnresolvedReference, ErrDuplicateDefinition, ErrIndex} {
				if other != tt.sentinel {
					assert.NotErrorIs(t, tt.err, other)
				}
			}
		})
	}
}

func TestObjectErrorMessage(t *testing.T) {
	err := NewUnresolvedReference("service", "web;http", "check_period", "timeperiod", "24x8")
	assert.Equal(t, "unresolved_reference: service 'web;http' (check_period): timeperiod '24x8' is not defined anywhere", err.Error())
	assert.Equal(t, "24x8", err.Reference)

	err.WithSuggestion("24x7")
	assert.Contains(t, err.Error(), "(did you mean '24x7'?)")

	dup := NewDuplicateDefinition("host", "h1")
	assert.Equal(t, "duplicate_definition: host 'h1': host 'h1' has already been defined", dup.Error())
}

func TestObjectErrorAs(t *testing.T) {
	var wrapped error = NewInvalidInput("hostgroup", "", "hostgroup_name", "name is empty")
	var oe *ObjectError
	require.True(t, errors.As(wrapped, &oe))
	assert.Equal(t, ErrorTypeInvalidInput, oe.Type)
	assert.Equal(t, "hostgroup_name", oe.Field)
	assert.False(t, oe.Timestamp.IsZero())
}

func TestDecodeError(t *testing.T) {
	underlying := errors.New("yaml: line 3: mapping values are not allowed")
	err := NewDecodeError("/etc/objects/hosts.yaml", "hosts", underlying)

	assert.Equal(t, ErrorTypeDecode, err.Type)
	assert.ErrorIs(t, err, underlying)
	assert.Equal(t, "decode error in /etc/objects/hosts.yaml (section hosts): yaml: line 3: mapping values are not allowed", err.Error())

	noSection := NewDecodeError("a.toml", "", underlying)
	assert.Equal(t, "decode error in a.toml: yaml: line 3: mapping values are not allowed", noSection.Error())
}

func TestFileError(t *testing.T) {
	err := NewFileError("read", "/missing", os.ErrNotExist)
	assert.Equal(t, ErrorTypeFileNotFound, err.Type)
	assert.ErrorIs(t, err, os.ErrNotExist)

	perm := NewFileError("open", "/root/secret", os.ErrPermission)
	assert.Equal(t, ErrorTypePermission, perm.Type)
	assert.Equal(t, "file open failed for /root/secret: permission denied", perm.Error())
}

func TestConfigError(t *testing.T) {
	underlying := errors.New("must be positive")
	err := NewConfigError("loader.workers", "-1", underlying)

	assert.ErrorIs(t, err, underlying)
	assert.Equal(t, "config error for field loader.workers (value -1): must be positive", err.Error())
}

func TestMultiError(t *testing.T) {
	t.Run("filters nil", func(t *testing.T) {
		err := NewMultiError([]error{nil, errors.New("a"), nil})
		assert.Len(t, err.Errors, 1)
		assert.Equal(t, "a", err.Error())
	})

	t.Run("empty", func(t *testing.T) {
		err := NewMultiError(nil)
		assert.Equal(t, "no errors", err.Error())
		assert.NoError(t, err.ErrOrNil())

		var nilErr *MultiError
		assert.NoError(t, nilErr.ErrOrNil())
	})

	t.Run("unwraps each", func(t *testing.T) {
		dup := NewDuplicateDefinition("host", "h1")
		unresolved := NewUnresolvedReference("hostgroup", "web", "members", "host", "h9")
		err := NewMultiError([]error{dup, unresolved})

		assert.Equal(t, 2, len(err.Errors))
		assert.ErrorIs(t, err, ErrDuplicateDefinition)
		assert.ErrorIs(t, err, ErrUnresolvedReference)
		assert.NotErrorIs(t, err, ErrIndex)
		assert.Error(t, err.ErrOrNil())
	})
}
