package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

const sampleYAML = `
timeperiods:
  - timeperiod_name: 24x7
    alias: Always
hosts:
  - host_name: web01
    address: 10.0.0.1
    max_check_attempts: 3
    check_period: 24x7
    notifications_enabled: false
    parents: [router]
    2d_coords: [10, 20]
    custom_variables:
      _RACK: r12
services:
  - host_name: web01
    service_description: HTTP
    check_command: check_http
    max_check_attempts: 2
    parents:
      - service_description: PING
`

const sampleTOML = `
[[commands]]
command_name = "check_http"
command_line = "$USER1$/check_http -H $HOSTADDRESS$"

[[hostdependencies]]
dependent_host_name = "web01"
host_name = "router"
type = "execution"
failure_options = "d,u"
`

func TestDecodeYAML(t *testing.T) {
	f, err := Decode(".yaml", []byte(sampleYAML))
	require.NoError(t, err)

	require.Len(t, f.TimePeriods, 1)
	assert.Equal(t, "24x7", f.TimePeriods[0].Name)

	require.Len(t, f.Hosts, 1)
	h := f.Hosts[0]
	assert.Equal(t, "web01", h.Name)
	assert.Equal(t, 3, h.MaxCheckAttempts)
	assert.Equal(t, []string{"router"}, h.Parents)
	assert.Equal(t, []int{10, 20}, h.Coords2D)
	assert.Equal(t, "r12", h.CustomVariables["_RACK"])
	require.NotNil(t, h.NotificationsEnabled)
	assert.False(t, *h.NotificationsEnabled)
	assert.Nil(t, h.ActiveChecksEnabled, "absent toggles stay nil")

	require.Len(t, f.Services, 1)
	assert.Equal(t, []ServiceRefRecord{{Description: "PING"}}, f.Services[0].Parents)
}

func TestDecodeTOML(t *testing.T) {
	f, err := Decode(".toml", []byte(sampleTOML))
	require.NoError(t, err)

	require.Len(t, f.Commands, 1)
	assert.Equal(t, "check_http", f.Commands[0].Name)
	require.Len(t, f.HostDependencies, 1)
	assert.Equal(t, "execution", f.HostDependencies[0].Type)
	assert.Equal(t, "d,u", f.HostDependencies[0].FailureOptions)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(".yml", []byte("hosts:\n  - host_name: a\n    colour: red\n"))
	assert.Error(t, err)

	_, err = Decode(".toml", []byte("[[hosts]]\nhost_name = \"a\"\ncolour = \"red\"\n"))
	assert.Error(t, err)
}

func TestDecodeEmptyAndUnsupported(t *testing.T) {
	f, err := Decode(".yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, f.Hosts)

	_, err = Decode(".json", []byte("{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := DecodeFile(filepath.Join(dir, "missing.yaml"))
	var ferr *objerrors.FileError
	assert.ErrorAs(t, err, &ferr)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("hosts: [ {"), 0644))
	_, err = DecodeFile(bad)
	var derr *objerrors.DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, bad, derr.FilePath)
}
