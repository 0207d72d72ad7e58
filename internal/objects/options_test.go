package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		in    string
		table []FlagCode
		want  Options
	}{
		{"", HostFlags, OptNothing},
		{"n", HostFlags, OptNothing},
		{"a", ServiceFlags, OptAll},
		{"d,u,r", HostFlags, OptDown | OptUnreachable | OptRecovery},
		{"w, c ,o", ServiceFlags, OptWarning | OptCritical | OptOK},
		{"f,s", HostFlags, OptFlapping | OptDowntime},
		{"u,n", HostFlags, OptNothing},
		{"p", ServiceFlags, OptPending},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOptions(tt.in, tt.table)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseOptions("x", HostFlags)
	assert.Error(t, err)
	_, err = ParseOptions("down", HostFlags)
	assert.Error(t, err)
}

func TestOptionsHas(t *testing.T) {
	o := OptDown | OptFlapping
	assert.True(t, o.Has(OptDown))
	assert.True(t, o.Has(OptDown|OptFlapping))
	assert.False(t, o.Has(OptDown|OptUnreachable))
	assert.True(t, OptAll.Has(OptDisabled))
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "UP", HostStateName(HostUp))
	assert.Equal(t, "UNREACHABLE", HostStateName(HostUnreachable))
	assert.Equal(t, "(unknown)", HostStateName(HostState(9)))
	assert.Equal(t, "CRITICAL", ServiceStateName(ServiceCritical))
	assert.Equal(t, "(unknown)", ServiceStateName(ServiceState(-1)))

	hs, err := ParseHostState("d")
	require.NoError(t, err)
	assert.Equal(t, HostDown, hs)
	_, err = ParseHostState("w")
	assert.Error(t, err)

	ss, err := ParseServiceState("W")
	require.NoError(t, err)
	assert.Equal(t, ServiceWarning, ss)
	ss, err = ParseServiceState("")
	require.NoError(t, err)
	assert.Equal(t, ServiceOK, ss)

	assert.Equal(t, "notification", NotificationDependency.String())
	assert.Equal(t, "execution", ExecutionDependency.String())
}
