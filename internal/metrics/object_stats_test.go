package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/objstore/internal/objects"
)

// core <- dist <- edge1, edge2; edge1 runs two services
func buildStore(t *testing.T) *objects.Store {
	t.Helper()
	s := objects.New(objects.Counts{Hosts: 4, Services: 2})
	t.Cleanup(func() { s.Free() })

	hosts := map[string]*objects.Host{}
	for _, name := range []string{"core", "dist", "edge1", "edge2"} {
		h, err := s.AddHost(objects.HostSpec{Name: name, MaxAttempts: 1})
		require.NoError(t, err)
		hosts[name] = h
	}
	require.NoError(t, s.AddParentHost(hosts["dist"], "core"))
	require.NoError(t, s.AddParentHost(hosts["edge1"], "dist"))
	require.NoError(t, s.AddParentHost(hosts["edge2"], "dist"))
	require.NoError(t, s.AddCustomVariableToHost(hosts["edge1"], "_RACK", "r1"))

	for _, desc := range []string{"PING", "SSH"} {
		_, err := s.AddService(objects.ServiceSpec{
			HostName: "edge1", Description: desc, CheckCommand: "check", MaxAttempts: 1, RetryInterval: 1,
		})
		require.NoError(t, err)
	}

	g, err := s.AddHostGroup(objects.HostGroupSpec{Name: "edges"})
	require.NoError(t, err)
	require.NoError(t, s.AddHostToHostGroup(g, "edge1"))
	require.NoError(t, s.AddHostToHostGroup(g, "edge2"))

	_, _, err = s.AddHostDependency(objects.HostDependencySpec{DependentHostName: "edge1", HostName: "dist"})
	require.NoError(t, err)
	_, _, err = s.AddHostDependency(objects.HostDependencySpec{
		DependentHostName: "edge2", HostName: "dist", Type: objects.ExecutionDependency,
	})
	require.NoError(t, err)

	require.NoError(t, s.Resolve())
	return s
}

func TestCompute(t *testing.T) {
	st := Compute(buildStore(t))

	assert.Equal(t, 4, st.Counts.Hosts)
	assert.Equal(t, 2, st.Counts.Services)
	assert.Equal(t, int64(1), st.RootHosts)
	assert.Equal(t, int64(3), st.ParentLinks)
	assert.Equal(t, int64(2), st.MaxParentDepth)
	assert.Equal(t, int64(1), st.HostsWithServices)
	assert.Equal(t, int64(2), st.MaxServicesOnHost)
	assert.InDelta(t, 0.5, st.AvgServicesOnHost, 1e-9)
	assert.Equal(t, int64(2), st.HostGroupMembers)
	assert.Equal(t, int64(1), st.NotifyDependencies)
	assert.Equal(t, int64(1), st.ExecDependencies)
	assert.Equal(t, int64(1), st.CustomVariables)
	assert.Positive(t, st.LiveNames)

	require.Len(t, st.Indexes, 8)
	hosts := st.Indexes[0]
	assert.Equal(t, objects.KindHost, hosts.Kind)
	assert.Equal(t, 4, hosts.Keys)
	assert.Equal(t, 8, hosts.Buckets, "small tables start at the minimum size")
	assert.InDelta(t, 0.5, hosts.LoadFactor(), 1e-9)
}

func TestComputeEmptyStore(t *testing.T) {
	s := objects.New(objects.Counts{})
	defer s.Free()

	st := Compute(s)
	assert.Zero(t, st.Counts.Total())
	assert.Zero(t, st.AvgServicesOnHost)
	assert.Zero(t, st.MaxParentDepth)
	for _, ix := range st.Indexes {
		assert.Zero(t, ix.Keys, ix.Kind)
	}
}

func TestComputeFreedStore(t *testing.T) {
	s := objects.New(objects.Counts{Hosts: 1})
	_, err := s.AddHost(objects.HostSpec{Name: "web", MaxAttempts: 1})
	require.NoError(t, err)
	s.Free()

	for _, ix := range Compute(s).Indexes {
		assert.Zero(t, ix.Buckets, ix.Kind)
		assert.Zero(t, ix.LoadFactor(), ix.Kind)
	}
}

func TestFormatAsJSON(t *testing.T) {
	out := Compute(buildStore(t)).FormatAsJSON()

	summary := out["summary"].(map[string]interface{})
	assert.Equal(t, 9, summary["total_objects"])

	kinds := out["objects"].(map[string]interface{})
	assert.Equal(t, 4, kinds[objects.KindHost])
	assert.Equal(t, 2, kinds[objects.KindHostDependency])

	indexes := out["indexes"].(map[string]interface{})
	hosts := indexes[objects.KindHost].(map[string]interface{})
	assert.Equal(t, 4, hosts["keys"])
	assert.Equal(t, 8, hosts["buckets"])
}

func TestFormatAsText(t *testing.T) {
	text := Compute(buildStore(t)).FormatAsText()

	assert.Contains(t, text, "OBJECTS")
	assert.Contains(t, text, "host:")
	assert.Contains(t, text, "Max Parent Depth:    2")
	assert.Contains(t, text, "Execution:           1")
	assert.Contains(t, text, "NAME INDEXES")
	assert.Regexp(t, `host:\s+4 keys\s+8 buckets  load 0\.50`, text)
}
