package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

// populate builds one object of every kind, with cross links between them
func populate(t *testing.T, s *Store) {
	t.Helper()
	_, err := s.AddTimePeriod(TimePeriodSpec{Name: "24x7", Alias: "Always"})
	require.NoError(t, err)
	_, err = s.AddCommand(CommandSpec{Name: "check_ping", CommandLine: "/bin/ping $HOSTADDRESS$"})
	require.NoError(t, err)
	_, err = s.AddContact(ContactSpec{Name: "admin", HostNotificationPeriod: "24x7"})
	require.NoError(t, err)
	cg, err := s.AddContactGroup(ContactGroupSpec{Name: "admins", Alias: "Admins"})
	require.NoError(t, err)
	require.NoError(t, s.AddContactToContactGroup(cg, "admin"))

	spec := hostSpec("router")
	spec.Alias = "Core router"
	spec.CheckPeriod = "24x7"
	_, err = s.AddHost(spec)
	require.NoError(t, err)
	web := mustHost(t, s, "web")
	require.NoError(t, s.AddParentHost(web, "router"))
	require.NoError(t, s.AddContactToHost(web, "admin"))
	require.NoError(t, s.AddCustomVariableToHost(web, "RACK", "12"))

	svc := mustService(t, s, "web", "http")
	mustService(t, s, "router", "ping")
	require.NoError(t, s.AddContactGroupToService(svc, "admins"))
	require.NoError(t, s.AddParentService(svc, "router", "ping"))

	hg, err := s.AddHostGroup(HostGroupSpec{Name: "all"})
	require.NoError(t, err)
	require.NoError(t, s.AddHostToHostGroup(hg, "web"))
	sg, err := s.AddServiceGroup(ServiceGroupSpec{Name: "www", Alias: "Web"})
	require.NoError(t, err)
	require.NoError(t, s.AddServiceToServiceGroup(sg, "web", "http"))

	_, _, err = s.AddHostDependency(HostDependencySpec{DependentHostName: "web", HostName: "router"})
	require.NoError(t, err)
	_, _, err = s.AddServiceDependency(ServiceDependencySpec{
		DependentHostName: "web", DependentServiceDescription: "http",
		HostName: "router", ServiceDescription: "ping", Type: ExecutionDependency,
	})
	require.NoError(t, err)
	he, err := s.AddHostEscalation(HostEscalationSpec{HostName: "web"})
	require.NoError(t, err)
	require.NoError(t, s.AddContactToHostEscalation(he, "admin"))
	_, err = s.AddServiceEscalation(ServiceEscalationSpec{HostName: "web", Description: "http"})
	require.NoError(t, err)

	require.NoError(t, s.Resolve())
}

func TestFreeReleasesEverything(t *testing.T) {
	s := New(Counts{})
	populate(t, s)

	before := s.Counts()
	assert.Equal(t, 14, before.Total())
	liveNames := s.Names().Live()

	st := s.Free()
	assert.Equal(t, before.Total(), st.Objects)
	assert.Equal(t, liveNames, st.NamesReleased)
	assert.Zero(t, st.DoubleReleases)
	assert.Positive(t, st.NodesReleased)
	assert.Zero(t, s.Names().Live())

	assert.Zero(t, s.Counts().Total())
	assert.Nil(t, s.FindHost("web"))
	assert.Nil(t, s.FindService("web", "http"))
	assert.Nil(t, s.FindContact("admin"))
	assert.Nil(t, s.HostList())
	assert.Empty(t, s.HostDependencies())
	assert.Empty(t, s.ServiceEscalations())
	assert.False(t, s.Resolved())
}

func TestCreateAfterFreeFails(t *testing.T) {
	s := New(Counts{})
	populate(t, s)
	s.Free()

	_, err := s.AddHost(hostSpec("late"))
	assert.ErrorIs(t, err, objerrors.ErrIndex)
	_, err = s.AddTimePeriod(TimePeriodSpec{Name: "late"})
	assert.ErrorIs(t, err, objerrors.ErrIndex)
	_, err = s.AddService(serviceSpec("web", "late"))
	assert.ErrorIs(t, err, objerrors.ErrUnresolvedReference)
	assert.Zero(t, s.Names().Live())
}

func TestInitAfterFreeReusesStore(t *testing.T) {
	s := New(Counts{})
	populate(t, s)
	s.Free()

	s.Init(Counts{Hosts: 2})
	populate(t, s)
	assert.NotNil(t, s.FindHost("web"))
	assert.Equal(t, 2, s.GetHostCount())
	assert.Equal(t, 2, s.GetServiceCount())

	st := s.Free()
	assert.Zero(t, st.DoubleReleases)
}

func TestFreeOnEmptyStore(t *testing.T) {
	s := New(Counts{})
	st := s.Free()
	assert.Equal(t, TeardownStats{}, st)

	var zero Store
	assert.Equal(t, TeardownStats{}, zero.Free())
}

func TestNamePoolDoubleRelease(t *testing.T) {
	p := NewNamePool(2)
	a := p.Own("alpha")
	b := p.Own("beta")
	assert.Equal(t, 2, p.Live())
	assert.Equal(t, "alpha", a.String())
	assert.False(t, a.Same(b))
	assert.True(t, a.Same(a))

	assert.True(t, p.Release(a))
	assert.False(t, p.Release(a))
	assert.Equal(t, 1, p.DoubleReleases())
	assert.Equal(t, 1, p.Live())
	assert.Equal(t, 2, p.Len())

	// the zero handle is never owned
	assert.False(t, p.Release(Name{}))
	assert.Equal(t, 1, p.DoubleReleases())
	assert.True(t, Name{}.IsZero())

	p.Reset()
	assert.Zero(t, p.Len())
	assert.Zero(t, p.DoubleReleases())
	assert.Equal(t, "beta", b.String(), "handles keep their text after reset")
}

func TestOptionalName(t *testing.T) {
	p := NewNamePool(2)
	primary := p.Own("web01")

	alias := optionalName(p, "")
	assert.True(t, alias.IsAlias())
	assert.Equal(t, "web01", alias.Resolve(primary))
	_, ok := alias.Owned()
	assert.False(t, ok)
	assert.False(t, alias.release(p))

	own := optionalName(p, "10.0.0.1")
	assert.False(t, own.IsAlias())
	assert.Equal(t, "10.0.0.1", own.Resolve(primary))
	n, ok := own.Owned()
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1", n.String())

	assert.True(t, own.release(p))
	assert.False(t, own.release(p))
	assert.Equal(t, 1, p.DoubleReleases())
	assert.True(t, AliasOfPrimary().IsAlias())
}
