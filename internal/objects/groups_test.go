package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

func hostMemberNames(g *HostGroup) []string {
	var out []string
	for _, m := range g.Members() {
		out = append(out, m.Name())
	}
	return out
}

func TestHostGroupMembersSorted(t *testing.T) {
	s := New(Counts{})
	for _, n := range []string{"delta", "alpha", "charlie", "bravo"} {
		mustHost(t, s, n)
	}
	g, err := s.AddHostGroup(HostGroupSpec{Name: "all"})
	require.NoError(t, err)
	assert.Equal(t, "all", g.Alias())

	for _, n := range []string{"delta", "alpha", "charlie", "bravo"} {
		require.NoError(t, s.AddHostToHostGroup(g, n))
	}
	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta"}, hostMemberNames(g))

	// back-reference on the member
	assert.Equal(t, []*HostGroup{g}, s.FindHost("alpha").HostGroups())
	assert.True(t, IsHostMemberOfHostGroup(g, s.FindHost("charlie")))
}

func TestHostGroupLargeInstallationPrepends(t *testing.T) {
	s := New(Counts{}, WithLargeInstallationTweaks(true))
	assert.True(t, s.LargeInstallationTweaks())
	for _, n := range []string{"delta", "alpha", "charlie"} {
		mustHost(t, s, n)
	}
	g, err := s.AddHostGroup(HostGroupSpec{Name: "all", Alias: "Every host"})
	require.NoError(t, err)
	assert.Equal(t, "Every host", g.Alias())

	for _, n := range []string{"delta", "alpha", "charlie"} {
		require.NoError(t, s.AddHostToHostGroup(g, n))
	}
	assert.Equal(t, []string{"charlie", "alpha", "delta"}, hostMemberNames(g))
}

func TestServiceGroupLargeInstallationPrepends(t *testing.T) {
	s := New(Counts{}, WithLargeInstallationTweaks(true))
	mustHost(t, s, "web")
	mustHost(t, s, "db")
	mustService(t, s, "web", "http")
	mustService(t, s, "db", "mysql")
	mustService(t, s, "web", "disk")

	g, err := s.AddServiceGroup(ServiceGroupSpec{Name: "prod"})
	require.NoError(t, err)
	for _, m := range [][2]string{{"web", "http"}, {"db", "mysql"}, {"web", "disk"}} {
		require.NoError(t, s.AddServiceToServiceGroup(g, m[0], m[1]))
	}

	var got [][2]string
	for _, m := range g.Members() {
		got = append(got, [2]string{m.HostName(), m.Description()})
	}
	assert.Equal(t, [][2]string{{"web", "disk"}, {"db", "mysql"}, {"web", "http"}}, got)
}

func TestHostGroupErrors(t *testing.T) {
	s := New(Counts{})
	mustHost(t, s, "a")
	g, err := s.AddHostGroup(HostGroupSpec{Name: "g"})
	require.NoError(t, err)

	_, err = s.AddHostGroup(HostGroupSpec{Name: "g"})
	assert.ErrorIs(t, err, objerrors.ErrDuplicateDefinition)
	_, err = s.AddHostGroup(HostGroupSpec{})
	assert.ErrorIs(t, err, objerrors.ErrInvalidInput)

	assert.ErrorIs(t, s.AddHostToHostGroup(g, "nope"), objerrors.ErrUnresolvedReference)
	assert.ErrorIs(t, s.AddHostToHostGroup(g, ""), objerrors.ErrInvalidInput)
	assert.ErrorIs(t, s.AddHostToHostGroup(nil, "a"), objerrors.ErrInvalidInput)
	assert.Empty(t, g.Members())
}

func TestServiceGroupMembersSorted(t *testing.T) {
	s := New(Counts{})
	mustHost(t, s, "web")
	mustHost(t, s, "db")
	mustService(t, s, "web", "http")
	mustService(t, s, "web", "disk")
	mustService(t, s, "db", "mysql")
	mustService(t, s, "db", "disk")

	g, err := s.AddServiceGroup(ServiceGroupSpec{Name: "prod"})
	require.NoError(t, err)
	for _, m := range [][2]string{{"web", "http"}, {"db", "mysql"}, {"web", "disk"}, {"db", "disk"}} {
		require.NoError(t, s.AddServiceToServiceGroup(g, m[0], m[1]))
	}

	var got [][2]string
	for _, m := range g.Members() {
		got = append(got, [2]string{m.HostName(), m.Description()})
	}
	assert.Equal(t, [][2]string{{"db", "disk"}, {"db", "mysql"}, {"web", "disk"}, {"web", "http"}}, got)

	http := s.FindService("web", "http")
	assert.Equal(t, []*ServiceGroup{g}, http.ServiceGroups())
	assert.True(t, IsServiceMemberOfServiceGroup(g, http))
	assert.True(t, IsHostMemberOfServiceGroup(g, s.FindHost("db")))

	assert.ErrorIs(t, s.AddServiceToServiceGroup(g, "web", "smtp"), objerrors.ErrUnresolvedReference)
	assert.ErrorIs(t, s.AddServiceToServiceGroup(g, "web", ""), objerrors.ErrInvalidInput)
}

func TestContactGroupMembership(t *testing.T) {
	s := New(Counts{})
	alice, err := s.AddContact(ContactSpec{Name: "alice"})
	require.NoError(t, err)
	bob, err := s.AddContact(ContactSpec{Name: "bob"})
	require.NoError(t, err)

	g, err := s.AddContactGroup(ContactGroupSpec{Name: "admins"})
	require.NoError(t, err)
	require.NoError(t, s.AddContactToContactGroup(g, "bob"))
	require.NoError(t, s.AddContactToContactGroup(g, "alice"))

	// newest member first, regardless of large-installation tweaks
	assert.Equal(t, []*Contact{alice, bob}, g.Members())
	assert.Equal(t, []*ContactGroup{g}, alice.ContactGroups())
	assert.True(t, IsContactMemberOfContactGroup(g, alice))

	assert.ErrorIs(t, s.AddContactToContactGroup(g, "carol"), objerrors.ErrUnresolvedReference)
	assert.ErrorIs(t, s.AddContactToContactGroup(nil, "bob"), objerrors.ErrInvalidInput)
}

func TestMembershipPredicates(t *testing.T) {
	s := New(Counts{})
	h := mustHost(t, s, "web")
	other := mustHost(t, s, "db")
	svc := mustService(t, s, "web", "http")

	direct, err := s.AddContact(ContactSpec{Name: "direct"})
	require.NoError(t, err)
	viaGroup, err := s.AddContact(ContactSpec{Name: "grouped"})
	require.NoError(t, err)
	escalated, err := s.AddContact(ContactSpec{Name: "oncall"})
	require.NoError(t, err)
	stranger, err := s.AddContact(ContactSpec{Name: "stranger"})
	require.NoError(t, err)

	g, err := s.AddContactGroup(ContactGroupSpec{Name: "ops"})
	require.NoError(t, err)
	require.NoError(t, s.AddContactToContactGroup(g, "grouped"))

	require.NoError(t, s.AddContactToHost(h, "direct"))
	require.NoError(t, s.AddContactGroupToHost(h, "ops"))
	require.NoError(t, s.AddContactToService(svc, "direct"))
	require.NoError(t, s.AddContactGroupToService(svc, "ops"))

	he, err := s.AddHostEscalation(HostEscalationSpec{HostName: "web"})
	require.NoError(t, err)
	require.NoError(t, s.AddContactToHostEscalation(he, "oncall"))
	se, err := s.AddServiceEscalation(ServiceEscalationSpec{HostName: "web", Description: "http"})
	require.NoError(t, err)
	require.NoError(t, s.AddContactGroupToServiceEscalation(se, "ops"))

	assert.True(t, IsContactForHost(h, direct))
	assert.True(t, IsContactForHost(h, viaGroup))
	assert.False(t, IsContactForHost(h, escalated))
	assert.False(t, IsContactForHost(other, direct))
	assert.True(t, IsEscalatedContactForHost(h, escalated))
	assert.False(t, IsEscalatedContactForHost(h, direct))

	assert.True(t, IsContactForService(svc, direct))
	assert.True(t, IsContactForService(svc, viaGroup))
	assert.False(t, IsContactForService(svc, stranger))
	assert.True(t, IsEscalatedContactForService(svc, viaGroup))
	assert.False(t, IsEscalatedContactForService(svc, escalated))

	assert.False(t, IsContactForHost(nil, direct))
	assert.False(t, IsContactForHost(h, nil))
	assert.False(t, IsEscalatedContactForHost(nil, escalated))
	assert.False(t, IsContactForService(nil, direct))
	assert.False(t, IsEscalatedContactForService(svc, nil))
	assert.False(t, IsHostMemberOfHostGroup(nil, h))
	assert.False(t, IsServiceMemberOfServiceGroup(nil, svc))
	assert.False(t, IsHostMemberOfServiceGroup(nil, h))
	assert.False(t, IsContactMemberOfContactGroup(g, nil))

	assert.ErrorIs(t, s.AddContactToHost(h, "ghost"), objerrors.ErrUnresolvedReference)
	assert.ErrorIs(t, s.AddContactGroupToHost(h, ""), objerrors.ErrInvalidInput)
}

func TestHostServicesValue(t *testing.T) {
	s := New(Counts{})
	h := mustHost(t, s, "web")
	for _, v := range []uint{3, 4} {
		spec := serviceSpec("web", "svc")
		spec.Description = "svc" + string(rune('a'+v))
		spec.HourlyValue = v
		_, err := s.AddService(spec)
		require.NoError(t, err)
	}
	assert.Equal(t, uint(7), HostServicesValue(h))
	assert.Equal(t, uint(7), h.HourlyValue)
	assert.Zero(t, HostServicesValue(nil))
}
