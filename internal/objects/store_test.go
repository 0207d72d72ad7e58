package objects

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

func hostSpec(name string) HostSpec {
	return HostSpec{Name: name, MaxAttempts: 3, CheckInterval: 5, RetryInterval: 1}
}

func serviceSpec(host, desc string) ServiceSpec {
	return ServiceSpec{
		HostName:      host,
		Description:   desc,
		CheckCommand:  "check_" + desc,
		MaxAttempts:   3,
		CheckInterval: 5,
		RetryInterval: 1,
	}
}

func mustHost(t *testing.T, s *Store, name string) *Host {
	t.Helper()
	h, err := s.AddHost(hostSpec(name))
	require.NoError(t, err)
	return h
}

func mustService(t *testing.T, s *Store, host, desc string) *Service {
	t.Helper()
	svc, err := s.AddService(serviceSpec(host, desc))
	require.NoError(t, err)
	return svc
}

func TestIdentityArrayMatchesCreationOrder(t *testing.T) {
	s := New(Counts{Hosts: 5})

	var created []*Host
	for i := 0; i < 5; i++ {
		created = append(created, mustHost(t, s, fmt.Sprintf("host-%d", i)))
	}

	require.Equal(t, 5, s.Hosts().Len())
	for i, h := range created {
		assert.Equal(t, i, h.ID())
		assert.Same(t, h, s.Hosts().Get(i))
	}
	assert.Nil(t, s.Hosts().Get(5))
	assert.Nil(t, s.Hosts().Get(-1))

	// the linked view follows the array
	n := 0
	for h := s.HostList(); h != nil; h = h.Next() {
		assert.Same(t, created[n], h)
		n++
	}
	assert.Equal(t, 5, n)
}

func TestListHeadsFollowSlotZero(t *testing.T) {
	s := New(Counts{})
	assert.Nil(t, s.HostList())
	assert.Nil(t, s.ServiceList())
	assert.Nil(t, s.HostGroupList())

	h := mustHost(t, s, "first")
	mustHost(t, s, "second")
	assert.Same(t, h, s.HostList())

	g, err := s.AddHostGroup(HostGroupSpec{Name: "web"})
	require.NoError(t, err)
	assert.Same(t, g, s.HostGroupList())
}

func TestHostOptionalNamesAliasPrimary(t *testing.T) {
	s := New(Counts{Hosts: 2})

	h1 := mustHost(t, s, "h1")
	assert.Equal(t, "h1", h1.DisplayName())
	assert.Equal(t, "h1", h1.Alias())
	assert.Equal(t, "h1", h1.Address())
	assert.True(t, h1.DisplayNameField().IsAlias())
	assert.True(t, h1.AliasField().IsAlias())
	assert.True(t, h1.AddressField().IsAlias())

	spec := hostSpec("h2")
	spec.DisplayName = "Host Two"
	spec.Address = "10.0.0.2"
	h2, err := s.AddHost(spec)
	require.NoError(t, err)
	assert.Equal(t, "Host Two", h2.DisplayName())
	assert.Equal(t, "h2", h2.Alias())
	assert.Equal(t, "10.0.0.2", h2.Address())
	assert.False(t, h2.DisplayNameField().IsAlias())

	// h1 owns one name, h2 owns three
	assert.Equal(t, 4, s.Names().Live())

	st := s.Free()
	assert.Equal(t, 4, st.NamesReleased)
	assert.Zero(t, st.DoubleReleases)
	assert.Zero(t, s.Names().Live())
}

func TestAddHostDefaults(t *testing.T) {
	s := New(Counts{})

	up := mustHost(t, s, "up")
	assert.Equal(t, HostUp, up.CurrentState)
	assert.Equal(t, 1, up.CurrentAttempt)
	assert.Equal(t, CheckTypeActive, up.CheckType)
	assert.Equal(t, HardState, up.StateType)

	spec := hostSpec("down")
	spec.InitialState = HostDown
	spec.MaxAttempts = 7
	down, err := s.AddHost(spec)
	require.NoError(t, err)
	assert.Equal(t, HostDown, down.CurrentState)
	assert.Equal(t, HostDown, down.LastState)
	assert.Equal(t, HostDown, down.LastHardState)
	assert.Equal(t, 7, down.CurrentAttempt)
}

func TestAddHostValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*HostSpec)
		field  string
		target error
	}{
		{"empty name", func(h *HostSpec) { h.Name = "" }, "host_name", objerrors.ErrInvalidInput},
		{"zero attempts", func(h *HostSpec) { h.MaxAttempts = 0 }, "max_check_attempts", objerrors.ErrInvalidInput},
		{"negative check interval", func(h *HostSpec) { h.CheckInterval = -1 }, "check_interval", objerrors.ErrInvalidInput},
		{"negative notification interval", func(h *HostSpec) { h.NotificationInterval = -1 }, "notification_interval", objerrors.ErrInvalidInput},
		{"negative first delay", func(h *HostSpec) { h.FirstNotificationDelay = -0.5 }, "first_notification_delay", objerrors.ErrInvalidInput},
		{"negative freshness", func(h *HostSpec) { h.FreshnessThreshold = -1 }, "freshness_threshold", objerrors.ErrInvalidInput},
		{"unknown check period", func(h *HostSpec) { h.CheckPeriod = "24x8" }, "check_period", objerrors.ErrUnresolvedReference},
		{"unknown notification period", func(h *HostSpec) { h.NotificationPeriod = "never" }, "notification_period", objerrors.ErrUnresolvedReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Counts{})
			spec := hostSpec("h1")
			tt.mutate(&spec)

			h, err := s.AddHost(spec)
			assert.Nil(t, h)
			require.ErrorIs(t, err, tt.target)

			var oe *objerrors.ObjectError
			require.ErrorAs(t, err, &oe)
			assert.Equal(t, tt.field, oe.Field)
			assert.Zero(t, s.Hosts().Len())
			assert.Zero(t, s.Names().Live())
		})
	}
}

func TestHostPeriodsResolve(t *testing.T) {
	s := New(Counts{})
	tp, err := s.AddTimePeriod(TimePeriodSpec{Name: "24x7"})
	require.NoError(t, err)

	spec := hostSpec("h1")
	spec.CheckPeriod = "24x7"
	spec.NotificationPeriod = "24x7"
	h, err := s.AddHost(spec)
	require.NoError(t, err)
	assert.Same(t, tp, h.CheckPeriod)
	assert.Same(t, tp, h.NotificationPeriod)
	assert.Equal(t, "24x7", tp.Alias)
}

func TestDuplicateHostKeepsOriginal(t *testing.T) {
	s := New(Counts{})
	spec := hostSpec("h1")
	spec.Address = "10.0.0.1"
	first, err := s.AddHost(spec)
	require.NoError(t, err)

	spec.Address = "10.9.9.9"
	_, err = s.AddHost(spec)
	require.ErrorIs(t, err, objerrors.ErrDuplicateDefinition)

	assert.Same(t, first, s.FindHost("h1"))
	assert.Equal(t, "10.0.0.1", s.FindHost("h1").Address())
	assert.Equal(t, 1, s.GetHostCount())
	// the rejected host's names were given back
	assert.Equal(t, 2, s.Names().Live())
}

func TestAddServiceDuplicatePair(t *testing.T) {
	s := New(Counts{Hosts: 1, Services: 2})
	h1 := mustHost(t, s, "h1")

	ping := mustService(t, s, "h1", "ping")
	assert.Equal(t, "h1", ping.HostName())
	assert.Equal(t, "ping", ping.DisplayName())
	assert.True(t, ping.DisplayNameField().IsAlias())

	_, err := s.AddService(serviceSpec("h1", "ping"))
	require.ErrorIs(t, err, objerrors.ErrDuplicateDefinition)

	assert.Same(t, ping, s.FindService("h1", "ping"))
	assert.Equal(t, 1, s.GetServiceCount())
	assert.Equal(t, 1, h1.TotalServices)
	assert.Len(t, h1.ServiceList(), 1)
}

func TestAddServiceValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServiceSpec)
		field  string
		target error
	}{
		{"empty host", func(s *ServiceSpec) { s.HostName = "" }, "host_name", objerrors.ErrInvalidInput},
		{"unknown host", func(s *ServiceSpec) { s.HostName = "nope" }, "host_name", objerrors.ErrUnresolvedReference},
		{"empty description", func(s *ServiceSpec) { s.Description = "" }, "service_description", objerrors.ErrInvalidInput},
		{"empty check command", func(s *ServiceSpec) { s.CheckCommand = "" }, "check_command", objerrors.ErrInvalidInput},
		{"zero attempts", func(s *ServiceSpec) { s.MaxAttempts = 0 }, "max_check_attempts", objerrors.ErrInvalidInput},
		{"negative check interval", func(s *ServiceSpec) { s.CheckInterval = -1 }, "check_interval", objerrors.ErrInvalidInput},
		{"zero retry interval", func(s *ServiceSpec) { s.RetryInterval = 0 }, "retry_interval", objerrors.ErrInvalidInput},
		{"negative notification interval", func(s *ServiceSpec) { s.NotificationInterval = -1 }, "notification_interval", objerrors.ErrInvalidInput},
		{"negative first delay", func(s *ServiceSpec) { s.FirstNotificationDelay = -1 }, "first_notification_delay", objerrors.ErrInvalidInput},
		{"unknown check period", func(s *ServiceSpec) { s.CheckPeriod = "x" }, "check_period", objerrors.ErrUnresolvedReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Counts{})
			h := mustHost(t, s, "h1")
			spec := serviceSpec("h1", "ping")
			tt.mutate(&spec)

			svc, err := s.AddService(spec)
			assert.Nil(t, svc)
			require.ErrorIs(t, err, tt.target)

			var oe *objerrors.ObjectError
			require.ErrorAs(t, err, &oe)
			assert.Equal(t, tt.field, oe.Field)
			assert.Zero(t, s.GetServiceCount())
			assert.Zero(t, h.TotalServices)
		})
	}
}

func TestServiceLinkTotals(t *testing.T) {
	s := New(Counts{})
	h := mustHost(t, s, "h1")
	h.HourlyValue = 10

	for i, v := range []uint{5, 7} {
		spec := serviceSpec("h1", fmt.Sprintf("svc%d", i))
		spec.HourlyValue = v
		_, err := s.AddService(spec)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, h.TotalServices)
	assert.Equal(t, uint(22), h.HourlyValue)
	assert.Equal(t, uint(12), HostServicesValue(h))
	assert.Zero(t, HostServicesValue(nil))
}

func TestServiceInitialStateAttempts(t *testing.T) {
	s := New(Counts{})
	mustHost(t, s, "h1")

	spec := serviceSpec("h1", "disk")
	spec.InitialState = ServiceCritical
	spec.MaxAttempts = 4
	svc, err := s.AddService(spec)
	require.NoError(t, err)
	assert.Equal(t, 4, svc.CurrentAttempt)
	assert.Equal(t, ServiceCritical, svc.LastHardState)

	ok := mustService(t, s, "h1", "load")
	assert.Equal(t, 1, ok.CurrentAttempt)
}

func TestCollaborators(t *testing.T) {
	s := New(Counts{Contacts: 1, Commands: 1, TimePeriods: 1})

	_, err := s.AddTimePeriod(TimePeriodSpec{Name: "workhours", Alias: "Work Hours"})
	require.NoError(t, err)
	cmd, err := s.AddCommand(CommandSpec{Name: "check_ping", CommandLine: "/usr/lib/check_ping -H $HOSTADDRESS$"})
	require.NoError(t, err)
	c, err := s.AddContact(ContactSpec{Name: "alice", Email: "alice@example.com", HostNotificationPeriod: "workhours"})
	require.NoError(t, err)

	assert.Same(t, cmd, s.FindCommand("check_ping"))
	assert.Same(t, c, s.FindContact("alice"))
	assert.Equal(t, "alice", c.Alias)
	assert.Equal(t, "Work Hours", s.FindTimePeriod("workhours").Alias)

	_, err = s.AddContact(ContactSpec{Name: "alice"})
	assert.ErrorIs(t, err, objerrors.ErrDuplicateDefinition)
	_, err = s.AddContact(ContactSpec{Name: "bob", ServiceNotificationPeriod: "nights"})
	assert.ErrorIs(t, err, objerrors.ErrUnresolvedReference)
	_, err = s.AddCommand(CommandSpec{Name: "empty"})
	assert.ErrorIs(t, err, objerrors.ErrInvalidInput)

	require.NoError(t, s.AddCustomVariableToContact(c, "PHONE", "555-0100"))
	assert.Equal(t, []CustomVariable{{Name: "PHONE", Value: "555-0100"}}, c.CustomVariables())
}

func TestCustomVariables(t *testing.T) {
	s := New(Counts{})
	h := mustHost(t, s, "h1")
	svc := mustService(t, s, "h1", "ping")

	require.NoError(t, s.AddCustomVariableToHost(h, "RACK", "r12"))
	require.NoError(t, s.AddCustomVariableToHost(h, "EMPTY", ""))
	require.NoError(t, s.AddCustomVariableToService(svc, "SLA", "gold"))

	assert.Equal(t, []CustomVariable{{Name: "RACK", Value: "r12"}, {Name: "EMPTY"}}, h.CustomVariables())
	assert.Equal(t, "gold", svc.CustomVariables()[0].Value)

	err := s.AddCustomVariableToHost(h, "", "x")
	assert.ErrorIs(t, err, objerrors.ErrInvalidInput)
	assert.ErrorIs(t, s.AddCustomVariableToService(nil, "A", "b"), objerrors.ErrInvalidInput)
}
