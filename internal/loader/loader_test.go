package loader

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	objerrors "github.com/standardbeagle/objstore/internal/errors"
	"github.com/standardbeagle/objstore/internal/objects"
)

var baseFiles = map[string]string{
	"common/periods.yaml": `
timeperiods:
  - timeperiod_name: 24x7
commands:
  - command_name: check_ping
    command_line: /usr/lib/nagios/check_ping
contacts:
  - contact_name: alice
    host_notification_options: d,u,r
    service_notification_options: w,c,r
    host_notification_period: 24x7
    service_notification_period: 24x7
contactgroups:
  - contactgroup_name: admins
    members: [alice]
`,
	"hosts/hosts.yaml": `
hosts:
  - host_name: router
    max_check_attempts: 1
    check_period: 24x7
  - host_name: web01
    parents: [router]
    max_check_attempts: 3
    initial_state: d
    contact_groups: [admins]
    custom_variables:
      _ZONE: dmz
      _RACK: r1
hostgroups:
  - hostgroup_name: web
    members: [web01, router]
`,
	"services/services.toml": `
[[services]]
host_name = "web01"
service_description = "PING"
check_command = "check_ping"
max_check_attempts = 3

[[services]]
host_name = "web01"
service_description = "HTTP"
check_command = "check_ping"
max_check_attempts = 3
contacts = ["alice"]

  [[services.parents]]
  service_description = "PING"

[[servicegroups]]
servicegroup_name = "frontend"

  [[servicegroups.members]]
  host_name = "web01"
  service_description = "HTTP"

[[hostdependencies]]
dependent_host_name = "web01"
host_name = "router"
failure_options = "d,u"

[[hostdependencies]]
dependent_host_name = "web01"
host_name = "router"
failure_options = "d,u"

[[serviceescalations]]
host_name = "web01"
service_description = "HTTP"
first_notification = 2
last_notification = 5
escalation_period = "24x7"
contact_groups = ["admins"]
`,
}

func loadTree(t *testing.T, files map[string]string) (*objects.Store, *Report) {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, files)

	store, report, err := Load(context.Background(), Options{
		Root:    root,
		Include: []string{"**/*.yaml", "**/*.toml"},
		Workers: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { store.Free() })
	return store, report
}

func TestLoadBuildsResolvedStore(t *testing.T) {
	store, report := loadTree(t, baseFiles)

	require.NoError(t, report.Err())
	assert.True(t, store.Resolved())
	assert.Len(t, report.Files, 3)
	assert.Equal(t, 2, report.Counts.Hosts)
	assert.Equal(t, 2, report.Created.Hosts)
	assert.Equal(t, 1, report.Created.HostDependencies)
	assert.Equal(t, 1, report.Duplicates)

	web := store.FindHost("web01")
	router := store.FindHost("router")
	require.NotNil(t, web)
	require.NotNil(t, router)

	assert.True(t, objects.IsHostImmediateChildOfHost(router, web))
	assert.Equal(t, objects.HostDown, web.InitialState)
	assert.Equal(t, 3, web.CurrentAttempt)
	assert.True(t, web.ChecksEnabled, "toggles default on")
	assert.True(t, web.NotificationOptions.Has(objects.OptDown))

	// custom variables are applied in key order
	vars := web.CustomVariables()
	require.Len(t, vars, 2)
	assert.Equal(t, "_RACK", vars[0].Name)
	assert.Equal(t, "_ZONE", vars[1].Name)

	alice := store.FindContact("alice")
	require.NotNil(t, alice)
	assert.True(t, objects.IsContactForHost(web, alice), "via contact group")

	http := store.FindService("web01", "HTTP")
	require.NotNil(t, http)
	require.Len(t, http.Parents(), 1)
	assert.True(t, http.Parents()[0].Resolved())
	assert.True(t, objects.IsContactForService(http, alice))
	assert.True(t, objects.IsEscalatedContactForService(http, alice))

	assert.True(t, objects.IsServiceMemberOfServiceGroup(store.FindServiceGroup("frontend"), http))
	assert.True(t, objects.IsHostMemberOfHostGroup(store.FindHostGroup("web"), router))
	assert.Len(t, store.HostDependencies(), 1)
}

func TestLoadCollectsErrorsAndContinues(t *testing.T) {
	files := map[string]string{
		"a.yaml": `
timeperiods:
  - timeperiod_name: workhours
hosts:
  - host_name: db01
    max_check_attempts: 2
    check_period: workhour
  - host_name: db02
    max_check_attempts: 0
  - host_name: db03
    max_check_attempts: 1
    parents: [core-switch]
  - host_name: db03
    max_check_attempts: 1
`,
		"broken.yaml": "hosts: [",
	}
	store, report := loadTree(t, files)

	err := report.Err()
	require.Error(t, err)
	assert.False(t, report.Fatal())

	assert.Equal(t, 1, report.Created.Hosts, "only db03 survives")
	assert.NotNil(t, store.FindHost("db03"))
	assert.True(t, store.Resolved())

	assert.ErrorIs(t, err, objerrors.ErrUnresolvedReference)
	assert.ErrorIs(t, err, objerrors.ErrInvalidInput)
	assert.ErrorIs(t, err, objerrors.ErrDuplicateDefinition)

	var derr *objerrors.DecodeError
	assert.ErrorAs(t, err, &derr)
	assert.Equal(t, "broken.yaml", filepath.Base(derr.FilePath))

	// the unknown period gets a suggestion, the unknown parent does not
	var suggested []string
	for _, e := range report.Errors {
		var oe *objerrors.ObjectError
		if errors.As(e, &oe) && oe.Suggestion != "" {
			suggested = append(suggested, oe.Reference+"->"+oe.Suggestion)
		}
	}
	assert.Equal(t, []string{"workhour->workhours"}, suggested)
}

func TestBuildRejectsBadOptions(t *testing.T) {
	files := []*File{{
		Hosts: []HostRecord{
			{Name: "a", MaxCheckAttempts: 1, NotificationOptions: "d,x"},
			{Name: "b", MaxCheckAttempts: 1, InitialState: "sideways"},
			{Name: "c", MaxCheckAttempts: 1, Coords2D: []int{1}},
		},
		HostDependencies: []HostDependencyRecord{
			{DependentHostName: "a", HostName: "b", Type: "sometimes"},
		},
	}}

	store, report := Build(files, false)
	defer store.Free()

	assert.Zero(t, report.Created.Hosts)
	assert.Equal(t, 4, report.Rejected)
	for _, err := range report.Errors {
		assert.ErrorIs(t, err, objerrors.ErrInvalidInput)
	}
}

func TestBuildLargeInstallation(t *testing.T) {
	files := []*File{{
		Hosts: []HostRecord{
			{Name: "zeta", MaxCheckAttempts: 1},
			{Name: "alpha", MaxCheckAttempts: 1},
		},
		HostGroups: []HostGroupRecord{{Name: "all", Members: []string{"zeta", "alpha"}}},
	}}

	store, _ := Build(files, true)
	defer store.Free()

	members := store.FindHostGroup("all").Members()
	require.Len(t, members, 2)
	assert.Equal(t, "alpha", members[0].Name(), "last listed member comes first")
}

func TestLoadCancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, baseFiles)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Load(ctx, Options{Root: root, Include: []string{"**/*.yaml"}, Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
