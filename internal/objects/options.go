package objects

import (
	"fmt"
	"strings"
)

// HostState is the state of a host check result
type HostState int

const (
	HostUp          HostState = 0
	HostDown        HostState = 1
	HostUnreachable HostState = 2
)

// ServiceState is the state of a service check result
type ServiceState int

const (
	ServiceOK       ServiceState = 0
	ServiceWarning  ServiceState = 1
	ServiceCritical ServiceState = 2
	ServiceUnknown  ServiceState = 3
)

// CheckType tells whether a result came from a scheduled or a submitted check
type CheckType int

const (
	CheckTypeActive  CheckType = 0
	CheckTypePassive CheckType = 1
)

// StateType distinguishes soft (still retrying) from hard states
type StateType int

const (
	SoftState StateType = 0
	HardState StateType = 1
)

// DependencyType selects what a dependency suppresses
type DependencyType int

const (
	NotificationDependency DependencyType = 1
	ExecutionDependency    DependencyType = 2
)

func (t DependencyType) String() string {
	switch t {
	case NotificationDependency:
		return "notification"
	case ExecutionDependency:
		return "execution"
	}
	return fmt.Sprintf("DependencyType(%d)", int(t))
}

// Options is a bitmask of state flags. Host and service bits overlap by
// value: OptDown and OptWarning are the same bit, and so on.
type Options uint32

const (
	OptNothing Options = 0
	OptAll     Options = ^Options(0)

	OptOK          Options = 1 << 0
	OptUp          Options = OptOK
	OptRecovery    Options = OptOK
	OptDown        Options = 1 << 1
	OptWarning     Options = 1 << 1
	OptUnreachable Options = 1 << 2
	OptCritical    Options = 1 << 2
	OptUnknown     Options = 1 << 3
	OptPending     Options = 1 << 4
	OptFlapping    Options = 1 << 5
	OptDowntime    Options = 1 << 6
	OptDisabled    Options = 1 << 15
)

// Has reports whether every bit of f is set
func (o Options) Has(f Options) bool {
	return o&f == f
}

// FlagCode binds an option bit to its one-letter configuration code
type FlagCode struct {
	Opt  Options
	Code byte
	Name string
}

// ServiceFlags is the letter table for service state options, in output order
var ServiceFlags = []FlagCode{
	{OptWarning, 'w', "warning"},
	{OptUnknown, 'u', "unknown"},
	{OptCritical, 'c', "critical"},
	{OptFlapping, 'f', "flapping"},
	{OptDowntime, 's', "downtime"},
	{OptOK, 'o', "ok"},
	{OptRecovery, 'r', "recovery"},
	{OptPending, 'p', "pending"},
}

// HostFlags is the letter table for host state options, in output order
var HostFlags = []FlagCode{
	{OptDown, 'd', "down"},
	{OptUnreachable, 'u', "unreachable"},
	{OptFlapping, 'f', "flapping"},
	{OptRecovery, 'r', "recovery"},
	{OptDowntime, 's', "downtime"},
	{OptPending, 'p', "pending"},
}

// ParseOptions converts a comma-separated letter list such as "d,u,r" into
// a mask using table. "n" means no options and "a" means all; both 'o' and
// 'r' select the OK/recovery bit.
func ParseOptions(s string, table []FlagCode) (Options, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return OptNothing, nil
	}

	var opts Options
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		switch tok {
		case "":
			continue
		case "n", "none":
			opts = OptNothing
			continue
		case "a", "all":
			opts = OptAll
			continue
		case "o", "r":
			opts |= OptOK
			continue
		}
		if len(tok) != 1 {
			return 0, fmt.Errorf("invalid option '%s'", tok)
		}
		found := false
		for _, fc := range table {
			if fc.Code == tok[0] {
				opts |= fc.Opt
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("invalid option '%s'", tok)
		}
	}
	return opts, nil
}

// HostStateName returns the display name of a host state
func HostStateName(s HostState) string {
	switch s {
	case HostUp:
		return "UP"
	case HostDown:
		return "DOWN"
	case HostUnreachable:
		return "UNREACHABLE"
	}
	return "(unknown)"
}

// ServiceStateName returns the display name of a service state
func ServiceStateName(s ServiceState) string {
	switch s {
	case ServiceOK:
		return "OK"
	case ServiceWarning:
		return "WARNING"
	case ServiceCritical:
		return "CRITICAL"
	case ServiceUnknown:
		return "UNKNOWN"
	}
	return "(unknown)"
}

// ParseHostState accepts the initial_state letters o/u/d
func ParseHostState(s string) (HostState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "o", "up":
		return HostUp, nil
	case "d", "down":
		return HostDown, nil
	case "u", "unreachable":
		return HostUnreachable, nil
	}
	return 0, fmt.Errorf("invalid host state '%s'", s)
}

// ParseServiceState accepts the initial_state letters o/w/u/c
func ParseServiceState(s string) (ServiceState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "o", "ok":
		return ServiceOK, nil
	case "w", "warning":
		return ServiceWarning, nil
	case "u", "unknown":
		return ServiceUnknown, nil
	case "c", "critical":
		return ServiceCritical, nil
	}
	return 0, fmt.Errorf("invalid service state '%s'", s)
}
