// Package objects is the in-memory configuration object model of the
// monitoring engine: hosts, services, groups, dependencies and escalations,
// plus the contacts, time periods and commands they reference.
//
// A Store is built single-threaded by a loader calling the Add* entry points,
// finished by one call to Resolve, and then read concurrently without locks
// until Free tears it down. Nothing in this package is safe for concurrent
// mutation.
package objects

import (
	"github.com/standardbeagle/objstore/internal/debug"
	objerrors "github.com/standardbeagle/objstore/internal/errors"
	"github.com/standardbeagle/objstore/internal/keyindex"
)

// Object kind names used in errors, cache blocks and statistics
const (
	KindHost              = "host"
	KindService           = "service"
	KindHostGroup         = "hostgroup"
	KindServiceGroup      = "servicegroup"
	KindContactGroup      = "contactgroup"
	KindHostDependency    = "hostdependency"
	KindServiceDependency = "servicedependency"
	KindHostEscalation    = "hostescalation"
	KindServiceEscalation = "serviceescalation"
	KindContact           = "contact"
	KindTimePeriod        = "timeperiod"
	KindCommand           = "command"
)

// Counts is the number of objects of each kind, known before creation
// starts. It sizes the indexes and identity arrays; creating more objects
// than counted is allowed.
type Counts struct {
	Hosts               int
	Services            int
	HostGroups          int
	ServiceGroups       int
	ContactGroups       int
	HostDependencies    int
	ServiceDependencies int
	HostEscalations     int
	ServiceEscalations  int
	Contacts            int
	TimePeriods         int
	Commands            int
}

// Total returns the number of objects over every kind
func (c Counts) Total() int {
	return c.Hosts + c.Services + c.HostGroups + c.ServiceGroups + c.ContactGroups +
		c.HostDependencies + c.ServiceDependencies + c.HostEscalations + c.ServiceEscalations +
		c.Contacts + c.TimePeriods + c.Commands
}

// Option configures a Store
type Option func(*Store)

// WithLargeInstallationTweaks keeps group members in insertion order instead
// of sorting them on insert.
func WithLargeInstallationTweaks(enabled bool) Option {
	return func(s *Store) {
		s.largeInstallation = enabled
	}
}

// Store holds every configuration object of one load cycle
type Store struct {
	largeInstallation bool
	names             *NamePool

	hostIndex         *keyindex.Index[*Host]
	serviceIndex      *keyindex.Index[*Service]
	hostGroupIndex    *keyindex.Index[*HostGroup]
	serviceGroupIndex *keyindex.Index[*ServiceGroup]
	contactGroupIndex *keyindex.Index[*ContactGroup]
	contactIndex      *keyindex.Index[*Contact]
	timePeriodIndex   *keyindex.Index[*TimePeriod]
	commandIndex      *keyindex.Index[*Command]

	hosts              Registry[Host]
	services           Registry[Service]
	hostGroups         Registry[HostGroup]
	serviceGroups      Registry[ServiceGroup]
	contactGroups      Registry[ContactGroup]
	hostEscalations    Registry[HostEscalation]
	serviceEscalations Registry[ServiceEscalation]
	contacts           Registry[Contact]
	timePeriods        Registry[TimePeriod]
	commands           Registry[Command]

	// dependencies live only on their dependent until Resolve flattens them
	numHostDeps    int
	numServiceDeps int

	hostDepArray    []*HostDependency
	serviceDepArray []*ServiceDependency
	hostEscArray    []*HostEscalation
	serviceEscArray []*ServiceEscalation
	resolved        bool
}

// New creates a store sized for counts
func New(counts Counts, opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	s.Init(counts)
	return s
}

// Init (re)creates every index and identity array sized for counts.
// Any previous content must already have been released with Free.
func (s *Store) Init(counts Counts) {
	s.names = NewNamePool(counts.Total())

	s.hostIndex = keyindex.New[*Host](counts.Hosts)
	s.serviceIndex = keyindex.New[*Service](counts.Services)
	s.hostGroupIndex = keyindex.New[*HostGroup](counts.HostGroups)
	s.serviceGroupIndex = keyindex.New[*ServiceGroup](counts.ServiceGroups)
	s.contactGroupIndex = keyindex.New[*ContactGroup](counts.ContactGroups)
	s.contactIndex = keyindex.New[*Contact](counts.Contacts)
	s.timePeriodIndex = keyindex.New[*TimePeriod](counts.TimePeriods)
	s.commandIndex = keyindex.New[*Command](counts.Commands)

	s.hosts = newRegistry[Host](counts.Hosts)
	s.services = newRegistry[Service](counts.Services)
	s.hostGroups = newRegistry[HostGroup](counts.HostGroups)
	s.serviceGroups = newRegistry[ServiceGroup](counts.ServiceGroups)
	s.contactGroups = newRegistry[ContactGroup](counts.ContactGroups)
	s.hostEscalations = newRegistry[HostEscalation](counts.HostEscalations)
	s.serviceEscalations = newRegistry[ServiceEscalation](counts.ServiceEscalations)
	s.contacts = newRegistry[Contact](counts.Contacts)
	s.timePeriods = newRegistry[TimePeriod](counts.TimePeriods)
	s.commands = newRegistry[Command](counts.Commands)

	s.numHostDeps = 0
	s.numServiceDeps = 0
	s.hostDepArray = nil
	s.serviceDepArray = nil
	s.hostEscArray = nil
	s.serviceEscArray = nil
	s.resolved = false

	debug.LogObjects("initialized store for %d objects\n", counts.Total())
}

// LargeInstallationTweaks reports whether group members keep insertion order
func (s *Store) LargeInstallationTweaks() bool {
	return s.largeInstallation
}

// Names returns the pool owning every name of the store
func (s *Store) Names() *NamePool {
	return s.names
}

// Resolved reports whether Resolve has completed since the last Init
func (s *Store) Resolved() bool {
	return s.resolved
}

// Counts returns the current number of objects of each kind
func (s *Store) Counts() Counts {
	return Counts{
		Hosts:               s.hosts.Len(),
		Services:            s.services.Len(),
		HostGroups:          s.hostGroups.Len(),
		ServiceGroups:       s.serviceGroups.Len(),
		ContactGroups:       s.contactGroups.Len(),
		HostDependencies:    s.numHostDeps,
		ServiceDependencies: s.numServiceDeps,
		HostEscalations:     s.hostEscalations.Len(),
		ServiceEscalations:  s.serviceEscalations.Len(),
		Contacts:            s.contacts.Len(),
		TimePeriods:         s.timePeriods.Len(),
		Commands:            s.commands.Len(),
	}
}

// GetHostCount returns the number of hosts
func (s *Store) GetHostCount() int {
	return s.hosts.Len()
}

// GetServiceCount returns the number of services
func (s *Store) GetServiceCount() int {
	return s.services.Len()
}

// Identity arrays

func (s *Store) Hosts() *Registry[Host]                           { return &s.hosts }
func (s *Store) Services() *Registry[Service]                     { return &s.services }
func (s *Store) HostGroups() *Registry[HostGroup]                 { return &s.hostGroups }
func (s *Store) ServiceGroups() *Registry[ServiceGroup]           { return &s.serviceGroups }
func (s *Store) ContactGroups() *Registry[ContactGroup]           { return &s.contactGroups }
func (s *Store) HostEscalationRegistry() *Registry[HostEscalation] { return &s.hostEscalations }
func (s *Store) ServiceEscalationRegistry() *Registry[ServiceEscalation] {
	return &s.serviceEscalations
}
func (s *Store) Contacts() *Registry[Contact]       { return &s.contacts }
func (s *Store) TimePeriods() *Registry[TimePeriod] { return &s.timePeriods }
func (s *Store) Commands() *Registry[Command]       { return &s.commands }

// List heads are slot 0 of the identity arrays; there is no separate pointer
// to go stale.

func (s *Store) HostList() *Host                 { return s.hosts.First() }
func (s *Store) ServiceList() *Service           { return s.services.First() }
func (s *Store) HostGroupList() *HostGroup       { return s.hostGroups.First() }
func (s *Store) ServiceGroupList() *ServiceGroup { return s.serviceGroups.First() }
func (s *Store) ContactGroupList() *ContactGroup { return s.contactGroups.First() }
func (s *Store) ContactList() *Contact           { return s.contacts.First() }
func (s *Store) TimePeriodList() *TimePeriod     { return s.timePeriods.First() }
func (s *Store) CommandList() *Command           { return s.commands.First() }

// Lookups. Each returns nil when the key is absent or the store was freed.

func (s *Store) FindHost(name string) *Host {
	h, _ := s.hostIndex.Lookup(name, "")
	return h
}

func (s *Store) FindService(hostName, description string) *Service {
	svc, _ := s.serviceIndex.Lookup(hostName, description)
	return svc
}

func (s *Store) FindHostGroup(name string) *HostGroup {
	g, _ := s.hostGroupIndex.Lookup(name, "")
	return g
}

func (s *Store) FindServiceGroup(name string) *ServiceGroup {
	g, _ := s.serviceGroupIndex.Lookup(name, "")
	return g
}

func (s *Store) FindContactGroup(name string) *ContactGroup {
	g, _ := s.contactGroupIndex.Lookup(name, "")
	return g
}

func (s *Store) FindContact(name string) *Contact {
	c, _ := s.contactIndex.Lookup(name, "")
	return c
}

func (s *Store) FindTimePeriod(name string) *TimePeriod {
	tp, _ := s.timePeriodIndex.Lookup(name, "")
	return tp
}

func (s *Store) FindCommand(name string) *Command {
	c, _ := s.commandIndex.Lookup(name, "")
	return c
}

// reject logs a rejected call and returns err
func reject(err *objerrors.ObjectError) error {
	debug.LogObjects("%v\n", err)
	return err
}

// indexInsertError maps a keyindex failure onto the error taxonomy
func indexInsertError(kind, name string, err error) error {
	if err == keyindex.ErrDuplicateKey {
		return reject(objerrors.NewDuplicateDefinition(kind, name))
	}
	return reject(objerrors.NewIndexError(kind, name, err))
}

// findPeriod resolves an optional time period reference; "" means none
func (s *Store) findPeriod(kind, name, field, period string) (*TimePeriod, error) {
	if period == "" {
		return nil, nil
	}
	tp := s.FindTimePeriod(period)
	if tp == nil {
		return nil, reject(objerrors.NewUnresolvedReference(kind, name, field, KindTimePeriod, period))
	}
	return tp, nil
}
