package objects

import (
	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

// Host is a monitored host
type Host struct {
	id          int
	name        Name
	displayName OptionalName
	alias       OptionalName
	address     OptionalName

	CheckPeriod        *TimePeriod
	NotificationPeriod *TimePeriod
	CheckCommand       string
	EventHandler       string

	InitialState           HostState
	CheckInterval          float64
	RetryInterval          float64
	MaxAttempts            int
	NotificationOptions    Options
	NotificationInterval   float64
	FirstNotificationDelay float64
	FlapDetectionOptions   Options
	StalkingOptions        Options
	LowFlapThreshold       float64
	HighFlapThreshold      float64
	FreshnessThreshold     int
	HourlyValue            uint

	NotificationsEnabled       bool
	ChecksEnabled              bool
	AcceptPassiveChecks        bool
	EventHandlerEnabled        bool
	FlapDetectionEnabled       bool
	ProcessPerformanceData     bool
	CheckFreshness             bool
	Obsess                     bool
	RetainStatusInformation    bool
	RetainNonStatusInformation bool

	Notes          string
	NotesURL       string
	ActionURL      string
	IconImage      string
	IconImageAlt   string
	VRMLImage      string
	StatusmapImage string
	Coords2D       *[2]int
	Coords3D       *[3]float64

	// runtime state seeded from InitialState
	CurrentState   HostState
	LastState      HostState
	LastHardState  HostState
	CurrentAttempt int
	CheckType      CheckType
	StateType      StateType

	TotalServices int

	contactTargets
	parentHosts     []HostRef
	childHosts      []HostRef
	services        []*Service
	customVariables []CustomVariable
	hostGroups      []*HostGroup
	notifyDeps      []*HostDependency
	execDeps        []*HostDependency
	escalations     []*HostEscalation
	next            *Host
}

func (h *Host) ID() int          { return h.id }
func (h *Host) Name() string     { return h.name.String() }
func (h *Host) NameHandle() Name { return h.name }
func (h *Host) Next() *Host      { return h.next }

// DisplayName returns the display name, which defaults to the host name
func (h *Host) DisplayName() string { return h.displayName.Resolve(h.name) }

// Alias returns the alias, which defaults to the host name
func (h *Host) Alias() string { return h.alias.Resolve(h.name) }

// Address returns the address, which defaults to the host name
func (h *Host) Address() string { return h.address.Resolve(h.name) }

// DisplayNameField returns the display name field with its ownership
func (h *Host) DisplayNameField() OptionalName { return h.displayName }

// AliasField returns the alias field with its ownership
func (h *Host) AliasField() OptionalName { return h.alias }

// AddressField returns the address field with its ownership
func (h *Host) AddressField() OptionalName { return h.address }

// ParentHosts returns the parent references in attachment order
func (h *Host) ParentHosts() []HostRef { return h.parentHosts }

// ChildHosts returns the child back-references
func (h *Host) ChildHosts() []HostRef { return h.childHosts }

// ServiceList returns the services of this host in creation order
func (h *Host) ServiceList() []*Service { return h.services }

// CustomVariables returns the custom variables in attachment order
func (h *Host) CustomVariables() []CustomVariable { return h.customVariables }

// HostGroups returns the groups this host is a member of
func (h *Host) HostGroups() []*HostGroup { return h.hostGroups }

// NotifyDeps returns notification dependencies where h is the dependent
func (h *Host) NotifyDeps() []*HostDependency { return h.notifyDeps }

// ExecDeps returns execution dependencies where h is the dependent
func (h *Host) ExecDeps() []*HostDependency { return h.execDeps }

// Escalations returns the escalations of this host in creation order
func (h *Host) Escalations() []*HostEscalation { return h.escalations }

// HostSpec holds the fields of an expanded host definition. Empty strings
// mean "not supplied".
type HostSpec struct {
	Name                       string
	DisplayName                string
	Alias                      string
	Address                    string
	CheckPeriod                string
	NotificationPeriod         string
	CheckCommand               string
	EventHandler               string
	InitialState               HostState
	CheckInterval              float64
	RetryInterval              float64
	MaxAttempts                int
	NotificationOptions        Options
	NotificationInterval       float64
	FirstNotificationDelay     float64
	NotificationsEnabled       bool
	ChecksEnabled              bool
	AcceptPassiveChecks        bool
	EventHandlerEnabled        bool
	FlapDetectionEnabled       bool
	LowFlapThreshold           float64
	HighFlapThreshold          float64
	FlapDetectionOptions       Options
	StalkingOptions            Options
	ProcessPerformanceData     bool
	CheckFreshness             bool
	FreshnessThreshold         int
	Notes                      string
	NotesURL                   string
	ActionURL                  string
	IconImage                  string
	IconImageAlt               string
	VRMLImage                  string
	StatusmapImage             string
	Coords2D                   *[2]int
	Coords3D                   *[3]float64
	Obsess                     bool
	RetainStatusInformation    bool
	RetainNonStatusInformation bool
	HourlyValue                uint
}

// AddHost validates spec and creates a host
func (s *Store) AddHost(spec HostSpec) (*Host, error) {
	if spec.Name == "" {
		return nil, reject(objerrors.NewInvalidInput(KindHost, "", "host_name", "host name is empty"))
	}
	checkTP, err := s.findPeriod(KindHost, spec.Name, "check_period", spec.CheckPeriod)
	if err != nil {
		return nil, err
	}
	notifyTP, err := s.findPeriod(KindHost, spec.Name, "notification_period", spec.NotificationPeriod)
	if err != nil {
		return nil, err
	}

	switch {
	case spec.MaxAttempts <= 0:
		return nil, reject(objerrors.NewInvalidInput(KindHost, spec.Name, "max_check_attempts", "must be a positive integer"))
	case spec.CheckInterval < 0:
		return nil, reject(objerrors.NewInvalidInput(KindHost, spec.Name, "check_interval", "must not be negative"))
	case spec.NotificationInterval < 0:
		return nil, reject(objerrors.NewInvalidInput(KindHost, spec.Name, "notification_interval", "must not be negative"))
	case spec.FirstNotificationDelay < 0:
		return nil, reject(objerrors.NewInvalidInput(KindHost, spec.Name, "first_notification_delay", "must not be negative"))
	case spec.FreshnessThreshold < 0:
		return nil, reject(objerrors.NewInvalidInput(KindHost, spec.Name, "freshness_threshold", "must not be negative"))
	}

	h := &Host{
		name:                       s.names.Own(spec.Name),
		CheckPeriod:                checkTP,
		NotificationPeriod:         notifyTP,
		CheckCommand:               spec.CheckCommand,
		EventHandler:               spec.EventHandler,
		InitialState:               spec.InitialState,
		CheckInterval:              spec.CheckInterval,
		RetryInterval:              spec.RetryInterval,
		MaxAttempts:                spec.MaxAttempts,
		NotificationOptions:        spec.NotificationOptions,
		NotificationInterval:       spec.NotificationInterval,
		FirstNotificationDelay:     spec.FirstNotificationDelay,
		FlapDetectionOptions:       spec.FlapDetectionOptions,
		StalkingOptions:            spec.StalkingOptions,
		LowFlapThreshold:           spec.LowFlapThreshold,
		HighFlapThreshold:          spec.HighFlapThreshold,
		FreshnessThreshold:         spec.FreshnessThreshold,
		HourlyValue:                spec.HourlyValue,
		NotificationsEnabled:       spec.NotificationsEnabled,
		ChecksEnabled:              spec.ChecksEnabled,
		AcceptPassiveChecks:        spec.AcceptPassiveChecks,
		EventHandlerEnabled:        spec.EventHandlerEnabled,
		FlapDetectionEnabled:       spec.FlapDetectionEnabled,
		ProcessPerformanceData:     spec.ProcessPerformanceData,
		CheckFreshness:             spec.CheckFreshness,
		Obsess:                     spec.Obsess,
		RetainStatusInformation:    spec.RetainStatusInformation,
		RetainNonStatusInformation: spec.RetainNonStatusInformation,
		Notes:                      spec.Notes,
		NotesURL:                   spec.NotesURL,
		ActionURL:                  spec.ActionURL,
		IconImage:                  spec.IconImage,
		IconImageAlt:               spec.IconImageAlt,
		VRMLImage:                  spec.VRMLImage,
		StatusmapImage:             spec.StatusmapImage,
		Coords2D:                   spec.Coords2D,
		Coords3D:                   spec.Coords3D,
		CurrentState:               spec.InitialState,
		LastState:                  spec.InitialState,
		LastHardState:              spec.InitialState,
		CheckType:                  CheckTypeActive,
		StateType:                  HardState,
	}
	if spec.InitialState == HostUp {
		h.CurrentAttempt = 1
	} else {
		h.CurrentAttempt = spec.MaxAttempts
	}
	h.displayName = optionalName(s.names, spec.DisplayName)
	h.alias = optionalName(s.names, spec.Alias)
	h.address = optionalName(s.names, spec.Address)

	if err := s.hostIndex.Insert(h.Name(), "", h); err != nil {
		s.releaseHostNames(h)
		return nil, indexInsertError(KindHost, spec.Name, err)
	}

	if prev := s.hosts.last(); prev != nil {
		prev.next = h
	}
	h.id = s.hosts.add(h)
	return h, nil
}

// releaseHostNames gives back every name h owns and returns how many
func (s *Store) releaseHostNames(h *Host) int {
	n := 0
	if s.names.Release(h.name) {
		n++
	}
	for _, o := range []OptionalName{h.displayName, h.alias, h.address} {
		if o.release(s.names) {
			n++
		}
	}
	return n
}

// AddParentHost records name as a parent of h. The parent may be defined
// later; Resolve links it.
func (s *Store) AddParentHost(h *Host, parentName string) error {
	if h == nil || parentName == "" {
		return reject(objerrors.NewInvalidInput(KindHost, hostName(h), "parents", "host or parent host name is empty"))
	}
	if parentName == h.Name() {
		return reject(objerrors.NewInvalidInput(KindHost, h.Name(), "parents", "host cannot be a child/parent of itself"))
	}
	h.parentHosts = append(h.parentHosts, HostRef{name: parentName})
	return nil
}

// AddChildLink records child as a child of h
func (s *Store) AddChildLink(h, child *Host) error {
	if h == nil || child == nil {
		return reject(objerrors.NewInvalidInput(KindHost, hostName(h), "children", "host or child is nil"))
	}
	h.childHosts = append(h.childHosts, HostRef{Host: child})
	return nil
}

// AddServiceLink attaches svc to h and keeps the service totals current
func (s *Store) AddServiceLink(h *Host, svc *Service) error {
	if h == nil || svc == nil {
		return reject(objerrors.NewInvalidInput(KindHost, hostName(h), "services", "host or service is nil"))
	}
	h.services = append(h.services, svc)
	h.TotalServices++
	h.HourlyValue += svc.HourlyValue
	return nil
}

// AddContactToHost attaches a contact by name
func (s *Store) AddContactToHost(h *Host, contactName string) error {
	if h == nil {
		return reject(objerrors.NewInvalidInput(KindHost, "", "contacts", "host is nil"))
	}
	return s.addContactTo(&h.contactTargets, KindHost, h.Name(), contactName)
}

// AddContactGroupToHost attaches a contact group by name
func (s *Store) AddContactGroupToHost(h *Host, groupName string) error {
	if h == nil {
		return reject(objerrors.NewInvalidInput(KindHost, "", "contact_groups", "host is nil"))
	}
	return s.addContactGroupTo(&h.contactTargets, KindHost, h.Name(), groupName)
}

// AddCustomVariableToHost attaches a custom variable
func (s *Store) AddCustomVariableToHost(h *Host, name, value string) error {
	if h == nil {
		return reject(objerrors.NewInvalidInput(KindHost, "", "custom_variable", "host is nil"))
	}
	return addCustomVariable(&h.customVariables, KindHost, h.Name(), name, value)
}

func hostName(h *Host) string {
	if h == nil {
		return ""
	}
	return h.Name()
}
