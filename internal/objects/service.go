package objects

import (
	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

// Service is a check bound to exactly one host. Its key is the pair
// (host name, description).
type Service struct {
	id          int
	host        *Host
	description Name
	displayName OptionalName

	CheckPeriod        *TimePeriod
	NotificationPeriod *TimePeriod
	CheckCommand       string
	EventHandler       string

	InitialState           ServiceState
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

	IsVolatile                 bool
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

	Notes        string
	NotesURL     string
	ActionURL    string
	IconImage    string
	IconImageAlt string

	// runtime state seeded from InitialState
	CurrentState   ServiceState
	LastState      ServiceState
	LastHardState  ServiceState
	CurrentAttempt int
	CheckType      CheckType
	StateType      StateType

	contactTargets
	parents         []ServiceRef
	customVariables []CustomVariable
	serviceGroups   []*ServiceGroup
	notifyDeps      []*ServiceDependency
	execDeps        []*ServiceDependency
	escalations     []*ServiceEscalation
	next            *Service
}

func (svc *Service) ID() int        { return svc.id }
func (svc *Service) Host() *Host    { return svc.host }
func (svc *Service) Next() *Service { return svc.next }

// HostName returns the owning host's name. The text is borrowed from the host.
func (svc *Service) HostName() string { return svc.host.Name() }

// Description returns the service description
func (svc *Service) Description() string { return svc.description.String() }

// DescriptionHandle returns the owned description entry
func (svc *Service) DescriptionHandle() Name { return svc.description }

// DisplayName returns the display name, which defaults to the description
func (svc *Service) DisplayName() string { return svc.displayName.Resolve(svc.description) }

// DisplayNameField returns the display name field with its ownership
func (svc *Service) DisplayNameField() OptionalName { return svc.displayName }

// Parents returns the parent service references in attachment order
func (svc *Service) Parents() []ServiceRef { return svc.parents }

// CustomVariables returns the custom variables in attachment order
func (svc *Service) CustomVariables() []CustomVariable { return svc.customVariables }

// ServiceGroups returns the groups this service is a member of
func (svc *Service) ServiceGroups() []*ServiceGroup { return svc.serviceGroups }

// NotifyDeps returns notification dependencies where svc is the dependent
func (svc *Service) NotifyDeps() []*ServiceDependency { return svc.notifyDeps }

// ExecDeps returns execution dependencies where svc is the dependent
func (svc *Service) ExecDeps() []*ServiceDependency { return svc.execDeps }

// Escalations returns the escalations of this service in creation order
func (svc *Service) Escalations() []*ServiceEscalation { return svc.escalations }

// key renders "host;description" for diagnostics
func (svc *Service) key() string {
	return svc.HostName() + ";" + svc.Description()
}

// ServiceSpec holds the fields of an expanded service definition. Empty
// strings mean "not supplied".
type ServiceSpec struct {
	HostName                   string
	Description                string
	DisplayName                string
	CheckPeriod                string
	NotificationPeriod         string
	CheckCommand               string
	EventHandler               string
	InitialState               ServiceState
	MaxAttempts                int
	CheckInterval              float64
	RetryInterval              float64
	NotificationInterval       float64
	FirstNotificationDelay     float64
	NotificationOptions        Options
	NotificationsEnabled       bool
	IsVolatile                 bool
	EventHandlerEnabled        bool
	ChecksEnabled              bool
	AcceptPassiveChecks        bool
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
	RetainStatusInformation    bool
	RetainNonStatusInformation bool
	Obsess                     bool
	HourlyValue                uint
}

// AddService validates spec, creates a service and links it to its host
func (s *Store) AddService(spec ServiceSpec) (*Service, error) {
	key := spec.HostName + ";" + spec.Description
	if spec.HostName == "" {
		return nil, reject(objerrors.NewInvalidInput(KindService, key, "host_name", "host name is empty"))
	}
	h := s.FindHost(spec.HostName)
	if h == nil {
		return nil, reject(objerrors.NewUnresolvedReference(KindService, key, "host_name", KindHost, spec.HostName))
	}
	if spec.Description == "" {
		return nil, reject(objerrors.NewInvalidInput(KindService, key, "service_description", "service description is empty"))
	}
	if spec.CheckCommand == "" {
		return nil, reject(objerrors.NewInvalidInput(KindService, key, "check_command", "check command is empty"))
	}
	notifyTP, err := s.findPeriod(KindService, key, "notification_period", spec.NotificationPeriod)
	if err != nil {
		return nil, err
	}
	checkTP, err := s.findPeriod(KindService, key, "check_period", spec.CheckPeriod)
	if err != nil {
		return nil, err
	}

	switch {
	case spec.MaxAttempts <= 0:
		return nil, reject(objerrors.NewInvalidInput(KindService, key, "max_check_attempts", "must be a positive integer"))
	case spec.CheckInterval < 0:
		return nil, reject(objerrors.NewInvalidInput(KindService, key, "check_interval", "must not be negative"))
	case spec.RetryInterval <= 0:
		return nil, reject(objerrors.NewInvalidInput(KindService, key, "retry_interval", "must be positive"))
	case spec.NotificationInterval < 0:
		return nil, reject(objerrors.NewInvalidInput(KindService, key, "notification_interval", "must not be negative"))
	case spec.FirstNotificationDelay < 0:
		return nil, reject(objerrors.NewInvalidInput(KindService, key, "first_notification_delay", "must not be negative"))
	}

	svc := &Service{
		host:                       h,
		description:                s.names.Own(spec.Description),
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
		IsVolatile:                 spec.IsVolatile,
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
		CurrentState:               spec.InitialState,
		LastState:                  spec.InitialState,
		LastHardState:              spec.InitialState,
		CheckType:                  CheckTypeActive,
		StateType:                  HardState,
	}
	if spec.InitialState == ServiceOK {
		svc.CurrentAttempt = 1
	} else {
		svc.CurrentAttempt = spec.MaxAttempts
	}
	svc.displayName = optionalName(s.names, spec.DisplayName)

	// the index borrows the host's name and the service's own description
	if err := s.serviceIndex.Insert(h.Name(), svc.Description(), svc); err != nil {
		s.releaseServiceNames(svc)
		return nil, indexInsertError(KindService, key, err)
	}

	if err := s.AddServiceLink(h, svc); err != nil {
		return nil, err
	}

	if prev := s.services.last(); prev != nil {
		prev.next = svc
	}
	svc.id = s.services.add(svc)
	return svc, nil
}

// releaseServiceNames gives back every name svc owns and returns how many.
// The host name is borrowed and stays with the host.
func (s *Store) releaseServiceNames(svc *Service) int {
	n := 0
	if s.names.Release(svc.description) {
		n++
	}
	if svc.displayName.release(s.names) {
		n++
	}
	return n
}

// AddParentService records (hostName, description) as a parent of svc.
// Resolve links it once every service exists.
func (s *Store) AddParentService(svc *Service, hostName, description string) error {
	if svc == nil || hostName == "" || description == "" {
		return reject(objerrors.NewInvalidInput(KindService, serviceKey(svc), "parents", "service or parent reference is empty"))
	}
	svc.parents = append(svc.parents, ServiceRef{hostName: hostName, description: description})
	return nil
}

// AddContactToService attaches a contact by name
func (s *Store) AddContactToService(svc *Service, contactName string) error {
	if svc == nil {
		return reject(objerrors.NewInvalidInput(KindService, "", "contacts", "service is nil"))
	}
	return s.addContactTo(&svc.contactTargets, KindService, svc.key(), contactName)
}

// AddContactGroupToService attaches a contact group by name
func (s *Store) AddContactGroupToService(svc *Service, groupName string) error {
	if svc == nil {
		return reject(objerrors.NewInvalidInput(KindService, "", "contact_groups", "service is nil"))
	}
	return s.addContactGroupTo(&svc.contactTargets, KindService, svc.key(), groupName)
}

// AddCustomVariableToService attaches a custom variable
func (s *Store) AddCustomVariableToService(svc *Service, name, value string) error {
	if svc == nil {
		return reject(objerrors.NewInvalidInput(KindService, "", "custom_variable", "service is nil"))
	}
	return addCustomVariable(&svc.customVariables, KindService, svc.key(), name, value)
}

func serviceKey(svc *Service) string {
	if svc == nil {
		return ""
	}
	return svc.key()
}
