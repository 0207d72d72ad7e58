package objects

import (
	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

// HostEscalation widens the notified contacts of a host for a range of
// notification numbers
type HostEscalation struct {
	id                   int
	Host                 *Host
	FirstNotification    int
	LastNotification     int
	NotificationInterval float64
	EscalationPeriod     *TimePeriod
	EscalationOptions    Options
	contactTargets
}

func (e *HostEscalation) ID() int          { return e.id }
func (e *HostEscalation) HostName() string { return e.Host.Name() }

// ServiceEscalation widens the notified contacts of a service for a range
// of notification numbers
type ServiceEscalation struct {
	id                   int
	Service              *Service
	FirstNotification    int
	LastNotification     int
	NotificationInterval float64
	EscalationPeriod     *TimePeriod
	EscalationOptions    Options
	contactTargets
}

func (e *ServiceEscalation) ID() int             { return e.id }
func (e *ServiceEscalation) HostName() string    { return e.Service.HostName() }
func (e *ServiceEscalation) Description() string { return e.Service.Description() }

// HostEscalationSpec holds the fields of a hostescalation definition
type HostEscalationSpec struct {
	HostName             string
	FirstNotification    int
	LastNotification     int
	NotificationInterval float64
	EscalationPeriod     string
	EscalationOptions    Options
}

// ServiceEscalationSpec holds the fields of a serviceescalation definition
type ServiceEscalationSpec struct {
	HostName             string
	Description          string
	FirstNotification    int
	LastNotification     int
	NotificationInterval float64
	EscalationPeriod     string
	EscalationOptions    Options
}

// AddHostEscalation creates an escalation and attaches it to its host
func (s *Store) AddHostEscalation(spec HostEscalationSpec) (*HostEscalation, error) {
	if spec.HostName == "" {
		return nil, reject(objerrors.NewInvalidInput(KindHostEscalation, "", "host_name", "host name is empty"))
	}
	h := s.FindHost(spec.HostName)
	if h == nil {
		return nil, reject(objerrors.NewUnresolvedReference(KindHostEscalation, spec.HostName, "host_name", KindHost, spec.HostName))
	}
	tp, err := s.findPeriod(KindHostEscalation, spec.HostName, "escalation_period", spec.EscalationPeriod)
	if err != nil {
		return nil, err
	}

	e := &HostEscalation{
		Host:                 h,
		FirstNotification:    spec.FirstNotification,
		LastNotification:     spec.LastNotification,
		NotificationInterval: max(spec.NotificationInterval, 0),
		EscalationPeriod:     tp,
		EscalationOptions:    spec.EscalationOptions,
	}
	h.escalations = append(h.escalations, e)
	e.id = s.hostEscalations.add(e)
	s.resolved = false
	return e, nil
}

// AddServiceEscalation creates an escalation and attaches it to its service
func (s *Store) AddServiceEscalation(spec ServiceEscalationSpec) (*ServiceEscalation, error) {
	key := spec.HostName + ";" + spec.Description
	if spec.HostName == "" || spec.Description == "" {
		return nil, reject(objerrors.NewInvalidInput(KindServiceEscalation, key, "service_description", "host name or description is empty"))
	}
	svc := s.FindService(spec.HostName, spec.Description)
	if svc == nil {
		return nil, reject(objerrors.NewUnresolvedReference(KindServiceEscalation, key, "service_description", KindService, key))
	}
	tp, err := s.findPeriod(KindServiceEscalation, key, "escalation_period", spec.EscalationPeriod)
	if err != nil {
		return nil, err
	}

	e := &ServiceEscalation{
		Service:              svc,
		FirstNotification:    spec.FirstNotification,
		LastNotification:     spec.LastNotification,
		NotificationInterval: max(spec.NotificationInterval, 0),
		EscalationPeriod:     tp,
		EscalationOptions:    spec.EscalationOptions,
	}
	svc.escalations = append(svc.escalations, e)
	e.id = s.serviceEscalations.add(e)
	s.resolved = false
	return e, nil
}

// AddContactToHostEscalation attaches a contact by name
func (s *Store) AddContactToHostEscalation(e *HostEscalation, contactName string) error {
	if e == nil {
		return reject(objerrors.NewInvalidInput(KindHostEscalation, "", "contacts", "escalation is nil"))
	}
	return s.addContactTo(&e.contactTargets, KindHostEscalation, e.HostName(), contactName)
}

// AddContactGroupToHostEscalation attaches a contact group by name
func (s *Store) AddContactGroupToHostEscalation(e *HostEscalation, groupName string) error {
	if e == nil {
		return reject(objerrors.NewInvalidInput(KindHostEscalation, "", "contact_groups", "escalation is nil"))
	}
	return s.addContactGroupTo(&e.contactTargets, KindHostEscalation, e.HostName(), groupName)
}

// AddContactToServiceEscalation attaches a contact by name
func (s *Store) AddContactToServiceEscalation(e *ServiceEscalation, contactName string) error {
	if e == nil {
		return reject(objerrors.NewInvalidInput(KindServiceEscalation, "", "contacts", "escalation is nil"))
	}
	return s.addContactTo(&e.contactTargets, KindServiceEscalation, e.Service.key(), contactName)
}

// AddContactGroupToServiceEscalation attaches a contact group by name
func (s *Store) AddContactGroupToServiceEscalation(e *ServiceEscalation, groupName string) error {
	if e == nil {
		return reject(objerrors.NewInvalidInput(KindServiceEscalation, "", "contact_groups", "escalation is nil"))
	}
	return s.addContactGroupTo(&e.contactTargets, KindServiceEscalation, e.Service.key(), groupName)
}
