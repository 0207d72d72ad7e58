package objects

import (
	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

// HostGroup is a named set of hosts
type HostGroup struct {
	id        int
	name      Name
	alias     OptionalName
	Notes     string
	NotesURL  string
	ActionURL string
	members   []HostRef
	next      *HostGroup
}

func (g *HostGroup) ID() int            { return g.id }
func (g *HostGroup) Name() string       { return g.name.String() }
func (g *HostGroup) Alias() string      { return g.alias.Resolve(g.name) }
func (g *HostGroup) Next() *HostGroup   { return g.next }
func (g *HostGroup) Members() []HostRef { return g.members }

// ServiceGroup is a named set of services
type ServiceGroup struct {
	id        int
	name      Name
	alias     OptionalName
	Notes     string
	NotesURL  string
	ActionURL string
	members   []ServiceRef
	next      *ServiceGroup
}

func (g *ServiceGroup) ID() int               { return g.id }
func (g *ServiceGroup) Name() string          { return g.name.String() }
func (g *ServiceGroup) Alias() string         { return g.alias.Resolve(g.name) }
func (g *ServiceGroup) Next() *ServiceGroup   { return g.next }
func (g *ServiceGroup) Members() []ServiceRef { return g.members }

// ContactGroup is a named set of contacts
type ContactGroup struct {
	id      int
	name    Name
	alias   OptionalName
	members []*Contact
	next    *ContactGroup
}

func (g *ContactGroup) ID() int             { return g.id }
func (g *ContactGroup) Name() string        { return g.name.String() }
func (g *ContactGroup) Alias() string       { return g.alias.Resolve(g.name) }
func (g *ContactGroup) Next() *ContactGroup { return g.next }
func (g *ContactGroup) Members() []*Contact { return g.members }

// HostGroupSpec holds the fields of a hostgroup definition
type HostGroupSpec struct {
	Name      string
	Alias     string
	Notes     string
	NotesURL  string
	ActionURL string
}

// ServiceGroupSpec holds the fields of a servicegroup definition
type ServiceGroupSpec struct {
	Name      string
	Alias     string
	Notes     string
	NotesURL  string
	ActionURL string
}

// ContactGroupSpec holds the fields of a contactgroup definition
type ContactGroupSpec struct {
	Name  string
	Alias string
}

// AddHostGroup creates a host group
func (s *Store) AddHostGroup(spec HostGroupSpec) (*HostGroup, error) {
	if spec.Name == "" {
		return nil, reject(objerrors.NewInvalidInput(KindHostGroup, "", "hostgroup_name", "hostgroup name is empty"))
	}

	g := &HostGroup{
		name:      s.names.Own(spec.Name),
		alias:     optionalName(s.names, spec.Alias),
		Notes:     spec.Notes,
		NotesURL:  spec.NotesURL,
		ActionURL: spec.ActionURL,
	}
	if err := s.hostGroupIndex.Insert(g.Name(), "", g); err != nil {
		s.names.Release(g.name)
		g.alias.release(s.names)
		return nil, indexInsertError(KindHostGroup, spec.Name, err)
	}

	if prev := s.hostGroups.last(); prev != nil {
		prev.next = g
	}
	g.id = s.hostGroups.add(g)
	return g, nil
}

// AddHostToHostGroup adds the named host to g and records g on the host
func (s *Store) AddHostToHostGroup(g *HostGroup, hostName string) error {
	if g == nil || hostName == "" {
		return reject(objerrors.NewInvalidInput(KindHostGroup, groupName(g), "members", "hostgroup or member is empty"))
	}
	h := s.FindHost(hostName)
	if h == nil {
		return reject(objerrors.NewUnresolvedReference(KindHostGroup, g.Name(), "members", KindHost, hostName))
	}

	h.hostGroups = append(h.hostGroups, g)

	ref := HostRef{Host: h}
	if s.largeInstallation {
		g.members = prepend(g.members, ref)
	} else {
		g.members = insertHostSorted(g.members, ref)
	}
	return nil
}

// AddServiceGroup creates a service group
func (s *Store) AddServiceGroup(spec ServiceGroupSpec) (*ServiceGroup, error) {
	if spec.Name == "" {
		return nil, reject(objerrors.NewInvalidInput(KindServiceGroup, "", "servicegroup_name", "servicegroup name is empty"))
	}

	g := &ServiceGroup{
		name:      s.names.Own(spec.Name),
		alias:     optionalName(s.names, spec.Alias),
		Notes:     spec.Notes,
		NotesURL:  spec.NotesURL,
		ActionURL: spec.ActionURL,
	}
	if err := s.serviceGroupIndex.Insert(g.Name(), "", g); err != nil {
		s.names.Release(g.name)
		g.alias.release(s.names)
		return nil, indexInsertError(KindServiceGroup, spec.Name, err)
	}

	if prev := s.serviceGroups.last(); prev != nil {
		prev.next = g
	}
	g.id = s.serviceGroups.add(g)
	return g, nil
}

// AddServiceToServiceGroup adds the named service to g and records g on
// the service
func (s *Store) AddServiceToServiceGroup(g *ServiceGroup, hostName, description string) error {
	if g == nil || hostName == "" || description == "" {
		var name string
		if g != nil {
			name = g.Name()
		}
		return reject(objerrors.NewInvalidInput(KindServiceGroup, name, "members", "servicegroup or member is empty"))
	}
	svc := s.FindService(hostName, description)
	if svc == nil {
		return reject(objerrors.NewUnresolvedReference(KindServiceGroup, g.Name(), "members", KindService, hostName+";"+description))
	}

	svc.serviceGroups = append(svc.serviceGroups, g)

	ref := ServiceRef{Service: svc}
	if s.largeInstallation {
		g.members = prepend(g.members, ref)
	} else {
		g.members = insertServiceSorted(g.members, ref)
	}
	return nil
}

// AddContactGroup creates a contact group
func (s *Store) AddContactGroup(spec ContactGroupSpec) (*ContactGroup, error) {
	if spec.Name == "" {
		return nil, reject(objerrors.NewInvalidInput(KindContactGroup, "", "contactgroup_name", "contactgroup name is empty"))
	}

	g := &ContactGroup{
		name:  s.names.Own(spec.Name),
		alias: optionalName(s.names, spec.Alias),
	}
	if err := s.contactGroupIndex.Insert(g.Name(), "", g); err != nil {
		s.names.Release(g.name)
		g.alias.release(s.names)
		return nil, indexInsertError(KindContactGroup, spec.Name, err)
	}

	if prev := s.contactGroups.last(); prev != nil {
		prev.next = g
	}
	g.id = s.contactGroups.add(g)
	return g, nil
}

// AddContactToContactGroup adds the named contact to g and records g on
// the contact
func (s *Store) AddContactToContactGroup(g *ContactGroup, contactName string) error {
	if g == nil || contactName == "" {
		var name string
		if g != nil {
			name = g.Name()
		}
		return reject(objerrors.NewInvalidInput(KindContactGroup, name, "members", "contactgroup or contact name is empty"))
	}
	c := s.FindContact(contactName)
	if c == nil {
		return reject(objerrors.NewUnresolvedReference(KindContactGroup, g.Name(), "members", KindContact, contactName))
	}

	g.members = prepend(g.members, c)
	c.contactGroups = append(c.contactGroups, g)
	return nil
}

// prepend puts v first; the newest member leads the list
func prepend[T any](list []T, v T) []T {
	list = append(list, v)
	copy(list[1:], list[:len(list)-1])
	list[0] = v
	return list
}

func groupName(g *HostGroup) string {
	if g == nil {
		return ""
	}
	return g.Name()
}
