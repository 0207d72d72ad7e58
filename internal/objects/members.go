package objects

import (
	"slices"
	"strings"

	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

// HostRef is a membership node pointing at a host. Parent references start
// out holding only the name and get their Host filled in by Resolve.
type HostRef struct {
	name string
	Host *Host
}

// Name returns the referenced host name
func (r HostRef) Name() string {
	if r.Host != nil {
		return r.Host.Name()
	}
	return r.name
}

// Resolved reports whether the reference points at a host
func (r HostRef) Resolved() bool {
	return r.Host != nil
}

// ServiceRef is a membership node pointing at a service
type ServiceRef struct {
	hostName    string
	description string
	Service     *Service
}

// HostName returns the host part of the reference
func (r ServiceRef) HostName() string {
	if r.Service != nil {
		return r.Service.HostName()
	}
	return r.hostName
}

// Description returns the service description part of the reference
func (r ServiceRef) Description() string {
	if r.Service != nil {
		return r.Service.Description()
	}
	return r.description
}

// Resolved reports whether the reference points at a service
func (r ServiceRef) Resolved() bool {
	return r.Service != nil
}

// CustomVariable is a user-defined _NAME value pair
type CustomVariable struct {
	Name     string
	Value    string
	Modified bool
}

// contactTargets are the lists shared by every kind that notifies contacts
type contactTargets struct {
	contacts      []*Contact
	contactGroups []*ContactGroup
}

// ContactsList returns the directly attached contacts in attachment order
func (t *contactTargets) ContactsList() []*Contact {
	return t.contacts
}

// ContactGroupsList returns the attached contact groups in attachment order
func (t *contactTargets) ContactGroupsList() []*ContactGroup {
	return t.contactGroups
}

func (t *contactTargets) nodes() int {
	return len(t.contacts) + len(t.contactGroups)
}

func (t *contactTargets) release() {
	t.contacts = nil
	t.contactGroups = nil
}

func (s *Store) addContactTo(t *contactTargets, kind, owner, contactName string) error {
	if contactName == "" {
		return reject(objerrors.NewInvalidInput(kind, owner, "contacts", "contact name is empty"))
	}
	c := s.FindContact(contactName)
	if c == nil {
		return reject(objerrors.NewUnresolvedReference(kind, owner, "contacts", KindContact, contactName))
	}
	t.contacts = append(t.contacts, c)
	return nil
}

func (s *Store) addContactGroupTo(t *contactTargets, kind, owner, groupName string) error {
	if groupName == "" {
		return reject(objerrors.NewInvalidInput(kind, owner, "contact_groups", "contactgroup name is empty"))
	}
	g := s.FindContactGroup(groupName)
	if g == nil {
		return reject(objerrors.NewUnresolvedReference(kind, owner, "contact_groups", KindContactGroup, groupName))
	}
	t.contactGroups = append(t.contactGroups, g)
	return nil
}

// hasContact reports whether c is attached directly or through a group
func (t *contactTargets) hasContact(c *Contact) bool {
	if slices.Contains(t.contacts, c) {
		return true
	}
	for _, g := range t.contactGroups {
		if IsContactMemberOfContactGroup(g, c) {
			return true
		}
	}
	return false
}

func addCustomVariable(list *[]CustomVariable, kind, owner, name, value string) error {
	if name == "" {
		return reject(objerrors.NewInvalidInput(kind, owner, "custom_variable", "variable name is empty"))
	}
	*list = append(*list, CustomVariable{Name: name, Value: value})
	return nil
}

// insertHostSorted places ref by host name, after any equal names
func insertHostSorted(list []HostRef, ref HostRef) []HostRef {
	i := len(list)
	for j, m := range list {
		if ref.Name() < m.Name() {
			i = j
			break
		}
	}
	return slices.Insert(list, i, ref)
}

// insertServiceSorted places ref by host name, then description
func insertServiceSorted(list []ServiceRef, ref ServiceRef) []ServiceRef {
	i := len(list)
	for j, m := range list {
		c := strings.Compare(ref.HostName(), m.HostName())
		if c < 0 || (c == 0 && ref.Description() < m.Description()) {
			i = j
			break
		}
	}
	return slices.Insert(list, i, ref)
}
