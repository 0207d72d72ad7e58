package objects

import "slices"

// IsHostImmediateChildOfHost reports whether child lists parent among its
// resolved parents. A nil parent asks whether child is a top-level host.
func IsHostImmediateChildOfHost(parent, child *Host) bool {
	if child == nil {
		return false
	}
	if parent == nil {
		return len(child.parentHosts) == 0
	}
	for _, ref := range child.parentHosts {
		if ref.Host == parent {
			return true
		}
	}
	return false
}

// IsHostImmediateParentOfHost is IsHostImmediateChildOfHost with the
// arguments swapped
func IsHostImmediateParentOfHost(child, parent *Host) bool {
	return IsHostImmediateChildOfHost(parent, child)
}

func IsHostMemberOfHostGroup(g *HostGroup, h *Host) bool {
	if g == nil || h == nil {
		return false
	}
	for _, m := range g.members {
		if m.Host == h {
			return true
		}
	}
	return false
}

// IsHostMemberOfServiceGroup reports whether any service of h is in g
func IsHostMemberOfServiceGroup(g *ServiceGroup, h *Host) bool {
	if g == nil || h == nil {
		return false
	}
	for _, m := range g.members {
		if m.Service != nil && m.Service.host == h {
			return true
		}
	}
	return false
}

func IsServiceMemberOfServiceGroup(g *ServiceGroup, svc *Service) bool {
	if g == nil || svc == nil {
		return false
	}
	for _, m := range g.members {
		if m.Service == svc {
			return true
		}
	}
	return false
}

func IsContactMemberOfContactGroup(g *ContactGroup, c *Contact) bool {
	if g == nil || c == nil {
		return false
	}
	return slices.Contains(g.members, c)
}

// IsContactForHost reports whether c is attached to h directly or through
// one of its contact groups
func IsContactForHost(h *Host, c *Contact) bool {
	if h == nil || c == nil {
		return false
	}
	return h.hasContact(c)
}

// IsEscalatedContactForHost checks the contacts of every escalation of h
func IsEscalatedContactForHost(h *Host, c *Contact) bool {
	if h == nil || c == nil {
		return false
	}
	for _, e := range h.escalations {
		if e.hasContact(c) {
			return true
		}
	}
	return false
}

// IsContactForService reports whether c is attached to svc directly or
// through one of its contact groups
func IsContactForService(svc *Service, c *Contact) bool {
	if svc == nil || c == nil {
		return false
	}
	return svc.hasContact(c)
}

// IsEscalatedContactForService checks the contacts of every escalation of svc
func IsEscalatedContactForService(svc *Service, c *Contact) bool {
	if svc == nil || c == nil {
		return false
	}
	for _, e := range svc.escalations {
		if e.hasContact(c) {
			return true
		}
	}
	return false
}

// HostServicesValue recomputes the summed hourly value of h's services
func HostServicesValue(h *Host) uint {
	if h == nil {
		return 0
	}
	var total uint
	for _, svc := range h.services {
		total += svc.HourlyValue
	}
	return total
}
