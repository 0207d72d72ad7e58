package objects

import (
	"github.com/standardbeagle/objstore/internal/debug"
)

// TeardownStats summarizes one Free call
type TeardownStats struct {
	Objects        int // entities destroyed, dependencies included
	NamesReleased  int // owned name entries given back to the pool
	NodesReleased  int // relationship list nodes dropped
	DoubleReleases int // second releases refused by the pool; always 0 for a consistent store
}

// Free destroys every object of the store. Indexes go first so that no
// lookup can reach a half-destroyed object; then each kind is destroyed in
// an order where groups, escalations and dependencies still see their
// owning host or service. Counts are reset to zero. The store can be reused
// after Init.
func (s *Store) Free() TeardownStats {
	var st TeardownStats
	if s.names == nil {
		return st
	}
	doubleBefore := s.names.DoubleReleases()

	s.hostIndex.Destroy()
	s.serviceIndex.Destroy()
	s.hostGroupIndex.Destroy()
	s.serviceGroupIndex.Destroy()
	s.contactGroupIndex.Destroy()
	s.contactIndex.Destroy()
	s.timePeriodIndex.Destroy()
	s.commandIndex.Destroy()

	// host dependencies hang off their dependent host and are destroyed
	// after the services, so keep the hosts reachable until then
	hosts := s.hosts.items
	var hostDeps int
	for _, h := range hosts {
		hostDeps += len(h.notifyDeps) + len(h.execDeps)
		st.NodesReleased += len(h.parentHosts) + len(h.childHosts) + len(h.services) +
			h.contactTargets.nodes() + len(h.customVariables) + len(h.hostGroups) +
			len(h.notifyDeps) + len(h.execDeps) + len(h.escalations)
		st.NamesReleased += s.releaseHostNames(h)
		h.parentHosts, h.childHosts, h.services = nil, nil, nil
		h.contactTargets.release()
		h.customVariables, h.hostGroups, h.escalations = nil, nil, nil
		st.Objects++
	}
	s.hosts.reset()

	for _, g := range s.hostGroups.items {
		st.NodesReleased += len(g.members)
		st.NamesReleased += s.releaseGroupNames(g.name, g.alias)
		g.members = nil
		st.Objects++
	}
	s.hostGroups.reset()

	for _, g := range s.serviceGroups.items {
		st.NodesReleased += len(g.members)
		st.NamesReleased += s.releaseGroupNames(g.name, g.alias)
		g.members = nil
		st.Objects++
	}
	s.serviceGroups.reset()

	for _, g := range s.contactGroups.items {
		st.NodesReleased += len(g.members)
		st.NamesReleased += s.releaseGroupNames(g.name, g.alias)
		g.members = nil
		st.Objects++
	}
	s.contactGroups.reset()

	var serviceDeps int
	for _, svc := range s.services.items {
		serviceDeps += len(svc.notifyDeps) + len(svc.execDeps)
		st.NodesReleased += svc.contactTargets.nodes() + len(svc.customVariables) + len(svc.parents) +
			len(svc.serviceGroups) + len(svc.notifyDeps) + len(svc.execDeps) + len(svc.escalations)
		st.NamesReleased += s.releaseServiceNames(svc)
		svc.contactTargets.release()
		svc.customVariables, svc.parents, svc.serviceGroups, svc.escalations = nil, nil, nil, nil
		svc.notifyDeps, svc.execDeps = nil, nil
		st.Objects++
	}
	s.services.reset()

	for _, e := range s.serviceEscalations.items {
		st.NodesReleased += e.contactTargets.nodes()
		e.contactTargets.release()
		st.Objects++
	}
	s.serviceEscalations.reset()
	s.serviceEscArray = nil

	st.Objects += serviceDeps
	s.serviceDepArray = nil

	st.Objects += hostDeps
	for _, h := range hosts {
		h.notifyDeps, h.execDeps = nil, nil
	}
	s.hostDepArray = nil

	for _, e := range s.hostEscalations.items {
		st.NodesReleased += e.contactTargets.nodes()
		e.contactTargets.release()
		st.Objects++
	}
	s.hostEscalations.reset()
	s.hostEscArray = nil

	for _, c := range s.contacts.items {
		st.NodesReleased += len(c.contactGroups) + len(c.customVariables)
		if s.names.Release(c.name) {
			st.NamesReleased++
		}
		c.contactGroups, c.customVariables = nil, nil
		st.Objects++
	}
	s.contacts.reset()

	for _, tp := range s.timePeriods.items {
		if s.names.Release(tp.name) {
			st.NamesReleased++
		}
		st.Objects++
	}
	s.timePeriods.reset()

	for _, c := range s.commands.items {
		if s.names.Release(c.name) {
			st.NamesReleased++
		}
		st.Objects++
	}
	s.commands.reset()

	s.numHostDeps = 0
	s.numServiceDeps = 0
	s.resolved = false

	st.DoubleReleases = s.names.DoubleReleases() - doubleBefore
	debug.LogObjects("freed %d objects, %d names, %d relationship nodes\n",
		st.Objects, st.NamesReleased, st.NodesReleased)
	return st
}

func (s *Store) releaseGroupNames(name Name, alias OptionalName) int {
	n := 0
	if s.names.Release(name) {
		n++
	}
	if alias.release(s.names) {
		n++
	}
	return n
}
