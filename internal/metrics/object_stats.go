package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/standardbeagle/objstore/internal/objects"
)

// ObjectStats summarizes the contents and shape of a resolved store
type ObjectStats struct {
	Counts objects.Counts

	// Host topology
	RootHosts         int64 // hosts without parents
	ParentLinks       int64
	MaxParentDepth    int64 // longest chain from a root host, in hops
	HostsWithServices int64
	MaxServicesOnHost int64
	AvgServicesOnHost float64

	// Group membership
	HostGroupMembers    int64
	ServiceGroupMembers int64
	ContactGroupMembers int64

	// Dependencies and escalations
	NotifyDependencies int64
	ExecDependencies   int64

	CustomVariables int64
	LiveNames       int64

	Indexes []objects.IndexStat
}

// Compute collects statistics from a store
func Compute(s *objects.Store) *ObjectStats {
	st := &ObjectStats{Counts: s.Counts(), Indexes: s.IndexStats()}

	depth := make(map[*objects.Host]int64, s.Hosts().Len())
	s.Hosts().Range(func(_ int, h *objects.Host) bool {
		if len(h.ParentHosts()) == 0 {
			st.RootHosts++
		}
		st.ParentLinks += int64(len(h.ParentHosts()))

		n := int64(len(h.ServiceList()))
		if n > 0 {
			st.HostsWithServices++
		}
		st.MaxServicesOnHost = max(st.MaxServicesOnHost, n)
		st.MaxParentDepth = max(st.MaxParentDepth, parentDepth(h, depth, make(map[*objects.Host]bool)))

		st.NotifyDependencies += int64(len(h.NotifyDeps()))
		st.ExecDependencies += int64(len(h.ExecDeps()))
		st.CustomVariables += int64(len(h.CustomVariables()))
		return true
	})
	if hosts := s.Hosts().Len(); hosts > 0 {
		st.AvgServicesOnHost = float64(s.Services().Len()) / float64(hosts)
	}

	s.Services().Range(func(_ int, svc *objects.Service) bool {
		st.NotifyDependencies += int64(len(svc.NotifyDeps()))
		st.ExecDependencies += int64(len(svc.ExecDeps()))
		st.CustomVariables += int64(len(svc.CustomVariables()))
		return true
	})
	s.Contacts().Range(func(_ int, c *objects.Contact) bool {
		st.CustomVariables += int64(len(c.CustomVariables()))
		return true
	})

	s.HostGroups().Range(func(_ int, g *objects.HostGroup) bool {
		st.HostGroupMembers += int64(len(g.Members()))
		return true
	})
	s.ServiceGroups().Range(func(_ int, g *objects.ServiceGroup) bool {
		st.ServiceGroupMembers += int64(len(g.Members()))
		return true
	})
	s.ContactGroups().Range(func(_ int, g *objects.ContactGroup) bool {
		st.ContactGroupMembers += int64(len(g.Members()))
		return true
	})

	if names := s.Names(); names != nil {
		st.LiveNames = int64(names.Live())
	}
	return st
}

// parentDepth returns the number of hops from h up to its furthest root.
// A parent cycle counts as depth zero at the point it closes.
func parentDepth(h *objects.Host, memo map[*objects.Host]int64, onPath map[*objects.Host]bool) int64 {
	if d, ok := memo[h]; ok {
		return d
	}
	if onPath[h] {
		return 0
	}
	onPath[h] = true

	var d int64
	for _, ref := range h.ParentHosts() {
		if ref.Host == nil {
			continue
		}
		d = max(d, parentDepth(ref.Host, memo, onPath)+1)
	}

	delete(onPath, h)
	memo[h] = d
	return d
}

func (st *ObjectStats) kindCounts() []struct {
	kind  string
	count int
} {
	c := st.Counts
	return []struct {
		kind  string
		count int
	}{
		{objects.KindHost, c.Hosts},
		{objects.KindService, c.Services},
		{objects.KindHostGroup, c.HostGroups},
		{objects.KindServiceGroup, c.ServiceGroups},
		{objects.KindContactGroup, c.ContactGroups},
		{objects.KindContact, c.Contacts},
		{objects.KindTimePeriod, c.TimePeriods},
		{objects.KindCommand, c.Commands},
		{objects.KindHostDependency, c.HostDependencies},
		{objects.KindServiceDependency, c.ServiceDependencies},
		{objects.KindHostEscalation, c.HostEscalations},
		{objects.KindServiceEscalation, c.ServiceEscalations},
	}
}

// FormatAsJSON returns stats formatted as JSON-serializable map
func (st *ObjectStats) FormatAsJSON() map[string]interface{} {
	kinds := make(map[string]interface{})
	for _, kc := range st.kindCounts() {
		kinds[kc.kind] = kc.count
	}
	indexes := make(map[string]interface{}, len(st.Indexes))
	for _, ix := range st.Indexes {
		indexes[ix.Kind] = map[string]interface{}{
			"keys":        ix.Keys,
			"buckets":     ix.Buckets,
			"load_factor": ix.LoadFactor(),
		}
	}

	return map[string]interface{}{
		"summary": map[string]interface{}{
			"total_objects": st.Counts.Total(),
			"live_names":    st.LiveNames,
		},
		"objects": kinds,
		"topology": map[string]interface{}{
			"root_hosts":           st.RootHosts,
			"parent_links":         st.ParentLinks,
			"max_parent_depth":     st.MaxParentDepth,
			"hosts_with_services":  st.HostsWithServices,
			"max_services_on_host": st.MaxServicesOnHost,
			"avg_services_on_host": st.AvgServicesOnHost,
		},
		"membership": map[string]interface{}{
			"hostgroup_members":    st.HostGroupMembers,
			"servicegroup_members": st.ServiceGroupMembers,
			"contactgroup_members": st.ContactGroupMembers,
		},
		"dependencies": map[string]interface{}{
			"notification": st.NotifyDependencies,
			"execution":    st.ExecDependencies,
		},
		"custom_variables": st.CustomVariables,
		"indexes":          indexes,
	}
}

// FormatAsText returns stats formatted as human-readable text
func (st *ObjectStats) FormatAsText() string {
	var sb strings.Builder

	sb.WriteString("OBJECTS\n")
	sb.WriteString("-----------------------------------------------------------------\n")
	kinds := st.kindCounts()
	sort.SliceStable(kinds, func(i, j int) bool { return kinds[i].count > kinds[j].count })
	for _, kc := range kinds {
		sb.WriteString(fmt.Sprintf("  %-20s %8d\n", kc.kind+":", kc.count))
	}
	sb.WriteString(fmt.Sprintf("  %-20s %8d\n", "total:", st.Counts.Total()))

	sb.WriteString("\nTOPOLOGY\n")
	sb.WriteString("-----------------------------------------------------------------\n")
	sb.WriteString(fmt.Sprintf("  Root Hosts:          %d\n", st.RootHosts))
	sb.WriteString(fmt.Sprintf("  Parent Links:        %d\n", st.ParentLinks))
	sb.WriteString(fmt.Sprintf("  Max Parent Depth:    %d\n", st.MaxParentDepth))
	sb.WriteString(fmt.Sprintf("  Hosts w/ Services:   %d\n", st.HostsWithServices))
	sb.WriteString(fmt.Sprintf("  Services per Host:   %.2f (max %d)\n", st.AvgServicesOnHost, st.MaxServicesOnHost))

	sb.WriteString("\nMEMBERSHIP\n")
	sb.WriteString("-----------------------------------------------------------------\n")
	sb.WriteString(fmt.Sprintf("  Hostgroup Members:   %d\n", st.HostGroupMembers))
	sb.WriteString(fmt.Sprintf("  Servicegroup Members: %d\n", st.ServiceGroupMembers))
	sb.WriteString(fmt.Sprintf("  Contactgroup Members: %d\n", st.ContactGroupMembers))

	sb.WriteString("\nDEPENDENCIES\n")
	sb.WriteString("-----------------------------------------------------------------\n")
	sb.WriteString(fmt.Sprintf("  Notification:        %d\n", st.NotifyDependencies))
	sb.WriteString(fmt.Sprintf("  Execution:           %d\n", st.ExecDependencies))
	sb.WriteString(fmt.Sprintf("  Custom Variables:    %d\n", st.CustomVariables))
	sb.WriteString(fmt.Sprintf("  Live Names:          %d\n", st.LiveNames))

	sb.WriteString("\nNAME INDEXES\n")
	sb.WriteString("-----------------------------------------------------------------\n")
	for _, ix := range st.Indexes {
		sb.WriteString(fmt.Sprintf("  %-20s %8d keys %6d buckets  load %.2f\n", ix.Kind+":", ix.Keys, ix.Buckets, ix.LoadFactor()))
	}

	return sb.String()
}
