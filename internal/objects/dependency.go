package objects

import (
	"github.com/standardbeagle/objstore/internal/debug"
	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

// EdgeResult tells a dependency creator whether the edge was stored
type EdgeResult int

const (
	// EdgeAdded means a new edge was attached to its dependent
	EdgeAdded EdgeResult = iota
	// EdgeDuplicate means a structurally identical edge already existed.
	// It is success without effect, not an error.
	EdgeDuplicate
)

func (r EdgeResult) String() string {
	if r == EdgeDuplicate {
		return "duplicate"
	}
	return "added"
}

// HostDependency makes Dependent's checks or notifications depend on Master
type HostDependency struct {
	Dependent        *Host
	Master           *Host
	Type             DependencyType
	InheritsParent   bool
	FailureOptions   Options
	DependencyPeriod *TimePeriod
}

// DependentHostName is borrowed from the dependent host
func (d *HostDependency) DependentHostName() string { return d.Dependent.Name() }

// HostName is the master host name, borrowed from the master host
func (d *HostDependency) HostName() string { return d.Master.Name() }

func (d *HostDependency) sameEdge(o *HostDependency) bool {
	return d.Master == o.Master && d.Dependent == o.Dependent && d.Type == o.Type &&
		d.InheritsParent == o.InheritsParent && d.FailureOptions == o.FailureOptions &&
		d.DependencyPeriod == o.DependencyPeriod
}

// ServiceDependency makes Dependent's checks or notifications depend on Master
type ServiceDependency struct {
	Dependent        *Service
	Master           *Service
	Type             DependencyType
	InheritsParent   bool
	FailureOptions   Options
	DependencyPeriod *TimePeriod
}

func (d *ServiceDependency) DependentHostName() string           { return d.Dependent.HostName() }
func (d *ServiceDependency) DependentServiceDescription() string { return d.Dependent.Description() }
func (d *ServiceDependency) HostName() string                    { return d.Master.HostName() }
func (d *ServiceDependency) ServiceDescription() string          { return d.Master.Description() }

func (d *ServiceDependency) sameEdge(o *ServiceDependency) bool {
	return d.Master == o.Master && d.Dependent == o.Dependent && d.Type == o.Type &&
		d.InheritsParent == o.InheritsParent && d.FailureOptions == o.FailureOptions &&
		d.DependencyPeriod == o.DependencyPeriod
}

// HostDependencySpec holds the fields of a hostdependency definition
type HostDependencySpec struct {
	DependentHostName string
	HostName          string
	Type              DependencyType
	InheritsParent    bool
	FailureOptions    Options
	DependencyPeriod  string
}

// ServiceDependencySpec holds the fields of a servicedependency definition
type ServiceDependencySpec struct {
	DependentHostName           string
	DependentServiceDescription string
	HostName                    string
	ServiceDescription          string
	Type                        DependencyType
	InheritsParent              bool
	FailureOptions              Options
	DependencyPeriod            string
}

func normalizeDependencyType(t DependencyType) DependencyType {
	if t == ExecutionDependency {
		return ExecutionDependency
	}
	return NotificationDependency
}

// AddHostDependency creates a host dependency and attaches it to the
// dependent's notify or exec list. A structural duplicate returns the edge
// already present together with EdgeDuplicate.
func (s *Store) AddHostDependency(spec HostDependencySpec) (*HostDependency, EdgeResult, error) {
	name := spec.DependentHostName + "->" + spec.HostName
	master := s.FindHost(spec.HostName)
	if master == nil {
		return nil, EdgeAdded, reject(objerrors.NewUnresolvedReference(KindHostDependency, name, "host_name", KindHost, spec.HostName))
	}
	dependent := s.FindHost(spec.DependentHostName)
	if dependent == nil {
		return nil, EdgeAdded, reject(objerrors.NewUnresolvedReference(KindHostDependency, name, "dependent_host_name", KindHost, spec.DependentHostName))
	}
	tp, err := s.findPeriod(KindHostDependency, name, "dependency_period", spec.DependencyPeriod)
	if err != nil {
		return nil, EdgeAdded, err
	}

	dep := &HostDependency{
		Dependent:        dependent,
		Master:           master,
		Type:             normalizeDependencyType(spec.Type),
		InheritsParent:   spec.InheritsParent,
		FailureOptions:   spec.FailureOptions,
		DependencyPeriod: tp,
	}

	list := &dependent.notifyDeps
	if dep.Type == ExecutionDependency {
		list = &dependent.execDeps
	}
	for _, existing := range *list {
		if existing.sameEdge(dep) {
			debug.LogObjects("skipping duplicate %s %s\n", KindHostDependency, name)
			return existing, EdgeDuplicate, nil
		}
	}
	*list = append(*list, dep)
	s.numHostDeps++
	s.resolved = false
	return dep, EdgeAdded, nil
}

// AddServiceDependency creates a service dependency and attaches it to the
// dependent's notify or exec list. A structural duplicate returns the edge
// already present together with EdgeDuplicate.
func (s *Store) AddServiceDependency(spec ServiceDependencySpec) (*ServiceDependency, EdgeResult, error) {
	name := spec.DependentHostName + ";" + spec.DependentServiceDescription + "->" +
		spec.HostName + ";" + spec.ServiceDescription
	master := s.FindService(spec.HostName, spec.ServiceDescription)
	if master == nil {
		return nil, EdgeAdded, reject(objerrors.NewUnresolvedReference(KindServiceDependency, name, "service_description", KindService,
			spec.HostName+";"+spec.ServiceDescription))
	}
	dependent := s.FindService(spec.DependentHostName, spec.DependentServiceDescription)
	if dependent == nil {
		return nil, EdgeAdded, reject(objerrors.NewUnresolvedReference(KindServiceDependency, name, "dependent_service_description", KindService,
			spec.DependentHostName+";"+spec.DependentServiceDescription))
	}
	tp, err := s.findPeriod(KindServiceDependency, name, "dependency_period", spec.DependencyPeriod)
	if err != nil {
		return nil, EdgeAdded, err
	}

	dep := &ServiceDependency{
		Dependent:        dependent,
		Master:           master,
		Type:             normalizeDependencyType(spec.Type),
		InheritsParent:   spec.InheritsParent,
		FailureOptions:   spec.FailureOptions,
		DependencyPeriod: tp,
	}

	list := &dependent.notifyDeps
	if dep.Type == ExecutionDependency {
		list = &dependent.execDeps
	}
	for _, existing := range *list {
		if existing.sameEdge(dep) {
			debug.LogObjects("skipping duplicate %s %s\n", KindServiceDependency, name)
			return existing, EdgeDuplicate, nil
		}
	}
	*list = append(*list, dep)
	s.numServiceDeps++
	s.resolved = false
	return dep, EdgeAdded, nil
}
