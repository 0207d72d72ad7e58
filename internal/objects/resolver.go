package objects

import (
	"cmp"
	"slices"

	"github.com/standardbeagle/objstore/internal/debug"
	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

// Resolve runs the post-load pass: it flattens dependencies, links parent
// references, and sorts the flattened dependency and escalation arrays.
//
// Steps run in a fixed order because each later step needs the earlier one
// finished for every object. Parent names that match no object are returned
// as UnresolvedReference errors; the rest of the pass still completes.
// Calling Resolve again is safe: links made by an earlier run are kept.
func (s *Store) Resolve() error {
	var errs []error

	// service dependencies, in service id order, notify list before exec list
	s.serviceDepArray = make([]*ServiceDependency, 0, s.numServiceDeps)
	for _, svc := range s.services.items {
		s.serviceDepArray = append(s.serviceDepArray, svc.notifyDeps...)
		s.serviceDepArray = append(s.serviceDepArray, svc.execDeps...)
	}
	debug.TimingPoint("Done post-processing servicedependencies")

	// host parents and host dependencies, in one walk over the hosts
	s.hostDepArray = make([]*HostDependency, 0, s.numHostDeps)
	for _, h := range s.hosts.items {
		errs = append(errs, s.resolveHostParents(h)...)
		s.hostDepArray = append(s.hostDepArray, h.notifyDeps...)
		s.hostDepArray = append(s.hostDepArray, h.execDeps...)
	}
	for _, svc := range s.services.items {
		errs = append(errs, s.resolveServiceParents(svc)...)
	}
	debug.TimingPoint("Done post-processing host dependencies")

	slices.SortFunc(s.serviceDepArray, func(a, b *ServiceDependency) int {
		return cmp.Or(cmp.Compare(a.Master.id, b.Master.id), cmp.Compare(a.Dependent.id, b.Dependent.id))
	})
	slices.SortFunc(s.hostDepArray, func(a, b *HostDependency) int {
		return cmp.Or(cmp.Compare(a.Master.id, b.Master.id), cmp.Compare(a.Dependent.id, b.Dependent.id))
	})

	s.hostEscArray = slices.Clone(s.hostEscalations.items)
	slices.SortFunc(s.hostEscArray, func(a, b *HostEscalation) int {
		return cmp.Compare(a.Host.id, b.Host.id)
	})
	s.serviceEscArray = slices.Clone(s.serviceEscalations.items)
	slices.SortFunc(s.serviceEscArray, func(a, b *ServiceEscalation) int {
		return cmp.Compare(a.Service.id, b.Service.id)
	})
	debug.TimingPoint("Done post-sorting slave objects")

	s.resolved = true
	return objerrors.NewMultiError(errs).ErrOrNil()
}

// resolveHostParents points every parent reference of h at its host and
// records h as a child of that parent the first time the link is made.
func (s *Store) resolveHostParents(h *Host) []error {
	var errs []error
	for i := range h.parentHosts {
		ref := &h.parentHosts[i]
		if ref.Host != nil {
			continue
		}
		parent := s.FindHost(ref.name)
		if parent == nil {
			errs = append(errs, reject(objerrors.NewUnresolvedReference(KindHost, h.Name(), "parents", KindHost, ref.name)))
			continue
		}
		ref.Host = parent
		ref.name = ""
		parent.childHosts = append(parent.childHosts, HostRef{Host: h})
	}
	return errs
}

func (s *Store) resolveServiceParents(svc *Service) []error {
	var errs []error
	for i := range svc.parents {
		ref := &svc.parents[i]
		if ref.Service != nil {
			continue
		}
		parent := s.FindService(ref.hostName, ref.description)
		if parent == nil {
			errs = append(errs, reject(objerrors.NewUnresolvedReference(KindService, svc.key(), "parents", KindService,
				ref.hostName+";"+ref.description)))
			continue
		}
		ref.Service = parent
		ref.hostName, ref.description = "", ""
	}
	return errs
}

// HostDependencies returns the flattened host dependencies sorted by
// (master id, dependent id). It is empty until Resolve runs.
func (s *Store) HostDependencies() []*HostDependency {
	return s.hostDepArray
}

// ServiceDependencies returns the flattened service dependencies sorted by
// (master id, dependent id). It is empty until Resolve runs.
func (s *Store) ServiceDependencies() []*ServiceDependency {
	return s.serviceDepArray
}

// HostEscalations returns host escalations sorted by host id. The identity
// array keeps creation order.
func (s *Store) HostEscalations() []*HostEscalation {
	return s.hostEscArray
}

// ServiceEscalations returns service escalations sorted by service id
func (s *Store) ServiceEscalations() []*ServiceEscalation {
	return s.serviceEscArray
}
