package loader

import (
	"sort"
	"strings"

	objerrors "github.com/standardbeagle/objstore/internal/errors"
	"github.com/standardbeagle/objstore/internal/objects"
)

// Engine defaults for toggles a record leaves out
const (
	defaultRetryInterval = 1.0
)

// applier feeds decoded records into a store. It keeps going after a
// rejected record so that one load reports every problem.
type applier struct {
	store  *objects.Store
	report *Report
}

func (a *applier) fail(err error) {
	a.report.Rejected++
	a.report.Errors = append(a.report.Errors, err)
}

// apply creates objects kind by kind across all files. Each pass only
// references kinds created by an earlier pass.
func (a *applier) apply(files []*File) {
	passes := []func(*File){
		a.timePeriods,
		a.commands,
		a.contacts,
		a.contactGroups,
		a.hosts,
		a.hostGroups,
		a.services,
		a.serviceGroups,
		a.hostDependencies,
		a.serviceDependencies,
		a.hostEscalations,
		a.serviceEscalations,
	}
	for _, pass := range passes {
		for _, f := range files {
			if f != nil {
				pass(f)
			}
		}
	}
}

func (a *applier) timePeriods(f *File) {
	for _, r := range f.TimePeriods {
		if _, err := a.store.AddTimePeriod(objects.TimePeriodSpec{Name: r.Name, Alias: r.Alias}); err != nil {
			a.fail(err)
			continue
		}
		a.report.Created.TimePeriods++
	}
}

func (a *applier) commands(f *File) {
	for _, r := range f.Commands {
		if _, err := a.store.AddCommand(objects.CommandSpec{Name: r.Name, CommandLine: r.CommandLine}); err != nil {
			a.fail(err)
			continue
		}
		a.report.Created.Commands++
	}
}

func (a *applier) contacts(f *File) {
	for _, r := range f.Contacts {
		hostOpts, err := parseOptions(objects.KindContact, r.Name, "host_notification_options", r.HostNotificationOptions, objects.HostFlags)
		if err != nil {
			a.fail(err)
			continue
		}
		svcOpts, err := parseOptions(objects.KindContact, r.Name, "service_notification_options", r.ServiceNotificationOptions, objects.ServiceFlags)
		if err != nil {
			a.fail(err)
			continue
		}

		c, err := a.store.AddContact(objects.ContactSpec{
			Name:                       r.Name,
			Alias:                      r.Alias,
			Email:                      r.Email,
			Pager:                      r.Pager,
			HostNotificationOptions:    hostOpts,
			ServiceNotificationOptions: svcOpts,
			HostNotificationPeriod:     r.HostNotificationPeriod,
			ServiceNotificationPeriod:  r.ServiceNotificationPeriod,
		})
		if err != nil {
			a.fail(err)
			continue
		}
		a.report.Created.Contacts++

		for _, k := range sortedKeys(r.CustomVariables) {
			a.check(a.store.AddCustomVariableToContact(c, k, r.CustomVariables[k]))
		}
	}
}

func (a *applier) contactGroups(f *File) {
	for _, r := range f.ContactGroups {
		g, err := a.store.AddContactGroup(objects.ContactGroupSpec{Name: r.Name, Alias: r.Alias})
		if err != nil {
			a.fail(err)
			continue
		}
		a.report.Created.ContactGroups++

		for _, m := range r.Members {
			a.check(a.store.AddContactToContactGroup(g, m))
		}
	}
}

func (a *applier) hosts(f *File) {
	for i := range f.Hosts {
		r := &f.Hosts[i]
		spec, err := hostSpec(r)
		if err != nil {
			a.fail(err)
			continue
		}
		h, err := a.store.AddHost(spec)
		if err != nil {
			a.fail(err)
			continue
		}
		a.report.Created.Hosts++

		for _, p := range r.Parents {
			a.check(a.store.AddParentHost(h, p))
		}
		for _, c := range r.Contacts {
			a.check(a.store.AddContactToHost(h, c))
		}
		for _, cg := range r.ContactGroups {
			a.check(a.store.AddContactGroupToHost(h, cg))
		}
		for _, k := range sortedKeys(r.CustomVariables) {
			a.check(a.store.AddCustomVariableToHost(h, k, r.CustomVariables[k]))
		}
	}
}

func (a *applier) hostGroups(f *File) {
	for _, r := range f.HostGroups {
		g, err := a.store.AddHostGroup(objects.HostGroupSpec{
			Name:      r.Name,
			Alias:     r.Alias,
			Notes:     r.Notes,
			NotesURL:  r.NotesURL,
			ActionURL: r.ActionURL,
		})
		if err != nil {
			a.fail(err)
			continue
		}
		a.report.Created.HostGroups++

		for _, m := range r.Members {
			a.check(a.store.AddHostToHostGroup(g, m))
		}
	}
}

func (a *applier) services(f *File) {
	for i := range f.Services {
		r := &f.Services[i]
		spec, err := serviceSpec(r)
		if err != nil {
			a.fail(err)
			continue
		}
		svc, err := a.store.AddService(spec)
		if err != nil {
			a.fail(err)
			continue
		}
		a.report.Created.Services++

		for _, p := range r.Parents {
			host := p.HostName
			if host == "" {
				// a parent without host_name lives on the same host
				host = r.HostName
			}
			a.check(a.store.AddParentService(svc, host, p.Description))
		}
		for _, c := range r.Contacts {
			a.check(a.store.AddContactToService(svc, c))
		}
		for _, cg := range r.ContactGroups {
			a.check(a.store.AddContactGroupToService(svc, cg))
		}
		for _, k := range sortedKeys(r.CustomVariables) {
			a.check(a.store.AddCustomVariableToService(svc, k, r.CustomVariables[k]))
		}
	}
}

func (a *applier) serviceGroups(f *File) {
	for _, r := range f.ServiceGroups {
		g, err := a.store.AddServiceGroup(objects.ServiceGroupSpec{
			Name:      r.Name,
			Alias:     r.Alias,
			Notes:     r.Notes,
			NotesURL:  r.NotesURL,
			ActionURL: r.ActionURL,
		})
		if err != nil {
			a.fail(err)
			continue
		}
		a.report.Created.ServiceGroups++

		for _, m := range r.Members {
			a.check(a.store.AddServiceToServiceGroup(g, m.HostName, m.Description))
		}
	}
}

func (a *applier) hostDependencies(f *File) {
	for _, r := range f.HostDependencies {
		name := r.DependentHostName + ";" + r.HostName
		depType, err := parseDependencyType(objects.KindHostDependency, name, r.Type)
		if err != nil {
			a.fail(err)
			continue
		}
		opts, err := parseOptions(objects.KindHostDependency, name, "failure_options", r.FailureOptions, objects.HostFlags)
		if err != nil {
			a.fail(err)
			continue
		}

		_, res, err := a.store.AddHostDependency(objects.HostDependencySpec{
			DependentHostName: r.DependentHostName,
			HostName:          r.HostName,
			Type:              depType,
			InheritsParent:    r.InheritsParent,
			FailureOptions:    opts,
			DependencyPeriod:  r.DependencyPeriod,
		})
		a.edge(res, err, &a.report.Created.HostDependencies)
	}
}

func (a *applier) serviceDependencies(f *File) {
	for _, r := range f.ServiceDependencies {
		name := r.DependentHostName + ";" + r.DependentServiceDescription
		depType, err := parseDependencyType(objects.KindServiceDependency, name, r.Type)
		if err != nil {
			a.fail(err)
			continue
		}
		opts, err := parseOptions(objects.KindServiceDependency, name, "failure_options", r.FailureOptions, objects.ServiceFlags)
		if err != nil {
			a.fail(err)
			continue
		}

		_, res, err := a.store.AddServiceDependency(objects.ServiceDependencySpec{
			DependentHostName:           r.DependentHostName,
			DependentServiceDescription: r.DependentServiceDescription,
			HostName:                    r.HostName,
			ServiceDescription:          r.ServiceDescription,
			Type:                        depType,
			InheritsParent:              r.InheritsParent,
			FailureOptions:              opts,
			DependencyPeriod:            r.DependencyPeriod,
		})
		a.edge(res, err, &a.report.Created.ServiceDependencies)
	}
}

func (a *applier) edge(res objects.EdgeResult, err error, created *int) {
	switch {
	case err != nil:
		a.fail(err)
	case res == objects.EdgeDuplicate:
		a.report.Duplicates++
	default:
		*created++
	}
}

func (a *applier) hostEscalations(f *File) {
	for _, r := range f.HostEscalations {
		opts, err := parseOptions(objects.KindHostEscalation, r.HostName, "escalation_options", r.EscalationOptions, objects.HostFlags)
		if err != nil {
			a.fail(err)
			continue
		}
		e, err := a.store.AddHostEscalation(objects.HostEscalationSpec{
			HostName:             r.HostName,
			FirstNotification:    r.FirstNotification,
			LastNotification:     r.LastNotification,
			NotificationInterval: r.NotificationInterval,
			EscalationPeriod:     r.EscalationPeriod,
			EscalationOptions:    opts,
		})
		if err != nil {
			a.fail(err)
			continue
		}
		a.report.Created.HostEscalations++

		for _, c := range r.Contacts {
			a.check(a.store.AddContactToHostEscalation(e, c))
		}
		for _, cg := range r.ContactGroups {
			a.check(a.store.AddContactGroupToHostEscalation(e, cg))
		}
	}
}

func (a *applier) serviceEscalations(f *File) {
	for _, r := range f.ServiceEscalations {
		key := r.HostName + ";" + r.Description
		opts, err := parseOptions(objects.KindServiceEscalation, key, "escalation_options", r.EscalationOptions, objects.ServiceFlags)
		if err != nil {
			a.fail(err)
			continue
		}
		e, err := a.store.AddServiceEscalation(objects.ServiceEscalationSpec{
			HostName:             r.HostName,
			Description:          r.Description,
			FirstNotification:    r.FirstNotification,
			LastNotification:     r.LastNotification,
			NotificationInterval: r.NotificationInterval,
			EscalationPeriod:     r.EscalationPeriod,
			EscalationOptions:    opts,
		})
		if err != nil {
			a.fail(err)
			continue
		}
		a.report.Created.ServiceEscalations++

		for _, c := range r.Contacts {
			a.check(a.store.AddContactToServiceEscalation(e, c))
		}
		for _, cg := range r.ContactGroups {
			a.check(a.store.AddContactGroupToServiceEscalation(e, cg))
		}
	}
}

// check records a failed attachment call
func (a *applier) check(err error) {
	if err != nil {
		a.fail(err)
	}
}

func hostSpec(r *HostRecord) (objects.HostSpec, error) {
	state, err := objects.ParseHostState(r.InitialState)
	if err != nil {
		return objects.HostSpec{}, objerrors.NewInvalidInput(objects.KindHost, r.Name, "initial_state", err.Error())
	}
	notifyOpts, err := parseOptions(objects.KindHost, r.Name, "notification_options", orAll(r.NotificationOptions), objects.HostFlags)
	if err != nil {
		return objects.HostSpec{}, err
	}
	flapOpts, err := parseOptions(objects.KindHost, r.Name, "flap_detection_options", orAll(r.FlapDetectionOptions), objects.HostFlags)
	if err != nil {
		return objects.HostSpec{}, err
	}
	stalkOpts, err := parseOptions(objects.KindHost, r.Name, "stalking_options", r.StalkingOptions, objects.HostFlags)
	if err != nil {
		return objects.HostSpec{}, err
	}
	coords2D, coords3D, err := coords(objects.KindHost, r.Name, r.Coords2D, r.Coords3D)
	if err != nil {
		return objects.HostSpec{}, err
	}

	return objects.HostSpec{
		Name:                       r.Name,
		DisplayName:                r.DisplayName,
		Alias:                      r.Alias,
		Address:                    r.Address,
		CheckPeriod:                r.CheckPeriod,
		NotificationPeriod:         r.NotificationPeriod,
		CheckCommand:               r.CheckCommand,
		EventHandler:               r.EventHandler,
		InitialState:               state,
		CheckInterval:              r.CheckInterval,
		RetryInterval:              orDefault(r.RetryInterval, defaultRetryInterval),
		MaxAttempts:                r.MaxCheckAttempts,
		NotificationOptions:        notifyOpts,
		NotificationInterval:       r.NotificationInterval,
		FirstNotificationDelay:     r.FirstNotificationDelay,
		NotificationsEnabled:       boolOr(r.NotificationsEnabled, true),
		ChecksEnabled:              boolOr(r.ActiveChecksEnabled, true),
		AcceptPassiveChecks:        boolOr(r.PassiveChecksEnabled, true),
		EventHandlerEnabled:        boolOr(r.EventHandlerEnabled, true),
		FlapDetectionEnabled:       boolOr(r.FlapDetectionEnabled, true),
		LowFlapThreshold:           r.LowFlapThreshold,
		HighFlapThreshold:          r.HighFlapThreshold,
		FlapDetectionOptions:       flapOpts,
		StalkingOptions:            stalkOpts,
		ProcessPerformanceData:     boolOr(r.ProcessPerfData, true),
		CheckFreshness:             boolOr(r.CheckFreshness, false),
		FreshnessThreshold:         r.FreshnessThreshold,
		Notes:                      r.Notes,
		NotesURL:                   r.NotesURL,
		ActionURL:                  r.ActionURL,
		IconImage:                  r.IconImage,
		IconImageAlt:               r.IconImageAlt,
		VRMLImage:                  r.VRMLImage,
		StatusmapImage:             r.StatusmapImage,
		Coords2D:                   coords2D,
		Coords3D:                   coords3D,
		Obsess:                     boolOr(r.Obsess, true),
		RetainStatusInformation:    boolOr(r.RetainStatusInformation, true),
		RetainNonStatusInformation: boolOr(r.RetainNonStatusInformation, true),
		HourlyValue:                r.HourlyValue,
	}, nil
}

func serviceSpec(r *ServiceRecord) (objects.ServiceSpec, error) {
	key := r.HostName + ";" + r.Description
	state, err := objects.ParseServiceState(r.InitialState)
	if err != nil {
		return objects.ServiceSpec{}, objerrors.NewInvalidInput(objects.KindService, key, "initial_state", err.Error())
	}
	notifyOpts, err := parseOptions(objects.KindService, key, "notification_options", orAll(r.NotificationOptions), objects.ServiceFlags)
	if err != nil {
		return objects.ServiceSpec{}, err
	}
	flapOpts, err := parseOptions(objects.KindService, key, "flap_detection_options", orAll(r.FlapDetectionOptions), objects.ServiceFlags)
	if err != nil {
		return objects.ServiceSpec{}, err
	}
	stalkOpts, err := parseOptions(objects.KindService, key, "stalking_options", r.StalkingOptions, objects.ServiceFlags)
	if err != nil {
		return objects.ServiceSpec{}, err
	}

	return objects.ServiceSpec{
		HostName:                   r.HostName,
		Description:                r.Description,
		DisplayName:                r.DisplayName,
		CheckPeriod:                r.CheckPeriod,
		NotificationPeriod:         r.NotificationPeriod,
		CheckCommand:               r.CheckCommand,
		EventHandler:               r.EventHandler,
		InitialState:               state,
		MaxAttempts:                r.MaxCheckAttempts,
		CheckInterval:              r.CheckInterval,
		RetryInterval:              orDefault(r.RetryInterval, defaultRetryInterval),
		NotificationInterval:       r.NotificationInterval,
		FirstNotificationDelay:     r.FirstNotificationDelay,
		NotificationOptions:        notifyOpts,
		NotificationsEnabled:       boolOr(r.NotificationsEnabled, true),
		IsVolatile:                 boolOr(r.IsVolatile, false),
		EventHandlerEnabled:        boolOr(r.EventHandlerEnabled, true),
		ChecksEnabled:              boolOr(r.ActiveChecksEnabled, true),
		AcceptPassiveChecks:        boolOr(r.PassiveChecksEnabled, true),
		FlapDetectionEnabled:       boolOr(r.FlapDetectionEnabled, true),
		LowFlapThreshold:           r.LowFlapThreshold,
		HighFlapThreshold:          r.HighFlapThreshold,
		FlapDetectionOptions:       flapOpts,
		StalkingOptions:            stalkOpts,
		ProcessPerformanceData:     boolOr(r.ProcessPerfData, true),
		CheckFreshness:             boolOr(r.CheckFreshness, false),
		FreshnessThreshold:         r.FreshnessThreshold,
		Notes:                      r.Notes,
		NotesURL:                   r.NotesURL,
		ActionURL:                  r.ActionURL,
		IconImage:                  r.IconImage,
		IconImageAlt:               r.IconImageAlt,
		RetainStatusInformation:    boolOr(r.RetainStatusInformation, true),
		RetainNonStatusInformation: boolOr(r.RetainNonStatusInformation, true),
		Obsess:                     boolOr(r.Obsess, true),
		HourlyValue:                r.HourlyValue,
	}, nil
}

func parseOptions(kind, name, field, s string, table []objects.FlagCode) (objects.Options, error) {
	opts, err := objects.ParseOptions(s, table)
	if err != nil {
		return 0, objerrors.NewInvalidInput(kind, name, field, err.Error())
	}
	return opts, nil
}

func parseDependencyType(kind, name, s string) (objects.DependencyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "notification", "notify", "n":
		return objects.NotificationDependency, nil
	case "execution", "exec", "e":
		return objects.ExecutionDependency, nil
	}
	return 0, objerrors.NewInvalidInput(kind, name, "type", "dependency type must be notification or execution")
}

func coords(kind, name string, c2 []int, c3 []float64) (*[2]int, *[3]float64, error) {
	var p2 *[2]int
	var p3 *[3]float64
	switch len(c2) {
	case 0:
	case 2:
		p2 = &[2]int{c2[0], c2[1]}
	default:
		return nil, nil, objerrors.NewInvalidInput(kind, name, "2d_coords", "expected two values")
	}
	switch len(c3) {
	case 0:
	case 3:
		p3 = &[3]float64{c3[0], c3[1], c3[2]}
	default:
		return nil, nil, objerrors.NewInvalidInput(kind, name, "3d_coords", "expected three values")
	}
	return p2, p3, nil
}

func orAll(s string) string {
	if strings.TrimSpace(s) == "" {
		return "a"
	}
	return s
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
