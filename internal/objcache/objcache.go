// Package objcache writes the object cache file: a flat text rendering of
// every resolved object, read back by status tools that never parse the
// original definitions.
package objcache

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/standardbeagle/objstore/internal/debug"
	objerrors "github.com/standardbeagle/objstore/internal/errors"
	"github.com/standardbeagle/objstore/internal/objects"
)

const headerRule = "########################################\n"

// Skip reports whether path disables the cache file
func Skip(path string) bool {
	return path == "" || path == os.DevNull
}

// WriteFile renders s into path. An empty path or os.DevNull writes
// nothing. The file is written to a temporary name and renamed into place
// so readers never see a partial cache.
func WriteFile(path string, s *objects.Store) error {
	if Skip(path) {
		debug.LogLoad("object cache disabled (%q)\n", path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return objerrors.NewFileError("mkdir", path, err)
	}

	tempPath := path + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return objerrors.NewFileError("create", tempPath, err)
	}

	werr := Write(f, s, time.Now())
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(tempPath)
		return objerrors.NewFileError("write", path, werr)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return objerrors.NewFileError("rename", path, err)
	}
	debug.LogLoad("wrote object cache %s\n", path)
	return nil
}

// Write renders every object of s to w, kind by kind, in identity order.
// created is printed in the header.
func Write(w io.Writer, s *objects.Store, created time.Time) error {
	cw := &cacheWriter{w: bufio.NewWriter(w)}

	cw.printf("%s", headerRule)
	cw.printf("#       NAGIOS OBJECT CACHE FILE\n")
	cw.printf("#\n")
	cw.printf("# THIS FILE IS AUTOMATICALLY GENERATED\n")
	cw.printf("# BY NAGIOS.  DO NOT MODIFY THIS FILE!\n")
	cw.printf("#\n")
	cw.printf("# Created: %s\n", created.Format(time.ANSIC))
	cw.printf("%s\n", headerRule)

	for _, tp := range s.TimePeriods().All() {
		cw.timePeriod(tp)
	}
	for _, c := range s.Commands().All() {
		cw.command(c)
	}
	for _, g := range s.ContactGroups().All() {
		cw.contactGroup(g)
	}
	for _, g := range s.HostGroups().All() {
		cw.hostGroup(g)
	}
	for _, g := range s.ServiceGroups().All() {
		cw.serviceGroup(g)
	}
	for _, c := range s.Contacts().All() {
		cw.contact(c)
	}
	for _, h := range s.Hosts().All() {
		cw.host(h)
	}
	for _, svc := range s.Services().All() {
		cw.service(svc)
	}
	for _, d := range s.ServiceDependencies() {
		cw.serviceDependency(d)
	}
	for _, e := range s.ServiceEscalations() {
		cw.serviceEscalation(e)
	}
	for _, d := range s.HostDependencies() {
		cw.hostDependency(d)
	}
	for _, e := range s.HostEscalations() {
		cw.hostEscalation(e)
	}

	if cw.err != nil {
		return cw.err
	}
	return cw.w.Flush()
}

// FormatOptions renders an option mask as comma-separated letters from
// table. "n" is no option and "a" is every option; the OK/recovery bit is
// printed first as okChar.
func FormatOptions(opts objects.Options, table []objects.FlagCode, okChar byte) string {
	switch opts {
	case objects.OptNothing:
		return "n"
	case objects.OptAll:
		return "a"
	}

	var letters []string
	if opts.Has(objects.OptOK) {
		letters = append(letters, string(okChar))
		opts &^= objects.OptOK
	}
	for _, fc := range table {
		if fc.Opt != objects.OptOK && opts.Has(fc.Opt) {
			letters = append(letters, string(fc.Code))
		}
	}
	return strings.Join(letters, ",")
}

// cacheWriter keeps the first write error and turns later writes into no-ops
type cacheWriter struct {
	w   *bufio.Writer
	err error
}

func (cw *cacheWriter) printf(format string, args ...interface{}) {
	if cw.err != nil {
		return
	}
	_, cw.err = fmt.Fprintf(cw.w, format, args...)
}

func (cw *cacheWriter) begin(kind string) { cw.printf("define %s {\n", kind) }
func (cw *cacheWriter) end()              { cw.printf("\t}\n\n") }

func (cw *cacheWriter) field(key string, value interface{}) {
	cw.printf("\t%s\t%v\n", key, value)
}

// optional prints key only for a non-empty value
func (cw *cacheWriter) optional(key, value string) {
	if value != "" {
		cw.field(key, value)
	}
}

func (cw *cacheWriter) float(key string, v float64) {
	cw.printf("\t%s\t%f\n", key, v)
}

func (cw *cacheWriter) flag(key string, v bool) {
	if v {
		cw.field(key, 1)
	} else {
		cw.field(key, 0)
	}
}

// list prints key followed by the comma-joined names, or nothing
func (cw *cacheWriter) list(key string, names []string) {
	if len(names) > 0 {
		cw.field(key, strings.Join(names, ","))
	}
}

func (cw *cacheWriter) customVariables(vars []objects.CustomVariable) {
	for _, v := range vars {
		cw.printf("\t_%s\t%s\n", v.Name, v.Value)
	}
}

func (cw *cacheWriter) contacts(t interface {
	ContactsList() []*objects.Contact
	ContactGroupsList() []*objects.ContactGroup
}) {
	names := make([]string, 0, len(t.ContactsList()))
	for _, c := range t.ContactsList() {
		names = append(names, c.Name())
	}
	cw.list("contacts", names)

	names = make([]string, 0, len(t.ContactGroupsList()))
	for _, g := range t.ContactGroupsList() {
		names = append(names, g.Name())
	}
	cw.list("contact_groups", names)
}

func periodName(tp *objects.TimePeriod) string {
	if tp == nil {
		return ""
	}
	return tp.Name()
}

func (cw *cacheWriter) timePeriod(tp *objects.TimePeriod) {
	cw.begin("timeperiod")
	cw.field("timeperiod_name", tp.Name())
	cw.optional("alias", tp.Alias)
	cw.end()
}

func (cw *cacheWriter) command(c *objects.Command) {
	cw.begin("command")
	cw.field("command_name", c.Name())
	cw.field("command_line", c.CommandLine)
	cw.end()
}

func (cw *cacheWriter) contactGroup(g *objects.ContactGroup) {
	cw.begin("contactgroup")
	cw.field("contactgroup_name", g.Name())
	cw.field("alias", g.Alias())
	names := make([]string, 0, len(g.Members()))
	for _, c := range g.Members() {
		names = append(names, c.Name())
	}
	cw.list("members", names)
	cw.end()
}

func (cw *cacheWriter) hostGroup(g *objects.HostGroup) {
	cw.begin("hostgroup")
	cw.field("hostgroup_name", g.Name())
	cw.field("alias", g.Alias())
	names := make([]string, 0, len(g.Members()))
	for _, m := range g.Members() {
		names = append(names, m.Name())
	}
	cw.list("members", names)
	cw.optional("notes", g.Notes)
	cw.optional("notes_url", g.NotesURL)
	cw.optional("action_url", g.ActionURL)
	cw.end()
}

func (cw *cacheWriter) serviceGroup(g *objects.ServiceGroup) {
	cw.begin("servicegroup")
	cw.field("servicegroup_name", g.Name())
	cw.field("alias", g.Alias())
	names := make([]string, 0, len(g.Members()))
	for _, m := range g.Members() {
		names = append(names, m.HostName()+","+m.Description())
	}
	cw.list("members", names)
	cw.optional("notes", g.Notes)
	cw.optional("notes_url", g.NotesURL)
	cw.optional("action_url", g.ActionURL)
	cw.end()
}

func (cw *cacheWriter) contact(c *objects.Contact) {
	cw.begin("contact")
	cw.field("contact_name", c.Name())
	cw.optional("alias", c.Alias)
	cw.optional("email", c.Email)
	cw.optional("pager", c.Pager)
	cw.optional("host_notification_period", c.HostNotificationPeriod)
	cw.optional("service_notification_period", c.ServiceNotificationPeriod)
	cw.field("host_notification_options", FormatOptions(c.HostNotificationOptions, objects.HostFlags, 'r'))
	cw.field("service_notification_options", FormatOptions(c.ServiceNotificationOptions, objects.ServiceFlags, 'r'))
	cw.customVariables(c.CustomVariables())
	cw.end()
}

func hostInitialState(s objects.HostState) string {
	switch s {
	case objects.HostDown:
		return "d"
	case objects.HostUnreachable:
		return "u"
	}
	return "o"
}

func serviceInitialState(s objects.ServiceState) string {
	switch s {
	case objects.ServiceWarning:
		return "w"
	case objects.ServiceUnknown:
		return "u"
	case objects.ServiceCritical:
		return "c"
	}
	return "o"
}

func (cw *cacheWriter) host(h *objects.Host) {
	cw.begin("host")
	cw.field("host_name", h.Name())
	if !h.DisplayNameField().IsAlias() {
		cw.field("display_name", h.DisplayName())
	}
	cw.field("alias", h.Alias())
	cw.field("address", h.Address())

	parents := make([]string, 0, len(h.ParentHosts()))
	for _, p := range h.ParentHosts() {
		parents = append(parents, p.Name())
	}
	cw.list("parents", parents)

	cw.optional("check_period", periodName(h.CheckPeriod))
	cw.optional("check_command", h.CheckCommand)
	cw.optional("event_handler", h.EventHandler)
	cw.contacts(h)
	cw.optional("notification_period", periodName(h.NotificationPeriod))
	cw.field("initial_state", hostInitialState(h.InitialState))
	cw.field("hourly_value", h.HourlyValue)
	cw.float("check_interval", h.CheckInterval)
	cw.float("retry_interval", h.RetryInterval)
	cw.field("max_check_attempts", h.MaxAttempts)
	cw.flag("active_checks_enabled", h.ChecksEnabled)
	cw.flag("passive_checks_enabled", h.AcceptPassiveChecks)
	cw.flag("obsess", h.Obsess)
	cw.flag("event_handler_enabled", h.EventHandlerEnabled)
	cw.float("low_flap_threshold", h.LowFlapThreshold)
	cw.float("high_flap_threshold", h.HighFlapThreshold)
	cw.flag("flap_detection_enabled", h.FlapDetectionEnabled)
	cw.field("flap_detection_options", FormatOptions(h.FlapDetectionOptions, objects.HostFlags, 'o'))
	cw.field("freshness_threshold", h.FreshnessThreshold)
	cw.flag("check_freshness", h.CheckFreshness)
	cw.field("notification_options", FormatOptions(h.NotificationOptions, objects.HostFlags, 'r'))
	cw.flag("notifications_enabled", h.NotificationsEnabled)
	cw.float("notification_interval", h.NotificationInterval)
	cw.float("first_notification_delay", h.FirstNotificationDelay)
	cw.field("stalking_options", FormatOptions(h.StalkingOptions, objects.HostFlags, 'o'))
	cw.flag("process_perf_data", h.ProcessPerformanceData)
	cw.optional("icon_image", h.IconImage)
	cw.optional("icon_image_alt", h.IconImageAlt)
	cw.optional("vrml_image", h.VRMLImage)
	cw.optional("statusmap_image", h.StatusmapImage)
	if c := h.Coords2D; c != nil {
		cw.printf("\t2d_coords\t%d,%d\n", c[0], c[1])
	}
	if c := h.Coords3D; c != nil {
		cw.printf("\t3d_coords\t%f,%f,%f\n", c[0], c[1], c[2])
	}
	cw.optional("notes", h.Notes)
	cw.optional("notes_url", h.NotesURL)
	cw.optional("action_url", h.ActionURL)
	cw.flag("retain_status_information", h.RetainStatusInformation)
	cw.flag("retain_nonstatus_information", h.RetainNonStatusInformation)
	cw.customVariables(h.CustomVariables())
	cw.end()
}

func (cw *cacheWriter) service(svc *objects.Service) {
	cw.begin("service")
	cw.field("host_name", svc.HostName())
	cw.field("service_description", svc.Description())
	if !svc.DisplayNameField().IsAlias() {
		cw.field("display_name", svc.DisplayName())
	}

	// a single parent on the same host is written by description only
	if parents := svc.Parents(); len(parents) > 0 {
		if len(parents) == 1 && parents[0].Service != nil && parents[0].Service.Host() == svc.Host() {
			cw.field("parents", parents[0].Description())
		} else {
			names := make([]string, 0, len(parents))
			for _, p := range parents {
				names = append(names, p.HostName()+","+p.Description())
			}
			cw.list("parents", names)
		}
	}

	cw.optional("check_period", periodName(svc.CheckPeriod))
	cw.optional("check_command", svc.CheckCommand)
	cw.optional("event_handler", svc.EventHandler)
	cw.contacts(svc)
	cw.optional("notification_period", periodName(svc.NotificationPeriod))
	cw.field("initial_state", serviceInitialState(svc.InitialState))
	cw.field("hourly_value", svc.HourlyValue)
	cw.float("check_interval", svc.CheckInterval)
	cw.float("retry_interval", svc.RetryInterval)
	cw.field("max_check_attempts", svc.MaxAttempts)
	cw.flag("is_volatile", svc.IsVolatile)
	cw.flag("active_checks_enabled", svc.ChecksEnabled)
	cw.flag("passive_checks_enabled", svc.AcceptPassiveChecks)
	cw.flag("obsess", svc.Obsess)
	cw.flag("event_handler_enabled", svc.EventHandlerEnabled)
	cw.float("low_flap_threshold", svc.LowFlapThreshold)
	cw.float("high_flap_threshold", svc.HighFlapThreshold)
	cw.flag("flap_detection_enabled", svc.FlapDetectionEnabled)
	cw.field("flap_detection_options", FormatOptions(svc.FlapDetectionOptions, objects.ServiceFlags, 'o'))
	cw.field("freshness_threshold", svc.FreshnessThreshold)
	cw.flag("check_freshness", svc.CheckFreshness)
	cw.field("notification_options", FormatOptions(svc.NotificationOptions, objects.ServiceFlags, 'r'))
	cw.flag("notifications_enabled", svc.NotificationsEnabled)
	cw.float("notification_interval", svc.NotificationInterval)
	cw.float("first_notification_delay", svc.FirstNotificationDelay)
	cw.field("stalking_options", FormatOptions(svc.StalkingOptions, objects.ServiceFlags, 'o'))
	cw.flag("process_perf_data", svc.ProcessPerformanceData)
	cw.optional("icon_image", svc.IconImage)
	cw.optional("icon_image_alt", svc.IconImageAlt)
	cw.optional("notes", svc.Notes)
	cw.optional("notes_url", svc.NotesURL)
	cw.optional("action_url", svc.ActionURL)
	cw.flag("retain_status_information", svc.RetainStatusInformation)
	cw.flag("retain_nonstatus_information", svc.RetainNonStatusInformation)
	cw.customVariables(svc.CustomVariables())
	cw.end()
}

func (cw *cacheWriter) serviceDependency(d *objects.ServiceDependency) {
	cw.begin("servicedependency")
	cw.field("host_name", d.HostName())
	cw.field("service_description", d.ServiceDescription())
	cw.field("dependent_host_name", d.DependentHostName())
	cw.field("dependent_service_description", d.DependentServiceDescription())
	cw.optional("dependency_period", periodName(d.DependencyPeriod))
	cw.flag("inherits_parent", d.InheritsParent)
	cw.field(d.Type.String()+"_failure_options", FormatOptions(d.FailureOptions, objects.ServiceFlags, 'o'))
	cw.end()
}

func (cw *cacheWriter) serviceEscalation(e *objects.ServiceEscalation) {
	cw.begin("serviceescalation")
	cw.field("host_name", e.HostName())
	cw.field("service_description", e.Description())
	cw.field("first_notification", e.FirstNotification)
	cw.field("last_notification", e.LastNotification)
	cw.float("notification_interval", e.NotificationInterval)
	cw.optional("escalation_period", periodName(e.EscalationPeriod))
	cw.field("escalation_options", FormatOptions(e.EscalationOptions, objects.ServiceFlags, 'r'))
	cw.contacts(e)
	cw.end()
}

func (cw *cacheWriter) hostDependency(d *objects.HostDependency) {
	cw.begin("hostdependency")
	cw.field("host_name", d.HostName())
	cw.field("dependent_host_name", d.DependentHostName())
	cw.optional("dependency_period", periodName(d.DependencyPeriod))
	cw.flag("inherits_parent", d.InheritsParent)
	cw.field(d.Type.String()+"_failure_options", FormatOptions(d.FailureOptions, objects.HostFlags, 'o'))
	cw.end()
}

func (cw *cacheWriter) hostEscalation(e *objects.HostEscalation) {
	cw.begin("hostescalation")
	cw.field("host_name", e.HostName())
	cw.field("first_notification", e.FirstNotification)
	cw.field("last_notification", e.LastNotification)
	cw.float("notification_interval", e.NotificationInterval)
	cw.optional("escalation_period", periodName(e.EscalationPeriod))
	cw.field("escalation_options", FormatOptions(e.EscalationOptions, objects.HostFlags, 'r'))
	cw.contacts(e)
	cw.end()
}
