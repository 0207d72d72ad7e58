package loader

import "github.com/standardbeagle/objstore/internal/objects"

// File is one decoded definition file. Records are already expanded: no
// templates, no wildcard members.
type File struct {
	TimePeriods         []TimePeriodRecord        `yaml:"timeperiods" toml:"timeperiods"`
	Commands            []CommandRecord           `yaml:"commands" toml:"commands"`
	Contacts            []ContactRecord           `yaml:"contacts" toml:"contacts"`
	ContactGroups       []ContactGroupRecord      `yaml:"contactgroups" toml:"contactgroups"`
	Hosts               []HostRecord              `yaml:"hosts" toml:"hosts"`
	HostGroups          []HostGroupRecord         `yaml:"hostgroups" toml:"hostgroups"`
	Services            []ServiceRecord           `yaml:"services" toml:"services"`
	ServiceGroups       []ServiceGroupRecord      `yaml:"servicegroups" toml:"servicegroups"`
	HostDependencies    []HostDependencyRecord    `yaml:"hostdependencies" toml:"hostdependencies"`
	ServiceDependencies []ServiceDependencyRecord `yaml:"servicedependencies" toml:"servicedependencies"`
	HostEscalations     []HostEscalationRecord    `yaml:"hostescalations" toml:"hostescalations"`
	ServiceEscalations  []ServiceEscalationRecord `yaml:"serviceescalations" toml:"serviceescalations"`
}

type TimePeriodRecord struct {
	Name  string `yaml:"timeperiod_name" toml:"timeperiod_name"`
	Alias string `yaml:"alias" toml:"alias"`
}

type CommandRecord struct {
	Name        string `yaml:"command_name" toml:"command_name"`
	CommandLine string `yaml:"command_line" toml:"command_line"`
}

type ContactRecord struct {
	Name                       string            `yaml:"contact_name" toml:"contact_name"`
	Alias                      string            `yaml:"alias" toml:"alias"`
	Email                      string            `yaml:"email" toml:"email"`
	Pager                      string            `yaml:"pager" toml:"pager"`
	HostNotificationOptions    string            `yaml:"host_notification_options" toml:"host_notification_options"`
	ServiceNotificationOptions string            `yaml:"service_notification_options" toml:"service_notification_options"`
	HostNotificationPeriod     string            `yaml:"host_notification_period" toml:"host_notification_period"`
	ServiceNotificationPeriod  string            `yaml:"service_notification_period" toml:"service_notification_period"`
	CustomVariables            map[string]string `yaml:"custom_variables" toml:"custom_variables"`
}

type ContactGroupRecord struct {
	Name    string   `yaml:"contactgroup_name" toml:"contactgroup_name"`
	Alias   string   `yaml:"alias" toml:"alias"`
	Members []string `yaml:"members" toml:"members"`
}

// HostRecord toggles are pointers so that an absent key takes the engine
// default rather than false.
type HostRecord struct {
	Name                       string            `yaml:"host_name" toml:"host_name"`
	DisplayName                string            `yaml:"display_name" toml:"display_name"`
	Alias                      string            `yaml:"alias" toml:"alias"`
	Address                    string            `yaml:"address" toml:"address"`
	Parents                    []string          `yaml:"parents" toml:"parents"`
	CheckPeriod                string            `yaml:"check_period" toml:"check_period"`
	NotificationPeriod         string            `yaml:"notification_period" toml:"notification_period"`
	CheckCommand               string            `yaml:"check_command" toml:"check_command"`
	EventHandler               string            `yaml:"event_handler" toml:"event_handler"`
	InitialState               string            `yaml:"initial_state" toml:"initial_state"`
	CheckInterval              float64           `yaml:"check_interval" toml:"check_interval"`
	RetryInterval              float64           `yaml:"retry_interval" toml:"retry_interval"`
	MaxCheckAttempts           int               `yaml:"max_check_attempts" toml:"max_check_attempts"`
	NotificationOptions        string            `yaml:"notification_options" toml:"notification_options"`
	NotificationInterval       float64           `yaml:"notification_interval" toml:"notification_interval"`
	FirstNotificationDelay     float64           `yaml:"first_notification_delay" toml:"first_notification_delay"`
	NotificationsEnabled       *bool             `yaml:"notifications_enabled" toml:"notifications_enabled"`
	ActiveChecksEnabled        *bool             `yaml:"active_checks_enabled" toml:"active_checks_enabled"`
	PassiveChecksEnabled       *bool             `yaml:"passive_checks_enabled" toml:"passive_checks_enabled"`
	EventHandlerEnabled        *bool             `yaml:"event_handler_enabled" toml:"event_handler_enabled"`
	FlapDetectionEnabled       *bool             `yaml:"flap_detection_enabled" toml:"flap_detection_enabled"`
	LowFlapThreshold           float64           `yaml:"low_flap_threshold" toml:"low_flap_threshold"`
	HighFlapThreshold          float64           `yaml:"high_flap_threshold" toml:"high_flap_threshold"`
	FlapDetectionOptions       string            `yaml:"flap_detection_options" toml:"flap_detection_options"`
	StalkingOptions            string            `yaml:"stalking_options" toml:"stalking_options"`
	ProcessPerfData            *bool             `yaml:"process_perf_data" toml:"process_perf_data"`
	CheckFreshness             *bool             `yaml:"check_freshness" toml:"check_freshness"`
	FreshnessThreshold         int               `yaml:"freshness_threshold" toml:"freshness_threshold"`
	Notes                      string            `yaml:"notes" toml:"notes"`
	NotesURL                   string            `yaml:"notes_url" toml:"notes_url"`
	ActionURL                  string            `yaml:"action_url" toml:"action_url"`
	IconImage                  string            `yaml:"icon_image" toml:"icon_image"`
	IconImageAlt               string            `yaml:"icon_image_alt" toml:"icon_image_alt"`
	VRMLImage                  string            `yaml:"vrml_image" toml:"vrml_image"`
	StatusmapImage             string            `yaml:"statusmap_image" toml:"statusmap_image"`
	Coords2D                   []int             `yaml:"2d_coords" toml:"2d_coords"`
	Coords3D                   []float64         `yaml:"3d_coords" toml:"3d_coords"`
	Obsess                     *bool             `yaml:"obsess" toml:"obsess"`
	RetainStatusInformation    *bool             `yaml:"retain_status_information" toml:"retain_status_information"`
	RetainNonStatusInformation *bool             `yaml:"retain_nonstatus_information" toml:"retain_nonstatus_information"`
	HourlyValue                uint              `yaml:"hourly_value" toml:"hourly_value"`
	Contacts                   []string          `yaml:"contacts" toml:"contacts"`
	ContactGroups              []string          `yaml:"contact_groups" toml:"contact_groups"`
	CustomVariables            map[string]string `yaml:"custom_variables" toml:"custom_variables"`
}

type HostGroupRecord struct {
	Name      string   `yaml:"hostgroup_name" toml:"hostgroup_name"`
	Alias     string   `yaml:"alias" toml:"alias"`
	Notes     string   `yaml:"notes" toml:"notes"`
	NotesURL  string   `yaml:"notes_url" toml:"notes_url"`
	ActionURL string   `yaml:"action_url" toml:"action_url"`
	Members   []string `yaml:"members" toml:"members"`
}

// ServiceRefRecord names a service by its host and description
type ServiceRefRecord struct {
	HostName    string `yaml:"host_name" toml:"host_name"`
	Description string `yaml:"service_description" toml:"service_description"`
}

type ServiceRecord struct {
	HostName                   string             `yaml:"host_name" toml:"host_name"`
	Description                string             `yaml:"service_description" toml:"service_description"`
	DisplayName                string             `yaml:"display_name" toml:"display_name"`
	Parents                    []ServiceRefRecord `yaml:"parents" toml:"parents"`
	CheckPeriod                string             `yaml:"check_period" toml:"check_period"`
	NotificationPeriod         string             `yaml:"notification_period" toml:"notification_period"`
	CheckCommand               string             `yaml:"check_command" toml:"check_command"`
	EventHandler               string             `yaml:"event_handler" toml:"event_handler"`
	InitialState               string             `yaml:"initial_state" toml:"initial_state"`
	MaxCheckAttempts           int                `yaml:"max_check_attempts" toml:"max_check_attempts"`
	CheckInterval              float64            `yaml:"check_interval" toml:"check_interval"`
	RetryInterval              float64            `yaml:"retry_interval" toml:"retry_interval"`
	NotificationInterval       float64            `yaml:"notification_interval" toml:"notification_interval"`
	FirstNotificationDelay     float64            `yaml:"first_notification_delay" toml:"first_notification_delay"`
	NotificationOptions        string             `yaml:"notification_options" toml:"notification_options"`
	NotificationsEnabled       *bool              `yaml:"notifications_enabled" toml:"notifications_enabled"`
	IsVolatile                 *bool              `yaml:"is_volatile" toml:"is_volatile"`
	EventHandlerEnabled        *bool              `yaml:"event_handler_enabled" toml:"event_handler_enabled"`
	ActiveChecksEnabled        *bool              `yaml:"active_checks_enabled" toml:"active_checks_enabled"`
	PassiveChecksEnabled       *bool              `yaml:"passive_checks_enabled" toml:"passive_checks_enabled"`
	FlapDetectionEnabled       *bool              `yaml:"flap_detection_enabled" toml:"flap_detection_enabled"`
	LowFlapThreshold           float64            `yaml:"low_flap_threshold" toml:"low_flap_threshold"`
	HighFlapThreshold          float64            `yaml:"high_flap_threshold" toml:"high_flap_threshold"`
	FlapDetectionOptions       string             `yaml:"flap_detection_options" toml:"flap_detection_options"`
	StalkingOptions            string             `yaml:"stalking_options" toml:"stalking_options"`
	ProcessPerfData            *bool              `yaml:"process_perf_data" toml:"process_perf_data"`
	CheckFreshness             *bool              `yaml:"check_freshness" toml:"check_freshness"`
	FreshnessThreshold         int                `yaml:"freshness_threshold" toml:"freshness_threshold"`
	Notes                      string             `yaml:"notes" toml:"notes"`
	NotesURL                   string             `yaml:"notes_url" toml:"notes_url"`
	ActionURL                  string             `yaml:"action_url" toml:"action_url"`
	IconImage                  string             `yaml:"icon_image" toml:"icon_image"`
	IconImageAlt               string             `yaml:"icon_image_alt" toml:"icon_image_alt"`
	RetainStatusInformation    *bool              `yaml:"retain_status_information" toml:"retain_status_information"`
	RetainNonStatusInformation *bool              `yaml:"retain_nonstatus_information" toml:"retain_nonstatus_information"`
	Obsess                     *bool              `yaml:"obsess" toml:"obsess"`
	HourlyValue                uint               `yaml:"hourly_value" toml:"hourly_value"`
	Contacts                   []string           `yaml:"contacts" toml:"contacts"`
	ContactGroups              []string           `yaml:"contact_groups" toml:"contact_groups"`
	CustomVariables            map[string]string  `yaml:"custom_variables" toml:"custom_variables"`
}

type ServiceGroupRecord struct {
	Name      string             `yaml:"servicegroup_name" toml:"servicegroup_name"`
	Alias     string             `yaml:"alias" toml:"alias"`
	Notes     string             `yaml:"notes" toml:"notes"`
	NotesURL  string             `yaml:"notes_url" toml:"notes_url"`
	ActionURL string             `yaml:"action_url" toml:"action_url"`
	Members   []ServiceRefRecord `yaml:"members" toml:"members"`
}

type HostDependencyRecord struct {
	DependentHostName string `yaml:"dependent_host_name" toml:"dependent_host_name"`
	HostName          string `yaml:"host_name" toml:"host_name"`
	Type              string `yaml:"type" toml:"type"` // "notification" (default) or "execution"
	InheritsParent    bool   `yaml:"inherits_parent" toml:"inherits_parent"`
	FailureOptions    string `yaml:"failure_options" toml:"failure_options"`
	DependencyPeriod  string `yaml:"dependency_period" toml:"dependency_period"`
}

type ServiceDependencyRecord struct {
	DependentHostName           string `yaml:"dependent_host_name" toml:"dependent_host_name"`
	DependentServiceDescription string `yaml:"dependent_service_description" toml:"dependent_service_description"`
	HostName                    string `yaml:"host_name" toml:"host_name"`
	ServiceDescription          string `yaml:"service_description" toml:"service_description"`
	Type                        string `yaml:"type" toml:"type"`
	InheritsParent              bool   `yaml:"inherits_parent" toml:"inherits_parent"`
	FailureOptions              string `yaml:"failure_options" toml:"failure_options"`
	DependencyPeriod            string `yaml:"dependency_period" toml:"dependency_period"`
}

type HostEscalationRecord struct {
	HostName             string   `yaml:"host_name" toml:"host_name"`
	FirstNotification    int      `yaml:"first_notification" toml:"first_notification"`
	LastNotification     int      `yaml:"last_notification" toml:"last_notification"`
	NotificationInterval float64  `yaml:"notification_interval" toml:"notification_interval"`
	EscalationPeriod     string   `yaml:"escalation_period" toml:"escalation_period"`
	EscalationOptions    string   `yaml:"escalation_options" toml:"escalation_options"`
	Contacts             []string `yaml:"contacts" toml:"contacts"`
	ContactGroups        []string `yaml:"contact_groups" toml:"contact_groups"`
}

type ServiceEscalationRecord struct {
	HostName             string   `yaml:"host_name" toml:"host_name"`
	Description          string   `yaml:"service_description" toml:"service_description"`
	FirstNotification    int      `yaml:"first_notification" toml:"first_notification"`
	LastNotification     int      `yaml:"last_notification" toml:"last_notification"`
	NotificationInterval float64  `yaml:"notification_interval" toml:"notification_interval"`
	EscalationPeriod     string   `yaml:"escalation_period" toml:"escalation_period"`
	EscalationOptions    string   `yaml:"escalation_options" toml:"escalation_options"`
	Contacts             []string `yaml:"contacts" toml:"contacts"`
	ContactGroups        []string `yaml:"contact_groups" toml:"contact_groups"`
}

// counts sums the records of every file per kind
func counts(files []*File) (c objects.Counts) {
	for _, f := range files {
		if f == nil {
			continue
		}
		c.TimePeriods += len(f.TimePeriods)
		c.Commands += len(f.Commands)
		c.Contacts += len(f.Contacts)
		c.ContactGroups += len(f.ContactGroups)
		c.Hosts += len(f.Hosts)
		c.HostGroups += len(f.HostGroups)
		c.Services += len(f.Services)
		c.ServiceGroups += len(f.ServiceGroups)
		c.HostDependencies += len(f.HostDependencies)
		c.ServiceDependencies += len(f.ServiceDependencies)
		c.HostEscalations += len(f.HostEscalations)
		c.ServiceEscalations += len(f.ServiceEscalations)
	}
	return c
}
