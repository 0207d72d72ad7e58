package objects

import (
	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

// TimePeriod is a named time window. Only its name matters to the store;
// range evaluation belongs to the scheduler.
type TimePeriod struct {
	id    int
	name  Name
	Alias string
	next  *TimePeriod
}

func (tp *TimePeriod) ID() int           { return tp.id }
func (tp *TimePeriod) Name() string      { return tp.name.String() }
func (tp *TimePeriod) NameHandle() Name  { return tp.name }
func (tp *TimePeriod) Next() *TimePeriod { return tp.next }

// Command is a named command line
type Command struct {
	id          int
	name        Name
	CommandLine string
	next        *Command
}

func (c *Command) ID() int        { return c.id }
func (c *Command) Name() string   { return c.name.String() }
func (c *Command) Next() *Command { return c.next }

// Contact is a notification recipient
type Contact struct {
	id    int
	name  Name
	Alias string
	Email string
	Pager string

	HostNotificationOptions    Options
	ServiceNotificationOptions Options
	HostNotificationPeriod     string
	ServiceNotificationPeriod  string

	contactGroups   []*ContactGroup
	customVariables []CustomVariable
	next            *Contact
}

func (c *Contact) ID() int        { return c.id }
func (c *Contact) Name() string   { return c.name.String() }
func (c *Contact) Next() *Contact { return c.next }

// ContactGroups returns the groups this contact was added to
func (c *Contact) ContactGroups() []*ContactGroup { return c.contactGroups }

// CustomVariables returns the contact's custom variables in attachment order
func (c *Contact) CustomVariables() []CustomVariable { return c.customVariables }

// TimePeriodSpec holds the fields of a timeperiod definition
type TimePeriodSpec struct {
	Name  string
	Alias string
}

// CommandSpec holds the fields of a command definition
type CommandSpec struct {
	Name        string
	CommandLine string
}

// ContactSpec holds the fields of a contact definition
type ContactSpec struct {
	Name                       string
	Alias                      string
	Email                      string
	Pager                      string
	HostNotificationOptions    Options
	ServiceNotificationOptions Options
	HostNotificationPeriod     string
	ServiceNotificationPeriod  string
}

// AddTimePeriod registers a time period
func (s *Store) AddTimePeriod(spec TimePeriodSpec) (*TimePeriod, error) {
	if spec.Name == "" {
		return nil, reject(objerrors.NewInvalidInput(KindTimePeriod, "", "timeperiod_name", "timeperiod name is empty"))
	}

	tp := &TimePeriod{name: s.names.Own(spec.Name), Alias: spec.Alias}
	if tp.Alias == "" {
		tp.Alias = spec.Name
	}
	if err := s.timePeriodIndex.Insert(tp.Name(), "", tp); err != nil {
		s.names.Release(tp.name)
		return nil, indexInsertError(KindTimePeriod, spec.Name, err)
	}

	if prev := s.timePeriods.last(); prev != nil {
		prev.next = tp
	}
	tp.id = s.timePeriods.add(tp)
	return tp, nil
}

// AddCommand registers a command
func (s *Store) AddCommand(spec CommandSpec) (*Command, error) {
	if spec.Name == "" {
		return nil, reject(objerrors.NewInvalidInput(KindCommand, "", "command_name", "command name is empty"))
	}
	if spec.CommandLine == "" {
		return nil, reject(objerrors.NewInvalidInput(KindCommand, spec.Name, "command_line", "command line is empty"))
	}

	c := &Command{name: s.names.Own(spec.Name), CommandLine: spec.CommandLine}
	if err := s.commandIndex.Insert(c.Name(), "", c); err != nil {
		s.names.Release(c.name)
		return nil, indexInsertError(KindCommand, spec.Name, err)
	}

	if prev := s.commands.last(); prev != nil {
		prev.next = c
	}
	c.id = s.commands.add(c)
	return c, nil
}

// AddContact registers a contact. Notification periods must already exist.
func (s *Store) AddContact(spec ContactSpec) (*Contact, error) {
	if spec.Name == "" {
		return nil, reject(objerrors.NewInvalidInput(KindContact, "", "contact_name", "contact name is empty"))
	}
	if _, err := s.findPeriod(KindContact, spec.Name, "host_notification_period", spec.HostNotificationPeriod); err != nil {
		return nil, err
	}
	if _, err := s.findPeriod(KindContact, spec.Name, "service_notification_period", spec.ServiceNotificationPeriod); err != nil {
		return nil, err
	}

	c := &Contact{
		name:                       s.names.Own(spec.Name),
		Alias:                      spec.Alias,
		Email:                      spec.Email,
		Pager:                      spec.Pager,
		HostNotificationOptions:    spec.HostNotificationOptions,
		ServiceNotificationOptions: spec.ServiceNotificationOptions,
		HostNotificationPeriod:     spec.HostNotificationPeriod,
		ServiceNotificationPeriod:  spec.ServiceNotificationPeriod,
	}
	if c.Alias == "" {
		c.Alias = spec.Name
	}
	if err := s.contactIndex.Insert(c.Name(), "", c); err != nil {
		s.names.Release(c.name)
		return nil, indexInsertError(KindContact, spec.Name, err)
	}

	if prev := s.contacts.last(); prev != nil {
		prev.next = c
	}
	c.id = s.contacts.add(c)
	return c, nil
}

// AddCustomVariableToContact attaches a custom variable to c
func (s *Store) AddCustomVariableToContact(c *Contact, name, value string) error {
	if c == nil {
		return reject(objerrors.NewInvalidInput(KindContact, "", "custom_variable", "contact is nil"))
	}
	return addCustomVariable(&c.customVariables, KindContact, c.Name(), name, value)
}
