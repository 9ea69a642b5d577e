package cli

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/followup/internal/api"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/session"
	"github.com/charmbracelet/huh"
)

// withError prepends an error note to the first field list when err is set.
func withError(err error, fields ...huh.Field) []huh.Field {
	if err == nil {
		return fields
	}
	return append([]huh.Field{errorNote(err)}, fields...)
}

func priorityOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(domain.Priorities))
	for i, p := range domain.Priorities {
		opts[i] = huh.NewOption(p.Label(), string(p))
	}
	return opts
}

func taskStatusOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(domain.KanbanColumns))
	for i, s := range domain.KanbanColumns {
		opts[i] = huh.NewOption(s.Label(), string(s))
	}
	return opts
}

func channelOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Telegram", string(domain.ChannelTelegram)),
		huh.NewOption("Email", string(domain.ChannelEmail)),
		huh.NewOption("Both", string(domain.ChannelBoth)),
	}
}

func projectStatusOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(domain.ProjectStatuses))
	for i, s := range domain.ProjectStatuses {
		opts[i] = huh.NewOption(s.Label(), string(s))
	}
	return opts
}

// contactOptions lists contacts for a picker, led by a "None" choice. A
// current ID that is not among contacts keeps an option of its own.
func contactOptions(contacts []domain.Contact, current string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("None", "")}
	found := current == ""
	for _, c := range contacts {
		id := strconv.FormatInt(c.ID, 10)
		label := c.Name
		if c.Company != nil && *c.Company != "" {
			label += " (" + *c.Company + ")"
		}
		opts = append(opts, huh.NewOption(label, id))
		found = found || id == current
	}
	if !found {
		opts = append(opts, huh.NewOption("Contact #"+current, current))
	}
	return opts
}

func contactForm(f *domain.ContactForm, err error) *huh.Form {
	return newForm(
		huh.NewGroup(withError(err,
			huh.NewInput().Title("Name").Value(&f.Name).Validate(validateRequired("name")),
			huh.NewInput().Title("Email").Placeholder("optional").Value(&f.Email),
			huh.NewInput().Title("Phone").Placeholder("optional").Value(&f.Phone),
			huh.NewInput().Title("Company").Placeholder("optional").Value(&f.Company),
		)...),
		huh.NewGroup(
			huh.NewText().Title("Notes").Value(&f.Notes),
		),
	)
}

func taskForm(f *domain.TaskForm, contacts []domain.Contact, err error) *huh.Form {
	return newForm(
		huh.NewGroup(withError(err,
			huh.NewInput().Title("Title").Value(&f.Title).Validate(validateRequired("title")),
			huh.NewText().Title("Description").Value(&f.Description),
			huh.NewInput().Title("Due (YYYY-MM-DDTHH:MM, blank for none)").
				Placeholder("2026-06-30T10:00").
				Value(&f.DueAt).
				Validate(validateOptionalDateTime),
		)...),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Priority").Options(priorityOptions()...).Value(&f.Priority),
			huh.NewSelect[string]().Title("Status").Options(taskStatusOptions()...).Value(&f.Status),
			huh.NewSelect[string]().Title("Notify via").Options(channelOptions()...).Value(&f.Channel),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Contact").Options(contactOptions(contacts, f.ContactID)...).Value(&f.ContactID),
			huh.NewInput().Title("Project ID").Placeholder("optional").Value(&f.ProjectID).Validate(validateOptionalID),
		),
	)
}

func projectForm(f *domain.ProjectForm, contacts []domain.Contact, err error) *huh.Form {
	return newForm(
		huh.NewGroup(withError(err,
			huh.NewInput().Title("Name").Value(&f.Name).Validate(validateRequired("name")),
			huh.NewText().Title("Description").Value(&f.Description),
			huh.NewSelect[string]().Title("Contact").Options(contactOptions(contacts, f.ContactID)...).Value(&f.ContactID),
			huh.NewSelect[string]().Title("Status").Options(projectStatusOptions()...).Value(&f.Status),
		)...),
	)
}

func templateForm(f *domain.TemplateForm, err error) *huh.Form {
	return newForm(
		huh.NewGroup(withError(err,
			huh.NewInput().Title("Name").Value(&f.Name).Validate(validateRequired("name")),
			huh.NewSelect[string]().Title("Type").
				Options(
					huh.NewOption("Telegram", string(domain.TemplateTelegram)),
					huh.NewOption("Email", string(domain.TemplateEmail)),
				).
				Value(&f.Type),
			huh.NewConfirm().Title("Default template?").Value(&f.IsDefault),
		)...),
		huh.NewGroup(
			huh.NewInput().Title("Subject").Value(&f.Subject),
		).WithHideFunc(func() bool { return f.Type != string(domain.TemplateEmail) }),
		huh.NewGroup(
			huh.NewText().
				Title("Message").
				Description("Placeholders: {"+strings.Join(domain.TemplatePlaceholders, "} {")+"}").
				Value(&f.Body).
				Validate(validateRequired("message")),
		),
	)
}

// taskFilterFields is the string form of an api.TaskFilter.
type taskFilterFields struct {
	status    string
	priority  string
	contactID string
	projectID string
	from      string
	to        string
}

func taskFilterFieldsFrom(f api.TaskFilter) *taskFilterFields {
	return &taskFilterFields{
		status:    string(f.Status),
		priority:  string(f.Priority),
		contactID: formatOptionalID(f.ContactID),
		projectID: formatOptionalID(f.ProjectID),
		from:      f.From,
		to:        f.To,
	}
}

func (t *taskFilterFields) filter() api.TaskFilter {
	return api.TaskFilter{
		Status:    domain.TaskStatus(t.status),
		Priority:  domain.Priority(t.priority),
		ContactID: parseOptionalID(t.contactID),
		ProjectID: parseOptionalID(t.projectID),
		From:      strings.TrimSpace(t.from),
		To:        strings.TrimSpace(t.to),
	}
}

func taskFilterForm(t *taskFilterFields) *huh.Form {
	anyOpt := huh.NewOption("Any", "")
	return newForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Status").
				Options(append([]huh.Option[string]{anyOpt}, taskStatusOptions()...)...).
				Value(&t.status),
			huh.NewSelect[string]().Title("Priority").
				Options(append([]huh.Option[string]{anyOpt}, priorityOptions()...)...).
				Value(&t.priority),
		),
		huh.NewGroup(
			huh.NewInput().Title("Contact ID").Value(&t.contactID).Validate(validateOptionalID),
			huh.NewInput().Title("Project ID").Value(&t.projectID).Validate(validateOptionalID),
			huh.NewInput().Title("Due from (YYYY-MM-DD)").Value(&t.from).Validate(validateOptionalDateTime),
			huh.NewInput().Title("Due to (YYYY-MM-DD)").Value(&t.to).Validate(validateOptionalDateTime),
		),
	)
}

// registrationFields backs the sign-up steps.
type registrationFields struct {
	name       string
	email      string
	plan       string
	telegramID string
}

func newRegistrationFields(plan string) *registrationFields {
	if _, ok := domain.FindPlan(plan); !ok {
		plan = domain.Plans[0].ID
	}
	return &registrationFields{plan: plan}
}

func (r *registrationFields) registration() session.Registration {
	return session.Registration{
		Name:       strings.TrimSpace(r.name),
		Email:      strings.TrimSpace(r.email),
		Plan:       r.plan,
		TelegramID: strings.TrimSpace(r.telegramID),
	}
}

// registrationInfoForm is step one: who you are and which plan.
func registrationInfoForm(r *registrationFields) *huh.Form {
	plans := make([]huh.Option[string], len(domain.Plans))
	for i, p := range domain.Plans {
		plans[i] = huh.NewOption(p.Name, p.ID)
	}
	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&r.name).Validate(validateRequired("name")),
			huh.NewInput().Title("Email").Value(&r.email).Validate(validateEmail),
			huh.NewSelect[string]().Title("Plan").Options(plans...).Value(&r.plan),
		),
	)
}

// registrationIdentityForm is step two: the Telegram ID reminders go to.
func registrationIdentityForm(r *registrationFields) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Connect Telegram").
				Description("Message @userinfobot on Telegram to get your numeric ID,\nthen start a chat with the followup bot so it can remind you."),
			huh.NewInput().Title("Telegram ID").Placeholder("123456789").Value(&r.telegramID).Validate(validateIdentity),
		),
	)
}

func loginForm(id *string) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Telegram ID").
				Description("The numeric ID you registered with").
				Placeholder("123456789").
				Value(id).
				Validate(validateIdentity),
		),
	)
}
