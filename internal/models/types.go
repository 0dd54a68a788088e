package models

// Event types understood by the default reducer registry.
const (
	OrganizationCreated EventType = "organization.created"
	OrganizationUpdated EventType = "organization.updated"
	OrganizationDeleted EventType = "organization.deleted"

	AccountCreated EventType = "account.created"
	AccountUpdated EventType = "account.updated"
	AccountDeleted EventType = "account.deleted"

	ContactCreated EventType = "contact.created"
	ContactUpdated EventType = "contact.updated"
	ContactDeleted EventType = "contact.deleted"

	NoteCreated EventType = "note.created"
	NoteUpdated EventType = "note.updated"
	NoteDeleted EventType = "note.deleted"

	RelationCreated EventType = "relation.created"
	RelationDeleted EventType = "relation.deleted"

	CalendarEventCreated EventType = "calendar_event.created"
	CalendarEventUpdated EventType = "calendar_event.updated"
	CalendarEventDeleted EventType = "calendar_event.deleted"
)
