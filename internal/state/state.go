package state

import (
	"strconv"

	"github.com/noah-isme/coursesync/internal/models"
)

// View names the top-level screen being presented.
type View string

const (
	ViewCatalog  View = "catalog"
	ViewSchedule View = "schedule"
)

// MessageKind classifies the banner/form message.
type MessageKind string

const (
	MessageNone    MessageKind = ""
	MessageLoading MessageKind = "loading"
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is the single user-visible status line shared by the form and the
// main view. Generation increases on every write so a deferred clear can tell
// whether the message it was scheduled for is still the current one.
type Message struct {
	Kind       MessageKind
	Text       string
	Generation uint64
}

// Empty reports whether nothing is being shown.
func (m Message) Empty() bool {
	return m.Kind == MessageNone && m.Text == ""
}

// FormMode says whether the open form creates or edits a course.
type FormMode string

const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// Field names one editable course field.
type Field string

const (
	FieldName        Field = "name"
	FieldSubject     Field = "subject"
	FieldNumber      Field = "number"
	FieldCredits     Field = "credits"
	FieldDescription Field = "description"
)

// Fields lists every editable field in form order.
var Fields = []Field{FieldName, FieldSubject, FieldNumber, FieldCredits, FieldDescription}

// Draft holds the form's field values as typed by the user. Numeric fields are
// kept as text so that "not filled in" stays distinguishable from zero.
type Draft struct {
	Name        string
	Subject     string
	Number      string
	Credits     string
	Description string
}

// DefaultDraft is the draft a new course starts from.
func DefaultDraft() Draft {
	return Draft{Credits: "3"}
}

// DraftFromCourse copies a course's current values into a new draft.
func DraftFromCourse(c models.Course) Draft {
	return Draft{
		Name:        c.Name,
		Subject:     c.Subject,
		Number:      strconv.Itoa(c.Number),
		Credits:     strconv.Itoa(c.Credits),
		Description: c.Description,
	}
}

// With returns a copy of the draft with one field replaced. Unknown fields
// leave the draft untouched and report false.
func (d Draft) With(field Field, value string) (Draft, bool) {
	switch field {
	case FieldName:
		d.Name = value
	case FieldSubject:
		d.Subject = value
	case FieldNumber:
		d.Number = value
	case FieldCredits:
		d.Credits = value
	case FieldDescription:
		d.Description = value
	default:
		return d, false
	}
	return d, true
}

// EditSession is the open create/edit form.
type EditSession struct {
	Mode     FormMode
	TargetID string
	Draft    Draft
}

// State is the complete client-side model.
type State struct {
	View View

	Session     *models.Session
	AuthLoading bool
	AuthError   string

	Courses []models.Course
	Loading bool
	Error   string

	Schedule        []models.Course
	ScheduleLoading bool
	ScheduleError   string

	Form    *EditSession
	Message Message

	SearchTerm string
}

// Initial returns the state a freshly started client begins from. The catalog
// is considered loading until the first fetch settles.
func Initial() State {
	return State{
		View:    ViewCatalog,
		Loading: true,
	}
}

// Authenticated reports whether a session is present. Presence is the only
// authorization signal the client has.
func (s State) Authenticated() bool {
	return s.Session != nil
}

// Token returns the bearer token of the current session, if any.
func (s State) Token() (string, bool) {
	if s.Session == nil {
		return "", false
	}
	return s.Session.Token, true
}

// FindCourse looks a course up in the catalog by identity.
func (s State) FindCourse(id string) (models.Course, bool) {
	for _, c := range s.Courses {
		if c.ID == id {
			return c, true
		}
	}
	return models.Course{}, false
}
