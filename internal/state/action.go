package state

import "github.com/noah-isme/coursesync/internal/models"

// Action is a closed set of tagged records. Only types in this package can
// implement it.
type Action interface {
	Kind() string
	isAction()
}

// Action kinds, used by the action log, metrics and audit stream.
const (
	KindViewSelected           = "view_selected"
	KindAuthStarted            = "auth_started"
	KindAuthSucceeded          = "auth_succeeded"
	KindAuthFailed             = "auth_failed"
	KindLoggedOut              = "logged_out"
	KindCatalogFetchStarted    = "catalog_fetch_started"
	KindCatalogFetchSucceeded  = "catalog_fetch_succeeded"
	KindCatalogFetchFailed     = "catalog_fetch_failed"
	KindAddFormOpened          = "add_form_opened"
	KindEditFormOpened         = "edit_form_opened"
	KindFormClosed             = "form_closed"
	KindFormMessageSet         = "form_message_set"
	KindFormMessageExpired     = "form_message_expired"
	KindFormFieldSet           = "form_field_set"
	KindCourseAdded            = "course_added"
	KindCourseUpdated          = "course_updated"
	KindCourseDeleted          = "course_deleted"
	KindScheduleFetchStarted   = "schedule_fetch_started"
	KindScheduleFetchSucceeded = "schedule_fetch_succeeded"
	KindScheduleFetchFailed    = "schedule_fetch_failed"
	KindEnrolled               = "enrolled"
	KindDropped                = "dropped"
	KindSearchTermSet          = "search_term_set"
)

type ViewSelected struct {
	View View `json:"view"`
}

type AuthStarted struct{}

type AuthSucceeded struct {
	Session models.Session `json:"-"`
}

type AuthFailed struct {
	Message string `json:"message"`
}

type LoggedOut struct{}

type CatalogFetchStarted struct{}

type CatalogFetchSucceeded struct {
	Courses []models.Course `json:"courses"`
}

type CatalogFetchFailed struct {
	Message string `json:"message"`
}

type AddFormOpened struct{}

type EditFormOpened struct {
	Course models.Course `json:"course"`
}

type FormClosed struct{}

type FormMessageSet struct {
	Level MessageKind `json:"level"`
	Text  string      `json:"text"`
}

// FormMessageExpired clears the message written at Generation, and nothing newer.
type FormMessageExpired struct {
	Generation uint64 `json:"generation"`
}

type FormFieldSet struct {
	Field Field  `json:"field"`
	Value string `json:"value"`
}

type CourseAdded struct {
	Course models.Course `json:"course"`
}

type CourseUpdated struct {
	Course models.Course `json:"course"`
}

type CourseDeleted struct {
	CourseID string `json:"course_id"`
	Message  string `json:"message"`
}

type ScheduleFetchStarted struct{}

type ScheduleFetchSucceeded struct {
	Courses []models.Course `json:"courses"`
}

type ScheduleFetchFailed struct {
	Message string `json:"message"`
}

type Enrolled struct {
	Schedule []models.Course `json:"schedule"`
}

type Dropped struct {
	Schedule []models.Course `json:"schedule"`
}

type SearchTermSet struct {
	Term string `json:"term"`
}

func (ViewSelected) Kind() string           { return KindViewSelected }
func (AuthStarted) Kind() string            { return KindAuthStarted }
func (AuthSucceeded) Kind() string          { return KindAuthSucceeded }
func (AuthFailed) Kind() string             { return KindAuthFailed }
func (LoggedOut) Kind() string              { return KindLoggedOut }
func (CatalogFetchStarted) Kind() string    { return KindCatalogFetchStarted }
func (CatalogFetchSucceeded) Kind() string  { return KindCatalogFetchSucceeded }
func (CatalogFetchFailed) Kind() string     { return KindCatalogFetchFailed }
func (AddFormOpened) Kind() string          { return KindAddFormOpened }
func (EditFormOpened) Kind() string         { return KindEditFormOpened }
func (FormClosed) Kind() string             { return KindFormClosed }
func (FormMessageSet) Kind() string         { return KindFormMessageSet }
func (FormMessageExpired) Kind() string     { return KindFormMessageExpired }
func (FormFieldSet) Kind() string           { return KindFormFieldSet }
func (CourseAdded) Kind() string            { return KindCourseAdded }
func (CourseUpdated) Kind() string          { return KindCourseUpdated }
func (CourseDeleted) Kind() string          { return KindCourseDeleted }
func (ScheduleFetchStarted) Kind() string   { return KindScheduleFetchStarted }
func (ScheduleFetchSucceeded) Kind() string { return KindScheduleFetchSucceeded }
func (ScheduleFetchFailed) Kind() string    { return KindScheduleFetchFailed }
func (Enrolled) Kind() string               { return KindEnrolled }
func (Dropped) Kind() string                { return KindDropped }
func (SearchTermSet) Kind() string          { return KindSearchTermSet }

func (ViewSelected) isAction()           {}
func (AuthStarted) isAction()            {}
func (AuthSucceeded) isAction()          {}
func (AuthFailed) isAction()             {}
func (LoggedOut) isAction()              {}
func (CatalogFetchStarted) isAction()    {}
func (CatalogFetchSucceeded) isAction()  {}
func (CatalogFetchFailed) isAction()     {}
func (AddFormOpened) isAction()          {}
func (EditFormOpened) isAction()         {}
func (FormClosed) isAction()             {}
func (FormMessageSet) isAction()         {}
func (FormMessageExpired) isAction()     {}
func (FormFieldSet) isAction()           {}
func (CourseAdded) isAction()            {}
func (CourseUpdated) isAction()          {}
func (CourseDeleted) isAction()          {}
func (ScheduleFetchStarted) isAction()   {}
func (ScheduleFetchSucceeded) isAction() {}
func (ScheduleFetchFailed) isAction()    {}
func (Enrolled) isAction()               {}
func (Dropped) isAction()                {}
func (SearchTermSet) isAction()          {}
