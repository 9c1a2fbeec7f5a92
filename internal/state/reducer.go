package state

import "github.com/noah-isme/coursesync/internal/models"

// Reduce returns the state that results from applying a to s. It performs no
// I/O and never mutates s or the slices it references. Actions it does not
// recognise, including nil, leave the state unchanged.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case ViewSelected:
		s.View = act.View
		s.Error = ""
		s.AuthError = ""
		s.ScheduleError = ""

	case AuthStarted:
		s.AuthLoading = true
		s.AuthError = ""
	case AuthSucceeded:
		session := act.Session
		s.Session = &session
		s.AuthLoading = false
		s.AuthError = ""
		s.View = ViewCatalog
	case AuthFailed:
		s.AuthLoading = false
		s.AuthError = act.Message
	case LoggedOut:
		s.Session = nil
		s.Schedule = nil
		s.ScheduleLoading = false
		s.ScheduleError = ""
		s.View = ViewCatalog

	case CatalogFetchStarted:
		s.Loading = true
		s.Error = ""
	case CatalogFetchSucceeded:
		s.Courses = models.CloneCourses(act.Courses)
		s.Loading = false
		s.Error = ""
	case CatalogFetchFailed:
		s.Loading = false
		s.Error = act.Message

	case AddFormOpened:
		s.Form = &EditSession{Mode: FormCreate, Draft: DefaultDraft()}
		s = clearMessage(s)
	case EditFormOpened:
		s.Form = &EditSession{Mode: FormEdit, TargetID: act.Course.ID, Draft: DraftFromCourse(act.Course)}
		s = clearMessage(s)
	case FormClosed:
		s.Form = nil
		s = clearMessage(s)
	case FormMessageSet:
		s = setMessage(s, act.Level, act.Text)
	case FormMessageExpired:
		if s.Message.Generation == act.Generation {
			s = clearMessage(s)
		}
	case FormFieldSet:
		if s.Form == nil {
			return s
		}
		draft, ok := s.Form.Draft.With(act.Field, act.Value)
		if !ok {
			return s
		}
		form := *s.Form
		form.Draft = draft
		s.Form = &form

	case CourseAdded:
		courses := make([]models.Course, 0, len(s.Courses)+1)
		courses = append(courses, s.Courses...)
		s.Courses = append(courses, act.Course)
	case CourseUpdated:
		courses := make([]models.Course, len(s.Courses))
		for i, c := range s.Courses {
			if c.ID == act.Course.ID {
				c = act.Course
			}
			courses[i] = c
		}
		s.Courses = courses
	case CourseDeleted:
		courses := make([]models.Course, 0, len(s.Courses))
		for _, c := range s.Courses {
			if c.ID != act.CourseID {
				courses = append(courses, c)
			}
		}
		s.Courses = courses
		s = setMessage(s, MessageSuccess, act.Message)

	case ScheduleFetchStarted:
		s.ScheduleLoading = true
		s.ScheduleError = ""
	case ScheduleFetchSucceeded:
		s.Schedule = models.CloneCourses(act.Courses)
		s.ScheduleLoading = false
		s.ScheduleError = ""
	case ScheduleFetchFailed:
		s.ScheduleLoading = false
		s.ScheduleError = act.Message
	case Enrolled:
		s.Schedule = models.CloneCourses(act.Schedule)
	case Dropped:
		s.Schedule = models.CloneCourses(act.Schedule)

	case SearchTermSet:
		s.SearchTerm = act.Term
	}

	return s
}

func setMessage(s State, kind MessageKind, text string) State {
	s.Message = Message{Kind: kind, Text: text, Generation: s.Message.Generation + 1}
	return s
}

func clearMessage(s State) State {
	return setMessage(s, MessageNone, "")
}

// Replay folds actions over initial in order.
func Replay(initial State, actions []Action) State {
	s := initial
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}
