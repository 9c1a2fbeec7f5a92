package view

import (
	"strconv"
	"strings"

	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/state"
)

// FilterCourses returns the courses whose name, subject, or number contains
// term, ignoring case. Catalog order is preserved and the input is not
// modified. A blank term matches everything.
func FilterCourses(courses []models.Course, term string) []models.Course {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		if needle == "" || matches(c, needle) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c models.Course, needle string) bool {
	return strings.Contains(strings.ToLower(c.Name), needle) ||
		strings.Contains(strings.ToLower(c.Subject), needle) ||
		strings.Contains(strconv.Itoa(c.Number), needle)
}

// Catalog is the catalog as currently filtered by the search term.
func Catalog(s state.State) []models.Course {
	return FilterCourses(s.Courses, s.SearchTerm)
}

// ScheduleIDs indexes the schedule by course identity.
func ScheduleIDs(schedule []models.Course) map[string]struct{} {
	ids := make(map[string]struct{}, len(schedule))
	for _, c := range schedule {
		ids[c.ID] = struct{}{}
	}
	return ids
}

// IsEnrolled reports whether the course is in the current user's schedule.
func IsEnrolled(s state.State, courseID string) bool {
	_, ok := ScheduleIDs(s.Schedule)[courseID]
	return ok
}

// TotalCredits sums the credits of the given courses.
func TotalCredits(courses []models.Course) int {
	total := 0
	for _, c := range courses {
		total += c.Credits
	}
	return total
}

// CanManageCourses reports whether the signed-in user may create, edit, or delete courses.
func CanManageCourses(s state.State) bool {
	return s.Session != nil && s.Session.User.Role == models.RoleTeacher
}

// Banner returns the message to show above the list. Messages belonging to an
// open form, and loading messages, are not shown there.
func Banner(s state.State) (state.Message, bool) {
	if s.Form != nil || s.Message.Text == "" {
		return state.Message{}, false
	}
	if s.Message.Kind != state.MessageSuccess && s.Message.Kind != state.MessageError {
		return state.Message{}, false
	}
	return s.Message, true
}
