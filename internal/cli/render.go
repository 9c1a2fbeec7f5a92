package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/noah-isme/coursesync/internal/form"
	"github.com/noah-isme/coursesync/internal/state"
	"github.com/noah-isme/coursesync/internal/view"
)

// Render prints the screen for s: header, banner, the active view and the form.
func Render(w io.Writer, s state.State) {
	renderHeader(w, s)

	if msg, ok := view.Banner(s); ok {
		fmt.Fprintf(w, "[%s] %s\n", msg.Kind, msg.Text)
	}

	switch s.View {
	case state.ViewSchedule:
		renderSchedule(w, s)
	default:
		renderCatalog(w, s)
	}

	renderForm(w, s)
}

func renderHeader(w io.Writer, s state.State) {
	switch {
	case s.AuthLoading:
		fmt.Fprintln(w, "Signing in...")
	case s.Session != nil:
		fmt.Fprintf(w, "Signed in as %s (%s)\n", s.Session.User.Username, s.Session.User.Role)
	default:
		fmt.Fprintln(w, "Not signed in")
	}
	if s.AuthError != "" {
		fmt.Fprintf(w, "[error] %s\n", s.AuthError)
	}
}

func renderCatalog(w io.Writer, s state.State) {
	fmt.Fprintln(w, "== Course Catalog ==")
	if s.SearchTerm != "" {
		fmt.Fprintf(w, "Filter: %q\n", s.SearchTerm)
	}
	if s.Loading {
		fmt.Fprintln(w, "Loading courses...")
		return
	}
	if s.Error != "" {
		fmt.Fprintf(w, "[error] %s\n", s.Error)
	}

	cards := view.Cards(view.Catalog(s), view.ScheduleIDs(s.Schedule))
	if len(cards) == 0 {
		fmt.Fprintln(w, "No courses found.")
		return
	}
	for _, card := range cards {
		marker := ""
		if card.Enrolled {
			marker = " [enrolled]"
		}
		fmt.Fprintf(w, "%-10s %s (%d credits)%s  id=%s\n", card.Title, card.Name, card.Credits, marker, card.ID)
		fmt.Fprintf(w, "           %s\n", card.Description)
	}
	if view.CanManageCourses(s) {
		fmt.Fprintln(w, "(add, edit <id> and delete <id> manage the catalog)")
	}
}

func renderSchedule(w io.Writer, s state.State) {
	fmt.Fprintln(w, "== My Schedule ==")
	if !s.Authenticated() {
		fmt.Fprintln(w, "Log in to see your schedule.")
		return
	}
	if s.ScheduleLoading {
		fmt.Fprintln(w, "Loading schedule...")
		return
	}
	if s.ScheduleError != "" {
		fmt.Fprintf(w, "[error] %s\n", s.ScheduleError)
	}
	if len(s.Schedule) == 0 {
		fmt.Fprintln(w, "You are not enrolled in any courses.")
		return
	}
	for _, card := range view.Cards(s.Schedule, nil) {
		fmt.Fprintf(w, "%-10s %s (%d credits)  id=%s\n", card.Title, card.Name, card.Credits, card.ID)
	}
	fmt.Fprintf(w, "Total credits: %d\n", view.TotalCredits(s.Schedule))
}

func renderForm(w io.Writer, s state.State) {
	phase, target := form.PhaseOf(s)
	if phase == form.Closed {
		return
	}

	title := "Add New Course"
	if phase == form.Editing {
		title = "Edit Course " + target
	}
	fmt.Fprintf(w, "-- %s --\n", title)
	d := s.Form.Draft
	rows := [][2]string{
		{string(state.FieldName), d.Name},
		{string(state.FieldSubject), d.Subject},
		{string(state.FieldNumber), d.Number},
		{string(state.FieldCredits), d.Credits},
		{string(state.FieldDescription), d.Description},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-12s %s\n", row[0]+":", row[1])
	}

	status, text := form.StatusOf(s)
	if status != form.Idle {
		fmt.Fprintf(w, "  [%s] %s\n", status, text)
	}
	if form.CanSubmit(s) {
		fmt.Fprintln(w, "  "+strings.Join([]string{"set <field> <value>", "submit", "close"}, " | "))
	} else {
		fmt.Fprintln(w, "  close")
	}
}
