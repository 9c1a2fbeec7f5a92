package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/effects"
	"github.com/noah-isme/coursesync/internal/form"
	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/state"
)

// ErrUsage is returned for malformed commands.
var ErrUsage = errors.New("usage")

// Deps are the pieces of the client the shell drives.
type Deps struct {
	Store    effects.Dispatcher
	Auth     effects.AuthCoordinator
	Catalog  effects.CatalogCoordinator
	Courses  effects.CourseCoordinator
	Schedule effects.ScheduleCoordinator
	Form     *form.Controller
}

// Shell is the line-oriented front end of the client.
type Shell struct {
	deps    Deps
	out     io.Writer
	confirm func(prompt string) bool
	logger  zerolog.Logger
}

// NewShell builds a shell writing to out. Destructive commands are confirmed
// through the same input stream once Run is used.
func NewShell(deps Deps, out io.Writer, logger zerolog.Logger) *Shell {
	return &Shell{
		deps:    deps,
		out:     out,
		confirm: func(string) bool { return true },
		logger:  logger.With().Str("component", "shell").Logger(),
	}
}

const helpText = `Commands:
  courses                          reload and show the catalog
  search <term>                    filter the catalog (empty term clears)
  view catalog|schedule            switch screens
  login <username> <password>
  register <username> <password> <student|teacher>
  logout
  add                              open an empty course form
  edit <id>                        open the form for a course
  set <field> <value>              fields: name subject number credits description
  submit                           create or update from the open form
  close                            close the form
  delete <id>
  schedule                         reload and show your schedule
  enroll <id>
  drop <id>
  help
  quit`

// Run reads commands from in until EOF or quit.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	s.confirm = func(prompt string) bool {
		fmt.Fprintf(s.out, "%s [y/N] ", prompt)
		if !scanner.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return answer == "y" || answer == "yes"
	}

	fmt.Fprint(s.out, "> ")
	for scanner.Scan() {
		quit, err := s.Execute(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintln(s.out, err)
		}
		if quit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprint(s.out, "> ")
	}
	return scanner.Err()
}

// Execute runs one command line and renders the resulting state.
func (s *Shell) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	s.logger.Debug().Str("command", cmd).Msg("command received")

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, helpText)
		return false, nil
	case "courses":
		s.deps.Store.Dispatch(state.ViewSelected{View: state.ViewCatalog})
		_ = s.deps.Catalog.Fetch(ctx)
	case "search":
		s.deps.Store.Dispatch(state.SearchTermSet{Term: rest})
	case "view":
		if len(args) != 1 {
			return false, usage("view catalog|schedule")
		}
		switch state.View(strings.ToLower(args[0])) {
		case state.ViewCatalog:
			s.deps.Store.Dispatch(state.ViewSelected{View: state.ViewCatalog})
		case state.ViewSchedule:
			s.deps.Store.Dispatch(state.ViewSelected{View: state.ViewSchedule})
			if s.deps.Store.State().Authenticated() {
				_ = s.deps.Schedule.Fetch(ctx)
			}
		default:
			return false, usage("view catalog|schedule")
		}
	case "login":
		if len(args) != 2 {
			return false, usage("login <username> <password>")
		}
		if err := s.deps.Auth.Login(ctx, args[0], args[1]); err == nil {
			_ = s.deps.Schedule.Fetch(ctx)
		}
	case "register":
		if len(args) != 3 {
			return false, usage("register <username> <password> <student|teacher>")
		}
		role, _ := models.ParseRole(args[2])
		if err := s.deps.Auth.Register(ctx, args[0], args[1], role); err == nil {
			_ = s.deps.Schedule.Fetch(ctx)
		}
	case "logout":
		_ = s.deps.Auth.Logout(ctx)
	case "add":
		s.deps.Form.OpenCreate()
	case "edit":
		if len(args) != 1 {
			return false, usage("edit <id>")
		}
		if err := s.deps.Form.OpenEdit(args[0]); err != nil {
			return false, err
		}
	case "set":
		if len(args) < 1 {
			return false, usage("set <field> <value>")
		}
		value := strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
		if err := s.deps.Form.SetField(args[0], value); err != nil {
			return false, err
		}
	case "submit":
		_ = s.deps.Courses.Submit(ctx)
	case "close":
		s.deps.Form.Close()
	case "delete":
		if len(args) != 1 {
			return false, usage("delete <id>")
		}
		course, ok := s.deps.Store.State().FindCourse(args[0])
		if !ok {
			return false, fmt.Errorf("no course with id %q in the catalog", args[0])
		}
		if !s.confirm(fmt.Sprintf("Are you sure you want to delete the course %q? This action cannot be undone.", course.Name)) {
			return false, nil
		}
		_ = s.deps.Courses.Delete(ctx, course.ID, course.Name)
	case "schedule":
		s.deps.Store.Dispatch(state.ViewSelected{View: state.ViewSchedule})
		_ = s.deps.Schedule.Fetch(ctx)
	case "enroll":
		if len(args) != 1 {
			return false, usage("enroll <id>")
		}
		_ = s.deps.Schedule.Enroll(ctx, args[0])
	case "drop":
		if len(args) != 1 {
			return false, usage("drop <id>")
		}
		_ = s.deps.Schedule.Drop(ctx, args[0])
	default:
		return false, fmt.Errorf("unknown command %q, type help for the list", cmd)
	}

	Render(s.out, s.deps.Store.State())
	return false, nil
}

func usage(text string) error {
	return fmt.Errorf("%w: %s", ErrUsage, text)
}
