package form

import (
	"github.com/noah-isme/coursesync/internal/state"
)

// Phase is where the form overlay is in its lifecycle.
type Phase int

const (
	Closed Phase = iota
	Creating
	Editing
)

func (p Phase) String() string {
	switch p {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	default:
		return "closed"
	}
}

// Status is the submission status of the open form.
type Status int

const (
	Idle Status = iota
	Submitting
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// PhaseOf reads the form phase from state. targetID is set only when editing.
func PhaseOf(s state.State) (phase Phase, targetID string) {
	if s.Form == nil {
		return Closed, ""
	}
	if s.Form.Mode == state.FormEdit {
		return Editing, s.Form.TargetID
	}
	return Creating, ""
}

// StatusOf derives the submission status of the open form from the message.
// A closed form is always idle.
func StatusOf(s state.State) (Status, string) {
	if s.Form == nil {
		return Idle, ""
	}
	switch s.Message.Kind {
	case state.MessageLoading:
		return Submitting, s.Message.Text
	case state.MessageSuccess:
		return Succeeded, s.Message.Text
	case state.MessageError:
		return Failed, s.Message.Text
	default:
		return Idle, ""
	}
}

// CanSubmit mirrors the submit button: disabled while submitting or after success.
func CanSubmit(s state.State) bool {
	status, _ := StatusOf(s)
	return s.Form != nil && status != Submitting && status != Succeeded
}
