// Package form holds the login, registration and booking controllers: synchronous
// validation, the submit state machine and what the user sees while a request runs.
package form

import (
	"fmt"
	"log/slog"

	"github.com/kirinyoku/tix-client/internal/navigation"
	"github.com/kirinyoku/tix-client/internal/ui"
)

type State int

const (
	StateIdle State = iota
	StatePending
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// View is the part of a screen a controller drives.
type View struct {
	Submit *ui.Button
	Status *ui.Status
}

// submission moves a View through one request. All methods run on the loop.
type submission struct {
	view      View
	idleLabel string
	busyLabel string
	state     State
}

func newSubmission(view View, busyLabel string) submission {
	return submission{
		view:      view,
		idleLabel: view.Submit.Label(),
		busyLabel: busyLabel,
	}
}

func (s *submission) invalid(err error) {
	s.view.Status.Show(err.Error(), ui.ToneWarning)
}

func (s *submission) begin() {
	s.state = StatePending
	s.view.Submit.SetDisabled(true)
	s.view.Submit.SetLabel(s.busyLabel)
	s.view.Status.Show(msgConnecting, ui.ToneNeutral)
}

func (s *submission) succeed(msg string) {
	s.state = StateSuccess
	s.release()
	s.view.Status.Show(msg, ui.ToneSuccess)
}

func (s *submission) fail(msg string) {
	s.state = StateFailed
	s.release()
	s.view.Status.Show(msg, ui.ToneWarning)
}

func (s *submission) release() {
	s.view.Submit.SetDisabled(false)
	s.view.Submit.SetLabel(s.idleLabel)
}

// navigate opens dest and turns both errors and panics from the screen into an
// inline message.
func (s *submission) navigate(nav navigation.Navigator, dest navigation.Destination, logger *slog.Logger) {
	if err := safeNavigate(nav, dest); err != nil {
		logger.Error("failed to open screen", "destination", dest, "error", err)
		s.view.Status.Show(fmt.Sprintf("%s: %v", msgNavigation, err), ui.ToneWarning)
	}
}

func safeNavigate(nav navigation.Navigator, dest navigation.Destination) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrNavigation, r)
		}
	}()

	return nav.Navigate(dest)
}

func closed() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
