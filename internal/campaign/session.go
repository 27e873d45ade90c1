package campaign

import "fmt"

// SessionState is the campaign session lifecycle. The three finished
// states are terminal.
type SessionState string

const (
	SessionNotStarted SessionState = "not_started"
	SessionInProgress SessionState = "in_progress"
	SessionVictory    SessionState = "victory"
	SessionFailed     SessionState = "failed"
	SessionAbandoned  SessionState = "abandoned"
)

// Session tracks one run of a level. It lives in the runner; the engine
// only ever evaluates the victory predicate.
type Session struct {
	Level *Level       `json:"level"`
	State SessionState `json:"state"`
}

// NewSession binds a fresh session to a level.
func NewSession(l *Level) *Session {
	return &Session{Level: l, State: SessionNotStarted}
}

// Start moves the session into progress.
func (s *Session) Start() error {
	if s.State != SessionNotStarted {
		return fmt.Errorf("start session: state is %s", s.State)
	}
	s.State = SessionInProgress
	return nil
}

// Finish moves a running session into one of the terminal states.
func (s *Session) Finish(outcome SessionState) error {
	switch outcome {
	case SessionVictory, SessionFailed, SessionAbandoned:
	default:
		return fmt.Errorf("finish session: %s is not terminal", outcome)
	}
	if s.State != SessionInProgress {
		return fmt.Errorf("finish session: state is %s", s.State)
	}
	s.State = outcome
	return nil
}

// Done reports whether the session reached a terminal state.
func (s *Session) Done() bool {
	switch s.State {
	case SessionVictory, SessionFailed, SessionAbandoned:
		return true
	}
	return false
}
