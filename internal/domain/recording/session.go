// Package recording holds the domain model for one remote recording
// session and the transcription produced from its output file.
package recording

// State models the lifecycle of a recording session.
type State string

const (
	StateIdle          State = "idle"
	StateActive        State = "active"
	StateStopRequested State = "stop_requested"
	StateStopped       State = "stopped"
	StateTimedOut      State = "timed_out"
	StateFailed        State = "failed"
)

// StopSource records what ended the session.
type StopSource string

const (
	StopSourceNone    StopSource = "none"
	StopSourceRemote  StopSource = "remote_event"
	StopSourceManual  StopSource = "manual_request"
	StopSourceTimeout StopSource = "timeout"
)

// Session is one start-to-stop recording cycle. OutputPath is non-empty
// exactly when State is StateStopped; it is only ever set from the remote
// stop-confirmation event.
type Session struct {
	State      State
	OutputPath string
	StopSource StopSource
}
