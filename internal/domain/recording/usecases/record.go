package usecases

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/marco-gallegos/careless-whisper-client/internal/domain/recording"
	"github.com/marco-gallegos/careless-whisper-client/internal/obs"
)

// DefaultTimeout bounds how long Record waits for the recording to stop.
const DefaultTimeout = time.Hour

var (
	// ErrAlreadyRecording means OBS reported an active recording during
	// the precheck. No session state is created in that case.
	ErrAlreadyRecording = errors.New("OBS is already recording; stop the current recording first")

	// ErrTimedOut means no stop confirmation arrived before the deadline.
	// It is a soft outcome: the caller gets no output path and decides
	// what to do next.
	ErrTimedOut = errors.New("recording did not stop within the timeout")
)

// RecordController is the slice of the OBS client the orchestrator needs.
type RecordController interface {
	GetRecordStatus() (*obs.RecordStatus, error)
	StartRecord() error
	StopRecord() error
	OnRecordStateChanged(func(obs.RecordStateChanged)) *obs.Subscription
}

// Record starts a recording on the remote OBS instance and waits for it to
// stop, from OBS itself, from the manual-stop signal, or not at all.
type Record struct {
	Client RecordController

	// Timeout bounds the wait; DefaultTimeout when zero.
	Timeout time.Duration

	// ManualStop, when non-nil, lets an interactive task request a stop.
	// The signal triggers a single StopRecord call; completion still only
	// comes from the RecordStateChanged event.
	ManualStop <-chan struct{}

	// OnStarted, when non-nil, runs once StartRecord has been accepted,
	// before the wait begins. Lets the CLI tell the user recording is live.
	OnStarted func()
}

// Execute runs one recording session and returns it with the output file
// path once OBS confirms the stop.
//
// On timeout, Execute returns ErrTimedOut without sending StopRecord, so
// the recording may still be running in OBS. That mirrors the established
// CLI behavior: the user can still walk over to OBS and stop it by hand,
// and the file lands on disk as usual.
func (r *Record) Execute() (*recording.Session, error) {
	sess := &recording.Session{State: recording.StateIdle, StopSource: recording.StopSourceNone}

	status, err := r.Client.GetRecordStatus()
	if err != nil {
		sess.State = recording.StateFailed
		return sess, fmt.Errorf("checking record status: %w", err)
	}
	if status.OutputActive {
		return sess, ErrAlreadyRecording
	}
	// The status check and StartRecord are not atomic on the OBS side; a
	// recording started externally in between surfaces as a StartRecord
	// rejection.

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	// Single-slot completion channel. The event handler is the only writer
	// of the output path; the CAS guarantees it fires at most once even if
	// OBS re-emits terminal events.
	done := make(chan string, 1)
	var completed atomic.Bool
	sub := r.Client.OnRecordStateChanged(func(ev obs.RecordStateChanged) {
		if !ev.Stopped() || ev.OutputPath == "" {
			return
		}
		if completed.CompareAndSwap(false, true) {
			done <- ev.OutputPath
		}
	})
	defer sub.Cancel()

	if err := r.Client.StartRecord(); err != nil {
		sess.State = recording.StateFailed
		return sess, fmt.Errorf("starting recording: %w", err)
	}
	sess.State = recording.StateActive
	if r.OnStarted != nil {
		r.OnStarted()
	}

	var manualRequested atomic.Bool
	if r.ManualStop != nil {
		// Detached on purpose: if Execute exits via timeout this goroutine
		// may stay blocked on the signal until the process ends.
		go func() {
			<-r.ManualStop
			if completed.Load() {
				return
			}
			manualRequested.Store(true)
			// Best effort. A failure here leaves the remote event (or the
			// timeout) to settle the session.
			_ = r.Client.StopRecord()
		}()
	}

	select {
	case path := <-done:
		sess.State = recording.StateStopped
		sess.OutputPath = path
		if manualRequested.Load() {
			sess.StopSource = recording.StopSourceManual
		} else {
			sess.StopSource = recording.StopSourceRemote
		}
		return sess, nil
	case <-time.After(timeout):
		sess.State = recording.StateTimedOut
		sess.StopSource = recording.StopSourceTimeout
		return sess, ErrTimedOut
	}
}
