// Package voice holds the speech capture and read-aloud adapters. Device
// access is behind injected functions so the client runs headless (and
// testable) without a microphone or speaker.
package voice

import (
	"sync"

	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

// TranscriptSource produces transcript snapshots for an active capture
// session and is told when to stop. The real implementation wraps the
// platform speech engine; tests feed strings directly.
type TranscriptSource interface {
	Begin(lang domain.LanguageCode, emit func(string)) (stop func(), err error)
}

// Recognizer adapts a TranscriptSource to the domain port. Start while a
// session is active stops the session instead of stacking a second one.
type Recognizer struct {
	mu     sync.Mutex
	src    TranscriptSource
	stop   func()
	out    chan string
	active bool
}

var _ domain.Recognizer = (*Recognizer)(nil)

func NewRecognizer(src TranscriptSource) *Recognizer {
	return &Recognizer{
		src: src,
		out: make(chan string, 16),
	}
}

func (r *Recognizer) Start(lang domain.LanguageCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active {
		r.stopLocked()
		return nil
	}

	stop, err := r.src.Begin(lang, func(text string) {
		select {
		case r.out <- text:
		default:
			// The UI reads every snapshot; dropping one under pressure
			// only skips an intermediate transcript.
		}
	})
	if err != nil {
		return err
	}
	r.stop = stop
	r.active = true
	return nil
}

func (r *Recognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Recognizer) stopLocked() {
	if !r.active {
		return
	}
	if r.stop != nil {
		r.stop()
		r.stop = nil
	}
	r.active = false
	// Wake any reader blocked on the transcript channel so it can observe
	// the stop instead of waiting for the next capture session.
	select {
	case r.out <- "":
	default:
	}
}

func (r *Recognizer) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *Recognizer) Transcript() <-chan string {
	return r.out
}
