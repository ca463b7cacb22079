package voice

import (
	"sync"

	"github.com/agri-sahayak/sahayak-cli/internal/app/greeting"
	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

// Player actually produces audio for one utterance. It must call done (once)
// when playback finishes, and honor cancel by stopping early.
type Player func(text string, voiceLang string, done func()) (cancel func())

// Synthesizer reads answers aloud through an injected Player. Triggering
// Speak while an utterance is playing cancels it instead of queueing a
// second one, so at most one utterance is ever active.
type Synthesizer struct {
	mu       sync.Mutex
	play     Player
	cancel   func()
	speaking bool
}

var _ domain.Synthesizer = (*Synthesizer)(nil)

func NewSynthesizer(play Player) *Synthesizer {
	return &Synthesizer{play: play}
}

func (s *Synthesizer) Speak(text string, lang domain.LanguageCode) {
	s.mu.Lock()
	if s.speaking {
		s.stopLocked()
		s.mu.Unlock()
		return
	}
	if text == "" || s.play == nil {
		s.mu.Unlock()
		return
	}
	s.speaking = true
	s.mu.Unlock()

	// The player may call done synchronously (for example when it fails to
	// start), so it runs outside the lock.
	cancel := s.play(text, voiceLang(text, lang), func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.speaking = false
		s.cancel = nil
	})

	s.mu.Lock()
	if s.speaking {
		s.cancel = cancel
	}
	s.mu.Unlock()
}

func (s *Synthesizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Synthesizer) stopLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.speaking = false
}

func (s *Synthesizer) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

// voiceLang picks the Hindi voice when the text carries Devanagari script,
// regardless of the UI language.
func voiceLang(text string, lang domain.LanguageCode) string {
	if lang == domain.LangHindi || greeting.HasDevanagari(text) {
		return "hi-IN"
	}
	return "en-IN"
}
