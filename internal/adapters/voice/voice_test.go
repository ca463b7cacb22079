package voice_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agri-sahayak/sahayak-cli/internal/adapters/voice"
	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

type fakeSource struct {
	emit    func(string)
	stopped int
	begun   int
}

func (f *fakeSource) Begin(_ domain.LanguageCode, emit func(string)) (func(), error) {
	f.begun++
	f.emit = emit
	return func() { f.stopped++ }, nil
}

func TestRecognizerStartWhileActiveStops(t *testing.T) {
	src := &fakeSource{}
	r := voice.NewRecognizer(src)

	require.NoError(t, r.Start(domain.LangEnglish))
	assert.True(t, r.Active())
	assert.Equal(t, 1, src.begun)

	// Toggling: a second Start stops instead of starting another session.
	require.NoError(t, r.Start(domain.LangEnglish))
	assert.False(t, r.Active())
	assert.Equal(t, 1, src.begun)
	assert.Equal(t, 1, src.stopped)
}

func TestRecognizerTranscriptFlow(t *testing.T) {
	src := &fakeSource{}
	r := voice.NewRecognizer(src)
	require.NoError(t, r.Start(domain.LangHindi))

	src.emit("when to")
	src.emit("when to sow wheat")

	assert.Equal(t, "when to", <-r.Transcript())
	assert.Equal(t, "when to sow wheat", <-r.Transcript())

	r.Stop()
	assert.False(t, r.Active())
	r.Stop() // idempotent
	assert.Equal(t, 1, src.stopped)
}

func TestRecognizerStopWakesPendingReader(t *testing.T) {
	src := &fakeSource{}
	r := voice.NewRecognizer(src)
	require.NoError(t, r.Start(domain.LangEnglish))

	got := make(chan string, 1)
	go func() { got <- <-r.Transcript() }()

	r.Stop()
	select {
	case v := <-got:
		assert.Equal(t, "", v, "stop emits an empty wake-up, not a transcript")
	case <-time.After(time.Second):
		t.Fatal("transcript reader still blocked after stop")
	}
}

func TestSynthesizerSpeakWhileSpeakingCancels(t *testing.T) {
	var (
		played    []string
		cancelled int
	)
	s := voice.NewSynthesizer(func(text, lang string, done func()) func() {
		played = append(played, text)
		return func() { cancelled++ }
	})

	s.Speak("first answer", domain.LangEnglish)
	assert.True(t, s.Speaking())

	// Second trigger cancels the active utterance, it does not queue.
	s.Speak("second answer", domain.LangEnglish)
	assert.False(t, s.Speaking())
	assert.Equal(t, []string{"first answer"}, played)
	assert.Equal(t, 1, cancelled)

	// Now idle again, the next Speak starts a fresh utterance.
	s.Speak("third answer", domain.LangEnglish)
	assert.True(t, s.Speaking())
	assert.Equal(t, []string{"first answer", "third answer"}, played)
}

func TestSynthesizerDoneClearsSpeaking(t *testing.T) {
	var finish func()
	s := voice.NewSynthesizer(func(text, lang string, done func()) func() {
		finish = done
		return func() {}
	})

	s.Speak("answer", domain.LangEnglish)
	require.True(t, s.Speaking())
	finish()
	assert.False(t, s.Speaking())
}

func TestSynthesizerPicksHindiVoiceForDevanagari(t *testing.T) {
	var gotLang string
	s := voice.NewSynthesizer(func(text, lang string, done func()) func() {
		gotLang = lang
		return func() {}
	})

	s.Speak("गेहूं की बुवाई", domain.LangEnglish)
	assert.Equal(t, "hi-IN", gotLang)

	s.Stop()
	s.Speak("sow in November", domain.LangEnglish)
	assert.Equal(t, "en-IN", gotLang)
}
