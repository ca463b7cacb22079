package voice

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

// ErrCaptureUnavailable means no speech-capture engine is wired on this
// machine.
var ErrCaptureUnavailable = errors.New("voice: speech capture is not available")

// UnavailableSource is the default transcript source on machines without a
// speech engine; toggling the mic surfaces a clear message instead of
// pretending to listen.
type UnavailableSource struct{}

func (UnavailableSource) Begin(_ domain.LanguageCode, _ func(string)) (func(), error) {
	return nil, ErrCaptureUnavailable
}

// CommandPlayer speaks by piping the utterance to an external TTS command
// (for example "espeak-ng -v {lang}"); {lang} is replaced with the voice
// code. Cancelling kills the process.
func CommandPlayer(cmdline string) Player {
	return func(text string, voiceLang string, done func()) (cancel func()) {
		line := strings.ReplaceAll(cmdline, "{lang}", voiceLang)
		parts := strings.Fields(line)
		if len(parts) == 0 {
			done()
			return func() {}
		}

		cmd := exec.Command(parts[0], parts[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Start(); err != nil {
			done()
			return func() {}
		}

		go func() {
			_ = cmd.Wait()
			done()
		}()
		return func() {
			_ = cmd.Process.Kill()
		}
	}
}
