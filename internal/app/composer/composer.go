// Package composer merges the three input sources (typed text, voice
// transcript, image attachment) into a single outgoing submission.
package composer

import (
	"encoding/base64"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

// Composer owns the draft of the next turn. Typed text is authoritative; a
// live voice transcript overwrites it while capture is active; at most one
// image attachment is queued at a time.
type Composer struct {
	text       string
	attachment *domain.Attachment
	recognizer domain.Recognizer
}

func New(recognizer domain.Recognizer) *Composer {
	return &Composer{recognizer: recognizer}
}

func (c *Composer) Text() string { return c.text }

func (c *Composer) SetText(text string) { c.text = text }

// ApplyTranscript replaces the draft with the latest voice transcript
// snapshot, mirroring how dictation keeps rewriting the input field.
func (c *Composer) ApplyTranscript(transcript string) {
	if transcript != "" {
		c.text = transcript
	}
}

// ToggleVoice starts speech capture, or stops it when already active.
func (c *Composer) ToggleVoice(lang domain.LanguageCode) error {
	if c.recognizer == nil {
		return nil
	}
	return c.recognizer.Start(lang)
}

func (c *Composer) Listening() bool {
	return c.recognizer != nil && c.recognizer.Active()
}

// AttachFile reads an image from disk and queues it for the next submission,
// replacing any previously queued attachment.
func (c *Composer) AttachFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.attachment = &domain.Attachment{
		Base64: base64.StdEncoding.EncodeToString(data),
		MIME:   sniffMIME(path, data),
	}
	return nil
}

// Attach queues an already-encoded attachment (the test and scripting path).
func (c *Composer) Attach(att domain.Attachment) {
	c.attachment = &att
}

func (c *Composer) HasAttachment() bool { return c.attachment != nil }

func (c *Composer) ClearAttachment() { c.attachment = nil }

// CanSubmit reports whether a submission is currently allowed: an identity
// and a ready downstream, no submission already in flight, and at least one
// non-empty input source.
func (c *Composer) CanSubmit(haveIdentity, ready, awaiting bool) bool {
	if !haveIdentity || !ready || awaiting {
		return false
	}
	return strings.TrimSpace(c.text) != "" || c.attachment != nil
}

// Take drains the draft into a submission. The attachment stays queued; the
// session clears it once the request settles, successful or not.
func (c *Composer) Take() (string, *domain.Attachment) {
	text := strings.TrimSpace(c.text)
	c.text = ""
	return text, c.attachment
}

func sniffMIME(path string, data []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return byExt
	}
	if detected := http.DetectContentType(data); detected != "application/octet-stream" {
		return detected
	}
	return "image/jpeg"
}
