package composer_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agri-sahayak/sahayak-cli/internal/app/composer"
	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

func TestCanSubmitGates(t *testing.T) {
	c := composer.New(nil)

	assert.False(t, c.CanSubmit(true, true, false), "empty draft")

	c.SetText("   ")
	assert.False(t, c.CanSubmit(true, true, false), "whitespace only")

	c.SetText("when to sow wheat")
	assert.True(t, c.CanSubmit(true, true, false))
	assert.False(t, c.CanSubmit(false, true, false), "no identity")
	assert.False(t, c.CanSubmit(true, false, false), "downstream not ready")
	assert.False(t, c.CanSubmit(true, true, true), "submission in flight")

	c.SetText("")
	c.Attach(domain.Attachment{Base64: "aGk=", MIME: "image/png"})
	assert.True(t, c.CanSubmit(true, true, false), "attachment alone is enough")
}

func TestTakeDrainsTextKeepsAttachment(t *testing.T) {
	c := composer.New(nil)
	c.SetText("  what is this disease?  ")
	c.Attach(domain.Attachment{Base64: "aGk=", MIME: "image/png"})

	text, att := c.Take()
	assert.Equal(t, "what is this disease?", text)
	require.NotNil(t, att)
	assert.Equal(t, "image/png", att.MIME)

	assert.Empty(t, c.Text())
	assert.True(t, c.HasAttachment(), "attachment cleared by the session, not Take")

	c.ClearAttachment()
	assert.False(t, c.HasAttachment())
}

func TestAttachReplacesPrevious(t *testing.T) {
	c := composer.New(nil)
	c.Attach(domain.Attachment{Base64: "old", MIME: "image/png"})
	c.Attach(domain.Attachment{Base64: "new", MIME: "image/jpeg"})

	_, att := c.Take()
	require.NotNil(t, att)
	assert.Equal(t, "new", att.Base64)
}

func TestAttachFileEncodes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leaf.png")
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	c := composer.New(nil)
	require.NoError(t, c.AttachFile(path))

	_, att := c.Take()
	require.NotNil(t, att)
	assert.Equal(t, base64.StdEncoding.EncodeToString(payload), att.Base64)
	assert.Equal(t, "image/png", att.MIME)
}

func TestApplyTranscriptOverwritesDraft(t *testing.T) {
	c := composer.New(nil)
	c.SetText("typed")
	c.ApplyTranscript("spoken words")
	assert.Equal(t, "spoken words", c.Text())

	// Empty snapshots never wipe the draft.
	c.ApplyTranscript("")
	assert.Equal(t, "spoken words", c.Text())
}
