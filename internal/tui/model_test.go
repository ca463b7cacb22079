package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agri-sahayak/sahayak-cli/internal/app/composer"
	"github.com/agri-sahayak/sahayak-cli/internal/app/greeting"
	"github.com/agri-sahayak/sahayak-cli/internal/app/session"
	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

type stubBackend struct{ domain.Backend }

func (stubBackend) GetUser(context.Context, domain.UserID) (*domain.Profile, error) {
	return &domain.Profile{Name: "Ravi"}, nil
}

func newTestModel() *Model {
	cat := greeting.NewCatalog()
	return New(Deps{
		Session:    session.New(stubBackend{}, cat, domain.LangEnglish, "u1"),
		Composer:   composer.New(nil),
		Translator: cat,
		Lang:       domain.LangEnglish,
		Theme:      "light",
	})
}

func TestSettledTurnClearsAttachmentOnEventLoop(t *testing.T) {
	m := newTestModel()
	m.deps.Composer.Attach(domain.Attachment{Base64: "aGk=", MIME: "image/jpeg"})
	require.True(t, m.deps.Composer.HasAttachment())

	_, _ = m.Update(turnSettledMsg{})
	assert.False(t, m.deps.Composer.HasAttachment())
}

func TestAltEnterInsertsNewline(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("first line")

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	assert.Contains(t, m.input.Value(), "\n")
}

func TestEmptyTranscriptWakeupKeepsDraft(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("typed draft")

	_, _ = m.Update(transcriptMsg(""))
	assert.Equal(t, "typed draft", m.input.Value())
}
