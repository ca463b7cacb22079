package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

func testRenderer() *Renderer {
	// Zero-width markdown renderer setup can fail in odd terminals; the
	// renderer falls back to plain text, which these assertions allow for.
	return NewRenderer(NewStyles("light"), 60)
}

func TestTranscriptShowsWelcomeOnlyWhenEmpty(t *testing.T) {
	r := testRenderer()

	out := r.Transcript(nil, "Hello, Ravi!", "thinking")
	assert.Contains(t, out, "Hello, Ravi!")

	turns := []domain.Turn{{Question: "q", Answer: domain.TextAnswer("a")}}
	out = r.Transcript(turns, "Hello, Ravi!", "thinking")
	assert.NotContains(t, out, "Hello, Ravi!")
	assert.Contains(t, out, "q")
}

func TestTranscriptPendingTurnShowsThinking(t *testing.T) {
	r := testRenderer()
	turns := []domain.Turn{{Question: "q", Answer: domain.PendingAnswer()}}
	out := r.Transcript(turns, "", "AI is thinking...")
	assert.Contains(t, out, "AI is thinking...")
}

func TestTranscriptListAnswerBullets(t *testing.T) {
	r := testRenderer()
	turns := []domain.Turn{{Question: "q", Answer: domain.ItemsAnswer([]string{"one", "two"})}}
	out := r.Transcript(turns, "", "")
	assert.Contains(t, out, "• one")
	assert.Contains(t, out, "• two")
}

func TestLongMultilineAnswerBecomesBullets(t *testing.T) {
	r := testRenderer()
	line := strings.Repeat("x", 100)
	text := line + "\n" + line + "\n" + line
	out := r.answerBody(text)
	assert.Equal(t, 3, strings.Count(out, "•"))
}

func TestSuggestionsNumbered(t *testing.T) {
	r := testRenderer()
	out := r.Suggestions("Try one of these", []string{"a", "b"})
	assert.Contains(t, out, "1. a")
	assert.Contains(t, out, "2. b")
	assert.Empty(t, r.Suggestions("x", nil))
}
