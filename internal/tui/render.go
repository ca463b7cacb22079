package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

// longAnswerThreshold matches the web transcript's heuristic: a long
// multi-line string answer reads better as a bullet list.
const longAnswerThreshold = 180

type Renderer struct {
	styles   Styles
	markdown *glamour.TermRenderer
	width    int
}

func NewRenderer(styles Styles, width int) *Renderer {
	r := &Renderer{styles: styles, width: width}
	if md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	); err == nil {
		r.markdown = md
	}
	return r
}

// Transcript renders the visible turns plus the held welcome bubble into
// viewport content.
func (r *Renderer) Transcript(turns []domain.Turn, welcome, thinking string) string {
	var b strings.Builder

	if len(turns) == 0 && welcome != "" {
		b.WriteString(r.styles.Welcome.Render("🌾 "+welcome) + "\n\n")
	}

	for _, turn := range turns {
		b.WriteString(r.styles.UserBubble.Render("You: "+turn.Question) + "\n")
		switch turn.Answer.Kind {
		case domain.AnswerPending:
			b.WriteString(r.styles.Status.Render(thinking) + "\n")
		case domain.AnswerItems:
			b.WriteString(r.styles.BotBubble.Render("Sahayak:") + "\n")
			for _, item := range turn.Answer.Items {
				b.WriteString(r.styles.BotBubble.Render("  • "+item) + "\n")
			}
		default:
			b.WriteString(r.styles.BotBubble.Render("Sahayak:") + "\n")
			b.WriteString(r.answerBody(turn.Answer.Text) + "\n")
		}
		if ts := formatTimestamp(turn.Timestamp); ts != "" && !turn.Answer.Pending() {
			b.WriteString(r.styles.Timestamp.Render("  "+ts) + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (r *Renderer) answerBody(text string) string {
	if len(text) > longAnswerThreshold && strings.ContainsAny(text, "\n\r") {
		var b strings.Builder
		for _, line := range strings.FieldsFunc(text, func(c rune) bool { return c == '\n' || c == '\r' }) {
			if line = strings.TrimSpace(line); line != "" {
				b.WriteString(r.styles.BotBubble.Render("  • "+line) + "\n")
			}
		}
		return strings.TrimRight(b.String(), "\n")
	}

	if r.markdown != nil {
		if out, err := r.markdown.Render(text); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return r.styles.BotBubble.Render("  " + text)
}

// Suggestions renders the numbered quick-pick prompts of the new-chat view.
func (r *Renderer) Suggestions(title string, suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.styles.Status.Render("🌾 "+title+":") + "\n")
	for i, s := range suggestions {
		b.WriteString(r.styles.Suggestion.Render(fmt.Sprintf("  %d. %s", i+1, s)) + "\n")
	}
	return b.String()
}

func formatTimestamp(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return ""
	}
	return t.Local().Format("15:04")
}
