// Package tui is the terminal chat interface: a viewport transcript over the
// conversation session, a textarea input fed by typing or voice capture, and
// slash commands for everything the web sidebar did.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agri-sahayak/sahayak-cli/internal/app/composer"
	"github.com/agri-sahayak/sahayak-cli/internal/app/dashboard"
	"github.com/agri-sahayak/sahayak-cli/internal/app/greeting"
	"github.com/agri-sahayak/sahayak-cli/internal/app/identity"
	"github.com/agri-sahayak/sahayak-cli/internal/app/session"
	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

const (
	headerHeight = 2
	footerHeight = 6
)

type keyMap struct {
	Send    key.Binding
	Newline key.Binding
	Voice   key.Binding
	Speak   key.Binding
	New     key.Binding
	Clear   key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Send:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Newline: key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "newline")),
		Voice:   key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "voice")),
		Speak:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "read aloud")),
		New:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new chat")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear notice")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// Deps wires the application services into the TUI.
type Deps struct {
	Session    *session.Session
	Composer   *composer.Composer
	Recognizer domain.Recognizer
	Synth      domain.Synthesizer
	Dashboard  *dashboard.Service
	Identity   identity.Identity
	Translator greeting.Translator
	Lang       domain.LanguageCode
	Theme      string
	// InitialConversation hydrates on startup when set; empty opens a new
	// chat.
	InitialConversation domain.ConversationID
}

type Model struct {
	deps     Deps
	styles   Styles
	renderer *Renderer
	keys     keyMap

	viewport viewport.Model
	input    textarea.Model
	spin     spinner.Model

	width  int
	height int
	ready  bool
	status string
}

type (
	refreshMsg     struct{}
	turnSettledMsg struct{}
	transcriptMsg  string
	noticeMsg      string
)

func New(deps Deps) *Model {
	in := textarea.New()
	in.Placeholder = "Type your message…"
	in.Prompt = "┃ "
	in.SetHeight(3)
	in.CharLimit = 0
	in.ShowLineNumbers = false
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	styles := NewStyles(deps.Theme)
	return &Model{
		deps:     deps,
		styles:   styles,
		renderer: NewRenderer(styles, 76),
		keys:     defaultKeyMap(),
		input:    in,
		spin:     sp,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, textarea.Blink, m.selectCmd(m.deps.InitialConversation))
}

// ─────────────────────────────────────────────
// Commands
// ─────────────────────────────────────────────

func (m *Model) selectCmd(id domain.ConversationID) tea.Cmd {
	return func() tea.Msg {
		_ = m.deps.Session.Select(context.Background(), id)
		return refreshMsg{}
	}
}

func (m *Model) submitCmd(text string, att *domain.Attachment) tea.Cmd {
	return func() tea.Msg {
		_ = m.deps.Session.Submit(context.Background(), text, att)
		// The composer is only touched from the event loop; the attachment
		// is cleared there when this message lands.
		return turnSettledMsg{}
	}
}

func (m *Model) startCategoryCmd(category string) tea.Cmd {
	return func() tea.Msg {
		_, _ = m.deps.Session.StartCategory(context.Background(), category)
		return refreshMsg{}
	}
}

func (m *Model) listenCmd() tea.Cmd {
	ch := m.deps.Recognizer.Transcript()
	return func() tea.Msg {
		if t, ok := <-ch; ok {
			return transcriptMsg(t)
		}
		return nil
	}
}

func (m *Model) callCmd() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.deps.Dashboard.InitiateCall(context.Background(), m.deps.Identity.UserID)
		if err != nil {
			return noticeMsg(greeting.TOr(m.deps.Translator, "callFailed", m.deps.Lang,
				"Failed to initiate call."))
		}
		return noticeMsg(msg)
	}
}

// ─────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────

func (m *Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := rawMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - headerHeight - footerHeight
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.input.SetWidth(msg.Width - 2)
		renderWidth := msg.Width - 4
		if renderWidth < 20 {
			renderWidth = 20
		}
		m.renderer = NewRenderer(m.styles, renderWidth)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshMsg:
		m.refresh()
		return m, nil

	case turnSettledMsg:
		m.deps.Composer.ClearAttachment()
		m.refresh()
		return m, nil

	case transcriptMsg:
		// An empty emission is the stop wake-up, not a transcript.
		if msg != "" {
			m.deps.Composer.ApplyTranscript(string(msg))
			m.input.SetValue(m.deps.Composer.Text())
		}
		if m.deps.Composer.Listening() {
			return m, m.listenCmd()
		}
		return m, nil

	case noticeMsg:
		m.status = string(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if st := m.deps.Session.State(); st == session.StateAwaitingAnswer || st == session.StateHydrating {
			m.refresh()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(rawMsg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(rawMsg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.deps.Recognizer.Stop()
		m.deps.Synth.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Newline):
		m.input.InsertString("\n")
		return m, nil

	case key.Matches(msg, m.keys.Send):
		return m.handleSend()

	case key.Matches(msg, m.keys.Voice):
		lang := m.deps.Lang
		if err := m.deps.Composer.ToggleVoice(lang); err != nil {
			m.status = err.Error()
			return m, nil
		}
		if m.deps.Composer.Listening() {
			return m, m.listenCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Speak):
		m.speakLastAnswer()
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.input.Reset()
		return m, m.selectCmd("")

	case key.Matches(msg, m.keys.Clear):
		m.status = ""
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleSend() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())

	if strings.HasPrefix(raw, "/") {
		m.input.Reset()
		return m.runCommand(raw)
	}

	m.deps.Composer.SetText(m.input.Value())
	awaiting := m.deps.Session.State() == session.StateAwaitingAnswer
	if !m.deps.Composer.CanSubmit(m.deps.Identity.UserID != "", true, awaiting) {
		return m, nil
	}

	text, att := m.deps.Composer.Take()
	m.input.Reset()
	return m, tea.Batch(m.submitCmd(text, att), m.spin.Tick)
}

// runCommand handles the slash commands that stand in for the web sidebar:
// /new, /open <id>, /category <label>, /attach <path>, /call, /1../4.
func (m *Model) runCommand(raw string) (tea.Model, tea.Cmd) {
	cmd, arg, _ := strings.Cut(raw, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/new":
		return m, m.selectCmd("")
	case "/open":
		if arg == "" {
			m.status = "usage: /open <conversation-id>"
			return m, nil
		}
		return m, m.selectCmd(domain.ConversationID(arg))
	case "/category":
		if arg == "" {
			m.status = "usage: /category <weather|market|loan|farming|livestock>"
			return m, nil
		}
		return m, m.startCategoryCmd(arg)
	case "/attach":
		if arg == "" {
			m.status = "usage: /attach <image-path>"
			return m, nil
		}
		if err := m.deps.Composer.AttachFile(arg); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = greeting.TOr(m.deps.Translator, "imageAttached", m.deps.Lang, "Image attached")
		return m, nil
	case "/detach":
		m.deps.Composer.ClearAttachment()
		m.status = ""
		return m, nil
	case "/call":
		return m, m.callCmd()
	case "/1", "/2", "/3", "/4":
		idx := int(cmd[1] - '1')
		suggestions := m.deps.Session.Suggestions()
		if idx < len(suggestions) {
			return m, tea.Batch(m.submitCmd(suggestions[idx], nil), m.spin.Tick)
		}
		return m, nil
	default:
		m.status = "unknown command: " + cmd
		return m, nil
	}
}

func (m *Model) speakLastAnswer() {
	turns := m.deps.Session.VisibleTurns()
	for i := len(turns) - 1; i >= 0; i-- {
		if !turns[i].Answer.Pending() {
			m.deps.Synth.Speak(turns[i].Answer.Flat(), m.deps.Lang)
			return
		}
	}
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	thinking := greeting.TOr(m.deps.Translator, "thinking", m.deps.Lang, "AI is thinking...")
	m.viewport.SetContent(m.renderer.Transcript(
		m.deps.Session.VisibleTurns(),
		m.deps.Session.Welcome(),
		m.spin.View()+" "+thinking,
	))
	m.viewport.GotoBottom()
}

// ─────────────────────────────────────────────
// View
// ─────────────────────────────────────────────

func (m *Model) View() string {
	if !m.ready {
		return "starting…"
	}

	var b strings.Builder

	title := "Agri-Sahayak"
	if m.deps.Identity.Name != "" {
		title += " · " + m.deps.Identity.Name
	}
	if id := m.deps.Session.ConversationID(); id != "" {
		title += " · " + string(id)
	}
	b.WriteString(m.styles.Header.Render(title) + "\n\n")

	b.WriteString(m.viewport.View() + "\n")

	switch m.deps.Session.State() {
	case session.StateHydrating:
		loading := greeting.TOr(m.deps.Translator, "loadingConversation", m.deps.Lang, "Loading conversation...")
		b.WriteString(m.styles.Status.Render(m.spin.View()+" "+loading) + "\n")
	case session.StateError:
		if msg := m.deps.Session.ErrMessage(); msg != "" {
			b.WriteString(m.styles.Error.Render("⚠ "+msg) + "\n")
		}
	case session.StateIdle:
		if sg := m.deps.Session.Suggestions(); len(sg) > 0 && len(m.deps.Session.VisibleTurns()) == 0 {
			title := greeting.TOr(m.deps.Translator, "tryOneOfThese", m.deps.Lang, "Try one of these")
			b.WriteString(m.renderer.Suggestions(title+" (/1../4)", sg))
		}
	}

	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status) + "\n")
	}

	var badges []string
	if m.deps.Composer.Listening() {
		badges = append(badges, m.styles.Listening.Render("● "+
			greeting.TOr(m.deps.Translator, "listening", m.deps.Lang, "Listening...")))
	}
	if m.deps.Composer.HasAttachment() {
		badges = append(badges, m.styles.Status.Render("📎 "+
			greeting.TOr(m.deps.Translator, "imageAttached", m.deps.Lang, "Image attached")))
	}
	if len(badges) > 0 {
		b.WriteString(strings.Join(badges, "  ") + "\n")
	}

	b.WriteString(m.input.View() + "\n")
	b.WriteString(m.styles.Help.Render(fmt.Sprintf(
		"%s send · %s newline · %s voice · %s read · %s new · /attach /category /call · %s quit",
		m.keys.Send.Help().Key, m.keys.Newline.Help().Key, m.keys.Voice.Help().Key,
		m.keys.Speak.Help().Key, m.keys.New.Help().Key, m.keys.Quit.Help().Key,
	)))

	return b.String()
}
