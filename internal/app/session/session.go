// Package session owns the state of the active conversation: selection,
// hydration from the backend, optimistic appends, and reconciliation of
// asynchronous answers.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/agri-sahayak/sahayak-cli/internal/app/greeting"
	"github.com/agri-sahayak/sahayak-cli/internal/domain"
	"github.com/agri-sahayak/sahayak-cli/internal/observability"
)

type State int

const (
	// StateIdle: no conversation selected (the "new chat" view).
	StateIdle State = iota
	StateHydrating
	StateReady
	StateAwaitingAnswer
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHydrating:
		return "hydrating"
	case StateReady:
		return "ready"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy means a submission is already in flight; the submit path is
	// serialized.
	ErrBusy = errors.New("session: submission already in flight")
	// ErrNothingToSubmit means both the trimmed text and the attachment
	// were empty; no state was changed and no request was sent.
	ErrNothingToSubmit = errors.New("session: nothing to submit")
)

// Session is exclusively owned by the active chat view. Switching the
// conversation id resets it wholesale; turns are never shared between
// conversations.
type Session struct {
	mu      sync.Mutex
	backend domain.Backend
	tr      greeting.Translator
	uiLang  domain.LanguageCode
	userID  domain.UserID
	now     func() time.Time

	state       State
	convID      domain.ConversationID
	turns       []domain.Turn
	welcome     string
	suggestions []string
	errMsg      string
	profile     *domain.Profile

	// epoch increments on every selection change; in-flight hydrations and
	// submissions carrying a stale epoch are discarded instead of
	// overwriting newer state.
	epoch uint64

	onConversationID func(domain.ConversationID)
}

func New(backend domain.Backend, tr greeting.Translator, uiLang domain.LanguageCode, userID domain.UserID) *Session {
	return &Session{
		backend: backend,
		tr:      tr,
		uiLang:  uiLang,
		userID:  userID,
		now:     time.Now,
		state:   StateIdle,
	}
}

// OnConversationID registers the callback fired when the backend assigns an
// id to a conversation that was local-only.
func (s *Session) OnConversationID(fn func(domain.ConversationID)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onConversationID = fn
}

// ─────────────────────────────────────────────
// Selection and hydration
// ─────────────────────────────────────────────

// Select switches the active conversation. An empty id resets to the
// welcome-primed new-chat state; a concrete id hydrates the full history
// from the backend, replacing turns wholesale.
func (s *Session) Select(ctx context.Context, id domain.ConversationID) error {
	if id == "" {
		s.reset()
		s.deriveNewChat(ctx)
		return nil
	}

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.state = StateHydrating
	s.convID = id
	s.turns = nil
	s.welcome = ""
	s.suggestions = nil
	s.errMsg = ""
	s.mu.Unlock()

	log := observability.LoggerFromContext(ctx).With("conversation_id", id)

	turns, err := s.backend.GetConversation(ctx, id)

	s.mu.Lock()
	if epoch != s.epoch {
		// A newer selection won while this hydration was in flight.
		s.mu.Unlock()
		log.Info("dropping stale hydration result")
		return nil
	}
	if err != nil {
		s.state = StateError
		s.errMsg = greeting.TOr(s.tr, "failedToLoadConversationHistory", s.uiLang,
			"Failed to load conversation history.")
		s.mu.Unlock()
		log.Error("failed to load history", "error", err)
		return err
	}
	s.turns = turns
	s.state = StateReady
	visible := countVisible(turns)
	category := markerCategory(turns)
	s.mu.Unlock()

	log.Info("hydrated conversation", "turns", len(turns), "visible", visible)

	if visible == 0 {
		s.deriveIntro(ctx, epoch, category)
	}
	return nil
}

// NewChat resets to the empty, welcome-primed state.
func (s *Session) NewChat(ctx context.Context) {
	_ = s.Select(ctx, "")
}

// StartCategory asks the backend to open a category-seeded conversation and
// hydrates it.
func (s *Session) StartCategory(ctx context.Context, category string) (domain.ConversationID, error) {
	s.mu.Lock()
	userID := s.userID
	s.mu.Unlock()

	id, err := s.backend.StartConversation(ctx, userID, category)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to start conversation",
			"category", category, "error", err)
		return "", err
	}
	return id, s.Select(ctx, id)
}

func (s *Session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.state = StateIdle
	s.convID = ""
	s.turns = nil
	s.welcome = ""
	s.suggestions = nil
	s.errMsg = ""
}

// deriveNewChat primes the new-chat view with localized suggestions and a
// welcome message from the user profile. Failures degrade to an unprimed but
// usable view.
func (s *Session) deriveNewChat(ctx context.Context) {
	s.mu.Lock()
	epoch := s.epoch
	userID := s.userID
	s.mu.Unlock()

	if userID == "" {
		return
	}

	profile, err := s.backend.GetUser(ctx, userID)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("profile fetch failed; skipping welcome", "error", err)
		return
	}

	lang := greeting.NormalizeLang(profile.RawLanguage(), s.uiLang)
	welcome := greeting.BuildWelcome(profile, lang, s.tr)
	suggestions := greeting.Suggestions(profile, lang, s.tr)

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	s.profile = profile
	s.welcome = welcome
	s.suggestions = suggestions
}

// deriveIntro computes the one-time intro bubble for a hydrated conversation
// with no visible turns: category-specific when a marker turn named one,
// generic otherwise. The intro is held in memory only, never appended to the
// turn sequence.
func (s *Session) deriveIntro(ctx context.Context, epoch uint64, category string) {
	s.mu.Lock()
	userID := s.userID
	s.mu.Unlock()

	var intro string
	profile, err := s.backend.GetUser(ctx, userID)
	if err != nil {
		intro = greeting.TOr(s.tr, "welcomeDefault", s.uiLang,
			"Hi! What would you like to learn about farming today?")
	} else {
		lang := greeting.NormalizeLang(profile.RawLanguage(), s.uiLang)
		intro = greeting.CategoryIntro(category, profile, lang)
		if intro == "" {
			intro = greeting.BuildWelcome(profile, lang, s.tr)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	if profile != nil {
		s.profile = profile
	}
	s.welcome = intro
}

// ─────────────────────────────────────────────
// Submission
// ─────────────────────────────────────────────

// Submit sends one turn to the backend: an image analysis when an attachment
// is given, a text question otherwise. The turn is appended optimistically
// and rolled back in full if the request fails.
func (s *Session) Submit(ctx context.Context, text string, att *domain.Attachment) error {
	text = strings.TrimSpace(text)
	tx, err := s.beginTurn(text, att)
	if err != nil {
		return err
	}

	log := observability.LoggerFromContext(ctx).With("conversation_id", tx.convID)
	log.Info("submitting turn", "question", tx.question, "has_image", att != nil)

	var res domain.AskResult
	if att != nil {
		res, err = s.backend.AnalyzeImage(ctx, tx.userID, *att, text, tx.convID)
	} else {
		res, err = s.backend.Ask(ctx, tx.userID, tx.question, tx.convID)
	}
	if err != nil {
		log.Error("submission failed", "error", err)
		tx.rollback()
		return err
	}

	tx.commit(res)
	return nil
}

// turnTx is the optimistic-append transaction: exactly one of commit or
// rollback settles it.
type turnTx struct {
	s        *Session
	epoch    uint64
	userID   domain.UserID
	convID   domain.ConversationID
	question string
}

func (s *Session) beginTurn(text string, att *domain.Attachment) (*turnTx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateAwaitingAnswer {
		return nil, ErrBusy
	}
	if text == "" && att == nil {
		return nil, ErrNothingToSubmit
	}

	question := text
	if question == "" {
		question = domain.ImageQuestionPlaceholder
	}

	// The conversation has started; the held welcome is gone for good.
	s.welcome = ""
	s.suggestions = nil
	s.errMsg = ""

	s.turns = append(s.turns, domain.Turn{
		Question:  question,
		Answer:    domain.PendingAnswer(),
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
	s.state = StateAwaitingAnswer

	return &turnTx{
		s:        s,
		epoch:    s.epoch,
		userID:   s.userID,
		convID:   s.convID,
		question: question,
	}, nil
}

func (tx *turnTx) commit(res domain.AskResult) {
	s := tx.s
	s.mu.Lock()

	if tx.epoch != s.epoch {
		s.mu.Unlock()
		return
	}

	var adopted func(domain.ConversationID)
	if s.convID == "" && res.ConversationID != "" {
		s.convID = res.ConversationID
		adopted = s.onConversationID
	}
	if n := len(s.turns); n > 0 {
		s.turns[n-1].Answer = res.Answer
	}
	s.state = StateReady
	s.errMsg = ""
	id := s.convID
	s.mu.Unlock()

	if adopted != nil {
		adopted(id)
	}
}

func (tx *turnTx) rollback() {
	s := tx.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.epoch != s.epoch {
		return
	}

	if n := len(s.turns); n > 0 {
		s.turns = s.turns[:n-1]
	}
	s.state = StateError
	s.errMsg = greeting.TOr(s.tr, "failedToGetAnswer", s.uiLang,
		"Failed to get an answer. Please try again.")
}

// ─────────────────────────────────────────────
// Snapshots
// ─────────────────────────────────────────────

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) ConversationID() domain.ConversationID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convID
}

// Turns returns a copy of the full turn sequence, marker turns included.
func (s *Session) Turns() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// VisibleTurns filters out category-seed marker turns.
func (s *Session) VisibleTurns() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Turn
	for _, t := range s.turns {
		if !t.CategoryMarker() {
			out = append(out, t)
		}
	}
	return out
}

func (s *Session) Welcome() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.welcome
}

func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

func (s *Session) ErrMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Profile is the last profile fetched while deriving welcome content; nil
// until a derivation has run.
func (s *Session) Profile() *domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func countVisible(turns []domain.Turn) int {
	n := 0
	for _, t := range turns {
		if !t.CategoryMarker() {
			n++
		}
	}
	return n
}

// markerCategory pulls the category label out of the first marker turn, if
// any.
func markerCategory(turns []domain.Turn) string {
	for _, t := range turns {
		if t.CategoryMarker() {
			return greeting.CategoryFromMarker(t.Question)
		}
	}
	return ""
}
