package domain

import (
	"encoding/json"
	"strings"
)

type AnswerKind int

const (
	// AnswerPending means the turn is waiting for the backend.
	AnswerPending AnswerKind = iota
	AnswerText
	AnswerItems
)

// Answer is the backend reply to one question. The wire shape is loose
// (null, a string, or a list of strings), so it is kept as a tagged union
// instead of an any-typed field.
type Answer struct {
	Kind  AnswerKind
	Text  string
	Items []string
}

func PendingAnswer() Answer          { return Answer{Kind: AnswerPending} }
func TextAnswer(s string) Answer     { return Answer{Kind: AnswerText, Text: s} }
func ItemsAnswer(it []string) Answer { return Answer{Kind: AnswerItems, Items: it} }

func (a Answer) Pending() bool { return a.Kind == AnswerPending }

// Flat returns the answer as one display string, joining list items with
// newlines. Pending answers flatten to "".
func (a Answer) Flat() string {
	switch a.Kind {
	case AnswerText:
		return a.Text
	case AnswerItems:
		return strings.Join(a.Items, "\n")
	default:
		return ""
	}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = PendingAnswer()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = TextAnswer(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*a = ItemsAnswer(items)
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerText:
		return json.Marshal(a.Text)
	case AnswerItems:
		return json.Marshal(a.Items)
	default:
		return []byte("null"), nil
	}
}

// Turn is one question plus its (possibly pending) answer. Timestamp is the
// backend's ISO-8601 string and is display-only.
type Turn struct {
	Question  string `json:"question"`
	Answer    Answer `json:"answer"`
	Timestamp string `json:"timestamp"`
}

// CategoryMarker reports whether the turn is a category-seed marker rather
// than a real question.
func (t Turn) CategoryMarker() bool {
	return strings.HasPrefix(t.Question, CategoryMarkerPrefix)
}

// Attachment is a single image queued to accompany the next outgoing turn.
type Attachment struct {
	Base64 string
	MIME   string
}

// Profile is the backend's view of a user, as returned by GET /users/{id}.
type Profile struct {
	ID                UserID `json:"user_id"`
	Name              string `json:"name"`
	Username          string `json:"username"`
	State             string `json:"state"`
	District          string `json:"district"`
	Crop              string `json:"crop"`
	Language          string `json:"language"`
	PreferredLanguage string `json:"preferred_language"`
}

// DisplayName prefers the profile name, then the username.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Username
}

// RawLanguage is the free-text language preference recorded on the profile,
// before normalization.
func (p Profile) RawLanguage() string {
	if p.Language != "" {
		return p.Language
	}
	return p.PreferredLanguage
}
