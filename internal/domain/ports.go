package domain

import "context"

// AskResult is the backend reply to a text question or an image analysis.
// ConversationID echoes the id the turn was recorded under; when the request
// carried no id, it is the newly created one.
type AskResult struct {
	Answer         Answer
	ConversationID ConversationID
}

// NewProfile is the input to profile creation.
type NewProfile struct {
	Name     string
	Email    string
	Password string
	Phone    string
	District string
	State    string
	Crop     string
	Language string
}

// Backend defines how the client talks to the remote advisory service. All
// reasoning, persistence, and aggregation live behind it.
type Backend interface {
	GetUser(ctx context.Context, id UserID) (*Profile, error)
	Login(ctx context.Context, email, password string) (UserID, string, error)
	CreateProfile(ctx context.Context, in NewProfile) (UserID, error)

	StartConversation(ctx context.Context, userID UserID, category string) (ConversationID, error)
	GetConversation(ctx context.Context, id ConversationID) ([]Turn, error)
	Ask(ctx context.Context, userID UserID, question string, convID ConversationID) (AskResult, error)
	AnalyzeImage(ctx context.Context, userID UserID, img Attachment, question string, convID ConversationID) (AskResult, error)

	InitiateCall(ctx context.Context, userID UserID) (string, error)
	WeatherForecast(ctx context.Context, userID UserID) (*WeatherForecast, error)
	MarketPriceHistory(ctx context.Context, userID UserID) (*MarketHistory, error)
	CropActivities(ctx context.Context, crop, month string) ([]string, error)
	WeatherAlerts(ctx context.Context, userID UserID) ([]WeatherAlert, error)
}

// Recognizer is a speech-capture device session. Start while active must
// stop the session instead of layering a second one.
type Recognizer interface {
	Start(lang LanguageCode) error
	Stop()
	Active() bool
	// Transcript emits the full transcript so far; each emission replaces
	// the previous one in the input field.
	Transcript() <-chan string
}

// Synthesizer reads an answer aloud. Speak while speaking cancels the
// current utterance instead of queueing.
type Synthesizer interface {
	Speak(text string, lang LanguageCode)
	Stop()
	Speaking() bool
}

// StateStore is the small persisted key/value state outside the backend
// (identity, theme, language preference).
type StateStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}
